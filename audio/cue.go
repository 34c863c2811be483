package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Cue is a short table sound
type Cue uint8

const (
	CuePick Cue = iota
	CueRelease
	CueDeal
	CueWarning
)

func (c Cue) String() string {
	switch c {
	case CuePick:
		return "pick"
	case CueRelease:
		return "release"
	case CueDeal:
		return "deal"
	case CueWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// tone is one enveloped sine note
type tone struct {
	freq     float64
	duration time.Duration
}

const (
	toneAttack  = 4 * time.Millisecond
	toneRelease = 30 * time.Millisecond
)

var cueTones = map[Cue][]tone{
	// Rising pair when a card lifts into the hand
	CuePick: {{660, 40 * time.Millisecond}, {880, 50 * time.Millisecond}},
	// Falling pair when it lands
	CueRelease: {{587.33, 40 * time.Millisecond}, {392, 70 * time.Millisecond}},
	CueDeal: {
		{1046.5, 25 * time.Millisecond}, {1046.5, 25 * time.Millisecond},
		{1046.5, 25 * time.Millisecond}, {1318.5, 60 * time.Millisecond},
	},
	CueWarning: {{110, 150 * time.Millisecond}},
}

// NewCueStreamer builds the finite stream for cue at rate, scaled by volume
func NewCueStreamer(c Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	tones, ok := cueTones[c]
	if !ok {
		return nil, ErrUnknownCue
	}

	notes := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(rate, t.freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, newEnvelope(beep.Take(rate.N(t.duration), sine), t.duration, toneAttack, toneRelease, rate))
	}
	return newVolume(beep.Seq(notes...), volume), nil
}

// CueDuration returns the total length of cue
func CueDuration(c Cue) time.Duration {
	var total time.Duration
	for _, t := range cueTones[c] {
		total += t.duration
	}
	return total
}
