// Package audio plays short tones for card events through the system speaker
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/event"
)

const (
	sampleRate    = beep.SampleRate(48000)
	bufferLatency = 100 * time.Millisecond
	defaultVolume = 0.4
)

var ErrUnknownCue = errors.New("unknown audio cue")

// Player turns card events into cues
// Without an audio backend it degrades to a silent player, it never fails the game
type Player struct {
	mu      sync.Mutex
	enabled bool
	volume  float64
	mixer   *beep.Mixer

	// sink receives every built stream, speaker-backed unless replaced in tests
	sink func(beep.Streamer)
}

// NewPlayer opens the speaker when enabled, falling back to silence on failure
func NewPlayer(enabled bool) *Player {
	p := &Player{volume: defaultVolume, mixer: &beep.Mixer{}}
	if !enabled {
		return p
	}

	if err := speaker.Init(sampleRate, sampleRate.N(bufferLatency)); err != nil {
		slog.Warn("audio disabled", "error", err)
		return p
	}
	speaker.Play(p.mixer)
	p.sink = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	p.enabled = true
	return p
}

// Enabled reports whether cues reach a speaker
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Play starts cue without blocking
func (p *Player) Play(c Cue) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.sink == nil {
		return nil
	}

	s, err := NewCueStreamer(c, sampleRate, p.volume)
	if err != nil {
		return fmt.Errorf("cue %s: %w", c, err)
	}
	p.sink(s)
	return nil
}

// Close silences the player and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.enabled = false
}

// EventTypes implements event.Handler
func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventCardPicked,
		event.EventCardReleased,
		event.EventHandDealt,
		event.EventPrecondition,
	}
}

// HandleEvent implements event.Handler
func (p *Player) HandleEvent(_ *engine.World, ev event.GameEvent) {
	var c Cue
	switch ev.Type {
	case event.EventCardPicked:
		c = CuePick
	case event.EventCardReleased:
		c = CueRelease
	case event.EventHandDealt:
		c = CueDeal
	case event.EventPrecondition:
		c = CueWarning
	default:
		return
	}
	if err := p.Play(c); err != nil {
		slog.Error("audio cue failed", "error", err)
	}
}
