package status

import (
	"math"
	"sync/atomic"
)

// Gauge is an atomic float64, the zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

// Set stores val
func (g *Gauge) Set(val float64) {
	g.bits.Store(math.Float64bits(val))
}

// Get loads the current value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Smooth moves the gauge toward val by factor alpha in (0,1], a zero gauge jumps straight to val
func (g *Gauge) Smooth(val, alpha float64) float64 {
	for {
		old := g.bits.Load()
		cur := math.Float64frombits(old)
		next := val
		if old != 0 {
			next = cur + (val-cur)*alpha
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
