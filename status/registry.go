// Package status collects table counters and gauges for the HUD and logs
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric names
const (
	CardsPicked   = "cards.picked"
	CardsReleased = "cards.released"
	Preconditions = "systems.skipped"
	FrameMillis   = "frame.ms"
)

// Registry is the metrics facade, stored as a world resource
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
	}
}

// Count returns the number of registered metrics
func (r *Registry) Count() int {
	return r.Counters.Count() + r.Gauges.Count()
}

// Summary renders every metric as "key=value" in key order, counters first
func (r *Registry) Summary() string {
	var parts []string
	r.Counters.Range(func(key string, c *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", key, c.Load()))
	})
	r.Gauges.Range(func(key string, g *Gauge) {
		parts = append(parts, fmt.Sprintf("%s=%.1f", key, g.Get()))
	})
	return strings.Join(parts, " ")
}
