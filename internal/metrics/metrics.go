// Package metrics exposes a running search's Statistics as Prometheus
// collectors, for the /metrics endpoint internal/statsserver serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gitrdm/fdplan/pkg/fdplan"
)

// Collectors bundles the gauges fdplan mirrors from fdplan.Statistics.
// Each field is a live prometheus.Gauge; callers call Update with a
// fresh Snapshot on whatever cadence suits them (typically the
// driver's own progress callback).
type Collectors struct {
	Steps      prometheus.Gauge
	Evaluated  prometheus.Gauge
	Expanded   prometheus.Gauge
	Generated  prometheus.Gauge
	PeakMemory prometheus.Gauge
	Elapsed    prometheus.Gauge
	Found      prometheus.Gauge
}

// NewCollectors builds and registers the gauge set against reg.
func NewCollectors(reg prometheus.Registerer, namespace string) (*Collectors, error) {
	c := &Collectors{
		Steps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "search_steps_total", Help: "Number of search-loop steps executed.",
		}),
		Evaluated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "search_states_evaluated", Help: "Number of heuristic evaluations performed.",
		}),
		Expanded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "search_states_expanded", Help: "Number of states expanded.",
		}),
		Generated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "search_states_generated", Help: "Number of successor states generated.",
		}),
		PeakMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "search_peak_memory_bytes", Help: "Peak observed memory usage in bytes.",
		}),
		Elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "search_elapsed_seconds", Help: "Wall-clock seconds since the search started.",
		}),
		Found: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "search_found", Help: "1 if a plan has been found, 0 otherwise.",
		}),
	}

	for _, g := range []prometheus.Gauge{c.Steps, c.Evaluated, c.Expanded, c.Generated, c.PeakMemory, c.Elapsed, c.Found} {
		if err := reg.Register(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Update pushes a fresh statistics snapshot into the gauges.
func (c *Collectors) Update(snap fdplan.Snapshot) {
	c.Steps.Set(float64(snap.Steps))
	c.Evaluated.Set(float64(snap.EvaluatedStates))
	c.Expanded.Set(float64(snap.ExpandedStates))
	c.Generated.Set(float64(snap.GeneratedStates))
	c.PeakMemory.Set(float64(snap.PeakMemory))
	c.Elapsed.Set(snap.ElapsedSeconds)
	if snap.Found {
		c.Found.Set(1)
	} else {
		c.Found.Set(0)
	}
}
