// Package metrics exposes the director's Prometheus instrumentation:
// commands executed, rule fires, arrange duration, repaint broadcasts.
//
// Grounded on DimaJoyti-AIOS's go.mod, the only repo in the retrieval
// pack carrying github.com/prometheus/client_golang; none of the
// director's own concerns (state machine, tree) call for a metrics
// library, but the ambient-stack rules ask every plausible pack
// dependency to get a concrete home, so command/rule/arrange
// instrumentation is it here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry groups the director's counters/histograms so callers (and
// tests) can construct an isolated instance instead of touching the
// global default registry.
type Registry struct {
	CommandsTotal  *prometheus.CounterVec
	RuleFiresTotal prometheus.Counter
	ArrangeSeconds prometheus.Histogram
	RepaintsTotal  prometheus.Counter
}

// NewRegistry builds and registers a fresh Registry against reg. Pass
// prometheus.NewRegistry() in tests/demos to avoid colliding with the
// global default registry across repeated construction.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "b3",
			Name:      "commands_total",
			Help:      "Director commands executed, labeled by command name and result code.",
		}, []string{"command", "code"}),
		RuleFiresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "b3",
			Name:      "rule_fires_total",
			Help:      "Rule Exec invocations fired during add_win.",
		}),
		ArrangeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "b3",
			Name:      "arrange_seconds",
			Help:      "Wall time spent computing and applying one arrange pass.",
			Buckets:   prometheus.DefBuckets,
		}),
		RepaintsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "b3",
			Name:      "repaint_broadcasts_total",
			Help:      "Detached repaint broadcasts completed without error.",
		}),
	}
	reg.MustRegister(r.CommandsTotal, r.RuleFiresTotal, r.ArrangeSeconds, r.RepaintsTotal)
	return r
}

// Noop returns a Registry backed by a private registry, for callers
// (like tests) that want the instrumentation calls to be valid no-ops
// without wiring a real exporter.
func Noop() *Registry {
	return NewRegistry(prometheus.NewRegistry())
}
