package service

import "github.com/prometheus/client_golang/prometheus"

var domainEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "fractal",
		Name:      "domain_events_total",
		Help:      "Committed state changes by aggregate and event.",
	},
	[]string{"aggregate", "event"},
)

// RegisterMetrics registers the service counters with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	return reg.Register(domainEvents)
}

func recordEvent(aggregate, event string) {
	domainEvents.WithLabelValues(aggregate, event).Inc()
}
