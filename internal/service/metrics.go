package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts quotes by deal type and disposition.
type Metrics struct {
	quotes *prometheus.CounterVec
}

// NewMetrics creates and registers the quote counters.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "taxengine"
	}
	m := &Metrics{
		quotes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quotes_total",
				Help:      "Tax quotes produced, by deal type and disposition",
			},
			[]string{"deal_type", "status"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.quotes)
	}
	return m
}

func (m *Metrics) quote(dealType, status string) {
	if m != nil {
		m.quotes.WithLabelValues(dealType, status).Inc()
	}
}
