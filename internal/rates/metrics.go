package rates

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors for the rate resolver.
type Metrics struct {
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	fallbacks   prometheus.Counter
	storeErrors prometheus.Counter
}

// NewMetrics creates and registers the resolver's collectors.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "taxengine"
	}

	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "local_rate_cache_hits_total",
			Help:      "Local rate lookups served from the cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "local_rate_cache_misses_total",
			Help:      "Local rate lookups that missed the cache",
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "local_rate_fallbacks_total",
			Help:      "Local rate lookups answered from the state-average fallback",
		}),
		storeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "local_rate_store_errors_total",
			Help:      "Storage errors swallowed by the resolver's fallback path",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.cacheHits, m.cacheMisses, m.fallbacks, m.storeErrors)
	}
	return m
}

func (m *Metrics) hit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) fallback() {
	if m != nil {
		m.fallbacks.Inc()
	}
}

func (m *Metrics) storeError() {
	if m != nil {
		m.storeErrors.Inc()
	}
}
