package metrics

import "github.com/prometheus/client_golang/prometheus"

// StoreMetrics counts entity store transitions.
type StoreMetrics struct {
	applied *prometheus.CounterVec
	stale   *prometheus.CounterVec
	version prometheus.Gauge
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_actions_applied",
		Help: "Store actions that changed state.",
	}, []string{"action"})
	stale := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_stale_resolutions",
		Help: "Fetch resolutions discarded because a newer request of the same kind was issued.",
	}, []string{"kind"})
	version := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "store_snapshot_version",
		Help: "Current store snapshot version.",
	})
	reg.MustRegister(applied, stale, version)
	return &StoreMetrics{applied: applied, stale: stale, version: version}
}

// IncApplied counts an action that produced a new snapshot.
func (s *StoreMetrics) IncApplied(action string, version uint64) {
	if s == nil || s.applied == nil {
		return
	}
	s.applied.WithLabelValues(normalizeLabel(action)).Inc()
	s.version.Set(float64(version))
}

// IncStale counts a discarded resolution for the fetch kind.
func (s *StoreMetrics) IncStale(kind string) {
	if s == nil || s.stale == nil {
		return
	}
	s.stale.WithLabelValues(normalizeLabel(kind)).Inc()
}
