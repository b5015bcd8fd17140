package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart/wishlist mutation outcomes and the health of
// the write-through snapshot path.
type StorefrontMetrics struct {
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	corruptReads    *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "Cart and wishlist mutations by store and operation.",
	}, []string{"store", "op"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_persist_failures_total",
		Help: "Write-through snapshot persist failures by store.",
	}, []string{"store"})
	corruptReads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_corrupt_reads_total",
		Help: "Snapshots discarded as corrupt during rehydration.",
	}, []string{"store"})
	persistDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapshot_persist_duration_seconds",
		Help:    "Duration of write-through snapshot persists.",
		Buckets: prometheus.DefBuckets,
	}, []string{"store"})
	reg.MustRegister(mutations, persistFailures, corruptReads, persistDuration)
	return &StorefrontMetrics{
		mutations:       mutations,
		persistFailures: persistFailures,
		corruptReads:    corruptReads,
		persistDuration: persistDuration,
	}
}

// IncMutation counts one mutation for the named store and operation.
func (m *StorefrontMetrics) IncMutation(store, op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(store), normalizeLabel(op)).Inc()
}

// IncPersistFailure counts one swallowed snapshot write failure.
func (m *StorefrontMetrics) IncPersistFailure(store string) {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.WithLabelValues(normalizeLabel(store)).Inc()
}

// IncCorruptRead counts one snapshot discarded during rehydration.
func (m *StorefrontMetrics) IncCorruptRead(store string) {
	if m == nil || m.corruptReads == nil {
		return
	}
	m.corruptReads.WithLabelValues(normalizeLabel(store)).Inc()
}

// ObservePersistDuration records the duration of one snapshot write.
func (m *StorefrontMetrics) ObservePersistDuration(store string, duration time.Duration) {
	if m == nil || m.persistDuration == nil {
		return
	}
	m.persistDuration.WithLabelValues(normalizeLabel(store)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
