package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.IncMutation("cart", "add_item")
	m.IncMutation("cart", "add_item")
	m.IncPersistFailure("cart")
	m.IncCorruptRead("wishlist")
	m.ObservePersistDuration("cart", 15*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "store_mutations_total", "op", "add_item"); err != nil {
		t.Fatalf("fetch mutations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected mutations=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "snapshot_persist_failures_total", "store", "cart"); err != nil {
		t.Fatalf("fetch persist failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "snapshot_corrupt_reads_total", "store", "wishlist"); err != nil {
		t.Fatalf("fetch corrupt reads: %v", err)
	} else if got != 1 {
		t.Fatalf("expected corrupt=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "snapshot_persist_duration_seconds", "store", "cart"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestStorefrontMetricsNilSafe(t *testing.T) {
	var m *StorefrontMetrics
	m.IncMutation("cart", "add_item")
	m.IncPersistFailure("cart")
	m.IncCorruptRead("cart")
	m.ObservePersistDuration("cart", time.Millisecond)

	empty := NewStorefrontMetrics(nil)
	empty.IncMutation("", "")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
