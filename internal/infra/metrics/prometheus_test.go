package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorderCountsOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheus(reg, "records")
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	rec.Observe(OpPersist, true, time.Millisecond)
	rec.Observe(OpPersist, true, time.Millisecond)
	rec.Observe(OpTake, false, time.Microsecond)
	rec.Observe("", true, time.Millisecond)
	rec.SetSize(2)

	if got := testutil.ToFloat64(rec.Operations().WithLabelValues("records", OpPersist, "success")); got != 2 {
		t.Fatalf("expected 2 persists, got %v", got)
	}
	if got := testutil.ToFloat64(rec.Operations().WithLabelValues("records", OpTake, "error")); got != 1 {
		t.Fatalf("expected 1 failed take, got %v", got)
	}
	if got := testutil.ToFloat64(rec.size); got != 2 {
		t.Fatalf("expected size 2, got %v", got)
	}
}

func TestPrometheusRecordersShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPrometheus(reg, "a")
	if err != nil {
		t.Fatalf("recorder a: %v", err)
	}
	b, err := NewPrometheus(reg, "b")
	if err != nil {
		t.Fatalf("recorder b: %v", err)
	}
	a.Observe(OpRemove, true, 0)
	b.Observe(OpRemove, true, 0)
	b.Observe(OpRemove, true, 0)

	if got := testutil.ToFloat64(a.Operations().WithLabelValues("b", OpRemove, "success")); got != 2 {
		t.Fatalf("expected shared counter vec, got %v", got)
	}
	if n := testutil.CollectAndCount(reg, "uamtta_repository_operations_total"); n != 2 {
		t.Fatalf("expected 2 series, got %d", n)
	}
}

func TestPrometheusRequiresLabel(t *testing.T) {
	if _, err := NewPrometheus(prometheus.NewRegistry(), ""); err == nil {
		t.Fatalf("expected error for empty repository label")
	}
}

func TestPrometheusConflictingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	clash := prometheus.NewCounter(prometheus.CounterOpts{Name: "uamtta_repository_operations_total", Help: "clash"})
	if err := reg.Register(clash); err != nil {
		t.Fatalf("register clash: %v", err)
	}
	if _, err := NewPrometheus(reg, "x"); err == nil {
		t.Fatalf("expected registration error")
	}
}
