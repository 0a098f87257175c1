package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus publishes repository metrics through client_golang collectors.
// Several recorders may share one registry; each is distinguished by its
// repository label.
type Prometheus struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	size       prometheus.Gauge
	repository string
}

// NewPrometheus registers (or reuses) the repository collectors on reg and
// returns a recorder labelled with repository.
func NewPrometheus(reg prometheus.Registerer, repository string) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if repository == "" {
		return nil, fmt.Errorf("prometheus recorder: repository label required")
	}
	operations, err := registerOrReuse(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uamtta",
			Subsystem: "repository",
			Name:      "operations_total",
			Help:      "Total repository operations by outcome.",
		},
		[]string{"repository", "operation", "status"},
	))
	if err != nil {
		return nil, err
	}
	durations, err := registerOrReuse(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "uamtta",
			Subsystem: "repository",
			Name:      "operation_duration_seconds",
			Help:      "Repository operation latency in seconds.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
		[]string{"repository", "operation"},
	))
	if err != nil {
		return nil, err
	}
	size, err := registerOrReuse(reg, prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "uamtta",
			Subsystem: "repository",
			Name:      "entities",
			Help:      "Number of entities currently stored.",
		},
		[]string{"repository"},
	))
	if err != nil {
		return nil, err
	}
	return &Prometheus{
		operations: operations,
		durations:  durations,
		size:       size.WithLabelValues(repository),
		repository: repository,
	}, nil
}

// Observe implements Recorder.
func (p *Prometheus) Observe(operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	p.operations.WithLabelValues(p.repository, operation, statusLabel(success)).Inc()
	p.durations.WithLabelValues(p.repository, operation).Observe(duration.Seconds())
}

// SetSize implements Recorder.
func (p *Prometheus) SetSize(n int) {
	p.size.Set(float64(n))
}

// Operations exposes the operations counter for inspection in tests and
// reporting.
func (p *Prometheus) Operations() *prometheus.CounterVec { return p.operations }

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}
