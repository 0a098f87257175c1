package metrics

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var expvarSeq uint64

// Expvar publishes aggregate timing and result counters via expvar for
// deployments that prefer process-local metrics. Durations are totals in
// milliseconds per operation.
type Expvar struct {
	name      string
	mu        sync.Mutex
	durations map[string]float64
	results   map[string]map[string]int64
	size      int
}

// ExpvarSnapshot captures a read-only view of the recorded metrics.
type ExpvarSnapshot struct {
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Results     map[string]map[string]int64 `json:"results_total"`
	Entities    int                         `json:"entities"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvar constructs an expvar-backed recorder and publishes it under name.
// When name is empty a unique identifier is generated.
func NewExpvar(name string) *Expvar {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("uamtta_repository_metrics_%d", id)
	}
	rec := &Expvar{
		name:      name,
		durations: make(map[string]float64),
		results:   make(map[string]map[string]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name.
func (r *Expvar) Name() string {
	return r.name
}

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *Expvar) Snapshot() ExpvarSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	durations := make(map[string]float64, len(r.durations))
	for op, total := range r.durations {
		durations[op] = total
	}

	results := make(map[string]map[string]int64, len(r.results))
	for op, statusCounts := range r.results {
		cpy := make(map[string]int64, len(statusCounts))
		for status, count := range statusCounts {
			cpy[status] = count
		}
		results[op] = cpy
	}

	return ExpvarSnapshot{
		DurationsMS: durations,
		Results:     results,
		Entities:    r.size,
		RecordedAt:  time.Now().UTC(),
	}
}

// Observe implements Recorder.
func (r *Expvar) Observe(operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	ms := float64(duration) / float64(time.Millisecond)
	status := statusLabel(success)

	r.mu.Lock()
	r.durations[operation] += ms
	if _, ok := r.results[operation]; !ok {
		r.results[operation] = make(map[string]int64, 2)
	}
	r.results[operation][status]++
	r.mu.Unlock()
}

// SetSize implements Recorder.
func (r *Expvar) SetSize(n int) {
	r.mu.Lock()
	r.size = n
	r.mu.Unlock()
}
