package memory

import (
	"time"

	"go.uber.org/zap"

	"uamtta/internal/infra/metrics"
	"uamtta/pkg/domain"
)

// Snapshot captures a point-in-time clone of the repository state.
type Snapshot[T any] struct {
	NextID   int `json:"next_id,omitempty" yaml:"next_id,omitempty"`
	Entities []T `json:"records" yaml:"records"`
}

// Export clones the current repository state. Entities appear in iteration
// order.
func (r *Repository[T]) Export() Snapshot[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot[T]{
		NextID:   r.nextID,
		Entities: r.cloneFirst(len(r.order)),
	}
}

// Import replaces the repository state with copies of the snapshot entities.
// Unlike Persist, Import reconciles the allocator against explicit ids: the
// next allocated id is past both snapshot.NextID and the highest imported id.
// Transient snapshot entries are allocated ids after that reconciliation.
func (r *Repository[T]) Import(snapshot Snapshot[T]) {
	start := time.Now()
	defer r.observe(metrics.OpImport, start, true)

	next := snapshot.NextID
	if next < 1 {
		next = 1
	}
	for _, e := range snapshot.Entities {
		if id := e.GetID(); domain.HasID(id) && id >= next {
			next = id + 1
		}
	}

	items := make(map[int]T, len(snapshot.Entities))
	order := make([]int, 0, len(snapshot.Entities))
	allocated := 0
	for _, e := range snapshot.Entities {
		cp := e.Clone()
		if !domain.HasID(cp.GetID()) {
			cp.SetID(next)
			next++
			allocated++
		}
		id := cp.GetID()
		if _, exists := items[id]; !exists {
			order = append(order, id)
		}
		items[id] = cp
	}

	r.mu.Lock()
	r.items = items
	r.order = order
	r.nextID = next
	r.mu.Unlock()

	r.logger.Info("repository state imported",
		zap.Int("entities", len(items)),
		zap.Int("allocated", allocated),
		zap.Int("next_id", next),
	)
	r.metrics.SetSize(len(items))
}
