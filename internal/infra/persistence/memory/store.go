// Package memory provides the in-memory implementation of the domain
// repository contract, used for tests and ephemeral environments.
package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"uamtta/internal/infra/metrics"
	"uamtta/internal/logging"
	"uamtta/pkg/domain"
)

// Compile-time contract assertion ensuring Repository adheres to the domain interface.
var _ domain.Repository[*domain.Record] = (*Repository[*domain.Record])(nil)

// Repository is a keyed in-memory store for entities of type T. Entities are
// cloned on every write and every read, so callers never share storage with
// the repository. Ids handed out to transient entities come from a counter
// that starts at 1 and only moves forward.
type Repository[T domain.Entity[T]] struct {
	mu      sync.RWMutex
	nextID  int
	items   map[int]T
	order   []int
	name    string
	logger  *zap.Logger
	metrics metrics.Recorder
}

// Option configures a Repository.
type Option func(*options)

type options struct {
	name    string
	logger  *zap.Logger
	metrics metrics.Recorder
}

// WithName sets the repository name used in logs and metric labels.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics sets the metrics recorder. A nil recorder disables metrics.
func WithMetrics(r metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

// NewRepository constructs an empty repository.
func NewRepository[T domain.Entity[T]](opts ...Option) *Repository[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		var zero T
		o.name = strings.TrimPrefix(fmt.Sprintf("%T", zero), "*")
	}
	if o.metrics == nil {
		o.metrics = metrics.Nop{}
	}
	return &Repository[T]{
		nextID:  1,
		items:   make(map[int]T),
		name:    o.name,
		logger:  logging.OrNop(o.logger).With(zap.String("repository", o.name)),
		metrics: o.metrics,
	}
}

// Name returns the repository name.
func (r *Repository[T]) Name() string { return r.name }

// allocateID must be called with the write lock held.
func (r *Repository[T]) allocateID() int {
	id := r.nextID
	r.nextID++
	return id
}

// store must be called with the write lock held. Overwriting keeps the
// entry's original position in the iteration order.
func (r *Repository[T]) store(item T) {
	id := item.GetID()
	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
	}
	r.items[id] = item
}

func (r *Repository[T]) observe(op string, start time.Time, success bool) {
	r.metrics.Observe(op, success, time.Since(start))
}

// Persist stores a copy of item and returns a separate copy of the stored
// entity. Transient items receive the next allocated id. item must not be nil.
func (r *Repository[T]) Persist(item T) T {
	start := time.Now()
	cp := item.Clone()

	r.mu.Lock()
	allocated := !domain.HasID(cp.GetID())
	if allocated {
		cp.SetID(r.allocateID())
	}
	id := cp.GetID()
	_, overwritten := r.items[id]
	r.store(cp)
	size := len(r.items)
	r.mu.Unlock()

	if allocated && overwritten {
		// An explicit id supplied earlier sits ahead of the allocator.
		r.logger.Warn("allocated id replaced an existing entity", zap.Int("id", id))
	}
	r.logger.Debug("entity persisted", zap.Int("id", id), zap.Bool("allocated", allocated), zap.Bool("overwritten", overwritten))
	r.metrics.SetSize(size)
	r.observe(metrics.OpPersist, start, true)
	return cp.Clone()
}

// FindByID retrieves a copy of the entity stored under id.
func (r *Repository[T]) FindByID(id int) (T, bool) {
	start := time.Now()
	r.mu.RLock()
	item, ok := r.items[id]
	r.mu.RUnlock()
	defer r.observe(metrics.OpFindByID, start, true)
	if !ok {
		var zero T
		return zero, false
	}
	return item.Clone(), true
}

// GetByIDs returns copies of the entities stored under ids, in the order the
// ids are supplied. Unknown ids are skipped and duplicates repeat.
func (r *Repository[T]) GetByIDs(ids []int) []T {
	start := time.Now()
	defer r.observe(metrics.OpGetByIDs, start, true)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, item.Clone())
		}
	}
	return out
}

// GetAll returns copies of every stored entity in iteration order.
func (r *Repository[T]) GetAll() []T {
	start := time.Now()
	defer r.observe(metrics.OpGetAll, start, true)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cloneFirst(len(r.order))
}

// Take returns copies of the first count entities in iteration order. A
// non-positive count, or one larger than the number of stored entities,
// yields a domain.InvalidArgumentError.
func (r *Repository[T]) Take(count int) ([]T, error) {
	start := time.Now()
	r.mu.RLock()
	available := len(r.order)
	if count <= 0 || count > available {
		r.mu.RUnlock()
		r.observe(metrics.OpTake, start, false)
		return nil, domain.InvalidArgumentError{Op: metrics.OpTake, Requested: count, Available: available}
	}
	out := r.cloneFirst(count)
	r.mu.RUnlock()
	r.observe(metrics.OpTake, start, true)
	return out, nil
}

// cloneFirst must be called with at least the read lock held.
func (r *Repository[T]) cloneFirst(n int) []T {
	out := make([]T, 0, n)
	for _, id := range r.order[:n] {
		out = append(out, r.items[id].Clone())
	}
	return out
}

// Remove deletes the entity matching item's id. Transient items and unknown
// ids are ignored. Removed ids are never handed out again by the allocator.
func (r *Repository[T]) Remove(item T) {
	start := time.Now()
	defer r.observe(metrics.OpRemove, start, true)
	id := item.GetID()
	if !domain.HasID(id) {
		return
	}

	r.mu.Lock()
	_, ok := r.items[id]
	if ok {
		delete(r.items, id)
		r.order = removeID(r.order, id)
	}
	size := len(r.items)
	r.mu.Unlock()

	if ok {
		r.logger.Debug("entity removed", zap.Int("id", id))
		r.metrics.SetSize(size)
	}
}

// Count returns the number of stored entities.
func (r *Repository[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func removeID(order []int, id int) []int {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
