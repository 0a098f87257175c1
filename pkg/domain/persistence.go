package domain

// Repository is the keyed store contract. Every value crossing the boundary is
// a copy: implementations clone on write and on read.
type Repository[T Entity[T]] interface {
	// Persist stores a copy of item, allocating an id when item is transient,
	// and returns a separate copy of what was stored. An existing entry with
	// the same id is overwritten.
	Persist(item T) T
	// FindByID returns a copy of the entity stored under id.
	FindByID(id int) (T, bool)
	// GetByIDs returns copies for the ids present, in the order supplied.
	// Unknown ids are skipped.
	GetByIDs(ids []int) []T
	// GetAll returns copies of every stored entity.
	GetAll() []T
	// Take returns the first count entities. It fails with an
	// InvalidArgumentError when count is not positive or exceeds the number
	// of stored entities.
	Take(count int) ([]T, error)
	// Remove deletes the entry matching item's id. Transient or unknown ids
	// are ignored.
	Remove(item T)
}
