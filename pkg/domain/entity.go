// Package domain defines the entity contract shared by repository
// implementations and the callers that persist through them.
package domain

// Entity is the capability set a type must expose to be stored in a
// Repository. Implementations are usually pointer types embedding Model.
//
// Clone must return storage independent of the receiver: mutating the clone
// must never be observable through the original, and vice versa.
type Entity[T any] interface {
	GetID() int
	SetID(id int)
	Clone() T
}

// Model carries the identity shared by every persisted entity. A zero (or
// negative) ID marks the entity as transient.
type Model struct {
	ID int `json:"id,omitempty" yaml:"id,omitempty"`
}

// GetID returns the entity id, zero when transient.
func (m *Model) GetID() int { return m.ID }

// SetID assigns the entity id.
func (m *Model) SetID(id int) { m.ID = id }

// IsTransient reports whether the entity has not been persisted yet.
func (m *Model) IsTransient() bool { return m.ID <= 0 }

// HasID reports whether id identifies a persisted entity.
func HasID(id int) bool { return id > 0 }
