// Package metrics records repository operation outcomes. Recorders are
// optional: repositories fall back to Nop when none is configured.
package metrics

import "time"

// Operation names reported by repositories.
const (
	OpPersist  = "persist"
	OpFindByID = "find_by_id"
	OpGetByIDs = "get_by_ids"
	OpGetAll   = "get_all"
	OpTake     = "take"
	OpRemove   = "remove"
	OpImport   = "import"
)

// Recorder receives one observation per repository operation and the store
// size after every mutation.
type Recorder interface {
	Observe(operation string, success bool, duration time.Duration)
	SetSize(n int)
}

// Nop discards all observations.
type Nop struct{}

// Observe implements Recorder.
func (Nop) Observe(string, bool, time.Duration) {}

// SetSize implements Recorder.
func (Nop) SetSize(int) {}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
