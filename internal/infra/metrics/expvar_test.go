package metrics

import (
	"expvar"
	"testing"
	"time"
)

func TestExpvarRecorderAggregates(t *testing.T) {
	rec := NewExpvar("")
	if expvar.Get(rec.Name()) == nil {
		t.Fatalf("expected recorder published as %s", rec.Name())
	}
	rec.Observe(OpGetAll, true, 2*time.Millisecond)
	rec.Observe(OpGetAll, false, time.Millisecond)
	rec.Observe("", true, time.Second)
	rec.SetSize(3)

	snap := rec.Snapshot()
	if snap.DurationsMS[OpGetAll] != 3 {
		t.Fatalf("expected 3ms total, got %v", snap.DurationsMS[OpGetAll])
	}
	if snap.Results[OpGetAll]["success"] != 1 || snap.Results[OpGetAll]["error"] != 1 {
		t.Fatalf("unexpected results %v", snap.Results)
	}
	if snap.Entities != 3 {
		t.Fatalf("expected 3 entities, got %d", snap.Entities)
	}

	snap.Results[OpGetAll]["success"] = 100
	if rec.Snapshot().Results[OpGetAll]["success"] != 1 {
		t.Fatalf("snapshot must be a copy")
	}
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.Observe(OpPersist, true, time.Second)
	r.SetSize(1)
}
