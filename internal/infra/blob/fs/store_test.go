package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"uamtta/internal/blob/core"
)

func TestStoreLifecycle(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	if store.Driver() != core.DriverFilesystem || store.Root() != root {
		t.Fatalf("unexpected driver/root %s %s", store.Driver(), store.Root())
	}
	info, err := store.Put(ctx, "seed/records.json", bytes.NewReader([]byte(`[{"kind":"a"}]`)), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"origin": "test"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 14 || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := os.Stat(filepath.Join(root, "seed", "records.json"+metaSuffix)); err != nil {
		t.Fatalf("expected sidecar: %v", err)
	}

	head, err := store.Head(ctx, "seed/records.json")
	if err != nil || head.ContentType != "application/json" || head.Metadata["origin"] != "test" {
		t.Fatalf("head: %v %+v", err, head)
	}
	_, rc, err := store.Get(ctx, "seed/records.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `[{"kind":"a"}]` {
		t.Fatalf("unexpected body %q", body)
	}
	if _, err := store.Put(ctx, "seed/records.json", bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	list, err := store.List(ctx, "seed/")
	if err != nil || len(list) != 1 || list[0].Key != "seed/records.json" {
		t.Fatalf("list excludes sidecars: %v %+v", err, list)
	}
	if ok, err := store.Delete(ctx, "seed/records.json"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if _, err := store.Head(ctx, "seed/records.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if ok, err := store.Delete(ctx, "seed/records.json"); err != nil || ok {
		t.Fatalf("second delete: %v %v", ok, err)
	}
}

func TestStoreRejectsUnsafeKeys(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", "  ", "../escape", "/abs", "x" + metaSuffix} {
		if _, err := store.Put(context.Background(), key, bytes.NewReader(nil), core.PutOptions{}); err == nil {
			t.Fatalf("expected rejection for key %q", key)
		}
	}
}

func TestStoreMissingGet(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, _, err := store.Get(context.Background(), "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
