package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "ledger.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSQLiteStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "theme", "rose"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	v, ok, err := s.Get(ctx, "theme")
	if err != nil || !ok || v != "rose" {
		t.Fatalf("unexpected get: v=%q ok=%v err=%v", v, ok, err)
	}

	if err := s.Set(ctx, "other", "x"); err != nil {
		t.Fatalf("set other: %v", err)
	}
	if err := s.Delete(ctx, "theme", "never-set"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "theme"); ok {
		t.Fatalf("theme should be deleted")
	}
	if v, ok, _ := s.Get(ctx, "other"); !ok || v != "x" {
		t.Fatalf("other key should survive delete")
	}
}

func TestSQLiteStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)
	if err := s.Set(ctx, "k", `[{"id":1}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	// migrations must be a no-op on an existing database
	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "k")
	if err != nil || !ok || v != `[{"id":1}]` {
		t.Fatalf("unexpected value after reopen: v=%q ok=%v err=%v", v, ok, err)
	}
}
