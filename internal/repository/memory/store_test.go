package memory

import (
	"context"
	"errors"
	"testing"
)

type widget struct {
	ID   string
	Size int
}

func newStore() *Store[widget] {
	return New(func(w widget) string { return w.ID })
}

func TestStoreSetGet(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	if err := s.Set(ctx, widget{ID: "a", Size: 1}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Size != 1 {
		t.Fatalf("unexpected value: %+v", got)
	}

	// Replace.
	if err := s.Set(ctx, widget{ID: "a", Size: 2}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ = s.Get(ctx, "a")
	if got.Size != 2 {
		t.Fatalf("expected replacement, got %+v", got)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := newStore()
	if _, err := s.Get(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	s.Set(ctx, widget{ID: "a"})
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Has(ctx, "a") {
		t.Fatal("expected key gone")
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreAll(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	s.Set(ctx, widget{ID: "a"})
	s.Set(ctx, widget{ID: "b"})
	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 values, got %d", len(all))
	}
}
