package repository

import (
	"context"
	"errors"
	"fmt"

	memstore "github.com/soochol/weave/internal/repository/memory"
	"github.com/soochol/weave/internal/weave"
)

// MemorySinkRepository is a thread-safe in-memory sink registry store.
type MemorySinkRepository struct {
	store *memstore.Store[*weave.SinkEntry]
}

func NewMemorySinkRepository() *MemorySinkRepository {
	return &MemorySinkRepository{
		store: memstore.New(func(s *weave.SinkEntry) string { return s.ContextID }),
	}
}

func (r *MemorySinkRepository) Create(ctx context.Context, entry *weave.SinkEntry) error {
	if r.store.Has(ctx, entry.ContextID) {
		return fmt.Errorf("sink context %q: %w", entry.ContextID, ErrExists)
	}
	return r.store.Set(ctx, entry)
}

func (r *MemorySinkRepository) Get(ctx context.Context, contextID string) (*weave.SinkEntry, error) {
	s, err := r.store.Get(ctx, contextID)
	if errors.Is(err, memstore.ErrNotFound) {
		return nil, fmt.Errorf("sink context %q: %w", contextID, ErrNotFound)
	}
	return s, err
}

func (r *MemorySinkRepository) List(ctx context.Context) ([]*weave.SinkEntry, error) {
	return r.store.All(ctx)
}

func (r *MemorySinkRepository) Update(ctx context.Context, entry *weave.SinkEntry) error {
	if !r.store.Has(ctx, entry.ContextID) {
		return fmt.Errorf("sink context %q: %w", entry.ContextID, ErrNotFound)
	}
	return r.store.Set(ctx, entry)
}

func (r *MemorySinkRepository) Delete(ctx context.Context, contextID string) error {
	err := r.store.Delete(ctx, contextID)
	if errors.Is(err, memstore.ErrNotFound) {
		return fmt.Errorf("sink context %q: %w", contextID, ErrNotFound)
	}
	return err
}
