package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	memstore "github.com/soochol/weave/internal/repository/memory"
	"github.com/soochol/weave/internal/weave"
)

// MemoryRunRepository is a thread-safe in-memory run history store.
type MemoryRunRepository struct {
	store *memstore.Store[*weave.RunRecord]
}

func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{
		store: memstore.New(func(r *weave.RunRecord) string { return r.ID }),
	}
}

func (r *MemoryRunRepository) Create(ctx context.Context, record *weave.RunRecord) error {
	if r.store.Has(ctx, record.ID) {
		return fmt.Errorf("run %q: %w", record.ID, ErrExists)
	}
	return r.store.Set(ctx, record)
}

func (r *MemoryRunRepository) Get(ctx context.Context, id string) (*weave.RunRecord, error) {
	rec, err := r.store.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		return nil, fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	return rec, err
}

func (r *MemoryRunRepository) List(ctx context.Context) ([]*weave.RunRecord, error) {
	records, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (r *MemoryRunRepository) Update(ctx context.Context, record *weave.RunRecord) error {
	if !r.store.Has(ctx, record.ID) {
		return fmt.Errorf("run %q: %w", record.ID, ErrNotFound)
	}
	return r.store.Set(ctx, record)
}
