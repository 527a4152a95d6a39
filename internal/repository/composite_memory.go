package repository

import (
	"context"
	"errors"
	"fmt"

	memstore "github.com/soochol/weave/internal/repository/memory"
	"github.com/soochol/weave/internal/weave"
)

// MemoryCompositeRepository is a thread-safe in-memory composite store.
type MemoryCompositeRepository struct {
	store *memstore.Store[*weave.CompositeDefinition]
}

func NewMemoryCompositeRepository() *MemoryCompositeRepository {
	return &MemoryCompositeRepository{
		store: memstore.New(func(c *weave.CompositeDefinition) string { return c.Name }),
	}
}

func (r *MemoryCompositeRepository) Create(ctx context.Context, def *weave.CompositeDefinition) error {
	if r.store.Has(ctx, def.Name) {
		return fmt.Errorf("composite %q: %w", def.Name, ErrExists)
	}
	return r.store.Set(ctx, def)
}

func (r *MemoryCompositeRepository) Get(ctx context.Context, name string) (*weave.CompositeDefinition, error) {
	c, err := r.store.Get(ctx, name)
	if errors.Is(err, memstore.ErrNotFound) {
		return nil, fmt.Errorf("composite %q: %w", name, ErrNotFound)
	}
	return c, err
}

func (r *MemoryCompositeRepository) List(ctx context.Context) ([]*weave.CompositeDefinition, error) {
	return r.store.All(ctx)
}

func (r *MemoryCompositeRepository) Delete(ctx context.Context, name string) error {
	err := r.store.Delete(ctx, name)
	if errors.Is(err, memstore.ErrNotFound) {
		return fmt.Errorf("composite %q: %w", name, ErrNotFound)
	}
	return err
}
