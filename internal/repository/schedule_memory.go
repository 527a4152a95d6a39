package repository

import (
	"context"
	"errors"
	"fmt"

	memstore "github.com/soochol/weave/internal/repository/memory"
	"github.com/soochol/weave/internal/weave"
)

// MemoryScheduleRepository is a thread-safe in-memory schedule store.
type MemoryScheduleRepository struct {
	store *memstore.Store[*weave.ScheduleDefinition]
}

func NewMemoryScheduleRepository() *MemoryScheduleRepository {
	return &MemoryScheduleRepository{
		store: memstore.New(func(s *weave.ScheduleDefinition) string { return s.ID }),
	}
}

func (r *MemoryScheduleRepository) Create(ctx context.Context, sched *weave.ScheduleDefinition) error {
	if r.store.Has(ctx, sched.ID) {
		return fmt.Errorf("schedule %q: %w", sched.ID, ErrExists)
	}
	return r.store.Set(ctx, sched)
}

func (r *MemoryScheduleRepository) Get(ctx context.Context, id string) (*weave.ScheduleDefinition, error) {
	s, err := r.store.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		return nil, fmt.Errorf("schedule %q: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *MemoryScheduleRepository) List(ctx context.Context) ([]*weave.ScheduleDefinition, error) {
	return r.store.All(ctx)
}

func (r *MemoryScheduleRepository) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		return fmt.Errorf("schedule %q: %w", id, ErrNotFound)
	}
	return err
}
