package repository

import (
	"context"
	"log/slog"

	"github.com/soochol/weave/internal/db"
	"github.com/soochol/weave/internal/weave"
)

// PersistentCompositeRepository wraps MemoryCompositeRepository with
// PostgreSQL. Writes go through the memory cache synchronously so readers
// always observe their own writes; the database is best-effort durable.
type PersistentCompositeRepository struct {
	mem *MemoryCompositeRepository
	db  *db.DB
}

func NewPersistentCompositeRepository(mem *MemoryCompositeRepository, database *db.DB) *PersistentCompositeRepository {
	return &PersistentCompositeRepository{mem: mem, db: database}
}

func (r *PersistentCompositeRepository) Create(ctx context.Context, def *weave.CompositeDefinition) error {
	if err := r.mem.Create(ctx, def); err != nil {
		return err
	}
	if err := r.db.CreateComposite(ctx, def); err != nil {
		slog.Warn("db create composite failed, in-memory only", "name", def.Name, "err", err)
	}
	return nil
}

func (r *PersistentCompositeRepository) Get(ctx context.Context, name string) (*weave.CompositeDefinition, error) {
	c, memErr := r.mem.Get(ctx, name)
	if memErr == nil {
		return c, nil
	}
	c, err := r.db.GetComposite(ctx, name)
	if err != nil {
		// Keep the sentinel from the cache miss so callers can
		// distinguish absence from a storage fault.
		return nil, memErr
	}
	_ = r.mem.Create(ctx, c)
	return c, nil
}

func (r *PersistentCompositeRepository) List(ctx context.Context) ([]*weave.CompositeDefinition, error) {
	defs, err := r.db.ListComposites(ctx)
	if err == nil {
		return defs, nil
	}
	slog.Warn("db list composites failed, falling back to in-memory", "err", err)
	return r.mem.List(ctx)
}

func (r *PersistentCompositeRepository) Delete(ctx context.Context, name string) error {
	if err := r.mem.Delete(ctx, name); err != nil {
		return err
	}
	if err := r.db.DeleteComposite(ctx, name); err != nil {
		slog.Warn("db delete composite failed", "name", name, "err", err)
	}
	return nil
}

// Warm loads every persisted composite into the memory cache at startup.
func (r *PersistentCompositeRepository) Warm(ctx context.Context) error {
	defs, err := r.db.ListComposites(ctx)
	if err != nil {
		return err
	}
	for _, def := range defs {
		_ = r.mem.Create(ctx, def)
	}
	return nil
}
