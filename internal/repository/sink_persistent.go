package repository

import (
	"context"
	"log/slog"

	"github.com/soochol/weave/internal/db"
	"github.com/soochol/weave/internal/weave"
)

// PersistentSinkRepository wraps MemorySinkRepository with PostgreSQL.
// Lookups hit the memory cache first; the cache is updated synchronously
// on every write so an unresolved context can never be a staleness bug.
type PersistentSinkRepository struct {
	mem *MemorySinkRepository
	db  *db.DB
}

func NewPersistentSinkRepository(mem *MemorySinkRepository, database *db.DB) *PersistentSinkRepository {
	return &PersistentSinkRepository{mem: mem, db: database}
}

func (r *PersistentSinkRepository) Create(ctx context.Context, entry *weave.SinkEntry) error {
	if err := r.mem.Create(ctx, entry); err != nil {
		return err
	}
	if err := r.db.CreateSink(ctx, entry); err != nil {
		slog.Warn("db create sink failed, in-memory only", "context_id", entry.ContextID, "err", err)
	}
	return nil
}

func (r *PersistentSinkRepository) Get(ctx context.Context, contextID string) (*weave.SinkEntry, error) {
	s, memErr := r.mem.Get(ctx, contextID)
	if memErr == nil {
		return s, nil
	}
	s, err := r.db.GetSink(ctx, contextID)
	if err != nil {
		return nil, memErr
	}
	_ = r.mem.Create(ctx, s)
	return s, nil
}

func (r *PersistentSinkRepository) List(ctx context.Context) ([]*weave.SinkEntry, error) {
	entries, err := r.db.ListSinks(ctx)
	if err == nil {
		return entries, nil
	}
	slog.Warn("db list sinks failed, falling back to in-memory", "err", err)
	return r.mem.List(ctx)
}

func (r *PersistentSinkRepository) Update(ctx context.Context, entry *weave.SinkEntry) error {
	if err := r.mem.Update(ctx, entry); err != nil {
		return err
	}
	if err := r.db.UpdateSink(ctx, entry); err != nil {
		slog.Warn("db update sink failed, in-memory only", "context_id", entry.ContextID, "err", err)
	}
	return nil
}

func (r *PersistentSinkRepository) Delete(ctx context.Context, contextID string) error {
	if err := r.mem.Delete(ctx, contextID); err != nil {
		return err
	}
	if err := r.db.DeleteSink(ctx, contextID); err != nil {
		slog.Warn("db delete sink failed", "context_id", contextID, "err", err)
	}
	return nil
}

// Warm loads every persisted sink entry into the memory cache at startup.
func (r *PersistentSinkRepository) Warm(ctx context.Context) error {
	entries, err := r.db.ListSinks(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		_ = r.mem.Create(ctx, e)
	}
	return nil
}
