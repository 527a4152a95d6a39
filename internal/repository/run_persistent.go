package repository

import (
	"context"
	"log/slog"

	"github.com/soochol/weave/internal/db"
	"github.com/soochol/weave/internal/weave"
)

// PersistentRunRepository wraps MemoryRunRepository with PostgreSQL.
type PersistentRunRepository struct {
	mem *MemoryRunRepository
	db  *db.DB
}

func NewPersistentRunRepository(mem *MemoryRunRepository, database *db.DB) *PersistentRunRepository {
	return &PersistentRunRepository{mem: mem, db: database}
}

func (r *PersistentRunRepository) Create(ctx context.Context, record *weave.RunRecord) error {
	if err := r.mem.Create(ctx, record); err != nil {
		return err
	}
	if err := r.db.CreateRun(ctx, record); err != nil {
		slog.Warn("db create run failed, in-memory only", "run_id", record.ID, "err", err)
	}
	return nil
}

func (r *PersistentRunRepository) Get(ctx context.Context, id string) (*weave.RunRecord, error) {
	rec, memErr := r.mem.Get(ctx, id)
	if memErr == nil {
		return rec, nil
	}
	rec, err := r.db.GetRun(ctx, id)
	if err != nil {
		return nil, memErr
	}
	_ = r.mem.Create(ctx, rec)
	return rec, nil
}

func (r *PersistentRunRepository) List(ctx context.Context) ([]*weave.RunRecord, error) {
	records, err := r.db.ListRuns(ctx, 0)
	if err == nil {
		return records, nil
	}
	slog.Warn("db list runs failed, falling back to in-memory", "err", err)
	return r.mem.List(ctx)
}

func (r *PersistentRunRepository) Update(ctx context.Context, record *weave.RunRecord) error {
	if err := r.mem.Update(ctx, record); err != nil {
		return err
	}
	if err := r.db.UpdateRun(ctx, record); err != nil {
		slog.Warn("db update run failed, in-memory only", "run_id", record.ID, "err", err)
	}
	return nil
}
