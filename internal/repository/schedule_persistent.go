package repository

import (
	"context"
	"log/slog"

	"github.com/soochol/weave/internal/db"
	"github.com/soochol/weave/internal/weave"
)

// PersistentScheduleRepository wraps MemoryScheduleRepository with PostgreSQL.
type PersistentScheduleRepository struct {
	mem *MemoryScheduleRepository
	db  *db.DB
}

func NewPersistentScheduleRepository(mem *MemoryScheduleRepository, database *db.DB) *PersistentScheduleRepository {
	return &PersistentScheduleRepository{mem: mem, db: database}
}

func (r *PersistentScheduleRepository) Create(ctx context.Context, sched *weave.ScheduleDefinition) error {
	if err := r.mem.Create(ctx, sched); err != nil {
		return err
	}
	if err := r.db.CreateSchedule(ctx, sched); err != nil {
		slog.Warn("db create schedule failed, in-memory only", "schedule_id", sched.ID, "err", err)
	}
	return nil
}

func (r *PersistentScheduleRepository) Get(ctx context.Context, id string) (*weave.ScheduleDefinition, error) {
	s, memErr := r.mem.Get(ctx, id)
	if memErr == nil {
		return s, nil
	}
	s, err := r.db.GetSchedule(ctx, id)
	if err != nil {
		return nil, memErr
	}
	_ = r.mem.Create(ctx, s)
	return s, nil
}

func (r *PersistentScheduleRepository) List(ctx context.Context) ([]*weave.ScheduleDefinition, error) {
	scheds, err := r.db.ListSchedules(ctx)
	if err == nil {
		return scheds, nil
	}
	slog.Warn("db list schedules failed, falling back to in-memory", "err", err)
	return r.mem.List(ctx)
}

func (r *PersistentScheduleRepository) Delete(ctx context.Context, id string) error {
	if err := r.mem.Delete(ctx, id); err != nil {
		return err
	}
	if err := r.db.DeleteSchedule(ctx, id); err != nil {
		slog.Warn("db delete schedule failed", "schedule_id", id, "err", err)
	}
	return nil
}
