// Package repository defines storage interfaces for durable entities so
// callers don't need to know whether storage is in-memory, PostgreSQL, or
// a mix.
package repository

import (
	"context"
	"errors"

	"github.com/soochol/weave/internal/weave"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrExists is returned when creating an entity whose key is taken.
var ErrExists = errors.New("already exists")

// CompositeRepository stores registered composite agents, keyed by name.
type CompositeRepository interface {
	Create(ctx context.Context, def *weave.CompositeDefinition) error
	Get(ctx context.Context, name string) (*weave.CompositeDefinition, error)
	List(ctx context.Context) ([]*weave.CompositeDefinition, error)
	Delete(ctx context.Context, name string) error
}

// SinkRepository stores context-to-sink mappings, keyed by context ID.
type SinkRepository interface {
	Create(ctx context.Context, entry *weave.SinkEntry) error
	Get(ctx context.Context, contextID string) (*weave.SinkEntry, error)
	List(ctx context.Context) ([]*weave.SinkEntry, error)
	Update(ctx context.Context, entry *weave.SinkEntry) error
	Delete(ctx context.Context, contextID string) error
}

// RunRepository stores run history records, keyed by run ID.
type RunRepository interface {
	Create(ctx context.Context, record *weave.RunRecord) error
	Get(ctx context.Context, id string) (*weave.RunRecord, error)
	List(ctx context.Context) ([]*weave.RunRecord, error)
	Update(ctx context.Context, record *weave.RunRecord) error
}

// ScheduleRepository stores cron schedules, keyed by schedule ID.
type ScheduleRepository interface {
	Create(ctx context.Context, sched *weave.ScheduleDefinition) error
	Get(ctx context.Context, id string) (*weave.ScheduleDefinition, error)
	List(ctx context.Context) ([]*weave.ScheduleDefinition, error)
	Delete(ctx context.Context, id string) error
}
