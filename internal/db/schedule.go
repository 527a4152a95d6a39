package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/soochol/weave/internal/weave"
)

// CreateSchedule stores a new schedule.
func (d *DB) CreateSchedule(ctx context.Context, sched *weave.ScheduleDefinition) error {
	inputsJSON, err := json.Marshal(sched.Inputs)
	if err != nil {
		return fmt.Errorf("marshal inputs: %w", err)
	}
	_, err = d.Pool.ExecContext(ctx,
		`INSERT INTO schedules (id, composite, cron, inputs, enabled, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sched.ID, sched.Composite, sched.Cron, inputsJSON, sched.Enabled, sched.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

// GetSchedule retrieves a schedule by ID.
func (d *DB) GetSchedule(ctx context.Context, id string) (*weave.ScheduleDefinition, error) {
	var sched weave.ScheduleDefinition
	var inputsJSON []byte

	err := d.Pool.QueryRowContext(ctx,
		`SELECT id, composite, cron, inputs, enabled, created_at FROM schedules WHERE id = $1`, id,
	).Scan(&sched.ID, &sched.Composite, &sched.Cron, &inputsJSON, &sched.Enabled, &sched.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("schedule not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	if err := json.Unmarshal(inputsJSON, &sched.Inputs); err != nil {
		return nil, fmt.Errorf("unmarshal inputs: %w", err)
	}
	return &sched, nil
}

// ListSchedules returns all schedules.
func (d *DB) ListSchedules(ctx context.Context) ([]*weave.ScheduleDefinition, error) {
	rows, err := d.Pool.QueryContext(ctx,
		`SELECT id, composite, cron, inputs, enabled, created_at FROM schedules ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var result []*weave.ScheduleDefinition
	for rows.Next() {
		var sched weave.ScheduleDefinition
		var inputsJSON []byte
		if err := rows.Scan(&sched.ID, &sched.Composite, &sched.Cron, &inputsJSON, &sched.Enabled, &sched.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		if err := json.Unmarshal(inputsJSON, &sched.Inputs); err != nil {
			return nil, fmt.Errorf("unmarshal inputs: %w", err)
		}
		result = append(result, &sched)
	}
	return result, rows.Err()
}

// DeleteSchedule removes a schedule.
func (d *DB) DeleteSchedule(ctx context.Context, id string) error {
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
