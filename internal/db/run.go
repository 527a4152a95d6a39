package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/soochol/weave/internal/weave"
)

// CreateRun stores a new run record.
func (d *DB) CreateRun(ctx context.Context, record *weave.RunRecord) error {
	inputsJSON, logsJSON, err := marshalRunPayload(record)
	if err != nil {
		return err
	}
	_, err = d.Pool.ExecContext(ctx,
		`INSERT INTO runs (id, kind, ref, status, inputs, logs, error, created_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.Kind, record.Ref, record.Status, inputsJSON, logsJSON,
		record.Error, record.CreatedAt, record.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// UpdateRun replaces a run record's mutable fields.
func (d *DB) UpdateRun(ctx context.Context, record *weave.RunRecord) error {
	inputsJSON, logsJSON, err := marshalRunPayload(record)
	if err != nil {
		return err
	}
	_, err = d.Pool.ExecContext(ctx,
		`UPDATE runs SET status = $2, inputs = $3, logs = $4, error = $5, completed_at = $6
		 WHERE id = $1`,
		record.ID, record.Status, inputsJSON, logsJSON, record.Error, record.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// GetRun retrieves a run record by ID.
func (d *DB) GetRun(ctx context.Context, id string) (*weave.RunRecord, error) {
	row := d.Pool.QueryRowContext(ctx,
		`SELECT id, kind, ref, status, inputs, logs, error, created_at, completed_at
		 FROM runs WHERE id = $1`, id,
	)
	record, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return record, nil
}

// ListRuns returns run records, newest first, capped at limit.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]*weave.RunRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := d.Pool.QueryContext(ctx,
		`SELECT id, kind, ref, status, inputs, logs, error, created_at, completed_at
		 FROM runs ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var result []*weave.RunRecord
	for rows.Next() {
		record, err := scanRun(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func marshalRunPayload(record *weave.RunRecord) (inputsJSON, logsJSON []byte, err error) {
	inputsJSON, err = json.Marshal(record.Inputs)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal inputs: %w", err)
	}
	logsJSON, err = json.Marshal(record.Logs)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal logs: %w", err)
	}
	return inputsJSON, logsJSON, nil
}

func scanRun(scan func(dest ...any) error) (*weave.RunRecord, error) {
	var record weave.RunRecord
	var inputsJSON, logsJSON []byte
	err := scan(&record.ID, &record.Kind, &record.Ref, &record.Status,
		&inputsJSON, &logsJSON, &record.Error, &record.CreatedAt, &record.CompletedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputsJSON, &record.Inputs); err != nil {
		return nil, fmt.Errorf("unmarshal inputs: %w", err)
	}
	if err := json.Unmarshal(logsJSON, &record.Logs); err != nil {
		return nil, fmt.Errorf("unmarshal logs: %w", err)
	}
	return &record, nil
}
