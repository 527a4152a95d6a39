package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/soochol/weave/internal/weave"
)

// CreateSink stores a new sink registry entry.
func (d *DB) CreateSink(ctx context.Context, entry *weave.SinkEntry) error {
	paramsJSON, err := json.Marshal(entry.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	_, err = d.Pool.ExecContext(ctx,
		`INSERT INTO sinks (context_id, name, sink_type, endpoint, params, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (context_id) DO UPDATE SET name = EXCLUDED.name, sink_type = EXCLUDED.sink_type,
		   endpoint = EXCLUDED.endpoint, params = EXCLUDED.params, updated_at = EXCLUDED.updated_at`,
		entry.ContextID, entry.Name, entry.SinkType, entry.Endpoint, paramsJSON, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sink: %w", err)
	}
	return nil
}

// GetSink retrieves a sink entry by context ID.
func (d *DB) GetSink(ctx context.Context, contextID string) (*weave.SinkEntry, error) {
	var entry weave.SinkEntry
	var paramsJSON []byte

	err := d.Pool.QueryRowContext(ctx,
		`SELECT context_id, name, sink_type, endpoint, params, created_at, updated_at
		 FROM sinks WHERE context_id = $1`, contextID,
	).Scan(&entry.ContextID, &entry.Name, &entry.SinkType, &entry.Endpoint, &paramsJSON, &entry.CreatedAt, &entry.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sink not found: %s", contextID)
	}
	if err != nil {
		return nil, fmt.Errorf("get sink: %w", err)
	}

	if err := json.Unmarshal(paramsJSON, &entry.Params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	return &entry, nil
}

// ListSinks returns all sink entries.
func (d *DB) ListSinks(ctx context.Context) ([]*weave.SinkEntry, error) {
	rows, err := d.Pool.QueryContext(ctx,
		`SELECT context_id, name, sink_type, endpoint, params, created_at, updated_at
		 FROM sinks ORDER BY context_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sinks: %w", err)
	}
	defer rows.Close()

	var result []*weave.SinkEntry
	for rows.Next() {
		var entry weave.SinkEntry
		var paramsJSON []byte
		if err := rows.Scan(&entry.ContextID, &entry.Name, &entry.SinkType, &entry.Endpoint, &paramsJSON, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sink: %w", err)
		}
		if err := json.Unmarshal(paramsJSON, &entry.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params: %w", err)
		}
		result = append(result, &entry)
	}
	return result, rows.Err()
}

// UpdateSink updates an existing sink entry.
func (d *DB) UpdateSink(ctx context.Context, entry *weave.SinkEntry) error {
	paramsJSON, err := json.Marshal(entry.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	_, err = d.Pool.ExecContext(ctx,
		`UPDATE sinks SET name = $2, sink_type = $3, endpoint = $4, params = $5, updated_at = $6
		 WHERE context_id = $1`,
		entry.ContextID, entry.Name, entry.SinkType, entry.Endpoint, paramsJSON, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sink: %w", err)
	}
	return nil
}

// DeleteSink removes a sink entry.
func (d *DB) DeleteSink(ctx context.Context, contextID string) error {
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM sinks WHERE context_id = $1`, contextID)
	if err != nil {
		return fmt.Errorf("delete sink: %w", err)
	}
	return nil
}
