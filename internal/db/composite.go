package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/soochol/weave/internal/weave"
)

// CreateComposite stores a new composite definition.
func (d *DB) CreateComposite(ctx context.Context, def *weave.CompositeDefinition) error {
	defJSON, err := json.Marshal(weave.WorkflowDefinition{Nodes: def.Nodes, Edges: def.Edges})
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}
	paramsJSON, err := json.Marshal(def.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	_, err = d.Pool.ExecContext(ctx,
		`INSERT INTO composites (name, description, definition, params, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description,
		   definition = EXCLUDED.definition, params = EXCLUDED.params, updated_at = EXCLUDED.updated_at`,
		def.Name, def.Description, defJSON, paramsJSON, def.CreatedAt, def.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert composite: %w", err)
	}
	return nil
}

// GetComposite retrieves a composite by name.
func (d *DB) GetComposite(ctx context.Context, name string) (*weave.CompositeDefinition, error) {
	var def weave.CompositeDefinition
	var defJSON, paramsJSON []byte

	err := d.Pool.QueryRowContext(ctx,
		`SELECT name, description, definition, params, created_at, updated_at
		 FROM composites WHERE name = $1`, name,
	).Scan(&def.Name, &def.Description, &defJSON, &paramsJSON, &def.CreatedAt, &def.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("composite not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get composite: %w", err)
	}

	if err := unmarshalGraph(defJSON, &def); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(paramsJSON, &def.Params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	return &def, nil
}

// ListComposites returns all composites.
func (d *DB) ListComposites(ctx context.Context) ([]*weave.CompositeDefinition, error) {
	rows, err := d.Pool.QueryContext(ctx,
		`SELECT name, description, definition, params, created_at, updated_at
		 FROM composites ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list composites: %w", err)
	}
	defer rows.Close()

	var result []*weave.CompositeDefinition
	for rows.Next() {
		var def weave.CompositeDefinition
		var defJSON, paramsJSON []byte
		if err := rows.Scan(&def.Name, &def.Description, &defJSON, &paramsJSON, &def.CreatedAt, &def.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan composite: %w", err)
		}
		if err := unmarshalGraph(defJSON, &def); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(paramsJSON, &def.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params: %w", err)
		}
		result = append(result, &def)
	}
	return result, rows.Err()
}

// DeleteComposite removes a composite by name.
func (d *DB) DeleteComposite(ctx context.Context, name string) error {
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM composites WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete composite: %w", err)
	}
	return nil
}

func unmarshalGraph(defJSON []byte, def *weave.CompositeDefinition) error {
	var wf weave.WorkflowDefinition
	if err := json.Unmarshal(defJSON, &wf); err != nil {
		return fmt.Errorf("unmarshal definition: %w", err)
	}
	def.Nodes = wf.Nodes
	def.Edges = wf.Edges
	return nil
}
