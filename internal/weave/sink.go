package weave

import "time"

// SinkEntry maps an operational context to a concrete data sink. Entries
// are durable and mutated only through the registry's admin surface.
type SinkEntry struct {
	ContextID string         `json:"context_id"`
	Name      string         `json:"name,omitempty"`
	SinkType  string         `json:"sink_type"`
	Endpoint  string         `json:"endpoint"`
	Params    map[string]any `json:"params,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
