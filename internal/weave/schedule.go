package weave

import "time"

// ScheduleDefinition binds a cron expression to a registered composite so
// it runs unattended.
type ScheduleDefinition struct {
	ID        string         `json:"id"`
	Composite string         `json:"composite"`
	Cron      string         `json:"cron"`
	Inputs    map[string]any `json:"inputs,omitempty"`
	Enabled   bool           `json:"enabled"`
	CreatedAt time.Time      `json:"created_at"`
}
