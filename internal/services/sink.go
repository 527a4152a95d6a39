package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/weave"
)

// ErrContextNotFound is the first-class outcome of resolving an unknown
// context. Callers must halt before invoking any agent.
var ErrContextNotFound = errors.New("unrecognized context")

// SinkService manages the context-to-sink registry.
type SinkService struct {
	repo repository.SinkRepository
}

// NewSinkService creates a SinkService.
func NewSinkService(repo repository.SinkRepository) *SinkService {
	return &SinkService{repo: repo}
}

// Lookup resolves a context ID to its sink entry. A pure read: two calls
// with no intervening write return identical results.
func (s *SinkService) Lookup(ctx context.Context, contextID string) (*weave.SinkEntry, error) {
	entry, err := s.repo.Get(ctx, contextID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrContextNotFound, contextID)
	}
	return entry, nil
}

// Create registers a new sink entry.
func (s *SinkService) Create(ctx context.Context, entry *weave.SinkEntry) error {
	entry.ContextID = strings.TrimSpace(entry.ContextID)
	if entry.ContextID == "" {
		return fmt.Errorf("context_id is required")
	}
	if entry.SinkType == "" || entry.Endpoint == "" {
		return fmt.Errorf("sink_type and endpoint are required")
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return s.repo.Create(ctx, entry)
}

// Update replaces an existing sink entry.
func (s *SinkService) Update(ctx context.Context, entry *weave.SinkEntry) error {
	entry.UpdatedAt = time.Now()
	return s.repo.Update(ctx, entry)
}

// Delete removes a sink entry.
func (s *SinkService) Delete(ctx context.Context, contextID string) error {
	return s.repo.Delete(ctx, contextID)
}

// List returns all sink entries.
func (s *SinkService) List(ctx context.Context) ([]*weave.SinkEntry, error) {
	return s.repo.List(ctx)
}
