package services

import (
	"context"
	"time"

	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/weave"
)

// RunHistoryService manages durable execution records for workflow runs
// and query-pipeline invocations.
type RunHistoryService struct {
	repo repository.RunRepository
}

// NewRunHistoryService creates a RunHistoryService.
func NewRunHistoryService(repo repository.RunRepository) *RunHistoryService {
	return &RunHistoryService{repo: repo}
}

// StartRun creates a new RunRecord in running state.
func (s *RunHistoryService) StartRun(ctx context.Context, kind weave.RunKind, ref string, inputs map[string]any) (*weave.RunRecord, error) {
	record := &weave.RunRecord{
		ID:        weave.GenerateID("run"),
		Kind:      kind,
		Ref:       ref,
		Status:    weave.StatusSuccess, // provisional until completion
		Inputs:    inputs,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CompleteRun records the final status and trace of a run.
func (s *RunHistoryService) CompleteRun(ctx context.Context, id string, status weave.Status, logs []weave.ExecutionLogEntry) error {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	record.Status = status
	record.Logs = logs
	record.CompletedAt = &now
	return s.repo.Update(ctx, record)
}

// FailRun marks a run as failed before any trace was produced (structural
// errors and pipeline aborts).
func (s *RunHistoryService) FailRun(ctx context.Context, id string, errMsg string) error {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	record.Status = weave.StatusError
	record.Error = errMsg
	record.CompletedAt = &now
	return s.repo.Update(ctx, record)
}

// GetRun retrieves a single run record.
func (s *RunHistoryService) GetRun(ctx context.Context, id string) (*weave.RunRecord, error) {
	return s.repo.Get(ctx, id)
}

// ListRuns returns run records, newest first.
func (s *RunHistoryService) ListRuns(ctx context.Context) ([]*weave.RunRecord, error) {
	return s.repo.List(ctx)
}
