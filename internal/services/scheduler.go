package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/weave"
)

// WorkflowRunner executes a workflow graph. Satisfied by engine.Runner.
type WorkflowRunner interface {
	Execute(ctx context.Context, wf *weave.WorkflowDefinition, inputs map[string]any) (*weave.RunResult, error)
}

// SchedulerService dispatches cron-triggered runs of registered composites.
type SchedulerService struct {
	cron       *cron.Cron
	repo       repository.ScheduleRepository
	composites repository.CompositeRepository
	runner     WorkflowRunner
	history    *RunHistoryService

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewSchedulerService creates a SchedulerService.
func NewSchedulerService(repo repository.ScheduleRepository, composites repository.CompositeRepository, runner WorkflowRunner, history *RunHistoryService) *SchedulerService {
	return &SchedulerService{
		cron:       cron.New(),
		repo:       repo,
		composites: composites,
		runner:     runner,
		history:    history,
		entries:    make(map[string]cron.EntryID),
	}
}

// Start loads persisted schedules, registers the enabled ones, and starts
// the cron loop.
func (s *SchedulerService) Start(ctx context.Context) error {
	scheds, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load schedules: %w", err)
	}
	for _, sched := range scheds {
		if !sched.Enabled {
			continue
		}
		if err := s.register(sched); err != nil {
			slog.Warn("skipping schedule", "schedule_id", sched.ID, "err", err)
		}
	}
	s.cron.Start()
	slog.Info("scheduler started", "schedules", len(s.entries))
	return nil
}

// Stop halts the cron loop; in-flight dispatches run to completion.
func (s *SchedulerService) Stop() {
	s.cron.Stop()
}

// Add validates, persists, and registers a new schedule.
func (s *SchedulerService) Add(ctx context.Context, sched *weave.ScheduleDefinition) error {
	if _, err := cron.ParseStandard(sched.Cron); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", sched.Cron, err)
	}
	if _, err := s.composites.Get(ctx, sched.Composite); err != nil {
		return fmt.Errorf("schedule target: %w", err)
	}
	if sched.ID == "" {
		sched.ID = weave.GenerateID("sched")
	}
	sched.Enabled = true
	sched.CreatedAt = time.Now()

	if err := s.repo.Create(ctx, sched); err != nil {
		return err
	}
	return s.register(sched)
}

// Remove unregisters and deletes a schedule.
func (s *SchedulerService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	if entryID, ok := s.entries[id]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, id)
	}
	s.mu.Unlock()
	return nil
}

// List returns all schedules.
func (s *SchedulerService) List(ctx context.Context) ([]*weave.ScheduleDefinition, error) {
	return s.repo.List(ctx)
}

func (s *SchedulerService) register(sched *weave.ScheduleDefinition) error {
	snapshot := *sched
	entryID, err := s.cron.AddFunc(snapshot.Cron, func() { s.dispatch(&snapshot) })
	if err != nil {
		return fmt.Errorf("register cron %q: %w", sched.Cron, err)
	}
	s.mu.Lock()
	s.entries[snapshot.ID] = entryID
	s.mu.Unlock()
	return nil
}

// dispatch runs one scheduled composite with a detached context and
// records the outcome in run history.
func (s *SchedulerService) dispatch(sched *weave.ScheduleDefinition) {
	ctx := context.Background()

	def, err := s.composites.Get(ctx, sched.Composite)
	if err != nil {
		slog.Error("scheduled composite vanished", "schedule_id", sched.ID, "composite", sched.Composite, "err", err)
		return
	}

	record, err := s.history.StartRun(ctx, weave.RunKindSchedule, sched.Composite, sched.Inputs)
	if err != nil {
		slog.Warn("failed to create run record for schedule", "schedule_id", sched.ID, "err", err)
	}

	result, err := s.runner.Execute(ctx, def.Workflow(), sched.Inputs)
	if err != nil {
		slog.Error("scheduled run failed structurally", "schedule_id", sched.ID, "err", err)
		if record != nil {
			s.history.FailRun(ctx, record.ID, err.Error())
		}
		return
	}
	if record != nil {
		s.history.CompleteRun(ctx, record.ID, result.Status, result.Logs)
	}
	slog.Info("scheduled run finished", "schedule_id", sched.ID, "composite", sched.Composite, "status", result.Status)
}
