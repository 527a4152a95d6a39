package services

import (
	"context"
	"testing"

	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/weave"
)

type nopRunner struct{}

func (nopRunner) Execute(_ context.Context, _ *weave.WorkflowDefinition, _ map[string]any) (*weave.RunResult, error) {
	return &weave.RunResult{Status: weave.StatusSuccess}, nil
}

func newTestScheduler(t *testing.T) (*SchedulerService, *CompositeService) {
	t.Helper()
	compositeRepo := repository.NewMemoryCompositeRepository()
	composites := NewCompositeService(compositeRepo, specLookup{}, nil)
	history := NewRunHistoryService(repository.NewMemoryRunRepository())
	sched := NewSchedulerService(repository.NewMemoryScheduleRepository(), compositeRepo, nopRunner{}, history)
	return sched, composites
}

func TestSchedulerAddValidatesCron(t *testing.T) {
	sched, composites := newTestScheduler(t)
	ctx := context.Background()

	if _, err := composites.Register(ctx, "Nightly", "", loginWorkflow()); err != nil {
		t.Fatalf("register composite: %v", err)
	}

	err := sched.Add(ctx, &weave.ScheduleDefinition{Composite: "Nightly", Cron: "not a cron"})
	if err == nil {
		t.Fatal("expected invalid cron error")
	}

	def := &weave.ScheduleDefinition{Composite: "Nightly", Cron: "0 3 * * *"}
	if err := sched.Add(ctx, def); err != nil {
		t.Fatalf("add: %v", err)
	}
	if def.ID == "" {
		t.Fatal("expected generated schedule ID")
	}
	if !def.Enabled {
		t.Fatal("new schedules start enabled")
	}
}

func TestSchedulerAddRejectsUnknownComposite(t *testing.T) {
	sched, _ := newTestScheduler(t)
	err := sched.Add(context.Background(), &weave.ScheduleDefinition{Composite: "Ghost", Cron: "* * * * *"})
	if err == nil {
		t.Fatal("expected unknown composite error")
	}
}

func TestSchedulerRemove(t *testing.T) {
	sched, composites := newTestScheduler(t)
	ctx := context.Background()

	if _, err := composites.Register(ctx, "Nightly", "", loginWorkflow()); err != nil {
		t.Fatalf("register composite: %v", err)
	}
	def := &weave.ScheduleDefinition{Composite: "Nightly", Cron: "0 3 * * *"}
	if err := sched.Add(ctx, def); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := sched.Remove(ctx, def.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	scheds, err := sched.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scheds) != 0 {
		t.Fatalf("expected no schedules, got %d", len(scheds))
	}
}
