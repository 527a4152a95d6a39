package services

import (
	"context"
	"errors"
	"testing"

	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/weave"
)

func hrSink() *weave.SinkEntry {
	return &weave.SinkEntry{
		ContextID: "HRRecruitingAssistant",
		Name:      "HR production replica",
		SinkType:  "PostgreSQL",
		Endpoint:  "hr_prod_db_read_replica",
		Params:    map[string]any{"tables": []any{"candidates", "jobs"}},
	}
}

func TestSinkCreateAndLookup(t *testing.T) {
	svc := NewSinkService(repository.NewMemorySinkRepository())
	ctx := context.Background()

	if err := svc.Create(ctx, hrSink()); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Lookup is read-only: repeated resolution returns the same mapping.
	for i := 0; i < 3; i++ {
		entry, err := svc.Lookup(ctx, "HRRecruitingAssistant")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if entry.SinkType != "PostgreSQL" || entry.Endpoint != "hr_prod_db_read_replica" {
			t.Fatalf("unexpected entry: %+v", entry)
		}
	}
}

func TestSinkLookupUnknownContext(t *testing.T) {
	svc := NewSinkService(repository.NewMemorySinkRepository())
	_, err := svc.Lookup(context.Background(), "unknown_ctx")
	if !errors.Is(err, ErrContextNotFound) {
		t.Fatalf("expected ErrContextNotFound, got %v", err)
	}
}

func TestSinkCreateValidation(t *testing.T) {
	svc := NewSinkService(repository.NewMemorySinkRepository())
	ctx := context.Background()

	if err := svc.Create(ctx, &weave.SinkEntry{SinkType: "PostgreSQL", Endpoint: "db"}); err == nil {
		t.Fatal("expected error for missing context_id")
	}
	if err := svc.Create(ctx, &weave.SinkEntry{ContextID: "ctx"}); err == nil {
		t.Fatal("expected error for missing sink_type and endpoint")
	}
}

func TestSinkCreateSetsTimestamps(t *testing.T) {
	svc := NewSinkService(repository.NewMemorySinkRepository())
	entry := hrSink()
	if err := svc.Create(context.Background(), entry); err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.CreatedAt.IsZero() || entry.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set on create")
	}
}

func TestSinkUpdateAndDelete(t *testing.T) {
	svc := NewSinkService(repository.NewMemorySinkRepository())
	ctx := context.Background()

	if err := svc.Create(ctx, hrSink()); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated := hrSink()
	updated.Endpoint = "hr_prod_db_replica_2"
	if err := svc.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	entry, err := svc.Lookup(ctx, "HRRecruitingAssistant")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if entry.Endpoint != "hr_prod_db_replica_2" {
		t.Fatalf("update not visible: %+v", entry)
	}

	if err := svc.Delete(ctx, "HRRecruitingAssistant"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Lookup(ctx, "HRRecruitingAssistant"); !errors.Is(err, ErrContextNotFound) {
		t.Fatalf("expected ErrContextNotFound after delete, got %v", err)
	}
}
