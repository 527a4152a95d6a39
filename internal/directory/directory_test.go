package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/soochol/weave/internal/weave"
)

// countingSource records how often the directory pulls from it.
type countingSource struct {
	cards []weave.AgentCard
	calls int
}

func (s *countingSource) Cards(_ context.Context) ([]weave.AgentCard, error) {
	s.calls++
	return s.cards, nil
}

func card(name string, methods ...string) weave.AgentCard {
	c := weave.AgentCard{Name: name}
	for _, m := range methods {
		c.Methods = append(c.Methods, weave.MethodSpec{Name: m})
	}
	return c
}

func TestDirectoryListCaches(t *testing.T) {
	src := &countingSource{cards: []weave.AgentCard{card("auth", "login")}}
	d := New(src)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cards, err := d.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(cards) != 1 {
			t.Fatalf("expected 1 card, got %d", len(cards))
		}
	}
	if src.calls != 1 {
		t.Fatalf("expected single source pull, got %d", src.calls)
	}
}

func TestDirectoryInvalidateReadYourWrites(t *testing.T) {
	src := &countingSource{cards: []weave.AgentCard{card("auth", "login")}}
	d := New(src)
	ctx := context.Background()

	if _, err := d.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}

	// A write lands in the source, then invalidates.
	src.cards = append(src.cards, card("report", "run"))
	d.Invalidate()

	cards, err := d.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("new card must be visible immediately after invalidation, got %d cards", len(cards))
	}
}

func TestDirectoryLaterSourceShadows(t *testing.T) {
	first := &countingSource{cards: []weave.AgentCard{{Name: "report", Description: "old"}}}
	second := &countingSource{cards: []weave.AgentCard{{Name: "report", Description: "new"}}}
	d := New(first, second)

	cards, err := d.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected shadowing, got %d cards", len(cards))
	}
	if cards[0].Description != "new" {
		t.Fatalf("later source must win, got %q", cards[0].Description)
	}
}

func TestDirectoryLookup(t *testing.T) {
	d := New(&countingSource{cards: []weave.AgentCard{card("auth", "login")}})
	ctx := context.Background()

	c, m, err := d.Lookup(ctx, "auth", "login")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if c.Name != "auth" || m.Name != "login" {
		t.Fatalf("unexpected lookup result: %v %v", c, m)
	}

	if _, _, err := d.Lookup(ctx, "ghost", "login"); !errors.Is(err, ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
	if _, _, err := d.Lookup(ctx, "auth", "logout"); !errors.Is(err, ErrMethodNotFound) {
		t.Fatalf("expected ErrMethodNotFound, got %v", err)
	}
}

func TestStaticSourceAdd(t *testing.T) {
	src := NewStaticSource(card("auth", "login"))
	src.Add(card("transform", "eval"))

	cards, err := src.Cards(context.Background())
	if err != nil {
		t.Fatalf("cards: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
}
