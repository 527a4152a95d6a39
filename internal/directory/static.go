package directory

import (
	"context"

	"github.com/soochol/weave/internal/weave"
)

// StaticSource serves a fixed set of agent cards, used for builtin agents
// registered at process start.
type StaticSource struct {
	cards []weave.AgentCard
}

// NewStaticSource creates a StaticSource over the given cards.
func NewStaticSource(cards ...weave.AgentCard) *StaticSource {
	return &StaticSource{cards: cards}
}

// Add appends a card. Callers must invalidate the owning directory afterwards.
func (s *StaticSource) Add(card weave.AgentCard) {
	s.cards = append(s.cards, card)
}

func (s *StaticSource) Cards(_ context.Context) ([]weave.AgentCard, error) {
	return s.cards, nil
}
