package directory

import (
	"context"

	"github.com/soochol/weave/internal/weave"
)

// CompositeLister is the slice of the composite store the directory needs.
type CompositeLister interface {
	List(ctx context.Context) ([]*weave.CompositeDefinition, error)
}

// CompositeSource publishes every registered composite as an ordinary agent
// card with a single "run" method. Params were resolved at registration.
type CompositeSource struct {
	composites CompositeLister
}

// NewCompositeSource creates a CompositeSource over the composite store.
func NewCompositeSource(composites CompositeLister) *CompositeSource {
	return &CompositeSource{composites: composites}
}

func (s *CompositeSource) Cards(ctx context.Context) ([]weave.AgentCard, error) {
	defs, err := s.composites.List(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]weave.AgentCard, 0, len(defs))
	for _, def := range defs {
		cards = append(cards, weave.AgentCard{
			Name:        def.Name,
			Description: def.Description,
			Methods: []weave.MethodSpec{{
				Name:        weave.CompositeMethodName,
				Description: def.Description,
				Params:      def.Params,
			}},
		})
	}
	return cards, nil
}
