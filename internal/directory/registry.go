package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/soochol/weave/internal/rpc"
	"github.com/soochol/weave/internal/weave"
)

// RegistrySource fetches agent cards from a remote JSON-RPC agent registry.
// The registry exposes a "list_agents" method returning an array of cards.
type RegistrySource struct {
	client *rpc.Client
	url    string
}

// NewRegistrySource creates a RegistrySource for the registry at url.
func NewRegistrySource(client *rpc.Client, url string) *RegistrySource {
	return &RegistrySource{client: client, url: url}
}

func (s *RegistrySource) Cards(ctx context.Context) ([]weave.AgentCard, error) {
	result, err := s.client.Call(ctx, s.url, "list_agents", map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("list_agents: %w", err)
	}

	// The registry speaks loose JSON; round-trip through encoding to get
	// typed cards.
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode registry result: %w", err)
	}
	var cards []weave.AgentCard
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("decode registry result: %w", err)
	}
	return cards, nil
}
