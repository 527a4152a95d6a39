package agents

import (
	"context"

	"github.com/soochol/weave/internal/rpc"
	"github.com/soochol/weave/internal/weave"
)

// RemoteAgent invokes an agent's methods over JSON-RPC at its published
// endpoint. Retries, if any, are the remote agent's responsibility.
type RemoteAgent struct {
	client *rpc.Client
	url    string
}

// NewRemoteAgent creates a RemoteAgent bound to url.
func NewRemoteAgent(client *rpc.Client, url string) *RemoteAgent {
	return &RemoteAgent{client: client, url: url}
}

func (a *RemoteAgent) Invoke(ctx context.Context, method string, inputs map[string]any) (any, error) {
	if inputs == nil {
		inputs = map[string]any{}
	}
	return a.client.Call(ctx, a.url, method, inputs)
}

// CardLister is the slice of the directory the remote resolver needs.
type CardLister interface {
	List(ctx context.Context) ([]weave.AgentCard, error)
}

// RemoteResolver resolves agent names to RemoteAgents using the endpoint
// URL on their directory card. Agents without a URL (builtins, composites)
// are left to other resolvers.
func RemoteResolver(dir CardLister, client *rpc.Client) ResolverFunc {
	return func(name string) (weave.Invoker, bool) {
		cards, err := dir.List(context.Background())
		if err != nil {
			return nil, false
		}
		for _, c := range cards {
			if c.Name == name && c.URL != "" {
				return NewRemoteAgent(client, c.URL), true
			}
		}
		return nil, false
	}
}
