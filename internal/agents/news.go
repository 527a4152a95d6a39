package agents

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/soochol/weave/internal/weave"
)

const defaultFeedLimit = 20

// NewsAgent fetches and parses RSS/Atom/JSON feeds.
type NewsAgent struct {
	parser *gofeed.Parser
}

// NewNewsAgent creates a NewsAgent with a 30 second fetch timeout.
func NewNewsAgent() *NewsAgent {
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: 30 * time.Second}
	return &NewsAgent{parser: p}
}

func (a *NewsAgent) Card() weave.AgentCard {
	return weave.AgentCard{
		Name:        "news",
		Description: "Fetches and parses RSS, Atom, and JSON feeds.",
		Methods: []weave.MethodSpec{{
			Name:        "fetchFeed",
			Description: "Fetch a feed URL and return structured items.",
			Params: []weave.ParamSpec{
				{Name: "url", Type: "string", Required: true, Description: "Feed URL"},
				{Name: "limit", Type: "number", Required: false, Description: "Max items to return (default 20)"},
			},
		}},
	}
}

func (a *NewsAgent) Invoke(ctx context.Context, method string, inputs map[string]any) (any, error) {
	if method != "fetchFeed" {
		return nil, fmt.Errorf("news has no method %q", method)
	}
	url, _ := inputs["url"].(string)
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}
	limit := defaultFeedLimit
	if v, ok := inputs["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	feed, err := a.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	items := make([]map[string]any, 0, limit)
	for _, item := range feed.Items {
		if len(items) >= limit {
			break
		}
		entry := map[string]any{
			"title": item.Title,
			"link":  item.Link,
		}
		if item.PublishedParsed != nil {
			entry["published"] = item.PublishedParsed.Format(time.RFC3339)
		}
		if item.Description != "" {
			entry["summary"] = item.Description
		}
		items = append(items, entry)
	}

	return map[string]any{
		"feed_title": feed.Title,
		"items":      items,
		"count":      len(items),
	}, nil
}
