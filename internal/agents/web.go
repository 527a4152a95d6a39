package agents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/soochol/weave/internal/weave"
)

const maxScrapeElements = 30

// WebAgent fetches a page and extracts elements matching a CSS selector.
type WebAgent struct {
	httpClient *http.Client
}

// NewWebAgent creates a WebAgent. A nil client selects a default with a
// 30 second timeout.
func NewWebAgent(client *http.Client) *WebAgent {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebAgent{httpClient: client}
}

func (a *WebAgent) Card() weave.AgentCard {
	return weave.AgentCard{
		Name:        "web",
		Description: "Fetches webpages and extracts content by CSS selector.",
		Methods: []weave.MethodSpec{{
			Name:        "extract",
			Description: "Fetch a URL and extract text or an attribute from matching elements.",
			Params: []weave.ParamSpec{
				{Name: "url", Type: "string", Required: true, Description: "Page URL to fetch"},
				{Name: "selector", Type: "string", Required: true, Description: "CSS selector to match"},
				{Name: "attribute", Type: "string", Required: false, Description: "Attribute to extract instead of text"},
				{Name: "limit", Type: "number", Required: false, Description: "Max elements to return (default 30)"},
			},
		}},
	}
}

func (a *WebAgent) Invoke(ctx context.Context, method string, inputs map[string]any) (any, error) {
	if method != "extract" {
		return nil, fmt.Errorf("web has no method %q", method)
	}
	url, _ := inputs["url"].(string)
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}
	selector, _ := inputs["selector"].(string)
	if selector == "" {
		return nil, fmt.Errorf("selector is required")
	}
	attribute, _ := inputs["attribute"].(string)
	limit := maxScrapeElements
	if v, ok := inputs["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Weave/1.0 (webpage reader)")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// Cap raw HTML input to 1MB.
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var items []string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var v string
		if attribute != "" {
			v, _ = s.Attr(attribute)
		} else {
			v = strings.TrimSpace(s.Text())
		}
		if v != "" {
			items = append(items, v)
		}
		return len(items) < limit
	})

	return map[string]any{
		"url":   url,
		"items": items,
		"count": len(items),
	}, nil
}
