package agents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soochol/weave/internal/weave"
)

const (
	maxResponseBody  = 256 * 1024
	fetchAllParallel = 5
)

// HTTPAgent issues plain HTTP requests. fetchAll performs a bounded
// fan-out: one sub-operation per URL, each with its own tracked outcome.
type HTTPAgent struct {
	httpClient *http.Client
}

// NewHTTPAgent creates an HTTPAgent. A nil client selects a default with
// a 30 second timeout.
func NewHTTPAgent(client *http.Client) *HTTPAgent {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPAgent{httpClient: client}
}

func (a *HTTPAgent) Card() weave.AgentCard {
	return weave.AgentCard{
		Name:        "http",
		Description: "Issues HTTP requests, singly or as a tracked batch.",
		Methods: []weave.MethodSpec{
			{
				Name:        "request",
				Description: "Issue one HTTP request and return status and body.",
				Params: []weave.ParamSpec{
					{Name: "url", Type: "string", Required: true, Description: "Request URL"},
					{Name: "method", Type: "string", Required: false, Description: "HTTP method (default GET)"},
					{Name: "body", Type: "string", Required: false, Description: "Request body"},
				},
			},
			{
				Name:        "fetchAll",
				Description: "Fetch several URLs concurrently; per-URL outcomes are reported individually.",
				Params: []weave.ParamSpec{
					{Name: "urls", Type: "array", Required: true, Description: "URLs to fetch"},
				},
			},
		},
	}
}

func (a *HTTPAgent) Invoke(ctx context.Context, method string, inputs map[string]any) (any, error) {
	switch method {
	case "request":
		return a.request(ctx, inputs)
	case "fetchAll":
		return a.fetchAll(ctx, inputs)
	default:
		return nil, fmt.Errorf("http has no method %q", method)
	}
}

func (a *HTTPAgent) request(ctx context.Context, inputs map[string]any) (any, error) {
	url, _ := inputs["url"].(string)
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}
	httpMethod, _ := inputs["method"].(string)
	if httpMethod == "" {
		httpMethod = "GET"
	}
	body, _ := inputs["body"].(string)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(httpMethod), url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return map[string]any{
		"status": resp.StatusCode,
		"body":   string(data),
		"url":    url,
	}, nil
}

// fetchAll runs one bounded sub-operation per URL and never fails the call
// as a whole: mixed outcomes surface through the fan-out result.
func (a *HTTPAgent) fetchAll(ctx context.Context, inputs map[string]any) (any, error) {
	raw, ok := inputs["urls"].([]any)
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("urls is required")
	}
	urls := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			urls = append(urls, s)
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("urls contains no valid entries")
	}

	items := make([]weave.SubEntry, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchAllParallel)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			out, err := a.request(gctx, map[string]any{"url": url})
			if err != nil {
				items[i] = weave.SubEntry{Status: weave.StatusError, Error: err.Error()}
				return nil
			}
			items[i] = weave.SubEntry{Status: weave.StatusSuccess, Output: out}
			return nil
		})
	}
	g.Wait()

	var fetched int
	for _, it := range items {
		if it.Status == weave.StatusSuccess {
			fetched++
		}
	}
	return weave.FanOutResult{
		Items:  items,
		Output: map[string]any{"requested": len(urls), "fetched": fetched},
	}, nil
}
