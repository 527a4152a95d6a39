package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientCall(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.JSONRPC != "2.0" || req.Method != "list_agents" {
			t.Errorf("unexpected request: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  []any{map[string]any{"name": "search"}},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), time.Second)
	result, err := c.Call(context.Background(), ts.URL, "list_agents", nil)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	cards, ok := result.([]any)
	if !ok || len(cards) != 1 {
		t.Fatalf("unexpected result: %v", result)
	}
}

func TestClientCallRPCError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]any{"code": -32601, "message": "method not found"},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), time.Second)
	_, err := c.Call(context.Background(), ts.URL, "nope", nil)
	if err == nil || !strings.Contains(err.Error(), "method not found") {
		t.Fatalf("expected rpc error, got %v", err)
	}
}

func TestClientCallHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), time.Second)
	if _, err := c.Call(context.Background(), ts.URL, "m", nil); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestClientCallTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel the request context; otherwise
		// ts.Close() blocks forever on this connection.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), 20*time.Millisecond)
	if _, err := c.Call(context.Background(), ts.URL, "m", nil); err == nil {
		t.Fatal("expected timeout error")
	}
}
