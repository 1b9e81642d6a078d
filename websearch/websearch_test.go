package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient("tvly-test", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	return srv, client
}

func TestSearchDecodesResults(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tvly-test" {
			t.Errorf("unexpected auth header: %q", got)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["query"] != "capital of France" {
			t.Errorf("unexpected query: %q", req["query"])
		}
		_ = json.NewEncoder(w).Encode(Response{
			Query: "capital of France",
			Results: []Result{
				{Title: "Paris", URL: "https://en.wikipedia.org/wiki/Paris", Content: "Paris is the capital of France."},
			},
		})
	})

	resp, err := client.Search(context.Background(), "capital of France")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "Paris" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSearchNonOKStatus(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	})

	_, err := client.Search(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected an error for a non-200 status")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected the status in the error, got %v", err)
	}
}

func TestToolRendersResults(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Response{
			Answer: "Paris",
			Results: []Result{
				{Title: "Paris", URL: "https://example.com/paris", Content: "Capital of France."},
				{Title: "France", URL: "https://example.com/france", Content: "A country in Europe."},
			},
		})
	})

	out, err := NewTool(client).Execute(context.Background(), map[string]any{"query": "capital of France"})
	if err != nil {
		t.Fatalf("tool must not return errors, got %v", err)
	}
	if !strings.HasPrefix(out, "Answer: Paris") {
		t.Fatalf("expected the answer first, got %q", out)
	}
	if !strings.Contains(out, "1. Paris (https://example.com/paris)") ||
		!strings.Contains(out, "2. France (https://example.com/france)") {
		t.Fatalf("expected numbered results, got %q", out)
	}
}

func TestToolNoResultsIsIdempotent(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Response{Results: []Result{}})
	})

	tool := NewTool(client)
	for i := 0; i < 2; i++ {
		out, err := tool.Execute(context.Background(), map[string]any{"query": "nothing matches this"})
		if err != nil {
			t.Fatalf("tool must not return errors, got %v", err)
		}
		if out != NoResults {
			t.Fatalf("call %d: expected %q, got %q", i+1, NoResults, out)
		}
	}
}

func TestToolSwallowsProviderFailure(t *testing.T) {
	srv, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // every request now fails at the transport

	out, err := NewTool(client).Execute(context.Background(), map[string]any{"query": "anything"})
	if err != nil {
		t.Fatalf("tool must not return errors, got %v", err)
	}
	if !strings.HasPrefix(out, "Error in web search: ") {
		t.Fatalf("expected the error rendered into the output, got %q", out)
	}
}

func TestToolSchemaRequiresQuery(t *testing.T) {
	param := NewTool(NewClient("k")).OpenAI()
	if param.Function.Name != ToolName {
		t.Fatalf("unexpected function name: %q", param.Function.Name)
	}
	required, _ := param.Function.Parameters["required"].([]string)
	if len(required) != 1 || required[0] != "query" {
		t.Fatalf("expected query to be required, got %v", param.Function.Parameters)
	}
}
