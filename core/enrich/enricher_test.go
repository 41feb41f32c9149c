package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

func sampleReport() *core.AuditReport {
	return &core.AuditReport{
		URL:          "https://example.com",
		OverallScore: 55,
		Grade:        "F",
		SiteProfile:  "General Website",
		SevereCount:  1,
		Issues: []core.Issue{
			{Title: "Missing Language Declaration", Severity: core.SeveritySevere, Description: "No lang attribute."},
		},
	}
}

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization %q", auth)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestEnrichParsesPayload(t *testing.T) {
	srv := completionServer(t, `{"summary":"Readable but flawed.","recommendations":["Add lang","Label inputs","Add a skip link"],"strengths":["Consistent layout"]}`)
	defer srv.Close()

	e := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	enrichment, err := e.Enrich(context.Background(), sampleReport(), "<html></html>")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if enrichment.Summary != "Readable but flawed." {
		t.Errorf("Summary = %q", enrichment.Summary)
	}
	if len(enrichment.Recommendations) != 3 {
		t.Errorf("got %d recommendations, want 3", len(enrichment.Recommendations))
	}
	if len(enrichment.Strengths) != 1 {
		t.Errorf("got %d strengths, want 1", len(enrichment.Strengths))
	}
}

func TestEnrichToleratesJSONFences(t *testing.T) {
	srv := completionServer(t, "Here you go:\n```json\n{\"summary\":\"Fine.\",\"recommendations\":[],\"strengths\":[]}\n```")
	defer srv.Close()

	e := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	enrichment, err := e.Enrich(context.Background(), sampleReport(), "")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if enrichment.Summary != "Fine." {
		t.Errorf("Summary = %q, want fenced payload parsed", enrichment.Summary)
	}
}

func TestEnrichErrors(t *testing.T) {
	t.Run("no API key", func(t *testing.T) {
		e := New(Config{})
		if e.Enabled() {
			t.Error("Enabled() = true without a key")
		}
		if _, err := e.Enrich(context.Background(), sampleReport(), ""); err == nil {
			t.Error("expected error without API key")
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		e := New(Config{APIKey: "test-key", BaseURL: srv.URL})
		if _, err := e.Enrich(context.Background(), sampleReport(), ""); err == nil {
			t.Error("expected error on 503")
		}
	})

	t.Run("non-JSON model output", func(t *testing.T) {
		srv := completionServer(t, "I think the page is pretty good overall!")
		defer srv.Close()

		e := New(Config{APIKey: "test-key", BaseURL: srv.URL})
		if _, err := e.Enrich(context.Background(), sampleReport(), ""); err == nil {
			t.Error("expected error for unparseable output")
		}
	})
}

func TestBuildPromptCarriesFindings(t *testing.T) {
	prompt := buildPrompt(sampleReport(), "<html><body><h1>Title</h1><p>Hello world</p></body></html>")

	for _, want := range []string{"https://example.com", "55/100", "Missing Language Declaration", "Do not re-score"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt lacks %q", want)
		}
	}
}

func TestContentExcerpt(t *testing.T) {
	md := ContentExcerpt("<html><body><h1>Title</h1><p>Hello world</p></body></html>", 500)
	if !strings.Contains(md, "Title") || !strings.Contains(md, "Hello world") {
		t.Errorf("excerpt %q lost content", md)
	}

	long := ContentExcerpt("<p>"+strings.Repeat("word ", 500)+"</p>", 100)
	if len([]rune(long)) > 100 {
		t.Errorf("excerpt length %d exceeds limit", len([]rune(long)))
	}

	if got := ContentExcerpt("", 100); got != "" {
		t.Errorf("empty input produced %q", got)
	}
}
