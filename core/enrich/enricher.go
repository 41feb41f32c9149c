// Package enrich implements the optional model-backed enrichment step.
// It receives an already-computed AuditReport and may only append textual
// elaboration. The deterministic scores, severities, and counts are never
// touched. Any failure here degrades gracefully to the rule-based report:
// callers log the error and move on.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

const (
	defaultBaseURL = "https://integrate.api.nvidia.com/v1"
	defaultModel   = "meta/llama-3.1-70b-instruct"
	defaultTimeout = 30 * time.Second
)

// Config configures the enricher. The core pipeline reads none of this:
// model access is strictly an add-on concern.
type Config struct {
	// APIKey for the chat-completions endpoint. Empty disables enrichment.
	APIKey string

	// BaseURL of the OpenAI-compatible API.
	BaseURL string

	// Model identifier.
	Model string

	// Timeout for the completion call.
	Timeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// NIMEnricher calls an NVIDIA-NIM-style chat-completions API.
type NIMEnricher struct {
	cfg    Config
	client *http.Client
}

// New creates a NIMEnricher.
func New(cfg Config) *NIMEnricher {
	cfg.defaults()
	return &NIMEnricher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether an API key is configured.
func (e *NIMEnricher) Enabled() bool {
	return e.cfg.APIKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// enrichmentPayload is the JSON shape the model is asked to return.
// Text only: the schema has nowhere to put a score.
type enrichmentPayload struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Strengths       []string `json:"strengths"`
}

// Enrich asks the model to elaborate on the finished report. The returned
// Enrichment is attached additively by the caller; on any error the
// deterministic report stands alone.
func (e *NIMEnricher) Enrich(ctx context.Context, report *core.AuditReport, pageHTML string) (*core.Enrichment, error) {
	if !e.Enabled() {
		return nil, fmt.Errorf("enrichment disabled: no API key configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: e.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an accessibility consultant. You elaborate on audit findings that have already been scored. Respond with JSON only: {\"summary\": string, \"recommendations\": [string], \"strengths\": [string]}. Never propose numeric scores."},
			{Role: "user", Content: buildPrompt(report, pageHTML)},
		},
		Temperature: 0.3,
		MaxTokens:   1500,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading completion response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, fmt.Errorf("decoding completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("completion response has no choices")
	}

	payload, err := parsePayload(cr.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	e.cfg.Logger.Debug("enrichment complete",
		"url", report.URL,
		"recommendations", len(payload.Recommendations),
	)
	return &core.Enrichment{
		Summary:         payload.Summary,
		Recommendations: payload.Recommendations,
		Strengths:       payload.Strengths,
	}, nil
}

var jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// parsePayload extracts the JSON object from the model output, tolerating
// markdown fences around it.
func parsePayload(content string) (*enrichmentPayload, error) {
	text := strings.TrimSpace(content)
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var p enrichmentPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, fmt.Errorf("model output is not the expected JSON: %w", err)
	}
	return &p, nil
}

func buildPrompt(report *core.AuditReport, pageHTML string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A deterministic audit of %s (%s) is complete. Overall score %d/100, grade %s.\n",
		report.URL, report.SiteProfile, report.OverallScore, report.Grade)
	fmt.Fprintf(&b, "Issues found (%d severe, %d moderate, %d casual):\n",
		report.SevereCount, report.ModerateCount, report.CasualCount)
	for _, issue := range report.Issues {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", issue.Severity, issue.Title, issue.Description)
	}

	if excerpt := ContentExcerpt(pageHTML, 1500); excerpt != "" {
		b.WriteString("\nPage content excerpt (Markdown):\n")
		b.WriteString(excerpt)
		b.WriteString("\n")
	}

	b.WriteString("\nElaborate for this site's audience: a refined summary, three concrete recommendations, and any genuine strengths. Do not re-score anything.")
	return b.String()
}
