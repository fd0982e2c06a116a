// Package ai wraps the Gemini generateContent endpoint. Both operations
// fail soft: callers get an empty list or a placeholder string, never an
// error, so the presentation layer needs no AI-specific error handling.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tgienger/avo/internal/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Placeholder strings returned by Summarize on its soft-fail paths.
const (
	SummaryNoKey   = "AI Summary unavailable (No API Key)."
	SummaryNoTasks = "No tasks to summarize."
	SummaryEmpty   = "Could not generate summary."
	SummaryError   = "Error generating summary."
)

// Gateway is a single-attempt request/response client. No retries; the
// only timeout is the HTTP client's.
type Gateway struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithBaseURL points the gateway at a different endpoint. Tests use this.
func WithBaseURL(u string) Option {
	return func(g *Gateway) { g.baseURL = strings.TrimSuffix(u, "/") }
}

// New creates a Gateway. An empty apiKey is valid: every call then takes
// its no-credential soft-fail path.
func New(apiKey, model string, log *logrus.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// generateContent request/response wire types.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// taskSchema constrains the task-breakdown response to a JSON array of
// {title, description?, priority}.
var taskSchema = json.RawMessage(`{
	"type": "ARRAY",
	"items": {
		"type": "OBJECT",
		"properties": {
			"title": {"type": "STRING", "description": "Concise task title"},
			"description": {"type": "STRING", "description": "Short description of what needs to be done"},
			"priority": {"type": "STRING", "enum": ["LOW", "MEDIUM", "HIGH", "URGENT"]}
		},
		"required": ["title", "priority"]
	}
}`)

type generatedItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// GenerateTasks asks the model to break a goal into 4-8 actionable tasks
// and maps each into a task skeleton with status TODO. It returns an empty
// slice when no credential is configured, the response is empty, or the
// call fails in any way.
func (g *Gateway) GenerateTasks(ctx context.Context, projectID, goal string) []models.Task {
	if g.apiKey == "" {
		g.log.Warn("no API key configured for task generation")
		return nil
	}

	prompt := fmt.Sprintf("Break down the project management goal: %q into 4-8 actionable tasks. Return a JSON list.", goal)
	text, err := g.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   taskSchema,
		},
	})
	if err != nil {
		g.log.WithError(err).Error("task generation failed")
		return nil
	}
	if text == "" {
		return nil
	}

	var items []generatedItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		g.log.WithError(err).Error("task generation returned unparseable JSON")
		return nil
	}

	var tasks []models.Task
	for _, item := range items {
		priority, err := models.ParsePriority(item.Priority)
		if err != nil {
			priority = models.PriorityMedium
		}
		tasks = append(tasks, models.Task{
			ProjectID:   projectID,
			Title:       item.Title,
			Description: item.Description,
			Status:      models.StatusTodo,
			Priority:    priority,
		})
	}
	return tasks
}

// Summarize asks the model for a 2-3 sentence status summary of the given
// tasks. All failure paths return one of the fixed placeholder strings.
func (g *Gateway) Summarize(ctx context.Context, tasks []models.Task) string {
	if g.apiKey == "" {
		return SummaryNoKey
	}
	if len(tasks) == 0 {
		return SummaryNoTasks
	}

	var b strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", t.Status, t.Title, t.Priority)
	}
	prompt := fmt.Sprintf("Summarize the current status of this project based on these tasks in 2-3 sentences. Be professional and encouraging:\n\n%s", b.String())

	text, err := g.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		g.log.WithError(err).Error("summary generation failed")
		return SummaryError
	}
	if text == "" {
		return SummaryEmpty
	}
	return text
}

// generate performs one generateContent call and returns the first
// candidate's concatenated text.
func (g *Gateway) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, body)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", nil
	}

	var text strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return strings.TrimSpace(text.String()), nil
}
