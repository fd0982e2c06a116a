package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tgienger/avo/internal/logging"
	"github.com/tgienger/avo/internal/models"
)

func candidateResponse(text string) string {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGenerateTasksNoKey(t *testing.T) {
	g := New("", "test-model", logging.Nop())
	if tasks := g.GenerateTasks(context.Background(), "p1", "ship it"); len(tasks) != 0 {
		t.Errorf("GenerateTasks with no key = %v, want empty", tasks)
	}
}

func TestSummarizePlaceholders(t *testing.T) {
	noKey := New("", "test-model", logging.Nop())
	if got := noKey.Summarize(context.Background(), []models.Task{{Title: "t"}}); got != SummaryNoKey {
		t.Errorf("no-key summary = %q, want %q", got, SummaryNoKey)
	}

	withKey := New("key", "test-model", logging.Nop())
	if got := withKey.Summarize(context.Background(), nil); got != SummaryNoTasks {
		t.Errorf("empty-task summary = %q, want %q", got, SummaryNoTasks)
	}
}

func TestGenerateTasksMapsItems(t *testing.T) {
	items := `[
		{"title": "Write docs", "description": "User guide", "priority": "HIGH"},
		{"title": "Fix bug", "priority": "bogus"}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "test-model:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "key" {
			t.Errorf("api key header = %q", got)
		}
		w.Write([]byte(candidateResponse(items)))
	}))
	defer srv.Close()

	g := New("key", "test-model", logging.Nop(), WithBaseURL(srv.URL))
	tasks := g.GenerateTasks(context.Background(), "p1", "ship the beta")

	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Title != "Write docs" || tasks[0].Priority != models.PriorityHigh {
		t.Errorf("tasks[0] = %+v", tasks[0])
	}
	if tasks[0].ProjectID != "p1" || tasks[0].Status != models.StatusTodo {
		t.Errorf("skeleton fields = %+v", tasks[0])
	}
	// Unknown priorities fall back to medium instead of failing.
	if tasks[1].Priority != models.PriorityMedium {
		t.Errorf("tasks[1].Priority = %s, want MEDIUM", tasks[1].Priority)
	}
}

func TestGenerateTasksSoftFails(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json at all"))
			},
		},
		{
			name: "unparseable task list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(candidateResponse("oops, plain prose")))
			},
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates": []}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			g := New("key", "test-model", logging.Nop(), WithBaseURL(srv.URL))
			if tasks := g.GenerateTasks(context.Background(), "p1", "goal"); len(tasks) != 0 {
				t.Errorf("got %v, want empty", tasks)
			}
		})
	}
}

func TestSummarizeReturnsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		prompt := req.Contents[0].Parts[0].Text
		if !strings.Contains(prompt, "- [TODO] Draft plan (MEDIUM)") {
			t.Errorf("prompt missing task listing:\n%s", prompt)
		}
		w.Write([]byte(candidateResponse("Great progress so far.")))
	}))
	defer srv.Close()

	g := New("key", "test-model", logging.Nop(), WithBaseURL(srv.URL))
	got := g.Summarize(context.Background(), []models.Task{
		{Title: "Draft plan", Status: models.StatusTodo, Priority: models.PriorityMedium},
	})
	if got != "Great progress so far." {
		t.Errorf("summary = %q", got)
	}
}

func TestSummarizeErrorPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := New("key", "test-model", logging.Nop(), WithBaseURL(srv.URL))
	got := g.Summarize(context.Background(), []models.Task{{Title: "t"}})
	if got != SummaryError {
		t.Errorf("summary = %q, want %q", got, SummaryError)
	}
}
