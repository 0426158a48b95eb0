package utils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

type mockLLM struct {
	response string
	err      error
}

func (m *mockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{Content: m.response},
		},
	}, nil
}

func (m *mockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

var _ llms.Model = (*mockLLM)(nil)

func TestLoadKnowledgeBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	content := `[{"id": "pricing", "text": "Starts at $29/month."}, {"id": "trial", "text": "14-day free trial."}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	passages, err := LoadKnowledgeBase(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(passages))
	}
	if passages[0].ID != "pricing" || passages[1].Text != "14-day free trial." {
		t.Errorf("unexpected passages: %+v", passages)
	}
}

func TestLoadKnowledgeBaseMissingFile(t *testing.T) {
	if _, err := LoadKnowledgeBase(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadKnowledgeBaseMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKnowledgeBase(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestExtractKeys(t *testing.T) {
	m := map[string]any{"a": 1, "b": 2}
	keys := extractKeys(m)
	if len(keys) != 2 {
		t.Errorf("expected 2 keys, got %d", len(keys))
	}

	expected := map[string]bool{"a": true, "b": true}
	for _, k := range keys {
		if !expected[k] {
			t.Errorf("unexpected key: %s", k)
		}
	}
}

func TestRunPrompt(t *testing.T) {
	mock := &mockLLM{response: "mock output"}
	input := map[string]any{"var1": "value"}
	out, err := RunPrompt(context.Background(), mock, "Template with {{.var1}}", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "mock output" {
		t.Errorf("expected 'mock output', got %q", out)
	}
}

func TestRunPromptAsync(t *testing.T) {
	mock := &mockLLM{response: "async output"}
	input := map[string]any{"foo": "bar"}
	ch := RunPromptAsync(context.Background(), mock, "Hi {{.foo}}", input)
	result := <-ch
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Response != "async output" {
		t.Errorf("expected 'async output', got %q", result.Response)
	}
}

func TestRunPrompt_Error(t *testing.T) {
	mock := &mockLLM{err: os.ErrNotExist}
	_, err := RunPrompt(context.Background(), mock, "any", map[string]any{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRunPromptAsync_Error(t *testing.T) {
	mock := &mockLLM{err: os.ErrNotExist}
	ch := RunPromptAsync(context.Background(), mock, "any", map[string]any{})
	result := <-ch
	if result.Err == nil {
		t.Fatal("expected error, got nil")
	}
	if result.Response != "" {
		t.Errorf("expected empty response, got %q", result.Response)
	}
}
