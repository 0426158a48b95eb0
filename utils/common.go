package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// Passage is one knowledge-base record.
type Passage struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// LoadKnowledgeBase reads an ordered sequence of passages from a JSON file.
func LoadKnowledgeBase(path string) ([]Passage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base %s: %w", path, err)
	}
	var passages []Passage
	if err := json.Unmarshal(data, &passages); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base %s: %w", path, err)
	}
	return passages, nil
}

func extractKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func RunPrompt(ctx context.Context, llm llms.Model, templateStr string, input map[string]any) (string, error) {
	tmpl := prompts.NewPromptTemplate(templateStr, extractKeys(input))
	chain := chains.NewLLMChain(llm, tmpl)
	out, err := chain.Call(ctx, input)
	if err != nil {
		return "", err
	}
	return out["text"].(string), nil
}

type PromptResult struct {
	Response string
	Err      error
}

func RunPromptAsync(ctx context.Context, llm llms.Model, tmpl string, vars map[string]any) <-chan PromptResult {
	ch := make(chan PromptResult, 1)
	go func() {
		resp, err := RunPrompt(ctx, llm, tmpl, vars)
		ch <- PromptResult{Response: resp, Err: err}
	}()
	return ch
}
