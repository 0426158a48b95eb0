// Package intent maps free-form user text to a coarse intent label.
//
// Two classifiers are provided: an LLM-backed one and a deterministic
// rule-based one. The LLM classifier degrades to the rule policy on any
// provider failure, so callers always get a usable result.
package intent

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/Aksharma127/social-to-lead-agent/prompts"
	"github.com/Aksharma127/social-to-lead-agent/utils"
)

// Intent labels.
const (
	Greeting      = "greeting"
	Inquiry       = "inquiry"
	HighIntent    = "high_intent"
	Clarification = "clarification"
)

// Result pairs an intent label with the classifier's confidence in it.
type Result struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Classifier maps a user message to an intent. Implementations never fail
// the turn.
type Classifier interface {
	Classify(ctx context.Context, message string) Result
}

var (
	symbolsOnlyRe = regexp.MustCompile(`^[^a-zA-Z0-9]+$`)
	greetingRe    = regexp.MustCompile(`\b(hi|hello|hey|good morning|good afternoon)\b`)
	highIntentRe  = regexp.MustCompile(`\b(demo|pricing|price|buy|subscribe|plan|purchase)\b`)
	inquiryRe     = regexp.MustCompile(`\b(what|how|which|where|when|why|details|features)\b`)
)

// RuleClassifier is the deterministic keyword policy. Purchase keywords are
// checked before question keywords, so "pricing details" is high_intent.
type RuleClassifier struct{}

func (RuleClassifier) Classify(_ context.Context, message string) Result {
	text := strings.ToLower(strings.TrimSpace(message))
	switch {
	case text == "" || symbolsOnlyRe.MatchString(text):
		return Result{Intent: Clarification, Confidence: 0.5}
	case greetingRe.MatchString(text):
		return Result{Intent: Greeting, Confidence: 0.9}
	case highIntentRe.MatchString(text):
		return Result{Intent: HighIntent, Confidence: 0.95}
	case inquiryRe.MatchString(text):
		return Result{Intent: Inquiry, Confidence: 0.8}
	default:
		return Result{Intent: Clarification, Confidence: 0.4}
	}
}

// LLMClassifier asks the model to label the message. Malformed responses,
// provider errors and timeouts all fall back to the rule policy.
type LLMClassifier struct {
	LLM     llms.Model
	Timeout time.Duration

	fallback RuleClassifier
}

func NewLLMClassifier(llm llms.Model) *LLMClassifier {
	return &LLMClassifier{LLM: llm, Timeout: 10 * time.Second}
}

func (c *LLMClassifier) Classify(ctx context.Context, message string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	select {
	case res := <-utils.RunPromptAsync(ctx, c.LLM, prompts.Intent, map[string]any{"message": message}):
		if res.Err != nil {
			slog.Warn("intent classification failed", "error", res.Err)
			break
		}
		if r, ok := parseResult(res.Response); ok {
			return r
		}
		slog.Warn("intent classifier returned malformed response", "response", res.Response)
	case <-ctx.Done():
		slog.Warn("intent classification timed out")
	}
	return c.fallback.Classify(ctx, message)
}

func parseResult(raw string) (Result, bool) {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")

	var r Result
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &r); err != nil {
		return Result{}, false
	}
	switch r.Intent {
	case Greeting, Inquiry, HighIntent, Clarification:
	default:
		return Result{}, false
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return Result{}, false
	}
	return r, true
}
