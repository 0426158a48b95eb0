package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Aksharma127/social-to-lead-agent/tools"
)

type stubKBTool struct {
	response string
	err      error
	queries  []string
}

func (t *stubKBTool) Name() string        { return "kb" }
func (t *stubKBTool) Description() string { return "knowledge-base search stub" }

func (t *stubKBTool) Call(_ context.Context, input string) (string, error) {
	t.queries = append(t.queries, input)
	return t.response, t.err
}

func TestFollowUpMessagesIncludeLeadAndContext(t *testing.T) {
	kb := &stubKBTool{response: "AutoStream pricing starts at $29/month."}
	lead := tools.Lead{Name: "Ada", Email: "ada@example.com", Platform: "instagram"}

	msgs, err := followUpMessages(context.Background(), lead, kb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected lead and context messages, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0].Content, "ada@example.com") {
		t.Errorf("expected lead payload in first message, got %q", msgs[0].Content)
	}
	if !strings.Contains(msgs[1].Content, "pricing") {
		t.Errorf("expected product context in second message, got %q", msgs[1].Content)
	}
	if len(kb.queries) != 1 {
		t.Errorf("expected one knowledge-base lookup, got %d", len(kb.queries))
	}
}

func TestFollowUpMessagesWithoutKnowledgeBase(t *testing.T) {
	lead := tools.Lead{Name: "Ada", Email: "ada@example.com", Platform: "unknown"}

	msgs, err := followUpMessages(context.Background(), lead, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected only the lead message, got %d", len(msgs))
	}
}

func TestFollowUpMessagesKBFailureIsBestEffort(t *testing.T) {
	kb := &stubKBTool{err: errors.New("store unavailable")}
	lead := tools.Lead{Name: "Ada", Email: "ada@example.com", Platform: "unknown"}

	msgs, err := followUpMessages(context.Background(), lead, kb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected lookup failure to be swallowed, got %d messages", len(msgs))
	}
}
