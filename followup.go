package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/flow/agent/multiagent/host"
	"github.com/cloudwego/eino/schema"
	lctools "github.com/tmc/langchaingo/tools"

	"github.com/Aksharma127/social-to-lead-agent/agents"
	"github.com/Aksharma127/social-to-lead-agent/tools"
)

// runFollowUp drafts a welcome email for a freshly captured lead by driving
// the enricher, scorer and email writer specialists in sequence. It is
// best-effort: the lead is already captured, so any failure here only costs
// the draft.
func runFollowUp(ctx context.Context, baseURL, model string, lead tools.Lead, kb lctools.Tool) (string, error) {
	h, err := newHost(ctx, baseURL, model)
	if err != nil {
		return "", fmt.Errorf("failed to create follow-up host: %w", err)
	}

	enricher, err := agents.NewLeadEnricher(ctx, baseURL, model)
	if err != nil {
		return "", fmt.Errorf("failed to create lead enricher: %w", err)
	}
	scorer, err := agents.NewLeadScorer(ctx, baseURL, model)
	if err != nil {
		return "", fmt.Errorf("failed to create lead scorer: %w", err)
	}
	writer, err := agents.NewEmailWriter(ctx, baseURL, model)
	if err != nil {
		return "", fmt.Errorf("failed to create email writer: %w", err)
	}

	ma, err := host.NewMultiAgent(ctx, &host.MultiAgentConfig{
		Host:        *h,
		Specialists: []*host.Specialist{enricher, scorer, writer},
	})
	if err != nil {
		return "", fmt.Errorf("failed to compose follow-up pipeline: %w", err)
	}

	input, err := followUpMessages(ctx, lead, kb)
	if err != nil {
		return "", err
	}

	out, err := ma.Generate(ctx, input)
	if err != nil {
		return "", fmt.Errorf("follow-up pipeline failed: %w", err)
	}
	return out.Content, nil
}

// followUpMessages builds the pipeline input: the captured lead as JSON,
// plus product context from the knowledge base when a search tool is
// available, so the email writer can reference real product facts. The
// lookup is best-effort.
func followUpMessages(ctx context.Context, lead tools.Lead, kb lctools.Tool) ([]*schema.Message, error) {
	payload, err := json.Marshal(lead)
	if err != nil {
		return nil, err
	}
	msgs := []*schema.Message{schema.UserMessage(string(payload))}

	if kb != nil {
		ctxText, err := kb.Call(ctx, "product overview pricing plans")
		if err != nil {
			slog.Warn("knowledge-base lookup for follow-up failed", "error", err)
		} else if ctxText != "" {
			msgs = append(msgs, schema.UserMessage("Product context:\n"+ctxText))
		}
	}
	return msgs, nil
}
