package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/tools"
)

// Lead is a captured prospective-customer contact record.
type Lead struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Platform string `json:"platform"`
}

// Sink accepts finalized leads. Submit reports whether the lead was taken.
type Sink interface {
	Submit(ctx context.Context, lead Lead) bool
}

// LogSink records leads to the process log and always accepts them. It is
// the reference sink for local runs without a CRM backend.
type LogSink struct{}

func (LogSink) Submit(_ context.Context, lead Lead) bool {
	slog.Info("capturing lead", "name", lead.Name, "email", lead.Email, "platform", lead.Platform)
	return true
}

// CaptureLeadTool exposes lead submission as an agent tool.
type CaptureLeadTool struct {
	Sink Sink
}

func (t CaptureLeadTool) Name() string {
	return "capture_lead"
}

func (t CaptureLeadTool) Description() string {
	return "Submit a captured lead. Input is a JSON object with name, email and platform."
}

func (t CaptureLeadTool) Call(ctx context.Context, input string) (string, error) {
	var lead Lead
	if err := json.Unmarshal([]byte(input), &lead); err != nil {
		return "", fmt.Errorf("invalid lead payload: %w", err)
	}
	if lead.Platform == "" {
		lead.Platform = "unknown"
	}
	if !t.Sink.Submit(ctx, lead) {
		return "lead submission rejected", nil
	}
	return "lead captured", nil
}

var _ tools.Tool = (*CaptureLeadTool)(nil)
