package tools

import (
	"context"
	"testing"
)

type recordingSink struct {
	accept bool
	leads  []Lead
}

func (s *recordingSink) Submit(_ context.Context, lead Lead) bool {
	s.leads = append(s.leads, lead)
	return s.accept
}

func TestLogSinkAcceptsLeads(t *testing.T) {
	ok := LogSink{}.Submit(context.Background(), Lead{Name: "Ada", Email: "ada@example.com", Platform: "instagram"})
	if !ok {
		t.Error("LogSink must accept every lead")
	}
}

func TestCaptureLeadToolSubmitsPayload(t *testing.T) {
	sink := &recordingSink{accept: true}
	tool := CaptureLeadTool{Sink: sink}

	out, err := tool.Call(context.Background(), `{"name": "Ada", "email": "ada@example.com", "platform": "instagram"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "lead captured" {
		t.Errorf("expected capture confirmation, got %q", out)
	}
	want := Lead{Name: "Ada", Email: "ada@example.com", Platform: "instagram"}
	if len(sink.leads) != 1 || sink.leads[0] != want {
		t.Errorf("expected %+v submitted, got %+v", want, sink.leads)
	}
}

func TestCaptureLeadToolDefaultsPlatform(t *testing.T) {
	sink := &recordingSink{accept: true}
	tool := CaptureLeadTool{Sink: sink}

	if _, err := tool.Call(context.Background(), `{"name": "Ada", "email": "ada@example.com"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.leads[0].Platform != "unknown" {
		t.Errorf("expected platform %q, got %q", "unknown", sink.leads[0].Platform)
	}
}

func TestCaptureLeadToolRejectedSubmission(t *testing.T) {
	tool := CaptureLeadTool{Sink: &recordingSink{accept: false}}

	out, err := tool.Call(context.Background(), `{"name": "Ada", "email": "ada@example.com"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "lead submission rejected" {
		t.Errorf("expected rejection message, got %q", out)
	}
}

func TestCaptureLeadToolInvalidPayload(t *testing.T) {
	tool := CaptureLeadTool{Sink: &recordingSink{accept: true}}

	if _, err := tool.Call(context.Background(), "not json"); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
