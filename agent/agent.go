package agent

import (
	"context"
	"log/slog"

	"github.com/Aksharma127/social-to-lead-agent/intent"
	"github.com/Aksharma127/social-to-lead-agent/rag"
	"github.com/Aksharma127/social-to-lead-agent/tools"
)

// Agent owns the per-turn classify → route → handle cycle. It is stateless
// across sessions; all session state lives in the ConversationState passed
// to RunTurn, so one Agent can serve many isolated sessions.
type Agent struct {
	classifier intent.Classifier

	greeting greetingHandler
	rag      ragHandler
	lead     leadHandler
	fallback fallbackHandler
}

func New(classifier intent.Classifier, retriever rag.Retriever, sink tools.Sink) *Agent {
	return &Agent{
		classifier: classifier,
		rag:        ragHandler{retriever: retriever},
		lead:       leadHandler{sink: sink},
	}
}

// RunTurn feeds one user utterance through the router and exactly one
// handler, returning the agent replies produced during the turn. Once the
// lead is captured the session is terminal: no classification, no state
// mutation, no replies.
func (a *Agent) RunTurn(ctx context.Context, s *ConversationState, input string) []string {
	if s.LeadCaptured {
		return nil
	}

	s.Input = input
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: input})
	turnStart := len(s.Messages)

	// Mid-collection turns answer our own prompt; reclassifying them would
	// derail the lead flow.
	if !s.CollectingLead && s.LastAction != LastLeadPrompted {
		res := a.classifier.Classify(ctx, input)
		s.Intent = res.Intent
		s.Confidence = res.Confidence
		s.LastAction = LastIntentClassified
		slog.Info("intent detected", "session", s.SessionID, "intent", res.Intent, "confidence", res.Confidence)
	}

	var h handler
	switch Route(s) {
	case ActionGreeting:
		h = a.greeting
	case ActionRAG:
		h = a.rag
	case ActionLead:
		h = a.lead
	default:
		h = a.fallback
	}
	h.handle(ctx, s)

	replies := make([]string, 0, len(s.Messages)-turnStart)
	for _, m := range s.Messages[turnStart:] {
		if m.Role == RoleAgent {
			replies = append(replies, m.Content)
		}
	}
	return replies
}
