package agent

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Aksharma127/social-to-lead-agent/rag"
	"github.com/Aksharma127/social-to-lead-agent/tools"
)

const (
	greetingReply   = "Hello! How can I help you today?"
	fallbackReply   = "Could you please clarify your request?"
	askEmailReply   = "Please share your email address to proceed."
	askNameReply    = "Thanks! Could you also share your name?"
	capturedReply   = "You're all set! Our team will contact you shortly."
	sinkFailedReply = "Sorry, something went wrong saving your details. Please reach out again and we'll pick it up from here."
	noContextReply  = "I couldn't find any relevant information on that."
)

var emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

// extractEmail returns the first email-shaped substring of text, or "".
func extractEmail(text string) string {
	return emailRe.FindString(text)
}

// handler processes one routed turn, mutating the session state in place.
type handler interface {
	handle(ctx context.Context, s *ConversationState)
}

type greetingHandler struct{}

func (greetingHandler) handle(_ context.Context, s *ConversationState) {
	s.reply(greetingReply)
	s.LastAction = LastGreeting
}

type fallbackHandler struct{}

func (fallbackHandler) handle(_ context.Context, s *ConversationState) {
	s.reply(fallbackReply)
	s.LastAction = LastClarification
}

type ragHandler struct {
	retriever rag.Retriever
}

func (h ragHandler) handle(ctx context.Context, s *ConversationState) {
	text, err := h.retriever.Retrieve(ctx, s.Input, rag.DefaultTopK)
	if err != nil {
		slog.Warn("retrieval failed", "session", s.SessionID, "error", err)
		text = ""
	}
	if text == "" {
		s.reply(noContextReply)
	} else {
		s.Context = text
		s.reply("Here's some relevant information:\n" + text)
	}
	s.LastAction = LastRAG
}

// leadHandler runs the slot-filling flow: email first, then name, then
// submission. A single message can carry the flow forward at most one slot
// per missing field, except that a found email falls through to the name
// check in the same turn.
type leadHandler struct {
	sink tools.Sink
}

func (h leadHandler) handle(ctx context.Context, s *ConversationState) {
	if s.UserDetails[DetailEmail] == "" {
		email := extractEmail(s.Input)
		if email == "" {
			s.reply(askEmailReply)
			s.LastAction = LastLeadPrompted
			s.CollectingLead = true
			return
		}
		s.UserDetails[DetailEmail] = email
	}

	if s.UserDetails[DetailName] == "" {
		// A bare email address is an answer to the email prompt, not a name.
		if s.Input == "" || extractEmail(s.Input) != "" {
			s.reply(askNameReply)
			s.LastAction = LastLeadPrompted
			s.CollectingLead = true
			return
		}
		s.UserDetails[DetailName] = strings.TrimSpace(s.Input)
	}

	lead := tools.Lead{
		Name:     s.UserDetails[DetailName],
		Email:    s.UserDetails[DetailEmail],
		Platform: s.UserDetails[DetailPlatform],
	}
	if lead.Platform == "" {
		lead.Platform = "unknown"
	}

	if h.sink.Submit(ctx, lead) {
		s.LeadCaptured = true
		s.reply(capturedReply)
	} else {
		// Details stay in UserDetails, so a later high-intent turn lands
		// back here with both slots full and resubmits.
		slog.Warn("lead submission rejected", "session", s.SessionID, "email", lead.Email)
		s.reply(sinkFailedReply)
	}
	s.LastAction = LastLeadCaptured
	s.CollectingLead = false
}
