package agent

import "github.com/Aksharma127/social-to-lead-agent/intent"

// Action identifies the handler that processes a turn.
type Action int

const (
	ActionFallback Action = iota
	ActionGreeting
	ActionRAG
	ActionLead
)

func (a Action) String() string {
	switch a {
	case ActionGreeting:
		return "greeting"
	case ActionRAG:
		return "rag"
	case ActionLead:
		return "lead"
	default:
		return "fallback"
	}
}

// Route selects exactly one handler for the current turn. An in-progress
// lead collection overrides whatever the classifier said this turn: a user
// answering "what's your email?" with an address must not be re-routed to
// an unrelated handler.
func Route(s *ConversationState) Action {
	if !s.LeadCaptured && s.CollectingLead {
		return ActionLead
	}

	switch s.Intent {
	case intent.Greeting:
		return ActionGreeting
	case intent.Inquiry:
		return ActionRAG
	case intent.HighIntent:
		return ActionLead
	default:
		return ActionFallback
	}
}
