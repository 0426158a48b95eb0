// Package agent holds the conversation state machine: the per-session
// state record, the turn router and the four handlers it dispatches to.
package agent

// Role tags a transcript entry's origin.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is a single transcript entry.
type Message struct {
	Role    Role
	Content string
}

// Keys into ConversationState.UserDetails.
const (
	DetailEmail    = "email"
	DetailName     = "name"
	DetailPlatform = "platform"
)

// LastAction labels, set by whichever step ran last in a turn.
const (
	LastIntentClassified = "intent_classified"
	LastGreeting         = "greeting_response"
	LastRAG              = "rag_response"
	LastLeadPrompted     = "lead_prompted"
	LastLeadCaptured     = "lead_captured"
	LastClarification    = "clarification_requested"
)

// ConversationState is the single mutable record for one session. Exactly
// one handler mutates it per turn; it is never shared between sessions.
type ConversationState struct {
	SessionID string

	// Input is the current turn's user utterance. Messages is the full
	// transcript, append-only across turns.
	Input    string
	Messages []Message

	Intent     string
	Confidence float64

	// UserDetails accumulates collected contact fields across turns and is
	// never reset for the lifetime of the session.
	UserDetails map[string]string

	// Context is the last retrieved knowledge-base text.
	Context string

	// LeadCaptured flips false→true at most once and never reverts.
	// CollectingLead is true while slot-filling is in progress and clears
	// only when the lead flow completes.
	LeadCaptured   bool
	CollectingLead bool

	LastAction string
}

func NewConversationState(sessionID string) *ConversationState {
	return &ConversationState{
		SessionID:   sessionID,
		UserDetails: make(map[string]string),
	}
}

func (s *ConversationState) reply(text string) {
	s.Messages = append(s.Messages, Message{Role: RoleAgent, Content: text})
}
