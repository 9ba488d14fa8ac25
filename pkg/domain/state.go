package domain

import "time"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation history.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Session is the complete state of one conversation. It is a value: every
// processing stage takes a Session and returns the next one.
type Session struct {
	// ID identifies the conversation.
	ID string `json:"id"`

	// Valid is the outcome of the most recent successful validation.
	Valid bool `json:"is_valid"`

	// Intent is the latest intent reported by the oracle.
	Intent Intent `json:"intent"`

	// Messages is the conversation history.
	Messages []Message `json:"messages"`

	Cart  Cart         `json:"cart"`
	Order WorkingOrder `json:"current_order"`

	// Metrics are carried across resets.
	Metrics Metrics `json:"metrics"`

	// Log is the bounded activity log.
	Log ActivityLog `json:"activity_log"`

	UpdatedAt time.Time `json:"updated_at"`

	// Sealed carries the encrypted session when a store encrypts at rest.
	// The other fields of such an envelope are zero apart from ID.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewSession creates a clean session. logCapacity <= 0 selects the default.
func NewSession(id string, logCapacity int) Session {
	return Session{
		ID:    id,
		Valid: true,
		Log:   NewActivityLog(logCapacity),
	}
}

// Reset returns a clean session that keeps the id, metrics and log capacity.
func (s Session) Reset() Session {
	next := NewSession(s.ID, s.Log.Capacity())
	next.Metrics = s.Metrics
	return next
}

// Clone returns a deep copy of s.
func (s Session) Clone() Session {
	next := s
	if s.Messages != nil {
		next.Messages = make([]Message, len(s.Messages))
		copy(next.Messages, s.Messages)
	}
	next.Cart = s.Cart.Clone()
	next.Order = s.Order.Clone()
	next.Log = s.Log.Clone()
	if s.Sealed != nil {
		next.Sealed = append([]byte(nil), s.Sealed...)
	}
	return next
}

// Say returns a session with an assistant message appended.
func (s Session) Say(text string) Session {
	return s.appendMessage(RoleAssistant, text)
}

// Hear returns a session with a user message appended.
func (s Session) Hear(text string) Session {
	return s.appendMessage(RoleUser, text)
}

// Audit returns a session with entry appended to the activity log.
func (s Session) Audit(entry string) Session {
	next := s
	next.Log = s.Log.Append(entry)
	return next
}

// LastReply returns the most recent assistant message, if any.
func (s Session) LastReply() (string, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return s.Messages[i].Text, true
		}
	}
	return "", false
}

func (s Session) appendMessage(role Role, text string) Session {
	next := s
	next.Messages = make([]Message, len(s.Messages), len(s.Messages)+1)
	copy(next.Messages, s.Messages)
	next.Messages = append(next.Messages, Message{Role: role, Text: text})
	return next
}
