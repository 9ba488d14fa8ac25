package runner

import (
	"context"
)

// EventType classifies what the runner shows.
type EventType string

const (
	EventReply  EventType = "reply"
	EventMenu   EventType = "menu"
	EventCart   EventType = "cart"
	EventLog    EventType = "log"
	EventSystem EventType = "system"
	EventError  EventType = "error"
)

// Event is one piece of output. Text is markdown for human front ends,
// Data the structured payload for machine ones.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	Text      string    `json:"text,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// IOHandler defines the strategy for interacting with the customer.
// This allows switching between Text (terminal) and JSON (structured) modes.
type IOHandler interface {
	// Output presents one event.
	Output(ctx context.Context, ev Event) error

	// Input reads the next customer line. It returns io.EOF when the
	// input is exhausted and ctx.Err() when ctx is done first.
	Input(ctx context.Context) (string, error)
}
