package kawiarnia

import (
	"context"

	"github.com/aretw0/kawiarnia/pkg/domain"
)

// Conversation binds the session-facing API to one session ID.
type Conversation struct {
	assistant *Assistant
	id        string
}

// Conversation returns a handle for sessionID. An empty ID gets a generated one.
func (a *Assistant) Conversation(sessionID string) *Conversation {
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	return &Conversation{assistant: a, id: sessionID}
}

// ID returns the session ID.
func (c *Conversation) ID() string { return c.id }

// SubmitMessage processes one message and returns the assistant reply.
func (c *Conversation) SubmitMessage(ctx context.Context, text string) (string, error) {
	return c.assistant.SubmitMessage(ctx, c.id, text)
}

// CartSummary returns the cart, empty if the conversation has not started.
func (c *Conversation) CartSummary(ctx context.Context) (domain.CartSummary, error) {
	s, err := c.assistant.Start(ctx, c.id)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return s.Cart.Summary(), nil
}

// ActivityLog returns the activity report.
func (c *Conversation) ActivityLog(ctx context.Context) (domain.ActivityReport, error) {
	s, err := c.assistant.Start(ctx, c.id)
	if err != nil {
		return domain.ActivityReport{}, err
	}
	return s.Report(), nil
}

// Reset clears the conversation while keeping the metrics.
func (c *Conversation) Reset(ctx context.Context) error {
	return c.assistant.Reset(ctx, c.id)
}

// ClearActivityLog empties the activity log.
func (c *Conversation) ClearActivityLog(ctx context.Context) error {
	return c.assistant.ClearActivityLog(ctx, c.id)
}
