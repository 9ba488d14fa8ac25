package ports

import (
	"context"

	"github.com/aretw0/kawiarnia/pkg/domain"
)

// StateStore keeps conversation sessions between turns. Stores must hand out
// independent copies: a loaded session shares no memory with the stored one.
type StateStore interface {
	// Save stores the session under sessionID.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves the session for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
