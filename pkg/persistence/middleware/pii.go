package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/ports"
)

// Mask replaces redacted text.
const Mask = "***"

// DefaultPIIPatterns match e-mail addresses, card-like digit runs and
// Polish phone numbers.
var DefaultPIIPatterns = []string{
	`[\w.+-]+@[\w-]+\.[\w.]+`,
	`\b(?:\d[ -]?){13,19}\b`,
	`(?:\+48[ -]?)?\b\d{3}[ -]?\d{3}[ -]?\d{3}\b`,
}

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware masks every match of patterns in the message history
// and the activity log before the session reaches the wrapped store.
func NewPIIMiddleware(patterns []string) (Middleware, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("pii pattern %q: %w", p, err)
		}
		compiled[i] = re
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: compiled}
	}, nil
}

func (m *piiMiddleware) redact(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, session *domain.Session) error {
	// The caller keeps its copy untouched.
	masked := session.Clone()
	for i := range masked.Messages {
		masked.Messages[i].Text = m.redact(masked.Messages[i].Text)
	}
	masked.Log = masked.Log.Map(m.redact)

	return m.next.Save(ctx, sessionID, &masked)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
