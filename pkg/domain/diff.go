package domain

import (
	"reflect"
)

// SessionDiff represents the changes a turn made to a session.
// It is designed to be serialized to JSON for partial updates on the client.
type SessionDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Valid  *bool         `json:"is_valid,omitempty"`
	Intent *Intent       `json:"intent,omitempty"`
	Order  *WorkingOrder `json:"current_order,omitempty"`
	Cart   *CartSummary  `json:"cart,omitempty"`

	Metrics *Metrics `json:"metrics,omitempty"`

	// Messages contains only messages appended since the old session.
	Messages []Message `json:"messages,omitempty"`
}

// Diff calculates the difference between oldSession and newSession.
// If oldSession is nil, the diff describes the whole of newSession.
// It returns nil when nothing changed.
func Diff(oldSession, newSession *Session) *SessionDiff {
	if newSession == nil {
		return nil
	}

	diff := &SessionDiff{SessionID: newSession.ID}

	if oldSession == nil || oldSession.Valid != newSession.Valid {
		v := newSession.Valid
		diff.Valid = &v
	}
	if oldSession == nil || oldSession.Intent != newSession.Intent {
		i := newSession.Intent
		diff.Intent = &i
	}
	if oldSession == nil || !reflect.DeepEqual(oldSession.Order, newSession.Order) {
		o := newSession.Order.Clone()
		diff.Order = &o
	}
	if oldSession == nil || !reflect.DeepEqual(oldSession.Cart, newSession.Cart) {
		c := newSession.Cart.Summary()
		diff.Cart = &c
	}
	if oldSession == nil || oldSession.Metrics != newSession.Metrics {
		m := newSession.Metrics
		diff.Metrics = &m
	}
	diff.Messages = diffMessages(oldSession, newSession)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffMessages assumes append-only history. A shorter history (after a
// reset) is sent whole.
func diffMessages(old, new *Session) []Message {
	if len(new.Messages) == 0 {
		return nil
	}
	if old == nil || len(new.Messages) < len(old.Messages) {
		return new.Messages
	}
	if len(new.Messages) > len(old.Messages) {
		return new.Messages[len(old.Messages):]
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SessionDiff) IsEmpty() bool {
	return d.Valid == nil &&
		d.Intent == nil &&
		d.Order == nil &&
		d.Cart == nil &&
		d.Metrics == nil &&
		len(d.Messages) == 0
}
