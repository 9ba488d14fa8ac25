// Package oracletest provides a scripted Oracle for tests.
package oracletest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/kawiarnia/pkg/oracle"
)

// ErrExhausted is returned when a Scripted oracle runs out of replies.
var ErrExhausted = errors.New("oracletest: no scripted reply left")

// Reply is one canned oracle answer.
type Reply struct {
	Raw string
	Err error
}

// Scripted replays canned replies in order, separately per shape.
type Scripted struct {
	mu      sync.Mutex
	replies map[oracle.Shape][]Reply
	calls   []oracle.Request
}

// New creates an empty Scripted oracle.
func New() *Scripted {
	return &Scripted{replies: make(map[oracle.Shape][]Reply)}
}

// On queues replies for shape.
func (s *Scripted) On(shape oracle.Shape, replies ...Reply) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[shape] = append(s.replies[shape], replies...)
	return s
}

// Valid queues a validation verdict.
func (s *Scripted) Valid(valid bool) *Scripted {
	return s.On(oracle.ShapeValidation, Reply{Raw: fmt.Sprintf(`{"is_valid": %t}`, valid)})
}

// Turn queues a turn payload.
func (s *Scripted) Turn(t TurnPayload) *Scripted {
	return s.On(oracle.ShapeTurn, Reply{Raw: t.JSON()})
}

// Raw queues a raw payload for shape.
func (s *Scripted) Raw(shape oracle.Shape, raw string) *Scripted {
	return s.On(shape, Reply{Raw: raw})
}

// Fail queues a transport error for shape.
func (s *Scripted) Fail(shape oracle.Shape, err error) *Scripted {
	return s.On(shape, Reply{Err: err})
}

// Classify implements oracle.Oracle.
func (s *Scripted) Classify(ctx context.Context, req oracle.Request) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	queue := s.replies[req.Shape]
	if len(queue) == 0 {
		s.mu.Unlock()
		return "", fmt.Errorf("%w for %s", ErrExhausted, req.Shape)
	}
	next := queue[0]
	s.replies[req.Shape] = queue[1:]
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return next.Raw, next.Err
}

// Calls returns the requests received so far.
func (s *Scripted) Calls() []oracle.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]oracle.Request(nil), s.calls...)
}

// Pending returns how many replies for shape are still queued.
func (s *Scripted) Pending(shape oracle.Shape) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.replies[shape])
}

// TurnPayload is a convenience builder for turn replies.
type TurnPayload struct {
	Intent         string   `json:"intent"`
	Drink          *string  `json:"drink_type"`
	Size           *string  `json:"size"`
	Customizations []string `json:"customizations"`
	Substitutions  []string `json:"substitutions"`
	Response       string   `json:"response"`
}

// JSON encodes the payload the way a well-behaved oracle would.
func (t TurnPayload) JSON() string {
	if t.Customizations == nil {
		t.Customizations = []string{}
	}
	if t.Substitutions == nil {
		t.Substitutions = []string{}
	}
	data, _ := json.Marshal(t)
	return string(data)
}

// Str returns a pointer to s, for optional payload fields.
func Str(s string) *string { return &s }
