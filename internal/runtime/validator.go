package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/oracle"
)

// Validate checks message against the content policy. On a well-formed
// verdict it records Valid and returns true. On a malformed verdict Valid is
// left untouched, the fallback reply is appended and false is returned: the
// turn must not be routed.
func (e *Engine) Validate(ctx context.Context, s domain.Session, message string) (domain.Session, bool) {
	raw, err := e.classify(ctx, s.ID, oracle.ValidationRequest(e.policy, message))
	if err == nil {
		var v oracle.Validation
		v, err = oracle.DecodeValidation(raw)
		if err == nil {
			next := s
			next.Valid = v.Valid
			return next.Audit(fmt.Sprintf("validate_user_input(%s): is_valid=%t", message, v.Valid)), true
		}
	}

	e.logger.Warn("validation failed", "session_id", s.ID, "error", err, "raw", raw)
	return s.Say(MsgFallback).Audit(fmt.Sprintf("validate_user_input(%s): %s | %v", message, MsgFallback, err)), false
}
