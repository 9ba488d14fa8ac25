package runtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/oracle"
)

// Process sends the message and the working order to the oracle and merges
// the reported slots. The oracle's response is appended verbatim. On a
// malformed reply neither the order nor the intent changes, the fallback
// reply is appended and false is returned.
func (e *Engine) Process(ctx context.Context, s domain.Session, message string) (domain.Session, bool) {
	raw, err := e.classify(ctx, s.ID, oracle.TurnRequest(e.catalog, s.Order, message))
	if err == nil {
		var res oracle.TurnResult
		res, err = oracle.DecodeTurn(raw)
		if err == nil {
			next := ApplyTurn(s, res)
			return next.Audit(fmt.Sprintf("process_user_input(%s): intent=%s order=%s", message, res.Intent, orderJSON(next.Order))), true
		}
	}

	e.logger.Warn("turn processing failed", "session_id", s.ID, "error", err, "raw", raw)
	return s.Say(MsgFallback).Audit(fmt.Sprintf("process_user_input(%s): %s | %v", message, MsgFallback, err)), false
}

// ApplyTurn merges a decoded turn into the session. A missing intent keeps
// the previous one.
func ApplyTurn(s domain.Session, res oracle.TurnResult) domain.Session {
	next := s
	if res.Intent.IsSet() {
		next.Intent = res.Intent
	}
	next.Order = s.Order.Merge(res.Update)
	return next.Say(res.Response)
}

func orderJSON(o domain.WorkingOrder) string {
	data, err := json.Marshal(o)
	if err != nil {
		return "{}"
	}
	return string(data)
}
