package runtime

import (
	"context"
	"time"

	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/oracle"
)

// classify performs one bounded oracle call. Transport errors and timeouts
// come back as *oracle.ParseError so callers handle a single failure type.
func (e *Engine) classify(ctx context.Context, sessionID string, req oracle.Request) (string, error) {
	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := e.oracle.Classify(callCtx, req)
	if err == nil {
		err = callCtx.Err()
	}
	if err != nil {
		err = &oracle.ParseError{Shape: req.Shape, Raw: raw, Err: err}
	}

	if e.hooks.OnOracleCall != nil {
		e.hooks.OnOracleCall(ctx, &domain.OracleEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventOracleCall, SessionID: sessionID},
			Shape:     string(req.Shape),
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	return raw, err
}
