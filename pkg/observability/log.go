package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/kawiarnia/pkg/domain"
)

// LogHooks logs every lifecycle event at debug level, oracle failures at warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurnStart: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "turn_start", "session_id", e.SessionID)
		},
		OnTurnEnd: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "turn_end",
				"session_id", e.SessionID,
				"route", e.Route,
				"intent", e.Intent,
				"duration", e.Duration,
			)
		},
		OnOracleCall: func(ctx context.Context, e *domain.OracleEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "oracle_call failed", "session_id", e.SessionID, "shape", e.Shape, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "oracle_call", "session_id", e.SessionID, "shape", e.Shape, "duration", e.Duration)
		},
		OnCartAdd: func(ctx context.Context, e *domain.CartEvent) {
			logger.DebugContext(ctx, "cart_add", "session_id", e.SessionID, "drink", e.Item.Drink, "size", e.Item.Size, "price", e.Item.Price)
		},
		OnCheckout: func(ctx context.Context, e *domain.CheckoutEvent) {
			logger.InfoContext(ctx, "checkout", "session_id", e.SessionID, "items", e.Items, "total", e.Total)
		},
	}
}
