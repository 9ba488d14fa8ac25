package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurnStart  EventType = "turn_start"
	EventTurnEnd    EventType = "turn_end"
	EventOracleCall EventType = "oracle_call"
	EventCartAdd    EventType = "cart_add"
	EventCheckout   EventType = "checkout"
)

// Route names the leaf a turn ended in.
type Route string

const (
	RouteRejected   Route = "rejected"
	RouteFallback   Route = "fallback"
	RouteContinue   Route = "continue"
	RouteAddToCart  Route = "add_to_cart"
	RouteCheckout   Route = "checkout"
	RouteShortcut   Route = "checkout_shortcut"
	RouteIncomplete Route = "incomplete_order"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TurnEvent marks the start or the end of a turn.
type TurnEvent struct {
	EventBase
	Route    Route         `json:"route,omitempty"`
	Intent   Intent        `json:"intent"`
	Reply    string        `json:"reply,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// OracleEvent describes one classification call.
type OracleEvent struct {
	EventBase
	Shape    string        `json:"shape"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// CartEvent describes a committed cart line.
type CartEvent struct {
	EventBase
	Item  CartItem `json:"item"`
	Total Money    `json:"total"`
}

// CheckoutEvent describes a finalized order.
type CheckoutEvent struct {
	EventBase
	Items int   `json:"items"`
	Total Money `json:"total"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTurnStart  func(context.Context, *TurnEvent)
	OnTurnEnd    func(context.Context, *TurnEvent)
	OnOracleCall func(context.Context, *OracleEvent)
	OnCartAdd    func(context.Context, *CartEvent)
	OnCheckout   func(context.Context, *CheckoutEvent)
}

// Chain combines hooks so that every non-nil callback runs in order.
func Chain(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTurnStart: func(ctx context.Context, e *TurnEvent) {
			for _, h := range hooks {
				if h.OnTurnStart != nil {
					h.OnTurnStart(ctx, e)
				}
			}
		},
		OnTurnEnd: func(ctx context.Context, e *TurnEvent) {
			for _, h := range hooks {
				if h.OnTurnEnd != nil {
					h.OnTurnEnd(ctx, e)
				}
			}
		},
		OnOracleCall: func(ctx context.Context, e *OracleEvent) {
			for _, h := range hooks {
				if h.OnOracleCall != nil {
					h.OnOracleCall(ctx, e)
				}
			}
		},
		OnCartAdd: func(ctx context.Context, e *CartEvent) {
			for _, h := range hooks {
				if h.OnCartAdd != nil {
					h.OnCartAdd(ctx, e)
				}
			}
		},
		OnCheckout: func(ctx context.Context, e *CheckoutEvent) {
			for _, h := range hooks {
				if h.OnCheckout != nil {
					h.OnCheckout(ctx, e)
				}
			}
		},
	}
}
