package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/kawiarnia/internal/logging"
	"github.com/aretw0/kawiarnia/pkg/catalog"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/oracle"
)

// DefaultOracleTimeout bounds a single oracle call.
const DefaultOracleTimeout = 30 * time.Second

// DefaultCheckoutKeywords trigger checkout without validation or routing.
var DefaultCheckoutKeywords = []string{"checkout", "finalizuj"}

// Engine is the order-taking state machine. It holds no session state:
// every call takes a Session and returns the next one.
type Engine struct {
	oracle   oracle.Oracle
	catalog  *catalog.Catalog
	policy   oracle.Policy
	timeout  time.Duration
	keywords []string
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPolicy replaces the content policy sent to the validator.
func WithPolicy(p oracle.Policy) EngineOption {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithOracleTimeout bounds every oracle call. Zero disables the bound.
func WithOracleTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithCheckoutKeywords replaces the checkout shortcut keywords.
// An empty list disables the shortcut.
func WithCheckoutKeywords(keywords ...string) EngineOption {
	return func(e *Engine) {
		e.keywords = append([]string(nil), keywords...)
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine that classifies with o and prices with cat.
func NewEngine(o oracle.Oracle, cat *catalog.Catalog, opts ...EngineOption) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	e := &Engine{
		oracle:   o,
		catalog:  cat,
		policy:   oracle.DefaultPolicy(),
		timeout:  DefaultOracleTimeout,
		keywords: DefaultCheckoutKeywords,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine prices with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Outcome is what a turn produced for the caller.
type Outcome struct {
	Route  domain.Route
	Intent domain.Intent
	Reply  string
}

// Turn processes one user message to completion. It never fails: every
// failure path ends in an assistant message and a log entry, and the
// returned session is usable for the next turn.
func (e *Engine) Turn(ctx context.Context, s domain.Session, message string) (domain.Session, Outcome) {
	start := e.now()
	if e.hooks.OnTurnStart != nil {
		e.hooks.OnTurnStart(ctx, &domain.TurnEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventTurnStart, SessionID: s.ID},
			Intent:    s.Intent,
		})
	}

	s = s.Hear(message)
	s, route := e.dispatch(ctx, s, message)
	s.UpdatedAt = e.now()

	reply, ok := s.LastReply()
	if !ok {
		reply = MsgInternalError
	}
	out := Outcome{Route: route, Intent: s.Intent, Reply: reply}

	e.logger.Debug("turn completed", "session_id", s.ID, "route", route, "intent", s.Intent, "cart_items", len(s.Cart.Items))
	if e.hooks.OnTurnEnd != nil {
		e.hooks.OnTurnEnd(ctx, &domain.TurnEvent{
			EventBase: domain.EventBase{Timestamp: s.UpdatedAt, Type: domain.EventTurnEnd, SessionID: s.ID},
			Route:     route,
			Intent:    s.Intent,
			Reply:     reply,
			Duration:  s.UpdatedAt.Sub(start),
		})
	}
	return s, out
}

func (e *Engine) dispatch(ctx context.Context, s domain.Session, message string) (domain.Session, domain.Route) {
	if IsCheckoutShortcut(message, e.keywords) {
		s = s.Audit("checkout_shortcut(" + message + ")")
		return e.checkout(ctx, s), domain.RouteShortcut
	}

	s, ok := e.Validate(ctx, s, message)
	if !ok {
		return s, domain.RouteFallback
	}

	proceed, entry := RouteValidity(s.Valid)
	s = s.Audit(entry)
	if !proceed {
		return s.Say(MsgRejected), domain.RouteRejected
	}

	s, ok = e.Process(ctx, s, message)
	if !ok {
		return s, domain.RouteFallback
	}

	route, entry := RouteIntent(s.Intent)
	s = s.Audit(entry)
	switch route {
	case domain.RouteAddToCart:
		return e.addToCart(ctx, s)
	case domain.RouteCheckout:
		return e.checkout(ctx, s), domain.RouteCheckout
	default:
		return s, domain.RouteContinue
	}
}

func (e *Engine) addToCart(ctx context.Context, s domain.Session) (domain.Session, domain.Route) {
	next, item, err := AddToCart(s, e.catalog)
	if err != nil {
		e.logger.Debug("add to cart skipped", "session_id", s.ID, "missing", s.Order.Missing())
		return next, domain.RouteIncomplete
	}
	if e.hooks.OnCartAdd != nil {
		e.hooks.OnCartAdd(ctx, &domain.CartEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventCartAdd, SessionID: s.ID},
			Item:      item,
			Total:     next.Cart.Total,
		})
	}
	return next, domain.RouteAddToCart
}

func (e *Engine) checkout(ctx context.Context, s domain.Session) domain.Session {
	items, total := len(s.Cart.Items), s.Cart.Total
	next, err := Checkout(s)
	if err != nil {
		e.logger.Debug("checkout on empty cart", "session_id", s.ID)
		return next
	}
	e.logger.Info("order completed", "session_id", s.ID, "items", items, "total", total.String())
	if e.hooks.OnCheckout != nil {
		e.hooks.OnCheckout(ctx, &domain.CheckoutEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventCheckout, SessionID: s.ID},
			Items:     items,
			Total:     total,
		})
	}
	return next
}
