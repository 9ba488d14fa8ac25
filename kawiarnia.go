package kawiarnia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/kawiarnia/internal/logging"
	"github.com/aretw0/kawiarnia/internal/runtime"
	"github.com/aretw0/kawiarnia/pkg/adapters/memory"
	"github.com/aretw0/kawiarnia/pkg/catalog"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/oracle"
	"github.com/aretw0/kawiarnia/pkg/ports"
	"github.com/aretw0/kawiarnia/pkg/session"
	"github.com/google/uuid"
)

// ErrNoOracle is returned by New when no oracle is given.
var ErrNoOracle = errors.New("kawiarnia: an oracle is required")

// Assistant is the high-level entry point of the library. It hosts any
// number of conversations, each identified by a session ID, and exposes the
// session-facing API used by front ends.
type Assistant struct {
	engine  *runtime.Engine
	manager *session.Manager

	oracle      oracle.Oracle
	catalog     *catalog.Catalog
	store       ports.StateStore
	locker      ports.DistributedLocker
	lockTTL     time.Duration
	logCapacity int
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
}

// Option defines a functional option for configuring the Assistant.
type Option func(*Assistant)

// WithCatalog replaces the built-in menu.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *Assistant) {
		a.catalog = c
	}
}

// WithStore sets where sessions live between turns (default: in memory).
func WithStore(store ports.StateStore) Option {
	return func(a *Assistant) {
		a.store = store
	}
}

// WithLocker enables distributed locking of sessions across replicas.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(a *Assistant) {
		a.locker = locker
		a.lockTTL = ttl
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Assistant) {
		a.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithPolicy replaces the content policy enforced on every message.
func WithPolicy(p oracle.Policy) Option {
	return func(a *Assistant) {
		a.runtimeOpts = append(a.runtimeOpts, runtime.WithPolicy(p))
	}
}

// WithOracleTimeout bounds every oracle call (default 30s).
func WithOracleTimeout(d time.Duration) Option {
	return func(a *Assistant) {
		a.runtimeOpts = append(a.runtimeOpts, runtime.WithOracleTimeout(d))
	}
}

// WithCheckoutKeywords replaces the words that trigger checkout directly.
func WithCheckoutKeywords(keywords ...string) Option {
	return func(a *Assistant) {
		a.runtimeOpts = append(a.runtimeOpts, runtime.WithCheckoutKeywords(keywords...))
	}
}

// WithLogCapacity bounds the activity log of new sessions.
func WithLogCapacity(n int) Option {
	return func(a *Assistant) {
		a.logCapacity = n
	}
}

// New creates an Assistant that classifies messages with o.
func New(o oracle.Oracle, opts ...Option) (*Assistant, error) {
	if o == nil {
		return nil, ErrNoOracle
	}
	a := &Assistant{oracle: o}
	for _, opt := range opts {
		opt(a)
	}

	if a.catalog == nil {
		a.catalog = catalog.Default()
	}
	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(a.hooks),
		runtime.WithLogger(a.logger),
	}
	a.engine = runtime.NewEngine(a.oracle, a.catalog, append(runtimeOpts, a.runtimeOpts...)...)

	managerOpts := []session.Option{
		session.WithLogger(a.logger),
		session.WithLogCapacity(a.logCapacity),
	}
	if a.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(a.locker), session.WithLockTTL(a.lockTTL))
	}
	a.manager = session.NewManager(a.store, managerOpts...)

	return a, nil
}

// NewSessionID returns a fresh random session ID.
func NewSessionID() string {
	return uuid.NewString()
}

// Turn is the full result of one submitted message.
type Turn struct {
	SessionID string              `json:"session_id"`
	Reply     string              `json:"reply"`
	Route     domain.Route        `json:"route"`
	Intent    domain.Intent       `json:"intent"`
	Diff      *domain.SessionDiff `json:"diff,omitempty"`
}

// Submit processes one customer message in session sessionID, creating the
// session on first use. Turns of the same session never overlap.
func (a *Assistant) Submit(ctx context.Context, sessionID, text string) (*Turn, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	var turn *Turn
	_, err := a.manager.Update(ctx, sessionID, func(s domain.Session) (domain.Session, error) {
		before := s.Clone()
		next, out := a.engine.Turn(ctx, s, text)
		turn = &Turn{
			SessionID: sessionID,
			Reply:     out.Reply,
			Route:     out.Route,
			Intent:    out.Intent,
			Diff:      domain.Diff(&before, &next),
		}
		return next, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process message: %w", err)
	}
	return turn, nil
}

// SubmitMessage processes one message and returns the assistant reply.
func (a *Assistant) SubmitMessage(ctx context.Context, sessionID, text string) (string, error) {
	turn, err := a.Submit(ctx, sessionID, text)
	if err != nil {
		return "", err
	}
	return turn.Reply, nil
}

// Start returns the session, creating it if needed. An empty ID gets a generated one.
func (a *Assistant) Start(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	return a.manager.LoadOrStart(ctx, sessionID)
}

// Session returns a snapshot of an existing session.
func (a *Assistant) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return a.manager.Load(ctx, sessionID)
}

// CartSummary returns the cart of an existing session.
func (a *Assistant) CartSummary(ctx context.Context, sessionID string) (domain.CartSummary, error) {
	s, err := a.manager.Load(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return s.Cart.Summary(), nil
}

// ActivityLog returns the activity report of an existing session.
func (a *Assistant) ActivityLog(ctx context.Context, sessionID string) (domain.ActivityReport, error) {
	s, err := a.manager.Load(ctx, sessionID)
	if err != nil {
		return domain.ActivityReport{}, err
	}
	return s.Report(), nil
}

// Reset clears the conversation, cart and order of a session while keeping
// its metrics. It waits for an in-flight turn of the same session and fails
// with domain.ErrSessionNotFound for unknown sessions.
func (a *Assistant) Reset(ctx context.Context, sessionID string) error {
	_, err := a.manager.Modify(ctx, sessionID, func(s domain.Session) (domain.Session, error) {
		a.logger.Info("session reset", "session_id", sessionID, "orders_completed", s.Metrics.OrdersCompleted)
		next := s.Reset()
		next.UpdatedAt = time.Now()
		return next, nil
	})
	return err
}

// ClearActivityLog empties the activity log of an existing session.
func (a *Assistant) ClearActivityLog(ctx context.Context, sessionID string) error {
	_, err := a.manager.Modify(ctx, sessionID, func(s domain.Session) (domain.Session, error) {
		s.Log = s.Log.Cleared()
		s.UpdatedAt = time.Now()
		return s, nil
	})
	return err
}

// Sessions lists the IDs of stored sessions.
func (a *Assistant) Sessions(ctx context.Context) ([]string, error) {
	return a.manager.List(ctx)
}

// Delete removes a session.
func (a *Assistant) Delete(ctx context.Context, sessionID string) error {
	return a.manager.Delete(ctx, sessionID)
}

// Catalog returns the menu the assistant prices with.
func (a *Assistant) Catalog() *catalog.Catalog {
	return a.catalog
}

// Menu renders the menu as markdown.
func (a *Assistant) Menu() string {
	return a.catalog.MenuText()
}
