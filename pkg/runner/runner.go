package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/kawiarnia"
	"github.com/aretw0/kawiarnia/internal/logging"
	"github.com/aretw0/kawiarnia/pkg/domain"
)

// DefaultGreeting opens an interactive conversation.
const DefaultGreeting = "Dzień dobry! Witamy w kawiarni. Co mogę podać? Wpisz /menu, aby zobaczyć ofertę, lub /quit, aby zakończyć."

// Assistant is what the runner drives. *kawiarnia.Assistant implements it.
type Assistant interface {
	Submit(ctx context.Context, sessionID, text string) (*kawiarnia.Turn, error)
	Start(ctx context.Context, sessionID string) (*domain.Session, error)
	Reset(ctx context.Context, sessionID string) error
	ClearActivityLog(ctx context.Context, sessionID string) error
	Menu() string
}

var _ Assistant = (*kawiarnia.Assistant)(nil)

// Runner handles the chat loop for one conversation.
type Runner struct {
	Handler     IOHandler
	Interceptor CommandInterceptor
	Logger      *slog.Logger
	SessionID   string
	Headless    bool
	Greeting    string
}

// NewRunner creates a Runner on Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:   logging.NewNop(),
		Greeting: DefaultGreeting,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type command func(ctx context.Context, r *Runner, a Assistant) (quit bool, err error)

var commands = map[string]command{
	"/menu": func(ctx context.Context, r *Runner, a Assistant) (bool, error) {
		return false, r.Handler.Output(ctx, MenuEvent(a.Menu()))
	},
	"/cart": func(ctx context.Context, r *Runner, a Assistant) (bool, error) {
		s, err := a.Start(ctx, r.SessionID)
		if err != nil {
			return false, err
		}
		return false, r.Handler.Output(ctx, CartEvent(r.SessionID, s.Cart.Summary()))
	},
	"/log": func(ctx context.Context, r *Runner, a Assistant) (bool, error) {
		s, err := a.Start(ctx, r.SessionID)
		if err != nil {
			return false, err
		}
		return false, r.Handler.Output(ctx, LogEvent(r.SessionID, s.Report()))
	},
	"/reset": func(ctx context.Context, r *Runner, a Assistant) (bool, error) {
		return false, r.guarded(ctx, "/reset", "Rozmowa wyczyszczona.", a.Reset)
	},
	"/clearlog": func(ctx context.Context, r *Runner, a Assistant) (bool, error) {
		return false, r.guarded(ctx, "/clearlog", "Dziennik aktywności wyczyszczony.", a.ClearActivityLog)
	},
	"/quit": func(context.Context, *Runner, Assistant) (bool, error) {
		return true, nil
	},
}

func init() {
	commands["/exit"] = commands["/quit"]
}

// Run loops until the input ends, /quit, or ctx is done (including SIGINT).
func (r *Runner) Run(ctx context.Context, a Assistant) error {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	if r.Interceptor == nil {
		if r.Headless {
			r.Interceptor = AutoApproveMiddleware()
		} else {
			r.Interceptor = ConfirmationMiddleware(r.Handler)
		}
	}

	signals := NewSignalManager(ctx)
	defer signals.Stop()
	ctx = signals.Context()

	session, err := a.Start(ctx, r.SessionID)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to start session: %w", err)
	}
	r.SessionID = session.ID
	r.Logger.Debug("chat started", "session_id", r.SessionID, "messages", len(session.Messages))

	if !r.Headless && r.Greeting != "" {
		greeting := r.Greeting
		if last, ok := session.LastReply(); ok {
			greeting = last
		}
		if err := r.Handler.Output(ctx, Event{Type: EventReply, SessionID: r.SessionID, Text: greeting}); err != nil {
			return err
		}
	}

	for {
		line, err := r.Handler.Input(ctx)
		if err != nil {
			signals.CheckRace()
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				r.Logger.Debug("chat ended", "session_id", r.SessionID, "reason", err)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		if quit, err := r.step(ctx, a, line); err != nil || quit {
			return err
		}
	}
}

func (r *Runner) step(ctx context.Context, a Assistant, line string) (bool, error) {
	if strings.HasPrefix(line, "/") {
		name := strings.ToLower(strings.Fields(line)[0])
		cmd, ok := commands[name]
		if !ok {
			return false, r.Handler.Output(ctx, Event{Type: EventSystem, Text: "Nieznane polecenie. Dostępne: /menu, /cart, /log, /reset, /clearlog, /quit"})
		}
		quit, err := cmd(ctx, r, a)
		if err != nil && ctx.Err() == nil {
			r.Logger.Warn("command failed", "command", name, "err", err)
			return false, r.Handler.Output(ctx, Event{Type: EventError, Text: err.Error()})
		}
		return quit, nil
	}

	turn, err := a.Submit(ctx, r.SessionID, line)
	if err != nil {
		if ctx.Err() != nil {
			return true, nil
		}
		r.Logger.Error("turn failed", "session_id", r.SessionID, "err", err)
		return false, r.Handler.Output(ctx, Event{Type: EventError, SessionID: r.SessionID, Text: err.Error()})
	}
	return false, r.Handler.Output(ctx, ReplyEvent(turn))
}

func (r *Runner) guarded(ctx context.Context, name, done string, fn func(context.Context, string) error) error {
	ok, err := r.Interceptor(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return r.Handler.Output(ctx, Event{Type: EventSystem, Text: "Anulowano."})
	}
	if err := fn(ctx, r.SessionID); err != nil {
		return err
	}
	return r.Handler.Output(ctx, Event{Type: EventSystem, SessionID: r.SessionID, Text: done})
}
