package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/kawiarnia"
	"github.com/aretw0/kawiarnia/internal/presentation/tui"
	"github.com/aretw0/kawiarnia/pkg/runner"
	"golang.org/x/term"
)

// ChatOptions configures an interactive or piped conversation.
type ChatOptions struct {
	SessionID string
	JSON      bool
	Headless  bool
	Fresh     bool

	In  io.Reader
	Out io.Writer
}

// isTerminal reports whether r and w are both attached to a TTY.
func isTerminal(r io.Reader, w io.Writer) bool {
	in, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return false
	}
	out, ok := w.(*os.File)
	return ok && term.IsTerminal(int(out.Fd()))
}

// Chat runs one conversation until the input ends or ctx is done. Piped
// input implies headless mode, so no banner, greeting or confirmation
// prompts end up in the output.
func Chat(ctx context.Context, app *App, opts ChatOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.SessionID == "" {
		opts.SessionID = kawiarnia.NewSessionID()
	}

	interactive := isTerminal(opts.In, opts.Out)
	headless := opts.Headless || opts.JSON || !interactive

	if opts.Fresh {
		if err := app.Assistant.Delete(ctx, opts.SessionID); err != nil {
			return fmt.Errorf("reset session %s: %w", opts.SessionID, err)
		}
	}

	var handler runner.IOHandler
	switch {
	case opts.JSON:
		handler = runner.NewJSONHandler(opts.In, opts.Out)
	case interactive:
		tui.PrintBanner(opts.Out, kawiarnia.Version)
		handler = runner.NewTextHandler(opts.In, opts.Out,
			runner.WithTextHandlerRenderer(tui.NewRenderer()))
	default:
		handler = runner.NewTextHandler(opts.In, opts.Out, runner.WithPrompt(""))
	}

	r := runner.NewRunner(
		runner.WithLogger(app.Logger),
		runner.WithInputHandler(handler),
		runner.WithHeadless(headless),
		runner.WithSessionID(opts.SessionID),
	)

	app.Logger.Info("Chat started", "session_id", opts.SessionID, "interactive", interactive)
	if err := r.Run(ctx, app.Assistant); err != nil {
		return err
	}
	app.Logger.Info("Chat finished", "session_id", opts.SessionID)
	return nil
}
