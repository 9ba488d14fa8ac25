package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithHeadless skips the greeting and approves commands without asking.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithSessionID selects the conversation to resume or start.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithInterceptor guards destructive commands.
func WithInterceptor(interceptor CommandInterceptor) Option {
	return func(r *Runner) {
		r.Interceptor = interceptor
	}
}

// WithGreeting replaces the welcome message.
func WithGreeting(text string) Option {
	return func(r *Runner) {
		r.Greeting = text
	}
}
