package runner

import (
	"context"
	"fmt"
	"strings"
)

// CommandInterceptor decides whether a destructive command may run.
type CommandInterceptor func(ctx context.Context, command string) (bool, error)

// MultiInterceptor chains interceptors; every one must allow.
func MultiInterceptor(interceptors ...CommandInterceptor) CommandInterceptor {
	return func(ctx context.Context, command string) (bool, error) {
		for _, interceptor := range interceptors {
			allowed, err := interceptor(ctx, command)
			if err != nil || !allowed {
				return false, err
			}
		}
		return true, nil
	}
}

// ConfirmationMiddleware asks the customer through handler before running.
func ConfirmationMiddleware(handler IOHandler) CommandInterceptor {
	return func(ctx context.Context, command string) (bool, error) {
		prompt := fmt.Sprintf("Czy na pewno wykonać %s? (t/n)", command)
		if err := handler.Output(ctx, Event{Type: EventSystem, Text: prompt}); err != nil {
			return false, err
		}
		answer, err := handler.Input(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "t", "tak", "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// AutoApproveMiddleware allows everything.
func AutoApproveMiddleware() CommandInterceptor {
	return func(context.Context, string) (bool, error) {
		return true, nil
	}
}
