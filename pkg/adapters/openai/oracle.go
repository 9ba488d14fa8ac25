// Package openai implements the classification oracle on top of any
// OpenAI-compatible chat completions endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/kawiarnia/internal/logging"
	"github.com/aretw0/kawiarnia/pkg/oracle"
	backend "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4o-mini"
	// DefaultBaseURL is the public OpenAI endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"
)

// ErrNoAPIKey is returned by New when no API key is given.
var ErrNoAPIKey = errors.New("openai: API key is required")

// Oracle asks a chat model for JSON classifications.
type Oracle struct {
	client  backend.Client
	model   string
	baseURL string
	retries int
	http    *http.Client
	logger  *slog.Logger
}

// Option configures the Oracle.
type Option func(*Oracle)

// WithModel selects the chat model.
func WithModel(model string) Option {
	return func(o *Oracle) {
		if model != "" {
			o.model = model
		}
	}
}

// WithBaseURL points the client at another OpenAI-compatible server.
func WithBaseURL(url string) Option {
	return func(o *Oracle) {
		if url != "" {
			o.baseURL = url
		}
	}
}

// WithMaxRetries sets how often transient failures are retried.
func WithMaxRetries(n int) Option {
	return func(o *Oracle) {
		o.retries = n
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Oracle) {
		o.http = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Oracle) {
		o.logger = l
	}
}

// New creates an oracle authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Oracle, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	o := &Oracle{
		model:   DefaultModel,
		baseURL: DefaultBaseURL,
		retries: 2,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(o.baseURL),
		option.WithMaxRetries(o.retries),
	}
	if o.http != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(o.http))
	}
	o.client = backend.NewClient(reqOpts...)
	return o, nil
}

// Model returns the configured chat model.
func (o *Oracle) Model() string { return o.model }

// Classify implements oracle.Oracle. The model is forced into JSON mode at
// temperature zero.
func (o *Oracle) Classify(ctx context.Context, req oracle.Request) (string, error) {
	params := backend.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []backend.ChatCompletionMessageParamUnion{
			backend.SystemMessage(req.System),
			backend.UserMessage(req.Prompt),
		},
		ResponseFormat: backend.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: backend.Float(0),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *backend.Error
		if errors.As(err, &apiErr) {
			o.logger.Warn("chat completion rejected", "shape", req.Shape, "status", apiErr.StatusCode)
		}
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	content := resp.Choices[0].Message.Content
	o.logger.Debug("chat completion", "shape", req.Shape, "model", o.model, "bytes", len(content))
	return content, nil
}
