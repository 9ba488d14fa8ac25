// Package genai implements the classification oracle on Google Gemini.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/kawiarnia/internal/logging"
	"github.com/aretw0/kawiarnia/pkg/oracle"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrNoAPIKey is returned by New when no API key is given.
var ErrNoAPIKey = errors.New("genai: API key is required")

// Oracle asks Gemini for JSON classifications.
type Oracle struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

type config struct {
	model   string
	baseURL string
	logger  *slog.Logger
}

// Option configures the Oracle.
type Option func(*config)

// WithModel selects the Gemini model.
func WithModel(model string) Option {
	return func(c *config) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// New creates a Gemini oracle authenticated with apiKey.
func New(ctx context.Context, apiKey string, opts ...Option) (*Oracle, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	cfg := config{model: DefaultModel, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Oracle{client: client, model: cfg.model, logger: cfg.logger}, nil
}

// Model returns the configured model.
func (o *Oracle) Model() string { return o.model }

// Classify implements oracle.Oracle.
func (o *Oracle) Classify(ctx context.Context, req oracle.Request) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := o.client.Models.GenerateContent(ctx, o.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("genai: empty response")
	}
	o.logger.Debug("gemini classification", "shape", req.Shape, "model", o.model, "bytes", len(text))
	return text, nil
}
