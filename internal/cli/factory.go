// Package cli wires configuration into a running assistant and hosts the
// command implementations behind cmd/kawiarnia.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/kawiarnia"
	"github.com/aretw0/kawiarnia/internal/config"
	"github.com/aretw0/kawiarnia/pkg/adapters/genai"
	"github.com/aretw0/kawiarnia/pkg/adapters/heuristic"
	"github.com/aretw0/kawiarnia/pkg/adapters/memory"
	"github.com/aretw0/kawiarnia/pkg/adapters/openai"
	redisadapter "github.com/aretw0/kawiarnia/pkg/adapters/redis"
	"github.com/aretw0/kawiarnia/pkg/catalog"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/observability"
	"github.com/aretw0/kawiarnia/pkg/oracle"
	"github.com/aretw0/kawiarnia/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// App is an assistant assembled from configuration, together with the
// resources that must be released when the process ends.
type App struct {
	Assistant *kawiarnia.Assistant
	Metrics   *observability.Metrics
	Config    config.Config
	Logger    *slog.Logger

	closers []func() error
}

// Close releases the backing store connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// Build assembles an App. A nil registry gives the metrics a private one.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger, reg *prometheus.Registry) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		cat = loaded
	}

	o, err := newOracle(ctx, cfg.Oracle, cat, logger)
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	app.Metrics = metrics

	opts := []kawiarnia.Option{
		kawiarnia.WithCatalog(cat),
		kawiarnia.WithLogger(logger),
		kawiarnia.WithOracleTimeout(cfg.Oracle.Timeout),
		kawiarnia.WithCheckoutKeywords(cfg.Session.CheckoutKeywords...),
		kawiarnia.WithLogCapacity(cfg.Session.LogCapacity),
		kawiarnia.WithLifecycleHooks(domain.Chain(
			observability.LogHooks(logger),
			metrics.Hooks(),
		)),
	}

	mws, err := storeMiddlewares(cfg.Store)
	if err != nil {
		return nil, err
	}

	switch cfg.Store.Driver {
	case config.DriverRedis:
		r := cfg.Store.Redis
		store := redisadapter.New(r.Addr, r.Password, r.DB,
			redisadapter.WithPrefix(r.Prefix),
			redisadapter.WithTTL(r.TTL),
		)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect redis %s: %w", r.Addr, err)
		}
		app.closers = append(app.closers, store.Close)
		opts = append(opts,
			kawiarnia.WithStore(middleware.Chain(store, mws...)),
			kawiarnia.WithLocker(redisadapter.NewLocker(store.Client(), r.Prefix), cfg.Store.LockTTL),
		)
		logger.Debug("Session store ready", "driver", "redis", "addr", r.Addr)
	default:
		opts = append(opts, kawiarnia.WithStore(middleware.Chain(memory.NewStore(), mws...)))
		logger.Debug("Session store ready", "driver", "memory")
	}

	a, err := kawiarnia.New(o, opts...)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Assistant = a
	return app, nil
}

func newOracle(ctx context.Context, cfg config.OracleConfig, cat *catalog.Catalog, logger *slog.Logger) (oracle.Oracle, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		opts := []openai.Option{openai.WithLogger(logger)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		o, err := openai.New(cfg.APIKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("openai oracle: %w", err)
		}
		logger.Debug("Oracle ready", "provider", cfg.Provider, "model", o.Model())
		return o, nil
	case config.ProviderGemini:
		opts := []genai.Option{genai.WithLogger(logger)}
		if cfg.Model != "" {
			opts = append(opts, genai.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, genai.WithBaseURL(cfg.BaseURL))
		}
		o, err := genai.New(ctx, cfg.APIKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("gemini oracle: %w", err)
		}
		logger.Debug("Oracle ready", "provider", cfg.Provider)
		return o, nil
	case config.ProviderHeuristic, "":
		logger.Debug("Oracle ready", "provider", config.ProviderHeuristic)
		return heuristic.New(cat), nil
	}
	return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
}

// storeMiddlewares returns redaction before encryption, so sealed sessions
// never hold unmasked personal data.
func storeMiddlewares(cfg config.StoreConfig) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if cfg.Redact {
		patterns := cfg.RedactPatterns
		if len(patterns) == 0 {
			patterns = middleware.DefaultPIIPatterns
		}
		pii, err := middleware.NewPIIMiddleware(patterns)
		if err != nil {
			return nil, err
		}
		mws = append(mws, pii)
	}

	active, fallback, err := cfg.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallback})
		if err != nil {
			return nil, err
		}
		mws = append(mws, enc)
	}
	return mws, nil
}
