package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpadapter "github.com/aretw0/kawiarnia/pkg/adapters/http"
	"github.com/aretw0/kawiarnia/pkg/adapters/mcp"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP servers.
const ShutdownTimeout = 5 * time.Second

// ServeOptions overrides the configured listen addresses.
type ServeOptions struct {
	Addr        string
	MetricsAddr string
	CORS        bool
}

// Serve runs the JSON API and, on its own listener, the Prometheus
// endpoint. With an empty metrics address /metrics is mounted on the API.
// Both stop when ctx is done.
func Serve(ctx context.Context, app *App, opts ServeOptions) error {
	if opts.Addr == "" {
		opts.Addr = app.Config.HTTP.Addr
	}

	apiOpts := []httpadapter.Option{
		httpadapter.WithLogger(app.Logger),
		httpadapter.WithMaxInputSize(app.Config.HTTP.MaxInputSize),
		httpadapter.WithCORS(opts.CORS),
	}
	if opts.MetricsAddr == "" {
		apiOpts = append(apiOpts, httpadapter.WithHandler("/metrics", app.Metrics.Handler()))
	}

	servers := []*http.Server{{
		Addr:              opts.Addr,
		Handler:           httpadapter.NewHandler(app.Assistant, apiOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if opts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		servers = append(servers, &http.Server{
			Addr:              opts.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			app.Logger.Info("Server listening", "addr", ln.Addr().String())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				app.Logger.Warn("Graceful shutdown did not complete", "addr", srv.Addr, "err", err)
				errs = append(errs, srv.Close())
			}
		}
		app.Logger.Info("Servers stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}

// ServeMCP exposes the assistant as MCP tools over stdio or SSE.
func ServeMCP(ctx context.Context, app *App, transport, addr string) error {
	if transport == "" {
		transport = app.Config.MCP.Transport
	}
	if addr == "" {
		addr = app.Config.MCP.Addr
	}

	srv := mcp.NewServer(app.Assistant, mcp.WithLogger(app.Logger))
	switch transport {
	case "stdio":
		app.Logger.Info("Starting MCP server", "transport", transport)
		return srv.ServeStdio()
	case "sse":
		app.Logger.Info("Starting MCP server", "transport", transport, "addr", addr)
		if err := srv.ServeSSE(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	return fmt.Errorf("unknown MCP transport %q (supported: stdio, sse)", transport)
}
