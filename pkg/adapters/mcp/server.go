// Package mcp exposes the session API as Model Context Protocol tools, so an
// agent can take orders on behalf of a customer.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/kawiarnia"
	"github.com/aretw0/kawiarnia/internal/logging"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MenuURI is the resource holding the rendered menu.
const MenuURI = "kawiarnia://menu"

// Service is the part of *kawiarnia.Assistant the MCP server drives.
type Service interface {
	Submit(ctx context.Context, sessionID, text string) (*kawiarnia.Turn, error)
	CartSummary(ctx context.Context, sessionID string) (domain.CartSummary, error)
	ActivityLog(ctx context.Context, sessionID string) (domain.ActivityReport, error)
	Reset(ctx context.Context, sessionID string) error
	ClearActivityLog(ctx context.Context, sessionID string) error
	Menu() string
}

// SubmitArgs are the arguments of submit_message.
type SubmitArgs struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// SessionArgs identify a session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// TurnResponse is the structured result of submit_message.
type TurnResponse struct {
	SessionID string             `json:"session_id" jsonschema_description:"Session the message was applied to"`
	Reply     string             `json:"reply" jsonschema_description:"Assistant reply for the customer"`
	Route     domain.Route       `json:"route" jsonschema_description:"How the turn ended"`
	Cart      domain.CartSummary `json:"cart" jsonschema_description:"Cart after the turn"`
}

// Server wraps an Assistant as an MCP server.
type Server struct {
	svc       Service
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a new MCP server for svc.
func NewServer(svc Service, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		mcpServer: server.NewMCPServer("kawiarnia-mcp", strings.TrimSpace(kawiarnia.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+localAddr(addr)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func localAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("submit_message",
		mcp.WithDescription("Send one customer message to the café assistant. Omit session_id to start a new conversation."),
		mcp.WithString("session_id", mcp.Description("Conversation ID (optional)")),
		mcp.WithString("message", mcp.Required(), mcp.Description("Customer message, usually in Polish")),
		mcp.WithOutputSchema[TurnResponse](),
	), mcp.NewStructuredToolHandler(s.handleSubmit))

	s.mcpServer.AddTool(mcp.NewTool("get_cart",
		mcp.WithDescription("Return the cart of a conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation ID")),
		mcp.WithOutputSchema[domain.CartSummary](),
	), mcp.NewStructuredToolHandler(s.handleCart))

	s.mcpServer.AddTool(mcp.NewTool("get_activity_log",
		mcp.WithDescription("Return metrics, activity log, cart and current order of a conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation ID")),
		mcp.WithOutputSchema[domain.ActivityReport](),
	), mcp.NewStructuredToolHandler(s.handleLog))

	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Clear the conversation, cart and order. Metrics are kept."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation ID")),
	), s.sessionCommand("reset", s.svc.Reset))

	s.mcpServer.AddTool(mcp.NewTool("clear_activity_log",
		mcp.WithDescription("Empty the activity log of a conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation ID")),
	), s.sessionCommand("clear_activity_log", s.svc.ClearActivityLog))
}

func (s *Server) handleSubmit(ctx context.Context, _ mcp.CallToolRequest, args SubmitArgs) (TurnResponse, error) {
	clean, err := runner.SanitizeInput(args.Message)
	if err != nil {
		s.logger.Warn("MCP submit_message: input rejected", "err", err, "size", len(args.Message))
		return TurnResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	sessionID := strings.TrimSpace(args.SessionID)
	if sessionID == "" {
		sessionID = kawiarnia.NewSessionID()
	}

	turn, err := s.svc.Submit(ctx, sessionID, clean)
	if err != nil {
		return TurnResponse{}, err
	}
	cart, err := s.svc.CartSummary(ctx, sessionID)
	if err != nil {
		return TurnResponse{}, err
	}
	return TurnResponse{SessionID: sessionID, Reply: turn.Reply, Route: turn.Route, Cart: cart}, nil
}

func (s *Server) handleCart(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (domain.CartSummary, error) {
	return s.svc.CartSummary(ctx, args.SessionID)
}

func (s *Server) handleLog(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (domain.ActivityReport, error) {
	return s.svc.ActivityLog(ctx, args.SessionID)
}

func (s *Server) sessionCommand(name string, fn func(context.Context, string) error) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := fn(ctx, sessionID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", name, err)), nil
		}
		return mcp.NewToolResultText("ok"), nil
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MenuURI, "Café menu",
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      MenuURI,
				MIMEType: "text/markdown",
				Text:     s.svc.Menu(),
			},
		}, nil
	})
}
