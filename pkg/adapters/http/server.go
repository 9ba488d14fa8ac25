package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/kawiarnia"
	"github.com/aretw0/kawiarnia/internal/logging"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/runner"
	"github.com/go-chi/chi/v5"
)

// Service is the session-facing API served over HTTP. *kawiarnia.Assistant
// implements it.
type Service interface {
	Submit(ctx context.Context, sessionID, text string) (*kawiarnia.Turn, error)
	Start(ctx context.Context, sessionID string) (*domain.Session, error)
	CartSummary(ctx context.Context, sessionID string) (domain.CartSummary, error)
	ActivityLog(ctx context.Context, sessionID string) (domain.ActivityReport, error)
	Reset(ctx context.Context, sessionID string) error
	ClearActivityLog(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, sessionID string) error
	Menu() string
}

var _ Service = (*kawiarnia.Assistant)(nil)

// Server handles the HTTP routes.
type Server struct {
	Service Service
	Streams *StreamManager

	logger    *slog.Logger
	maxInput  int
	extraMux  map[string]http.Handler
	allowCORS bool
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMaxInputSize bounds message bodies (default runner.MaxInputSize()).
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxInput = n
		}
	}
}

// WithHandler mounts an extra handler, e.g. /metrics.
func WithHandler(pattern string, h http.Handler) Option {
	return func(s *Server) {
		s.extraMux[pattern] = h
	}
}

// WithCORS toggles permissive CORS headers (on by default).
func WithCORS(enabled bool) Option {
	return func(s *Server) {
		s.allowCORS = enabled
	}
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc Service, opts ...Option) http.Handler {
	s := &Server{
		Service:   svc,
		logger:    logging.NewNop(),
		maxInput:  runner.MaxInputSize(),
		extraMux:  make(map[string]http.Handler),
		allowCORS: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/menu", s.GetMenu)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/messages", s.SubmitMessage)
			r.Get("/cart", s.GetCart)
			r.Get("/log", s.GetLog)
			r.Delete("/log", s.ClearLog)
			r.Post("/reset", s.ResetSession)
		})
	})

	for pattern, h := range s.extraMux {
		r.Handle(pattern, h)
	}

	if !s.allowCORS {
		return r
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type createSessionRequest struct {
	SessionID string `json:"session_id"`
}

type messageRequest struct {
	Message string `json:"message"`
}

// CreateSession handles POST /sessions. The body is optional.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			s.logger.Warn("CreateSession: invalid request body", "err", err)
			return
		}
	}

	session, err := s.Service.Start(r.Context(), strings.TrimSpace(body.SessionID))
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"session_id": session.ID})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Service.Sessions(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	report, err := s.Service.ActivityLog(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.CurrentState)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Service.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitMessage handles POST /sessions/{id}/messages.
func (s *Server) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body messageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, int64(s.maxInput)*4)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("SubmitMessage: invalid request body", "err", err)
		return
	}

	text, err := runner.Sanitize(body.Message, s.maxInput)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.logger.Warn("SubmitMessage: input rejected", "err", err, "size", len(body.Message))
		return
	}

	turn, err := s.Service.Submit(r.Context(), sessionID, text)
	if err != nil {
		s.fail(w, "SubmitMessage", err)
		return
	}

	if turn.Diff != nil {
		if data, err := json.Marshal(turn); err == nil {
			s.Streams.Broadcast(sessionID, string(data))
		}
	}
	s.writeJSON(w, http.StatusOK, turn)
}

// GetCart handles GET /sessions/{id}/cart.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.Service.CartSummary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.fail(w, "GetCart", err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

// GetLog handles GET /sessions/{id}/log. ?format=text returns the plain
// text rendering.
func (s *Server) GetLog(w http.ResponseWriter, r *http.Request) {
	report, err := s.Service.ActivityLog(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.fail(w, "GetLog", err)
		return
	}
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(report.Text()))
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// ClearLog handles DELETE /sessions/{id}/log.
func (s *Server) ClearLog(w http.ResponseWriter, r *http.Request) {
	if err := s.Service.ClearActivityLog(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.fail(w, "ClearLog", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetSession handles POST /sessions/{id}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := s.Service.Reset(r.Context(), sessionID); err != nil {
		s.fail(w, "ResetSession", err)
		return
	}
	s.Streams.Broadcast(sessionID, `{"session_id":"`+sessionID+`","reset":true}`)
	w.WriteHeader(http.StatusNoContent)
}

// GetMenu handles GET /menu.
func (s *Server) GetMenu(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"menu": s.Service.Menu()})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "kawiarnia-http",
		"version": strings.TrimSpace(kawiarnia.Version),
	})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, context.Canceled) {
		s.logger.Debug(op+": canceled", "err", err)
		return
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
	s.logger.Error(op+" failed", "err", err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
