// Package gateway is the HTTP surface: it accepts prompts, runs the
// orchestration loop and streams the result back.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/logging"
	"github.com/Cyclone1070/agentgate/internal/provider"
	"github.com/Cyclone1070/agentgate/internal/stream"
	"github.com/Cyclone1070/agentgate/internal/workflow"
)

// runner starts one orchestration run. loop.Loop implements it.
type runner interface {
	Start(ctx context.Context, history []provider.Message) <-chan workflow.Event
}

// Server serves the gateway endpoints.
type Server struct {
	cfg    *config.Config
	runner runner
	logger *slog.Logger
	server *http.Server

	addrMu sync.RWMutex
	addr   string
}

// NewServer builds a gateway server from config.
func NewServer(cfg *config.Config, runner runner, logger *slog.Logger) *Server {
	if cfg == nil {
		panic("cfg is required")
	}
	if runner == nil {
		panic("runner is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHello)
	mux.HandleFunc("POST /generate", s.handleGenerate)

	s.server = &http.Server{
		Handler:           RequestLogger(logger)(Recover(CORS(mux))),
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeoutMs) * time.Millisecond,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
	return s
}

// Handler returns the HTTP handler used by the server. For testing without binding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the bound address after Run has started listening. Empty before.
func (s *Server) Addr() string {
	s.addrMu.RLock()
	defer s.addrMu.RUnlock()
	return s.addr
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully. In-flight streams get the configured shutdown
// timeout to finish.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.addrMu.Lock()
	s.addr = ln.Addr().String()
	s.addrMu.Unlock()
	s.logger.Info("gateway listening", "addr", s.addr)

	done := make(chan error, 1)
	go func() {
		done <- s.server.Serve(ln)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	timeout := time.Duration(s.cfg.Server.ShutdownTimeoutMs) * time.Millisecond
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("gateway shutting down", "timeout", timeout)
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		_ = s.server.Close()
		return err
	}
	if err := <-done; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello, World!"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContextOr(r.Context(), s.logger)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	history, err := req.History()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	logger.Info("generate", "turns", len(history))
	events := s.runner.Start(ctx, history)
	responder := stream.Negotiate(r, w)

	if err := stream.Forward(responder, events); err != nil {
		logger.Info("client stream ended early", "error", err)
		cancel()
	}
	// Wait for the run to finish so nothing outlives the request.
	for range events {
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
