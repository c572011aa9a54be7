// Package web serves the cycle status as JSON over HTTP.
package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"lookaway/internal/core/cycle"
	"lookaway/internal/core/timekeeper"
	"lookaway/internal/logs"

	"github.com/sirupsen/logrus"
)

// StatusSource supplies the status reported by the server.
type StatusSource interface {
	Status() cycle.Status
}

// StatusJSON is the /status.json document.
type StatusJSON struct {
	Phase    string     `json:"phase"`
	Title    string     `json:"title"`
	Work     EngineJSON `json:"work"`
	LookAway EngineJSON `json:"look_away"`
}

// EngineJSON describes one engine.
type EngineJSON struct {
	Name           string  `json:"name"`
	Running        bool    `json:"running"`
	Paused         bool    `json:"paused"`
	RemainingMs    int64   `json:"remaining_ms"`
	MaxRemainingMs int64   `json:"max_remaining_ms"`
	Progress       float64 `json:"progress"`
	Display        string  `json:"display"`
}

// Server serves the status endpoints.
type Server struct {
	httpServer *http.Server
	source     StatusSource
	logger     *logrus.Logger
}

// New creates a Server reading from source.
func New(addr string, source StatusSource, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logs.NewLogger("web")
	}
	s := &Server{source: source, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/status.json", s.handleStatus)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("status server listening")
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// FormatStatus converts a cycle status to its JSON document.
func FormatStatus(status cycle.Status) StatusJSON {
	return StatusJSON{
		Phase:    string(status.Phase),
		Title:    status.Title,
		Work:     formatEngine(status.Work),
		LookAway: formatEngine(status.LookAway),
	}
}

func formatEngine(snapshot timekeeper.Snapshot) EngineJSON {
	return EngineJSON{
		Name:           snapshot.Name,
		Running:        snapshot.Running,
		Paused:         snapshot.Paused,
		RemainingMs:    snapshot.Remaining.Milliseconds(),
		MaxRemainingMs: snapshot.MaxRemaining.Milliseconds(),
		Progress:       snapshot.Progress,
		Display:        snapshot.Display,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(FormatStatus(s.source.Status())); err != nil {
		s.logger.WithError(err).Warn("write status")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
