// Package server exposes daemon health over HTTP and websocket.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"daemonwatch/internal/config"
	"daemonwatch/internal/display"
	"daemonwatch/internal/heartbeat"
	"daemonwatch/internal/metrics"
	"daemonwatch/internal/storage"
)

// Server wraps HTTP serving of the dashboard API.
type Server struct {
	httpServer *http.Server
	cfg        config.Config
	store      *storage.HeartbeatStore
	runLog     *storage.RunLog
	log        zerolog.Logger
	runsLimit  int
	now        func() time.Time
}

// New creates a configured HTTP server for the dashboard.
func New(addr string, cfg config.Config, store *storage.HeartbeatStore, runLog *storage.RunLog, log zerolog.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{Addr: addr, Handler: mux},
		cfg:        cfg,
		store:      store,
		runLog:     runLog,
		log:        log.With().Str("component", "server").Logger(),
		runsLimit:  200,
		now:        time.Now,
	}
	s.registerRoutes(mux)
	return s
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/daemons", s.handleDaemons)
	mux.HandleFunc("/api/daemons/rows", s.handleDaemonRows)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/api/uptime", s.handleUptime)
	mux.HandleFunc("/ws/daemons", s.handleDaemonsWS)
}

func (s *Server) handleDaemons(w http.ResponseWriter, _ *http.Request) {
	snap := heartbeat.Snapshot(s.store, s.cfg, s.now())
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDaemonRows(w http.ResponseWriter, r *http.Request) {
	loc := time.UTC
	if name := r.URL.Query().Get("tz"); name != "" {
		parsed, err := time.LoadLocation(name)
		if err != nil {
			http.Error(w, "unknown timezone", http.StatusBadRequest)
			return
		}
		loc = parsed
	}

	now := s.now()
	snap := heartbeat.Snapshot(s.store, s.cfg, now)
	rows, err := display.BuildRows(snap, now, loc)
	if err != nil {
		s.log.Error().Err(err).Msg("build daemon rows")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	healthy := heartbeat.AllHealthy(s.store, s.cfg, s.now())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]bool{"healthy": healthy})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.runsLimit)
	writeJSON(w, http.StatusOK, s.runLog.RecentN(limit))
}

func (s *Server) handleUptime(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.runsLimit)
	results := s.runLog.RecentN(limit)
	writeJSON(w, http.StatusOK, metrics.ComputeTargetUptime(results))
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	if value > fallback {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
