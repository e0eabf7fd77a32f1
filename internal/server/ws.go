package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"daemonwatch/internal/display"
	"daemonwatch/internal/heartbeat"
)

const (
	wsPushInterval = 30 * time.Second
	wsWriteTimeout = 5 * time.Second
)

var daemonsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

func (s *Server) handleDaemonsWS(w http.ResponseWriter, r *http.Request) {
	loc := time.UTC
	if name := r.URL.Query().Get("tz"); name != "" {
		parsed, err := time.LoadLocation(name)
		if err != nil {
			http.Error(w, "unknown timezone", http.StatusBadRequest)
			return
		}
		loc = parsed
	}

	conn, err := daemonsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.serveDaemonsConnection(conn, loc)
}

func (s *Server) serveDaemonsConnection(conn *websocket.Conn, loc *time.Location) {
	defer conn.Close()

	if err := s.pushRows(conn, loc); err != nil {
		return
	}

	ticker := time.NewTicker(wsPushInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			if err := s.pushRows(conn, loc); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) pushRows(conn *websocket.Conn, loc *time.Location) error {
	now := s.now()
	snap := heartbeat.Snapshot(s.store, s.cfg, now)
	rows, err := display.BuildRows(snap, now, loc)
	if err != nil {
		s.log.Error().Err(err).Msg("build daemon rows for push")
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(rows)
}
