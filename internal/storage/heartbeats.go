package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"daemonwatch/internal/models"
)

// HeartbeatStore persists the latest heartbeat per daemon type to disk.
type HeartbeatStore struct {
	mu         sync.RWMutex
	path       string
	heartbeats map[models.DaemonType]models.Heartbeat
}

// NewHeartbeatStore creates a store and loads existing heartbeats if present.
func NewHeartbeatStore(path string) (*HeartbeatStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}

	s := &HeartbeatStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Add records a heartbeat, replacing any previous one for the same daemon
// type, and persists the store to disk.
func (s *HeartbeatStore) Add(hb models.Heartbeat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.heartbeats[hb.DaemonType] = hb
	return s.persist()
}

// Heartbeats returns a copy of the latest heartbeat per daemon type.
func (s *HeartbeatStore) Heartbeats() map[models.DaemonType]models.Heartbeat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make(map[models.DaemonType]models.Heartbeat, len(s.heartbeats))
	for k, v := range s.heartbeats {
		copied[k] = v
	}
	return copied
}

// Latest returns the latest heartbeat for one daemon type if it exists.
func (s *HeartbeatStore) Latest(t models.DaemonType) (models.Heartbeat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hb, ok := s.heartbeats[t]
	return hb, ok
}

func (s *HeartbeatStore) load() error {
	s.heartbeats = make(map[models.DaemonType]models.Heartbeat)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read heartbeats: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []models.Heartbeat
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse heartbeats: %w", err)
	}
	for _, hb := range entries {
		s.heartbeats[hb.DaemonType] = hb
	}
	return nil
}

func (s *HeartbeatStore) persist() error {
	entries := make([]models.Heartbeat, 0, len(s.heartbeats))
	for _, t := range models.KnownDaemonTypes {
		if hb, ok := s.heartbeats[t]; ok {
			entries = append(entries, hb)
		}
	}

	bytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode heartbeats: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", s.path, time.Now().UnixNano())
	if err := os.WriteFile(tmpPath, bytes, 0o644); err != nil {
		return fmt.Errorf("write temp heartbeats: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace heartbeats file: %w", err)
	}
	return nil
}
