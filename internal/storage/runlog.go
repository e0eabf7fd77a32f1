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

// RunLog persists a bounded history of executed check results.
type RunLog struct {
	mu      sync.RWMutex
	path    string
	max     int
	results []models.CheckResult
}

// NewRunLog creates a run log capped at max entries and loads existing
// history if present.
func NewRunLog(path string, max int) (*RunLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}
	if max <= 0 {
		max = 500
	}

	l := &RunLog{path: path, max: max}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

// Append adds a result, trims to the cap, and persists to disk.
func (l *RunLog) Append(result models.CheckResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, result)
	if len(l.results) > l.max {
		l.results = l.results[len(l.results)-l.max:]
	}
	return l.persist()
}

// RecentN returns up to n most recent results, newest last.
func (l *RunLog) RecentN(n int) []models.CheckResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.results) {
		n = len(l.results)
	}
	out := make([]models.CheckResult, n)
	copy(out, l.results[len(l.results)-n:])
	return out
}

// All returns a copy of the entire history.
func (l *RunLog) All() []models.CheckResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.CheckResult, len(l.results))
	copy(out, l.results)
	return out
}

func (l *RunLog) load() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.results = []models.CheckResult{}
			return nil
		}
		return fmt.Errorf("read run log: %w", err)
	}
	if len(data) == 0 {
		l.results = []models.CheckResult{}
		return nil
	}

	var results []models.CheckResult
	if err := json.Unmarshal(data, &results); err != nil {
		return fmt.Errorf("parse run log: %w", err)
	}
	if len(results) > l.max {
		results = results[len(results)-l.max:]
	}
	l.results = results
	return nil
}

func (l *RunLog) persist() error {
	bytes, err := json.MarshalIndent(l.results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", l.path, time.Now().UnixNano())
	if err := os.WriteFile(tmpPath, bytes, 0o644); err != nil {
		return fmt.Errorf("write temp run log: %w", err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace run log file: %w", err)
	}
	return nil
}
