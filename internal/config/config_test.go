package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEmptyPathFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadParsesAndNormalises(t *testing.T) {
	path := writeConfig(t, `
data_directory: /tmp/dwdata
scheduler:
  enabled: false
  interval_seconds: -5
run_coordinator:
  enabled: true
  max_concurrent_runs: 2
targets:
  - id: api
    name: API
    url: http://localhost:9000/health
    check_interval_seconds: 60
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/dwdata", cfg.DataDirectory)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 30, cfg.Scheduler.IntervalSeconds, "non-positive interval is reset")
	assert.Equal(t, 2, cfg.RunCoordinator.MaxConcurrentRuns)
	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, "api", cfg.Targets[0].ID)
}

func TestLoadRejectsEmptyTargets(t *testing.T) {
	path := writeConfig(t, "targets: []\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one target")
}

func TestLoadRejectsTargetWithoutURL(t *testing.T) {
	path := writeConfig(t, `
targets:
  - id: api
    name: API
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url is required")
}
