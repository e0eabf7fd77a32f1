package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"daemonwatch/internal/models"
)

// Scheduler configures the scheduler daemon.
type Scheduler struct {
	Enabled         bool `yaml:"enabled"`
	IntervalSeconds int  `yaml:"interval_seconds"`
	MaxCatchupRuns  int  `yaml:"max_catchup_runs"`
}

// Sensors configures the sensor daemon.
type Sensors struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	TimeoutSeconds  int `yaml:"timeout_seconds"`
}

// RunCoordinator configures the queued run coordinator daemon.
type RunCoordinator struct {
	Enabled                bool `yaml:"enabled"`
	DequeueIntervalSeconds int  `yaml:"dequeue_interval_seconds"`
	MaxConcurrentRuns      int  `yaml:"max_concurrent_runs"`
}

// Config represents configuration data for the daemon host and dashboard.
type Config struct {
	DataDirectory  string          `yaml:"data_directory"`
	RunHistoryMax  int             `yaml:"run_history_max"`
	Scheduler      Scheduler       `yaml:"scheduler"`
	Sensors        Sensors         `yaml:"sensors"`
	RunCoordinator RunCoordinator  `yaml:"run_coordinator"`
	Targets        []models.Target `yaml:"targets"`
}

// DefaultConfig returns sensible defaults in case no configuration file is
// provided.
func DefaultConfig() Config {
	return Config{
		DataDirectory: filepath.Join(".dist", "data"),
		RunHistoryMax: 500,
		Scheduler: Scheduler{
			Enabled:         true,
			IntervalSeconds: 30,
			MaxCatchupRuns:  5,
		},
		Sensors: Sensors{
			IntervalSeconds: 30,
			TimeoutSeconds:  4,
		},
		RunCoordinator: RunCoordinator{
			Enabled:                true,
			DequeueIntervalSeconds: 5,
			MaxConcurrentRuns:      4,
		},
		Targets: []models.Target{
			{
				ID:                   "example",
				Name:                 "Example Service",
				URL:                  "http://localhost:8000/health",
				CheckIntervalSeconds: 300,
				TimeoutSeconds:       10,
			},
		},
	}
}

// Load reads configuration from a yaml file. Missing files fall back to
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DataDirectory == "" {
		cfg.DataDirectory = DefaultConfig().DataDirectory
	}
	if cfg.RunHistoryMax <= 0 {
		cfg.RunHistoryMax = DefaultConfig().RunHistoryMax
	}
	if cfg.Scheduler.IntervalSeconds <= 0 {
		cfg.Scheduler.IntervalSeconds = 30
	}
	if cfg.Scheduler.MaxCatchupRuns <= 0 {
		cfg.Scheduler.MaxCatchupRuns = 5
	}
	if cfg.Sensors.IntervalSeconds <= 0 {
		cfg.Sensors.IntervalSeconds = 30
	}
	if cfg.Sensors.TimeoutSeconds <= 0 {
		cfg.Sensors.TimeoutSeconds = 4
	}
	if cfg.RunCoordinator.DequeueIntervalSeconds <= 0 {
		cfg.RunCoordinator.DequeueIntervalSeconds = 5
	}
	if cfg.RunCoordinator.MaxConcurrentRuns <= 0 {
		cfg.RunCoordinator.MaxConcurrentRuns = 4
	}
	if len(cfg.Targets) == 0 {
		return Config{}, errors.New("configuration must define at least one target")
	}
	for i, t := range cfg.Targets {
		if t.ID == "" {
			return Config{}, fmt.Errorf("target %d is missing id", i)
		}
		if t.URL == "" {
			return Config{}, fmt.Errorf("target %s url is required", t.ID)
		}
	}
	return cfg, nil
}
