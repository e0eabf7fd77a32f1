// Package heartbeat turns stored daemon heartbeats into health verdicts.
package heartbeat

import (
	"time"

	"daemonwatch/internal/config"
	"daemonwatch/internal/models"
)

const (
	// IntervalSeconds is how often the controller posts heartbeats.
	IntervalSeconds = 30
	// ToleranceSeconds is how long beyond the expected heartbeat a daemon
	// is still considered healthy.
	ToleranceSeconds = 10
)

// Source exposes the latest heartbeat per daemon type.
type Source interface {
	Latest(models.DaemonType) (models.Heartbeat, bool)
}

// RequiredDaemons returns the daemon types whose health matters for the
// given configuration, in display order. Sensors always run; the scheduler
// and run coordinator are gated by config.
func RequiredDaemons(cfg config.Config) []models.DaemonType {
	required := make([]models.DaemonType, 0, len(models.KnownDaemonTypes))
	for _, t := range models.KnownDaemonTypes {
		if Required(cfg, t) {
			required = append(required, t)
		}
	}
	return required
}

// Required reports whether one daemon type is relevant to cfg.
func Required(cfg config.Config, t models.DaemonType) bool {
	switch t {
	case models.DaemonTypeScheduler:
		return cfg.Scheduler.Enabled
	case models.DaemonTypeSensor:
		return true
	case models.DaemonTypeQueuedRunCoordinator:
		return cfg.RunCoordinator.Enabled
	}
	return false
}

// Status computes the health verdict for one daemon type at the given
// moment. A daemon is healthy iff its latest heartbeat is recent enough
// and carries no error.
func Status(src Source, cfg config.Config, t models.DaemonType, now time.Time) models.DaemonStatus {
	if !Required(cfg, t) {
		return models.DaemonStatus{DaemonType: t, Required: false}
	}

	hb, ok := src.Latest(t)
	if !ok {
		return models.DaemonStatus{DaemonType: t, Required: true, Healthy: false}
	}

	maxTolerated := hb.Timestamp + IntervalSeconds + ToleranceSeconds
	recent := now.Unix() <= maxTolerated
	ts := hb.Timestamp
	return models.DaemonStatus{
		DaemonType:        t,
		Required:          true,
		Healthy:           recent && hb.Error == "",
		LastHeartbeatTime: &ts,
	}
}

// Snapshot assembles the statuses of every known daemon type at one moment.
func Snapshot(src Source, cfg config.Config, now time.Time) *models.Snapshot {
	daemons := make([]models.DaemonStatus, 0, len(models.KnownDaemonTypes))
	for _, t := range models.KnownDaemonTypes {
		daemons = append(daemons, Status(src, cfg, t, now))
	}
	return &models.Snapshot{GeneratedAt: now, Daemons: daemons}
}

// AllHealthy reports whether every required daemon has a recent, error-free
// heartbeat.
func AllHealthy(src Source, cfg config.Config, now time.Time) bool {
	for _, t := range RequiredDaemons(cfg) {
		if !Status(src, cfg, t, now).Healthy {
			return false
		}
	}
	return true
}
