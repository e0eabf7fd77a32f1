// Package daemons implements the background daemons whose health the
// dashboard reports: the scheduler, the sensor runner, and the queued run
// coordinator.
package daemons

import (
	"context"

	"daemonwatch/internal/models"
)

// Daemon is one background worker driven by the controller loop.
type Daemon interface {
	// Type identifies the daemon in heartbeats and on the dashboard.
	Type() models.DaemonType
	// IntervalSeconds is the pause between iterations.
	IntervalSeconds() int
	// RunIteration performs one unit of work. Errors are captured on the
	// daemon's next heartbeat and flip its health to unhealthy.
	RunIteration(ctx context.Context) error
}
