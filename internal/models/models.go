package models

import (
	"fmt"
	"time"
)

// DaemonType identifies one of the known background daemons. The set is
// closed: values outside the constants below are a contract violation, not
// a data condition to tolerate.
type DaemonType string

const (
	DaemonTypeScheduler            DaemonType = "SCHEDULER"
	DaemonTypeSensor               DaemonType = "SENSOR"
	DaemonTypeQueuedRunCoordinator DaemonType = "QUEUED_RUN_COORDINATOR"
)

// KnownDaemonTypes lists every daemon type in display order.
var KnownDaemonTypes = []DaemonType{
	DaemonTypeScheduler,
	DaemonTypeSensor,
	DaemonTypeQueuedRunCoordinator,
}

// Known reports whether t belongs to the closed daemon-type set.
func (t DaemonType) Known() bool {
	switch t {
	case DaemonTypeScheduler, DaemonTypeSensor, DaemonTypeQueuedRunCoordinator:
		return true
	}
	return false
}

func (t DaemonType) String() string { return string(t) }

// Heartbeat is a liveness signal posted by the controller on behalf of a
// daemon. Error carries the daemon's last iteration failure, if any.
type Heartbeat struct {
	Timestamp  int64      `json:"timestamp"`
	DaemonType DaemonType `json:"daemon_type"`
	Error      string     `json:"error,omitempty"`
}

// DaemonStatus is the per-daemon health verdict exposed to the dashboard.
// LastHeartbeatTime is a Unix timestamp in seconds; nil means no heartbeat
// has ever been observed.
type DaemonStatus struct {
	DaemonType        DaemonType `json:"daemonType"`
	Required          bool       `json:"required"`
	Healthy           bool       `json:"healthy"`
	LastHeartbeatTime *int64     `json:"lastHeartbeatTime,omitempty"`
}

// Snapshot is an ordered set of daemon statuses taken at one moment.
// A nil *Snapshot means "no health data loaded yet", which is distinct
// from a snapshot with an empty Daemons slice.
type Snapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Daemons     []DaemonStatus `json:"daemons"`
}

// Target defines a monitored HTTP endpoint checked by the daemons.
type Target struct {
	ID                   string `yaml:"id" json:"id"`
	Name                 string `yaml:"name" json:"name"`
	URL                  string `yaml:"url" json:"url"`
	CheckIntervalSeconds int    `yaml:"check_interval_seconds" json:"check_interval_seconds"`
	TimeoutSeconds       int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// RunReason records why a check run was enqueued.
type RunReason string

const (
	RunReasonScheduled RunReason = "scheduled"
	RunReasonSensor    RunReason = "sensor"
)

// CheckRun is a unit of work queued by the scheduler or sensor daemon and
// executed by the run coordinator.
type CheckRun struct {
	ID         string    `json:"id"`
	TargetID   string    `json:"target_id"`
	Reason     RunReason `json:"reason"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// CheckResult captures the outcome of one executed check run.
type CheckResult struct {
	RunID      string    `json:"run_id"`
	TargetID   string    `json:"target_id"`
	TargetName string    `json:"target_name"`
	Reason     RunReason `json:"reason"`
	OK         bool      `json:"ok"`
	StatusCode *int      `json:"status_code,omitempty"`
	LatencyMS  *float64  `json:"latency_ms,omitempty"`
	Error      *string   `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
}

func (r CheckRun) String() string {
	return fmt.Sprintf("%s run %s for %s", r.Reason, r.ID, r.TargetID)
}
