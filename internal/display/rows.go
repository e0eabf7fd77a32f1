// Package display turns a daemon health snapshot into the rows and table
// shown to operators. The transform is pure: output depends only on the
// snapshot, the supplied clock value and the viewer timezone.
package display

import (
	"fmt"
	"time"

	"daemonwatch/internal/models"
	"daemonwatch/internal/timeutil"
)

// UnhealthyTooltip explains a warning tag. It is attached iff the daemon
// is unhealthy.
const UnhealthyTooltip = "No recent heartbeat"

// Row is one rendered line of the daemon health table. Key is the daemon
// type and is unique within one snapshot.
type Row struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Healthy   bool   `json:"healthy"`
	Tooltip   string `json:"tooltip,omitempty"`
	Heartbeat string `json:"heartbeat"`
}

// DaemonLabel maps a daemon type to its display name. The type set is
// closed: an unknown value means the display logic is out of sync with the
// data schema and is reported as an error, never defaulted.
func DaemonLabel(t models.DaemonType) (string, error) {
	switch t {
	case models.DaemonTypeScheduler:
		return "Scheduler", nil
	case models.DaemonTypeSensor:
		return "Sensors", nil
	case models.DaemonTypeQueuedRunCoordinator:
		return "Run queue", nil
	default:
		return "", fmt.Errorf("unexpected daemon type %q", t)
	}
}

// BuildRows selects the required daemons from snap, preserving their order,
// and derives one Row per daemon. A nil snapshot yields no rows and no
// error: there is nothing to render yet. An empty result renders an empty
// table body.
func BuildRows(snap *models.Snapshot, now time.Time, loc *time.Location) ([]Row, error) {
	if snap == nil {
		return nil, nil
	}

	rows := make([]Row, 0, len(snap.Daemons))
	for _, status := range snap.Daemons {
		if !status.Required {
			continue
		}
		label, err := DaemonLabel(status.DaemonType)
		if err != nil {
			return nil, err
		}
		row := Row{
			Key:       status.DaemonType.String(),
			Label:     label,
			Healthy:   status.Healthy,
			Heartbeat: heartbeatText(status.LastHeartbeatTime, now, loc),
		}
		if !status.Healthy {
			row.Tooltip = UnhealthyTooltip
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func heartbeatText(lastHeartbeat *int64, now time.Time, loc *time.Location) string {
	if lastHeartbeat == nil {
		return "Never"
	}
	absolute := timeutil.FormatUnix(*lastHeartbeat, loc)
	relative := timeutil.Relative(time.Unix(*lastHeartbeat, 0), now)
	return fmt.Sprintf("%s (%s)", absolute, relative)
}
