package display

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/juju/ansiterm"

	"daemonwatch/internal/models"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// HealthTag renders the colored status indicator for a health flag plus
// its optional tooltip text.
func HealthTag(healthy bool, tooltip string) string {
	if healthy {
		return green("O")
	}
	if tooltip == "" {
		return yellow("!")
	}
	return fmt.Sprintf("%s %s", yellow("!"), tooltip)
}

// Render writes the daemon health table for snap to w, or nothing when the
// snapshot is absent. now and loc control heartbeat formatting.
func Render(w io.Writer, snap *models.Snapshot, now time.Time, loc *time.Location) error {
	rows, err := BuildRows(snap, now, loc)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	tw := ansiterm.NewTabWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", bold("DAEMON"), bold("STATUS"), bold("LAST HEARTBEAT"))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Label, HealthTag(row.Healthy, row.Tooltip), row.Heartbeat)
	}
	return tw.Flush()
}
