package display

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daemonwatch/internal/models"
)

func TestRenderNilSnapshotWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, time.Now(), time.UTC))
	assert.Zero(t, buf.Len())
}

func TestRenderTable(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	now := time.Unix(1700000065, 0)
	snap := &models.Snapshot{
		Daemons: []models.DaemonStatus{
			{DaemonType: models.DaemonTypeScheduler, Required: true, Healthy: true, LastHeartbeatTime: ts(1700000000)},
			{DaemonType: models.DaemonTypeSensor, Required: true, Healthy: false},
			{DaemonType: models.DaemonTypeQueuedRunCoordinator, Required: false},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, snap, now, time.UTC))

	out := buf.String()
	assert.Contains(t, out, "DAEMON")
	assert.Contains(t, out, "Scheduler")
	assert.Contains(t, out, "2023-11-14 22:13:20 UTC (a minute ago)")
	assert.Contains(t, out, "Sensors")
	assert.Contains(t, out, UnhealthyTooltip)
	assert.Contains(t, out, "Never")
	assert.NotContains(t, out, "Run queue")
}

func TestHealthTag(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	assert.Equal(t, "O", HealthTag(true, ""))
	assert.Equal(t, "!", HealthTag(false, ""))
	assert.Equal(t, "! No recent heartbeat", HealthTag(false, "No recent heartbeat"))
}
