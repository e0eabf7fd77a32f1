package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daemonwatch/internal/models"
)

func TestComputeTargetUptime(t *testing.T) {
	base := time.Unix(1_000_000, 0).UTC()
	results := []models.CheckResult{
		{TargetID: "api", TargetName: "API", OK: true, StartedAt: base},
		{TargetID: "api", TargetName: "API", OK: false, StartedAt: base.Add(time.Minute)},
		{TargetID: "api", TargetName: "API", OK: true, StartedAt: base.Add(2 * time.Minute)},
		{TargetID: "db", TargetName: "Database", OK: true, StartedAt: base},
	}

	summaries := ComputeTargetUptime(results)
	require.Len(t, summaries, 2)

	api := summaries[0]
	assert.Equal(t, "api", api.ID)
	assert.Equal(t, 3, api.TotalRuns)
	assert.Equal(t, 2, api.Passing)
	assert.Equal(t, 1, api.Failing)
	assert.InDelta(t, 66.67, api.UptimePercent, 0.001)
	assert.Equal(t, base.Add(2*time.Minute).Format(time.RFC3339), api.LastChecked)

	db := summaries[1]
	assert.Equal(t, 100.0, db.UptimePercent)
}

func TestComputeTargetUptimeEmpty(t *testing.T) {
	assert.Nil(t, ComputeTargetUptime(nil))
}
