package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daemonwatch/internal/models"
)

func TestHeartbeatStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartbeats.json")

	store, err := NewHeartbeatStore(path)
	require.NoError(t, err)

	_, ok := store.Latest(models.DaemonTypeSensor)
	assert.False(t, ok)

	hb := models.Heartbeat{Timestamp: 1700000000, DaemonType: models.DaemonTypeSensor}
	require.NoError(t, store.Add(hb))

	newer := models.Heartbeat{Timestamp: 1700000030, DaemonType: models.DaemonTypeSensor, Error: "boom"}
	require.NoError(t, store.Add(newer))

	got, ok := store.Latest(models.DaemonTypeSensor)
	require.True(t, ok)
	assert.Equal(t, newer, got)

	// A fresh store over the same file sees the persisted heartbeats.
	reloaded, err := NewHeartbeatStore(path)
	require.NoError(t, err)
	got, ok = reloaded.Latest(models.DaemonTypeSensor)
	require.True(t, ok)
	assert.Equal(t, newer, got)
	assert.Len(t, reloaded.Heartbeats(), 1)
}

func TestRunLogCapsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")

	runLog, err := NewRunLog(path, 3)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, runLog.Append(models.CheckResult{
			RunID:     string(rune('a' + i)),
			TargetID:  "api",
			StartedAt: time.Unix(int64(1000+i), 0).UTC(),
		}))
	}

	all := runLog.All()
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].RunID)
	assert.Equal(t, "e", all[2].RunID)

	recent := runLog.RecentN(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "d", recent[0].RunID)

	reloaded, err := NewRunLog(path, 3)
	require.NoError(t, err)
	assert.Len(t, reloaded.All(), 3)
}
