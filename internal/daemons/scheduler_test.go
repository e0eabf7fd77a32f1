package daemons

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daemonwatch/internal/config"
	"daemonwatch/internal/models"
	"daemonwatch/internal/runqueue"
)

func testTarget(id string, intervalSeconds int) models.Target {
	return models.Target{
		ID:                   id,
		Name:                 id,
		URL:                  "http://localhost:9000/health",
		CheckIntervalSeconds: intervalSeconds,
	}
}

func TestSchedulerEnqueuesInitialRun(t *testing.T) {
	queue := runqueue.New()
	d := NewScheduler(config.Scheduler{IntervalSeconds: 30, MaxCatchupRuns: 5},
		[]models.Target{testTarget("a", 60), testTarget("b", 60)}, queue, zerolog.Nop())

	now := time.Unix(1_000_000, 0)
	d.now = func() time.Time { return now }

	require.NoError(t, d.RunIteration(context.Background()))
	runs := queue.Dequeue(0)
	require.Len(t, runs, 2)
	assert.Equal(t, models.RunReasonScheduled, runs[0].Reason)
}

func TestSchedulerEnqueuesWhenDue(t *testing.T) {
	queue := runqueue.New()
	d := NewScheduler(config.Scheduler{IntervalSeconds: 30, MaxCatchupRuns: 5},
		[]models.Target{testTarget("a", 60)}, queue, zerolog.Nop())

	now := time.Unix(1_000_000, 0)
	d.now = func() time.Time { return now }
	require.NoError(t, d.RunIteration(context.Background()))
	queue.Dequeue(0)

	// Not due yet.
	now = now.Add(30 * time.Second)
	require.NoError(t, d.RunIteration(context.Background()))
	assert.Equal(t, 0, queue.Len())

	// Two intervals elapsed: two catch-up runs.
	now = now.Add(100 * time.Second)
	require.NoError(t, d.RunIteration(context.Background()))
	assert.Equal(t, 2, queue.Len())
}

func TestSchedulerCapsCatchupRuns(t *testing.T) {
	queue := runqueue.New()
	d := NewScheduler(config.Scheduler{IntervalSeconds: 30, MaxCatchupRuns: 3},
		[]models.Target{testTarget("a", 60)}, queue, zerolog.Nop())

	now := time.Unix(1_000_000, 0)
	d.now = func() time.Time { return now }
	require.NoError(t, d.RunIteration(context.Background()))
	queue.Dequeue(0)

	// Ten intervals missed, only max_catchup_runs enqueued.
	now = now.Add(10 * time.Minute)
	require.NoError(t, d.RunIteration(context.Background()))
	assert.Equal(t, 3, queue.Len())
}
