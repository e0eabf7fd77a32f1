package runqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daemonwatch/internal/models"
)

func TestQueueFIFO(t *testing.T) {
	q := New()
	now := time.Unix(1000, 0)

	q.Enqueue("a", models.RunReasonScheduled, now)
	q.Enqueue("b", models.RunReasonSensor, now)
	q.Enqueue("c", models.RunReasonScheduled, now)
	assert.Equal(t, 3, q.Len())

	runs := q.Dequeue(2)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].TargetID)
	assert.Equal(t, "b", runs[1].TargetID)
	assert.Equal(t, models.RunReasonSensor, runs[1].Reason)
	assert.Equal(t, 1, q.Len())

	rest := q.Dequeue(0)
	require.Len(t, rest, 1)
	assert.Equal(t, "c", rest[0].TargetID)
	assert.Equal(t, 0, q.Len())

	assert.Nil(t, q.Dequeue(5))
}

func TestQueueAssignsUniqueIDs(t *testing.T) {
	q := New()
	now := time.Unix(1000, 0)

	first := q.Enqueue("a", models.RunReasonScheduled, now)
	second := q.Enqueue("a", models.RunReasonScheduled, now)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, now, first.EnqueuedAt)
}
