// Package runqueue holds check runs waiting for the run coordinator.
package runqueue

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"daemonwatch/internal/models"
)

// Queue is a FIFO of queued check runs.
type Queue struct {
	mu   sync.Mutex
	runs []models.CheckRun
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends a new run for the target and returns it.
func (q *Queue) Enqueue(targetID string, reason models.RunReason, now time.Time) models.CheckRun {
	run := models.CheckRun{
		ID:         uuid.New().String(),
		TargetID:   targetID,
		Reason:     reason,
		EnqueuedAt: now,
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.runs = append(q.runs, run)
	return run
}

// Dequeue removes and returns up to max runs in FIFO order. max <= 0 drains
// the queue.
func (q *Queue) Dequeue(max int) []models.CheckRun {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.runs) == 0 {
		return nil
	}
	n := len(q.runs)
	if max > 0 && max < n {
		n = max
	}
	out := make([]models.CheckRun, n)
	copy(out, q.runs[:n])
	q.runs = q.runs[n:]
	return out
}

// Len returns the number of queued runs.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.runs)
}
