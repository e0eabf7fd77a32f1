package daemons

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"daemonwatch/internal/config"
	"daemonwatch/internal/models"
	"daemonwatch/internal/runqueue"
	"daemonwatch/internal/storage"
)

// QueuedRunCoordinatorDaemon drains the run queue, executes the HTTP check
// behind each run, and records the result in the run log.
type QueuedRunCoordinatorDaemon struct {
	cfg     config.RunCoordinator
	targets map[string]models.Target
	queue   *runqueue.Queue
	runLog  *storage.RunLog
	client  *http.Client
	log     zerolog.Logger
	now     func() time.Time
}

// NewQueuedRunCoordinator creates the run coordinator daemon.
func NewQueuedRunCoordinator(cfg config.RunCoordinator, targets []models.Target, queue *runqueue.Queue, runLog *storage.RunLog, log zerolog.Logger) *QueuedRunCoordinatorDaemon {
	byID := make(map[string]models.Target, len(targets))
	for _, t := range targets {
		byID[t.ID] = t
	}
	return &QueuedRunCoordinatorDaemon{
		cfg:     cfg,
		targets: byID,
		queue:   queue,
		runLog:  runLog,
		client:  &http.Client{},
		log:     log.With().Str("daemon", models.DaemonTypeQueuedRunCoordinator.String()).Logger(),
		now:     time.Now,
	}
}

func (d *QueuedRunCoordinatorDaemon) Type() models.DaemonType {
	return models.DaemonTypeQueuedRunCoordinator
}

func (d *QueuedRunCoordinatorDaemon) IntervalSeconds() int { return d.cfg.DequeueIntervalSeconds }

// RunIteration dequeues up to max_concurrent_runs runs and executes them.
func (d *QueuedRunCoordinatorDaemon) RunIteration(ctx context.Context) error {
	runs := d.queue.Dequeue(d.cfg.MaxConcurrentRuns)
	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, ok := d.targets[run.TargetID]
		if !ok {
			d.log.Warn().Str("run", run.ID).Str("target", run.TargetID).Msg("dropping run for unknown target")
			continue
		}

		timeout := time.Duration(target.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		result := d.executeRun(checkCtx, run, target)
		cancel()

		if err := d.runLog.Append(result); err != nil {
			return err
		}
	}
	return nil
}

func (d *QueuedRunCoordinatorDaemon) executeRun(ctx context.Context, run models.CheckRun, target models.Target) models.CheckResult {
	start := d.now()
	result := models.CheckResult{
		RunID:      run.ID,
		TargetID:   target.ID,
		TargetName: target.Name,
		Reason:     run.Reason,
		OK:         false,
		StartedAt:  start.UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		msg := err.Error()
		result.Error = &msg
		return result
	}

	response, err := d.client.Do(req)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timed out"
		}
		result.Error = &msg
		return result
	}
	defer response.Body.Close()

	latency := float64(time.Since(start).Milliseconds())
	result.LatencyMS = &latency
	result.StatusCode = &response.StatusCode
	result.OK = response.StatusCode >= 200 && response.StatusCode < 400
	if !result.OK {
		msg := http.StatusText(response.StatusCode)
		result.Error = &msg
	}
	return result
}
