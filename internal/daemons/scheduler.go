package daemons

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"daemonwatch/internal/config"
	"daemonwatch/internal/models"
	"daemonwatch/internal/runqueue"
)

// SchedulerDaemon enqueues a scheduled check run for each target whose
// check interval has elapsed. Missed ticks are capped by max_catchup_runs
// so a long pause does not flood the queue.
type SchedulerDaemon struct {
	cfg     config.Scheduler
	targets []models.Target
	queue   *runqueue.Queue
	log     zerolog.Logger

	lastEnqueued map[string]time.Time
	now          func() time.Time
}

// NewScheduler creates the scheduler daemon.
func NewScheduler(cfg config.Scheduler, targets []models.Target, queue *runqueue.Queue, log zerolog.Logger) *SchedulerDaemon {
	return &SchedulerDaemon{
		cfg:          cfg,
		targets:      targets,
		queue:        queue,
		log:          log.With().Str("daemon", models.DaemonTypeScheduler.String()).Logger(),
		lastEnqueued: make(map[string]time.Time),
		now:          time.Now,
	}
}

func (d *SchedulerDaemon) Type() models.DaemonType { return models.DaemonTypeScheduler }

func (d *SchedulerDaemon) IntervalSeconds() int { return d.cfg.IntervalSeconds }

// RunIteration walks the targets and enqueues the runs that are due.
func (d *SchedulerDaemon) RunIteration(ctx context.Context) error {
	now := d.now()
	for _, target := range d.targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		interval := time.Duration(target.CheckIntervalSeconds) * time.Second
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		last, seen := d.lastEnqueued[target.ID]
		if !seen {
			d.queue.Enqueue(target.ID, models.RunReasonScheduled, now)
			d.lastEnqueued[target.ID] = now
			continue
		}

		due := 0
		for !last.Add(interval).After(now) {
			last = last.Add(interval)
			due++
		}
		if due == 0 {
			continue
		}
		if due > d.cfg.MaxCatchupRuns {
			d.log.Warn().Str("target", target.ID).Int("missed", due).
				Int("max_catchup", d.cfg.MaxCatchupRuns).Msg("capping catch-up runs")
			due = d.cfg.MaxCatchupRuns
		}
		for i := 0; i < due; i++ {
			d.queue.Enqueue(target.ID, models.RunReasonScheduled, now)
		}
		d.lastEnqueued[target.ID] = last
	}
	return nil
}
