// Package controller drives the configured daemons: it runs their
// iterations on schedule and posts their heartbeats.
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"daemonwatch/internal/config"
	"daemonwatch/internal/daemons"
	"daemonwatch/internal/heartbeat"
	"daemonwatch/internal/models"
	"daemonwatch/internal/runqueue"
	"daemonwatch/internal/storage"
)

const tickInterval = time.Second

// Controller owns the daemon set for one process.
type Controller struct {
	id      string
	daemons []daemons.Daemon
	store   *storage.HeartbeatStore
	log     zerolog.Logger

	lastIteration map[models.DaemonType]time.Time
	lastHeartbeat map[models.DaemonType]time.Time
	lastError     map[models.DaemonType]string

	now    func() time.Time
	stopCh chan struct{}
	doneCh chan struct{}
}

// New registers the daemons the configuration calls for. Sensors always
// run; the scheduler and run coordinator are gated by config. An empty
// daemon set is refused.
func New(cfg config.Config, queue *runqueue.Queue, store *storage.HeartbeatStore, runLog *storage.RunLog, log zerolog.Logger) (*Controller, error) {
	var registered []daemons.Daemon
	if cfg.Scheduler.Enabled {
		registered = append(registered, daemons.NewScheduler(cfg.Scheduler, cfg.Targets, queue, log))
	}
	registered = append(registered, daemons.NewSensor(cfg.Sensors, cfg.Targets, queue, log))
	if cfg.RunCoordinator.Enabled {
		registered = append(registered, daemons.NewQueuedRunCoordinator(cfg.RunCoordinator, cfg.Targets, queue, runLog, log))
	}
	if len(registered) == 0 {
		return nil, errors.New("no daemons configured")
	}

	id := uuid.New().String()
	c := &Controller{
		id:            id,
		daemons:       registered,
		store:         store,
		log:           log.With().Str("component", "controller").Str("controller_id", id).Logger(),
		lastIteration: make(map[models.DaemonType]time.Time),
		lastHeartbeat: make(map[models.DaemonType]time.Time),
		lastError:     make(map[models.DaemonType]string),
		now:           time.Now,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}

	types := make([]string, 0, len(registered))
	for _, d := range registered {
		types = append(types, d.Type().String())
	}
	c.log.Info().Strs("daemons", types).Msg("controller configured")
	return c, nil
}

// ID returns the controller instance id.
func (c *Controller) ID() string { return c.id }

// Start launches the controller loop in a goroutine.
func (c *Controller) Start() {
	go c.run()
}

// Stop requests graceful loop termination and waits until it is done.
func (c *Controller) Stop() {
	select {
	case <-c.doneCh:
		return
	default:
	}
	close(c.stopCh)
	<-c.doneCh
}

// RunIteration gives every due daemon one iteration and posts heartbeats.
// Iteration errors are captured on the heartbeat rather than aborting the
// loop.
func (c *Controller) RunIteration(ctx context.Context, now time.Time) {
	for _, d := range c.daemons {
		t := d.Type()
		interval := time.Duration(d.IntervalSeconds()) * time.Second
		if last, ok := c.lastIteration[t]; ok && now.Sub(last) < interval {
			continue
		}
		c.lastIteration[t] = now

		if err := d.RunIteration(ctx); err != nil {
			c.lastError[t] = err.Error()
			c.log.Error().Str("daemon", t.String()).Err(err).Msg("daemon iteration failed")
		} else {
			c.lastError[t] = ""
		}

		c.checkAddHeartbeat(t, now)
	}
}

func (c *Controller) checkAddHeartbeat(t models.DaemonType, now time.Time) {
	if last, ok := c.lastHeartbeat[t]; ok && now.Sub(last) < heartbeat.IntervalSeconds*time.Second {
		return
	}
	c.lastHeartbeat[t] = now

	hb := models.Heartbeat{
		Timestamp:  now.Unix(),
		DaemonType: t,
		Error:      c.lastError[t],
	}
	if err := c.store.Add(hb); err != nil {
		c.log.Error().Str("daemon", t.String()).Err(err).Msg("persist heartbeat failed")
	}
}

func (c *Controller) run() {
	defer close(c.doneCh)

	ctx := context.Background()
	c.RunIteration(ctx, c.now())

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.RunIteration(ctx, c.now())
		case <-c.stopCh:
			return
		}
	}
}
