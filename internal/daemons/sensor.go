package daemons

import (
	"context"
	"net"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"daemonwatch/internal/config"
	"daemonwatch/internal/models"
	"daemonwatch/internal/runqueue"
)

// SensorDaemon watches targets with a lightweight TCP probe and enqueues an
// immediate re-check run when a target transitions from reachable to
// unreachable, instead of waiting for its next scheduled check.
type SensorDaemon struct {
	cfg     config.Sensors
	targets []models.Target
	queue   *runqueue.Queue
	log     zerolog.Logger

	dial      func(ctx context.Context, network, addr string) error
	reachable map[string]bool
	now       func() time.Time
}

// NewSensor creates the sensor daemon.
func NewSensor(cfg config.Sensors, targets []models.Target, queue *runqueue.Queue, log zerolog.Logger) *SensorDaemon {
	d := &SensorDaemon{
		cfg:       cfg,
		targets:   targets,
		queue:     queue,
		log:       log.With().Str("daemon", models.DaemonTypeSensor.String()).Logger(),
		reachable: make(map[string]bool),
		now:       time.Now,
	}
	d.dial = func(ctx context.Context, network, addr string) error {
		var dialer net.Dialer
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return err
		}
		return conn.Close()
	}
	return d
}

func (d *SensorDaemon) Type() models.DaemonType { return models.DaemonTypeSensor }

func (d *SensorDaemon) IntervalSeconds() int { return d.cfg.IntervalSeconds }

// RunIteration probes every target once and records transitions.
func (d *SensorDaemon) RunIteration(ctx context.Context) error {
	timeout := time.Duration(d.cfg.TimeoutSeconds) * time.Second
	for _, target := range d.targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		addr, err := probeAddress(target.URL)
		if err != nil {
			d.log.Warn().Str("target", target.ID).Err(err).Msg("unprobeable target url")
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		dialErr := d.dial(probeCtx, "tcp", addr)
		cancel()

		up := dialErr == nil
		wasUp, seen := d.reachable[target.ID]
		d.reachable[target.ID] = up

		if seen && wasUp && !up {
			d.log.Info().Str("target", target.ID).Err(dialErr).Msg("target went unreachable, enqueueing re-check")
			d.queue.Enqueue(target.ID, models.RunReasonSensor, d.now())
		}
	}
	return nil
}

func probeAddress(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}
	return net.JoinHostPort(host, port), nil
}
