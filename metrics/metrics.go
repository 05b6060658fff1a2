// Package metrics exports simulation counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/plus3/blockfall/sim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "blockfall"

// Collector holds the simulation metrics. It observes world events and
// scheduler stats; it never touches the world itself.
type Collector struct {
	registry *prometheus.Registry

	spawned     *prometheus.CounterVec
	rotations   prometheus.Counter
	descents    prometheus.Counter
	landed      *prometheus.CounterVec
	modeChanges prometheus.Counter

	speed    prometheus.Gauge
	interval prometheus.Gauge
	paused   prometheus.Gauge
	debug    prometheus.Gauge

	frames         prometheus.Gauge
	systemDuration *prometheus.GaugeVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pieces_spawned_total",
			Help:      "Pieces spawned, by shape.",
		}, []string{"shape"}),
		rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rotations_total",
			Help:      "Piece rotations applied.",
		}),
		descents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gravity_steps_total",
			Help:      "Rows descended by pieces under gravity.",
		}),
		landed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pieces_landed_total",
			Help:      "Pieces taken out of play at the floor, by shape.",
		}, []string{"shape"}),
		modeChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pause_toggles_total",
			Help:      "Switches between running and paused.",
		}),
		speed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gravity_speed_multiplier",
			Help:      "Current gravity speed multiplier.",
		}),
		interval: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gravity_interval_seconds",
			Help:      "Seconds between gravity steps.",
		}),
		paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "paused",
			Help:      "1 while the game is paused.",
		}),
		debug: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "debug_overlay",
			Help:      "1 while the debug overlay is shown.",
		}),
		frames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frames",
			Help:      "Frames executed by the scheduler.",
		}),
		systemDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "system_last_duration_seconds",
			Help:      "Duration of the most recent execution of each system.",
		}, []string{"system"}),
	}

	c.registry.MustRegister(
		c.spawned, c.rotations, c.descents, c.landed, c.modeChanges,
		c.speed, c.interval, c.paused, c.debug,
		c.frames, c.systemDuration,
	)
	return c
}

// Attach subscribes the collector to world and records its current state.
func (c *Collector) Attach(world *sim.World) {
	c.setGravity(world.Gravity)
	c.setMode(world.Mode)
	world.Subscribe(c.Observe)
}

// Observe records one world event.
func (c *Collector) Observe(ev sim.Event) {
	switch ev.Kind {
	case sim.EventSpawned:
		c.spawned.WithLabelValues(string(ev.Shape)).Inc()
	case sim.EventRotated:
		c.rotations.Inc()
	case sim.EventDescended:
		c.descents.Inc()
	case sim.EventLanded:
		c.landed.WithLabelValues(string(ev.Shape)).Inc()
	case sim.EventModeChanged:
		c.modeChanges.Inc()
		c.setMode(ev.Mode)
	case sim.EventSpeedChanged:
		c.setGravity(ev.Gravity)
	case sim.EventDebugToggled:
		c.debug.Set(boolGauge(ev.DebugLines))
	}
}

// ObserveScheduler records the latest per-system timings.
func (c *Collector) ObserveScheduler(stats *sim.SchedulerStats) {
	c.frames.Set(float64(stats.Frames))
	for _, s := range stats.Systems {
		c.systemDuration.WithLabelValues(s.Name).Set(s.LastDuration.Seconds())
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) setGravity(g sim.GravityState) {
	c.speed.Set(g.SpeedMultiplier)
	c.interval.Set(g.Interval)
}

func (c *Collector) setMode(m sim.GameMode) {
	c.paused.Set(boolGauge(m == sim.Paused))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
