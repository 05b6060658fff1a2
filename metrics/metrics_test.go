package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/metrics"
	"github.com/plus3/blockfall/sim"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T) *sim.World {
	t.Helper()
	g, err := grid.New(10, 20, grid.Vec2{})
	require.NoError(t, err)
	w, err := sim.NewWorld(sim.Options{
		Grid:          g,
		BlockSize:     30,
		SpawnPosition: grid.Position{Col: 5, Row: 17},
	})
	require.NoError(t, err)
	return w
}

func TestCollectorObservesWorld(t *testing.T) {
	w := newWorld(t)
	c := metrics.New()
	c.Attach(w)

	n, err := testutil.GatherAndCount(c.Registry(), "blockfall_gravity_speed_multiplier", "blockfall_paused")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	scheduler := sim.NewScheduler(w)
	scheduler.Register(&sim.GravitySystem{})
	scheduler.Register(&metrics.System{Collector: c, Scheduler: scheduler})

	_, err = w.Spawn(block.KindT)
	require.NoError(t, err)
	w.Rotate()
	w.Rotate()
	w.Rotate()
	w.Rotate()
	w.IncreaseGravity()
	w.ToggleDebug()
	scheduler.Once(w.Gravity.Interval)
	w.TogglePause()
	scheduler.Once(0)

	body := scrape(t, c)
	assert.Contains(t, body, `blockfall_pieces_spawned_total{shape="T"} 1`)
	assert.Contains(t, body, `blockfall_pieces_landed_total{shape="T"} 1`)
	assert.Contains(t, body, "blockfall_rotations_total 4")
	assert.Contains(t, body, "blockfall_gravity_steps_total 1")
	assert.Contains(t, body, "blockfall_gravity_speed_multiplier 1.5")
	assert.Contains(t, body, "blockfall_paused 1")
	assert.Contains(t, body, "blockfall_debug_overlay 1")
	assert.Contains(t, body, "blockfall_pause_toggles_total 1")
	assert.Contains(t, body, "blockfall_frames 1")
	assert.Contains(t, body, `blockfall_system_last_duration_seconds{system="GravitySystem"}`)
}

func scrape(t *testing.T, c *metrics.Collector) string {
	t.Helper()
	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserveIgnoresUnknownEvents(t *testing.T) {
	c := metrics.New()
	c.Observe(sim.Event{Kind: sim.EventKind(99)})

	n, err := testutil.GatherAndCount(c.Registry(), "blockfall_pieces_spawned_total")
	require.NoError(t, err)
	assert.Zero(t, n)
}
