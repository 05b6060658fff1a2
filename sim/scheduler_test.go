package sim_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSystem struct {
	name string
	log  *[]string
}

func (s *recordingSystem) Execute(frame *sim.UpdateFrame) {
	*s.log = append(*s.log, s.name)
}

type initSystem struct {
	world *sim.World
}

func (s *initSystem) Init(world *sim.World) { s.world = world }

func (s *initSystem) Execute(frame *sim.UpdateFrame) {}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		w := newTestWorld(t, grid.Position{})
		scheduler := sim.NewScheduler(w.World)

		var order []string
		scheduler.Register(&recordingSystem{name: "input", log: &order})
		scheduler.Register(&recordingSystem{name: "gravity", log: &order})
		scheduler.Register(&recordingSystem{name: "render", log: &order})

		scheduler.Once(1.0 / 60.0)
		scheduler.Once(1.0 / 60.0)
		assert.Equal(t, []string{"input", "gravity", "render", "input", "gravity", "render"}, order)
	})

	t.Run("initializer sees the world", func(t *testing.T) {
		w := newTestWorld(t, grid.Position{})
		scheduler := sim.NewScheduler(w.World)
		s := &initSystem{}
		scheduler.Register(s)
		assert.Same(t, w.World, s.world)
		assert.Same(t, w.World, scheduler.World())
	})

	t.Run("stats", func(t *testing.T) {
		w := newTestWorld(t, grid.Position{})
		scheduler := sim.NewScheduler(w.World)
		scheduler.Register(&sim.GravitySystem{})
		scheduler.Register(&sim.RenderSystem{})

		stats := scheduler.Stats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Zero(t, stats.Systems[0].MinDuration)

		for range 3 {
			scheduler.Once(0.1)
		}

		stats = scheduler.Stats()
		assert.Equal(t, int64(6), stats.TotalExecutions)
		assert.Equal(t, int64(3), stats.Frames)
		assert.Equal(t, "GravitySystem", stats.Systems[0].Name)
		assert.Equal(t, "RenderSystem", stats.Systems[1].Name)
		for _, s := range stats.Systems {
			assert.Equal(t, int64(3), s.ExecutionCount)
			assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		w := newTestWorld(t, grid.Position{})
		scheduler := sim.NewScheduler(w.World)
		gravity := &sim.GravitySystem{}
		scheduler.Register(gravity)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.Positive(t, scheduler.Stats().Frames)
	})

	t.Run("commands flush after the frame", func(t *testing.T) {
		w := newTestWorld(t, grid.Position{Col: 5})
		scheduler := sim.NewScheduler(w.World)

		var seen []int
		scheduler.Register(&sim.SpawnSystem{})
		scheduler.Register(&sim.RenderSystem{Renderer: sim.RendererFunc(func(f sim.Frame) {
			seen = append(seen, len(f.Active))
		})})

		w.Respawn = true
		scheduler.Once(0)
		scheduler.Once(0)
		assert.Equal(t, []int{0, 4}, seen)
		assert.Equal(t, 1, w.Len())
	})
}

func TestInputSystem(t *testing.T) {
	newGame := func(t *testing.T) (*testWorld, *sim.Scheduler, *keyboard) {
		w := newTestWorld(t, grid.Position{Col: 5, Row: 0})
		_, err := w.Spawn(block.KindT)
		require.NoError(t, err)

		keys := newKeyboard()
		scheduler := sim.NewScheduler(w.World)
		scheduler.Register(&sim.InputSystem{Input: keys})
		scheduler.Register(&sim.GravitySystem{})
		return w, scheduler, keys
	}

	t.Run("actions map to world commands", func(t *testing.T) {
		w, scheduler, keys := newGame(t)

		keys.Press(sim.ActionRotate, sim.ActionSpeedUp, sim.ActionToggleDebug)
		scheduler.Once(0)

		p, _ := w.Piece(1)
		assert.Equal(t, uint(1), p.Disposition)
		assert.Equal(t, 1.5, w.Gravity.SpeedMultiplier)
		assert.True(t, w.DebugLines)

		// Nothing pressed on the next frame: nothing changes.
		scheduler.Once(0)
		assert.Equal(t, uint(1), p.Disposition)
		assert.True(t, w.DebugLines)
	})

	t.Run("pause is handled before gravity", func(t *testing.T) {
		w, scheduler, keys := newGame(t)
		p, _ := w.Piece(1)

		keys.Press(sim.ActionTogglePause)
		scheduler.Once(w.Gravity.Interval)
		assert.Equal(t, sim.Paused, w.Mode)
		assert.Equal(t, uint32(0), p.Position.Row)

		for range 5 {
			scheduler.Once(w.Gravity.Interval)
		}
		assert.Equal(t, uint32(0), p.Position.Row)

		keys.Press(sim.ActionTogglePause)
		scheduler.Once(w.Gravity.Interval)
		assert.Equal(t, sim.Running, w.Mode)
		assert.Equal(t, uint32(1), p.Position.Row)
	})

	t.Run("events arrive in order after the frame", func(t *testing.T) {
		w, scheduler, keys := newGame(t)
		w.Flush()
		w.events = nil

		keys.Press(sim.ActionRotate, sim.ActionTogglePause)
		scheduler.Once(0)
		assert.Equal(t, []sim.EventKind{sim.EventRotated, sim.EventModeChanged}, w.kinds())
	})
}

func TestSpawnSystemRespawns(t *testing.T) {
	w := newTestWorld(t, grid.Position{Col: 5, Row: 17})
	w.Respawn = true
	scheduler := sim.NewScheduler(w.World)
	scheduler.Register(&sim.GravitySystem{})
	scheduler.Register(&sim.SpawnSystem{})

	scheduler.Once(0)
	require.Equal(t, 1, w.ActiveCount())

	first, _ := w.Piece(1)
	scheduler.Once(w.Gravity.Interval)
	assert.False(t, first.Active)
	assert.Equal(t, 1, w.ActiveCount(), "spawn queued in the landing frame")
	assert.Equal(t, 2, w.Len())

	second, ok := w.Piece(2)
	require.True(t, ok)
	assert.Equal(t, grid.Position{Col: 5, Row: 17}, second.Position)
}
