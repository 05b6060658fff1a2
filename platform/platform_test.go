package platform

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeKeys(k *Keyboard, down ...ebiten.Key) {
	set := make(map[ebiten.Key]bool, len(down))
	for _, key := range down {
		set[key] = true
	}
	k.justPressed = func(key ebiten.Key) bool { return set[key] }
	k.pressed = func(key ebiten.Key) bool { return set[key] }
}

func TestNewKeyboardDefaults(t *testing.T) {
	k, err := NewKeyboard(config.Default().Keys.Bindings())
	require.NoError(t, err)

	assert.Equal(t, []ebiten.Key{ebiten.KeySpace}, k.Keys(sim.ActionRotate))
	assert.Equal(t, []ebiten.Key{ebiten.KeyEnter}, k.Keys(sim.ActionTogglePause))
	assert.Equal(t, []ebiten.Key{ebiten.KeyArrowDown}, k.Keys(sim.ActionSpeedUp))
	assert.Equal(t, []ebiten.Key{ebiten.KeyF1}, k.Keys(sim.ActionToggleDebug))
}

func TestNewKeyboardErrors(t *testing.T) {
	_, err := NewKeyboard(map[sim.Action]string{sim.ActionRotate: "NotAKey"})
	assert.ErrorContains(t, err, "binding rotate")

	_, err = NewKeyboard(map[sim.Action]string{sim.ActionRotate: " , "})
	assert.Error(t, err)
}

func TestKeyboardMultipleKeys(t *testing.T) {
	k, err := NewKeyboard(map[sim.Action]string{sim.ActionRotate: "Space, ArrowUp"})
	require.NoError(t, err)

	fakeKeys(k, ebiten.KeyArrowUp)
	assert.True(t, k.JustPressed(sim.ActionRotate))
	assert.False(t, k.JustPressed(sim.ActionTogglePause))
	assert.False(t, k.Quit())

	fakeKeys(k, ebiten.KeyEscape)
	assert.True(t, k.Quit())
}

func newGame(t *testing.T) (*Game, *sim.World) {
	t.Helper()
	cfg := config.Default()
	w, err := cfg.NewWorld(nil)
	require.NoError(t, err)
	_, err = w.Spawn(block.KindT)
	require.NoError(t, err)

	k, err := NewKeyboard(cfg.Keys.Bindings())
	require.NoError(t, err)
	fakeKeys(k)

	frames := &FrameRecorder{}
	scheduler := sim.NewScheduler(w)
	scheduler.Register(&sim.InputSystem{Input: k})
	scheduler.Register(&sim.GravitySystem{})
	scheduler.Register(&sim.RenderSystem{Renderer: frames})

	return &Game{Scheduler: scheduler, Keyboard: k, Frames: frames}, w
}

func TestGameUpdate(t *testing.T) {
	g, w := newGame(t)

	_, ok := g.Frames.Latest()
	assert.False(t, ok)

	fakeKeys(g.Keyboard, ebiten.KeyEnter, ebiten.KeySpace)
	require.NoError(t, g.Update())

	assert.Equal(t, sim.Paused, w.Mode)
	frame, ok := g.Frames.Latest()
	require.True(t, ok)
	assert.Equal(t, sim.Paused, frame.Mode)
	assert.Len(t, frame.Active, 4)
	assert.Equal(t, int64(1), g.Scheduler.Stats().Frames)
}

func TestGameQuit(t *testing.T) {
	g, _ := newGame(t)
	fakeKeys(g.Keyboard, ebiten.KeyEscape)
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
}

func TestLayout(t *testing.T) {
	g, _ := newGame(t)
	w, h := g.Layout(800, 700)
	assert.Equal(t, 800, w)
	assert.Equal(t, 700, h)
}
