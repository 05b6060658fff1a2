package sim_test

import (
	"bytes"
	"testing"

	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/sim"
	"github.com/stretchr/testify/require"
)

const blockSize = 30

type testWorld struct {
	*sim.World
	logs   *bytes.Buffer
	events []sim.Event
}

func newTestWorld(t *testing.T, spawn grid.Position) *testWorld {
	t.Helper()
	g, err := grid.New(10, 20, grid.Vec2{X: 250, Y: -30})
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	w, err := sim.NewWorld(sim.Options{
		Grid:          g,
		BlockSize:     blockSize,
		SpawnPosition: spawn,
		Logger:        logging.New(logs, logging.LevelDebug),
	})
	require.NoError(t, err)

	tw := &testWorld{World: w, logs: logs}
	w.Subscribe(func(ev sim.Event) { tw.events = append(tw.events, ev) })
	return tw
}

func (tw *testWorld) kinds() []sim.EventKind {
	kinds := make([]sim.EventKind, 0, len(tw.events))
	for _, ev := range tw.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

// keyboard reports each pressed action once, like a key that went down
// between two frames.
type keyboard struct {
	pressed map[sim.Action]bool
}

func newKeyboard() *keyboard {
	return &keyboard{pressed: make(map[sim.Action]bool)}
}

func (k *keyboard) Press(actions ...sim.Action) {
	for _, a := range actions {
		k.pressed[a] = true
	}
}

func (k *keyboard) JustPressed(a sim.Action) bool {
	if k.pressed[a] {
		delete(k.pressed, a)
		return true
	}
	return false
}
