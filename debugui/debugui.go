// Package debugui draws Dear ImGui panels over the running simulation while
// the debug overlay is on.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/sim"
)

// Item holds a Dear ImGui render function.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System defers the render function of every item while the world's debug
// overlay is enabled. Register it after the systems it reports on; the
// renders run when the frame's commands are flushed.
type System struct {
	Items []Item
	Input InputState
}

// Add appends a render function.
func (s *System) Add(render func()) {
	s.Items = append(s.Items, Item{Render: render})
}

func (s *System) Execute(frame *sim.UpdateFrame) {
	if !frame.World.DebugLines {
		s.Input = InputState{}
		return
	}

	io := imgui.CurrentIO()
	s.Input.WantCaptureMouse = io.WantCaptureMouse()
	s.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range s.Items {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// New returns a System carrying the standard panels for world and
// scheduler.
func New(world *sim.World, scheduler *sim.Scheduler) *System {
	s := &System{}
	inspector := NewPieceInspector(world)
	state := NewStatePanel(world)
	perf := NewPerformancePanel(scheduler, 120)

	s.Add(inspector.Render)
	s.Add(state.Render)
	s.Add(perf.Render)
	return s
}
