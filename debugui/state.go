package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/sim"
)

// StateLines describes the game mode and gravity timer.
func StateLines(w *sim.World) []string {
	g := w.Gravity
	return []string{
		fmt.Sprintf("Mode: %s", w.Mode),
		fmt.Sprintf("Speed: x%.2f (step %.2f)", g.SpeedMultiplier, g.Step),
		fmt.Sprintf("Interval: %.3fs", g.Interval),
		fmt.Sprintf("Elapsed: %.3fs", g.Elapsed),
		fmt.Sprintf("Next step in: %.3fs", g.Remaining()),
	}
}

// StatePanel shows the game state and offers the same controls as the
// keyboard.
type StatePanel struct {
	world *sim.World
}

func NewStatePanel(world *sim.World) *StatePanel {
	return &StatePanel{world: world}
}

func (sp *StatePanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 200), imgui.CondOnce)

	if !imgui.BeginV("Game State", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	w := sp.world
	for _, line := range StateLines(w) {
		imgui.Text(line)
	}
	if w.Mode == sim.Paused {
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
	} else {
		progress := float32(w.Gravity.Elapsed / w.Gravity.Interval)
		imgui.ProgressBarV(progress, imgui.NewVec2(-1, 0), fmt.Sprintf("%.2f/%.2fs", w.Gravity.Elapsed, w.Gravity.Interval))
	}

	imgui.Separator()
	label := "Pause"
	if w.Mode == sim.Paused {
		label = "Resume"
	}
	if imgui.Button(label) {
		w.TogglePause()
	}
	imgui.SameLine()
	if imgui.Button("Rotate") {
		w.Rotate()
	}
	imgui.SameLine()
	if imgui.Button("Faster") {
		w.IncreaseGravity()
	}

	imgui.End()
}
