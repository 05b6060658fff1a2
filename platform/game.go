// Package platform runs the simulation inside an Ebiten window: it feeds
// key presses in, steps the scheduler once per tick and paints the most
// recent frame.
package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/sim"
)

// FrameRecorder keeps the last frame handed to it. Register it through a
// sim.RenderSystem; Draw reads it back.
type FrameRecorder struct {
	frame sim.Frame
	ok    bool
}

func (r *FrameRecorder) Render(frame sim.Frame) {
	r.frame = frame
	r.ok = true
}

// Latest returns the last recorded frame.
func (r *FrameRecorder) Latest() (sim.Frame, bool) {
	return r.frame, r.ok
}

// Game implements ebiten.Game.
type Game struct {
	Scheduler *sim.Scheduler
	Keyboard  *Keyboard
	Frames    *FrameRecorder
	// Imgui is optional; without it the debug panels are not drawn.
	Imgui *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	if g.Keyboard != nil && g.Keyboard.Quit() {
		return ebiten.Termination
	}

	if g.Imgui != nil {
		g.Imgui.BeginFrame()
		defer g.Imgui.EndFrame()
	}

	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	if frame, ok := g.Frames.Latest(); ok {
		DrawFrame(screen, frame)
	}
	if g.Imgui != nil {
		g.Imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Imgui != nil {
		g.Imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
