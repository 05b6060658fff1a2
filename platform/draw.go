package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/sim"
)

// DrawFrame paints the board outline, settled and active blocks, the grid
// lines when the overlay is on, and a status line.
func DrawFrame(screen *ebiten.Image, frame sim.Frame) {
	bs := frame.BlockSize
	board := render.BoardRect(frame.Grid, bs)
	vector.StrokeRect(screen, board.X-2, board.Y-2, board.W+4, board.H+4, 2, render.BoardOutline, false)

	if frame.DebugLines {
		for _, l := range render.DebugLines(frame.Grid, bs) {
			vector.StrokeLine(screen, l.X0, l.Y0, l.X1, l.Y1, 1, render.GridLine, false)
		}
	}

	for _, b := range frame.Settled {
		drawBlock(screen, b, bs, false)
	}
	for _, b := range frame.Active {
		drawBlock(screen, b, bs, true)
	}

	ebitenutil.DebugPrintAt(screen, render.Status(frame), int(board.X), int(board.Y+board.H)+8)
}

func drawBlock(screen *ebiten.Image, b sim.FrameBlock, bs float32, active bool) {
	r := render.BlockRect(b.Canvas, bs)
	vector.DrawFilledRect(screen, r.X, r.Y, r.W, r.H, render.Fill(b, active), false)
	vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, 1, render.Background, false)
}
