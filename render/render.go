// Package render turns simulation frames into screen geometry. It holds no
// drawing backend; platform code feeds the rectangles and segments it
// produces to whatever paints the screen.
package render

import (
	"fmt"
	"image/color"

	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/sim"
)

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float32
}

// Segment is a line in screen pixels.
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// ToScreen flips canvas y, which grows upward, into screen y, which grows
// downward.
func ToScreen(c grid.Vec2) (x, y float32) {
	return c.X, -c.Y
}

// BlockRect returns the screen rectangle for the block whose top-left corner
// sits at c.
func BlockRect(c grid.Vec2, blockSize float32) Rect {
	x, y := ToScreen(c)
	return Rect{X: x, Y: y, W: blockSize, H: blockSize}
}

// BoardRect is the screen rectangle covered by the grid's cells. The origin
// is the top-left corner of cell (0, 0).
func BoardRect(g grid.Grid, blockSize float32) Rect {
	x, y := ToScreen(g.Origin)
	return Rect{
		X: x,
		Y: y,
		W: g.Width(blockSize),
		H: g.Height(blockSize),
	}
}

// DebugLines returns one vertical segment per inner column boundary and one
// horizontal segment per inner row boundary of the board.
func DebugLines(g grid.Grid, blockSize float32) []Segment {
	board := BoardRect(g, blockSize)
	lines := make([]Segment, 0, int(g.Cols)+int(g.Rows))
	for c := uint32(1); c < g.Cols; c++ {
		x := board.X + float32(c)*blockSize
		lines = append(lines, Segment{X0: x, Y0: board.Y, X1: x, Y1: board.Y + board.H})
	}
	for r := uint32(1); r < g.Rows; r++ {
		y := board.Y + float32(r)*blockSize
		lines = append(lines, Segment{X0: board.X, Y0: y, X1: board.X + board.W, Y1: y})
	}
	return lines
}

var (
	Background   = color.RGBA{18, 18, 24, 255}
	BoardOutline = color.RGBA{128, 128, 128, 255}
	GridLine     = color.RGBA{60, 60, 72, 255}
	Settled      = color.RGBA{90, 90, 100, 255}
	fallback     = color.RGBA{220, 220, 220, 255}
)

var palette = map[block.Kind]color.RGBA{
	block.KindT: {217, 186, 255, 255},
	"I":         {179, 229, 252, 255},
	"O":         {255, 255, 186, 255},
	"S":         {186, 255, 201, 255},
	"Z":         {255, 179, 186, 255},
	"J":         {186, 225, 255, 255},
	"L":         {255, 223, 186, 255},
}

// Color returns the fill colour for an active piece of kind. Unknown kinds
// get a neutral grey.
func Color(kind block.Kind) color.RGBA {
	if c, ok := palette[kind]; ok {
		return c
	}
	return fallback
}

// Fill picks the colour for a frame block.
func Fill(b sim.FrameBlock, active bool) color.RGBA {
	if !active {
		return Settled
	}
	return Color(b.Shape)
}

// Status is the one-line summary drawn below the board.
func Status(frame sim.Frame) string {
	g := frame.Gravity
	return fmt.Sprintf("%s  speed x%.2f  next step %.2fs  pieces %d",
		frame.Mode, g.SpeedMultiplier, g.Remaining(), countPieces(frame.Active))
}

func countPieces(blocks []sim.FrameBlock) int {
	seen := make(map[piece.ID]struct{})
	for _, b := range blocks {
		seen[b.Piece] = struct{}{}
	}
	return len(seen)
}
