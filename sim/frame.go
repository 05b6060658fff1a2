package sim

import (
	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
)

// FrameBlock is one block handed to the renderer.
type FrameBlock struct {
	Piece  piece.ID
	Shape  block.Kind
	Index  uint
	Canvas grid.Vec2
}

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	Grid       grid.Grid
	BlockSize  float32
	Active     []FrameBlock
	Settled    []FrameBlock
	DebugLines bool
	Mode       GameMode
	Gravity    GravityState
}

// Renderer draws frames.
type Renderer interface {
	Render(frame Frame)
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(Frame)

func (f RendererFunc) Render(frame Frame) {
	f(frame)
}

// Snapshot copies the drawable state of the world.
func (w *World) Snapshot() Frame {
	f := Frame{
		Grid:       *w.Grid,
		BlockSize:  w.BlockSize,
		DebugLines: w.DebugLines,
		Mode:       w.Mode,
		Gravity:    w.Gravity,
	}
	for p := range w.Pieces() {
		for _, b := range p.Blocks {
			fb := FrameBlock{Piece: p.ID, Shape: p.Kind, Index: b.Index, Canvas: b.Canvas}
			if p.Active {
				f.Active = append(f.Active, fb)
			} else {
				f.Settled = append(f.Settled, fb)
			}
		}
	}
	return f
}
