// Package piece implements the state of a falling piece: which disposition
// of its shape is showing, where its pivot sits on the grid, and the canvas
// position of each of its blocks.
package piece

import (
	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/grid"
)

// ID identifies a piece within a simulation.
type ID uint32

// BlockTransform is the canvas position of one block of a piece.
type BlockTransform struct {
	Index  uint
	Canvas grid.Vec2
}

// Piece is a single piece on the board. An inactive piece has landed and no
// longer takes gravity or rotation, but it is kept so a later phase can
// settle it into the board.
type Piece struct {
	ID          ID
	Kind        block.Kind
	Table       *block.DispositionTable
	Disposition uint
	Position    grid.Position
	Active      bool
	Blocks      []BlockTransform
}

// Spawn creates an active piece of shape at pos showing its first
// disposition.
func Spawn(id ID, shape *block.Shape, pos grid.Position, g *grid.Grid, blockSize float32) *Piece {
	p := &Piece{
		ID:       id,
		Kind:     shape.Kind,
		Table:    shape.Table,
		Position: pos,
		Active:   true,
		Blocks:   make([]BlockTransform, shape.Table.Blocks()),
	}
	p.Relayout(g, blockSize)
	return p
}

// Current returns the disposition the piece is showing.
func (p *Piece) Current() block.Disposition {
	return p.Table.At(p.Disposition)
}

// Relayout recomputes every block transform from the current disposition
// and position.
func (p *Piece) Relayout(g *grid.Grid, blockSize float32) {
	for off := range p.Current().Offsets() {
		p.Blocks[off.Index] = BlockTransform{
			Index:  off.Index,
			Canvas: grid.MapToCanvas(off, p.Position, g.Origin, blockSize),
		}
	}
}

// Rotate advances the piece to its next disposition and relays out its
// blocks around the unchanged pivot. Blocks may end up outside the grid.
// Inactive pieces are left alone and Rotate reports false.
func (p *Piece) Rotate(g *grid.Grid, blockSize float32) bool {
	if !p.Active {
		return false
	}
	p.Disposition = p.Table.Next(p.Disposition)
	p.Relayout(g, blockSize)
	return true
}

// Descend moves the piece one row down, shifting each block by one block
// size on the canvas.
func (p *Piece) Descend(blockSize float32) {
	p.Position.Row++
	for i := range p.Blocks {
		p.Blocks[i].Canvas.Y -= blockSize
	}
}

// LowestRowOffset is the row offset of the block nearest the floor in the
// current disposition.
func (p *Piece) LowestRowOffset() int32 {
	return p.Current().LowestRow()
}

// FloorRow is the grid row of the piece's lowest block.
func (p *Piece) FloorRow() int64 {
	return int64(p.Position.Row) + int64(p.LowestRowOffset())
}

// Landed reports whether the piece's lowest block has reached the last row
// of g.
func (p *Piece) Landed(g *grid.Grid) bool {
	return p.FloorRow() >= int64(g.Rows)-1
}

// Deactivate takes the piece out of play.
func (p *Piece) Deactivate() {
	p.Active = false
}

// Cell is an absolute grid cell, which may lie outside the grid.
type Cell struct {
	Index    uint
	Col, Row int64
}

// Cells returns the absolute cells covered by the current disposition.
func (p *Piece) Cells() []Cell {
	cells := make([]Cell, 0, len(p.Blocks))
	for off := range p.Current().Offsets() {
		cells = append(cells, Cell{
			Index: off.Index,
			Col:   int64(p.Position.Col) + int64(off.Col),
			Row:   int64(p.Position.Row) + int64(off.Row),
		})
	}
	return cells
}
