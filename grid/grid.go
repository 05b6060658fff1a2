// Package grid holds the playing field extent and maps grid coordinates to
// canvas coordinates.
//
// Grid rows grow downward while canvas y grows upward, so a block one row
// lower sits one block size lower on the canvas.
package grid

import (
	"errors"
	"fmt"

	"github.com/plus3/blockfall/block"
)

var ErrEmptyGrid = errors.New("grid must have at least one column and one row")

// Position is the grid cell of a piece's pivot.
type Position struct {
	Col uint32
	Row uint32
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Vec2 is a point in canvas space.
type Vec2 struct {
	X, Y float32
}

// Grid is the playing field. Origin is the canvas position of the top-left
// corner of cell (0,0) and does not change after creation.
type Grid struct {
	Cols   uint32
	Rows   uint32
	Origin Vec2
}

// New returns a grid with the given extent and canvas origin.
func New(cols, rows uint32, origin Vec2) (*Grid, error) {
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, cols, rows)
	}
	return &Grid{Cols: cols, Rows: rows, Origin: origin}, nil
}

// ForWindow centres a grid horizontally in a window of the given width and
// leaves one block of margin above it.
func ForWindow(cols, rows uint32, blockSize, windowWidth float32) (*Grid, error) {
	width := float32(cols) * blockSize
	return New(cols, rows, Vec2{
		X: windowWidth/2 - width/2,
		Y: -blockSize,
	})
}

// Width returns the canvas width of the grid.
func (g *Grid) Width(blockSize float32) float32 {
	return float32(g.Cols) * blockSize
}

// Height returns the canvas height of the grid.
func (g *Grid) Height(blockSize float32) float32 {
	return float32(g.Rows) * blockSize
}

// Contains reports whether a signed cell lies inside the grid.
func (g *Grid) Contains(col, row int64) bool {
	return col >= 0 && row >= 0 && col < int64(g.Cols) && row < int64(g.Rows)
}

// MapToCanvas returns the canvas position of a block placed at offset from a
// pivot at pos.
func MapToCanvas(offset block.BlockOffset, pos Position, origin Vec2, blockSize float32) Vec2 {
	col := int64(pos.Col) + int64(offset.Col)
	row := int64(pos.Row) + int64(offset.Row)
	return Vec2{
		X: origin.X + float32(col)*blockSize,
		Y: origin.Y - float32(row)*blockSize,
	}
}
