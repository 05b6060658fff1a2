package piece_test

import (
	"testing"

	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blockSize = 30

func newGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(10, 20, grid.Vec2{X: 250, Y: -30})
	require.NoError(t, err)
	return g
}

func assertMapped(t *testing.T, p *piece.Piece, g *grid.Grid) {
	t.Helper()
	for off := range p.Current().Offsets() {
		want := grid.MapToCanvas(off, p.Position, g.Origin, blockSize)
		got := p.Blocks[off.Index]
		assert.Equal(t, off.Index, got.Index)
		assert.InDelta(t, want.X, got.Canvas.X, 1e-3, "block %d x", off.Index)
		assert.InDelta(t, want.Y, got.Canvas.Y, 1e-3, "block %d y", off.Index)
	}
}

func TestSpawn(t *testing.T) {
	g := newGrid(t)
	p := piece.Spawn(1, block.T(), grid.Position{Col: 5, Row: 0}, g, blockSize)

	assert.True(t, p.Active)
	assert.Equal(t, uint(0), p.Disposition)
	assert.Equal(t, block.KindT, p.Kind)
	require.Len(t, p.Blocks, 4)

	want := []grid.Vec2{
		{X: 400, Y: -30},
		{X: 370, Y: -30},
		{X: 430, Y: -30},
		{X: 400, Y: -60},
	}
	for i, w := range want {
		assert.Equal(t, w, p.Blocks[i].Canvas)
	}
	assertMapped(t, p, g)
}

func TestRotate(t *testing.T) {
	g := newGrid(t)

	t.Run("full turn returns to start", func(t *testing.T) {
		p := piece.Spawn(1, block.T(), grid.Position{Col: 5, Row: 3}, g, blockSize)
		start := append([]piece.BlockTransform(nil), p.Blocks...)

		for i := 1; i <= p.Table.Len(); i++ {
			require.True(t, p.Rotate(g, blockSize))
			assert.Equal(t, uint(i%p.Table.Len()), p.Disposition)
			assertMapped(t, p, g)
		}
		assert.Equal(t, start, p.Blocks)
		assert.Equal(t, grid.Position{Col: 5, Row: 3}, p.Position)
	})

	t.Run("inactive piece does not rotate", func(t *testing.T) {
		p := piece.Spawn(1, block.T(), grid.Position{Col: 5, Row: 3}, g, blockSize)
		p.Deactivate()
		assert.False(t, p.Rotate(g, blockSize))
		assert.Equal(t, uint(0), p.Disposition)
	})

	t.Run("no wall kick at the edge", func(t *testing.T) {
		p := piece.Spawn(1, block.T(), grid.Position{Col: 0, Row: 5}, g, blockSize)
		for range 3 {
			p.Rotate(g, blockSize)
		}
		outside := false
		for _, c := range p.Cells() {
			if !g.Contains(c.Col, c.Row) {
				outside = true
			}
		}
		assert.True(t, outside)
		assert.Equal(t, uint32(0), p.Position.Col)
	})
}

func TestDescend(t *testing.T) {
	g := newGrid(t)
	p := piece.Spawn(1, block.T(), grid.Position{Col: 5, Row: 0}, g, blockSize)
	p.Rotate(g, blockSize)

	for row := uint32(1); row <= 5; row++ {
		p.Descend(blockSize)
		assert.Equal(t, row, p.Position.Row)
		assertMapped(t, p, g)
	}
}

func TestLanded(t *testing.T) {
	g := newGrid(t)
	p := piece.Spawn(1, block.T(), grid.Position{Col: 5, Row: 17}, g, blockSize)

	assert.Equal(t, int32(1), p.LowestRowOffset())
	assert.Equal(t, int64(18), p.FloorRow())
	assert.False(t, p.Landed(g))

	p.Descend(blockSize)
	assert.Equal(t, int64(19), p.FloorRow())
	assert.True(t, p.Landed(g))

	// Disposition 2 points the stem up, so the pivot row is the lowest.
	p.Rotate(g, blockSize)
	p.Rotate(g, blockSize)
	assert.Equal(t, int32(0), p.LowestRowOffset())
	assert.False(t, p.Landed(g))
}

func TestCells(t *testing.T) {
	g := newGrid(t)
	p := piece.Spawn(1, block.T(), grid.Position{Col: 5, Row: 0}, g, blockSize)
	assert.Equal(t, []piece.Cell{
		{Index: 0, Col: 5, Row: 0},
		{Index: 1, Col: 4, Row: 0},
		{Index: 2, Col: 6, Row: 0},
		{Index: 3, Col: 5, Row: 1},
	}, p.Cells())
}
