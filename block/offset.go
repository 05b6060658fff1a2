// Package block describes pieces as sets of block offsets around a pivot.
// A shape's rotation states are stored in a DispositionTable, one
// Disposition per state.
package block

import (
	"errors"
	"fmt"
	"iter"
)

// MaxBlocks is the largest number of blocks a single piece may be made of.
const MaxBlocks = 8

var (
	ErrNoDispositions     = errors.New("disposition table has no dispositions")
	ErrNoBlocks           = errors.New("disposition has no blocks")
	ErrTooManyBlocks      = errors.New("disposition exceeds the maximum block count")
	ErrBlockCountMismatch = errors.New("dispositions have different block counts")
	ErrMissingPivot       = errors.New("disposition does not contain the pivot block (0,0)")
	ErrDuplicateCell      = errors.New("disposition places two blocks on the same cell")
)

// Cell is a (column, row) pair relative to a piece's pivot.
type Cell struct {
	Col int32
	Row int32
}

// BlockOffset positions one block of a piece relative to the pivot.
// Index identifies which rendered block the offset belongs to.
type BlockOffset struct {
	Col   int32
	Row   int32
	Index uint
}

// Cell returns the offset without its block index.
func (o BlockOffset) Cell() Cell {
	return Cell{Col: o.Col, Row: o.Row}
}

// Disposition is one rotation state of a piece: exactly Len() offsets,
// the i-th of which has Index i.
type Disposition struct {
	offsets [MaxBlocks]BlockOffset
	n       int
}

// NewDisposition builds a disposition from cells, assigning block indices in
// the order the cells are given.
func NewDisposition(cells ...Cell) (Disposition, error) {
	var d Disposition
	if len(cells) == 0 {
		return d, ErrNoBlocks
	}
	if len(cells) > MaxBlocks {
		return d, fmt.Errorf("%w: %d > %d", ErrTooManyBlocks, len(cells), MaxBlocks)
	}

	pivot := false
	seen := make(map[Cell]struct{}, len(cells))
	for i, c := range cells {
		if _, dup := seen[c]; dup {
			return Disposition{}, fmt.Errorf("%w: (%d,%d)", ErrDuplicateCell, c.Col, c.Row)
		}
		seen[c] = struct{}{}
		if c == (Cell{}) {
			pivot = true
		}
		d.offsets[i] = BlockOffset{Col: c.Col, Row: c.Row, Index: uint(i)}
	}
	if !pivot {
		return Disposition{}, ErrMissingPivot
	}

	d.n = len(cells)
	return d, nil
}

// Len returns the number of blocks.
func (d Disposition) Len() int {
	return d.n
}

// At returns the offset of block index i. It panics if i is out of range.
func (d Disposition) At(i uint) BlockOffset {
	if int(i) >= d.n {
		panic(fmt.Sprintf("block index %d out of range [0,%d)", i, d.n))
	}
	return d.offsets[i]
}

// Offsets iterates over the offsets in block index order.
func (d Disposition) Offsets() iter.Seq[BlockOffset] {
	return func(yield func(BlockOffset) bool) {
		for i := 0; i < d.n; i++ {
			if !yield(d.offsets[i]) {
				return
			}
		}
	}
}

// LowestRow returns the largest row offset, i.e. the block nearest the floor.
func (d Disposition) LowestRow() int32 {
	lowest := d.offsets[0].Row
	for i := 1; i < d.n; i++ {
		if d.offsets[i].Row > lowest {
			lowest = d.offsets[i].Row
		}
	}
	return lowest
}
