package block

import "fmt"

// DispositionTable is the ordered list of rotation states of a shape.
// Every disposition holds the same number of blocks.
type DispositionTable struct {
	dispositions []Disposition
	blocks       int
}

// NewDispositionTable validates and builds a table, one cell set per
// disposition. Invalid tables are rejected here so they can never reach a
// running simulation.
func NewDispositionTable(sets ...[]Cell) (*DispositionTable, error) {
	if len(sets) == 0 {
		return nil, ErrNoDispositions
	}

	t := &DispositionTable{
		dispositions: make([]Disposition, 0, len(sets)),
	}
	for i, cells := range sets {
		d, err := NewDisposition(cells...)
		if err != nil {
			return nil, fmt.Errorf("disposition %d: %w", i, err)
		}
		if i == 0 {
			t.blocks = d.Len()
		} else if d.Len() != t.blocks {
			return nil, fmt.Errorf("disposition %d: %w: got %d blocks, want %d",
				i, ErrBlockCountMismatch, d.Len(), t.blocks)
		}
		t.dispositions = append(t.dispositions, d)
	}

	return t, nil
}

// MustDispositionTable is like NewDispositionTable but panics on error.
// Use it for tables compiled into the program.
func MustDispositionTable(sets ...[]Cell) *DispositionTable {
	t, err := NewDispositionTable(sets...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of dispositions.
func (t *DispositionTable) Len() int {
	return len(t.dispositions)
}

// Blocks returns the block count shared by every disposition.
func (t *DispositionTable) Blocks() int {
	return t.blocks
}

// At returns disposition i, wrapping around the table.
func (t *DispositionTable) At(i uint) Disposition {
	return t.dispositions[i%uint(len(t.dispositions))]
}

// Next returns the index that follows i.
func (t *DispositionTable) Next(i uint) uint {
	return (i + 1) % uint(len(t.dispositions))
}
