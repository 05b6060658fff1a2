package block

import (
	"fmt"
	"sort"
)

// Kind names a shape.
type Kind string

const KindT Kind = "T"

// Shape pairs a kind with its rotation states.
type Shape struct {
	Kind  Kind
	Table *DispositionTable
}

// T returns the T shape. Dispositions step clockwise starting with the stem
// pointing down.
func T() *Shape {
	return &Shape{
		Kind: KindT,
		Table: MustDispositionTable(
			[]Cell{{0, 0}, {-1, 0}, {1, 0}, {0, 1}},
			[]Cell{{0, 0}, {0, -1}, {0, 1}, {1, 0}},
			[]Cell{{0, 0}, {-1, 0}, {1, 0}, {0, -1}},
			[]Cell{{0, 0}, {0, -1}, {0, 1}, {-1, 0}},
		),
	}
}

// Catalog holds the shapes available to the simulation by kind.
type Catalog struct {
	shapes map[Kind]*Shape
}

// NewCatalog returns a catalog with the built-in shapes.
func NewCatalog() *Catalog {
	c := &Catalog{shapes: make(map[Kind]*Shape)}
	c.shapes[KindT] = T()
	return c
}

// Add registers a shape, replacing any shape of the same kind.
func (c *Catalog) Add(s *Shape) error {
	if s == nil || s.Table == nil {
		return fmt.Errorf("shape %q has no disposition table", kindOf(s))
	}
	if s.Kind == "" {
		return fmt.Errorf("shape has no kind")
	}
	c.shapes[s.Kind] = s
	return nil
}

// Lookup returns the shape registered for kind.
func (c *Catalog) Lookup(kind Kind) (*Shape, bool) {
	s, ok := c.shapes[kind]
	return s, ok
}

// Kinds returns the registered kinds in sorted order.
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.shapes))
	for k := range c.shapes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func kindOf(s *Shape) Kind {
	if s == nil {
		return ""
	}
	return s.Kind
}
