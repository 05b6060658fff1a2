// Package sim runs the falling-block simulation: a World holding the grid,
// game mode, gravity timer and pieces, and a Scheduler that drives ordered
// systems over it once per frame.
package sim

import (
	"errors"
	"fmt"
	"iter"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/piece"
)

var ErrUnknownShape = errors.New("unknown shape")

// Options configures a World.
type Options struct {
	Grid      *grid.Grid
	BlockSize float32
	Gravity   GravityState
	Catalog   *block.Catalog

	SpawnPosition grid.Position
	SpawnKind     block.Kind
	// Respawn spawns a new piece once no piece is active.
	Respawn bool

	Logger *logging.Logger
}

// World is the simulation context. It is owned by a single goroutine; all
// mutation happens inside the scheduler's frame.
type World struct {
	Grid       *grid.Grid
	BlockSize  float32
	Mode       GameMode
	Gravity    GravityState
	DebugLines bool
	Catalog    *block.Catalog

	SpawnPosition grid.Position
	SpawnKind     block.Kind
	Respawn       bool

	pieces    *intmap.Map[piece.ID, *piece.Piece]
	order     []piece.ID
	active    []piece.ID
	lastID    piece.ID
	pending   []Event
	listeners []Listener
	log       *logging.Logger
}

// NewWorld validates opts and returns a running world with no pieces.
func NewWorld(opts Options) (*World, error) {
	if opts.Grid == nil {
		return nil, errors.New("world requires a grid")
	}
	if !(opts.BlockSize > 0) {
		return nil, fmt.Errorf("block size must be positive, got %v", opts.BlockSize)
	}
	if opts.Gravity == (GravityState{}) {
		opts.Gravity = DefaultGravity()
	}
	if !(opts.Gravity.Interval > 0) || !(opts.Gravity.SpeedMultiplier > 0) {
		return nil, ErrInvalidGravity
	}
	if opts.Catalog == nil {
		opts.Catalog = block.NewCatalog()
	}
	if opts.SpawnKind == "" {
		opts.SpawnKind = block.KindT
	}
	if _, ok := opts.Catalog.Lookup(opts.SpawnKind); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, opts.SpawnKind)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	return &World{
		Grid:          opts.Grid,
		BlockSize:     opts.BlockSize,
		Mode:          Running,
		Gravity:       opts.Gravity,
		Catalog:       opts.Catalog,
		SpawnPosition: opts.SpawnPosition,
		SpawnKind:     opts.SpawnKind,
		Respawn:       opts.Respawn,
		pieces:        intmap.New[piece.ID, *piece.Piece](16),
		log:           opts.Logger,
	}, nil
}

// Spawn places a new piece of kind at the spawn position.
func (w *World) Spawn(kind block.Kind) (*piece.Piece, error) {
	shape, ok := w.Catalog.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, kind)
	}

	w.lastID++
	p := piece.Spawn(w.lastID, shape, w.SpawnPosition, w.Grid, w.BlockSize)
	w.pieces.Put(p.ID, p)
	w.order = append(w.order, p.ID)
	w.active = append(w.active, p.ID)

	w.log.Infof("spawning %s piece %d at %v", p.Kind, p.ID, p.Position)
	w.emitPiece(EventSpawned, p)
	return p, nil
}

// Piece returns the piece with the given id.
func (w *World) Piece(id piece.ID) (*piece.Piece, bool) {
	return w.pieces.Get(id)
}

// Pieces iterates over every piece in spawn order.
func (w *World) Pieces() iter.Seq[*piece.Piece] {
	return func(yield func(*piece.Piece) bool) {
		for _, id := range w.order {
			p, ok := w.pieces.Get(id)
			if !ok {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// ActivePieces iterates over pieces still in play, in spawn order. Landed
// pieces are not visited.
func (w *World) ActivePieces() iter.Seq[*piece.Piece] {
	return func(yield func(*piece.Piece) bool) {
		for _, id := range w.active {
			p, ok := w.pieces.Get(id)
			if !ok || !p.Active {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// ActiveCount returns the number of pieces still in play.
func (w *World) ActiveCount() int {
	n := 0
	for range w.ActivePieces() {
		n++
	}
	return n
}

// Len returns the number of pieces, active or not.
func (w *World) Len() int {
	return w.pieces.Len()
}

// Rotate steps every active piece to its next disposition and returns how
// many pieces rotated. It works while paused.
func (w *World) Rotate() int {
	n := 0
	for p := range w.ActivePieces() {
		if p.Rotate(w.Grid, w.BlockSize) {
			n++
			w.log.Debugf("piece %d rotated to disposition %d", p.ID, p.Disposition)
			w.emitPiece(EventRotated, p)
		}
	}
	if n == 0 {
		w.log.Infof("no piece available for rotation")
	}
	return n
}

// TogglePause flips between running and paused.
func (w *World) TogglePause() GameMode {
	w.Mode = w.Mode.Toggle()
	w.log.Infof("game is %s", w.Mode)
	w.emit(Event{Kind: EventModeChanged, Mode: w.Mode, Gravity: w.Gravity})
	return w.Mode
}

// IncreaseGravity speeds gravity up by one step. It works while paused.
func (w *World) IncreaseGravity() {
	w.Gravity.IncreaseSpeed()
	w.log.Infof("gravity speed %.2f, interval %.3fs", w.Gravity.SpeedMultiplier, w.Gravity.Interval)
	w.emit(Event{Kind: EventSpeedChanged, Mode: w.Mode, Gravity: w.Gravity})
}

// ToggleDebug flips the debug grid overlay.
func (w *World) ToggleDebug() bool {
	w.DebugLines = !w.DebugLines
	w.emit(Event{Kind: EventDebugToggled, Mode: w.Mode, DebugLines: w.DebugLines})
	return w.DebugLines
}

// ApplyGravity advances the gravity timer by dt while running. When the
// timer fires every active piece moves down one row, and pieces whose
// lowest block reaches the last row are taken out of play. It returns the
// number of pieces moved.
func (w *World) ApplyGravity(dt float64) int {
	if w.Mode != Running {
		return 0
	}
	if !w.Gravity.Tick(dt) {
		return 0
	}

	moved, landed := 0, 0
	for p := range w.ActivePieces() {
		p.Descend(w.BlockSize)
		moved++
		w.emitPiece(EventDescended, p)

		if p.Landed(w.Grid) {
			p.Deactivate()
			landed++
			w.log.Infof("piece %d landed at %v (floor row %d)", p.ID, p.Position, p.FloorRow())
			w.emitPiece(EventLanded, p)
		}
	}
	if landed > 0 {
		w.pruneActive()
	}
	if moved == 0 {
		w.log.Debugf("gravity tick with no active piece")
	}
	return moved
}

// pruneActive drops landed pieces from the active list, keeping spawn order.
func (w *World) pruneActive() {
	kept := w.active[:0]
	for _, id := range w.active {
		if p, ok := w.pieces.Get(id); ok && p.Active {
			kept = append(kept, id)
		}
	}
	clear(w.active[len(kept):])
	w.active = kept
}

// Subscribe registers l for every event from now on.
func (w *World) Subscribe(l Listener) {
	w.listeners = append(w.listeners, l)
}

// Flush delivers queued events to the listeners in the order they were
// produced.
func (w *World) Flush() {
	if len(w.pending) == 0 {
		return
	}
	events := w.pending
	w.pending = nil
	for _, ev := range events {
		for _, l := range w.listeners {
			l(ev)
		}
	}
}

// Logger returns the world's logger.
func (w *World) Logger() *logging.Logger {
	return w.log
}

func (w *World) emitPiece(kind EventKind, p *piece.Piece) {
	w.emit(Event{
		Kind:        kind,
		Piece:       p.ID,
		Shape:       p.Kind,
		Position:    p.Position,
		Disposition: p.Disposition,
		Mode:        w.Mode,
		Gravity:     w.Gravity,
	})
}

func (w *World) emit(ev Event) {
	w.pending = append(w.pending, ev)
}
