package sim

import (
	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
)

type EventKind int

const (
	EventSpawned EventKind = iota
	EventRotated
	EventDescended
	EventLanded
	EventModeChanged
	EventSpeedChanged
	EventDebugToggled
)

func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventRotated:
		return "rotated"
	case EventDescended:
		return "descended"
	case EventLanded:
		return "landed"
	case EventModeChanged:
		return "mode_changed"
	case EventSpeedChanged:
		return "speed_changed"
	case EventDebugToggled:
		return "debug_toggled"
	default:
		return "unknown"
	}
}

// Event records a change to the world. Piece fields are set for piece
// events only.
type Event struct {
	Kind        EventKind
	Piece       piece.ID
	Shape       block.Kind
	Position    grid.Position
	Disposition uint
	Mode        GameMode
	Gravity     GravityState
	DebugLines  bool
}

// Listener receives events once the frame that produced them has finished.
type Listener func(Event)
