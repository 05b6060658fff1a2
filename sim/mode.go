package sim

// GameMode gates gravity. Rotation and speed changes are accepted in either
// mode.
type GameMode int

const (
	Running GameMode = iota
	Paused
)

// Toggle returns the other mode.
func (m GameMode) Toggle() GameMode {
	if m == Running {
		return Paused
	}
	return Running
}

func (m GameMode) String() string {
	switch m {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}
