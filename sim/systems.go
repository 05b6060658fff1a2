package sim

// Action is an edge-triggered player command.
type Action int

const (
	ActionRotate Action = iota
	ActionTogglePause
	ActionSpeedUp
	ActionToggleDebug
)

// Actions lists every action in the order InputSystem handles them.
var Actions = []Action{ActionRotate, ActionTogglePause, ActionSpeedUp, ActionToggleDebug}

func (a Action) String() string {
	switch a {
	case ActionRotate:
		return "rotate"
	case ActionTogglePause:
		return "toggle_pause"
	case ActionSpeedUp:
		return "speed_up"
	case ActionToggleDebug:
		return "toggle_debug"
	default:
		return "unknown"
	}
}

// Input reports actions pressed since the previous frame. A held key
// reports true only on the frame it went down.
type Input interface {
	JustPressed(action Action) bool
}

// InputSystem turns pressed actions into world commands.
type InputSystem struct {
	Input Input
}

func (s *InputSystem) Execute(frame *UpdateFrame) {
	if s.Input == nil {
		return
	}
	w := frame.World
	for _, action := range Actions {
		if !s.Input.JustPressed(action) {
			continue
		}
		switch action {
		case ActionRotate:
			w.Rotate()
		case ActionTogglePause:
			w.TogglePause()
		case ActionSpeedUp:
			w.IncreaseGravity()
		case ActionToggleDebug:
			w.ToggleDebug()
		}
	}
}

// GravitySystem advances the gravity timer by the frame's delta time.
type GravitySystem struct {
	Moved int64
}

func (s *GravitySystem) Execute(frame *UpdateFrame) {
	s.Moved += int64(frame.World.ApplyGravity(frame.DeltaTime))
}

// SpawnSystem queues a new piece when the world allows respawning and no
// piece is in play.
type SpawnSystem struct{}

func (s *SpawnSystem) Execute(frame *UpdateFrame) {
	w := frame.World
	if !w.Respawn || w.ActiveCount() > 0 {
		return
	}
	frame.Commands.Spawn(w.SpawnKind)
}

// RenderSystem hands a snapshot of the world to a renderer.
type RenderSystem struct {
	Renderer Renderer
}

func (s *RenderSystem) Execute(frame *UpdateFrame) {
	if s.Renderer == nil {
		return
	}
	s.Renderer.Render(frame.World.Snapshot())
}
