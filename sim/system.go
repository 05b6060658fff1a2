package sim

// System represents a behavior that runs once per frame. Systems can hold
// their own state, which persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// Initializer is implemented by systems that need to see the world when
// they are registered.
type Initializer interface {
	Init(world *World)
}
