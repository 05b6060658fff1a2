package sim

import "github.com/plus3/blockfall/block"

// Commands buffers work that must wait until every system of the frame has
// run, so systems later in the frame see the same world as earlier ones.
type Commands struct {
	spawns []block.Kind
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues a piece spawn.
func (c *Commands) Spawn(kind block.Kind) {
	c.spawns = append(c.spawns, kind)
}

// Defer queues a function execution.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.defers)
}

// Flush applies all commands to world, then delivers the world's pending
// events, and resets the buffer.
func (c *Commands) Flush(world *World) {
	for _, kind := range c.spawns {
		if _, err := world.Spawn(kind); err != nil {
			world.log.Errorf("spawn: %v", err)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.defers = c.defers[:0]

	world.Flush()
}
