package ecs

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function to run once every system of the frame has run.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs the queued functions in order, reseting the buffer state
func (c *Commands) Flush() {
	for _, fn := range c.defers {
		fn()
	}

	clear(c.defers)
	c.defers = c.defers[:0]
}
