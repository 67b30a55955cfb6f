package bench

// ActionID names an input binding.
type ActionID string

const (
	ActionTouch       ActionID = "touch"
	ActionToggleDebug ActionID = "toggledebug"
	ActionQuit        ActionID = "quit"
)

// Phase is the edge of a discrete input event.
type Phase uint8

const (
	Pressed Phase = iota + 1
	Released
)

func (p Phase) String() string {
	switch p {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "none"
	}
}

// InputEvent is one discrete action edge. Pos is in world units, y up.
type InputEvent struct {
	Action ActionID
	Phase  Phase
	Pos    Vec2
}

// InputHandler consumes input events. Implementations report whether they
// handled the event.
type InputHandler interface {
	HandleInput(ev InputEvent) bool
}
