package bench

// Factory is a bounded creator of engine objects. Create reports false once
// the bound is reached.
type Factory interface {
	Create() (Handle, bool)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func() (Handle, bool)

func (f FactoryFunc) Create() (Handle, bool) { return f() }

// NodeFactory creates GUI box nodes and styles them.
type NodeFactory interface {
	NewBox(pos Vec2) (Handle, bool)
	SetSizeAuto(h Handle)
}

// Releaser destroys an object it created. Factories and node factories that
// implement it have their objects destroyed when the owning pool is reset.
type Releaser interface {
	Release(h Handle)
}

// SceneGraph accepts draw state for engine objects.
type SceneGraph interface {
	SetPosition(h Handle, pos Vec2)
	SetVariant(h Handle, v Variant)
	Animate(h Handle, anim Animation)
}

// Script is a per-frame behaviour owned by a single entity.
type Script interface {
	Update(dt float64)
}

// ScriptHost runs attached scripts once per frame.
type ScriptHost interface {
	Attach(h Handle, s Script)
}

// Display shows a line of text.
type Display interface {
	SetText(text string)
}

// Easing selects the interpolation curve of an Animation.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
)

// PlaybackMode selects how an Animation repeats.
type PlaybackMode uint8

const (
	PlaybackOnce PlaybackMode = iota
	PlaybackLoopForward
	PlaybackLoopPingPong
)

// Animation is a continuous animation of the vertical position, run entirely
// by the engine. It starts from the object's position when registered.
type Animation struct {
	To       float64
	Duration float64
	Delay    float64
	Easing   Easing
	Mode     PlaybackMode
}
