package engine

import (
	"github.com/plus3/bunnymark/bench"
)

// SpriteWidth and SpriteHeight are the size of one palette sprite in world units.
const (
	SpriteWidth  = 26
	SpriteHeight = 37
)

// Layer orders drawing. GUI nodes are drawn over game objects.
type Layer uint8

const (
	LayerWorld Layer = iota
	LayerGUI
)

// Transform is the world position of an object, y up.
type Transform struct {
	X, Y float64
}

// Sprite selects the palette entry an object is drawn with.
type Sprite struct {
	Variant bench.Variant
	Layer   Layer
	Hidden  bool
}

// Node is the box of a GUI node. Auto nodes take the size of their sprite.
type Node struct {
	W, H float64
	Auto bool
}

// Tween animates Transform.Y from From to To.
type Tween struct {
	From     float64
	To       float64
	Duration float64
	Delay    float64
	Easing   bench.Easing
	Mode     bench.PlaybackMode
	Elapsed  float64
	Done     bool
}

// ScriptRef attaches a per-frame script to an object.
type ScriptRef struct {
	Script bench.Script
}
