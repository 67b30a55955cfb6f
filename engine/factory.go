package engine

import (
	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/ecs"
	"github.com/sirupsen/logrus"
)

// DefaultFactoryMax and DefaultNodeMax bound factories and node layers
// created with a zero max.
const (
	DefaultFactoryMax = 1024
	DefaultNodeMax    = 512
)

// Factory creates sprite objects up to a fixed number of live instances.
type Factory struct {
	world *World
	name  string
	max   int
	live  int
}

// NewFactory adds a bounded factory to the world.
func (w *World) NewFactory(name string, max int) *Factory {
	if max < 0 {
		panic("factory max cannot be negative")
	}
	if max == 0 {
		max = DefaultFactoryMax
	}
	f := &Factory{world: w, name: name, max: max}
	w.factories = append(w.factories, f)
	return f
}

// Create implements bench.Factory. It refuses once the factory or the
// world is full.
func (f *Factory) Create() (bench.Handle, bool) {
	if f.live >= f.max {
		return 0, false
	}
	h, ok := f.world.spawn(Transform{}, Sprite{Layer: LayerWorld})
	if !ok {
		logrus.WithField("factory", f.name).Debug("World object limit reached")
		return 0, false
	}
	f.live++
	return h, true
}

// Release implements bench.Releaser. The object stops running its scripts
// and tweens and frees its slot in the factory.
func (f *Factory) Release(h bench.Handle) {
	if f.world.destroy(h) {
		f.live--
	}
}

func (f *Factory) Name() string { return f.name }

// Live returns the number of objects created and not yet released.
func (f *Factory) Live() int { return f.live }

func (f *Factory) Max() int { return f.max }

// NodeLayer creates GUI box nodes up to a fixed node count.
type NodeLayer struct {
	world *World
	max   int
	live  int
}

// NewNodeLayer adds a bounded GUI node layer to the world.
func (w *World) NewNodeLayer(max int) *NodeLayer {
	if max < 0 {
		panic("node max cannot be negative")
	}
	if max == 0 {
		max = DefaultNodeMax
	}
	l := &NodeLayer{world: w, max: max}
	w.layers = append(w.layers, l)
	return l
}

// NewBox implements bench.NodeFactory.
func (l *NodeLayer) NewBox(pos bench.Vec2) (bench.Handle, bool) {
	if l.live >= l.max {
		return 0, false
	}
	h, ok := l.world.spawn(Transform{X: pos.X, Y: pos.Y}, Sprite{Layer: LayerGUI}, Node{})
	if !ok {
		return 0, false
	}
	l.live++
	return h, true
}

// SetSizeAuto sizes the node to its sprite.
func (l *NodeLayer) SetSizeAuto(h bench.Handle) {
	id, ok := l.world.Entity(h)
	if !ok {
		return
	}
	if n := ecs.ReadComponent[Node](l.world.storage, id); n != nil {
		n.Auto = true
		n.W, n.H = SpriteWidth, SpriteHeight
	}
}

// Release implements bench.Releaser.
func (l *NodeLayer) Release(h bench.Handle) {
	if l.world.destroy(h) {
		l.live--
	}
}

func (l *NodeLayer) Live() int { return l.live }

func (l *NodeLayer) Max() int { return l.max }
