// Package engine is the small retained-mode runtime the benchmark scenes run
// on. Objects live in an ecs.Storage with an entity limit; bounded factories
// and GUI node layers create them, and per-tick systems run attached scripts
// and tweens. Drawing is left to whoever registers render systems.
package engine

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/ecs"
	"github.com/sirupsen/logrus"
)

// DefaultObjectLimit caps the live objects of a World when no limit is given.
const DefaultObjectLimit = 1 << 16

// World owns every engine object and the systems that animate them. It
// implements bench.SceneGraph and bench.ScriptHost.
type World struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	render    *ecs.Scheduler

	handles   *intmap.Map[bench.Handle, *ecs.EntityRef]
	next      bench.Handle
	factories []*Factory
	layers    []*NodeLayer
	labels    []*Label
}

// NewRegistry registers the engine components. Callers adding their own
// components can pass the registry to NewWorldWithRegistry.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Node](registry)
	ecs.RegisterComponent[Tween](registry)
	ecs.RegisterComponent[ScriptRef](registry)
	return registry
}

// NewWorld creates a world holding at most limit objects. Zero selects
// DefaultObjectLimit.
func NewWorld(limit int) *World {
	return NewWorldWithRegistry(NewRegistry(), limit)
}

func NewWorldWithRegistry(registry *ecs.ComponentRegistry, limit int) *World {
	if limit < 0 {
		panic("object limit cannot be negative")
	}
	if limit == 0 {
		limit = DefaultObjectLimit
	}

	storage := ecs.NewStorage(registry, ecs.WithEntityLimit(limit))
	w := &World{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		render:    ecs.NewScheduler(storage),
		handles:   intmap.New[bench.Handle, *ecs.EntityRef](1024),
	}
	w.scheduler.Register(&ScriptSystem{})
	w.scheduler.Register(&TweenSystem{})
	return w
}

// Storage exposes the object storage.
func (w *World) Storage() *ecs.Storage {
	return w.storage
}

// Scheduler runs the per-tick systems. Systems registered here run after
// scripts and tweens.
func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}

// RenderScheduler runs the draw systems once per Draw.
func (w *World) RenderScheduler() *ecs.Scheduler {
	return w.render
}

// Tick advances scripts and tweens by dt seconds.
func (w *World) Tick(dt float64) {
	w.scheduler.Once(dt)
}

// Draw runs the render systems.
func (w *World) Draw() {
	w.render.Once(0)
}

// Len returns the number of live objects.
func (w *World) Len() int {
	return w.storage.Len()
}

// Remaining returns how many more objects the world can hold.
func (w *World) Remaining() int {
	return w.storage.Remaining()
}

// Clear destroys every object and label and resets the factories and node
// layers.
func (w *World) Clear() {
	logrus.WithField("objects", w.storage.Len()).Debug("Clearing world")
	w.storage.Clear()
	w.handles = intmap.New[bench.Handle, *ecs.EntityRef](1024)
	for _, f := range w.factories {
		f.live = 0
	}
	for _, l := range w.layers {
		l.live = 0
	}
	w.labels = nil
}

func (w *World) spawn(components ...any) (bench.Handle, bool) {
	id, ok := w.storage.TrySpawn(components...)
	if !ok {
		return 0, false
	}
	w.next++
	w.handles.Put(w.next, w.storage.CreateEntityRef(id))
	return w.next, true
}

// destroy deletes the object with its scripts and tweens and forgets its
// handle.
func (w *World) destroy(h bench.Handle) bool {
	id, ok := w.Entity(h)
	if !ok {
		return false
	}
	w.storage.Delete(id)
	w.handles.Del(h)
	return true
}

// Entity resolves a handle to its current entity id.
func (w *World) Entity(h bench.Handle) (ecs.EntityId, bool) {
	ref, ok := w.handles.Get(h)
	if !ok {
		return 0, false
	}
	return w.storage.ResolveEntityRef(ref)
}

// Position returns the object's transform.
func (w *World) Position(h bench.Handle) (bench.Vec2, bool) {
	t := w.transform(h)
	if t == nil {
		return bench.Vec2{}, false
	}
	return bench.Vec2{X: t.X, Y: t.Y}, true
}

func (w *World) transform(h bench.Handle) *Transform {
	id, ok := w.Entity(h)
	if !ok {
		return nil
	}
	return ecs.ReadComponent[Transform](w.storage, id)
}

func (w *World) SetPosition(h bench.Handle, pos bench.Vec2) {
	if t := w.transform(h); t != nil {
		t.X, t.Y = pos.X, pos.Y
	}
}

func (w *World) SetVariant(h bench.Handle, v bench.Variant) {
	id, ok := w.Entity(h)
	if !ok {
		return
	}
	if s := ecs.ReadComponent[Sprite](w.storage, id); s != nil {
		s.Variant = v
	}
}

// Animate starts a tween of the object's y from its current value.
// Registering a second animation replaces the first.
func (w *World) Animate(h bench.Handle, anim bench.Animation) {
	id, ok := w.Entity(h)
	if !ok {
		return
	}
	t := ecs.ReadComponent[Transform](w.storage, id)
	if t == nil {
		return
	}
	w.storage.AddComponent(id, Tween{
		From:     t.Y,
		To:       anim.To,
		Duration: anim.Duration,
		Delay:    anim.Delay,
		Easing:   anim.Easing,
		Mode:     anim.Mode,
	})
}

// Attach makes s run on every Tick until the world is cleared.
func (w *World) Attach(h bench.Handle, s bench.Script) {
	if id, ok := w.Entity(h); ok {
		w.storage.AddComponent(id, ScriptRef{Script: s})
	}
}
