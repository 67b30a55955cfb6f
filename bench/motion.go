package bench

import (
	"math"
	"math/rand/v2"
)

// MotionParams is the bounce law shared by every simulation variant.
type MotionParams struct {
	Gravity float64
	Floor   float64
}

// DefaultMotion matches the classic bunnymark constants.
var DefaultMotion = MotionParams{
	Gravity: 1200,
	Floor:   60,
}

// Step advances one body by dt seconds. A body that would end below the
// floor is clamped onto it and its velocity is inverted; there is no
// sub-step interpolation of the contact point.
func Step(b *Body, dt float64, p MotionParams) {
	b.Velocity -= p.Gravity * dt
	b.Position.Y += b.Velocity * dt
	if b.Position.Y < p.Floor {
		b.Position.Y = p.Floor
		b.Velocity = -b.Velocity
	}
}

// Simulator runs the centralized variant: one pass over a pool's entities.
type Simulator struct {
	Params MotionParams
	Graph  SceneGraph
}

// Run steps every entity in order and publishes its new position.
func (s *Simulator) Run(entities []Entity, dt float64) {
	for i := range entities {
		e := &entities[i]
		Step(e.Body, dt, s.Params)
		if s.Graph != nil {
			s.Graph.SetPosition(e.Handle, e.Body.Position)
		}
	}
}

// Bouncer is the autonomous variant: a per-entity script with the same law
// as Simulator.
type Bouncer struct {
	entity Entity
	params MotionParams
	graph  SceneGraph
}

// NewBouncer binds a script to an entity's body.
func NewBouncer(e Entity, params MotionParams, graph SceneGraph) *Bouncer {
	return &Bouncer{entity: e, params: params, graph: graph}
}

// Update implements the engine script contract.
func (b *Bouncer) Update(dt float64) {
	Step(b.entity.Body, dt, b.params)
	if b.graph != nil {
		b.graph.SetPosition(b.entity.Handle, b.entity.Body.Position)
	}
}

// Body returns the simulated state.
func (b *Bouncer) Body() *Body {
	return b.entity.Body
}

// Wanderer drives an entity toward random targets inside a rectangle at a
// fixed speed, picking a new target once within one unit of the current one.
type Wanderer struct {
	entity Entity
	speed  float64
	bounds Vec2
	target Vec2
	rng    *rand.Rand
	graph  SceneGraph
}

// NewWanderer creates a wanderer whose first target is its start position.
func NewWanderer(e Entity, speed float64, bounds Vec2, rng *rand.Rand, graph SceneGraph) *Wanderer {
	return &Wanderer{
		entity: e,
		speed:  speed,
		bounds: bounds,
		target: e.Body.Position,
		rng:    rng,
		graph:  graph,
	}
}

// Update implements the engine script contract.
func (w *Wanderer) Update(dt float64) {
	pos := &w.entity.Body.Position
	dx, dy := w.target.X-pos.X, w.target.Y-pos.Y

	if dx*dx+dy*dy > 1 {
		dist := math.Hypot(dx, dy)
		move := math.Min(w.speed*dt, dist)
		pos.X += dx / dist * move
		pos.Y += dy / dist * move
	} else {
		w.target = Vec2{
			X: w.rng.Float64() * w.bounds.X,
			Y: w.rng.Float64() * w.bounds.Y,
		}
	}

	if w.graph != nil {
		w.graph.SetPosition(w.entity.Handle, *pos)
	}
}

// Target returns the current destination.
func (w *Wanderer) Target() Vec2 {
	return w.target
}
