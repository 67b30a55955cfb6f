// Package bench is the population and measurement core of the bunnymark
// harness. It owns bounded entity pools, the bounce motion law, the rolling
// frame-rate meter and the controllers that turn input or load into spawn
// bursts. Rendering, input delivery and text output are reached only
// through the small interfaces declared in this package.
package bench

import (
	"math/rand/v2"
)

// Handle identifies the engine-side object backing an entity.
type Handle uint64

// Vec2 is a position in world units, y pointing up.
type Vec2 struct {
	X, Y float64
}

// Body is the simulated state of one entity.
type Body struct {
	Position Vec2
	Velocity float64
}

// Variant selects one of the fixed sprite palette entries.
type Variant uint8

var variantNames = [...]string{
	"rabbitv3_batman",
	"rabbitv3_bb8",
	"rabbitv3",
	"rabbitv3_ash",
	"rabbitv3_frankenstein",
	"rabbitv3_neo",
	"rabbitv3_sonic",
	"rabbitv3_spidey",
	"rabbitv3_stormtrooper",
	"rabbitv3_superman",
	"rabbitv3_tron",
	"rabbitv3_wolverine",
}

// VariantCount is the size of the sprite palette.
const VariantCount = len(variantNames)

func (v Variant) String() string {
	if int(v) >= VariantCount {
		return "unknown"
	}
	return variantNames[v]
}

// RandomVariant picks a palette entry uniformly.
func RandomVariant(rng *rand.Rand) Variant {
	return Variant(rng.IntN(VariantCount))
}

// Entity is one spawned member of the population. Body is owned by the pool
// and stays valid until the pool is reset.
type Entity struct {
	Handle  Handle
	Variant Variant
	Body    *Body
}

// Initializer is invoked exactly once for every successfully created entity.
// A nil Initializer is a valid no-op.
type Initializer func(Entity)

// bodyArena hands out Body pointers from fixed-size chunks so that bodies
// created together sit together in memory and never move.
type bodyArena struct {
	chunks [][]Body
	used   int
}

const arenaChunk = 256

func (a *bodyArena) next() *Body {
	chunk := a.used / arenaChunk
	if chunk >= len(a.chunks) {
		a.chunks = append(a.chunks, make([]Body, arenaChunk))
	}
	b := &a.chunks[chunk][a.used%arenaChunk]
	*b = Body{}
	a.used++
	return b
}

// reset drops every chunk rather than recycling it, so no later entity shares
// a body with an object that outlived the pool.
func (a *bodyArena) reset() {
	a.chunks = nil
	a.used = 0
}
