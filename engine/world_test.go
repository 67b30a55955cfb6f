package engine_test

import (
	"testing"

	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingScript struct {
	calls int
	dt    float64
}

func (s *countingScript) Update(dt float64) {
	s.calls++
	s.dt += dt
}

func TestFactoryBound(t *testing.T) {
	w := engine.NewWorld(0)
	f := w.NewFactory("factory", 3)

	for i := 0; i < 3; i++ {
		_, ok := f.Create()
		require.True(t, ok)
	}
	_, ok := f.Create()
	assert.False(t, ok)
	assert.Equal(t, 3, f.Live())
	assert.Equal(t, 3, w.Len())
}

func TestWorldLimitBoundsFactories(t *testing.T) {
	w := engine.NewWorld(4)
	a := w.NewFactory("a", 3)
	b := w.NewFactory("b", 3)

	for i := 0; i < 3; i++ {
		_, ok := a.Create()
		require.True(t, ok)
	}
	_, ok := b.Create()
	assert.True(t, ok)
	_, ok = b.Create()
	assert.False(t, ok, "the world limit applies across factories")
	assert.Equal(t, 1, b.Live())
}

func TestHandlesSurviveComponentMoves(t *testing.T) {
	w := engine.NewWorld(0)
	f := w.NewFactory("factory", 10)

	h1, _ := f.Create()
	h2, _ := f.Create()
	w.SetPosition(h1, bench.Vec2{X: 1, Y: 2})
	w.SetPosition(h2, bench.Vec2{X: 3, Y: 4})
	w.SetVariant(h2, 5)

	w.Attach(h1, &countingScript{})
	w.Animate(h2, bench.Animation{To: 4, Duration: 1})

	p1, ok := w.Position(h1)
	require.True(t, ok)
	assert.Equal(t, bench.Vec2{X: 1, Y: 2}, p1)

	p2, ok := w.Position(h2)
	require.True(t, ok)
	assert.Equal(t, bench.Vec2{X: 3, Y: 4}, p2)

	id, ok := w.Entity(h2)
	require.True(t, ok)
	sprite := ecs.ReadComponent[engine.Sprite](w.Storage(), id)
	assert.Equal(t, bench.Variant(5), sprite.Variant)
}

func TestScriptsRunEveryTick(t *testing.T) {
	w := engine.NewWorld(0)
	f := w.NewFactory("factory", 10)

	scripts := make([]*countingScript, 5)
	for i := range scripts {
		h, _ := f.Create()
		scripts[i] = &countingScript{}
		w.Attach(h, scripts[i])
	}

	w.Tick(0.25)
	w.Tick(0.25)

	for _, s := range scripts {
		assert.Equal(t, 2, s.calls)
		assert.Equal(t, 0.5, s.dt)
	}
}

func TestNodeLayer(t *testing.T) {
	w := engine.NewWorld(0)
	nodes := w.NewNodeLayer(2)

	h, ok := nodes.NewBox(bench.Vec2{X: 7, Y: 8})
	require.True(t, ok)
	nodes.SetSizeAuto(h)

	id, _ := w.Entity(h)
	node := ecs.ReadComponent[engine.Node](w.Storage(), id)
	assert.True(t, node.Auto)
	assert.Equal(t, float64(engine.SpriteWidth), node.W)

	pos, _ := w.Position(h)
	assert.Equal(t, bench.Vec2{X: 7, Y: 8}, pos)

	nodes.NewBox(bench.Vec2{})
	_, ok = nodes.NewBox(bench.Vec2{})
	assert.False(t, ok)
}

func TestWorldClear(t *testing.T) {
	w := engine.NewWorld(0)
	f := w.NewFactory("factory", 2)
	h, _ := f.Create()
	f.Create()
	w.NewLabel(0, 0).SetText("x")

	w.Clear()
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, f.Live())
	assert.Empty(t, w.Labels())

	_, ok := w.Position(h)
	assert.False(t, ok, "handles from before Clear no longer resolve")

	_, ok = f.Create()
	assert.True(t, ok)
}

func TestFactoryRelease(t *testing.T) {
	w := engine.NewWorld(3)
	f := w.NewFactory("factory", 2)
	h1, _ := f.Create()
	h2, _ := f.Create()
	script := &countingScript{}
	w.Attach(h1, script)
	w.Animate(h1, bench.Animation{To: 4, Duration: 1})
	assert.Equal(t, 1, w.Remaining())

	f.Release(h1)
	assert.Equal(t, 1, f.Live())
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, 2, w.Remaining())
	_, ok := w.Position(h1)
	assert.False(t, ok)

	w.Tick(0.5)
	assert.Zero(t, script.calls, "a released object no longer runs its scripts")

	f.Release(h1)
	assert.Equal(t, 1, f.Live(), "releasing twice is a no-op")

	_, ok = w.Position(h2)
	assert.True(t, ok)
	_, ok = f.Create()
	assert.True(t, ok)
}

func TestNodeLayerRelease(t *testing.T) {
	w := engine.NewWorld(0)
	nodes := w.NewNodeLayer(1)
	h, _ := nodes.NewBox(bench.Vec2{})

	nodes.Release(h)
	assert.Equal(t, 0, nodes.Live())
	assert.Equal(t, 0, w.Len())
	_, ok := nodes.NewBox(bench.Vec2{})
	assert.True(t, ok)
}

func TestPoolResetReleasesObjects(t *testing.T) {
	w := engine.NewWorld(0)
	ctx := bench.NewContext(1)
	f := w.NewFactory("factory", 10)
	pool := bench.NewFactoryPool(ctx, f, w, func(e bench.Entity) {
		w.Attach(e.Handle, bench.NewBouncer(e, bench.DefaultMotion, w))
	})

	pool.Spawn(10)
	pool.Reset()
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, f.Live())

	assert.True(t, pool.Spawn(10), "the factory bound is free again")
	assert.Equal(t, 10, w.Len())
}

func TestPoolOnWorld(t *testing.T) {
	w := engine.NewWorld(0)
	ctx := bench.NewContext(1)
	pool := bench.NewFactoryPool(ctx, w.NewFactory("factory", 500), w, func(e bench.Entity) {
		e.Body.Position = bench.Vec2{X: 10, Y: 1000}
	})

	assert.True(t, pool.Spawn(500))
	assert.False(t, pool.Spawn(500))
	assert.Equal(t, 500, ctx.Population())

	sim := &bench.Simulator{Params: bench.DefaultMotion, Graph: w}
	sim.Run(pool.Entities(), 0.125)

	for _, e := range pool.Entities() {
		pos, ok := w.Position(e.Handle)
		require.True(t, ok)
		assert.Equal(t, e.Body.Position, pos)
	}
}

func TestLabel(t *testing.T) {
	w := engine.NewWorld(0)
	l := w.NewLabel(4, 5)
	l.SetText("Bunnies 1 FPS:60.00")

	assert.Equal(t, "Bunnies 1 FPS:60.00", l.Text())
	assert.Equal(t, []*engine.Label{l}, w.Labels())
}
