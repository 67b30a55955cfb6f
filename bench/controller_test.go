package bench_test

import (
	"testing"

	"github.com/plus3/bunnymark/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(y float64) bench.InputEvent {
	return bench.InputEvent{Action: bench.ActionTouch, Phase: bench.Released, Pos: bench.Vec2{X: 100, Y: y}}
}

func TestControllerBurstOnInput(t *testing.T) {
	ctx := bench.NewContext(1)
	pool := bench.NewFactoryPool(ctx, &boundedFactory{max: 2000}, nil, nil)
	c := bench.NewController(ctx, pool, nil, nil, bench.DefaultControllerConfig)

	c.Init()
	assert.Equal(t, 500, ctx.Population())

	assert.True(t, c.HandleInput(touch(500)))
	assert.Equal(t, 1000, ctx.Population())

	assert.False(t, c.HandleInput(touch(1030)), "touches over the UI are ignored")
	assert.False(t, c.HandleInput(bench.InputEvent{Action: bench.ActionTouch, Phase: bench.Pressed}))
	assert.False(t, c.HandleInput(bench.InputEvent{Action: bench.ActionToggleDebug, Phase: bench.Released}))
	assert.Equal(t, 1000, ctx.Population())
}

func TestControllerExhaustion(t *testing.T) {
	ctx := bench.NewContext(1)
	var exhausted []bench.Message
	ctx.Bus.Subscribe(bench.HandlerFunc(func(msg bench.Message) {
		exhausted = append(exhausted, msg)
	}, bench.KindExhausted))

	cfg := bench.DefaultControllerConfig
	cfg.StopOnExhausted = true
	pool := bench.NewFactoryPool(ctx, &boundedFactory{max: 700}, nil, nil)
	c := bench.NewController(ctx, pool, nil, nil, cfg)

	c.Init()
	assert.False(t, c.Exhausted())
	c.HandleInput(touch(10))
	assert.True(t, c.Exhausted())
	assert.False(t, c.Accepting())
	assert.False(t, c.HandleInput(touch(10)))

	c.Update(0.5)
	require.Len(t, exhausted, 1)
	assert.Equal(t, bench.Message{
		Kind:       bench.KindExhausted,
		Requested:  500,
		Created:    200,
		Population: 700,
	}, exhausted[0])
}

func TestControllerUpdate(t *testing.T) {
	ctx := bench.NewContext(1)
	graph := newRecordingGraph()
	display := &textSink{}
	pool := bench.NewFactoryPool(ctx, &boundedFactory{max: 10}, graph, func(e bench.Entity) {
		e.Body.Position = bench.Vec2{X: 5, Y: 1000}
	})
	sim := &bench.Simulator{Params: bench.DefaultMotion, Graph: graph}
	cfg := bench.DefaultControllerConfig
	cfg.InitialBurst = 10
	c := bench.NewController(ctx, pool, sim, display, cfg)

	c.Init()
	c.Update(0.25)

	assert.Equal(t, "Bunnies 10 FPS:4.00", display.last())
	assert.Equal(t, display.last(), c.Text())
	for _, e := range pool.Entities() {
		assert.Equal(t, -300.0, e.Body.Velocity)
		assert.Equal(t, bench.Vec2{X: 5, Y: 925}, graph.positions[e.Handle])
	}
}

func TestControllerFinal(t *testing.T) {
	ctx := bench.NewContext(1)
	pool := bench.NewFactoryPool(ctx, &boundedFactory{max: 1000}, nil, nil)
	c := bench.NewController(ctx, pool, nil, nil, bench.DefaultControllerConfig)

	c.Init()
	c.Final()
	assert.Equal(t, 0, ctx.Population())
	assert.Equal(t, 0, pool.Count())
	assert.False(t, c.HandleInput(touch(10)))
}

func TestSpawnerBacksOffUnderLoad(t *testing.T) {
	ctx := bench.NewContext(1)
	pool := bench.NewFactoryPool(ctx, &boundedFactory{max: 1000}, nil, nil)
	s := bench.NewSpawner(ctx, pool, bench.DefaultSpawnerConfig)

	s.Init()
	assert.Equal(t, 300, pool.Count())
	assert.Equal(t, 1.0, s.Timer())

	// 32 FPS is below the 50 FPS floor, so the timer is pushed back.
	ctx.Meter.Update(0.03125)
	s.Update(0.5)
	assert.Equal(t, 2.0, s.Timer())
	assert.Equal(t, 300, pool.Count())

	for range bench.DefaultSampleCount {
		ctx.Meter.Update(0.0078125)
	}
	s.Update(1.5)
	assert.Equal(t, 0.5, s.Timer())
	assert.Equal(t, 300, pool.Count())

	s.Update(0.5)
	assert.Equal(t, 301, pool.Count())
	assert.Equal(t, 2.0, s.Timer())

	s.Final()
	assert.Equal(t, 0, ctx.Population())
}

func TestSpawnerPostsCounts(t *testing.T) {
	ctx := bench.NewContext(1)
	display := &textSink{}
	view := bench.NewCounterView("TANKS", display)
	ctx.Bus.Subscribe(view)

	pool := bench.NewFactoryPool(ctx, &boundedFactory{max: 5}, nil, nil)
	cfg := bench.DefaultSpawnerConfig
	cfg.Burst = 3
	s := bench.NewSpawner(ctx, pool, cfg)

	s.Init()
	ctx.Bus.Dispatch()
	assert.Equal(t, "TANKS: 3", display.last())
	assert.Equal(t, 3, view.Count())
	assert.Len(t, display.lines, 3)
}

func TestSpawnerStopsQuietlyWhenExhausted(t *testing.T) {
	ctx := bench.NewContext(1)
	pool := bench.NewFactoryPool(ctx, &boundedFactory{max: 100}, nil, nil)
	s := bench.NewSpawner(ctx, pool, bench.DefaultSpawnerConfig)

	s.Init()
	assert.Equal(t, 100, pool.Count())
	assert.Equal(t, 100, ctx.Bus.Pending())
}

func TestChainDriver(t *testing.T) {
	ctx := bench.NewContext(1)
	display := &textSink{}
	view := bench.NewCounterView("TANKS", display)
	ctx.Bus.Subscribe(view)

	pool := bench.NewFactoryPool(ctx, &boundedFactory{max: 1000}, nil, nil)
	ctrlCfg := bench.ControllerConfig{UITop: 1030, Action: bench.ActionTouch}
	chain := bench.Chain{
		bench.NewController(ctx, pool, nil, nil, ctrlCfg),
		bench.NewSpawner(ctx, pool, bench.DefaultSpawnerConfig),
	}

	chain.Init()
	assert.False(t, chain.HandleInput(touch(10)))
	chain.Update(1.0 / 64)
	assert.Equal(t, "TANKS: 300", display.last())

	chain.Final()
	assert.Equal(t, 0, ctx.Population())
}
