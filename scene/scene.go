// Package scene assembles the benchmark scenes: a pool strategy, a
// controller and its labels on top of an engine.World.
package scene

import (
	"slices"

	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/config"
	"github.com/plus3/bunnymark/engine"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// ErrUnknownScene is returned by Build for names with no builder.
var ErrUnknownScene = eris.New("unknown scene")

// Scene is a built, not yet started, benchmark scene.
type Scene struct {
	Name   string
	Driver bench.Driver
	Pool   bench.Pool
	Status *engine.Label
}

// Env is what every builder wires into.
type Env struct {
	World  *engine.World
	Ctx    *bench.Context
	Config config.Config
}

type builder func(env Env) *Scene

var builders = map[string]builder{
	"update_single":       updateSingle,
	"update_many":         updateMany,
	"go_animate":          goAnimate,
	"gui_animate":         guiAnimate,
	"go_animate_multiple": goAnimateMultiple,
	"tanks":               tanks,
}

// Names lists the available scenes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewContext creates the benchmark context described by cfg.
func NewContext(cfg config.Config) *bench.Context {
	ctx := bench.NewContext(cfg.Seed)
	ctx.Meter = bench.NewMeter(cfg.Meter.Samples, cfg.Meter.LowFPS)
	return ctx
}

// NewWorld creates the engine world described by cfg.
func NewWorld(cfg config.Config) *engine.World {
	return engine.NewWorld(cfg.Capacity.World)
}

// Build builds the named scene.
func Build(name string, env Env) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownScene, "%q (available: %v)", name, Names())
	}
	s := build(env)
	s.Name = name
	logrus.WithFields(logrus.Fields{
		"scene":    name,
		"capacity": env.Config.Capacity.Factory,
	}).Info("Scene built")
	return s, nil
}

func motion(cfg config.Config) bench.MotionParams {
	return bench.MotionParams{Gravity: cfg.Motion.Gravity, Floor: cfg.Motion.Floor}
}

func controllerConfig(cfg config.Config) bench.ControllerConfig {
	return bench.ControllerConfig{
		InitialBurst:    cfg.Spawn.InitialBurst,
		Burst:           cfg.Spawn.Burst,
		UITop:           cfg.Spawn.UITop,
		Action:          bench.ActionTouch,
		StopOnExhausted: cfg.Spawn.StopOnExhausted,
	}
}

func animation(env Env) bench.Animation {
	return bench.Animation{
		To:       env.Config.Animate.To,
		Duration: env.Config.Animate.Duration,
		Delay:    env.Ctx.Rand.Float64(),
		Easing:   bench.EaseInQuad,
		Mode:     bench.PlaybackLoopPingPong,
	}
}

func statusLabel(env Env) *engine.Label {
	return env.World.NewLabel(8, 8)
}

// uniform returns a value in [lo, hi).
func uniform(env Env, lo, hi float64) float64 {
	return lo + env.Ctx.Rand.Float64()*(hi-lo)
}

func screenWidth(env Env) float64 {
	return float64(env.Config.Window.Width)
}

// updateSingle moves every bunny in one centralized pass per frame.
func updateSingle(env Env) *Scene {
	status := statusLabel(env)
	pool := bench.NewFactoryPool(env.Ctx, env.World.NewFactory("factory", env.Config.Capacity.Factory), env.World,
		func(e bench.Entity) {
			e.Body.Position = bench.Vec2{X: uniform(env, 0, screenWidth(env)), Y: uniform(env, 930, 1024)}
			e.Body.Velocity = uniform(env, 0, 200)
			env.World.SetPosition(e.Handle, e.Body.Position)
		})
	sim := &bench.Simulator{Params: motion(env.Config), Graph: env.World}

	return &Scene{
		Driver: bench.NewController(env.Ctx, pool, sim, status, controllerConfig(env.Config)),
		Pool:   pool,
		Status: status,
	}
}

// updateMany gives every bunny its own script.
func updateMany(env Env) *Scene {
	status := statusLabel(env)
	params := motion(env.Config)
	pool := bench.NewFactoryPool(env.Ctx, env.World.NewFactory("factory", env.Config.Capacity.Factory), env.World,
		func(e bench.Entity) {
			e.Body.Position = bench.Vec2{X: uniform(env, 0, screenWidth(env)), Y: uniform(env, 1000, 1100)}
			e.Body.Velocity = -uniform(env, 0, 100)
			env.World.SetPosition(e.Handle, e.Body.Position)
			env.World.Attach(e.Handle, bench.NewBouncer(e, params, env.World))
		})

	return &Scene{
		Driver: bench.NewController(env.Ctx, pool, nil, status, controllerConfig(env.Config)),
		Pool:   pool,
		Status: status,
	}
}

func animateInit(env Env, startY float64) bench.Initializer {
	return func(e bench.Entity) {
		e.Body.Position = bench.Vec2{X: uniform(env, 0, screenWidth(env)), Y: startY}
		env.World.SetPosition(e.Handle, e.Body.Position)
		env.World.Animate(e.Handle, animation(env))
	}
}

// goAnimate hands the motion of factory objects to engine tweens.
func goAnimate(env Env) *Scene {
	status := statusLabel(env)
	pool := bench.NewFactoryPool(env.Ctx, env.World.NewFactory("factory", env.Config.Capacity.Factory), env.World,
		animateInit(env, 1024))

	return &Scene{
		Driver: bench.NewController(env.Ctx, pool, nil, status, controllerConfig(env.Config)),
		Pool:   pool,
		Status: status,
	}
}

// guiAnimate is goAnimate on GUI box nodes.
func guiAnimate(env Env) *Scene {
	status := statusLabel(env)
	pool := bench.NewNodePool(env.Ctx, env.World.NewNodeLayer(env.Config.Capacity.Nodes), env.World,
		animateInit(env, 1030))

	return &Scene{
		Driver: bench.NewController(env.Ctx, pool, nil, status, controllerConfig(env.Config)),
		Pool:   pool,
		Status: status,
	}
}

// goAnimateMultiple spreads the population over several factories, moving
// to the next one each time the current one fills up.
func goAnimateMultiple(env Env) *Scene {
	status := statusLabel(env)
	init := animateInit(env, 1024)

	pools := make([]bench.Pool, env.Config.Capacity.Collections)
	for i := range pools {
		f := env.World.NewFactory("collection", env.Config.Capacity.Factory)
		pools[i] = bench.NewFactoryPool(env.Ctx, f, env.World, init)
	}
	chain := bench.NewChainPool(env.Ctx, pools...)

	env.Ctx.Bus.Subscribe(bench.HandlerFunc(func(msg bench.Message) {
		logrus.WithFields(logrus.Fields{
			"collection": msg.Collection,
			"population": msg.Population,
		}).Info("Loading next collection")
	}, bench.KindCollectionFull))

	return &Scene{
		Driver: bench.NewController(env.Ctx, chain, nil, status, controllerConfig(env.Config)),
		Pool:   chain,
		Status: status,
	}
}

// tanks grows a population of wandering tanks while the frame rate allows.
func tanks(env Env) *Scene {
	status := statusLabel(env)
	counter := env.World.NewLabel(8, 24)
	env.Ctx.Bus.Subscribe(bench.NewCounterView("TANKS", counter))

	sc := env.Config.Spawner
	bounds := bench.Vec2{X: 400, Y: 400}
	pool := bench.NewFactoryPool(env.Ctx, env.World.NewFactory("tankFactory", env.Config.Capacity.Factory), env.World,
		func(e bench.Entity) {
			e.Body.Position = bench.Vec2{X: uniform(env, 0, bounds.X), Y: uniform(env, 0, bounds.Y)}
			env.World.SetPosition(e.Handle, e.Body.Position)
			env.World.Attach(e.Handle, bench.NewWanderer(e, sc.Speed, bounds, env.Ctx.Rand, env.World))
		})

	// The controller only measures and reports; the spawner decides growth.
	measure := bench.NewController(env.Ctx, pool, nil, status, bench.ControllerConfig{Action: bench.ActionTouch})
	spawner := bench.NewSpawner(env.Ctx, pool, bench.SpawnerConfig{
		Delay:  sc.Delay,
		Burst:  sc.Burst,
		MinFPS: sc.MinFPS,
		Step:   sc.Step,
		Timer:  sc.Timer,
	})

	return &Scene{
		Driver: bench.Chain{measure, spawner},
		Pool:   pool,
		Status: status,
	}
}
