package screen

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/engine"
	"github.com/sirupsen/logrus"
)

// Overlay is drawn over the scene. Update runs between BeginFrame and
// EndFrame inside the game's Update.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	Toggle()
}

// Options configure the window.
type Options struct {
	Title  string
	Width  int
	Height int
	Scale  float64
	VSync  bool
}

// Game runs one bench.Driver on an engine.World. Per tick it polls input,
// hands the events to the driver, updates the driver, then ticks the world.
type Game struct {
	world   *engine.World
	driver  bench.Driver
	input   *Input
	overlay Overlay
	opts    Options

	screen  *ecs.Singleton[Screen]
	events  []bench.InputEvent
	last    time.Time
	started bool
	stopped bool
}

// NewGame registers the render system on world. overlay may be nil.
func NewGame(world *engine.World, driver bench.Driver, overlay Overlay, opts Options) *Game {
	g := &Game{
		world:   world,
		driver:  driver,
		input:   NewInput(opts.Height),
		overlay: overlay,
		opts:    opts,
		screen:  ecs.NewSingleton[Screen](world.Storage()),
	}
	world.RenderScheduler().Register(NewRenderSystem(world, opts.Height))
	return g
}

// Run opens the window and blocks until it is closed or quit is pressed.
func (g *Game) Run() error {
	scale := g.opts.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(float64(g.opts.Width)*scale), int(float64(g.opts.Height)*scale))
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(g.opts.VSync)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err := ebiten.RunGame(g)
	g.stop()
	return err
}

func (g *Game) stop() {
	if g.started && !g.stopped {
		g.driver.Final()
		g.stopped = true
	}
}

func (g *Game) Update() error {
	now := time.Now()
	if !g.started {
		g.driver.Init()
		g.started = true
		g.last = now.Add(-time.Second / 60)
	}
	dt := now.Sub(g.last).Seconds()
	g.last = now

	if g.overlay != nil {
		g.overlay.BeginFrame()
		defer g.overlay.EndFrame()
	}

	g.events = g.input.Poll(g.events[:0])
	for _, ev := range g.events {
		switch ev.Action {
		case bench.ActionQuit:
			logrus.Info("Quit requested")
			g.stop()
			return ebiten.Termination
		case bench.ActionToggleDebug:
			if ev.Phase == bench.Released && g.overlay != nil {
				g.overlay.Toggle()
			}
		default:
			if capture, ok := g.overlay.(interface{ WantsMouse() bool }); ok && capture.WantsMouse() {
				continue
			}
			g.driver.HandleInput(ev)
		}
	}

	g.driver.Update(dt)
	g.world.Tick(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.world.Draw()
	g.screen.Get().Image = nil

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(g.opts.Width, g.opts.Height)
	}
	return g.opts.Width, g.opts.Height
}
