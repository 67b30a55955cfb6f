package bench

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Driver is the per-scene lifecycle the frame loop calls. Within a frame,
// HandleInput runs for every pending event before Update.
type Driver interface {
	Init()
	HandleInput(ev InputEvent) bool
	Update(dt float64)
	Final()
}

// ControllerConfig tunes a burst-on-input Controller.
type ControllerConfig struct {
	InitialBurst int
	Burst        int
	// UITop is the height above which touches land on UI chrome and are ignored.
	UITop  float64
	Action ActionID
	// StopOnExhausted stops accepting input after the first failed burst
	// until the scene is reset.
	StopOnExhausted bool
}

// DefaultControllerConfig matches the classic scenes.
var DefaultControllerConfig = ControllerConfig{
	InitialBurst: 500,
	Burst:        500,
	UITop:        1030,
	Action:       ActionTouch,
}

// Controller spawns bursts on input and drives the per-frame measurement.
// A nil Simulator selects the autonomous or delegated strategies, where
// motion is not the controller's concern.
type Controller struct {
	ctx       *Context
	pool      Pool
	sim       *Simulator
	display   Display
	cfg       ControllerConfig
	accepting bool
	exhausted bool
	text      string
}

// NewController wires a controller. sim and display may be nil.
func NewController(ctx *Context, pool Pool, sim *Simulator, display Display, cfg ControllerConfig) *Controller {
	if ctx == nil || pool == nil {
		panic("controller requires a context and a pool")
	}
	if cfg.Burst < 0 || cfg.InitialBurst < 0 {
		panic("burst sizes cannot be negative")
	}
	return &Controller{
		ctx:     ctx,
		pool:    pool,
		sim:     sim,
		display: display,
		cfg:     cfg,
	}
}

func (c *Controller) Init() {
	c.accepting = true
	c.exhausted = false
	c.spawn(c.cfg.InitialBurst)
}

func (c *Controller) HandleInput(ev InputEvent) bool {
	if !c.accepting || c.cfg.Burst == 0 || ev.Action != c.cfg.Action || ev.Phase != Released {
		return false
	}
	if ev.Pos.Y >= c.cfg.UITop {
		return false
	}
	c.spawn(c.cfg.Burst)
	return true
}

func (c *Controller) Update(dt float64) {
	c.ctx.Bus.Dispatch()
	fps := c.ctx.Meter.Update(dt)

	if c.sim != nil {
		c.sim.Run(c.pool.Entities(), dt)
	}

	c.text = fmt.Sprintf("Bunnies %d FPS:%.2f", c.ctx.Population(), fps)
	if c.display != nil {
		c.display.SetText(c.text)
	}
}

func (c *Controller) Final() {
	c.pool.Reset()
	c.accepting = false
	c.exhausted = false
}

// Exhausted reports whether a burst has failed since Init.
func (c *Controller) Exhausted() bool {
	return c.exhausted
}

// Accepting reports whether input currently triggers bursts.
func (c *Controller) Accepting() bool {
	return c.accepting
}

// Text returns the last status line.
func (c *Controller) Text() string {
	return c.text
}

func (c *Controller) Pool() Pool {
	return c.pool
}

func (c *Controller) spawn(n int) {
	if n == 0 {
		return
	}
	before := c.pool.Count()
	ok := c.pool.Spawn(n)

	if created := c.pool.Count() - before; created > 0 {
		c.ctx.Bus.Post(Message{Kind: KindPopulationChanged, Population: c.ctx.Population()})
	}
	if ok {
		return
	}

	c.exhausted = true
	logrus.WithFields(logrus.Fields{
		"requested":  n,
		"created":    c.pool.Count() - before,
		"population": c.ctx.Population(),
	}).Warn("Spawn burst exhausted the pool")
	c.ctx.Bus.Post(Message{
		Kind:       KindExhausted,
		Requested:  n,
		Created:    c.pool.Count() - before,
		Population: c.ctx.Population(),
	})
	if c.cfg.StopOnExhausted {
		c.accepting = false
	}
}

// SpawnerConfig tunes the adaptive Spawner.
type SpawnerConfig struct {
	// Delay is the time in seconds between spawns.
	Delay float64
	// Burst is the number of entities spawned on Init.
	Burst int
	// MinFPS holds spawning back while the smoothed rate is below it.
	MinFPS float64
	// Step is the number of entities spawned each time the timer expires.
	Step int
	// Timer is the countdown before the first timed spawn.
	Timer float64
}

// DefaultSpawnerConfig matches the tank scene.
var DefaultSpawnerConfig = SpawnerConfig{
	Delay:  2,
	Burst:  300,
	MinFPS: 50,
	Step:   1,
	Timer:  1,
}

// Spawner grows a population on a timer and backs off while the meter
// reports load. It does not feed the meter itself.
type Spawner struct {
	ctx   *Context
	pool  Pool
	cfg   SpawnerConfig
	timer float64
}

func NewSpawner(ctx *Context, pool Pool, cfg SpawnerConfig) *Spawner {
	if ctx == nil || pool == nil {
		panic("spawner requires a context and a pool")
	}
	if cfg.Delay < 0 || cfg.Burst < 0 || cfg.Step < 0 {
		panic("spawner settings cannot be negative")
	}
	return &Spawner{ctx: ctx, pool: pool, cfg: cfg, timer: cfg.Timer}
}

func (s *Spawner) Init() {
	s.timer = s.cfg.Timer
	for range s.cfg.Burst {
		s.spawnOne()
	}
}

func (s *Spawner) HandleInput(InputEvent) bool {
	return false
}

func (s *Spawner) Update(dt float64) {
	if s.ctx.Meter.Below(s.cfg.MinFPS) {
		s.timer = s.cfg.Delay
		return
	}

	s.timer -= dt
	if s.timer <= 0 {
		for range s.cfg.Step {
			s.spawnOne()
		}
		s.timer = s.cfg.Delay
	}
}

func (s *Spawner) Final() {
	s.pool.Reset()
}

// Timer returns the time left before the next spawn.
func (s *Spawner) Timer() float64 {
	return s.timer
}

func (s *Spawner) spawnOne() {
	if _, err := s.pool.CreateEntity(); err != nil {
		logrus.WithField("population", s.ctx.Population()).Debug("Spawner pool exhausted")
		return
	}
	s.ctx.Bus.Post(Message{Kind: KindPopulationChanged, Population: s.pool.Count()})
}

// CounterView renders population changes as "<LABEL>: n".
type CounterView struct {
	label   string
	display Display
	last    int
}

func NewCounterView(label string, display Display) *CounterView {
	return &CounterView{label: label, display: display}
}

func (v *CounterView) Kinds() []Kind {
	return []Kind{KindPopulationChanged}
}

func (v *CounterView) HandleMessage(msg Message) {
	switch msg.Kind {
	case KindPopulationChanged:
		v.last = msg.Population
		if v.display != nil {
			v.display.SetText(fmt.Sprintf("%s: %d", v.label, v.last))
		}
	}
}

// Count returns the last count shown.
func (v *CounterView) Count() int {
	return v.last
}

// Chain runs several drivers as one: Init, Update and Final fan out in
// order, input stops at the first driver that handles it.
type Chain []Driver

func (c Chain) Init() {
	for _, d := range c {
		d.Init()
	}
}

func (c Chain) HandleInput(ev InputEvent) bool {
	for _, d := range c {
		if d.HandleInput(ev) {
			return true
		}
	}
	return false
}

func (c Chain) Update(dt float64) {
	for _, d := range c {
		d.Update(dt)
	}
}

func (c Chain) Final() {
	for _, d := range c {
		d.Final()
	}
}
