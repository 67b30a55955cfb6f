package bench

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrResourceExhausted is returned when the creation collaborator refuses to
// create another object. It is an expected outcome under load.
var ErrResourceExhausted = errors.New("resource exhausted")

// Pool is the capability set every population strategy provides.
type Pool interface {
	// CreateEntity creates one entity or returns ErrResourceExhausted with
	// the pool unchanged.
	CreateEntity() (Entity, error)
	// Spawn creates up to count entities, stopping at the first failure.
	// Entities created before a failure stay live.
	Spawn(count int) bool
	// Reset empties the pool and removes its entities from the population.
	// A creator that is a Releaser gets every handle back.
	Reset()
	Count() int
	Entities() []Entity
}

// spawn is the shared partial-progress loop behind every Spawn.
func spawn(p Pool, count int) bool {
	for i := 0; i < count; i++ {
		if _, err := p.CreateEntity(); err != nil {
			logrus.WithFields(logrus.Fields{
				"requested": count,
				"created":   i,
			}).Warn("Unable to create more entities")
			return false
		}
	}
	return true
}

// basePool holds the active set and the bookkeeping common to pools.
type basePool struct {
	ctx      *Context
	graph    SceneGraph
	init     Initializer
	release  func(Handle)
	entities []Entity
	arena    bodyArena
}

func (p *basePool) admit(h Handle) Entity {
	e := Entity{
		Handle:  h,
		Variant: RandomVariant(p.ctx.Rand),
		Body:    p.arena.next(),
	}
	if p.graph != nil {
		p.graph.SetVariant(h, e.Variant)
	}
	p.entities = append(p.entities, e)
	p.ctx.addPopulation(1)

	if p.init != nil {
		p.init(e)
	}
	return e
}

// Reset releases every entity back to its creator when the creator is a
// Releaser.
func (p *basePool) Reset() {
	if p.release != nil {
		for _, e := range p.entities {
			p.release(e.Handle)
		}
	}
	p.ctx.addPopulation(-len(p.entities))
	clear(p.entities)
	p.entities = p.entities[:0]
	p.arena.reset()
}

func (p *basePool) Count() int {
	return len(p.entities)
}

func (p *basePool) Entities() []Entity {
	return p.entities
}

// FactoryPool creates entities from a bounded game-object factory.
type FactoryPool struct {
	basePool
	factory Factory
}

// NewFactoryPool creates a pool backed by factory. graph and init may be nil.
func NewFactoryPool(ctx *Context, factory Factory, graph SceneGraph, init Initializer) *FactoryPool {
	if ctx == nil || factory == nil {
		panic("factory pool requires a context and a factory")
	}
	p := &FactoryPool{
		basePool: basePool{ctx: ctx, graph: graph, init: init},
		factory:  factory,
	}
	if r, ok := factory.(Releaser); ok {
		p.release = r.Release
	}
	return p
}

func (p *FactoryPool) CreateEntity() (Entity, error) {
	h, ok := p.factory.Create()
	if !ok {
		return Entity{}, ErrResourceExhausted
	}
	return p.admit(h), nil
}

func (p *FactoryPool) Spawn(count int) bool {
	return spawn(p, count)
}

// NodePool creates entities as GUI box nodes. Every node is sized to its
// texture before the initializer sees it.
type NodePool struct {
	basePool
	nodes NodeFactory
}

// NewNodePool creates a pool backed by nodes. graph and init may be nil.
func NewNodePool(ctx *Context, nodes NodeFactory, graph SceneGraph, init Initializer) *NodePool {
	if ctx == nil || nodes == nil {
		panic("node pool requires a context and a node factory")
	}
	p := &NodePool{
		basePool: basePool{ctx: ctx, graph: graph, init: init},
		nodes:    nodes,
	}
	if r, ok := nodes.(Releaser); ok {
		p.release = r.Release
	}
	return p
}

func (p *NodePool) CreateEntity() (Entity, error) {
	h, ok := p.nodes.NewBox(Vec2{})
	if !ok {
		return Entity{}, ErrResourceExhausted
	}
	p.nodes.SetSizeAuto(h)
	return p.admit(h), nil
}

func (p *NodePool) Spawn(count int) bool {
	return spawn(p, count)
}

// ChainPool fills a sequence of pools one after another. When the current
// pool is exhausted it posts KindCollectionFull and moves on to the next.
type ChainPool struct {
	ctx     *Context
	pools   []Pool
	current int
}

// NewChainPool chains pools in order. At least one pool is required.
func NewChainPool(ctx *Context, pools ...Pool) *ChainPool {
	if ctx == nil || len(pools) == 0 {
		panic("chain pool requires a context and at least one pool")
	}
	return &ChainPool{ctx: ctx, pools: pools}
}

func (c *ChainPool) CreateEntity() (Entity, error) {
	for c.current < len(c.pools) {
		e, err := c.pools[c.current].CreateEntity()
		if err == nil {
			return e, nil
		}
		if !errors.Is(err, ErrResourceExhausted) {
			return Entity{}, err
		}

		logrus.WithField("collection", c.current).Info("Collection full")
		c.ctx.Bus.Post(Message{
			Kind:       KindCollectionFull,
			Collection: c.current,
			Population: c.ctx.Population(),
		})
		c.current++
	}
	return Entity{}, ErrResourceExhausted
}

func (c *ChainPool) Spawn(count int) bool {
	return spawn(c, count)
}

// Reset resets every chained pool and starts again from the first.
func (c *ChainPool) Reset() {
	for _, p := range c.pools {
		p.Reset()
	}
	c.current = 0
}

func (c *ChainPool) Count() int {
	n := 0
	for _, p := range c.pools {
		n += p.Count()
	}
	return n
}

// Entities returns the live entities of all pools in spawn order.
func (c *ChainPool) Entities() []Entity {
	out := make([]Entity, 0, c.Count())
	for _, p := range c.pools {
		out = append(out, p.Entities()...)
	}
	return out
}

// Current returns the index of the pool receiving new entities.
func (c *ChainPool) Current() int {
	return c.current
}
