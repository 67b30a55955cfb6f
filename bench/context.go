package bench

import (
	"math/rand/v2"
)

// Context is the state shared by the pools and controllers of one benchmark
// run. The meter outlives scenes; the population counter is maintained by
// the pools that write into it.
type Context struct {
	Bus   *Bus
	Meter *Meter
	Rand  *rand.Rand

	population int
}

// NewContext creates a context with a default meter and a generator seeded
// from seed.
func NewContext(seed uint64) *Context {
	return &Context{
		Bus:   NewBus(),
		Meter: NewMeter(DefaultSampleCount, DefaultLowFPS),
		Rand:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Population returns the number of live entities across all pools.
func (c *Context) Population() int {
	return c.population
}

func (c *Context) addPopulation(n int) {
	c.population += n
	if c.population < 0 {
		c.population = 0
	}
}
