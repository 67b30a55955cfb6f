package ecs_test

import "github.com/plus3/bunnymark/ecs"

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Sprite struct {
	Variant int
	Hidden  bool
}

type Name string

type Lifetime struct {
	Remaining float64
}

type Clock struct {
	Ticks int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Lifetime](registry)
	return registry
}
