package ecs_test

import (
	"testing"

	"github.com/plus3/bunnymark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Movers ecs.Query[movable]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Movers.Values() {
		m.X += m.DX * frame.DeltaTime
		m.Y += m.DY * frame.DeltaTime
	}
}

type ExpirySystem struct {
	Lifetimes ecs.Query[struct {
		ecs.EntityId
		*Lifetime
	}]
}

func (s *ExpirySystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Lifetimes.Values() {
		item.Remaining -= frame.DeltaTime
		if item.Remaining <= 0 {
			id := item.EntityId
			frame.Commands.Defer(func() { frame.Storage.Delete(id) })
		}
	}
}

type ClockSystem struct {
	Clock ecs.Singleton[Clock]
	seen  []int64
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	s.Clock.Get().Ticks++
	s.seen = append(s.seen, frame.Tick)
}

// spawnerSystem spawns directly so later systems see the entity this frame.
type spawnerSystem struct{}

func (spawnerSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Storage.Spawn(Position{}, Velocity{DX: 1})
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Velocity{DX: 2, DY: 4})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	clock := &ClockSystem{}
	scheduler.Register(clock)

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	assert.Equal(t, Position{X: 2, Y: 4}, *ecs.ReadComponent[Position](storage, id))
	assert.Equal(t, []int64{1, 2}, clock.seen)
	assert.Equal(t, 2, clock.Clock.Get().Ticks)
	assert.Equal(t, 1.0, scheduler.Elapsed())
}

func TestSchedulerRefreshesQueriesPerSystem(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(spawnerSystem{})
	scheduler.Register(&MovementSystem{})

	scheduler.Once(1)

	pos := ecs.NewView[struct{ *Position }](storage)
	for p := range pos.Values() {
		assert.Equal(t, 1.0, p.X, "the entity spawned by the first system moved in the same frame")
	}
}

func TestSchedulerFlushesCommands(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	short := storage.Spawn(Lifetime{Remaining: 1})
	long := storage.Spawn(Lifetime{Remaining: 3})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ExpirySystem{})

	scheduler.Once(1)
	assert.Nil(t, ecs.ReadComponent[Lifetime](storage, short))
	assert.NotNil(t, ecs.ReadComponent[Lifetime](storage, long))
	assert.Equal(t, 1, storage.Len())

	scheduler.Once(2)
	assert.Equal(t, 0, storage.Len())
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&ClockSystem{})

	for i := 0; i < 3; i++ {
		scheduler.Once(1.0 / 60)
	}

	stats := scheduler.GetStats()
	require.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "ClockSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		assert.Equal(t, s.TotalDuration/3, s.AvgDuration)
	}
}
