package ecs_test

import (
	"testing"

	"github.com/plus3/bunnymark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry(), ecs.WithEntityLimit(100))
	ecs.NewSingleton[Clock](storage)

	for i := 0; i < 3; i++ {
		storage.Spawn(Position{}, Sprite{})
	}
	storage.Spawn(Name("label"))

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 4, stats.TotalEntityCount)
	assert.Equal(t, 100, stats.EntityLimit)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Clock"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Sprite"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 3, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
}

func TestCollectStatsEmpty(t *testing.T) {
	stats := ecs.NewStorage(newTestRegistry()).CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Empty(t, stats.ArchetypeBreakdown)
	assert.Empty(t, stats.SingletonTypes)
}
