package debugui_test

import (
	"testing"

	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/debugui"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/engine"
	"github.com/stretchr/testify/assert"
)

func TestPerformancePanelHistory(t *testing.T) {
	ctx := bench.NewContext(1)
	panel := debugui.NewPerformancePanel(ctx, engine.NewWorld(0), 3)

	assert.Empty(t, panel.History())

	for _, dt := range []float64{0.5, 0.25, 0.125, 0.0625} {
		for range bench.DefaultSampleCount {
			ctx.Meter.Update(dt)
		}
		panel.Record()
	}

	assert.Equal(t, []float32{4, 8, 16}, panel.History())
}

func TestPerformancePanelCapacity(t *testing.T) {
	world := engine.NewWorld(4)
	panel := debugui.NewPerformancePanel(bench.NewContext(1), world, 0)
	assert.Equal(t, "Free object slots: 4", panel.CapacityText())

	f := world.NewFactory("factory", 0)
	h, _ := f.Create()
	f.Create()
	assert.Equal(t, "Free object slots: 2", panel.CapacityText())

	f.Release(h)
	assert.Equal(t, "Free object slots: 3", panel.CapacityText())
}

func TestArchetypeRows(t *testing.T) {
	stats := &ecs.StorageStats{
		ArchetypeBreakdown: []ecs.ArchetypeStats{
			{ID: 1, EntityCount: 5},
			{ID: 2, EntityCount: 50},
			{ID: 3, EntityCount: 5},
			{ID: 4, EntityCount: 20},
		},
	}

	rows := debugui.ArchetypeRows(stats)

	ids := make([]uint32, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	assert.Equal(t, []uint32{2, 4, 1, 3}, ids)
	assert.Equal(t, uint32(1), stats.ArchetypeBreakdown[0].ID, "input is not reordered")
}
