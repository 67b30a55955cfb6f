package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/engine"
)

// DefaultHistory is the number of FPS readings kept for the plot.
const DefaultHistory = 120

// PerformancePanel shows the smoothed frame rate, its recent history, the
// population and the per-system timings of the benchmark world.
type PerformancePanel struct {
	ctx   *bench.Context
	world *engine.World

	history []float32
	index   int
	filled  int
	frames  []float32
	scratch []float64
}

func NewPerformancePanel(ctx *bench.Context, world *engine.World, history int) *PerformancePanel {
	if history <= 0 {
		history = DefaultHistory
	}
	return &PerformancePanel{
		ctx:     ctx,
		world:   world,
		history: make([]float32, history),
	}
}

// Record appends the meter's current FPS to the history.
func (p *PerformancePanel) Record() {
	p.history[p.index] = float32(p.ctx.Meter.FPS())
	p.index = (p.index + 1) % len(p.history)
	if p.filled < len(p.history) {
		p.filled++
	}
}

// History returns the recorded readings, oldest first.
func (p *PerformancePanel) History() []float32 {
	out := make([]float32, 0, p.filled)
	start := 0
	if p.filled == len(p.history) {
		start = p.index
	}
	for i := 0; i < p.filled; i++ {
		out = append(out, p.history[(start+i)%len(p.history)])
	}
	return out
}

// frameTimes returns the meter window in milliseconds, oldest first.
func (p *PerformancePanel) frameTimes() []float32 {
	p.scratch = p.ctx.Meter.Window().Samples(p.scratch)
	p.frames = p.frames[:0]
	for _, s := range p.scratch {
		p.frames = append(p.frames, float32(s*1000))
	}
	return p.frames
}

// CapacityText reports how many more objects the world accepts.
func (p *PerformancePanel) CapacityText() string {
	return fmt.Sprintf("Free object slots: %d", p.world.Remaining())
}

func (p *PerformancePanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	meter := p.ctx.Meter
	imgui.Text(fmt.Sprintf("Population: %d", p.ctx.Population()))
	imgui.Text(p.CapacityText())
	imgui.Text(fmt.Sprintf("FPS: %.1f (low below %.0f)", meter.FPS(), meter.Threshold()))
	if meter.Low() {
		imgui.Text("Under load")
	}

	if history := p.History(); len(history) > 0 {
		imgui.Separator()
		imgui.Text("FPS history")
		imgui.PlotLinesFloatPtr("##fps", &history[0], int32(len(history)))
	}
	if frames := p.frameTimes(); len(frames) > 0 {
		imgui.Text("Frame time (ms)")
		imgui.PlotLinesFloatPtr("##frametime", &frames[0], int32(len(frames)))
	}

	if imgui.TreeNodeStr("Systems") {
		for _, sys := range p.world.Scheduler().GetStats().Systems {
			imgui.BulletText(fmt.Sprintf("%s: last %s avg %s max %s",
				sys.Name, sys.LastDuration, sys.AvgDuration, sys.MaxDuration))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		p.renderArchetypes(p.world.Storage().CollectStats())
		imgui.TreePop()
	}

	imgui.End()
}

func (p *PerformancePanel) renderArchetypes(stats *ecs.StorageStats) {
	rows := ArchetypeRows(stats)
	maxCount := 0
	if len(rows) > 0 {
		maxCount = rows[0].EntityCount
	}

	imgui.Text(fmt.Sprintf("Objects: %d / %d", stats.TotalEntityCount, stats.EntityLimit))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("ArchetypeTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		for _, arch := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}
		imgui.EndTable()
	}
}

// ArchetypeRows returns the archetypes ordered by entity count, largest first.
func ArchetypeRows(stats *ecs.StorageStats) []ecs.ArchetypeStats {
	rows := slices.Clone(stats.ArchetypeBreakdown)
	slices.SortStableFunc(rows, func(a, b ecs.ArchetypeStats) int {
		return b.EntityCount - a.EntityCount
	})
	return rows
}
