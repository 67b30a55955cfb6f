package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/config"
	"github.com/plus3/bunnymark/metrics"
	"github.com/plus3/bunnymark/scene"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type stressOptions struct {
	Scene    string
	Duration time.Duration
	// Frames bounds the run instead of Duration when set.
	Frames int
	// FixedDT replaces the wall-clock frame time when set, which makes the
	// run reproducible.
	FixedDT float64
	// BurstEvery sends a synthetic touch every n frames. Zero disables it.
	BurstEvery int
	GCPause    bool
}

var stress stressOptions

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Run a scene headless and print a report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		report, err := runStress(cfg, stress)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, "\n--- Stress Test Report ---")
		if err := report.Generate(os.Stdout); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "--- End of Report ---")
		return nil
	},
}

// runStress drives one scene without a window: input, driver update and
// world tick per frame, the same order the windowed game uses.
func runStress(cfg config.Config, opts stressOptions) (*Report, error) {
	world := scene.NewWorld(cfg)
	ctx := scene.NewContext(cfg)
	s, err := scene.Build(opts.Scene, scene.Env{World: world, Ctx: ctx, Config: cfg})
	if err != nil {
		return nil, err
	}

	rec := metrics.NewRecorder(s.Name)
	driver := metrics.Instrument(s.Driver, rec, ctx, world)

	frames := opts.Frames
	if frames == 0 && opts.FixedDT > 0 {
		frames = int(opts.Duration.Seconds() / opts.FixedDT)
	}
	touch := bench.InputEvent{
		Action: bench.ActionTouch,
		Phase:  bench.Released,
		Pos:    bench.Vec2{X: float64(cfg.Window.Width) / 2, Y: cfg.Spawn.UITop / 2},
	}

	report := &Report{
		Scene:          s.Name,
		Duration:       opts.Duration,
		FixedDT:        opts.FixedDT,
		GCPauseMetrics: opts.GCPause,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logrus.WithFields(logrus.Fields{
		"scene":    s.Name,
		"frames":   frames,
		"duration": opts.Duration,
	}).Info("Running stress test")

	driver.Init()
	start := time.Now()
	last := start

	for frame := 0; ; frame++ {
		if frames > 0 && frame >= frames {
			break
		}
		if frames == 0 && time.Since(start) >= opts.Duration {
			break
		}

		dt := opts.FixedDT
		if dt <= 0 {
			now := time.Now()
			dt = now.Sub(last).Seconds()
			last = now
		}

		if opts.BurstEvery > 0 && frame > 0 && frame%opts.BurstEvery == 0 {
			if driver.HandleInput(touch) {
				report.Touches++
			}
		}

		updateStart := time.Now()
		driver.Update(dt)
		world.Tick(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalFrames++
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	report.Population = ctx.Population()
	report.FPS = ctx.Meter.FPS()
	report.Metrics = rec.Snapshot()
	report.Storage = world.Storage().CollectStats()
	report.Scheduler = world.Scheduler().GetStats()
	if s.Status != nil {
		report.Status = s.Status.Text()
	}

	driver.Final()
	report.PopulationAfterFinal = ctx.Population()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logrus.WithField("frames", report.TotalFrames).Info("Stress test finished")
	return report, nil
}

func init() {
	stressCmd.Flags().StringVar(&stress.Scene, "scene", "update_single", "Scene to run")
	stressCmd.Flags().DurationVar(&stress.Duration, "duration", 10*time.Second, "The total duration the test should run for")
	stressCmd.Flags().IntVar(&stress.Frames, "frames", 0, "Number of frames to run, overrides --duration")
	stressCmd.Flags().Float64Var(&stress.FixedDT, "fixed-dt", 0, "Fixed frame time in seconds, 0 uses the wall clock")
	stressCmd.Flags().IntVar(&stress.BurstEvery, "burst-every", 60, "Frames between synthetic touches, 0 disables them")
	stressCmd.Flags().BoolVar(&stress.GCPause, "gc-pause-metrics", false, "Include GC pause totals in the report")
}
