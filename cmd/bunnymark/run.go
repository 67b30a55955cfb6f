package main

import (
	"context"
	"fmt"

	"github.com/plus3/bunnymark/debugui"
	debugui_ebiten "github.com/plus3/bunnymark/debugui/ebiten"
	"github.com/plus3/bunnymark/metrics"
	"github.com/plus3/bunnymark/scene"
	"github.com/plus3/bunnymark/screen"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	sceneName   string
	debugUI     bool
	metricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scene in a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr = metricsAddr
		}

		world := scene.NewWorld(cfg)
		ctx := scene.NewContext(cfg)
		s, err := scene.Build(sceneName, scene.Env{World: world, Ctx: ctx, Config: cfg})
		if err != nil {
			return err
		}

		driver := s.Driver
		if cfg.MetricsAddr != "" {
			rec := metrics.NewRecorder(s.Name)
			driver = metrics.Instrument(driver, rec, ctx, world)

			serveCtx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				if err := metrics.Serve(serveCtx, cfg.MetricsAddr, rec); err != nil {
					logrus.WithError(err).Error("Metrics server stopped")
				}
			}()
		}

		opts := screen.Options{
			Title:  fmt.Sprintf("%s - %s", cfg.Window.Title, s.Name),
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Scale:  cfg.Window.Scale,
			VSync:  cfg.Window.VSync,
		}

		var overlay screen.Overlay
		if debugUI {
			backend := debugui_ebiten.NewImguiBackend(opts.Title, opts.Width, opts.Height)
			panel := debugui.NewPerformancePanel(ctx, world, debugui.DefaultHistory)
			objects := debugui.NewObjectBrowser(world, debugui.DefaultObjectsPerPage)
			overlay = debugui.NewOverlay(backend, panel, objects)
		}

		logrus.WithFields(logrus.Fields{
			"scene":    s.Name,
			"debug_ui": debugUI,
			"metrics":  cfg.MetricsAddr,
		}).Info("Starting window")
		return screen.NewGame(world, driver, overlay, opts).Run()
	},
}

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the available scenes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range scene.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&sceneName, "scene", "update_single", "Scene to run")
	runCmd.Flags().BoolVar(&debugUI, "debug-ui", false, "Enable the ImGui performance overlay (F1 toggles it)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve /metrics and /stats on this address")
}
