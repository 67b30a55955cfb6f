// Package config loads the bunnymark settings from YAML. Every field has a
// default, so a file only needs the values it changes.
package config

import (
	"bytes"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Window configures the ebiten window. Width and Height are the logical
// screen size in world units.
type Window struct {
	Title  string  `yaml:"title"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	VSync  bool    `yaml:"vsync"`
}

type Meter struct {
	Samples int     `yaml:"samples"`
	LowFPS  float64 `yaml:"low_fps"`
}

type Motion struct {
	Gravity float64 `yaml:"gravity"`
	Floor   float64 `yaml:"floor"`
}

// Spawn configures the burst-on-touch controller.
type Spawn struct {
	InitialBurst    int     `yaml:"initial_burst"`
	Burst           int     `yaml:"burst"`
	UITop           float64 `yaml:"ui_top"`
	StopOnExhausted bool    `yaml:"stop_on_exhausted"`
}

// Capacity bounds the engine. Factory and Nodes are per factory and per node
// layer; World caps every object together.
type Capacity struct {
	World       int `yaml:"world"`
	Factory     int `yaml:"factory"`
	Nodes       int `yaml:"nodes"`
	Collections int `yaml:"collections"`
}

// Spawner configures the adaptive tank spawner.
type Spawner struct {
	Delay  float64 `yaml:"delay"`
	Burst  int     `yaml:"burst"`
	MinFPS float64 `yaml:"min_fps"`
	Step   int     `yaml:"step"`
	Timer  float64 `yaml:"timer"`
	Speed  float64 `yaml:"speed"`
}

// Animate configures the delegated tween scenes.
type Animate struct {
	To       float64 `yaml:"to"`
	Duration float64 `yaml:"duration"`
}

// Config represents the full settings file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	LogLevel    string   `yaml:"log_level"`
	Seed        uint64   `yaml:"seed"`
	MetricsAddr string   `yaml:"metrics_addr"`
	Window      Window   `yaml:"window"`
	Meter       Meter    `yaml:"meter"`
	Motion      Motion   `yaml:"motion"`
	Spawn       Spawn    `yaml:"spawn"`
	Capacity    Capacity `yaml:"capacity"`
	Spawner     Spawner  `yaml:"spawner"`
	Animate     Animate  `yaml:"animate"`
}

// Default returns the classic bunnymark settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Seed:     1,
		Window: Window{
			Title:  "Bunnymark",
			Width:  640,
			Height: 1136,
			Scale:  0.75,
			VSync:  false,
		},
		Meter: Meter{
			Samples: 60,
			LowFPS:  60,
		},
		Motion: Motion{
			Gravity: 1200,
			Floor:   60,
		},
		Spawn: Spawn{
			InitialBurst: 500,
			Burst:        500,
			UITop:        1030,
		},
		Capacity: Capacity{
			World:       65536,
			Factory:     32768,
			Nodes:       1024,
			Collections: 3,
		},
		Spawner: Spawner{
			Delay:  2,
			Burst:  300,
			MinFPS: 50,
			Step:   1,
			Timer:  1,
			Speed:  50,
		},
		Animate: Animate{
			To:       80,
			Duration: 2,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrapf(err, "failed to read config file %s", path)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, eris.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}

// Decode parses YAML into cfg with strict field checking, so typos are errors.
func Decode(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return eris.Wrap(err, "invalid yaml")
	}
	return cfg.Validate()
}

// Validate reports the first setting that cannot produce a working run.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return eris.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Meter.Samples <= 0:
		return eris.Errorf("meter.samples must be positive, got %d", c.Meter.Samples)
	case c.Meter.LowFPS < 0:
		return eris.Errorf("meter.low_fps cannot be negative, got %v", c.Meter.LowFPS)
	case c.Spawn.InitialBurst < 0 || c.Spawn.Burst < 0:
		return eris.New("spawn bursts cannot be negative")
	case c.Capacity.World < 0 || c.Capacity.Factory < 0 || c.Capacity.Nodes < 0:
		return eris.New("capacities cannot be negative")
	case c.Capacity.Collections <= 0:
		return eris.Errorf("capacity.collections must be positive, got %d", c.Capacity.Collections)
	case c.Spawner.Delay < 0 || c.Spawner.Burst < 0 || c.Spawner.Step < 0:
		return eris.New("spawner settings cannot be negative")
	case c.Animate.Duration <= 0:
		return eris.Errorf("animate.duration must be positive, got %v", c.Animate.Duration)
	}
	return nil
}
