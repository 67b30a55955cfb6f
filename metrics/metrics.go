// Package metrics exports the benchmark's live numbers as Prometheus
// metrics and a JSON snapshot. The frame loop writes, HTTP handlers read
// from other goroutines.
package metrics

import (
	"sync"

	"github.com/plus3/bunnymark/bench"
	"github.com/plus3/bunnymark/engine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bunnymark"

// Snapshot is the last observed state of a run.
type Snapshot struct {
	Scene       string  `json:"scene"`
	Frames      int64   `json:"frames"`
	Population  int     `json:"population"`
	FPS         float64 `json:"fps"`
	Low         bool    `json:"low_fps"`
	Objects     int     `json:"objects"`
	ObjectLimit int     `json:"object_limit"`
	Exhausted   int     `json:"exhausted"`
	Collections int     `json:"collections_full"`
}

// Recorder owns a private registry so several runs can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	population   prometheus.Gauge
	fps          prometheus.Gauge
	objects      prometheus.Gauge
	frameSeconds prometheus.Histogram
	exhausted    prometheus.Counter
	collections  prometheus.Counter

	mu       sync.Mutex
	snapshot Snapshot
}

func NewRecorder(scene string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"scene": scene}

	return &Recorder{
		registry: reg,
		population: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "population",
			Help:        "Live entities across all pools",
			ConstLabels: labels,
		}),
		fps: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "fps",
			Help:        "Smoothed frames per second",
			ConstLabels: labels,
		}),
		objects: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "engine_objects",
			Help:        "Live engine objects",
			ConstLabels: labels,
		}),
		frameSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "frame_seconds",
			Help:        "Frame durations fed to the meter",
			ConstLabels: labels,
			Buckets:     []float64{1.0 / 240, 1.0 / 120, 1.0 / 60, 1.0 / 50, 1.0 / 30, 1.0 / 15, 0.25},
		}),
		exhausted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "spawn_exhausted_total",
			Help:        "Spawn bursts stopped by an exhausted pool",
			ConstLabels: labels,
		}),
		collections: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "collections_full_total",
			Help:        "Chained collections that filled up",
			ConstLabels: labels,
		}),
		snapshot: Snapshot{Scene: scene},
	}
}

// Registry returns the registry the metrics are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Kinds() []bench.Kind {
	return []bench.Kind{bench.KindExhausted, bench.KindCollectionFull}
}

func (r *Recorder) HandleMessage(msg bench.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch msg.Kind {
	case bench.KindExhausted:
		r.exhausted.Inc()
		r.snapshot.Exhausted++
	case bench.KindCollectionFull:
		r.collections.Inc()
		r.snapshot.Collections++
	}
}

// Observe records one frame of dt seconds after the driver has updated.
func (r *Recorder) Observe(ctx *bench.Context, world *engine.World, dt float64) {
	fps := ctx.Meter.FPS()
	population := ctx.Population()
	objects := world.Len()

	r.population.Set(float64(population))
	r.fps.Set(fps)
	r.objects.Set(float64(objects))
	r.frameSeconds.Observe(dt)

	r.mu.Lock()
	r.snapshot.Frames++
	r.snapshot.Population = population
	r.snapshot.FPS = fps
	r.snapshot.Low = ctx.Meter.Low()
	r.snapshot.Objects = objects
	r.snapshot.ObjectLimit = world.Storage().Limit()
	r.mu.Unlock()
}

// Snapshot returns a copy of the last observed state.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

// instrumented observes every Update of the wrapped driver.
type instrumented struct {
	bench.Driver
	rec   *Recorder
	ctx   *bench.Context
	world *engine.World
}

// Instrument subscribes rec to ctx's bus and returns d with every Update
// recorded.
func Instrument(d bench.Driver, rec *Recorder, ctx *bench.Context, world *engine.World) bench.Driver {
	ctx.Bus.Subscribe(rec)
	return &instrumented{Driver: d, rec: rec, ctx: ctx, world: world}
}

func (i *instrumented) Update(dt float64) {
	i.Driver.Update(dt)
	i.rec.Observe(i.ctx, i.world, dt)
}
