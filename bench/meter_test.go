package bench_test

import (
	"testing"

	"github.com/plus3/bunnymark/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeterIdenticalSamples(t *testing.T) {
	for _, v := range []float64{0.5, 0.25, 0.015625} {
		m := bench.NewMeter(bench.DefaultSampleCount, bench.DefaultLowFPS)
		var fps float64
		for range bench.DefaultSampleCount {
			fps = m.Update(v)
		}
		assert.Equal(t, 1/v, fps)
		assert.Equal(t, fps, m.FPS())
	}
}

func TestMeterSteadySixty(t *testing.T) {
	m := bench.NewMeter(bench.DefaultSampleCount, 60)
	for range bench.DefaultSampleCount * 2 {
		m.Update(1.0 / 60)
	}
	assert.InDelta(t, 60, m.FPS(), 1e-9)
	assert.False(t, m.Low(), "a steady 60 fps is not under a 60 fps threshold")
	assert.True(t, m.Below(60.5))
}

func TestMeterPartialWindow(t *testing.T) {
	m := bench.NewMeter(4, 60)

	// Only filled slots count, so the first reading is not inflated.
	assert.Equal(t, 4.0, m.Update(0.25))
	assert.Equal(t, 2.0, m.Update(0.75))
	assert.Equal(t, 2, m.Window().Len())
	assert.Equal(t, 4, m.Window().Cap())
}

func TestMeterOldestSampleReplaced(t *testing.T) {
	m := bench.NewMeter(2, 60)
	m.Update(1)
	m.Update(1)
	fps := m.Update(0.5)

	assert.Equal(t, []float64{1, 0.5}, m.Window().Samples(nil))
	assert.InDelta(t, 1/0.75, fps, 1e-12)
}

func TestSampleWindowRunningSum(t *testing.T) {
	w := bench.NewSampleWindow(7)
	for i := range 500 {
		w.Push(0.001 * float64(i%13+1))

		var sum float64
		for _, s := range w.Samples(nil) {
			sum += s
		}
		require.InDelta(t, sum, w.Sum(), 1e-9)
	}
}

func TestSampleWindowOrder(t *testing.T) {
	w := bench.NewSampleWindow(3)
	assert.Empty(t, w.Samples(nil))
	assert.Equal(t, 0.0, w.Average())

	for _, v := range []float64{1, 2, 3, 4} {
		w.Push(v)
	}
	assert.Equal(t, []float64{2, 3, 4}, w.Samples(nil))
	assert.Equal(t, 3.0, w.Average())
}

func TestMeterZeroDuration(t *testing.T) {
	m := bench.NewMeter(3, 60)
	assert.Equal(t, 0.0, m.Update(0))
	assert.True(t, m.Low())
}

func TestMeterLow(t *testing.T) {
	m := bench.NewMeter(bench.DefaultSampleCount, bench.DefaultLowFPS)
	assert.False(t, m.Low(), "a meter with no samples is never low")
	assert.False(t, m.Below(1000))

	m.Update(0.03125)
	assert.Equal(t, 32.0, m.FPS())
	assert.True(t, m.Low())
	assert.True(t, m.Below(50))
	assert.False(t, m.Below(30))

	for range bench.DefaultSampleCount {
		m.Update(0.0078125)
	}
	assert.Equal(t, 128.0, m.FPS())
	assert.False(t, m.Low())
}

func TestMeterInvalidConfig(t *testing.T) {
	assert.Panics(t, func() { bench.NewMeter(0, 60) })
	assert.Panics(t, func() { bench.NewMeter(-1, 60) })
	assert.Panics(t, func() { bench.NewMeter(10, -1) })
	assert.Panics(t, func() { bench.NewSampleWindow(0) })
}
