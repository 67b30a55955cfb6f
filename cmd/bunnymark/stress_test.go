package main

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/plus3/bunnymark/config"
	"github.com/plus3/bunnymark/scene"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.ErrorLevel)
	os.Exit(m.Run())
}

func TestStressFixedFrames(t *testing.T) {
	report, err := runStress(config.Default(), stressOptions{
		Scene:      "update_single",
		Frames:     120,
		FixedDT:    1.0 / 64,
		BurstEvery: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(120), report.TotalFrames)
	assert.Equal(t, 3, report.Touches)
	assert.Equal(t, 2000, report.Population)
	assert.Equal(t, 0, report.PopulationAfterFinal)
	assert.InDelta(t, 64.0, report.FPS, 1e-9)
	assert.Equal(t, "Bunnies 2000 FPS:64.00", report.Status)
	assert.Equal(t, int64(120), report.Metrics.Frames)
	assert.Equal(t, 2000, report.Storage.TotalEntityCount)
	assert.Len(t, report.UpdateTime.Samples, 120)
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.Max)
}

func TestStressDurationWithFixedDT(t *testing.T) {
	report, err := runStress(config.Default(), stressOptions{
		Scene:    "go_animate",
		Duration: 2 * time.Second,
		FixedDT:  1.0 / 64,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(128), report.TotalFrames)
	assert.Equal(t, 0, report.Touches)
	assert.Equal(t, 500, report.Population)
}

func TestStressCountsExhaustion(t *testing.T) {
	cfg := config.Default()
	cfg.Capacity.Factory = 600

	report, err := runStress(cfg, stressOptions{
		Scene:      "update_single",
		Frames:     90,
		FixedDT:    1.0 / 60,
		BurstEvery: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 600, report.Population)
	assert.Equal(t, 2, report.Metrics.Exhausted)
}

func TestStressUnknownScene(t *testing.T) {
	_, err := runStress(config.Default(), stressOptions{Scene: "nope", Frames: 1, FixedDT: 1})
	require.Error(t, err)
	assert.True(t, eris.Is(err, scene.ErrUnknownScene))
}

func TestReportGenerate(t *testing.T) {
	report, err := runStress(config.Default(), stressOptions{
		Scene:   "tanks",
		Frames:  10,
		FixedDT: 1.0 / 60,
		GCPause: true,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Scene:** tanks")
	assert.Contains(t, out, "**Final Population:** 300")
	assert.Contains(t, out, "GC Pause Durations")
	assert.Contains(t, out, "## Systems")
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}
