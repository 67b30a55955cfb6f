package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/metrics"
)

type Report struct {
	// Configuration
	Scene    string
	Duration time.Duration
	FixedDT  float64

	// Results
	TotalFrames          int64
	TotalTime            time.Duration
	Touches              int
	Population           int
	PopulationAfterFinal int
	FPS                  float64
	Status               string
	UpdateTime           Stats
	Metrics              metrics.Snapshot
	Storage              *ecs.StorageStats
	Scheduler            *ecs.SchedulerStats
	GCPauseMetrics       bool
	MemStatsStart        runtime.MemStats
	MemStatsEnd          runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Bunnymark Stress Report

## Run
- **Scene:** {{.Scene}}
- **Frame Time:** {{if .FixedDT}}fixed {{printf "%.4f" .FixedDT}}s{{else}}wall clock{{end}}
- **Frames:** {{comma .TotalFrames}} in {{.TotalTime}}
- **Synthetic Touches:** {{.Touches}}

## Population
- **Final Population:** {{comma .Population}}
- **After Reset:** {{.PopulationAfterFinal}}
- **Smoothed FPS:** {{printf "%.2f" .FPS}}
- **Exhausted Bursts:** {{.Metrics.Exhausted}}
- **Full Collections:** {{.Metrics.Collections}}
{{- if .Status}}
- **Status Line:** {{.Status}}
{{- end}}

## Update Time (Frame)
- **Avg:** {{.UpdateTime.Avg}}
- **Min:** {{.UpdateTime.Min}}
- **Max:** {{.UpdateTime.Max}}

## Storage
- **Entities:** {{comma .Storage.TotalEntityCount}} / {{comma .Storage.EntityLimit}}
- **Archetypes:** {{.Storage.ArchetypeCount}}
{{- range .Storage.ArchetypeBreakdown}}
  - #{{.ID}} {{.ComponentTypes}}: {{comma .EntityCount}}
{{- end}}

## Systems
{{- range .Scheduler.Systems}}
- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}

## Memory Usage
- Heap Alloc:  {{bytes .MemStatsStart.HeapAlloc}} (start) -> {{bytes .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc: {{bytes .MemStatsStart.TotalAlloc}} (start) -> {{bytes .MemStatsEnd.TotalAlloc}} (end)
- Sys Memory:  {{bytes .MemStatsStart.Sys}} (start) -> {{bytes .MemStatsEnd.Sys}} (end)
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

var reportFuncs = template.FuncMap{
	"bytes": humanize.Bytes,
	"comma": func(v any) string {
		switch val := v.(type) {
		case int:
			return humanize.Comma(int64(val))
		case int64:
			return humanize.Comma(val)
		default:
			return "N/A"
		}
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
