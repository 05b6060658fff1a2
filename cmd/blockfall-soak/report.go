package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/sim"
)

type Report struct {
	// Configuration
	RunID    string
	Duration time.Duration
	Seed     uint64
	TPS      int
	Grid     string

	// Results
	TotalTime      time.Duration
	SimulatedTime  time.Duration
	UpdateTime     Stats
	SchedulerStats *sim.SchedulerStats
	Pieces         int
	Moves          int64
	Events         map[sim.EventKind]int64
	FinalSpeed     float64
	Process        *ProcessUsage
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Observe counts world events.
func (r *Report) Observe(ev sim.Event) {
	if r.Events == nil {
		r.Events = make(map[sim.EventKind]int64)
	}
	r.Events[ev.Kind]++
	if ev.Kind == sim.EventSpeedChanged {
		r.FinalSpeed = ev.Gravity.SpeedMultiplier
	}
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
# Blockfall Soak Report

## Run Configuration
- **Run ID:** {{.RunID}}
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Ticks per Second:** {{.TPS}}
- **Grid:** {{.Grid}}

## Simulation
- **Frames:** {{with .SchedulerStats}}{{.Frames}}{{end}}
- **Simulated Time:** {{.SimulatedTime}}
- **Pieces:** {{.Pieces}}
- **Gravity Moves:** {{.Moves}}
- **Spawned:** {{event . "spawned"}}
- **Landed:** {{event . "landed"}}
- **Rotations:** {{event . "rotated"}}
- **Pause Toggles:** {{event . "mode_changed"}}
- **Speed Changes:** {{event . "speed_changed"}}{{if .FinalSpeed}} (final x{{printf "%.2f" .FinalSpeed}}){{end}}

## Performance Results
- **Total Wall Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{with .SchedulerStats}}
| System | Executions | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{with .Process}}
## Process
- **CPU:** {{printf "%.1f" .CPUPercent}}%
- **RSS:** {{.RSS}} bytes
- **Threads:** {{.Threads}}
{{end}}{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"event": func(r *Report, kind string) int64 {
			for k, n := range r.Events {
				if k.String() == kind {
					return n
				}
			}
			return 0
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
