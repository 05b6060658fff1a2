package main

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/blockfall/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		RunID:    "run-1",
		Duration: time.Second,
		Seed:     7,
		TPS:      60,
		Grid:     "10x20",
		SchedulerStats: &sim.SchedulerStats{
			Frames:  120,
			Systems: []sim.SystemStats{{Name: "GravitySystem", ExecutionCount: 120}},
		},
	}
	r.Observe(sim.Event{Kind: sim.EventSpawned})
	r.Observe(sim.Event{Kind: sim.EventLanded})
	r.Observe(sim.Event{Kind: sim.EventSpawned})
	r.Observe(sim.Event{Kind: sim.EventSpeedChanged, Gravity: sim.GravityState{SpeedMultiplier: 1.5}})

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Blockfall Soak Report")
	assert.Contains(t, out, "**Frames:** 120")
	assert.Contains(t, out, "**Spawned:** 2")
	assert.Contains(t, out, "**Landed:** 1")
	assert.Contains(t, out, "**Rotations:** 0")
	assert.Contains(t, out, "(final x1.50)")
	assert.Contains(t, out, "| GravitySystem | 120 |")
	assert.Contains(t, out, "**Run ID:** run-1")
	assert.NotContains(t, out, "GC Pause")
	assert.NotContains(t, out, "## Process")

	r.Process = &ProcessUsage{CPUPercent: 12.345, RSS: 2048, Threads: 4}
	buf.Reset()
	require.NoError(t, r.Generate(&buf))
	assert.Contains(t, buf.String(), "**CPU:** 12.3%")
	assert.Contains(t, buf.String(), "**RSS:** 2048 bytes")
}

func TestReadProcessUsage(t *testing.T) {
	usage, err := readProcessUsage()
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	assert.Positive(t, usage.RSS)
	assert.Positive(t, usage.Threads)
}

func TestRandomInputReleasesPause(t *testing.T) {
	in := newRandomInput(rand.New(rand.NewPCG(1, 2)))

	toggles := 0
	for range 100000 {
		if in.JustPressed(sim.ActionTogglePause) {
			toggles++
		}
	}
	assert.Positive(t, toggles)
	assert.Equal(t, toggles%2 == 1, in.paused)
}
