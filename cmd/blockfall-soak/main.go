package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/sim"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total wall-clock duration of the soak run.")
	configPath := flag.String("config", "", "Path to a YAML config file.")
	seed := flag.Uint64("seed", 1, "Seed for the random input.")
	tps := flag.Int("tps", 60, "Simulated ticks per second; each frame advances 1/tps seconds.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Spawn.Respawn = true

	logger := logging.New(os.Stderr, logging.LevelError)
	world, err := cfg.NewWorld(logger)
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	report := &Report{
		RunID:          uuid.NewString(),
		Duration:       *duration,
		Seed:           *seed,
		TPS:            *tps,
		Grid:           fmt.Sprintf("%dx%d", world.Grid.Cols, world.Grid.Rows),
		GCPauseMetrics: *gcPauseMetrics,
	}
	world.Subscribe(report.Observe)

	input := newRandomInput(rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)))
	scheduler := sim.NewScheduler(world)
	scheduler.Register(&sim.InputSystem{Input: input})
	gravity := &sim.GravitySystem{}
	scheduler.Register(gravity)
	scheduler.Register(&sim.SpawnSystem{})

	if _, err := world.Spawn(world.SpawnKind); err != nil {
		log.Fatalf("Failed to spawn first piece: %v", err)
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running soak %s for %s...\n", report.RunID, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	dt := 1.0 / float64(*tps)
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			scheduler.Once(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.SchedulerStats = scheduler.Stats()
	report.SimulatedTime = time.Duration(float64(report.SchedulerStats.Frames) * dt * float64(time.Second))
	report.Moves = gravity.Moved
	report.Pieces = world.Len()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	if usage, err := readProcessUsage(); err != nil {
		log.Printf("Process usage unavailable: %v", err)
	} else {
		report.Process = usage
	}

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// randomInput presses each action with a fixed chance per frame. Pauses are
// rare and released quickly so gravity keeps running most of the time.
type randomInput struct {
	rng    *rand.Rand
	paused bool
}

func newRandomInput(rng *rand.Rand) *randomInput {
	return &randomInput{rng: rng}
}

func (in *randomInput) JustPressed(action sim.Action) bool {
	switch action {
	case sim.ActionRotate:
		return in.rng.Float64() < 0.05
	case sim.ActionTogglePause:
		chance := 0.001
		if in.paused {
			chance = 0.1
		}
		if in.rng.Float64() < chance {
			in.paused = !in.paused
			return true
		}
		return false
	case sim.ActionSpeedUp:
		return in.rng.Float64() < 0.0005
	case sim.ActionToggleDebug:
		return in.rng.Float64() < 0.002
	default:
		return false
	}
}
