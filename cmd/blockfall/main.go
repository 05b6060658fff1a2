package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/metrics"
	"github.com/plus3/blockfall/platform"
	"github.com/plus3/blockfall/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (default $"+config.EnvPath+").")
	logLevel := flag.String("log-level", "", "Override the configured log level (debug, info, warn, error, none).")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *logLevel != "" {
		level, err := logging.ParseLevel(*logLevel)
		if err != nil {
			log.Fatalf("Invalid -log-level: %v", err)
		}
		cfg.Log.Level = level
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)

	world, err := cfg.NewWorld(logger.With("sim"))
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	keyboard, err := platform.NewKeyboard(cfg.Keys.Bindings())
	if err != nil {
		log.Fatalf("Failed to bind keys: %v", err)
	}

	imguiBackend := debugui_ebiten.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)

	frames := &platform.FrameRecorder{}
	scheduler := sim.NewScheduler(world)
	scheduler.Register(&sim.InputSystem{Input: keyboard})
	scheduler.Register(&sim.GravitySystem{})
	scheduler.Register(&sim.SpawnSystem{})
	scheduler.Register(&sim.RenderSystem{Renderer: frames})
	scheduler.Register(debugui.New(world, scheduler))

	collector := metrics.New()
	collector.Attach(world)
	scheduler.Register(&metrics.System{Collector: collector, Scheduler: scheduler})

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, collector, logger.With("metrics"))
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	if _, err := world.Spawn(world.SpawnKind); err != nil {
		log.Fatalf("Failed to spawn first piece: %v", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game := &platform.Game{
		Scheduler: scheduler,
		Keyboard:  keyboard,
		Frames:    frames,
		Imgui:     imguiBackend,
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Game exited: %v", err)
	}
}

func serveMetrics(addr string, collector *metrics.Collector, logger *logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Infof("serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("metrics server: %v", err)
		}
	}()
	return srv
}
