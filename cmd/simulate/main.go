// Command simulate runs the vehicle simulation headless with scripted
// steering and reports hits and removals through the structured log.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/config"
	"github.com/milk9111/roadrush/difficulty"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/input"
	"github.com/milk9111/roadrush/logging"
	"github.com/milk9111/roadrush/metrics"
	"github.com/milk9111/roadrush/sim"
	"github.com/milk9111/roadrush/tuning"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	v, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	rt := config.RuntimeFrom(v)

	logger, err := logging.New(rt.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, rt, logger); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func run(ctx context.Context, rt config.Runtime, logger *zap.Logger) error {
	tun, err := tuning.LoadAll()
	if err != nil {
		return err
	}

	scaler, err := loadCurve(rt.DifficultyScript)
	if err != nil {
		return err
	}

	rec := metrics.New(map[string]string{"binary": "simulate"})
	if rt.MetricsAddr != "" {
		srv := serveMetrics(rt.MetricsAddr, rec, logger)
		defer func() { _ = srv.Close() }()
	}

	s, err := sim.New(sim.Options{
		Tuning:         tun,
		Sampler:        sampler(rt),
		Scaler:         scaler,
		Logger:         logger,
		Metrics:        rec,
		Seed:           rt.Seed,
		DT:             rt.DT,
		DisableSpawner: !rt.Spawner,
	})
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("session", s.SessionID()))

	var reloader *sim.Reloader
	if rt.WatchTuning {
		w, err := tuning.NewWatcher(tuning.DiskDir)
		if err != nil {
			logger.Warn("tuning watch disabled", zap.String("dir", tuning.DiskDir), zap.Error(err))
		} else {
			defer func() { _ = w.Close() }()
			reloader = sim.NewReloader(s, w.Events, nil)
		}
	}

	vehicle, err := s.SpawnVehicle(mgl64.Vec3{})
	if err != nil {
		return err
	}

	var hits int
	removed := make(map[component.RemovalReason]int)
	s.OnHit(func(h component.HitEvent) {
		hits++
		logger.Info("pedestrian hit",
			zap.String("kind", string(h.PedestrianKind)),
			zap.String("reward", h.Reward),
			zap.Float64("force", h.ImpactForce),
			zap.Float64("t", h.Time),
		)
	})
	s.OnPedestrianRemoved(func(r component.PedestrianRemoved) {
		removed[r.Reason]++
	})

	start := time.Now()
	for tick := 1; tick <= rt.Ticks; tick++ {
		if ctx.Err() != nil {
			logger.Info("interrupted", zap.Int("tick", tick))
			break
		}
		if reloader != nil {
			_, _ = reloader.Poll()
		}
		s.Step()

		if rt.ReportEvery > 0 && tick%rt.ReportEvery == 0 {
			report(logger, s, vehicle, tick)
		}
	}

	logger.Info("simulation finished",
		zap.Float64("sim_seconds", s.Now()),
		zap.Duration("wall", time.Since(start)),
		zap.Int("hits", hits),
		zap.Int("reaped", removed[component.RemovedReaped]),
		zap.Int("evicted", removed[component.RemovedEvicted]),
		zap.Int("behind", removed[component.RemovedBehind]),
	)
	return nil
}

func sampler(rt config.Runtime) input.Sampler {
	switch rt.Input {
	case "straight":
		return input.Neutral{}
	default:
		return &input.SineWeave{Amplitude: rt.WeaveAmplitude, Period: rt.WeavePeriod, DT: rt.DT}
	}
}

func loadCurve(path string) (*difficulty.Curve, error) {
	if path == "" {
		return difficulty.Default()
	}
	return difficulty.LoadFile(path)
}

func report(logger *zap.Logger, s *sim.Sim, vehicle ecs.Entity, tick int) {
	state, _ := s.State()
	fields := []zap.Field{
		zap.Int("tick", tick),
		zap.Float64("speed", state.CurrentSpeed),
		zap.Bool("sliding", state.IsSliding),
		zap.Bool("at_max", state.IsAtMaxSpeed),
		zap.Int("ragdolls", s.Tracker().Len()),
		zap.Int("pedestrians", ecs.Count(s.World(), component.PedestrianComponent.Kind())),
	}
	if tr, ok := ecs.Get(s.World(), vehicle, component.TransformComponent.Kind()); ok {
		fields = append(fields, zap.Float64("x", tr.Position.X()), zap.Float64("z", tr.Position.Z()))
	}
	logger.Info("status", fields...)
}

func serveMetrics(addr string, rec *metrics.Recorder, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))
	return srv
}
