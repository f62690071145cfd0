// Command arcade drives the simulation from the keyboard in a debug window.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/roadrush/config"
	"github.com/milk9111/roadrush/difficulty"
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

	tun, err := tuning.LoadAll()
	if err != nil {
		logger.Fatal("load tuning", zap.Error(err))
	}
	curve, err := difficulty.Default()
	if err != nil {
		logger.Fatal("load difficulty curve", zap.Error(err))
	}
	rec := metrics.New(map[string]string{"binary": "arcade"})

	var reloader func(*sim.Sim) *sim.Reloader
	if rt.WatchTuning {
		w, err := tuning.NewWatcher(tuning.DiskDir)
		if err != nil {
			logger.Warn("tuning watch disabled", zap.Error(err))
		} else {
			defer func() { _ = w.Close() }()
			reloader = func(s *sim.Sim) *sim.Reloader { return sim.NewReloader(s, w.Events, nil) }
		}
	}

	newSim := func(fader *opacityFader, tun *tuning.Tuning) (*sim.Sim, error) {
		return sim.New(sim.Options{
			Tuning:         tun,
			Sampler:        keyboardSampler{},
			Scaler:         curve,
			Fader:          fader,
			Logger:         logger,
			Metrics:        rec,
			Seed:           rt.Seed,
			DT:             1.0 / float64(ebiten.DefaultTPS),
			DisableSpawner: !rt.Spawner,
		})
	}

	game, err := NewGame(tun, newSim, reloader, newZoneTrack(rt.Seed, logger), logger)
	if err != nil {
		logger.Fatal("start session", zap.Error(err))
	}

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("roadrush")
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}
