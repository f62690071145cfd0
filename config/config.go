// Package config reads the runtime options shared by the roadrush binaries.
// Values come from defaults, an optional config file and ROADRUSH_ prefixed
// environment variables, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/milk9111/roadrush/logging"
	"github.com/spf13/viper"
)

const EnvPrefix = "roadrush"

// Runtime is the typed view of the binaries' configuration.
type Runtime struct {
	Seed    uint64
	DT      float64
	Ticks   int
	Spawner bool

	// Input selects the headless steering script: "straight" or "weave".
	Input          string
	WeaveAmplitude float64
	WeavePeriod    float64

	DifficultyScript string
	WatchTuning      bool
	MetricsAddr      string
	ReportEvery      int

	Logger logging.Config
}

// New returns a viper instance with every key defaulted and environment
// overrides enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.dt", 1.0/60)
	v.SetDefault("sim.ticks", 3600)
	v.SetDefault("sim.spawner", true)
	v.SetDefault("input.mode", "weave")
	v.SetDefault("input.amplitude", 0.6)
	v.SetDefault("input.period", 4.0)
	v.SetDefault("difficulty.script", "")
	v.SetDefault("tuning.watch", false)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("report.every", 600)
	logging.SetDefaults(v)
	return v
}

// Load reads path, when set, on top of the defaults.
func Load(path string) (*viper.Viper, error) {
	v := New()
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return v, nil
}

func RuntimeFrom(v *viper.Viper) Runtime {
	return Runtime{
		Seed:             v.GetUint64("sim.seed"),
		DT:               v.GetFloat64("sim.dt"),
		Ticks:            v.GetInt("sim.ticks"),
		Spawner:          v.GetBool("sim.spawner"),
		Input:            strings.ToLower(v.GetString("input.mode")),
		WeaveAmplitude:   v.GetFloat64("input.amplitude"),
		WeavePeriod:      v.GetFloat64("input.period"),
		DifficultyScript: v.GetString("difficulty.script"),
		WatchTuning:      v.GetBool("tuning.watch"),
		MetricsAddr:      v.GetString("metrics.addr"),
		ReportEvery:      v.GetInt("report.every"),
		Logger:           logging.ConfigFrom(v),
	}
}
