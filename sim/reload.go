package sim

import (
	"fmt"

	"github.com/milk9111/roadrush/tuning"
	"go.uber.org/zap"
)

// Reloader applies tuning file changes to a running session between ticks.
type Reloader struct {
	sim    *Sim
	events <-chan string
	load   func() (*tuning.Tuning, error)
}

// NewReloader wires change notifications (typically tuning.Watcher.Events)
// to s. A nil load reads through tuning.LoadAll.
func NewReloader(s *Sim, events <-chan string, load func() (*tuning.Tuning, error)) *Reloader {
	if load == nil {
		load = tuning.LoadAll
	}
	return &Reloader{sim: s, events: events, load: load}
}

// Poll drains pending notifications without blocking and reloads once if any
// arrived. A failed reload leaves the current tuning in place.
func (r *Reloader) Poll() (bool, error) {
	var changed []string
drain:
	for {
		select {
		case name, ok := <-r.events:
			if !ok {
				break drain
			}
			changed = append(changed, name)
		default:
			break drain
		}
	}
	if len(changed) == 0 {
		return false, nil
	}

	t, err := r.load()
	if err != nil {
		r.sim.logger.Warn("tuning reload rejected", zap.Strings("files", changed), zap.Error(err))
		return false, fmt.Errorf("sim: reload: %w", err)
	}
	if err := r.sim.ApplyTuning(t); err != nil {
		r.sim.logger.Warn("tuning reload rejected", zap.Strings("files", changed), zap.Error(err))
		return false, err
	}
	r.sim.logger.Info("tuning reloaded", zap.Strings("files", changed))
	return true, nil
}
