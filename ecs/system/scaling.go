package system

import (
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"go.uber.org/zap"
)

// Scaler supplies the time-varying speed envelope (difficulty, upgrades).
// It always starts from the mover's base envelope so scaling never compounds.
type Scaler interface {
	Scale(elapsed float64, base component.SpeedEnvelope) (component.SpeedEnvelope, error)
}

// ScalingSystem pushes the scaled target speed and limits onto every mover
// before steering is resolved.
type ScalingSystem struct {
	scaler Scaler
	logger *zap.Logger
	warned bool
}

func NewScalingSystem(scaler Scaler, logger *zap.Logger) *ScalingSystem {
	return &ScalingSystem{scaler: scaler, logger: nopIfNil(logger)}
}

func (s *ScalingSystem) Update(w *ecs.World) {
	if s == nil || s.scaler == nil || w == nil {
		return
	}
	now := w.Clock().Now

	ecs.ForEach3(w, component.ScalingComponent.Kind(), component.TargetSpeedComponent.Kind(), component.SpeedConstraintsComponent.Kind(), func(e ecs.Entity, sc *component.Scaling, target *component.TargetSpeed, limits *component.SpeedConstraints) {
		env, err := s.scaler.Scale(now, sc.Base)
		if err != nil {
			// Keep last tick's values; the scaler is expected to recover.
			if !s.warned {
				s.logger.Warn("speed scaling failed, keeping previous envelope", zap.Stringer("entity", e), zap.Error(err))
				s.warned = true
			}
			return
		}
		s.warned = false

		limits.MaxForward = max(env.MaxForward, limits.MinForward)
		limits.MaxLateral = max(env.MaxLateral, 0)
		target.Forward = min(max(env.TargetSpeed, limits.MinForward), limits.MaxForward)
	})
}
