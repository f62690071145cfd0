package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/metrics"
	"github.com/milk9111/roadrush/physics"
	"go.uber.org/zap"
)

const boostSteerBlend = 0.5

// BodyApplySystem writes each mover's resolved velocity into the
// integrator. The vertical axis always comes from the integrator. While a
// launch boost is running the integrator velocity is kept and only the
// lateral axis is nudged toward the steered value.
type BodyApplySystem struct {
	space   *physics.Space
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func NewBodyApplySystem(space *physics.Space, logger *zap.Logger, rec *metrics.Recorder) *BodyApplySystem {
	return &BodyApplySystem{space: space, logger: nopIfNil(logger), metrics: rec}
}

func (s *BodyApplySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	now := w.Clock().Now

	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.AccelProfileComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, _ *component.AccelProfile) {
		body, ok := bodyFor(s.space, e, StageBodyApply, s.logger, s.metrics)
		if !ok {
			return
		}
		current := body.Velocity()

		if boost, ok := ecs.Get(w, e, component.LaunchBoostComponent.Kind()); ok {
			elapsed := now - boost.Start
			if elapsed >= boost.Duration {
				ecs.Remove(w, e, component.LaunchBoostComponent.Kind())
				vel.V[1] = current.Y()
				return
			}
			t := common.Clamp(elapsed/boost.Duration, 0, 1) * boostSteerBlend
			applied := mgl64.Vec3{common.Lerp(current.X(), vel.V.X(), t), current.Y(), current.Z()}
			body.SetVelocity(applied)
			vel.V = applied
			return
		}

		vel.V[1] = current.Y()
		body.SetVelocity(vel.V)
	})
}
