package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/metrics"
	"github.com/milk9111/roadrush/physics"
	"go.uber.org/zap"
)

// curbMargin is how far past a road edge a pedestrian walks before turning
// back.
const curbMargin = 1.5

// LocomotionSystem walks pedestrians back and forth across the road.
type LocomotionSystem struct {
	space   *physics.Space
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func NewLocomotionSystem(space *physics.Space, logger *zap.Logger, rec *metrics.Recorder) *LocomotionSystem {
	return &LocomotionSystem{space: space, logger: nopIfNil(logger), metrics: rec}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	minX, maxX := -1e9, 1e9
	if v, ok := vehicle(w); ok {
		if limits, ok := ecs.Get(w, v, component.SpeedConstraintsComponent.Kind()); ok {
			minX, maxX = limits.RoadMinX-curbMargin, limits.RoadMaxX+curbMargin
		}
	}

	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, t *component.Transform) {
		body, ok := bodyFor(s.space, e, StageLocomotion, s.logger, s.metrics)
		if !ok {
			return
		}
		x := t.Position.X()
		if (x <= minX && loco.Direction < 0) || (x >= maxX && loco.Direction > 0) {
			loco.Direction = -loco.Direction
		}
		body.SetVelocity(mgl64.Vec3{loco.Speed * loco.Direction, 0, 0})
	})
}
