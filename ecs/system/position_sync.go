package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/metrics"
	"github.com/milk9111/roadrush/physics"
	"go.uber.org/zap"
)

// PositionEpsilon is the smallest positional change copied back from the
// integrator.
const PositionEpsilon = 1e-4

// PositionSyncSystem copies integrator positions into Transforms.
type PositionSyncSystem struct {
	space   *physics.Space
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func NewPositionSyncSystem(space *physics.Space, logger *zap.Logger, rec *metrics.Recorder) *PositionSyncSystem {
	return &PositionSyncSystem{space: space, logger: nopIfNil(logger), metrics: rec}
}

func (s *PositionSyncSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		if ecs.Has(w, e, component.SurfaceZoneComponent.Kind()) {
			return
		}
		body, ok := bodyFor(s.space, e, StagePositionSync, s.logger, s.metrics)
		if !ok {
			return
		}

		if pos := body.Position(); !nearVec(pos, t.Position, PositionEpsilon) {
			t.Position = pos
		}
		if angle := body.Angle(); math.Abs(angle-t.Rotation) > PositionEpsilon {
			t.Rotation = angle
		}
	})
}

func nearVec(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps && math.Abs(a[2]-b[2]) <= eps
}
