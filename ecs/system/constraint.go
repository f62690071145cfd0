package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
)

// EdgeBuffer is the distance from a road edge inside which outward lateral
// velocity is scaled down.
const EdgeBuffer = 0.5

// ConstraintSystem clamps each mover's velocity to its speed envelope and
// keeps it from driving off the road.
type ConstraintSystem struct{}

func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{}
}

func (s *ConstraintSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.VelocityComponent.Kind(), component.SpeedConstraintsComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, limits *component.SpeedConstraints, t *component.Transform) {
		vel.V = ClampVelocity(vel.V, *limits, t.Position.X())
	})
}

// ClampVelocity bounds v to the envelope and applies the edge buffer for a
// mover at lateral position x. Inward velocity is never reduced.
func ClampVelocity(v mgl64.Vec3, c component.SpeedConstraints, x float64) mgl64.Vec3 {
	forward := common.Clamp(v.Z(), c.MinForward, c.MaxForward)
	lateral := common.Clamp(v.X(), -c.MaxLateral, c.MaxLateral)

	if lateral < 0 {
		lateral *= edgeScale(x - c.RoadMinX)
	} else if lateral > 0 {
		lateral *= edgeScale(c.RoadMaxX - x)
	}

	return mgl64.Vec3{lateral, v.Y(), forward}
}

func edgeScale(dist float64) float64 {
	if dist <= 0 {
		return 0
	}
	if dist < EdgeBuffer {
		return dist / EdgeBuffer
	}
	return 1
}
