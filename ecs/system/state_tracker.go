package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
)

const (
	speedEpsilon      = 0.01
	slidingFriction   = 0.5
	slidingLateral    = 0.5
	maxSpeedTolerance = 0.1
)

// StateTrackerSystem derives the read-only PhysicsState feedback record.
type StateTrackerSystem struct{}

func NewStateTrackerSystem() *StateTrackerSystem {
	return &StateTrackerSystem{}
}

func (s *StateTrackerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.VelocityComponent.Kind(), component.SpeedConstraintsComponent.Kind(), component.PhysicsStateComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, limits *component.SpeedConstraints, state *component.PhysicsState) {
		friction := 1.0
		if mod, ok := ecs.Get(w, e, component.SurfaceModifierComponent.Kind()); ok {
			friction = mod.Friction
		}
		next := DeriveState(vel.V, friction, limits.MaxForward)
		if StateChanged(*state, next) {
			*state = next
		}
	})
}

// DeriveState computes the feedback record for a velocity on a surface.
func DeriveState(v mgl64.Vec3, friction, maxForward float64) component.PhysicsState {
	return component.PhysicsState{
		CurrentSpeed: v.Len(),
		IsSliding:    friction < slidingFriction && math.Abs(v.X()) > slidingLateral,
		IsAtMaxSpeed: v.Z() >= maxForward-maxSpeedTolerance,
	}
}

// StateChanged reports whether next differs from prev enough to rewrite.
func StateChanged(prev, next component.PhysicsState) bool {
	return math.Abs(prev.CurrentSpeed-next.CurrentSpeed) > speedEpsilon ||
		prev.IsSliding != next.IsSliding ||
		prev.IsAtMaxSpeed != next.IsAtMaxSpeed
}
