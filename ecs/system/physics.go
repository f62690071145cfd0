package system

import (
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/physics"
)

// PhysicsSystem steps the integrator by one tick. Contact callbacks fire
// during the step.
type PhysicsSystem struct {
	space *physics.Space
}

func NewPhysicsSystem(space *physics.Space) *PhysicsSystem {
	return &PhysicsSystem{space: space}
}

func (ps *PhysicsSystem) Space() *physics.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}
	ps.space.Step(w.Clock().DT)
}
