package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
)

const (
	slideFactor      = 0.8
	driftFriction    = 0.4
	driftAmplitude   = 0.25
	driftFrequency   = 1.5
	maxSlowdown      = 0.5
	maxDragBoost     = 1.02
	heavyDrag        = 5.0
	moderateDragSlow = 0.5
	heavyDragSlow    = 0.1
)

// SurfaceSystem applies the active surface modifier to each mover's
// resolved velocity: low friction keeps last tick's lateral momentum, drag
// scales forward speed.
type SurfaceSystem struct {
	memory *SlidingMemory
}

func NewSurfaceSystem(memory *SlidingMemory) *SurfaceSystem {
	if memory == nil {
		memory = NewSlidingMemory()
	}
	return &SurfaceSystem{memory: memory}
}

func (s *SurfaceSystem) Memory() *SlidingMemory {
	return s.memory
}

func (s *SurfaceSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	clock := w.Clock()

	ecs.ForEach3(w, component.VelocityComponent.Kind(), component.SurfaceModifierComponent.Kind(), component.DragStateComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, mod *component.SurfaceModifier, drag *component.DragState) {
		prev, ok := s.memory.Get(e)
		if !ok {
			prev = vel.V.X()
		}
		vel.V = ModulateSurface(vel.V, *mod, drag, prev, uint64(e), clock.Now, clock.DT)
		s.memory.Set(e, vel.V.X())
	})
}

// ModulateSurface returns v after the surface's friction and drag effects
// and updates drag with the drag now in effect. prevLateral is the mover's
// lateral velocity from the previous tick; seed keys the drift noise.
func ModulateSurface(v mgl64.Vec3, mod component.SurfaceModifier, drag *component.DragState, prevLateral float64, seed uint64, now, dt float64) mgl64.Vec3 {
	lateral := v.X()
	if f := mod.Friction; f < 1 {
		slide := (1 - f) * slideFactor
		lateral = common.Lerp(lateral, prevLateral, slide)
		if f < driftFriction {
			lateral += common.ValueNoise(seed, now*driftFrequency) * driftAmplitude * (1 - f)
		}
	}

	forward := v.Z()
	d := mod.Drag
	switch {
	case d > 1:
		slow := 1 - common.Clamp((d-1)*2*dt, 0, maxSlowdown)
		floor := moderateDragSlow
		if d > heavyDrag {
			floor = heavyDragSlow
		}
		forward = max(forward*slow, min(forward, floor))
	case d < 1 && d > 0:
		forward *= min(1+(1-d)*0.1*dt, maxDragBoost)
	}

	if drag != nil {
		drag.Current = drag.Base * d
	}
	return mgl64.Vec3{lateral, v.Y(), forward}
}
