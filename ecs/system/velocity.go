package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
)

// InputEpsilon is the dead zone below which steering input counts as none,
// and the lateral speed below which a decaying mover snaps to rest.
const InputEpsilon = 0.01

// VelocitySystem moves each mover's velocity toward its targets.
type VelocitySystem struct{}

func NewVelocitySystem() *VelocitySystem {
	return &VelocitySystem{}
}

func (s *VelocitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Clock().DT

	ecs.ForEach4(w, component.VelocityComponent.Kind(), component.AccelProfileComponent.Kind(), component.TargetSpeedComponent.Kind(), component.SpeedConstraintsComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, accel *component.AccelProfile, target *component.TargetSpeed, limits *component.SpeedConstraints) {
		lateral := 0.0
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			lateral = in.Lateral
		}
		vel.V = ResolveVelocity(vel.V, lateral, *accel, target.Forward, limits.MaxLateral, dt)
	})
}

// ResolveVelocity steps v toward the forward target and the steered lateral
// target. The vertical axis is returned unchanged.
func ResolveVelocity(v mgl64.Vec3, lateralInput float64, accel component.AccelProfile, targetForward, maxLateral, dt float64) mgl64.Vec3 {
	forward := v.Z()
	if forward < targetForward {
		forward = common.Approach(forward, targetForward, accel.ForwardAccel*dt)
	} else {
		forward = common.Approach(forward, targetForward, accel.Decel*dt)
	}

	lateral := v.X()
	if math.Abs(lateralInput) > InputEpsilon {
		lateral = common.Approach(lateral, lateralInput*maxLateral, accel.LateralAccel*dt)
	} else {
		lateral = common.Approach(lateral, 0, accel.Decel*dt)
		if math.Abs(lateral) < InputEpsilon {
			lateral = 0
		}
	}

	return mgl64.Vec3{lateral, v.Y(), forward}
}
