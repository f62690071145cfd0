package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/physics"
	"github.com/milk9111/roadrush/tuning"
)

// NewVehicle creates the player's vehicle at pos with its full mover
// component set and a body in the integrator.
func NewVehicle(w *ecs.World, space *physics.Space, spec *tuning.MovementSpec, pos mgl64.Vec3) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("vehicle: %w", tuning.ErrMissingMovement)
	}

	e := ecs.CreateEntity(w)
	if err := addVehicleComponents(w, e, spec, pos); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}

	if _, err := space.AddVehicle(e, pos, spec.Vehicle.Width, spec.Vehicle.Length, spec.Vehicle.Mass); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("vehicle: add body: %w", err)
	}
	return e, nil
}

func addVehicleComponents(w *ecs.World, e ecs.Entity, spec *tuning.MovementSpec, pos mgl64.Vec3) error {
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return fmt.Errorf("vehicle: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return fmt.Errorf("vehicle: add velocity: %w", err)
	}

	accel := spec.AccelProfile()
	if err := ecs.Add(w, e, component.AccelProfileComponent.Kind(), &accel); err != nil {
		return fmt.Errorf("vehicle: add accel profile: %w", err)
	}
	limits := spec.SpeedConstraints()
	if err := ecs.Add(w, e, component.SpeedConstraintsComponent.Kind(), &limits); err != nil {
		return fmt.Errorf("vehicle: add speed constraints: %w", err)
	}
	if err := ecs.Add(w, e, component.TargetSpeedComponent.Kind(), &component.TargetSpeed{Forward: spec.TargetSpeed}); err != nil {
		return fmt.Errorf("vehicle: add target speed: %w", err)
	}
	if err := ecs.Add(w, e, component.ScalingComponent.Kind(), &component.Scaling{Base: spec.Envelope()}); err != nil {
		return fmt.Errorf("vehicle: add scaling: %w", err)
	}

	surface := component.NormalSurface()
	if err := ecs.Add(w, e, component.SurfaceModifierComponent.Kind(), &surface); err != nil {
		return fmt.Errorf("vehicle: add surface modifier: %w", err)
	}
	if err := ecs.Add(w, e, component.DragStateComponent.Kind(), &component.DragState{Base: spec.Drag.Base, Current: spec.Drag.Base}); err != nil {
		return fmt.Errorf("vehicle: add drag state: %w", err)
	}

	body := &component.PhysicsBody{Width: spec.Vehicle.Width, Length: spec.Vehicle.Length, Mass: spec.Vehicle.Mass}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return fmt.Errorf("vehicle: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fmt.Errorf("vehicle: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsStateComponent.Kind(), &component.PhysicsState{}); err != nil {
		return fmt.Errorf("vehicle: add physics state: %w", err)
	}
	if err := ecs.Add(w, e, component.VehicleTagComponent.Kind(), &component.VehicleTag{}); err != nil {
		return fmt.Errorf("vehicle: add tag: %w", err)
	}
	return nil
}
