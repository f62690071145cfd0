package entity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/physics"
)

var ErrEmptyPedestrianKind = errors.New("pedestrian: empty kind")

// PedestrianSpec describes one pedestrian to spawn.
type PedestrianSpec struct {
	Kind      component.PedestrianKind
	Reward    string
	Mass      float64
	Radius    float64
	WalkSpeed float64
	// Direction is +1 to walk toward +X, -1 toward -X.
	Direction float64
}

// NewPedestrian creates a walking pedestrian at pos.
func NewPedestrian(w *ecs.World, space *physics.Space, spec PedestrianSpec, pos mgl64.Vec3) (ecs.Entity, error) {
	if spec.Kind == "" {
		return 0, ErrEmptyPedestrianKind
	}

	e := ecs.CreateEntity(w)
	if err := addPedestrianComponents(w, e, spec, pos); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}

	if _, err := space.AddPedestrian(e, pos, spec.Radius, spec.Mass); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("pedestrian: add body: %w", err)
	}
	return e, nil
}

func addPedestrianComponents(w *ecs.World, e ecs.Entity, spec PedestrianSpec, pos mgl64.Vec3) error {
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return fmt.Errorf("pedestrian: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PedestrianComponent.Kind(), &component.Pedestrian{Kind: spec.Kind, Reward: spec.Reward}); err != nil {
		return fmt.Errorf("pedestrian: add pedestrian: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: spec.Radius, Mass: spec.Mass}); err != nil {
		return fmt.Errorf("pedestrian: add physics body: %w", err)
	}

	dir := spec.Direction
	if dir == 0 {
		dir = 1
	}
	if spec.WalkSpeed > 0 {
		loco := &component.Locomotion{Speed: spec.WalkSpeed, Direction: dir}
		if err := ecs.Add(w, e, component.LocomotionComponent.Kind(), loco); err != nil {
			return fmt.Errorf("pedestrian: add locomotion: %w", err)
		}
	}
	return nil
}
