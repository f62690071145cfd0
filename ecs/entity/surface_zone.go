package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/physics"
)

// NewSurfaceZone creates a static surface trigger volume.
func NewSurfaceZone(w *ecs.World, space *physics.Space, zone component.SurfaceZone) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SurfaceZoneComponent.Kind(), &zone); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("surface zone: add zone: %w", err)
	}
	center := mgl64.Vec3{(zone.MinX + zone.MaxX) / 2, 0, (zone.MinZ + zone.MaxZ) / 2}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: center}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("surface zone: add transform: %w", err)
	}

	if _, err := space.AddZone(e, zone.MinX, zone.MinZ, zone.MaxX, zone.MaxZ); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("surface zone: add body: %w", err)
	}
	return e, nil
}
