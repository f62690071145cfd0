package system

import (
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
)

// DespawnSystem removes pedestrians the vehicle has left far behind,
// walking or ragdolled.
type DespawnSystem struct {
	behind float64
}

func NewDespawnSystem(behind float64) *DespawnSystem {
	return &DespawnSystem{behind: behind}
}

func (s *DespawnSystem) SetDistance(behind float64) {
	s.behind = behind
}

func (s *DespawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.behind <= 0 {
		return
	}
	v, ok := vehicle(w)
	if !ok {
		return
	}
	vt, ok := ecs.Get(w, v, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cutoff := vt.Position.Z() - s.behind

	ecs.ForEach2(w, component.PedestrianComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Pedestrian, t *component.Transform) {
		if t.Position.Z() < cutoff {
			removePedestrian(w, e, component.RemovedBehind)
		}
	})
}
