package system

import (
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/physics"
	"go.uber.org/zap"
)

// SurfaceZoneSystem applies the zone enter/exit transitions the integrator
// recorded since the last tick. The most recently entered zone wins; an exit
// only restores normal road when it names the zone currently in effect.
type SurfaceZoneSystem struct {
	space  *physics.Space
	logger *zap.Logger
}

func NewSurfaceZoneSystem(space *physics.Space, logger *zap.Logger) *SurfaceZoneSystem {
	return &SurfaceZoneSystem{space: space, logger: nopIfNil(logger)}
}

func (s *SurfaceZoneSystem) Update(w *ecs.World) {
	if s == nil || s.space == nil || w == nil {
		return
	}
	for _, t := range s.space.DrainZoneTransitions() {
		ApplyZoneTransition(w, t)
	}
}

// ApplyZoneTransition updates the vehicle's surface modifier for one
// transition and reports whether it changed.
func ApplyZoneTransition(w *ecs.World, t physics.ZoneTransition) bool {
	mod, ok := ecs.Get(w, t.Vehicle, component.SurfaceModifierComponent.Kind())
	if !ok {
		return false
	}

	if !t.Entered {
		if mod.Zone != uint64(t.Zone) {
			return false
		}
		*mod = component.NormalSurface()
		return true
	}

	zone, ok := ecs.Get(w, t.Zone, component.SurfaceZoneComponent.Kind())
	if !ok {
		return false
	}
	*mod = component.SurfaceModifier{
		Kind:     zone.Kind,
		Friction: zone.Friction,
		Drag:     zone.Drag,
		Zone:     uint64(t.Zone),
	}
	return true
}
