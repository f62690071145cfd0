package system

import (
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/metrics"
	"github.com/milk9111/roadrush/physics"
	"go.uber.org/zap"
)

// CollisionDetector turns integrator contacts into hits. It is the only
// code that sets Pedestrian.Hit; repeated contacts for a pedestrian that is
// already hit are ignored.
type CollisionDetector struct {
	world   *ecs.World
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func NewCollisionDetector(w *ecs.World, logger *zap.Logger, rec *metrics.Recorder) *CollisionDetector {
	return &CollisionDetector{world: w, logger: nopIfNil(logger), metrics: rec}
}

// OnContact handles one contact report and returns whether it produced a
// new hit.
func (d *CollisionDetector) OnContact(c physics.Contact) bool {
	if d == nil || d.world == nil {
		return false
	}
	w := d.world
	if !ecs.Has(w, c.Vehicle, component.VehicleTagComponent.Kind()) {
		return false
	}
	ped, ok := ecs.Get(w, c.Pedestrian, component.PedestrianComponent.Kind())
	if !ok || ped.Hit {
		return false
	}

	now := w.Clock().Now
	ped.Hit = true
	ped.HitAt = now

	normal := c.Normal
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}
	w.Events().Push(ecs.Event{Type: ecs.EventHit, Data: component.HitEvent{
		PedestrianKind: ped.Kind,
		Pedestrian:     uint64(c.Pedestrian),
		Reward:         ped.Reward,
		ImpactForce:    c.RelativeSpeed,
		ImpactPoint:    c.Point,
		ImpactNormal:   normal,
		Time:           now,
	}})
	d.metrics.Hit(string(ped.Kind))
	d.logger.Debug("pedestrian hit",
		zap.Stringer("pedestrian", c.Pedestrian),
		zap.String("kind", string(ped.Kind)),
		zap.Float64("force", c.RelativeSpeed),
	)
	return true
}
