package system

import (
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/metrics"
	"github.com/milk9111/roadrush/physics"
	"go.uber.org/zap"
)

// Stage names used for logging and skipped-body metrics.
const (
	StageBodyApply    = "body_apply"
	StagePositionSync = "position_sync"
	StageImpact       = "impact"
	StageLocomotion   = "locomotion"
)

// bodyFor looks up the integrator body for e. A missing body is logged and
// counted; callers skip the entity for this tick.
func bodyFor(space *physics.Space, e ecs.Entity, stage string, logger *zap.Logger, rec *metrics.Recorder) (*physics.Body, bool) {
	body, ok := space.Body(e)
	if ok {
		return body, true
	}
	if logger != nil {
		logger.Debug("entity has no physics body, skipping", zap.String("stage", stage), zap.Stringer("entity", e))
	}
	rec.BodySkipped(stage)
	return nil, false
}

// vehicle returns the tagged vehicle entity, if one is alive.
func vehicle(w *ecs.World) (ecs.Entity, bool) {
	return ecs.First(w, component.VehicleTagComponent.Kind())
}

// removePedestrian announces and destroys a pedestrian.
func removePedestrian(w *ecs.World, e ecs.Entity, reason component.RemovalReason) bool {
	ped, ok := ecs.Get(w, e, component.PedestrianComponent.Kind())
	if !ok {
		return ecs.DestroyEntity(w, e)
	}
	evt := component.PedestrianRemoved{Pedestrian: uint64(e), Kind: ped.Kind, Reason: reason}
	if !ecs.DestroyEntity(w, e) {
		return false
	}
	w.Events().Push(ecs.Event{Type: ecs.EventPedestrianRemoved, Data: evt})
	return true
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
