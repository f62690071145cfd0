package system

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/metrics"
	"github.com/milk9111/roadrush/physics"
	"github.com/milk9111/roadrush/tuning"
	"go.uber.org/zap"
)

const (
	impactSpeedScale  = 5.0
	minImpactScale    = 0.5
	maxImpactScale    = 2.0
	stationarySpeed   = 0.1
	minDirectionSqLen = 1e-12
)

// ImpactSystem converts freshly hit pedestrians into ragdolls. Conversion
// happens once per pedestrian; when the active ragdoll count is at the cap
// the oldest ragdoll is destroyed first.
type ImpactSystem struct {
	space   *physics.Space
	tracker *RagdollTracker
	rng     *common.Rand
	cfg     tuning.RagdollSpec
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func NewImpactSystem(space *physics.Space, tracker *RagdollTracker, rng *common.Rand, cfg tuning.RagdollSpec, logger *zap.Logger, rec *metrics.Recorder) *ImpactSystem {
	if tracker == nil {
		tracker = NewRagdollTracker()
	}
	if rng == nil {
		rng = common.NewRand(1)
	}
	return &ImpactSystem{space: space, tracker: tracker, rng: rng, cfg: cfg, logger: nopIfNil(logger), metrics: rec}
}

// SetTuning replaces the ragdoll tuning used for later conversions.
func (s *ImpactSystem) SetTuning(cfg tuning.RagdollSpec) {
	s.cfg = cfg
}

func (s *ImpactSystem) Tracker() *RagdollTracker {
	return s.tracker
}

type pendingImpact struct {
	entity ecs.Entity
	hitAt  float64
}

func (s *ImpactSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var pending []pendingImpact
	ecs.ForEach(w, component.PedestrianComponent.Kind(), func(e ecs.Entity, ped *component.Pedestrian) {
		if !ped.Hit || ecs.Has(w, e, component.RagdollComponent.Kind()) {
			return
		}
		pending = append(pending, pendingImpact{entity: e, hitAt: ped.HitAt})
	})
	if len(pending) == 0 {
		return
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].hitAt < pending[j].hitAt })

	vehicleVel, vehiclePos := s.vehicleMotion(w)
	for _, p := range pending {
		if !ecs.IsAlive(w, p.entity) {
			continue
		}
		s.convert(w, p.entity, vehicleVel, vehiclePos)
	}
}

func (s *ImpactSystem) vehicleMotion(w *ecs.World) (vel, pos mgl64.Vec3) {
	e, ok := vehicle(w)
	if !ok {
		return vel, pos
	}
	if body, ok := s.space.Body(e); ok {
		return body.Velocity(), body.Position()
	}
	if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel = v.V
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = t.Position
	}
	return vel, pos
}

func (s *ImpactSystem) convert(w *ecs.World, e ecs.Entity, vehicleVel, vehiclePos mgl64.Vec3) {
	s.evictForRoom(w)

	now := w.Clock().Now
	ecs.Remove(w, e, component.LocomotionComponent.Kind())
	_ = ecs.Add(w, e, component.RagdollComponent.Kind(), &component.Ragdoll{
		HitTime:     now,
		DespawnTime: now + s.cfg.DespawnDelay,
	})
	s.tracker.Add(e, now)
	s.metrics.RagdollConverted()
	s.metrics.ActiveRagdolls(s.tracker.Len())

	body, ok := bodyFor(s.space, e, StageImpact, s.logger, s.metrics)
	if !ok {
		return
	}
	body.MakeFree()

	impulse := ImpactImpulse(vehicleVel, vehiclePos, body.Position(), s.cfg.BaseHitForce, s.cfg.UpForce)
	body.ApplyImpulse(impulse)
	body.ApplyAngularImpulse(s.rng.RangeF(-s.cfg.MaxTorque, s.cfg.MaxTorque))
}

func (s *ImpactSystem) evictForRoom(w *ecs.World) {
	limit := max(s.cfg.MaxActive, 1)
	for s.tracker.Len() >= limit {
		oldest, ok := s.tracker.Oldest()
		if !ok {
			return
		}
		s.tracker.Remove(oldest)
		if removePedestrian(w, oldest, component.RemovedEvicted) {
			s.metrics.RagdollEvicted()
			s.logger.Debug("ragdoll evicted", zap.Stringer("pedestrian", oldest))
		}
	}
}

// ImpactImpulse computes the launch impulse for a pedestrian. The planar
// direction follows the vehicle's travel, falling back to vehicle toward
// pedestrian when the vehicle is nearly stopped, then to straight ahead.
func ImpactImpulse(vehicleVel, vehiclePos, pedPos mgl64.Vec3, baseForce, upForce float64) mgl64.Vec3 {
	planar := mgl64.Vec3{vehicleVel.X(), 0, vehicleVel.Z()}
	speed := planar.Len()

	dir := planar
	if speed <= stationarySpeed {
		dir = mgl64.Vec3{pedPos.X() - vehiclePos.X(), 0, pedPos.Z() - vehiclePos.Z()}
	}
	if dir.LenSqr() <= minDirectionSqLen {
		dir = mgl64.Vec3{0, 0, 1}
	}
	dir = dir.Normalize()

	force := common.Clamp(speed/impactSpeedScale, minImpactScale, maxImpactScale) * baseForce
	impulse := dir.Mul(force)
	impulse[1] += upForce
	return impulse
}
