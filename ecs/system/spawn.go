package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/ecs/entity"
	"github.com/milk9111/roadrush/metrics"
	"github.com/milk9111/roadrush/physics"
	"github.com/milk9111/roadrush/tuning"
	"go.uber.org/zap"
)

// SpawnSystem places pedestrians on the road ahead of the vehicle at a
// fixed interval, picking kinds by weight from the seeded RNG.
type SpawnSystem struct {
	space   *physics.Space
	rng     *common.Rand
	cfg     tuning.SpawnSpec
	logger  *zap.Logger
	metrics *metrics.Recorder

	next float64
}

func NewSpawnSystem(space *physics.Space, rng *common.Rand, cfg tuning.SpawnSpec, logger *zap.Logger, rec *metrics.Recorder) *SpawnSystem {
	if rng == nil {
		rng = common.NewRand(1)
	}
	return &SpawnSystem{space: space, rng: rng, cfg: cfg, logger: nopIfNil(logger), metrics: rec}
}

func (s *SpawnSystem) SetTuning(cfg tuning.SpawnSpec) {
	s.cfg = cfg
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.cfg.Interval <= 0 {
		return
	}
	now := w.Clock().Now
	if now < s.next {
		return
	}
	s.next = now + s.cfg.Interval

	if s.cfg.MaxAlive > 0 && ecs.Count(w, component.PedestrianComponent.Kind()) >= s.cfg.MaxAlive {
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
	limits, ok := ecs.Get(w, v, component.SpeedConstraintsComponent.Kind())
	if !ok {
		return
	}

	kind, ok := PickKind(s.rng, s.cfg.Kinds)
	if !ok {
		return
	}
	speed := kind.WalkSpeed
	if speed <= 0 {
		speed = s.cfg.WalkSpeed
	}
	dir := 1.0
	if s.rng.Intn(2) == 0 {
		dir = -1
	}
	pos := mgl64.Vec3{
		s.rng.RangeF(limits.RoadMinX, limits.RoadMaxX),
		0,
		vt.Position.Z() + s.cfg.AheadDistance,
	}

	e, err := entity.NewPedestrian(w, s.space, entity.PedestrianSpec{
		Kind:      component.PedestrianKind(kind.Kind),
		Reward:    kind.Reward,
		Mass:      kind.Mass,
		Radius:    s.cfg.Radius,
		WalkSpeed: speed,
		Direction: dir,
	}, pos)
	if err != nil {
		s.logger.Warn("spawn pedestrian failed", zap.String("kind", kind.Kind), zap.Error(err))
		return
	}
	s.metrics.Spawned(kind.Kind)
	s.logger.Debug("pedestrian spawned", zap.Stringer("entity", e), zap.String("kind", kind.Kind))
}

// PickKind chooses a kind with probability proportional to its weight.
func PickKind(rng *common.Rand, kinds []tuning.PedestrianKindSpec) (tuning.PedestrianKindSpec, bool) {
	total := 0.0
	for _, k := range kinds {
		total += max(k.Weight, 0)
	}
	if total <= 0 {
		return tuning.PedestrianKindSpec{}, false
	}
	roll := rng.Float64() * total
	for _, k := range kinds {
		w := max(k.Weight, 0)
		if roll < w {
			return k, true
		}
		roll -= w
	}
	for i := len(kinds) - 1; i >= 0; i-- {
		if kinds[i].Weight > 0 {
			return kinds[i], true
		}
	}
	return tuning.PedestrianKindSpec{}, false
}
