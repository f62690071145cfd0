// Package sim owns one simulation session: the world, the integrator, the
// shared per-session state and the fixed-step pipeline that drives them.
package sim

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/ecs/entity"
	"github.com/milk9111/roadrush/ecs/system"
	"github.com/milk9111/roadrush/input"
	"github.com/milk9111/roadrush/metrics"
	"github.com/milk9111/roadrush/physics"
	"github.com/milk9111/roadrush/tuning"
	"go.uber.org/zap"
)

// DefaultDT is the fixed tick length in seconds.
const DefaultDT = 1.0 / 60

var (
	ErrVehicleExists  = errors.New("sim: vehicle already spawned")
	ErrNoVehicle      = errors.New("sim: no vehicle")
	ErrUnknownKind    = errors.New("sim: unknown pedestrian kind")
	ErrUnknownSurface = errors.New("sim: unknown surface kind")
	ErrNotZone        = errors.New("sim: entity is not a surface zone")
)

// Options configures a session. Tuning is required; everything else has a
// usable default.
type Options struct {
	Tuning  *tuning.Tuning
	Sampler input.Sampler
	Scaler  system.Scaler
	Fader   system.Fader
	Logger  *zap.Logger
	Metrics *metrics.Recorder
	Physics physics.Config
	Seed    uint64
	DT      float64

	// DisableSpawner turns off the built-in pedestrian spawner; pedestrians
	// then only enter through SpawnPedestrian.
	DisableSpawner bool
}

type HitHandler func(component.HitEvent)

type RemovalHandler func(component.PedestrianRemoved)

// Sim is a single simulation session. It is not safe for concurrent use.
type Sim struct {
	id      string
	world   *ecs.World
	space   *physics.Space
	tuning  *tuning.Tuning
	logger  *zap.Logger
	metrics *metrics.Recorder

	memory   *system.SlidingMemory
	tracker  *system.RagdollTracker
	detector *system.CollisionDetector
	impact   *system.ImpactSystem
	reaper   *system.RagdollReaperSystem
	despawn  *system.DespawnSystem
	spawner  *system.SpawnSystem

	scheduler *ecs.Scheduler
	vehicle   ecs.Entity

	onHit     []HitHandler
	onRemoved []RemovalHandler
}

// New builds a session. It fails when any required tuning section is
// missing or invalid.
func New(opts Options) (*Sim, error) {
	if err := opts.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if opts.DT <= 0 {
		opts.DT = DefaultDT
	}
	if opts.Physics == (physics.Config{}) {
		opts.Physics = physics.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	id := uuid.NewString()
	s := &Sim{
		id:      id,
		world:   ecs.NewWorld(),
		space:   physics.NewSpace(opts.Physics),
		tuning:  opts.Tuning,
		logger:  opts.Logger.With(zap.String("session", id)),
		metrics: opts.Metrics,
		memory:  system.NewSlidingMemory(),
		tracker: system.NewRagdollTracker(),
	}
	s.world.Clock().DT = opts.DT

	s.world.OnDestroy(s.space.Remove)
	s.world.OnDestroy(s.memory.Release)
	s.world.OnDestroy(func(e ecs.Entity) {
		if s.tracker.Remove(e) {
			s.metrics.ActiveRagdolls(s.tracker.Len())
		}
	})

	s.detector = system.NewCollisionDetector(s.world, s.logger, s.metrics)
	s.space.OnContact(func(c physics.Contact) { s.detector.OnContact(c) })

	rag := *opts.Tuning.Ragdoll
	s.impact = system.NewImpactSystem(s.space, s.tracker, common.NewRand(common.Hash(opts.Seed, 1)), rag, s.logger, s.metrics)
	s.reaper = system.NewRagdollReaperSystem(opts.Fader, rag.FadeStartDelay, s.tracker, s.logger, s.metrics)
	s.despawn = system.NewDespawnSystem(rag.DespawnBehind)
	if !opts.DisableSpawner {
		s.spawner = system.NewSpawnSystem(s.space, common.NewRand(common.Hash(opts.Seed, 2)), *opts.Tuning.Spawn, s.logger, s.metrics)
	}

	s.scheduler = ecs.NewScheduler(
		system.NewScalingSystem(opts.Scaler, s.logger),
		system.NewInputSystem(opts.Sampler),
		system.NewSurfaceZoneSystem(s.space, s.logger),
		system.NewVelocitySystem(),
		system.NewSurfaceSystem(s.memory),
		system.NewConstraintSystem(),
		system.NewBodyApplySystem(s.space, s.logger, s.metrics),
		system.NewPhysicsSystem(s.space),
		system.NewPositionSyncSystem(s.space, s.logger, s.metrics),
		system.NewStateTrackerSystem(),
		s.impact,
		s.reaper,
		s.despawn,
	)
	if s.spawner != nil {
		s.scheduler.Add(s.spawner)
	}
	s.scheduler.Add(system.NewLocomotionSystem(s.space, s.logger, s.metrics))

	s.logger.Info("simulation created",
		zap.Float64("dt", opts.DT),
		zap.Uint64("seed", opts.Seed),
		zap.Bool("spawner", s.spawner != nil),
	)
	return s, nil
}

// Step runs one fixed tick, then hands the tick's events to subscribers.
func (s *Sim) Step() {
	s.scheduler.Update(s.world)
	s.dispatch()
	s.world.Clock().Advance()
}

func (s *Sim) dispatch() {
	for _, evt := range s.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventHit:
			hit, ok := evt.Data.(component.HitEvent)
			if !ok {
				continue
			}
			for _, fn := range s.onHit {
				fn(hit)
			}
		case ecs.EventPedestrianRemoved:
			removed, ok := evt.Data.(component.PedestrianRemoved)
			if !ok {
				continue
			}
			for _, fn := range s.onRemoved {
				fn(removed)
			}
		}
	}
}

// OnHit subscribes fn to hit events. Handlers run at the end of the tick
// the hit happened in.
func (s *Sim) OnHit(fn HitHandler) {
	if fn != nil {
		s.onHit = append(s.onHit, fn)
	}
}

// OnPedestrianRemoved subscribes fn to pedestrian removals.
func (s *Sim) OnPedestrianRemoved(fn RemovalHandler) {
	if fn != nil {
		s.onRemoved = append(s.onRemoved, fn)
	}
}

// SpawnVehicle creates the session's vehicle at pos.
func (s *Sim) SpawnVehicle(pos mgl64.Vec3) (ecs.Entity, error) {
	if ecs.IsAlive(s.world, s.vehicle) {
		return 0, ErrVehicleExists
	}
	e, err := entity.NewVehicle(s.world, s.space, s.tuning.Movement, pos)
	if err != nil {
		return 0, fmt.Errorf("sim: spawn vehicle: %w", err)
	}
	s.vehicle = e
	s.logger.Debug("vehicle spawned", zap.Stringer("entity", e))
	return e, nil
}

// DestroyVehicle removes the vehicle and releases its per-entity state.
func (s *Sim) DestroyVehicle() bool {
	if !ecs.DestroyEntity(s.world, s.vehicle) {
		return false
	}
	s.vehicle = 0
	return true
}

// SpawnPedestrian places a walking pedestrian of a tuned kind at pos.
// direction is the sign of its lateral walk.
func (s *Sim) SpawnPedestrian(kind component.PedestrianKind, pos mgl64.Vec3, direction float64) (ecs.Entity, error) {
	spec, ok := s.tuning.Spawn.Kind(kind)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	speed := spec.WalkSpeed
	if speed <= 0 {
		speed = s.tuning.Spawn.WalkSpeed
	}
	e, err := entity.NewPedestrian(s.world, s.space, entity.PedestrianSpec{
		Kind:      kind,
		Reward:    spec.Reward,
		Mass:      spec.Mass,
		Radius:    s.tuning.Spawn.Radius,
		WalkSpeed: speed,
		Direction: direction,
	}, pos)
	if err != nil {
		return 0, fmt.Errorf("sim: spawn pedestrian: %w", err)
	}
	return e, nil
}

// AddSurfaceZone places a trigger volume whose multipliers come from the
// surface table.
func (s *Sim) AddSurfaceZone(kind component.SurfaceKind, minX, minZ, maxX, maxZ float64) (ecs.Entity, error) {
	parsed, ok := component.ParseSurfaceKind(string(kind))
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSurface, kind)
	}
	mod := s.tuning.Surfaces.Modifier(parsed)
	e, err := entity.NewSurfaceZone(s.world, s.space, component.SurfaceZone{
		Kind:     parsed,
		Friction: mod.Friction,
		Drag:     mod.Drag,
		MinX:     minX,
		MaxX:     maxX,
		MinZ:     minZ,
		MaxZ:     maxZ,
	})
	if err != nil {
		return 0, fmt.Errorf("sim: add surface zone: %w", err)
	}
	return e, nil
}

// RemoveSurfaceZone deletes a zone. A vehicle inside it returns to normal
// road on the next tick.
func (s *Sim) RemoveSurfaceZone(e ecs.Entity) error {
	if !ecs.Has(s.world, e, component.SurfaceZoneComponent.Kind()) {
		return ErrNotZone
	}
	ecs.DestroyEntity(s.world, e)
	return nil
}

// ApplyTuning swaps in reloaded tuning between ticks. Surface, ragdoll and
// spawn values apply immediately, including to zones already placed. Vehicle
// body dimensions only affect vehicles spawned afterwards.
func (s *Sim) ApplyTuning(t *tuning.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("sim: apply tuning: %w", err)
	}
	s.tuning = t

	s.impact.SetTuning(*t.Ragdoll)
	s.reaper.SetFadeStart(t.Ragdoll.FadeStartDelay)
	s.despawn.SetDistance(t.Ragdoll.DespawnBehind)
	if s.spawner != nil {
		s.spawner.SetTuning(*t.Spawn)
	}

	ecs.ForEach(s.world, component.SurfaceZoneComponent.Kind(), func(_ ecs.Entity, zone *component.SurfaceZone) {
		mod := t.Surfaces.Modifier(zone.Kind)
		zone.Friction, zone.Drag = mod.Friction, mod.Drag
	})
	ecs.ForEach(s.world, component.SurfaceModifierComponent.Kind(), func(_ ecs.Entity, mod *component.SurfaceModifier) {
		fresh := t.Surfaces.Modifier(mod.Kind)
		mod.Friction, mod.Drag = fresh.Friction, fresh.Drag
	})

	if e, ok := s.Vehicle(); ok {
		s.applyMovement(e, t.Movement)
	}
	s.logger.Info("tuning applied")
	return nil
}

func (s *Sim) applyMovement(e ecs.Entity, m *tuning.MovementSpec) {
	if accel, ok := ecs.Get(s.world, e, component.AccelProfileComponent.Kind()); ok {
		*accel = m.AccelProfile()
	}
	if limits, ok := ecs.Get(s.world, e, component.SpeedConstraintsComponent.Kind()); ok {
		*limits = m.SpeedConstraints()
	}
	if target, ok := ecs.Get(s.world, e, component.TargetSpeedComponent.Kind()); ok {
		target.Forward = m.TargetSpeed
	}
	if sc, ok := ecs.Get(s.world, e, component.ScalingComponent.Kind()); ok {
		sc.Base = m.Envelope()
	}
	if drag, ok := ecs.Get(s.world, e, component.DragStateComponent.Kind()); ok {
		drag.Base = m.Drag.Base
	}
}

// TriggerLaunchBoost hands the vehicle's velocity to the integrator for
// duration seconds, starting from velocity.
func (s *Sim) TriggerLaunchBoost(velocity mgl64.Vec3, duration float64) error {
	body, ok := s.space.Body(s.vehicle)
	if !ok || !ecs.IsAlive(s.world, s.vehicle) {
		return ErrNoVehicle
	}
	body.SetVelocity(velocity)
	if vel, ok := ecs.Get(s.world, s.vehicle, component.VelocityComponent.Kind()); ok {
		vel.V = velocity
	}
	return ecs.Add(s.world, s.vehicle, component.LaunchBoostComponent.Kind(), &component.LaunchBoost{
		Start:    s.world.Clock().Now,
		Duration: duration,
	})
}

func (s *Sim) World() *ecs.World {
	return s.world
}

func (s *Sim) Space() *physics.Space {
	return s.space
}

func (s *Sim) SessionID() string {
	return s.id
}

func (s *Sim) Now() float64 {
	return s.world.Clock().Now
}

func (s *Sim) Tuning() *tuning.Tuning {
	return s.tuning
}

func (s *Sim) Tracker() *system.RagdollTracker {
	return s.tracker
}

func (s *Sim) SlidingMemory() *system.SlidingMemory {
	return s.memory
}

// Vehicle returns the live vehicle entity.
func (s *Sim) Vehicle() (ecs.Entity, bool) {
	if !ecs.IsAlive(s.world, s.vehicle) {
		return 0, false
	}
	return s.vehicle, true
}

// State returns the vehicle's feedback record.
func (s *Sim) State() (component.PhysicsState, bool) {
	st, ok := ecs.Get(s.world, s.vehicle, component.PhysicsStateComponent.Kind())
	if !ok {
		return component.PhysicsState{}, false
	}
	return *st, true
}
