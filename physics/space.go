// Package physics wraps a Chipmunk2D space as the rigid-body integrator for
// the road. Chipmunk simulates the ground plane; a ballistic vertical axis is
// layered on top so bodies can be launched and fall back to the road.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadrush/ecs"
)

const (
	collisionTypeVehicle cp.CollisionType = iota + 1
	collisionTypePedestrian
	collisionTypeZone
)

var (
	ErrBodyExists   = errors.New("physics: body already exists")
	ErrInvalidShape = errors.New("physics: invalid shape")
)

// Config tunes the integrator.
type Config struct {
	// Gravity pulls the vertical axis down, in units/s².
	Gravity float64
	// GroundDamping is the fraction of planar velocity a free body keeps per
	// second while it slides on the road.
	GroundDamping float64
}

func DefaultConfig() Config {
	return Config{Gravity: 9.81, GroundDamping: 0.25}
}

// Contact is one vehicle/pedestrian touch reported by the integrator.
// Normal points from the vehicle toward the pedestrian.
type Contact struct {
	Vehicle       ecs.Entity
	Pedestrian    ecs.Entity
	Point         mgl64.Vec3
	Normal        mgl64.Vec3
	RelativeSpeed float64
}

// ZoneTransition records the vehicle entering or leaving a surface zone.
type ZoneTransition struct {
	Vehicle ecs.Entity
	Zone    ecs.Entity
	Entered bool
}

type Space struct {
	cfg   Config
	space *cp.Space

	bodies map[ecs.Entity]*Body
	shapes map[*cp.Shape]*Body

	onContact func(Contact)
	zones     []ZoneTransition

	stepping bool
	removals []ecs.Entity
}

func NewSpace(cfg Config) *Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	s := &Space{
		cfg:    cfg,
		space:  space,
		bodies: make(map[ecs.Entity]*Body),
		shapes: make(map[*cp.Shape]*Body),
	}
	s.setupHandlers()
	return s
}

// OnContact sets the callback run for every vehicle/pedestrian contact. It
// runs inside Step and may fire several times per tick for the same pair.
func (s *Space) OnContact(fn func(Contact)) {
	s.onContact = fn
}

func (s *Space) setupHandlers() {
	pedHandler := s.space.NewCollisionHandler(collisionTypeVehicle, collisionTypePedestrian)
	pedHandler.UserData = s
	pedHandler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if sp, ok := userData.(*Space); ok {
			sp.dispatchContact(arb)
		}
		return true
	}
	pedHandler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if sp, ok := userData.(*Space); ok {
			sp.dispatchContact(arb)
		}
		return true
	}

	zoneHandler := s.space.NewCollisionHandler(collisionTypeVehicle, collisionTypeZone)
	zoneHandler.UserData = s
	zoneHandler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if sp, ok := userData.(*Space); ok {
			sp.recordZone(arb, true)
		}
		return true
	}
	zoneHandler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		if sp, ok := userData.(*Space); ok {
			sp.recordZone(arb, false)
		}
	}
}

// pair resolves the arbiter's shapes to (vehicle, other) bodies.
func (s *Space) pair(arb *cp.Arbiter) (vehicle, other *Body, flipped bool) {
	shapeA, shapeB := arb.Shapes()
	a, b := s.shapes[shapeA], s.shapes[shapeB]
	if a == nil || b == nil {
		return nil, nil, false
	}
	if a.kind == kindVehicle {
		return a, b, false
	}
	if b.kind == kindVehicle {
		return b, a, true
	}
	return nil, nil, false
}

func (s *Space) dispatchContact(arb *cp.Arbiter) {
	vehicle, ped, flipped := s.pair(arb)
	if vehicle == nil || ped.kind != kindPedestrian || s.onContact == nil {
		return
	}

	set := arb.ContactPointSet()
	n := set.Normal
	if flipped {
		n = n.Neg()
	}
	point := ped.body.Position()
	if set.Count > 0 {
		pa, pb := set.Points[0].PointA, set.Points[0].PointB
		point = cp.Vector{X: (pa.X + pb.X) / 2, Y: (pa.Y + pb.Y) / 2}
	}

	rel := vehicle.Velocity().Sub(ped.Velocity())
	s.onContact(Contact{
		Vehicle:       vehicle.entity,
		Pedestrian:    ped.entity,
		Point:         mgl64.Vec3{point.X, (vehicle.y + ped.y) / 2, point.Y},
		Normal:        mgl64.Vec3{n.X, 0, n.Y},
		RelativeSpeed: rel.Len(),
	})
}

func (s *Space) recordZone(arb *cp.Arbiter, entered bool) {
	vehicle, zone, _ := s.pair(arb)
	if vehicle == nil || zone.kind != kindZone {
		return
	}
	s.zones = append(s.zones, ZoneTransition{Vehicle: vehicle.entity, Zone: zone.entity, Entered: entered})
}

// DrainZoneTransitions returns zone enters/exits recorded since the last call,
// in the order the integrator reported them.
func (s *Space) DrainZoneTransitions() []ZoneTransition {
	out := s.zones
	s.zones = nil
	return out
}

// AddVehicle creates the player's body: a solid box that never rotates.
func (s *Space) AddVehicle(e ecs.Entity, pos mgl64.Vec3, width, length, mass float64) (*Body, error) {
	if _, ok := s.bodies[e]; ok {
		return nil, fmt.Errorf("physics: add vehicle %s: %w", e, ErrBodyExists)
	}
	if width <= 0 || length <= 0 || mass <= 0 {
		return nil, fmt.Errorf("physics: add vehicle %s: %w", e, ErrInvalidShape)
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	shape := cp.NewBox(body, width, length, 0)
	shape.SetFriction(0.7)
	shape.SetCollisionType(collisionTypeVehicle)

	s.space.AddBody(body)
	s.space.AddShape(shape)
	return s.track(&Body{entity: e, kind: kindVehicle, body: body, shape: shape, mass: mass, y: math.Max(0, pos.Y())}), nil
}

// AddPedestrian creates a walking pedestrian: a kinematic sensor circle that
// reports contacts without pushing the vehicle.
func (s *Space) AddPedestrian(e ecs.Entity, pos mgl64.Vec3, radius, mass float64) (*Body, error) {
	if _, ok := s.bodies[e]; ok {
		return nil, fmt.Errorf("physics: add pedestrian %s: %w", e, ErrBodyExists)
	}
	if radius <= 0 || mass <= 0 {
		return nil, fmt.Errorf("physics: add pedestrian %s: %w", e, ErrInvalidShape)
	}
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0.5)
	shape.SetElasticity(0.2)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypePedestrian)

	s.space.AddBody(body)
	s.space.AddShape(shape)
	return s.track(&Body{entity: e, kind: kindPedestrian, body: body, shape: shape, mass: mass, radius: radius}), nil
}

// AddZone creates a static sensor box on the road plane.
func (s *Space) AddZone(e ecs.Entity, minX, minZ, maxX, maxZ float64) (*Body, error) {
	if _, ok := s.bodies[e]; ok {
		return nil, fmt.Errorf("physics: add zone %s: %w", e, ErrBodyExists)
	}
	if maxX <= minX || maxZ <= minZ {
		return nil, fmt.Errorf("physics: add zone %s: %w", e, ErrInvalidShape)
	}
	shape := cp.NewBox2(s.space.StaticBody, cp.BB{L: minX, B: minZ, R: maxX, T: maxZ}, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeZone)
	s.space.AddShape(shape)
	return s.track(&Body{entity: e, kind: kindZone, body: s.space.StaticBody, shape: shape}), nil
}

func (s *Space) track(b *Body) *Body {
	b.space = s
	s.bodies[b.entity] = b
	s.shapes[b.shape] = b
	return b
}

// Body returns the handle for e, if the integrator has one.
func (s *Space) Body(e ecs.Entity) (*Body, bool) {
	if s == nil {
		return nil, false
	}
	b, ok := s.bodies[e]
	return b, ok
}

// Len returns the number of tracked bodies, zones included.
func (s *Space) Len() int {
	return len(s.bodies)
}

// Remove drops the body for e. Removals requested from inside a contact
// callback are deferred until the step completes.
func (s *Space) Remove(e ecs.Entity) {
	if s == nil {
		return
	}
	if s.stepping {
		s.removals = append(s.removals, e)
		return
	}
	b, ok := s.bodies[e]
	if !ok {
		return
	}
	s.space.RemoveShape(b.shape)
	delete(s.shapes, b.shape)
	if b.kind != kindZone {
		s.space.RemoveBody(b.body)
	}
	delete(s.bodies, e)
}

// Step advances the integrator by dt seconds.
func (s *Space) Step(dt float64) {
	if s == nil || dt <= 0 {
		return
	}
	s.stepping = true
	s.space.Step(dt)
	s.stepping = false

	for _, b := range s.bodies {
		b.integrateVertical(s.cfg.Gravity, dt)
	}

	pending := s.removals
	s.removals = nil
	for _, e := range pending {
		s.Remove(e)
	}
}
