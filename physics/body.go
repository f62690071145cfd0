package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadrush/ecs"
)

type bodyKind int

const (
	kindVehicle bodyKind = iota
	kindPedestrian
	kindZone
)

// Body is the integrator handle for one entity. Planar motion (lateral X,
// forward Z) is simulated by Chipmunk; the vertical axis is integrated here.
type Body struct {
	entity ecs.Entity
	kind   bodyKind
	body   *cp.Body
	shape  *cp.Shape
	space  *Space

	mass   float64
	radius float64
	y      float64
	vy     float64
	free   bool
}

func (b *Body) Entity() ecs.Entity {
	return b.entity
}

// Position returns the authoritative position.
func (b *Body) Position() mgl64.Vec3 {
	p := b.body.Position()
	if b.kind == kindZone {
		bb := b.shape.BB()
		p = cp.Vector{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
	}
	return mgl64.Vec3{p.X, b.y, p.Y}
}

func (b *Body) SetPosition(p mgl64.Vec3) {
	if b.kind == kindZone {
		return
	}
	b.body.SetPosition(cp.Vector{X: p.X(), Y: p.Z()})
	b.y = math.Max(0, p.Y())
}

func (b *Body) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, b.vy, v.Y}
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	if b.kind == kindZone {
		return
	}
	b.body.SetVelocity(v.X(), v.Z())
	b.vy = v.Y()
}

func (b *Body) Mass() float64 {
	return b.mass
}

func (b *Body) Angle() float64 {
	return b.body.Angle()
}

func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

// Grounded reports whether the body rests on the road surface.
func (b *Body) Grounded() bool {
	return b.y <= 0
}

// Free reports whether the body has been released to ungoverned dynamics.
func (b *Body) Free() bool {
	return b.free
}

// ApplyImpulse changes momentum by j at the body's center. Kinematic and
// static bodies ignore impulses.
func (b *Body) ApplyImpulse(j mgl64.Vec3) {
	if b.kind == kindZone || b.body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: j.X(), Y: j.Z()}, b.body.Position())
	if b.mass > 0 {
		b.vy += j.Y() / b.mass
	}
}

// ApplyAngularImpulse spins the body about the vertical axis.
func (b *Body) ApplyAngularImpulse(t float64) {
	if b.kind == kindZone || b.body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	moment := b.body.Moment()
	if moment <= 0 || math.IsInf(moment, 1) {
		return
	}
	b.body.SetAngularVelocity(b.body.AngularVelocity() + t/moment)
}

// MakeFree switches a walking pedestrian from a kinematic sensor to a solid
// dynamic body so impulses and contacts move it.
func (b *Body) MakeFree() {
	if b.free || b.kind != kindPedestrian {
		return
	}
	mass := b.mass
	if mass <= 0 {
		mass = 1
	}
	b.body.SetType(cp.BODY_DYNAMIC)
	b.body.SetMass(mass)
	b.body.SetMoment(cp.MomentForCircle(mass, 0, b.radius, cp.Vector{}))
	b.shape.SetSensor(false)

	damping := b.space.cfg.GroundDamping
	b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, d float64, dt float64) {
		if b.Grounded() {
			d = math.Pow(damping, dt)
		}
		cp.BodyUpdateVelocity(body, gravity, d, dt)
	})
	b.free = true
}

func (b *Body) integrateVertical(gravity, dt float64) {
	switch {
	case b.kind == kindZone:
		return
	case b.kind == kindPedestrian && !b.free:
		b.y, b.vy = 0, 0
		return
	}
	b.vy -= gravity * dt
	b.y += b.vy * dt
	if b.y <= 0 {
		b.y = 0
		if b.vy < 0 {
			b.vy = 0
		}
	}
}
