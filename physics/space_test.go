package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

func newTestSpace(t *testing.T) (*Space, *ecs.World) {
	t.Helper()
	return NewSpace(DefaultConfig()), ecs.NewWorld()
}

func TestSpaceReportsVehiclePedestrianContact(t *testing.T) {
	s, w := newTestSpace(t)
	car := ecs.CreateEntity(w)
	ped := ecs.CreateEntity(w)

	vb, err := s.AddVehicle(car, mgl64.Vec3{0, 0, 0}, 1.8, 4, 1200)
	require.NoError(t, err)
	_, err = s.AddPedestrian(ped, mgl64.Vec3{0, 0, 2.2}, 0.4, 70)
	require.NoError(t, err)
	vb.SetVelocity(mgl64.Vec3{0, 0, 10})

	var contacts []Contact
	s.OnContact(func(c Contact) { contacts = append(contacts, c) })
	s.Step(dt)

	require.NotEmpty(t, contacts)
	c := contacts[0]
	assert.Equal(t, car, c.Vehicle)
	assert.Equal(t, ped, c.Pedestrian)
	assert.InDelta(t, 10, c.RelativeSpeed, 1e-6)
	assert.Greater(t, c.Normal.Z(), 0.0, "normal should point from vehicle toward pedestrian")

	// a walking pedestrian is a sensor, the vehicle keeps its speed
	assert.InDelta(t, 10, vb.Velocity().Z(), 1e-6)
}

func TestSpaceDuplicateBodyRejected(t *testing.T) {
	s, w := newTestSpace(t)
	e := ecs.CreateEntity(w)
	_, err := s.AddPedestrian(e, mgl64.Vec3{}, 0.4, 70)
	require.NoError(t, err)
	_, err = s.AddPedestrian(e, mgl64.Vec3{}, 0.4, 70)
	assert.ErrorIs(t, err, ErrBodyExists)

	_, err = s.AddVehicle(ecs.CreateEntity(w), mgl64.Vec3{}, 0, 4, 1)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestFreeBodyFlightAndLanding(t *testing.T) {
	s, w := newTestSpace(t)
	ped := ecs.CreateEntity(w)
	b, err := s.AddPedestrian(ped, mgl64.Vec3{0, 0, 0}, 0.4, 70)
	require.NoError(t, err)

	// kinematic pedestrians ignore impulses
	b.ApplyImpulse(mgl64.Vec3{0, 700, 700})
	assert.Equal(t, mgl64.Vec3{}, b.Velocity())

	b.MakeFree()
	require.True(t, b.Free())
	b.ApplyImpulse(mgl64.Vec3{0, 350, 700})
	b.ApplyAngularImpulse(20)

	v := b.Velocity()
	assert.InDelta(t, 10, v.Z(), 1e-6)
	assert.InDelta(t, 5, v.Y(), 1e-6)
	assert.NotZero(t, b.AngularVelocity())

	peak := 0.0
	for i := 0; i < 180; i++ {
		s.Step(dt)
		if y := b.Position().Y(); y > peak {
			peak = y
		}
	}
	assert.Greater(t, peak, 1.0)
	assert.True(t, b.Grounded())
	assert.Greater(t, b.Position().Z(), 3.0)
	// ground damping bleeds planar speed once landed
	assert.Less(t, b.Velocity().Z(), 10.0)
}

func TestZoneTransitions(t *testing.T) {
	s, w := newTestSpace(t)
	car := ecs.CreateEntity(w)
	zone := ecs.CreateEntity(w)

	vb, err := s.AddVehicle(car, mgl64.Vec3{0, 0, 0}, 1.8, 4, 1200)
	require.NoError(t, err)
	_, err = s.AddZone(zone, -5, -5, 5, 5)
	require.NoError(t, err)

	s.Step(dt)
	got := s.DrainZoneTransitions()
	require.Len(t, got, 1)
	assert.Equal(t, ZoneTransition{Vehicle: car, Zone: zone, Entered: true}, got[0])
	assert.Empty(t, s.DrainZoneTransitions())

	vb.SetPosition(mgl64.Vec3{0, 0, 50})
	s.Step(dt)
	s.Step(dt)
	got = s.DrainZoneTransitions()
	require.Len(t, got, 1)
	assert.False(t, got[0].Entered)
}

func TestRemoveDuringContactIsDeferred(t *testing.T) {
	s, w := newTestSpace(t)
	car := ecs.CreateEntity(w)
	ped := ecs.CreateEntity(w)
	_, err := s.AddVehicle(car, mgl64.Vec3{}, 1.8, 4, 1200)
	require.NoError(t, err)
	_, err = s.AddPedestrian(ped, mgl64.Vec3{0, 0, 1}, 0.4, 70)
	require.NoError(t, err)

	s.OnContact(func(c Contact) { s.Remove(c.Pedestrian) })
	s.Step(dt)

	_, ok := s.Body(ped)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}
