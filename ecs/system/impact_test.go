package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitPedestrian(t *testing.T, r *testRig, e ecs.Entity) {
	t.Helper()
	ped := get(t, r.w, e, component.PedestrianComponent)
	ped.Hit = true
	ped.HitAt = r.w.Clock().Now
}

func TestImpactConvertsHitPedestrian(t *testing.T) {
	r := newRig(t)
	v := r.vehicle(t, mgl64.Vec3{})
	p := r.pedestrian(t, mgl64.Vec3{0, 0, 3})
	r.body(t, v).SetVelocity(mgl64.Vec3{0, 0, 10})
	r.w.Clock().Now = 1

	s := NewImpactSystem(r.space, r.tracker, common.NewRand(5), *r.tun.Ragdoll, nil, nil)
	s.Update(r.w)
	assert.Equal(t, 0, r.tracker.Len(), "unhit pedestrians stay walking")

	hitPedestrian(t, r, p)
	s.Update(r.w)

	rag := get(t, r.w, p, component.RagdollComponent)
	assert.Equal(t, component.Ragdoll{HitTime: 1, DespawnTime: 1 + r.tun.Ragdoll.DespawnDelay}, *rag)
	assert.False(t, ecs.Has(r.w, p, component.LocomotionComponent.Kind()))
	assert.Equal(t, []ecs.Entity{p}, r.tracker.Entities())

	body := r.body(t, p)
	assert.True(t, body.Free())
	vel := body.Velocity()
	assert.InDelta(t, 2*r.tun.Ragdoll.BaseHitForce/70, vel.Z(), 1e-6)
	assert.InDelta(t, r.tun.Ragdoll.UpForce/70, vel.Y(), 1e-6)
	assert.InDelta(t, 0, vel.X(), 1e-6)

	s.Update(r.w)
	assert.Equal(t, 1, r.tracker.Len(), "conversion happens once")
}

func TestImpactRagdollCapEvictsOldestFirst(t *testing.T) {
	r := newRig(t)
	r.vehicle(t, mgl64.Vec3{})
	cfg := *r.tun.Ragdoll
	cfg.MaxActive = 3
	s := NewImpactSystem(r.space, r.tracker, common.NewRand(5), cfg, nil, nil)

	peds := make([]ecs.Entity, 5)
	for i := range peds {
		peds[i] = r.pedestrian(t, mgl64.Vec3{float64(i) - 2, 0, 10})
	}
	for i, p := range peds {
		r.w.Clock().Now = float64(i) * 0.1
		hitPedestrian(t, r, p)
		s.Update(r.w)
	}

	assert.Equal(t, 3, r.tracker.Len())
	assert.Equal(t, peds[2:], r.tracker.Entities())
	assert.False(t, ecs.IsAlive(r.w, peds[0]))
	assert.False(t, ecs.IsAlive(r.w, peds[1]))
	assert.Equal(t, 3, ecs.Count(r.w, component.RagdollComponent.Kind()))

	removed := eventsOf(r.w, ecs.EventPedestrianRemoved)
	require.Len(t, removed, 2)
	for i, evt := range removed {
		data := evt.Data.(component.PedestrianRemoved)
		assert.Equal(t, uint64(peds[i]), data.Pedestrian)
		assert.Equal(t, component.RemovedEvicted, data.Reason)
	}
	_, ok := r.space.Body(peds[0])
	assert.False(t, ok, "evicted body leaves the integrator")
}

func TestImpactImpulse(t *testing.T) {
	cases := []struct {
		name       string
		vehicleVel mgl64.Vec3
		vehiclePos mgl64.Vec3
		pedPos     mgl64.Vec3
		want       mgl64.Vec3
	}{
		{"fast_vehicle_capped", mgl64.Vec3{0, 0, 20}, mgl64.Vec3{}, mgl64.Vec3{1, 0, 1}, mgl64.Vec3{0, 320, 1200}},
		{"normal_speed_scaled", mgl64.Vec3{0, 0, 7.5}, mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{0, 320, 900}},
		{"slow_vehicle_floor", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{0, 320, 300}},
		{"diagonal_travel", mgl64.Vec3{6, 0, 8}, mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{720, 320, 960}},
		{"stationary_uses_offset", mgl64.Vec3{}, mgl64.Vec3{1, 0, 1}, mgl64.Vec3{4, 0, 5}, mgl64.Vec3{180, 320, 240}},
		{"vertical_motion_ignored", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{}, mgl64.Vec3{0, 3, -2}, mgl64.Vec3{0, 320, -300}},
		{"degenerate_defaults_forward", mgl64.Vec3{}, mgl64.Vec3{2, 0, 2}, mgl64.Vec3{2, 1, 2}, mgl64.Vec3{0, 320, 300}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ImpactImpulse(c.vehicleVel, c.vehiclePos, c.pedPos, 600, 320)
			for i := range 3 {
				assert.InDelta(t, c.want[i], got[i], 1e-9, "axis %d", i)
			}
		})
	}
}

func TestRagdollTrackerOrdersByHitTime(t *testing.T) {
	tr := NewRagdollTracker()
	tr.Add(3, 0.3)
	tr.Add(1, 0.1)
	tr.Add(4, 0.3)
	tr.Add(2, 0.2)
	assert.Equal(t, []ecs.Entity{1, 2, 3, 4}, tr.Entities())

	oldest, ok := tr.Oldest()
	require.True(t, ok)
	assert.Equal(t, ecs.Entity(1), oldest)

	assert.True(t, tr.Remove(2))
	assert.False(t, tr.Remove(2))
	tr.Add(3, 0.5)
	assert.Equal(t, []ecs.Entity{1, 4, 3}, tr.Entities())
}
