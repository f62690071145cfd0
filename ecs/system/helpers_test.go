package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/ecs/entity"
	"github.com/milk9111/roadrush/physics"
	"github.com/milk9111/roadrush/tuning"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 60

type testRig struct {
	w       *ecs.World
	space   *physics.Space
	tun     *tuning.Tuning
	tracker *RagdollTracker
	memory  *SlidingMemory
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	tun, err := tuning.LoadAll()
	require.NoError(t, err)

	w := ecs.NewWorld()
	w.Clock().DT = testDT
	r := &testRig{
		w:       w,
		space:   physics.NewSpace(physics.DefaultConfig()),
		tun:     tun,
		tracker: NewRagdollTracker(),
		memory:  NewSlidingMemory(),
	}
	w.OnDestroy(func(e ecs.Entity) {
		r.space.Remove(e)
		r.tracker.Remove(e)
		r.memory.Release(e)
	})
	return r
}

func (r *testRig) vehicle(t *testing.T, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e, err := entity.NewVehicle(r.w, r.space, r.tun.Movement, pos)
	require.NoError(t, err)
	return e
}

func (r *testRig) pedestrian(t *testing.T, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e, err := entity.NewPedestrian(r.w, r.space, entity.PedestrianSpec{
		Kind:      "walker",
		Reward:    "pedestrian",
		Mass:      70,
		Radius:    0.35,
		WalkSpeed: 1.2,
		Direction: 1,
	}, pos)
	require.NoError(t, err)
	return e
}

func (r *testRig) zone(t *testing.T, kind component.SurfaceKind, minX, minZ, maxX, maxZ float64) ecs.Entity {
	t.Helper()
	mod := r.tun.Surfaces.Modifier(kind)
	e, err := entity.NewSurfaceZone(r.w, r.space, component.SurfaceZone{
		Kind:     kind,
		Friction: mod.Friction,
		Drag:     mod.Drag,
		MinX:     minX,
		MaxX:     maxX,
		MinZ:     minZ,
		MaxZ:     maxZ,
	})
	require.NoError(t, err)
	return e
}

func (r *testRig) body(t *testing.T, e ecs.Entity) *physics.Body {
	t.Helper()
	b, ok := r.space.Body(e)
	require.True(t, ok, "entity %s has no body", e)
	return b
}

func get[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, h.Kind())
	require.True(t, ok, "entity %s missing component", e)
	return v
}

func eventsOf(w *ecs.World, typ ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, evt := range w.Events().Pending() {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}
