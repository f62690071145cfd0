package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFader struct {
	opacity map[ecs.Entity]float64
}

func (f *recordingFader) SetOpacity(e ecs.Entity, opacity float64) {
	if f.opacity == nil {
		f.opacity = make(map[ecs.Entity]float64)
	}
	f.opacity[e] = opacity
}

func TestFadeProgress(t *testing.T) {
	rag := component.Ragdoll{HitTime: 10, DespawnTime: 14}
	cases := []struct {
		name     string
		now      float64
		want     float64
		inFading bool
	}{
		{"before_fade", 11, 0, false},
		{"fade_start", 12.5, 0, true},
		{"halfway", 13.25, 0.5, true},
		{"end", 14, 1, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := FadeProgress(rag, 2.5, c.now)
			assert.Equal(t, c.inFading, ok)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}

	got, ok := FadeProgress(component.Ragdoll{HitTime: 0, DespawnTime: 1}, 2, 3)
	assert.True(t, ok)
	assert.Equal(t, 1.0, got)
}

func TestRagdollReaperFadesThenRemoves(t *testing.T) {
	r := newRig(t)
	p := r.pedestrian(t, mgl64.Vec3{0, 0, 10})
	require.NoError(t, ecs.Add(r.w, p, component.RagdollComponent.Kind(), &component.Ragdoll{HitTime: 0, DespawnTime: 4}))
	r.tracker.Add(p, 0)

	fader := &recordingFader{}
	s := NewRagdollReaperSystem(fader, 2.5, r.tracker, nil, nil)

	r.w.Clock().Now = 1
	s.Update(r.w)
	assert.NotContains(t, fader.opacity, p)

	r.w.Clock().Now = 3.25
	s.Update(r.w)
	assert.InDelta(t, 0.5, fader.opacity[p], 1e-9)

	r.w.Clock().Now = 4
	s.Update(r.w)
	assert.False(t, ecs.IsAlive(r.w, p))
	assert.Equal(t, 0, r.tracker.Len())
	_, ok := r.space.Body(p)
	assert.False(t, ok)

	removed := eventsOf(r.w, ecs.EventPedestrianRemoved)
	require.Len(t, removed, 1)
	assert.Equal(t, component.PedestrianRemoved{Pedestrian: uint64(p), Kind: "walker", Reason: component.RemovedReaped}, removed[0].Data)
}

func TestRagdollReaperDefaultsToNopFader(t *testing.T) {
	r := newRig(t)
	p := r.pedestrian(t, mgl64.Vec3{})
	require.NoError(t, ecs.Add(r.w, p, component.RagdollComponent.Kind(), &component.Ragdoll{HitTime: 0, DespawnTime: 4}))
	r.w.Clock().Now = 3

	s := NewRagdollReaperSystem(nil, 2.5, nil, nil, nil)
	assert.NotPanics(t, func() { s.Update(r.w) })
	assert.True(t, ecs.IsAlive(r.w, p))
}
