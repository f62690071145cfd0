package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/stretchr/testify/assert"
)

func TestLocomotionWalksAndTurnsAtCurb(t *testing.T) {
	r := newRig(t)
	r.vehicle(t, mgl64.Vec3{})
	walker := r.pedestrian(t, mgl64.Vec3{0, 0, 20})
	curb := r.pedestrian(t, mgl64.Vec3{7, 0, 20})

	s := NewLocomotionSystem(r.space, nil, nil)
	s.Update(r.w)

	assert.Equal(t, mgl64.Vec3{1.2, 0, 0}, r.body(t, walker).Velocity())
	assert.Equal(t, -1.0, get(t, r.w, curb, component.LocomotionComponent).Direction)
	assert.Equal(t, mgl64.Vec3{-1.2, 0, 0}, r.body(t, curb).Velocity())

	step := NewPhysicsSystem(r.space)
	sync := NewPositionSyncSystem(r.space, nil, nil)
	for range 60 {
		step.Update(r.w)
	}
	sync.Update(r.w)
	assert.InDelta(t, 1.2, get(t, r.w, walker, component.TransformComponent).Position.X(), 1e-6)
	assert.InDelta(t, 20, get(t, r.w, walker, component.TransformComponent).Position.Z(), 1e-9)
}
