package system

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/input"
	"github.com/stretchr/testify/assert"
)

type scalerFunc func(elapsed float64, base component.SpeedEnvelope) (component.SpeedEnvelope, error)

func (f scalerFunc) Scale(elapsed float64, base component.SpeedEnvelope) (component.SpeedEnvelope, error) {
	return f(elapsed, base)
}

func TestScalingStartsFromBaseEachTick(t *testing.T) {
	r := newRig(t)
	v := r.vehicle(t, mgl64.Vec3{})
	s := NewScalingSystem(scalerFunc(func(elapsed float64, base component.SpeedEnvelope) (component.SpeedEnvelope, error) {
		f := 1 + elapsed/10
		return component.SpeedEnvelope{TargetSpeed: base.TargetSpeed * f, MaxForward: base.MaxForward * f, MaxLateral: base.MaxLateral}, nil
	}), nil)

	r.w.Clock().Now = 5
	s.Update(r.w)
	s.Update(r.w)
	assert.Equal(t, 12.0, get(t, r.w, v, component.TargetSpeedComponent).Forward)
	assert.Equal(t, 30.0, get(t, r.w, v, component.SpeedConstraintsComponent).MaxForward)
}

func TestScalingClampsTargetAndKeepsValuesOnError(t *testing.T) {
	r := newRig(t)
	v := r.vehicle(t, mgl64.Vec3{})
	fail := false
	s := NewScalingSystem(scalerFunc(func(_ float64, base component.SpeedEnvelope) (component.SpeedEnvelope, error) {
		if fail {
			return component.SpeedEnvelope{}, errors.New("script failed")
		}
		return component.SpeedEnvelope{TargetSpeed: 50, MaxForward: 15, MaxLateral: -1}, nil
	}), nil)

	s.Update(r.w)
	limits := get(t, r.w, v, component.SpeedConstraintsComponent)
	assert.Equal(t, 15.0, get(t, r.w, v, component.TargetSpeedComponent).Forward)
	assert.Equal(t, 15.0, limits.MaxForward)
	assert.Equal(t, 0.0, limits.MaxLateral)

	fail = true
	s.Update(r.w)
	assert.Equal(t, 15.0, limits.MaxForward)
}

func TestInputSystemClampsSample(t *testing.T) {
	cases := []struct {
		name   string
		sample float64
		want   float64
	}{
		{"in_range", -0.4, -0.4},
		{"too_far_right", 3, 1},
		{"too_far_left", -2, -1},
		{"nan", math.NaN(), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t)
			v := r.vehicle(t, mgl64.Vec3{})
			NewInputSystem(input.SamplerFunc(func() float64 { return c.sample })).Update(r.w)
			assert.Equal(t, c.want, get(t, r.w, v, component.InputComponent).Lateral)
		})
	}
}
