package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproach(t *testing.T) {
	cases := []struct {
		name               string
		cur, target, delta float64
		want               float64
	}{
		{"below_target", 0, 8, 0.5, 0.5},
		{"no_overshoot_up", 7.9, 8, 0.5, 8},
		{"above_target", 10, 8, 0.5, 9.5},
		{"no_overshoot_down", 8.1, 8, 0.5, 8},
		{"zero_delta", 3, 8, 0, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, Approach(c.cur, c.target, c.delta), 1e-12)
		})
	}
}

func TestValueNoiseBoundedAndSmooth(t *testing.T) {
	prev := ValueNoise(42, 0)
	for i := 1; i <= 2000; i++ {
		x := float64(i) * 0.01
		v := ValueNoise(42, x)
		if v < -1 || v > 1 {
			t.Fatalf("noise out of range at x=%v: %v", x, v)
		}
		if math.Abs(v-prev) > 0.05 {
			t.Fatalf("noise jumped between samples at x=%v: %v -> %v", x, prev, v)
		}
		prev = v
	}
	assert.Equal(t, ValueNoise(7, 3.25), ValueNoise(7, 3.25))
}

func TestRandDeterministic(t *testing.T) {
	a, b := NewRand(99), NewRand(99)
	for i := 0; i < 100; i++ {
		va, vb := a.RangeF(-2, 2), b.RangeF(-2, 2)
		assert.Equal(t, va, vb)
		assert.GreaterOrEqual(t, va, -2.0)
		assert.Less(t, va, 2.0)
	}
}
