// Package input provides lateral steering samplers for the simulation.
package input

import "math"

// Sampler returns one lateral steering sample per tick. Values outside
// [-1, 1] are clamped by the consumer.
type Sampler interface {
	Sample() float64
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func() float64

func (f SamplerFunc) Sample() float64 {
	return f()
}

// Neutral always reports no steering.
type Neutral struct{}

func (Neutral) Sample() float64 { return 0 }

// Step is one segment of a Scripted input: hold Lateral for Ticks samples.
type Step struct {
	Lateral float64
	Ticks   int
}

// Scripted replays a fixed sequence of steering steps, then holds the last
// value. It is used by the headless runner and tests.
type Scripted struct {
	steps []Step
	idx   int
	used  int
	last  float64
}

func NewScripted(steps ...Step) *Scripted {
	return &Scripted{steps: steps}
}

func (s *Scripted) Sample() float64 {
	for s.idx < len(s.steps) {
		step := s.steps[s.idx]
		if s.used < step.Ticks {
			s.used++
			s.last = step.Lateral
			return step.Lateral
		}
		s.idx++
		s.used = 0
	}
	return s.last
}

// Done reports whether every scripted step has been replayed.
func (s *Scripted) Done() bool {
	return s.idx >= len(s.steps) || (s.idx == len(s.steps)-1 && s.used >= s.steps[s.idx].Ticks)
}

// SineWeave steers left and right on a sine wave, advancing DT seconds per
// sample.
type SineWeave struct {
	Amplitude float64
	Period    float64
	DT        float64

	t float64
}

func (s *SineWeave) Sample() float64 {
	if s.Period <= 0 {
		return 0
	}
	v := s.Amplitude * math.Sin(2*math.Pi*s.t/s.Period)
	s.t += s.DT
	return v
}
