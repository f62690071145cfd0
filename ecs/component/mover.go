package component

import "github.com/go-gl/mathgl/mgl64"

// Velocity is the resolved velocity of a mover. The vertical component is
// owned by the integrator and only mirrored here.
type Velocity struct {
	V mgl64.Vec3
}

var VelocityComponent = NewComponent[Velocity]()

// AccelProfile holds the rates, in units/s², used to approach target speeds.
type AccelProfile struct {
	ForwardAccel float64
	LateralAccel float64
	Decel        float64
}

var AccelProfileComponent = NewComponent[AccelProfile]()

// SpeedConstraints is the speed and road envelope a mover must respect.
type SpeedConstraints struct {
	MinForward float64
	MaxForward float64
	MaxLateral float64
	RoadMinX   float64
	RoadMaxX   float64
}

var SpeedConstraintsComponent = NewComponent[SpeedConstraints]()

// TargetSpeed is the forward cruise speed the mover accelerates toward.
// Difficulty and upgrades rewrite it at runtime.
type TargetSpeed struct {
	Forward float64
}

var TargetSpeedComponent = NewComponent[TargetSpeed]()

// SpeedEnvelope is the subset of speed parameters a scaling service may
// change over the course of a run.
type SpeedEnvelope struct {
	TargetSpeed float64
	MaxForward  float64
	MaxLateral  float64
}

// Scaling keeps the untouched baseline the scaling service starts from each
// tick, so repeated scaling never compounds.
type Scaling struct {
	Base SpeedEnvelope
}

var ScalingComponent = NewComponent[Scaling]()

// DragState records the base drag of the mover and the drag currently in
// effect after the active surface is applied.
type DragState struct {
	Base    float64
	Current float64
}

var DragStateComponent = NewComponent[DragState]()

// LaunchBoost marks a window in which externally driven velocity (ramps,
// knockback) wins over resolved steering velocity.
type LaunchBoost struct {
	Start    float64
	Duration float64
}

var LaunchBoostComponent = NewComponent[LaunchBoost]()
