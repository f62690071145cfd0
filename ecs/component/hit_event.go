package component

import "github.com/go-gl/mathgl/mgl64"

// HitEvent records a vehicle striking a pedestrian. It is pushed on the
// world event queue and lives for a single tick.
type HitEvent struct {
	PedestrianKind PedestrianKind
	Pedestrian     uint64
	Reward         string
	ImpactForce    float64
	ImpactPoint    mgl64.Vec3
	ImpactNormal   mgl64.Vec3
	Time           float64
}

// RemovalReason says why a pedestrian left the simulation.
type RemovalReason string

const (
	RemovedReaped  RemovalReason = "reaped"
	RemovedEvicted RemovalReason = "evicted"
	RemovedBehind  RemovalReason = "behind"
)

// PedestrianRemoved is emitted whenever a pedestrian entity is destroyed.
type PedestrianRemoved struct {
	Pedestrian uint64
	Kind       PedestrianKind
	Reason     RemovalReason
}
