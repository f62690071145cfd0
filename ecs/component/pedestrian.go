package component

type PedestrianKind string

// Pedestrian is a spawned walker. Hit flips to true exactly once, from the
// collision detector, and never flips back.
type Pedestrian struct {
	Kind   PedestrianKind
	Reward string
	Hit    bool
	HitAt  float64
}

var PedestrianComponent = NewComponent[Pedestrian]()

// Locomotion drives a walking pedestrian across the road. It is stripped
// when the pedestrian is ragdolled.
type Locomotion struct {
	Speed     float64
	Direction float64
}

var LocomotionComponent = NewComponent[Locomotion]()
