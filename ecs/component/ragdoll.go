package component

// Ragdoll is present on pedestrians that have been converted to free
// physics. The reaper destroys the entity once DespawnTime is reached.
type Ragdoll struct {
	HitTime     float64
	DespawnTime float64
}

var RagdollComponent = NewComponent[Ragdoll]()
