package component

// PhysicsBody describes the collider the integrator builds for an entity.
// The live body itself is owned by the physics space and looked up by entity.
type PhysicsBody struct {
	Width  float64
	Length float64
	Radius float64
	Mass   float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
