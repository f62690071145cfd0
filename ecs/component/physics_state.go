package component

// PhysicsState is read-only feedback for HUD and debug overlays.
type PhysicsState struct {
	CurrentSpeed float64
	IsSliding    bool
	IsAtMaxSpeed bool
}

var PhysicsStateComponent = NewComponent[PhysicsState]()
