package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the simulation's position record. X is lateral, Y vertical,
// Z forward along the road.
type Transform struct {
	Position mgl64.Vec3
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
