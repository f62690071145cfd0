package component

import "strings"

type SurfaceKind string

const (
	SurfaceNormal SurfaceKind = "normal"
	SurfaceIce    SurfaceKind = "ice"
	SurfaceOil    SurfaceKind = "oil"
	SurfaceGrass  SurfaceKind = "grass"
	SurfacePuddle SurfaceKind = "puddle"
)

// ParseSurfaceKind maps a tuning or level name onto a SurfaceKind.
func ParseSurfaceKind(s string) (SurfaceKind, bool) {
	switch SurfaceKind(strings.ToLower(strings.TrimSpace(s))) {
	case SurfaceNormal:
		return SurfaceNormal, true
	case SurfaceIce:
		return SurfaceIce, true
	case SurfaceOil:
		return SurfaceOil, true
	case SurfaceGrass:
		return SurfaceGrass, true
	case SurfacePuddle:
		return SurfacePuddle, true
	}
	return "", false
}

// SurfaceModifier is the surface currently affecting a mover. Zone is the
// trigger volume that applied it, or 0 when the mover is on normal road.
type SurfaceModifier struct {
	Kind     SurfaceKind
	Friction float64
	Drag     float64
	Zone     uint64
}

// NormalSurface returns the modifier for plain road.
func NormalSurface() SurfaceModifier {
	return SurfaceModifier{Kind: SurfaceNormal, Friction: 1, Drag: 1}
}

var SurfaceModifierComponent = NewComponent[SurfaceModifier]()

// SurfaceZone is a static trigger volume on the road. The box is expressed
// in road coordinates (X lateral, Z forward).
type SurfaceZone struct {
	Kind     SurfaceKind
	Friction float64
	Drag     float64
	MinX     float64
	MaxX     float64
	MinZ     float64
	MaxZ     float64
}

var SurfaceZoneComponent = NewComponent[SurfaceZone]()
