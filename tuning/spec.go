// Package tuning loads the balance data the simulation runs on. Every section
// is required: a missing file stops construction instead of falling back to
// defaults that would silently change handling.
package tuning

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/milk9111/roadrush/ecs/component"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingMovement = errors.New("tuning: movement tuning missing")
	ErrMissingSpawn    = errors.New("tuning: spawn tuning missing")
	ErrMissingSurfaces = errors.New("tuning: surface tuning missing")
	ErrMissingRagdoll  = errors.New("tuning: ragdoll tuning missing")
	ErrInvalid         = errors.New("tuning: invalid value")
)

const (
	MovementFile = "movement.yaml"
	SpawnFile    = "spawn.yaml"
	SurfacesFile = "surfaces.yaml"
	RagdollFile  = "ragdoll.yaml"
)

type AccelSpec struct {
	Forward float64 `yaml:"forward"`
	Lateral float64 `yaml:"lateral"`
	Decel   float64 `yaml:"decel"`
}

type ConstraintSpec struct {
	MinForward float64 `yaml:"min_forward"`
	MaxForward float64 `yaml:"max_forward"`
	MaxLateral float64 `yaml:"max_lateral"`
	RoadMinX   float64 `yaml:"road_min_x"`
	RoadMaxX   float64 `yaml:"road_max_x"`
}

type DragSpec struct {
	Base float64 `yaml:"base"`
}

type VehicleSpec struct {
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
	Mass   float64 `yaml:"mass"`
}

type MovementSpec struct {
	TargetSpeed float64        `yaml:"target_speed"`
	Accel       AccelSpec      `yaml:"accel"`
	Constraints ConstraintSpec `yaml:"constraints"`
	Drag        DragSpec       `yaml:"drag"`
	Vehicle     VehicleSpec    `yaml:"vehicle"`
}

// AccelProfile converts the movement tuning into the mover component.
func (m *MovementSpec) AccelProfile() component.AccelProfile {
	return component.AccelProfile{
		ForwardAccel: m.Accel.Forward,
		LateralAccel: m.Accel.Lateral,
		Decel:        m.Accel.Decel,
	}
}

func (m *MovementSpec) SpeedConstraints() component.SpeedConstraints {
	return component.SpeedConstraints{
		MinForward: m.Constraints.MinForward,
		MaxForward: m.Constraints.MaxForward,
		MaxLateral: m.Constraints.MaxLateral,
		RoadMinX:   m.Constraints.RoadMinX,
		RoadMaxX:   m.Constraints.RoadMaxX,
	}
}

func (m *MovementSpec) Envelope() component.SpeedEnvelope {
	return component.SpeedEnvelope{
		TargetSpeed: m.TargetSpeed,
		MaxForward:  m.Constraints.MaxForward,
		MaxLateral:  m.Constraints.MaxLateral,
	}
}

type PedestrianKindSpec struct {
	Kind      string  `yaml:"kind"`
	Weight    float64 `yaml:"weight"`
	Mass      float64 `yaml:"mass"`
	Reward    string  `yaml:"reward"`
	WalkSpeed float64 `yaml:"walk_speed"`
}

type SpawnSpec struct {
	Interval      float64              `yaml:"interval"`
	AheadDistance float64              `yaml:"ahead_distance"`
	MaxAlive      int                  `yaml:"max_alive"`
	Radius        float64              `yaml:"radius"`
	WalkSpeed     float64              `yaml:"walk_speed"`
	Kinds         []PedestrianKindSpec `yaml:"kinds"`
}

// Kind looks up the tuning for a pedestrian kind.
func (s *SpawnSpec) Kind(kind component.PedestrianKind) (PedestrianKindSpec, bool) {
	for _, k := range s.Kinds {
		if component.PedestrianKind(k.Kind) == kind {
			return k, true
		}
	}
	return PedestrianKindSpec{}, false
}

type SurfaceSpec struct {
	Friction float64 `yaml:"friction"`
	Drag     float64 `yaml:"drag"`
}

// SurfaceTable is the single authoritative surface kind → multipliers table.
type SurfaceTable map[component.SurfaceKind]SurfaceSpec

// Modifier resolves a surface kind. Normal road and unknown kinds resolve to
// the neutral modifier.
func (t SurfaceTable) Modifier(kind component.SurfaceKind) component.SurfaceModifier {
	spec, ok := t[kind]
	if !ok || kind == component.SurfaceNormal {
		return component.NormalSurface()
	}
	return component.SurfaceModifier{Kind: kind, Friction: spec.Friction, Drag: spec.Drag}
}

type RagdollSpec struct {
	MaxActive      int     `yaml:"max_active"`
	BaseHitForce   float64 `yaml:"base_hit_force"`
	UpForce        float64 `yaml:"up_force"`
	MaxTorque      float64 `yaml:"max_torque"`
	DespawnDelay   float64 `yaml:"despawn_delay"`
	FadeStartDelay float64 `yaml:"fade_start_delay"`
	DespawnBehind  float64 `yaml:"despawn_behind"`
}

// Tuning is the full set of balance data.
type Tuning struct {
	Movement *MovementSpec
	Spawn    *SpawnSpec
	Surfaces SurfaceTable
	Ragdoll  *RagdollSpec
}

// Source reads a named tuning file.
type Source func(name string) ([]byte, error)

func LoadSpec[T any](src Source, filename string) (*T, error) {
	data, err := src(filename)
	if err != nil {
		return nil, fmt.Errorf("tuning: load %s: %w", filename, err)
	}
	var spec *T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("tuning: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// LoadAll reads every section from the disk-over-embedded source.
func LoadAll() (*Tuning, error) {
	return LoadFrom(Load)
}

// LoadFS reads every section from fsys.
func LoadFS(fsys fs.FS) (*Tuning, error) {
	return LoadFrom(func(name string) ([]byte, error) { return fs.ReadFile(fsys, name) })
}

func LoadFrom(src Source) (*Tuning, error) {
	movement, err := loadRequired[MovementSpec](src, MovementFile, ErrMissingMovement)
	if err != nil {
		return nil, err
	}
	spawn, err := loadRequired[SpawnSpec](src, SpawnFile, ErrMissingSpawn)
	if err != nil {
		return nil, err
	}
	surfaces, err := loadRequired[SurfaceTable](src, SurfacesFile, ErrMissingSurfaces)
	if err != nil {
		return nil, err
	}
	ragdoll, err := loadRequired[RagdollSpec](src, RagdollFile, ErrMissingRagdoll)
	if err != nil {
		return nil, err
	}

	t := &Tuning{Movement: movement, Spawn: spawn, Surfaces: *surfaces, Ragdoll: ragdoll}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func loadRequired[T any](src Source, filename string, missing error) (*T, error) {
	spec, err := LoadSpec[T](src, filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", missing, filename)
	}
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, fmt.Errorf("%w: %s is empty", missing, filename)
	}
	return spec, nil
}

// Validate checks the cross-field invariants the pipeline relies on.
func (t *Tuning) Validate() error {
	if t == nil || t.Movement == nil {
		return ErrMissingMovement
	}
	if t.Spawn == nil {
		return ErrMissingSpawn
	}
	if t.Surfaces == nil {
		return ErrMissingSurfaces
	}
	if t.Ragdoll == nil {
		return ErrMissingRagdoll
	}

	m := t.Movement
	switch {
	case m.Constraints.MaxForward < m.Constraints.MinForward:
		return fmt.Errorf("%w: movement max_forward %.2f below min_forward %.2f", ErrInvalid, m.Constraints.MaxForward, m.Constraints.MinForward)
	case m.Constraints.MaxLateral < 0:
		return fmt.Errorf("%w: movement max_lateral %.2f is negative", ErrInvalid, m.Constraints.MaxLateral)
	case m.Constraints.RoadMaxX <= m.Constraints.RoadMinX:
		return fmt.Errorf("%w: movement road bounds [%.2f, %.2f] are empty", ErrInvalid, m.Constraints.RoadMinX, m.Constraints.RoadMaxX)
	case m.Accel.Forward <= 0 || m.Accel.Lateral <= 0 || m.Accel.Decel <= 0:
		return fmt.Errorf("%w: movement accelerations must be positive", ErrInvalid)
	case m.Vehicle.Width <= 0 || m.Vehicle.Length <= 0 || m.Vehicle.Mass <= 0:
		return fmt.Errorf("%w: movement vehicle body must have positive size and mass", ErrInvalid)
	}

	s := t.Spawn
	if len(s.Kinds) == 0 {
		return fmt.Errorf("%w: spawn needs at least one pedestrian kind", ErrInvalid)
	}
	if s.Radius <= 0 {
		return fmt.Errorf("%w: spawn radius must be positive", ErrInvalid)
	}
	for _, k := range s.Kinds {
		if k.Kind == "" || k.Mass <= 0 || k.Weight < 0 {
			return fmt.Errorf("%w: spawn kind %q needs a name, positive mass and non-negative weight", ErrInvalid, k.Kind)
		}
	}

	for kind, surf := range t.Surfaces {
		if _, ok := component.ParseSurfaceKind(string(kind)); !ok {
			return fmt.Errorf("%w: unknown surface kind %q", ErrInvalid, kind)
		}
		if surf.Friction < 0 || surf.Drag <= 0 {
			return fmt.Errorf("%w: surface %q friction %.2f drag %.2f", ErrInvalid, kind, surf.Friction, surf.Drag)
		}
		if kind == component.SurfaceNormal && (surf.Friction != 1 || surf.Drag != 1) {
			return fmt.Errorf("%w: normal surface must be neutral", ErrInvalid)
		}
	}

	r := t.Ragdoll
	if r.MaxActive <= 0 {
		return fmt.Errorf("%w: ragdoll max_active must be positive", ErrInvalid)
	}
	if r.DespawnDelay <= r.FadeStartDelay {
		return fmt.Errorf("%w: ragdoll despawn_delay must exceed fade_start_delay", ErrInvalid)
	}
	return nil
}
