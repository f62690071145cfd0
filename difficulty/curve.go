// Package difficulty scales the vehicle's speed envelope over a run with a
// tengo script.
package difficulty

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/roadrush/ecs/component"
)

//go:embed difficulty.tengo
var defaultScript []byte

// Curve evaluates a compiled difficulty script. The script sees the globals
// elapsed, base_target, base_max_forward and base_max_lateral and must assign
// target, max_forward and max_lateral.
type Curve struct {
	compiled *tengo.Compiled
}

var inputs = []string{"elapsed", "base_target", "base_max_forward", "base_max_lateral"}
var outputs = []string{"target", "max_forward", "max_lateral"}

// Default compiles the built-in ramp.
func Default() (*Curve, error) {
	return NewCurve(defaultScript)
}

// LoadFile compiles the script at path.
func LoadFile(path string) (*Curve, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("difficulty: read %s: %w", path, err)
	}
	return NewCurve(src)
}

func NewCurve(src []byte) (*Curve, error) {
	script := tengo.NewScript(src)
	for _, name := range append(append([]string(nil), inputs...), outputs...) {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("difficulty: add %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("difficulty: compile: %w", err)
	}
	return &Curve{compiled: compiled}, nil
}

// Scale runs the script for elapsed seconds of play against base.
func (c *Curve) Scale(elapsed float64, base component.SpeedEnvelope) (component.SpeedEnvelope, error) {
	values := map[string]float64{
		"elapsed":          elapsed,
		"base_target":      base.TargetSpeed,
		"base_max_forward": base.MaxForward,
		"base_max_lateral": base.MaxLateral,
		"target":           base.TargetSpeed,
		"max_forward":      base.MaxForward,
		"max_lateral":      base.MaxLateral,
	}
	for name, v := range values {
		if err := c.compiled.Set(name, v); err != nil {
			return base, fmt.Errorf("difficulty: set %s: %w", name, err)
		}
	}
	if err := c.compiled.Run(); err != nil {
		return base, fmt.Errorf("difficulty: run: %w", err)
	}

	var out [3]float64
	for i, name := range outputs {
		v, err := c.float(name)
		if err != nil {
			return base, err
		}
		out[i] = v
	}
	return component.SpeedEnvelope{TargetSpeed: out[0], MaxForward: out[1], MaxLateral: out[2]}, nil
}

func (c *Curve) float(name string) (float64, error) {
	switch v := c.compiled.Get(name).Value().(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("difficulty: %s is %T, want a number", name, v)
	}
}
