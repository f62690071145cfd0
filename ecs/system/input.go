package system

import (
	"math"

	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/input"
)

// InputSystem samples the steering axis once per tick and stores it on
// every entity with an Input component.
type InputSystem struct {
	sampler input.Sampler
}

func NewInputSystem(sampler input.Sampler) *InputSystem {
	if sampler == nil {
		sampler = input.Neutral{}
	}
	return &InputSystem{sampler: sampler}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	lateral := i.sampler.Sample()
	if math.IsNaN(lateral) {
		lateral = 0
	}
	lateral = common.Clamp(lateral, -1, 1)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		in.Lateral = lateral
	})
}
