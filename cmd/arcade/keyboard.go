package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const stickDeadzone = 0.2

// keyboardSampler reads steering from A/D, the arrow keys or the first
// gamepad's left stick. The stick wins when it is outside the deadzone.
type keyboardSampler struct{}

func (keyboardSampler) Sample() float64 {
	lateral := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		lateral -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		lateral += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		x := ebiten.StandardGamepadAxisValue(gamepads[0], ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(x) > stickDeadzone {
			lateral = x
		}
	}
	return lateral
}
