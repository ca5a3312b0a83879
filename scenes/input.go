package scenes

import (
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// inputBinding represents a single key or button binding for an action
type inputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Deadzone for analog stick input (0.0 to 1.0)
const analogDeadzone = 0.25

var bindings = map[cfg.ActionID]inputBinding{
	cfg.ActionMoveLeft: {
		Keys:                   []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
	},
	cfg.ActionMoveRight: {
		Keys:                   []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
	},
	cfg.ActionJump: {
		Keys:                   []ebiten.Key{ebiten.KeyX, ebiten.KeyW},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
	},
	cfg.ActionDash: {
		Keys:                   []ebiten.Key{ebiten.KeyZ, ebiten.KeyShiftLeft},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft},
	},
	cfg.ActionToggleCells: {
		Keys:                   []ebiten.Key{ebiten.KeyF3},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterLeft},
	},
	cfg.ActionRestart: {
		Keys:                   []ebiten.Key{ebiten.KeyR},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight},
	},
	cfg.ActionClearProgress: {
		Keys: []ebiten.Key{ebiten.KeyBackspace},
	},
}

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// pollInput reads the held state of every action. gamepad reports whether
// any of it came from a controller.
func pollInput() (held [cfg.ActionCount]bool, gamepad bool) {
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for actionID, binding := range bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				held[actionID] = true
			}
		}
		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					held[actionID] = true
					gamepad = true
				}
			}
		}
	}

	// Merge the left stick into the directional actions
	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if horizontal < -analogDeadzone {
			held[cfg.ActionMoveLeft] = true
			gamepad = true
		}
		if horizontal > analogDeadzone {
			held[cfg.ActionMoveRight] = true
			gamepad = true
		}
	}
	return held, gamepad
}
