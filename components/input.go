package components

import (
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/yohamta/donburi"
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all actions.
// JustPressed/JustReleased are computed on-demand by comparing frames.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
}

// Set swaps buffers and records this frame's pressed actions.
func (in *InputData) Set(current [cfg.ActionCount]bool) {
	in.Previous = in.Current
	in.Current = current
}

func (in *InputData) State(action cfg.ActionID) ActionState {
	return ActionState{
		Pressed:      in.Current[action],
		JustPressed:  in.Current[action] && !in.Previous[action],
		JustReleased: !in.Current[action] && in.Previous[action],
	}
}

// X is the horizontal direction: -1, 0 or 1. Opposite keys cancel.
func (in *InputData) X() int {
	x := 0
	if in.Current[cfg.ActionMoveLeft] {
		x--
	}
	if in.Current[cfg.ActionMoveRight] {
		x++
	}
	return x
}

var Input = donburi.NewComponentType[InputData]()
