package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionDash
	ActionToggleCells
	ActionRestart
	ActionClearProgress
	ActionCount // Must be last - used for array sizing
)

var actionNames = map[ActionID]string{
	ActionMoveLeft:      "left",
	ActionMoveRight:     "right",
	ActionJump:          "jump",
	ActionDash:          "dash",
	ActionToggleCells:   "cells",
	ActionRestart:       "restart",
	ActionClearProgress: "clear progress",
}

func (a ActionID) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}
