package components

import (
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/yohamta/donburi"
)

// MissionLogData is a text trigger placed in the level
type MissionLogData struct {
	Text  string
	At    fixnum.Vec2
	Shown bool
}

var MissionLog = donburi.NewComponentType[MissionLogData]()

// MessageStateData is a singleton holding the logs triggered this tick
type MessageStateData struct {
	Pending []string
}

var MessageState = donburi.NewComponentType[MessageStateData]()
