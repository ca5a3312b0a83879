package components

import (
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/yohamta/donburi"
)

// PlayerState is either *Playing or *Recovering.
type PlayerState interface {
	playerState()
}

// Playing is normal control. PopTime counts down the bubble-pop effect
// shown where the player resumed after a recovery.
type Playing struct {
	PopTime     int
	PopLocation fixnum.Vec2
}

// Recovering carries the player back to a recovery point after a death.
// The reverse gravity directions at both ends bow the path outwards.
type Recovering struct {
	RecoverTo    fixnum.Vec2
	StartingFrom fixnum.Vec2
	StartReverse fixnum.Vec2
	DestReverse  fixnum.Vec2
	Time         int
}

func (*Playing) playerState()    {}
func (*Recovering) playerState() {}

type StateData struct {
	Current PlayerState
}

var State = donburi.NewComponentType[StateData]()
