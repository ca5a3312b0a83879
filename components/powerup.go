package components

import (
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/mapdata"
	"github.com/yohamta/donburi"
)

type PowerUpData struct {
	Kind mapdata.PowerUpKind
	At   fixnum.Vec2
}

var PowerUp = donburi.NewComponentType[PowerUpData]()

// CollectedData is a singleton listing power-ups picked up, in order. The
// last tick's pickups are the tail after Seen.
type CollectedData struct {
	Kinds []mapdata.PowerUpKind
	Seen  int
}

var Collected = donburi.NewComponentType[CollectedData]()
