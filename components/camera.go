package components

import (
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/yohamta/donburi"
)

type CameraData struct {
	Position fixnum.Vec2
}

var Camera = donburi.NewComponentType[CameraData]()
