package factory

import (
	"github.com/automoto/built-to-scale/archetypes"
	"github.com/automoto/built-to-scale/components"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/yohamta/donburi"
)

func CreateCamera(w donburi.World, at fixnum.Vec2) *donburi.Entry {
	camera := archetypes.Camera.Spawn(w)
	components.Camera.SetValue(camera, components.CameraData{Position: at})
	return camera
}
