package systems

import (
	"github.com/automoto/built-to-scale/components"
	"github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/mapdata"
	"github.com/automoto/built-to-scale/tags"
	"github.com/yohamta/donburi/ecs"
)

func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	physics := components.Physics.Get(playerEntry)

	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)

	// Look ahead along up and in the direction of travel
	target := physics.Position.
		Add(physics.Up.MulInt(config.Camera.LeadUp)).
		Add(physics.Speed.MulInt(config.Camera.LeadSpeed))

	dest := camera.Position
	if !insideWindow(camera.Position, target) {
		dest = dest.Add(target.Sub(camera.Position).FastNormalise().Scale(config.Camera.Step))
	}

	if stop, ok := level.Terrain.ScrollStopAt(camera.Position); ok {
		dest = clampToScrollStop(camera.Position, dest, stop)
	}
	camera.Position = dest
}

// insideWindow reports whether p lies in the dead zone centred on cam,
// edges included.
func insideWindow(cam, p fixnum.Vec2) bool {
	hw := fixnum.New(config.Camera.WindowWidth).DivInt(2)
	hh := fixnum.New(config.Camera.WindowHeight).DivInt(2)
	return p.X >= cam.X-hw && p.X <= cam.X+hw && p.Y >= cam.Y-hh && p.Y <= cam.Y+hh
}

// clampToScrollStop applies each limit only while the camera is already on
// its permitted side, so a camera that starts past a stop can still leave.
func clampToScrollStop(cam, dest fixnum.Vec2, stop mapdata.ScrollStop) fixnum.Vec2 {
	if stop.MinX.Set && cam.X >= stop.MinX.Value {
		dest.X = fixnum.Max(dest.X, stop.MinX.Value)
	}
	if stop.MinY.Set && cam.Y >= stop.MinY.Value {
		dest.Y = fixnum.Max(dest.Y, stop.MinY.Value)
	}
	if stop.MaxX.Set && cam.X <= stop.MaxX.Value {
		dest.X = fixnum.Min(dest.X, stop.MaxX.Value)
	}
	if stop.MaxY.Set && cam.Y <= stop.MaxY.Value {
		dest.Y = fixnum.Min(dest.Y, stop.MaxY.Value)
	}
	return dest
}

// ViewOrigin is the world position of the top-left screen pixel.
func ViewOrigin(cam fixnum.Vec2) (int, int) {
	x, y := cam.Add(fixnum.Vec2{X: fixnum.One / 2, Y: fixnum.One / 2}).Floor()
	return x - config.C.Width/2, y - config.C.Height/2
}
