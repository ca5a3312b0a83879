package components

import (
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/yohamta/donburi"
)

// PhysicsData is the player's rigid body. Up is the reverse of the local
// gravity direction and drives both input rotation and sprite orientation.
type PhysicsData struct {
	Position      fixnum.Vec2
	Speed         fixnum.Vec2
	Up            fixnum.Vec2
	SurfaceNormal fixnum.Vec2 // normal of the last surface touched
	GroundState   cfg.GroundState

	// GravitySource is the last gravitational collider used. It stands in
	// when no candidate near the player is gravitational.
	GravitySource *geom.Collider
}

var Physics = donburi.NewComponentType[PhysicsData]()
