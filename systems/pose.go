package systems

import (
	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
)

// Pose is everything a renderer needs to draw the player for one tick.
type Pose struct {
	Sprite      cfg.SpriteID
	SpriteFrame int

	// Affine orientation: x' = A*x + B*y, y' = C*x + D*y
	A, B, C, D fixnum.Num
	FlipX      bool

	// RenderPosition is the sprite's top-left corner in world space.
	RenderPosition fixnum.Vec2
}

// PlayerPose derives the sprite, animation frame and orientation from the
// player's current state.
func PlayerPose(player *components.PlayerData, physics *components.PhysicsData, state components.PlayerState) Pose {
	half := fixnum.New(cfg.Player.SpriteSize / 2)
	p := Pose{
		RenderPosition: physics.Position.Sub(fixnum.Vec2{X: half, Y: half}),
		FlipX:          player.Facing == cfg.FacingLeft,
	}
	p.A, p.B, p.C, p.D = Orientation(physics.Up)

	if r, ok := state.(*components.Recovering); ok {
		p.Sprite = cfg.SpriteBubble
		p.SpriteFrame = cfg.PlayerAnimations[cfg.SpriteBubble].Frame(r.Time)
		p.FlipX = false
		return p
	}

	switch player.JumpState {
	case cfg.HasJump:
		if physics.Speed.MagnitudeSquared() < cfg.Player.IdleSpeedSquared {
			p.Sprite = cfg.SpriteIdle
		} else {
			p.Sprite = cfg.SpriteWalk
		}
	case cfg.Jumping:
		p.Sprite = cfg.SpriteJump
	default:
		p.Sprite = cfg.SpriteFall
	}
	p.SpriteFrame = cfg.PlayerAnimations[p.Sprite].Frame(player.Frame)
	return p
}

// Orientation is the rotation that turns a sprite drawn upright so its
// head points along up.
func Orientation(up fixnum.Vec2) (a, b, c, d fixnum.Num) {
	return -up.Y, up.X, -up.X, -up.Y
}

// PopFrame is the bubble-pop sprite index for the remaining pop time.
func PopFrame(remaining int) int {
	return (PopDuration() - remaining) / cfg.Recovery.PopFrameRate
}
