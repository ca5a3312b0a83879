package systems

import (
	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer advances the player one tick from the current input state.
// UpdateTerrain must have run first.
func UpdatePlayer(e *ecs.ECS) {
	playerEntry, ok := components.Player.First(e.World)
	if !ok {
		return
	}
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)
	player := components.Player.Get(playerEntry)
	physics := components.Physics.Get(playerEntry)
	state := components.State.Get(playerEntry)
	input := getInput(e)

	switch s := state.Current.(type) {
	case *components.Playing:
		if s.PopTime > 0 {
			s.PopTime--
		}
		applyDirection(e, player, physics, input.X(), input.State(cfg.ActionDash).Pressed)
		jump := input.State(cfg.ActionJump)
		if physicsFrame(e, level, player, physics, jump.Pressed) {
			state.Current = die(level, physics)
			PlaySFX(e, cfg.SoundDeath)
			return
		}
		if jump.JustPressed {
			handleJump(e, player, physics)
		}
		advanceFrame(player)

	case *components.Recovering:
		if next := updateRecovering(s, physics); next != nil {
			state.Current = next
			PlaySFX(e, cfg.SoundRecovered)
		}
	}
}

func getInput(e *ecs.ECS) *components.InputData {
	if entry, ok := components.Input.First(e.World); ok {
		return components.Input.Get(entry)
	}
	return &components.InputData{}
}

// applyDirection adds the walking impulse for x in the player's local
// frame. On floor-like ground the frame follows the surface so the player
// walks along slopes rather than into them.
func applyDirection(e *ecs.ECS, player *components.PlayerData, physics *components.PhysicsData, x int, dashHeld bool) {
	if x == 0 {
		return
	}

	var dash fixnum.Num
	if player.CanDash && dashHeld && player.DashAvailable {
		dash = cfg.Player.DashSpeed
		player.DashAvailable = false
		PlaySFX(e, cfg.SoundDash)
	}

	speed := cfg.Player.AirSpeed
	if physics.GroundState == cfg.OnGround {
		speed = cfg.Player.GroundSpeed
	}

	normal := physics.Up
	if physics.GroundState == cfg.OnGround && physics.SurfaceNormal.Dot(physics.Up) > cfg.Player.InputFrameCosine {
		normal = physics.SurfaceNormal
	}

	along := fixnum.New(x).Mul(speed + dash)
	physics.Speed = physics.Speed.Add(fixnum.Vec2{
		X: -normal.Y.Mul(along),
		Y: normal.X.Mul(along),
	})

	if x < 0 {
		player.Facing = cfg.FacingLeft
	} else {
		player.Facing = cfg.FacingRight
	}
}

// handleJump launches the player along Up when a jump is available. Any
// speed heading down is cancelled first so jumps off slopes stay consistent.
func handleJump(e *ecs.ECS, player *components.PlayerData, physics *components.PhysicsData) {
	if player.JumpState != cfg.HasJump {
		return
	}

	if down := physics.Speed.Dot(physics.Up); down < 0 {
		physics.Speed = physics.Speed.Sub(physics.Up.Scale(down))
	}
	physics.Speed = physics.Speed.Add(physics.Up.Scale(player.JumpSpeed))
	physics.Position = physics.Position.Add(physics.Speed)

	player.JumpState = cfg.Jumping
	if player.JumpsRemaining > 0 {
		player.JumpsRemaining--
	}
	player.Frame = 0
	PlaySFX(e, cfg.SoundJump)
}

func advanceFrame(player *components.PlayerData) {
	player.Frame++
	if player.JumpState == cfg.Jumping && player.Frame > cfg.Player.JumpFrames {
		if player.JumpsRemaining > 0 {
			player.JumpState = cfg.HasJump
		} else {
			player.JumpState = cfg.Falling
		}
	}
}
