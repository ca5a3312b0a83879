package factory

import (
	"github.com/automoto/built-to-scale/archetypes"
	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/yohamta/donburi"
)

// CreatePlayer spawns the player falling at pos with the default abilities.
func CreatePlayer(w donburi.World, pos fixnum.Vec2) *donburi.Entry {
	player := archetypes.Player.Spawn(w)

	components.Player.SetValue(player, components.PlayerData{
		Facing:         cfg.FacingRight,
		JumpState:      cfg.Falling,
		JumpSpeed:      cfg.Player.JumpSpeed,
		MaxJumps:       cfg.Player.MaxJumps,
		JumpsRemaining: cfg.Player.MaxJumps,
		DashAvailable:  true,
	})
	components.Physics.SetValue(player, components.PhysicsData{
		Position:    pos,
		Up:          fixnum.V(0, -1),
		GroundState: cfg.InAir,
	})
	components.State.SetValue(player, components.StateData{
		Current: &components.Playing{},
	})

	return player
}
