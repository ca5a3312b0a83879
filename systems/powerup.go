package systems

import (
	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/mapdata"
	"github.com/automoto/built-to-scale/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePowerUps collects every power-up within reach of the player.
func UpdatePowerUps(e *ecs.ECS) {
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	if _, recovering := components.State.Get(playerEntry).Current.(*components.Recovering); recovering {
		return
	}
	player := components.Player.Get(playerEntry)
	pos := components.Physics.Get(playerEntry).Position
	collected := getOrCreateCollected(e)
	reach := fixnum.New(cfg.PowerUps.PickupRadius).Square64()

	var picked []*donburi.Entry
	tags.PowerUp.Each(e.World, func(entry *donburi.Entry) {
		p := components.PowerUp.Get(entry)
		if fixnum.DistSq64(p.At, pos) >= reach {
			return
		}
		ApplyPowerUp(player, p.Kind)
		collected.Kinds = append(collected.Kinds, p.Kind)
		picked = append(picked, entry)
	})

	// Removing inside Each would invalidate the query iteration.
	for _, entry := range picked {
		e.World.Remove(entry.Entity())
		PlaySFX(e, cfg.SoundPowerUp)
	}
}

// ApplyPowerUp grants the ability kind unlocks.
func ApplyPowerUp(player *components.PlayerData, kind mapdata.PowerUpKind) {
	switch kind {
	case mapdata.PowerUpJumpBoost:
		player.JumpSpeed = cfg.Player.BoostedJumpSpeed
	case mapdata.PowerUpDash:
		player.CanDash = true
	case mapdata.PowerUpDoubleJump:
		player.MaxJumps = cfg.Player.DoubleJumpMax
	}
}

// NewPowerUps returns the kinds collected since the previous call.
func NewPowerUps(e *ecs.ECS) []mapdata.PowerUpKind {
	collected := getOrCreateCollected(e)
	if collected.Seen == len(collected.Kinds) {
		return nil
	}
	out := append([]mapdata.PowerUpKind(nil), collected.Kinds[collected.Seen:]...)
	collected.Seen = len(collected.Kinds)
	return out
}

func getOrCreateCollected(e *ecs.ECS) *components.CollectedData {
	entry, ok := components.Collected.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Collected))
	}
	return components.Collected.Get(entry)
}

// RestorePowerUps re-applies kinds saved from an earlier run and removes one
// matching pickup from the level for each, so nothing is collected twice.
func RestorePowerUps(e *ecs.ECS, kinds []mapdata.PowerUpKind) {
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	player := components.Player.Get(playerEntry)
	collected := getOrCreateCollected(e)

	for _, kind := range kinds {
		ApplyPowerUp(player, kind)
		collected.Kinds = append(collected.Kinds, kind)

		var match *donburi.Entry
		tags.PowerUp.Each(e.World, func(entry *donburi.Entry) {
			if match == nil && components.PowerUp.Get(entry).Kind == kind {
				match = entry
			}
		})
		if match != nil {
			e.World.Remove(match.Entity())
		}
	}
	collected.Seen = len(collected.Kinds)
}
