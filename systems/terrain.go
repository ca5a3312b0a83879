package systems

import (
	"github.com/automoto/built-to-scale/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateTerrain moves the loaded paths one tick around the player. It runs
// before UpdatePlayer so the player collides with this tick's positions.
func UpdateTerrain(e *ecs.ECS) {
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)
	level.Tick++

	playerEntry, ok := components.Player.First(e.World)
	if !ok {
		return
	}
	level.Terrain.Advance(components.Physics.Get(playerEntry).Position)
}
