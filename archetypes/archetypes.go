package archetypes

import (
	"github.com/automoto/built-to-scale/components"
	"github.com/automoto/built-to-scale/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Physics,
		components.State,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Level = newArchetype(
		components.Level,
	)
	Input = newArchetype(
		components.Input,
	)
	Audio = newArchetype(
		components.Audio,
	)
	MessageState = newArchetype(
		components.MessageState,
	)
	Collected = newArchetype(
		components.Collected,
	)
	PowerUp = newArchetype(
		tags.PowerUp,
		components.PowerUp,
	)
	MissionLog = newArchetype(
		tags.MissionLog,
		components.MissionLog,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
