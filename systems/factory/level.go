package factory

import (
	"github.com/automoto/built-to-scale/archetypes"
	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/terrain"
	"github.com/yohamta/donburi"
)

// CreateLevel spawns the terrain singleton together with the level's
// power-ups and mission logs, plus the per-tick singletons the systems
// write into.
func CreateLevel(w donburi.World, t *terrain.Terrain) *donburi.Entry {
	level := archetypes.Level.Spawn(w)
	components.Level.SetValue(level, components.LevelData{
		Terrain: t,
		Nearby:  make([]*geom.Collider, 0, 32),
	})

	m := t.Map()
	for _, p := range m.PowerUps {
		e := archetypes.PowerUp.Spawn(w)
		components.PowerUp.SetValue(e, components.PowerUpData{Kind: p.Kind, At: p.At})
	}
	for _, l := range m.MissionLogs {
		e := archetypes.MissionLog.Spawn(w)
		components.MissionLog.SetValue(e, components.MissionLogData{Text: l.Text, At: l.At})
	}

	archetypes.Input.Spawn(w)
	audio := archetypes.Audio.Spawn(w)
	components.Audio.SetValue(audio, components.AudioData{
		PendingSFX: make([]cfg.SoundID, 0, 8),
	})
	archetypes.MessageState.Spawn(w)
	archetypes.Collected.Spawn(w)

	return level
}
