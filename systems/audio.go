package systems

import (
	"github.com/automoto/built-to-scale/archetypes"
	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateAudio returns the audio singleton, spawning it on first use.
func GetOrCreateAudio(e *ecs.ECS) *components.AudioData {
	if entry, ok := components.Audio.First(e.World); ok {
		return components.Audio.Get(entry)
	}
	entry := archetypes.Audio.Spawn(e.World)
	return components.Audio.Get(entry)
}

// PlaySFX queues a sound cue for the current tick.
func PlaySFX(e *ecs.ECS, sound cfg.SoundID) {
	audioData := GetOrCreateAudio(e)
	audioData.PendingSFX = append(audioData.PendingSFX, sound)
}

// DrainSFX returns the cues raised since the last drain and clears the
// queue. The returned slice is a copy.
func DrainSFX(e *ecs.ECS) []cfg.SoundID {
	audioData := GetOrCreateAudio(e)
	if len(audioData.PendingSFX) == 0 {
		return nil
	}
	out := make([]cfg.SoundID, len(audioData.PendingSFX))
	copy(out, audioData.PendingSFX)
	audioData.PendingSFX = audioData.PendingSFX[:0]
	return out
}
