package systems

import (
	"strings"

	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateMissionLogs shows each log the first time the player comes within
// range of it.
func UpdateMissionLogs(e *ecs.ECS) {
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	if _, recovering := components.State.Get(playerEntry).Current.(*components.Recovering); recovering {
		return
	}
	pos := components.Physics.Get(playerEntry).Position
	state := getOrCreateMessageState(e)
	reach := fixnum.New(cfg.PowerUps.MissionLogRadius).Square64()

	tags.MissionLog.Each(e.World, func(entry *donburi.Entry) {
		log := components.MissionLog.Get(entry)
		if log.Shown || fixnum.DistSq64(log.At, pos) >= reach {
			return
		}
		log.Shown = true
		state.Pending = append(state.Pending, log.Text)
		PlaySFX(e, cfg.SoundMissionLog)
	})
}

// DrainMissionLogs returns the log texts triggered since the last drain.
func DrainMissionLogs(e *ecs.ECS) []string {
	state := getOrCreateMessageState(e)
	if len(state.Pending) == 0 {
		return nil
	}
	out := state.Pending
	state.Pending = nil
	return out
}

// ResolvePlaceholders replaces {name} markers with the given input labels.
func ResolvePlaceholders(text string, labels map[string]string) string {
	result := text
	for placeholder, label := range labels {
		result = strings.ReplaceAll(result, "{"+placeholder+"}", label)
	}
	return result
}

// getOrCreateMessageState returns the singleton MessageState component
func getOrCreateMessageState(e *ecs.ECS) *components.MessageStateData {
	entry, ok := components.MessageState.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.MessageState))
	}
	return components.MessageState.Get(entry)
}
