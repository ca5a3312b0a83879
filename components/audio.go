package components

import (
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/yohamta/donburi"
)

// AudioData collects the sound cues raised during a tick (singleton
// component). Playback belongs to whoever drains it.
type AudioData struct {
	PendingSFX []cfg.SoundID
}

var Audio = donburi.NewComponentType[AudioData]()
