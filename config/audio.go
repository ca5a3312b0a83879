package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Movement sounds
	SoundJump
	SoundLand
	SoundDash
	// Pickups
	SoundPowerUp
	SoundMissionLog
	// Death
	SoundDeath
	SoundRecovered
)

// SoundConfig maps sound IDs to the labels the viewer shows for each cue
type SoundConfig struct {
	Labels        map[SoundID]string
	DisplayFrames int // how long a cue label stays on screen
}

var Sound SoundConfig

func init() {
	Sound = SoundConfig{
		Labels: map[SoundID]string{
			SoundJump:       "jump",
			SoundLand:       "land",
			SoundDash:       "dash",
			SoundPowerUp:    "power-up",
			SoundMissionLog: "log",
			SoundDeath:      "death",
			SoundRecovered:  "recovered",
		},
		DisplayFrames: 45,
	}
}
