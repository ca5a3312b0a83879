package config

// AnimationDef describes a sprite strip. Speed is ticks per frame.
type AnimationDef struct {
	Frames int
	Speed  int
}

// PlayerAnimations maps each player sprite to its strip.
var PlayerAnimations = map[SpriteID]AnimationDef{
	SpriteIdle:      {Frames: 1, Speed: 1},
	SpriteWalk:      {Frames: 4, Speed: 8},
	SpriteJump:      {Frames: 2, Speed: 16},
	SpriteFall:      {Frames: 1, Speed: 1},
	SpriteBubble:    {Frames: 4, Speed: 2},
	SpriteBubblePop: {Frames: 5, Speed: 2},
}

// Frame returns the strip index to show after ticks frames.
func (a AnimationDef) Frame(ticks int) int {
	if a.Frames <= 1 || a.Speed <= 0 {
		return 0
	}
	return (ticks / a.Speed) % a.Frames
}
