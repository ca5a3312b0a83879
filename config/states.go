package config

// SpriteID selects the player sprite the renderer should draw.
type SpriteID int

const (
	SpriteIdle SpriteID = iota
	SpriteWalk
	SpriteJump
	SpriteFall
	SpriteBubble
	SpriteBubblePop
)

var spriteNames = map[SpriteID]string{
	SpriteIdle:      "idle",
	SpriteWalk:      "walk",
	SpriteJump:      "jump",
	SpriteFall:      "fall",
	SpriteBubble:    "bubble",
	SpriteBubblePop: "bubble_pop",
}

func (s SpriteID) String() string {
	if name, ok := spriteNames[s]; ok {
		return name
	}
	return "unknown"
}

// JumpState tracks whether the player may jump.
type JumpState int

const (
	HasJump JumpState = iota
	Jumping
	Falling
)

// GroundState is derived each tick from the steepest contact.
type GroundState int

const (
	InAir GroundState = iota
	OnGround
)

// Facing is the horizontal flip of the player sprite
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)
