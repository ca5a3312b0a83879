package config

import (
	"image/color"

	"github.com/automoto/built-to-scale/shared/fixnum"
)

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Collision
	Radius fixnum.Num

	// Movement
	JumpSpeed        fixnum.Num
	BoostedJumpSpeed fixnum.Num // after collecting Jump Boost
	GroundSpeed      fixnum.Num
	AirSpeed         fixnum.Num
	DashSpeed        fixnum.Num
	JumpFrames       int // frames before a jump can be chained
	MaxJumps         int
	DoubleJumpMax    int // after collecting Double Jump

	// Gravity impulse is direction / divisor
	GravityDivisor     int
	HeldGravityDivisor int // while jumping with the button held

	// Ground classification by contact cosine
	FirmGroundCosine  fixnum.Num
	SteepGroundCosine fixnum.Num
	InputFrameCosine  fixnum.Num // surface frame used for walking input

	// Damping per tick
	FirmFriction  fixnum.Num
	SteepFriction fixnum.Num
	AirFriction   fixnum.Num

	// Speeds below this squared magnitude snap to zero
	RestSpeedSquared fixnum.Num
	IdleSpeedSquared fixnum.Num // below this the walk cycle stops

	// Dimensions
	SpriteSize int
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	WindowWidth  int // dead zone around the camera
	WindowHeight int
	LeadUp       int // how far along "up" the camera looks
	LeadSpeed    int // speed multiplier for the look-ahead
	Step         fixnum.Num
}

// RecoveryConfig holds the frame timings of the death/recovery animation.
type RecoveryConfig struct {
	FreezeFrames int // speed held at zero
	MoveEnd      int // last frame of the interpolation (exclusive)
	ResumeFrame  int // frame at which control returns
	LiftDistance int // how far along reverse gravity the path bows
	PopFrameRate int // frames per bubble-pop sprite
}

// TerrainConfig describes the runtime grid. It must match the values the
// map was compiled with; the compiled map carries its own copy.
type TerrainConfig struct {
	BoxSize     int
	PathBoxSize int
}

// CompilerConfig contains map compiler defaults. CLI flags override them.
type CompilerConfig struct {
	BoxSize       int
	PathBoxSize   int
	RingRadius    int     // cells discovered around each occupied cell
	CornerRadius  float64 // default fillet radius
	MaxLineLength float64 // longer segments are subdivided
	PlayerPadding float64 // approximate player radius used when rasterizing
	ScrollBox     int
	ScrollBand    int // scroll boxes covered on the stopped side of a line
}

// PowerUpConfig contains pickup configuration values
type PowerUpConfig struct {
	PickupRadius     int
	MissionLogRadius int
}

// DebugConfig contains viewer colors and toggles
type DebugConfig struct {
	GravitationalColor color.RGBA
	CollisionColor     color.RGBA
	KillisionColor     color.RGBA
	MovingColor        color.RGBA
	PlayerColor        color.RGBA
	RecoveryColor      color.RGBA
	CameraColor        color.RGBA
	PowerUpColor       color.RGBA
	BackgroundColor    color.RGBA
	ShowCells          bool
}

// Config holds general screen configuration
type Config struct {
	Width  int
	Height int
	Scale  int
}

// Global configuration instances
var C *Config
var Player PlayerConfig
var Camera CameraConfig
var Recovery RecoveryConfig
var Terrain TerrainConfig
var Compiler CompilerConfig
var PowerUps PowerUpConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Magenta      = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	DarkBlue     = color.RGBA{R: 16, G: 20, B: 40, A: 255}
)

func init() {
	C = &Config{
		Width:  240,
		Height: 160,
		Scale:  4,
	}

	Player = PlayerConfig{
		Radius: fixnum.New(8),

		JumpSpeed:        fixnum.FromFloat(2.2),
		BoostedJumpSpeed: fixnum.FromFloat(3.5),
		GroundSpeed:      fixnum.FromFloat(0.25),
		AirSpeed:         fixnum.FromFloat(0.0625),
		DashSpeed:        fixnum.New(3),
		JumpFrames:       32,
		MaxJumps:         1,
		DoubleJumpMax:    2,

		GravityDivisor:     10,
		HeldGravityDivisor: 128,

		FirmGroundCosine:  fixnum.FromFloat(0.8),
		SteepGroundCosine: fixnum.FromFloat(0.7),
		InputFrameCosine:  fixnum.FromFloat(0.7),

		FirmFriction:  fixnum.FromFloat(0.8),
		SteepFriction: fixnum.FromFloat(0.9),
		AirFriction:   fixnum.FromFloat(0.95),

		RestSpeedSquared: fixnum.FromFloat(0.005),
		IdleSpeedSquared: fixnum.FromFloat(0.1),

		SpriteSize: 16,
	}

	Camera = CameraConfig{
		WindowWidth:  64,
		WindowHeight: 32,
		LeadUp:       32,
		LeadSpeed:    64,
		Step:         fixnum.FromFloat(1.25),
	}

	Recovery = RecoveryConfig{
		FreezeFrames: 16,
		MoveEnd:      64,
		ResumeFrame:  80,
		LiftDistance: 30,
		PopFrameRate: 2,
	}

	Terrain = TerrainConfig{
		BoxSize:     64,
		PathBoxSize: 256,
	}

	Compiler = CompilerConfig{
		BoxSize:       Terrain.BoxSize,
		PathBoxSize:   Terrain.PathBoxSize,
		RingRadius:    2,
		CornerRadius:  2,
		MaxLineLength: 100,
		PlayerPadding: 8,
		ScrollBox:     128,
		ScrollBand:    3,
	}

	PowerUps = PowerUpConfig{
		PickupRadius:     16,
		MissionLogRadius: 24,
	}

	Debug = DebugConfig{
		GravitationalColor: LightGreen,
		CollisionColor:     LightBlue,
		KillisionColor:     Red,
		MovingColor:        Orange,
		PlayerColor:        White,
		RecoveryColor:      Magenta,
		CameraColor:        Yellow,
		PowerUpColor:       Yellow,
		BackgroundColor:    DarkBlue,
	}
}
