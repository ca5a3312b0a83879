package components

import (
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Facing    cfg.Facing
	JumpState cfg.JumpState
	JumpSpeed fixnum.Num

	MaxJumps       int
	JumpsRemaining int

	CanDash       bool // unlocked by the Dash power-up
	DashAvailable bool // refreshed on landing

	Frame int // ticks since the last jump; drives animations
}

var Player = donburi.NewComponentType[PlayerData]()
