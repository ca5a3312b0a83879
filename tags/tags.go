package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	PowerUp    = donburi.NewTag().SetName("PowerUp")
	MissionLog = donburi.NewTag().SetName("MissionLog")
)
