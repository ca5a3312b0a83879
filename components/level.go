package components

import (
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/terrain"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Terrain *terrain.Terrain
	Tick    int

	// Nearby is reused every tick for the static plus moving candidates.
	Nearby []*geom.Collider
}

var Level = donburi.NewComponentType[LevelData]()
