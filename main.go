package main

import (
	"flag"
	"image"
	"log"
	"os"

	"github.com/automoto/built-to-scale/assets"
	"github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/fonts"
	"github.com/automoto/built-to-scale/scenes"
	"github.com/automoto/built-to-scale/shared/mapdata"
	"github.com/automoto/built-to-scale/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(m *mapdata.Map) *Game {
	fonts.LoadDefaults()

	return &Game{
		bounds: image.Rectangle{},
		scene:  scenes.NewPlatformerScene(m),
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

// loadMap reads a compiled map from disk, or compiles an embedded level.
func loadMap(mapPath, level string) *mapdata.Map {
	if mapPath == "" {
		return assets.MustCompileLevel(level)
	}
	f, err := os.Open(mapPath)
	if err != nil {
		log.Fatalf("Failed to open map: %v", err)
	}
	defer f.Close()

	m, err := mapdata.Decode(f)
	if err != nil {
		log.Fatalf("Failed to decode map %s: %v", mapPath, err)
	}
	return m
}

func main() {
	mapPath := flag.String("map", "", "compiled .bin map to play")
	level := flag.String("level", config.DefaultLevel, "embedded .tmx level to compile and play")
	flag.Parse()

	m := loadMap(*mapPath, *level)

	ebiten.SetWindowTitle("Built to Scale")
	ebiten.SetWindowSize(config.C.Width*config.C.Scale, config.C.Height*config.C.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	if err := ebiten.RunGame(NewGame(m)); err != nil {
		log.Fatal(err)
	}
}
