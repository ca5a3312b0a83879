// Package assets embeds the authored levels shipped with the viewer.
package assets

import (
	"embed"
	"fmt"
	"path"

	"github.com/automoto/built-to-scale/mapcompiler"
	"github.com/automoto/built-to-scale/shared/leveldata"
	"github.com/automoto/built-to-scale/shared/mapdata"
)

//go:embed all:levels
var assetFS embed.FS

// LoadLevel parses the embedded level at levelPath, e.g. "levels/demo.tmx".
func LoadLevel(levelPath string) (*leveldata.Level, error) {
	return leveldata.LoadLevel(assetFS, levelPath)
}

// LevelNames lists the embedded levels in name order.
func LevelNames() ([]string, error) {
	_, names, err := leveldata.LoadAllLevels(assetFS, "levels")
	return names, err
}

// MustCompileLevel loads and compiles an embedded level with the default
// compiler options.
func MustCompileLevel(levelPath string) *mapdata.Map {
	level, err := LoadLevel(levelPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load level %s: %v", levelPath, err))
	}
	m, _, err := mapcompiler.Compile(level, mapcompiler.DefaultOptions())
	if err != nil {
		panic(fmt.Sprintf("Failed to compile level %s: %v", path.Base(levelPath), err))
	}
	return m
}
