package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "regular"
	Small   FontName = "small"
	Bold    FontName = "bold"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var (
	fonts = map[FontName]font.Face{}
)

// LoadDefaults registers the bundled Go fonts under the standard names.
func LoadDefaults() {
	LoadFont(Regular, goregular.TTF)
	LoadFontWithSize(Small, goregular.TTF, 7)
	LoadFontWithSize(Bold, gobold.TTF, 10)
}

func LoadFont(name FontName, ttf []byte) {
	LoadFontWithSize(name, ttf, 9)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) {
	fontData, err := truetype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("Font %s: %v", name, err))
	}
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
}

func getFont(name FontName) font.Face {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
