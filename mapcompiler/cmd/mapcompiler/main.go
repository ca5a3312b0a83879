package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/automoto/built-to-scale/mapcompiler"
	"github.com/automoto/built-to-scale/shared/leveldata"
	"github.com/automoto/built-to-scale/shared/mapdata"
)

func main() {
	defaults := mapcompiler.DefaultOptions()
	box := flag.Int("box", defaults.BoxSize, "Static grid cell size")
	pathBox := flag.Int("pathbox", defaults.PathBoxSize, "Moving path grid cell size")
	ring := flag.Int("ring", defaults.RingRadius, "Cells discovered around each occupied cell")
	corner := flag.Float64("corner", defaults.CornerRadius, "Default corner fillet radius")
	maxLine := flag.Float64("maxline", defaults.MaxLineLength, "Maximum line segment length")
	out := flag.String("o", "", "Output file (default: <level>.bin next to the input)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: mapcompiler [flags] level.tmx\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)
	if *out == "" {
		*out = input[:len(input)-len(filepath.Ext(input))] + ".bin"
	}

	opts := defaults
	opts.BoxSize = *box
	opts.PathBoxSize = *pathBox
	opts.RingRadius = *ring
	opts.CornerRadius = *corner
	opts.MaxLineLength = *maxLine

	level, err := leveldata.LoadLevel(os.DirFS(filepath.Dir(input)), filepath.Base(input))
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	m, report, err := mapcompiler.Compile(level, opts)
	if err != nil {
		log.Fatalf("Failed to compile %s: %v", input, err)
	}
	if err := write(*out, m); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Compiled %s -> %s: %s", input, *out, report)
}

// write encodes into a temp file beside path and renames it into place so a
// failed build never leaves a partial map behind.
func write(path string, m *mapdata.Map) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := mapdata.Encode(tmp, m); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
