package mapcompiler

import (
	"fmt"
	"math"
	"sort"

	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/leveldata"
	"github.com/automoto/built-to-scale/shared/mapdata"
)

// scrollStops turns authored scroll-stop polylines into per-box camera
// limits. The camera is kept on the right-hand side of each segment as it
// was drawn, over a band of boxes on that side.
func scrollStops(lines [][]leveldata.Point, opts Options) ([]mapdata.ScrollStopEntry, error) {
	box := opts.ScrollBox
	halfW := fixnum.New(opts.ScreenWidth / 2)
	halfH := fixnum.New(opts.ScreenHeight / 2)
	stops := make(map[mapdata.Cell]*mapdata.ScrollStop)
	at := func(x, y int) *mapdata.ScrollStop {
		cell := mapdata.Cell{X: int32(x), Y: int32(y)}
		s, ok := stops[cell]
		if !ok {
			s = &mapdata.ScrollStop{}
			stops[cell] = s
		}
		return s
	}

	for _, poly := range lines {
		for i := 0; i+1 < len(poly); i++ {
			p, q := poly[i], poly[i+1]
			switch {
			case p.X == q.X && p.Y == q.Y:
				continue

			case p.X == q.X:
				direction := sign(p.Y - q.Y)
				from := floorDiv(int(math.Floor(math.Min(p.Y, q.Y))), box)
				to := ceilDiv(int(math.Ceil(math.Max(p.Y, q.Y))), box)
				x := floorDiv(int(math.Floor(p.X)), box)
				lo, hi := band(x, direction, opts.ScrollBand)
				limit := mapdata.Limit{Set: true}
				for cy := from; cy < to; cy++ {
					for cx := lo; cx < hi; cx++ {
						s := at(cx, cy)
						if direction > 0 {
							limit.Value = fixnum.FromFloat(p.X) + halfW
							s.MinX = limit
						} else {
							limit.Value = fixnum.FromFloat(p.X) - halfW
							s.MaxX = limit
						}
					}
				}

			case p.Y == q.Y:
				direction := sign(p.X - q.X)
				from := floorDiv(int(math.Floor(math.Min(p.X, q.X))), box)
				to := ceilDiv(int(math.Ceil(math.Max(p.X, q.X))), box)
				y := floorDiv(int(math.Floor(p.Y)), box)
				lo, hi := band(y, -direction, opts.ScrollBand)
				limit := mapdata.Limit{Set: true}
				for cx := from; cx < to; cx++ {
					for cy := lo; cy < hi; cy++ {
						s := at(cx, cy)
						if direction > 0 {
							limit.Value = fixnum.FromFloat(p.Y) - halfH
							s.MaxY = limit
						} else {
							limit.Value = fixnum.FromFloat(p.Y) + halfH
							s.MinY = limit
						}
					}
				}

			default:
				return nil, fmt.Errorf("%w: (%g,%g)-(%g,%g)", ErrScrollStopNotAxisAligned, p.X, p.Y, q.X, q.Y)
			}
		}
	}

	out := make([]mapdata.ScrollStopEntry, 0, len(stops))
	for cell, s := range stops {
		out = append(out, mapdata.ScrollStopEntry{Cell: cell, Stop: *s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out, nil
}

// band returns the half-open box range [lo, hi) from start towards
// direction.
func band(start, direction, width int) (int, int) {
	end := start + direction*width
	return min(start, end), max(start, end)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
