package mapcompiler

import (
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/mapdata"
)

// occupiedBoxes calls f for every grid cell the collider's footprint can
// affect. Lines are walked pixel by pixel; consecutive repeats are skipped.
func occupiedBoxes(c *geom.Collider, boxSize, padding int, f func(mapdata.Cell)) {
	switch c.Kind {
	case geom.KindCircle:
		circleBoxes(c.Circle, boxSize, padding, f)
	case geom.KindArc:
		circleBoxes(c.Arc.Circle, boxSize, padding, f)
	case geom.KindLine:
		sx, sy := c.Line.Start.Floor()
		ex, ey := c.Line.End.Floor()
		current := mapdata.Cell{X: -1 << 31, Y: -1 << 31}
		bresenham(sx, sy, ex, ey, func(x, y int) {
			cell := mapdata.Cell{X: int32(floorDiv(x, boxSize)), Y: int32(floorDiv(y, boxSize))}
			if cell != current {
				f(cell)
				current = cell
			}
		})
	}
}

func circleBoxes(circle geom.Circle, boxSize, padding int, f func(mapdata.Cell)) {
	px, py := circle.Position.Floor()
	r := circle.Radius.Floor()
	reach := int64(r+padding) * int64(r+padding)

	inCircle := func(x, y int) bool {
		dx, dy := int64(px-x), int64(py-y)
		return dx*dx+dy*dy <= reach
	}

	minX := floorDiv(px-r, boxSize)
	maxX := floorDiv(px+r+boxSize-1, boxSize)
	minY := floorDiv(py-r, boxSize)
	maxY := floorDiv(py+r+boxSize-1, boxSize)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			x0, y0 := x*boxSize, y*boxSize
			x1, y1 := x0+boxSize, y0+boxSize
			if inCircle(x0, y0) || inCircle(x1, y0) || inCircle(x0, y1) || inCircle(x1, y1) ||
				(px >= x0 && px < x1) || (py >= y0 && py < y1) {
				f(mapdata.Cell{X: int32(x), Y: int32(y)})
			}
		}
	}
}

// bresenham visits every integer point on the digital line from (x0, y0) to
// (x1, y1) inclusive.
func bresenham(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
