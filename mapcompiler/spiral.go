package mapcompiler

import "github.com/automoto/built-to-scale/shared/mapdata"

type side int

const (
	sideCentre side = iota
	sideTop
	sideRight
	sideBottom
	sideLeft
)

// SpiralIterator yields grid cells spiralling outwards from a centre. After
// (2r+1)^2 calls every cell within Chebyshev distance r has been produced
// exactly once.
type SpiralIterator struct {
	side       side
	sideLength int32
	x, y       int32
	centre     mapdata.Cell
}

func NewSpiralIterator(centre mapdata.Cell) *SpiralIterator {
	return &SpiralIterator{sideLength: 1, centre: centre}
}

// Next returns the next cell. The sequence is infinite.
func (s *SpiralIterator) Next() mapdata.Cell {
	switch s.side {
	case sideCentre:
		s.side = sideTop
	case sideTop:
		s.x++
		if s.x == s.sideLength {
			s.side = sideRight
		}
	case sideRight:
		s.y++
		if s.y == s.sideLength {
			s.side = sideBottom
		}
	case sideBottom:
		s.x--
		if s.x == -s.sideLength {
			s.side = sideLeft
		}
	case sideLeft:
		s.y--
		if s.y == -s.sideLength {
			s.sideLength++
			s.side = sideTop
		}
	}
	return mapdata.Cell{X: s.centre.X + s.x, Y: s.centre.Y + s.y}
}

// Ring returns every cell within Chebyshev distance radius of centre, in
// spiral order.
func Ring(centre mapdata.Cell, radius int) []mapdata.Cell {
	if radius < 0 {
		return nil
	}
	n := (2*radius + 1) * (2*radius + 1)
	out := make([]mapdata.Cell, n)
	it := NewSpiralIterator(centre)
	for i := range out {
		out[i] = it.Next()
	}
	return out
}
