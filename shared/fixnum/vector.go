package fixnum

import "fmt"

// Vec2 is a 2D vector of Nums. Y grows downwards.
type Vec2 struct {
	X, Y Num
}

// V builds a vector from integer components.
func V(x, y int) Vec2 {
	return Vec2{X: New(x), Y: New(y)}
}

// VF builds a vector from float components. Build time and tests only.
func VF(x, y float64) Vec2 {
	return Vec2{X: FromFloat(x), Y: FromFloat(y)}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s Num) Vec2 {
	return Vec2{X: v.X.Mul(s), Y: v.Y.Mul(s)}
}

func (v Vec2) MulInt(i int) Vec2 {
	return Vec2{X: v.X.MulInt(i), Y: v.Y.MulInt(i)}
}

func (v Vec2) DivInt(i int) Vec2 {
	return Vec2{X: v.X.DivInt(i), Y: v.Y.DivInt(i)}
}

func (v Vec2) Dot(o Vec2) Num {
	return v.X.Mul(o.X) + v.Y.Mul(o.Y)
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) Num {
	return v.X.Mul(o.Y) - v.Y.Mul(o.X)
}

// Dot64 is the dot product with 16 fractional bits.
func (v Vec2) Dot64(o Vec2) int64 {
	return int64(v.X)*int64(o.X) + int64(v.Y)*int64(o.Y)
}

// Cross64 is the cross product with 16 fractional bits.
func (v Vec2) Cross64(o Vec2) int64 {
	return int64(v.X)*int64(o.Y) - int64(v.Y)*int64(o.X)
}

// MagnitudeSquared overflows for vectors longer than roughly 2896 units; use
// LenSq64 for comparisons over level-sized distances.
func (v Vec2) MagnitudeSquared() Num {
	return Num(v.LenSq64() >> Shift)
}

// LenSq64 is the squared length with 16 fractional bits.
func (v Vec2) LenSq64() int64 {
	return int64(v.X)*int64(v.X) + int64(v.Y)*int64(v.Y)
}

func (v Vec2) Magnitude() Num {
	return Num(ISqrt(uint64(v.LenSq64())))
}

// FastNormalise returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) FastNormalise() Vec2 {
	m := int64(ISqrt(uint64(v.LenSq64())))
	if m == 0 {
		return Vec2{}
	}
	return Vec2{
		X: Num((int64(v.X) << Shift) / m),
		Y: Num((int64(v.Y) << Shift) / m),
	}
}

// Floor returns the integer components.
func (v Vec2) Floor() (int, int) {
	return v.X.Floor(), v.Y.Floor()
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// DistSq64 is the wide squared distance between two points.
func DistSq64(a, b Vec2) int64 {
	return a.Sub(b).LenSq64()
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%s, %s)", v.X, v.Y)
}
