// Package fixnum provides the deterministic fixed-point scalar and vector
// types used by the geometry, compiler and runtime packages. A Num is a
// signed 32-bit value with 8 fractional bits; no floating point is used at
// runtime.
package fixnum

import (
	"fmt"
	"math/bits"
)

// Shift is the number of fractional bits in a Num.
const Shift = 8

// One is 1.0 in fixed point.
const One Num = 1 << Shift

// Num is a 24.8 fixed-point number.
type Num int32

// New returns the integer n as a Num.
func New(n int) Num {
	return Num(n << Shift)
}

// FromRaw wraps an already-scaled raw value.
func FromRaw(raw int32) Num {
	return Num(raw)
}

// FromFloat converts f, truncating toward zero. Only build-time code and
// tests use it.
func FromFloat(f float64) Num {
	return Num(int32(f * float64(One)))
}

// Ratio returns num/den without going through floating point.
func Ratio(num, den int) Num {
	if den == 0 {
		return 0
	}
	return Num((int64(num) << Shift) / int64(den))
}

func (n Num) Raw() int32 {
	return int32(n)
}

// Float is for display and debugging only.
func (n Num) Float() float64 {
	return float64(n) / float64(One)
}

// Floor returns the largest integer not greater than n.
func (n Num) Floor() int {
	return int(int32(n) >> Shift)
}

func (n Num) Mul(o Num) Num {
	return Num((int64(n) * int64(o)) >> Shift)
}

// Div returns n/o. Division by zero yields zero.
func (n Num) Div(o Num) Num {
	if o == 0 {
		return 0
	}
	return Num((int64(n) << Shift) / int64(o))
}

func (n Num) MulInt(i int) Num {
	return Num(int32(n) * int32(i))
}

// DivInt divides by an integer. Division by zero yields zero.
func (n Num) DivInt(i int) Num {
	if i == 0 {
		return 0
	}
	return Num(int32(n) / int32(i))
}

func (n Num) Abs() Num {
	if n < 0 {
		return -n
	}
	return n
}

func (n Num) Sign() int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func Min(a, b Num) Num {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Num) Num {
	if a > b {
		return a
	}
	return b
}

// Clamp limits n to [lo, hi].
func Clamp(n, lo, hi Num) Num {
	return Max(lo, Min(hi, n))
}

// Sqrt returns the square root of n. Negative inputs return zero.
func (n Num) Sqrt() Num {
	if n <= 0 {
		return 0
	}
	return Num(ISqrt(uint64(n) << Shift))
}

// Square64 returns n*n with 16 fractional bits, wide enough not to overflow.
func (n Num) Square64() int64 {
	return int64(n) * int64(n)
}

func (n Num) String() string {
	return fmt.Sprintf("%.4f", n.Float())
}

// ISqrt returns floor(sqrt(v)) using Newton's iteration.
func ISqrt(v uint64) uint64 {
	if v < 2 {
		return v
	}
	x := uint64(1) << ((bits.Len64(v) + 1) / 2)
	for {
		y := (x + v/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}
