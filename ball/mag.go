package ball

import (
	"math"
	"math/big"
)

// MagBits is the number of mantissa bits in a radius.
const MagBits = 30

// mag is an upper bound for a nonnegative real number. Its value is
// man × 2^(exp-MagBits), with man either zero or in [2^(MagBits-1), 2^MagBits).
// All operations producing a mag round up.
type mag struct {
	man uint32
	exp int64
	inf bool
}

// magFromFloat64 returns the smallest mag not less than x. x must be
// nonnegative and not NaN.
func magFromFloat64(x float64) mag {
	switch {
	case x == 0:
		return mag{}
	case math.IsInf(x, 1):
		return mag{inf: true}
	case x < 0 || math.IsNaN(x):
		panic("ball: invalid radius")
	}
	frac, exp := math.Frexp(x)
	// frac is in [0.5, 1). Scaling by 2^MagBits is exact, so the ceiling is
	// the only rounding step.
	man := math.Ceil(math.Ldexp(frac, MagBits))
	if man == 1<<MagBits {
		// Rounding up carried out of the mantissa: 0.111...1₂ became 1.0₂.
		man = 1 << (MagBits - 1)
		exp++
	}
	return mag{man: uint32(man), exp: int64(exp)}
}

// magFromBig returns the smallest mag not less than |x|.
func magFromBig(x *big.Float) mag {
	if x.IsInf() {
		return mag{inf: true}
	}
	if x.Sign() == 0 {
		return mag{}
	}
	r := new(big.Float).SetPrec(MagBits).SetMode(big.AwayFromZero).Abs(x)
	// Rounding away from zero may carry into a new leading bit; MantExp
	// renormalizes that for us.
	var frac big.Float
	exp := r.MantExp(&frac)
	frac.SetMantExp(&frac, MagBits)
	man, _ := frac.Uint64()
	return mag{man: uint32(man), exp: int64(exp)}
}

// isZero reports whether m is exactly zero.
func (m mag) isZero() bool {
	return !m.inf && m.man == 0
}

// float returns m exactly as a big.Float. An infinite mag gives +Inf.
func (m mag) float() *big.Float {
	r := new(big.Float).SetPrec(MagBits)
	if m.inf {
		return r.SetInf(false)
	}
	if m.man == 0 {
		return r
	}
	r.SetUint64(uint64(m.man))
	return r.SetMantExp(r, int(m.exp-MagBits))
}

// float64Up returns a float64 not less than m.
func (m mag) float64Up() float64 {
	if m.inf {
		return math.Inf(1)
	}
	f, acc := m.float().Float64()
	if acc == big.Below {
		f = math.Nextafter(f, math.Inf(1))
	}
	return f
}

// upper returns a float with the given precision that rounds upward, for
// accumulating radius bounds.
func upper(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetMode(big.ToPositiveInf)
}

// magAdd returns an upper bound for a + b.
func magAdd(a, b mag) mag {
	if a.inf || b.inf {
		return mag{inf: true}
	}
	if a.man == 0 {
		return b
	}
	if b.man == 0 {
		return a
	}
	return magFromBig(upper(2*MagBits).Add(a.float(), b.float()))
}

// magMul returns an upper bound for a × b.
func magMul(a, b mag) mag {
	if a.isZero() || b.isZero() {
		return mag{}
	}
	if a.inf || b.inf {
		return mag{inf: true}
	}
	return magFromBig(upper(2*MagBits).Mul(a.float(), b.float()))
}

// magMulUint returns an upper bound for a × n.
func magMulUint(a mag, n uint64) mag {
	if n == 0 || a.isZero() {
		return mag{}
	}
	if a.inf {
		return a
	}
	return magFromBig(upper(MagBits + 64).Mul(a.float(), new(big.Float).SetUint64(n)))
}

// magDivUint returns an upper bound for a / n. n must be nonzero.
func magDivUint(a mag, n uint64) mag {
	if a.isZero() || a.inf {
		return a
	}
	return magFromBig(upper(2*MagBits).Quo(a.float(), new(big.Float).SetUint64(n)))
}

// ulpErr returns an upper bound for the error of rounding the exact result of
// an operation to x, given the accuracy reported for x.
func ulpErr(x *big.Float) mag {
	if x.Acc() == big.Exact || x.Sign() == 0 || x.IsInf() {
		return mag{}
	}
	// One ulp of x is 2^(exp-prec); round-to-nearest errs by at most half of
	// that, and directed modes by at most one.
	var frac big.Float
	exp := x.MantExp(&frac)
	return mag{man: 1 << (MagBits - 1), exp: int64(exp) - int64(x.Prec()) + 1}
}
