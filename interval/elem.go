package interval

import (
	"math"

	"github.com/zephyrtronium/relplot/ball"
)

// ballPrec is the working precision for functions computed through balls.
const ballPrec = 96

var (
	piLo     = math.Pi
	piHi     = nextUp(math.Pi)
	halfPiLo = math.Pi / 2
	halfPiHi = nextUp(math.Pi) / 2
)

// Pi returns an enclosure of π.
func Pi() Interval {
	return Interval{lo: piLo, hi: piHi, dec: Com}
}

// E returns an enclosure of Euler's number.
func E() Interval {
	return Interval{lo: math.E, hi: nextUp(math.E), dec: Com}
}

// ballMethod is an elementary function on balls, in the style of math/big.
type ballMethod func(b, x *ball.Ball) *ball.Ball

// at bounds f at the single point a.
func (f ballMethod) at(a float64) (lo, hi float64) {
	x := ball.FromFloat64(a, ballPrec)
	return f(x, x).Endpoints()
}

// expPoint bounds e^a.
func expPoint(a float64) (lo, hi float64) {
	switch {
	case a == 0:
		return 1, 1
	case math.IsInf(a, -1):
		return 0, 0
	case math.IsInf(a, 1):
		return math.Inf(1), math.Inf(1)
	case a > 710:
		return math.MaxFloat64, math.Inf(1)
	case a < -746:
		return 0, math.SmallestNonzeroFloat64
	}
	return ballMethod((*ball.Ball).Exp).at(a)
}

// logPoint bounds ln a for a ≥ 0.
func logPoint(a float64) (lo, hi float64) {
	switch {
	case a == 0:
		return math.Inf(-1), math.Inf(-1)
	case a == 1:
		return 0, 0
	case math.IsInf(a, 1):
		return math.Inf(1), math.Inf(1)
	}
	return ballMethod((*ball.Ball).Log).at(a)
}

// powPoint bounds a^k.
func powPoint(a float64, k uint64) (lo, hi float64) {
	neg := a < 0 && k%2 != 0
	m := math.Abs(a)
	switch {
	case k == 0:
		return 1, 1
	case a == 0:
		return 0, 0
	case math.IsInf(a, 0):
		lo, hi = math.Inf(1), math.Inf(1)
	case float64(k)*math.Log2(m) > 1100:
		lo, hi = math.MaxFloat64, math.Inf(1)
	case float64(k)*math.Log2(m) < -1200:
		lo, hi = 0, math.SmallestNonzeroFloat64
	default:
		b := ball.FromFloat64(m, ballPrec)
		lo, hi = b.PowUint(b, k).Endpoints()
		if lo < 0 {
			lo = 0
		}
	}
	if neg {
		return -hi, -lo
	}
	return lo, hi
}

// powBall bounds a^b for finite a > 0 and finite b ≠ 0.
func powBall(a, b float64) (lo, hi float64) {
	t := b * math.Log(a)
	switch {
	case t > 800:
		return math.MaxFloat64, math.Inf(1)
	case t < -800:
		return 0, math.SmallestNonzeroFloat64
	}
	x := ball.FromFloat64(a, ballPrec)
	lo, hi = x.Pow(x, ball.FromFloat64(b, ballPrec)).Endpoints()
	if lo < 0 {
		lo = 0
	}
	return lo, hi
}

// rootPoint bounds the real n-th root of a, n > 0. For even n, a must be
// nonnegative.
func rootPoint(a float64, n uint64) (lo, hi float64) {
	if a < 0 {
		lo, hi = rootPoint(-a, n)
		return -hi, -lo
	}
	switch {
	case a == 0, a == 1, math.IsInf(a, 1), n == 1:
		return a, a
	}
	// Exact roots are common in constant expressions.
	if c := math.Round(math.Pow(a, 1/float64(n))); c > 1 {
		if l, h := powPoint(c, n); l == a && h == a {
			return c, c
		}
	}
	return ballMethod(func(b, x *ball.Ball) *ball.Ball {
		b.Log(x)
		b.DivUint(b, n)
		return b.Exp(b)
	}).at(a)
}

// Exp returns e^x.
func (x Interval) Exp() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, _ := expPoint(x.lo)
	_, hi := expPoint(x.hi)
	return result(lo, hi, Com, x)
}

// Ln returns the natural logarithm of x over the part of x that is positive.
func (x Interval) Ln() Interval {
	d := Com
	if x.IsEmpty() || !(x.lo > 0) {
		d = Trv
	}
	x = x.restrict(0, math.Inf(1))
	if x.IsEmpty() || x.hi == 0 {
		return result(1, 0, Trv, x)
	}
	lo, _ := logPoint(x.lo)
	_, hi := logPoint(x.hi)
	return result(lo, hi, d, x)
}

// Log2 returns the base-2 logarithm of x.
func (x Interval) Log2() Interval {
	return x.logBase(2)
}

// Log10 returns the base-10 logarithm of x.
func (x Interval) Log10() Interval {
	return x.logBase(10)
}

// logBase computes log_base x for a base of 2 or 10. Exact powers of the base
// give exact results.
func (x Interval) logBase(base float64) Interval {
	d := Com
	if x.IsEmpty() || !(x.lo > 0) {
		d = Trv
	}
	x = x.restrict(0, math.Inf(1))
	if x.IsEmpty() || x.hi == 0 {
		return result(1, 0, Trv, x)
	}
	lo, _ := logBasePoint(x.lo, base)
	_, hi := logBasePoint(x.hi, base)
	return result(lo, hi, d, x)
}

func logBasePoint(a, base float64) (lo, hi float64) {
	switch {
	case a == 0:
		return math.Inf(-1), math.Inf(-1)
	case math.IsInf(a, 1):
		return math.Inf(1), math.Inf(1)
	}
	if k, ok := exactLog(a, base); ok {
		return k, k
	}
	return ballMethod(func(b, x *ball.Ball) *ball.Ball {
		l := ball.FromFloat64(base, ballPrec)
		l.Log(l)
		b.Log(x)
		return b.Div(b, l)
	}).at(a)
}

// exactLog returns k if a is exactly base^k.
func exactLog(a, base float64) (float64, bool) {
	if base == 2 {
		frac, exp := math.Frexp(a)
		if frac == 0.5 {
			return float64(exp - 1), true
		}
		return 0, false
	}
	// Only nonnegative powers of ten are exact in binary64.
	k := math.Round(math.Log10(a))
	if k >= 0 && k <= 22 && math.Pow10(int(k)) == a {
		return k, true
	}
	return 0, false
}

// Log returns the logarithm of x to the base b.
func Log(b, x Interval) Interval {
	return x.Ln().Div(b.Ln())
}

// Rootn returns the real n-th root of x. Even roots are restricted to x ≥ 0.
// The 0th root is empty.
func (x Interval) Rootn(n int64) Interval {
	switch {
	case x.IsEmpty():
		return x
	case n == 0:
		return result(1, 0, Trv, x)
	case n < 0:
		return x.rootn(magnitude(n)).Recip()
	}
	return x.rootn(uint64(n))
}

// rootn returns the k-th root of x for k > 0.
func (x Interval) rootn(k uint64) Interval {
	d := Com
	if k%2 == 0 {
		d = domain(x, 0, math.Inf(1))
		x = x.restrict(0, math.Inf(1))
		if x.IsEmpty() {
			return result(1, 0, Trv, x)
		}
	}
	lo, _ := rootPoint(x.lo, k)
	_, hi := rootPoint(x.hi, k)
	return result(lo, hi, d, x)
}

// increasing applies a nondecreasing function to the bounds of x, given
// bounds for the function at a point, and clamps the result to [min, max].
func increasing(x Interval, f func(float64) (lo, hi float64), min, max float64, d Decoration) Interval {
	if x.IsEmpty() {
		return x
	}
	lo, _ := f(x.lo)
	_, hi := f(x.hi)
	return result(math.Max(lo, min), math.Min(hi, max), d, x)
}

// oneBelow is the largest float64 less than 1.
var oneBelow = nextDown(1)

// sinhPoint bounds sinh a.
func sinhPoint(a float64) (lo, hi float64) {
	switch {
	case a == 0, math.IsInf(a, 0):
		return a, a
	case a > 711:
		return math.MaxFloat64, math.Inf(1)
	case a < -711:
		return math.Inf(-1), -math.MaxFloat64
	}
	return ballMethod((*ball.Ball).Sinh).at(a)
}

// coshPoint bounds cosh a for a ≥ 0.
func coshPoint(a float64) (lo, hi float64) {
	switch {
	case a == 0:
		return 1, 1
	case a > 711:
		return math.MaxFloat64, math.Inf(1)
	}
	return ballMethod((*ball.Ball).Cosh).at(a)
}

// tanhPoint bounds tanh a. Beyond |a| = 20, tanh a is within 2^-56 of ±1.
func tanhPoint(a float64) (lo, hi float64) {
	switch {
	case a == 0:
		return 0, 0
	case a > 20:
		return oneBelow, 1
	case a < -20:
		return -1, -oneBelow
	}
	return ballMethod((*ball.Ball).Tanh).at(a)
}

// asinhPoint bounds asinh a.
func asinhPoint(a float64) (lo, hi float64) {
	if a == 0 || math.IsInf(a, 0) {
		return a, a
	}
	return ballMethod((*ball.Ball).Asinh).at(a)
}

// acoshPoint bounds acosh a for a ≥ 1.
func acoshPoint(a float64) (lo, hi float64) {
	switch {
	case a == 1:
		return 0, 0
	case math.IsInf(a, 1):
		return a, a
	}
	return ballMethod((*ball.Ball).Acosh).at(a)
}

// atanhPoint bounds atanh a for -1 ≤ a ≤ 1.
func atanhPoint(a float64) (lo, hi float64) {
	switch {
	case a == 0:
		return 0, 0
	case a == 1:
		return math.Inf(1), math.Inf(1)
	case a == -1:
		return math.Inf(-1), math.Inf(-1)
	}
	return ballMethod((*ball.Ball).Atanh).at(a)
}

// asinPoint bounds asin a for -1 ≤ a ≤ 1.
func asinPoint(a float64) (lo, hi float64) {
	if a == 0 {
		return 0, 0
	}
	return ballMethod((*ball.Ball).Asin).at(a)
}

// atanPoint bounds atan a.
func atanPoint(a float64) (lo, hi float64) {
	switch {
	case a == 0:
		return 0, 0
	case math.IsInf(a, 1):
		return halfPiLo, halfPiHi
	case math.IsInf(a, -1):
		return -halfPiHi, -halfPiLo
	}
	return ballMethod((*ball.Ball).Atan).at(a)
}

// Sinh returns the hyperbolic sine of x.
func (x Interval) Sinh() Interval {
	return increasing(x, sinhPoint, math.Inf(-1), math.Inf(1), Com)
}

// Cosh returns the hyperbolic cosine of x.
func (x Interval) Cosh() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, _ := coshPoint(x.Mig())
	_, hi := coshPoint(x.Mag())
	return result(math.Max(lo, 1), hi, Com, x)
}

// Tanh returns the hyperbolic tangent of x.
func (x Interval) Tanh() Interval {
	return increasing(x, tanhPoint, -1, 1, Com)
}

// Asinh returns the inverse hyperbolic sine of x.
func (x Interval) Asinh() Interval {
	return increasing(x, asinhPoint, math.Inf(-1), math.Inf(1), Com)
}

// Acosh returns the inverse hyperbolic cosine of x, for x ≥ 1.
func (x Interval) Acosh() Interval {
	d := domain(x, 1, math.Inf(1))
	return increasing(x.restrict(1, math.Inf(1)), acoshPoint, 0, math.Inf(1), d)
}

// Atanh returns the inverse hyperbolic tangent of x, for -1 < x < 1.
func (x Interval) Atanh() Interval {
	d := Com
	if x.IsEmpty() || !(x.lo > -1 && x.hi < 1) {
		d = Trv
	}
	x = x.restrict(-1, 1)
	if x.IsEmpty() || x.lo == 1 || x.hi == -1 {
		return result(1, 0, Trv, x)
	}
	return increasing(x, atanhPoint, math.Inf(-1), math.Inf(1), d)
}

// Asin returns the arcsine of x, for -1 ≤ x ≤ 1.
func (x Interval) Asin() Interval {
	d := domain(x, -1, 1)
	return increasing(x.restrict(-1, 1), asinPoint, -halfPiHi, halfPiHi, d)
}

// Acos returns the arccosine of x, for -1 ≤ x ≤ 1.
func (x Interval) Acos() Interval {
	d := domain(x, -1, 1)
	x = x.restrict(-1, 1)
	if x.IsEmpty() {
		return result(1, 0, Trv, x)
	}
	acos := ballMethod((*ball.Ball).Acos)
	lo, _ := acos.at(x.hi)
	_, hi := acos.at(x.lo)
	return result(math.Max(lo, 0), math.Min(hi, piHi), d, x)
}

// Atan returns the arctangent of x.
func (x Interval) Atan() Interval {
	return increasing(x, atanPoint, -halfPiHi, halfPiHi, Com)
}

// atan2Point bounds the angle of the point (b, a) away from the origin. A
// zero ordinate counts as nonnegative, so the negative real axis gives π.
func atan2Point(a, b float64) (lo, hi float64) {
	switch {
	case math.IsInf(a, 0) && math.IsInf(b, 0):
		return atan2Point(math.Copysign(1, a), math.Copysign(1, b))
	case math.IsInf(a, 0):
		return atan2Point(math.Copysign(1, a), 0)
	case math.IsInf(b, 1):
		return 0, 0
	case math.IsInf(b, -1) && a < 0:
		return -piHi, -piLo
	case math.IsInf(b, -1):
		return piLo, piHi
	case a == 0 && b > 0:
		return 0, 0
	case a == 0:
		return piLo, piHi
	case b == 0 && a > 0:
		return halfPiLo, halfPiHi
	case b == 0:
		return -halfPiHi, -halfPiLo
	}
	q := ball.FromFloat64(a, ballPrec)
	q.Div(q, ball.FromFloat64(b, ballPrec))
	q.Atan(q)
	if b < 0 {
		p := ball.New(ballPrec).Pi()
		if a < 0 {
			p.Neg(p)
		}
		q.Add(q, p)
	}
	return q.Endpoints()
}

// Atan2 returns the angle of the point (x, y), with y as the receiver.
func (y Interval) Atan2(x Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return result(1, 0, Trv, y, x)
	}
	switch {
	case x.Contains(0) && y.Contains(0):
		// Undefined at the origin.
		return result(-piHi, piHi, Trv, y, x)
	case x.hi < 0 && y.lo < 0 && y.hi >= 0:
		// The branch cut along the negative real axis.
		return result(-piHi, piHi, Def, y, x)
	}
	// Away from the origin and the cut, the extreme angles are at corners.
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, a := range [2]float64{y.lo, y.hi} {
		for _, b := range [2]float64{x.lo, x.hi} {
			l, h := atan2Point(a, b)
			lo = math.Min(lo, l)
			hi = math.Max(hi, h)
		}
	}
	return result(math.Max(lo, -piHi), math.Min(hi, piHi), Com, y, x)
}

// trigMax is the largest magnitude for which Sin, Cos and Tan locate extrema
// and poles; beyond it they return their full ranges.
const trigMax = 1 << 30

// hitsPhase reports whether [lo, hi] may contain phase + k period for some
// integer k. It errs toward true.
func hitsPhase(lo, hi, phase, period float64) bool {
	delta := 1e-9 + 1e-13*(math.Abs(lo)+math.Abs(hi))
	a := math.Ceil((lo-phase)/period - delta)
	b := math.Floor((hi-phase)/period + delta)
	return a <= b
}

// periodic bounds a function f with range [-1, 1] that attains 1 at maxPhase
// and -1 at maxPhase + π.
func periodic(x Interval, f ballMethod, maxPhase float64) Interval {
	if x.IsEmpty() {
		return x
	}
	if math.IsInf(x.lo, 0) || math.IsInf(x.hi, 0) || x.Mag() > trigMax || x.hi-x.lo >= 2*math.Pi {
		return result(-1, 1, Com, x)
	}
	a1, a2 := f.at(x.lo)
	b1, b2 := f.at(x.hi)
	lo, hi := math.Min(a1, b1), math.Max(a2, b2)
	if hitsPhase(x.lo, x.hi, maxPhase, 2*math.Pi) {
		hi = 1
	}
	if hitsPhase(x.lo, x.hi, maxPhase+math.Pi, 2*math.Pi) {
		lo = -1
	}
	return result(math.Max(lo, -1), math.Min(hi, 1), Com, x)
}

// Sin returns the sine of x.
func (x Interval) Sin() Interval {
	return periodic(x, (*ball.Ball).Sin, math.Pi/2)
}

// Cos returns the cosine of x.
func (x Interval) Cos() Interval {
	return periodic(x, (*ball.Ball).Cos, 0)
}

// Tan returns the tangent of x. Intervals that may contain a pole give the
// entire line decorated Trv.
func (x Interval) Tan() Interval {
	if x.IsEmpty() {
		return x
	}
	if math.IsInf(x.lo, 0) || math.IsInf(x.hi, 0) || x.Mag() > trigMax || x.hi-x.lo >= math.Pi ||
		hitsPhase(x.lo, x.hi, math.Pi/2, math.Pi) {
		return result(math.Inf(-1), math.Inf(1), Trv, x)
	}
	return increasing(x, ballMethod((*ball.Ball).Tan).at, math.Inf(-1), math.Inf(1), Com)
}

// sincMin bounds the minimum of sin(x)/x, which is near x = 4.4934.
const sincMin = -0.2173

// Sinc returns sin(x)/x, with sinc(0) = 1.
func (x Interval) Sinc() Interval {
	if x.IsEmpty() {
		return x
	}
	if x.Contains(0) {
		m := x.Mag()
		lo := sincMin
		if m <= halfPiLo {
			// sinc decreases on [0, π/2] and sin is positive there.
			s, _ := ballMethod((*ball.Ball).Sin).at(m)
			lo = divDown(s, m)
		}
		if m == 0 {
			lo = 1
		}
		return result(lo, 1, Com, x)
	}
	q := x.Sin().Div(x).restrict(sincMin, 1)
	return result(q.lo, q.hi, Com, x)
}
