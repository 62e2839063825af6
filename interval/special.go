package interval

import (
	"math"

	"github.com/zephyrtronium/relplot/ball"
)

// Functions computed with series in package ball are evaluated either at the
// bounds of x, where they are monotone, or over a ball enclosing all of x.
// When the series cannot produce a bound, the result falls back to the known
// range of the function.

// ballFn is a special function in package ball.
type ballFn func(x *ball.Ball, prec uint) *ball.Ball

// at bounds f at the single point a.
func (f ballFn) at(a float64) (lo, hi float64) {
	return f(ball.FromFloat64(a, ballPrec), ballPrec).Endpoints()
}

// over bounds f over all of x.
func (f ballFn) over(x Interval) (lo, hi float64) {
	return f(x.Ball(ballPrec), ballPrec).Endpoints()
}

// clamped returns [lo, hi] ∩ [min, max] decorated d.
func clamped(x Interval, lo, hi, min, max float64, d Decoration) Interval {
	return result(math.Max(lo, min), math.Min(hi, max), d, x)
}

// bySign picks the range [min, max] of a function from the sign of its
// argument, taking the hull when x has both signs.
func bySign(x Interval, negMin, negMax, posMin, posMax float64) (min, max float64) {
	switch {
	case x.lo >= 0:
		return posMin, posMax
	case x.hi <= 0:
		return negMin, negMax
	}
	return math.Min(negMin, posMin), math.Max(negMax, posMax)
}

// twoBelow is the largest float64 less than 2.
var twoBelow = nextDown(2)

// erfPoint bounds erf a. Beyond |a| = 6, erf a is within 2^-55 of ±1.
func erfPoint(a float64) (lo, hi float64) {
	switch {
	case a == 0:
		return 0, 0
	case a > 6:
		return oneBelow, 1
	case a < -6:
		return -1, -oneBelow
	}
	return ballFn(ball.Erf).at(a)
}

// erfcPoint bounds erfc a. Beyond 27.3 erfc a is below the smallest
// subnormal, and below -6 it is within 2^-55 of 2.
func erfcPoint(a float64) (lo, hi float64) {
	switch {
	case a == 0:
		return 1, 1
	case a > 27.3:
		return 0, math.SmallestNonzeroFloat64
	case a < -6:
		return twoBelow, 2
	}
	return ballFn(ball.Erfc).at(a)
}

// Erf returns the error function of x.
func (x Interval) Erf() Interval {
	return increasing(x, erfPoint, -1, 1, Com)
}

// Erfc returns the complementary error function of x.
func (x Interval) Erfc() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, _ := erfcPoint(x.hi)
	_, hi := erfcPoint(x.lo)
	return result(math.Max(lo, 0), math.Min(hi, 2), Com, x)
}

// Erfi returns the imaginary error function of x.
func (x Interval) Erfi() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, _ := ballFn(ball.Erfi).at(x.lo)
	_, hi := ballFn(ball.Erfi).at(x.hi)
	min, max := bySign(x, math.Inf(-1), 0, 0, math.Inf(1))
	return clamped(x, lo, hi, min, max, Com)
}

// gammaMin bounds the minimum of Γ on the positive reals, at x ≈ 1.4616.
const (
	gammaMinX = 1.4616321449683622
	gammaMin  = 0.8856031944108886
)

// gammaPoint bounds Γ(a) away from the poles. Γ overflows binary64 beyond
// a = 171.7.
func gammaPoint(a float64) (lo, hi float64) {
	switch {
	case math.IsInf(a, 1):
		return a, a
	case a > 171.7:
		return math.MaxFloat64, math.Inf(1)
	}
	return ballFn(ball.Gamma).at(a)
}

// gammaNegMin returns a lower bound for |Γ| between the poles at -k-1 and -k.
// There |Γ(x)| = π / (|sin πx| Γ(1-x)) and Γ(1-x) ≤ (k+1)!.
func gammaNegMin(k float64) float64 {
	if k > 170 {
		return 0
	}
	f := 1.0
	for i := 2.0; i <= k+1; i++ {
		f = mulUp(f, i)
	}
	return divDown(piLo, f)
}

// Gamma returns the gamma function of x. Intervals containing a pole give
// the entire line decorated Trv.
func (x Interval) Gamma() Interval {
	if x.IsEmpty() {
		return x
	}
	if x.lo <= 0 && (x.hi >= 0 || math.Floor(x.lo) != math.Floor(x.hi) || x.lo == math.Floor(x.lo) || math.IsInf(x.lo, -1)) {
		return result(math.Inf(-1), math.Inf(1), Trv, x)
	}
	l1, h1 := gammaPoint(x.lo)
	l2, h2 := gammaPoint(x.hi)
	hi := math.Max(h1, h2)
	if x.lo > 0 {
		// Γ is log-convex, so its maximum on x is at a bound.
		lo := gammaMin
		if !x.Contains(gammaMinX) {
			lo = math.Max(math.Min(l1, l2), gammaMin)
		}
		return result(lo, hi, Com, x)
	}
	if x.lo == x.hi {
		return result(l1, h1, Com, x)
	}
	// Between poles at -k-1 and -k, Γ has the sign (-1)^(k+1) and its
	// magnitude is log-convex, so the largest magnitude is at a bound.
	k := -math.Floor(x.hi) - 1
	m := gammaNegMin(k)
	if math.Mod(k, 2) == 0 {
		return result(math.Min(l1, l2), -m, Com, x)
	}
	return result(m, hi, Com, x)
}

// digammaPoint bounds ψ(a) for a away from the poles. For large a it uses
// ln a - 1/a < ψ(a) < ln a.
func digammaPoint(a float64) (lo, hi float64) {
	switch {
	case math.IsInf(a, 1):
		return a, a
	case a > 1<<16:
		l, h := logPoint(a)
		return subDown(l, divUp(1, a)), h
	}
	return ballFn(ball.Digamma).at(a)
}

// Digamma returns the digamma function ψ(x) = Γ'(x)/Γ(x). It increases
// between its poles at the nonpositive integers.
func (x Interval) Digamma() Interval {
	if x.IsEmpty() {
		return x
	}
	if x.lo <= 0 && (x.hi >= 0 || math.Floor(x.lo) != math.Floor(x.hi) || x.lo == math.Floor(x.lo) || math.IsInf(x.lo, -1)) {
		return result(math.Inf(-1), math.Inf(1), Trv, x)
	}
	return increasing(x, digammaPoint, math.Inf(-1), math.Inf(1), Com)
}

// GammaInc returns the upper incomplete gamma function Γ(a, x). It is
// computed only for a singleton a > 0 and x ≥ 0, where it decreases in x;
// other arguments give the entire line decorated Trv.
func GammaInc(a, x Interval) Interval {
	if a.IsEmpty() || x.IsEmpty() {
		return result(1, 0, Trv, a, x)
	}
	av, ok := a.Float64()
	if !ok || !(av > 0) {
		return result(math.Inf(-1), math.Inf(1), Trv, a, x)
	}
	d := domain(x, 0, math.Inf(1))
	x = x.restrict(0, math.Inf(1))
	if x.IsEmpty() {
		return result(1, 0, Trv, a, x)
	}
	lo, _ := gammaIncPoint(av, x.hi)
	_, hi := gammaIncPoint(av, x.lo)
	return result(math.Max(lo, 0), hi, d, a, x)
}

// gammaIncPoint bounds Γ(a, b) for a > 0 and b ≥ 0. For a ≤ 4096 and
// b > 2^19, Γ(a, b) < b^(a-1) e^-b is below the smallest subnormal.
func gammaIncPoint(a, b float64) (lo, hi float64) {
	switch {
	case math.IsInf(b, 1):
		return 0, 0
	case b > 1<<19 && a <= 4096:
		return 0, math.SmallestNonzeroFloat64
	}
	g := ball.GammaInc(ball.FromFloat64(a, ballPrec), ball.FromFloat64(b, ballPrec), ballPrec)
	return g.Endpoints()
}

// AiryAi returns the Airy function Ai(x).
func (x Interval) AiryAi() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, hi := ballFn(ball.AiryAi).over(x)
	min, max := bySign(x, -0.42, 0.54, 0, 0.3551)
	return clamped(x, lo, hi, min, max, Com)
}

// AiryAiPrime returns the derivative of the Airy function Ai.
func (x Interval) AiryAiPrime() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, hi := ballFn(ball.AiryAiPrime).over(x)
	min, max := bySign(x, math.Inf(-1), math.Inf(1), -0.2589, 0)
	return clamped(x, lo, hi, min, max, Com)
}

// AiryBi returns the Airy function Bi(x).
func (x Interval) AiryBi() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, hi := ballFn(ball.AiryBi).over(x)
	min, max := bySign(x, -0.72, 0.72, 0.6149, math.Inf(1))
	return clamped(x, lo, hi, min, max, Com)
}

// AiryBiPrime returns the derivative of the Airy function Bi.
func (x Interval) AiryBiPrime() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, hi := ballFn(ball.AiryBiPrime).over(x)
	min, max := bySign(x, math.Inf(-1), math.Inf(1), 0.4482, math.Inf(1))
	return clamped(x, lo, hi, min, max, Com)
}

// Si returns the sine integral of x.
func (x Interval) Si() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, hi := ballFn(ball.Si).over(x)
	min, max := bySign(x, -1.852, 0, 0, 1.852)
	return clamped(x, lo, hi, min, max, Com)
}

// Ci returns the cosine integral of x, for x > 0.
func (x Interval) Ci() Interval {
	d := Com
	if x.IsEmpty() || !(x.lo > 0) {
		d = Trv
	}
	x = x.restrict(0, math.Inf(1))
	if x.IsEmpty() || x.hi == 0 {
		return result(1, 0, Trv, x)
	}
	lo, hi := ballFn(ball.Ci).over(x)
	return clamped(x, lo, hi, math.Inf(-1), 0.4721, d)
}

// Shi returns the hyperbolic sine integral of x.
func (x Interval) Shi() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, _ := ballFn(ball.Shi).at(x.lo)
	_, hi := ballFn(ball.Shi).at(x.hi)
	min, max := bySign(x, math.Inf(-1), 0, 0, math.Inf(1))
	return clamped(x, lo, hi, min, max, Com)
}

// Chi returns the hyperbolic cosine integral of x, for x > 0, where it
// increases.
func (x Interval) Chi() Interval {
	d := Com
	if x.IsEmpty() || !(x.lo > 0) {
		d = Trv
	}
	x = x.restrict(0, math.Inf(1))
	if x.IsEmpty() || x.hi == 0 {
		return result(1, 0, Trv, x)
	}
	lo := math.Inf(-1)
	if x.lo > 0 {
		lo, _ = ballFn(ball.Chi).at(x.lo)
	}
	_, hi := ballFn(ball.Chi).at(x.hi)
	return result(lo, hi, d, x)
}

// Ei returns the exponential integral of x, for x ≠ 0. It decreases on the
// negative reals and increases on the positive reals.
func (x Interval) Ei() Interval {
	if x.IsEmpty() {
		return x
	}
	d := Com
	if x.Contains(0) {
		d = Trv
	}
	r := Empty()
	if neg := x.restrict(math.Inf(-1), 0); !neg.IsEmpty() && neg.lo < 0 {
		lo, hi := math.Inf(-1), 0.0
		if neg.hi < 0 {
			lo, _ = ballFn(ball.Ei).at(neg.hi)
		}
		if !math.IsInf(neg.lo, -1) {
			_, h := ballFn(ball.Ei).at(neg.lo)
			hi = math.Min(h, 0)
		}
		r = r.Hull(Interval{lo: lo, hi: hi, dec: Com})
	}
	if pos := x.restrict(0, math.Inf(1)); !pos.IsEmpty() && pos.hi > 0 {
		lo := math.Inf(-1)
		if pos.lo > 0 {
			lo, _ = ballFn(ball.Ei).at(pos.lo)
		}
		_, hi := ballFn(ball.Ei).at(pos.hi)
		r = r.Hull(Interval{lo: lo, hi: hi, dec: Com})
	}
	if r.IsEmpty() {
		return result(1, 0, Trv, x)
	}
	return result(r.lo, r.hi, d, x)
}

// Li returns the logarithmic integral of x, for x ≥ 0 and x ≠ 1. It
// decreases on [0, 1) from li(0) = 0 and increases on (1, ∞).
func (x Interval) Li() Interval {
	d := Com
	if x.IsEmpty() || x.lo < 0 || x.Contains(1) {
		d = Trv
	}
	x = x.restrict(0, math.Inf(1))
	if x.IsEmpty() {
		return result(1, 0, Trv, x)
	}
	li := func(a float64) (lo, hi float64) {
		if a == 0 {
			return 0, 0
		}
		return ballFn(ball.Li).at(a)
	}
	r := Empty()
	if below := x.restrict(0, 1); !below.IsEmpty() && below.lo < 1 {
		lo := math.Inf(-1)
		if below.hi < 1 {
			lo, _ = li(below.hi)
		}
		_, hi := li(below.lo)
		r = r.Hull(Interval{lo: lo, hi: math.Min(hi, 0), dec: Com})
	}
	if above := x.restrict(1, math.Inf(1)); !above.IsEmpty() && above.hi > 1 {
		lo := math.Inf(-1)
		if above.lo > 1 {
			lo, _ = li(above.lo)
		}
		_, hi := li(above.hi)
		r = r.Hull(Interval{lo: lo, hi: hi, dec: Com})
	}
	if r.IsEmpty() {
		return result(1, 0, Trv, x)
	}
	return result(r.lo, r.hi, d, x)
}

// FresnelS returns the Fresnel integral S(x) = ∫ sin(πt²/2) dt from 0 to x.
func (x Interval) FresnelS() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, hi := ballFn(ball.FresnelS).over(x)
	min, max := bySign(x, -0.714, 0, 0, 0.714)
	return clamped(x, lo, hi, min, max, Com)
}

// FresnelC returns the Fresnel integral C(x) = ∫ cos(πt²/2) dt from 0 to x.
func (x Interval) FresnelC() Interval {
	if x.IsEmpty() {
		return x
	}
	lo, hi := ballFn(ball.FresnelC).over(x)
	min, max := bySign(x, -0.78, 0, 0, 0.78)
	return clamped(x, lo, hi, min, max, Com)
}

// besselOrder extracts an integer order from a singleton interval.
func besselOrder(n Interval) (int, bool) {
	v, ok := n.Float64()
	if !ok || v != math.Trunc(v) || math.Abs(v) > ball.MaxBesselOrder {
		return 0, false
	}
	return int(v), true
}

// bessel evaluates a Bessel function of integer order n over x. second
// marks functions defined only for x > 0.
func bessel(n, x Interval, f func(int, *ball.Ball, uint) *ball.Ball, second bool, min, max float64) Interval {
	if n.IsEmpty() || x.IsEmpty() {
		return result(1, 0, Trv, n, x)
	}
	k, ok := besselOrder(n)
	if !ok {
		return result(math.Inf(-1), math.Inf(1), Trv, n, x)
	}
	d := Com
	if second {
		if !(x.lo > 0) {
			d = Trv
		}
		x = x.restrict(0, math.Inf(1))
		if x.IsEmpty() || x.hi == 0 {
			return result(1, 0, Trv, n, x)
		}
	}
	lo, hi := f(k, x.Ball(ballPrec), ballPrec).Endpoints()
	return result(math.Max(lo, min), math.Min(hi, max), d, n, x)
}

// BesselJ returns the Bessel function of the first kind J_n(x) for integer n.
func BesselJ(n, x Interval) Interval {
	return bessel(n, x, ball.BesselJ, false, -1, 1)
}

// BesselY returns the Bessel function of the second kind Y_n(x) for integer
// n and x > 0.
func BesselY(n, x Interval) Interval {
	return bessel(n, x, ball.BesselY, true, math.Inf(-1), math.Inf(1))
}

// BesselI returns the modified Bessel function of the first kind I_n(x) for
// integer n.
func BesselI(n, x Interval) Interval {
	return bessel(n, x, ball.BesselI, false, math.Inf(-1), math.Inf(1))
}

// BesselK returns the modified Bessel function of the second kind K_n(x) for
// integer n and x > 0.
func BesselK(n, x Interval) Interval {
	return bessel(n, x, ball.BesselK, true, 0, math.Inf(1))
}
