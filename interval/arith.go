package interval

import (
	"math"
	"math/big"
	"sort"
)

// Neg returns -x.
func (x Interval) Neg() Interval {
	if x.IsEmpty() {
		return x
	}
	return Interval{lo: -x.hi, hi: -x.lo, dec: x.dec}
}

// Add returns x + y.
func (x Interval) Add(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return result(1, 0, Trv, x, y)
	}
	return result(addDown(x.lo, y.lo), addUp(x.hi, y.hi), Com, x, y)
}

// Sub returns x - y.
func (x Interval) Sub(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return result(1, 0, Trv, x, y)
	}
	return result(subDown(x.lo, y.hi), subUp(x.hi, y.lo), Com, x, y)
}

// Mul returns x × y.
func (x Interval) Mul(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return result(1, 0, Trv, x, y)
	}
	lo := math.Min(math.Min(mulDown(x.lo, y.lo), mulDown(x.lo, y.hi)), math.Min(mulDown(x.hi, y.lo), mulDown(x.hi, y.hi)))
	hi := math.Max(math.Max(mulUp(x.lo, y.lo), mulUp(x.lo, y.hi)), math.Max(mulUp(x.hi, y.lo), mulUp(x.hi, y.hi)))
	return result(lo, hi, Com, x, y)
}

// Div returns x / y. If y contains zero, the result is the hull of the
// quotient set and is decorated Trv.
func (x Interval) Div(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() || (y.lo == 0 && y.hi == 0) {
		return result(1, 0, Trv, x, y)
	}
	if y.lo < 0 && y.hi > 0 {
		if x.lo == 0 && x.hi == 0 {
			return result(0, 0, Trv, x, y)
		}
		return result(math.Inf(-1), math.Inf(1), Trv, x, y)
	}
	if y.lo == 0 || y.hi == 0 {
		// One-sided: the quotient set is unbounded on one or both sides.
		lo, hi := divHalf(x, y)
		return result(lo, hi, Trv, x, y)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, a := range [2]float64{x.lo, x.hi} {
		for _, b := range [2]float64{y.lo, y.hi} {
			if math.IsInf(a, 0) && math.IsInf(b, 0) {
				continue
			}
			lo = math.Min(lo, divDown(a, b))
			hi = math.Max(hi, divUp(a, b))
		}
	}
	if math.IsInf(lo, 1) {
		// Only ∞/∞ corners, so x and y are both unbounded on the same side.
		lo, hi = 0, math.Inf(1)
		if (x.lo < 0) != (y.lo < 0) {
			lo, hi = math.Inf(-1), 0
		}
	}
	return result(lo, hi, Com, x, y)
}

// divHalf divides x by a y that has zero as exactly one of its bounds.
func divHalf(x, y Interval) (lo, hi float64) {
	pos := y.hi > 0
	switch {
	case x.lo == 0 && x.hi == 0:
		return 0, 0
	case x.lo >= 0 && pos:
		return divDown(x.lo, y.hi), math.Inf(1)
	case x.lo >= 0:
		return math.Inf(-1), divUp(x.lo, y.lo)
	case x.hi <= 0 && pos:
		return math.Inf(-1), divUp(x.hi, y.hi)
	case x.hi <= 0:
		return divDown(x.hi, y.lo), math.Inf(1)
	}
	return math.Inf(-1), math.Inf(1)
}

// Recip returns 1 / x.
func (x Interval) Recip() Interval {
	return Point(1).Div(x)
}

// Sqr returns x².
func (x Interval) Sqr() Interval {
	if x.IsEmpty() {
		return x
	}
	m, g := x.Mag(), x.Mig()
	return result(mulDown(g, g), mulUp(m, m), Com, x)
}

// Sqrt returns √x over the part of x that is nonnegative.
func (x Interval) Sqrt() Interval {
	d := domain(x, 0, math.Inf(1))
	x = x.restrict(0, math.Inf(1))
	if x.IsEmpty() {
		return result(1, 0, Trv, x)
	}
	return result(sqrtDown(x.lo), sqrtUp(x.hi), d, x)
}

// domain returns Com if x lies within [lo, hi] and Trv otherwise.
func domain(x Interval, lo, hi float64) Decoration {
	if x.IsEmpty() || (lo <= x.lo && x.hi <= hi) {
		return Com
	}
	return Trv
}

// Abs returns |x|.
func (x Interval) Abs() Interval {
	if x.IsEmpty() {
		return x
	}
	return result(x.Mig(), x.Mag(), Com, x)
}

// Floor returns ⌊x⌋. It is continuous only where it is constant.
func (x Interval) Floor() Interval {
	if x.IsEmpty() {
		return x
	}
	return step(x, math.Floor(x.lo), math.Floor(x.hi))
}

// Ceil returns ⌈x⌉.
func (x Interval) Ceil() Interval {
	if x.IsEmpty() {
		return x
	}
	return step(x, math.Ceil(x.lo), math.Ceil(x.hi))
}

// Sign returns the sign of x as a subset of [-1, 1].
func (x Interval) Sign() Interval {
	if x.IsEmpty() {
		return x
	}
	return step(x, sign(x.lo), sign(x.hi))
}

// step returns [lo, hi] for a monotone piecewise constant function of x.
func step(x Interval, lo, hi float64) Interval {
	d := Com
	if lo != hi {
		d = Def
	}
	return result(lo, hi, d, x)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Max returns the elementwise maximum of x and y.
func (x Interval) Max(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return result(1, 0, Trv, x, y)
	}
	return result(math.Max(x.lo, y.lo), math.Max(x.hi, y.hi), Com, x, y)
}

// Min returns the elementwise minimum of x and y.
func (x Interval) Min(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return result(1, 0, Trv, x, y)
	}
	return result(math.Min(x.lo, y.lo), math.Min(x.hi, y.hi), Com, x, y)
}

// One returns [1, 1] for nonempty x and the empty interval otherwise.
func (x Interval) One() Interval {
	if x.IsEmpty() {
		return x
	}
	return result(1, 1, Com, x)
}

// UndefAt0 returns x itself as a function that is undefined at zero: a zero
// singleton becomes empty, and intervals containing zero are decorated Trv.
func (x Interval) UndefAt0() Interval {
	switch {
	case x.IsEmpty():
		return x
	case x.lo == 0 && x.hi == 0:
		return result(1, 0, Trv, x)
	case x.Contains(0):
		return result(x.lo, x.hi, Trv, x)
	}
	return x
}

// Pown returns x^n for an integer n. x^0 is 1, including at zero.
func (x Interval) Pown(n int64) Interval {
	if x.IsEmpty() {
		return x
	}
	switch {
	case n == 0:
		return result(1, 1, Com, x)
	case n < 0:
		p := x.pown(magnitude(n))
		if x.Contains(0) {
			if x.lo == 0 && x.hi == 0 {
				return result(1, 0, Trv, x)
			}
			if n%2 != 0 && x.lo < 0 && x.hi > 0 {
				return result(math.Inf(-1), math.Inf(1), Trv, x)
			}
			// The zero bound maps to ±∞ and the other to 1/p.
			if n%2 != 0 && x.hi == 0 {
				return result(math.Inf(-1), divUp(1, p.lo), Trv, x)
			}
			return result(divDown(1, p.hi), math.Inf(1), Trv, x)
		}
		return result(divDown(1, p.hi), divUp(1, p.lo), Com, x)
	}
	return x.pown(uint64(n))
}

// pown returns x^k for k > 0.
func (x Interval) pown(k uint64) Interval {
	if k == 1 {
		return x
	}
	if k%2 == 0 {
		m, g := x.Mag(), x.Mig()
		lo, _ := powPoint(g, k)
		_, hi := powPoint(m, k)
		return result(lo, hi, Com, x)
	}
	lo, _ := powPoint(x.lo, k)
	_, hi := powPoint(x.hi, k)
	return result(lo, hi, Com, x)
}

// magnitude returns |n|, which does not overflow for math.MinInt64.
func magnitude(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

// Pow returns x^y. Where y is an integer singleton, this is Pown. Otherwise x
// is restricted to x ≥ 0, with 0^y defined only for y > 0.
func (x Interval) Pow(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return result(1, 0, Trv, x, y)
	}
	if v, ok := y.Float64(); ok && v == math.Trunc(v) && math.Abs(v) < 1<<62 {
		p := x.Pown(int64(v))
		return result(p.lo, p.hi, p.dec, p, y)
	}
	d := domain(x, 0, math.Inf(1))
	x = x.restrict(0, math.Inf(1))
	if x.IsEmpty() {
		return result(1, 0, Trv, x, y)
	}
	if x.lo == 0 && y.lo <= 0 {
		d = Trv
		if x.hi == 0 {
			if y.hi <= 0 {
				return result(1, 0, Trv, x, y)
			}
			return result(0, 0, Trv, x, y)
		}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, a := range [2]float64{x.lo, x.hi} {
		for _, b := range [2]float64{y.lo, y.hi} {
			l, h, ok := powCorner(a, b)
			if !ok {
				continue
			}
			lo, hi = math.Min(lo, l), math.Max(hi, h)
		}
	}
	return result(lo, hi, d, x, y)
}

// powCorner bounds a^b for a ≥ 0. ok is false where the value has no limit
// that bounds the neighboring values, namely 0^0 and ∞^0.
func powCorner(a, b float64) (lo, hi float64, ok bool) {
	switch {
	case b == 0 && (a == 0 || math.IsInf(a, 1)):
		return 0, 0, false
	case a == 0, math.IsInf(a, 1), math.IsInf(b, 0), a == 1, b == 0:
		v := math.Pow(a, b)
		return v, v, true
	}
	lo, hi = powBall(a, b)
	return lo, hi, true
}

// RankedMin returns the enclosure of the k-th smallest element of xs, with
// k counted from 1. A rank that is not a positive integer within range
// contributes nothing.
func RankedMin(xs []Interval, k Interval) Interval {
	return ranked(xs, k, false)
}

// RankedMax returns the enclosure of the k-th largest element of xs, with k
// counted from 1.
func RankedMax(xs []Interval, k Interval) Interval {
	return ranked(xs, k, true)
}

func ranked(xs []Interval, k Interval, largest bool) Interval {
	in := make([]Interval, 0, len(xs)+1)
	in = append(append(in, xs...), k)
	if k.IsEmpty() || len(xs) == 0 {
		return result(1, 0, Trv, in...)
	}
	los := make([]float64, len(xs))
	his := make([]float64, len(xs))
	for i, x := range xs {
		if x.IsEmpty() {
			return result(1, 0, Trv, in...)
		}
		los[i], his[i] = x.lo, x.hi
	}
	sort.Float64s(los)
	sort.Float64s(his)
	// The k-th smallest element lies between the k-th smallest lower bound
	// and the k-th smallest upper bound.
	first := math.Max(math.Ceil(k.lo), 1)
	last := math.Min(math.Floor(k.hi), float64(len(xs)))
	d := Com
	if !k.IsSingleton() || first != k.lo || last != k.hi {
		d = Trv
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := first; i <= last; i++ {
		j := int(i) - 1
		if largest {
			j = len(xs) - int(i)
		}
		lo, hi = math.Min(lo, los[j]), math.Max(hi, his[j])
	}
	return result(lo, hi, d, in...)
}

// Gcd returns the greatest common divisor of x and y. Singletons are exact;
// otherwise the result is bounded by the magnitudes of the operands and
// decorated Trv.
func (x Interval) Gcd(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return result(1, 0, Trv, x, y)
	}
	a, aok := x.Rat()
	b, bok := y.Rat()
	if aok && bok {
		g := RatGcd(a, b)
		r := FromRat(g)
		return result(r.lo, r.hi, Com, x, y)
	}
	return result(0, math.Max(x.Mag(), y.Mag()), Trv, x, y)
}

// Lcm returns the least common multiple of x and y. lcm(x, 0) is 0.
func (x Interval) Lcm(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return result(1, 0, Trv, x, y)
	}
	a, aok := x.Rat()
	b, bok := y.Rat()
	if aok && bok {
		r := FromRat(RatLcm(a, b))
		return result(r.lo, r.hi, Com, x, y)
	}
	return result(0, math.Inf(1), Trv, x, y)
}

// RemEuclid returns the Euclidean remainder x - |y| ⌊x / |y|⌋, which lies in
// [0, |y|).
func (x Interval) RemEuclid(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() || (y.lo == 0 && y.hi == 0) {
		return result(1, 0, Trv, x, y)
	}
	a, aok := x.Rat()
	b, bok := y.Rat()
	if aok && bok {
		r := FromRat(RatRemEuclid(a, b))
		return result(r.lo, r.hi, Com, x, y)
	}
	ay := y.Abs()
	bound := Interval{lo: 0, hi: ay.hi, dec: Com}
	if y.Contains(0) {
		return result(0, ay.hi, Trv, x, y)
	}
	q := x.Div(ay).Floor()
	if q.IsSingleton() {
		r := x.Sub(ay.Mul(q)).Intersect(bound)
		return result(r.lo, r.hi, Com, x, y)
	}
	return result(0, ay.hi, Def, x, y)
}

// RatGcd returns the nonnegative greatest common divisor of two rationals,
// gcd(a/b, c/d) = gcd(ad, cb) / bd.
func RatGcd(x, y *big.Rat) *big.Rat {
	ad := new(big.Int).Mul(x.Num(), y.Denom())
	cb := new(big.Int).Mul(y.Num(), x.Denom())
	ad.Abs(ad)
	cb.Abs(cb)
	g := new(big.Int).GCD(nil, nil, ad, cb)
	bd := new(big.Int).Mul(x.Denom(), y.Denom())
	return new(big.Rat).SetFrac(g, bd)
}

// RatLcm returns the nonnegative least common multiple of two rationals,
// |xy| / gcd(x, y), or 0 if either is 0.
func RatLcm(x, y *big.Rat) *big.Rat {
	if x.Sign() == 0 || y.Sign() == 0 {
		return new(big.Rat)
	}
	p := new(big.Rat).Mul(x, y)
	p.Abs(p)
	return p.Quo(p, RatGcd(x, y))
}

// RatRemEuclid returns the Euclidean remainder of x by y, in [0, |y|). y
// must be nonzero.
func RatRemEuclid(x, y *big.Rat) *big.Rat {
	ay := new(big.Rat).Abs(y)
	q := new(big.Rat).Quo(x, ay)
	// ⌊q⌋ by Euclidean division of the numerator by the positive denominator.
	f := new(big.Int).Div(q.Num(), q.Denom())
	r := new(big.Rat).Mul(ay, new(big.Rat).SetInt(f))
	return r.Sub(x, r)
}
