package ball

import "math"

// Decimal expansions of constants used by the series below. Each is used
// through Constant, which encloses it within one unit in its last digit.
const (
	airyAi0       = "0.3550280538878172392600631860041831763979791741991772405834735943050340922469503097146901981318516578"
	airyNegAiP0   = "0.2588194037928067984051835601892039634790911383549345822101622081925366113484445670311873986735574176"
	sqrt3         = "1.7320508075688772935274463415058723669428052538103806280558069794519330169088000370811461867572486"
	twoOverSqrtPi = "1.1283791670955125738961589031215451716881012586579977136881714434212849368829868289734873204042147"
	eulerGamma    = "0.5772156649015328606065120900824024310421593359399235988046295907724714366326832267494007611354517"
)

// Limits on the argument magnitude beyond which the series need more terms
// or more working precision than they are allowed.
const (
	erfiMax    = 30
	erfMax     = 6
	erfcMax    = 28
	airyMax    = 30
	trigIntMax = 200
	fresnelMax = 12
	besselMax  = 100
	// MaxBesselOrder is the largest order accepted by the Bessel functions.
	MaxBesselOrder = 4096

	maxTerms = 1 << 16
)

// workPrec returns the working precision for a result wanted at prec bits
// when the series loses about extra bits to cancellation.
func workPrec(prec uint, extra float64) uint {
	return prec + 32 + uint(math.Ceil(extra))
}

// up nudges a float64 bound upward to cover its own rounding error.
func up(x float64) float64 {
	return x * (1 + 0x1p-40)
}

// termMag returns an upper bound for every element of t.
func termMag(t *Ball) mag {
	if !t.IsFinite() {
		return mag{inf: true}
	}
	return magAdd(magFromBig(&t.mid), t.rad)
}

// negligible reports whether m is at most |s| × 2^-prec, or at most 2^-2prec
// when s is near zero.
func negligible(m mag, s *Ball, prec uint) bool {
	switch {
	case m.inf:
		return false
	case m.isZero():
		return true
	case m.exp < -2*int64(prec):
		return true
	case s.mid.Sign() == 0:
		return false
	}
	// m < 2^m.exp and |s| ≥ 2^(e-1).
	return m.exp+int64(prec) < int64(s.mid.MantExp(nil))
}

// series returns an enclosure of the sum of t_k for k ≥ 0, where t holds t_0
// on entry. step(k, t) must replace t_k by t_{k+1}. ratio(k) must bound
// |t_{j+1} / t_j| for every j ≥ k. The tail is bounded once the ratio falls to
// 1/2, so it is at most the magnitude of the last term summed.
func series(t *Ball, prec uint, step func(k uint64, t *Ball), ratio func(k uint64) float64) *Ball {
	s := t.Clone()
	for k := uint64(0); k < maxTerms; k++ {
		if !t.IsFinite() {
			break
		}
		if ratio(k) <= 0.5 {
			if m := termMag(t); negligible(m, s, prec) {
				s.rad = magAdd(s.rad, m)
				return s
			}
		}
		step(k, t)
		s.Add(s, t)
	}
	return s.SetZeroPmInf()
}

// round returns x rounded to prec bits.
func round(x *Ball, prec uint) *Ball {
	return New(prec).Set(x)
}

// Erfi returns an enclosure of the imaginary error function
// erfi(x) = 2/√π Σ x^(2k+1) / (k! (2k+1)).
func Erfi(x *Ball, prec uint) *Ball {
	r := x.MagUpper()
	if !(r <= erfiMax) {
		return ZeroPmInf(prec)
	}
	wp := workPrec(prec, 0)
	return round(errorSeries(x, r, wp, false), prec)
}

// Erf returns an enclosure of the error function
// erf(x) = 2/√π Σ (-1)^k x^(2k+1) / (k! (2k+1)).
func Erf(x *Ball, prec uint) *Ball {
	r := x.MagUpper()
	if !(r <= erfMax) {
		return ZeroPmInf(prec)
	}
	// The terms grow to about e^(x²) before they cancel.
	wp := workPrec(prec, 1.5*r*r)
	return round(errorSeries(x, r, wp, true), prec)
}

// Erfc returns an enclosure of the complementary error function
// erfc(x) = 1 - erf(x).
func Erfc(x *Ball, prec uint) *Ball {
	r := x.MagUpper()
	if !(r <= erfcMax) {
		return ZeroPmInf(prec)
	}
	// erfc(x) is about e^(-x²), so the difference loses as many bits again.
	wp := workPrec(prec, 3*r*r)
	e := errorSeries(x, r, wp, true)
	return round(e.Sub(one(wp), e), prec)
}

// errorSeries sums 2/√π Σ (±x²)^k x / (k! (2k+1)) for |x| ≤ r, alternating
// when alt is set.
func errorSeries(x *Ball, r float64, wp uint, alt bool) *Ball {
	x2 := New(wp).Sqr(x)
	if alt {
		x2.Neg(x2)
	}
	p := New(wp).Set(x)
	r2 := up(r * r)
	s := series(New(wp).Set(x), wp, func(k uint64, t *Ball) {
		p.Mul(p, x2)
		p.DivUint(p, k+1)
		t.DivUint(p, 2*k+3)
	}, func(k uint64) float64 {
		return r2 / float64(k+1)
	})
	return s.Mul(s, Constant(twoOverSqrtPi, wp))
}

// AiryAi returns an enclosure of the Airy function Ai(x).
func AiryAi(x *Ball, prec uint) *Ball { return airy(x, prec, false, false) }

// AiryAiPrime returns an enclosure of Ai'(x).
func AiryAiPrime(x *Ball, prec uint) *Ball { return airy(x, prec, true, false) }

// AiryBi returns an enclosure of the Airy function Bi(x).
func AiryBi(x *Ball, prec uint) *Ball { return airy(x, prec, false, true) }

// AiryBiPrime returns an enclosure of Bi'(x).
func AiryBiPrime(x *Ball, prec uint) *Ball { return airy(x, prec, true, true) }

// airy evaluates the Maclaurin series Ai = c1 f - c2 g, Bi = √3 (c1 f + c2 g)
// or their derivatives, where c1 = Ai(0) and c2 = -Ai'(0).
func airy(x *Ball, prec uint, deriv, bi bool) *Ball {
	r := x.MagUpper()
	if !(r <= airyMax) {
		return ZeroPmInf(prec)
	}
	// f and g grow like exp(2/3 |x|^1.5) while Ai decays just as fast.
	wp := workPrec(prec, 2*math.Pow(r, 1.5))
	x3 := New(wp).Sqr(x)
	x3.Mul(x3, x)
	r3 := up(r * r * r)
	ratio := func(k uint64) float64 {
		q := float64(k)
		return r3 / ((3*q + 1) * (3*q + 3))
	}
	term := func(a, b uint64) func(k uint64, t *Ball) {
		return func(k uint64, t *Ball) {
			t.Mul(t, x3)
			t.DivUint(t, (3*k+a)*(3*k+b))
		}
	}
	var f, g *Ball
	if !deriv {
		f = series(FromFloat64(1, wp), wp, term(2, 3), ratio)
		g = series(New(wp).Set(x), wp, term(3, 4), ratio)
	} else {
		u := New(wp).Sqr(x)
		u.DivUint(u, 2)
		f = series(u, wp, term(3, 5), ratio)
		g = series(FromFloat64(1, wp), wp, term(1, 3), ratio)
	}
	f.Mul(f, Constant(airyAi0, wp))
	g.Mul(g, Constant(airyNegAiP0, wp))
	if bi {
		f.Add(f, g)
		f.Mul(f, Constant(sqrt3, wp))
	} else {
		f.Sub(f, g)
	}
	return round(f, prec)
}

// Si returns an enclosure of the sine integral.
func Si(x *Ball, prec uint) *Ball { return sinIntegral(x, prec, false) }

// Shi returns an enclosure of the hyperbolic sine integral.
func Shi(x *Ball, prec uint) *Ball { return sinIntegral(x, prec, true) }

// sinIntegral sums x Σ (∓x²)^k / ((2k+1)! (2k+1)).
func sinIntegral(x *Ball, prec uint, hyp bool) *Ball {
	r := x.MagUpper()
	if !(r <= trigIntMax) {
		return ZeroPmInf(prec)
	}
	wp := workPrec(prec, 1.5*r)
	x2 := New(wp).Sqr(x)
	if !hyp {
		x2.Neg(x2)
	}
	p := New(wp).Set(x)
	r2 := up(r * r)
	s := series(New(wp).Set(x), wp, func(k uint64, t *Ball) {
		p.Mul(p, x2)
		p.DivUint(p, (2*k+2)*(2*k+3))
		t.DivUint(p, 2*k+3)
	}, func(k uint64) float64 {
		q := float64(k)
		return r2 / ((2*q + 2) * (2*q + 3))
	})
	return round(s, prec)
}

// Ci returns an enclosure of the cosine integral. x must be positive.
func Ci(x *Ball, prec uint) *Ball { return cosIntegral(x, prec, false) }

// Chi returns an enclosure of the hyperbolic cosine integral. x must be
// positive.
func Chi(x *Ball, prec uint) *Ball { return cosIntegral(x, prec, true) }

// cosIntegral sums γ + ln x + Σ_{k≥1} (∓x²)^k / (2k (2k)!).
func cosIntegral(x *Ball, prec uint, hyp bool) *Ball {
	r := x.MagUpper()
	if !x.Positive() || !(r <= trigIntMax) {
		return ZeroPmInf(prec)
	}
	wp := workPrec(prec, 1.5*r)
	x2 := New(wp).Sqr(x)
	if !hyp {
		x2.Neg(x2)
	}
	p := New(wp).DivUint(x2, 2)
	t := New(wp).DivUint(p, 2)
	r2 := up(r * r)
	s := series(t, wp, func(j uint64, t *Ball) {
		p.Mul(p, x2)
		p.DivUint(p, (2*j+3)*(2*j+4))
		t.DivUint(p, 2*j+4)
	}, func(j uint64) float64 {
		q := float64(j)
		return r2 / ((2*q + 3) * (2*q + 4))
	})
	s.Add(s, Constant(eulerGamma, wp))
	s.Add(s, New(wp).Log(x))
	return round(s, prec)
}

// Ei returns an enclosure of the exponential integral
// Ei(x) = γ + ln|x| + Σ_{k≥1} x^k / (k k!). x must not contain zero.
func Ei(x *Ball, prec uint) *Ball {
	r := x.MagUpper()
	if x.ContainsZero() || !(r <= trigIntMax) {
		return ZeroPmInf(prec)
	}
	wp := workPrec(prec, 1.5*r)
	p := New(wp).Set(x)
	s := series(New(wp).Set(x), wp, func(j uint64, t *Ball) {
		p.Mul(p, x)
		p.DivUint(p, j+2)
		t.DivUint(p, j+2)
	}, func(j uint64) float64 {
		return up(r) / float64(j+2)
	})
	s.Add(s, Constant(eulerGamma, wp))
	a := New(wp).Set(x)
	if a.mid.Sign() < 0 {
		a.Neg(a)
	}
	s.Add(s, a.Log(a))
	return round(s, prec)
}

// Li returns an enclosure of the logarithmic integral li(x) = Ei(ln x). x
// must be positive and must not contain 1.
func Li(x *Ball, prec uint) *Ball {
	if !x.Positive() {
		return ZeroPmInf(prec)
	}
	l := New(workPrec(prec, 0)).Log(x)
	return Ei(l, prec)
}

// FresnelS returns an enclosure of the Fresnel integral S(x), normalized so
// that S(∞) = 1/2.
func FresnelS(x *Ball, prec uint) *Ball {
	z := fresnel(x, prec)
	if z == nil {
		return ZeroPmInf(prec)
	}
	return round(&z.im, prec)
}

// FresnelC returns an enclosure of the Fresnel integral C(x), normalized so
// that C(∞) = 1/2.
func FresnelC(x *Ball, prec uint) *Ball {
	z := fresnel(x, prec)
	if z == nil {
		return ZeroPmInf(prec)
	}
	return round(&z.re, prec)
}

// fresnel returns C(x) + i S(x) = Σ (iπ/2)^n x^(2n+1) / (n! (2n+1)), or nil
// if x is too large.
func fresnel(x *Ball, prec uint) *Complex {
	r := x.MagUpper()
	if !(r <= fresnelMax) {
		return nil
	}
	wp := workPrec(prec, 2.3*r*r)
	c := New(wp).Pi()
	c.DivUint(c, 2)
	c.Mul(c, New(wp).Sqr(x))
	p := NewComplex(wp).SetBall(x)
	t := p.Clone()
	s := p.Clone()
	q := up(math.Pi / 2 * r * r)
	for n := uint64(0); n < maxTerms; n++ {
		if !t.IsFinite() {
			break
		}
		if q/float64(n+1) <= 0.5 {
			m := magAdd(termMag(&t.re), termMag(&t.im))
			if negligible(m, &s.re, wp) && negligible(m, &s.im, wp) {
				return s.addErrorMag(m)
			}
		}
		p.MulBall(p, c)
		p.MulI(p)
		p.DivUint(p, n+1)
		t.DivUint(p, 2*n+3)
		s.Add(s, t)
	}
	return nil
}

// BesselJ returns an enclosure of the Bessel function of the first kind of
// integer order n.
func BesselJ(n int, x *Ball, prec uint) *Ball {
	b := bessel(n, x, prec, false, false)
	if n < 0 && n%2 != 0 {
		b.Neg(b)
	}
	return b
}

// BesselY returns an enclosure of the Bessel function of the second kind of
// integer order n. x must be positive.
func BesselY(n int, x *Ball, prec uint) *Ball {
	b := bessel(n, x, prec, false, true)
	if n < 0 && n%2 != 0 {
		b.Neg(b)
	}
	return b
}

// BesselI returns an enclosure of the modified Bessel function of the first
// kind of integer order n.
func BesselI(n int, x *Ball, prec uint) *Ball {
	return bessel(n, x, prec, true, false)
}

// BesselK returns an enclosure of the modified Bessel function of the second
// kind of integer order n. x must be positive.
func BesselK(n int, x *Ball, prec uint) *Ball {
	return bessel(n, x, prec, true, true)
}

// bessel evaluates J, I, Y or K of order |n| from the ascending series
// (DLMF 10.2.2, 10.25.2, 10.8.1, 10.31.1).
func bessel(order int, x *Ball, prec uint, modified, second bool) *Ball {
	if order < 0 {
		order = -order
	}
	r := x.MagUpper()
	if order > MaxBesselOrder || !(r <= besselMax) || (second && !x.Positive()) {
		return ZeroPmInf(prec)
	}
	n := uint64(order)
	wp := workPrec(prec, 3*r)
	h := New(wp).DivUint(x, 2)
	q := New(wp).Sqr(h)
	// T_k = (x/2)^n σ^k (x/2)^(2k) / (k! (n+k)!), σ = -1 for J and Y.
	sq := New(wp).Set(q)
	if !modified {
		sq.Neg(sq)
	}
	t := New(wp).PowUint(h, n)
	t.Div(t, factorial(n, wp))
	if !t.IsFinite() {
		return ZeroPmInf(prec)
	}
	j := t.Clone()
	// d = Σ (H_k + H_(n+k)) T_k, with w the weight of the current term.
	d := New(wp)
	w := New(wp)
	for k := uint64(1); k <= n; k++ {
		w.Add(w, New(wp).DivUint(FromFloat64(1, wp), k))
	}
	quarter := up(r*r) / 4
	done := false
	for k := uint64(0); k < maxTerms; k++ {
		if second {
			d.Add(d, New(wp).Mul(w, t))
		}
		if quarter/float64((k+1)*(n+k+1)) <= 0.25 {
			m := termMag(t)
			if negligible(m, j, wp) && (!second || negligible(magMulUint(m, 2*(n+k+1)), d, wp)) {
				// The weights are at most 2(n+k+1) and the tail ratios at
				// most 1/4, so the tails are bounded by the current terms.
				j.rad = magAdd(j.rad, m)
				d.rad = magAdd(d.rad, magMulUint(m, 2*(n+k+1)))
				done = true
				break
			}
		}
		t.Mul(t, sq)
		t.DivUint(t, (k+1)*(n+k+1))
		j.Add(j, t)
		if second {
			w.Add(w, New(wp).DivUint(FromFloat64(1, wp), k+1))
			w.Add(w, New(wp).DivUint(FromFloat64(1, wp), n+k+1))
		}
	}
	if !done {
		return ZeroPmInf(prec)
	}
	if !second {
		return round(j, prec)
	}
	// Σ (ψ(k+1) + ψ(n+k+1)) T_k = d - 2γ J
	b := New(wp).Mul(Constant(eulerGamma, wp), j)
	b.MulUint(b, 2)
	b.Sub(d, b)
	// a = (x/2)^-n Σ_{k<n} (n-k-1)!/k! (-σ (x/2)²)^k
	a := New(wp)
	if n > 0 {
		aq := New(wp).Neg(sq)
		u := factorial(n-1, wp)
		for k := uint64(0); k < n; k++ {
			a.Add(a, u)
			if k+1 < n {
				u.Mul(u, aq)
				u.DivUint(u, (k+1)*(n-k-1))
			}
		}
		a.Div(a, New(wp).PowUint(h, n))
	}
	lj := New(wp).Log(h)
	lj.Mul(lj, j)
	var res *Ball
	if !modified {
		// Y = (2 ln(x/2) J - a - b) / π
		res = New(wp).MulUint(lj, 2)
		res.Sub(res, a)
		res.Sub(res, b)
		res.Div(res, New(wp).Pi())
	} else {
		// K = a/2 + (-1)^(n+1) ln(x/2) I + (-1)^n b/2
		if n%2 == 0 {
			lj.Neg(lj)
		} else {
			b.Neg(b)
		}
		res = New(wp).Add(a, b)
		res.DivUint(res, 2)
		res.Add(res, lj)
	}
	return round(res, prec)
}

// factorial returns n! as a ball.
func factorial(n uint64, prec uint) *Ball {
	r := FromFloat64(1, prec)
	for k := uint64(2); k <= n; k++ {
		r.MulUint(r, k)
	}
	return r
}
