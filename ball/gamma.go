package ball

import (
	"math"
	"math/big"
)

const (
	// gammaMax bounds the argument magnitude of Gamma and Digamma.
	gammaMax = 1 << 16
	// gammaIncMax bounds the parameter a of GammaInc.
	gammaIncMax = 1 << 12
	// stirlingTerms is the number of Bernoulli terms in the asymptotic
	// series for ln Γ and ψ.
	stirlingTerms = 30
)

// bernoulli holds the Bernoulli numbers B_2k for k = 0..stirlingTerms. It is
// filled once and never modified.
var bernoulli = bernoulliNumbers(stirlingTerms)

// bernoulliNumbers computes B_2k for k ≤ n from the recurrence
// Σ_{j≤m} C(m+1, j) B_j = 0.
func bernoulliNumbers(n int) []*big.Rat {
	m := 2 * n
	b := make([]*big.Rat, m+1)
	b[0] = big.NewRat(1, 1)
	for i := 1; i <= m; i++ {
		s := new(big.Rat)
		c := big.NewInt(1)
		for j := 0; j < i; j++ {
			s.Add(s, new(big.Rat).Mul(new(big.Rat).SetInt(c), b[j]))
			c.Mul(c, big.NewInt(int64(i+1-j)))
			c.Quo(c, big.NewInt(int64(j+1)))
		}
		b[i] = s.Quo(s, big.NewRat(-int64(i+1), 1))
	}
	r := make([]*big.Rat, n+1)
	for k := range r {
		r[k] = b[2*k]
	}
	return r
}

// fromRat returns a ball enclosing r.
func fromRat(r *big.Rat, prec uint) *Ball {
	lo := new(big.Float).SetPrec(prec).SetMode(big.ToNegativeInf).SetRat(r)
	hi := new(big.Float).SetPrec(prec).SetMode(big.ToPositiveInf).SetRat(r)
	return fromEndpoints(lo, hi, prec)
}

// stirlingMin returns the argument above which the asymptotic series is
// accurate to about 2^-wp.
func stirlingMin(wp uint) float64 {
	return math.Max(40, float64(wp)/4)
}

// shiftCount returns how many unit steps bring the midpoint of x to at least
// min.
func shiftCount(x *Ball, min float64) int {
	f := floatMid(x)
	if f >= min {
		return 0
	}
	return int(math.Ceil(min - f))
}

// lnGammaAsymptotic returns ln Γ(z) for z ≥ stirlingMin from Stirling's
// series (DLMF 5.11.1). For real z > 0 the remainder is bounded by the first
// omitted term.
func lnGammaAsymptotic(z *Ball, wp uint) *Ball {
	s := New(wp).Sub(z, FromFloat64(0.5, wp))
	s.Mul(s, New(wp).Log(z))
	s.Sub(s, z)
	c := New(wp).Pi()
	c.MulUint(c, 2)
	c.Log(c)
	s.Add(s, c.DivUint(c, 2))
	z2 := New(wp).Sqr(z)
	zp := New(wp).Set(z)
	for k := 1; k < stirlingTerms; k++ {
		t := fromRat(bernoulli[k], wp)
		t.Div(t, zp)
		t.DivUint(t, uint64(2*k*(2*k-1)))
		s.Add(s, t)
		zp.Mul(zp, z2)
	}
	k := stirlingTerms
	t := fromRat(bernoulli[k], wp)
	t.Div(t, zp)
	t.DivUint(t, uint64(2*k*(2*k-1)))
	return s.addErrorBall(t)
}

// digammaAsymptotic returns ψ(z) for z ≥ stirlingMin (DLMF 5.11.2), with the
// remainder bounded by the first omitted term.
func digammaAsymptotic(z *Ball, wp uint) *Ball {
	s := New(wp).Log(z)
	s.Sub(s, New(wp).Div(FromFloat64(0.5, wp), z))
	z2 := New(wp).Sqr(z)
	zp := New(wp).Set(z2)
	for k := 1; k < stirlingTerms; k++ {
		t := fromRat(bernoulli[k], wp)
		t.Div(t, zp)
		t.DivUint(t, uint64(2*k))
		s.Sub(s, t)
		zp.Mul(zp, z2)
	}
	k := stirlingTerms
	t := fromRat(bernoulli[k], wp)
	t.Div(t, zp)
	t.DivUint(t, uint64(2*k))
	return s.addErrorBall(t)
}

// Gamma returns an enclosure of Γ(x). Balls that may contain a pole give
// 0 ± ∞.
func Gamma(x *Ball, prec uint) *Ball {
	if !(x.MagUpper() <= gammaMax) {
		return ZeroPmInf(prec)
	}
	wp := workPrec(prec, 0)
	if floatMid(x) < 0.5 {
		// Γ(x) = π / (sin(πx) Γ(1-x))
		g := Gamma(New(wp).Sub(one(wp), x), wp)
		g.Mul(g, sinPi(x, wp))
		return round(g.Div(New(wp).Pi(), g), prec)
	}
	// Γ(x) = Γ(x+n) / (x (x+1) ... (x+n-1))
	z := New(wp).Set(x)
	d := one(wp)
	for n := shiftCount(x, stirlingMin(wp)); n > 0; n-- {
		d.Mul(d, z)
		z.Add(z, one(wp))
	}
	g := lnGammaAsymptotic(z, wp)
	g.Exp(g)
	return round(g.Div(g, d), prec)
}

// Digamma returns an enclosure of ψ(x) = Γ'(x)/Γ(x). Balls that may contain
// a pole give 0 ± ∞.
func Digamma(x *Ball, prec uint) *Ball {
	if !(x.MagUpper() <= gammaMax) {
		return ZeroPmInf(prec)
	}
	wp := workPrec(prec, 0)
	if floatMid(x) < 0.5 {
		// ψ(x) = ψ(1-x) - π cot(πx)
		g := Digamma(New(wp).Sub(one(wp), x), wp)
		c := cotPi(x, wp)
		c.Mul(c, New(wp).Pi())
		return round(g.Sub(g, c), prec)
	}
	// ψ(x) = ψ(x+n) - Σ 1/(x+j)
	z := New(wp).Set(x)
	acc := New(wp)
	for n := shiftCount(x, stirlingMin(wp)); n > 0; n-- {
		acc.Add(acc, New(wp).Div(one(wp), z))
		z.Add(z, one(wp))
	}
	g := digammaAsymptotic(z, wp)
	return round(g.Sub(g, acc), prec)
}

// GammaInc returns an enclosure of the upper incomplete gamma function
// Γ(a, x) = ∫ t^(a-1) e^-t dt from x to ∞, for a > 0 and x ≥ 0. Other
// arguments give 0 ± ∞.
func GammaInc(a, x *Ball, prec uint) *Ball {
	if !a.Positive() || !(a.MagUpper() <= gammaIncMax) || !(x.MagUpper() <= maxExpArg/2) {
		return ZeroPmInf(prec)
	}
	if x.IsExact() && x.mid.Sign() == 0 {
		return Gamma(a, prec)
	}
	if !x.Positive() {
		return ZeroPmInf(prec)
	}
	av, xv := floatMid(a), floatMid(x)
	wp := workPrec(prec, 0)
	if xv >= av+float64(wp)*math.Ln2+8 {
		return round(gammaIncAsymptotic(a, x, wp), prec)
	}
	// Γ(a) - γ(a, x) cancels about as many bits as x exceeds a.
	wp = workPrec(prec, 1.5*math.Max(xv-av, 0)+32)
	g := gammaIncLower(a, x, wp)
	return round(g.Sub(Gamma(a, wp), g), prec)
}

// gammaIncLower returns γ(a, x) = x^a e^-x Σ x^k / (a (a+1) ... (a+k))
// (DLMF 8.7.1).
func gammaIncLower(a, x *Ball, wp uint) *Ball {
	lo, _ := a.Endpoints()
	xHi := x.MagUpper()
	t := New(wp).Div(one(wp), a)
	s := series(t, wp, func(k uint64, t *Ball) {
		t.Mul(t, x)
		t.Div(t, New(wp).Add(a, FromFloat64(float64(k+1), wp)))
	}, func(k uint64) float64 {
		return up(xHi / (lo + float64(k+1)))
	})
	f := New(wp).Log(x)
	f.Mul(f, a)
	f.Sub(f, x)
	return s.Mul(s, f.Exp(f))
}

// gammaIncAsymptotic returns Γ(a, x) from x^(a-1) e^-x Σ u_k with
// u_k = (a-1)(a-2)...(a-k) / x^k (DLMF 8.11.2). For real x > 0 and n ≥ a-1,
// the remainder after n terms is bounded by |u_n|, so the sum stops at the
// first such n where u_n is negligible or starts to grow.
func gammaIncAsymptotic(a, x *Ball, wp uint) *Ball {
	aHi := a.MagUpper()
	s := New(wp)
	u := one(wp)
	var prev *big.Float
	for n := uint64(0); ; n++ {
		m := termMag(u)
		if float64(n)+1 >= aHi {
			grew := prev != nil && m.float().Cmp(prev) > 0
			if grew || n >= maxTerms || negligible(m, s, wp) {
				s.rad = magAdd(s.rad, m)
				break
			}
		}
		s.Add(s, u)
		prev = m.float()
		u.Mul(u, New(wp).Sub(a, FromFloat64(float64(n+1), wp)))
		u.Div(u, x)
	}
	f := New(wp).Log(x)
	f.Mul(f, New(wp).Sub(a, one(wp)))
	f.Sub(f, x)
	return s.Mul(s, f.Exp(f))
}
