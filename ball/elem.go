package ball

import "math/big"

// one returns the exact point 1.
func one(prec uint) *Ball {
	return FromFloat64(1, prec)
}

// setMid sets b to the point m, rounded to b's precision, and returns b.
func (b *Ball) setMid(m *big.Float) *Ball {
	b.mid.Set(m)
	b.rad = ulpErr(&b.mid)
	return b
}

// midPoint returns the midpoint of x as an exact ball.
func midPoint(x *Ball) *Ball {
	m := x.Clone()
	m.rad = mag{}
	return m
}

// Sqrt sets b to the square root of x and returns b. The result is 0 when x
// is exactly zero and 0 ± ∞ when x has nonpositive elements otherwise.
func (b *Ball) Sqrt(x *Ball) *Ball {
	p := b.prec(x)
	if !x.Positive() {
		if x.IsExact() && x.mid.Sign() == 0 {
			b.mid.SetInt64(0)
			b.rad = mag{}
			return b
		}
		return b.SetZeroPmInf()
	}
	var r mag
	if !x.rad.isZero() {
		// |√(m+t) - √m| ≤ r / √(m-r) for |t| ≤ r < m. big.Float.Sqrt does
		// not report its accuracy, so shrink the root by a few ulps.
		low := x.magLower(p)
		low.Sqrt(low)
		low.Mul(low, shrink(p))
		r = magFromBig(upper(p).Quo(x.rad.float(), low))
	}
	m := new(big.Float).Copy(&x.mid)
	b.mid.Sqrt(m)
	b.rad = magAdd(r, fnErr(&b.mid))
	return b
}

// shrink returns 1 - 2^-(prec-4), for pulling a rounded result below the
// exact one.
func shrink(prec uint) *big.Float {
	s := new(big.Float).SetPrec(prec + 8).SetMantExp(big.NewFloat(1), 4-int(prec))
	return s.Sub(big.NewFloat(1), s)
}

// nearestInt returns the integer nearest to the finite x, ties away from
// zero.
func nearestInt(x *big.Float) *big.Int {
	k, _ := x.Int(nil)
	f := new(big.Float).SetPrec(x.Prec()).Sub(x, new(big.Float).SetInt(k))
	switch {
	case f.Cmp(big.NewFloat(0.5)) >= 0:
		k.Add(k, big.NewInt(1))
	case f.Cmp(big.NewFloat(-0.5)) <= 0:
		k.Sub(k, big.NewInt(1))
	}
	return k
}

// intBall returns k as a ball.
func intBall(k *big.Int, prec uint) *Ball {
	b := New(prec)
	b.mid.SetInt(k)
	b.rad = ulpErr(&b.mid)
	return b
}

// sinCos returns enclosures of sin x and cos x. The midpoint is reduced by
// the nearest multiple of π/2 using a value of π with as many extra bits as
// the argument has integer bits, so results keep their relative accuracy
// near the zeros.
func sinCos(x *Ball, prec uint) (s, c *Ball) {
	if !x.IsFinite() {
		return FromMidRad(0, 1, prec), FromMidRad(0, 1, prec)
	}
	e := x.mid.MantExp(nil)
	if e < 0 {
		e = 0
	}
	wp := prec + 32 + uint(e)
	m := midPoint(x)
	hp := New(wp).Pi()
	hp.DivUint(hp, 2)
	k := nearestInt(new(big.Float).SetPrec(wp).Quo(&m.mid, &hp.mid))
	r := New(wp).Mul(intBall(k, wp), hp)
	r.Sub(m, r)
	// |r| ≤ π/4 plus rounding, so the series ratios start below 1/2.
	rr := up(r.MagUpper() * r.MagUpper())
	r2 := New(wp).Sqr(r)
	r2.Neg(r2)
	s = series(New(wp).Set(r), wp, func(k uint64, t *Ball) {
		t.Mul(t, r2)
		t.DivUint(t, (2*k+2)*(2*k+3))
	}, func(k uint64) float64 {
		q := float64(k)
		return rr / ((2*q + 2) * (2*q + 3))
	})
	c = series(one(wp), wp, func(k uint64, t *Ball) {
		t.Mul(t, r2)
		t.DivUint(t, (2*k+1)*(2*k+2))
	}, func(k uint64) float64 {
		q := float64(k)
		return rr / ((2*q + 1) * (2*q + 2))
	})
	switch new(big.Int).And(k, big.NewInt(3)).Int64() {
	case 1:
		s, c = c, s.Neg(s)
	case 2:
		s, c = s.Neg(s), c.Neg(c)
	case 3:
		s, c = c.Neg(c), s
	}
	// Both functions are 1-Lipschitz.
	s.rad = magAdd(s.rad, x.rad)
	c.rad = magAdd(c.rad, x.rad)
	return s, c
}

// Sin sets b to sin x and returns b.
func (b *Ball) Sin(x *Ball) *Ball {
	s, _ := sinCos(x, b.prec(x))
	return b.Set(s)
}

// Cos sets b to cos x and returns b.
func (b *Ball) Cos(x *Ball) *Ball {
	_, c := sinCos(x, b.prec(x))
	return b.Set(c)
}

// Tan sets b to tan x and returns b. If x may contain a pole, the result is
// 0 ± ∞.
func (b *Ball) Tan(x *Ball) *Ball {
	p := b.prec(x)
	s, c := sinCos(x, p+16)
	return b.Div(s, c)
}

// atanMid returns an enclosure of arctan m for a finite m.
func atanMid(m *big.Float, prec uint) *Ball {
	wp := prec + 32
	a := New(wp).setMid(m)
	neg := a.mid.Sign() < 0
	if neg {
		a.Neg(a)
	}
	inv := a.mid.Cmp(big.NewFloat(1)) > 0
	if inv {
		a.Div(one(wp), a)
	}
	// arctan a = 2 arctan(a / (1 + √(1+a²))), applied twice leaves a below
	// tan(π/16).
	for i := 0; i < 2; i++ {
		d := New(wp).Sqr(a)
		d.Add(d, one(wp))
		d.Sqrt(d)
		d.Add(d, one(wp))
		a.Div(a, d)
	}
	a2 := New(wp).Sqr(a)
	a2.Neg(a2)
	rr := up(a.MagUpper() * a.MagUpper())
	p := New(wp).Set(a)
	s := series(New(wp).Set(a), wp, func(k uint64, t *Ball) {
		p.Mul(p, a2)
		t.DivUint(p, 2*k+3)
	}, func(k uint64) float64 {
		return rr
	})
	s.MulUint(s, 4)
	if inv {
		h := New(wp).Pi()
		h.DivUint(h, 2)
		s.Sub(h, s)
	}
	if neg {
		s.Neg(s)
	}
	return s
}

// Atan sets b to arctan x and returns b.
func (b *Ball) Atan(x *Ball) *Ball {
	p := b.prec(x)
	if !x.IsFinite() {
		b.mid.SetInt64(0)
		b.rad = magFromFloat64(2)
		return b
	}
	s := atanMid(&x.mid, p)
	s.rad = magAdd(s.rad, x.rad)
	return b.Set(s)
}

// Asin sets b to arcsin x = arctan(x / √((1-x)(1+x))) and returns b. Points
// outside [-1, 1] give 0 ± ∞.
func (b *Ball) Asin(x *Ball) *Ball {
	p := b.prec(x)
	wp := p + 32
	if x.IsExact() && x.mid.IsInt() && x.mid.MantExp(nil) == 1 {
		// ±1
		h := New(wp).Pi()
		h.DivUint(h, 2)
		if x.mid.Sign() < 0 {
			h.Neg(h)
		}
		return b.Set(h)
	}
	d := New(wp).Sub(one(wp), x)
	d.Mul(d, New(wp).Add(one(wp), x))
	if !d.Positive() {
		return b.SetZeroPmInf()
	}
	d.Sqrt(d)
	d.Div(x, d)
	return b.Set(d.Atan(d))
}

// Acos sets b to arccos x = 2 arctan √((1-x)/(1+x)) and returns b. Points
// outside [-1, 1] give 0 ± ∞.
func (b *Ball) Acos(x *Ball) *Ball {
	p := b.prec(x)
	wp := p + 32
	d := New(wp).Sub(one(wp), x)
	n := New(wp).Add(one(wp), x)
	if n.IsExact() && n.mid.Sign() == 0 {
		return b.Set(New(wp).Pi())
	}
	if d.IsExact() && d.mid.Sign() == 0 {
		b.mid.SetInt64(0)
		b.rad = mag{}
		return b
	}
	if !d.Positive() || !n.Positive() {
		return b.SetZeroPmInf()
	}
	d.Div(d, n)
	d.Sqrt(d)
	d.Atan(d)
	return b.Set(d.MulUint(d, 2))
}

// expPair returns e^x and e^-x.
func expPair(x *Ball, wp uint) (e, f *Ball) {
	e = New(wp).Exp(x)
	f = New(wp).Neg(x)
	return e, f.Exp(f)
}

// Sinh sets b to the hyperbolic sine of x and returns b.
func (b *Ball) Sinh(x *Ball) *Ball {
	p := b.prec(x)
	wp := p + 32
	if r := x.MagUpper(); r <= 1 {
		x2 := New(wp).Sqr(x)
		rr := up(r * r)
		s := series(New(wp).Set(x), wp, func(k uint64, t *Ball) {
			t.Mul(t, x2)
			t.DivUint(t, (2*k+2)*(2*k+3))
		}, func(k uint64) float64 {
			q := float64(k)
			return rr / ((2*q + 2) * (2*q + 3))
		})
		return b.Set(s)
	}
	e, f := expPair(x, wp)
	e.Sub(e, f)
	return b.Set(e.DivUint(e, 2))
}

// Cosh sets b to the hyperbolic cosine of x and returns b.
func (b *Ball) Cosh(x *Ball) *Ball {
	p := b.prec(x)
	e, f := expPair(x, p+32)
	e.Add(e, f)
	return b.Set(e.DivUint(e, 2))
}

// Tanh sets b to the hyperbolic tangent of x and returns b.
func (b *Ball) Tanh(x *Ball) *Ball {
	p := b.prec(x)
	wp := p + 32
	if x.MagUpper() <= 1 {
		s := New(wp).Sinh(x)
		return b.Set(s.Div(s, New(wp).Cosh(x)))
	}
	// tanh |x| = (1 - e^-2|x|) / (1 + e^-2|x|)
	a := New(wp).Set(x)
	neg := a.mid.Sign() < 0
	if neg {
		a.Neg(a)
	}
	a.MulUint(a, 2)
	a.Neg(a)
	a.Exp(a)
	n := New(wp).Sub(one(wp), a)
	n.Div(n, a.Add(one(wp), a))
	if neg {
		n.Neg(n)
	}
	return b.Set(n)
}

// Asinh sets b to the inverse hyperbolic sine of x and returns b.
func (b *Ball) Asinh(x *Ball) *Ball {
	p := b.prec(x)
	wp := p + 32
	if r := x.MagUpper(); r <= 0.5 {
		// Σ (-1)^k (2k-1)!! / (2k)!! x^(2k+1) / (2k+1)
		x2 := New(wp).Sqr(x)
		x2.Neg(x2)
		rr := up(r * r)
		q := New(wp).Set(x)
		s := series(New(wp).Set(x), wp, func(k uint64, t *Ball) {
			q.Mul(q, x2)
			q.MulUint(q, 2*k+1)
			q.DivUint(q, 2*k+2)
			t.DivUint(q, 2*k+3)
		}, func(k uint64) float64 {
			return rr
		})
		return b.Set(s)
	}
	if !x.IsFinite() {
		return b.SetZeroPmInf()
	}
	// asinh x = sign(x) ln(|x| + √(x²+1))
	a := New(wp).Set(x)
	neg := a.mid.Sign() < 0
	if neg {
		a.Neg(a)
	}
	d := New(wp).Sqr(a)
	d.Add(d, one(wp))
	d.Sqrt(d)
	d.Add(d, a)
	d.Log(d)
	if neg {
		d.Neg(d)
	}
	return b.Set(d)
}

// Acosh sets b to the inverse hyperbolic cosine of x and returns b. x must
// be at least 1; otherwise the result is 0 ± ∞.
func (b *Ball) Acosh(x *Ball) *Ball {
	p := b.prec(x)
	wp := p + 32
	// acosh x = ln(x + √((x-1)(x+1)))
	d := New(wp).Sub(x, one(wp))
	if d.IsExact() && d.mid.Sign() == 0 {
		b.mid.SetInt64(0)
		b.rad = mag{}
		return b
	}
	if !d.Positive() {
		return b.SetZeroPmInf()
	}
	d.Mul(d, New(wp).Add(x, one(wp)))
	d.Sqrt(d)
	d.Add(d, x)
	return b.Set(d.Log(d))
}

// Atanh sets b to the inverse hyperbolic tangent of x and returns b. x must
// be inside (-1, 1); otherwise the result is 0 ± ∞.
func (b *Ball) Atanh(x *Ball) *Ball {
	p := b.prec(x)
	wp := p + 32
	if r := x.MagUpper(); r <= 0.5 {
		// Σ x^(2k+1) / (2k+1)
		x2 := New(wp).Sqr(x)
		rr := up(r * r)
		q := New(wp).Set(x)
		s := series(New(wp).Set(x), wp, func(k uint64, t *Ball) {
			q.Mul(q, x2)
			t.DivUint(q, 2*k+3)
		}, func(k uint64) float64 {
			return rr
		})
		return b.Set(s)
	}
	// atanh x = ln((1+x)/(1-x)) / 2
	n := New(wp).Add(one(wp), x)
	d := New(wp).Sub(one(wp), x)
	if !n.Positive() || !d.Positive() {
		return b.SetZeroPmInf()
	}
	n.Div(n, d)
	n.Log(n)
	return b.Set(n.DivUint(n, 2))
}

// sinPi returns sin(πx). x is reduced by the nearest integer before scaling
// by π, so the result keeps its relative accuracy near the integers.
func sinPi(x *Ball, wp uint) *Ball {
	if !x.IsFinite() {
		return FromMidRad(0, 1, wp)
	}
	k := nearestInt(&x.mid)
	r := New(wp).Sub(x, intBall(k, wp))
	r.Mul(r, New(wp).Pi())
	s, _ := sinCos(r, wp)
	if k.Bit(0) != 0 {
		s.Neg(s)
	}
	return s
}

// cotPi returns cot(πx), or 0 ± ∞ if x may contain an integer.
func cotPi(x *Ball, wp uint) *Ball {
	if !x.IsFinite() {
		return ZeroPmInf(wp)
	}
	k := nearestInt(&x.mid)
	r := New(wp).Sub(x, intBall(k, wp))
	r.Mul(r, New(wp).Pi())
	s, c := sinCos(r, wp)
	return c.Div(c, s)
}

// floatMid returns the midpoint of x rounded to a float64.
func floatMid(x *Ball) float64 {
	f, _ := x.mid.Float64()
	return f
}
