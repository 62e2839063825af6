// Package ball implements arbitrary-precision midpoint-radius arithmetic.
//
// A Ball is a big.Float midpoint with a low-precision radius that is always
// rounded up, so every operation returns a ball containing the exact result
// of applying the operation to every point of its inputs. The special value
// 0 ± ∞ stands in for anything that cannot be enclosed otherwise.
//
// Balls own their storage. They are used through pointers in the style of
// math/big: methods set the receiver to the result and return it. Copying a
// Ball by value aliases its midpoint; use Clone instead.
package ball

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Ball is a midpoint-radius enclosure of a set of reals. The zero value is
// the point 0 with precision 0; operations on it adopt the precision of
// their operands like big.Float.
type Ball struct {
	mid big.Float
	rad mag
}

// New returns a ball at the point 0 which computes with prec bits.
func New(prec uint) *Ball {
	var b Ball
	b.mid.SetPrec(prec)
	return &b
}

// Zero returns the point 0 at the given precision.
func Zero(prec uint) *Ball {
	return New(prec)
}

// FromFloat64 returns a ball containing x at the given precision. It is
// exact when prec is at least 53. x must not be NaN.
func FromFloat64(x float64, prec uint) *Ball {
	b := New(prec)
	if math.IsInf(x, 0) {
		return b.SetZeroPmInf()
	}
	b.setFloat64(x)
	return b
}

// setFloat64 sets the midpoint to x, rounded to the precision of b, and
// accounts for the rounding in the radius.
func (b *Ball) setFloat64(x float64) {
	b.mid.SetFloat64(x)
	b.rad = magAdd(b.rad, ulpErr(&b.mid))
}

// ZeroPmInf returns 0 ± ∞, which contains every real number.
func ZeroPmInf(prec uint) *Ball {
	return New(prec).SetZeroPmInf()
}

// FromMidRad returns a ball enclosing [mid-rad, mid+rad]. The midpoint is
// stored exactly when prec is at least 53; the radius is rounded up to MagBits bits, which is faster
// and tighter than building a ball from two endpoints. mid must be finite and
// rad must be nonnegative.
func FromMidRad(mid, rad float64, prec uint) *Ball {
	b := New(prec)
	if math.IsInf(mid, 0) || math.IsNaN(mid) || math.IsNaN(rad) {
		return b.SetZeroPmInf()
	}
	if rad != 0 {
		b.rad = magFromFloat64(rad)
	}
	b.setFloat64(mid)
	return b
}

// FromDecimal returns a ball enclosing the value of the decimal string s.
// The string is read exactly as a rational and rounded in both directions,
// so the enclosure holds even when s is not representable in binary.
func FromDecimal(s string, prec uint) (*Ball, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("ball: invalid decimal %q", s)
	}
	lo := new(big.Float).SetPrec(prec).SetMode(big.ToNegativeInf).SetRat(r)
	hi := new(big.Float).SetPrec(prec).SetMode(big.ToPositiveInf).SetRat(r)
	return fromEndpoints(lo, hi, prec), nil
}

// Constant returns a ball enclosing every real that rounds to the decimal
// string s, i.e. s plus or minus one unit in its last digit. It panics if s
// is not a decimal literal; it is meant for tables of mathematical constants.
func Constant(s string, prec uint) *Ball {
	b, err := FromDecimal(s, prec)
	if err != nil {
		panic(err)
	}
	digits := 0
	if k := strings.IndexByte(s, '.'); k >= 0 {
		digits = len(s) - k - 1
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	last := upper(64).Quo(big.NewFloat(1), new(big.Float).SetInt(unit))
	b.rad = magAdd(b.rad, magFromBig(last))
	return b
}

// fromEndpoints returns a ball containing [lo, hi].
func fromEndpoints(lo, hi *big.Float, prec uint) *Ball {
	b := New(prec)
	if lo.IsInf() || hi.IsInf() {
		return b.SetZeroPmInf()
	}
	// The exact midpoint needs at most one more bit than the wider endpoint,
	// plus alignment. Compute it exactly, then round to prec and account for
	// the rounding in the radius.
	w := lo.Prec()
	if hi.Prec() > w {
		w = hi.Prec()
	}
	exact := new(big.Float).SetPrec(w + uint(absExpDiff(lo, hi)) + 2)
	exact.Add(lo, hi)
	exact.SetMantExp(exact, -1)
	b.mid.Set(exact)
	d := upper(w + 2).Sub(hi, &b.mid)
	e := upper(w + 2).Sub(&b.mid, lo)
	if d.Cmp(e) < 0 {
		d = e
	}
	b.rad = magFromBig(d)
	return b
}

func absExpDiff(x, y *big.Float) int {
	if x.Sign() == 0 || y.Sign() == 0 {
		return 0
	}
	d := x.MantExp(nil) - y.MantExp(nil)
	if d < 0 {
		d = -d
	}
	return d
}

// Prec returns the precision of b's midpoint.
func (b *Ball) Prec() uint {
	return b.mid.Prec()
}

// SetZeroPmInf sets b to 0 ± ∞ and returns b.
func (b *Ball) SetZeroPmInf() *Ball {
	b.mid.SetInt64(0)
	b.rad = mag{inf: true}
	return b
}

// Set sets b to a copy of x and returns b.
func (b *Ball) Set(x *Ball) *Ball {
	if b == x {
		return b
	}
	if b.mid.Prec() == 0 {
		b.mid.SetPrec(x.mid.Prec())
	}
	b.mid.Set(&x.mid)
	b.rad = magAdd(x.rad, ulpErr(&b.mid))
	return b
}

// Clone returns a new ball equal to b that shares no storage with it.
func (b *Ball) Clone() *Ball {
	c := New(b.mid.Prec())
	c.mid.Set(&b.mid)
	c.rad = b.rad
	return c
}

// Mid returns a copy of the midpoint of b.
func (b *Ball) Mid() *big.Float {
	return new(big.Float).Copy(&b.mid)
}

// Rad returns an upper bound for the radius of b as a float64. An unbounded
// ball has radius +Inf.
func (b *Ball) Rad() float64 {
	return b.rad.float64Up()
}

// IsFinite reports whether b has a finite midpoint and radius.
func (b *Ball) IsFinite() bool {
	return !b.rad.inf && !b.mid.IsInf()
}

// IsExact reports whether b has radius zero.
func (b *Ball) IsExact() bool {
	return b.rad.isZero()
}

// ContainsZero reports whether 0 is in b.
func (b *Ball) ContainsZero() bool {
	if !b.IsFinite() {
		return true
	}
	m := new(big.Float).Abs(&b.mid)
	return m.Cmp(b.rad.float()) <= 0
}

// Positive reports whether every element of b is strictly positive.
func (b *Ball) Positive() bool {
	if !b.IsFinite() || b.mid.Sign() <= 0 {
		return false
	}
	return b.mid.Cmp(b.rad.float()) > 0
}

// MagUpper returns a float64 not less than the magnitude of any element of b.
func (b *Ball) MagUpper() float64 {
	if !b.IsFinite() {
		return math.Inf(1)
	}
	return magAdd(magFromBig(&b.mid), b.rad).float64Up()
}

// magLower returns a nonnegative lower bound for the magnitude of every
// element of b, rounded down to a working precision.
func (b *Ball) magLower(prec uint) *big.Float {
	if !b.IsFinite() {
		return new(big.Float)
	}
	m := new(big.Float).SetPrec(prec).SetMode(big.ToNegativeInf).Abs(&b.mid)
	m.Sub(m, b.rad.float())
	if m.Sign() < 0 {
		m.SetInt64(0)
	}
	return m
}

// AddError widens b by err, which must be nonnegative, and returns b.
func (b *Ball) AddError(err float64) *Ball {
	b.rad = magAdd(b.rad, magFromFloat64(err))
	return b
}

// addErrorBall widens b by the magnitude of x.
func (b *Ball) addErrorBall(x *Ball) *Ball {
	if !x.IsFinite() {
		return b.SetZeroPmInf()
	}
	b.rad = magAdd(b.rad, magAdd(magFromBig(&x.mid), x.rad))
	return b
}

// Endpoints returns binary64 bounds lo ≤ b ≤ hi. The bounds are computed at
// the ball's precision plus a margin and then rounded outward, never inward.
// An unbounded ball gives -Inf and +Inf.
func (b *Ball) Endpoints() (lo, hi float64) {
	if !b.IsFinite() {
		return math.Inf(-1), math.Inf(1)
	}
	prec := b.mid.Prec() + 64
	r := b.rad.float()
	l := new(big.Float).SetPrec(prec).SetMode(big.ToNegativeInf).Sub(&b.mid, r)
	h := new(big.Float).SetPrec(prec).SetMode(big.ToPositiveInf).Add(&b.mid, r)
	return Floor64(l), Ceil64(h)
}

// Floor64 returns the largest float64 not greater than x.
func Floor64(x *big.Float) float64 {
	f, acc := x.Float64()
	if acc == big.Above {
		f = math.Nextafter(f, math.Inf(-1))
	}
	return f
}

// Ceil64 returns the smallest float64 not less than x.
func Ceil64(x *big.Float) float64 {
	f, acc := x.Float64()
	if acc == big.Below {
		f = math.Nextafter(f, math.Inf(1))
	}
	return f
}

// String formats b as "mid ± rad".
func (b *Ball) String() string {
	if b.rad.inf {
		return b.mid.Text('g', 10) + " ± inf"
	}
	return b.mid.Text('g', 20) + " ± " + b.rad.float().Text('g', 6)
}

// prec picks the precision for a result from the receiver and operands.
func (b *Ball) prec(x ...*Ball) uint {
	if p := b.mid.Prec(); p != 0 {
		return p
	}
	var p uint
	for _, y := range x {
		if y.mid.Prec() > p {
			p = y.mid.Prec()
		}
	}
	if p == 0 {
		p = 64
	}
	b.mid.SetPrec(p)
	return p
}

// Neg sets b to -x and returns b.
func (b *Ball) Neg(x *Ball) *Ball {
	b.prec(x)
	b.mid.Neg(&x.mid)
	b.rad = magAdd(x.rad, ulpErr(&b.mid))
	return b
}

// Add sets b to x + y and returns b.
func (b *Ball) Add(x, y *Ball) *Ball {
	b.prec(x, y)
	r := magAdd(x.rad, y.rad)
	b.mid.Add(&x.mid, &y.mid)
	b.rad = magAdd(r, ulpErr(&b.mid))
	return b
}

// Sub sets b to x - y and returns b.
func (b *Ball) Sub(x, y *Ball) *Ball {
	b.prec(x, y)
	r := magAdd(x.rad, y.rad)
	b.mid.Sub(&x.mid, &y.mid)
	b.rad = magAdd(r, ulpErr(&b.mid))
	return b
}

// Mul sets b to x × y and returns b.
func (b *Ball) Mul(x, y *Ball) *Ball {
	b.prec(x, y)
	if !x.IsFinite() || !y.IsFinite() {
		return b.SetZeroPmInf()
	}
	// |xy - xm ym| ≤ |xm| yr + |ym| xr + xr yr
	xm, ym := magFromBig(&x.mid), magFromBig(&y.mid)
	r := magAdd(magAdd(magMul(xm, y.rad), magMul(ym, x.rad)), magMul(x.rad, y.rad))
	b.mid.Mul(&x.mid, &y.mid)
	b.rad = magAdd(r, ulpErr(&b.mid))
	return b
}

// Div sets b to x / y and returns b. If y contains zero, the result is
// 0 ± ∞.
func (b *Ball) Div(x, y *Ball) *Ball {
	p := b.prec(x, y)
	if !x.IsFinite() || y.ContainsZero() {
		return b.SetZeroPmInf()
	}
	// |x/y - xm/ym| ≤ (|xm| yr + |ym| xr) / (|ym| (|ym| - yr))
	var r mag
	if !x.rad.isZero() || !y.rad.isZero() {
		xm, ym := magFromBig(&x.mid), magFromBig(&y.mid)
		num := magAdd(magMul(xm, y.rad), magMul(ym, x.rad))
		den := new(big.Float).SetPrec(p).SetMode(big.ToNegativeInf).Abs(&y.mid)
		low := new(big.Float).SetPrec(p).SetMode(big.ToNegativeInf).Sub(den, y.rad.float())
		den.Mul(den, low)
		r = magFromBig(upper(p).Quo(num.float(), den))
	}
	b.mid.Quo(&x.mid, &y.mid)
	b.rad = magAdd(r, ulpErr(&b.mid))
	return b
}

// MulUint sets b to x × n and returns b.
func (b *Ball) MulUint(x *Ball, n uint64) *Ball {
	b.prec(x)
	r := magMulUint(x.rad, n)
	b.mid.Mul(&x.mid, new(big.Float).SetUint64(n))
	b.rad = magAdd(r, ulpErr(&b.mid))
	return b
}

// DivUint sets b to x / n and returns b. n must be nonzero.
func (b *Ball) DivUint(x *Ball, n uint64) *Ball {
	b.prec(x)
	if n == 0 {
		panic("ball: division by zero")
	}
	r := magDivUint(x.rad, n)
	b.mid.Quo(&x.mid, new(big.Float).SetUint64(n))
	b.rad = magAdd(r, ulpErr(&b.mid))
	return b
}

// Sqr sets b to x² and returns b.
func (b *Ball) Sqr(x *Ball) *Ball {
	return b.Mul(x, x)
}

// PowUint sets b to x^n by repeated squaring and returns b.
func (b *Ball) PowUint(x *Ball, n uint64) *Ball {
	p := b.prec(x)
	sq := New(p).Set(x)
	r := FromFloat64(1, p)
	for n > 0 {
		if n&1 != 0 {
			r.Mul(r, sq)
		}
		n >>= 1
		if n > 0 {
			sq.Sqr(sq)
		}
	}
	b.mid.Set(&r.mid)
	b.rad = r.rad
	return b
}

// fnUlps is the error allowance for results of bigfloat routines, in ulps
// at the working precision.
const fnUlps = 16

// fnErr returns a bound for the error of a bigfloat result.
func fnErr(x *big.Float) mag {
	if x.Sign() == 0 || x.IsInf() {
		return mag{}
	}
	var frac big.Float
	exp := x.MantExp(&frac)
	return magMulUint(mag{man: 1 << (MagBits - 1), exp: int64(exp) - int64(x.Prec()) + 1}, fnUlps)
}

// maxExpArg bounds the magnitude of arguments to Exp before the result is
// treated as unbounded.
const maxExpArg = 1 << 20

// Exp sets b to e^x and returns b.
func (b *Ball) Exp(x *Ball) *Ball {
	p := b.prec(x)
	if !x.IsFinite() || x.MagUpper() > maxExpArg {
		return b.SetZeroPmInf()
	}
	m := new(big.Float).SetPrec(p).Set(&x.mid)
	r := magAdd(x.rad, ulpErr(m)).float64Up()
	bigfloat.Exp(&b.mid, m)
	// |e^(m+t) - e^m| ≤ e^m (e^r - 1) for |t| ≤ r.
	em := magAdd(magFromBig(&b.mid), fnErr(&b.mid))
	spread := magFromFloat64(expm1Up(r))
	b.rad = magAdd(magMul(em, spread), fnErr(&b.mid))
	return b
}

// expm1Up returns an upper bound for e^r - 1, r ≥ 0.
func expm1Up(r float64) float64 {
	if r == 0 {
		return 0
	}
	if r > 700 {
		return math.Inf(1)
	}
	v := math.Expm1(r)
	return math.Nextafter(math.Nextafter(v, math.Inf(1)), math.Inf(1)) * (1 + 0x1p-50)
}

// Log sets b to the natural logarithm of x and returns b. If x is not
// strictly positive, the result is 0 ± ∞.
func (b *Ball) Log(x *Ball) *Ball {
	p := b.prec(x)
	if !x.Positive() {
		return b.SetZeroPmInf()
	}
	m := new(big.Float).SetPrec(p).Set(&x.mid)
	in := magAdd(x.rad, ulpErr(m))
	var r mag
	if !in.isZero() {
		// |log(m+t) - log m| ≤ r / (m - r) for |t| ≤ r < m.
		low := x.magLower(p)
		low.Sub(low, ulpErr(m).float())
		if low.Sign() <= 0 {
			return b.SetZeroPmInf()
		}
		r = magFromBig(upper(p).Quo(in.float(), low))
	}
	bigfloat.Log(&b.mid, m)
	// Near 1 the result is tiny, so also allow an absolute error.
	abs := mag{man: 1 << (MagBits - 1), exp: -int64(p) + 8}
	b.rad = magAdd(magAdd(r, fnErr(&b.mid)), abs)
	return b
}

// Pow sets b to x^y for x > 0 and returns b. Otherwise the result is 0 ± ∞.
func (b *Ball) Pow(x, y *Ball) *Ball {
	p := b.prec(x, y)
	t := New(p + 16).Log(x)
	t.Mul(t, y)
	return b.Exp(t)
}

// Pi sets b to an enclosure of π and returns b.
func (b *Ball) Pi() *Ball {
	p := b.prec()
	bigfloat.Pi(b.mid.SetPrec(p))
	b.rad = fnErr(&b.mid)
	return b
}
