package ball

import (
	"math"
	"math/big"
	"testing"
)

func TestMagFromFloat64(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		man  uint32
		exp  int64
		inf  bool
	}{
		{"zero", 0, 0, 0, false},
		{"one", 1, 1 << (MagBits - 1), 1, false},
		{"half", 0.5, 1 << (MagBits - 1), 0, false},
		{"inf", math.Inf(1), 0, 0, true},
		// 0.9999999995343387 × 2^30 = 1073741823.5 rounds up to 2^30.
		{"carry", 0.9999999995343387, 1 << (MagBits - 1), 1, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			m := magFromFloat64(c.x)
			if m.man != c.man || m.exp != c.exp || m.inf != c.inf {
				t.Errorf("wrong mag: want {%d %d %t}, got {%d %d %t}", c.man, c.exp, c.inf, m.man, m.exp, m.inf)
			}
			if got := m.float64Up(); got < c.x {
				t.Errorf("mag %v is below %v", got, c.x)
			}
		})
	}
}

func TestFromMidRadEndpoints(t *testing.T) {
	cases := []struct {
		name   string
		lo, hi float64
	}{
		{"zero", 0, 0},
		{"one", 1, 1},
		{"pi", math.Pi, math.Pi},
		{"unit", -1, 1},
		{"carry", 0, 1.9999999990686774},
		{"tiny", 0x1p-1070, 0x1p-1060},
		{"wide", -1e300, 1e300},
		{"shifted", 1e10, 1e10 + 0.125},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			mid := c.lo/2 + c.hi/2
			rad := math.Max(mid-c.lo, c.hi-mid)
			lo, hi := FromMidRad(mid, rad, 53).Endpoints()
			if lo > c.lo || hi < c.hi {
				t.Errorf("[%v, %v] does not contain [%v, %v]", lo, hi, c.lo, c.hi)
			}
		})
	}
}

func TestZeroPmInf(t *testing.T) {
	b := ZeroPmInf(64)
	if b.IsFinite() {
		t.Error("0 ± ∞ is finite")
	}
	lo, hi := b.Endpoints()
	if !math.IsInf(lo, -1) || !math.IsInf(hi, 1) {
		t.Errorf("wrong endpoints: [%v, %v]", lo, hi)
	}
	if !FromFloat64(math.Inf(1), 64).rad.inf {
		t.Error("infinite point is bounded")
	}
}

func TestPointRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 1, -2.5, math.Pi, 1e-300, 0x1p-1074, math.MaxFloat64} {
		lo, hi := FromFloat64(x, 53).Endpoints()
		if lo != x || hi != x {
			t.Errorf("%v became [%v, %v]", x, lo, hi)
		}
	}
}

func TestArithmetic(t *testing.T) {
	const prec = 80
	x, y := FromFloat64(0.1, prec), FromFloat64(3, prec)
	cases := []struct {
		name string
		f    func() *Ball
		want *big.Float
	}{
		{"add", func() *Ball { return New(prec).Add(x, y) }, new(big.Float).SetPrec(200).Add(big.NewFloat(0.1), big.NewFloat(3))},
		{"sub", func() *Ball { return New(prec).Sub(x, y) }, new(big.Float).SetPrec(200).Sub(big.NewFloat(0.1), big.NewFloat(3))},
		{"mul", func() *Ball { return New(prec).Mul(x, y) }, new(big.Float).SetPrec(200).Mul(big.NewFloat(0.1), big.NewFloat(3))},
		{"div", func() *Ball { return New(prec).Div(x, y) }, new(big.Float).SetPrec(200).Quo(big.NewFloat(0.1), big.NewFloat(3))},
		{"neg", func() *Ball { return New(prec).Neg(x) }, new(big.Float).SetPrec(200).Neg(big.NewFloat(0.1))},
		{"mulint", func() *Ball { return New(prec).MulUint(x, 7) }, new(big.Float).SetPrec(200).Mul(big.NewFloat(0.1), big.NewFloat(7))},
		{"divint", func() *Ball { return New(prec).DivUint(y, 7) }, new(big.Float).SetPrec(200).Quo(big.NewFloat(3), big.NewFloat(7))},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			b := c.f()
			if !contains(b, c.want) {
				t.Errorf("%v does not contain %v", b, c.want.Text('g', 30))
			}
			if b.Rad() > 1e-20 {
				t.Errorf("radius too large: %v", b)
			}
		})
	}
}

func TestDivByZero(t *testing.T) {
	x := FromFloat64(1, 64)
	y := FromMidRad(0.5, 1, 64)
	if New(64).Div(x, y).IsFinite() {
		t.Error("division by a ball containing zero is finite")
	}
}

func TestWidening(t *testing.T) {
	x := FromMidRad(1, 0.5, 64)
	y := FromMidRad(2, 0.25, 64)
	s := New(64).Mul(x, y)
	lo, hi := s.Endpoints()
	if lo > 0.5*1.75 || hi < 1.5*2.25 {
		t.Errorf("product [%v, %v] does not contain [%v, %v]", lo, hi, 0.5*1.75, 1.5*2.25)
	}
	q := New(64).Div(x, y)
	lo, hi = q.Endpoints()
	if lo > 0.5/2.25 || hi < 1.5/1.75 {
		t.Errorf("quotient [%v, %v] does not contain [%v, %v]", lo, hi, 0.5/2.25, 1.5/1.75)
	}
}

func TestFromDecimal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		lo   float64
		hi   float64
	}{
		{"exact", "0.5", 0.5, 0.5},
		{"tenth", "0.1", math.Nextafter(0.1, 0), 0.1},
		{"third", "0.3333333333333333333333", 1.0 / 3, math.Nextafter(1.0/3, 1)},
		{"negative", "-2.75", -2.75, -2.75},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			b, err := FromDecimal(c.in, 64)
			if err != nil {
				t.Fatal(err)
			}
			lo, hi := b.Endpoints()
			if lo != c.lo || hi != c.hi {
				t.Errorf("%q gave [%v, %v], want [%v, %v]", c.in, lo, hi, c.lo, c.hi)
			}
			want, _, _ := new(big.Float).SetPrec(200).Parse(c.in, 10)
			if !contains(b, want) {
				t.Errorf("%v does not contain %q", b, c.in)
			}
		})
	}
	if _, err := FromDecimal("1.2.3", 53); err == nil {
		t.Error("no error for malformed decimal")
	}
}

func TestConstant(t *testing.T) {
	b := Constant("3.14159", 64)
	lo, hi := b.Endpoints()
	if lo > math.Pi || hi < math.Pi {
		t.Errorf("3.14159 ± 1e-5 gave [%v, %v] which excludes π", lo, hi)
	}
	if hi-lo > 3e-5 {
		t.Errorf("too wide: [%v, %v]", lo, hi)
	}
}

func TestTranscendental(t *testing.T) {
	const prec = 96
	cases := []struct {
		name string
		f    func() *Ball
		want float64
	}{
		{"exp1", func() *Ball { return New(prec).Exp(FromFloat64(1, prec)) }, math.E},
		{"exp-neg", func() *Ball { return New(prec).Exp(FromFloat64(-3.5, prec)) }, math.Exp(-3.5)},
		{"log2", func() *Ball { return New(prec).Log(FromFloat64(2, prec)) }, math.Ln2},
		{"log-near-one", func() *Ball { return New(prec).Log(FromFloat64(1+0x1p-40, prec)) }, math.Log1p(0x1p-40)},
		{"pow", func() *Ball { return New(prec).Pow(FromFloat64(2, prec), FromFloat64(0.5, prec)) }, math.Sqrt2},
		{"pi", func() *Ball { return New(prec).Pi() }, math.Pi},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			near(t, c.f(), c.want, 1e-15)
		})
	}
}

func TestLogNonPositive(t *testing.T) {
	for _, b := range []*Ball{FromFloat64(0, 64), FromFloat64(-1, 64), FromMidRad(0.5, 1, 64)} {
		if New(64).Log(b).IsFinite() {
			t.Errorf("log(%v) is finite", b)
		}
	}
}

func TestComplex(t *testing.T) {
	z := NewComplex(64).SetBall(FromFloat64(2, 64))
	z.MulI(z)
	z.Add(z, NewComplex(64).SetBall(FromFloat64(1, 64)))
	z.MulBall(z, FromFloat64(3, 64))
	z.DivUint(z, 2)
	// (1 + 2i) × 3 / 2
	near(t, z.Real(), 1.5, 0)
	near(t, z.Imag(), 3, 0)
	c := z.Clone()
	c.MulI(c)
	near(t, z.Real(), 1.5, 0)
	near(t, c.Real(), -3, 0)
}

// contains reports whether x is in b.
func contains(b *Ball, x *big.Float) bool {
	if !b.IsFinite() {
		return true
	}
	d := new(big.Float).SetPrec(b.Prec() + 200).Sub(x, &b.mid)
	d.Abs(d)
	return d.Cmp(b.rad.float()) <= 0
}

// near checks that b is within tol of want, allowing for the error of want
// itself, and that b is tight.
func near(t *testing.T, b *Ball, want, tol float64) {
	t.Helper()
	lo, hi := b.Endpoints()
	slack := tol + math.Abs(want)*0x1p-52
	if lo > want+slack || hi < want-slack {
		t.Errorf("[%v, %v] does not contain %v", lo, hi, want)
	}
	if hi-lo > 1e-10*math.Max(1, math.Abs(want)) {
		t.Errorf("[%v, %v] is too wide", lo, hi)
	}
}
