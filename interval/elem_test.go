package interval

import (
	"math"
	"testing"
)

func TestElementary(t *testing.T) {
	cases := []struct {
		name string
		f    func(Interval) Interval
		x    float64
		want float64
	}{
		{"exp", Interval.Exp, 1, math.E},
		{"exp -2", Interval.Exp, -2, 0.1353352832366127},
		{"ln", Interval.Ln, 2, math.Ln2},
		{"ln 10", Interval.Ln, 10, math.Ln10},
		{"log2", Interval.Log2, 3, 1.584962500721156},
		{"log10", Interval.Log10, 2, 0.3010299956639812},
		{"sinh", Interval.Sinh, 1, 1.1752011936438014},
		{"cosh", Interval.Cosh, 1, 1.5430806348152437},
		{"tanh", Interval.Tanh, 1, 0.7615941559557649},
		{"asinh", Interval.Asinh, 1, 0.881373587019543},
		{"acosh", Interval.Acosh, 2, 1.3169578969248166},
		{"atanh", Interval.Atanh, 0.5, 0.5493061443340549},
		{"asin", Interval.Asin, 0.5, math.Pi / 6},
		{"acos", Interval.Acos, 0.5, math.Pi / 3},
		{"atan", Interval.Atan, 1, math.Pi / 4},
		{"sin", Interval.Sin, 1, 0.8414709848078965},
		{"cos", Interval.Cos, 1, 0.5403023058681398},
		{"tan", Interval.Tan, 1, 1.5574077246549023},
		{"sinc", Interval.Sinc, 2, 0.45464871341284085},
		{"sinc 0", Interval.Sinc, 0, 1},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			got := c.f(Point(c.x))
			tight(t, got, c.want, 1e-14)
			if got.Dec() != Com {
				t.Errorf("wrong decoration: want com, got %v", got.Dec())
			}
		})
	}
}

func TestExact(t *testing.T) {
	cases := []struct {
		name string
		got  Interval
		want float64
	}{
		{"exp 0", Point(0).Exp(), 1},
		{"ln 1", Point(1).Ln(), 0},
		{"log2 8", Point(8).Log2(), 3},
		{"log2 1/4", Point(0.25).Log2(), -2},
		{"log10 1000", Point(1000).Log10(), 3},
		{"cube root", Point(-27).Rootn(3), -3},
		{"square root", Point(16).Rootn(2), 4},
		{"first root", Point(5).Rootn(1), 5},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if !c.got.Equal(Point(c.want)) {
				t.Errorf("want exactly %v, got %v", c.want, c.got)
			}
		})
	}
}

func TestMonotoneRanges(t *testing.T) {
	cases := []struct {
		name string
		got  Interval
		in   []float64
		dec  Decoration
	}{
		{"exp", New(-1, 1).Exp(), []float64{1 / math.E, 1, math.E}, Com},
		{"exp unbounded", New(-inf, 0).Exp(), []float64{0, 1}, Dac},
		{"ln", New(0.5, 2).Ln(), []float64{-math.Ln2, 0, math.Ln2}, Com},
		{"ln from zero", New(0, 1).Ln(), []float64{-1e300, 0}, Trv},
		{"ln negative part", New(-1, math.E).Ln(), []float64{-1e300, 0.9}, Trv},
		{"cosh", New(-1, 2).Cosh(), []float64{1, 3.7621956910836314}, Com},
		{"acosh partial", New(0, 2).Acosh(), []float64{0, 1.3169578969248166}, Trv},
		{"sqrt root", New(-8, 27).Rootn(3), []float64{-2, 0, 3}, Com},
		{"even root", New(-8, 16).Rootn(4), []float64{0, 2}, Trv},
		{"negative root", New(4, 16).Rootn(-2), []float64{0.25, 0.5}, Com},
		{"sin period", New(0, 7).Sin(), []float64{-1, 1}, Com},
		{"sin peak", New(1, 2).Sin(), []float64{1, 0.8414709848078965, 0.9092974268256817}, Com},
		{"cos trough", New(3, 4).Cos(), []float64{-1, -0.9899924966004454, -0.6536436208636119}, Com},
		{"tan", New(-1, 1).Tan(), []float64{-1.5574077246549023, 0, 1.5574077246549023}, Com},
		{"tan pole", New(1, 2).Tan(), []float64{-1e300, 1e300}, Trv},
		{"atan2 quadrant", Point(1).Atan2(Point(1)), []float64{math.Pi / 4}, Com},
		{"atan2 cut", New(-1, 1).Atan2(Point(-1)), []float64{-3 * math.Pi / 4, 3 * math.Pi / 4}, Def},
		{"atan2 origin", New(-1, 1).Atan2(New(-1, 1)), []float64{0}, Trv},
		{"sinc around zero", New(-1, 1).Sinc(), []float64{0.8414709848078965, 1}, Com},
		{"sinc wide", New(-10, 10).Sinc(), []float64{-0.21723362821122166, 1}, Com},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			for _, v := range c.in {
				encloses(t, c.got, v)
			}
			if c.got.Dec() != c.dec {
				t.Errorf("wrong decoration: want %v, got %v", c.dec, c.got.Dec())
			}
		})
	}
}

func TestLog(t *testing.T) {
	tight(t, Log(Point(3), Point(81)), 4, 1e-14)
	if r := Log(Point(1), Point(2)); !r.IsEmpty() {
		t.Errorf("log base 1 gave %v", r)
	}
}

func TestTrigBig(t *testing.T) {
	x := Point(1e300)
	if r := x.Sin(); !r.Equal(New(-1, 1)) {
		t.Errorf("sin(1e300) gave %v", r)
	}
	if r := x.Tan(); !r.IsEntire() {
		t.Errorf("tan(1e300) gave %v", r)
	}
}

func TestElementaryRelative(t *testing.T) {
	cases := []struct {
		name string
		got  Interval
		want float64
	}{
		{"sin near a multiple of pi", Point(2.892235334055676e7).Sin(), 3.3970076597972007589e-18},
		{"tan of pi", Point(math.Pi).Tan(), -1.2246467991473532e-16},
		{"acos near one", Point(0.9999999888241291046142578125).Acos(), 1.4950498932278095689e-4},
		{"asin 1-3/2^28", Point(1 - 3*0x1p-28).Asin(), 1.5706468218055738383},
		{"asin 1-5/2^28", Point(1 - 5*0x1p-28).Asin(), 1.5706033166835027667},
		{"asin 1-7/2^28", Point(1 - 7*0x1p-28).Asin(), 1.5705679541511646316},
		{"asin 1-11/2^28", Point(1 - 11*0x1p-28).Asin(), 1.5705100465351407297},
		{"asin one", Point(1).Asin(), math.Pi / 2},
		{"acos minus one", Point(-1).Acos(), math.Pi},
		{"atanh near one", Point(1 - 0x1p-40).Atanh(), 14.209517201478651469},
		{"asinh small", Point(0x1p-30).Asinh(), 0x1p-30},
		{"sinh small", Point(0x1p-30).Sinh(), 0x1p-30},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			encloses(t, c.got, c.want)
			if w := c.got.Width(); !(w <= 1e-15*math.Abs(c.want)) {
				t.Errorf("%v has width %v for %v", c.got, w, c.want)
			}
		})
	}
}

func TestMostNegativeRoot(t *testing.T) {
	r := Point(2).Rootn(math.MinInt64)
	tight(t, r, 1, 1e-15)
	if r.Dec() != Com {
		t.Errorf("wrong decoration: want com, got %v", r.Dec())
	}
	if r := New(-8, 16).Rootn(math.MinInt64); r.Dec() != Trv || !r.Contains(1) {
		t.Errorf("even root over negatives gave %v", r)
	}
}

func BenchmarkExp(b *testing.B) {
	x := New(0.5, 1.5)
	for i := 0; i < b.N; i++ {
		x.Exp()
	}
}

func BenchmarkSin(b *testing.B) {
	x := New(0.5, 1.5)
	for i := 0; i < b.N; i++ {
		x.Sin()
	}
}
