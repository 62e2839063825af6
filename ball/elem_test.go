package ball

import (
	"math"
	"testing"
)

func TestElementary(t *testing.T) {
	const prec = 64
	cases := []struct {
		name string
		f    func(b, x *Ball) *Ball
		x    float64
		want float64
	}{
		{"sqrt(2)", (*Ball).Sqrt, 2, 1.4142135623730951},
		{"sqrt(4)", (*Ball).Sqrt, 4, 2},
		{"sin(1)", (*Ball).Sin, 1, 0.8414709848078965},
		{"sin(-3)", (*Ball).Sin, -3, -0.1411200080598672},
		{"sin(1e6)", (*Ball).Sin, 1e6, -0.34999350217129294},
		{"sin near a zero", (*Ball).Sin, 2.892235334055676e7, 3.3970076597972008e-18},
		{"cos(1)", (*Ball).Cos, 1, 0.5403023058681398},
		{"cos(10)", (*Ball).Cos, 10, -0.8390715290764524},
		{"tan(1)", (*Ball).Tan, 1, 1.5574077246549023},
		{"atan(1)", (*Ball).Atan, 1, 0.7853981633974483},
		{"atan(-10)", (*Ball).Atan, -10, -1.4711276743037347},
		{"asin(0.5)", (*Ball).Asin, 0.5, 0.5235987755982989},
		{"asin(1)", (*Ball).Asin, 1, 1.5707963267948966},
		{"acos(0.5)", (*Ball).Acos, 0.5, 1.0471975511965979},
		{"acos(-0.9)", (*Ball).Acos, -0.9, 2.6905658417935308},
		{"acos near one", (*Ball).Acos, 1 - 3*0x1p-28, 1.4950498932278096e-4},
		{"sinh(0.25)", (*Ball).Sinh, 0.25, 0.25261231680816831},
		{"sinh(-2)", (*Ball).Sinh, -2, -3.626860407847019},
		{"cosh(1)", (*Ball).Cosh, 1, 1.5430806348152437},
		{"tanh(0.5)", (*Ball).Tanh, 0.5, 0.46211715726000974},
		{"tanh(3)", (*Ball).Tanh, 3, 0.99505475368673046},
		{"asinh(1)", (*Ball).Asinh, 1, 0.881373587019543},
		{"asinh(-0.25)", (*Ball).Asinh, -0.25, -0.24746646154726346},
		{"acosh(2)", (*Ball).Acosh, 2, 1.3169578969248168},
		{"atanh(0.5)", (*Ball).Atanh, 0.5, 0.5493061443340549},
		{"atanh(-0.25)", (*Ball).Atanh, -0.25, -0.25541281188299536},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			near(t, c.f(New(prec), FromFloat64(c.x, prec)), c.want, 0)
		})
	}
}

func TestElementaryWideBall(t *testing.T) {
	cases := []struct {
		name string
		got  *Ball
		in   []float64
	}{
		{"sin", New(64).Sin(FromMidRad(1, 0.5, 64)), []float64{math.Sin(0.5), math.Sin(1.5)}},
		{"cos", New(64).Cos(FromMidRad(3, 0.25, 64)), []float64{-1, math.Cos(2.75)}},
		{"sqrt", New(64).Sqrt(FromMidRad(4, 1, 64)), []float64{math.Sqrt(3), math.Sqrt(5)}},
		{"atan", New(64).Atan(FromMidRad(0, 2, 64)), []float64{math.Atan(-2), 0, math.Atan(2)}},
		{"sinh", New(64).Sinh(FromMidRad(0, 2, 64)), []float64{math.Sinh(-2), math.Sinh(2)}},
		{"atan unbounded", New(64).Atan(ZeroPmInf(64)), []float64{-math.Pi / 2, math.Pi / 2}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			lo, hi := c.got.Endpoints()
			for _, v := range c.in {
				if v < lo || v > hi {
					t.Errorf("%v not in [%v, %v]", v, lo, hi)
				}
			}
		})
	}
}

func TestElementaryDomain(t *testing.T) {
	cases := []struct {
		name string
		b    *Ball
	}{
		{"sqrt(-1)", New(64).Sqrt(FromFloat64(-1, 64))},
		{"sqrt(0±1)", New(64).Sqrt(FromMidRad(0, 1, 64))},
		{"asin(2)", New(64).Asin(FromFloat64(2, 64))},
		{"acos(-2)", New(64).Acos(FromFloat64(-2, 64))},
		{"acosh(0.5)", New(64).Acosh(FromFloat64(0.5, 64))},
		{"atanh(1)", New(64).Atanh(FromFloat64(1, 64))},
		{"tan(pi/2)", New(64).Tan(FromMidRad(math.Pi/2, 1e-3, 64))},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if c.b.IsFinite() {
				t.Errorf("expected 0 ± ∞, got %v", c.b)
			}
		})
	}
}

func TestElementaryExact(t *testing.T) {
	if b := New(64).Sqrt(FromFloat64(0, 64)); !b.IsExact() || b.Mid().Sign() != 0 {
		t.Errorf("sqrt(0) gave %v", b)
	}
	if b := New(64).Acos(FromFloat64(1, 64)); !b.IsExact() || b.Mid().Sign() != 0 {
		t.Errorf("acos(1) gave %v", b)
	}
	if b := New(64).Acosh(FromFloat64(1, 64)); !b.IsExact() || b.Mid().Sign() != 0 {
		t.Errorf("acosh(1) gave %v", b)
	}
	near(t, New(64).Acos(FromFloat64(-1, 64)), math.Pi, 0)
}

func BenchmarkSin(b *testing.B) {
	x := FromFloat64(1e6, 64)
	for i := 0; i < b.N; i++ {
		New(64).Sin(x)
	}
}
