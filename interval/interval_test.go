package interval

import (
	"math"
	"math/big"
	"testing"
)

var inf = math.Inf(1)

// encloses fails the test if x does not contain want.
func encloses(t *testing.T, x Interval, want float64) {
	t.Helper()
	if !x.Contains(want) {
		t.Errorf("%v does not contain %v", x, want)
	}
}

// tight fails the test if x does not contain want or is wider than tol
// relative to it.
func tight(t *testing.T, x Interval, want, tol float64) {
	t.Helper()
	encloses(t, x, want)
	if w := x.Width(); !(w <= tol*math.Max(1, math.Abs(want))) {
		t.Errorf("%v has width %v for %v", x, w, want)
	}
}

func TestNew(t *testing.T) {
	cases := []struct {
		name   string
		lo, hi float64
		dec    Decoration
		empty  bool
	}{
		{"point", 1, 1, Com, false},
		{"bounded", -1, 2, Com, false},
		{"half", 0, inf, Dac, false},
		{"entire", -inf, inf, Dac, false},
		{"reversed", 2, 1, Ill, true},
		{"nan", math.NaN(), 1, Ill, true},
		{"+inf point", inf, inf, Ill, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			x := New(c.lo, c.hi)
			if x.Dec() != c.dec {
				t.Errorf("wrong decoration: want %v, got %v", c.dec, x.Dec())
			}
			if x.IsEmpty() != c.empty {
				t.Errorf("wrong emptiness for %v", x)
			}
		})
	}
}

func TestResultDecoration(t *testing.T) {
	x := New(1, 2).SetDec(Def)
	if d := x.Add(New(0, 1)).Dec(); d != Def {
		t.Errorf("input decoration not propagated: got %v", d)
	}
	bad := New(2, 1)
	if r := bad.Add(New(0, 1)); r.Dec() != Ill || !r.IsEmpty() {
		t.Errorf("ill input gave %v", r)
	}
	if d := New(1, 2).Mul(Entire()).Dec(); d != Dac {
		t.Errorf("unbounded result kept %v", d)
	}
	if d := New(0, 1).Hull(New(3, 4)).Dec(); d != Trv {
		t.Errorf("hull decorated %v", d)
	}
}

func TestSetOps(t *testing.T) {
	a, b := New(0, 2), New(1, 3)
	if r := a.Intersect(b); !r.Equal(New(1, 2)) {
		t.Errorf("intersect gave %v", r)
	}
	if r := a.Hull(b); !r.Equal(New(0, 3)) {
		t.Errorf("hull gave %v", r)
	}
	if r := a.Intersect(New(5, 6)); !r.IsEmpty() {
		t.Errorf("disjoint intersect gave %v", r)
	}
	if r := Empty().Hull(b); !r.Equal(b) {
		t.Errorf("hull with empty gave %v", r)
	}
	if !New(1, 2).Subset(New(0, 3)) || New(0, 3).Subset(New(1, 2)) || !Empty().Subset(New(0, 0)) {
		t.Error("wrong subset")
	}
}

func TestMeasures(t *testing.T) {
	cases := []struct {
		name               string
		x                  Interval
		mid, mig, mag, wid float64
	}{
		{"bounded", New(-1, 3), 1, 0, 3, 4},
		{"positive", New(2, 4), 3, 2, 4, 2},
		{"negative", New(-4, -2), -3, 2, 4, 2},
		{"entire", Entire(), 0, 0, inf, inf},
		{"upper", New(1, inf), math.MaxFloat64, 1, inf, inf},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if m := c.x.Mid(); m != c.mid {
				t.Errorf("wrong mid: want %v, got %v", c.mid, m)
			}
			if m := c.x.Mig(); m != c.mig {
				t.Errorf("wrong mig: want %v, got %v", c.mig, m)
			}
			if m := c.x.Mag(); m != c.mag {
				t.Errorf("wrong mag: want %v, got %v", c.mag, m)
			}
			if w := c.x.Width(); w != c.wid {
				t.Errorf("wrong width: want %v, got %v", c.wid, w)
			}
		})
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		x    Interval
		want string
	}{
		{New(1, 2), "[1, 2]_com"},
		{New(-inf, 0.5), "[-inf, 0.5]_dac"},
		{Empty(), "[empty]_trv"},
		{New(0, 1).SetDec(Def), "[0, 1]_def"},
	}
	for _, c := range cases {
		if got := c.x.String(); got != c.want {
			t.Errorf("wrong string: want %q, got %q", c.want, got)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Interval
		dec  Decoration
	}{
		{"pair", "[1, 2]", New(1, 2), Com},
		{"single", "[0.5]", Point(0.5), Com},
		{"bare", "3", Point(3), Com},
		{"empty", "[empty]", Empty(), Trv},
		{"entire", "[entire]", Entire(), Dac},
		{"inf", "[-inf, +inf]", Entire(), Dac},
		{"decorated", "[1, 2]_def", New(1, 2), Def},
		{"tenth", "[0.1]", New(math.Nextafter(0.1, 0), 0.1), Com},
		{"huge", "[1e5000]", New(math.MaxFloat64, inf), Dac},
		{"tiny", "[-1e-5000]", New(-math.SmallestNonzeroFloat64, 0), Com},
		{"zero exp", "[0e99999]", Point(0), Com},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			x, err := Parse(c.in)
			if err != nil {
				t.Fatalf("error parsing %q: %v", c.in, err)
			}
			if !x.Equal(c.want) {
				t.Errorf("wrong interval: want %v, got %v", c.want, x)
			}
			if x.Dec() != c.dec {
				t.Errorf("wrong decoration: want %v, got %v", c.dec, x.Dec())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "[", "[1, 2", "[2, 1]", "[a]", "[1, 2]_xyz", "[1,, 2]", "[1e]"} {
		if x, err := Parse(in); err == nil {
			t.Errorf("no error parsing %q: got %v", in, x)
		}
	}
}

func TestParseString(t *testing.T) {
	for _, x := range []Interval{New(-1.5, 2.25), New(0, inf), Pi(), Empty()} {
		y, err := Parse(x.String())
		if err != nil {
			t.Errorf("error parsing %q: %v", x.String(), err)
			continue
		}
		if !x.Subset(y) || y.Dec() != x.Dec() {
			t.Errorf("round trip of %v gave %v", x, y)
		}
		if x.IsCommon() && (y.Inf() < math.Nextafter(x.Inf(), -inf) || y.Sup() > math.Nextafter(x.Sup(), inf)) {
			t.Errorf("round trip of %v widened to %v", x, y)
		}
	}
}

func TestBallEnclosure(t *testing.T) {
	cases := []struct {
		name string
		x    Interval
	}{
		{"empty", Empty()},
		{"zero", Point(0)},
		{"one", Point(1)},
		{"pi", Pi()},
		{"nonnegative", New(0, inf)},
		{"nonpositive", New(-inf, 0)},
		{"entire", Entire()},
		{"awkward", New(0, 1.9999999990686774)},
		{"tiny", New(-math.SmallestNonzeroFloat64, math.SmallestNonzeroFloat64)},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			for _, prec := range []uint{24, 53, 96} {
				y := FromBall(c.x.Ball(prec))
				if !c.x.Subset(y) {
					t.Errorf("prec %d: %v not enclosed by %v", prec, c.x, y)
				}
			}
		})
	}
}

func TestRat(t *testing.T) {
	third := big.NewRat(1, 3)
	x := FromRat(third)
	if x.Inf() != 1.0/3 && x.Sup() != 1.0/3 {
		t.Errorf("1/3 gave %v", x)
	}
	if x.IsSingleton() || math.Nextafter(x.Inf(), inf) != x.Sup() {
		t.Errorf("1/3 not tight: %v", x)
	}
	if r, ok := Point(0.75).Rat(); !ok || r.Cmp(big.NewRat(3, 4)) != 0 {
		t.Errorf("0.75 gave %v, %v", r, ok)
	}
	if _, ok := New(0, 1).Rat(); ok {
		t.Error("non-singleton gave a rational")
	}
	huge := new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), 2000))
	if x := FromRat(huge); !x.Equal(New(math.MaxFloat64, inf)) {
		t.Errorf("2^2000 gave %v", x)
	}
}
