package relplot

import (
	"math"
	"math/big"
	"testing"
)

func TestRatPow(t *testing.T) {
	cases := []struct {
		name string
		x, y *big.Rat
		want string // "" for undefined
	}{
		{"square", big.NewRat(3, 2), big.NewRat(2, 1), "9/4"},
		{"negative", big.NewRat(-2, 3), big.NewRat(-3, 1), "-27/8"},
		{"zero-zero", new(big.Rat), new(big.Rat), "1"},
		{"zero-pos", new(big.Rat), big.NewRat(5, 1), "0"},
		{"zero-neg", new(big.Rat), big.NewRat(-1, 1), ""},
		{"fraction", big.NewRat(4, 1), big.NewRat(1, 2), ""},
		{"unit-huge", big.NewRat(-1, 1), big.NewRat(1<<40+1, 1), "-1"},
		{"too-big", big.NewRat(3, 1), big.NewRat(1<<20, 1), ""},
		{"too-big-neg", big.NewRat(1, 3), big.NewRat(-(1 << 20), 1), ""},
		{"most-negative", big.NewRat(2, 1), big.NewRat(math.MinInt64, 1), ""},
		{"unit-most-negative", big.NewRat(-1, 1), big.NewRat(math.MinInt64, 1), "1"},
		{"huge-exponent", big.NewRat(2, 1), new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), 70)), ""},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			got := ratPow(c.x, c.y)
			switch {
			case c.want == "":
				if got != nil {
					t.Errorf("want undefined, got %v", got.RatString())
				}
			case got == nil:
				t.Errorf("want %s, got undefined", c.want)
			case got.RatString() != c.want:
				t.Errorf("want %s, got %s", c.want, got.RatString())
			}
		})
	}
}

func TestRatPowLimit(t *testing.T) {
	got := ratPow(big.NewRat(2, 1), big.NewRat(maxPowBits, 1))
	want := new(big.Int).Lsh(big.NewInt(1), maxPowBits)
	if got == nil || !got.IsInt() || got.Num().Cmp(want) != 0 {
		t.Errorf("want 2^%d, got %v", maxPowBits, got)
	}
	if got := ratPow(big.NewRat(2, 1), big.NewRat(maxPowBits+1, 1)); got != nil {
		t.Errorf("want undefined past the limit, got %d bits", got.Num().BitLen())
	}
}

func TestRatUnary(t *testing.T) {
	x := big.NewRat(-7, 2)
	cases := []struct {
		op   UnaryOp
		want string
	}{
		{Abs, "7/2"},
		{Ceil, "-3"},
		{Floor, "-4"},
		{Neg, "7/2"},
		{Sqr, "49/4"},
	}
	for _, c := range cases {
		if got := ratUnary(c.op, x); got == nil || got.RatString() != c.want {
			t.Errorf("%v(-7/2): want %s, got %v", c.op, c.want, got)
		}
	}
	if x.RatString() != "-7/2" {
		t.Errorf("operand modified to %v", x)
	}
	if got := ratUnary(Sin, x); got != nil {
		t.Errorf("Sin has exact result %v", got)
	}
}

func TestRatBinaryUndefined(t *testing.T) {
	one, zero := big.NewRat(1, 1), new(big.Rat)
	for _, op := range []BinaryOp{Div, Mod} {
		if got := ratBinary(op, one, zero); got != nil {
			t.Errorf("%v by zero gave %v", op, got)
		}
	}
	for _, op := range []BinaryOp{Atan2, Log, BesselJ, RankedMax} {
		if got := ratBinary(op, one, one); got != nil {
			t.Errorf("%v has exact result %v", op, got)
		}
	}
}
