package interval

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/relplot/ball"
)

// Ball returns a ball of the given precision enclosing x. Empty and unbounded
// intervals give 0 ± ∞.
func (x Interval) Ball(prec uint) *ball.Ball {
	if !x.IsCommon() {
		return ball.ZeroPmInf(prec)
	}
	if x.lo == x.hi {
		return ball.FromFloat64(x.lo, prec)
	}
	return ball.FromMidRad(x.Mid(), x.Rad(), prec)
}

// FromBall returns the smallest interval enclosing b.
func FromBall(b *ball.Ball) Interval {
	if !b.IsFinite() {
		return Entire()
	}
	return New(b.Endpoints())
}

// FromRat returns the tightest interval containing r.
func FromRat(r *big.Rat) Interval {
	f, exact := r.Float64()
	switch {
	case exact:
		return Point(f)
	case math.IsInf(f, 1):
		return New(math.MaxFloat64, f)
	case math.IsInf(f, -1):
		return New(f, -math.MaxFloat64)
	}
	if new(big.Rat).SetFloat64(f).Cmp(r) < 0 {
		return New(f, nextUp(f))
	}
	return New(nextDown(f), f)
}

// Rat returns the exact value of a singleton interval.
func (x Interval) Rat() (*big.Rat, bool) {
	v, ok := x.Float64()
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFloat64(v), true
}

// maxDecimalExp bounds the decimal exponents Parse converts exactly.
const maxDecimalExp = 4000

// Parse reads an interval in one of the forms [a, b], [a], [empty], or
// [entire], optionally followed by a decoration suffix such as _def. A bare
// number a is read as [a]. Bounds are decimal numbers or ±inf; the result
// contains the exact decimal values.
func Parse(s string) (Interval, error) {
	t := strings.TrimSpace(s)
	dec := Decoration(0)
	if i := strings.LastIndexByte(t, '_'); i >= 0 && strings.HasSuffix(t[:i], "]") {
		d, ok := parseDec(t[i+1:])
		if !ok {
			return Interval{}, fmt.Errorf("interval: invalid decoration in %q", s)
		}
		dec, t = d, t[:i]
	}
	var r Interval
	switch {
	case strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]"):
		body := strings.TrimSpace(t[1 : len(t)-1])
		switch strings.ToLower(body) {
		case "empty":
			r = Empty()
		case "entire":
			r = Entire()
		default:
			a, b, pair := strings.Cut(body, ",")
			lo, err := parseBound(a)
			if err != nil {
				return Interval{}, fmt.Errorf("interval: invalid interval %q: %w", s, err)
			}
			hi := lo
			if pair {
				if hi, err = parseBound(b); err != nil {
					return Interval{}, fmt.Errorf("interval: invalid interval %q: %w", s, err)
				}
			}
			r = New(lo.lo, hi.hi)
			if r.dec == Ill {
				return r, fmt.Errorf("interval: invalid interval %q: bounds out of order", s)
			}
		}
	default:
		v, err := parseBound(t)
		if err != nil {
			return Interval{}, fmt.Errorf("interval: invalid interval %q: %w", s, err)
		}
		r = v
	}
	if dec != 0 {
		r = r.SetDec(dec)
	}
	return r, nil
}

func parseDec(s string) (Decoration, bool) {
	for d := Trv; d <= Com; d++ {
		if s == d.String() {
			return d, true
		}
	}
	return 0, false
}

// parseBound reads one decimal bound as the tightest interval containing it.
func parseBound(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "inf", "+inf", "infinity", "+infinity":
		return Interval{lo: math.Inf(1), hi: math.Inf(1), dec: Dac}, nil
	case "-inf", "-infinity":
		return Interval{lo: math.Inf(-1), hi: math.Inf(-1), dec: Dac}, nil
	}
	if i := strings.IndexAny(s, "eE"); i >= 0 && !strings.ContainsAny(s, "xX") {
		e, err := strconv.Atoi(s[i+1:])
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Interval{}, fmt.Errorf("bad exponent in %q", s)
		}
		if e > maxDecimalExp || e < -maxDecimalExp {
			m, ok := new(big.Rat).SetString(s[:i])
			if !ok {
				return Interval{}, fmt.Errorf("bad number %q", s)
			}
			switch {
			case m.Sign() == 0:
				return Point(0), nil
			case e > 0 && m.Sign() > 0:
				return New(math.MaxFloat64, math.Inf(1)), nil
			case e > 0:
				return New(math.Inf(-1), -math.MaxFloat64), nil
			case m.Sign() > 0:
				return New(0, math.SmallestNonzeroFloat64), nil
			default:
				return New(-math.SmallestNonzeroFloat64, 0), nil
			}
		}
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Interval{}, fmt.Errorf("bad number %q", s)
	}
	return FromRat(r), nil
}
