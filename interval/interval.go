// Package interval implements decorated interval arithmetic over binary64.
//
// An Interval is a closed, possibly empty or unbounded set of reals together
// with a decoration describing how the function that produced it behaved on
// its inputs, in the manner of IEEE 1788. Every operation returns an interval
// containing the image of its operands; bounds are rounded outward.
//
// Intervals are small values and are passed and returned by value.
package interval

import (
	"math"
	"strconv"
)

// Decoration records what is known about the evaluation that produced an
// interval. Decorations are ordered from weakest to strongest.
type Decoration uint8

const (
	// Ill marks an invalid interval.
	Ill Decoration = iota
	// Trv means nothing is known.
	Trv
	// Def means the function was defined on the whole input.
	Def
	// Dac means the function was defined and continuous on the input.
	Dac
	// Com is Dac with bounded, nonempty input and output.
	Com
)

func (d Decoration) String() string {
	switch d {
	case Ill:
		return "ill"
	case Trv:
		return "trv"
	case Def:
		return "def"
	case Dac:
		return "dac"
	case Com:
		return "com"
	}
	return "Decoration(" + strconv.Itoa(int(d)) + ")"
}

// Interval is a decorated closed interval [lo, hi]. The empty interval has
// lo = +∞ and hi = -∞. The zero value is the point 0 with decoration Ill;
// use the constructors instead.
type Interval struct {
	lo, hi float64
	dec    Decoration
}

// New returns [lo, hi]. If lo > hi or either bound is NaN, the result is the
// empty interval decorated Ill.
func New(lo, hi float64) Interval {
	if !(lo <= hi) || math.IsInf(lo, 1) || math.IsInf(hi, -1) {
		return Interval{lo: math.Inf(1), hi: math.Inf(-1), dec: Ill}
	}
	d := Com
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		d = Dac
	}
	return Interval{lo: lo, hi: hi, dec: d}
}

// Point returns [x, x].
func Point(x float64) Interval {
	return New(x, x)
}

// Empty returns the empty interval.
func Empty() Interval {
	return Interval{lo: math.Inf(1), hi: math.Inf(-1), dec: Trv}
}

// Entire returns [-∞, +∞].
func Entire() Interval {
	return Interval{lo: math.Inf(-1), hi: math.Inf(1), dec: Dac}
}

// result builds [lo, hi] decorated with the weakest of local and the
// decorations of the inputs. Com is demoted to Dac when the result is
// unbounded.
func result(lo, hi float64, local Decoration, in ...Interval) Interval {
	d := local
	for _, x := range in {
		if x.dec == Ill {
			return Interval{lo: math.Inf(1), hi: math.Inf(-1), dec: Ill}
		}
		if x.dec < d {
			d = x.dec
		}
	}
	if math.IsNaN(lo) {
		lo = math.Inf(-1)
	}
	if math.IsNaN(hi) {
		hi = math.Inf(1)
	}
	if lo > hi || math.IsInf(lo, 1) || math.IsInf(hi, -1) {
		return Empty()
	}
	if d == Com && (math.IsInf(lo, 0) || math.IsInf(hi, 0)) {
		d = Dac
	}
	return Interval{lo: lo, hi: hi, dec: d}
}

// Inf returns the lower bound of x, or +∞ if x is empty.
func (x Interval) Inf() float64 { return x.lo }

// Sup returns the upper bound of x, or -∞ if x is empty.
func (x Interval) Sup() float64 { return x.hi }

// Dec returns the decoration of x.
func (x Interval) Dec() Decoration { return x.dec }

// SetDec returns x with its decoration replaced by d. Com is demoted to Dac
// for unbounded x, and an empty x keeps Trv unless d is Ill.
func (x Interval) SetDec(d Decoration) Interval {
	switch {
	case d == Ill:
		return Interval{lo: math.Inf(1), hi: math.Inf(-1), dec: Ill}
	case x.IsEmpty():
		x.dec = Trv
	case d == Com && !x.IsCommon():
		x.dec = Dac
	default:
		x.dec = d
	}
	return x
}

// IsEmpty reports whether x contains no reals.
func (x Interval) IsEmpty() bool { return x.lo > x.hi }

// IsEntire reports whether x is [-∞, +∞].
func (x Interval) IsEntire() bool {
	return math.IsInf(x.lo, -1) && math.IsInf(x.hi, 1)
}

// IsCommon reports whether x is nonempty and bounded.
func (x Interval) IsCommon() bool {
	return !x.IsEmpty() && !math.IsInf(x.lo, 0) && !math.IsInf(x.hi, 0)
}

// IsSingleton reports whether x contains exactly one real.
func (x Interval) IsSingleton() bool {
	return x.lo == x.hi && !math.IsInf(x.lo, 0)
}

// Float64 returns the value of a singleton interval.
func (x Interval) Float64() (float64, bool) {
	if !x.IsSingleton() {
		return 0, false
	}
	return x.lo, true
}

// Contains reports whether v is in x.
func (x Interval) Contains(v float64) bool {
	return x.lo <= v && v <= x.hi
}

// Subset reports whether every element of x is in y.
func (x Interval) Subset(y Interval) bool {
	return x.IsEmpty() || (y.lo <= x.lo && x.hi <= y.hi)
}

// Equal reports whether x and y are the same set, ignoring decorations.
func (x Interval) Equal(y Interval) bool {
	if x.IsEmpty() || y.IsEmpty() {
		return x.IsEmpty() && y.IsEmpty()
	}
	return x.lo == y.lo && x.hi == y.hi
}

// Hull returns the smallest interval containing x and y.
func (x Interval) Hull(y Interval) Interval {
	switch {
	case x.IsEmpty():
		return y
	case y.IsEmpty():
		return x
	}
	return result(math.Min(x.lo, y.lo), math.Max(x.hi, y.hi), Trv, x, y)
}

// Intersect returns the intersection of x and y.
func (x Interval) Intersect(y Interval) Interval {
	return result(math.Max(x.lo, y.lo), math.Min(x.hi, y.hi), Trv, x, y)
}

// restrict intersects x with the bounds of a known range while keeping x's
// decoration.
func (x Interval) restrict(lo, hi float64) Interval {
	if x.IsEmpty() {
		return x
	}
	r := Interval{lo: math.Max(x.lo, lo), hi: math.Min(x.hi, hi), dec: x.dec}
	if r.IsEmpty() {
		return Empty()
	}
	return r
}

// Mid returns a finite point of x near its center. It returns 0 for entire
// intervals and NaN for empty ones.
func (x Interval) Mid() float64 {
	switch {
	case x.IsEmpty():
		return math.NaN()
	case x.IsEntire():
		return 0
	case math.IsInf(x.lo, -1):
		return -math.MaxFloat64
	case math.IsInf(x.hi, 1):
		return math.MaxFloat64
	}
	m := x.lo/2 + x.hi/2
	if m < x.lo {
		m = x.lo
	}
	if m > x.hi {
		m = x.hi
	}
	return m
}

// Rad returns an upper bound for the distance from Mid to either bound.
func (x Interval) Rad() float64 {
	if x.IsEmpty() {
		return math.NaN()
	}
	m := x.Mid()
	return math.Max(subUp(m, x.lo), subUp(x.hi, m))
}

// Width returns an upper bound for hi - lo.
func (x Interval) Width() float64 {
	if x.IsEmpty() {
		return math.NaN()
	}
	return subUp(x.hi, x.lo)
}

// Mig returns the smallest magnitude of any element of x.
func (x Interval) Mig() float64 {
	switch {
	case x.IsEmpty():
		return math.NaN()
	case x.lo > 0:
		return x.lo
	case x.hi < 0:
		return -x.hi
	}
	return 0
}

// Mag returns the largest magnitude of any element of x.
func (x Interval) Mag() float64 {
	if x.IsEmpty() {
		return math.NaN()
	}
	return math.Max(math.Abs(x.lo), math.Abs(x.hi))
}

// String formats x as [lo, hi]_dec.
func (x Interval) String() string {
	if x.IsEmpty() {
		return "[empty]_" + x.dec.String()
	}
	return "[" + formatBound(x.lo) + ", " + formatBound(x.hi) + "]_" + x.dec.String()
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
