package interval

import "math"

// Directed rounding for binary64. Go has no rounding-mode control, so each
// operation is computed in round-to-nearest and its exact error is recovered
// with an error-free transformation. The result is then moved one ulp outward
// only when the error points that way. Results too close to the underflow
// threshold for the transformation to be exact are always moved outward.

// tiny is the magnitude below which error-free transformations of products
// and quotients may lose bits to underflow.
const tiny = 0x1p-969

func nextUp(x float64) float64 {
	return math.Nextafter(x, math.Inf(1))
}

func nextDown(x float64) float64 {
	return math.Nextafter(x, math.Inf(-1))
}

// twoSum returns s = fl(a+b) and the error e = a + b - s exactly.
func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}

func addDown(a, b float64) float64 {
	s, e := twoSum(a, b)
	switch {
	case math.IsInf(s, 1) && !math.IsInf(a, 0) && !math.IsInf(b, 0):
		return math.MaxFloat64
	case math.IsInf(s, 0) || math.IsNaN(e):
		return s
	case e < 0:
		return nextDown(s)
	}
	return s
}

func addUp(a, b float64) float64 {
	s, e := twoSum(a, b)
	switch {
	case math.IsInf(s, -1) && !math.IsInf(a, 0) && !math.IsInf(b, 0):
		return -math.MaxFloat64
	case math.IsInf(s, 0) || math.IsNaN(e):
		return s
	case e > 0:
		return nextUp(s)
	}
	return s
}

func subDown(a, b float64) float64 {
	return addDown(a, -b)
}

func subUp(a, b float64) float64 {
	return addUp(a, -b)
}

// mulDown returns a lower bound for a×b, taking 0×∞ as 0.
func mulDown(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	switch {
	case math.IsInf(p, 1) && !math.IsInf(a, 0) && !math.IsInf(b, 0):
		return math.MaxFloat64
	case math.IsInf(p, 0):
		return p
	case math.Abs(p) < tiny:
		return nextDown(p)
	}
	if math.FMA(a, b, -p) < 0 {
		return nextDown(p)
	}
	return p
}

// mulUp returns an upper bound for a×b, taking 0×∞ as 0.
func mulUp(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	switch {
	case math.IsInf(p, -1) && !math.IsInf(a, 0) && !math.IsInf(b, 0):
		return -math.MaxFloat64
	case math.IsInf(p, 0):
		return p
	case math.Abs(p) < tiny:
		return nextUp(p)
	}
	if math.FMA(a, b, -p) > 0 {
		return nextUp(p)
	}
	return p
}

// divErr returns q = fl(a/b) and the sign of a/b - q, or ok false when the
// sign cannot be recovered exactly.
func divErr(a, b float64) (q float64, sign int, ok bool) {
	q = a / b
	if math.IsInf(q, 0) || q == 0 || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return q, 0, false
	}
	if math.Abs(q) < tiny || math.Abs(a) < tiny || math.Abs(b) < tiny {
		return q, 0, false
	}
	// a - q b is exact; a/b - q has its sign times the sign of b.
	r := math.FMA(-q, b, a)
	switch {
	case r == 0:
		return q, 0, true
	case (r > 0) == (b > 0):
		return q, 1, true
	}
	return q, -1, true
}

// divDown returns a lower bound for a/b. b must not be zero, and a and b must
// not both be infinite.
func divDown(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	q, s, ok := divErr(a, b)
	switch {
	case math.IsInf(q, 1) && !math.IsInf(a, 0):
		return math.MaxFloat64
	case math.IsInf(q, 0) || math.IsInf(a, 0) || math.IsInf(b, 0):
		return q
	case !ok || s < 0:
		return nextDown(q)
	}
	return q
}

// divUp returns an upper bound for a/b. b must not be zero, and a and b must
// not both be infinite.
func divUp(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	q, s, ok := divErr(a, b)
	switch {
	case math.IsInf(q, -1) && !math.IsInf(a, 0):
		return -math.MaxFloat64
	case math.IsInf(q, 0) || math.IsInf(a, 0) || math.IsInf(b, 0):
		return q
	case !ok || s > 0:
		return nextUp(q)
	}
	return q
}

func sqrtDown(a float64) float64 {
	s := math.Sqrt(a)
	if s == 0 || math.IsInf(s, 0) {
		return s
	}
	if a < tiny || math.FMA(s, s, -a) > 0 {
		return nextDown(s)
	}
	return s
}

func sqrtUp(a float64) float64 {
	s := math.Sqrt(a)
	if s == 0 || math.IsInf(s, 0) {
		return s
	}
	if a < tiny || math.FMA(s, s, -a) < 0 {
		return nextUp(s)
	}
	return s
}
