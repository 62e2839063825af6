package relplot

import (
	"math/big"

	"github.com/zephyrtronium/relplot/interval"
)

// maxPowBits bounds the size of the operands of an exact power, so that
// something like 3^1e9 falls back to interval arithmetic.
const maxPowBits = 1 << 14

// ratUnary applies an exact-aware unary operator to a rational. The result
// is nil if op has no exact definition.
func ratUnary(op UnaryOp, x *big.Rat) *big.Rat {
	switch op {
	case Abs:
		return new(big.Rat).Abs(x)
	case Ceil:
		// ⌈x⌉ = -⌊-x⌋
		f := ratFloor(new(big.Rat).Neg(x))
		return f.Neg(f)
	case Floor:
		return ratFloor(x)
	case Neg:
		return new(big.Rat).Neg(x)
	case Sqr:
		return new(big.Rat).Mul(x, x)
	}
	return nil
}

func ratFloor(x *big.Rat) *big.Rat {
	// big.Int.Div is Euclidean, which floors for a positive divisor.
	f := new(big.Int).Div(x.Num(), x.Denom())
	return new(big.Rat).SetInt(f)
}

// ratBinary applies an exact-aware binary operator to rationals. The result
// is nil if op has no exact definition or is undefined at x, y.
func ratBinary(op BinaryOp, x, y *big.Rat) *big.Rat {
	switch op {
	case Add:
		return new(big.Rat).Add(x, y)
	case Sub:
		return new(big.Rat).Sub(x, y)
	case Mul:
		return new(big.Rat).Mul(x, y)
	case Div:
		if y.Sign() == 0 {
			return nil
		}
		return new(big.Rat).Quo(x, y)
	case Gcd:
		return interval.RatGcd(x, y)
	case Lcm:
		return interval.RatLcm(x, y)
	case Max:
		if x.Cmp(y) >= 0 {
			return new(big.Rat).Set(x)
		}
		return new(big.Rat).Set(y)
	case Min:
		if x.Cmp(y) <= 0 {
			return new(big.Rat).Set(x)
		}
		return new(big.Rat).Set(y)
	case Mod:
		if y.Sign() == 0 {
			return nil
		}
		return interval.RatRemEuclid(x, y)
	case Pow:
		return ratPow(x, y)
	}
	return nil
}

// ratPow computes x^y for an integer y. x^0 is 1 for every x, matching
// interval Pow. It is nil for a non-integer y, for 0 to a negative power, and
// when the result would be too large.
func ratPow(x, y *big.Rat) *big.Rat {
	if !y.IsInt() || !y.Num().IsInt64() {
		return nil
	}
	n := y.Num().Int64()
	switch {
	case n == 0:
		return big.NewRat(1, 1)
	case x.Sign() == 0:
		if n < 0 {
			return nil
		}
		return new(big.Rat)
	}
	e := new(big.Int).Abs(big.NewInt(n))
	num, den := x.Num(), x.Denom()
	bits := num.BitLen()
	if den.BitLen() > bits {
		bits = den.BitLen()
	}
	// Unit numerators and denominators stay small however large e is.
	if bits > 1 && (!e.IsInt64() || e.Int64() > maxPowBits || int64(bits-1)*e.Int64() > maxPowBits) {
		return nil
	}
	p := new(big.Int).Exp(num, e, nil)
	q := new(big.Int).Exp(den, e, nil)
	if n < 0 {
		p, q = q, p
	}
	// SetFrac normalizes the sign of a negative denominator.
	return new(big.Rat).SetFrac(p, q)
}
