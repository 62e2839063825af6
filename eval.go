package relplot

import (
	"math/big"

	"github.com/zephyrtronium/relplot/interval"
)

// Eval evaluates e if it is a constant expression. ok is false when e depends
// on a variable or is a list or Boolean expression; this is not an error.
//
// Eval panics if it reaches a node that must be rewritten before evaluation:
// uninitialized nodes, integer powers, and the operators Exp2, Exp10, and
// Recip, which become Pow. It also panics for a ranked statistic whose left
// operand is not a list.
//
// Eval does not modify the tree, so it is safe to call concurrently.
func (t *Tree) Eval(e ExprID) (v Value, ok bool) {
	n := &t.nodes[e]
	switch n.Kind {
	case KindConstant:
		return n.Value, true
	case KindUnary:
		switch n.Unary {
		case Exp2, Exp10, Recip:
			panic("relplot: " + n.Unary.String() + " must be rewritten to Pow before evaluation")
		case Not:
			return Value{}, false
		}
		x, ok := t.Eval(n.X)
		if !ok {
			return Value{}, false
		}
		return evalUnary(n.Unary, x), true
	case KindBinary:
		switch {
		case n.Binary == RankedMax || n.Binary == RankedMin:
			return t.evalRanked(n)
		case n.Binary == And || n.Binary == Or || n.Binary.comparison():
			return Value{}, false
		}
		x, ok := t.Eval(n.X)
		if !ok {
			return Value{}, false
		}
		y, ok := t.Eval(n.Y)
		if !ok {
			return Value{}, false
		}
		return evalBinary(n.Binary, x, y), true
	case KindPown:
		panic("relplot: Pown must be rewritten to Pow before evaluation")
	case KindRootn:
		x, ok := t.Eval(n.X)
		if !ok {
			return Value{}, false
		}
		return inexact(x.X.Rootn(n.N)), true
	case KindVar, KindList:
		return Value{}, false
	case KindUninit:
		panic("relplot: evaluation of uninitialized node")
	}
	panic("relplot: invalid node kind " + n.Kind.String())
}

func (t *Tree) evalRanked(n *Node) (Value, bool) {
	l := &t.nodes[n.X]
	if l.Kind != KindList {
		panic("relplot: " + n.Binary.String() + " of " + l.Kind.String() + " instead of List")
	}
	xs := make([]interval.Interval, len(l.List))
	for i, e := range l.List {
		v, ok := t.Eval(e)
		if !ok {
			return Value{}, false
		}
		xs[i] = v.X
	}
	k, ok := t.Eval(n.Y)
	if !ok {
		return Value{}, false
	}
	if n.Binary == RankedMax {
		return Value{X: interval.RankedMax(xs, k.X)}, true
	}
	return Value{X: interval.RankedMin(xs, k.X)}, true
}

func evalUnary(op UnaryOp, x Value) Value {
	r := unaryInterval(op, x.X)
	if x.Q != nil {
		if q := ratUnary(op, x.Q); q != nil {
			return exact(q, r.Dec())
		}
		if exactAwareUnary(op) {
			return Value{X: r}
		}
	}
	return inexact(r)
}

func evalBinary(op BinaryOp, x, y Value) Value {
	r := binaryInterval(op, x.X, y.X)
	if x.Q != nil && y.Q != nil {
		if q := ratBinary(op, x.Q, y.Q); q != nil {
			return exact(q, r.Dec())
		}
		if exactAwareBinary(op) {
			return Value{X: r}
		}
	}
	return inexact(r)
}

func exactAwareUnary(op UnaryOp) bool {
	switch op {
	case Abs, Ceil, Floor, Neg, Sqr:
		return true
	}
	return false
}

func exactAwareBinary(op BinaryOp) bool {
	switch op {
	case Add, Sub, Mul, Div, Gcd, Lcm, Max, Min, Mod, Pow:
		return true
	}
	return false
}

// exact encloses q, decorated no better than d.
func exact(q *big.Rat, d interval.Decoration) Value {
	x := interval.FromRat(q)
	if d < x.Dec() {
		x = x.SetDec(d)
	}
	return Value{X: x, Q: q}
}

// inexact recovers the rational value of x if x is a finite singleton.
func inexact(x interval.Interval) Value {
	q, _ := x.Rat()
	return Value{X: x, Q: q}
}

func unaryInterval(op UnaryOp, x interval.Interval) interval.Interval {
	switch op {
	case Abs:
		return x.Abs()
	case Acos:
		return x.Acos()
	case Acosh:
		return x.Acosh()
	case AiryAi:
		return x.AiryAi()
	case AiryAiPrime:
		return x.AiryAiPrime()
	case AiryBi:
		return x.AiryBi()
	case AiryBiPrime:
		return x.AiryBiPrime()
	case Asin:
		return x.Asin()
	case Asinh:
		return x.Asinh()
	case Atan:
		return x.Atan()
	case Atanh:
		return x.Atanh()
	case Ceil:
		return x.Ceil()
	case Chi:
		return x.Chi()
	case Ci:
		return x.Ci()
	case Cos:
		return x.Cos()
	case Cosh:
		return x.Cosh()
	case Digamma:
		return x.Digamma()
	case Ei:
		return x.Ei()
	case Erf:
		return x.Erf()
	case Erfc:
		return x.Erfc()
	case Erfi:
		return x.Erfi()
	case Exp:
		return x.Exp()
	case Floor:
		return x.Floor()
	case FresnelC:
		return x.FresnelC()
	case FresnelS:
		return x.FresnelS()
	case Gamma:
		return x.Gamma()
	case Li:
		return x.Li()
	case Ln:
		return x.Ln()
	case Log10:
		return x.Log10()
	case Log2:
		return x.Log2()
	case Neg:
		return x.Neg()
	case One:
		return x.One()
	case Shi:
		return x.Shi()
	case Si:
		return x.Si()
	case Sign:
		return x.Sign()
	case Sin:
		return x.Sin()
	case Sinc:
		return x.Sinc()
	case Sinh:
		return x.Sinh()
	case Sqr:
		return x.Sqr()
	case Sqrt:
		return x.Sqrt()
	case Tan:
		return x.Tan()
	case Tanh:
		return x.Tanh()
	case UndefAt0:
		return x.UndefAt0()
	}
	panic("relplot: no interval function for " + op.String())
}

func binaryInterval(op BinaryOp, x, y interval.Interval) interval.Interval {
	switch op {
	case Add:
		return x.Add(y)
	case Atan2:
		return x.Atan2(y)
	case BesselI:
		return interval.BesselI(x, y)
	case BesselJ:
		return interval.BesselJ(x, y)
	case BesselK:
		return interval.BesselK(x, y)
	case BesselY:
		return interval.BesselY(x, y)
	case Div:
		return x.Div(y)
	case GammaInc:
		return interval.GammaInc(x, y)
	case Gcd:
		return x.Gcd(y)
	case Lcm:
		return x.Lcm(y)
	case Log:
		return interval.Log(x, y)
	case Max:
		return x.Max(y)
	case Min:
		return x.Min(y)
	case Mod:
		return x.RemEuclid(y)
	case Mul:
		return x.Mul(y)
	case Pow:
		return x.Pow(y)
	case Sub:
		return x.Sub(y)
	}
	panic("relplot: no interval function for " + op.String())
}
