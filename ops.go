package relplot

import "strconv"

// UnaryOp is an operator of one argument.
type UnaryOp uint8

const (
	Abs UnaryOp = iota
	Acos
	Acosh
	AiryAi
	AiryAiPrime
	AiryBi
	AiryBiPrime
	Asin
	Asinh
	Atan
	Atanh
	Ceil
	Chi
	Ci
	Cos
	Cosh
	Digamma
	Ei
	Erf
	Erfc
	Erfi
	Exp
	Exp10
	Exp2
	Floor
	FresnelC
	FresnelS
	Gamma
	Li
	Ln
	Log10
	Log2
	Neg
	Not
	One
	Recip
	Shi
	Si
	Sign
	Sin
	Sinc
	Sinh
	Sqr
	Sqrt
	Tan
	Tanh
	UndefAt0

	numUnaryOps
)

var unaryNames = [numUnaryOps]string{
	"Abs", "Acos", "Acosh", "AiryAi", "AiryAiPrime", "AiryBi", "AiryBiPrime",
	"Asin", "Asinh", "Atan", "Atanh", "Ceil", "Chi", "Ci", "Cos", "Cosh",
	"Digamma", "Ei", "Erf", "Erfc", "Erfi", "Exp", "Exp10", "Exp2", "Floor",
	"FresnelC", "FresnelS", "Gamma", "Li", "Ln", "Log10", "Log2", "Neg", "Not",
	"One", "Recip", "Shi", "Si", "Sign", "Sin", "Sinc", "Sinh", "Sqr", "Sqrt",
	"Tan", "Tanh", "UndefAt0",
}

func (op UnaryOp) String() string {
	if op < numUnaryOps {
		return unaryNames[op]
	}
	return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
}

// BinaryOp is an operator of two arguments.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	And
	Atan2
	BesselI
	BesselJ
	BesselK
	BesselY
	Div
	Eq
	GammaInc
	Gcd
	Ge
	Gt
	Lcm
	Le
	Log
	Lt
	Max
	Min
	Mod
	Mul
	Neq
	Nge
	Ngt
	Nle
	Nlt
	Or
	Pow
	RankedMax
	RankedMin
	Sub

	numBinaryOps
)

var binaryNames = [numBinaryOps]string{
	"Add", "And", "Atan2", "BesselI", "BesselJ", "BesselK", "BesselY", "Div",
	"Eq", "GammaInc", "Gcd", "Ge", "Gt", "Lcm", "Le", "Log", "Lt", "Max", "Min",
	"Mod", "Mul", "Neq", "Nge", "Ngt", "Nle", "Nlt", "Or", "Pow", "RankedMax",
	"RankedMin", "Sub",
}

func (op BinaryOp) String() string {
	if op < numBinaryOps {
		return binaryNames[op]
	}
	return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
}

// comparison reports whether op compares two scalars.
func (op BinaryOp) comparison() bool {
	switch op {
	case Eq, Ge, Gt, Le, Lt, Neq, Nge, Ngt, Nle, Nlt:
		return true
	}
	return false
}

// RelOp is the comparison of an atomic relation.
type RelOp uint8

const (
	RelEq RelOp = iota
	RelGe
	RelGt
	RelLe
	RelLt
)

func (op RelOp) String() string {
	switch op {
	case RelEq:
		return "=="
	case RelGe:
		return ">="
	case RelGt:
		return ">"
	case RelLe:
		return "<="
	case RelLt:
		return "<"
	}
	return "RelOp(" + strconv.Itoa(int(op)) + ")"
}

// Binary returns the expression operator that computes the comparison.
func (op RelOp) Binary() BinaryOp {
	switch op {
	case RelEq:
		return Eq
	case RelGe:
		return Ge
	case RelGt:
		return Gt
	case RelLe:
		return Le
	case RelLt:
		return Lt
	}
	panic("relplot: invalid relation operator " + op.String())
}
