package relplot

// Func is a named function that the parser recognizes when its name is
// followed by a parenthesized argument list. The zero Func takes no
// arguments, so setting a name to it disables the name.
type Func struct {
	unary  UnaryOp
	binary BinaryOp
	one    bool
	two    bool
}

// Monadic creates a function of one argument.
func Monadic(op UnaryOp) Func {
	return Func{unary: op, one: true}
}

// Dyadic creates a function of two arguments.
func Dyadic(op BinaryOp) Func {
	return Func{binary: op, two: true}
}

// Overloaded creates a function that applies u to one argument and b to two.
func Overloaded(u UnaryOp, b BinaryOp) Func {
	return Func{unary: u, binary: b, one: true, two: true}
}

// CanCall returns whether the function can be called with n arguments.
func (f Func) CanCall(n int) bool {
	switch n {
	case 1:
		return f.one
	case 2:
		return f.two
	}
	return false
}

// call adds the application of f to args. The caller checks CanCall.
func (f Func) call(t *Tree, args []ExprID) ExprID {
	if len(args) == 1 {
		return t.NewUnary(f.unary, args[0])
	}
	return t.NewBinary(f.binary, args[0], args[1])
}

// ranked reports whether f takes a list as its first argument.
func (f Func) ranked() bool {
	return f.two && (f.binary == RankedMax || f.binary == RankedMin)
}

// LookupFunc returns the default function with the given name.
func LookupFunc(name string) (Func, bool) {
	f, ok := globalfuncs[name]
	return f, ok
}

var globalfuncs = map[string]Func{
	"abs":   Monadic(Abs),
	"acos":  Monadic(Acos),
	"acosh": Monadic(Acosh),
	"asin":  Monadic(Asin),
	"asinh": Monadic(Asinh),
	"atan":  Monadic(Atan),
	"atanh": Monadic(Atanh),
	"ceil":  Monadic(Ceil),
	"cos":   Monadic(Cos),
	"cosh":  Monadic(Cosh),
	"exp":   Monadic(Exp),
	"floor": Monadic(Floor),
	"ln":    Monadic(Ln),
	"log":   Overloaded(Ln, Log),
	"log10": Monadic(Log10),
	"log2":  Monadic(Log2),
	"sign":  Monadic(Sign),
	"sin":   Monadic(Sin),
	"sinc":  Monadic(Sinc),
	"sinh":  Monadic(Sinh),
	"sqrt":  Monadic(Sqrt),
	"tan":   Monadic(Tan),
	"tanh":  Monadic(Tanh),

	"erf":   Monadic(Erf),
	"erfc":  Monadic(Erfc),
	"erfi":  Monadic(Erfi),
	"Gamma": Overloaded(Gamma, GammaInc),
	"Γ":     Overloaded(Gamma, GammaInc),
	"psi":   Monadic(Digamma),
	"ψ":     Monadic(Digamma),
	"Ai":    Monadic(AiryAi),
	"Ai'":   Monadic(AiryAiPrime),
	"Bi":    Monadic(AiryBi),
	"Bi'":   Monadic(AiryBiPrime),
	"Si":    Monadic(Si),
	"Ci":    Monadic(Ci),
	"Shi":   Monadic(Shi),
	"Chi":   Monadic(Chi),
	"Ei":    Monadic(Ei),
	"li":    Monadic(Li),
	"C":     Monadic(FresnelC),
	"S":     Monadic(FresnelS),

	"atan2":      Dyadic(Atan2),
	"gcd":        Dyadic(Gcd),
	"lcm":        Dyadic(Lcm),
	"max":        Dyadic(Max),
	"min":        Dyadic(Min),
	"mod":        Dyadic(Mod),
	"I":          Dyadic(BesselI),
	"J":          Dyadic(BesselJ),
	"K":          Dyadic(BesselK),
	"Y":          Dyadic(BesselY),
	"ranked_max": Dyadic(RankedMax),
	"ranked_min": Dyadic(RankedMin),
}
