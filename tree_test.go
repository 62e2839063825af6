package relplot

import (
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/relplot/interval"
)

func num(t *Tree, n, d int64) ExprID {
	q := big.NewRat(n, d)
	return t.NewConstant(Value{X: interval.FromRat(q), Q: q})
}

func TestStructuralEquality(t *testing.T) {
	tr := NewTree()
	x, y := tr.NewVar("x"), tr.NewVar("y")
	a := tr.NewBinary(Add, x, num(tr, 1, 1))
	b := tr.NewBinary(Add, tr.NewVar("x"), num(tr, 1, 1))
	tr.SetID(a, 7)
	tr.SetID(b, 12)
	if !tr.Equal(a, b) {
		t.Errorf("%s != %s", tr.DumpStructure(a), tr.DumpStructure(b))
	}
	if tr.Hash(a) != tr.Hash(b) {
		t.Errorf("equal nodes hash differently: %x, %x", tr.Hash(a), tr.Hash(b))
	}
	unequal := []struct {
		name string
		e    ExprID
	}{
		{"other constant", tr.NewBinary(Add, tr.NewVar("x"), num(tr, 2, 1))},
		{"other var", tr.NewBinary(Add, y, num(tr, 1, 1))},
		{"commuted", tr.NewBinary(Add, num(tr, 1, 1), tr.NewVar("x"))},
		{"other op", tr.NewBinary(Sub, tr.NewVar("x"), num(tr, 1, 1))},
		{"unary", tr.NewUnary(Neg, x)},
		{"pown", tr.NewPown(tr.NewVar("x"), 2)},
		{"list", tr.NewList(tr.NewVar("x"), num(tr, 1, 1))},
		{"inexact constant", tr.NewBinary(Add, tr.NewVar("x"), tr.NewConstant(Value{X: interval.Point(1)}))},
	}
	for _, c := range unequal {
		if tr.Equal(a, c.e) || tr.Equal(c.e, a) {
			t.Errorf("%s: %s == %s", c.name, tr.DumpStructure(a), tr.DumpStructure(c.e))
		}
	}
}

func TestEqualityCongruence(t *testing.T) {
	tr := NewTree()
	pairs := []struct {
		name string
		a, b ExprID
	}{
		{"signed zero", tr.NewConstant(Value{X: interval.Point(0)}), tr.NewConstant(Value{X: interval.Point(math.Copysign(0, -1))})},
		{"empty", tr.NewConstant(Value{X: interval.Empty()}), tr.NewConstant(Value{X: interval.Empty()})},
		{"rational", num(tr, 2, 6), num(tr, 1, 3)},
		{"pown", tr.NewPown(tr.NewVar("y"), -3), tr.NewPown(tr.NewVar("y"), -3)},
		{"rootn", tr.NewRootn(tr.NewVar("x"), 3), tr.NewRootn(tr.NewVar("x"), 3)},
		{"list", tr.NewList(tr.NewVar("x"), tr.NewVar("y")), tr.NewList(tr.NewVar("x"), tr.NewVar("y"))},
		{"other var", tr.NewVar("t"), tr.NewVar("t")},
		{"uninit", tr.NewUninit(), tr.NewUninit()},
	}
	for _, c := range pairs {
		c := c
		t.Run(c.name, func(t *testing.T) {
			tr.SetID(c.a, 1)
			if !tr.Equal(c.a, c.b) {
				t.Errorf("%v and %v are unequal", tr.Node(c.a), tr.Node(c.b))
			}
			if tr.Hash(c.a) != tr.Hash(c.b) {
				t.Errorf("equal nodes hash differently: %x, %x", tr.Hash(c.a), tr.Hash(c.b))
			}
		})
	}
	if tr.Equal(tr.NewRootn(tr.NewVar("x"), 3), tr.NewPown(tr.NewVar("x"), 3)) {
		t.Error("Rootn == Pown")
	}
	if tr.Equal(tr.NewList(tr.NewVar("x")), tr.NewList(tr.NewVar("x"), tr.NewVar("x"))) {
		t.Error("lists of different lengths are equal")
	}
}

func TestFreeVars(t *testing.T) {
	tr := NewTree()
	x, y := tr.NewVar("x"), tr.NewVar("y")
	cases := []struct {
		name string
		e    ExprID
		want VarSet
	}{
		{"x", x, VarX},
		{"y", y, VarY},
		{"x+y", tr.NewBinary(Add, x, y), VarX | VarY},
		{"constant", num(tr, 3, 1), NoVars},
		{"other", tr.NewVar("t"), NoVars},
		{"sin y", tr.NewUnary(Sin, y), VarY},
		{"pown", tr.NewPown(x, 2), VarX},
		{"rootn", tr.NewRootn(y, 2), VarY},
		{"list", tr.NewList(num(tr, 1, 1), x), VarX},
		{"nested", tr.NewBinary(Mul, tr.NewUnary(Exp, x), tr.NewBinary(Pow, num(tr, 2, 1), y)), VarX | VarY},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if got := tr.Vars(c.e); got != c.want {
				t.Errorf("want %v, got %v", c.want, got)
			}
		})
	}
	if s := VarX | VarY; !s.Has(VarX) || !s.Has(VarY) || VarX.Has(VarY) {
		t.Error("VarSet.Has broken")
	}
}

func TestValueTypes(t *testing.T) {
	tr := NewTree()
	x, y := tr.NewVar("x"), tr.NewVar("y")
	one := num(tr, 1, 1)
	eq := tr.NewBinary(Eq, x, y)
	lt := tr.NewBinary(Lt, x, one)
	vec := tr.NewList(x, one)
	cases := []struct {
		name string
		e    ExprID
		want ValueType
	}{
		{"x == y", eq, TypeBoolean},
		{"x + 1", tr.NewBinary(Add, x, one), TypeScalar},
		{"constant", one, TypeScalar},
		{"x", x, TypeScalar},
		{"other var", tr.NewVar("t"), TypeUnknown},
		{"scalar list", vec, TypeVector},
		{"list with boolean", tr.NewList(x, eq), TypeUnknown},
		{"and", tr.NewBinary(And, eq, lt), TypeBoolean},
		{"or of scalars", tr.NewBinary(Or, x, y), TypeUnknown},
		{"not", tr.NewUnary(Not, eq), TypeBoolean},
		{"not scalar", tr.NewUnary(Not, x), TypeUnknown},
		{"sin of boolean", tr.NewUnary(Sin, eq), TypeUnknown},
		{"compare booleans", tr.NewBinary(Neq, eq, lt), TypeUnknown},
		{"add boolean", tr.NewBinary(Add, x, eq), TypeUnknown},
		{"ranked", tr.NewBinary(RankedMax, vec, one), TypeScalar},
		{"ranked scalar", tr.NewBinary(RankedMin, x, one), TypeUnknown},
		{"ranked vector rank", tr.NewBinary(RankedMin, vec, tr.NewList(one)), TypeUnknown},
		{"pown", tr.NewPown(x, 3), TypeScalar},
		{"rootn of vector", tr.NewRootn(vec, 3), TypeUnknown},
		{"uninit", tr.NewUninit(), TypeUnknown},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if got := tr.Type(c.e); got != c.want {
				t.Errorf("want %v, got %v", c.want, got)
			}
		})
	}
}

func TestIDs(t *testing.T) {
	tr := NewTree()
	x := tr.NewVar("x")
	if id := tr.ID(x); id != UninitID {
		t.Errorf("new node has id %d", id)
	}
	h := tr.Hash(x)
	tr.SetID(x, 3)
	if id := tr.ID(x); id != 3 {
		t.Errorf("want id 3, got %d", id)
	}
	if tr.Hash(x) != h {
		t.Error("id changed hash")
	}
}

func TestDumpStructure(t *testing.T) {
	tr := NewTree()
	x, y := tr.NewVar("x"), tr.NewVar("y")
	cases := []struct {
		e    ExprID
		want string
	}{
		{x, "x"},
		{num(tr, 1, 2), "@"},
		{tr.NewUnary(Sqrt, x), "(Sqrt x)"},
		{tr.NewBinary(Atan2, y, x), "(Atan2 y x)"},
		{tr.NewPown(x, -2), "(Pown x -2)"},
		{tr.NewRootn(tr.NewBinary(Add, x, y), 3), "(Rootn (Add x y) 3)"},
		{tr.NewList(x, num(tr, 2, 1), y), "(List x @ y)"},
		{tr.NewBinary(RankedMin, tr.NewList(x, y), num(tr, 1, 1)), "(RankedMin (List x y) @)"},
	}
	for _, c := range cases {
		if got := tr.DumpStructure(c.e); got != c.want {
			t.Errorf("want %s, got %s", c.want, got)
		}
	}
}

func TestDumpUninitPanics(t *testing.T) {
	tr := NewTree()
	u := tr.NewUnary(Neg, tr.NewUninit())
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	tr.DumpStructure(u)
}

func TestOperandOutOfTree(t *testing.T) {
	tr := NewTree()
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	tr.NewUnary(Sin, 3)
}

func TestOpStrings(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{Abs.String(), "Abs"},
		{UndefAt0.String(), "UndefAt0"},
		{Log2.String(), "Log2"},
		{Add.String(), "Add"},
		{Sub.String(), "Sub"},
		{RankedMin.String(), "RankedMin"},
		{UnaryOp(200).String(), "UnaryOp(200)"},
		{RelGe.String(), ">="},
		{RelLt.Binary().String(), "Lt"},
		{KindRootn.String(), "Rootn"},
		{TypeVector.String(), "Vector"},
		{(VarX | VarY).String(), "{x, y}"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("want %q, got %q", c.want, c.got)
		}
	}
}
