package relplot

import "strings"

// RelKind is the variant of a relation node.
type RelKind uint8

const (
	// RelAtomic compares two scalar expressions.
	RelAtomic RelKind = iota
	// RelAnd holds when both operands hold.
	RelAnd
	// RelOr holds when either operand holds.
	RelOr
)

// Rel is a node of a relation: a comparison between expressions, or a
// conjunction or disjunction of relations.
type Rel struct {
	Kind RelKind
	// Op, X, and Y are the comparison and operands of an atomic relation.
	Op   RelOp
	X, Y ExprID
	// Left and Right are the operands of a conjunction or disjunction.
	Left, Right *Rel
}

// Relation is a parsed relation together with the expressions it compares.
type Relation struct {
	Tree *Tree
	Root *Rel
}

// Vars returns the free variables of the relation.
func (r *Relation) Vars() VarSet {
	return r.vars(r.Root)
}

func (r *Relation) vars(n *Rel) VarSet {
	if n.Kind == RelAtomic {
		return r.Tree.Vars(n.X) | r.Tree.Vars(n.Y)
	}
	return r.vars(n.Left) | r.vars(n.Right)
}

// DumpStructure renders the relation in the same prefix form as
// Tree.DumpStructure, e.g. (And (Ge (Sin x) @) (Lt x @)).
func (r *Relation) DumpStructure() string {
	var b strings.Builder
	r.fmt(&b, r.Root)
	return b.String()
}

func (r *Relation) fmt(b *strings.Builder, n *Rel) {
	b.WriteByte('(')
	switch n.Kind {
	case RelAtomic:
		b.WriteString(n.Op.Binary().String())
		b.WriteByte(' ')
		r.Tree.fmt(b, n.X)
		b.WriteByte(' ')
		r.Tree.fmt(b, n.Y)
	case RelAnd, RelOr:
		if n.Kind == RelAnd {
			b.WriteString("And ")
		} else {
			b.WriteString("Or ")
		}
		r.fmt(b, n.Left)
		b.WriteByte(' ')
		r.fmt(b, n.Right)
	default:
		panic("relplot: invalid relation kind after writing " + b.String())
	}
	b.WriteByte(')')
}

// Lower adds the Boolean expression equivalent to the relation to its tree
// and returns it. The new nodes take the compared expressions as operands,
// so Lower should be called at most once per relation.
func (r *Relation) Lower() ExprID {
	return r.lower(r.Root)
}

func (r *Relation) lower(n *Rel) ExprID {
	switch n.Kind {
	case RelAtomic:
		return r.Tree.NewBinary(n.Op.Binary(), n.X, n.Y)
	case RelAnd:
		return r.Tree.NewBinary(And, r.lower(n.Left), r.lower(n.Right))
	case RelOr:
		return r.Tree.NewBinary(Or, r.lower(n.Left), r.lower(n.Right))
	}
	panic("relplot: invalid relation kind")
}
