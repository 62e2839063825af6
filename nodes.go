package relplot

import (
	"strconv"
	"strings"
)

// DumpStructure renders e in a parenthesized prefix form for diagnostics.
// Constants appear as @ and variables by name.
func (t *Tree) DumpStructure(e ExprID) string {
	var b strings.Builder
	t.fmt(&b, e)
	return b.String()
}

func (t *Tree) fmt(b *strings.Builder, e ExprID) {
	n := &t.nodes[e]
	switch n.Kind {
	case KindConstant:
		b.WriteByte('@')
	case KindVar:
		b.WriteString(n.Name)
	case KindUnary:
		b.WriteByte('(')
		b.WriteString(n.Unary.String())
		b.WriteByte(' ')
		t.fmt(b, n.X)
		b.WriteByte(')')
	case KindBinary:
		b.WriteByte('(')
		b.WriteString(n.Binary.String())
		b.WriteByte(' ')
		t.fmt(b, n.X)
		b.WriteByte(' ')
		t.fmt(b, n.Y)
		b.WriteByte(')')
	case KindPown, KindRootn:
		b.WriteByte('(')
		if n.Kind == KindPown {
			b.WriteString("Pown ")
		} else {
			b.WriteString("Rootn ")
		}
		t.fmt(b, n.X)
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(n.N, 10))
		b.WriteByte(')')
	case KindList:
		b.WriteString("(List")
		for _, e := range n.List {
			b.WriteByte(' ')
			t.fmt(b, e)
		}
		b.WriteByte(')')
	case KindUninit:
		panic("relplot: dump of uninitialized node after writing " + b.String())
	default:
		panic("relplot: invalid node kind " + n.Kind.String() + " after writing " + b.String())
	}
}
