package relplot

import (
	"hash/fnv"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/relplot/interval"
)

// ExprID is the index of an expression node in its Tree.
type ExprID uint32

// UninitID is the identifier of a node that has not been assigned one.
const UninitID = ^uint32(0)

// Kind is the variant of an expression node.
type Kind uint8

const (
	KindUninit Kind = iota
	KindConstant
	KindUnary
	KindBinary
	KindPown
	KindRootn
	KindVar
	KindList
)

var kindNames = [...]string{"Uninit", "Constant", "Unary", "Binary", "Pown", "Rootn", "Var", "List"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ValueType is the type of the value an expression computes.
type ValueType uint8

const (
	TypeUnknown ValueType = iota
	TypeScalar
	TypeVector
	TypeBoolean
)

func (t ValueType) String() string {
	switch t {
	case TypeUnknown:
		return "Unknown"
	case TypeScalar:
		return "Scalar"
	case TypeVector:
		return "Vector"
	case TypeBoolean:
		return "Boolean"
	}
	return "ValueType(" + strconv.Itoa(int(t)) + ")"
}

// VarSet is a set of the plotting variables x and y.
type VarSet uint8

const (
	VarX VarSet = 1 << iota
	VarY

	NoVars VarSet = 0
)

// Has reports whether s contains every variable in v.
func (s VarSet) Has(v VarSet) bool { return s&v == v }

func (s VarSet) String() string {
	switch s {
	case NoVars:
		return "{}"
	case VarX:
		return "{x}"
	case VarY:
		return "{y}"
	case VarX | VarY:
		return "{x, y}"
	}
	return "VarSet(" + strconv.Itoa(int(s)) + ")"
}

// Value is the value of a constant expression: an enclosure, and the exact
// rational value when it is known. When Q is non-nil, X encloses it.
type Value struct {
	X interval.Interval
	Q *big.Rat
}

// Node is an expression node. Which fields are meaningful depends on Kind.
type Node struct {
	Kind Kind
	// Unary is the operator of a KindUnary node.
	Unary UnaryOp
	// Binary is the operator of a KindBinary node.
	Binary BinaryOp
	// X is the operand of unary, power, and root nodes and the left operand
	// of binary nodes. Y is the right operand of binary nodes.
	X, Y ExprID
	// N is the exponent of KindPown or the index of KindRootn.
	N int64
	// Name is the name of a KindVar node.
	Name string
	// List holds the elements of a KindList node.
	List []ExprID
	// Value is the value of a KindConstant node.
	Value Value
}

// meta is the metadata of a node, computed once when the node is added.
type meta struct {
	id   uint32
	typ  ValueType
	vars VarSet
	hash uint64
}

// Tree is an arena of expression nodes. Nodes are only ever appended, and
// every node's operands precede it, so metadata computed when a node is
// added never goes stale. A Tree is not safe for concurrent modification,
// but Eval and the other read methods may be used concurrently once it is
// built.
type Tree struct {
	nodes []Node
	meta  []meta
}

// NewTree creates an empty expression tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node at e.
func (t *Tree) Node(e ExprID) *Node { return &t.nodes[e] }

// Type returns the value type of e.
func (t *Tree) Type(e ExprID) ValueType { return t.meta[e].typ }

// Vars returns the set of free variables of e.
func (t *Tree) Vars(e ExprID) VarSet { return t.meta[e].vars }

// Hash returns the structural hash of e.
func (t *Tree) Hash(e ExprID) uint64 { return t.meta[e].hash }

// ID returns the identifier assigned to e, or UninitID.
func (t *Tree) ID(e ExprID) uint32 { return t.meta[e].id }

// SetID assigns an identifier to e. Identifiers do not affect equality or
// hashing.
func (t *Tree) SetID(e ExprID, id uint32) { t.meta[e].id = id }

// NewConstant adds a constant node.
func (t *Tree) NewConstant(v Value) ExprID {
	return t.add(Node{Kind: KindConstant, Value: v})
}

// NewUnary adds op(x).
func (t *Tree) NewUnary(op UnaryOp, x ExprID) ExprID {
	t.check(x)
	return t.add(Node{Kind: KindUnary, Unary: op, X: x})
}

// NewBinary adds op(x, y).
func (t *Tree) NewBinary(op BinaryOp, x, y ExprID) ExprID {
	t.check(x)
	t.check(y)
	return t.add(Node{Kind: KindBinary, Binary: op, X: x, Y: y})
}

// NewPown adds x^n for an integer n.
func (t *Tree) NewPown(x ExprID, n int64) ExprID {
	t.check(x)
	return t.add(Node{Kind: KindPown, X: x, N: n})
}

// NewRootn adds the n-th root of x.
func (t *Tree) NewRootn(x ExprID, n int64) ExprID {
	t.check(x)
	return t.add(Node{Kind: KindRootn, X: x, N: n})
}

// NewVar adds a variable.
func (t *Tree) NewVar(name string) ExprID {
	return t.add(Node{Kind: KindVar, Name: name})
}

// NewList adds a list of the given elements. The tree keeps its own copy of
// the slice.
func (t *Tree) NewList(elems ...ExprID) ExprID {
	for _, e := range elems {
		t.check(e)
	}
	l := make([]ExprID, len(elems))
	copy(l, elems)
	return t.add(Node{Kind: KindList, List: l})
}

// NewUninit adds an uninitialized placeholder node.
func (t *Tree) NewUninit() ExprID {
	return t.add(Node{Kind: KindUninit})
}

func (t *Tree) check(e ExprID) {
	if int(e) >= len(t.nodes) {
		panic("relplot: operand " + strconv.Itoa(int(e)) + " not in tree of " + strconv.Itoa(len(t.nodes)) + " nodes")
	}
}

func (t *Tree) add(n Node) ExprID {
	e := ExprID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.meta = append(t.meta, meta{id: UninitID})
	t.updateMetadata(e)
	return e
}

// truncate discards every node from n onward. The parser uses it to drop
// the nodes of an abandoned alternative.
func (t *Tree) truncate(n int) {
	for i := n; i < len(t.nodes); i++ {
		t.nodes[i] = Node{}
	}
	t.nodes = t.nodes[:n]
	t.meta = t.meta[:n]
}

// updateMetadata computes the type, free variables, and hash of e from its
// operands, which must already have theirs.
func (t *Tree) updateMetadata(e ExprID) {
	n := &t.nodes[e]
	m := &t.meta[e]
	m.typ = t.valueType(n)
	m.vars = t.freeVars(n)
	m.hash = t.hash(n)
}

func (t *Tree) valueType(n *Node) ValueType {
	switch n.Kind {
	case KindConstant:
		return TypeScalar
	case KindUnary:
		x := t.meta[n.X].typ
		if n.Unary == Not {
			if x == TypeBoolean {
				return TypeBoolean
			}
			return TypeUnknown
		}
		if x == TypeScalar {
			return TypeScalar
		}
	case KindBinary:
		x, y := t.meta[n.X].typ, t.meta[n.Y].typ
		switch {
		case n.Binary == And || n.Binary == Or:
			if x == TypeBoolean && y == TypeBoolean {
				return TypeBoolean
			}
		case n.Binary.comparison():
			if x == TypeScalar && y == TypeScalar {
				return TypeBoolean
			}
		case n.Binary == RankedMax || n.Binary == RankedMin:
			if x == TypeVector && y == TypeScalar {
				return TypeScalar
			}
		default:
			if x == TypeScalar && y == TypeScalar {
				return TypeScalar
			}
		}
	case KindPown, KindRootn:
		if t.meta[n.X].typ == TypeScalar {
			return TypeScalar
		}
	case KindVar:
		if n.Name == "x" || n.Name == "y" {
			return TypeScalar
		}
	case KindList:
		for _, e := range n.List {
			if t.meta[e].typ != TypeScalar {
				return TypeUnknown
			}
		}
		return TypeVector
	}
	return TypeUnknown
}

func (t *Tree) freeVars(n *Node) VarSet {
	switch n.Kind {
	case KindUnary, KindPown, KindRootn:
		return t.meta[n.X].vars
	case KindBinary:
		return t.meta[n.X].vars | t.meta[n.Y].vars
	case KindVar:
		switch n.Name {
		case "x":
			return VarX
		case "y":
			return VarY
		}
	case KindList:
		var s VarSet
		for _, e := range n.List {
			s |= t.meta[e].vars
		}
		return s
	}
	return NoVars
}

// hash computes an FNV-1a hash of the node's kind, operator, and payload,
// and the hashes of its operands.
func (t *Tree) hash(n *Node) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	put(uint64(n.Kind))
	switch n.Kind {
	case KindConstant:
		// Adding zero folds -0 into +0 so that equal bounds hash equally.
		put(math.Float64bits(n.Value.X.Inf() + 0))
		put(math.Float64bits(n.Value.X.Sup() + 0))
		put(uint64(n.Value.X.Dec()))
		if q := n.Value.Q; q != nil {
			num := q.Num().Bytes()
			put(uint64(q.Sign() + 2))
			put(uint64(len(num)))
			h.Write(num)
			h.Write(q.Denom().Bytes())
		}
	case KindUnary:
		put(uint64(n.Unary))
		put(t.meta[n.X].hash)
	case KindBinary:
		put(uint64(n.Binary))
		put(t.meta[n.X].hash)
		put(t.meta[n.Y].hash)
	case KindPown, KindRootn:
		put(uint64(n.N))
		put(t.meta[n.X].hash)
	case KindVar:
		h.Write([]byte(n.Name))
	case KindList:
		put(uint64(len(n.List)))
		for _, e := range n.List {
			put(t.meta[e].hash)
		}
	}
	return h.Sum64()
}

// Equal reports whether a and b are structurally identical. Identifiers and
// cached metadata do not participate.
func (t *Tree) Equal(a, b ExprID) bool {
	if a == b {
		return true
	}
	if t.meta[a].hash != t.meta[b].hash {
		return false
	}
	x, y := &t.nodes[a], &t.nodes[b]
	if x.Kind != y.Kind {
		return false
	}
	switch x.Kind {
	case KindUninit:
		return true
	case KindConstant:
		return sameValue(x.Value, y.Value)
	case KindUnary:
		return x.Unary == y.Unary && t.Equal(x.X, y.X)
	case KindBinary:
		return x.Binary == y.Binary && t.Equal(x.X, y.X) && t.Equal(x.Y, y.Y)
	case KindPown, KindRootn:
		return x.N == y.N && t.Equal(x.X, y.X)
	case KindVar:
		return x.Name == y.Name
	case KindList:
		if len(x.List) != len(y.List) {
			return false
		}
		for i := range x.List {
			if !t.Equal(x.List[i], y.List[i]) {
				return false
			}
		}
		return true
	}
	panic("relplot: invalid node kind " + x.Kind.String())
}

func sameValue(a, b Value) bool {
	if a.X.Inf() != b.X.Inf() || a.X.Sup() != b.X.Sup() || a.X.Dec() != b.X.Dec() {
		return false
	}
	if a.Q == nil || b.Q == nil {
		return a.Q == nil && b.Q == nil
	}
	return a.Q.Cmp(b.Q) == 0
}
