package relplot

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/relplot/interval"
)

// Parse parses a relation such as "sin(x) >= 0 && x < 1". The options are
// applied in order. Errors are of type *SyntaxError.
func Parse(src string, opts ...ParseOption) (*Relation, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}
	r, ok := p.orRel()
	if !ok || p.err != nil || !p.end() {
		return nil, p.error(src)
	}
	return &Relation{Tree: p.tree, Root: r}, nil
}

// ParseExpr parses a scalar expression such as "2x^2" into a new tree and
// returns the tree and the expression's root.
func ParseExpr(src string, opts ...ParseOption) (*Tree, ExprID, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, 0, err
	}
	e, ok := p.expr()
	if !ok || p.err != nil || !p.end() {
		return nil, 0, p.error(src)
	}
	return p.tree, e, nil
}

type parser struct {
	toks  []lexToken
	i     int
	tree  *Tree
	funcs map[string]Func
	// depth is the current nesting depth and max is its limit.
	depth, max int
	// far is the index of the furthest token at which an alternative failed,
	// and want describes the failure.
	far  int
	want string
	// err is an error that ends parsing regardless of alternatives.
	err *SyntaxError
}

func newParser(src string, opts []ParseOption) (*parser, error) {
	var c parsectx
	for _, opt := range opts {
		c = opt.parseOption(c)
	}
	if c.funcs == nil {
		c.funcs = globalfuncs
	} else if !c.nodefaults {
		// Only set default functions that aren't already set.
		for k, v := range globalfuncs {
			if _, ok := c.funcs[k]; !ok {
				c.funcs[k] = v
			}
		}
	}
	if c.depth <= 0 {
		c.depth = DefaultMaxDepth
	}
	toks, err := lex(strings.NewReader(src)).all()
	if err != nil {
		if serr, ok := err.(*SyntaxError); ok {
			return nil, serr.withText(src)
		}
		return nil, err
	}
	p := parser{
		toks:  toks,
		tree:  NewTree(),
		funcs: c.funcs,
		max:   c.depth,
		far:   -1,
	}
	return &p, nil
}

// mark is a point to which the parser can backtrack.
type mark struct {
	i, n int
}

func (p *parser) mark() mark {
	return mark{i: p.i, n: p.tree.Len()}
}

// reset backtracks to m, discarding the nodes added since.
func (p *parser) reset(m mark) {
	p.i = m.i
	p.tree.truncate(m.n)
}

func (p *parser) peek() lexToken {
	return p.toks[p.i]
}

// accept consumes the next token if it has the given kind and text.
func (p *parser) accept(kind tokenKind, text string) bool {
	tok := p.toks[p.i]
	if tok.kind != kind || tok.text != text {
		return false
	}
	p.i++
	return true
}

// fail records that the alternative being parsed failed at the current
// token. Later failures at the same token replace earlier ones. It always
// returns false.
func (p *parser) fail(want string) bool {
	if p.i >= p.far {
		p.far = p.i
		p.want = want
	}
	return false
}

// abort ends parsing with an error at tok.
func (p *parser) abort(tok lexToken, msg string) bool {
	if p.err == nil {
		p.err = &SyntaxError{Line: tok.line, Col: tok.col, Msg: msg, pos: tok.pos}
	}
	return false
}

func (p *parser) enter() bool {
	if p.err != nil {
		return false
	}
	if p.depth >= p.max {
		return p.abort(p.peek(), "expression nested deeper than "+strconv.Itoa(p.max))
	}
	p.depth++
	return true
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) end() bool {
	if p.peek().kind == tokenEOF {
		return true
	}
	return p.fail("expected end of input")
}

func (p *parser) error(src string) error {
	err := p.err
	if err == nil {
		if p.far < 0 {
			p.far = p.i
		}
		tok := p.toks[p.far]
		msg := p.want
		if strings.HasPrefix(msg, "expected") {
			if tok.kind == tokenEOF {
				msg += " at end of input"
			} else {
				msg += ", found " + strconv.Quote(tok.text)
			}
		}
		err = &SyntaxError{Line: tok.line, Col: tok.col, Msg: msg, pos: tok.pos}
	}
	return err.withText(src)
}

// orRel parses disjunctions of conjunctions.
func (p *parser) orRel() (*Rel, bool) {
	l, ok := p.andRel()
	if !ok {
		return nil, false
	}
	for p.orNext() {
		m := p.mark()
		p.i += 2
		r, ok := p.andRel()
		if !ok {
			p.reset(m)
			break
		}
		l = &Rel{Kind: RelOr, Left: l, Right: r}
	}
	return l, true
}

// orNext reports whether the next two tokens are adjacent bars, i.e. ||.
func (p *parser) orNext() bool {
	if p.i+1 >= len(p.toks) {
		return false
	}
	a, b := p.toks[p.i], p.toks[p.i+1]
	return a.kind == tokenBar && b.kind == tokenBar && b.pos == a.pos+1
}

// andRel parses conjunctions of primary relations.
func (p *parser) andRel() (*Rel, bool) {
	l, ok := p.primaryRel()
	if !ok {
		return nil, false
	}
	for p.peek().kind == tokenAnd {
		m := p.mark()
		p.i++
		r, ok := p.primaryRel()
		if !ok {
			p.reset(m)
			break
		}
		l = &Rel{Kind: RelAnd, Left: l, Right: r}
	}
	return l, true
}

// primaryRel parses a parenthesized relation or a comparison.
func (p *parser) primaryRel() (*Rel, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()
	if tok := p.peek(); tok.kind == tokenOpen && tok.text == "(" {
		m := p.mark()
		p.i++
		if r, ok := p.orRel(); ok {
			if p.accept(tokenClose, ")") {
				return r, true
			}
			p.fail(`expected ")"`)
		}
		// Maybe the parentheses group an expression instead.
		p.reset(m)
		if p.err != nil {
			return nil, false
		}
	}
	return p.equality()
}

func (p *parser) equality() (*Rel, bool) {
	x, ok := p.expr()
	if !ok {
		return nil, false
	}
	tok := p.peek()
	if tok.kind != tokenCmp {
		return nil, p.fail("expected comparison")
	}
	p.i++
	y, ok := p.expr()
	if !ok {
		return nil, false
	}
	return &Rel{Kind: RelAtomic, Op: relop(tok.text), X: x, Y: y}, true
}

func relop(text string) RelOp {
	switch text {
	case "==":
		return RelEq
	case ">=":
		return RelGe
	case ">":
		return RelGt
	case "<=":
		return RelLe
	case "<":
		return RelLt
	}
	panic("relplot: unknown comparison " + strconv.Quote(text))
}

// expr parses sums and differences.
func (p *parser) expr() (ExprID, bool) {
	x, ok := p.multiplicative()
	if !ok {
		return 0, false
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			return x, true
		}
		m := p.mark()
		p.i++
		y, ok := p.multiplicative()
		if !ok {
			p.reset(m)
			return x, true
		}
		op := Add
		if tok.text == "-" {
			op = Sub
		}
		x = p.tree.NewBinary(op, x, y)
	}
}

// multiplicative parses products and quotients, including implicit
// multiplication of a term by a following power-level term, as in 2x^2.
func (p *parser) multiplicative() (ExprID, bool) {
	x, ok := p.unary()
	if !ok {
		return 0, false
	}
	for {
		tok := p.peek()
		m := p.mark()
		op := Mul
		var y ExprID
		if tok.kind == tokenOp && strings.Contains("*/×÷", tok.text) {
			if tok.text == "/" || tok.text == "÷" {
				op = Div
			}
			p.i++
			y, ok = p.unary()
		} else {
			y, ok = p.power()
		}
		if !ok {
			p.reset(m)
			return x, true
		}
		x = p.tree.NewBinary(op, x, y)
	}
}

// unary parses chains of negations.
func (p *parser) unary() (ExprID, bool) {
	if !p.enter() {
		return 0, false
	}
	defer p.leave()
	if p.accept(tokenOp, "-") {
		x, ok := p.unary()
		if !ok {
			return 0, false
		}
		return p.tree.NewUnary(Neg, x), true
	}
	return p.power()
}

// power parses right-associative exponentiation. The exponent may be
// negated, so x^-y is x^(-y).
func (p *parser) power() (ExprID, bool) {
	x, ok := p.postfix()
	if !ok {
		return 0, false
	}
	if !p.accept(tokenOp, "^") {
		return x, true
	}
	y, ok := p.unary()
	if !ok {
		return 0, false
	}
	return p.tree.NewBinary(Pow, x, y), true
}

// postfix parses function calls.
func (p *parser) postfix() (ExprID, bool) {
	tok := p.peek()
	if tok.kind == tokenIdent {
		if f := p.funcs[tok.text]; f.CanCall(1) || f.CanCall(2) {
			return p.call(tok, f)
		}
	}
	return p.primary()
}

func (p *parser) call(name lexToken, f Func) (ExprID, bool) {
	p.i++
	if !p.accept(tokenOpen, "(") {
		return 0, p.fail(`expected "(" after ` + name.text)
	}
	var args []ExprID
	for {
		x, ok := p.expr()
		if !ok {
			return 0, false
		}
		args = append(args, x)
		if !p.accept(tokenSep, ",") {
			break
		}
	}
	if !p.accept(tokenClose, ")") {
		return 0, p.fail(`expected "," or ")"`)
	}
	if !f.CanCall(len(args)) {
		return 0, p.abort(name, "cannot call "+name.text+" with "+strconv.Itoa(len(args))+" arguments")
	}
	if f.ranked() && p.tree.Node(args[0]).Kind != KindList {
		return 0, p.abort(name, name.text+" requires a list as its first argument")
	}
	return f.call(p.tree, args), true
}

// primary parses literals, names, and bracketed expressions.
func (p *parser) primary() (ExprID, bool) {
	tok := p.peek()
	switch tok.kind {
	case tokenNum:
		p.i++
		return p.literal(tok)
	case tokenIdent:
		switch tok.text {
		case "pi", "π":
			p.i++
			return p.tree.NewConstant(Value{X: interval.Pi()}), true
		case "e":
			p.i++
			return p.tree.NewConstant(Value{X: interval.E()}), true
		case "x", "y":
			p.i++
			return p.tree.NewVar(tok.text), true
		}
		return 0, p.fail("unknown identifier " + strconv.Quote(tok.text))
	case tokenBar:
		p.i++
		x, ok := p.expr()
		if !ok {
			return 0, false
		}
		if !p.accept(tokenBar, "|") {
			return 0, p.fail(`expected "|"`)
		}
		return p.tree.NewUnary(Abs, x), true
	case tokenOpen:
		p.i++
		if tok.text == "[" {
			return p.list()
		}
		x, ok := p.expr()
		if !ok {
			return 0, false
		}
		rb := closebrackets[strings.Index(OpenBrackets, tok.text)]
		if !p.accept(tokenClose, rb) {
			return 0, p.fail("expected " + strconv.Quote(rb))
		}
		switch tok.text {
		case "⌈":
			x = p.tree.NewUnary(Ceil, x)
		case "⌊":
			x = p.tree.NewUnary(Floor, x)
		}
		return x, true
	}
	return 0, p.fail("expected expression")
}

// list parses the elements of a list literal after its open bracket.
func (p *parser) list() (ExprID, bool) {
	var elems []ExprID
	for {
		x, ok := p.expr()
		if !ok {
			return 0, false
		}
		elems = append(elems, x)
		if !p.accept(tokenSep, ",") {
			break
		}
	}
	if !p.accept(tokenClose, "]") {
		return 0, p.fail(`expected "," or "]"`)
	}
	return p.tree.NewList(elems...), true
}

// literal creates a constant for a decimal literal. The enclosure contains
// the exact decimal value, which is also attached as a rational.
func (p *parser) literal(tok lexToken) (ExprID, bool) {
	x, err := interval.Parse("[" + tok.text + "," + tok.text + "]")
	q, ok := new(big.Rat).SetString(tok.text)
	if err != nil || !ok {
		return 0, p.abort(tok, "invalid number "+strconv.Quote(tok.text))
	}
	return p.tree.NewConstant(Value{X: x, Q: q}), true
}
