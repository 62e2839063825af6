package relplot

import (
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	type tk struct {
		text string
		kind tokenKind
	}
	cases := []struct {
		src    string
		tokens []tk
		err    bool
	}{
		// spaces
		{"", nil, false},
		{" \t \r\n ", nil, false},
		// numbers
		{"0", []tk{{"0", tokenNum}}, false},
		{"9876543210", []tk{{"9876543210", tokenNum}}, false},
		{"1 0", []tk{{"1", tokenNum}, {"0", tokenNum}}, false},
		{"1.0", []tk{{"1.0", tokenNum}}, false},
		{"1.", []tk{{"1.", tokenNum}}, false},
		{".1", []tk{{".1", tokenNum}}, false},
		{"1.1.1", []tk{{"1.1", tokenNum}, {".1", tokenNum}}, false},
		{".", nil, true},
		{"2e", []tk{{"2", tokenNum}, {"e", tokenIdent}}, false},
		{"1e5", []tk{{"1", tokenNum}, {"e5", tokenIdent}}, false},
		{"-1", []tk{{"-", tokenOp}, {"1", tokenNum}}, false},
		// identifiers
		{"e", []tk{{"e", tokenIdent}}, false},
		{"e2", []tk{{"e2", tokenIdent}}, false},
		{"π", []tk{{"π", tokenIdent}}, false},
		{"2π", []tk{{"2", tokenNum}, {"π", tokenIdent}}, false},
		{"_x_1", []tk{{"_x_1", tokenIdent}}, false},
		{"Ai'(x)", []tk{{"Ai'", tokenIdent}, {"(", tokenOpen}, {"x", tokenIdent}, {")", tokenClose}}, false},
		{"Bi'x", []tk{{"Bi'", tokenIdent}, {"x", tokenIdent}}, false},
		{"sin(x)", []tk{{"sin", tokenIdent}, {"(", tokenOpen}, {"x", tokenIdent}, {")", tokenClose}}, false},
		// operators
		{"+-*/^", []tk{{"+", tokenOp}, {"-", tokenOp}, {"*", tokenOp}, {"/", tokenOp}, {"^", tokenOp}}, false},
		{"×÷", []tk{{"×", tokenOp}, {"÷", tokenOp}}, false},
		{"== >= > <= <", []tk{{"==", tokenCmp}, {">=", tokenCmp}, {">", tokenCmp}, {"<=", tokenCmp}, {"<", tokenCmp}}, false},
		{"x<y", []tk{{"x", tokenIdent}, {"<", tokenCmp}, {"y", tokenIdent}}, false},
		{"&&", []tk{{"&&", tokenAnd}}, false},
		{"||", []tk{{"|", tokenBar}, {"|", tokenBar}}, false},
		{"=", nil, true},
		{"x = y", nil, true},
		{"&", nil, true},
		{"&|", nil, true},
		// brackets
		{"()", []tk{{"(", tokenOpen}, {")", tokenClose}}, false},
		{"[1, 2]", []tk{{"[", tokenOpen}, {"1", tokenNum}, {",", tokenSep}, {"2", tokenNum}, {"]", tokenClose}}, false},
		{"⌈x⌉⌊y⌋", []tk{{"⌈", tokenOpen}, {"x", tokenIdent}, {"⌉", tokenClose}, {"⌊", tokenOpen}, {"y", tokenIdent}, {"⌋", tokenClose}}, false},
		// erroneous symbols
		{"$", nil, true},
		{"x$", nil, true},
		{"{x}", nil, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			toks, err := lex(strings.NewReader(c.src)).all()
			if c.err {
				if err == nil {
					t.Errorf("expected error, got %v", toks)
				}
				if _, ok := err.(*SyntaxError); err != nil && !ok {
					t.Errorf("wrong error type %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(toks) != len(c.tokens)+1 || toks[len(toks)-1].kind != tokenEOF {
				t.Fatalf("wrong tokens: want %v then EOF, got %v", c.tokens, toks)
			}
			for i, want := range c.tokens {
				if got := (tk{toks[i].text, toks[i].kind}); got != want {
					t.Errorf("token %d: want %v, got %v", i, want, toks[i])
				}
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	src := "x <\n  sin(y)\n\n|π|"
	want := []lexToken{
		{text: "x", kind: tokenIdent, pos: 1, line: 1, col: 1},
		{text: "<", kind: tokenCmp, pos: 3, line: 1, col: 3},
		{text: "sin", kind: tokenIdent, pos: 7, line: 2, col: 3},
		{text: "(", kind: tokenOpen, pos: 10, line: 2, col: 6},
		{text: "y", kind: tokenIdent, pos: 11, line: 2, col: 7},
		{text: ")", kind: tokenClose, pos: 12, line: 2, col: 8},
		{text: "|", kind: tokenBar, pos: 15, line: 4, col: 1},
		{text: "π", kind: tokenIdent, pos: 16, line: 4, col: 2},
		{text: "|", kind: tokenBar, pos: 17, line: 4, col: 3},
		{kind: tokenEOF, pos: 18, line: 4, col: 4},
	}
	scan := lex(strings.NewReader(src))
	for _, w := range want {
		got, err := scan.next()
		if err != nil {
			t.Fatalf("unexpected error before %v: %v", w, err)
		}
		if got != w {
			t.Errorf("want %v, got %v", w, got)
		}
	}
	if _, err := scan.next(); err != io.EOF {
		t.Errorf("expected io.EOF after EOF token, got %v", err)
	}
}

func TestLexErrorPosition(t *testing.T) {
	_, err := lex(strings.NewReader("x +\n y $")).all()
	serr, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("wrong error type %T", err)
	}
	if serr.Line != 2 || serr.Col != 4 || serr.Pos() != 8 {
		t.Errorf("wrong position: want 2:4 (8), got %d:%d (%d)", serr.Line, serr.Col, serr.Pos())
	}
}
