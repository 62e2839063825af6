package relplot

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	// pos is the rune offset of the token, counting from 1. line and col
	// locate it within its line, also counting from 1.
	pos, line, col int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.line) + ":" + strconv.Itoa(t.col)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal literal.
	tokenNum
	// tokenIdent is a name of a constant, variable, or function.
	tokenIdent
	// tokenOp is an arithmetic operator.
	tokenOp
	// tokenCmp is a comparison: ==, >=, >, <=, or <.
	tokenCmp
	// tokenAnd is &&.
	tokenAnd
	// tokenBar is |, which delimits absolute values and doubles as ||.
	tokenBar
	// tokenOpen is an open bracket, e.g. (.
	tokenOpen
	// tokenClose is a close bracket, e.g. ).
	tokenClose
	// tokenSep is the function argument and list element separator.
	tokenSep
)

var tokenNames = [...]string{"None", "EOF", "Num", "Ident", "Op", "Cmp", "And", "Bar", "Open", "Close", "Sep"}

func (k tokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Operators contains the runes which are considered to be arithmetic
// operators. × and ÷ are synonyms for * and /.
const Operators = "+-*/^×÷"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// The parser checks that a bracket in byte position k in OpenBrackets is
// matched with the bracket in byte position k in CloseBrackets. Parentheses
// group, ⌈⌉ and ⌊⌋ take the ceiling and floor, and [] delimit lists.
const (
	OpenBrackets  = "([⌈⌊"
	CloseBrackets = ")]⌉⌋"
)

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var (
	operstrs      = byteidcs(Operators)
	openbrackets  = byteidcs(OpenBrackets)
	closebrackets = byteidcs(CloseBrackets)
)

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// rune is the offset of the next rune. line and col are its line and
	// column. last is the column before the most recent read, for unreading
	// a newline.
	rune, line, col, last int
	eof                   bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
		line: 1,
		col:  1,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
		l.last = l.col
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
	if l.col == 1 {
		l.line--
	}
	l.col = l.last
}

// all scans every token through EOF.
func (l *lexer) all() ([]lexToken, error) {
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, nil
		}
	}
}

// next scans the next token from the input. The first time EOF is
// encountered, the result is an EOF token with a nil error. Subsequent times,
// the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		tok := lexToken{pos: l.rune, line: l.line, col: l.col}
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(tok); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		case r == ',':
			tok.text = ","
			tok.kind = tokenSep
			return tok, nil
		case r == '|':
			tok.text = "|"
			tok.kind = tokenBar
			return tok, nil
		case r == '&', r == '=':
			// Only && and == are valid.
			l.buf.WriteRune(r)
			s, err := l.readRune()
			if err != nil || s != r {
				if err == nil {
					l.unreadRune()
				}
				return tok, l.error(tok, "expected "+string(r)+string(r))
			}
			tok.text = string(r) + string(r)
			tok.kind = tokenCmp
			if r == '&' {
				tok.kind = tokenAnd
			}
			return tok, nil
		case r == '<', r == '>':
			tok.text = string(r)
			tok.kind = tokenCmp
			s, err := l.readRune()
			switch {
			case err != nil:
			case s == '=':
				tok.text += "="
			default:
				l.unreadRune()
			}
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text = operstrs[k]
				tok.kind = tokenOp
				return tok, nil
			}
			if k := strings.IndexRune(OpenBrackets, r); k >= 0 {
				tok.text = openbrackets[k]
				tok.kind = tokenOpen
				return tok, nil
			}
			if k := strings.IndexRune(CloseBrackets, r); k >= 0 {
				tok.text = closebrackets[k]
				tok.kind = tokenClose
				return tok, nil
			}
			return tok, l.error(tok, "invalid character "+strconv.QuoteRune(r))
		}
	}
}

// scanNum scans digits with an optional fractional part. There are no
// exponents: 2e is 2 times e.
func (l *lexer) scanNum(tok lexToken) error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' && !dot {
			dot = true
		} else if '0' <= r && r <= '9' {
			dig = true
		} else {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	if !dig {
		return l.error(tok, "invalid number "+strconv.Quote(l.buf.String()))
	}
	return nil
}

// scanIdent scans a whole identifier, so that keywords never match a prefix
// of a longer name. Trailing primes are part of the name, as in Ai'.
func (l *lexer) scanIdent() error {
	prime := false
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '\'':
			prime = true
			l.buf.WriteRune(r)
		case !prime && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error(tok lexToken, msg string) error {
	return &SyntaxError{
		Line: tok.line,
		Col:  tok.col,
		Msg:  msg,
		pos:  tok.pos,
	}
}
