package relplot

import (
	"strconv"
	"strings"
)

// SyntaxError is an error in the text of a relation. It implements
// InputError.
type SyntaxError struct {
	// Line and Col locate the error, counting from 1. Col counts runes.
	Line, Col int
	// Text is the full text of the line containing the error.
	Text string
	// Msg describes the error.
	Msg string

	pos int
}

// Error formats the error with the offending line and a caret under the
// column of the error.
func (err *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("at line ")
	b.WriteString(strconv.Itoa(err.Line))
	b.WriteString(": ")
	b.WriteString(err.Msg)
	b.WriteByte('\n')
	b.WriteString(err.Text)
	b.WriteByte('\n')
	if err.Col > 1 {
		b.WriteString(strings.Repeat(" ", err.Col-1))
	}
	b.WriteByte('^')
	return b.String()
}

func (err *SyntaxError) Pos() int {
	return err.pos
}

// withText fills in the text of the error's line from the source.
func (err *SyntaxError) withText(src string) *SyntaxError {
	lines := strings.Split(src, "\n")
	if err.Line >= 1 && err.Line <= len(lines) {
		err.Text = strings.TrimSuffix(lines[err.Line-1], "\r")
	}
	return err
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*SyntaxError)(nil)
