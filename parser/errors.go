package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"orcaparse/lexer"
)

// Diagnostic is a positioned parse problem.
type Diagnostic interface {
	error
	Position() lexer.Position
}

// LexError reports a byte sequence that matches no lexical class.
type LexError struct {
	Filename string
	Pos      lexer.Position
	Text     string
}

func (e *LexError) Position() lexer.Position { return e.Pos }

func (e *LexError) Error() string {
	if e.Text == `"` {
		return prefix(e.Filename, e.Pos) + "unterminated quoted string"
	}
	return prefix(e.Filename, e.Pos) + fmt.Sprintf("unrecognized token %q", e.Text)
}

// SyntaxError reports that the construct expected at a position was not found.
type SyntaxError struct {
	Filename string
	Pos      lexer.Position
	Expected []string
	Found    string
	Msg      string
}

func (e *SyntaxError) Position() lexer.Position { return e.Pos }

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString(prefix(e.Filename, e.Pos))
	if e.Msg != "" {
		b.WriteString(e.Msg)
		if len(e.Expected) == 0 && e.Found == "" {
			return b.String()
		}
		b.WriteString(": ")
	}
	if len(e.Expected) > 0 {
		b.WriteString("expected ")
		b.WriteString(joinExpected(e.Expected))
		if e.Found != "" {
			b.WriteString(", ")
		}
	}
	if e.Found != "" {
		b.WriteString("found ")
		b.WriteString(e.Found)
	}
	return b.String()
}

// UnterminatedBlockError reports a construct still open when its enclosing
// construct or the input ended.
type UnterminatedBlockError struct {
	Filename   string
	Pos        lexer.Position
	Construct  string
	Terminator string
	At         lexer.Position
}

func (e *UnterminatedBlockError) Position() lexer.Position { return e.Pos }

func (e *UnterminatedBlockError) Error() string {
	return prefix(e.Filename, e.Pos) + fmt.Sprintf("unterminated %s: missing %q before %s", e.Construct, e.Terminator, e.At)
}

// AmbiguousBodyError reports a subblock body whose first line could not be
// classified. It is a SyntaxError variant: errors.As finds both.
type AmbiguousBodyError struct {
	*SyntaxError
	Subblock string
}

func (e *AmbiguousBodyError) Unwrap() error { return e.SyntaxError }

// ErrorList is a list of diagnostics sorted by position.
type ErrorList []Diagnostic

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	return l[i].Position().Offset < l[j].Position().Offset
}

// Sort orders the list by source position; equal positions keep their order.
func (l ErrorList) Sort() {
	sort.Stable(l)
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns nil for an empty list and the list itself otherwise.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l ErrorList) Unwrap() []error {
	out := make([]error, len(l))
	for i, d := range l {
		out[i] = d
	}
	return out
}

// Diagnostics extracts the diagnostics carried by an error returned from
// Parse. It returns nil for errors of other types.
func Diagnostics(err error) []Diagnostic {
	var list ErrorList
	if errors.As(err, &list) {
		return list
	}
	var d Diagnostic
	if errors.As(err, &d) {
		return []Diagnostic{d}
	}
	return nil
}

// Message returns the text of d without its location prefix.
func Message(d Diagnostic) string {
	s := d.Error()
	loc := fmt.Sprintf("%d:%d: ", d.Position().Line, d.Position().Col)
	if i := strings.Index(s, loc); i >= 0 {
		return s[i+len(loc):]
	}
	return s
}

func prefix(filename string, pos lexer.Position) string {
	if filename != "" {
		return fmt.Sprintf("%s:%d:%d: ", filename, pos.Line, pos.Col)
	}
	return fmt.Sprintf("%d:%d: ", pos.Line, pos.Col)
}

func joinExpected(exp []string) string {
	switch len(exp) {
	case 1:
		return exp[0]
	case 2:
		return exp[0] + " or " + exp[1]
	}
	return strings.Join(exp[:len(exp)-1], ", ") + " or " + exp[len(exp)-1]
}
