// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Token kinds and positions produced by the ORCA input lexer.

package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind is the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	Word
	Element
	Integer
	Float
	QuotedString
	String
	File
	Comment
	Newline
	Whitespace
	Bang
	Percent
	Star
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	LeftParen
	RightParen
	Comma
	Semicolon
	Assign
	Less
	Greater
	LessEqual
	GreaterEqual
	Equal
	NotEqual
	Plus
	Minus
	Slash
	Ampersand
	Dot
	Colon
	Unknown
)

var kindNames = [...]string{
	EOF:          "end of input",
	Word:         "word",
	Element:      "element",
	Integer:      "integer",
	Float:        "float",
	QuotedString: "quoted string",
	String:       "string",
	File:         "file",
	Comment:      "comment",
	Newline:      "newline",
	Whitespace:   "whitespace",
	Bang:         "'!'",
	Percent:      "'%'",
	Star:         "'*'",
	LeftBrace:    "'{'",
	RightBrace:   "'}'",
	LeftBracket:  "'['",
	RightBracket: "']'",
	LeftParen:    "'('",
	RightParen:   "')'",
	Comma:        "','",
	Semicolon:    "';'",
	Assign:       "'='",
	Less:         "'<'",
	Greater:      "'>'",
	LessEqual:    "'<='",
	GreaterEqual: "'>='",
	Equal:        "'=='",
	NotEqual:     "'!='",
	Plus:         "'+'",
	Minus:        "'-'",
	Slash:        "'/'",
	Ampersand:    "'&'",
	Dot:          "'.'",
	Colon:        "':'",
	Unknown:      "unrecognized token",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTrivia reports whether tokens of this kind are skippable by the parser.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// IsNumber reports whether the kind is Integer or Float.
func (k Kind) IsNumber() bool {
	return k == Integer || k == Float
}

// Position is a location in the source buffer. Line and Col are 1-based,
// Col counts runes.
type Position struct {
	Offset int
	Line   int
	Col    int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	return p.Offset < q.Offset
}

// Token represents a lexical token
type Token struct {
	Kind   Kind
	Value  string
	Offset int
	Line   int
	Col    int
}

// Pos returns the start position of the token.
func (t Token) Pos() Position {
	return Position{Offset: t.Offset, Line: t.Line, Col: t.Col}
}

// End returns the position just past the token.
func (t Token) End() Position {
	if n := strings.Count(t.Value, "\n"); n > 0 {
		last := t.Value[strings.LastIndexByte(t.Value, '\n')+1:]
		return Position{Offset: t.Offset + len(t.Value), Line: t.Line + n, Col: utf8.RuneCountInString(last) + 1}
	}
	return Position{Offset: t.Offset + len(t.Value), Line: t.Line, Col: t.Col + utf8.RuneCountInString(t.Value)}
}

// Adjacent reports whether next starts exactly where t ends.
func (t Token) Adjacent(next Token) bool {
	return t.Offset+len(t.Value) == next.Offset
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Newline:
		return "newline"
	}
	return fmt.Sprintf("%q", t.Value)
}
