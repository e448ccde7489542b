// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the participle rule table and the token stream for ORCA input files.

package lexer

import (
	"fmt"
	"iter"
	"slices"

	"github.com/alecthomas/participle/v2/lexer"
)

// Rule order matters: the first matching alternative wins.
var orcaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t\r\f\v]+`},
	{Name: "QuotedString", Pattern: `"[^"\n]*"`},
	{Name: "Float", Pattern: `(?:[0-9]+\.[0-9]*|\.[0-9]+)(?:[eEdD][-+]?[0-9]+)?|[0-9]+[eEdD][-+]?[0-9]+`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `[A-Za-z][A-Za-z0-9_]*`},
	{Name: "LessEqual", Pattern: `<=`},
	{Name: "GreaterEqual", Pattern: `>=`},
	{Name: "Equal", Pattern: `==`},
	{Name: "NotEqual", Pattern: `!=`},
	{Name: "Bang", Pattern: `!`},
	{Name: "Percent", Pattern: `%`},
	{Name: "Star", Pattern: `\*`},
	{Name: "LeftBrace", Pattern: `\{`},
	{Name: "RightBrace", Pattern: `\}`},
	{Name: "LeftBracket", Pattern: `\[`},
	{Name: "RightBracket", Pattern: `\]`},
	{Name: "LeftParen", Pattern: `\(`},
	{Name: "RightParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Assign", Pattern: `=`},
	{Name: "Less", Pattern: `<`},
	{Name: "Greater", Pattern: `>`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Ampersand", Pattern: `&`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Unknown", Pattern: `.`},
})

var ruleKinds = map[string]Kind{
	"Comment":      Comment,
	"Newline":      Newline,
	"Whitespace":   Whitespace,
	"QuotedString": QuotedString,
	"Float":        Float,
	"Integer":      Integer,
	"Word":         Word,
	"LessEqual":    LessEqual,
	"GreaterEqual": GreaterEqual,
	"Equal":        Equal,
	"NotEqual":     NotEqual,
	"Bang":         Bang,
	"Percent":      Percent,
	"Star":         Star,
	"LeftBrace":    LeftBrace,
	"RightBrace":   RightBrace,
	"LeftBracket":  LeftBracket,
	"RightBracket": RightBracket,
	"LeftParen":    LeftParen,
	"RightParen":   RightParen,
	"Comma":        Comma,
	"Semicolon":    Semicolon,
	"Assign":       Assign,
	"Less":         Less,
	"Greater":      Greater,
	"Plus":         Plus,
	"Minus":        Minus,
	"Slash":        Slash,
	"Ampersand":    Ampersand,
	"Dot":          Dot,
	"Colon":        Colon,
	"Unknown":      Unknown,
}

// symbolKinds maps participle token types to our kinds.
var symbolKinds = func() map[lexer.TokenType]Kind {
	m := make(map[lexer.TokenType]Kind)
	for name, tt := range orcaLexer.Symbols() {
		if k, ok := ruleKinds[name]; ok {
			m[tt] = k
		}
	}
	return m
}()

func tokenKind(tt lexer.TokenType) Kind {
	if k, ok := symbolKinds[tt]; ok {
		return k
	}
	return Unknown
}

// All lexes src lazily. Every range over the returned sequence starts from
// the beginning of the buffer. The sequence ends before the EOF token.
func All(name, src string) iter.Seq[Token] {
	return scan(name, src, nil)
}

// Tokenize lexes the whole buffer, trivia included. Bytes that match no
// class come out as Unknown tokens; lexing itself does not fail.
func Tokenize(name, src string) ([]Token, error) {
	var err error
	tokens := slices.Collect(scan(name, src, &err))
	return tokens, err
}

// scan yields the tokens of src and stores the first lexer failure in errp.
func scan(name, src string, errp *error) iter.Seq[Token] {
	fail := func(err error) {
		if errp != nil {
			*errp = err
		}
	}
	return func(yield func(Token) bool) {
		lex, err := orcaLexer.LexString(name, src)
		if err != nil {
			fail(err)
			return
		}
		for {
			token, err := lex.Next()
			if err != nil {
				fail(fmt.Errorf("lexing %s: %w", name, err))
				return
			}
			if token.EOF() {
				return
			}
			if !yield(Token{
				Kind:   tokenKind(token.Type),
				Value:  token.Value,
				Offset: token.Pos.Offset,
				Line:   token.Pos.Line,
				Col:    token.Pos.Column,
			}) {
				return
			}
		}
	}
}

// TokenStream represents a stream of tokens with current position
type TokenStream struct {
	tokens   []Token
	position int
	eof      Token
}

// NewTokenStream creates a new token stream from input text. On a lexer
// failure the stream still holds the tokens read before it.
func NewTokenStream(name, input string) (*TokenStream, error) {
	tokens, err := Tokenize(name, input)
	return FromTokens(tokens, input), err
}

// FromTokens wraps an already lexed token slice. src is only used to place
// the EOF token.
func FromTokens(tokens []Token, src string) *TokenStream {
	eof := Token{Kind: EOF, Offset: len(src), Line: 1, Col: 1}
	if n := len(tokens); n > 0 {
		end := tokens[n-1].End()
		eof.Offset, eof.Line, eof.Col = end.Offset, end.Line, end.Col
	}
	return &TokenStream{tokens: tokens, eof: eof}
}

// Tokens returns the underlying slice; callers must not modify it.
func (ts *TokenStream) Tokens() []Token {
	return ts.tokens
}

// Current returns the current token
func (ts *TokenStream) Current() *Token {
	if ts.position >= len(ts.tokens) {
		return nil
	}
	return &ts.tokens[ts.position]
}

// Next advances to the next token
func (ts *TokenStream) Next() *Token {
	if ts.position < len(ts.tokens) {
		ts.position++
	}
	return ts.Current()
}

// Peek returns the token at offset positions ahead without advancing
func (ts *TokenStream) Peek(offset int) *Token {
	pos := ts.position + offset
	if pos < 0 || pos >= len(ts.tokens) {
		return nil
	}
	return &ts.tokens[pos]
}

// EOF returns the synthetic end-of-input token.
func (ts *TokenStream) EOF() Token {
	return ts.eof
}

// Consume advances if the current token matches the expected kind
func (ts *TokenStream) Consume(kind Kind) (*Token, error) {
	current := ts.Current()
	if current == nil {
		return nil, fmt.Errorf("unexpected end of input, expected %s", kind)
	}
	if current.Kind != kind {
		return nil, fmt.Errorf("expected %s, got %s at line %d", kind, current.Kind, current.Line)
	}
	ts.Next()
	return current, nil
}

// Match checks if current token matches any of the given kinds
func (ts *TokenStream) Match(kinds ...Kind) bool {
	current := ts.Current()
	if current == nil {
		return false
	}
	for _, kind := range kinds {
		if current.Kind == kind {
			return true
		}
	}
	return false
}

// SkipWhitespaceAndComments skips whitespace and comment tokens
func (ts *TokenStream) SkipWhitespaceAndComments() {
	for ts.Current() != nil && ts.Current().Kind.IsTrivia() {
		ts.Next()
	}
}

// IsAtEnd checks if we're at the end of the token stream
func (ts *TokenStream) IsAtEnd() bool {
	return ts.position >= len(ts.tokens)
}

// Mark returns the current position for a later Rewind.
func (ts *TokenStream) Mark() int {
	return ts.position
}

// Rewind moves back to a position obtained from Mark.
func (ts *TokenStream) Rewind(mark int) {
	if mark < 0 {
		mark = 0
	}
	if mark > len(ts.tokens) {
		mark = len(ts.tokens)
	}
	ts.position = mark
}
