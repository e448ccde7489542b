// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the recursive descent parser for ORCA input files: parser state,
// token helpers and error recovery shared by the block, geometry, compound
// and expression parsers.

package parser

import (
	"log/slog"
	"strings"

	"orcaparse/lexer"
	"orcaparse/syntax"
)

// Options configures a parse.
type Options struct {
	// Filename is used in diagnostics only.
	Filename string
	// KeepComments emits comment nodes for comments that stand on their own
	// between items.
	KeepComments bool
	// Compound parses the whole buffer as a compound-script body, the way
	// files referenced by %compound "file" are written.
	Compound bool
	// MaxErrors caps recorded diagnostics; 0 means no cap. Unterminated
	// blocks are always recorded.
	MaxErrors int
	// Logger receives debug traces. nil discards them.
	Logger *slog.Logger
}

// frame is one open construct on the terminator stack.
type frame struct {
	construct string
	words     []string
}

// Parser holds the state of a single parse. It is not safe for concurrent
// use; separate parses share nothing.
type Parser struct {
	src     string
	tokens  *lexer.TokenStream
	opts    Options
	log     *slog.Logger
	errs    ErrorList
	lexErrs map[int]bool
	frames  []frame
	last    lexer.Token
}

// Parse parses one ORCA input buffer. The returned tree is never nil; when
// problems were found the error is an ErrorList sorted by position.
func Parse(src []byte, opts Options) (*syntax.Node, error) {
	p := newParser(string(src), opts)
	root := p.parseDocument()
	p.errs.Sort()
	p.log.Debug("parse finished", "file", opts.Filename, "errors", len(p.errs))
	return root, p.errs.Err()
}

// ParseString parses src with default options.
func ParseString(src string) (*syntax.Node, error) {
	return Parse([]byte(src), Options{})
}

// ParseExpression parses a single compound-script arithmetic expression.
func ParseExpression(src string) (*syntax.Node, error) {
	p := newParser(src, Options{})
	p.skipNewlines()
	expr, err := p.parseExpression()
	if err != nil {
		p.report(err)
		return nil, p.errs.Err()
	}
	p.skipNewlines()
	if tok := p.cur(); tok.Kind != lexer.EOF {
		p.report(p.unexpected(tok, "end of expression"))
	}
	p.errs.Sort()
	return expr, p.errs.Err()
}

func newParser(src string, opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tokens, err := lexer.NewTokenStream(opts.Filename, src)
	p := &Parser{
		src:     src,
		tokens:  tokens,
		opts:    opts,
		log:     logger.With("component", "parser"),
		lexErrs: make(map[int]bool),
	}
	if err != nil {
		p.report(&SyntaxError{Filename: opts.Filename, Pos: p.tokens.EOF().Pos(), Msg: err.Error()})
	}
	p.scanLexErrors()
	return p
}

// scanLexErrors reports every run of adjacent unrecognized tokens once.
func (p *Parser) scanLexErrors() {
	toks := p.tokens.Tokens()
	for i := 0; i < len(toks); i++ {
		if toks[i].Kind != lexer.Unknown {
			continue
		}
		start := toks[i]
		text := start.Value
		for i+1 < len(toks) && toks[i+1].Kind == lexer.Unknown && toks[i].Adjacent(toks[i+1]) {
			i++
			text += toks[i].Value
			p.lexErrs[toks[i].Offset] = true
		}
		p.lexErrs[start.Offset] = true
		p.report(&LexError{Filename: p.opts.Filename, Pos: start.Pos(), Text: text})
	}
}

// report records a diagnostic. Syntax errors sitting on an unrecognized
// token are dropped because the lexer already reported it.
func (p *Parser) report(err error) {
	d, ok := err.(Diagnostic)
	if !ok {
		d = &SyntaxError{Filename: p.opts.Filename, Pos: p.cur().Pos(), Msg: err.Error()}
	}
	switch e := d.(type) {
	case *SyntaxError:
		if p.lexErrs[e.Pos.Offset] {
			return
		}
	case *AmbiguousBodyError:
		if p.lexErrs[e.Pos.Offset] {
			return
		}
	case *UnterminatedBlockError:
		p.log.Debug("unterminated construct", "construct", e.Construct, "line", e.Pos.Line)
		p.errs = append(p.errs, d)
		return
	}
	if p.opts.MaxErrors > 0 && len(p.errs) >= p.opts.MaxErrors {
		return
	}
	p.log.Debug("diagnostic", "error", d.Error())
	p.errs = append(p.errs, d)
}

// token access

func (p *Parser) cur() lexer.Token {
	if p.tokens.IsAtEnd() {
		return p.tokens.EOF()
	}
	return *p.tokens.Current()
}

func (p *Parser) peek(k int) lexer.Token {
	if t := p.tokens.Peek(k); t != nil {
		return *t
	}
	return p.tokens.EOF()
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if tok.Kind != lexer.EOF {
		p.last = tok
		p.tokens.Next()
	}
	return tok
}

// skipSpace skips whitespace and comments, not newlines.
func (p *Parser) skipSpace() {
	mark := p.tokens.Mark()
	p.tokens.SkipWhitespaceAndComments()
	if p.tokens.Mark() > mark {
		p.last = *p.tokens.Peek(-1)
	}
}

// skipNewlines skips whitespace, comments and newlines. It reports whether a
// newline was crossed.
func (p *Parser) skipNewlines() bool {
	crossed := false
	for {
		switch p.cur().Kind {
		case lexer.Whitespace, lexer.Comment:
		case lexer.Newline:
			crossed = true
		default:
			return crossed
		}
		p.advance()
	}
}

// skipBlank skips blank lines and trivia between items, returning comment
// nodes when comments are kept.
func (p *Parser) skipBlank() []*syntax.Node {
	var comments []*syntax.Node
	for {
		tok := p.cur()
		switch tok.Kind {
		case lexer.Whitespace, lexer.Newline:
		case lexer.Comment:
			if p.opts.KeepComments {
				comments = append(comments, syntax.TokenLeaf(syntax.KindComment, "", tok))
			}
		default:
			return comments
		}
		p.advance()
	}
}

// sigAt returns the offset of the first non-trivia token at or after k.
// Newlines are significant here.
func (p *Parser) sigAt(k int) int {
	for p.peek(k).Kind.IsTrivia() {
		k++
	}
	return k
}

// blankAt returns the offset of the first token at or after k that is not
// trivia or a newline.
func (p *Parser) blankAt(k int) int {
	for {
		kind := p.peek(k).Kind
		if !kind.IsTrivia() && kind != lexer.Newline {
			return k
		}
		k++
	}
}

func (p *Parser) atLineEnd() bool {
	kind := p.cur().Kind
	return kind == lexer.Newline || kind == lexer.EOF
}

// expectLineEnd consumes the newline ending a line-oriented construct. End
// of input also ends a line.
func (p *Parser) expectLineEnd(what string) error {
	p.skipSpace()
	tok := p.cur()
	switch tok.Kind {
	case lexer.Newline:
		p.advance()
		return nil
	case lexer.EOF:
		return nil
	}
	return p.unexpected(tok, "end of "+what)
}

func isKeyword(tok lexer.Token, words ...string) bool {
	if tok.Kind != lexer.Word {
		return false
	}
	for _, w := range words {
		if strings.EqualFold(tok.Value, w) {
			return true
		}
	}
	return false
}

func (p *Parser) atKeyword(words ...string) bool {
	return isKeyword(p.cur(), words...)
}

// expectKeyword consumes a case-insensitive keyword.
func (p *Parser) expectKeyword(word string) (lexer.Token, error) {
	p.skipSpace()
	tok := p.cur()
	if !isKeyword(tok, word) {
		return tok, p.unexpected(tok, "'"+word+"'")
	}
	return p.advance(), nil
}

func (p *Parser) expect(kind lexer.Kind, what ...string) (lexer.Token, error) {
	tok := p.cur()
	if _, err := p.tokens.Consume(kind); err != nil {
		return tok, p.unexpected(tok, what...)
	}
	p.last = tok
	return tok, nil
}

func (p *Parser) unexpected(tok lexer.Token, expected ...string) *SyntaxError {
	return &SyntaxError{
		Filename: p.opts.Filename,
		Pos:      tok.Pos(),
		Expected: expected,
		Found:    tok.String(),
	}
}

func (p *Parser) errorf(tok lexer.Token, msg string) *SyntaxError {
	return &SyntaxError{Filename: p.opts.Filename, Pos: tok.Pos(), Msg: msg, Found: tok.String()}
}

// terminator stack

func (p *Parser) push(construct string, words ...string) {
	p.frames = append(p.frames, frame{construct: construct, words: words})
}

func (p *Parser) pop() {
	p.frames = p.frames[:len(p.frames)-1]
}

// isCloser reports whether tok terminates any open construct.
func (p *Parser) isCloser(tok lexer.Token) bool {
	if tok.Kind != lexer.Word {
		return false
	}
	for i := len(p.frames) - 1; i >= 0; i-- {
		if isKeyword(tok, p.frames[i].words...) {
			return true
		}
	}
	return false
}

func (p *Parser) atCloser() bool {
	return p.isCloser(p.cur())
}

// closeWith consumes the terminator of the construct opened by opener, or
// reports the construct as unterminated.
func (p *Parser) closeWith(b *syntax.Builder, opener lexer.Token, construct string, words ...string) bool {
	tok := p.cur()
	if isKeyword(tok, words...) {
		p.advance()
		b.Span(syntax.TokenSpan(tok))
		return true
	}
	p.report(&UnterminatedBlockError{
		Filename:   p.opts.Filename,
		Pos:        opener.Pos(),
		Construct:  construct,
		Terminator: words[0],
		At:         tok.Pos(),
	})
	return false
}

// atJobStart reports whether the current token opens a job-control item.
func (p *Parser) atJobStart() bool {
	return p.tokens.Match(lexer.Bang, lexer.Percent, lexer.Star)
}

// recovery

// errorNode covers the source consumed since start.
func (p *Parser) errorNode(start lexer.Position) *syntax.Node {
	end := p.last.End()
	if end.Offset <= start.Offset {
		return nil
	}
	text := strings.TrimRight(p.src[start.Offset:end.Offset], " \t\r\n")
	return syntax.Leaf(syntax.KindError, "", text, syntax.Span{Start: start, End: end})
}

// recoverLine skips to the start of the next line and returns an error node
// for the skipped text. Terminators of open constructs are left in place.
func (p *Parser) recoverLine(start lexer.Token) *syntax.Node {
	if !(p.last.Kind == lexer.Newline && p.last.Offset >= start.Offset) {
		for {
			tok := p.cur()
			if tok.Kind == lexer.EOF || p.isCloser(tok) && tok.Offset > start.Offset {
				break
			}
			p.advance()
			if tok.Kind == lexer.Newline {
				break
			}
		}
	}
	p.log.Debug("recovered", "line", start.Line)
	return p.errorNode(start.Pos())
}

// ensureProgress consumes one token when an item made no progress, so that
// repetition loops always terminate.
func (p *Parser) ensureProgress(mark int, b *syntax.Builder) {
	if p.tokens.Mark() != mark || p.cur().Kind == lexer.EOF {
		return
	}
	tok := p.advance()
	b.Add(p.errorNode(tok.Pos()))
}

// adjacent reports whether the token at offset k+1 directly follows the one
// at offset k.
func (p *Parser) adjacent(k int) bool {
	a, b := p.peek(k), p.peek(k+1)
	return a.Kind != lexer.EOF && b.Kind != lexer.EOF && a.Adjacent(b)
}

// glue consumes the current token and every directly adjacent token accepted
// by keep, returning the joined text and span.
func (p *Parser) glue(keep func(lexer.Token) bool) (string, syntax.Span) {
	first := p.advance()
	text := first.Value
	span := syntax.TokenSpan(first)
	prev := first
	for {
		tok := p.cur()
		if tok.Kind == lexer.EOF || !prev.Adjacent(tok) || !keep(tok) {
			break
		}
		p.advance()
		text += tok.Value
		span.End = tok.End()
		prev = tok
	}
	return text, span
}

// document

func (p *Parser) parseDocument() *syntax.Node {
	doc := syntax.New(syntax.KindDocument).Span(syntax.Span{
		Start: lexer.Position{Offset: 0, Line: 1, Col: 1},
		End:   p.tokens.EOF().Pos(),
	})
	if p.opts.Compound {
		p.parseCompoundFile(doc)
		return doc.Build()
	}
	for {
		doc.Add(p.skipBlank()...)
		tok := p.cur()
		if tok.Kind == lexer.EOF {
			break
		}
		mark := p.tokens.Mark()
		item, err := p.parseJobItem()
		if err != nil {
			p.report(err)
			item = p.recoverLine(tok)
		}
		doc.Add(item)
		p.ensureProgress(mark, doc)
	}
	return doc.Build()
}

// parseJobItem parses one job-control construct at the current position.
func (p *Parser) parseJobItem() (*syntax.Node, error) {
	switch p.cur().Kind {
	case lexer.Bang:
		return p.parseSimpleLine()
	case lexer.Percent:
		return p.parseInput()
	case lexer.Star:
		return p.parseGeometry()
	}
	tok := p.cur()
	if p.isCloser(tok) || isKeyword(tok, "end") {
		return nil, p.errorf(tok, "unexpected terminator")
	}
	return nil, p.unexpected(tok, "'!'", "'%'", "'*'")
}
