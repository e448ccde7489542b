// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Parses simple lines, %-introduced input lines and blocks, their key/value
// bodies, variable definitions and named subblocks.

package parser

import (
	"strings"

	"orcaparse/lexer"
	"orcaparse/syntax"
)

// argumentToken reports whether tok may be part of a simple-line argument.
func argumentToken(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.EOF, lexer.Whitespace, lexer.Comment, lexer.Newline, lexer.Unknown:
		return false
	}
	return true
}

// valueToken reports whether tok may be glued into an unquoted value.
func valueToken(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.Word, lexer.Integer, lexer.Float, lexer.Minus, lexer.Plus,
		lexer.Dot, lexer.Slash, lexer.Colon, lexer.Star, lexer.QuotedString:
		return true
	}
	return false
}

// parseSimpleLine parses "! arg arg ...".
func (p *Parser) parseSimpleLine() (*syntax.Node, error) {
	bang := p.advance()
	b := syntax.New(syntax.KindSimpleLine).Span(syntax.TokenSpan(bang))
	for {
		p.skipSpace()
		tok := p.cur()
		if p.atLineEnd() {
			break
		}
		if tok.Kind == lexer.Unknown {
			p.advance()
			continue
		}
		text, span := p.glue(argumentToken)
		variant := ""
		if strings.HasPrefix(text, "&{") && strings.HasSuffix(text, "}") {
			variant = syntax.VariantCompoundRef
		}
		b.Field("argument", syntax.Leaf(syntax.KindArgument, variant, text, span))
	}
	if p.cur().Kind == lexer.Newline {
		p.advance()
	}
	return b.Build(), nil
}

// parseInput parses everything introduced by '%': a one-line setting, a
// block closed by "end", or a compound script.
func (p *Parser) parseInput() (*syntax.Node, error) {
	pct := p.advance()
	p.skipSpace()
	name := p.cur()
	if name.Kind != lexer.Word {
		return nil, p.unexpected(name, "block name")
	}
	p.advance()
	title := syntax.Leaf(syntax.KindInputTitle, "", name.Value, syntax.Span{Start: pct.Pos(), End: name.End()})
	p.skipSpace()

	if strings.EqualFold(name.Value, "compound") && p.cur().Kind != lexer.QuotedString {
		return p.parseCompoundScript(pct, title), nil
	}
	if value := p.tryInputLineValue(); value != nil {
		b := syntax.New(syntax.KindInputLine).Span(syntax.TokenSpan(pct)).
			Field("title", title).
			Field("value", value)
		if err := p.expectLineEnd("input line"); err != nil {
			return nil, err
		}
		return b.Build(), nil
	}
	return p.parseInputBlock(pct, title), nil
}

// tryInputLineValue parses the value of a one-line setting such as
// "%maxcore 4000" or "%moinp "guess.gbw"". It consumes nothing and returns nil
// unless a single number or quoted string is followed by the end of line.
func (p *Parser) tryInputLineValue() *syntax.Node {
	mark := p.tokens.Mark()
	last := p.last
	var value *syntax.Node
	switch tok := p.cur(); {
	case tok.Kind == lexer.QuotedString:
		p.advance()
		value = syntax.TokenLeaf(syntax.KindValue, syntax.VariantQuoted, tok)
	case tok.Kind.IsNumber() || tok.Kind == lexer.Minus && p.adjacent(0) && p.peek(1).Kind.IsNumber():
		value = p.parseNumber(syntax.KindValue)
	}
	if value != nil {
		p.skipSpace()
		if p.atLineEnd() {
			return value
		}
	}
	p.tokens.Rewind(mark)
	p.last = last
	return nil
}

// parseNumber consumes an optionally negative number literal.
func (p *Parser) parseNumber(kind syntax.Kind) *syntax.Node {
	first := p.advance()
	text, span := first.Value, syntax.TokenSpan(first)
	if first.Kind == lexer.Minus {
		num := p.advance()
		text += num.Value
		span.End = num.End()
		first = num
	}
	variant := syntax.VariantFloat
	if first.Kind == lexer.Integer {
		variant = syntax.VariantIntegerValue
	}
	return syntax.Leaf(kind, variant, text, span)
}

func (p *Parser) parseInputBlock(pct lexer.Token, title *syntax.Node) *syntax.Node {
	b := syntax.New(syntax.KindInputBlock).Span(syntax.TokenSpan(pct)).Field("title", title)
	p.push("input block", "end")
	p.parseInputBody(b)
	p.pop()
	p.closeWith(b, pct, "input block %"+title.Text(), "end")
	return b.Build()
}

// parseInputBody parses body items until a terminator of an open construct,
// a job-control line or the end of input.
func (p *Parser) parseInputBody(b *syntax.Builder) {
	for {
		b.Add(p.skipBlank()...)
		tok := p.cur()
		if tok.Kind == lexer.EOF || p.atCloser() || p.atJobStart() {
			return
		}
		mark := p.tokens.Mark()
		item, err := p.parseBodyItem()
		if err != nil {
			p.report(err)
			item = p.recoverLine(tok)
		}
		b.Add(item)
		p.ensureProgress(mark, b)
	}
}

func (p *Parser) parseBodyItem() (*syntax.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.LeftBrace:
		return p.parseBraceBlock("")
	case lexer.Word:
	default:
		return nil, p.unexpected(tok, "key", "subblock", "'{'")
	}

	k := p.sigAt(1)
	switch p.peek(k).Kind {
	case lexer.Newline, lexer.EOF:
		return p.parseSubblock()
	case lexer.LeftBracket:
		if p.bracketHoldsArray(k) {
			return p.parseVariableArray()
		}
	case lexer.Assign:
		if p.assignDefinesVariable(k) {
			return p.parseVariableScalar()
		}
	}
	return p.parseKeyValue()
}

// numberAt reports whether an optionally negative number starts at offset k
// and returns the offset just past it.
func (p *Parser) numberAt(k int) (int, bool) {
	tok := p.peek(k)
	if tok.Kind.IsNumber() {
		return k + 1, true
	}
	if tok.Kind == lexer.Minus && p.adjacent(k) && p.peek(k+1).Kind.IsNumber() {
		return k + 2, true
	}
	return k, false
}

// bracketHoldsArray decides between an array key "Name[idx] value" and a
// variable array "Name [1.0 2.0 3.0]" by scanning the brackets that start at
// offset k. A single integer is an index only when '[' directly follows the
// name and a value follows ']' on the same line.
func (p *Parser) bracketHoldsArray(k int) bool {
	attached := k == 1 && p.adjacent(0)
	items := 0
	index := false
	for k = p.sigAt(k + 1); ; k = p.sigAt(k) {
		tok := p.peek(k)
		switch tok.Kind {
		case lexer.RightBracket:
			if items == 0 {
				return false
			}
			return !(items == 1 && index && attached && p.valueAfter(k))
		case lexer.Comma:
			k++
			continue
		}
		next, ok := p.numberAt(k)
		if !ok {
			return false
		}
		items++
		index = tok.Kind == lexer.Integer
		k = next
	}
}

// valueAfter reports whether something other than the end of the line
// follows the token at offset k.
func (p *Parser) valueAfter(k int) bool {
	switch p.peek(p.sigAt(k + 1)).Kind {
	case lexer.Newline, lexer.EOF, lexer.Semicolon:
		return false
	}
	return true
}

// assignDefinesVariable reports whether "Name = ..." at offset k holds
// exactly one number or three comma-separated numbers.
func (p *Parser) assignDefinesVariable(k int) bool {
	count := 0
	k = p.sigAt(k + 1)
	for {
		next, ok := p.numberAt(k)
		if !ok || p.adjacent(next-1) && valueToken(p.peek(next)) {
			return false
		}
		count++
		k = p.sigAt(next)
		if p.peek(k).Kind != lexer.Comma {
			break
		}
		k = p.sigAt(k + 1)
	}
	if count != 1 && count != 3 {
		return false
	}
	tok := p.peek(k)
	switch tok.Kind {
	case lexer.Semicolon, lexer.Newline, lexer.EOF:
		return true
	}
	return p.isCloser(tok)
}

func (p *Parser) wordLeaf(tok lexer.Token) *syntax.Node {
	return syntax.TokenLeaf(syntax.KindWord, "", tok)
}

// optionalSemicolon consumes a trailing ';' on the same line.
func (p *Parser) optionalSemicolon(b *syntax.Builder) {
	p.skipSpace()
	if tok := p.cur(); tok.Kind == lexer.Semicolon {
		p.advance()
		b.Span(syntax.TokenSpan(tok))
	}
}

// parseVariableScalar parses "Name = v" or "Name = start, end, steps".
func (p *Parser) parseVariableScalar() (*syntax.Node, error) {
	name := p.advance()
	b := syntax.New(syntax.KindVariableDef).Field("name", p.wordLeaf(name))
	p.skipSpace()
	p.advance() // '='
	p.skipSpace()

	var values []*syntax.Node
	for {
		values = append(values, p.parseNumber(syntax.KindValue))
		p.skipSpace()
		if p.cur().Kind != lexer.Comma {
			break
		}
		p.advance()
		p.skipSpace()
	}
	if len(values) == 1 {
		b.Variant(syntax.VariantScalar).Field("value", values[0])
	} else {
		r := syntax.New(syntax.KindVariableRange).
			Field("start", values[0]).
			Field("end", values[1]).
			Field("steps", values[2])
		b.Variant(syntax.VariantRange).Field("value", r.Build())
	}
	p.optionalSemicolon(b)
	return b.Build(), nil
}

// parseVariableArray parses "Name [v v v]" with optional commas.
func (p *Parser) parseVariableArray() (*syntax.Node, error) {
	name := p.advance()
	b := syntax.New(syntax.KindVariableDef).Variant(syntax.VariantArray).Field("name", p.wordLeaf(name))
	p.skipSpace()
	open := p.advance()
	arr := syntax.New(syntax.KindVariableArray).Span(syntax.TokenSpan(open))
	for {
		p.skipSpace()
		tok := p.cur()
		switch {
		case tok.Kind == lexer.Comma:
			p.advance()
			continue
		case tok.Kind == lexer.RightBracket:
			p.advance()
			arr.Span(syntax.TokenSpan(tok))
			b.Field("value", arr.Build())
			p.optionalSemicolon(b)
			return b.Build(), nil
		}
		if _, ok := p.numberAt(0); !ok {
			return nil, p.unexpected(tok, "number", "']'")
		}
		arr.Field("element", p.parseNumber(syntax.KindValue))
	}
}

// parseKeyValue parses "key [=] value[, value...] [;]".
func (p *Parser) parseKeyValue() (*syntax.Node, error) {
	key, err := p.parseKey()
	if err != nil {
		return nil, err
	}
	b := syntax.New(syntax.KindKeyValuePair).Field("key", key)
	p.skipSpace()
	if tok := p.cur(); tok.Kind == lexer.Assign {
		p.advance()
		b.Span(syntax.TokenSpan(tok))
		p.skipSpace()
	}
	for {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		b.Field("value", value)
		p.skipSpace()
		if p.cur().Kind != lexer.Comma {
			break
		}
		p.advance()
		p.skipBlank()
	}
	p.optionalSemicolon(b)
	return b.Build(), nil
}

// parseKey parses a key word, optionally indexed: "Print[P_Mayer]".
func (p *Parser) parseKey() (*syntax.Node, error) {
	name := p.advance()
	if p.cur().Kind != lexer.LeftBracket {
		return syntax.TokenLeaf(syntax.KindKey, syntax.VariantWord, name), nil
	}
	b := syntax.New(syntax.KindKey).Variant(syntax.VariantArray).Field("name", p.wordLeaf(name))
	p.advance()
	p.skipSpace()
	index, err := p.parseIndex()
	if err != nil {
		return nil, err
	}
	b.Field("index", index)
	p.skipSpace()
	closing, err := p.expect(lexer.RightBracket, "']'")
	if err != nil {
		return nil, err
	}
	b.Span(syntax.TokenSpan(closing))
	return b.Build(), nil
}

// parseIndex parses the word or integer between array brackets.
func (p *Parser) parseIndex() (*syntax.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Integer:
		p.advance()
		return syntax.TokenLeaf(syntax.KindValue, syntax.VariantIntegerValue, tok), nil
	case lexer.Word:
		text, span := p.glue(func(t lexer.Token) bool {
			return t.Kind == lexer.Word || t.Kind == lexer.Integer
		})
		return syntax.Leaf(syntax.KindValue, syntax.VariantString, text, span), nil
	case lexer.QuotedString:
		p.advance()
		return syntax.TokenLeaf(syntax.KindValue, syntax.VariantQuoted, tok), nil
	}
	return nil, p.unexpected(tok, "index")
}

// parseValue parses one value atom.
func (p *Parser) parseValue() (*syntax.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.QuotedString:
		p.advance()
		return syntax.TokenLeaf(syntax.KindValue, syntax.VariantQuoted, tok), nil
	case lexer.LeftBrace:
		return p.parseBraceBlock(syntax.VariantBrace)
	case lexer.Ampersand:
		return p.parseCompoundRef(syntax.KindValue)
	case lexer.Word:
		if p.isCloser(tok) {
			return nil, p.unexpected(tok, "value")
		}
		if p.peek(1).Kind == lexer.LeftBracket && p.adjacent(0) {
			return p.parseArrayValue()
		}
	case lexer.Integer, lexer.Float, lexer.Minus, lexer.Plus, lexer.Dot:
	default:
		return nil, p.unexpected(tok, "value")
	}
	text, span := p.glue(valueToken)
	return syntax.Leaf(syntax.KindValue, classifyValue(text), text, span), nil
}

// classifyValue picks the variant of a glued unquoted value.
func classifyValue(text string) string {
	switch lexer.Classify(text) {
	case lexer.Integer:
		return syntax.VariantIntegerValue
	case lexer.Float:
		return syntax.VariantFloat
	case lexer.Element, lexer.Word:
		return syntax.VariantWord
	}
	return syntax.VariantString
}

// parseArrayValue parses "name[idx]" used as a value.
func (p *Parser) parseArrayValue() (*syntax.Node, error) {
	name := p.advance()
	b := syntax.New(syntax.KindValue).Variant(syntax.VariantArray).Field("name", p.wordLeaf(name))
	p.advance()
	p.skipSpace()
	index, err := p.parseIndex()
	if err != nil {
		return nil, err
	}
	b.Field("index", index)
	p.skipSpace()
	closing, err := p.expect(lexer.RightBracket, "']'")
	if err != nil {
		return nil, err
	}
	b.Span(syntax.TokenSpan(closing))
	return b.Build(), nil
}

// parseCompoundRef parses "&{name}".
func (p *Parser) parseCompoundRef(kind syntax.Kind) (*syntax.Node, error) {
	amp := p.advance()
	if p.cur().Kind != lexer.LeftBrace || !amp.Adjacent(p.cur()) {
		return nil, p.unexpected(p.cur(), "'{' after '&'")
	}
	p.advance()
	return p.finishRef(kind, syntax.VariantCompoundRef, amp)
}

// parseVariableRef parses "{name}" in coordinate position.
func (p *Parser) parseVariableRef(kind syntax.Kind) (*syntax.Node, error) {
	open := p.advance()
	return p.finishRef(kind, syntax.VariantVariableRef, open)
}

func (p *Parser) finishRef(kind syntax.Kind, variant string, open lexer.Token) (*syntax.Node, error) {
	p.skipSpace()
	name, err := p.expect(lexer.Word, "variable name")
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	closing, err := p.expect(lexer.RightBrace, "'}'")
	if err != nil {
		return nil, err
	}
	return syntax.New(kind).Variant(variant).
		Span(syntax.TokenSpan(open)).
		Field("name", p.wordLeaf(name)).
		Span(syntax.TokenSpan(closing)).
		Build(), nil
}

// parseBraceBlock parses a one-line "{ ... }" group such as a constraint
// "{ B 0 1 C }". A leading word is kept as the group's type. Groups in value
// position carry the brace variant; raw body lines carry none.
func (p *Parser) parseBraceBlock(variant string) (*syntax.Node, error) {
	open := p.advance()
	b := syntax.New(syntax.KindBraceBlock).Variant(variant).Span(syntax.TokenSpan(open))
	first := true
	for {
		p.skipSpace()
		tok := p.cur()
		switch tok.Kind {
		case lexer.RightBrace:
			p.advance()
			b.Span(syntax.TokenSpan(tok))
			return b.Build(), nil
		case lexer.Comma:
			p.advance()
			first = false
			continue
		case lexer.Newline, lexer.EOF:
			return nil, p.unexpected(tok, "'}'")
		}
		if !valueToken(tok) {
			return nil, p.unexpected(tok, "value", "'}'")
		}
		text, span := p.glue(valueToken)
		variant := classifyValue(text)
		field := "value"
		if first && variant == syntax.VariantWord {
			field = "type"
		}
		first = false
		b.Field(field, syntax.Leaf(syntax.KindValue, variant, text, span))
	}
}

// parseSubblock parses a named subblock: the name alone on its line, a body
// and "end". The first line of the body decides how the rest is read.
func (p *Parser) parseSubblock() (*syntax.Node, error) {
	name := p.advance()
	b := syntax.New(syntax.KindSubblock).Field("name", p.wordLeaf(name))
	p.skipSpace()
	if p.cur().Kind == lexer.Newline {
		p.advance()
	}

	shape := p.classifyBody()
	b.Variant(shape.variant)
	p.log.Debug("subblock", "name", name.Value, "body", shape.variant, "line", name.Line)

	p.push("subblock", "end")
	switch shape.variant {
	case syntax.VariantXYZ, syntax.VariantInternal, syntax.VariantZMatrix:
		p.parseCoordinateLines(b, shape.variant, p.atCloser)
	case syntax.VariantAmbiguous:
		p.skipBlank()
		tok := p.cur()
		p.report(&AmbiguousBodyError{
			SyntaxError: p.errorf(tok, "cannot tell coordinate format of subblock "+name.Value),
			Subblock:    name.Value,
		})
		b.Add(p.skipToCloser(tok))
	case syntax.VariantBody:
		p.parseInputBody(b)
	case syntax.VariantEmpty:
		b.Add(p.skipBlank()...)
	}
	p.pop()
	p.closeWith(b, name, "subblock "+name.Value, "end")
	return b.Build(), nil
}

// skipToCloser consumes whole lines until a terminator of an open construct
// starts a line.
func (p *Parser) skipToCloser(start lexer.Token) *syntax.Node {
	for {
		p.skipBlank()
		if tok := p.cur(); tok.Kind == lexer.EOF || p.isCloser(tok) {
			break
		}
		for !p.atLineEnd() && !p.atCloser() {
			p.advance()
		}
	}
	return p.errorNode(start.Pos())
}
