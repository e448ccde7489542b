// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Parses %compound scripts: declarations, assignments, loops, conditionals,
// function calls and step blocks holding ordinary job-control content.

package parser

import (
	"strings"

	"orcaparse/lexer"
	"orcaparse/syntax"
)

// statementKeywords start a statement. Together with terminators of open
// constructs and job-control markers they are resynchronization points.
var statementKeywords = []string{"variable", "read", "for", "if", "newstep", "new_step"}

// terminatorKeywords close compound constructs.
var terminatorKeywords = []string{"end", "endrun", "endfor", "endif", "else", "stepend", "step_end"}

func (p *Parser) parseCompoundScript(pct lexer.Token, title *syntax.Node) *syntax.Node {
	b := syntax.New(syntax.KindCompoundScript).Span(syntax.TokenSpan(pct)).Field("title", title)
	p.log.Debug("compound script", "line", pct.Line)
	p.push("compound script", "end", "endrun")
	p.parseStatements(b)
	p.pop()
	p.closeWith(b, pct, "compound script", "end", "endrun")
	return b.Build()
}

// parseCompoundFile parses a buffer holding only a compound-script body. A
// trailing "end" or "endrun" is accepted.
func (p *Parser) parseCompoundFile(doc *syntax.Builder) {
	for {
		p.parseStatements(doc)
		tok := p.cur()
		if tok.Kind == lexer.EOF {
			return
		}
		// parseStatements only stops early on a terminator
		p.advance()
		if !isKeyword(tok, "end", "endrun") {
			p.report(p.errorf(tok, "unexpected "+strings.ToLower(tok.Value)))
			doc.Add(p.errorNode(tok.Pos()))
		}
	}
}

// parseStatements parses statements into b until a terminator of an open
// construct or the end of input.
func (p *Parser) parseStatements(b *syntax.Builder) {
	for {
		b.Add(p.skipBlank()...)
		tok := p.cur()
		if tok.Kind == lexer.EOF || p.atCloser() {
			return
		}
		if len(p.frames) == 0 && isKeyword(tok, terminatorKeywords...) {
			return
		}
		mark := p.tokens.Mark()
		stmt, err := p.parseStatement()
		if err != nil {
			p.report(err)
			stmt = p.syncStatement(tok)
		}
		b.Add(stmt)
		p.ensureProgress(mark, b)
	}
}

// syncStatement skips to just past the next ';' or to the next line that
// starts with a statement keyword, a terminator or a job-control marker.
func (p *Parser) syncStatement(start lexer.Token) *syntax.Node {
	lineStart := false
	first := true
	for {
		tok := p.cur()
		if tok.Kind == lexer.EOF {
			break
		}
		if !first && lineStart && p.startsStatement(tok) {
			break
		}
		p.advance()
		first = false
		switch tok.Kind {
		case lexer.Semicolon:
			return p.errorNode(start.Pos())
		case lexer.Newline:
			lineStart = true
		case lexer.Whitespace, lexer.Comment:
		default:
			lineStart = false
		}
	}
	return p.errorNode(start.Pos())
}

func (p *Parser) startsStatement(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.Bang, lexer.Percent, lexer.Star:
		return true
	}
	return isKeyword(tok, statementKeywords...) || isKeyword(tok, terminatorKeywords...)
}

func (p *Parser) parseStatement() (*syntax.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Bang, lexer.Percent, lexer.Star:
		return p.parseJobItem()
	case lexer.Word:
	default:
		return nil, p.unexpected(tok, "statement")
	}

	switch strings.ToLower(tok.Value) {
	case "variable":
		return p.parseVariableDeclaration()
	case "read":
		return p.parseAssignment()
	case "for":
		return p.parseFor()
	case "if":
		return p.parseIf()
	case "newstep", "new_step":
		return p.parseStep(), nil
	}
	if isKeyword(tok, terminatorKeywords...) {
		return nil, p.errorf(tok, strings.ToLower(tok.Value)+" without matching opener")
	}

	next := p.peek(p.sigAt(1))
	switch next.Kind {
	case lexer.Assign, lexer.LeftBracket:
		return p.parseAssignment()
	case lexer.LeftParen:
		return p.parseFunctionCall()
	}
	return nil, p.unexpected(next, "'='", "'['", "'('")
}

// expectSemicolon consumes the ';' ending a statement, which may sit on a
// following line.
func (p *Parser) expectSemicolon(b *syntax.Builder) error {
	mark, last := p.tokens.Mark(), p.last
	p.skipNewlines()
	tok := p.cur()
	if tok.Kind == lexer.Semicolon {
		p.advance()
		b.Span(syntax.TokenSpan(tok))
		return nil
	}
	p.tokens.Rewind(mark)
	p.last = last
	p.skipSpace()
	return p.unexpected(p.cur(), "';'")
}

// parseVariableDeclaration parses
//
//	Variable a, b = 1.0, arr[3];
func (p *Parser) parseVariableDeclaration() (*syntax.Node, error) {
	kw := p.advance()
	b := syntax.New(syntax.KindCompoundVariableDeclaration).Span(syntax.TokenSpan(kw))
	for {
		p.skipSpace()
		d, err := p.parseDeclarator()
		if err != nil {
			return nil, err
		}
		b.Field("declarator", d)
		p.skipSpace()
		if p.cur().Kind != lexer.Comma {
			break
		}
		p.advance()
		p.skipNewlines()
	}
	if err := p.expectSemicolon(b); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (p *Parser) parseDeclarator() (*syntax.Node, error) {
	name, err := p.expect(lexer.Word, "variable name")
	if err != nil {
		return nil, err
	}
	b := syntax.New(syntax.KindCompoundDeclarator).Field("name", p.wordLeaf(name))
	p.skipSpace()
	if tok := p.cur(); tok.Kind == lexer.LeftBracket {
		p.advance()
		p.skipSpace()
		size, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		b.Field("size", size)
		p.skipSpace()
		closing, err := p.expect(lexer.RightBracket, "']'")
		if err != nil {
			return nil, err
		}
		b.Span(syntax.TokenSpan(closing))
		p.skipSpace()
	}
	if p.cur().Kind == lexer.Assign {
		p.advance()
		p.skipNewlines()
		var value *syntax.Node
		if p.cur().Kind == lexer.LeftBrace {
			value, err = p.parseInitializer()
		} else {
			value, err = p.parseExpression()
		}
		if err != nil {
			return nil, err
		}
		b.Field("value", value)
	}
	return b.Build(), nil
}

// parseInitializer parses "{e1, e2, ...}" initializing an array.
func (p *Parser) parseInitializer() (*syntax.Node, error) {
	open := p.advance()
	b := syntax.New(syntax.KindBraceBlock).Variant(syntax.VariantBrace).Span(syntax.TokenSpan(open))
	for {
		p.skipNewlines()
		if tok := p.cur(); tok.Kind == lexer.RightBrace {
			p.advance()
			b.Span(syntax.TokenSpan(tok))
			return b.Build(), nil
		}
		if b.Len() > 0 {
			if _, err := p.expect(lexer.Comma, "','"); err != nil {
				return nil, err
			}
			p.skipNewlines()
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		b.Field("value", e)
	}
}

// parseAssignment parses "[Read] name = expr;" and "[Read] name[expr] = expr;".
func (p *Parser) parseAssignment() (*syntax.Node, error) {
	var read *lexer.Token
	if p.atKeyword("read") {
		kw := p.advance()
		read = &kw
		p.skipSpace()
	}
	name, err := p.expect(lexer.Word, "variable name")
	if err != nil {
		return nil, err
	}
	p.skipSpace()

	var b *syntax.Builder
	if p.cur().Kind == lexer.LeftBracket {
		b = syntax.New(syntax.KindCompoundArrayAssignment).Field("name", p.wordLeaf(name))
		p.advance()
		p.skipNewlines()
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		b.Field("index", index)
		p.skipNewlines()
		if _, err := p.expect(lexer.RightBracket, "']'"); err != nil {
			return nil, err
		}
		p.skipSpace()
	} else {
		b = syntax.New(syntax.KindCompoundAssignment).Field("name", p.wordLeaf(name))
	}
	if read != nil {
		b.Variant(syntax.VariantRead).Span(syntax.TokenSpan(*read))
	}
	if _, err := p.expect(lexer.Assign, "'='"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	b.Field("value", value)
	if err := p.expectSemicolon(b); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// parseFunctionCall parses "name(arg, ...);".
func (p *Parser) parseFunctionCall() (*syntax.Node, error) {
	name := p.advance()
	b := syntax.New(syntax.KindCompoundFunctionCall).Field("name", p.wordLeaf(name))
	p.skipSpace()
	p.advance() // '('
	args := 0
	for {
		p.skipNewlines()
		if tok := p.cur(); tok.Kind == lexer.RightParen {
			p.advance()
			b.Span(syntax.TokenSpan(tok))
			break
		}
		if args > 0 {
			if _, err := p.expect(lexer.Comma, "','", "')'"); err != nil {
				return nil, err
			}
			p.skipNewlines()
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		b.Field("argument", arg)
		args++
	}
	if err := p.expectSemicolon(b); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// parseFor parses "for name from expr to expr do ... endfor".
func (p *Parser) parseFor() (*syntax.Node, error) {
	kw := p.advance()
	b := syntax.New(syntax.KindCompoundForLoop).Span(syntax.TokenSpan(kw))
	p.skipSpace()
	name, err := p.expect(lexer.Word, "loop variable")
	if err != nil {
		return nil, err
	}
	b.Field("variable", p.wordLeaf(name))
	if _, err := p.expectKeyword("from"); err != nil {
		return nil, err
	}
	p.skipSpace()
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	b.Field("start", start)
	if _, err := p.expectKeyword("to"); err != nil {
		return nil, err
	}
	p.skipSpace()
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	b.Field("end", end)
	if _, err := p.expectKeyword("do"); err != nil {
		return nil, err
	}

	b.Field("body", p.parseCompoundBlock("for loop", "endfor"))
	p.closeWith(b, kw, "for loop", "endfor")
	return b.Build(), nil
}

// parseIf parses "if cond then ... [else ...] endif".
func (p *Parser) parseIf() (*syntax.Node, error) {
	kw := p.advance()
	b := syntax.New(syntax.KindCompoundIfBlock).Span(syntax.TokenSpan(kw))
	p.skipSpace()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	b.Field("condition", cond)
	if _, err := p.expectKeyword("then"); err != nil {
		return nil, err
	}

	b.Field("consequence", p.parseCompoundBlock("if block", "else", "endif"))
	if tok := p.cur(); isKeyword(tok, "else") {
		p.advance()
		b.Span(syntax.TokenSpan(tok))
		b.Field("alternative", p.parseCompoundBlock("if block", "endif"))
	}
	p.closeWith(b, kw, "if block", "endif")
	return b.Build(), nil
}

// parseCompoundBlock parses the statements of a loop or branch body up to
// one of words, which is left for the caller.
func (p *Parser) parseCompoundBlock(construct string, words ...string) *syntax.Node {
	b := syntax.New(syntax.KindCompoundBlock).Span(syntax.TokenSpan(p.last))
	p.push(construct, words...)
	p.parseStatements(b)
	p.pop()
	return b.Build()
}

// parseStep parses "NewStep ... StepEnd", whose body is job-control content.
func (p *Parser) parseStep() *syntax.Node {
	kw := p.advance()
	b := syntax.New(syntax.KindCompoundStepBlock).Span(syntax.TokenSpan(kw))
	p.push("step block", "stepend", "step_end")
	for {
		b.Add(p.skipBlank()...)
		tok := p.cur()
		if tok.Kind == lexer.EOF || p.atCloser() {
			break
		}
		mark := p.tokens.Mark()
		item, err := p.parseJobItem()
		if err != nil {
			p.report(err)
			item = p.recoverLine(tok)
		}
		b.Add(item)
		p.ensureProgress(mark, b)
	}
	p.pop()
	p.closeWith(b, kw, "step block", "stepend", "step_end")
	return b.Build()
}
