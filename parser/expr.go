package parser

import (
	"orcaparse/lexer"
	"orcaparse/syntax"
)

// Binding powers of the arithmetic operators.
const (
	precAdditive       = 1
	precMultiplicative = 2
)

func binaryPrecedence(k lexer.Kind) int {
	switch k {
	case lexer.Plus, lexer.Minus:
		return precAdditive
	case lexer.Star, lexer.Slash:
		return precMultiplicative
	}
	return 0
}

func relational(k lexer.Kind) bool {
	switch k {
	case lexer.Less, lexer.Greater, lexer.LessEqual, lexer.GreaterEqual,
		lexer.Equal, lexer.NotEqual, lexer.Assign:
		return true
	}
	return false
}

// reservedWords cannot name variables in expressions.
var reservedWords = []string{"from", "to", "do", "then", "and", "or", "else", "endif", "endfor", "end", "endrun"}

func (p *Parser) parseExpression() (*syntax.Node, error) {
	return p.parseBinary(precAdditive)
}

// parseBinary is a precedence-climbing loop: operators binding at least as
// tightly as minPrec extend the left operand, and the right operand is parsed
// one level tighter so that equal operators associate to the left.
func (p *Parser) parseBinary(minPrec int) (*syntax.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		mark, last := p.tokens.Mark(), p.last
		crossed := p.skipNewlines()
		op := p.cur()
		prec := binaryPrecedence(op.Kind)
		// a '*' opening a line starts a geometry, not a product
		if prec == 0 || prec < minPrec || crossed && op.Kind == lexer.Star {
			p.tokens.Rewind(mark)
			p.last = last
			return left, nil
		}
		p.advance()
		p.skipNewlines()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = syntax.New(syntax.KindCompoundExpression).Variant(syntax.VariantBinary).
			Field("left", left).
			Field("operator", syntax.TokenLeaf(syntax.KindOperator, "", op)).
			Field("right", right).
			Build()
	}
}

func (p *Parser) parsePrimary() (*syntax.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Integer, lexer.Float:
		return p.literal(p.parseNumber(syntax.KindValue)), nil
	case lexer.Minus:
		if p.adjacent(0) && p.peek(1).Kind.IsNumber() {
			return p.literal(p.parseNumber(syntax.KindValue)), nil
		}
	case lexer.QuotedString:
		p.advance()
		return p.literal(syntax.TokenLeaf(syntax.KindValue, syntax.VariantQuoted, tok)), nil
	case lexer.LeftParen:
		p.advance()
		p.skipNewlines()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		closing, err := p.expect(lexer.RightParen, "')'")
		if err != nil {
			return nil, err
		}
		return syntax.New(syntax.KindCompoundExpression).Variant(syntax.VariantParen).
			Span(syntax.TokenSpan(tok)).
			Field("expression", inner).
			Span(syntax.TokenSpan(closing)).
			Build(), nil
	case lexer.Word:
		if isKeyword(tok, reservedWords...) {
			break
		}
		p.advance()
		if p.peek(p.sigAt(0)).Kind != lexer.LeftBracket {
			return syntax.New(syntax.KindCompoundExpression).Variant(syntax.VariantVariable).
				Field("name", p.wordLeaf(tok)).
				Build(), nil
		}
		p.skipSpace()
		p.advance()
		p.skipNewlines()
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		closing, err := p.expect(lexer.RightBracket, "']'")
		if err != nil {
			return nil, err
		}
		return syntax.New(syntax.KindCompoundExpression).Variant(syntax.VariantArrayAccess).
			Field("name", p.wordLeaf(tok)).
			Field("index", index).
			Span(syntax.TokenSpan(closing)).
			Build(), nil
	}
	return nil, p.unexpected(tok, "expression")
}

func (p *Parser) literal(value *syntax.Node) *syntax.Node {
	return syntax.New(syntax.KindCompoundExpression).Variant(syntax.VariantLiteral).
		Field("value", value).
		Build()
}

// parseCondition parses comparisons joined by "and" and "or", "and" binding
// tighter; both associate to the left.
func (p *Parser) parseCondition() (*syntax.Node, error) {
	return p.parseLogical("or", p.parseAnd)
}

func (p *Parser) parseAnd() (*syntax.Node, error) {
	return p.parseLogical("and", p.parseConditionAtom)
}

func (p *Parser) parseLogical(word string, operand func() (*syntax.Node, error)) (*syntax.Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		mark, last := p.tokens.Mark(), p.last
		p.skipNewlines()
		op := p.cur()
		if !isKeyword(op, word) {
			p.tokens.Rewind(mark)
			p.last = last
			return left, nil
		}
		p.advance()
		p.skipNewlines()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = syntax.New(syntax.KindCompoundCondition).Variant(syntax.VariantLogical).
			Field("left", left).
			Field("operator", syntax.Leaf(syntax.KindOperator, "", word, syntax.TokenSpan(op))).
			Field("right", right).
			Build()
	}
}

// parseConditionAtom parses a parenthesized condition, a comparison or a bare
// expression.
func (p *Parser) parseConditionAtom() (*syntax.Node, error) {
	if open := p.cur(); open.Kind == lexer.LeftParen && p.groupHoldsCondition() {
		p.advance()
		p.skipNewlines()
		inner, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		closing, err := p.expect(lexer.RightParen, "')'")
		if err != nil {
			return nil, err
		}
		return syntax.New(syntax.KindCompoundCondition).Variant(syntax.VariantGroup).
			Span(syntax.TokenSpan(open)).
			Field("condition", inner).
			Span(syntax.TokenSpan(closing)).
			Build(), nil
	}

	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	op := p.cur()
	if !relational(op.Kind) {
		return left, nil
	}
	p.advance()
	p.skipSpace()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return syntax.New(syntax.KindCompoundCondition).Variant(syntax.VariantComparison).
		Field("left", left).
		Field("operator", syntax.TokenLeaf(syntax.KindOperator, "", op)).
		Field("right", right).
		Build(), nil
}

// groupHoldsCondition reports whether the parenthesis at the current
// position encloses a comparison or logical operator rather than only an
// arithmetic subexpression.
func (p *Parser) groupHoldsCondition() bool {
	depth := 0
	for k := 0; ; k++ {
		tok := p.peek(k)
		switch tok.Kind {
		case lexer.EOF, lexer.Semicolon:
			return false
		case lexer.LeftParen:
			depth++
		case lexer.RightParen:
			depth--
			if depth == 0 {
				return false
			}
		default:
			if depth >= 1 && (relational(tok.Kind) || isKeyword(tok, "and", "or")) {
				return true
			}
		}
	}
}
