// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Parses '*' geometry specifications and coordinate lines shared with
// coordinate subblocks.

package parser

import (
	"strings"

	"orcaparse/lexer"
	"orcaparse/syntax"
)

var geometryBlockTypes = map[string]string{
	"xyz":      syntax.VariantXYZ,
	"int":      syntax.VariantInternal,
	"internal": syntax.VariantInternal,
	"gzmt":     syntax.VariantZMatrix,
}

var geometryFileTypes = map[string]string{
	"xyzfile":  syntax.VariantXYZ,
	"gzmtfile": syntax.VariantZMatrix,
	"pdbfile":  "pdb",
}

// parseGeometry parses "*type charge mult" followed either by coordinate
// lines and a closing '*', or, for the file forms, by a file name.
func (p *Parser) parseGeometry() (*syntax.Node, error) {
	star := p.advance()
	p.skipSpace()
	typ := p.cur()
	if typ.Kind != lexer.Word {
		return nil, p.unexpected(typ, "geometry type")
	}
	lower := strings.ToLower(typ.Value)
	if variant, ok := geometryFileTypes[lower]; ok {
		p.advance()
		return p.parseGeometryLine(star, typ, variant)
	}
	variant, ok := geometryBlockTypes[lower]
	if !ok {
		return nil, p.errorf(typ, "unknown geometry type "+typ.Value)
	}
	p.advance()

	b := syntax.New(syntax.KindGeometryBlock).Variant(variant).
		Span(syntax.TokenSpan(star)).
		Field("type", p.wordLeaf(typ))
	p.skipSpace()
	header := p.cur()
	if err := p.parseChargeMultiplicity(b); err != nil {
		p.report(err)
		b.Add(p.recoverLine(header))
	} else if err := p.expectLineEnd("geometry header"); err != nil {
		p.report(err)
		b.Add(p.recoverLine(p.cur()))
	}

	p.parseCoordinateLines(b, variant, func() bool {
		return p.atJobStart() || p.atCloser()
	})

	if tok := p.cur(); tok.Kind == lexer.Star {
		p.advance()
		b.Span(syntax.TokenSpan(tok))
		if err := p.expectLineEnd("geometry block"); err != nil {
			p.report(err)
			b.Add(p.recoverLine(tok))
		}
	} else {
		p.report(&UnterminatedBlockError{
			Filename:   p.opts.Filename,
			Pos:        star.Pos(),
			Construct:  "geometry block *" + typ.Value,
			Terminator: "*",
			At:         tok.Pos(),
		})
	}
	return b.Build(), nil
}

func (p *Parser) parseGeometryLine(star, typ lexer.Token, variant string) (*syntax.Node, error) {
	b := syntax.New(syntax.KindGeometryLine).Variant(variant).
		Span(syntax.TokenSpan(star)).
		Field("type", p.wordLeaf(typ))
	if err := p.parseChargeMultiplicity(b); err != nil {
		return nil, err
	}
	p.skipSpace()
	file, err := p.parseFileName()
	if err != nil {
		return nil, err
	}
	b.Field("file", file)
	if err := p.expectLineEnd("geometry line"); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (p *Parser) parseChargeMultiplicity(b *syntax.Builder) error {
	for _, field := range []string{"charge", "multiplicity"} {
		p.skipSpace()
		n, err := p.parseHeaderInteger(field)
		if err != nil {
			return err
		}
		b.Field(field, n)
	}
	return nil
}

// parseHeaderInteger parses a possibly negative integer or a compound
// variable reference.
func (p *Parser) parseHeaderInteger(what string) (*syntax.Node, error) {
	tok := p.cur()
	switch {
	case tok.Kind == lexer.Ampersand:
		return p.parseCompoundRef(syntax.KindValue)
	case tok.Kind == lexer.Integer:
		p.advance()
		return syntax.TokenLeaf(syntax.KindInteger, "", tok), nil
	case tok.Kind == lexer.Minus && p.adjacent(0) && p.peek(1).Kind == lexer.Integer:
		p.advance()
		num := p.advance()
		return syntax.Leaf(syntax.KindInteger, "", "-"+num.Value, syntax.Span{Start: tok.Pos(), End: num.End()}), nil
	}
	return nil, p.unexpected(tok, what)
}

// parseFileName parses a quoted or bare path, or a compound reference.
func (p *Parser) parseFileName() (*syntax.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.QuotedString:
		p.advance()
		return syntax.TokenLeaf(syntax.KindFile, syntax.VariantQuoted, tok), nil
	case lexer.Ampersand:
		if p.peek(1).Kind == lexer.LeftBrace {
			return p.parseCompoundRef(syntax.KindFile)
		}
	case lexer.Newline, lexer.EOF, lexer.Unknown:
		return nil, p.unexpected(tok, "file name")
	}
	text, span := p.glue(argumentToken)
	return syntax.Leaf(syntax.KindFile, "", text, span), nil
}

// parseCoordinateLines parses coordinate lines of one format until stop
// reports the end of the body. Lines of another format are reported and
// skipped.
func (p *Parser) parseCoordinateLines(b *syntax.Builder, variant string, stop func() bool) {
	for {
		b.Add(p.skipBlank()...)
		tok := p.cur()
		if tok.Kind == lexer.EOF || stop() {
			return
		}
		mark := p.tokens.Mark()
		line, err := p.parseCoordinateLine(variant)
		if err != nil {
			p.report(err)
			line = p.recoverLine(tok)
		}
		b.Add(line)
		p.ensureProgress(mark, b)
	}
}

func (p *Parser) parseCoordinateLine(variant string) (*syntax.Node, error) {
	elem := p.cur()
	if elem.Kind != lexer.Word || !lexer.IsElement(elem.Value) {
		return nil, p.unexpected(elem, "element symbol")
	}
	p.advance()
	b := syntax.New(syntax.KindCoordinateLine).Field("element", syntax.TokenLeaf(syntax.KindElement, "", elem))

	var err error
	switch variant {
	case syntax.VariantXYZ:
		b.Variant(syntax.VariantXYZ)
		err = p.coordinateFields(b, "x", "y", "z")
	case syntax.VariantInternal:
		b.Variant(syntax.VariantInternal)
		if err = p.integerFields(b, "connect1", "connect2", "connect3"); err == nil {
			err = p.coordinateFields(b, "distance", "angle", "dihedral")
		}
	default:
		err = p.zmatFields(b)
	}
	if err != nil {
		return nil, err
	}
	if err := p.expectLineEnd("coordinate line"); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

var zmatPairs = [...][2]string{
	{"zmat_atom1", "distance"},
	{"zmat_atom2", "angle"},
	{"zmat_atom3", "dihedral"},
}

var zmatVariants = [...]string{syntax.VariantZMat1, syntax.VariantZMat2, syntax.VariantZMat3, syntax.VariantZMat4}

// zmatFields parses up to three (reference atom, value) pairs.
func (p *Parser) zmatFields(b *syntax.Builder) error {
	pairs := 0
	for pairs < len(zmatPairs) {
		p.skipSpace()
		if p.atLineEnd() {
			break
		}
		if err := p.integerFields(b, zmatPairs[pairs][0]); err != nil {
			return err
		}
		if err := p.coordinateFields(b, zmatPairs[pairs][1]); err != nil {
			return err
		}
		pairs++
	}
	b.Variant(zmatVariants[pairs])
	return nil
}

func (p *Parser) integerFields(b *syntax.Builder, names ...string) error {
	for _, name := range names {
		p.skipSpace()
		tok := p.cur()
		if tok.Kind != lexer.Integer {
			return p.unexpected(tok, name+" atom index")
		}
		p.advance()
		b.Field(name, syntax.TokenLeaf(syntax.KindInteger, "", tok))
	}
	return nil
}

func (p *Parser) coordinateFields(b *syntax.Builder, names ...string) error {
	for _, name := range names {
		p.skipSpace()
		v, err := p.parseCoordinateValue(name)
		if err != nil {
			return err
		}
		b.Field(name, v)
	}
	return nil
}

// parseCoordinateValue parses a number, "{name}" or "&{name}".
func (p *Parser) parseCoordinateValue(what string) (*syntax.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.LeftBrace:
		return p.parseVariableRef(syntax.KindCoordinateValue)
	case lexer.Ampersand:
		return p.parseCompoundRef(syntax.KindCoordinateValue)
	}
	if _, ok := p.numberAt(0); !ok {
		return nil, p.unexpected(tok, what)
	}
	n := p.parseNumber(syntax.KindCoordinateValue)
	return syntax.Leaf(syntax.KindCoordinateValue, syntax.VariantFloat, n.Text(), n.Span()), nil
}
