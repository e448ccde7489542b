package parser

import (
	"orcaparse/lexer"
	"orcaparse/syntax"
)

// atom is the coarse class of one item on a line, used to guess what a
// subblock body holds before committing to a parse.
type atom uint8

const (
	atomOther atom = iota
	atomWord
	atomElement
	atomInteger
	atomFloat
	atomRef
)

func (a atom) coordinate() bool {
	return a == atomInteger || a == atomFloat || a == atomRef
}

// lineAtoms classifies the items of the line starting at offset k and
// returns the offset of the first token of the next line.
func (p *Parser) lineAtoms(k int) ([]atom, int) {
	var atoms []atom
	for {
		tok := p.peek(k)
		switch tok.Kind {
		case lexer.EOF:
			return atoms, k
		case lexer.Newline:
			return atoms, k + 1
		case lexer.Whitespace, lexer.Comment:
			k++
			continue
		case lexer.Integer:
			atoms = append(atoms, atomInteger)
			k++
			continue
		case lexer.Float:
			atoms = append(atoms, atomFloat)
			k++
			continue
		case lexer.Word:
			if p.isCloser(tok) {
				atoms = append(atoms, atomOther)
			} else if lexer.IsElement(tok.Value) {
				atoms = append(atoms, atomElement)
			} else {
				atoms = append(atoms, atomWord)
			}
			k++
			continue
		}
		if next, ok := p.numberAt(k); ok {
			atoms = append(atoms, atomFloat)
			k = next
			continue
		}
		if next, ok := p.refAt(k); ok {
			atoms = append(atoms, atomRef)
			k = next
			continue
		}
		atoms = append(atoms, atomOther)
		k++
	}
}

// refAt matches "{name}" or "&{name}" at offset k.
func (p *Parser) refAt(k int) (int, bool) {
	if p.peek(k).Kind == lexer.Ampersand {
		if !p.adjacent(k) {
			return k, false
		}
		k++
	}
	if p.peek(k).Kind != lexer.LeftBrace {
		return k, false
	}
	k = p.sigAt(k + 1)
	if p.peek(k).Kind != lexer.Word {
		return k, false
	}
	k = p.sigAt(k + 1)
	if p.peek(k).Kind != lexer.RightBrace {
		return k, false
	}
	return k + 1, true
}

// Coordinate line shapes:
//
//	xyz       El x y z
//	internal  El c1 c2 c3 r angle dihedral
//	zmatrix   El [a1 r [a2 angle [a3 dihedral]]]
func matchXYZ(line []atom) bool {
	return len(line) == 4 && line[0] == atomElement &&
		line[1].coordinate() && line[2].coordinate() && line[3].coordinate()
}

func matchInternal(line []atom) bool {
	if len(line) != 7 || line[0] != atomElement {
		return false
	}
	for _, a := range line[1:4] {
		if a != atomInteger {
			return false
		}
	}
	for _, a := range line[4:] {
		if !a.coordinate() {
			return false
		}
	}
	return true
}

// zmatRank returns how many atoms a Z-matrix row references including its
// own (1 to 4), or 0 when the line is not a Z-matrix row.
func zmatRank(line []atom) int {
	if len(line) == 0 || len(line) > 7 || len(line)%2 == 0 || line[0] != atomElement {
		return 0
	}
	for i := 1; i < len(line); i += 2 {
		if line[i] != atomInteger || !line[i+1].coordinate() {
			return 0
		}
	}
	return (len(line) + 1) / 2
}

// lineVariant returns the coordinate-line variant a line matches, or "".
func lineVariant(line []atom) string {
	switch {
	case matchXYZ(line):
		return syntax.VariantXYZ
	case matchInternal(line):
		return syntax.VariantInternal
	case zmatRank(line) > 0:
		return syntax.VariantZMatrix
	}
	return ""
}

// bodyShape is the outcome of classifying a subblock body.
type bodyShape struct {
	variant string
}

// classifyBody looks at the first non-blank line of a subblock body. Cartesian
// rows are tried first, then internal rows (which win over four-atom Z-matrix
// rows of the same length), then Z-matrix rows. A lone element symbol only
// starts a Z-matrix when the next line is a two-atom row. An element followed
// by coordinate-like values that fit none of the shapes is ambiguous; any
// other line starts an ordinary key/value body.
func (p *Parser) classifyBody() bodyShape {
	k := p.blankAt(0)
	tok := p.peek(k)
	if tok.Kind == lexer.EOF || p.isCloser(tok) {
		return bodyShape{variant: syntax.VariantEmpty}
	}
	first, next := p.lineAtoms(k)
	switch rank := zmatRank(first); {
	case matchXYZ(first):
		return bodyShape{variant: syntax.VariantXYZ}
	case matchInternal(first):
		return bodyShape{variant: syntax.VariantInternal}
	case rank >= 2:
		return bodyShape{variant: syntax.VariantZMatrix}
	case rank == 1:
		second, _ := p.lineAtoms(p.blankAt(next))
		if zmatRank(second) == 2 {
			return bodyShape{variant: syntax.VariantZMatrix}
		}
		return bodyShape{variant: syntax.VariantBody}
	}
	if len(first) >= 3 && first[0] == atomElement {
		for _, a := range first[1:] {
			if !a.coordinate() {
				return bodyShape{variant: syntax.VariantBody}
			}
		}
		return bodyShape{variant: syntax.VariantAmbiguous}
	}
	return bodyShape{variant: syntax.VariantBody}
}
