// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Renders ORCA syntax trees as S-expressions, YAML and JSON.

package renderer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"orcaparse/parser"
	"orcaparse/syntax"
)

// Formats lists the output formats accepted by Render.
var Formats = []string{"sexp", "yaml", "json"}

// Render writes the tree of one file in the given format. err is the error
// returned by the parser; its diagnostics are included in YAML and JSON
// output.
func Render(format, file string, root *syntax.Node, err error) (string, error) {
	switch format {
	case "sexp", "":
		return SExpr(root), nil
	case "yaml":
		out, err := YAML(Export(file, root, err))
		return string(out), err
	case "json":
		out, err := JSON(Export(file, root, err))
		return string(out), err
	}
	return "", fmt.Errorf("unknown output format %q", format)
}

// SExpr renders n as an indented S-expression. Interior nodes list their
// children one per line, prefixed by the field name when there is one.
func SExpr(n *syntax.Node) string {
	var b strings.Builder
	writeSExpr(&b, n, "", 0)
	b.WriteByte('\n')
	return b.String()
}

func writeSExpr(b *strings.Builder, n *syntax.Node, field string, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if field != "" {
		b.WriteString(field)
		b.WriteString(": ")
	}
	b.WriteByte('(')
	b.WriteString(label(n))
	if n.Text() != "" {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(n.Text()))
	}
	for i, c := range n.Children() {
		b.WriteByte('\n')
		writeSExpr(b, c, n.FieldName(i), depth+1)
	}
	b.WriteByte(')')
}

func label(n *syntax.Node) string {
	if v := n.Variant(); v != "" {
		return n.Kind().String() + ":" + v
	}
	return n.Kind().String()
}

// Export converts a tree and its diagnostics to the structured model.
func Export(file string, root *syntax.Node, err error) *Document {
	doc := &Document{File: file, Tree: ExportNode(root, "")}
	for _, d := range parser.Diagnostics(err) {
		pos := d.Position()
		doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
			Line:    pos.Line,
			Col:     pos.Col,
			Message: parser.Message(d),
		})
	}
	return doc
}

// ExportNode converts n and its descendants.
func ExportNode(n *syntax.Node, field string) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:    n.Kind().String(),
		Variant: n.Variant(),
		Field:   field,
		Text:    n.Text(),
		Start:   n.Start().String(),
		End:     n.End().String(),
	}
	for i, c := range n.Children() {
		out.Children = append(out.Children, ExportNode(c, n.FieldName(i)))
	}
	return out
}

// YAML encodes doc with two-space indentation.
func YAML(doc *Document) ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return []byte(b.String()), nil
}

// JSON encodes doc as indented JSON.
func JSON(doc *Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return append(out, '\n'), nil
}
