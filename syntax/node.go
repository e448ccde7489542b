// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Immutable syntax tree for ORCA input files and the builder that assembles it.

package syntax

import (
	"strings"

	"orcaparse/lexer"
)

// Span is the half-open source range [Start, End) covered by a node.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// Contains reports whether the byte offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return s.Start.Offset <= offset && offset < s.End.Offset
}

// Join returns the smallest span covering s and t.
func (s Span) Join(t Span) Span {
	out := s
	if t.Start.Before(out.Start) {
		out.Start = t.Start
	}
	if out.End.Before(t.End) {
		out.End = t.End
	}
	return out
}

// TokenSpan returns the span of a single token.
func TokenSpan(t lexer.Token) Span {
	return Span{Start: t.Pos(), End: t.End()}
}

// Node is a syntax tree node. Nodes are created by a Builder or Leaf and are
// never modified afterwards.
type Node struct {
	kind     Kind
	variant  string
	text     string
	span     Span
	children []*Node
	fields   []string
	attached bool
}

func (n *Node) Kind() Kind { return n.kind }
func (n *Node) Variant() string { return n.variant }
func (n *Node) Text() string { return n.text }
func (n *Node) Span() Span { return n.span }
func (n *Node) ChildCount() int { return len(n.children) }
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }
func (n *Node) IsError() bool { return n.kind == KindError }
func (n *Node) Is(k Kind) bool { return n != nil && n.kind == k }
func (n *Node) String() string { return n.kind.String() }
func (n *Node) Start() lexer.Position { return n.span.Start }
func (n *Node) End() lexer.Position { return n.span.End }

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// FieldName returns the field name of the i-th child edge, "" when unnamed.
func (n *Node) FieldName(i int) string {
	if i < 0 || i >= len(n.fields) {
		return ""
	}
	return n.fields[i]
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildByField returns the first child attached under name.
func (n *Node) ChildByField(name string) *Node {
	for i, f := range n.fields {
		if f == name {
			return n.children[i]
		}
	}
	return nil
}

// ChildrenByField returns all children attached under name, in order.
func (n *Node) ChildrenByField(name string) []*Node {
	var out []*Node
	for i, f := range n.fields {
		if f == name {
			out = append(out, n.children[i])
		}
	}
	return out
}

// ChildrenOfKind returns the direct children of the given kind.
func (n *Node) ChildrenOfKind(k Kind) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.kind == k {
			out = append(out, c)
		}
	}
	return out
}

// FieldNames lists the distinct field names used by the children, in order
// of first appearance.
func (n *Node) FieldNames() []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range n.fields {
		if f != "" && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// FieldText returns the text of the child under name, or "".
func (n *Node) FieldText(name string) string {
	if c := n.ChildByField(name); c != nil {
		return c.Content()
	}
	return ""
}

// Content returns the leaf text, or the space-joined leaf texts below n.
func (n *Node) Content() string {
	if n.IsLeaf() {
		return n.text
	}
	var parts []string
	Walk(n, func(c *Node) bool {
		if c.IsLeaf() && c.text != "" {
			parts = append(parts, c.text)
		}
		return true
	})
	return strings.Join(parts, " ")
}

// Equal reports structural equality: kinds, variants, texts, field names and
// children. Spans are ignored.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.kind != o.kind || n.variant != o.variant || n.text != o.text || len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if n.fields[i] != o.fields[i] || !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// Leaf creates a childless node.
func Leaf(kind Kind, variant, text string, span Span) *Node {
	return &Node{kind: kind, variant: variant, text: text, span: span}
}

// TokenLeaf creates a leaf covering a single token.
func TokenLeaf(kind Kind, variant string, t lexer.Token) *Node {
	return Leaf(kind, variant, t.Value, TokenSpan(t))
}

// Builder assembles one interior node. The zero span is widened to cover
// every added child; an explicit span set with Span is widened the same way.
type Builder struct {
	node    Node
	spanSet bool
}

// New starts a node of the given kind.
func New(kind Kind) *Builder {
	return &Builder{node: Node{kind: kind}}
}

func (b *Builder) Variant(v string) *Builder {
	b.node.variant = v
	return b
}

func (b *Builder) Text(t string) *Builder {
	b.node.text = t
	return b
}

// Span sets or widens the span.
func (b *Builder) Span(s Span) *Builder {
	if !b.spanSet {
		b.node.span = s
		b.spanSet = true
	} else {
		b.node.span = b.node.span.Join(s)
	}
	return b
}

// Add appends an unnamed child. nil children are ignored.
func (b *Builder) Add(children ...*Node) *Builder {
	for _, c := range children {
		b.Field("", c)
	}
	return b
}

// Field appends a child under a field name. A nil child is ignored.
func (b *Builder) Field(name string, c *Node) *Builder {
	if c == nil {
		return b
	}
	b.node.children = append(b.node.children, c)
	b.node.fields = append(b.node.fields, name)
	b.Span(c.span)
	return b
}

// Len returns the number of children added so far.
func (b *Builder) Len() int {
	return len(b.node.children)
}

// Build returns the finished node. A child may belong to one parent only;
// Build panics when a child was already attached elsewhere.
func (b *Builder) Build() *Node {
	n := b.node
	n.children = append([]*Node(nil), b.node.children...)
	n.fields = append([]string(nil), b.node.fields...)
	for _, c := range n.children {
		if c.attached {
			panic("syntax: node " + c.kind.String() + " already has a parent")
		}
		c.attached = true
	}
	return &n
}
