package syntax

import (
	"testing"

	"orcaparse/lexer"
)

func span(start, end int) Span {
	return Span{
		Start: lexer.Position{Offset: start, Line: 1, Col: start + 1},
		End:   lexer.Position{Offset: end, Line: 1, Col: end + 1},
	}
}

// pair builds "maxiter 100" as a key/value node.
func pair(offset int) *Node {
	key := New(KindKey).Field("name", Leaf(KindWord, VariantWord, "maxiter", span(offset, offset+7))).Build()
	value := Leaf(KindValue, VariantIntegerValue, "100", span(offset+8, offset+11))
	return New(KindKeyValuePair).Field("key", key).Field("value", value).Build()
}

func TestBuilderWidensSpan(t *testing.T) {
	n := pair(4)
	if n.Start().Offset != 4 || n.End().Offset != 15 {
		t.Errorf("expected span [4,15), got [%d,%d)", n.Start().Offset, n.End().Offset)
	}
	if n.ChildCount() != 2 || n.IsLeaf() {
		t.Fatalf("expected 2 children, got %d", n.ChildCount())
	}
	if n.FieldName(0) != "key" || n.FieldName(1) != "value" || n.FieldName(2) != "" {
		t.Errorf("unexpected field names %v", n.FieldNames())
	}
}

func TestBuilderRejectsReattachedChild(t *testing.T) {
	child := Leaf(KindWord, VariantWord, "x", span(0, 1))
	New(KindArgument).Add(child).Build()

	defer func() {
		if recover() == nil {
			t.Error("expected Build to panic on a child with two parents")
		}
	}()
	New(KindArgument).Add(child).Build()
}

func TestBuilderIgnoresNilChildren(t *testing.T) {
	b := New(KindSimpleLine).Add(nil, Leaf(KindArgument, "", "Opt", span(2, 5))).Field("x", nil)
	if b.Len() != 1 {
		t.Errorf("expected 1 child, got %d", b.Len())
	}
}

func TestEqualIgnoresSpans(t *testing.T) {
	a, b := pair(0), pair(20)
	if !a.Equal(b) {
		t.Error("expected trees at different offsets to be equal")
	}
	other := New(KindKeyValuePair).
		Field("key", New(KindKey).Field("name", Leaf(KindWord, VariantWord, "maxiter", span(0, 7))).Build()).
		Field("value", Leaf(KindValue, VariantIntegerValue, "200", span(8, 11))).
		Build()
	if a.Equal(other) {
		t.Error("expected trees with different values to differ")
	}
	var nilNode *Node
	if a.Equal(nilNode) || !nilNode.Equal(nil) {
		t.Error("unexpected nil comparison result")
	}
}

func TestFieldAccess(t *testing.T) {
	n := pair(0)
	if got := n.FieldText("key"); got != "maxiter" {
		t.Errorf("expected key maxiter, got %q", got)
	}
	if got := n.FieldText("missing"); got != "" {
		t.Errorf("expected empty text for a missing field, got %q", got)
	}
	if got := n.Content(); got != "maxiter 100" {
		t.Errorf("expected content 'maxiter 100', got %q", got)
	}

	arr := New(KindVariableArray).
		Field("element", Leaf(KindValue, VariantFloat, "1.0", span(0, 3))).
		Field("element", Leaf(KindValue, VariantFloat, "2.0", span(4, 7))).
		Build()
	if n := len(arr.ChildrenByField("element")); n != 2 {
		t.Errorf("expected 2 elements, got %d", n)
	}
	if names := arr.FieldNames(); len(names) != 1 || names[0] != "element" {
		t.Errorf("expected distinct field names [element], got %v", names)
	}
	children := arr.Children()
	children[0] = nil
	if arr.Child(0) == nil {
		t.Error("expected Children to return a copy")
	}
}

func TestQueries(t *testing.T) {
	title := Leaf(KindInputTitle, "", "scf", span(0, 4))
	sub := New(KindSubblock).Variant(VariantBody).
		Field("name", Leaf(KindWord, VariantWord, "Tol", span(5, 8))).
		Build()
	block := New(KindInputBlock).Field("title", title).Add(pair(9), sub).Build()
	root := New(KindDocument).Add(block).Build()

	if got := InputBlocks(root, "SCF"); len(got) != 1 {
		t.Errorf("expected 1 scf block, got %d", len(got))
	}
	if got := Subblocks(root, "tol"); len(got) != 1 {
		t.Errorf("expected 1 Tol subblock, got %d", len(got))
	}
	if got := Subblocks(root, "Coords"); len(got) != 0 {
		t.Errorf("expected no Coords subblock, got %d", len(got))
	}
	if n := Find(root, OfKind(KindValue)); n == nil || n.Text() != "100" {
		t.Errorf("expected to find value 100, got %v", n)
	}
	if n := Find(root, WithVariant(KindSubblock, VariantXYZ)); n != nil {
		t.Errorf("expected no xyz subblock, got %v", n)
	}

	var visited int
	Walk(root, func(n *Node) bool {
		visited++
		return !n.Is(KindKeyValuePair)
	})
	// document, block, title, pair, subblock, subblock name
	if visited != 6 {
		t.Errorf("expected 6 visited nodes, got %d", visited)
	}
}

func TestPathAndNodeAt(t *testing.T) {
	root := New(KindDocument).Add(pair(0)).Build()
	path := Path(root, 9)
	if len(path) != 3 {
		t.Fatalf("expected path of 3 nodes, got %d", len(path))
	}
	if !path[2].Is(KindValue) {
		t.Errorf("expected innermost node to be a value, got %s", path[2])
	}
	if n := NodeAt(root, 2); !n.Is(KindWord) {
		t.Errorf("expected word at offset 2, got %v", n)
	}
	if NodeAt(root, 50) != nil {
		t.Error("expected nil outside the tree")
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := KindByName(k.String())
		if !ok || got != k {
			t.Errorf("KindByName(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := KindByName("nope"); ok {
		t.Error("expected unknown kind name to fail")
	}
	if KindCompoundForLoop.String() != "compound_for_loop" {
		t.Errorf("unexpected name %q", KindCompoundForLoop.String())
	}
}
