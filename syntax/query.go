package syntax

import "strings"

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		Walk(c, fn)
	}
}

// Predicate selects nodes in queries.
type Predicate func(*Node) bool

// OfKind matches nodes of any of the given kinds.
func OfKind(kinds ...Kind) Predicate {
	return func(n *Node) bool {
		for _, k := range kinds {
			if n.kind == k {
				return true
			}
		}
		return false
	}
}

// WithVariant matches nodes of kind k and variant v.
func WithVariant(k Kind, v string) Predicate {
	return func(n *Node) bool {
		return n.kind == k && n.variant == v
	}
}

// Named matches nodes whose "name" (or "title") field equals name, ignoring case.
func Named(name string) Predicate {
	return func(n *Node) bool {
		label := n.FieldText("name")
		if label == "" {
			label = n.FieldText("title")
		}
		return label != "" && strings.EqualFold(label, name)
	}
}

// And combines predicates.
func And(preds ...Predicate) Predicate {
	return func(n *Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Find returns the first node below root (root included) matching pred.
func Find(root *Node, pred Predicate) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node below root (root included) matching pred.
func FindAll(root *Node, pred Predicate) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Subblocks returns all subblocks with the given name, ignoring case. An
// empty name matches every subblock.
func Subblocks(root *Node, name string) []*Node {
	if name == "" {
		return FindAll(root, OfKind(KindSubblock))
	}
	return FindAll(root, And(OfKind(KindSubblock), Named(name)))
}

// InputBlocks returns all input blocks with the given title, ignoring case.
// An empty title matches every block.
func InputBlocks(root *Node, title string) []*Node {
	if title == "" {
		return FindAll(root, OfKind(KindInputBlock))
	}
	return FindAll(root, And(OfKind(KindInputBlock), Named(title)))
}

// GeometryBlocks returns the geometry blocks in source order.
func GeometryBlocks(root *Node) []*Node {
	return FindAll(root, OfKind(KindGeometryBlock))
}

// CoordinateLines returns the coordinate lines directly owned by a geometry
// block or subblock.
func CoordinateLines(n *Node) []*Node {
	if n == nil {
		return nil
	}
	return n.ChildrenOfKind(KindCoordinateLine)
}

// Errors returns the error nodes left by recovery.
func Errors(root *Node) []*Node {
	return FindAll(root, OfKind(KindError))
}

// Path returns the chain of nodes from root down to the innermost node whose
// span contains offset. It is empty when root does not contain offset.
func Path(root *Node, offset int) []*Node {
	if root == nil || !root.span.Contains(offset) {
		return nil
	}
	path := []*Node{root}
	n := root
	for {
		var next *Node
		for _, c := range n.children {
			if c.span.Contains(offset) {
				next = c
				break
			}
		}
		if next == nil {
			return path
		}
		path = append(path, next)
		n = next
	}
}

// NodeAt returns the innermost node containing offset, or nil.
func NodeAt(root *Node, offset int) *Node {
	path := Path(root, offset)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}
