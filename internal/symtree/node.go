package symtree

import "strconv"

// NodeID identifies a node inside its Tree arena.
type NodeID uint32

// NoNode is the sentinel ID; it never refers to a real node.
const NoNode NodeID = 0

// IsValid reports whether the ID is not the sentinel.
func (id NodeID) IsValid() bool { return id != NoNode }

// String returns the decimal ID.
func (id NodeID) String() string { return strconv.FormatUint(uint64(id), 10) }

// TypeParam is a declared generic parameter with its optional upper bound.
type TypeParam struct {
	Name  string
	Bound string
}

// Node is one declaration in a symbol tree.
type Node struct {
	ID            NodeID
	Kind          Kind
	Name          string // last path segment, e.g. "bar" or "Foo$1"
	QualifiedName string // dotted path from the root, e.g. "pkg.Foo.bar"
	Signature     string // raw signature in the builder's encoding
	Flags         Flags
	Span          Span // authoritative for source nodes, approximate for IR nodes
	Ordinal       int  // index among siblings with the same kind and arity
	Arity         int  // parameter count for callables
	TypeParams    []TypeParam
	Parent        NodeID
	Children      []NodeID

	// Set by the normalizer.
	CanonicalName      string
	CanonicalSignature string
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return !n.Parent.IsValid()
}

// Ref names a node of a specific tree.
type Ref struct {
	Tree *Tree
	ID   NodeID
}

// Valid reports whether the reference points at a node.
func (r Ref) Valid() bool {
	return r.Tree != nil && r.Tree.Node(r.ID) != nil
}

// Node returns the referenced node, or nil.
func (r Ref) Node() *Node {
	if r.Tree == nil {
		return nil
	}

	return r.Tree.Node(r.ID)
}

// String returns "unit:qualified.name", or "" for an invalid reference.
func (r Ref) String() string {
	n := r.Node()
	if n == nil {
		return ""
	}

	return r.Tree.Unit() + ":" + n.QualifiedName
}
