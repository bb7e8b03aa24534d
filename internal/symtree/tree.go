package symtree

// lookupKey indexes nodes by kind and qualified name.
type lookupKey struct {
	kind Kind
	name string
}

// Tree is an immutable arena of nodes describing one compilation unit.
type Tree struct {
	unit       string
	nodes      []Node // index 0 reserved for NoNode
	root       NodeID
	index      map[lookupKey][]NodeID
	preorder   []int
	normalized bool
}

func newTree(unit string, nodes []Node, root NodeID) *Tree {
	t := &Tree{
		unit:  unit,
		nodes: nodes,
		root:  root,
	}
	t.buildIndex()

	return t
}

// buildIndex computes the lookup index and pre-order positions in one pass
// over the arena plus one walk from the root.
func (t *Tree) buildIndex() {
	t.index = make(map[lookupKey][]NodeID, len(t.nodes))
	t.preorder = make([]int, len(t.nodes))

	for i := 1; i < len(t.nodes); i++ {
		n := &t.nodes[i]
		key := lookupKey{kind: n.Kind, name: n.QualifiedName}
		t.index[key] = append(t.index[key], n.ID)
		// Unreachable nodes sort after every reachable one.
		t.preorder[i] = len(t.nodes) + i
	}

	pos := 0
	t.Walk(t.root, func(id NodeID) bool {
		t.preorder[id] = pos
		pos++

		return true
	})
}

// Unit returns the compilation unit name the tree was built for.
func (t *Tree) Unit() string { return t.unit }

// Root returns the root node ID (NoNode for an empty tree).
func (t *Tree) Root() NodeID { return t.root }

// Len reports the number of nodes excluding the sentinel.
func (t *Tree) Len() int { return len(t.nodes) - 1 }

// Node returns the node for id, or nil if id is out of range.
func (t *Tree) Node(id NodeID) *Node {
	if !id.IsValid() || int(id) >= len(t.nodes) {
		return nil
	}

	return &t.nodes[id]
}

// Nodes returns all nodes in arena order without the sentinel.
func (t *Tree) Nodes() []Node {
	if len(t.nodes) <= 1 {
		return nil
	}

	return t.nodes[1:]
}

// Children returns the children of id in declaration order.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}

	return n.Children
}

// Parent returns the parent of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNode
	}

	return n.Parent
}

// Ancestors returns the chain of enclosing nodes of id, nearest first.
// The walk stops after Len steps so a corrupted parent cycle cannot loop.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var chain []NodeID

	cur := t.Parent(id)
	for steps := 0; cur.IsValid() && steps < t.Len(); steps++ {
		chain = append(chain, cur)
		cur = t.Parent(cur)
	}

	return chain
}

// Walk visits the subtree rooted at id in pre-order. Returning false from fn
// skips the children of that node. Nodes already visited are not revisited.
func (t *Tree) Walk(id NodeID, fn func(id NodeID) bool) {
	if t.Node(id) == nil {
		return
	}

	seen := make(map[NodeID]bool)
	stack := []NodeID{id}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[cur] {
			continue
		}

		seen[cur] = true

		if !fn(cur) {
			continue
		}

		children := t.Children(cur)
		for i := len(children) - 1; i >= 0; i-- {
			if t.Node(children[i]) != nil {
				stack = append(stack, children[i])
			}
		}
	}
}

// PreorderIndex returns the declaration-order position of id within the tree.
func (t *Tree) PreorderIndex(id NodeID) int {
	if t.Node(id) == nil {
		return -1
	}

	return t.preorder[id]
}

// Lookup returns every node with the given kind and qualified name, in arena
// order. Overloaded methods share a qualified name and are all returned.
func (t *Tree) Lookup(kind Kind, qualifiedName string) []NodeID {
	return t.index[lookupKey{kind: kind, name: qualifiedName}]
}

// Annotate stores the canonical forms computed by the normalizer.
func (t *Tree) Annotate(id NodeID, canonicalName, canonicalSignature string) {
	if n := t.Node(id); n != nil {
		n.CanonicalName = canonicalName
		n.CanonicalSignature = canonicalSignature
	}
}

// MarkNormalized records that every node carries canonical annotations.
func (t *Tree) MarkNormalized() { t.normalized = true }

// Normalized reports whether MarkNormalized was called.
func (t *Tree) Normalized() bool { return t.normalized }

// EnclosingKind returns the nearest ancestor of id with the given kind.
func (t *Tree) EnclosingKind(id NodeID, kind Kind) NodeID {
	for _, anc := range t.Ancestors(id) {
		if t.Node(anc).Kind == kind {
			return anc
		}
	}

	return NoNode
}

// IsTopLevelType reports whether id is a Type with no enclosing Type,
// Method, Field or anonymous unit.
func (t *Tree) IsTopLevelType(id NodeID) bool {
	n := t.Node(id)
	if n == nil || n.Kind != KindType {
		return false
	}

	for _, anc := range t.Ancestors(id) {
		if t.Node(anc).Kind != KindPackage {
			return false
		}
	}

	return true
}
