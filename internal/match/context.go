package match

import (
	"source-irfitter/internal/symtree"
)

// SourceIndex finds Source types and packages by canonical name across all
// Source trees. It is built once and shared read-only by every job.
type SourceIndex struct {
	types    map[string][]symtree.Ref
	packages map[string][]symtree.Ref
}

// NewSourceIndex indexes the Type and Package nodes of normalized trees.
// Types in skip, and everything beneath them, stay out of the index.
func NewSourceIndex(trees []*symtree.Tree, skip map[symtree.Ref]bool) *SourceIndex {
	idx := &SourceIndex{
		types:    make(map[string][]symtree.Ref),
		packages: make(map[string][]symtree.Ref),
	}

	for _, t := range trees {
		t.Walk(t.Root(), func(id symtree.NodeID) bool {
			n := t.Node(id)
			ref := symtree.Ref{Tree: t, ID: id}

			if skip[ref] {
				return false
			}

			switch n.Kind {
			case symtree.KindType:
				idx.types[n.CanonicalName] = append(idx.types[n.CanonicalName], ref)
			case symtree.KindPackage:
				idx.packages[n.CanonicalName] = append(idx.packages[n.CanonicalName], ref)
			case symtree.KindMethod, symtree.KindField, symtree.KindAnonymousUnit,
				symtree.KindLocalVariable, symtree.KindInvalid:
			}

			return true
		})
	}

	return idx
}

// Types returns the Source types with the given canonical name.
func (idx *SourceIndex) Types(canonical string) []symtree.Ref {
	return idx.types[canonical]
}

// Packages returns the Source packages with the given canonical name.
func (idx *SourceIndex) Packages(canonical string) []symtree.Ref {
	return idx.packages[canonical]
}

// Context is the matching scope for one Source node: its children in
// declaration order, filtered by the job-wide claim set.
type Context struct {
	scope   symtree.Ref
	claimed map[symtree.Ref]bool
}

func newContext(scope symtree.Ref, claimed map[symtree.Ref]bool) *Context {
	return &Context{scope: scope, claimed: claimed}
}

// Scope returns the Source node the context covers (may be the zero Ref).
func (c *Context) Scope() symtree.Ref { return c.scope }

// Claimed reports whether a Source node has been consumed in this job.
func (c *Context) Claimed(ref symtree.Ref) bool { return c.claimed[ref] }

// Claim consumes a Source node.
func (c *Context) Claim(ref symtree.Ref) { c.claimed[ref] = true }

// Remaining returns the unclaimed children of the scope accepted by keep,
// in declaration order.
func (c *Context) Remaining(keep func(*symtree.Node) bool) []symtree.Ref {
	return c.children(keep, false)
}

// ClaimedChildren returns the already claimed children accepted by keep.
func (c *Context) ClaimedChildren(keep func(*symtree.Node) bool) []symtree.Ref {
	return c.children(keep, true)
}

func (c *Context) children(keep func(*symtree.Node) bool, claimed bool) []symtree.Ref {
	if !c.scope.Valid() {
		return nil
	}

	t := c.scope.Tree

	var out []symtree.Ref

	for _, id := range t.Children(c.scope.ID) {
		ref := symtree.Ref{Tree: t, ID: id}
		if c.claimed[ref] == claimed && keep(t.Node(id)) {
			out = append(out, ref)
		}
	}

	return out
}

// Descendants returns the unclaimed nodes strictly below root accepted by
// keep, in pre-order.
func (c *Context) Descendants(root symtree.Ref, keep func(*symtree.Node) bool) []symtree.Ref {
	if !root.Valid() {
		return nil
	}

	t := root.Tree

	var out []symtree.Ref

	t.Walk(root.ID, func(id symtree.NodeID) bool {
		ref := symtree.Ref{Tree: t, ID: id}
		if id != root.ID && !c.claimed[ref] && keep(t.Node(id)) {
			out = append(out, ref)
		}

		return true
	})

	return out
}
