package engine

import (
	"source-irfitter/internal/normalize"
	"source-irfitter/internal/symtree"
)

// job is the unit of parallel work: every IR top-level type sharing one
// outermost type name, so that "pkg.Foo", "pkg.Foo$Bar" and "pkg.Foo$1"
// compiled into separate units compete for the same Source nodes in one
// place.
type job struct {
	name  string
	types []symtree.Ref
}

// planJobs groups IR top-level types by outermost canonical type name, in
// order of first appearance. Rejected types are left out.
func planJobs(irs []*symtree.Tree, rejected map[symtree.Ref]bool) []job {
	var jobs []job

	byName := make(map[string]int)

	for _, t := range irs {
		for _, ref := range topLevelTypes(t) {
			if rejected[ref] {
				continue
			}

			n := ref.Node()

			pkg := ""
			if parent := t.Node(n.Parent); parent != nil {
				pkg = parent.CanonicalName
			}

			name := normalize.Outermost(pkg, n.Name)

			i, ok := byName[name]
			if !ok {
				i = len(jobs)
				byName[name] = i
				jobs = append(jobs, job{name: name})
			}

			jobs[i].types = append(jobs[i].types, ref)
		}
	}

	return jobs
}

// topLevelTypes returns the types not nested in another declaration, in
// pre-order.
func topLevelTypes(t *symtree.Tree) []symtree.Ref {
	var out []symtree.Ref

	t.Walk(t.Root(), func(id symtree.NodeID) bool {
		switch t.Node(id).Kind {
		case symtree.KindPackage:
			return true
		case symtree.KindType:
			out = append(out, symtree.Ref{Tree: t, ID: id})

			return false
		case symtree.KindMethod, symtree.KindField, symtree.KindAnonymousUnit,
			symtree.KindLocalVariable, symtree.KindInvalid:
			return false
		default:
			return false
		}
	})

	return out
}
