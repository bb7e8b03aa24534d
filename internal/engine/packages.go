package engine

import (
	"source-irfitter/internal/match"
	"source-irfitter/internal/symtree"
)

// matchPackages produces records for IR package nodes. Packages are shared
// namespaces: each IR package takes the Source package of the same canonical
// name, preferring the one in the Source tree that holds the counterpart of
// a type declared beneath it.
func matchPackages(irs []*symtree.Tree, index *match.SourceIndex, typeRecords []match.Record) []match.Record {
	sourceOf := make(map[symtree.Ref]symtree.Ref, len(typeRecords))

	for i := range typeRecords {
		r := &typeRecords[i]
		if r.Matched() && r.IRNode().Kind == symtree.KindType {
			sourceOf[r.IR] = r.Source
		}
	}

	var out []match.Record

	for _, t := range irs {
		t.Walk(t.Root(), func(id symtree.NodeID) bool {
			n := t.Node(id)
			if n.Kind != symtree.KindPackage {
				return false
			}

			ir := symtree.Ref{Tree: t, ID: id}
			cands := index.Packages(n.CanonicalName)

			if len(cands) == 0 {
				out = append(out, match.Record{IR: ir, Confidence: match.ConfidenceNone, Reason: "no package"})

				return true
			}

			out = append(out, match.Record{
				IR:         ir,
				Source:     preferredPackage(t, id, cands, sourceOf),
				Confidence: match.ConfidenceExact,
				Reason:     "package name",
			})

			return true
		})
	}

	return out
}

func preferredPackage(
	t *symtree.Tree,
	pkg symtree.NodeID,
	cands []symtree.Ref,
	sourceOf map[symtree.Ref]symtree.Ref,
) symtree.Ref {
	for _, child := range t.Children(pkg) {
		src, ok := sourceOf[symtree.Ref{Tree: t, ID: child}]
		if !ok {
			continue
		}

		for _, cand := range cands {
			if cand.Tree == src.Tree {
				return cand
			}
		}
	}

	return cands[0]
}
