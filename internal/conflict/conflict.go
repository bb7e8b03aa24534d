package conflict

import (
	"source-irfitter/internal/match"
	"source-irfitter/internal/symtree"
)

// Resolve groups records by targeted Source node. Within a group of two or
// more, the first record keeps its match and every later one is flagged
// ambiguous while keeping its Source node. Records must already be in IR
// declaration order. Package records are namespaces shared by many units
// and never conflict.
//
// Records beneath an IR type whose pairing is ambiguous inherit the flag.
// Types only collide across jobs, as when a unit's package is named like
// an outer class and its type duplicates a nested one.
// Resolve returns the number of records it flagged.
func Resolve(records []match.Record) int {
	owner := make(map[symtree.Ref]int, len(records))
	flagged := 0

	for i := range records {
		r := &records[i]
		if !r.Matched() || r.IRNode().Kind == symtree.KindPackage {
			continue
		}

		if _, taken := owner[r.Source]; !taken {
			owner[r.Source] = i

			continue
		}

		if !r.Ambiguous {
			r.Ambiguous = true
			flagged++
		}
	}

	ambiguousTypes := make(map[symtree.Ref]bool)

	for i := range records {
		r := &records[i]
		if r.Ambiguous && r.IRNode().Kind == symtree.KindType {
			ambiguousTypes[r.IR] = true
		}
	}

	if len(ambiguousTypes) == 0 {
		return flagged
	}

	for i := range records {
		r := &records[i]
		if r.Ambiguous {
			continue
		}

		for _, anc := range r.IR.Tree.Ancestors(r.IR.ID) {
			if ambiguousTypes[symtree.Ref{Tree: r.IR.Tree, ID: anc}] {
				r.Ambiguous = true
				flagged++

				break
			}
		}
	}

	return flagged
}
