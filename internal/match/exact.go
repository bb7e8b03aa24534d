package match

import (
	"source-irfitter/internal/symtree"
)

// exact pairs stable-named IR nodes with Source nodes of the same identity:
// types by canonical name, methods and fields by name and canonical
// signature, local variables by name. Bridges go last so the method they
// forward to claims the declaration first.
func (m *Matcher) exact(ctx *Context, remaining []symtree.Ref) []symtree.Ref {
	var rest, bridges []symtree.Ref

	try := func(ir symtree.Ref) bool {
		n := ir.Node()
		if IsUnstable(n) {
			return false
		}

		cands := ctx.Remaining(func(s *symtree.Node) bool { return sameIdentity(n, s) })
		if len(cands) == 0 {
			return false
		}

		ctx.Claim(cands[0])
		m.emit(ir, cands[0], ConfidenceExact, false, "identical "+n.Kind.String())

		return true
	}

	for _, ir := range remaining {
		if ir.Node().Flags.Has(symtree.FlagBridge) {
			bridges = append(bridges, ir)

			continue
		}

		if !try(ir) {
			rest = append(rest, ir)
		}
	}

	for _, ir := range bridges {
		if !try(ir) {
			rest = append(rest, ir)
		}
	}

	return restoreOrder(remaining, rest)
}

func sameIdentity(ir, src *symtree.Node) bool {
	if ir.Kind != src.Kind {
		return false
	}

	switch ir.Kind {
	case symtree.KindType, symtree.KindPackage:
		return ir.CanonicalName == src.CanonicalName
	case symtree.KindMethod, symtree.KindField:
		return ir.Name == src.Name && ir.CanonicalSignature == src.CanonicalSignature
	case symtree.KindLocalVariable:
		return ir.Name == src.Name
	case symtree.KindAnonymousUnit, symtree.KindInvalid:
		return false
	default:
		return false
	}
}

// restoreOrder returns the members of subset in the order they have in all.
func restoreOrder(all, subset []symtree.Ref) []symtree.Ref {
	if len(subset) < 2 {
		return subset
	}

	keep := make(map[symtree.Ref]bool, len(subset))
	for _, ref := range subset {
		keep[ref] = true
	}

	out := subset[:0]
	for _, ref := range all {
		if keep[ref] {
			out = append(out, ref)
		}
	}

	return out
}
