package match

import (
	"source-irfitter/internal/common"
	"source-irfitter/internal/normalize"
	"source-irfitter/internal/symtree"
)

// disambiguate resolves what exact matching left behind:
//   - methods by name, pairing equal arities in declaration order when their
//     parameters are erasure-compatible
//   - constructors whose IR form carries leading outer-instance or capture
//     parameters (capture shift)
//   - a name left with one IR and one Source method
//   - fields by name, local variables by order when both counts agree
//   - leftover methods whose identity equals an already claimed Source method
//     become contenders for it
func (m *Matcher) disambiguate(ctx *Context, remaining []symtree.Ref) []symtree.Ref {
	matched := make(map[symtree.Ref]bool)

	m.disambiguateMethods(ctx, remaining, matched)
	m.disambiguateFields(ctx, remaining, matched)
	m.disambiguateLocals(ctx, remaining, matched)
	m.markContenders(ctx, remaining, matched)

	rest := remaining[:0]

	for _, ir := range remaining {
		if !matched[ir] {
			rest = append(rest, ir)
		}
	}

	return rest
}

func (m *Matcher) disambiguateMethods(ctx *Context, remaining []symtree.Ref, matched map[symtree.Ref]bool) {
	var names []string

	byName := make(map[string][]symtree.Ref)

	for _, ir := range remaining {
		n := ir.Node()
		if n.Kind != symtree.KindMethod || IsUnstable(n) {
			continue
		}

		if _, seen := byName[n.Name]; !seen {
			names = append(names, n.Name)
		}

		byName[n.Name] = append(byName[n.Name], ir)
	}

	for _, name := range names {
		irs := byName[name]
		sources := func() []symtree.Ref {
			return ctx.Remaining(func(s *symtree.Node) bool {
				return s.Kind == symtree.KindMethod && s.Name == name
			})
		}

		// Equal arity, declaration-order parity, guarded by compatibility.
		for _, ir := range irs {
			n := ir.Node()
			for _, src := range sources() {
				s := src.Node()
				if s.Arity != n.Arity || !paramsCompatible(n, s, false) {
					continue
				}

				m.pair(ctx, ir, src, matched, "overload parity")

				break
			}
		}

		// Capture shift: extra leading IR parameters.
		for _, ir := range irs {
			n := ir.Node()
			if matched[ir] || !canCapture(n) {
				continue
			}

			for _, src := range sources() {
				s := src.Node()
				if s.Arity >= n.Arity || !paramsCompatible(n, s, true) {
					continue
				}

				m.pair(ctx, ir, src, matched, "capture shift")

				break
			}
		}

		// A name left with one candidate on each side.
		var open []symtree.Ref

		for _, ir := range irs {
			if !matched[ir] {
				open = append(open, ir)
			}
		}

		if srcs := sources(); common.IsSingle(open) && common.IsSingle(srcs) {
			m.pair(ctx, open[0], srcs[0], matched, "unique name")
		}
	}
}

func paramsCompatible(ir, src *symtree.Node, shifted bool) bool {
	irParams := normalize.Params(ir.CanonicalSignature)
	srcParams := normalize.Params(src.CanonicalSignature)

	// Undecodable signatures carry no parameter types to contradict.
	if normalize.IsOpaque(ir.CanonicalSignature) || normalize.IsOpaque(src.CanonicalSignature) {
		return true
	}

	if shifted {
		return normalize.CompareShifted(irParams, srcParams) != normalize.Incompatible
	}

	return normalize.CompareParams(irParams, srcParams) != normalize.Incompatible
}

func (m *Matcher) disambiguateFields(ctx *Context, remaining []symtree.Ref, matched map[symtree.Ref]bool) {
	for _, ir := range remaining {
		n := ir.Node()
		if matched[ir] || n.Kind != symtree.KindField || IsUnstable(n) {
			continue
		}

		srcs := ctx.Remaining(func(s *symtree.Node) bool {
			return s.Kind == symtree.KindField && s.Name == n.Name
		})
		if len(srcs) > 0 {
			m.pair(ctx, ir, srcs[0], matched, "field name")
		}
	}
}

func (m *Matcher) disambiguateLocals(ctx *Context, remaining []symtree.Ref, matched map[symtree.Ref]bool) {
	var irs []symtree.Ref

	for _, ir := range remaining {
		n := ir.Node()
		if !matched[ir] && n.Kind == symtree.KindLocalVariable && !IsUnstable(n) {
			irs = append(irs, ir)
		}
	}

	srcs := ctx.Remaining(func(s *symtree.Node) bool { return s.Kind == symtree.KindLocalVariable })
	if len(irs) == 0 || len(irs) != len(srcs) {
		return
	}

	for i := range irs {
		m.pair(ctx, irs[i], srcs[i], matched, "local order")
	}
}

func (m *Matcher) markContenders(ctx *Context, remaining []symtree.Ref, matched map[symtree.Ref]bool) {
	for _, ir := range remaining {
		n := ir.Node()
		if matched[ir] || n.Kind != symtree.KindMethod || IsUnstable(n) {
			continue
		}

		taken := ctx.ClaimedChildren(func(s *symtree.Node) bool { return sameIdentity(n, s) })
		if len(taken) == 0 {
			continue
		}

		matched[ir] = true
		m.emit(ir, taken[0], ConfidenceDisambiguated, true, "contends for claimed declaration")
	}
}

func (m *Matcher) pair(ctx *Context, ir, src symtree.Ref, matched map[symtree.Ref]bool, reason string) {
	ctx.Claim(src)
	matched[ir] = true
	m.emit(ir, src, ConfidenceDisambiguated, false, reason)
}
