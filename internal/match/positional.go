package match

import (
	"source-irfitter/internal/symtree"
)

// positional gives each remaining IR node the nearest unclaimed,
// kind-compatible Source child whose span contains or follows the IR start
// line. IR nodes without line information are left unmatched.
func (m *Matcher) positional(ctx *Context, remaining []symtree.Ref) []symtree.Ref {
	rest := remaining[:0]

	for _, ir := range remaining {
		n := ir.Node()

		cands := ctx.Remaining(func(s *symtree.Node) bool { return kindCompatible(n, s.Kind) })

		best, ok := nearestFollowing(n, cands)
		if !ok {
			rest = append(rest, ir)

			continue
		}

		ctx.Claim(best)
		m.emit(ir, best, ConfidencePositional, false, "nearest declaration")
	}

	return rest
}

// nearestFollowing ranks candidates by distance from the IR start line: zero
// when the span contains it, otherwise how far below it the span starts.
// Candidates ending before the line are skipped. Equal distances go to the
// earlier-starting candidate, then the earlier declaration.
func nearestFollowing(n *symtree.Node, cands []symtree.Ref) (symtree.Ref, bool) {
	if !n.Span.Valid() {
		return symtree.Ref{}, false
	}

	line := n.Span.StartLine

	var (
		best      symtree.Ref
		bestDist  int
		bestStart int
		bestOrder int
	)

	for _, ref := range cands {
		s := ref.Node()
		if !s.Span.Valid() || s.Span.EndLine < line {
			continue
		}

		dist := 0
		if s.Span.StartLine > line {
			dist = s.Span.StartLine - line
		}

		order := ref.Tree.PreorderIndex(ref.ID)

		better := !best.Valid() ||
			dist < bestDist ||
			(dist == bestDist && s.Span.StartLine < bestStart) ||
			(dist == bestDist && s.Span.StartLine == bestStart && order < bestOrder)

		if better {
			best, bestDist, bestStart, bestOrder = ref, dist, s.Span.StartLine, order
		}
	}

	return best, best.Valid()
}
