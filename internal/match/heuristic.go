package match

import (
	"fmt"

	"source-irfitter/internal/symtree"
)

// heuristic matches compiler-generated IR nodes by line overlap against the
// unclaimed Source siblings of the scope. Constructs the compiler hoists out
// of a body look deeper: a lambda body searches the anonymous units inside
// the Source method its name points at, and an anonymous class searches the
// whole scope subtree. Accessors only stand for methods.
func (m *Matcher) heuristic(ctx *Context, remaining []symtree.Ref) []symtree.Ref {
	rest := remaining[:0]

	for _, ir := range remaining {
		n := ir.Node()
		if !IsUnstable(n) {
			rest = append(rest, ir)

			continue
		}

		best, overlap := bestOverlap(n, heuristicPool(ctx, n))
		if !best.Valid() {
			rest = append(rest, ir)

			continue
		}

		ctx.Claim(best)
		m.emit(ir, best, ConfidenceHeuristic, false, fmt.Sprintf("line overlap %d", overlap))
	}

	return rest
}

func heuristicPool(ctx *Context, n *symtree.Node) []symtree.Ref {
	keep := func(s *symtree.Node) bool {
		return kindCompatible(n, s.Kind) && arityCompatible(n, s)
	}

	switch {
	case isAccessor(n):
		return ctx.Remaining(func(s *symtree.Node) bool {
			return s.Kind == symtree.KindMethod && arityCompatible(n, s)
		})
	case n.Kind == symtree.KindMethod:
		if enclosing, ok := DecodeLambda(n.Name); ok {
			return lambdaPool(ctx, n, enclosing)
		}
	case n.Kind == symtree.KindType && isAnonymousTypeName(n.Name):
		return ctx.Descendants(ctx.Scope(), keep)
	}

	return ctx.Remaining(keep)
}

// lambdaPool collects the unclaimed anonymous units below the Source
// callables named enclosing, claimed or not. Without such a callable, as
// for lambdas in field initializers, any anonymous unit of the scope
// subtree qualifies.
func lambdaPool(ctx *Context, n *symtree.Node, enclosing string) []symtree.Ref {
	owner := func(s *symtree.Node) bool { return isOwner(s, enclosing) }
	body := func(s *symtree.Node) bool {
		return s.Kind == symtree.KindAnonymousUnit && arityCompatible(n, s)
	}

	owners := ctx.Remaining(owner)
	owners = append(owners, ctx.ClaimedChildren(owner)...)

	if len(owners) == 0 {
		return ctx.Descendants(ctx.Scope(), body)
	}

	var pool []symtree.Ref

	for _, o := range owners {
		pool = append(pool, ctx.Descendants(o, body)...)
	}

	return pool
}

func isOwner(s *symtree.Node, name string) bool {
	return (s.Kind == symtree.KindMethod || s.Kind == symtree.KindAnonymousUnit) && s.Name == name
}

// bestOverlap picks the candidate sharing the most lines with n. Ties go to
// the closest ordinal, then the earlier declaration. No overlap, no match.
func bestOverlap(n *symtree.Node, pool []symtree.Ref) (symtree.Ref, int) {
	var (
		best        symtree.Ref
		bestOverlap int
		bestGap     int
		bestOrder   int
	)

	for _, ref := range pool {
		s := ref.Node()

		overlap := n.Span.LineOverlap(s.Span)
		if overlap == 0 {
			continue
		}

		gap := abs(n.Ordinal - s.Ordinal)
		order := ref.Tree.PreorderIndex(ref.ID)

		better := !best.Valid() ||
			overlap > bestOverlap ||
			(overlap == bestOverlap && gap < bestGap) ||
			(overlap == bestOverlap && gap == bestGap && order < bestOrder)

		if better {
			best, bestOverlap, bestGap, bestOrder = ref, overlap, gap, order
		}
	}

	return best, bestOverlap
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
