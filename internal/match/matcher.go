package match

import (
	"fmt"
	"log/slog"
	"sort"

	"source-irfitter/internal/common"
	"source-irfitter/internal/normalize"
	"source-irfitter/internal/symtree"
)

// Options tunes a Matcher.
type Options struct {
	// Heuristic enables line-overlap matching of compiler-generated nodes.
	Heuristic bool
	// Positional enables the nearest-candidate fallback.
	Positional bool
	// MaxSuggestions bounds the suggestions attached to unmatched records.
	MaxSuggestions int
	Logger         *slog.Logger
}

// DefaultOptions enables every phase.
func DefaultOptions() Options {
	return Options{
		Heuristic:      true,
		Positional:     true,
		MaxSuggestions: 3,
	}
}

// Phase consumes the IR nodes it can match and returns the rest. The
// remaining slice is owned by the phase.
type Phase func(ctx *Context, remaining []symtree.Ref) []symtree.Ref

// Matcher produces records for the IR types of one job. It is not safe for
// concurrent use; run one Matcher per job.
type Matcher struct {
	opts    Options
	sources *SourceIndex
	logger  *slog.Logger

	claimed map[symtree.Ref]bool
	records []Record
	byIR    map[symtree.Ref]int
}

// NewMatcher creates a matcher backed by a shared Source index.
func NewMatcher(sources *SourceIndex, opts Options) *Matcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Matcher{
		opts:    opts,
		sources: sources,
		logger:  logger,
		claimed: make(map[symtree.Ref]bool),
		byIR:    make(map[symtree.Ref]int),
	}
}

// Records returns the records produced so far, in creation order.
func (m *Matcher) Records() []Record {
	return m.records
}

// Lookup returns the record of an IR node.
func (m *Matcher) Lookup(ir symtree.Ref) (*Record, bool) {
	i, ok := m.byIR[ir]
	if !ok {
		return nil, false
	}

	return &m.records[i], true
}

// MatchType matches an IR top-level type and everything beneath it.
func (m *Matcher) MatchType(ir symtree.Ref) {
	n := ir.Node()
	if n == nil || n.Kind != symtree.KindType {
		return
	}

	source := m.matchTopLevel(ir, n)
	m.matchScope(ir, source)
}

func (m *Matcher) matchTopLevel(ir symtree.Ref, n *symtree.Node) symtree.Ref {
	for _, cand := range m.sources.Types(n.CanonicalName) {
		if !m.claimed[cand] {
			m.claimed[cand] = true
			m.emit(ir, cand, ConfidenceExact, false, "type name")

			return cand
		}
	}

	outer := m.outerSourceType(ir, n)
	ctx := newContext(outer, m.claimed)
	keep := func(s *symtree.Node) bool { return kindCompatible(n, s.Kind) }

	if m.opts.Heuristic && IsUnstable(n) {
		if best, overlap := bestOverlap(n, ctx.Descendants(outer, keep)); best.Valid() {
			ctx.Claim(best)
			m.emit(ir, best, ConfidenceHeuristic, false, fmt.Sprintf("line overlap %d", overlap))

			return best
		}
	}

	if m.opts.Positional {
		if best, ok := nearestFollowing(n, ctx.Descendants(outer, keep)); ok {
			ctx.Claim(best)
			m.emit(ir, best, ConfidencePositional, false, "nearest declaration")

			return best
		}
	}

	m.emitNone(ir, nil)

	return symtree.Ref{}
}

// outerSourceType finds the Source type named like the outermost enclosing
// type of an IR top-level type.
func (m *Matcher) outerSourceType(ir symtree.Ref, n *symtree.Node) symtree.Ref {
	pkg := ""
	if parent := ir.Tree.Node(n.Parent); parent != nil && parent.Kind == symtree.KindPackage {
		pkg = parent.CanonicalName
	}

	ref, _ := common.First(m.sources.Types(normalize.Outermost(pkg, n.Name)))

	return ref
}

// matchScope matches the IR children of irScope against the children of the
// Source node source, then recurses into nested scopes.
func (m *Matcher) matchScope(irScope, source symtree.Ref) {
	t := irScope.Tree
	children := t.Children(irScope.ID)

	if len(children) == 0 {
		return
	}

	remaining := make([]symtree.Ref, 0, len(children))
	for _, id := range children {
		remaining = append(remaining, symtree.Ref{Tree: t, ID: id})
	}

	// Members before nested constructs.
	sort.SliceStable(remaining, func(i, j int) bool {
		return isMember(remaining[i].Node()) && !isMember(remaining[j].Node())
	})

	ctx := newContext(source, m.claimed)

	for _, phase := range m.phases() {
		if common.IsEmpty(remaining) {
			break
		}

		remaining = phase(ctx, remaining)
	}

	for _, ir := range remaining {
		m.emitNone(ir, m.suggest(ctx, ir.Node()))
	}

	for _, id := range children {
		if !t.Node(id).Kind.IsScope() || len(t.Children(id)) == 0 {
			continue
		}

		ir := symtree.Ref{Tree: t, ID: id}

		var nested symtree.Ref
		if rec, ok := m.Lookup(ir); ok && !rec.Contender {
			nested = rec.Source
		}

		m.matchScope(ir, nested)
	}
}

func (m *Matcher) phases() []Phase {
	phases := []Phase{m.exact, m.disambiguate}
	if m.opts.Heuristic {
		phases = append(phases, m.heuristic)
	}

	if m.opts.Positional {
		phases = append(phases, m.positional)
	}

	return phases
}

func isMember(n *symtree.Node) bool {
	switch n.Kind {
	case symtree.KindField, symtree.KindMethod, symtree.KindLocalVariable:
		return true
	case symtree.KindType, symtree.KindAnonymousUnit, symtree.KindPackage, symtree.KindInvalid:
		return false
	default:
		return false
	}
}

func (m *Matcher) emit(ir, source symtree.Ref, c Confidence, contender bool, reason string) {
	m.byIR[ir] = len(m.records)
	m.records = append(m.records, Record{
		IR:         ir,
		Source:     source,
		Confidence: c,
		Contender:  contender,
		Reason:     reason,
	})

	m.logger.Debug("match",
		"ir", ir.String(),
		"source", source.String(),
		"confidence", c.String(),
		"contender", contender,
		"reason", reason)
}

func (m *Matcher) emitNone(ir symtree.Ref, suggestions []string) {
	m.byIR[ir] = len(m.records)
	m.records = append(m.records, Record{
		IR:          ir,
		Confidence:  ConfidenceNone,
		Reason:      "no candidate",
		Suggestions: suggestions,
	})

	m.logger.Debug("unmatched", "ir", ir.String(), "suggestions", len(suggestions))
}

// suggest ranks the scope's remaining candidates for an unmatched IR node.
func (m *Matcher) suggest(ctx *Context, n *symtree.Node) []string {
	if m.opts.MaxSuggestions <= 0 {
		return nil
	}

	pool := ctx.Remaining(func(s *symtree.Node) bool { return kindCompatible(n, s.Kind) })
	ranked := RankSuggestions(n, pool).AboveThreshold(MinSuggestionScore).Top(m.opts.MaxSuggestions)
	if len(ranked) == 0 {
		return nil
	}

	names := make([]string, 0, len(ranked))
	for _, s := range ranked {
		names = append(names, s.Source.Node().QualifiedName)
	}

	return names
}
