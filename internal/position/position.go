package position

import (
	"source-irfitter/internal/match"
	"source-irfitter/internal/symtree"
)

// Resolve fills ResolvedSpan and SpanOrigin on every record.
func Resolve(records []match.Record) {
	byIR := make(map[symtree.Ref]*match.Record, len(records))
	for i := range records {
		byIR[records[i].IR] = &records[i]
	}

	for i := range records {
		r := &records[i]
		r.ResolvedSpan, r.SpanOrigin = resolve(r, byIR)
	}
}

func resolve(r *match.Record, byIR map[symtree.Ref]*match.Record) (symtree.Span, match.SpanOrigin) {
	if span, ok := sourceSpan(r); ok {
		return span, match.SpanOwn
	}

	t := r.IR.Tree

	chain := append([]symtree.NodeID{r.IR.ID}, t.Ancestors(r.IR.ID)...)
	for i, id := range chain {
		n := t.Node(id)
		if n.Kind == symtree.KindPackage {
			break
		}

		rec := byIR[symtree.Ref{Tree: t, ID: id}]

		if i > 0 && rec != nil {
			if span, ok := sourceSpan(rec); ok {
				return span, match.SpanAncestor
			}
		}

		if !t.IsTopLevelType(id) {
			continue
		}

		// Reached the top-level type without a spanned Source ancestor.
		if rec == nil || !rec.Matched() || !n.Span.Valid() {
			return symtree.Span{}, match.SpanNone
		}

		return symtree.LineSpan(n.Span.StartLine, n.Span.StartLine), match.SpanDeclaration
	}

	return symtree.Span{}, match.SpanNone
}

func sourceSpan(r *match.Record) (symtree.Span, bool) {
	if !r.Matched() {
		return symtree.Span{}, false
	}

	span := r.SourceNode().Span
	if !span.Valid() {
		return symtree.Span{}, false
	}

	return span, true
}
