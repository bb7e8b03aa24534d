package match

import (
	"source-irfitter/internal/symtree"
)

// Record is the correspondence found for one IR node.
type Record struct {
	IR symtree.Ref
	// Source is the zero Ref when Confidence is ConfidenceNone.
	Source     symtree.Ref
	Confidence Confidence

	// Filled by the position resolver.
	ResolvedSpan symtree.Span
	SpanOrigin   SpanOrigin

	// Ambiguous is set by the conflict resolver.
	Ambiguous bool
	// Contender marks a record that targets a Source node another record
	// already claimed.
	Contender bool

	Reason      string
	Suggestions []string
}

// Matched reports whether the record names a Source node.
func (r *Record) Matched() bool {
	return r.Source.Valid()
}

// IRNode returns the IR node of the record.
func (r *Record) IRNode() *symtree.Node {
	return r.IR.Node()
}

// SourceNode returns the matched Source node, or nil.
func (r *Record) SourceNode() *symtree.Node {
	return r.Source.Node()
}
