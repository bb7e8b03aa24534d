package report

import (
	"source-irfitter/internal/diagnostic"
	"source-irfitter/internal/engine"
	"source-irfitter/internal/match"
)

// FromResult converts an engine result into its exported form.
func FromResult(res *engine.Result) *Report {
	r := &Report{
		Schema:  SchemaVersion,
		Summary: Summarize(res),
		Records: FromRecords(res.Records),
	}

	for _, d := range res.Diagnostics.All() {
		r.Diagnostics = append(r.Diagnostics, exportDiagnostic(d))
	}

	for _, f := range res.Failures {
		r.Failures = append(r.Failures, Failure{
			Unit:  f.Unit,
			Path:  f.Path,
			Side:  string(f.Side),
			Error: f.Err.Error(),
		})
	}

	return r
}

// FromRecords converts records into entries, keeping their order.
func FromRecords(records []match.Record) []Entry {
	entries := make([]Entry, 0, len(records))

	for i := range records {
		entries = append(entries, exportRecord(&records[i]))
	}

	return entries
}

func exportRecord(rec *match.Record) Entry {
	ir := rec.IRNode()

	e := Entry{
		IRUnit:      rec.IR.Tree.Unit(),
		IR:          ir.QualifiedName,
		Kind:        ir.Kind.String(),
		Signature:   ir.Signature,
		Confidence:  rec.Confidence.String(),
		Span:        rec.ResolvedSpan.String(),
		SpanOrigin:  rec.SpanOrigin.String(),
		Ambiguous:   rec.Ambiguous,
		Contender:   rec.Contender,
		Reason:      rec.Reason,
		Suggestions: rec.Suggestions,
	}

	if src := rec.SourceNode(); src != nil {
		e.SourceUnit = rec.Source.Tree.Unit()
		e.Source = src.QualifiedName
	}

	return e
}

func exportDiagnostic(d diagnostic.Diagnostic) Diagnostic {
	return Diagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code,
		Message:  d.Message,
		Unit:     d.Unit,
		Path:     d.Path,
	}
}

// Summarize counts the records of a result.
func Summarize(res *engine.Result) Summary {
	s := Summary{
		Total:        len(res.Records),
		ByConfidence: make(map[string]int, len(match.AllConfidences)),
		Ambiguous:    res.Ambiguous(),
		Failures:     len(res.Failures),
	}

	counts := res.Counts()
	for _, c := range match.AllConfidences {
		s.ByConfidence[c.String()] = counts[c]
	}

	s.Unmatched = counts[match.ConfidenceNone]

	return s
}
