package engine

import (
	"fmt"

	"source-irfitter/internal/diagnostic"
	"source-irfitter/internal/match"
)

// Side tells which model a tree belongs to.
type Side string

const (
	SideSource Side = "source"
	SideIR     Side = "ir"
)

// UnitFailure reports a tree, or one top-level type of it, that was rejected
// before matching.
type UnitFailure struct {
	Unit string
	// Path names the rejected top-level type; empty when the whole unit was
	// rejected.
	Path string
	Side Side
	Err  error
}

func (f UnitFailure) Error() string {
	if f.Path != "" {
		return fmt.Sprintf("%s unit %s: type %s: %v", f.Side, f.Unit, f.Path, f.Err)
	}

	return fmt.Sprintf("%s unit %s: %v", f.Side, f.Unit, f.Err)
}

func (f UnitFailure) Unwrap() error { return f.Err }

// Result is the outcome of a run. Records are in IR declaration order: by
// position of the IR tree in the input, then pre-order within the tree.
type Result struct {
	Records     []match.Record
	Diagnostics diagnostic.Diagnostics
	Failures    []UnitFailure
}

// Counts returns the number of records per confidence level.
func (r *Result) Counts() map[match.Confidence]int {
	counts := make(map[match.Confidence]int, len(match.AllConfidences))
	for i := range r.Records {
		counts[r.Records[i].Confidence]++
	}

	return counts
}

// Ambiguous returns the number of records flagged ambiguous.
func (r *Result) Ambiguous() int {
	n := 0

	for i := range r.Records {
		if r.Records[i].Ambiguous {
			n++
		}
	}

	return n
}
