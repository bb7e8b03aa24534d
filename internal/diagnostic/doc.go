// Package diagnostic collects the non-fatal findings of a matching run:
// unmatched IR nodes with their suggestions, ambiguous pairings, opaque
// signatures and rejected input trees.
package diagnostic
