// Package report exports the outcome of a matching run.
//
// FromResult flattens engine records into plain entries that are written as
// YAML for review or as MessagePack (optionally LZ4 compressed) for tools
// that consume the correspondence. Summarize and RenderSummary produce the
// per-confidence table printed after a run.
package report
