// Package engine runs the symbol correspondence pipeline over sets of Source
// and IR trees: validation, normalization, parallel per-type matching,
// conflict resolution and span resolution. It performs no I/O.
package engine
