// Package match pairs IR symbol nodes with Source symbol nodes.
//
// A Matcher handles one job: the IR top-level types that share an outermost
// type name. Within each scope four phases run in order, and each phase only
// sees the Source candidates left by the ones before it:
//   - exact: types by canonical name, members by name and canonical signature
//   - disambiguation: overload parity, capture shift, unique names, contenders
//   - heuristic: compiler-generated nodes by maximal line overlap
//   - positional: the nearest remaining candidate at or after the IR start line
//
// Every IR node receives exactly one Record. Unmatched records carry ranked
// suggestions built from identifier similarity.
package match
