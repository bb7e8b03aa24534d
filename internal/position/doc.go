// Package position attaches the final source span to every record.
//
// A record takes its matched Source node's span when there is one. Otherwise
// the IR ancestors are searched, nearest first, up to the enclosing
// top-level type, for a record whose Source node has a span. A matched type
// whose Source node has no span falls back to the IR type's approximate
// declaration line; an unmatched type leaves the span empty.
package position
