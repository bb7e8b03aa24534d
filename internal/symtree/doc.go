// Package symtree provides the Symbol Tree Model shared by the Source Model
// and the IR Model.
//
// Trees are slice-based arenas: every node lives in one slice owned by its
// Tree, NodeID 0 is a sentinel, and parent/children links are IDs rather than
// pointers. A Tree is produced wholesale by a Builder (or FromNodes for flat
// parent-linked tables) and is structurally immutable afterwards; only the
// canonical annotations written by the normalizer may change.
//
// Key types:
//   - Kind: closed set of node kinds (package, type, method, field, anonymous, local)
//   - Node: one declaration with its span, flags, signature and ordinal
//   - Tree: the arena plus its (kind, qualified name) lookup index
//   - Ref: a (tree, node) pair used by correspondence records
package symtree
