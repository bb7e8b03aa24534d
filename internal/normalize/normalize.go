package normalize

import (
	"fmt"
	"strings"

	"source-irfitter/internal/symtree"
)

// Issue records a node whose signature could not be decoded.
type Issue struct {
	Node symtree.NodeID
	Raw  string
	Err  error
}

// Tree annotates every node reachable from the root with its canonical name
// and signature. It is additive and idempotent: a tree already normalized is
// only rescanned for opaque signatures.
func Tree(t *symtree.Tree) []Issue {
	if t.Normalized() {
		return opaqueIssues(t)
	}

	var issues []Issue

	t.Walk(t.Root(), func(id symtree.NodeID) bool {
		n := t.Node(id)

		signature, err := nodeSignature(t, n)
		if err != nil {
			issues = append(issues, Issue{Node: id, Raw: n.Signature, Err: err})
		}

		t.Annotate(id, canonicalName(t, n), signature)

		return true
	})

	resolveBridges(t)
	t.MarkNormalized()

	return issues
}

// CanonicalName unifies nesting separators in a qualified name.
func CanonicalName(qualifiedName string) string {
	return strings.Map(func(r rune) rune {
		if r == '$' || r == '/' {
			return '.'
		}

		return r
	}, qualifiedName)
}

// Outermost returns the canonical name of the outermost type enclosing the
// type named typeName in the given package: "Foo$Bar" in "pkg" yields
// "pkg.Foo".
func Outermost(pkgCanonical, typeName string) string {
	first, _, _ := strings.Cut(CanonicalName(typeName), ".")
	if pkgCanonical == "" {
		return first
	}

	return pkgCanonical + "." + first
}

func canonicalName(t *symtree.Tree, n *symtree.Node) string {
	switch n.Kind {
	case symtree.KindPackage, symtree.KindType:
		return CanonicalName(n.QualifiedName)
	case symtree.KindMethod, symtree.KindField, symtree.KindAnonymousUnit, symtree.KindLocalVariable:
		if parent := t.Node(n.Parent); parent != nil {
			return parent.CanonicalName + "." + n.Name
		}

		return n.Name
	case symtree.KindInvalid:
		return n.QualifiedName
	default:
		return n.QualifiedName
	}
}

func nodeSignature(t *symtree.Tree, n *symtree.Node) (string, error) {
	switch n.Kind {
	case symtree.KindMethod, symtree.KindAnonymousUnit:
		return Signature(n.Signature, scopeOf(t, n))
	case symtree.KindField, symtree.KindLocalVariable:
		return Type(n.Signature, scopeOf(t, n))
	case symtree.KindPackage, symtree.KindType, symtree.KindInvalid:
		return "", nil
	default:
		return "", nil
	}
}

// scopeOf collects the type variables visible at n; nearer declarations
// shadow outer ones.
func scopeOf(t *symtree.Tree, n *symtree.Node) Scope {
	chain := append([]symtree.NodeID{n.ID}, t.Ancestors(n.ID)...)

	var vars Scope

	for i := len(chain) - 1; i >= 0; i-- {
		for _, tp := range t.Node(chain[i]).TypeParams {
			if vars == nil {
				vars = make(Scope)
			}

			vars[tp.Name] = tp.Bound
		}
	}

	return vars
}

// resolveBridges gives each bridge method the canonical signature of its
// unique non-bridge sibling with the same name and arity.
func resolveBridges(t *symtree.Tree) {
	t.Walk(t.Root(), func(id symtree.NodeID) bool {
		n := t.Node(id)
		if n.Kind != symtree.KindMethod || !n.Flags.Has(symtree.FlagBridge) {
			return true
		}

		var target *symtree.Node

		for _, sid := range t.Children(n.Parent) {
			s := t.Node(sid)
			if s.Kind != symtree.KindMethod || s.Flags.Has(symtree.FlagBridge) ||
				s.Name != n.Name || s.Arity != n.Arity {
				continue
			}

			if target != nil {
				return true // more than one candidate
			}

			target = s
		}

		if target != nil {
			t.Annotate(id, n.CanonicalName, target.CanonicalSignature)
		}

		return true
	})
}

func opaqueIssues(t *symtree.Tree) []Issue {
	var issues []Issue

	t.Walk(t.Root(), func(id symtree.NodeID) bool {
		n := t.Node(id)
		if IsOpaque(n.CanonicalSignature) {
			issues = append(issues, Issue{
				Node: id,
				Raw:  n.Signature,
				Err:  fmt.Errorf("%w: %q", ErrOpaqueSignature, n.Signature),
			})
		}

		return true
	})

	return issues
}
