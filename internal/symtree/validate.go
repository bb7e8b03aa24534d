package symtree

import (
	"errors"
	"fmt"
)

// Validation problems reported through ValidationError.
var (
	ErrParentCycle       = errors.New("cycle in parent links")
	ErrParentMismatch    = errors.New("child does not point back at its parent")
	ErrDanglingParent    = errors.New("parent reference out of range")
	ErrDuplicateOrdinal  = errors.New("duplicate (kind, arity, ordinal) among siblings")
	ErrDisallowedChild   = errors.New("child kind not allowed under parent kind")
	ErrDuplicateIdentity = errors.New("duplicate (kind, qualified name, signature)")
	ErrInvalidKind       = errors.New("invalid node kind")
	ErrUnreachable       = errors.New("node not reachable from the root")
)

// ValidationError reports a structural problem at a specific node.
type ValidationError struct {
	Unit string
	Path string // qualified name of the offending node
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Unit, e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

type siblingKey struct {
	kind    Kind
	arity   int
	ordinal int
}

type identityKey struct {
	kind      Kind
	name      string
	signature string
}

// Validate checks the subtree rooted at id and returns the first problem in
// pre-order, or nil.
func (t *Tree) Validate(id NodeID) error {
	if t.Node(id) == nil {
		return &ValidationError{Unit: t.unit, Path: id.String(), Err: ErrDanglingParent}
	}

	if err := t.checkAncestry(id); err != nil {
		return err
	}

	seen := make(map[NodeID]bool)
	identities := make(map[identityKey]bool)

	var firstErr error

	t.Walk(id, func(cur NodeID) bool {
		if firstErr != nil {
			return false
		}

		firstErr = t.checkNode(cur, seen, identities)

		return firstErr == nil
	})

	return firstErr
}

// ValidateTree validates the whole tree and additionally reports nodes that
// cannot be reached from the root.
func (t *Tree) ValidateTree() error {
	if !t.root.IsValid() {
		return &ValidationError{Unit: t.unit, Path: "<root>", Err: ErrParentCycle}
	}

	if err := t.Validate(t.root); err != nil {
		return err
	}

	return t.checkReachable()
}

// ValidateSkeleton validates the tree down to its top-level types: the root,
// every Package node with its direct children, and reachability. The content
// of each top-level type is left to Validate, so one malformed type can be
// rejected without the rest of the unit.
func (t *Tree) ValidateSkeleton() error {
	if !t.root.IsValid() {
		return &ValidationError{Unit: t.unit, Path: "<root>", Err: ErrParentCycle}
	}

	seen := make(map[NodeID]bool)
	identities := make(map[identityKey]bool)

	var firstErr error

	t.Walk(t.root, func(cur NodeID) bool {
		if firstErr != nil {
			return false
		}

		if t.nodes[cur].Kind != KindPackage {
			firstErr = t.checkIdentity(cur, identities)

			return false
		}

		firstErr = t.checkNode(cur, seen, identities)

		return firstErr == nil
	})

	if firstErr != nil {
		return firstErr
	}

	return t.checkReachable()
}

func (t *Tree) checkReachable() error {
	for i := 1; i < len(t.nodes); i++ {
		if t.preorder[i] >= len(t.nodes) {
			n := &t.nodes[i]

			err := ErrUnreachable
			if n.Parent.IsValid() && len(t.Ancestors(n.ID)) >= t.Len() {
				err = ErrParentCycle
			}

			return &ValidationError{Unit: t.unit, Path: n.QualifiedName, Err: err}
		}
	}

	return nil
}

func (t *Tree) checkAncestry(id NodeID) error {
	steps := 0

	for cur := t.Parent(id); cur.IsValid(); cur = t.Parent(cur) {
		if t.Node(cur) == nil {
			return &ValidationError{Unit: t.unit, Path: t.nodes[id].QualifiedName, Err: ErrDanglingParent}
		}

		steps++
		if steps > t.Len() {
			return &ValidationError{Unit: t.unit, Path: t.nodes[id].QualifiedName, Err: ErrParentCycle}
		}
	}

	return nil
}

func (t *Tree) checkNode(id NodeID, seen map[NodeID]bool, identities map[identityKey]bool) error {
	n := t.Node(id)
	fail := func(err error) error {
		return &ValidationError{Unit: t.unit, Path: n.QualifiedName, Err: err}
	}

	if seen[id] {
		return fail(ErrParentCycle)
	}

	seen[id] = true

	if err := t.checkIdentity(id, identities); err != nil {
		return err
	}

	siblings := make(map[siblingKey]bool, len(n.Children))

	for _, cid := range n.Children {
		child := t.Node(cid)
		if child == nil {
			return fail(ErrDanglingParent)
		}

		childFail := func(err error) error {
			return &ValidationError{Unit: t.unit, Path: child.QualifiedName, Err: err}
		}

		if child.Parent != id {
			return childFail(ErrParentMismatch)
		}

		if !n.Kind.AllowsChild(child.Kind) {
			return childFail(fmt.Errorf("%w: %s under %s", ErrDisallowedChild, child.Kind, n.Kind))
		}

		sk := siblingKey{kind: child.Kind, arity: child.Arity, ordinal: child.Ordinal}
		if siblings[sk] {
			return childFail(ErrDuplicateOrdinal)
		}

		siblings[sk] = true
	}

	return nil
}

func (t *Tree) checkIdentity(id NodeID, identities map[identityKey]bool) error {
	n := &t.nodes[id]
	if n.Kind == KindInvalid || int(n.Kind) >= KindTotal {
		return &ValidationError{Unit: t.unit, Path: n.QualifiedName, Err: ErrInvalidKind}
	}

	ik := identityKey{kind: n.Kind, name: n.QualifiedName, signature: n.Signature}
	if identities[ik] {
		return &ValidationError{Unit: t.unit, Path: n.QualifiedName, Err: ErrDuplicateIdentity}
	}

	identities[ik] = true

	return nil
}
