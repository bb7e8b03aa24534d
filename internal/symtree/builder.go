package symtree

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// ErrEmptyTree is returned when a tree has no nodes.
var ErrEmptyTree = errors.New("tree has no nodes")

// NodeSpec describes a node to add to a Builder.
type NodeSpec struct {
	Kind Kind
	Name string
	// QualifiedName defaults to the parent's qualified name plus Name.
	QualifiedName string
	Signature     string
	Flags         Flags
	Span          Span
	Arity         int
	TypeParams    []TypeParam
	// Ordinal overrides the automatically assigned sibling ordinal.
	Ordinal *int
}

type ordinalKey struct {
	parent NodeID
	kind   Kind
	arity  int
}

// Builder assembles a Tree in declaration order.
type Builder struct {
	unit     string
	nodes    []Node
	root     NodeID
	counters map[ordinalKey]int
	err      error
}

// NewBuilder creates a builder for the named compilation unit.
func NewBuilder(unit string) *Builder {
	return &Builder{
		unit:     unit,
		nodes:    make([]Node, 1, 64), // index 0 reserved for NoNode
		counters: make(map[ordinalKey]int),
	}
}

// Add appends a node under parent (NoNode for the root) and returns its ID.
// Errors are sticky and reported by Build.
func (b *Builder) Add(parent NodeID, spec NodeSpec) NodeID {
	if b.err != nil {
		return NoNode
	}

	value, err := safecast.Conv[uint32](len(b.nodes))
	if err != nil {
		b.err = fmt.Errorf("symtree arena overflow: %w", err)

		return NoNode
	}

	id := NodeID(value)

	var parentQN string

	switch {
	case !parent.IsValid() && b.root.IsValid():
		b.err = fmt.Errorf("%s: second root %q", b.unit, spec.Name)

		return NoNode
	case !parent.IsValid():
		b.root = id
	case int(parent) >= len(b.nodes):
		b.err = fmt.Errorf("%s: unknown parent %d for %q", b.unit, parent, spec.Name)

		return NoNode
	default:
		parentQN = b.nodes[parent].QualifiedName
	}

	qn := spec.QualifiedName
	if qn == "" {
		qn = spec.Name
		if parentQN != "" {
			qn = parentQN + "." + spec.Name
		}
	}

	key := ordinalKey{parent: parent, kind: spec.Kind, arity: spec.Arity}

	ordinal := b.counters[key]
	if spec.Ordinal != nil {
		ordinal = *spec.Ordinal
	}

	b.counters[key] = max(b.counters[key], ordinal) + 1

	b.nodes = append(b.nodes, Node{
		ID:            id,
		Kind:          spec.Kind,
		Name:          spec.Name,
		QualifiedName: qn,
		Signature:     spec.Signature,
		Flags:         spec.Flags,
		Span:          spec.Span,
		Ordinal:       ordinal,
		Arity:         spec.Arity,
		TypeParams:    spec.TypeParams,
		Parent:        parent,
	})

	if parent.IsValid() {
		b.nodes[parent].Children = append(b.nodes[parent].Children, id)
	}

	return id
}

// Build finalizes the tree and builds its lookup index.
func (b *Builder) Build() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}

	if !b.root.IsValid() {
		return nil, fmt.Errorf("%s: %w", b.unit, ErrEmptyTree)
	}

	t := newTree(b.unit, b.nodes, b.root)
	b.nodes = nil

	return t, nil
}

// FromNodes builds a tree from a flat parent-linked table, as emitted by
// decoders. Node i of the slice receives ID i+1; Parent fields refer to those
// IDs and Children are rebuilt from them in slice order. Structural problems
// such as parent cycles are left for Validate to report.
func FromNodes(unit string, flat []Node) (*Tree, error) {
	if len(flat) == 0 {
		return nil, fmt.Errorf("%s: %w", unit, ErrEmptyTree)
	}

	if _, err := safecast.Conv[uint32](len(flat)); err != nil {
		return nil, fmt.Errorf("symtree arena overflow: %w", err)
	}

	nodes := make([]Node, len(flat)+1)
	root := NoNode

	for i := range flat {
		n := flat[i]
		n.ID = NodeID(i + 1) //nolint:gosec // bounded by the Conv check above
		n.Children = nil
		nodes[i+1] = n
	}

	for i := 1; i < len(nodes); i++ {
		n := &nodes[i]

		switch {
		case !n.Parent.IsValid():
			if !root.IsValid() {
				root = n.ID
			}
		case int(n.Parent) < len(nodes):
			nodes[n.Parent].Children = append(nodes[n.Parent].Children, n.ID)
		}
	}

	return newTree(unit, nodes, root), nil
}
