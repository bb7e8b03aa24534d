package treefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"source-irfitter/internal/normalize"
	"source-irfitter/internal/symtree"
)

type ordinalKey struct {
	kind  symtree.Kind
	arity int
}

// FromTree converts a tree into its document form. Fields that Build would
// derive to the same value are omitted.
func FromTree(t *symtree.Tree) *File {
	f := &File{Unit: t.Unit()}
	if t.Root().IsValid() {
		f.Root = fromNode(t, t.Root(), "", nil)
	}

	return f
}

func fromNode(t *symtree.Tree, id symtree.NodeID, parentQN string, vars normalize.Scope) Node {
	n := t.Node(id)

	out := Node{
		Kind:      n.Kind.String(),
		Name:      n.Name,
		Signature: n.Signature,
		Flags:     n.Flags.Names(),
		Span:      n.Span.String(),
	}

	derivedQN := n.Name
	if parentQN != "" {
		derivedQN = parentQN + "." + n.Name
	}

	if n.QualifiedName != derivedQN {
		out.QualifiedName = n.QualifiedName
	}

	for _, tp := range n.TypeParams {
		out.TypeParams = append(out.TypeParams, TypeParam{Name: tp.Name, Bound: tp.Bound})
	}

	vars = extend(vars, n.TypeParams)

	derivedArity := 0
	if n.Kind.IsCallable() {
		derivedArity = signatureArity(n.Signature, vars)
	}

	if n.Arity != derivedArity {
		arity := n.Arity
		out.Arity = &arity
	}

	counters := make(map[ordinalKey]int)

	for _, child := range t.Children(id) {
		c := fromNode(t, child, n.QualifiedName, vars)

		cn := t.Node(child)
		key := ordinalKey{kind: cn.Kind, arity: cn.Arity}

		if cn.Ordinal != counters[key] {
			ordinal := cn.Ordinal
			c.Ordinal = &ordinal
		}

		counters[key] = max(counters[key], cn.Ordinal) + 1

		out.Children = append(out.Children, c)
	}

	return out
}

// Marshal serializes a tree to YAML.
func Marshal(t *symtree.Tree) ([]byte, error) {
	return yaml.Marshal(FromTree(t))
}

// WriteFile writes a tree document to the given path.
func WriteFile(t *symtree.Tree, path string) error {
	data, err := Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tree file %s: %w", path, err)
	}

	return nil
}
