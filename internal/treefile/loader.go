package treefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"source-irfitter/internal/normalize"
	"source-irfitter/internal/symtree"
)

// ErrInvalidNode reports a node the document cannot describe.
var ErrInvalidNode = errors.New("invalid node")

// LoadFile loads a tree document. The file name is the unit when the
// document does not name one.
func LoadFile(path string) (*symtree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file %s: %w", path, err)
	}

	tree, err := Parse(data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tree, nil
}

// Parse decodes a tree document. defaultUnit is used when the document has
// no unit field.
func Parse(data []byte, defaultUnit string) (*symtree.Tree, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tree YAML: %w", err)
	}

	if f.Unit == "" {
		f.Unit = defaultUnit
	}

	return Build(&f)
}

// Build converts a decoded document into a tree.
func Build(f *File) (*symtree.Tree, error) {
	b := symtree.NewBuilder(f.Unit)

	err := add(b, symtree.NoNode, &f.Root, "root", nil)
	if err != nil {
		return nil, err
	}

	return b.Build()
}

func add(b *symtree.Builder, parent symtree.NodeID, n *Node, path string, vars normalize.Scope) error {
	spec, err := nodeSpec(n, path, vars)
	if err != nil {
		return err
	}

	id := b.Add(parent, spec)
	if !id.IsValid() {
		// The builder reports its own error from Build.
		return nil
	}

	if len(spec.TypeParams) > 0 {
		vars = extend(vars, spec.TypeParams)
	}

	for i := range n.Children {
		err := add(b, id, &n.Children[i], fmt.Sprintf("%s.children[%d]", path, i), vars)
		if err != nil {
			return err
		}
	}

	return nil
}

func nodeSpec(n *Node, path string, vars normalize.Scope) (symtree.NodeSpec, error) {
	kind, err := symtree.ParseKind(n.Kind)
	if err != nil {
		return symtree.NodeSpec{}, fmt.Errorf("%s: %w: %w", path, ErrInvalidNode, err)
	}

	if n.Name == "" {
		return symtree.NodeSpec{}, fmt.Errorf("%s: %w: missing name", path, ErrInvalidNode)
	}

	flags, err := symtree.ParseFlags(n.Flags)
	if err != nil {
		return symtree.NodeSpec{}, fmt.Errorf("%s: %w: %w", path, ErrInvalidNode, err)
	}

	span, err := symtree.ParseSpan(n.Span)
	if err != nil {
		return symtree.NodeSpec{}, fmt.Errorf("%s: %w: %w", path, ErrInvalidNode, err)
	}

	spec := symtree.NodeSpec{
		Kind:          kind,
		Name:          n.Name,
		QualifiedName: n.QualifiedName,
		Signature:     n.Signature,
		Flags:         flags,
		Span:          span,
		Ordinal:       n.Ordinal,
	}

	for _, tp := range n.TypeParams {
		spec.TypeParams = append(spec.TypeParams, symtree.TypeParam{Name: tp.Name, Bound: tp.Bound})
	}

	if n.Arity != nil {
		spec.Arity = *n.Arity
	} else if kind.IsCallable() {
		spec.Arity = signatureArity(n.Signature, extend(vars, spec.TypeParams))
	}

	return spec, nil
}

// signatureArity counts the parameters of a raw signature; undecodable
// signatures count as zero.
func signatureArity(raw string, vars normalize.Scope) int {
	canonical, err := normalize.Signature(raw, vars)
	if err != nil {
		return 0
	}

	return len(normalize.Params(canonical))
}

func extend(vars normalize.Scope, params []symtree.TypeParam) normalize.Scope {
	if len(params) == 0 {
		return vars
	}

	scope := make(normalize.Scope, len(vars)+len(params))
	for name, bound := range vars {
		scope[name] = bound
	}

	for _, tp := range params {
		scope[tp.Name] = tp.Bound
	}

	return scope
}
