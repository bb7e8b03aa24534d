package gosource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source-irfitter/internal/normalize"
	"source-irfitter/internal/symtree"
)

const shapesPath = "source-irfitter/internal/gosource/testdata/shapes"

func loadShapes(t *testing.T) *symtree.Tree {
	t.Helper()

	trees, err := NewLoader("").LoadPackages("./testdata/shapes")
	require.NoError(t, err)
	require.Len(t, trees, 1)

	return trees[0]
}

func lookupOne(t *testing.T, tree *symtree.Tree, kind symtree.Kind, name string) *symtree.Node {
	t.Helper()

	ids := tree.Lookup(kind, shapesPath+"."+name)
	require.Len(t, ids, 1, name)

	return tree.Node(ids[0])
}

func TestLoadPackages(t *testing.T) {
	tree := loadShapes(t)

	require.NoError(t, tree.ValidateTree())
	assert.Equal(t, shapesPath, tree.Unit())

	root := tree.Node(tree.Root())
	assert.Equal(t, symtree.KindPackage, root.Kind)
	assert.Equal(t, "shapes", root.Name)

	var typeNames []string
	for _, id := range tree.Children(tree.Root()) {
		typeNames = append(typeNames, tree.Node(id).Name)
	}

	assert.Equal(t, []string{"Shape", "Point", "Polygon", "Stack"}, typeNames)
	assert.Empty(t, tree.Lookup(symtree.KindMethod, shapesPath+".NewPolygon"))
}

func TestStructMembers(t *testing.T) {
	tree := loadShapes(t)

	assert.Equal(t, "int", lookupOne(t, tree, symtree.KindField, "Point.X").Signature)
	assert.Equal(t, "shapes.Point", lookupOne(t, tree, symtree.KindField, "Polygon.Point").Signature)
	assert.Equal(t, "shapes.Point[]", lookupOne(t, tree, symtree.KindField, "Polygon.Vertices").Signature)

	name := lookupOne(t, tree, symtree.KindField, "Polygon.name")
	assert.Equal(t, "string", name.Signature)
	assert.Equal(t, 18, name.Span.StartLine)

	polygon := lookupOne(t, tree, symtree.KindType, "Polygon")
	assert.Equal(t, 15, polygon.Span.StartLine)
	assert.Equal(t, 19, polygon.Span.EndLine)

	describe := lookupOne(t, tree, symtree.KindMethod, "Polygon.Describe")
	assert.Equal(t, "(string,string...)", describe.Signature)
	assert.Equal(t, 2, describe.Arity)
	assert.True(t, describe.Flags.Has(symtree.FlagVarargs))
	assert.Equal(t, "string...", lookupOne(t, tree, symtree.KindLocalVariable, "Polygon.Describe.tags").Signature)

	scale := lookupOne(t, tree, symtree.KindMethod, "Shape.Scale")
	assert.Equal(t, "(float64)", scale.Signature)
	assert.Equal(t, 1, scale.Arity)
}

func TestFunctionLiterals(t *testing.T) {
	tree := loadShapes(t)

	each := lookupOne(t, tree, symtree.KindAnonymousUnit, "Polygon.Area.func1")
	assert.Equal(t, "(int,shapes.Point)", each.Signature)
	assert.Equal(t, 2, each.Arity)
	assert.Equal(t, 23, each.Span.StartLine)
	assert.Equal(t, 25, each.Span.EndLine)

	lookupOne(t, tree, symtree.KindLocalVariable, "Polygon.Area.func1.q")

	outer := lookupOne(t, tree, symtree.KindAnonymousUnit, "Polygon.Describe.func1")
	assert.Zero(t, outer.Arity)

	lookupOne(t, tree, symtree.KindAnonymousUnit, "Polygon.Describe.func1.1")
}

func TestGenerics(t *testing.T) {
	tree := loadShapes(t)

	stack := lookupOne(t, tree, symtree.KindType, "Stack")
	assert.Equal(t, []symtree.TypeParam{{Name: "T"}}, stack.TypeParams)
	assert.Equal(t, "T[]", lookupOne(t, tree, symtree.KindField, "Stack.items").Signature)
	assert.Equal(t, "map<string,int>", lookupOne(t, tree, symtree.KindField, "Stack.index").Signature)

	push := lookupOne(t, tree, symtree.KindMethod, "Stack.Push")
	assert.Equal(t, "(E)", push.Signature)
	assert.Equal(t, []symtree.TypeParam{{Name: "E"}}, push.TypeParams)
}

func TestNormalizesCleanly(t *testing.T) {
	tree := loadShapes(t)

	assert.Empty(t, normalize.Tree(tree))

	push := lookupOne(t, tree, symtree.KindMethod, "Stack.Push")
	assert.Equal(t, "(Object)", push.CanonicalSignature)

	vertices := lookupOne(t, tree, symtree.KindField, "Polygon.Vertices")
	assert.Equal(t, "Point[]", vertices.CanonicalSignature)
}

func TestLoadPackagesError(t *testing.T) {
	_, err := NewLoader("").LoadPackages("./testdata/missing")
	require.Error(t, err)
}
