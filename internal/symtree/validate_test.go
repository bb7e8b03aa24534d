package symtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	tree, ids := sampleTree(t)

	require.NoError(t, tree.ValidateTree())
	require.NoError(t, tree.Validate(ids.anon))
}

func TestValidateProblems(t *testing.T) {
	zero := 0

	tests := []struct {
		name  string
		build func(b *Builder)
		want  error
		path  string
	}{
		{
			name: "disallowed child",
			build: func(b *Builder) {
				root := b.Add(NoNode, NodeSpec{Kind: KindPackage, Name: "pkg"})
				b.Add(root, NodeSpec{Kind: KindField, Name: "f"})
			},
			want: ErrDisallowedChild,
			path: "pkg.f",
		},
		{
			name: "duplicate ordinal",
			build: func(b *Builder) {
				root := b.Add(NoNode, NodeSpec{Kind: KindType, Name: "T"})
				b.Add(root, NodeSpec{Kind: KindMethod, Name: "a", Ordinal: &zero})
				b.Add(root, NodeSpec{Kind: KindMethod, Name: "b", Ordinal: &zero})
			},
			want: ErrDuplicateOrdinal,
			path: "T.b",
		},
		{
			name: "duplicate identity",
			build: func(b *Builder) {
				root := b.Add(NoNode, NodeSpec{Kind: KindType, Name: "T"})
				b.Add(root, NodeSpec{Kind: KindMethod, Name: "m", Signature: "(int)", Arity: 1})
				b.Add(root, NodeSpec{Kind: KindMethod, Name: "m", Signature: "(int)", Arity: 1})
			},
			want: ErrDuplicateIdentity,
			path: "T.m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder("u")
			tt.build(b)

			tree, err := b.Build()
			require.NoError(t, err)

			err = tree.ValidateTree()
			require.ErrorIs(t, err, tt.want)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.path, verr.Path)
			assert.Equal(t, "u", verr.Unit)
		})
	}
}

func TestValidateTreeFlagsDetachedNodes(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		tree, err := FromNodes("u", []Node{
			{Kind: KindPackage, Name: "pkg", QualifiedName: "pkg"},
			{Kind: KindType, Name: "A", QualifiedName: "pkg.A", Parent: 3},
			{Kind: KindType, Name: "B", QualifiedName: "pkg.B", Parent: 2},
		})
		require.NoError(t, err)

		err = tree.ValidateTree()
		require.ErrorIs(t, err, ErrParentCycle)

		err = tree.Validate(2)
		require.ErrorIs(t, err, ErrParentCycle)
	})

	t.Run("dangling parent", func(t *testing.T) {
		tree, err := FromNodes("u", []Node{
			{Kind: KindPackage, Name: "pkg", QualifiedName: "pkg"},
			{Kind: KindType, Name: "A", QualifiedName: "pkg.A", Parent: 9},
		})
		require.NoError(t, err)

		require.ErrorIs(t, tree.ValidateTree(), ErrUnreachable)
		require.ErrorIs(t, tree.Validate(2), ErrDanglingParent)
	})

	t.Run("invalid kind", func(t *testing.T) {
		tree, err := FromNodes("u", []Node{{Name: "x", QualifiedName: "x"}})
		require.NoError(t, err)

		require.ErrorIs(t, tree.ValidateTree(), ErrInvalidKind)
	})
}

func TestValidateSkeletonLeavesTypesToValidate(t *testing.T) {
	zero := 0

	b := NewBuilder("Unit.class")
	pkg := b.Add(NoNode, NodeSpec{Kind: KindPackage, Name: "pkg"})
	good := b.Add(pkg, NodeSpec{Kind: KindType, Name: "Good"})
	b.Add(good, NodeSpec{Kind: KindField, Name: "f", Signature: "I"})
	bad := b.Add(pkg, NodeSpec{Kind: KindType, Name: "Bad"})
	b.Add(bad, NodeSpec{Kind: KindMethod, Name: "a", Ordinal: &zero})
	b.Add(bad, NodeSpec{Kind: KindMethod, Name: "b", Ordinal: &zero})

	tree, err := b.Build()
	require.NoError(t, err)

	require.NoError(t, tree.ValidateSkeleton())
	require.NoError(t, tree.Validate(good))
	require.ErrorIs(t, tree.Validate(bad), ErrDuplicateOrdinal)
	require.ErrorIs(t, tree.ValidateTree(), ErrDuplicateOrdinal)
}

func TestValidateSkeletonProblems(t *testing.T) {
	t.Run("member under a package", func(t *testing.T) {
		b := NewBuilder("u")
		pkg := b.Add(NoNode, NodeSpec{Kind: KindPackage, Name: "pkg"})
		b.Add(pkg, NodeSpec{Kind: KindMethod, Name: "m"})

		tree, err := b.Build()
		require.NoError(t, err)
		require.ErrorIs(t, tree.ValidateSkeleton(), ErrDisallowedChild)
	})

	t.Run("duplicate top-level type", func(t *testing.T) {
		b := NewBuilder("u")
		pkg := b.Add(NoNode, NodeSpec{Kind: KindPackage, Name: "pkg"})
		b.Add(pkg, NodeSpec{Kind: KindType, Name: "A"})
		b.Add(pkg, NodeSpec{Kind: KindType, Name: "A"})

		tree, err := b.Build()
		require.NoError(t, err)
		require.ErrorIs(t, tree.ValidateSkeleton(), ErrDuplicateIdentity)
	})

	t.Run("cycle", func(t *testing.T) {
		tree, err := FromNodes("u", []Node{
			{Kind: KindPackage, Name: "pkg", QualifiedName: "pkg"},
			{Kind: KindType, Name: "A", QualifiedName: "pkg.A", Parent: 3},
			{Kind: KindType, Name: "B", QualifiedName: "pkg.B", Parent: 2},
		})
		require.NoError(t, err)
		require.ErrorIs(t, tree.ValidateSkeleton(), ErrParentCycle)
	})
}
