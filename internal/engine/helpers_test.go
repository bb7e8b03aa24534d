package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"source-irfitter/internal/match"
	"source-irfitter/internal/symtree"
)

type (
	spec  = symtree.NodeSpec
	nodes map[string]symtree.NodeID
)

// build assembles a tree; add registers nodes under a handle for lookups.
func build(t *testing.T, unit string, fill func(add func(handle string, parent symtree.NodeID, s spec) symtree.NodeID)) (*symtree.Tree, nodes) {
	t.Helper()

	b := symtree.NewBuilder(unit)
	ids := make(nodes)

	fill(func(handle string, parent symtree.NodeID, s spec) symtree.NodeID {
		id := b.Add(parent, s)
		ids[handle] = id

		return id
	})

	tree, err := b.Build()
	require.NoError(t, err)

	return tree, ids
}

func run(t *testing.T, sources, irs []*symtree.Tree, mutate ...func(*Config)) *Result {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Jobs = 2

	for _, fn := range mutate {
		fn(&cfg)
	}

	res, err := Run(context.Background(), sources, irs, cfg)
	require.NoError(t, err)

	return res
}

func recordFor(t *testing.T, res *Result, tree *symtree.Tree, id symtree.NodeID) match.Record {
	t.Helper()

	for _, r := range res.Records {
		if r.IR.Tree == tree && r.IR.ID == id {
			return r
		}
	}

	require.Failf(t, "missing record", "no record for %s", symtree.Ref{Tree: tree, ID: id})

	return match.Record{}
}

func lines(start, end int) symtree.Span { return symtree.LineSpan(start, end) }
