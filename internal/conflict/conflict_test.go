package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source-irfitter/internal/match"
	"source-irfitter/internal/symtree"
)

type fixture struct {
	src, ir                   *symtree.Tree
	srcPkg, srcType, srcField symtree.NodeID
	irPkg, irA, irB, irField  symtree.NodeID
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	var f fixture

	sb := symtree.NewBuilder("src")
	f.srcPkg = sb.Add(symtree.NoNode, symtree.NodeSpec{Kind: symtree.KindPackage, Name: "p"})
	f.srcType = sb.Add(f.srcPkg, symtree.NodeSpec{Kind: symtree.KindType, Name: "A"})
	f.srcField = sb.Add(f.srcType, symtree.NodeSpec{Kind: symtree.KindField, Name: "x"})

	src, err := sb.Build()
	require.NoError(t, err)

	ib := symtree.NewBuilder("ir")
	f.irPkg = ib.Add(symtree.NoNode, symtree.NodeSpec{Kind: symtree.KindPackage, Name: "p"})
	f.irA = ib.Add(f.irPkg, symtree.NodeSpec{Kind: symtree.KindType, Name: "A"})
	f.irB = ib.Add(f.irPkg, symtree.NodeSpec{Kind: symtree.KindType, Name: "B"})
	f.irField = ib.Add(f.irB, symtree.NodeSpec{Kind: symtree.KindField, Name: "x"})

	ir, err := ib.Build()
	require.NoError(t, err)

	f.src, f.ir = src, ir

	return f
}

func (f fixture) record(ir, src symtree.NodeID, c match.Confidence) match.Record {
	r := match.Record{IR: symtree.Ref{Tree: f.ir, ID: ir}, Confidence: c}
	if src.IsValid() {
		r.Source = symtree.Ref{Tree: f.src, ID: src}
	}

	return r
}

func TestResolveFlagsLaterClaimsAndInheritsBelowTypes(t *testing.T) {
	f := newFixture(t)

	records := []match.Record{
		f.record(f.irPkg, f.srcPkg, match.ConfidenceExact),
		f.record(f.irA, f.srcType, match.ConfidenceExact),
		f.record(f.irB, f.srcType, match.ConfidencePositional),
		f.record(f.irField, f.srcField, match.ConfidenceExact),
	}

	flagged := Resolve(records)

	assert.Equal(t, 2, flagged)
	assert.False(t, records[0].Ambiguous)
	assert.False(t, records[1].Ambiguous)
	assert.True(t, records[2].Ambiguous)
	assert.True(t, records[3].Ambiguous, "member of an ambiguous type pairing")

	assert.Equal(t, match.ConfidencePositional, records[2].Confidence)
	assert.Equal(t, f.srcType, records[2].Source.ID)
}

func TestResolveIgnoresPackagesAndUnmatched(t *testing.T) {
	f := newFixture(t)

	records := []match.Record{
		f.record(f.irPkg, f.srcPkg, match.ConfidenceExact),
		f.record(f.irA, symtree.NoNode, match.ConfidenceNone),
		f.record(f.irB, symtree.NoNode, match.ConfidenceNone),
	}

	assert.Equal(t, 0, Resolve(records))

	for _, r := range records {
		assert.False(t, r.Ambiguous)
	}
}
