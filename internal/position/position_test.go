package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source-irfitter/internal/match"
	"source-irfitter/internal/symtree"
)

func TestResolve(t *testing.T) {
	sb := symtree.NewBuilder("src")
	sType := sb.Add(symtree.NoNode, symtree.NodeSpec{Kind: symtree.KindType, Name: "A", Span: symtree.LineSpan(1, 30)})
	sMethod := sb.Add(sType, symtree.NodeSpec{Kind: symtree.KindMethod, Name: "m", Span: symtree.LineSpan(4, 9)})
	sBare := sb.Add(sType, symtree.NodeSpec{Kind: symtree.KindMethod, Name: "bare"})
	src, err := sb.Build()
	require.NoError(t, err)

	ib := symtree.NewBuilder("ir")
	iType := ib.Add(symtree.NoNode, symtree.NodeSpec{Kind: symtree.KindType, Name: "A", Span: symtree.LineSpan(5, 8)})
	iMethod := ib.Add(iType, symtree.NodeSpec{Kind: symtree.KindMethod, Name: "m"})
	iLocal := ib.Add(iMethod, symtree.NodeSpec{Kind: symtree.KindLocalVariable, Name: "v"})
	iBare := ib.Add(iType, symtree.NodeSpec{Kind: symtree.KindMethod, Name: "bare"})
	iBareLocal := ib.Add(iBare, symtree.NodeSpec{Kind: symtree.KindLocalVariable, Name: "w"})
	ir, err := ib.Build()
	require.NoError(t, err)

	ref := func(t *symtree.Tree, id symtree.NodeID) symtree.Ref { return symtree.Ref{Tree: t, ID: id} }

	records := []match.Record{
		{IR: ref(ir, iType), Source: ref(src, sType), Confidence: match.ConfidenceExact},
		{IR: ref(ir, iMethod), Source: ref(src, sMethod), Confidence: match.ConfidenceExact},
		{IR: ref(ir, iLocal), Confidence: match.ConfidenceNone},
		{IR: ref(ir, iBare), Source: ref(src, sBare), Confidence: match.ConfidenceExact},
		{IR: ref(ir, iBareLocal), Confidence: match.ConfidenceNone},
	}

	Resolve(records)

	assert.Equal(t, symtree.LineSpan(1, 30), records[0].ResolvedSpan)
	assert.Equal(t, match.SpanOwn, records[0].SpanOrigin)

	assert.Equal(t, symtree.LineSpan(4, 9), records[2].ResolvedSpan, "nearest matched ancestor")
	assert.Equal(t, match.SpanAncestor, records[2].SpanOrigin)

	// A matched ancestor without a span is skipped.
	assert.Equal(t, symtree.LineSpan(1, 30), records[3].ResolvedSpan)
	assert.Equal(t, match.SpanAncestor, records[3].SpanOrigin)
	assert.Equal(t, symtree.LineSpan(1, 30), records[4].ResolvedSpan)
}

func TestResolveTypeFallbacks(t *testing.T) {
	sb := symtree.NewBuilder("src")
	sType := sb.Add(symtree.NoNode, symtree.NodeSpec{Kind: symtree.KindType, Name: "A"})
	src, err := sb.Build()
	require.NoError(t, err)

	ib := symtree.NewBuilder("ir")
	pkg := ib.Add(symtree.NoNode, symtree.NodeSpec{Kind: symtree.KindPackage, Name: "p"})
	iA := ib.Add(pkg, symtree.NodeSpec{Kind: symtree.KindType, Name: "A", Span: symtree.LineSpan(12, 40)})
	iB := ib.Add(pkg, symtree.NodeSpec{Kind: symtree.KindType, Name: "B", Span: symtree.LineSpan(50, 60)})
	ir, err := ib.Build()
	require.NoError(t, err)

	records := []match.Record{
		{IR: symtree.Ref{Tree: ir, ID: pkg}, Confidence: match.ConfidenceNone},
		{IR: symtree.Ref{Tree: ir, ID: iA}, Source: symtree.Ref{Tree: src, ID: sType}, Confidence: match.ConfidenceExact},
		{IR: symtree.Ref{Tree: ir, ID: iB}, Confidence: match.ConfidenceNone},
	}

	Resolve(records)

	assert.Equal(t, match.SpanNone, records[0].SpanOrigin)
	assert.Equal(t, symtree.LineSpan(12, 12), records[1].ResolvedSpan)
	assert.Equal(t, match.SpanDeclaration, records[1].SpanOrigin)
	assert.True(t, records[2].ResolvedSpan.IsZero())
	assert.Equal(t, match.SpanNone, records[2].SpanOrigin)
}
