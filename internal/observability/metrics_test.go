package observability

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source-irfitter/internal/engine"
	"source-irfitter/internal/match"
	"source-irfitter/internal/symtree"
)

func TestMetricsTextfile(t *testing.T) {
	m := NewMetrics()

	m.RecordJob("p.A", 3*time.Millisecond, nil)
	m.RecordJob("p.B", time.Millisecond, nil)
	m.RecordFailure("Broken.class", engine.SideIR)
	m.RecordResult([]match.Record{
		{Confidence: match.ConfidenceExact},
		{Confidence: match.ConfidenceExact, Ambiguous: true},
		{Confidence: match.ConfidenceNone},
	})

	path := filepath.Join(t.TempDir(), "irfitter.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "irfitter_jobs_total 2")
	assert.Contains(t, out, `irfitter_records_total{confidence="exact"} 2`)
	assert.Contains(t, out, `irfitter_records_total{confidence="none"} 1`)
	assert.Contains(t, out, `irfitter_records_total{confidence="heuristic"} 0`)
	assert.Contains(t, out, "irfitter_ambiguous_records_total 1")
	assert.Contains(t, out, `irfitter_unit_failures_total{side="ir"} 1`)
	assert.Contains(t, out, "irfitter_job_duration_seconds_count 2")
}

func TestMetricsAsRecorder(t *testing.T) {
	b := symtree.NewBuilder("A.java")
	pkg := b.Add(symtree.NoNode, symtree.NodeSpec{Kind: symtree.KindPackage, Name: "p"})
	b.Add(pkg, symtree.NodeSpec{Kind: symtree.KindType, Name: "A"})
	b.Add(pkg, symtree.NodeSpec{Kind: symtree.KindType, Name: "B"})
	tree, err := b.Build()
	require.NoError(t, err)

	m := NewMetrics()

	cfg := engine.DefaultConfig()
	cfg.Recorder = m

	res, err := engine.Run(context.Background(), []*symtree.Tree{tree}, []*symtree.Tree{tree, nil}, cfg)
	require.NoError(t, err)
	require.Len(t, res.Records, 3)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, f := range families {
		counts[f.GetName()] = len(f.GetMetric())
	}

	assert.Equal(t, len(match.AllConfidences), counts["irfitter_records_total"])
	assert.Equal(t, 1, counts["irfitter_unit_failures_total"])
	assert.Equal(t, 1, counts["irfitter_jobs_total"])
}
