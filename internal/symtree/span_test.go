package symtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanContainsLine(t *testing.T) {
	s := LineSpan(10, 12)

	assert.False(t, s.ContainsLine(9))
	assert.True(t, s.ContainsLine(10))
	assert.True(t, s.ContainsLine(12))
	assert.False(t, s.ContainsLine(13))
	assert.False(t, Span{}.ContainsLine(0))
}

func TestSpanContains(t *testing.T) {
	outer := Span{StartLine: 10, StartColumn: 5, EndLine: 20, EndColumn: 2}

	assert.True(t, outer.Contains(LineSpan(11, 19)))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(Span{StartLine: 10, StartColumn: 1, EndLine: 11}))
	assert.False(t, outer.Contains(LineSpan(9, 11)))
	assert.False(t, outer.Contains(Span{}))
}

func TestSpanLineOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want int
	}{
		{"disjoint", LineSpan(1, 3), LineSpan(5, 8), 0},
		{"touching", LineSpan(1, 5), LineSpan(5, 8), 1},
		{"nested", LineSpan(1, 10), LineSpan(3, 4), 2},
		{"unknown", Span{}, LineSpan(3, 4), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.LineOverlap(tt.b))
			assert.Equal(t, tt.want, tt.b.LineOverlap(tt.a))
		})
	}
}

func TestParseSpan(t *testing.T) {
	tests := []struct {
		text string
		want Span
	}{
		{"", Span{}},
		{"10", LineSpan(10, 10)},
		{"10-12", LineSpan(10, 12)},
		{"10:5-12:6", Span{StartLine: 10, StartColumn: 5, EndLine: 12, EndColumn: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseSpan(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"x", "12-10", "3:a-4"} {
		_, err := ParseSpan(bad)
		assert.Error(t, err, bad)
	}
}

func TestSpanString(t *testing.T) {
	assert.Equal(t, "", Span{}.String())
	assert.Equal(t, "10-12", LineSpan(10, 12).String())
	assert.Equal(t, "10:5-12:6", Span{StartLine: 10, StartColumn: 5, EndLine: 12, EndColumn: 6}.String())
}
