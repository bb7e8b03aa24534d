package match

import "fmt"

// Confidence ranks how a record was produced, strongest first.
type Confidence uint8

const (
	ConfidenceExact Confidence = iota
	ConfidenceDisambiguated
	ConfidenceHeuristic
	ConfidencePositional
	ConfidenceNone
)

var confidenceNames = [...]string{
	ConfidenceExact:         "exact",
	ConfidenceDisambiguated: "disambiguated",
	ConfidenceHeuristic:     "heuristic",
	ConfidencePositional:    "positional",
	ConfidenceNone:          "none",
}

// AllConfidences lists every level in rank order.
var AllConfidences = []Confidence{
	ConfidenceExact,
	ConfidenceDisambiguated,
	ConfidenceHeuristic,
	ConfidencePositional,
	ConfidenceNone,
}

func (c Confidence) String() string {
	if int(c) < len(confidenceNames) {
		return confidenceNames[c]
	}

	return fmt.Sprintf("Confidence(%d)", c)
}

// ParseConfidence converts a confidence name back to its value.
func ParseConfidence(s string) (Confidence, error) {
	for _, c := range AllConfidences {
		if c.String() == s {
			return c, nil
		}
	}

	return ConfidenceNone, fmt.Errorf("unknown confidence %q", s)
}

// Matched reports whether the level implies a Source node.
func (c Confidence) Matched() bool {
	return c < ConfidenceNone
}

// SpanOrigin explains where a record's resolved span came from.
type SpanOrigin uint8

const (
	// SpanNone means no location could be attached.
	SpanNone SpanOrigin = iota
	// SpanOwn is the matched Source node's own span.
	SpanOwn
	// SpanAncestor is borrowed from the nearest matched IR ancestor.
	SpanAncestor
	// SpanDeclaration is the IR type's approximate declaration line.
	SpanDeclaration
)

func (o SpanOrigin) String() string {
	switch o {
	case SpanNone:
		return "none"
	case SpanOwn:
		return "own"
	case SpanAncestor:
		return "ancestor"
	case SpanDeclaration:
		return "declaration"
	default:
		return fmt.Sprintf("SpanOrigin(%d)", o)
	}
}
