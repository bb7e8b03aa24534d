package match

import (
	"sort"

	"source-irfitter/internal/normalize"
	"source-irfitter/internal/symtree"
)

// MinSuggestionScore is the combined score below which a candidate is not
// worth suggesting.
const MinSuggestionScore = 0.4

// Suggestion is a possible Source counterpart for an unmatched IR node.
type Suggestion struct {
	Source symtree.Ref

	// Scoring components
	NameScore      float64                 // normalized Levenshtein similarity (0-1)
	SignatureMatch normalize.Compatibility // parameter or type compatibility

	// Combined score for ranking (higher is better)
	CombinedScore float64
}

// SuggestionList is a ranked list of suggestions.
type SuggestionList []Suggestion

// RankSuggestions scores candidates for an IR node by name similarity and
// signature compatibility. Returns candidates sorted by combined score
// (descending).
func RankSuggestions(ir *symtree.Node, candidates []symtree.Ref) SuggestionList {
	out := make(SuggestionList, 0, len(candidates))

	for _, ref := range candidates {
		s := ref.Node()
		nameScore := NameSimilarity(ir.Name, s.Name)
		compat := signatureMatch(ir, s)

		out = append(out, Suggestion{
			Source:         ref,
			NameScore:      nameScore,
			SignatureMatch: compat,
			CombinedScore:  combinedScore(nameScore, compat),
		})
	}

	sort.Sort(out)

	return out
}

func signatureMatch(ir, src *symtree.Node) normalize.Compatibility {
	switch ir.Kind {
	case symtree.KindMethod, symtree.KindAnonymousUnit:
		return normalize.CompareParams(
			normalize.Params(ir.CanonicalSignature),
			normalize.Params(src.CanonicalSignature))
	case symtree.KindField, symtree.KindLocalVariable:
		return normalize.Compare(ir.CanonicalSignature, src.CanonicalSignature)
	case symtree.KindType, symtree.KindPackage:
		return normalize.Identical
	case symtree.KindInvalid:
		return normalize.Incompatible
	default:
		return normalize.Incompatible
	}
}

// combinedScore weights name similarity at 60% and signature agreement at
// 40%.
func combinedScore(nameScore float64, compat normalize.Compatibility) float64 {
	const (
		nameWeight      = 0.6
		signatureWeight = 0.4
	)

	var sigScore float64

	switch compat {
	case normalize.Identical:
		sigScore = 1.0
	case normalize.Erased:
		sigScore = 0.7
	case normalize.Incompatible:
		sigScore = 0.0
	}

	return nameScore*nameWeight + sigScore*signatureWeight
}

// Len implements sort.Interface.
func (l SuggestionList) Len() int { return len(l) }

// Swap implements sort.Interface.
func (l SuggestionList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less orders by combined score descending, then by qualified name and
// declaration order for determinism.
func (l SuggestionList) Less(i, j int) bool {
	if l[i].CombinedScore != l[j].CombinedScore {
		return l[i].CombinedScore > l[j].CombinedScore
	}

	a, b := l[i].Source.Node(), l[j].Source.Node()
	if a.QualifiedName != b.QualifiedName {
		return a.QualifiedName < b.QualifiedName
	}

	return a.ID < b.ID
}

// Top returns the first n suggestions.
func (l SuggestionList) Top(n int) SuggestionList {
	if n >= len(l) {
		return l
	}

	return l[:n]
}

// Best returns the best suggestion, or nil.
func (l SuggestionList) Best() *Suggestion {
	if len(l) == 0 {
		return nil
	}

	return &l[0]
}

// AboveThreshold returns suggestions whose combined score reaches threshold.
func (l SuggestionList) AboveThreshold(threshold float64) SuggestionList {
	var out SuggestionList

	for _, s := range l {
		if s.CombinedScore >= threshold {
			out = append(out, s)
		}
	}

	return out
}
