package normalize

import "strings"

// Compatibility represents how closely two canonical parameter types agree.
type Compatibility int

const (
	// Incompatible means the types name different classes.
	Incompatible Compatibility = iota
	// Erased means one side is an erased type variable of the same array depth.
	Erased
	// Identical means the canonical types are equal.
	Identical
)

const (
	VerdictIdentical    = "identical"
	VerdictErased       = "erased"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c Compatibility) String() string {
	switch c {
	case Identical:
		return VerdictIdentical
	case Erased:
		return VerdictErased
	case Incompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Compare scores two canonical parameter types.
func Compare(a, b string) Compatibility {
	if a == b {
		return Identical
	}

	if IsOpaque(a) || IsOpaque(b) {
		return Incompatible
	}

	baseA, dimsA := splitArray(a)
	baseB, dimsB := splitArray(b)

	if dimsA == dimsB && (baseA == ErasedType || baseB == ErasedType) {
		return Erased
	}

	return Incompatible
}

// CompareParams scores two parameter lists position by position and returns
// the weakest result.
func CompareParams(ir, src []string) Compatibility {
	if len(ir) != len(src) {
		return Incompatible
	}

	result := Identical
	for i := range ir {
		result = min(result, Compare(ir[i], src[i]))
	}

	return result
}

// CompareShifted scores an IR parameter list that may carry extra leading
// parameters (captured values, an outer instance) against a source list.
// The trailing len(src) IR parameters are compared.
func CompareShifted(ir, src []string) Compatibility {
	if len(ir) < len(src) {
		return Incompatible
	}

	return CompareParams(ir[len(ir)-len(src):], src)
}

func splitArray(t string) (string, int) {
	dims := 0

	for {
		trimmed, ok := strings.CutSuffix(t, "[]")
		if !ok {
			return t, dims
		}

		t = trimmed
		dims++
	}
}
