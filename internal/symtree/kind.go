package symtree

import "fmt"

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the closed set of symbol node kinds.
type Kind uint8

const (
	KindInvalid       Kind = iota // invalid
	KindPackage                   // package
	KindType                      // type
	KindMethod                    // method
	KindField                     // field
	KindAnonymousUnit             // anonymous
	KindLocalVariable             // local

	// KindTotal is the number of kinds including KindInvalid.
	KindTotal = int(iota)
)

// ParseKind converts the textual kind name used in tree files.
func ParseKind(s string) (Kind, error) {
	for k := KindPackage; int(k) < KindTotal; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return KindInvalid, fmt.Errorf("unknown node kind %q", s)
}

// IsCallable reports whether nodes of this kind carry a parameter list.
func (k Kind) IsCallable() bool {
	switch k {
	case KindMethod, KindAnonymousUnit:
		return true
	case KindInvalid, KindPackage, KindType, KindField, KindLocalVariable:
		return false
	default:
		return false
	}
}

// IsScope reports whether nodes of this kind own a matching scope.
func (k Kind) IsScope() bool {
	switch k {
	case KindPackage, KindType, KindMethod, KindField, KindAnonymousUnit:
		return true
	case KindInvalid, KindLocalVariable:
		return false
	default:
		return false
	}
}

// AllowsChild reports whether a node of kind k may contain a child of kind c.
func (k Kind) AllowsChild(c Kind) bool {
	switch k {
	case KindPackage:
		return c == KindPackage || c == KindType
	case KindType:
		return c == KindType || c == KindMethod || c == KindField || c == KindAnonymousUnit
	case KindMethod:
		return c == KindAnonymousUnit || c == KindLocalVariable || c == KindType
	case KindField:
		return c == KindAnonymousUnit
	case KindAnonymousUnit:
		return c == KindAnonymousUnit || c == KindLocalVariable || c == KindMethod ||
			c == KindField || c == KindType
	case KindInvalid, KindLocalVariable:
		return false
	default:
		return false
	}
}
