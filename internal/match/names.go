package match

import (
	"strings"
	"unicode"

	"source-irfitter/internal/symtree"
)

// Well-known JVM member names.
const (
	ConstructorName       = "<init>"
	StaticInitializerName = "<clinit>"
)

// DecodeLambda extracts the enclosing method name from a lambda-backing
// method name. It understands javac ("lambda$run$0", "lambda$new$1",
// "lambda$static$2") and Kotlin ("run$lambda$0", "run$lambda-0") forms.
func DecodeLambda(name string) (string, bool) {
	if rest, ok := strings.CutPrefix(name, "lambda$"); ok {
		enclosing, _, found := strings.Cut(rest, "$")
		if !found || enclosing == "" {
			return "", false
		}

		switch enclosing {
		case "new":
			return ConstructorName, true
		case "static":
			return StaticInitializerName, true
		default:
			return enclosing, true
		}
	}

	if idx := strings.Index(name, "$lambda"); idx > 0 {
		suffix := strings.TrimLeft(name[idx+len("$lambda"):], "$-")
		if suffix == "" || isDigits(suffix) {
			return name[:idx], true
		}
	}

	return "", false
}

// IsUnstable reports whether the node's name is compiler-chosen, so it cannot
// be matched by name.
func IsUnstable(n *symtree.Node) bool {
	switch n.Kind {
	case symtree.KindAnonymousUnit:
		return true
	case symtree.KindMethod:
		if n.Flags.Has(symtree.FlagBridge) {
			return false
		}

		return n.Flags.Has(symtree.FlagSynthetic) || n.Flags.Has(symtree.FlagGeneratedAccessor) ||
			isGeneratedMemberName(n.Name)
	case symtree.KindType:
		return n.Flags.Has(symtree.FlagSynthetic) || isAnonymousTypeName(n.Name)
	case symtree.KindField, symtree.KindLocalVariable:
		return n.Flags.Has(symtree.FlagSynthetic) || isGeneratedMemberName(n.Name)
	case symtree.KindPackage, symtree.KindInvalid:
		return false
	default:
		return false
	}
}

// isGeneratedMemberName matches "lambda$run$0", "access$000", "this$0" and
// similar; constructor names are stable.
func isGeneratedMemberName(name string) bool {
	return strings.ContainsRune(name, '$')
}

// isAccessor reports a generated accessor such as "access$000", which
// stands for a member rather than a body.
func isAccessor(n *symtree.Node) bool {
	return n.Kind == symtree.KindMethod &&
		(n.Flags.Has(symtree.FlagGeneratedAccessor) || strings.HasPrefix(n.Name, "access$"))
}

// isAnonymousTypeName matches "Foo$1" and local classes like "Foo$1Local".
func isAnonymousTypeName(name string) bool {
	idx := strings.LastIndexByte(name, '$')
	if idx < 0 || idx == len(name)-1 {
		return false
	}

	return unicode.IsDigit(rune(name[idx+1]))
}

// canCapture reports whether the IR node may carry captured values ahead of
// its source parameters.
func canCapture(n *symtree.Node) bool {
	switch n.Kind {
	case symtree.KindAnonymousUnit:
		return true
	case symtree.KindMethod:
		if n.Name == ConstructorName {
			return true
		}

		_, lambda := DecodeLambda(n.Name)

		return lambda || n.Flags.Has(symtree.FlagSynthetic)
	case symtree.KindPackage, symtree.KindType, symtree.KindField, symtree.KindLocalVariable, symtree.KindInvalid:
		return false
	default:
		return false
	}
}

// kindCompatible reports whether a Source node of kind src may stand for the
// IR node n.
func kindCompatible(n *symtree.Node, src symtree.Kind) bool {
	switch n.Kind {
	case symtree.KindType, symtree.KindAnonymousUnit:
		return src == symtree.KindType || src == symtree.KindAnonymousUnit
	case symtree.KindMethod:
		return src == symtree.KindMethod || (src == symtree.KindAnonymousUnit && IsUnstable(n) && !isAccessor(n))
	case symtree.KindField, symtree.KindLocalVariable, symtree.KindPackage:
		return src == n.Kind
	case symtree.KindInvalid:
		return false
	default:
		return false
	}
}

// arityCompatible checks the arity class; callables that capture may have
// more IR parameters than source parameters.
func arityCompatible(ir, src *symtree.Node) bool {
	if !ir.Kind.IsCallable() || !src.Kind.IsCallable() {
		return true
	}

	if ir.Arity == src.Arity {
		return true
	}

	return ir.Arity > src.Arity && canCapture(ir)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return s != ""
}
