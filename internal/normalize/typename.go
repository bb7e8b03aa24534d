package normalize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrOpaqueSignature reports a signature token neither encoding recognizes.
var ErrOpaqueSignature = errors.New("unrecognized signature encoding")

// OpaquePrefix marks canonical values that could not be decoded.
const OpaquePrefix = "opaque:"

// ErasedType is the canonical form of an unbounded type variable.
const ErasedType = "Object"

// Scope maps declared type variable names to their raw upper bound ("" when
// unbounded).
type Scope map[string]string

var primitiveDescriptors = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

// IsOpaque reports whether a canonical value carries the opaque marker.
func IsOpaque(canonical string) bool {
	return strings.HasPrefix(canonical, OpaquePrefix)
}

func opaque(raw string) (string, error) {
	return OpaquePrefix + raw, fmt.Errorf("%w: %q", ErrOpaqueSignature, raw)
}

// Type returns the canonical form of a single source-style or descriptor
// type, as carried by Field and LocalVariable signatures.
func Type(raw string, vars Scope) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}

	// A declared type variable named like a primitive descriptor ("B", "T")
	// is read as source style.
	if _, isVar := vars[s]; !isVar && looksLikeDescriptor(s) {
		if canonical, next, err := parseDescriptor(s, 0, vars); err == nil && next == len(s) {
			return canonical, nil
		}
	}

	canonical, err := sourceType(s, vars)
	if err != nil {
		return opaque(raw)
	}

	return canonical, nil
}

// looksLikeDescriptor accepts "I", "[I", "Ljava/lang/String;" and "TT;".
func looksLikeDescriptor(s string) bool {
	body := strings.TrimLeft(s, "[")
	if body == "" {
		return false
	}

	if len(body) == 1 {
		_, ok := primitiveDescriptors[body[0]]

		return ok && body != "V"
	}

	return (body[0] == 'L' || body[0] == 'T') && strings.HasSuffix(body, ";")
}

// sourceType canonicalizes a source-style type such as
// "final java.util.Map$Entry<K, V>[] entries" or, in Kotlin declaration
// form, "vararg items: List<String>?".
func sourceType(s string, vars Scope) (string, error) {
	for _, r := range s {
		if !isSourceRune(r) {
			return "", fmt.Errorf("unexpected %q", r)
		}
	}

	if decl, typeText, ok := cutDeclaredType(s); ok {
		return kotlinType(decl, typeText, vars)
	}

	erased, err := eraseGenerics(s)
	if err != nil {
		return "", err
	}

	typeText := ""

	for _, field := range strings.Fields(erased) {
		if strings.HasPrefix(field, "@") || field == "final" {
			continue
		}

		// The first remaining token is the type, anything after it a name.
		typeText = field

		break
	}

	if typeText == "" {
		return "", errors.New("missing type")
	}

	typeText = strings.ReplaceAll(typeText, "?", "")

	dims := 0
	if trimmed, ok := strings.CutSuffix(typeText, "..."); ok {
		typeText = trimmed
		dims++
	}

	for {
		trimmed, ok := strings.CutSuffix(typeText, "[]")
		if !ok {
			break
		}

		typeText = trimmed
		dims++
	}

	base, err := className(typeText, vars, 0)
	if err != nil {
		return "", err
	}

	return base + strings.Repeat("[]", dims), nil
}

func isSourceRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return true
	}

	return strings.ContainsRune("_$./[]<>?,@*&:", r)
}

// eraseGenerics removes every balanced <...> section.
func eraseGenerics(s string) (string, error) {
	var b strings.Builder

	depth := 0

	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
			if depth < 0 {
				return "", errors.New("unbalanced '>'")
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}

	if depth != 0 {
		return "", errors.New("unbalanced '<'")
	}

	return b.String(), nil
}

// className reduces a possibly qualified class name to its canonical simple
// form and substitutes type variables.
func className(text string, vars Scope, depth int) (string, error) {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '/' || r == '$'
	})
	if len(segments) == 0 {
		return "", errors.New("empty type name")
	}

	for _, seg := range segments {
		if !isIdentifier(seg) {
			return "", fmt.Errorf("invalid name segment %q", seg)
		}
	}

	// Package qualifiers are the leading lower-case segments.
	for len(segments) > 1 && unicode.IsLower([]rune(segments[0])[0]) {
		segments = segments[1:]
	}

	if len(segments) == 1 {
		if bound, ok := vars[segments[0]]; ok {
			return typeVariable(segments[0], bound, vars, depth)
		}
	}

	return strings.Join(segments, "."), nil
}

func typeVariable(name, bound string, vars Scope, depth int) (string, error) {
	bound = strings.TrimSpace(bound)
	if bound == "" || depth > len(vars) {
		return ErasedType, nil
	}

	// Intersection bounds erase to their first component.
	first, _, _ := strings.Cut(bound, "&")

	if looksLikeDescriptor(first) {
		canonical, _, err := parseDescriptor(first, 0, vars)

		return canonical, err
	}

	erased, err := eraseGenerics(first)
	if err != nil {
		return "", err
	}

	erased = strings.TrimSpace(erased)
	if erased == name {
		return ErasedType, nil
	}

	return className(erased, vars, depth+1)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}

	return true
}

// parseDescriptor decodes one field descriptor starting at i and returns the
// canonical type and the index after it.
func parseDescriptor(s string, i int, vars Scope) (string, int, error) {
	dims := 0
	for i < len(s) && s[i] == '[' {
		dims++
		i++
	}

	if i >= len(s) {
		return "", i, errors.New("truncated descriptor")
	}

	var base string

	switch c := s[i]; c {
	case 'L', 'T':
		end, name, err := scanReference(s, i+1)
		if err != nil {
			return "", i, err
		}

		if c == 'T' {
			base, err = typeVariable(name, vars[name], vars, 0)
		} else {
			base, err = className(name, nil, 0)
		}

		if err != nil {
			return "", i, err
		}

		i = end
	default:
		prim, ok := primitiveDescriptors[c]
		if !ok {
			return "", i, fmt.Errorf("unknown descriptor %q", c)
		}

		base = prim
		i++
	}

	return base + strings.Repeat("[]", dims), i, nil
}

// scanReference reads a class or type-variable reference body up to its ';',
// skipping generic argument sections. It returns the index after ';'.
func scanReference(s string, i int) (int, string, error) {
	var name strings.Builder

	depth := 0

	for ; i < len(s); i++ {
		switch c := s[i]; {
		case c == '<':
			depth++
		case c == '>':
			depth--
		case depth > 0:
		case c == ';':
			return i + 1, name.String(), nil
		default:
			name.WriteByte(c)
		}
	}

	return i, "", errors.New("unterminated reference")
}
