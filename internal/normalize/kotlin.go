package normalize

import (
	"errors"
	"slices"
	"strings"
)

// JVM forms of Kotlin builtins. Primitives apply to non-null values outside
// generic arguments; anywhere else the boxed class is used.
var (
	kotlinPrimitives = map[string][2]string{
		"Int":     {"int", "Integer"},
		"Long":    {"long", "Long"},
		"Short":   {"short", "Short"},
		"Byte":    {"byte", "Byte"},
		"Char":    {"char", "Character"},
		"Boolean": {"boolean", "Boolean"},
		"Float":   {"float", "Float"},
		"Double":  {"double", "Double"},
	}

	kotlinPrimitiveArrays = map[string]string{
		"IntArray":     "int",
		"LongArray":    "long",
		"ShortArray":   "short",
		"ByteArray":    "byte",
		"CharArray":    "char",
		"BooleanArray": "boolean",
		"FloatArray":   "float",
		"DoubleArray":  "double",
	}

	kotlinClasses = map[string]string{
		"Any":                     "Object",
		"Nothing":                 "Void",
		"Unit":                    "void",
		"MutableList":             "List",
		"MutableSet":              "Set",
		"MutableMap":              "Map",
		"MutableCollection":       "Collection",
		"MutableIterable":         "Iterable",
		"MutableIterator":         "Iterator",
		"MutableListIterator":     "ListIterator",
		"MutableMap.MutableEntry": "Map.Entry",
	}
)

// cutDeclaredType splits a Kotlin "name: Type" declaration at its top-level
// colon. A bare ": Type" has an empty declaration part.
func cutDeclaredType(s string) (string, string, bool) {
	depth := 0

	for i := range len(s) {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ':':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}

	return "", "", false
}

// kotlinType canonicalizes the type of a Kotlin declaration to the JVM type
// the compiler emits for it.
func kotlinType(decl, typeText string, vars Scope) (string, error) {
	dims := 0
	if slices.Contains(strings.Fields(decl), "vararg") {
		dims++
	}

	text := strings.TrimSpace(typeText)
	if text == "" {
		return "", errors.New("missing type")
	}

	text, boxed := strings.CutSuffix(text, "?")

	for {
		elem, ok := arrayElement(text)
		if !ok {
			break
		}

		text = strings.TrimSuffix(elem, "?")
		boxed = true
		dims++
	}

	erased, err := eraseGenerics(text)
	if err != nil {
		return "", err
	}

	base, err := className(strings.TrimSpace(erased), vars, 0)
	if err != nil {
		return "", err
	}

	if prim, ok := kotlinPrimitiveArrays[base]; ok {
		return prim + strings.Repeat("[]", dims+1), nil
	}

	if forms, ok := kotlinPrimitives[base]; ok {
		base = forms[0]
		if boxed {
			base = forms[1]
		}
	} else if mapped, ok := kotlinClasses[base]; ok {
		base = mapped
	}

	return base + strings.Repeat("[]", dims), nil
}

// arrayElement unwraps "Array<out T>" to "T".
func arrayElement(text string) (string, bool) {
	inner, ok := strings.CutPrefix(text, "Array<")
	if !ok {
		return "", false
	}

	inner, ok = strings.CutSuffix(inner, ">")
	if !ok {
		return "", false
	}

	inner = strings.TrimSpace(inner)
	for _, variance := range []string{"out ", "in "} {
		inner = strings.TrimPrefix(inner, variance)
	}

	return strings.TrimSpace(inner), true
}
