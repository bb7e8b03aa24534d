package normalize

import (
	"errors"
	"strings"
)

// Signature returns the canonical parameter list "(a,b)" of a callable.
// The raw form may be source style with an optional return type after ')',
// a JVM method descriptor, or a JVM generic method signature whose leading
// formal type parameters extend vars.
func Signature(raw string, vars Scope) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}

	if strings.HasPrefix(s, "<") {
		rest, local, err := formalTypeParams(s, vars)
		if err != nil {
			return opaque(raw)
		}

		s, vars = rest, local
	}

	if !strings.HasPrefix(s, "(") {
		return opaque(raw)
	}

	closeIdx := matchingParen(s)
	if closeIdx < 0 {
		return opaque(raw)
	}

	inner, rest := s[1:closeIdx], strings.TrimSpace(s[closeIdx+1:])

	if params, ok := descriptorParams(inner, rest, vars); ok {
		return joinParams(params), nil
	}

	params, err := sourceParams(inner, vars)
	if err != nil {
		return opaque(raw)
	}

	return joinParams(params), nil
}

// Params splits a canonical signature into its parameter types. Opaque and
// empty values have no parameters.
func Params(canonical string) []string {
	if IsOpaque(canonical) || len(canonical) < 2 || canonical == "()" {
		return nil
	}

	return strings.Split(canonical[1:len(canonical)-1], ",")
}

func joinParams(params []string) string {
	return "(" + strings.Join(params, ",") + ")"
}

func matchingParen(s string) int {
	depth := 0

	for i := range len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// descriptorParams decodes "(I[Ljava/lang/String;)V". A descriptor always
// carries a return type, which distinguishes "(I)V" from source "(I)".
func descriptorParams(inner, ret string, vars Scope) ([]string, bool) {
	if ret == "" {
		return nil, false
	}

	if ret != "V" {
		if _, next, err := parseDescriptor(ret, 0, vars); err != nil || next != len(ret) {
			return nil, false
		}
	}

	params := []string{}

	for i := 0; i < len(inner); {
		canonical, next, err := parseDescriptor(inner, i, vars)
		if err != nil {
			return nil, false
		}

		params = append(params, canonical)
		i = next
	}

	return params, true
}

func sourceParams(inner string, vars Scope) ([]string, error) {
	params := []string{}
	if strings.TrimSpace(inner) == "" {
		return params, nil
	}

	for _, part := range splitTopLevel(inner) {
		canonical, err := sourceType(part, vars)
		if err != nil {
			return nil, err
		}

		params = append(params, canonical)
	}

	return params, nil
}

// splitTopLevel splits on commas outside generic argument lists.
func splitTopLevel(s string) []string {
	var parts []string

	depth, start := 0, 0

	for i := range len(s) {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

// formalTypeParams consumes "<T:Ljava/lang/Object;U::Ljava/lang/Comparable;>"
// and returns the remainder with the declared variables added to a copy of
// vars.
func formalTypeParams(s string, vars Scope) (string, Scope, error) {
	local := make(Scope, len(vars)+2)
	for k, v := range vars {
		local[k] = v
	}

	i := 1
	for i < len(s) && s[i] != '>' {
		colon := strings.IndexByte(s[i:], ':')
		if colon <= 0 {
			return "", nil, errors.New("malformed formal type parameter")
		}

		name := s[i : i+colon]
		i += colon

		bound := ""

		// Class bound, then any interface bounds, each introduced by ':'.
		for i < len(s) && s[i] == ':' {
			i++
			if i < len(s) && s[i] == ':' {
				continue
			}

			start := i

			_, next, err := parseDescriptor(s, i, local)
			if err != nil {
				return "", nil, err
			}

			if bound == "" {
				bound = s[start:next]
			}

			i = next
		}

		local[name] = bound
	}

	if i >= len(s) {
		return "", nil, errors.New("unterminated formal type parameters")
	}

	return s[i+1:], local, nil
}
