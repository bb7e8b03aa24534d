package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy comparison:
// CamelCase is tokenized, tokens are lower-cased and joined, and the
// separators '_', '-', '$' and ' ' are dropped.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// NormalizeIdentWithPrefixStrip normalizes and then strips a leading
// accessor verb ("get", "set", "is"), so getName and name compare equal.
func NormalizeIdentWithPrefixStrip(s string) string {
	tokens := TokenizeIdent(s)
	if len(tokens) > 1 {
		switch tokens[0] {
		case "get", "set", "is":
			tokens = tokens[1:]
		}
	}

	return strings.Join(tokens, "")
}

// TokenizeIdent splits an identifier into lower-case tokens.
// Examples:
//   - "getHTTPResponse" -> ["get", "http", "response"]
//   - "lambda$run$0" -> ["lambda", "run", "0"]
//   - "XMLParser" -> ["xml", "parser"]
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '$' || r == '<' || r == '>'
}

// shouldStartNewToken splits "orderID" before 'I' and "XMLParser" before 'P'.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if isSeparator(prev) {
		return false
	}

	if unicode.IsUpper(r) && !unicode.IsUpper(prev) {
		return true
	}

	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return unicode.IsUpper(r) && unicode.IsUpper(prev) && hasNextLower
}
