package symtree

import (
	"fmt"
	"strconv"
	"strings"
)

// Span is a source location. Lines and columns are 1-based; a zero StartLine
// means the location is unknown.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// LineSpan returns a span covering whole lines.
func LineSpan(start, end int) Span {
	return Span{StartLine: start, EndLine: end}
}

// Valid reports whether the span carries a usable line range.
func (s Span) Valid() bool {
	return s.StartLine > 0 && s.EndLine >= s.StartLine
}

// IsZero reports whether no location is known.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Lines returns the number of lines covered.
func (s Span) Lines() int {
	if !s.Valid() {
		return 0
	}

	return s.EndLine - s.StartLine + 1
}

// ContainsLine reports whether line falls inside the span.
func (s Span) ContainsLine(line int) bool {
	return s.Valid() && s.StartLine <= line && line <= s.EndLine
}

// Contains reports whether o lies entirely inside s. Columns are compared
// only when both spans carry them on the shared boundary line.
func (s Span) Contains(o Span) bool {
	if !s.Valid() || !o.Valid() {
		return false
	}

	if o.StartLine < s.StartLine || o.EndLine > s.EndLine {
		return false
	}

	if o.StartLine == s.StartLine && s.StartColumn > 0 && o.StartColumn > 0 &&
		o.StartColumn < s.StartColumn {
		return false
	}

	if o.EndLine == s.EndLine && s.EndColumn > 0 && o.EndColumn > 0 &&
		o.EndColumn > s.EndColumn {
		return false
	}

	return true
}

// LineOverlap returns the number of lines shared by s and o.
func (s Span) LineOverlap(o Span) int {
	if !s.Valid() || !o.Valid() {
		return 0
	}

	lo := max(s.StartLine, o.StartLine)
	hi := min(s.EndLine, o.EndLine)

	if hi < lo {
		return 0
	}

	return hi - lo + 1
}

// String formats the span as "10:5-12:6", or "10-12" without columns.
func (s Span) String() string {
	if s.IsZero() {
		return ""
	}

	if s.StartColumn == 0 && s.EndColumn == 0 {
		return fmt.Sprintf("%d-%d", s.StartLine, s.EndLine)
	}

	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

// ParseSpan parses the forms produced by String, plus a single line "10".
func ParseSpan(text string) (Span, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Span{}, nil
	}

	startText, endText, hasEnd := strings.Cut(text, "-")
	if !hasEnd {
		endText = startText
	}

	startLine, startCol, err := parsePoint(startText)
	if err != nil {
		return Span{}, fmt.Errorf("invalid span %q: %w", text, err)
	}

	endLine, endCol, err := parsePoint(endText)
	if err != nil {
		return Span{}, fmt.Errorf("invalid span %q: %w", text, err)
	}

	span := Span{StartLine: startLine, StartColumn: startCol, EndLine: endLine, EndColumn: endCol}
	if !span.Valid() {
		return Span{}, fmt.Errorf("invalid span %q: end precedes start", text)
	}

	return span, nil
}

func parsePoint(text string) (line, col int, err error) {
	lineText, colText, hasCol := strings.Cut(strings.TrimSpace(text), ":")

	line, err = strconv.Atoi(lineText)
	if err != nil {
		return 0, 0, err
	}

	if hasCol {
		col, err = strconv.Atoi(colText)
		if err != nil {
			return 0, 0, err
		}
	}

	return line, col, nil
}
