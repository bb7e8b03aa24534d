package report

// SchemaVersion is incremented whenever the binary layout changes.
const SchemaVersion uint16 = 1

// Report is the exported form of a run.
type Report struct {
	Schema      uint16       `yaml:"schema"                msgpack:"schema"`
	Summary     Summary      `yaml:"summary"               msgpack:"summary"`
	Records     []Entry      `yaml:"records"               msgpack:"records"`
	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	Failures    []Failure    `yaml:"failures,omitempty"    msgpack:"failures,omitempty"`
}

// Entry is one correspondence record.
type Entry struct {
	IRUnit      string   `yaml:"ir_unit"                msgpack:"ir_unit"`
	IR          string   `yaml:"ir"                     msgpack:"ir"`
	Kind        string   `yaml:"kind"                   msgpack:"kind"`
	Signature   string   `yaml:"signature,omitempty"    msgpack:"signature,omitempty"`
	SourceUnit  string   `yaml:"source_unit,omitempty"  msgpack:"source_unit,omitempty"`
	Source      string   `yaml:"source,omitempty"       msgpack:"source,omitempty"`
	Confidence  string   `yaml:"confidence"             msgpack:"confidence"`
	Span        string   `yaml:"span,omitempty"         msgpack:"span,omitempty"`
	SpanOrigin  string   `yaml:"span_origin"            msgpack:"span_origin"`
	Ambiguous   bool     `yaml:"ambiguous,omitempty"    msgpack:"ambiguous,omitempty"`
	Contender   bool     `yaml:"contender,omitempty"    msgpack:"contender,omitempty"`
	Reason      string   `yaml:"reason,omitempty"       msgpack:"reason,omitempty"`
	Suggestions []string `yaml:"suggestions,omitempty"  msgpack:"suggestions,omitempty"`
}

// Diagnostic is an exported diagnostic.
type Diagnostic struct {
	Severity string `yaml:"severity"       msgpack:"severity"`
	Code     string `yaml:"code"           msgpack:"code"`
	Message  string `yaml:"message"        msgpack:"message"`
	Unit     string `yaml:"unit,omitempty" msgpack:"unit,omitempty"`
	Path     string `yaml:"path,omitempty" msgpack:"path,omitempty"`
}

// Failure is a unit, or a single top-level type of one, rejected before
// matching. Path is empty when the whole unit was rejected.
type Failure struct {
	Unit  string `yaml:"unit"           msgpack:"unit"`
	Path  string `yaml:"path,omitempty" msgpack:"path,omitempty"`
	Side  string `yaml:"side"           msgpack:"side"`
	Error string `yaml:"error"          msgpack:"error"`
}

// Summary counts records per confidence level.
type Summary struct {
	Total        int            `yaml:"total"         msgpack:"total"`
	ByConfidence map[string]int `yaml:"by_confidence" msgpack:"by_confidence"`
	Ambiguous    int            `yaml:"ambiguous"     msgpack:"ambiguous"`
	Unmatched    int            `yaml:"unmatched"     msgpack:"unmatched"`
	Failures     int            `yaml:"failures"      msgpack:"failures"`
}
