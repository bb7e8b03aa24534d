package treefile

// File is the YAML document for one Symbol Tree.
type File struct {
	Unit string `yaml:"unit,omitempty"`
	Root Node   `yaml:"root"`
}

// Node is one declaration. Optional fields are derived when omitted.
type Node struct {
	Kind          string      `yaml:"kind"`
	Name          string      `yaml:"name"`
	QualifiedName string      `yaml:"qualified_name,omitempty"`
	Signature     string      `yaml:"signature,omitempty"`
	Flags         []string    `yaml:"flags,omitempty,flow"`
	Span          string      `yaml:"span,omitempty"`
	Arity         *int        `yaml:"arity,omitempty"`
	Ordinal       *int        `yaml:"ordinal,omitempty"`
	TypeParams    []TypeParam `yaml:"type_params,omitempty"`
	Children      []Node      `yaml:"children,omitempty"`
}

// TypeParam is a declared generic parameter.
type TypeParam struct {
	Name  string `yaml:"name"`
	Bound string `yaml:"bound,omitempty"`
}
