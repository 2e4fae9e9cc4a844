// Package model defines the documentation model built from a GDScript
// reference dump: classes and the symbols they document.
package model

// FunctionKind classifies a documented function.
type FunctionKind string

const (
	Method  FunctionKind = "method"
	Virtual FunctionKind = "virtual"
	Static  FunctionKind = "static"
)

// Metadata holds the directives extracted from a description.
type Metadata struct {
	Tags     []string
	Category string
}

// HasTag reports whether tag is among the metadata tags.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Symbol holds the fields every documented symbol shares.
type Symbol struct {
	Signature   string
	Name        string
	Description string // Metadata directive lines removed
	Metadata    Metadata
}

// Element is implemented by every documented symbol kind.
type Element interface {
	// Base returns the shared symbol fields.
	Base() Symbol
	// Summary returns the summary table cells, or nil when the kind is not
	// summarized in a table.
	Summary() []string
	// Annotation returns a short qualifier shown next to the heading.
	Annotation() string
}

// Argument is a function or signal parameter.
type Argument struct {
	Name string
	Type string
}

// Signal is a documented signal.
type Signal struct {
	Symbol
	Arguments []Argument
}

// Function is a documented method, virtual method or static function.
type Function struct {
	Symbol
	Kind       FunctionKind
	ReturnType string
	Arguments  []Argument
	RPCMode    int
}

// Member is a documented member variable.
type Member struct {
	Symbol
	Type         string
	DefaultValue string
	Exported     bool
	Setter       string
	Getter       string
}

// Enumeration is a documented enum, exported by Godot as a Dictionary
// constant.
type Enumeration struct {
	Symbol
	Values map[string]int
}

// Constant is a documented scalar constant.
type Constant struct {
	Symbol
	Type  string
	Value string
}

func (s Symbol) Base() Symbol       { return s }
func (s Symbol) Summary() []string  { return nil }
func (s Symbol) Annotation() string { return "" }

func (f Function) Summary() []string { return []string{f.ReturnType, f.Signature} }

func (f Function) Annotation() string {
	if f.Kind == Method {
		return ""
	}
	return string(f.Kind)
}

func (m Member) Summary() []string { return []string{m.Type, m.Name} }

func (c Constant) Summary() []string { return []string{c.Type, c.Name, c.Value} }

// ProjectInfo describes the documented project on the index page.
type ProjectInfo struct {
	Name        string
	Description string
	Version     string
}
