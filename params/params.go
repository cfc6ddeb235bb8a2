// Package params declares the nf-core/proteinfold parameter registry and
// translates bound parameter values into Nextflow command-line flags.
//
// The registry is pure data: every pipeline parameter with its kind,
// default, display metadata, and UI section. Translation is a pure
// function of (spec, bound value) and performs no I/O.
package params

// Kind is the semantic type of a parameter value.
type Kind int

const (
	// KindString is a free-form string value.
	KindString Kind = iota
	// KindBool is a presence-only flag: true emits --name, false emits nothing.
	KindBool
	// KindInt is an integer value.
	KindInt
	// KindEnum is a closed set of symbolic names (see Mode).
	KindEnum
	// KindFile is a reference to a remote file, stringified to its path.
	KindFile
	// KindDir is a reference to a remote directory, stringified to its path.
	KindDir
)

// String returns the kind's symbolic name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindEnum:
		return "enum"
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "unknown"
	}
}

// Spec describes one registered parameter.
// Specs are defined once at process start and immutable thereafter.
type Spec struct {
	// Name is the unique parameter key, doubling as the flag name.
	Name string `json:"name"`
	// Kind determines serialization in the flag translator.
	Kind Kind `json:"-"`
	// Default is the value applied when the caller binds nothing.
	// Nil means no default: the flag is omitted and the pipeline's own
	// default applies downstream.
	Default any `json:"default,omitempty"`
	// DisplayName is the human-readable label.
	DisplayName string `json:"display_name"`
	// Description is the human-readable help text.
	Description string `json:"description"`
	// Section is the UI grouping this parameter is rendered under.
	Section string `json:"section"`
	// Advanced marks parameters rendered under the collapsed
	// "Advanced options" spoiler.
	Advanced bool `json:"advanced,omitempty"`
}

// Values is a set of caller-supplied parameter bindings, keyed by
// parameter name. A missing key means "absent", which is distinct from
// an explicit value and falls back to the spec default.
type Values map[string]any

// Lookup returns the binding for name, or (nil, false) when absent.
func (v Values) Lookup(name string) (any, bool) {
	val, ok := v[name]
	return val, ok
}
