package jsonadapt

// Kind identifies one backend (one third-party JSON representation).
type Kind string

// Type enumerates the JSON value types an Adapter can report.
type Type int

const (
	TypeInvalid Type = iota // Zero Node or unrecognized native value.
	TypeNull
	TypeBool
	TypeInteger
	TypeDouble
	TypeString
	TypeArray
	TypeObject
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeNull:    "null",
	TypeBool:    "boolean",
	TypeInteger: "integer",
	TypeDouble:  "double",
	TypeString:  "string",
	TypeArray:   "array",
	TypeObject:  "object",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "invalid"
	}
	return typeNames[t]
}

// IsNumber reports whether t is one of the numeric kinds.
func (t Type) IsNumber() bool { return t == TypeInteger || t == TypeDouble }

// class folds both numeric kinds into one comparison class.
func (t Type) class() Type {
	if t == TypeInteger {
		return TypeDouble
	}
	return t
}

// Traits is the static metadata of a backend.
type Traits struct {
	// Name is a human-readable backend name used in diagnostics.
	Name string
	// HasStrictTypes is true when the native representation keeps integers
	// and floating-point values apart.
	HasStrictTypes bool
	// PreservesOrder is true when object members iterate in source order.
	PreservesOrder bool
}

// Syntax names the input language a driver parses.
type Syntax int

const (
	SyntaxJSON Syntax = iota
	SyntaxJSON5
	SyntaxYAML
)

func (s Syntax) String() string {
	switch s {
	case SyntaxJSON:
		return "json"
	case SyntaxJSON5:
		return "json5"
	case SyntaxYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Severity expresses how the loader reacts to a finding.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)
