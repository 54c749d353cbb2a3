package jsonadapt

import (
	"iter"
	"math"
)

// Adapter is a uniform read-only view over one node of a parsed document.
// An Adapter never owns or mutates the document it wraps; the document must
// outlive every Adapter built on it.
type Adapter interface {
	Kind() Kind
	Traits() Traits
	Type() Type

	IsNull() bool
	IsBool() bool
	IsInteger() bool
	IsDouble() bool
	IsNumber() bool
	IsString() bool
	IsArray() bool
	IsObject() bool

	// Bool, Str and Float fail with a *TypeMismatchError when the matching
	// predicate is false.
	Bool() (bool, error)
	Str() (string, error)
	Float() (float64, error)
	// Number returns any numeric value promoted to float64.
	Number() (float64, error)
	// AsInt returns a truncated integral view of any number. exact is false
	// when a fractional part was dropped or the value did not fit in int64.
	AsInt() (v int64, exact bool, err error)

	// Len is the element count of an array, the member count of an object and
	// zero for scalars.
	Len() int
	// Elements yields array elements in source order.
	Elements() iter.Seq[Adapter]
	// Members yields object members in backend-defined order.
	Members() iter.Seq2[string, Adapter]
	// Member looks up one object member by key.
	Member(key string) (Adapter, bool)

	// EqualTo reports whether both adapters denote the same JSON value.
	EqualTo(other Adapter, strict bool) bool
}

// Backend reads one native node type N. Implementations are stateless
// descriptors; all per-document state lives in the nodes.
//
// Scalar accessors are only called after TypeOf reported the matching type.
// Float and Int are valid for both numeric types.
type Backend[N any] interface {
	Kind() Kind
	TypeOf(n N) Type
	Bool(n N) bool
	Str(n N) string
	Float(n N) float64
	// Int truncates toward zero; exact is false when that lost information.
	Int(n N) (v int64, exact bool)
	Len(n N) int
	Elements(n N) iter.Seq[N]
	Members(n N) iter.Seq2[string, N]
	Lookup(n N, key string) (N, bool)
}

// Node binds a Backend to one native node. The zero Node reports TypeInvalid.
type Node[N any] struct {
	backend Backend[N]
	traits  Traits
	node    N
}

// Wrap builds the Adapter for n. It does not copy or walk the tree. The
// backend's traits are resolved here once and inherited by every child.
func Wrap[N any](b Backend[N], n N) Node[N] {
	if b == nil {
		return Node[N]{node: n}
	}
	return Node[N]{backend: b, traits: TraitsOf(b.Kind()), node: n}
}

func (n Node[N]) child(c N) Node[N] {
	return Node[N]{backend: n.backend, traits: n.traits, node: c}
}

// Native returns the wrapped backend node.
func (n Node[N]) Native() N { return n.node }

func (n Node[N]) Kind() Kind {
	if n.backend == nil {
		return ""
	}
	return n.backend.Kind()
}

func (n Node[N]) Traits() Traits { return n.traits }

func (n Node[N]) Type() Type {
	if n.backend == nil {
		return TypeInvalid
	}
	return n.backend.TypeOf(n.node)
}

func (n Node[N]) strictTypes() bool { return n.traits.HasStrictTypes }

func (n Node[N]) IsNull() bool   { return n.Type() == TypeNull }
func (n Node[N]) IsBool() bool   { return n.Type() == TypeBool }
func (n Node[N]) IsNumber() bool { return n.Type().IsNumber() }
func (n Node[N]) IsString() bool { return n.Type() == TypeString }
func (n Node[N]) IsArray() bool  { return n.Type() == TypeArray }
func (n Node[N]) IsObject() bool { return n.Type() == TypeObject }

// IsInteger is true for integer storage. Backends without strict types also
// report it for any integral double.
func (n Node[N]) IsInteger() bool {
	switch n.Type() {
	case TypeInteger:
		return true
	case TypeDouble:
		if n.strictTypes() {
			return false
		}
		f := n.backend.Float(n.node)
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	}
	return false
}

// IsDouble is true for floating-point storage. Backends without strict types
// report it for every number.
func (n Node[N]) IsDouble() bool {
	switch n.Type() {
	case TypeDouble:
		return true
	case TypeInteger:
		return !n.strictTypes()
	}
	return false
}

func (n Node[N]) Bool() (bool, error) {
	if t := n.Type(); t != TypeBool {
		return false, mismatch("Bool", TypeBool, t)
	}
	return n.backend.Bool(n.node), nil
}

func (n Node[N]) Str() (string, error) {
	if t := n.Type(); t != TypeString {
		return "", mismatch("Str", TypeString, t)
	}
	return n.backend.Str(n.node), nil
}

func (n Node[N]) Float() (float64, error) {
	if !n.IsDouble() {
		return 0, mismatch("Float", TypeDouble, n.Type())
	}
	return n.backend.Float(n.node), nil
}

func (n Node[N]) Number() (float64, error) {
	if t := n.Type(); !t.IsNumber() {
		return 0, mismatch("Number", TypeDouble, t)
	}
	return n.backend.Float(n.node), nil
}

func (n Node[N]) AsInt() (int64, bool, error) {
	if t := n.Type(); !t.IsNumber() {
		return 0, false, mismatch("AsInt", TypeInteger, t)
	}
	v, exact := n.backend.Int(n.node)
	return v, exact, nil
}

func (n Node[N]) Len() int {
	switch n.Type() {
	case TypeArray, TypeObject:
		return n.backend.Len(n.node)
	}
	return 0
}

func (n Node[N]) Elements() iter.Seq[Adapter] {
	return func(yield func(Adapter) bool) {
		if n.Type() != TypeArray {
			return
		}
		for c := range n.backend.Elements(n.node) {
			if !yield(n.child(c)) {
				return
			}
		}
	}
}

func (n Node[N]) Members() iter.Seq2[string, Adapter] {
	return func(yield func(string, Adapter) bool) {
		if n.Type() != TypeObject {
			return
		}
		for k, c := range n.backend.Members(n.node) {
			if !yield(k, n.child(c)) {
				return
			}
		}
	}
}

func (n Node[N]) Member(key string) (Adapter, bool) {
	if n.Type() != TypeObject {
		return nil, false
	}
	c, ok := n.backend.Lookup(n.node, key)
	if !ok {
		return nil, false
	}
	return n.child(c), true
}

func (n Node[N]) EqualTo(other Adapter, strict bool) bool { return Equal(n, other, strict) }

// FloatToInt truncates f toward zero and reports whether that was lossless.
// Values outside the int64 range are clamped.
func FloatToInt(f float64) (int64, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= math.MaxInt64: // 2^63 is the first float64 past the range
		return math.MaxInt64, false
	case f < math.MinInt64:
		return math.MinInt64, false
	}
	t := math.Trunc(f)
	return int64(t), t == f
}
