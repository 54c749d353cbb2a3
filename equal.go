package jsonadapt

import (
	"iter"
	"math"
	"slices"

	eng "github.com/reoring/jsonadapt/internal/engine"
)

// Equal reports whether a and b denote the same JSON value. The adapters may
// come from different backends.
//
// Loose comparison (strict == false) compares numbers by value only, so 1 and
// 1.0 are equal. Strict comparison additionally requires the integer/double
// kind to match, but only when both backends report strict types; otherwise
// the kind is not known and strict falls back to loose. Object member order
// never matters, array element order always does.
//
// Equal never fails: incomparable values are simply not equal.
func Equal(a, b Adapter, strict bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return equal(a, b, strict)
}

// Diff is Equal that also locates the first difference as a JSON Pointer ("/"
// for the root). Object members are visited in key order so the reported path
// is stable across backends. path is empty when the values are equal.
func Diff(a, b Adapter, strict bool) (path string, equal bool) {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return "", true
		}
		return "/", false
	}
	p, ok := diff(a, b, strict, "")
	if ok {
		return "", true
	}
	if p == "" {
		p = "/"
	}
	return p, false
}

func equal(a, b Adapter, strict bool) bool {
	ta, tb := a.Type(), b.Type()
	if ta == TypeInvalid || ta.class() != tb.class() {
		return false
	}
	switch ta {
	case TypeArray:
		return arraysEqual(a, b, strict)
	case TypeObject:
		return objectsEqual(a, b, strict)
	default:
		return scalarsEqual(a, b, ta, strict)
	}
}

func arraysEqual(a, b Adapter, strict bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	next, stop := iter.Pull(b.Elements())
	defer stop()
	for ea := range a.Elements() {
		eb, ok := next()
		if !ok || !equal(ea, eb, strict) {
			return false
		}
	}
	_, more := next()
	return !more
}

func objectsEqual(a, b Adapter, strict bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, va := range a.Members() {
		vb, ok := b.Member(k)
		if !ok || !equal(va, vb, strict) {
			return false
		}
	}
	return true
}

func scalarsEqual(a, b Adapter, t Type, strict bool) bool {
	switch t {
	case TypeNull:
		return true
	case TypeBool:
		x, _ := a.Bool()
		y, _ := b.Bool()
		return x == y
	case TypeString:
		x, _ := a.Str()
		y, _ := b.Str()
		return x == y
	case TypeInteger, TypeDouble:
		return numbersEqual(a, b, strict)
	}
	return false
}

func numbersEqual(a, b Adapter, strict bool) bool {
	if strict && a.Traits().HasStrictTypes && b.Traits().HasStrictTypes && a.IsInteger() != b.IsInteger() {
		return false
	}
	// An exact int64 can only equal another exact int64: the other side is
	// otherwise fractional, NaN or out of range.
	ai, aexact, _ := a.AsInt()
	bi, bexact, _ := b.AsInt()
	if aexact || bexact {
		return aexact && bexact && ai == bi
	}
	af, _ := a.Number()
	bf, _ := b.Number()
	if math.IsNaN(af) && math.IsNaN(bf) {
		return true
	}
	return af == bf
}

func diff(a, b Adapter, strict bool, path string) (string, bool) {
	ta, tb := a.Type(), b.Type()
	if ta == TypeInvalid || ta.class() != tb.class() {
		return path, false
	}
	switch ta {
	case TypeArray:
		if a.Len() != b.Len() {
			return path, false
		}
		next, stop := iter.Pull(b.Elements())
		defer stop()
		i := 0
		for ea := range a.Elements() {
			ep := eng.JoinPointerIndex(path, i)
			eb, ok := next()
			if !ok {
				return ep, false
			}
			if p, ok := diff(ea, eb, strict, ep); !ok {
				return p, false
			}
			i++
		}
		if _, more := next(); more {
			return eng.JoinPointerIndex(path, i), false
		}
		return "", true
	case TypeObject:
		if a.Len() != b.Len() {
			return path, false
		}
		keys := make([]string, 0, a.Len())
		for k := range a.Members() {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			mp := eng.JoinPointer(path, k)
			va, _ := a.Member(k)
			vb, ok := b.Member(k)
			if !ok || va == nil {
				return mp, false
			}
			if p, ok := diff(va, vb, strict, mp); !ok {
				return p, false
			}
		}
		return "", true
	default:
		if !scalarsEqual(a, b, ta, strict) {
			return path, false
		}
		return "", true
	}
}
