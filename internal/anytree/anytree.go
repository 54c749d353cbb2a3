// Package anytree implements jsonadapt.Backend for trees decoded into plain Go
// values (map[string]any, []any, string, bool, nil and numbers), which is what
// encoding/json-compatible libraries produce.
package anytree

import (
	"encoding/json"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/reoring/jsonadapt"
)

// Backend reads decoded any trees on behalf of one backend Kind.
type Backend struct{ K jsonadapt.Kind }

func (b Backend) Kind() jsonadapt.Kind { return b.K }

func (Backend) TypeOf(v any) jsonadapt.Type {
	switch x := v.(type) {
	case nil:
		return jsonadapt.TypeNull
	case bool:
		return jsonadapt.TypeBool
	case string:
		return jsonadapt.TypeString
	case json.Number:
		if isIntLiteral(string(x)) {
			return jsonadapt.TypeInteger
		}
		return jsonadapt.TypeDouble
	case float64, float32:
		return jsonadapt.TypeDouble
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return jsonadapt.TypeInteger
	case []any:
		return jsonadapt.TypeArray
	case map[string]any:
		return jsonadapt.TypeObject
	}
	return jsonadapt.TypeInvalid
}

// isIntLiteral reports whether a JSON number literal has no fraction or
// exponent part.
func isIntLiteral(s string) bool { return !strings.ContainsAny(s, ".eE") }

func (Backend) Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

func (Backend) Str(v any) string {
	s, _ := v.(string)
	return s
}

func (Backend) Float(v any) float64 { return toFloat(v) }

func (Backend) Int(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		if isIntLiteral(string(x)) {
			if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
				return i, true
			}
		}
		return jsonadapt.FloatToInt(toFloat(x))
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return fromUint(x)
	}
	return jsonadapt.FloatToInt(toFloat(v))
}

func fromUint(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return math.MaxInt64, false
	}
	return int64(u), true
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case json.Number:
		// Out-of-range literals saturate to ±Inf.
		f, _ := strconv.ParseFloat(string(x), 64)
		return f
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	}
	return math.NaN()
}

func (Backend) Len(v any) int {
	switch x := v.(type) {
	case []any:
		return len(x)
	case map[string]any:
		return len(x)
	}
	return 0
}

func (Backend) Elements(v any) iter.Seq[any] {
	return func(yield func(any) bool) {
		arr, _ := v.([]any)
		for _, e := range arr {
			if !yield(e) {
				return
			}
		}
	}
}

// Members iterates in Go map order, which is deliberately unspecified.
func (Backend) Members(v any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		m, _ := v.(map[string]any)
		for k, e := range m {
			if !yield(k, e) {
				return
			}
		}
	}
}

func (Backend) Lookup(v any, key string) (any, bool) {
	m, _ := v.(map[string]any)
	e, ok := m[key]
	return e, ok
}

// Driver is a jsonadapt.Driver for libraries that decode into any.
type Driver struct {
	K      jsonadapt.Kind
	T      jsonadapt.Traits
	S      jsonadapt.Syntax
	Decode func(data []byte) (any, error)
}

func (d Driver) Kind() jsonadapt.Kind     { return d.K }
func (d Driver) Traits() jsonadapt.Traits { return d.T }
func (d Driver) Syntax() jsonadapt.Syntax { return d.S }

func (d Driver) Parse(data []byte) (jsonadapt.Adapter, error) {
	v, err := d.Decode(data)
	if err != nil {
		return nil, err
	}
	return jsonadapt.Wrap[any](Backend{K: d.K}, v), nil
}
