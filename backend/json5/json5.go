// Package json5 adapts JSON5 documents (comments, trailing commas, unquoted
// keys) decoded by github.com/titanous/json5. Numbers decode to float64.
package json5

import (
	j5 "github.com/titanous/json5"

	"github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/internal/anytree"
)

// Kind identifies this backend.
const Kind jsonadapt.Kind = "json5"

var traits = jsonadapt.Traits{Name: "titanous/json5"}

func init() { jsonadapt.Register(Driver()) }

// Driver returns the JSON5 driver.
func Driver() jsonadapt.Driver {
	return anytree.Driver{K: Kind, T: traits, S: jsonadapt.SyntaxJSON5, Decode: Decode}
}

// Decode parses JSON5 text.
func Decode(data []byte) (any, error) {
	var v any
	if err := j5.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Wrap adapts a value decoded by json5.
func Wrap(v any) jsonadapt.Node[any] {
	return jsonadapt.Wrap[any](anytree.Backend{K: Kind}, v)
}
