// Package gojson adapts documents decoded by github.com/goccy/go-json into
// plain Go values. Numbers decode to float64, so this backend has no strict
// types.
package gojson

import (
	j "github.com/goccy/go-json"

	"github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/internal/anytree"
)

// Kind identifies this backend.
const Kind jsonadapt.Kind = "go-json"

var traits = jsonadapt.Traits{Name: "go-json"}

func init() { jsonadapt.Register(Driver()) }

// Driver returns the go-json driver.
func Driver() jsonadapt.Driver {
	return anytree.Driver{K: Kind, T: traits, S: jsonadapt.SyntaxJSON, Decode: Decode}
}

// Decode parses data with go-json.
func Decode(data []byte) (any, error) {
	var v any
	if err := j.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Wrap adapts a value decoded by go-json.
func Wrap(v any) jsonadapt.Node[any] {
	return jsonadapt.Wrap[any](anytree.Backend{K: Kind}, v)
}
