// Package stdjson adapts documents decoded by encoding/json with
// Decoder.UseNumber, which keeps the literal text of every number and so
// distinguishes integers from doubles.
package stdjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/internal/anytree"
)

// Kind identifies this backend.
const Kind jsonadapt.Kind = "encoding/json"

var traits = jsonadapt.Traits{Name: "encoding/json", HasStrictTypes: true}

func init() { jsonadapt.Register(Driver()) }

// Driver returns the encoding/json driver.
func Driver() jsonadapt.Driver {
	return anytree.Driver{K: Kind, T: traits, S: jsonadapt.SyntaxJSON, Decode: Decode}
}

// Decode parses exactly one JSON value. Numbers come back as json.Number.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("stdjson: unexpected data after top-level value")
	}
	return v, nil
}

// Wrap adapts a value decoded by encoding/json. Integer/double kinds are only
// reported correctly for numbers decoded as json.Number.
func Wrap(v any) jsonadapt.Node[any] {
	return jsonadapt.Wrap[any](anytree.Backend{K: Kind}, v)
}
