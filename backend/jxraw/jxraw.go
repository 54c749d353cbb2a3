// Package jxraw adapts raw JSON buffers through github.com/go-faster/jx. Nothing
// is decoded up front: every node is a jx.Raw slice of the original input and
// children are located by scanning it on demand.
package jxraw

import (
	"bytes"
	"errors"
	"iter"

	"github.com/go-faster/jx"

	"github.com/reoring/jsonadapt"
)

// Kind identifies this backend.
const Kind jsonadapt.Kind = "jx"

var traits = jsonadapt.Traits{Name: "go-faster/jx", HasStrictTypes: true, PreservesOrder: true}

var errStop = errors.New("jxraw: iteration stopped")

func init() { jsonadapt.Register(driver{}) }

// Driver returns the jx driver.
func Driver() jsonadapt.Driver { return driver{} }

type driver struct{}

func (driver) Kind() jsonadapt.Kind     { return Kind }
func (driver) Traits() jsonadapt.Traits { return traits }
func (driver) Syntax() jsonadapt.Syntax { return jsonadapt.SyntaxJSON }

func (driver) Parse(data []byte) (jsonadapt.Adapter, error) {
	r, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Wrap(r), nil
}

// Decode validates data and returns the raw root value. The result aliases
// data, which must not be modified afterwards.
func Decode(data []byte) (jx.Raw, error) {
	if err := jx.DecodeBytes(data).Validate(); err != nil {
		return nil, err
	}
	return jx.DecodeBytes(data).Raw()
}

// Wrap adapts a raw JSON value.
func Wrap(r jx.Raw) jsonadapt.Node[jx.Raw] { return jsonadapt.Wrap[jx.Raw](Backend{}, r) }

// Backend implements jsonadapt.Backend over jx.Raw.
type Backend struct{}

func (Backend) Kind() jsonadapt.Kind { return Kind }

// isInt reports whether a number literal has no fraction or exponent part.
func isInt(r jx.Raw) bool { return !bytes.ContainsAny(r, ".eE") }

func (Backend) TypeOf(r jx.Raw) jsonadapt.Type {
	switch r.Type() {
	case jx.Null:
		return jsonadapt.TypeNull
	case jx.Bool:
		return jsonadapt.TypeBool
	case jx.String:
		return jsonadapt.TypeString
	case jx.Array:
		return jsonadapt.TypeArray
	case jx.Object:
		return jsonadapt.TypeObject
	case jx.Number:
		if isInt(r) {
			return jsonadapt.TypeInteger
		}
		return jsonadapt.TypeDouble
	}
	return jsonadapt.TypeInvalid
}

func (Backend) Bool(r jx.Raw) bool {
	b, _ := jx.DecodeBytes(r).Bool()
	return b
}

func (Backend) Str(r jx.Raw) string {
	s, _ := jx.DecodeBytes(r).Str()
	return s
}

func (Backend) Float(r jx.Raw) float64 {
	f, _ := jx.DecodeBytes(r).Float64()
	return f
}

func (b Backend) Int(r jx.Raw) (int64, bool) {
	if isInt(r) {
		if i, err := jx.DecodeBytes(r).Int64(); err == nil {
			return i, true
		}
	}
	return jsonadapt.FloatToInt(b.Float(r))
}

func (Backend) Len(r jx.Raw) int {
	count := 0
	d := jx.DecodeBytes(r)
	switch r.Type() {
	case jx.Array:
		_ = d.Arr(func(d *jx.Decoder) error {
			count++
			return d.Skip()
		})
	case jx.Object:
		_ = d.ObjBytes(func(d *jx.Decoder, _ []byte) error {
			count++
			return d.Skip()
		})
	}
	return count
}

func (Backend) Elements(r jx.Raw) iter.Seq[jx.Raw] {
	return func(yield func(jx.Raw) bool) {
		_ = jx.DecodeBytes(r).Arr(func(d *jx.Decoder) error {
			e, err := d.Raw()
			if err != nil {
				return err
			}
			if !yield(e) {
				return errStop
			}
			return nil
		})
	}
}

func (Backend) Members(r jx.Raw) iter.Seq2[string, jx.Raw] {
	return func(yield func(string, jx.Raw) bool) {
		_ = jx.DecodeBytes(r).ObjBytes(func(d *jx.Decoder, key []byte) error {
			// key is only valid during the callback.
			k := string(key)
			e, err := d.Raw()
			if err != nil {
				return err
			}
			if !yield(k, e) {
				return errStop
			}
			return nil
		})
	}
}

// Lookup scans the object; a repeated key resolves to its last occurrence.
func (b Backend) Lookup(r jx.Raw, key string) (jx.Raw, bool) {
	var found jx.Raw
	for k, e := range b.Members(r) {
		if k == key {
			found = e
		}
	}
	return found, found != nil
}
