// Package jsoniter adapts the lazy Any API of github.com/json-iterator/go.
// Any models every number as one NumberValue type, so this backend has no
// strict types even though integral literals are read back exactly.
package jsoniter

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"

	ji "github.com/json-iterator/go"

	"github.com/reoring/jsonadapt"
)

// Kind identifies this backend.
const Kind jsonadapt.Kind = "jsoniter"

var traits = jsonadapt.Traits{Name: "json-iterator/go"}

func init() { jsonadapt.Register(driver{}) }

// Driver returns the json-iterator driver.
func Driver() jsonadapt.Driver { return driver{} }

type driver struct{}

func (driver) Kind() jsonadapt.Kind     { return Kind }
func (driver) Traits() jsonadapt.Traits { return traits }
func (driver) Syntax() jsonadapt.Syntax { return jsonadapt.SyntaxJSON }

func (driver) Parse(data []byte) (jsonadapt.Adapter, error) {
	a, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Wrap(a), nil
}

// Decode validates data and returns a lazy Any over it.
//
// The iterator's number scanner reports io.EOF when a number ends the
// buffer, so the document is read from a copy with one trailing newline.
func Decode(data []byte) (ji.Any, error) {
	buf := append(slices.Clip(data), '\n')
	it := ji.ConfigDefault.BorrowIterator(buf)
	defer ji.ConfigDefault.ReturnIterator(it)
	it.Skip()
	if it.Error != nil {
		return nil, fmt.Errorf("jsoniter: invalid JSON: %w", it.Error)
	}
	// Only whitespace may follow: the next read must run into io.EOF.
	it.WhatIsNext()
	if it.Error != io.EOF {
		return nil, errors.New("jsoniter: invalid JSON: trailing data after document")
	}
	a := ji.Get(buf)
	if err := a.LastError(); err != nil {
		return nil, err
	}
	return a, nil
}

// Wrap adapts a json-iterator Any.
func Wrap(a ji.Any) jsonadapt.Node[ji.Any] { return jsonadapt.Wrap[ji.Any](Backend{}, a) }

// Backend implements jsonadapt.Backend over ji.Any.
type Backend struct{}

func (Backend) Kind() jsonadapt.Kind { return Kind }

func (Backend) TypeOf(a ji.Any) jsonadapt.Type {
	if a == nil {
		return jsonadapt.TypeInvalid
	}
	switch a.ValueType() {
	case ji.NilValue:
		return jsonadapt.TypeNull
	case ji.BoolValue:
		return jsonadapt.TypeBool
	case ji.NumberValue:
		return jsonadapt.TypeDouble
	case ji.StringValue:
		return jsonadapt.TypeString
	case ji.ArrayValue:
		return jsonadapt.TypeArray
	case ji.ObjectValue:
		return jsonadapt.TypeObject
	}
	return jsonadapt.TypeInvalid
}

func (Backend) Bool(a ji.Any) bool     { return a.ToBool() }
func (Backend) Str(a ji.Any) string    { return a.ToString() }
func (Backend) Float(a ji.Any) float64 { return a.ToFloat64() }

// Int reads integral literals through strconv so values beyond 2^53 keep
// their precision.
func (Backend) Int(a ji.Any) (int64, bool) {
	lit := a.ToString()
	if lit != "" && !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return i, true
		}
	}
	return jsonadapt.FloatToInt(a.ToFloat64())
}

func (Backend) Len(a ji.Any) int { return a.Size() }

func (Backend) Elements(a ji.Any) iter.Seq[ji.Any] {
	return func(yield func(ji.Any) bool) {
		for i, n := 0, a.Size(); i < n; i++ {
			if !yield(a.Get(i)) {
				return
			}
		}
	}
}

// Members walks the raw object once, so every occurrence of a repeated key
// is yielded with its own value.
func (Backend) Members(a ji.Any) iter.Seq2[string, ji.Any] {
	return func(yield func(string, ji.Any) bool) {
		if a.ValueType() != ji.ObjectValue {
			return
		}
		it := ji.ParseString(ji.ConfigDefault, a.ToString())
		it.ReadObjectCB(func(it *ji.Iterator, k string) bool {
			return yield(k, it.ReadAny())
		})
	}
}

// Lookup resolves a repeated key to its last occurrence. Any.Get stops at
// the first one.
func (b Backend) Lookup(a ji.Any, key string) (ji.Any, bool) {
	var last ji.Any
	for k, v := range b.Members(a) {
		if k == key {
			last = v
		}
	}
	return last, last != nil
}
