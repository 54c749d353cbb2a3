// Package goyaml adapts github.com/goccy/go-yaml syntax trees. Integer and
// float literals parse into distinct AST node types and mappings keep their
// source order. Aliases are followed through the anchors of the same document.
package goyaml

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/reoring/jsonadapt"
)

// Kind identifies this backend.
const Kind jsonadapt.Kind = "go-yaml"

var traits = jsonadapt.Traits{Name: "goccy/go-yaml", HasStrictTypes: true, PreservesOrder: true}

// maxIndirections bounds anchor/tag/alias chains.
const maxIndirections = 64

// jsonNumber is the JSON number grammar. go-yaml reads exponent literals
// without a fraction, such as 1e2, as plain strings.
var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func init() { jsonadapt.Register(driver{}) }

// Driver returns the go-yaml driver.
func Driver() jsonadapt.Driver { return driver{} }

type driver struct{}

func (driver) Kind() jsonadapt.Kind     { return Kind }
func (driver) Traits() jsonadapt.Traits { return traits }
func (driver) Syntax() jsonadapt.Syntax { return jsonadapt.SyntaxYAML }

func (driver) Parse(data []byte) (jsonadapt.Adapter, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Wrap(v), nil
}

// Value is one AST node together with the anchors of its document.
type Value struct {
	node    ast.Node
	anchors map[string]ast.Node
}

// Decode parses the first document in data. Repeated mapping keys are kept;
// Lookup resolves them to the last occurrence.
func Decode(data []byte) (Value, error) {
	f, err := parser.ParseBytes(data, 0, parser.AllowDuplicateMapKey())
	if err != nil {
		return Value{}, err
	}
	if len(f.Docs) == 0 || f.Docs[0] == nil || f.Docs[0].Body == nil {
		return Value{}, errors.New("goyaml: empty document")
	}
	body := f.Docs[0].Body
	anchors := make(map[string]ast.Node)
	collectAnchors(body, anchors)
	return Value{node: body, anchors: anchors}, nil
}

// Wrap adapts a decoded value.
func Wrap(v Value) jsonadapt.Node[Value] { return jsonadapt.Wrap[Value](Backend{}, v) }

func collectAnchors(n ast.Node, into map[string]ast.Node) {
	switch x := n.(type) {
	case *ast.AnchorNode:
		into[tokenText(x.Name)] = x.Value
		collectAnchors(x.Value, into)
	case *ast.TagNode:
		collectAnchors(x.Value, into)
	case *ast.MappingNode:
		for _, mv := range x.Values {
			collectAnchors(mv.Value, into)
		}
	case *ast.MappingValueNode:
		collectAnchors(x.Value, into)
	case *ast.SequenceNode:
		for _, e := range x.Values {
			collectAnchors(e, into)
		}
	}
}

// tokenText renders a key, anchor name or alias name as plain text.
func tokenText(n any) string {
	switch x := n.(type) {
	case nil:
		return ""
	case *ast.StringNode:
		return x.Value
	case *ast.MappingKeyNode:
		return tokenText(x.Value)
	case interface{ GetToken() *token.Token }:
		if tk := x.GetToken(); tk != nil {
			return tk.Value
		}
	}
	return fmt.Sprint(n)
}

// resolve strips anchors, tags and aliases. forcedStr is set when an explicit
// !!str tag overrides the literal's own type.
func (v Value) resolve() (n ast.Node, forcedStr bool) {
	n = v.node
	for range maxIndirections {
		switch x := n.(type) {
		case *ast.DocumentNode:
			n = x.Body
		case *ast.AnchorNode:
			n = x.Value
		case *ast.AliasNode:
			n = v.anchors[tokenText(x.Value)]
		case *ast.TagNode:
			if tokenText(x) == "!!str" {
				forcedStr = true
			}
			n = x.Value
		default:
			return n, forcedStr
		}
	}
	return nil, false
}

func (v Value) child(n ast.Node) Value { return Value{node: n, anchors: v.anchors} }

// numericString reports the value of an unquoted string scalar that is a JSON
// number literal.
func numericString(n ast.Node) (float64, bool) {
	x, ok := n.(*ast.StringNode)
	if !ok || x.Token == nil {
		return 0, false
	}
	switch x.Token.Type {
	case token.DoubleQuoteType, token.SingleQuoteType:
		return 0, false
	}
	if !jsonNumber.MatchString(x.Value) {
		return 0, false
	}
	f, err := strconv.ParseFloat(x.Value, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// Backend implements jsonadapt.Backend over Value.
type Backend struct{}

func (Backend) Kind() jsonadapt.Kind { return Kind }

func (Backend) TypeOf(v Value) jsonadapt.Type {
	n, forcedStr := v.resolve()
	if n == nil {
		return jsonadapt.TypeInvalid
	}
	if forcedStr {
		return jsonadapt.TypeString
	}
	switch n.(type) {
	case *ast.NullNode:
		return jsonadapt.TypeNull
	case *ast.BoolNode:
		return jsonadapt.TypeBool
	case *ast.IntegerNode:
		return jsonadapt.TypeInteger
	case *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		return jsonadapt.TypeDouble
	case *ast.StringNode:
		if _, ok := numericString(n); ok {
			return jsonadapt.TypeDouble
		}
		return jsonadapt.TypeString
	case *ast.LiteralNode:
		return jsonadapt.TypeString
	case *ast.SequenceNode:
		return jsonadapt.TypeArray
	case *ast.MappingNode, *ast.MappingValueNode:
		return jsonadapt.TypeObject
	}
	return jsonadapt.TypeInvalid
}

func (Backend) Bool(v Value) bool {
	n, _ := v.resolve()
	b, _ := n.(*ast.BoolNode)
	return b != nil && b.Value
}

func (Backend) Str(v Value) string {
	n, _ := v.resolve()
	switch x := n.(type) {
	case *ast.StringNode:
		return x.Value
	case *ast.LiteralNode:
		if x.Value != nil {
			return x.Value.Value
		}
		return ""
	}
	return tokenText(n)
}

func (Backend) Float(v Value) float64 {
	n, forcedStr := v.resolve()
	switch x := n.(type) {
	case *ast.StringNode:
		if f, ok := numericString(x); ok && !forcedStr {
			return f
		}
	case *ast.FloatNode:
		return x.Value
	case *ast.InfinityNode:
		return x.Value
	case *ast.NanNode:
		return math.NaN()
	case *ast.IntegerNode:
		switch i := x.Value.(type) {
		case int64:
			return float64(i)
		case uint64:
			return float64(i)
		case int:
			return float64(i)
		}
	}
	return math.NaN()
}

func (b Backend) Int(v Value) (int64, bool) {
	n, _ := v.resolve()
	if x, ok := n.(*ast.IntegerNode); ok {
		switch i := x.Value.(type) {
		case int64:
			return i, true
		case int:
			return int64(i), true
		case uint64:
			if i > math.MaxInt64 {
				return math.MaxInt64, false
			}
			return int64(i), true
		}
	}
	return jsonadapt.FloatToInt(b.Float(v))
}

func (Backend) Len(v Value) int {
	n, _ := v.resolve()
	switch x := n.(type) {
	case *ast.SequenceNode:
		return len(x.Values)
	case *ast.MappingNode:
		return len(x.Values)
	case *ast.MappingValueNode:
		return 1
	}
	return 0
}

func (Backend) Elements(v Value) iter.Seq[Value] {
	return func(yield func(Value) bool) {
		n, _ := v.resolve()
		seq, ok := n.(*ast.SequenceNode)
		if !ok {
			return
		}
		for _, e := range seq.Values {
			if !yield(v.child(e)) {
				return
			}
		}
	}
}

func mappingValues(n ast.Node) []*ast.MappingValueNode {
	switch x := n.(type) {
	case *ast.MappingNode:
		return x.Values
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{x}
	}
	return nil
}

func (Backend) Members(v Value) iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		n, _ := v.resolve()
		for _, mv := range mappingValues(n) {
			if !yield(tokenText(mv.Key), v.child(mv.Value)) {
				return
			}
		}
	}
}

// Lookup scans the mapping; a repeated key resolves to its last occurrence.
func (Backend) Lookup(v Value, key string) (Value, bool) {
	n, _ := v.resolve()
	var found ast.Node
	for _, mv := range mappingValues(n) {
		if tokenText(mv.Key) == key {
			found = mv.Value
		}
	}
	if found == nil {
		return Value{}, false
	}
	return v.child(found), true
}
