// Package yamlv3 adapts gopkg.in/yaml.v3 node trees. Scalars keep their
// resolved tags, so !!int and !!float stay apart, and mapping members iterate
// in source order. Any JSON document is also valid YAML, so this backend reads
// JSON files as well.
package yamlv3

import (
	"errors"
	"iter"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonadapt"
)

// Kind identifies this backend.
const Kind jsonadapt.Kind = "yaml.v3"

var traits = jsonadapt.Traits{Name: "gopkg.in/yaml.v3", HasStrictTypes: true, PreservesOrder: true}

func init() { jsonadapt.Register(driver{}) }

// Driver returns the yaml.v3 driver.
func Driver() jsonadapt.Driver { return driver{} }

type driver struct{}

func (driver) Kind() jsonadapt.Kind     { return Kind }
func (driver) Traits() jsonadapt.Traits { return traits }
func (driver) Syntax() jsonadapt.Syntax { return jsonadapt.SyntaxYAML }

func (driver) Parse(data []byte) (jsonadapt.Adapter, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Wrap(root), nil
}

// Decode parses the first YAML document in data and returns its root node.
func Decode(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("yamlv3: empty document")
	}
	return doc.Content[0], nil
}

// Wrap adapts a yaml.v3 node. Document and alias nodes are followed to the
// value they stand for.
func Wrap(n *yaml.Node) jsonadapt.Node[*yaml.Node] {
	return jsonadapt.Wrap[*yaml.Node](Backend{}, n)
}

// Backend implements jsonadapt.Backend over *yaml.Node.
type Backend struct{}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func (Backend) Kind() jsonadapt.Kind { return Kind }

func (Backend) TypeOf(n *yaml.Node) jsonadapt.Type {
	n = resolve(n)
	if n == nil {
		return jsonadapt.TypeInvalid
	}
	switch n.Kind {
	case yaml.MappingNode:
		return jsonadapt.TypeObject
	case yaml.SequenceNode:
		return jsonadapt.TypeArray
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return jsonadapt.TypeNull
		case "!!bool":
			return jsonadapt.TypeBool
		case "!!int":
			return jsonadapt.TypeInteger
		case "!!float":
			return jsonadapt.TypeDouble
		default:
			// !!str, !!timestamp, !!binary and custom tags read as text.
			return jsonadapt.TypeString
		}
	}
	return jsonadapt.TypeInvalid
}

func (Backend) Bool(n *yaml.Node) bool {
	var b bool
	_ = resolve(n).Decode(&b)
	return b
}

func (Backend) Str(n *yaml.Node) string { return resolve(n).Value }

func (Backend) Float(n *yaml.Node) float64 {
	var f float64
	_ = resolve(n).Decode(&f)
	return f
}

func (b Backend) Int(n *yaml.Node) (int64, bool) {
	n = resolve(n)
	if n.ShortTag() == "!!int" {
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, true
		}
	}
	return jsonadapt.FloatToInt(b.Float(n))
}

func (Backend) Len(n *yaml.Node) int {
	n = resolve(n)
	switch n.Kind {
	case yaml.SequenceNode:
		return len(n.Content)
	case yaml.MappingNode:
		return len(n.Content) / 2
	}
	return 0
}

func (Backend) Elements(n *yaml.Node) iter.Seq[*yaml.Node] {
	return func(yield func(*yaml.Node) bool) {
		for _, c := range resolve(n).Content {
			if !yield(c) {
				return
			}
		}
	}
}

func (Backend) Members(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		m := resolve(n)
		for i := 0; i+1 < len(m.Content); i += 2 {
			if !yield(resolve(m.Content[i]).Value, m.Content[i+1]) {
				return
			}
		}
	}
}

// Lookup scans the mapping; a repeated key resolves to its last occurrence.
func (Backend) Lookup(n *yaml.Node, key string) (*yaml.Node, bool) {
	n = resolve(n)
	var found *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		if resolve(n.Content[i]).Value == key {
			found = n.Content[i+1]
		}
	}
	return found, found != nil
}
