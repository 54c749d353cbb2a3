// Package fixture describes sample documents tagged with comparison groups and
// checks that every backend pair agrees with the expected equalities.
//
// Two documents sharing a strict group must be strictly equal; two sharing a
// loose group must be loosely equal; any other pair must differ under that
// mode. Strict expectations are only asserted between two adapters of the same
// backend that keeps integers apart from doubles.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsonpatch "github.com/evanphx/json-patch"
	"gopkg.in/yaml.v3"
)

// Document is one fixture file with its comparison groups.
//
// Patch, when set, is an RFC 6902 JSON Patch applied to the file's content
// before it is parsed, so one file can seed several variants. Variants need a
// Name because they share a Path.
type Document struct {
	Name   string `yaml:"name,omitempty"`
	Path   string `yaml:"path"`
	Patch  string `yaml:"patch,omitempty"`
	Strict int    `yaml:"strict"`
	Loose  int    `yaml:"loose"`
}

// ID is the document's Name, or its Path when unnamed.
func (d Document) ID() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Path
}

// Manifest lists fixture documents. Relative paths resolve against Dir.
type Manifest struct {
	Dir       string     `yaml:"dir"`
	Documents []Document `yaml:"documents"`
}

// Pair is an unordered pair of manifest entries; A and B may be the same.
type Pair struct {
	A, B Document
}

// LoadManifest reads a YAML manifest. A relative dir inside the manifest is
// resolved against the manifest's own directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read manifest: %w", err)
	}
	return ParseManifest(data, filepath.Dir(path))
}

// ParseManifest decodes a YAML manifest. Unknown fields are rejected.
func ParseManifest(data []byte, baseDir string) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("fixture: empty manifest")
		}
		return nil, fmt.Errorf("fixture: decode manifest: %w", err)
	}
	if !filepath.IsAbs(m.Dir) {
		m.Dir = filepath.Join(baseDir, m.Dir)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the manifest names at least one document, that every
// ID is unique and that every patch decodes.
func (m *Manifest) Validate() error {
	if len(m.Documents) == 0 {
		return errors.New("fixture: manifest has no documents")
	}
	seen := make(map[string]struct{}, len(m.Documents))
	for i, d := range m.Documents {
		if d.Path == "" {
			return fmt.Errorf("fixture: document %d has no path", i)
		}
		if _, dup := seen[d.ID()]; dup {
			return fmt.Errorf("fixture: document %q listed twice", d.ID())
		}
		seen[d.ID()] = struct{}{}
		if d.Patch != "" {
			if _, err := jsonpatch.DecodePatch([]byte(d.Patch)); err != nil {
				return fmt.Errorf("fixture: document %q: decode patch: %w", d.ID(), err)
			}
		}
	}
	return nil
}

// Resolve returns the file system path of d.
func (m *Manifest) Resolve(d Document) string {
	if filepath.IsAbs(d.Path) {
		return d.Path
	}
	return filepath.Join(m.Dir, d.Path)
}

// Read returns the bytes of d with its patch, if any, applied.
func (m *Manifest) Read(d Document) ([]byte, error) {
	data, err := os.ReadFile(m.Resolve(d))
	if err != nil {
		return nil, err
	}
	if d.Patch == "" {
		return data, nil
	}
	p, err := jsonpatch.DecodePatch([]byte(d.Patch))
	if err != nil {
		return nil, fmt.Errorf("fixture: document %q: decode patch: %w", d.ID(), err)
	}
	out, err := p.Apply(data)
	if err != nil {
		return nil, fmt.Errorf("fixture: document %q: apply patch: %w", d.ID(), err)
	}
	return out, nil
}

// Pairs returns every unordered pair of documents in manifest order. Every
// document is paired with itself, the last one included.
func (m *Manifest) Pairs() []Pair {
	n := len(m.Documents)
	out := make([]Pair, 0, n*(n+1)/2)
	for i := range n {
		for j := i; j < n; j++ {
			out = append(out, Pair{A: m.Documents[i], B: m.Documents[j]})
		}
	}
	return out
}

// WantStrict reports whether the pair is expected to be strictly equal.
func (p Pair) WantStrict() bool { return p.A.Strict == p.B.Strict }

// WantLoose reports whether the pair is expected to be loosely equal.
func (p Pair) WantLoose() bool { return p.A.Loose == p.B.Loose }
