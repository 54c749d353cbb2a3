package jsonadapt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	eng "github.com/reoring/jsonadapt/internal/engine"
)

// Loader reads documents and hands them to a registered backend. The zero
// Loader applies no limits and logs through slog.Default.
type Loader struct {
	Logger *slog.Logger
	// MaxBytes rejects inputs larger than this many bytes (0 = unlimited).
	MaxBytes int64
	// MaxDepth rejects JSON inputs nested deeper than this (0 = unlimited).
	MaxDepth int
	// OnDuplicateKey controls duplicate object keys in JSON inputs. Warn logs
	// them and lets the backend decide which value wins.
	OnDuplicateKey Severity
}

// DefaultLoader backs the package-level Load helpers.
var DefaultLoader = &Loader{}

// Load reads the file at path and parses it with backend k.
func Load(path string, k Kind) (Adapter, error) { return DefaultLoader.Load(path, k) }

// LoadBytes parses data with backend k.
func LoadBytes(data []byte, k Kind) (Adapter, error) { return DefaultLoader.LoadBytes(data, k) }

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Load reads the file at path and parses it with backend k.
func (l *Loader) Load(path string, k Kind) (Adapter, error) {
	d, err := l.driver(path, k)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, l.fail(&LoadError{Path: path, Kind: k, Code: CodeReadError, Cause: err})
	}
	defer f.Close()
	data, err := l.readAll(path, k, f)
	if err != nil {
		return nil, err
	}
	return l.parse(path, d, data)
}

// LoadReader reads r to EOF and parses the content with backend k.
func (l *Loader) LoadReader(r io.Reader, k Kind) (Adapter, error) {
	d, err := l.driver("", k)
	if err != nil {
		return nil, err
	}
	data, err := l.readAll("", k, r)
	if err != nil {
		return nil, err
	}
	return l.parse("", d, data)
}

// LoadBytes parses data with backend k.
func (l *Loader) LoadBytes(data []byte, k Kind) (Adapter, error) {
	return l.LoadReader(bytes.NewReader(data), k)
}

func (l *Loader) driver(path string, k Kind) (Driver, error) {
	d, ok := Lookup(k)
	if !ok {
		return nil, l.fail(&LoadError{Path: path, Kind: k, Code: CodeUnknownBackend, Cause: fmt.Errorf("backend %q is not registered", k)})
	}
	return d, nil
}

func (l *Loader) readAll(path string, k Kind, r io.Reader) ([]byte, error) {
	if l.MaxBytes > 0 {
		r = io.LimitReader(r, l.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, l.fail(&LoadError{Path: path, Kind: k, Code: CodeReadError, Cause: err})
	}
	if l.MaxBytes > 0 && int64(len(data)) > l.MaxBytes {
		return nil, l.fail(&LoadError{Path: path, Kind: k, Code: CodeTruncated, Cause: fmt.Errorf("input exceeds %d bytes", l.MaxBytes)})
	}
	return data, nil
}

func (l *Loader) parse(path string, d Driver, data []byte) (Adapter, error) {
	if d.Syntax() == SyntaxJSON && (l.MaxDepth > 0 || l.OnDuplicateKey != Ignore) {
		if err := l.enforce(path, d.Kind(), data); err != nil {
			return nil, err
		}
	}
	a, err := d.Parse(data)
	if err != nil {
		return nil, l.fail(&LoadError{Path: path, Kind: d.Kind(), Code: CodeParseError, Cause: err})
	}
	l.logger().Debug("document loaded", "path", path, "backend", string(d.Kind()), "type", a.Type().String())
	return a, nil
}

// enforce pre-scans JSON text for depth and duplicate key violations before
// the backend sees it.
func (l *Loader) enforce(path string, k Kind, data []byte) error {
	opt := eng.EnforceOptions{MaxDepth: l.MaxDepth}
	switch l.OnDuplicateKey {
	case Warn:
		opt.OnDuplicate = eng.DupWarn
		opt.IssueSink = func(si eng.SimpleIssue) {
			if si.Code == CodeDuplicateKey {
				l.logger().Warn("duplicate key", "path", path, "backend", string(k), "pointer", si.Path, "msg", si.Message)
			}
		}
	case Error:
		opt.OnDuplicate = eng.DupError
	}
	err := eng.Drain(eng.WrapWithEnforcement(eng.NewJSONBytes(data), opt))
	if err == nil {
		return nil
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return l.fail(&LoadError{Path: path, Kind: k, Code: ie.Code, Pointer: ie.Path, Cause: err})
	}
	return l.fail(&LoadError{Path: path, Kind: k, Code: CodeParseError, Cause: err})
}

func (l *Loader) fail(le *LoadError) error {
	l.logger().Warn("document load failed",
		"path", le.Path, "backend", string(le.Kind), "code", le.Code, "err", le.Cause)
	return le
}
