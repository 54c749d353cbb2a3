package jsonadapt

import (
	"slices"
	"sync"
)

// Driver turns raw input into an Adapter for one backend and carries that
// backend's Traits. Backend packages register a Driver from init.
type Driver interface {
	Kind() Kind
	Traits() Traits
	Syntax() Syntax
	// Parse decodes data into a new backend document and wraps its root.
	Parse(data []byte) (Adapter, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[Kind]Driver)
)

// Register makes a driver available by its Kind. It is meant to be called
// from init and panics on a nil driver or a Kind registered twice.
func Register(d Driver) {
	if d == nil {
		panic("jsonadapt: Register driver is nil")
	}
	driversMu.Lock()
	defer driversMu.Unlock()
	k := d.Kind()
	if _, dup := drivers[k]; dup {
		panic("jsonadapt: Register called twice for backend " + string(k))
	}
	drivers[k] = d
}

// Lookup returns the driver registered for k.
func Lookup(k Kind) (Driver, bool) {
	driversMu.RLock()
	d, ok := drivers[k]
	driversMu.RUnlock()
	return d, ok
}

// TraitsOf returns the Traits registered for k. Unknown kinds get a record
// named after the kind with every capability off.
func TraitsOf(k Kind) Traits {
	if d, ok := Lookup(k); ok {
		return d.Traits()
	}
	return Traits{Name: string(k)}
}

// Kinds lists registered backends in sorted order.
func Kinds() []Kind {
	driversMu.RLock()
	out := make([]Kind, 0, len(drivers))
	for k := range drivers {
		out = append(out, k)
	}
	driversMu.RUnlock()
	slices.Sort(out)
	return out
}

// SameBackend reports whether a and b were produced by the same backend.
func SameBackend(a, b Adapter) bool { return a.Kind() == b.Kind() }

// StrictComparable reports whether a strict comparison between a and b is
// meaningful: both backends keep integers apart from doubles and they are the
// same backend, so any type degradation happened the same way on both sides.
func StrictComparable(a, b Adapter) bool {
	return SameBackend(a, b) && a.Traits().HasStrictTypes && b.Traits().HasStrictTypes
}
