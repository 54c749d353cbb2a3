// Package jsonadapt lets code read and compare JSON documents without caring
// which library parsed them.
//
// - Adapter: a read-only view over one parsed node (type predicates, typed
//   accessors, lazy element/member iteration)
// - Backend[N] / Node[N]: the per-library descriptor and the generic view it
//   drives; one Backend per parsing library lives under backend/
// - Traits registry: name, strict-type and key-order metadata per backend,
//   filled by backend packages at init
// - Equal / Diff: structural equality across backends, strict or loose
// - Loader: reads files, enforces size/depth/duplicate-key limits and parses
//   with a chosen backend
//
// Typical usage:
//
//	import _ "github.com/reoring/jsonadapt/backend/all"
//
//	a, err := jsonadapt.Load("a.json", stdjson.Kind)
//	b, err := jsonadapt.Load("b.yaml", yamlv3.Kind)
//	if a.EqualTo(b, false) { ... }
//	if jsonadapt.StrictComparable(a, b) && !a.EqualTo(b, true) { ... }
package jsonadapt
