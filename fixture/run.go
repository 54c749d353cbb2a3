package fixture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reoring/jsonadapt"
)

// Mode selects strict or loose comparison.
type Mode int

const (
	Loose Mode = iota
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "loose"
}

// Result records one directed comparison.
type Result struct {
	Pair  Pair
	KindA jsonadapt.Kind
	KindB jsonadapt.Kind
	Mode  Mode
	// Reversed is set when B was compared to A.
	Reversed bool
	Want     bool
	Got      bool
	// Pointer locates the first difference when Got is false.
	Pointer string
}

// OK reports whether the outcome matched the expectation.
func (r Result) OK() bool { return r.Want == r.Got }

func (r Result) String() string {
	a, b := r.Pair.A.ID(), r.Pair.B.ID()
	if r.Reversed {
		a, b = b, a
	}
	return fmt.Sprintf("%s %s(%s) vs %s(%s): want %t, got %t", r.Mode, a, r.KindA, b, r.KindB, r.Want, r.Got)
}

// Report collects the results of one backend pair.
type Report struct {
	KindA, KindB jsonadapt.Kind
	Results      []Result
	// SkippedStrict counts pairs whose strict expectation was not asserted.
	SkippedStrict int
}

// Failures returns the results that did not match their expectation.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// OK reports whether every result matched.
func (r *Report) OK() bool { return len(r.Failures()) == 0 }

// Runner loads manifest documents and runs pairwise comparisons.
type Runner struct {
	Loader *jsonadapt.Loader
	Logger *slog.Logger
	// Workers bounds concurrent backend pairs in Matrix (default 4).
	Workers int
}

func (r *Runner) loader() *jsonadapt.Loader {
	if r.Loader != nil {
		return r.Loader
	}
	return jsonadapt.DefaultLoader
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// loadAll parses every manifest document with backend k, keyed by ID.
func (r *Runner) loadAll(m *Manifest, k jsonadapt.Kind) (map[string]jsonadapt.Adapter, error) {
	out := make(map[string]jsonadapt.Adapter, len(m.Documents))
	for _, d := range m.Documents {
		var (
			a   jsonadapt.Adapter
			err error
		)
		if d.Patch == "" {
			a, err = r.loader().Load(m.Resolve(d), k)
		} else {
			a, err = r.loadPatched(m, d, k)
		}
		if err != nil {
			return nil, err
		}
		out[d.ID()] = a
	}
	return out, nil
}

func (r *Runner) loadPatched(m *Manifest, d Document, k jsonadapt.Kind) (jsonadapt.Adapter, error) {
	data, err := m.Read(d)
	if err != nil {
		return nil, err
	}
	a, err := r.loader().LoadBytes(data, k)
	if err != nil {
		return nil, fmt.Errorf("fixture: document %q: %w", d.ID(), err)
	}
	return a, nil
}

// Run compares every manifest pair, loading side A with ka and side B with kb.
// Loose expectations are checked in both directions. Strict expectations are
// checked only when both sides come from the same strict-typed backend;
// otherwise they are counted in SkippedStrict.
func (r *Runner) Run(ctx context.Context, m *Manifest, ka, kb jsonadapt.Kind) (*Report, error) {
	docsA, err := r.loadAll(m, ka)
	if err != nil {
		return nil, err
	}
	docsB := docsA
	if kb != ka {
		if docsB, err = r.loadAll(m, kb); err != nil {
			return nil, err
		}
	}

	rep := &Report{KindA: ka, KindB: kb}
	for _, p := range m.Pairs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, b := docsA[p.A.ID()], docsB[p.B.ID()]
		if jsonadapt.StrictComparable(a, b) {
			rep.Results = append(rep.Results, compare(p, a, b, Strict, ka, kb)...)
		} else {
			rep.SkippedStrict++
		}
		rep.Results = append(rep.Results, compare(p, a, b, Loose, ka, kb)...)
	}
	r.logger().Debug("fixture run finished",
		"a", string(ka), "b", string(kb), "results", len(rep.Results), "skipped_strict", rep.SkippedStrict)
	return rep, nil
}

func compare(p Pair, a, b jsonadapt.Adapter, mode Mode, ka, kb jsonadapt.Kind) []Result {
	want := p.WantLoose()
	if mode == Strict {
		want = p.WantStrict()
	}
	strict := mode == Strict
	fwdPtr, fwd := jsonadapt.Diff(a, b, strict)
	revPtr, rev := jsonadapt.Diff(b, a, strict)
	return []Result{
		{Pair: p, KindA: ka, KindB: kb, Mode: mode, Want: want, Got: fwd, Pointer: fwdPtr},
		{Pair: p, KindA: kb, KindB: ka, Mode: mode, Reversed: true, Want: want, Got: rev, Pointer: revPtr},
	}
}

// Matrix runs every ordered pair of kinds, at most Workers at a time, and
// returns the reports in row-major order of kinds.
func (r *Runner) Matrix(ctx context.Context, m *Manifest, kinds []jsonadapt.Kind) ([]*Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := r.Workers
	if workers <= 0 {
		workers = 4
	}
	sem := make(chan struct{}, workers)
	reports := make([]*Report, len(kinds)*len(kinds))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, ka := range kinds {
		for j, kb := range kinds {
			idx := i*len(kinds) + j
			wg.Add(1)
			go func() {
				defer wg.Done()
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					return
				}
				defer func() { <-sem }()
				rep, err := r.Run(ctx, m, ka, kb)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
						cancel()
					}
					mu.Unlock()
					return
				}
				reports[idx] = rep
			}()
		}
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
