package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/fixture"
)

// MatrixCmd runs a fixture manifest against backend pairs.
type MatrixCmd struct {
	Manifest string   `arg:"" help:"Fixture manifest (YAML)." type:"existingfile"`
	Backends []string `help:"Backends to include (default: all registered)." sep:","`
	Workers  int      `help:"Backend pairs checked concurrently." default:"4"`
	Verbose  bool     `short:"v" help:"List every failing comparison."`
}

func (c *MatrixCmd) Run(g *Globals) error {
	m, err := fixture.LoadManifest(c.Manifest)
	if err != nil {
		return err
	}
	kinds := jsonadapt.Kinds()
	if len(c.Backends) > 0 {
		kinds = kinds[:0]
		for _, b := range c.Backends {
			kinds = append(kinds, jsonadapt.Kind(b))
		}
	}

	r := &fixture.Runner{Loader: g.Loader, Logger: g.Logger, Workers: c.Workers}
	reports, err := r.Matrix(context.Background(), m, kinds)
	if err != nil {
		return err
	}

	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	failed := 0
	for _, rep := range reports {
		status := pass("PASS")
		fs := rep.Failures()
		if len(fs) > 0 {
			status = fail("FAIL")
			failed++
		}
		fmt.Fprintf(g.Out, "%s %-14s x %-14s %3d checks, %2d strict skipped\n",
			status, rep.KindA, rep.KindB, len(rep.Results), rep.SkippedStrict)
		if c.Verbose {
			for _, f := range fs {
				fmt.Fprintf(g.Out, "    %s at %s\n", f, f.Pointer)
			}
		}
	}
	if failed > 0 {
		return errDiffers
	}
	return nil
}
