package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/i18n"
)

// CompareCmd compares two documents.
type CompareCmd struct {
	A        string `arg:"" help:"First document." type:"existingfile"`
	B        string `arg:"" help:"Second document." type:"existingfile"`
	BackendA string `short:"a" help:"Backend for the first document." default:"encoding/json"`
	BackendB string `short:"b" help:"Backend for the second document." default:"encoding/json"`
	Strict   bool   `short:"s" help:"Require matching integer/double kinds."`
}

func (c *CompareCmd) Run(g *Globals) error {
	a, err := g.Loader.Load(c.A, jsonadapt.Kind(c.BackendA))
	if err != nil {
		return err
	}
	b, err := g.Loader.Load(c.B, jsonadapt.Kind(c.BackendB))
	if err != nil {
		return err
	}
	if c.Strict && !jsonadapt.StrictComparable(a, b) {
		g.Logger.Warn("strict comparison is only meaningful within one strict-typed backend",
			"a", c.BackendA, "b", c.BackendB)
	}

	mode := "loose"
	if c.Strict {
		mode = "strict"
	}
	ptr, ok := jsonadapt.Diff(a, b, c.Strict)
	if ok {
		fmt.Fprintf(g.Out, "%s (%s, %s vs %s)\n", color.GreenString(i18n.T("equal", nil)), mode, c.BackendA, c.BackendB)
		return nil
	}
	fmt.Fprintf(g.Out, "%s at %s (%s, %s vs %s)\n", color.RedString(i18n.T("not_equal", nil)), ptr, mode, c.BackendA, c.BackendB)
	if d := describeLeaves(a, b, ptr); d != "" {
		fmt.Fprintln(g.Out, d)
	}
	return errDiffers
}

// describeLeaves shows what sits at ptr on both sides, with a character diff
// when both are strings.
func describeLeaves(a, b jsonadapt.Adapter, ptr string) string {
	la, okA := jsonadapt.At(a, ptr)
	lb, okB := jsonadapt.At(b, ptr)
	if !okA || !okB {
		return ""
	}
	if la.IsString() && lb.IsString() {
		sa, _ := la.Str()
		sb, _ := lb.Str()
		return "  " + stringDiff(sa, sb)
	}
	return fmt.Sprintf("  %s vs %s", summary(la), summary(lb))
}

// stringDiff renders a character diff, colored on terminals and in
// git word-diff notation otherwise.
func stringDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(a, b, false))
	if !color.NoColor {
		return dmp.DiffPrettyText(diffs)
	}
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

func summary(a jsonadapt.Adapter) string {
	switch {
	case a.IsArray():
		return fmt.Sprintf("array[%d]", a.Len())
	case a.IsObject():
		return fmt.Sprintf("object{%d}", a.Len())
	case a.IsNumber():
		f, _ := a.Number()
		return fmt.Sprintf("%s %v", a.Type(), f)
	case a.IsBool():
		v, _ := a.Bool()
		return fmt.Sprintf("boolean %t", v)
	case a.IsString():
		s, _ := a.Str()
		return fmt.Sprintf("string %q", s)
	}
	return a.Type().String()
}
