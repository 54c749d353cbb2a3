package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/reoring/jsonadapt"
)

// BackendsCmd lists registered backends.
type BackendsCmd struct{}

func (BackendsCmd) Run(g *Globals) error {
	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tLIBRARY\tSYNTAX\tSTRICT TYPES\tKEY ORDER")
	for _, k := range jsonadapt.Kinds() {
		d, _ := jsonadapt.Lookup(k)
		t := d.Traits()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", k, t.Name, d.Syntax(), t.HasStrictTypes, t.PreservesOrder)
	}
	return tw.Flush()
}
