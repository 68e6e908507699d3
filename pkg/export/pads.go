package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// WritePADS writes a PADS-PCB ASCII netlist. Components without a
// footprint use their value as the decal name.
func WritePADS(w io.Writer, src netlist.Source, comps []*netlist.Component) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "*PADS-PCB*")
	fmt.Fprintln(bw, "*PART*")
	for _, c := range comps {
		fp := c.Footprint
		if fp == "" {
			fp = c.Value
		}
		fmt.Fprintf(bw, "%-16s %s\n", c.Ref, noSpaces(fp))
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "*NET*")
	for _, n := range routedNets(src, comps) {
		fmt.Fprintf(bw, "*SIGNAL* %s\n", noSpaces(n.Name))
		for _, node := range n.Nodes {
			fmt.Fprintf(bw, "%s.%s\n", node.Ref, node.Pin)
		}
	}

	fmt.Fprintln(bw, "*END*")
	return bw.Flush()
}
