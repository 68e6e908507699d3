package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

const noFootprint = "$noname"

// WriteCadstar writes a Cadstar RINF netlist.
func WriteCadstar(w io.Writer, src netlist.Source, comps []*netlist.Component) error {
	d := src.Design()
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, ".HEA")
	fmt.Fprintf(bw, ".TIM %s\n", d.Date)
	fmt.Fprintf(bw, ".APP \"%s\"\n", d.Tool)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, ".TYP FULL")
	fmt.Fprintln(bw)

	for _, c := range comps {
		fp := c.Footprint
		if fp == "" {
			fp = noFootprint
		}
		fmt.Fprintf(bw, ".ADD_COM %s \"%s\" \"%s\"\n", c.Ref, noSpaces(c.Value), noSpaces(fp))
	}
	fmt.Fprintln(bw)

	for _, n := range routedNets(src, comps) {
		for i, node := range n.Nodes {
			switch i {
			case 0:
				fmt.Fprintf(bw, ".ADD_TER %s %s \"%s\"\n", node.Ref, node.Pin, n.Name)
			case 1:
				fmt.Fprintf(bw, ".TER     %s %s\n", node.Ref, node.Pin)
			default:
				fmt.Fprintf(bw, "         %s %s\n", node.Ref, node.Pin)
			}
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, ".END")
	return bw.Flush()
}
