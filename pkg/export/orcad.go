package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

const (
	unconnectedPin = "?"
	noTimestamp    = "00000000"
)

// WriteOrcadPcb2 writes an OrcadPCB2 netlist. Pins are taken from each
// component's library part; pins not on a routed net are written as "?".
func WriteOrcadPcb2(w io.Writer, src netlist.Source, comps []*netlist.Component) error {
	nets := pinNets(src, comps)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "( { EESchema Netlist Version 1.1 created %s }\n", src.Design().Date)
	for _, c := range comps {
		fp := c.Footprint
		if fp == "" {
			fp = noFootprint
		}
		ts := c.Tstamps
		if ts == "" {
			ts = noTimestamp
		}
		fmt.Fprintf(bw, " ( %s %s  %s %s\n", ts, noSpaces(fp), c.Ref, noSpaces(c.Value))

		if c.LibPart != nil {
			for _, pin := range c.LibPart.Pins {
				name, ok := nets[c.Ref+"\x00"+pin.Num]
				if !ok || name == "" {
					name = unconnectedPin
				}
				fmt.Fprintf(bw, "  ( %4.4s %s )\n", pin.Num, noSpaces(name))
			}
		}
		fmt.Fprintln(bw, " )")
	}
	fmt.Fprintln(bw, ")")
	fmt.Fprintln(bw, "*")
	return bw.Flush()
}
