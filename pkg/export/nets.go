package export

import (
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// minNetPads is the smallest pad count for a net to be written.
const minNetPads = 2

// routedNets returns the nets of src restricted to pads of comps, keeping
// those with at least minNetPads pads left.
func routedNets(src netlist.Source, comps []*netlist.Component) []*netlist.Net {
	placed := make(map[string]struct{}, len(comps))
	for _, c := range comps {
		placed[c.Ref] = struct{}{}
	}

	var out []*netlist.Net
	for _, n := range src.Nets() {
		var nodes []netlist.Node
		for _, node := range n.Nodes {
			if _, ok := placed[node.Ref]; ok {
				nodes = append(nodes, node)
			}
		}
		if len(nodes) < minNetPads {
			continue
		}
		routed := *n
		routed.Nodes = nodes
		out = append(out, &routed)
	}
	return out
}

// pinNets maps "ref\x00pin" to the name of the routed net it is on.
func pinNets(src netlist.Source, comps []*netlist.Component) map[string]string {
	m := make(map[string]string)
	for _, n := range routedNets(src, comps) {
		for _, node := range n.Nodes {
			m[node.Ref+"\x00"+node.Pin] = n.Name
		}
	}
	return m
}

var spaceReplacer = strings.NewReplacer(" ", "_", "\t", "_")

func noSpaces(s string) string {
	return spaceReplacer.Replace(s)
}
