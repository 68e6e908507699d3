package bom

import (
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Group is a non-empty run of components that are equivalent under the
// predicate used to build it. Members keep input order.
type Group struct {
	Components []*netlist.Component
}

// Len returns the number of members.
func (g Group) Len() int {
	return len(g.Components)
}

// Representative returns the member whose scalar fields are rendered:
// the last member in input order.
func (g Group) Representative() *netlist.Component {
	return g.Components[len(g.Components)-1]
}

// Refs returns the member references in order.
func (g Group) Refs() []string {
	out := make([]string, len(g.Components))
	for i, c := range g.Components {
		out[i] = c.Ref
	}
	return out
}

// RefList returns the member references joined with ", ".
func (g Group) RefList() string {
	return strings.Join(g.Refs(), ", ")
}

// GroupComponents partitions comps under pred. A component joins the
// first group whose first member is equal to it, otherwise it starts a
// new group. Groups appear in the order their first member was seen.
// Callers wanting sorted output sort the input first.
func GroupComponents(comps []*netlist.Component, pred Predicate) []Group {
	if pred.Equal == nil {
		pred = DefaultPredicate()
	}

	var groups []Group
	for _, c := range comps {
		found := false
		for i := range groups {
			if pred.Equal(groups[i].Components[0], c) {
				groups[i].Components = append(groups[i].Components, c)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, Group{Components: []*netlist.Component{c}})
		}
	}
	return groups
}

// Singletons returns one group per component, in input order.
func Singletons(comps []*netlist.Component) []Group {
	groups := make([]Group, len(comps))
	for i, c := range comps {
		groups[i] = Group{Components: []*netlist.Component{c}}
	}
	return groups
}
