package bom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

func comp(ref, value, footprint string, fields ...netlist.Field) *netlist.Component {
	return &netlist.Component{
		Ref:       ref,
		Value:     value,
		Footprint: footprint,
		Fields:    netlist.NewFields(fields...),
	}
}

func groupRefs(groups []Group) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = g.Refs()
	}
	return out
}

func TestGroupComponentsValueFootprint(t *testing.T) {
	comps := []*netlist.Component{
		comp("R1", "10k", "0603"),
		comp("R2", "10k", "0603"),
		comp("C1", "100nF", "0603"),
	}

	groups := GroupComponents(comps, DefaultPredicate())
	require.Len(t, groups, 2)

	assert.Equal(t, 2, groups[0].Len())
	assert.Equal(t, "R1, R2", groups[0].RefList())
	assert.Equal(t, "10k", groups[0].Representative().Value)
	assert.Equal(t, "0603", groups[0].Representative().Footprint)

	assert.Equal(t, 1, groups[1].Len())
	assert.Equal(t, "C1", groups[1].RefList())
	assert.Equal(t, "100nF", groups[1].Representative().Value)
}

func TestGroupComponentsEmpty(t *testing.T) {
	assert.Empty(t, GroupComponents(nil, DefaultPredicate()))
	assert.Empty(t, GroupComponents([]*netlist.Component{}, DefaultPredicate()))
}

func TestGroupComponentsUndefinedExtraField(t *testing.T) {
	comps := []*netlist.Component{
		comp("R1", "10k", "0603"),
		comp("C1", "100nF", "0603"),
		comp("R2", "10k", "0603"),
		comp("R3", "10k", "0805"),
	}

	base := GroupComponents(comps, DefaultPredicate())
	withVendor := GroupComponents(comps, WithExtraFields(DefaultPredicate(), "Vendor"))
	assert.Equal(t, groupRefs(base), groupRefs(withVendor))
	assert.Equal(t, [][]string{{"R1", "R2"}, {"C1"}, {"R3"}}, groupRefs(base))
}

func TestGroupComponentsExtraFieldSplits(t *testing.T) {
	comps := []*netlist.Component{
		comp("R1", "10k", "0603", netlist.Field{Name: "Vendor", Value: "Digikey"}),
		comp("R2", "10k", "0603", netlist.Field{Name: "Vendor", Value: "Mouser"}),
		comp("R3", "10k", "0603", netlist.Field{Name: "Vendor", Value: "Digikey"}),
	}

	groups := GroupComponents(comps, WithExtraFields(DefaultPredicate(), "Vendor"))
	assert.Equal(t, [][]string{{"R1", "R3"}, {"R2"}}, groupRefs(groups))
}

func TestGroupComponentsPartition(t *testing.T) {
	comps := []*netlist.Component{
		comp("R1", "10k", "0603"),
		comp("C1", "100nF", "0402"),
		comp("R2", "1k", "0603"),
		comp("C2", "100nF", "0402"),
		comp("R3", "10k", "0603"),
		comp("D1", "LED", "0805"),
		comp("R4", "1k", "0603"),
		comp("C3", "100nF", "0603"),
	}
	pred := DefaultPredicate()
	groups := GroupComponents(comps, pred)

	seen := make(map[*netlist.Component]int)
	for _, g := range groups {
		require.NotZero(t, g.Len(), "groups must be non-empty")
		for _, c := range g.Components {
			seen[c]++
		}
	}
	require.Len(t, seen, len(comps))
	for _, c := range comps {
		assert.Equal(t, 1, seen[c], "component %s must appear in exactly one group", c.Ref)
	}

	for i, g := range groups {
		for _, a := range g.Components {
			for _, b := range g.Components {
				assert.True(t, pred.Equal(a, b), "%s and %s share group %d", a.Ref, b.Ref, i)
			}
		}
		for j, h := range groups {
			if i == j {
				continue
			}
			assert.False(t, pred.Equal(g.Components[0], h.Components[0]),
				"groups %d and %d should have been merged", i, j)
		}
	}

	again := GroupComponents(comps, pred)
	assert.Equal(t, groupRefs(groups), groupRefs(again))
	assert.Equal(t, [][]string{{"R1", "R3"}, {"C1", "C2"}, {"R2", "R4"}, {"D1"}, {"C3"}}, groupRefs(groups))
}

func TestGroupComponentsZeroPredicate(t *testing.T) {
	comps := []*netlist.Component{comp("R1", "10k", "0603"), comp("R2", "10k", "0603")}
	groups := GroupComponents(comps, Predicate{})
	assert.Equal(t, [][]string{{"R1", "R2"}}, groupRefs(groups))
}

func TestSingletons(t *testing.T) {
	comps := []*netlist.Component{comp("R1", "10k", "0603"), comp("R2", "10k", "0603")}
	assert.Equal(t, [][]string{{"R1"}, {"R2"}}, groupRefs(Singletons(comps)))
}

func TestKeyOf(t *testing.T) {
	c := &netlist.Component{
		Ref:       "R12",
		Value:     "10k",
		Footprint: "R_0603",
		Datasheet: "~",
		Lib:       "Device",
		Part:      "R",
		DNP:       true,
		Fields:    netlist.NewFields(netlist.Field{Name: "Vendor", Value: "Digikey"}),
		LibPart:   &netlist.LibPart{Description: "Resistor"},
	}

	tests := []struct {
		key  Key
		want string
	}{
		{KeyValue, "10k"},
		{KeyFootprint, "R_0603"},
		{KeyLibPart, "Device:R"},
		{KeyDatasheet, "~"},
		{KeyDescription, "Resistor"},
		{KeyDNP, "DNP"},
		{KeyRefPrefix, "R"},
		{FieldKey("Vendor"), "Digikey"},
		{FieldKey("Missing"), ""},
		{Key("bogus"), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Of(c))
		})
	}
}

func TestWithExtraFields(t *testing.T) {
	p := WithExtraFields(DefaultPredicate(), "Vendor", "", "Vendor")
	assert.Equal(t, "value+footprint+field:Vendor", p.Name)
	assert.Equal(t, []Key{KeyValue, KeyFootprint, FieldKey("Vendor")}, p.Covers)
	assert.True(t, p.Covered(FieldKey("Vendor")))

	same := WithExtraFields(p, "Vendor")
	assert.Equal(t, p.Name, same.Name)

	unchanged := WithExtraFields(DefaultPredicate())
	assert.Equal(t, "value+footprint", unchanged.Name)
}
