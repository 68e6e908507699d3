package netlist

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func refs(comps []*Component) []string {
	out := make([]string, len(comps))
	for i, c := range comps {
		out[i] = c.Ref
	}
	return out
}

func TestInteresting(t *testing.T) {
	nl, err := ReadFile(filepath.Join(testdata, "demo.net"))
	if err != nil {
		t.Fatalf("Failed to read demo.net: %v", err)
	}

	got := refs(Interesting(nl.Components(), FilterOptions{}))
	want := []string{"R1", "R2", "R10", "C1", "C2", "U1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Interesting mismatch (-want +got):\n%s", diff)
	}

	got = refs(Interesting(nl.Components(), FilterOptions{ExcludeDNP: true}))
	want = []string{"R1", "R2", "C1", "C2", "U1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Interesting(ExcludeDNP) mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByReference(t *testing.T) {
	in := []*Component{
		{Ref: "R10"}, {Ref: "C2"}, {Ref: "R2"}, {Ref: "U1B"}, {Ref: "R1"},
		{Ref: "U1A"}, {Ref: "J"}, {Ref: "C10"},
	}

	got := refs(SortByReference(in))
	want := []string{"C2", "C10", "J", "R1", "R2", "R10", "U1A", "U1B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortByReference mismatch (-want +got):\n%s", diff)
	}

	if in[0].Ref != "R10" {
		t.Error("SortByReference must not reorder its input")
	}
}

func TestRefPrefix(t *testing.T) {
	tests := map[string]string{
		"R12":  "R",
		"U1A":  "U1A",
		"LED3": "LED",
		"J":    "J",
	}
	for ref, want := range tests {
		c := &Component{Ref: ref}
		if got := c.RefPrefix(); got != want {
			t.Errorf("RefPrefix(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestFieldsOrderAndLookup(t *testing.T) {
	var f Fields
	f.Set("Vendor", "Digikey")
	f.Set("MPN", "X1")
	f.Set("Vendor", "Mouser")

	if diff := cmp.Diff([]string{"Vendor", "MPN"}, f.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	if got := f.Get("Vendor"); got != "Mouser" {
		t.Errorf("Get(Vendor) = %q, want Mouser", got)
	}
	if got := f.Get("Missing"); got != "" {
		t.Errorf("Get(Missing) = %q, want empty", got)
	}
	if f.Has("Missing") {
		t.Error("Has(Missing) = true")
	}

	var zero Fields
	if zero.Get("anything") != "" || zero.Len() != 0 {
		t.Error("zero Fields should be empty")
	}
}

func TestComponentBuiltinFields(t *testing.T) {
	c := &Component{
		Ref:       "R1",
		Value:     "10k",
		Footprint: "R_0603",
		Datasheet: "~",
		LibPart:   &LibPart{Description: "Resistor", Docs: "r.pdf"},
	}

	tests := map[string]string{
		FieldReference:   "R1",
		FieldValue:       "10k",
		FieldFootprint:   "R_0603",
		FieldDatasheet:   "~",
		FieldDescription: "Resistor",
	}
	for name, want := range tests {
		if got := c.Field(name); got != want {
			t.Errorf("Field(%q) = %q, want %q", name, got, want)
		}
	}

	if c.DNPString() != "" {
		t.Error("DNPString should be empty for populated parts")
	}
	c.DNP = true
	if c.DNPString() != "DNP" {
		t.Error("DNPString should be DNP")
	}
}

func TestOnBoard(t *testing.T) {
	nl, err := ReadFile(filepath.Join(testdata, "demo.net"))
	if err != nil {
		t.Fatalf("Failed to read demo.net: %v", err)
	}

	got := refs(OnBoard(nl.Components()))
	want := []string{"R1", "R2", "R10", "C1", "C2", "U1", "TP1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OnBoard mismatch (-want +got):\n%s", diff)
	}

	nl.Component("U1").ExcludeFromBoard = true
	if got := refs(OnBoard(nl.Components())); len(got) != 6 {
		t.Errorf("Expected U1 to be dropped, got %v", got)
	}
}
