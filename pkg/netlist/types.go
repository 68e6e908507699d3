// Package netlist provides the component, library part and net model of a
// KiCad netlist export, and readers for its S-expression (.net) and XML
// (.xml) encodings.
package netlist

import (
	"sort"
	"strings"
)

// Built-in field names that map onto Component members rather than the
// user field set.
const (
	FieldReference   = "Reference"
	FieldValue       = "Value"
	FieldFootprint   = "Footprint"
	FieldDatasheet   = "Datasheet"
	FieldDescription = "Description"
)

// Property names KiCad attaches to symbols in the netlist export.
const (
	PropertyDNP            = "dnp"
	PropertyExcludeFromBOM = "exclude_from_bom"
	PropertyExcludeBoard   = "exclude_from_board"
)

// Source is the read surface of a loaded netlist document.
type Source interface {
	Design() Design
	Components() []*Component
	LibParts() []*LibPart
	Nets() []*Net
}

// Netlist is a loaded netlist export.
type Netlist struct {
	Version string
	Header  Design
	Comps   []*Component
	Parts   []*LibPart
	NetList []*Net

	byRef map[string]*Component
}

// Design is the export header.
type Design struct {
	Source string
	Date   string
	Tool   string
	Sheets []Sheet
}

// Sheet is one schematic sheet entry of the design header.
type Sheet struct {
	Number     string
	Name       string
	TitleBlock TitleBlock
}

// TitleBlock contains sheet title block information
type TitleBlock struct {
	Title    string
	Company  string
	Revision string
	Date     string
	Source   string
	Comments []string
}

// Component is a schematic part instance.
type Component struct {
	Ref         string
	Value       string
	Footprint   string
	Datasheet   string
	Description string
	Lib         string // libsource lib
	Part        string // libsource part
	Fields      Fields // user-defined fields, in file order
	Properties  Fields // symbol properties (dnp, Sheetname, ...)
	SheetPath   string
	Tstamps     string

	DNP              bool
	ExcludeFromBOM   bool
	ExcludeFromBoard bool

	LibPart *LibPart // resolved after load, may be nil
}

// Field returns the named field. Built-in names map to the component
// members; other names are looked up in the component's own fields and
// then in its library part. Missing fields return "".
func (c *Component) Field(name string) string {
	switch name {
	case FieldReference:
		return c.Ref
	case FieldValue:
		return c.Value
	case FieldFootprint:
		return c.Footprint
	case FieldDatasheet:
		return c.Datasheet
	case FieldDescription:
		if c.Description != "" {
			return c.Description
		}
	}
	if v := c.Fields.Get(name); v != "" {
		return v
	}
	if c.LibPart != nil {
		return c.LibPart.Field(name)
	}
	return ""
}

// DNPString returns "DNP" for do-not-populate components and "" otherwise.
func (c *Component) DNPString() string {
	if c.DNP {
		return "DNP"
	}
	return ""
}

// LibPartName returns "lib:part", or "" when the component has no
// library source.
func (c *Component) LibPartName() string {
	if c.Lib == "" && c.Part == "" {
		return ""
	}
	return c.Lib + ":" + c.Part
}

// RefPrefix returns the reference with trailing digits removed (R12 -> R).
func (c *Component) RefPrefix() string {
	return strings.TrimRight(c.Ref, "0123456789")
}

// LibPart is a library part definition referenced by components.
type LibPart struct {
	Lib         string
	Part        string
	Description string
	Docs        string
	Aliases     []string
	Footprints  []string // footprint filters
	Fields      Fields
	Pins        []Pin
}

// Field returns a library field. "Description" and "Datasheet" fall back
// to the part description and docs.
func (lp *LibPart) Field(name string) string {
	if v := lp.Fields.Get(name); v != "" {
		return v
	}
	switch name {
	case FieldDescription:
		return lp.Description
	case FieldDatasheet:
		return lp.Docs
	}
	return ""
}

// Pin is a library part pin definition.
type Pin struct {
	Num  string
	Name string
	Type string
}

// Net is a named electrical connection.
type Net struct {
	Code  string
	Name  string
	Nodes []Node
}

// Node is one (component, pin) endpoint of a net.
type Node struct {
	Ref         string
	Pin         string
	PinFunction string
	PinType     string
}

// Design returns the export header.
func (n *Netlist) Design() Design { return n.Header }

// Components returns components in file order.
func (n *Netlist) Components() []*Component { return n.Comps }

// LibParts returns library parts in file order.
func (n *Netlist) LibParts() []*LibPart { return n.Parts }

// Nets returns nets in file order.
func (n *Netlist) Nets() []*Net { return n.NetList }

// Component returns the component with the given reference, or nil.
func (n *Netlist) Component(ref string) *Component {
	if n.byRef == nil {
		n.index()
	}
	return n.byRef[ref]
}

// LibPart returns the library part for (lib, part), matching aliases too.
func (n *Netlist) LibPart(lib, part string) *LibPart {
	for _, lp := range n.Parts {
		if lp.Lib != lib {
			continue
		}
		if lp.Part == part {
			return lp
		}
		for _, alias := range lp.Aliases {
			if alias == part {
				return lp
			}
		}
	}
	return nil
}

// resolve links components to their library parts and builds indexes.
func (n *Netlist) resolve() {
	for _, c := range n.Comps {
		c.LibPart = n.LibPart(c.Lib, c.Part)
	}
	n.index()
}

func (n *Netlist) index() {
	n.byRef = make(map[string]*Component, len(n.Comps))
	for _, c := range n.Comps {
		if _, dup := n.byRef[c.Ref]; !dup {
			n.byRef[c.Ref] = c
		}
	}
}

// ComponentFieldUnion returns the sorted union of user field names over comps.
func ComponentFieldUnion(comps []*Component) []string {
	set := make(map[string]struct{})
	for _, c := range comps {
		for _, name := range c.Fields.Names() {
			set[name] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// LibPartFieldUnion returns the sorted union of field names over parts.
func LibPartFieldUnion(parts []*LibPart) []string {
	set := make(map[string]struct{})
	for _, lp := range parts {
		for _, name := range lp.Fields.Names() {
			set[name] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
