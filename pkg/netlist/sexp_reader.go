package netlist

import (
	"fmt"
	"io"

	"github.com/OpenTraceLab/netbom/pkg/kicad/sexp"
	"github.com/OpenTraceLab/netbom/pkg/kicad/sexp/kicadsexp"
)

// ReadSexp reads a netlist in KiCad's S-expression export format
// (the .net file written by the "KiCad" netlist exporter).
func ReadSexp(r io.Reader) (*Netlist, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	if len(sexps) == 0 {
		return nil, fmt.Errorf("%w: no s-expressions found", ErrNotNetlist)
	}

	// The root should be an (export ...) expression
	root := sexps[0]
	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotNetlist, err)
	}
	if root.IsLeaf() || rootName != "export" {
		return nil, fmt.Errorf("%w: expected 'export', got '%s'", ErrNotNetlist, rootName)
	}

	nl := &Netlist{
		Version: sexp.GetKeyedString(root, "version"),
	}

	if designNode, found := sexp.FindNode(root, "design"); found {
		nl.Header = parseDesign(designNode)
	}

	if compsNode, found := sexp.FindNode(root, "components"); found {
		for _, cn := range sexp.FindAllNodes(compsNode, "comp") {
			comp, err := parseComp(cn)
			if err != nil {
				return nil, err
			}
			nl.Comps = append(nl.Comps, comp)
		}
	}

	if partsNode, found := sexp.FindNode(root, "libparts"); found {
		for _, pn := range sexp.FindAllNodes(partsNode, "libpart") {
			nl.Parts = append(nl.Parts, parseLibPart(pn))
		}
	}

	if netsNode, found := sexp.FindNode(root, "nets"); found {
		for _, nn := range sexp.FindAllNodes(netsNode, "net") {
			nl.NetList = append(nl.NetList, parseNet(nn))
		}
	}

	nl.resolve()
	return nl, nil
}

// parseDesign extracts the export header
func parseDesign(node kicadsexp.Sexp) Design {
	d := Design{
		Source: sexp.GetKeyedString(node, "source"),
		Date:   sexp.GetKeyedString(node, "date"),
		Tool:   sexp.GetKeyedString(node, "tool"),
	}

	for _, sn := range sexp.FindAllNodes(node, "sheet") {
		sheet := Sheet{
			Number: sexp.GetKeyedString(sn, "number"),
			Name:   sexp.GetKeyedString(sn, "name"),
		}
		if tbNode, found := sexp.FindNode(sn, "title_block"); found {
			sheet.TitleBlock = parseTitleBlock(tbNode)
		}
		d.Sheets = append(d.Sheets, sheet)
	}

	return d
}

// parseTitleBlock extracts title block information
func parseTitleBlock(node kicadsexp.Sexp) TitleBlock {
	tb := TitleBlock{
		Title:    sexp.GetKeyedString(node, "title"),
		Company:  sexp.GetKeyedString(node, "company"),
		Revision: sexp.GetKeyedString(node, "rev"),
		Date:     sexp.GetKeyedString(node, "date"),
		Source:   sexp.GetKeyedString(node, "source"),
	}
	for _, cn := range sexp.FindAllNodes(node, "comment") {
		tb.Comments = append(tb.Comments, sexp.GetKeyedString(cn, "value"))
	}
	return tb
}

// parseComp parses a single (comp ...) entry
func parseComp(node kicadsexp.Sexp) (*Component, error) {
	c := &Component{
		Ref:         sexp.GetKeyedString(node, "ref"),
		Value:       sexp.GetKeyedString(node, "value"),
		Footprint:   sexp.GetKeyedString(node, "footprint"),
		Datasheet:   sexp.GetKeyedString(node, "datasheet"),
		Description: sexp.GetKeyedString(node, "description"),
		Tstamps:     sexp.GetKeyedString(node, "tstamps"),
	}
	if c.Ref == "" {
		return nil, fmt.Errorf("component without reference: %s", node)
	}
	if c.Tstamps == "" {
		// KiCad 5 exports a single (tstamp ...)
		c.Tstamps = sexp.GetKeyedString(node, "tstamp")
	}

	if fieldsNode, found := sexp.FindNode(node, "fields"); found {
		c.Fields = parseFields(fieldsNode)
	}

	if srcNode, found := sexp.FindNode(node, "libsource"); found {
		c.Lib = sexp.GetKeyedString(srcNode, "lib")
		c.Part = sexp.GetKeyedString(srcNode, "part")
		if c.Description == "" {
			c.Description = sexp.GetKeyedString(srcNode, "description")
		}
	}

	if spNode, found := sexp.FindNode(node, "sheetpath"); found {
		c.SheetPath = sexp.GetKeyedString(spNode, "names")
	}

	for _, pn := range sexp.FindAllNodes(node, "property") {
		c.Properties.Set(sexp.GetKeyedString(pn, "name"), sexp.GetKeyedString(pn, "value"))
	}
	c.DNP = c.Properties.Has(PropertyDNP)
	c.ExcludeFromBOM = c.Properties.Has(PropertyExcludeFromBOM)
	c.ExcludeFromBoard = c.Properties.Has(PropertyExcludeBoard)

	return c, nil
}

// parseFields parses (fields (field (name "X") "value") ...)
func parseFields(node kicadsexp.Sexp) Fields {
	var f Fields
	for _, fn := range sexp.FindAllNodes(node, "field") {
		name := sexp.GetKeyedString(fn, "name")
		if name == "" {
			continue
		}
		value, _ := sexp.GetString(fn, 2)
		f.Set(name, value)
	}
	return f
}

// parseLibPart parses a single (libpart ...) entry
func parseLibPart(node kicadsexp.Sexp) *LibPart {
	lp := &LibPart{
		Lib:         sexp.GetKeyedString(node, "lib"),
		Part:        sexp.GetKeyedString(node, "part"),
		Description: sexp.GetKeyedString(node, "description"),
		Docs:        sexp.GetKeyedString(node, "docs"),
	}

	if aliasNode, found := sexp.FindNode(node, "aliases"); found {
		for _, an := range sexp.FindAllNodes(aliasNode, "alias") {
			if alias, err := sexp.GetString(an, 1); err == nil {
				lp.Aliases = append(lp.Aliases, alias)
			}
		}
	}

	if fpNode, found := sexp.FindNode(node, "footprints"); found {
		for _, fn := range sexp.FindAllNodes(fpNode, "fp") {
			if fp, err := sexp.GetString(fn, 1); err == nil {
				lp.Footprints = append(lp.Footprints, fp)
			}
		}
	}

	if fieldsNode, found := sexp.FindNode(node, "fields"); found {
		lp.Fields = parseFields(fieldsNode)
	}

	if pinsNode, found := sexp.FindNode(node, "pins"); found {
		for _, pn := range sexp.FindAllNodes(pinsNode, "pin") {
			lp.Pins = append(lp.Pins, Pin{
				Num:  sexp.GetKeyedString(pn, "num"),
				Name: sexp.GetKeyedString(pn, "name"),
				Type: sexp.GetKeyedString(pn, "type"),
			})
		}
	}

	return lp
}

// parseNet parses a single (net ...) entry with its nodes
func parseNet(node kicadsexp.Sexp) *Net {
	net := &Net{
		Code: sexp.GetKeyedString(node, "code"),
		Name: sexp.GetKeyedString(node, "name"),
	}
	for _, nn := range sexp.FindAllNodes(node, "node") {
		net.Nodes = append(net.Nodes, Node{
			Ref:         sexp.GetKeyedString(nn, "ref"),
			Pin:         sexp.GetKeyedString(nn, "pin"),
			PinFunction: sexp.GetKeyedString(nn, "pinfunction"),
			PinType:     sexp.GetKeyedString(nn, "pintype"),
		})
	}
	return net
}
