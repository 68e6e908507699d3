package netlist

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// XML mirror of the generic netlist export (the .xml intermediate file
// handed to BOM plugins).
type xmlExport struct {
	XMLName    xml.Name     `xml:"export"`
	Version    string       `xml:"version,attr"`
	Design     xmlDesign    `xml:"design"`
	Components []xmlComp    `xml:"components>comp"`
	LibParts   []xmlLibPart `xml:"libparts>libpart"`
	Nets       []xmlNet     `xml:"nets>net"`
}

type xmlDesign struct {
	Source string     `xml:"source"`
	Date   string     `xml:"date"`
	Tool   string     `xml:"tool"`
	Sheets []xmlSheet `xml:"sheet"`
}

type xmlSheet struct {
	Number     string        `xml:"number,attr"`
	Name       string        `xml:"name,attr"`
	TitleBlock xmlTitleBlock `xml:"title_block"`
}

type xmlTitleBlock struct {
	Title    string       `xml:"title"`
	Company  string       `xml:"company"`
	Rev      string       `xml:"rev"`
	Date     string       `xml:"date"`
	Source   string       `xml:"source"`
	Comments []xmlComment `xml:"comment"`
}

type xmlComment struct {
	Number string `xml:"number,attr"`
	Value  string `xml:"value,attr"`
}

type xmlComp struct {
	Ref         string        `xml:"ref,attr"`
	Value       string        `xml:"value"`
	Footprint   string        `xml:"footprint"`
	Datasheet   string        `xml:"datasheet"`
	Description string        `xml:"description"`
	Fields      []xmlField    `xml:"fields>field"`
	LibSource   xmlLibSource  `xml:"libsource"`
	Properties  []xmlProperty `xml:"property"`
	SheetPath   xmlSheetPath  `xml:"sheetpath"`
	Tstamps     string        `xml:"tstamps"`
	Tstamp      string        `xml:"tstamp"`
}

type xmlField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlLibSource struct {
	Lib         string `xml:"lib,attr"`
	Part        string `xml:"part,attr"`
	Description string `xml:"description,attr"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlSheetPath struct {
	Names   string `xml:"names,attr"`
	Tstamps string `xml:"tstamps,attr"`
}

type xmlLibPart struct {
	Lib         string     `xml:"lib,attr"`
	Part        string     `xml:"part,attr"`
	Description string     `xml:"description"`
	Docs        string     `xml:"docs"`
	Aliases     []string   `xml:"aliases>alias"`
	Footprints  []string   `xml:"footprints>fp"`
	Fields      []xmlField `xml:"fields>field"`
	Pins        []xmlPin   `xml:"pins>pin"`
}

type xmlPin struct {
	Num  string `xml:"num,attr"`
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type xmlNet struct {
	Code  string    `xml:"code,attr"`
	Name  string    `xml:"name,attr"`
	Nodes []xmlNode `xml:"node"`
}

type xmlNode struct {
	Ref         string `xml:"ref,attr"`
	Pin         string `xml:"pin,attr"`
	PinFunction string `xml:"pinfunction,attr"`
	PinType     string `xml:"pintype,attr"`
}

// ReadXML reads a netlist in KiCad's generic XML export format.
func ReadXML(r io.Reader) (*Netlist, error) {
	var doc xmlExport
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		var unexpected xml.UnmarshalError
		if errors.As(err, &unexpected) || err == io.EOF {
			return nil, fmt.Errorf("%w: %v", ErrNotNetlist, err)
		}
		return nil, fmt.Errorf("failed to parse xml: %w", err)
	}

	nl := &Netlist{
		Version: doc.Version,
		Header: Design{
			Source: doc.Design.Source,
			Date:   doc.Design.Date,
			Tool:   doc.Design.Tool,
		},
	}

	for _, s := range doc.Design.Sheets {
		tb := TitleBlock{
			Title:    s.TitleBlock.Title,
			Company:  s.TitleBlock.Company,
			Revision: s.TitleBlock.Rev,
			Date:     s.TitleBlock.Date,
			Source:   s.TitleBlock.Source,
		}
		for _, c := range s.TitleBlock.Comments {
			tb.Comments = append(tb.Comments, c.Value)
		}
		nl.Header.Sheets = append(nl.Header.Sheets, Sheet{Number: s.Number, Name: s.Name, TitleBlock: tb})
	}

	for _, xc := range doc.Components {
		if xc.Ref == "" {
			return nil, fmt.Errorf("component without reference (value %q)", xc.Value)
		}
		c := &Component{
			Ref:         xc.Ref,
			Value:       xc.Value,
			Footprint:   xc.Footprint,
			Datasheet:   xc.Datasheet,
			Description: xc.Description,
			Lib:         xc.LibSource.Lib,
			Part:        xc.LibSource.Part,
			Fields:      xmlFields(xc.Fields),
			SheetPath:   xc.SheetPath.Names,
			Tstamps:     xc.Tstamps,
		}
		if c.Tstamps == "" {
			c.Tstamps = xc.Tstamp
		}
		if c.Description == "" {
			c.Description = xc.LibSource.Description
		}
		for _, p := range xc.Properties {
			c.Properties.Set(p.Name, p.Value)
		}
		c.DNP = c.Properties.Has(PropertyDNP)
		c.ExcludeFromBOM = c.Properties.Has(PropertyExcludeFromBOM)
		c.ExcludeFromBoard = c.Properties.Has(PropertyExcludeBoard)
		nl.Comps = append(nl.Comps, c)
	}

	for _, xp := range doc.LibParts {
		lp := &LibPart{
			Lib:         xp.Lib,
			Part:        xp.Part,
			Description: xp.Description,
			Docs:        xp.Docs,
			Aliases:     xp.Aliases,
			Footprints:  xp.Footprints,
			Fields:      xmlFields(xp.Fields),
		}
		for _, p := range xp.Pins {
			lp.Pins = append(lp.Pins, Pin{Num: p.Num, Name: p.Name, Type: p.Type})
		}
		nl.Parts = append(nl.Parts, lp)
	}

	for _, xn := range doc.Nets {
		net := &Net{Code: xn.Code, Name: xn.Name}
		for _, n := range xn.Nodes {
			net.Nodes = append(net.Nodes, Node{
				Ref:         n.Ref,
				Pin:         n.Pin,
				PinFunction: n.PinFunction,
				PinType:     n.PinType,
			})
		}
		nl.NetList = append(nl.NetList, net)
	}

	nl.resolve()
	return nl, nil
}

func xmlFields(in []xmlField) Fields {
	var f Fields
	for _, fld := range in {
		if fld.Name == "" {
			continue
		}
		f.Set(fld.Name, fld.Value)
	}
	return f
}
