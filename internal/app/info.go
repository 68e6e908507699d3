package app

import (
	"context"

	"github.com/OpenTraceLab/netbom/internal/config"
	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Summary describes a netlist and how it groups under a configuration.
type Summary struct {
	Path       string
	Version    string
	Design     netlist.Design
	Components int // all components, virtual symbols included
	BOMParts   int // components that reach the bill of materials
	DNP        int
	LibParts   int
	Nets       int
	RoutedNets int // nets with two or more pads
	Predicate  string
	Groups     []GroupSummary
}

// GroupSummary is one BOM group.
type GroupSummary struct {
	Refs      []string
	Value     string
	Footprint string
}

// Summarize loads input and groups it according to cfg.
func Summarize(ctx context.Context, input string, cfg config.Config) (*Summary, error) {
	nl, err := LoadNetlist(ctx, input)
	if err != nil {
		return nil, err
	}
	c, err := NewCollator(ctx, nl, cfg)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Path:       input,
		Version:    nl.Version,
		Design:     nl.Design(),
		Components: len(nl.Components()),
		LibParts:   len(nl.LibParts()),
		Nets:       len(nl.Nets()),
		Predicate:  c.Predicate().Name,
	}
	for _, comp := range nl.Components() {
		if comp.DNP {
			s.DNP++
		}
	}
	for _, n := range nl.Nets() {
		if len(n.Nodes) >= 2 {
			s.RoutedNets++
		}
	}
	for _, g := range c.Groups() {
		s.BOMParts += g.Len()
		rep := g.Representative()
		s.Groups = append(s.Groups, GroupSummary{
			Refs:      g.Refs(),
			Value:     rep.Value,
			Footprint: rep.Footprint,
		})
	}
	return s, nil
}
