package bom

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Coverage selects how a collator treats rendered scalar columns that the
// grouping predicate does not cover.
type Coverage string

const (
	// CoverageCheck renders normally and fails with *FieldConflictError
	// when members of a group disagree on an uncovered scalar column.
	// Extra field columns are exempt: they show the first non-empty
	// member value. Add the field to the grouping keys to split groups
	// on it.
	CoverageCheck Coverage = "check"
	// CoverageReject refuses to build a collator whose predicate leaves
	// any rendered scalar column uncovered.
	CoverageReject Coverage = "reject"
	// CoverageIgnore renders the last member's value without checking.
	// Disagreeing members are silently lost.
	CoverageIgnore Coverage = "ignore"
)

// ParseCoverage parses a coverage policy name. "" selects CoverageCheck.
func ParseCoverage(s string) (Coverage, error) {
	switch Coverage(strings.ToLower(strings.TrimSpace(s))) {
	case "", CoverageCheck:
		return CoverageCheck, nil
	case CoverageReject:
		return CoverageReject, nil
	case CoverageIgnore:
		return CoverageIgnore, nil
	}
	return "", fmt.Errorf("unknown coverage policy %q (want check, reject or ignore)", s)
}

// ErrUncoveredColumn is returned by NewCollator under CoverageReject.
var ErrUncoveredColumn = errors.New("rendered column not covered by grouping predicate")

// FieldConflictError reports a group whose members disagree on a column
// the grouping predicate does not cover.
type FieldConflictError struct {
	Column string
	Refs   []string
	Values []string
}

func (e *FieldConflictError) Error() string {
	pairs := make([]string, len(e.Refs))
	for i := range e.Refs {
		pairs[i] = fmt.Sprintf("%s=%q", e.Refs[i], e.Values[i])
	}
	return fmt.Sprintf("group members disagree on %s (%s); add %q to the grouping keys or use another coverage policy",
		e.Column, strings.Join(pairs, ", "), strings.ToLower(e.Column))
}

// Fixed column names.
const (
	ColumnItem      = "Item"
	ColumnQty       = "Qty"
	ColumnRefs      = "Reference(s)"
	ColumnRef       = "Ref"
	ColumnValue     = "Value"
	ColumnLibPart   = "LibPart"
	ColumnFootprint = "Footprint"
	ColumnDatasheet = "Datasheet"
	ColumnDNP       = "DNP"
)

type columnKind int

const (
	colItem columnKind = iota
	colQty
	colRefs
	colScalar
	colExtra
)

type column struct {
	name string
	kind columnKind
	key  Key // colScalar only
}

var scalarColumns = []column{
	{name: ColumnValue, kind: colScalar, key: KeyValue},
	{name: ColumnLibPart, kind: colScalar, key: KeyLibPart},
	{name: ColumnFootprint, kind: colScalar, key: KeyFootprint},
	{name: ColumnDatasheet, kind: colScalar, key: KeyDatasheet},
	{name: ColumnDNP, kind: colScalar, key: KeyDNP},
}

// Field names never turned into extra columns.
var hardcodedFields = []string{
	netlist.FieldReference,
	netlist.FieldValue,
	netlist.FieldFootprint,
	netlist.FieldDatasheet,
}

// Options configures a Collator.
type Options struct {
	// Predicate groups components. The zero value selects DefaultPredicate.
	Predicate Predicate
	// ExtraFields are appended as columns and added to the predicate.
	ExtraFields []string
	// Ungrouped renders one row per component.
	Ungrouped bool
	// Coverage is the policy for uncovered scalar columns. "" means check.
	Coverage Coverage
}

// Report is a rendered bill of materials.
type Report struct {
	Design         netlist.Design
	ComponentCount int
	Columns        []string
	Rows           [][]string
}

// Collator groups components and renders one row per group.
type Collator struct {
	design  netlist.Design
	comps   []*netlist.Component
	pred    Predicate
	opts    Options
	columns []column
	groups  []Group
}

// NewCollator groups comps and fixes the column set. src supplies the
// design header and the library parts contributing extra field names; it
// may be nil.
func NewCollator(src netlist.Source, comps []*netlist.Component, opts Options) (*Collator, error) {
	coverage, err := ParseCoverage(string(opts.Coverage))
	if err != nil {
		return nil, err
	}
	opts.Coverage = coverage

	pred := opts.Predicate
	if pred.Equal == nil {
		pred = DefaultPredicate()
	}
	pred = WithExtraFields(pred, opts.ExtraFields...)

	c := &Collator{
		comps: comps,
		pred:  pred,
		opts:  opts,
	}
	var parts []*netlist.LibPart
	if src != nil {
		c.design = src.Design()
		parts = src.LibParts()
	}
	c.columns = buildColumns(comps, parts, opts)

	if opts.Ungrouped {
		c.groups = Singletons(comps)
		return c, nil
	}

	if coverage == CoverageReject {
		var missing []string
		for _, col := range c.columns {
			if col.kind == colScalar && !pred.Covered(col.key) {
				missing = append(missing, col.name)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: predicate %q leaves %s uncovered",
				ErrUncoveredColumn, pred.Name, strings.Join(missing, ", "))
		}
	}

	c.groups = GroupComponents(comps, pred)
	return c, nil
}

func buildColumns(comps []*netlist.Component, parts []*netlist.LibPart, opts Options) []column {
	var cols []column
	if opts.Ungrouped {
		cols = append(cols, column{name: ColumnRef, kind: colRefs})
	} else {
		cols = append(cols,
			column{name: ColumnItem, kind: colItem},
			column{name: ColumnQty, kind: colQty},
			column{name: ColumnRefs, kind: colRefs},
		)
	}
	cols = append(cols, scalarColumns...)

	taken := make(map[string]struct{})
	for _, name := range hardcodedFields {
		taken[name] = struct{}{}
	}
	for _, col := range cols {
		taken[col.name] = struct{}{}
	}

	set := make(map[string]struct{})
	for _, name := range netlist.ComponentFieldUnion(comps) {
		set[name] = struct{}{}
	}
	for _, name := range netlist.LibPartFieldUnion(parts) {
		set[name] = struct{}{}
	}
	var extras []string
	for name := range set {
		if _, skip := taken[name]; !skip {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)

	for _, name := range extras {
		taken[name] = struct{}{}
		cols = append(cols, column{name: name, kind: colExtra})
	}
	for _, name := range opts.ExtraFields {
		if _, dup := taken[name]; dup || name == "" {
			continue
		}
		taken[name] = struct{}{}
		cols = append(cols, column{name: name, kind: colExtra})
	}
	return cols
}

// Predicate returns the effective grouping predicate, extra fields included.
func (c *Collator) Predicate() Predicate {
	return c.pred
}

// Groups returns the groups in first-seen order.
func (c *Collator) Groups() []Group {
	return c.groups
}

// Columns returns the column names in render order.
func (c *Collator) Columns() []string {
	names := make([]string, len(c.columns))
	for i, col := range c.columns {
		names[i] = col.name
	}
	return names
}

// Row renders group g as row number item (1-based).
func (c *Collator) Row(item int, g Group) ([]string, error) {
	if g.Len() == 0 {
		return nil, fmt.Errorf("row %d: empty group", item)
	}
	if c.opts.Coverage == CoverageCheck && !c.opts.Ungrouped {
		if err := c.checkGroup(g); err != nil {
			return nil, err
		}
	}

	rep := g.Representative()
	row := make([]string, len(c.columns))
	for i, col := range c.columns {
		switch col.kind {
		case colItem:
			row[i] = strconv.Itoa(item)
		case colQty:
			row[i] = strconv.Itoa(g.Len())
		case colRefs:
			row[i] = g.RefList()
		case colScalar:
			row[i] = col.key.Of(rep)
		case colExtra:
			row[i] = extraValue(g, col.name)
		}
	}
	return row, nil
}

func (c *Collator) checkGroup(g Group) error {
	for _, col := range c.columns {
		if col.kind != colScalar || c.pred.Covered(col.key) {
			continue
		}
		first := col.key.Of(g.Components[0])
		for _, m := range g.Components[1:] {
			if col.key.Of(m) == first {
				continue
			}
			values := make([]string, g.Len())
			for i, mm := range g.Components {
				values[i] = col.key.Of(mm)
			}
			return &FieldConflictError{Column: col.name, Refs: g.Refs(), Values: values}
		}
	}
	return nil
}

// extraValue returns the first non-empty member field, falling back to
// the representative's library part. Disagreeing members are not
// reported under any coverage policy.
func extraValue(g Group, name string) string {
	for _, m := range g.Components {
		if v := m.Fields.Get(name); v != "" {
			return v
		}
	}
	if rep := g.Representative(); rep.LibPart != nil {
		return rep.LibPart.Field(name)
	}
	return ""
}

// Report renders every group.
func (c *Collator) Report() (*Report, error) {
	r := &Report{
		Design:         c.design,
		ComponentCount: len(c.comps),
		Columns:        c.Columns(),
		Rows:           make([][]string, 0, len(c.groups)),
	}
	for i, g := range c.groups {
		row, err := c.Row(i+1, g)
		if err != nil {
			return nil, err
		}
		r.Rows = append(r.Rows, row)
	}
	return r, nil
}
