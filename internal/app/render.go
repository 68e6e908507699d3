// Package app wires netlist loading, grouping and export into the
// operations behind the netbom commands.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/OpenTraceLab/netbom/internal/config"
	"github.com/OpenTraceLab/netbom/internal/ctxlog"
	"github.com/OpenTraceLab/netbom/pkg/bom"
	"github.com/OpenTraceLab/netbom/pkg/export"
	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// LoadNetlist reads the netlist at path.
func LoadNetlist(ctx context.Context, path string) (*netlist.Netlist, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading netlist.", "path", path)

	nl, err := netlist.ReadFile(path)
	if err != nil {
		return nil, err
	}

	logger.Debug("Netlist loaded.",
		"components", len(nl.Components()),
		"libparts", len(nl.LibParts()),
		"nets", len(nl.Nets()),
	)
	return nl, nil
}

// NewCollator selects the BOM components of nl according to cfg and
// groups them.
func NewCollator(ctx context.Context, nl *netlist.Netlist, cfg config.Config) (*bom.Collator, error) {
	logger := ctxlog.FromContext(ctx)

	pred, err := bom.ParsePredicate(cfg.GroupBy)
	if err != nil {
		return nil, err
	}
	coverage, err := bom.ParseCoverage(cfg.Coverage)
	if err != nil {
		return nil, err
	}

	comps := netlist.Interesting(nl.Components(), netlist.FilterOptions{ExcludeDNP: cfg.ExcludeDNP})
	comps = netlist.SortByReference(comps)

	c, err := bom.NewCollator(nl, comps, bom.Options{
		Predicate:   pred,
		ExtraFields: cfg.ExtraFields,
		Ungrouped:   cfg.Ungrouped,
		Coverage:    coverage,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Components grouped.",
		"predicate", c.Predicate().Name,
		"components", len(comps),
		"groups", len(c.Groups()),
		"coverage", coverage,
	)
	return c, nil
}

// reportWriter resolves the report format from cfg, falling back to the
// output file extension.
func reportWriter(cfg config.Config, output string) (export.Writer, error) {
	name := cfg.Format
	if name == "" {
		name = export.ReportFormatForPath(output)
	}
	w, err := export.Lookup(name)
	if err != nil {
		return export.Writer{}, err
	}
	if w.Report == nil {
		return export.Writer{}, fmt.Errorf("%q is a netlist dialect, not a BOM format", name)
	}
	return w, nil
}

// netlistWriter resolves the netlist dialect from cfg.
func netlistWriter(cfg config.Config) (export.Writer, error) {
	if cfg.Dialect == "" {
		return export.Writer{}, fmt.Errorf("no netlist dialect selected (want %s, %s or %s)",
			export.DialectCadstar, export.DialectPADS, export.DialectOrcadPcb2)
	}
	w, err := export.Lookup(cfg.Dialect)
	if err != nil {
		return export.Writer{}, err
	}
	if w.Netlist == nil {
		return export.Writer{}, fmt.Errorf("%q is a BOM format, not a netlist dialect", cfg.Dialect)
	}
	return w, nil
}

// renderBOM renders the bill of materials of input with w.
func renderBOM(ctx context.Context, input string, w export.Writer, cfg config.Config) ([]byte, error) {
	nl, err := LoadNetlist(ctx, input)
	if err != nil {
		return nil, err
	}
	c, err := NewCollator(ctx, nl, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	report, err := c.Report()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}

	var buf bytes.Buffer
	if err := w.Report(&buf, report, export.Options{Quote: cfg.Quote}); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", w.Name, err)
	}
	return buf.Bytes(), nil
}

// renderNetlist renders the placed components and routed nets of input
// with w.
func renderNetlist(ctx context.Context, input string, w export.Writer) ([]byte, error) {
	nl, err := LoadNetlist(ctx, input)
	if err != nil {
		return nil, err
	}
	comps := netlist.SortByReference(netlist.OnBoard(nl.Components()))

	var buf bytes.Buffer
	if err := w.Netlist(&buf, nl, comps); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", w.Name, err)
	}
	return buf.Bytes(), nil
}

// RenderBOM renders the bill of materials of input to output. Nothing is
// written when loading or grouping fails.
func RenderBOM(ctx context.Context, input, output string, cfg config.Config, stdout io.Writer) error {
	w, err := reportWriter(cfg, output)
	if err != nil {
		return err
	}
	data, err := renderBOM(ctx, input, w, cfg)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Bill of materials rendered.", "input", input, "output", output, "format", w.Name)
	return writeOutput(ctx, output, data, stdout)
}

// RenderNetlist renders input as the netlist dialect selected in cfg.
func RenderNetlist(ctx context.Context, input, output string, cfg config.Config, stdout io.Writer) error {
	w, err := netlistWriter(cfg)
	if err != nil {
		return err
	}
	data, err := renderNetlist(ctx, input, w)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Netlist rendered.", "input", input, "output", output, "dialect", w.Name)
	return writeOutput(ctx, output, data, stdout)
}
