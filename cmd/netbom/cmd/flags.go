package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netbom/internal/config"
)

// Per-command flags. Values only override the config file when the flag
// was given explicitly.
var (
	format      string
	groupBy     string
	ungrouped   bool
	excludeDNP  bool
	coverage    string
	quote       bool
	dialect     string
	watch       bool
	extraFields []string
)

func addGroupingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&groupBy, "group-by", config.DefaultGroupBy,
		`grouping keys, e.g. "value, footprint, dnp, field(\"Vendor\")"`)
	cmd.Flags().BoolVar(&excludeDNP, "exclude-dnp", false, "leave do-not-populate parts off the BOM")
	cmd.Flags().StringVar(&coverage, "coverage", config.DefaultCoverage,
		"uncovered column policy: check, reject or ignore")
	cmd.Flags().StringSliceVar(&extraFields, "field", nil, "extra field column, also used for grouping (repeatable)")
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&format, "format", "f", "", "BOM format: csv, tsv or html (default from output extension)")
	cmd.Flags().BoolVar(&ungrouped, "ungrouped", false, "one row per component")
	cmd.Flags().BoolVar(&quote, "quote", false, "quote every TSV field")
}

func addDialectFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&dialect, "dialect", "d", "", "netlist dialect: cadstar, pads or orcadpcb2")
}

func addWatchFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render whenever the input changes")
}

// applyFlags copies explicitly set flags of cmd into c.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		c.Format = format
	}
	if flags.Changed("group-by") {
		c.GroupBy = groupBy
	}
	if flags.Changed("ungrouped") {
		c.Ungrouped = ungrouped
	}
	if flags.Changed("exclude-dnp") {
		c.ExcludeDNP = excludeDNP
	}
	if flags.Changed("coverage") {
		c.Coverage = coverage
	}
	if flags.Changed("quote") {
		c.Quote = quote
	}
	if flags.Changed("dialect") {
		c.Dialect = dialect
	}
	if flags.Changed("field") {
		c.ExtraFields = append(c.ExtraFields, extraFields...)
	}
}
