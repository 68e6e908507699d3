package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netbom/internal/app"
)

var infoCmd = &cobra.Command{
	Use:   "info <input-netlist>",
	Short: "Show netlist information",
	Long: `Display the design header, statistics and BOM groups of a KiCad
netlist export.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	addGroupingFlags(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := app.Summarize(cmd.Context(), args[0], cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Netlist: %s\n", s.Path)
	if s.Version != "" {
		fmt.Fprintf(out, "Version: %s\n", s.Version)
	}
	fmt.Fprintf(out, "Source: %s\n", s.Design.Source)
	fmt.Fprintf(out, "Date: %s\n", s.Design.Date)
	fmt.Fprintf(out, "Tool: %s\n", s.Design.Tool)
	fmt.Fprintln(out)

	for _, sheet := range s.Design.Sheets {
		tb := sheet.TitleBlock
		if tb.Title == "" && tb.Revision == "" {
			continue
		}
		fmt.Fprintf(out, "Sheet %s (%s):\n", sheet.Number, sheet.Name)
		if tb.Title != "" {
			fmt.Fprintf(out, "  Title: %s\n", tb.Title)
		}
		if tb.Revision != "" {
			fmt.Fprintf(out, "  Revision: %s\n", tb.Revision)
		}
		if tb.Company != "" {
			fmt.Fprintf(out, "  Company: %s\n", tb.Company)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Statistics:")
	fmt.Fprintf(out, "  Components: %d\n", s.Components)
	fmt.Fprintf(out, "  BOM components: %d\n", s.BOMParts)
	fmt.Fprintf(out, "  DNP: %d\n", s.DNP)
	fmt.Fprintf(out, "  Library parts: %d\n", s.LibParts)
	fmt.Fprintf(out, "  Nets: %d (%d with two or more pads)\n", s.Nets, s.RoutedNets)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Groups (%s): %d\n", s.Predicate, len(s.Groups))
	for _, g := range s.Groups {
		fmt.Fprintf(out, "  %3d x %-12s %-40s %s\n", len(g.Refs), g.Value, g.Footprint, strings.Join(g.Refs, ", "))
	}
	return nil
}
