package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netbom/internal/app"
)

var bomCmd = &cobra.Command{
	Use:   "bom <input-netlist> <output> [extra-field ...]",
	Short: "Generate a grouped bill of materials",
	Long: `Generate a bill of materials from a KiCad netlist.

Components are sorted by reference and grouped with the --group-by keys.
Every user field found on components or library parts becomes a column;
extra field names given after the output are appended as columns and
added to the grouping keys. Use "-" as output to write to stdout.

With the default --coverage check, the BOM fails when members of a
group disagree on a column the grouping keys do not cover, for example
a 10k 0603 group mixing Device:R and Device:R_Small symbols or carrying
different datasheets. Either add the column to the keys
(--group-by "value, footprint, dnp, libpart, datasheet") or accept the
last member's value with --coverage ignore.

If the output file cannot be opened, the BOM is written to stdout and
the command exits with status 1.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runBOM,
}

func init() {
	rootCmd.AddCommand(bomCmd)
	addReportFlags(bomCmd)
	addGroupingFlags(bomCmd)
	addWatchFlag(bomCmd)
}

func runBOM(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	c := cfg
	c.ExtraFields = append(append([]string(nil), c.ExtraFields...), args[2:]...)

	render := func(ctx context.Context) error {
		return app.RenderBOM(ctx, input, output, c, cmd.OutOrStdout())
	}
	if watch {
		return app.Watch(cmd.Context(), input, render)
	}
	return render(cmd.Context())
}
