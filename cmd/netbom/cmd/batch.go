package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netbom/internal/app"
)

var batchPattern string

var batchCmd = &cobra.Command{
	Use:   "batch <root>",
	Short: "Render every netlist below a directory",
	Long: `Render a BOM (or, with --dialect, a flat netlist) next to every file
below root that matches --pattern. The output takes the input name with
the extension of the selected format.

Examples:
  netbom batch . --pattern '**/*.net' --format csv
  netbom batch hw/ --pattern 'boards/*/*.xml' --dialect cadstar`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchPattern, "pattern", "p", app.DefaultBatchPattern, "doublestar glob relative to root")
	addReportFlags(batchCmd)
	addGroupingFlags(batchCmd)
	addDialectFlag(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	results, err := app.Batch(cmd.Context(), args[0], batchPattern, cfg)

	out := cmd.OutOrStdout()
	ok := 0
	for _, r := range results {
		if r.Err == nil {
			fmt.Fprintf(out, "%s -> %s\n", r.Input, r.Output)
			ok++
		}
	}
	fmt.Fprintf(out, "Rendered %d of %d file(s)\n", ok, len(results))
	return err
}
