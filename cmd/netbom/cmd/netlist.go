package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netbom/internal/app"
)

var netlistCmd = &cobra.Command{
	Use:   "netlist <input-netlist> <output>",
	Short: "Convert to a flat netlist dialect",
	Long: `Convert a KiCad netlist to Cadstar RINF, PADS-PCB or OrcadPCB2.

Virtual symbols (#PWR, #FLG) and parts excluded from the board are
skipped, as are nets with fewer than two pads.`,
	Args: cobra.ExactArgs(2),
	RunE: runNetlist,
}

func init() {
	rootCmd.AddCommand(netlistCmd)
	addDialectFlag(netlistCmd)
	addWatchFlag(netlistCmd)
}

func runNetlist(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	c := cfg

	render := func(ctx context.Context) error {
		return app.RenderNetlist(ctx, input, output, c, cmd.OutOrStdout())
	}
	if watch {
		return app.Watch(cmd.Context(), input, render)
	}
	return render(cmd.Context())
}
