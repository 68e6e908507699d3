package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netbom/internal/app"
	"github.com/OpenTraceLab/netbom/internal/config"
	"github.com/OpenTraceLab/netbom/internal/ctxlog"
)

var (
	// Global flags
	verbose    bool
	configPath string
	logLevel   string
	logFormat  string

	// cfg is the effective configuration of the running command.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "netbom",
	Short: "KiCad netlist BOM and netlist exporter",
	Long: `netbom reads KiCad netlist exports (.net or .xml) and produces
grouped bills of materials and flat netlists for other PCB tools.

Examples:
  netbom bom board.net board.csv                    # Grouped CSV BOM
  netbom bom board.net board.html Vendor MPN        # HTML BOM with extra columns
  netbom bom board.net - --format tsv --ungrouped   # One row per part on stdout
  netbom netlist board.net board.asc --dialect pads # PADS-PCB netlist
  netbom info board.net                             # Netlist summary
  netbom batch projects/ --pattern '**/*.net'       # BOM for every netlist`,
	Version:           "0.9.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var exitErr *app.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (.yaml, .yml or .hcl)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format: text or json")
}

// setup loads the config file, applies explicitly set flags on top and
// installs the logger in the command context.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := app.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	logger.Debug("Configuration resolved.", "config", configPath, "settings", fmt.Sprintf("%+v", cfg))
	return nil
}
