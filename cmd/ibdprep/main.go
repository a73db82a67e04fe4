package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lesfleursdelanuitdev/ibdprep/cmd/ibdprep/commands"
	cliinternal "github.com/lesfleursdelanuitdev/ibdprep/cmd/ibdprep/internal"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/config"
)

var (
	version    = "1.0.0"
	configPath string
	quiet      bool
	verbose    bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:     "ibdprep",
	Short:   "Pedigree and kinship preparation tool",
	Long:    "Ingest fixed-width pedigree and marker records, partition them into pedigrees, detect loops, assign canonical order, and compute kinship coefficients.",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
			cfg = config.Default()
		}

		if quiet {
			cliinternal.SetQuietMode(true)
			cfg.Output.Progress = false
		}
		if noColor {
			cfg.Output.Color = false
		}

		cliinternal.InitColor(cfg.Output.Color)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (suppress progress bars)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(commands.GetBuildCommand())
	rootCmd.AddCommand(commands.GetQueryCommand())
	rootCmd.AddCommand(commands.GetInteractiveCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cliinternal.PrintError("Error: %v\n", err)
		os.Exit(1)
	}
}
