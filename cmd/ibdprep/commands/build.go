package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cliinternal "github.com/lesfleursdelanuitdev/ibdprep/cmd/ibdprep/internal"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/config"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/pipeline"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/store"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree/export"
)

var buildCmd = &cobra.Command{
	Use:   "build [pedigree-file]",
	Short: "Build a pedigree from fixed-width records",
	Long:  "Ingest fixed-width pedigree (and optional marker) records, partition into pedigrees, detect loops, assign canonical order, and compute kinship.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("markers", "", "Optional fixed-width marker-genotype file")
	buildCmd.Flags().String("locus-info", "", "Optional preloaded locus-info file (name (allele freq)* lines)")
	buildCmd.Flags().StringSlice("locus", nil, "Locus name, repeatable, in field order (required with --markers unless --locus-info is given)")
	buildCmd.Flags().String("outdir", ".", "Directory to write pedindex.out, pedindex.cde, and phi2.gz into")
}

func runBuild(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pedPath := args[0]
	pedFile, err := os.Open(pedPath)
	if err != nil {
		cliinternal.PrintError("✗ cannot open %s: %v\n", pedPath, err)
		return err
	}
	defer pedFile.Close()

	opts := pipeline.Options{
		Cfg:          cfg,
		PedigreeFile: pedFile,
		ShowProgress: cfg.Output.Progress,
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		opts.ShowProgress = false
	}

	markersPath, _ := cmd.Flags().GetString("markers")
	if markersPath != "" {
		markerFile, err := os.Open(markersPath)
		if err != nil {
			cliinternal.PrintError("✗ cannot open %s: %v\n", markersPath, err)
			return err
		}
		defer markerFile.Close()
		opts.MarkerFile = markerFile
	}

	locusInfoPath, _ := cmd.Flags().GetString("locus-info")
	if locusInfoPath != "" {
		locusInfoFile, err := os.Open(locusInfoPath)
		if err != nil {
			cliinternal.PrintError("✗ cannot open %s: %v\n", locusInfoPath, err)
			return err
		}
		defer locusInfoFile.Close()
		opts.LocusInfo = locusInfoFile
	}
	opts.LocusNames, _ = cmd.Flags().GetStringSlice("locus")

	logCfg := cfg.Logging
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logCfg.Level = "debug"
	}
	logger, err := diag.NewLogger(logCfg)
	if err != nil {
		cliinternal.PrintWarning("warning: failed to build logger, falling back to discard: %v\n", err)
		logger = diag.NewDiscardLogger()
	}
	defer logger.Sync()
	opts.Logger = logger

	cliinternal.PrintInfo("ℹ Building pedigree from %s\n", pedPath)
	result, err := pipeline.Run(opts)
	if err != nil {
		cliinternal.PrintError("✗ build failed: %v\n", err)
		return err
	}

	for _, d := range result.Sink.Warnings() {
		cliinternal.PrintWarning("warning: %s\n", d.Error())
	}
	for _, d := range result.Sink.Errors() {
		cliinternal.PrintError("error: %s\n", d.Error())
	}
	if result.Sink.HasErrors() {
		return fmt.Errorf("build completed with %d error(s)", len(result.Sink.Errors()))
	}

	cliinternal.PrintSuccess("✓ built %d individuals, %d families, %d pedigrees\n",
		len(result.Build.Individuals), len(result.Build.Families), len(result.Build.Pedigrees))

	outdir, _ := cmd.Flags().GetString("outdir")
	if err := writeOutputs(result, cfg, outdir); err != nil {
		cliinternal.PrintError("✗ writing outputs: %v\n", err)
		return err
	}
	cliinternal.PrintSuccess("✓ wrote pedindex.out, pedindex.cde, phi2.gz in %s\n", outdir)

	if cfg.Storage.Mode != "memory" {
		if err := persist(result, cfg); err != nil {
			cliinternal.PrintError("✗ persisting to store: %v\n", err)
			return err
		}
		cliinternal.PrintSuccess("✓ persisted to %s store\n", cfg.Storage.Mode)
	}

	return nil
}

func writeOutputs(result *pipeline.Result, cfg *config.Config, outdir string) error {
	pedindex := export.NewPedindexWriter(result.Sink, cfg.Widths.FamID, cfg.Widths.ID)
	if err := pedindex.WriteToFile(result.Build, filepath.Join(outdir, "pedindex.out")); err != nil {
		return err
	}

	phi2 := export.NewPhi2Writer(result.Sink)
	return phi2.WriteToFile(result.Build, filepath.Join(outdir, "phi2.gz"))
}

func persist(result *pipeline.Result, cfg *config.Config) error {
	var sqlitePath, badgerDir string
	if cfg.Storage.Mode == "sqlite" {
		sqlitePath = cfg.Storage.SQLitePath
	}
	if cfg.Storage.Mode == "badger" {
		badgerDir = cfg.Storage.BadgerDir
	}

	hs, err := store.Open(sqlitePath, badgerDir)
	if err != nil {
		return err
	}
	defer hs.Close()

	if hs.SQLite() != nil {
		if err := store.IndexBuild(hs.SQLite(), result.Build); err != nil {
			return err
		}
	}
	if hs.Badger() != nil {
		if err := store.StoreIndividuals(hs.Badger(), result.Build); err != nil {
			return err
		}
	}
	return nil
}

// GetBuildCommand returns the build command.
func GetBuildCommand() *cobra.Command {
	return buildCmd
}
