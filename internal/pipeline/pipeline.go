// Package pipeline sequences the engine's phases end to end: fixed-width
// ingestion, family building, twin resolution, partitioning, generation
// assignment, loop detection, canonical indexing, marker ingestion, and
// kinship computation (spec.md §4). It is the one place that knows the
// phase order; both the CLI and tests drive the whole build through it.
package pipeline

import (
	"fmt"
	"io"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/canon"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/config"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/family"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/generation"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/ident"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/ingest"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/kinship"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/loopdetect"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/marker"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/partition"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/twin"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Options configures one end-to-end run.
type Options struct {
	Cfg *config.Config

	PedigreeFile io.Reader
	MarkerFile   io.Reader // nil if no marker data
	LocusInfo    io.Reader // nil if alleles are estimated, not preloaded
	LocusNames   []string  // locus names in field order, when LocusInfo is nil

	ShowProgress bool
	TotalLines   int

	Logger *diag.Logger // structured phase logging; defaults to a discard logger when nil
}

// Result is everything a caller needs after a successful run.
type Result struct {
	Build *pedigree.Build
	Table *ident.Table
	Sink  *diag.Sink
}

// Run executes every phase in order, stopping at the first phase
// boundary where the sink has accumulated errors (spec.md §7).
func Run(opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = diag.NewDiscardLogger()
	}

	build := pedigree.NewBuild()
	build.FamidLen = opts.Cfg.Widths.FamID
	sink := diag.NewSink()
	table := ident.New(4096)

	log.Infow("ingesting pedigree records")
	ingester := ingest.New(ingest.Options{
		Widths:       opts.Cfg.Widths,
		ShowProgress: opts.ShowProgress,
		TotalLines:   opts.TotalLines,
	}, table, sink)
	records, err := ingester.IngestAll(opts.PedigreeFile)
	if err != nil {
		return nil, fmt.Errorf("pedigree ingest: %w", err)
	}
	log.Debugw("pedigree ingest complete", "records", len(records))

	log.Infow("building families")
	if err := family.New(table, build, sink).Run(records); err != nil {
		return &Result{Build: build, Table: table, Sink: sink}, err
	}
	if sink.HasErrors() {
		return &Result{Build: build, Table: table, Sink: sink}, fmt.Errorf("family building reported errors")
	}

	log.Infow("resolving twin groups")
	twin.Resolve(build, sink)
	if sink.HasErrors() {
		return &Result{Build: build, Table: table, Sink: sink}, fmt.Errorf("twin resolution reported errors")
	}

	log.Infow("partitioning pedigrees")
	partition.Run(build)
	log.Debugw("partition complete", "pedigrees", len(build.Pedigrees))

	log.Infow("assigning generations")
	if err := generation.Run(build, sink); err != nil {
		return &Result{Build: build, Table: table, Sink: sink}, err
	}

	log.Infow("detecting loops")
	loopdetect.Run(build)

	log.Infow("assigning canonical order")
	canon.Run(build)

	if opts.MarkerFile != nil {
		log.Infow("ingesting marker genotypes")
		locusNames := opts.LocusNames
		if opts.LocusInfo != nil {
			preloaded, err := marker.LoadLocusInfo(opts.LocusInfo)
			if err != nil {
				return &Result{Build: build, Table: table, Sink: sink}, fmt.Errorf("locus info: %w", err)
			}
			build.Loci = preloaded
			locusNames = locusNames[:0]
			for _, l := range preloaded {
				l.XLinked = opts.Cfg.IsXLinked(l.Name)
				locusNames = append(locusNames, l.Name)
			}
		}

		mi := marker.New(marker.Options{
			IDWidth:       opts.Cfg.Widths.FamID + opts.Cfg.Widths.ID,
			GenotypeLen:   opts.Cfg.Widths.Genotype,
			LocusNames:    locusNames,
			FamidPrefixed: opts.Cfg.Widths.FamID > 0,
		}, table, opts.Cfg, build, sink)
		if err := mi.IngestAll(opts.MarkerFile); err != nil {
			return &Result{Build: build, Table: table, Sink: sink}, fmt.Errorf("marker ingest: %w", err)
		}
		if sink.HasErrors() {
			return &Result{Build: build, Table: table, Sink: sink}, fmt.Errorf("marker ingest reported errors")
		}
	}

	log.Infow("computing kinship coefficients")
	kinship.New(build).Run(build)

	return &Result{Build: build, Table: table, Sink: sink}, nil
}
