package pipeline

import (
	"strings"
	"testing"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/config"
)

func testWidths() config.FieldWidths {
	return config.FieldWidths{ID: 2, Father: 2, Mother: 2, Sex: 1, Twin: 1, Household: 1}
}

func trioPedigreeText() string {
	var b strings.Builder
	b.WriteString("F1" + "  " + "  " + "M" + " " + " " + "\n")
	b.WriteString("M1" + "  " + "  " + "F" + " " + " " + "\n")
	b.WriteString("C1" + "F1" + "M1" + "M" + " " + " " + "\n")
	return b.String()
}

func TestRun_TrioEndToEnd(t *testing.T) {
	cfg := &config.Config{Widths: testWidths()}
	opts := Options{Cfg: cfg, PedigreeFile: strings.NewReader(trioPedigreeText())}

	result, err := Run(opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Sink.Errors())
	}

	if len(result.Build.Individuals) != 3 {
		t.Fatalf("expected 3 individuals, got %d", len(result.Build.Individuals))
	}
	if len(result.Build.Pedigrees) != 1 {
		t.Fatalf("expected 1 pedigree, got %d", len(result.Build.Pedigrees))
	}
	ped := result.Build.Pedigrees[0]
	if ped.HasLoops {
		t.Error("a simple trio should not have loops")
	}

	child, ok := result.Table.Lookup("C1").ID, true
	if !ok || child != "C1" {
		t.Fatalf("expected to look up C1, got %q", child)
	}

	if result.Build.Kinship == nil || len(result.Build.Kinship.Pairs) == 0 {
		t.Fatal("expected a non-empty kinship matrix")
	}
}

func TestRun_OneParentBlankIsAPhaseBoundaryError(t *testing.T) {
	cfg := &config.Config{Widths: testWidths()}
	var b strings.Builder
	b.WriteString("C1" + "F1" + "  " + "M" + " " + " " + "\n")
	opts := Options{Cfg: cfg, PedigreeFile: strings.NewReader(b.String())}

	_, err := Run(opts)
	if err == nil {
		t.Fatal("expected an error for a record with one parent blank")
	}
}

func TestRun_MalformedRecordLengthAbortsIngest(t *testing.T) {
	cfg := &config.Config{Widths: testWidths()}
	opts := Options{Cfg: cfg, PedigreeFile: strings.NewReader("short\n")}

	_, err := Run(opts)
	if err == nil {
		t.Fatal("expected an ingest error for a malformed record length")
	}
}

func TestRun_MarkerPloidyViolationAbortsBeforeKinship(t *testing.T) {
	cfg := &config.Config{Widths: testWidths()}
	cfg.Widths.Genotype = 4
	opts := Options{
		Cfg:          cfg,
		PedigreeFile: strings.NewReader(trioPedigreeText()),
		MarkerFile:   strings.NewReader("C1" + "12/ " + "\n"),
		LocusNames:   []string{"D1S80"},
	}

	result, err := Run(opts)
	if err == nil {
		t.Fatal("expected an error when marker ingest reports a ploidy violation")
	}
	if result == nil {
		t.Fatal("expected a non-nil partial result on marker-phase failure")
	}
	if !result.Sink.HasErrors() {
		t.Fatal("expected the sink to record the autosomal ploidy violation")
	}
	if result.Build.Kinship != nil {
		t.Error("kinship must not run once marker ingest reports errors")
	}
}
