package marker

import (
	"strings"
	"testing"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/config"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/ident"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

func testOpts() Options {
	return Options{IDWidth: 4, GenotypeLen: 6, LocusNames: []string{"D1S80"}}
}

func newIngesterWithIndividuals(inds ...*pedigree.Individual) (*Ingester, *ident.Table, *pedigree.Build, *diag.Sink) {
	table := ident.New(16)
	for _, ind := range inds {
		table.Register(ind)
	}
	build := pedigree.NewBuild()
	build.Individuals = inds
	cfg := config.Default()
	sink := diag.NewSink()
	return New(testOpts(), table, cfg, build, sink), table, build, sink
}

func TestIngestAll_FounderGenotypeIsInternedAndFrequencyEstimated(t *testing.T) {
	i1 := pedigree.NewIndividual(0, "I1", pedigree.SexMale)
	ig, _, _, sink := newIngesterWithIndividuals(i1)

	line := "I1  " + "12 14 "
	if err := ig.IngestAll(strings.NewReader(line + "\n")); err != nil {
		t.Fatalf("IngestAll returned error: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}

	g, ok := i1.Genotypes["D1S80"]
	if !ok || !g.Typed {
		t.Fatal("expected I1 to be typed at D1S80")
	}
	if g.AlleleLo != 1 || g.AlleleHi != 2 {
		t.Errorf("genotype = (%d,%d), want (1,2)", g.AlleleLo, g.AlleleHi)
	}

	locus := ig.build.Loci[0]
	if locus.TotalTyped != 1 || locus.FounderTyped != 1 {
		t.Errorf("TotalTyped=%d FounderTyped=%d, want 1,1", locus.TotalTyped, locus.FounderTyped)
	}
	for _, al := range locus.Alleles {
		if al.Frequency != 0.5 {
			t.Errorf("allele %q frequency = %v, want 0.5", al.Symbol, al.Frequency)
		}
	}
}

func TestIngestAll_UnknownIndividualIsAnError(t *testing.T) {
	ig, _, _, sink := newIngesterWithIndividuals()
	line := "I9  " + "12 14 "
	if err := ig.IngestAll(strings.NewReader(line + "\n")); err != nil {
		t.Fatalf("IngestAll returned error: %v", err)
	}
	if !sink.HasErrors() {
		t.Fatal("expected an error for an unknown individual")
	}
}

func TestIngestAll_WrongRecordLengthIsFatal(t *testing.T) {
	ig, _, _, sink := newIngesterWithIndividuals(pedigree.NewIndividual(0, "I1", pedigree.SexMale))
	if err := ig.IngestAll(strings.NewReader("I1  12\n")); err == nil {
		t.Fatal("expected a fatal error for a malformed record length")
	}
	if sink.Count(diag.SeverityFatal) != 1 {
		t.Errorf("expected exactly 1 fatal diagnostic, got %d", sink.Count(diag.SeverityFatal))
	}
}

func TestIngestAll_XLinkedMaleWithTwoAllelesIsAnError(t *testing.T) {
	i1 := pedigree.NewIndividual(0, "I1", pedigree.SexMale)
	ig, _, _, sink := newIngesterWithIndividuals(i1)
	ig.cfg.XLinked = []string{"D1S80"}

	line := "I1  " + "12 14 "
	if err := ig.IngestAll(strings.NewReader(line + "\n")); err != nil {
		t.Fatalf("IngestAll returned error: %v", err)
	}
	if !sink.HasErrors() {
		t.Fatal("expected an error for a male with two distinct X-linked alleles")
	}
}

func TestIngestAll_PropagatesTwinGenotypeToUntypedMember(t *testing.T) {
	father := pedigree.NewIndividual(0, "F", pedigree.SexMale)
	mother := pedigree.NewIndividual(1, "M", pedigree.SexFemale)
	fam := pedigree.NewFamily(0, father, mother)
	twin1 := pedigree.NewIndividual(2, "T1", pedigree.SexMale)
	twin2 := pedigree.NewIndividual(3, "T2", pedigree.SexMale)
	twin1.Family, twin2.Family = fam, fam

	ig, _, build, sink := newIngesterWithIndividuals(father, mother, twin1, twin2)
	build.TwinGroups = []*pedigree.TwinGroup{{Members: []*pedigree.Individual{twin1, twin2}}}

	line := "T1  " + "12 14 "
	if err := ig.IngestAll(strings.NewReader(line + "\n")); err != nil {
		t.Fatalf("IngestAll returned error: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}

	g, ok := twin2.Genotypes["D1S80"]
	if !ok {
		t.Fatal("expected twin2 to receive twin1's propagated genotype")
	}
	if g.AlleleLo != twin1.Genotypes["D1S80"].AlleleLo || g.AlleleHi != twin1.Genotypes["D1S80"].AlleleHi {
		t.Error("propagated twin genotype does not match twin1's")
	}
}
