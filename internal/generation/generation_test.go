package generation

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

func TestRun_ThreeGenerationLineage(t *testing.T) {
	build := pedigree.NewBuild()
	grandpa := pedigree.NewIndividual(0, "GP", pedigree.SexMale)
	grandma := pedigree.NewIndividual(1, "GM", pedigree.SexFemale)
	dad := pedigree.NewIndividual(2, "D", pedigree.SexMale)
	famD := pedigree.NewFamily(0, grandpa, grandma)
	dad.Family = famD
	mom := pedigree.NewIndividual(3, "MO", pedigree.SexFemale)
	child := pedigree.NewIndividual(4, "C", pedigree.SexMale)
	famC := pedigree.NewFamily(1, dad, mom)
	child.Family = famC

	build.Individuals = []*pedigree.Individual{grandpa, grandma, dad, mom, child}
	build.Families = []*pedigree.Family{famD, famC}

	sink := diag.NewSink()
	if err := Run(build, sink); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if grandpa.Generation != 0 || grandma.Generation != 0 || mom.Generation != 0 {
		t.Error("expected founders at generation 0")
	}
	if dad.Generation != 1 {
		t.Errorf("dad.Generation = %d, want 1", dad.Generation)
	}
	if child.Generation != 2 {
		t.Errorf("child.Generation = %d, want 2", child.Generation)
	}
}

func TestRun_DetectsAncestryCycle(t *testing.T) {
	build := pedigree.NewBuild()
	a := pedigree.NewIndividual(0, "A", pedigree.SexMale)
	b := pedigree.NewIndividual(1, "B", pedigree.SexFemale)
	famAB := pedigree.NewFamily(0, a, b)
	// a is its own descendant: a's family makes a a child of a itself.
	a.Family = famAB
	famAB.Children = []*pedigree.Individual{a}

	build.Individuals = []*pedigree.Individual{a, b}
	build.Families = []*pedigree.Family{famAB}

	sink := diag.NewSink()
	err := Run(build, sink)
	if err == nil {
		t.Fatal("expected a cycle error")
	}
	if !sink.HasErrors() {
		t.Error("expected the sink to record the fatal cycle diagnostic")
	}
}

func TestRun_InbredMarriageSharesGenerationFromBothLines(t *testing.T) {
	// First-cousin marriage: C1 and C2 are first cousins (same
	// grandparents), and their child D should be at generation 3.
	build := pedigree.NewBuild()
	gp := pedigree.NewIndividual(0, "GP", pedigree.SexMale)
	gm := pedigree.NewIndividual(1, "GM", pedigree.SexFemale)

	s1 := pedigree.NewIndividual(2, "S1", pedigree.SexMale)
	s2 := pedigree.NewIndividual(3, "S2", pedigree.SexFemale)
	famGrandparents := pedigree.NewFamily(0, gp, gm)
	s1.Family, s2.Family = famGrandparents, famGrandparents

	outsider1 := pedigree.NewIndividual(4, "O1", pedigree.SexFemale)
	outsider2 := pedigree.NewIndividual(5, "O2", pedigree.SexMale)

	c1 := pedigree.NewIndividual(6, "C1", pedigree.SexMale)
	famS1 := pedigree.NewFamily(1, s1, outsider1)
	c1.Family = famS1

	c2 := pedigree.NewIndividual(7, "C2", pedigree.SexFemale)
	famS2 := pedigree.NewFamily(2, outsider2, s2)
	c2.Family = famS2

	d := pedigree.NewIndividual(8, "D", pedigree.SexUnknown)
	famCousins := pedigree.NewFamily(3, c1, c2)
	d.Family = famCousins

	build.Individuals = []*pedigree.Individual{gp, gm, s1, s2, outsider1, outsider2, c1, c2, d}
	build.Families = []*pedigree.Family{famGrandparents, famS1, famS2, famCousins}

	sink := diag.NewSink()
	if err := Run(build, sink); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if d.Generation != 3 {
		t.Errorf("D.Generation = %d, want 3", d.Generation)
	}
}
