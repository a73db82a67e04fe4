package partition

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

func trioBuild() *pedigree.Build {
	build := pedigree.NewBuild()
	father := pedigree.NewIndividual(0, "F", pedigree.SexMale)
	mother := pedigree.NewIndividual(1, "M", pedigree.SexFemale)
	child := pedigree.NewIndividual(2, "C", pedigree.SexMale)
	fam := pedigree.NewFamily(0, father, mother)
	fam.Children = []*pedigree.Individual{child}
	child.Family = fam
	build.Individuals = []*pedigree.Individual{father, mother, child}
	build.Families = []*pedigree.Family{fam}
	return build
}

func TestRun_TrioFormsOnePedigree(t *testing.T) {
	build := trioBuild()
	Run(build)

	if len(build.Pedigrees) != 1 {
		t.Fatalf("expected 1 pedigree, got %d", len(build.Pedigrees))
	}
	ped := build.Pedigrees[0]
	if ped.IndividualCount != 3 {
		t.Errorf("expected 3 individuals, got %d", ped.IndividualCount)
	}
	if ped.FounderCount != 2 {
		t.Errorf("expected 2 founders, got %d", ped.FounderCount)
	}
	if ped.FamilyCount != 1 {
		t.Errorf("expected 1 family, got %d", ped.FamilyCount)
	}
	for _, ind := range build.Individuals {
		if ind.PedigreeIndex != 0 {
			t.Errorf("individual %q PedigreeIndex = %d, want 0", ind.ID, ind.PedigreeIndex)
		}
	}
}

func TestRun_UnrelatedSingletonsFormOwnPedigrees(t *testing.T) {
	build := trioBuild()
	singleton := pedigree.NewIndividual(3, "S", pedigree.SexUnknown)
	build.Individuals = append(build.Individuals, singleton)

	Run(build)

	if len(build.Pedigrees) != 2 {
		t.Fatalf("expected 2 pedigrees (trio + singleton), got %d", len(build.Pedigrees))
	}
	// Singleton pedigrees are appended last, per spec.md §4.3.
	lastPed := build.Pedigrees[len(build.Pedigrees)-1]
	if lastPed.IndividualCount != 1 {
		t.Errorf("expected the last pedigree to be the one-individual singleton, got count %d", lastPed.IndividualCount)
	}
	if singleton.PedigreeIndex != lastPed.Index {
		t.Errorf("singleton's PedigreeIndex = %d, want %d", singleton.PedigreeIndex, lastPed.Index)
	}
}

func TestRun_TwoUnrelatedTriosFormSeparatePedigrees(t *testing.T) {
	build1 := trioBuild()
	build2 := trioBuild()
	for _, ind := range build2.Individuals {
		ind.ID = ind.ID + "2"
	}

	build := pedigree.NewBuild()
	build.Individuals = append(build1.Individuals, build2.Individuals...)
	build.Families = append(build1.Families, build2.Families...)

	Run(build)

	if len(build.Pedigrees) != 2 {
		t.Fatalf("expected 2 pedigrees, got %d", len(build.Pedigrees))
	}
	if build.Individuals[0].PedigreeIndex == build.Individuals[3].PedigreeIndex {
		t.Error("expected the two trios to land in different pedigrees")
	}
}
