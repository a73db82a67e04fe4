package canon

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

func TestRun_AssignsDenseCanonicalOrder(t *testing.T) {
	build := pedigree.NewBuild()
	father := pedigree.NewIndividual(0, "F", pedigree.SexMale)
	mother := pedigree.NewIndividual(1, "M", pedigree.SexFemale)
	child := pedigree.NewIndividual(2, "C", pedigree.SexMale)
	fam := pedigree.NewFamily(0, father, mother)
	fam.Children = []*pedigree.Individual{child}
	child.Family = fam
	father.Generation, mother.Generation, child.Generation = 0, 0, 1

	ped := pedigree.NewPedigree(0)
	build.Individuals = []*pedigree.Individual{father, mother, child}
	build.Families = []*pedigree.Family{fam}
	build.Pedigrees = []*pedigree.Pedigree{ped}

	Run(build)

	seen := make(map[int]bool)
	for _, ind := range build.Individuals {
		if ind.CanonicalSeq < 0 || ind.CanonicalSeq >= len(build.Individuals) {
			t.Fatalf("CanonicalSeq %d out of range for %d individuals", ind.CanonicalSeq, len(build.Individuals))
		}
		if seen[ind.CanonicalSeq] {
			t.Fatalf("duplicate CanonicalSeq %d", ind.CanonicalSeq)
		}
		seen[ind.CanonicalSeq] = true
	}

	if child.CanonicalSeq <= father.CanonicalSeq || child.CanonicalSeq <= mother.CanonicalSeq {
		t.Error("expected the child (generation 1) to sort after its generation-0 parents")
	}
	if ped.CanonicalStart != 0 {
		t.Errorf("CanonicalStart = %d, want 0", ped.CanonicalStart)
	}
}

func TestRun_OrdersByPedigreeThenGeneration(t *testing.T) {
	build := pedigree.NewBuild()
	ped0 := pedigree.NewPedigree(0)
	ped1 := pedigree.NewPedigree(1)

	a := pedigree.NewIndividual(0, "A", pedigree.SexUnknown)
	a.PedigreeIndex, a.Generation = 0, 0

	b := pedigree.NewIndividual(1, "B", pedigree.SexUnknown)
	b.PedigreeIndex, b.Generation = 1, 0

	build.Individuals = []*pedigree.Individual{b, a} // deliberately out of pedigree order
	build.Pedigrees = []*pedigree.Pedigree{ped0, ped1}

	Run(build)

	if a.CanonicalSeq >= b.CanonicalSeq {
		t.Errorf("expected pedigree 0's individual (A) to sort before pedigree 1's (B)")
	}
	if ped1.CanonicalStart != 1 {
		t.Errorf("ped1.CanonicalStart = %d, want 1", ped1.CanonicalStart)
	}
}
