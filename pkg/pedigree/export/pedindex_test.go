package export

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
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
	father.CanonicalSeq, mother.CanonicalSeq, child.CanonicalSeq = 0, 1, 2
	father.PedigreeIndex, mother.PedigreeIndex, child.PedigreeIndex = 0, 0, 0
	father.Generation, mother.Generation, child.Generation = 0, 0, 1

	build.Individuals = []*pedigree.Individual{father, mother, child}
	build.Families = []*pedigree.Family{fam}
	return build
}

func TestPedindexWriter_WritesOneLinePerIndividualInCanonicalOrder(t *testing.T) {
	build := trioBuild()
	dir := t.TempDir()
	outPath := filepath.Join(dir, "pedindex.out")

	w := NewPedindexWriter(diag.NewSink(), 0, 10)
	if err := w.WriteToFile(build, outPath); err != nil {
		t.Fatalf("WriteToFile returned error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed reading %s: %v", outPath, err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "C") {
		t.Errorf("expected child's line to reference id C, got %q", lines[2])
	}

	cdePath := filepath.Join(dir, "pedindex.cde")
	if _, err := os.Stat(cdePath); err != nil {
		t.Errorf("expected pedindex.cde alongside pedindex.out: %v", err)
	}
}

func TestPedindexWriter_WideTwinColumnWhenManyTwinGroups(t *testing.T) {
	build := trioBuild()
	for i := 0; i < 1000; i++ {
		build.TwinGroups = append(build.TwinGroups, &pedigree.TwinGroup{})
	}
	dir := t.TempDir()
	outPath := filepath.Join(dir, "pedindex.out")

	w := NewPedindexWriter(diag.NewSink(), 0, 10)
	if err := w.WriteToFile(build, outPath); err != nil {
		t.Fatalf("WriteToFile returned error: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "pedindex.cde"))
	if err != nil {
		t.Fatalf("failed opening pedindex.cde: %v", err)
	}
	defer f.Close()

	found := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.Contains(sc.Text(), " 5 MZTWIN") {
			found = true
		}
	}
	if !found {
		t.Error("expected the wide (5-column) MZTWIN descriptor when there are >= 1000 twin groups")
	}
}
