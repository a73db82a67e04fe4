package ident

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

func TestTable_RegisterAndLookup(t *testing.T) {
	tbl := New(0)
	ind := pedigree.NewIndividual(0, "I1", pedigree.SexMale)
	tbl.Register(ind)

	got := tbl.Lookup("I1")
	if got != ind {
		t.Fatalf("Lookup returned %v, want %v", got, ind)
	}
	if tbl.Lookup("missing") != nil {
		t.Error("expected nil for an unregistered id")
	}
	if tbl.Len() != 1 {
		t.Errorf("expected Len() == 1, got %d", tbl.Len())
	}
}

func TestTable_LookupOrdinalMatchesLookup(t *testing.T) {
	tbl := New(0)
	ids := []string{"I3", "I1", "I2"}
	for i, id := range ids {
		tbl.Register(pedigree.NewIndividual(i, id, pedigree.SexUnknown))
	}

	for _, id := range ids {
		if tbl.LookupOrdinal(id) != tbl.Lookup(id) {
			t.Errorf("LookupOrdinal(%q) disagreed with Lookup(%q)", id, id)
		}
	}
	if tbl.LookupOrdinal("nope") != nil {
		t.Error("expected nil for an unregistered id via LookupOrdinal")
	}
}

func TestTable_AllPreservesCreationOrder(t *testing.T) {
	tbl := New(4)
	ids := []string{"I3", "I1", "I2"}
	for i, id := range ids {
		tbl.Register(pedigree.NewIndividual(i, id, pedigree.SexUnknown))
	}

	all := tbl.All()
	if len(all) != len(ids) {
		t.Fatalf("expected %d individuals, got %d", len(ids), len(all))
	}
	for i, id := range ids {
		if all[i].ID != id {
			t.Errorf("All()[%d].ID = %q, want %q (creation order, not sorted)", i, all[i].ID, id)
		}
	}
}

func TestTable_AllReturnsACopy(t *testing.T) {
	tbl := New(0)
	tbl.Register(pedigree.NewIndividual(0, "I1", pedigree.SexUnknown))

	out := tbl.All()
	out = append(out, pedigree.NewIndividual(1, "I2", pedigree.SexUnknown))

	if tbl.Len() != 1 {
		t.Errorf("mutating All()'s result should not affect the table, got Len() == %d", tbl.Len())
	}
}
