package store

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStoreAndLoadIndividual_Roundtrip(t *testing.T) {
	db := openTestBadger(t)

	father := pedigree.NewIndividual(0, "F", pedigree.SexMale)
	mother := pedigree.NewIndividual(1, "M", pedigree.SexFemale)
	child := pedigree.NewIndividual(2, "C", pedigree.SexMale)
	fam := pedigree.NewFamily(0, father, mother)
	child.Family = fam
	child.Generation = 1
	child.Genotypes["D1S80"] = pedigree.Genotype{AlleleLo: 1, AlleleHi: 2, Typed: true}

	build := pedigree.NewBuild()
	build.Individuals = []*pedigree.Individual{father, mother, child}

	require.NoError(t, StoreIndividuals(db, build))

	rec, err := LoadIndividual(db, "C")
	require.NoError(t, err)
	assert.Equal(t, "C", rec.ID)
	assert.Equal(t, "F", rec.FatherID)
	assert.Equal(t, "M", rec.MotherID)
	assert.Equal(t, 1, rec.Generation)
	assert.Equal(t, pedigree.Genotype{AlleleLo: 1, AlleleHi: 2, Typed: true}, rec.Genotypes["D1S80"])
}

func TestLoadIndividual_UnknownIDIsAnError(t *testing.T) {
	db := openTestBadger(t)
	_, err := LoadIndividual(db, "nobody")
	assert.Error(t, err)
}
