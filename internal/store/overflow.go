package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// individualRecord is the BadgerDB-resident serialization of one
// Individual, keyed by its interned identifier rather than by pointer.
type individualRecord struct {
	ID             string                      `json:"id"`
	Sex            pedigree.Sex                `json:"sex"`
	FatherID       string                      `json:"father_id,omitempty"`
	MotherID       string                      `json:"mother_id,omitempty"`
	TwinGroupIndex int                         `json:"twin_group_index,omitempty"`
	PedigreeIndex  int                         `json:"pedigree_index"`
	Generation     int                         `json:"generation"`
	CanonicalSeq   int                         `json:"canonical_seq"`
	Synthesized    bool                        `json:"synthesized,omitempty"`
	Genotypes      map[string]pedigree.Genotype `json:"genotypes,omitempty"`
}

// StoreIndividuals writes every individual in build to BadgerDB as a
// single batched write, keyed "ind:<id>", grounded on the teacher's
// processIndividualsForBadgerDB batch-write pattern.
func StoreIndividuals(db *badger.DB, build *pedigree.Build) error {
	wb := db.NewWriteBatch()
	defer wb.Cancel()

	for _, ind := range build.Individuals {
		rec := individualRecord{
			ID:             ind.ID,
			Sex:            ind.Sex,
			TwinGroupIndex: ind.TwinGroupIndex,
			PedigreeIndex:  ind.PedigreeIndex,
			Generation:     ind.Generation,
			CanonicalSeq:   ind.CanonicalSeq,
			Synthesized:    ind.Synthesized,
			Genotypes:      ind.Genotypes,
		}
		if ind.Family != nil {
			rec.FatherID = ind.Family.Father.ID
			rec.MotherID = ind.Family.Mother.ID
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to serialize individual %q: %w", ind.ID, err)
		}
		key := fmt.Sprintf("ind:%s", ind.ID)
		if err := wb.Set([]byte(key), data); err != nil {
			return fmt.Errorf("failed to set individual %q: %w", ind.ID, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("failed to flush individuals batch: %w", err)
	}
	return nil
}

// LoadIndividual reads back one individual record by ID, for
// interactive lookups that would otherwise require the whole Build
// resident in memory.
func LoadIndividual(db *badger.DB, id string) (*individualRecord, error) {
	var rec individualRecord
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fmt.Sprintf("ind:%s", id)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
