// Package query is a read-only lookup layer over a built pedigree,
// backed either by the in-memory *pedigree.Build or by the SQLite
// query index in internal/store, grounded on the teacher's
// query.Query (query/query.go) generalized from a GEDCOM tree to a
// pedigree Build.
package query

import (
	"database/sql"
	"fmt"

	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Index answers pedigree lookups. It wraps an in-memory Build;
// NewSQLiteIndex wraps the persisted store instead so a downstream
// consumer can query without re-parsing pedindex.out.
type Index struct {
	build *pedigree.Build
	byID  map[string]*pedigree.Individual
}

// New builds an in-memory Index over build.
func New(build *pedigree.Build) *Index {
	idx := &Index{build: build, byID: make(map[string]*pedigree.Individual, len(build.Individuals))}
	for _, ind := range build.Individuals {
		idx.byID[ind.ID] = ind
	}
	return idx
}

// Individual looks up one individual by its (possibly FAMID-prefixed)
// ID.
func (idx *Index) Individual(id string) (*pedigree.Individual, bool) {
	ind, ok := idx.byID[id]
	return ind, ok
}

// Pedigree returns the pedigree at the given 0-based index.
func (idx *Index) Pedigree(i int) (*pedigree.Pedigree, bool) {
	if i < 0 || i >= len(idx.build.Pedigrees) {
		return nil, false
	}
	return idx.build.Pedigrees[i], true
}

// PedigreePower counts the individuals of a pedigree, honoring
// the filtered/unfiltered semantics resolved in SPEC_FULL.md §9: an
// empty ids filter covers every individual in the pedigree; a non-empty
// filter covers exactly those IDs (IDs outside the pedigree, or unknown,
// are skipped and do not inflate the count).
func (idx *Index) PedigreePower(pedigreeIndex int, ids []string) (count int, err error) {
	ped, ok := idx.Pedigree(pedigreeIndex)
	if !ok {
		return 0, fmt.Errorf("no such pedigree index %d", pedigreeIndex)
	}

	if len(ids) == 0 {
		for _, ind := range idx.build.Individuals {
			if ind.PedigreeIndex == ped.Index {
				count++
			}
		}
		return count, nil
	}

	for _, id := range ids {
		ind, ok := idx.byID[id]
		if ok && ind.PedigreeIndex == ped.Index {
			count++
		}
	}
	return count, nil
}

// Kinship returns the φ and delta7 coefficients for the pair (i, j) of
// canonical sequence numbers (1-based, i >= j), or found=false if the
// pair was never emitted (kinship 0, same-pedigree requirement unmet).
func (idx *Index) Kinship(i, j int) (phi, delta7 float64, found bool) {
	if idx.build.Kinship == nil {
		return 0, 0, false
	}
	if j > i {
		i, j = j, i
	}
	for _, pair := range idx.build.Kinship.Pairs {
		if pair.I == i && pair.J == j {
			return pair.Phi, pair.Delta7, true
		}
	}
	return 0, 0, false
}

// SQLiteIndex answers the same lookups as Index but reads from the
// persisted SQLite query index instead of holding a Build resident in
// memory.
type SQLiteIndex struct {
	db *sql.DB
}

// NewSQLiteIndex wraps an already-open SQLite handle (see
// internal/store.HybridStore.SQLite).
func NewSQLiteIndex(db *sql.DB) *SQLiteIndex {
	return &SQLiteIndex{db: db}
}

// Individual looks up one individual row by its interned ID.
func (si *SQLiteIndex) Individual(id string) (ibdid, pedigreeIndex, generation int, found bool, err error) {
	row := si.db.QueryRow(`SELECT ibdid, pedigree_index, generation FROM individuals WHERE id = ?`, id)
	err = row.Scan(&ibdid, &pedigreeIndex, &generation)
	if err == sql.ErrNoRows {
		return 0, 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, 0, false, err
	}
	return ibdid, pedigreeIndex, generation, true, nil
}

// PedigreePower applies Index.PedigreePower's filter semantics against
// the persisted index. pedigreeIndex is the 1-based pedigree number
// stored there (Index.PedigreePower takes the 0-based index), and an
// unknown pedigree yields a count of 0 rather than an error.
func (si *SQLiteIndex) PedigreePower(pedigreeIndex int, ids []string) (int, error) {
	if len(ids) == 0 {
		var count int
		err := si.db.QueryRow(`SELECT COUNT(*) FROM individuals WHERE pedigree_index = ?`, pedigreeIndex).Scan(&count)
		return count, err
	}

	placeholders := make([]interface{}, 0, len(ids)+1)
	placeholders = append(placeholders, pedigreeIndex)
	query := `SELECT COUNT(*) FROM individuals WHERE pedigree_index = ? AND id IN (`
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		placeholders = append(placeholders, id)
	}
	query += ")"

	var count int
	err := si.db.QueryRow(query, placeholders...).Scan(&count)
	return count, err
}

// Kinship mirrors Index.Kinship against the persisted index.
func (si *SQLiteIndex) Kinship(i, j int) (phi, delta7 float64, found bool, err error) {
	if j > i {
		i, j = j, i
	}
	row := si.db.QueryRow(`SELECT phi, delta7 FROM kinship WHERE i_ibdid = ? AND j_ibdid = ?`, i, j)
	err = row.Scan(&phi, &delta7)
	if err == sql.ErrNoRows {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	return phi, delta7, true, nil
}
