package store

import (
	"database/sql"
	"fmt"

	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// IndexBuild populates the SQLite query index from a completed Build:
// individuals, pedigree summaries, and the kinship matrix. It is safe
// to call once per Build after every phase has run.
func IndexBuild(db *sql.DB, build *pedigree.Build) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin index transaction: %w", err)
	}
	defer tx.Rollback()

	indStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO individuals
			(ibdid, id, sex, father_ibdid, mother_ibdid, twin_group, pedigree_index, generation, synthesized)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare individuals insert: %w", err)
	}
	defer indStmt.Close()

	for _, ind := range build.Individuals {
		var fatherSeq, motherSeq sql.NullInt64
		if ind.Family != nil {
			fatherSeq = sql.NullInt64{Int64: int64(ind.Family.Father.CanonicalSeq + 1), Valid: true}
			motherSeq = sql.NullInt64{Int64: int64(ind.Family.Mother.CanonicalSeq + 1), Valid: true}
		}
		if _, err := indStmt.Exec(
			ind.CanonicalSeq+1, ind.ID, int(ind.Sex),
			fatherSeq, motherSeq,
			ind.TwinGroupIndex, ind.PedigreeIndex+1, ind.Generation,
			boolToInt(ind.Synthesized),
		); err != nil {
			return fmt.Errorf("failed to index individual %q: %w", ind.ID, err)
		}
	}

	pedStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO pedigrees
			(pedigree_index, founder_count, individual_count, family_count, has_loops, min_loop_breakers, inbred)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare pedigrees insert: %w", err)
	}
	defer pedStmt.Close()

	for _, ped := range build.Pedigrees {
		if _, err := pedStmt.Exec(
			ped.Index+1, ped.FounderCount, ped.IndividualCount, ped.FamilyCount,
			boolToInt(ped.HasLoops), ped.MinLoopBreakers, boolToInt(ped.Inbred),
		); err != nil {
			return fmt.Errorf("failed to index pedigree %d: %w", ped.Index, err)
		}
	}

	if build.Kinship != nil {
		kinStmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO kinship (i_ibdid, j_ibdid, phi, delta7)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare kinship insert: %w", err)
		}
		defer kinStmt.Close()

		for _, pair := range build.Kinship.Pairs {
			if _, err := kinStmt.Exec(pair.I, pair.J, pair.Phi, pair.Delta7); err != nil {
				return fmt.Errorf("failed to index kinship pair (%d,%d): %w", pair.I, pair.J, err)
			}
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
