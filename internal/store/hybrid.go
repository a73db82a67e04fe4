// Package store provides the optional overflow/query persistence
// backends described in SPEC_FULL.md §6: a BadgerDB key-value overflow
// store for individuals and genotypes too large to keep resident, and a
// SQLite-backed query index over the canonical pedigree. Both are
// optional; "memory" mode (config.StorageConfig.Mode) keeps everything
// in the in-process *pedigree.Build and never touches this package.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	_ "github.com/mattn/go-sqlite3"
)

// HybridStore manages the optional BadgerDB overflow store and the
// SQLite query index side by side, grounded on the teacher's
// HybridStorage (pkg/gedcom/query/hybrid_storage.go) adapted from
// genealogy-record nodes/edges to pedigree individuals/families.
type HybridStore struct {
	sqliteDB   *sql.DB
	badgerDB   *badger.DB
	sqlitePath string
	badgerDir  string
}

// Open initializes whichever backends have a non-empty path configured.
// Either path may be blank, in which case that backend is left nil.
func Open(sqlitePath, badgerDir string) (*HybridStore, error) {
	hs := &HybridStore{sqlitePath: sqlitePath, badgerDir: badgerDir}

	if sqlitePath != "" {
		if err := hs.initSQLite(); err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
	}
	if badgerDir != "" {
		if err := hs.initBadger(); err != nil {
			hs.Close()
			return nil, fmt.Errorf("failed to initialize BadgerDB: %w", err)
		}
	}
	return hs, nil
}

func (hs *HybridStore) initSQLite() error {
	dir := filepath.Dir(hs.sqlitePath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create SQLite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", hs.sqlitePath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	hs.sqliteDB = db

	if err := hs.createSchema(); err != nil {
		db.Close()
		return fmt.Errorf("failed to create SQLite schema: %w", err)
	}
	return nil
}

func (hs *HybridStore) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS individuals (
		ibdid INTEGER PRIMARY KEY,
		id TEXT UNIQUE NOT NULL,
		sex INTEGER NOT NULL,
		father_ibdid INTEGER,
		mother_ibdid INTEGER,
		twin_group INTEGER DEFAULT 0,
		pedigree_index INTEGER NOT NULL,
		generation INTEGER NOT NULL,
		synthesized INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_individuals_pedigree ON individuals(pedigree_index);
	CREATE INDEX IF NOT EXISTS idx_individuals_generation ON individuals(generation);
	CREATE INDEX IF NOT EXISTS idx_individuals_father ON individuals(father_ibdid);
	CREATE INDEX IF NOT EXISTS idx_individuals_mother ON individuals(mother_ibdid);

	CREATE TABLE IF NOT EXISTS pedigrees (
		pedigree_index INTEGER PRIMARY KEY,
		founder_count INTEGER NOT NULL,
		individual_count INTEGER NOT NULL,
		family_count INTEGER NOT NULL,
		has_loops INTEGER DEFAULT 0,
		min_loop_breakers INTEGER DEFAULT 0,
		inbred INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS kinship (
		i_ibdid INTEGER NOT NULL,
		j_ibdid INTEGER NOT NULL,
		phi REAL NOT NULL,
		delta7 REAL NOT NULL,
		PRIMARY KEY (i_ibdid, j_ibdid)
	);

	CREATE INDEX IF NOT EXISTS idx_kinship_i ON kinship(i_ibdid);
	CREATE INDEX IF NOT EXISTS idx_kinship_j ON kinship(j_ibdid);

	PRAGMA mmap_size = 268435456;
	`
	_, err := hs.sqliteDB.Exec(schema)
	return err
}

func (hs *HybridStore) initBadger() error {
	if err := os.MkdirAll(hs.badgerDir, 0o755); err != nil {
		return fmt.Errorf("failed to create BadgerDB directory: %w", err)
	}
	opts := badger.DefaultOptions(hs.badgerDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open BadgerDB: %w", err)
	}
	hs.badgerDB = db
	return nil
}

// Close closes whichever backends were opened.
func (hs *HybridStore) Close() error {
	var errs []error
	if hs.sqliteDB != nil {
		if err := hs.sqliteDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close SQLite: %w", err))
		}
	}
	if hs.badgerDB != nil {
		if err := hs.badgerDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close BadgerDB: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing store: %v", errs)
	}
	return nil
}

// SQLite returns the underlying SQLite handle, or nil if not configured.
func (hs *HybridStore) SQLite() *sql.DB {
	return hs.sqliteDB
}

// Badger returns the underlying BadgerDB handle, or nil if not
// configured.
func (hs *HybridStore) Badger() *badger.DB {
	return hs.badgerDB
}
