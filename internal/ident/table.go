// Package ident implements the identifier table: interns individual IDs
// (optionally FAMID-prefixed) and provides O(log N) lookup, per
// spec.md §2.1. Lookup consults a small LRU cache and then an ID-keyed
// map; LookupOrdinal decides presence by binary search over a sorted ID
// slice. Grounded on the xrefToID/idToXref pattern in the
// teacher's pkg/gedcom/query/graph.go.
package ident

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Table interns individual IDs and supports registration and lookup.
// Entries are append-only: once created, an Individual's Index never
// changes (spec.md §5).
type Table struct {
	byID    map[string]*pedigree.Individual
	sorted  []string // kept sorted for the binary-search lookup path
	dirty   bool
	cache   *lru.Cache[string, *pedigree.Individual]
	ordered []*pedigree.Individual // creation order
}

// New creates an empty Table. cacheSize bounds the LRU lookup cache;
// pass 0 to disable caching.
func New(cacheSize int) *Table {
	t := &Table{byID: make(map[string]*pedigree.Individual)}
	if cacheSize > 0 {
		c, _ := lru.New[string, *pedigree.Individual](cacheSize)
		t.cache = c
	}
	return t
}

// Register interns a new individual. It is an error to register the
// same ID twice (spec.md §8 scenario 6, "duplicate ID"); callers must
// check Lookup first.
func (t *Table) Register(ind *pedigree.Individual) {
	t.byID[ind.ID] = ind
	t.sorted = append(t.sorted, ind.ID)
	t.ordered = append(t.ordered, ind)
	t.dirty = true
	if t.cache != nil {
		t.cache.Add(ind.ID, ind)
	}
}

// Lookup returns the individual with the given ID, or nil. Uses the LRU
// cache first, then falls back to the ID-keyed map, adding a map hit to
// the cache.
func (t *Table) Lookup(id string) *pedigree.Individual {
	if t.cache != nil {
		if v, ok := t.cache.Get(id); ok {
			return v
		}
	}
	ind, ok := t.byID[id]
	if !ok {
		return nil
	}
	if t.cache != nil {
		t.cache.Add(id, ind)
	}
	return ind
}

// ensureSorted rebuilds the sorted slice on demand. Exposed indirectly
// through LookupOrdinal for callers that need O(log N) semantics without
// a hash map (mirrors the spec's "O(log N) lookup" requirement as a
// literal binary search, independent of the map fast path above).
func (t *Table) ensureSorted() {
	if !t.dirty {
		return
	}
	sort.Strings(t.sorted)
	t.dirty = false
}

// LookupOrdinal performs a literal O(log N) binary-search lookup,
// returning the same result as Lookup without using the LRU cache: the
// binary search over the sorted ID slice decides whether the ID is
// present, and the individual is then read from the ID-keyed map. Used by
// tests that pin down the spec's complexity requirement.
func (t *Table) LookupOrdinal(id string) *pedigree.Individual {
	t.ensureSorted()
	i := sort.SearchStrings(t.sorted, id)
	if i < len(t.sorted) && t.sorted[i] == id {
		return t.byID[id]
	}
	return nil
}

// All returns every registered individual in creation order.
func (t *Table) All() []*pedigree.Individual {
	out := make([]*pedigree.Individual, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Len returns the number of registered individuals.
func (t *Table) Len() int {
	return len(t.ordered)
}
