package pedigree

import "sort"

// Build is the process-wide aggregate of tables owned by the engine
// (spec.md §5: "the identifier, family, pedigree, locus, and twin tables
// are process-wide collections created once and never mutated after
// their owning phase completes"). Each phase fills the slices it owns; a
// phase may reset its slice before refilling it (the family builder's
// second pass, partitioning, twin resolution, marker ingest).
type Build struct {
	Individuals []*Individual
	Families    []*Family
	Pedigrees   []*Pedigree
	TwinGroups  []*TwinGroup
	Loci        []*Locus

	// FamidLen is the width of the family-id prefix, 0 when pedigree
	// records are not family-scoped (spec.md §4.1).
	FamidLen int

	// Kinship is populated by the kinship engine as the final phase.
	Kinship *KinshipMatrix

	Inbred bool
}

// NewBuild constructs an empty Build.
func NewBuild() *Build {
	return &Build{}
}

// NumFounders returns the count of individuals with no owning family.
func (b *Build) NumFounders() int {
	n := 0
	for _, ind := range b.Individuals {
		if ind.IsFounder() {
			n++
		}
	}
	return n
}

// CanonicalOrder returns every individual sorted by CanonicalSeq,
// assuming the canonical indexer has already run.
func (b *Build) CanonicalOrder() []*Individual {
	out := make([]*Individual, len(b.Individuals))
	copy(out, b.Individuals)
	sort.Slice(out, func(i, j int) bool { return out[i].CanonicalSeq < out[j].CanonicalSeq })
	return out
}
