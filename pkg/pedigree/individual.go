// Package pedigree holds the engine's public data model: individuals,
// nuclear families, pedigrees (connected components), twin groups, loci,
// and the kinship matrix. Phases in internal/ build and populate a
// *Build aggregate of these types; once built they are read-only, per
// spec.md §5 ("Lifecycle").
package pedigree

// Sex enumerates the three sex codes the ingester recognizes.
type Sex int

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "M"
	case SexFemale:
		return "F"
	default:
		return "U"
	}
}

// Genotype is a canonicalized (min,max) pair of interned allele IDs for
// one locus, per spec.md §4.8 ("Stored individual genotypes are
// canonicalised as (min-index, max-index)"). AlleleLo/AlleleHi are 0 when
// the individual is untyped at that locus.
type Genotype struct {
	AlleleLo int
	AlleleHi int
	Typed    bool
}

// Individual is one person in the pedigree. Index is this individual's
// position in the identifier table's creation order; it is stable for
// the lifetime of a Build and is distinct from the Generation/Pedigree/
// CanonicalSeq fields assigned by later phases.
type Individual struct {
	Index int
	ID    string // family-id-prefixed when family-scoped, per spec.md §4.1
	Sex   Sex

	TwinGroup      string // blank if not a twin (raw input token)
	TwinGroupIndex int    // 1-based index into Build.TwinGroups; 0 if none
	HouseholdID string // blank if none; data-model parity field, see SPEC_FULL.md §3

	// Family is the nuclear family in which this individual is a child.
	// Nil means this individual is a founder.
	Family *Family

	// Synthesized marks individuals materialized by the family builder
	// because a record named a parent not present in the input
	// (spec.md §4.2).
	Synthesized bool

	// Derived fields, assigned by later phases and read-only thereafter.
	Generation    int // -1 until assigned; founders are 0
	PedigreeIndex int // -1 until assigned by the partitioner
	CanonicalSeq  int // -1 until assigned by the canonical indexer

	// Genotypes holds one entry per locus name, populated by the marker
	// ingester (spec.md §4.8).
	Genotypes map[string]Genotype
}

// IsFounder reports whether both parents are unknown.
func (ind *Individual) IsFounder() bool {
	return ind.Family == nil
}

// NewIndividual constructs an Individual with derived fields at their
// "unassigned" sentinel values.
func NewIndividual(index int, id string, sex Sex) *Individual {
	return &Individual{
		Index:         index,
		ID:            id,
		Sex:           sex,
		Generation:    -1,
		PedigreeIndex: -1,
		CanonicalSeq:  -1,
		Genotypes:     make(map[string]Genotype),
	}
}
