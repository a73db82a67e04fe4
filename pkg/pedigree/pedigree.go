package pedigree

// Pedigree is one connected component of the kinship graph (spec.md §3).
type Pedigree struct {
	Index int

	Families []*Family
	Founders []*Individual // founders with no family link (singletons included)

	FounderCount    int
	IndividualCount int
	FamilyCount     int

	HasLoops  bool
	MinLoopBreakers int
	LoopBreakerID   string // candidate loop-breaker when exactly one break suffices

	Inbred bool

	// CanonicalStart is the canonical sequence number of this pedigree's
	// first individual, filled in by the canonical indexer.
	CanonicalStart int
}

// NewPedigree constructs an empty Pedigree with the given index.
func NewPedigree(index int) *Pedigree {
	return &Pedigree{Index: index}
}
