package pedigree

// Family is a nuclear family: exactly one father, one mother, and an
// ordered list of their shared children (spec.md §3). Father and Mother
// are non-owning pointers into the identifier table's individuals.
type Family struct {
	Index  int // creation order, stable for the Build's lifetime
	Father *Individual
	Mother *Individual

	// Children is ordered by input order (spec.md §4.2: "order within a
	// family follows input order").
	Children []*Individual

	// PedigreeIndex is inherited from Father (spec.md §4.3: "Families
	// inherit their pedigree index from their father").
	PedigreeIndex int

	// Seq is this family's 0-based sequence within its pedigree, assigned
	// alongside PedigreeIndex by the partitioner.
	Seq int
}

// NumKids returns the child count, used directly by the loop detector's
// arc count (spec.md §4.5: "Σ (family.nkid + 2)").
func (f *Family) NumKids() int {
	return len(f.Children)
}

// NewFamily constructs a Family for a validated (father, mother) pair.
func NewFamily(index int, father, mother *Individual) *Family {
	return &Family{
		Index:         index,
		Father:        father,
		Mother:        mother,
		PedigreeIndex: -1,
	}
}
