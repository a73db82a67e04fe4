package pedigree

// KinshipPair is one emitted (i,j) record of the phi2 matrix: canonical
// indices i,j are 1-based (matching the on-disk format from spec.md §6),
// Phi is twice the coefficient of kinship, and Delta7 is the condensed
// identity coefficient (spec.md §4.7).
type KinshipPair struct {
	I, J   int
	Phi    float64
	Delta7 float64
}

// KinshipMatrix holds the full set of emitted non-zero pairs plus the
// diagonal, in the canonical order described by spec.md §4.7/§6.
type KinshipMatrix struct {
	N     int
	Pairs []KinshipPair
}
