package pedigree

// TwinGroup is a monozygotic cohort sharing sex, family, and (once
// typed) genotype per locus (spec.md §3).
type TwinGroup struct {
	Index  int // 0-based sequential twin-group index, per spec.md §4.3
	Token  string
	Sex    Sex
	Family *Family

	Members []*Individual
}

// NewTwinGroup constructs an empty TwinGroup.
func NewTwinGroup(index int, token string) *TwinGroup {
	return &TwinGroup{Index: index, Token: token}
}
