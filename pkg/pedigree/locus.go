package pedigree

// Allele is one symbol registered at a Locus, with its observed count and
// estimated frequency (spec.md §4.8).
type Allele struct {
	ID        int // interned ID, 1-based; canonicalized genotype pairs use this
	Symbol    string
	Count     int
	Frequency float64
}

// Locus is a marker site: a name and its interned allele table
// (spec.md §3).
type Locus struct {
	Index int
	Name  string

	// Alleles is ordered by first-sighting (insertion order); AllNumeric
	// governs whether downstream sort keys treat Symbol as an integer or
	// lexically (spec.md §4.8/§9).
	Alleles    []*Allele
	symbolToID map[string]int

	AllNumeric bool
	XLinked    bool

	TotalTyped   int // number of individuals with both alleles present
	FounderTyped int

	// Preloaded is true when this locus's allele table came from a
	// locus-info file rather than being estimated from the data; an
	// unknown allele is then reported as an error instead of being
	// registered and counted (spec.md §4.8).
	Preloaded bool
}

// NewLocus constructs an empty Locus.
func NewLocus(index int, name string) *Locus {
	return &Locus{
		Index:      index,
		Name:       name,
		symbolToID: make(map[string]int),
	}
}

// Intern registers symbol if new and returns its allele ID, plus whether
// it was newly registered. The caller is responsible for honoring the
// Preloaded/error-on-unknown rule.
func (l *Locus) Intern(symbol string) (id int, isNew bool) {
	if id, ok := l.symbolToID[symbol]; ok {
		return id, false
	}
	id = len(l.Alleles) + 1
	l.Alleles = append(l.Alleles, &Allele{ID: id, Symbol: symbol})
	l.symbolToID[symbol] = id
	return id, true
}

// Lookup returns the allele ID for symbol without registering it.
func (l *Locus) Lookup(symbol string) (id int, found bool) {
	id, found = l.symbolToID[symbol]
	return
}

// AlleleByID returns the Allele with the given interned ID, or nil.
func (l *Locus) AlleleByID(id int) *Allele {
	if id < 1 || id > len(l.Alleles) {
		return nil
	}
	return l.Alleles[id-1]
}
