package marker

import (
	"bufio"
	"io"
	"strings"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/config"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/ident"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Options configures one marker-ingest pass.
type Options struct {
	IDWidth      int // width of the leading (optionally FAMID-prefixed) person-id field
	GenotypeLen  int // width of each per-locus genotype field
	LocusNames   []string
	FamidPrefixed bool
}

// Ingester reads marker genotype records, interning alleles per locus
// and propagating genotypes across MZ twins.
type Ingester struct {
	opts  Options
	table *ident.Table
	cfg   *config.Config
	sink  *diag.Sink
	build *pedigree.Build
}

// New creates a marker Ingester.
func New(opts Options, table *ident.Table, cfg *config.Config, build *pedigree.Build, sink *diag.Sink) *Ingester {
	return &Ingester{opts: opts, table: table, cfg: cfg, build: build, sink: sink}
}

// loci lazily creates one Locus per configured name, in declaration
// order, and returns the full set.
func (ig *Ingester) loci() []*pedigree.Locus {
	if len(ig.build.Loci) == len(ig.opts.LocusNames) {
		return ig.build.Loci
	}
	ig.build.Loci = ig.build.Loci[:0]
	for i, name := range ig.opts.LocusNames {
		l := pedigree.NewLocus(i, name)
		l.XLinked = ig.cfg.IsXLinked(name)
		ig.build.Loci = append(ig.build.Loci, l)
	}
	return ig.build.Loci
}

// IngestAll reads every fixed-width marker record from r.
func (ig *Ingester) IngestAll(r io.Reader) error {
	loci := ig.loci()
	recLen := ig.opts.IDWidth + len(loci)*ig.opts.GenotypeLen + 1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line)+1 != recLen {
			return ig.sink.Fatal("marker", "marker record length %d does not match configured width %d at line %d", len(line)+1, recLen, lineNo)
		}

		id := strings.TrimSpace(line[:ig.opts.IDWidth])
		ind := ig.table.Lookup(id)
		if ind == nil {
			ig.sink.ErrorLine("marker", lineNo, "marker record for unknown individual %q", id)
			continue
		}

		off := ig.opts.IDWidth
		for _, locus := range loci {
			field := line[off : off+ig.opts.GenotypeLen]
			off += ig.opts.GenotypeLen
			ig.ingestGenotype(ind, locus, field, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	ig.propagateTwinGenotypes()
	ig.finalizeFrequencies()
	return nil
}

// ingestGenotype parses one locus field for one individual, validates
// autosomal/X-linked completeness and sex/ploidy, interns alleles, and
// stores the canonicalized genotype.
func (ig *Ingester) ingestGenotype(ind *pedigree.Individual, locus *pedigree.Locus, raw string, lineNo int) {
	a, b, ok := splitGenotypeToken(raw)
	if !ok {
		ig.sink.ErrorLine("marker", lineNo, "unparseable genotype %q for %q at locus %s", raw, ind.ID, locus.Name)
		return
	}

	if locus.XLinked {
		if ind.Sex == pedigree.SexMale {
			if a != "" && b != "" && a != b {
				ig.sink.ErrorLine("marker", lineNo, "male %q has two different alleles at X-linked locus %s", ind.ID, locus.Name)
				return
			}
			if a == "" {
				a = b
			}
			b = a
		} else if ind.Sex == pedigree.SexFemale {
			if (a == "") != (b == "") {
				ig.sink.ErrorLine("marker", lineNo, "female %q has exactly one allele present at X-linked locus %s", ind.ID, locus.Name)
				return
			}
		}
	} else {
		if (a == "") != (b == "") {
			ig.sink.ErrorLine("marker", lineNo, "autosomal locus %s requires both alleles present or both empty for %q", locus.Name, ind.ID)
			return
		}
	}

	if a == "" && b == "" {
		return // untyped at this locus
	}

	idA := ig.internAllele(locus, a, lineNo, ind.ID)
	idB := ig.internAllele(locus, b, lineNo, ind.ID)
	if idA == 0 || idB == 0 {
		return
	}
	if !locus.Preloaded {
		locus.Alleles[idA-1].Count++
		locus.Alleles[idB-1].Count++
	}

	lo, hi := idA, idB
	if lo > hi {
		lo, hi = hi, lo
	}
	ind.Genotypes[locus.Name] = pedigree.Genotype{AlleleLo: lo, AlleleHi: hi, Typed: true}

	locus.TotalTyped++
	if ind.IsFounder() {
		locus.FounderTyped++
	}
}

// internAllele registers symbol on locus, honoring spec.md §4.8: if the
// locus's allele table was preloaded from a config file, an unknown
// symbol is recorded as an error-severity diagnostic and 0 is returned;
// ingest does not stop here.
func (ig *Ingester) internAllele(locus *pedigree.Locus, symbol string, lineNo int, indID string) int {
	if existing, found := locus.Lookup(symbol); found {
		return existing
	}
	if locus.Preloaded {
		ig.sink.ErrorLine("marker", lineNo, "unknown allele %q at preloaded locus %s for %q", symbol, locus.Name, indID)
		return 0
	}
	id, _ := locus.Intern(symbol)
	if len(locus.Alleles) == 1 {
		locus.AllNumeric = isNumericSymbol(symbol)
	} else if locus.AllNumeric && !isNumericSymbol(symbol) {
		locus.AllNumeric = false
	}
	return id
}

// propagateTwinGenotypes implements spec.md §4.8's twin consistency
// rule: the first typed member of an MZ twin group fixes the group's
// genotype per locus; later typed members must match the same
// unordered allele pair, and untyped members receive the propagated
// genotype.
func (ig *Ingester) propagateTwinGenotypes() {
	for _, group := range ig.build.TwinGroups {
		fixed := make(map[string]pedigree.Genotype)
		for _, member := range group.Members {
			for locusName, g := range member.Genotypes {
				if existing, ok := fixed[locusName]; ok {
					if existing.AlleleLo != g.AlleleLo || existing.AlleleHi != g.AlleleHi {
						ig.sink.Error("marker", "twin group %q has inconsistent genotype at locus %s", group.Token, locusName)
					}
					continue
				}
				fixed[locusName] = g
			}
		}
		for _, member := range group.Members {
			for locusName, g := range fixed {
				if _, has := member.Genotypes[locusName]; !has {
					member.Genotypes[locusName] = g
				}
			}
		}
	}
}

// finalizeFrequencies computes per-allele frequency = count/(2*typed),
// rounds to 6 decimals, and absorbs the rounding residue into the most
// frequent allele so frequencies sum to exactly 1 (spec.md §4.8/§3).
func (ig *Ingester) finalizeFrequencies() {
	for _, locus := range ig.build.Loci {
		if locus.Preloaded || locus.TotalTyped == 0 {
			continue
		}
		denom := float64(2 * locus.TotalTyped)
		sum := 0.0
		most := 0
		for i, al := range locus.Alleles {
			freq := round6(float64(al.Count) / denom)
			al.Frequency = freq
			sum += freq
			if al.Count > locus.Alleles[most].Count {
				most = i
			}
		}
		residue := round6(1 - sum)
		locus.Alleles[most].Frequency = round6(locus.Alleles[most].Frequency + residue)
	}
}

func round6(f float64) float64 {
	const scale = 1e6
	if f >= 0 {
		return float64(int64(f*scale+0.5)) / scale
	}
	return float64(int64(f*scale-0.5)) / scale
}
