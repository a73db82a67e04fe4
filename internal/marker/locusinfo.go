package marker

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// LoadLocusInfo parses the optional locus-info file described in
// spec.md §6: one line per locus, `name (allele freq)*`. Loci loaded
// this way are marked Preloaded, so an unseen allele at ingest time is
// recorded as an error and not interned (spec.md §4.8); ingest of the
// remaining records continues, and the pipeline stops at the end of the
// marker phase.
func LoadLocusInfo(r io.Reader) ([]*pedigree.Locus, error) {
	var loci []*pedigree.Locus
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		locus := pedigree.NewLocus(len(loci), fields[0])
		locus.Preloaded = true

		rest := fields[1:]
		if len(rest)%2 != 0 {
			return nil, fmt.Errorf("locus-info line %d: malformed allele/frequency list", lineNo)
		}

		allNumeric := true
		for i := 0; i < len(rest); i += 2 {
			symbol := strings.Trim(rest[i], "()")
			freqTok := strings.Trim(rest[i+1], "()")
			freq, err := strconv.ParseFloat(freqTok, 64)
			if err != nil {
				return nil, fmt.Errorf("locus-info line %d: bad frequency %q: %w", lineNo, freqTok, err)
			}
			id, _ := locus.Intern(symbol)
			locus.Alleles[id-1].Frequency = freq
			if !isNumericSymbol(symbol) {
				allNumeric = false
			}
		}
		locus.AllNumeric = allNumeric
		loci = append(loci, locus)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return loci, nil
}
