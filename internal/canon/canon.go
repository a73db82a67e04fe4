// Package canon assigns the canonical sequence described in spec.md
// §4.6: a stable sort over (pedigree, generation, family-seq-within-
// pedigree, within-family-seq) yielding a dense bijection to [0,N).
// Ported from assignSeq() in ibdprep.c; the four-tuple's last component
// uses each individual's stable registration index as the tie-breaker,
// standing in for ibdprep.c's alphabetical-ID sort position (->seq),
// which serves the same role: a deterministic order within a family.
package canon

import (
	"sort"

	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Run assigns CanonicalSeq to every individual and CanonicalStart to
// every pedigree.
func Run(build *pedigree.Build) {
	order := make([]*pedigree.Individual, len(build.Individuals))
	copy(order, build.Individuals)

	famSeq := func(ind *pedigree.Individual) int {
		if ind.Family == nil {
			return 0
		}
		return ind.Family.Seq
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.PedigreeIndex != b.PedigreeIndex {
			return a.PedigreeIndex < b.PedigreeIndex
		}
		if a.Generation != b.Generation {
			return a.Generation < b.Generation
		}
		if famSeq(a) != famSeq(b) {
			return famSeq(a) < famSeq(b)
		}
		return a.Index < b.Index
	})

	lastPed := -1
	for seq, ind := range order {
		ind.CanonicalSeq = seq
		if ind.PedigreeIndex != lastPed {
			lastPed = ind.PedigreeIndex
			build.Pedigrees[lastPed].CanonicalStart = seq
		}
	}
}
