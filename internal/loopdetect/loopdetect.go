// Package loopdetect counts the minimum loop-breaker count per pedigree
// by building a family-incidence multigraph and iteratively pruning
// degree-1 nodes, per spec.md §4.5. Ported directly from
// makeLinks/findBreaks/addLink/rmLink in ibdprep.c.
package loopdetect

import "github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"

// link is one edge instance: family Seq fam1 links to family Seq fam2,
// induced by the shared individual ind.
type link struct {
	fam2 int
	ind  *pedigree.Individual
}

// Run computes HasLoops/MinLoopBreakers/LoopBreakerID for every pedigree
// in build.
func Run(build *pedigree.Build) {
	for _, ped := range build.Pedigrees {
		runOne(ped)
	}
}

func runOne(ped *pedigree.Pedigree) {
	narcs := 0
	for _, fam := range ped.Families {
		narcs += fam.NumKids() + 2
	}
	if narcs < ped.IndividualCount+ped.FamilyCount {
		ped.HasLoops = false
		ped.MinLoopBreakers = 0
		return
	}
	ped.HasLoops = true

	linkList := make([][]link, len(ped.Families))
	nlink := make([]int, len(ped.Families))
	linkInd := make(map[*pedigree.Individual]int)

	addLink := func(fam1, fam2 int, ind *pedigree.Individual) {
		found := false
		for _, l := range linkList[fam1] {
			if l.ind == ind {
				found = true
				break
			}
		}
		linkList[fam1] = append(linkList[fam1], link{fam2: fam2, ind: ind})
		linkInd[ind]++
		if !found {
			nlink[fam1]++
		}
	}

	for i, fam := range ped.Families {
		if fam.Father.Family != nil {
			fa := fam.Father.Family
			addLink(i, fa.Seq, fam.Father)
			addLink(fa.Seq, i, fam.Father)
		}
		if fam.Mother.Family != nil {
			mo := fam.Mother.Family
			addLink(i, mo.Seq, fam.Mother)
			addLink(mo.Seq, i, fam.Mother)
		}
		for j := 0; j < i; j++ {
			fam2 := ped.Families[j]
			if fam2.Father == fam.Father {
				addLink(i, fam2.Seq, fam.Father)
				addLink(fam2.Seq, i, fam.Father)
			}
			if fam2.Mother == fam.Mother {
				addLink(i, fam2.Seq, fam.Mother)
				addLink(fam2.Seq, i, fam.Mother)
			}
		}
	}

	rmLink := func(fam1, fam2 int) {
		if nlink[fam1] == 0 {
			return
		}
		edges := linkList[fam1]
		for idx, l := range edges {
			if l.fam2 != fam2 {
				continue
			}
			linkInd[l.ind]--
			edges = append(edges[:idx], edges[idx+1:]...)
			linkList[fam1] = edges

			stillPresent := false
			for _, remaining := range edges {
				if remaining.ind == l.ind {
					stillPresent = true
					break
				}
			}
			if !stillPresent {
				nlink[fam1]--
				if nlink[fam1] == 0 {
					linkList[fam1] = nil
				}
			}
			return
		}
	}

	// Iteratively prune degree-1 family nodes.
	for {
		done := true
		for i := range ped.Families {
			if nlink[i] != 1 {
				continue
			}
			for j := range ped.Families {
				rmLink(j, i)
			}
			for _, l := range linkList[i] {
				linkInd[l.ind]--
			}
			nlink[i] = 0
			linkList[i] = nil
			done = false
		}
		if done {
			break
		}
	}

	narcsReduced, nodesReduced := 0, 0
	for i := range ped.Families {
		if nlink[i] > 0 {
			narcsReduced += nlink[i]
			nodesReduced++
		}
	}
	for _, count := range linkInd {
		if count > 0 {
			nodesReduced++
		}
	}

	nlbrk := narcsReduced - nodesReduced + 1
	if nlbrk < 0 {
		nlbrk = 0
	}
	ped.MinLoopBreakers = nlbrk

	if nlbrk == 1 {
		for _, ind := range orderedLinkedIndividuals(ped, linkInd) {
			if ind.Family != nil && nlink[ind.Family.Seq] > 0 {
				ped.LoopBreakerID = ind.ID
				break
			}
		}
	}
}

// orderedLinkedIndividuals returns individuals with a positive linkInd
// count, in the pedigree's family-then-child order (a stable stand-in
// for ibdprep.c's global IndSort order, which this engine replaces with
// per-pedigree iteration order).
func orderedLinkedIndividuals(ped *pedigree.Pedigree, linkInd map[*pedigree.Individual]int) []*pedigree.Individual {
	var out []*pedigree.Individual
	seen := make(map[*pedigree.Individual]bool)
	visit := func(ind *pedigree.Individual) {
		if ind == nil || seen[ind] || linkInd[ind] == 0 {
			return
		}
		seen[ind] = true
		out = append(out, ind)
	}
	for _, fam := range ped.Families {
		visit(fam.Father)
		visit(fam.Mother)
		for _, c := range fam.Children {
			visit(c)
		}
	}
	return out
}
