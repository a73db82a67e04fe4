// Package partition discovers connected pedigrees by BFS over the
// kinship relation R = {parent-of, spouse-in-same-family,
// sibling-in-same-family}, per spec.md §3/§4.3. The BFS-with-visited-set
// walk is grounded directly in the teacher's
// pkg/gedcom/query/graph_metrics.go ConnectedComponents, adapted from
// FAMC/FAMS edge traversal to the five adjacency slots
// (father/mother/child-lists/sibling-chain) spec.md describes.
package partition

import (
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Run assigns PedigreeIndex to every individual and family, and appends
// one *pedigree.Pedigree per connected component (including
// one-individual components for unrelated singletons, added last per
// spec.md §4.3).
func Run(build *pedigree.Build) {
	neighbors := buildAdjacency(build)

	visited := make(map[*pedigree.Individual]bool, len(build.Individuals))
	var components [][]*pedigree.Individual

	for _, ind := range build.Individuals {
		if visited[ind] || len(neighbors[ind]) == 0 {
			continue
		}
		component := bfs(ind, neighbors, visited)
		components = append(components, component)
	}

	// Unrelated singletons (no edges at all) become one-individual
	// pedigrees, appended after the multi-member components.
	for _, ind := range build.Individuals {
		if !visited[ind] {
			visited[ind] = true
			components = append(components, []*pedigree.Individual{ind})
		}
	}

	build.Pedigrees = build.Pedigrees[:0]
	for idx, members := range components {
		ped := pedigree.NewPedigree(idx)
		for _, m := range members {
			m.PedigreeIndex = idx
			ped.IndividualCount++
			if m.IsFounder() {
				ped.FounderCount++
				ped.Founders = append(ped.Founders, m)
			}
		}
		build.Pedigrees = append(build.Pedigrees, ped)
	}

	// Families inherit their pedigree index from their father
	// (spec.md §4.3).
	for _, fam := range build.Families {
		fam.PedigreeIndex = fam.Father.PedigreeIndex
		ped := build.Pedigrees[fam.PedigreeIndex]
		fam.Seq = ped.FamilyCount
		ped.FamilyCount++
		ped.Families = append(ped.Families, fam)
	}
}

func bfs(start *pedigree.Individual, neighbors map[*pedigree.Individual][]*pedigree.Individual, visited map[*pedigree.Individual]bool) []*pedigree.Individual {
	queue := []*pedigree.Individual{start}
	visited[start] = true
	var component []*pedigree.Individual

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		component = append(component, cur)

		for _, n := range neighbors[cur] {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return component
}

// buildAdjacency materializes R as an undirected adjacency list: every
// family contributes a parent-of edge (father/mother -> each child), a
// spouse edge (father <-> mother), and sibling edges (each child <-> the
// next, chaining the family's children, equivalent in connectivity terms
// to the spec's "next-sibling-of-same-family" linked list anchored at
// each parent).
func buildAdjacency(build *pedigree.Build) map[*pedigree.Individual][]*pedigree.Individual {
	adj := make(map[*pedigree.Individual][]*pedigree.Individual)
	add := func(a, b *pedigree.Individual) {
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}

	for _, fam := range build.Families {
		add(fam.Father, fam.Mother)
		for i, child := range fam.Children {
			add(fam.Father, child)
			add(fam.Mother, child)
			if i > 0 {
				add(fam.Children[i-1], child)
			}
		}
	}
	return adj
}
