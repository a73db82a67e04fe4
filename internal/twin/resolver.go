// Package twin assigns sequential twin-group indices and validates the
// same-sex/same-family constraints from spec.md §3/§4 ("Twin group").
package twin

import (
	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Resolve groups individuals by their raw twin token, in order of first
// appearance, assigns each group a sequential 1-based index, and
// validates that members share sex and nuclear family.
func Resolve(build *pedigree.Build, sink *diag.Sink) {
	order := make([]string, 0)
	groups := make(map[string]*pedigree.TwinGroup)

	for _, ind := range build.Individuals {
		if ind.TwinGroup == "" {
			continue
		}
		g, ok := groups[ind.TwinGroup]
		if !ok {
			g = pedigree.NewTwinGroup(len(order), ind.TwinGroup)
			g.Sex = ind.Sex
			g.Family = ind.Family
			groups[ind.TwinGroup] = g
			order = append(order, ind.TwinGroup)
		}
		if ind.Sex != g.Sex {
			sink.Error("twin", "individual %q in twin group %q has sex %s, expected %s", ind.ID, ind.TwinGroup, ind.Sex, g.Sex)
			continue
		}
		if ind.Family != g.Family {
			sink.Error("twin", "individual %q in twin group %q belongs to a different family", ind.ID, ind.TwinGroup)
			continue
		}
		g.Members = append(g.Members, ind)
	}

	build.TwinGroups = build.TwinGroups[:0]
	for i, tok := range order {
		g := groups[tok]
		g.Index = i
		build.TwinGroups = append(build.TwinGroups, g)
		for _, m := range g.Members {
			m.TwinGroupIndex = i + 1
		}
	}
}
