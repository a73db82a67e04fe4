// Package generation implements spec.md §4.4: a cycle guard (Algorithm
// A) followed by generation-level assignment (Algorithm B), both ported
// directly from the sweep-to-fixed-point idiom in ibdprep.c's
// makePeds().
package generation

import (
	"fmt"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Run executes Algorithm A then Algorithm B over every individual in
// build. It returns a fatal error (also recorded in sink) if either
// algorithm finds a sweep that adds nothing while individuals remain
// unresolved — an ancestry cycle.
func Run(build *pedigree.Build, sink *diag.Sink) error {
	if err := cycleGuard(build, sink); err != nil {
		return err
	}
	return assignLevels(build, sink)
}

// cycleGuard is Algorithm A: mark founders, then repeatedly mark any
// individual whose father and mother are already marked. A sweep that
// marks nothing while individuals remain unmarked means one of them is
// its own ancestor.
func cycleGuard(build *pedigree.Build, sink *diag.Sink) error {
	marked := make(map[*pedigree.Individual]bool, len(build.Individuals))
	remaining := 0
	for _, ind := range build.Individuals {
		if ind.IsFounder() {
			marked[ind] = true
		} else {
			remaining++
		}
	}

	for remaining > 0 {
		progress := false
		for _, ind := range build.Individuals {
			if marked[ind] {
				continue
			}
			if marked[ind.Family.Father] && marked[ind.Family.Mother] {
				marked[ind] = true
				remaining--
				progress = true
			}
		}
		if !progress {
			return ancestryError(build, marked, sink)
		}
	}
	return nil
}

// assignLevels is Algorithm B: founders are generation 0; every other
// individual is max(father.gen, mother.gen)+1 once both parents are
// resolved.
func assignLevels(build *pedigree.Build, sink *diag.Sink) error {
	for _, ind := range build.Individuals {
		if ind.IsFounder() {
			ind.Generation = 0
		} else {
			ind.Generation = -1
		}
	}

	genFound := build.NumFounders()
	for genFound < len(build.Individuals) {
		lastGen := genFound
		for _, ind := range build.Individuals {
			if ind.Generation >= 0 {
				continue
			}
			fa, mo := ind.Family.Father, ind.Family.Mother
			if fa.Generation >= 0 && mo.Generation >= 0 {
				ind.Generation = max(fa.Generation, mo.Generation) + 1
				genFound++
			}
		}
		if genFound == lastGen {
			marked := make(map[*pedigree.Individual]bool)
			for _, ind := range build.Individuals {
				if ind.Generation >= 0 {
					marked[ind] = true
				}
			}
			return ancestryError(build, marked, sink)
		}
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ancestryError reports spec.md §4.4's fatal message, naming one
// individual still unmarked/unresolved.
func ancestryError(build *pedigree.Build, marked map[*pedigree.Individual]bool, sink *diag.Sink) error {
	for _, ind := range build.Individuals {
		if !marked[ind] {
			return sink.Fatal("generation", "an individual near %s is his/her own ancestor", fmt.Sprintf("ID=%q", ind.ID))
		}
	}
	return sink.Fatal("generation", "pedigree error detected while assigning generation numbers")
}
