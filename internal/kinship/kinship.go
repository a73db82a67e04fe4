// Package kinship computes the dense phi2 matrix on canonical order by
// fixed-point propagation, with monozygotic-twin folding, per
// spec.md §4.7. Ported directly from calcKin2() in ibdprep.c. A
// representative becomes typed in a sweep only when both of its parents
// were already typed when that sweep started: the parents' typed status
// is read from a snapshot of the diagonal taken at sweep start, while the
// kinship values themselves are read live, so values written earlier in a
// sweep are visible to later individuals of the same sweep.
package kinship

import "github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"

// Engine computes and holds the twin-folded kinship matrix for one
// Build.
type Engine struct {
	order []*pedigree.Individual // canonical order, index == CanonicalSeq
	itwin []int                  // itwin[i] = twin-representative canonical index
	kin2  [][]Dyadic             // triangular: kin2[i] has length i+1
}

// New prepares an Engine for build. Run() must follow.
func New(build *pedigree.Build) *Engine {
	return &Engine{order: build.CanonicalOrder()}
}

// Run executes the fixed-point recurrence and records the resulting
// KinshipMatrix and inbreeding flags onto build.
func (e *Engine) Run(build *pedigree.Build) {
	n := len(e.order)
	e.prepareTwinFolding(build)
	e.initMatrix()
	e.propagate()
	e.expandTwins()
	e.emit(build, n)
}

// prepareTwinFolding computes itwin[i] per spec.md §4.7: itwin[i] is the
// canonical index of the first-seen member of i's twin group, or i
// itself if i is not a twin or is that first-seen member.
func (e *Engine) prepareTwinFolding(build *pedigree.Build) {
	n := len(e.order)
	e.itwin = make([]int, n)
	twin1 := make([]int, len(build.TwinGroups))
	for i := range twin1 {
		twin1[i] = -1
	}
	for i, ind := range e.order {
		e.itwin[i] = i
		if ind.TwinGroupIndex == 0 {
			continue
		}
		g := ind.TwinGroupIndex - 1
		if twin1[g] != -1 {
			e.itwin[i] = twin1[g]
		} else {
			twin1[g] = i
		}
	}
}

// initMatrix allocates the triangular kin2 array: founders start typed
// (diagonal 1), everyone else starts at 0 (untyped).
func (e *Engine) initMatrix() {
	n := len(e.order)
	e.kin2 = make([][]Dyadic, n)
	for i := 0; i < n; i++ {
		e.kin2[i] = make([]Dyadic, i+1)
		for j := 0; j < i; j++ {
			e.kin2[i][j] = Zero()
		}
		if e.order[i].IsFounder() {
			e.kin2[i][i] = One()
		} else {
			e.kin2[i][i] = Zero()
		}
	}
}

func (e *Engine) get(i, j int) Dyadic {
	if j > i {
		i, j = j, i
	}
	return e.kin2[i][j]
}

func (e *Engine) set(i, j int, v Dyadic) {
	if j > i {
		i, j = j, i
	}
	e.kin2[i][j] = v
}

// propagate runs the sweep-to-fixed-point recurrence from spec.md §4.7.
func (e *Engine) propagate() {
	n := len(e.order)
	n2 := 0
	typed := 0
	for i := 0; i < n; i++ {
		if e.itwin[i] != i {
			continue
		}
		n2++
		if e.order[i].IsFounder() {
			typed++
		}
	}

	for {
		typedAtStart := make([]bool, n)
		for i := 0; i < n; i++ {
			typedAtStart[i] = !e.get(i, i).IsZero()
		}
		for i := 0; i < n; i++ {
			if e.itwin[i] != i || !e.get(i, i).IsZero() {
				continue
			}
			ind := e.order[i]
			if ind.IsFounder() {
				continue
			}
			ifa := e.itwin[ind.Family.Father.CanonicalSeq]
			imo := e.itwin[ind.Family.Mother.CanonicalSeq]
			if !typedAtStart[ifa] || !typedAtStart[imo] {
				continue
			}
			for j := 0; j < n; j++ {
				if e.itwin[j] != j || e.get(j, j).IsZero() {
					continue
				}
				e.set(i, j, Half(Add(e.get(ifa, j), e.get(imo, j))))
			}
			typed++
			e.set(i, i, Add(One(), Half(e.get(ifa, imo))))
		}
		if typed >= n2 {
			break
		}
	}
}

// expandTwins mirrors twin representatives' values onto every twin
// member, executed only after the representative set has fully
// converged (spec.md §4.7: "expansion happens only at emission").
func (e *Engine) expandTwins() {
	n := len(e.order)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			e.set(i, j, e.get(e.itwin[i], e.itwin[j]))
		}
		e.set(i, i, e.get(e.itwin[i], e.itwin[i]))
	}
}

// emit builds the final KinshipMatrix and the inbreeding flags, per
// spec.md §4.7 and the output format in spec.md §6.
func (e *Engine) emit(build *pedigree.Build, n int) {
	matrix := &pedigree.KinshipMatrix{N: n}
	build.Inbred = false
	for _, ped := range build.Pedigrees {
		ped.Inbred = false
	}

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if e.order[i].PedigreeIndex != e.order[j].PedigreeIndex {
				continue
			}
			phi := e.get(i, j)
			if phi.IsZero() {
				continue
			}
			matrix.Pairs = append(matrix.Pairs, pedigree.KinshipPair{
				I: i + 1, J: j + 1,
				Phi:    phi.Float64(),
				Delta7: e.delta7(i, j).Float64(),
			})
		}
		matrix.Pairs = append(matrix.Pairs, pedigree.KinshipPair{
			I: i + 1, J: i + 1,
			Phi: e.get(i, i).Float64(), Delta7: 1,
		})
		if e.get(i, i).GreaterThanOne() {
			build.Inbred = true
			build.Pedigrees[e.order[i].PedigreeIndex].Inbred = true
		}
	}
	build.Kinship = matrix
}

// delta7 computes the condensed identity coefficient for i,j per
// spec.md §4.7.
func (e *Engine) delta7(i, j int) Dyadic {
	if e.itwin[i] == e.itwin[j] {
		return One()
	}
	fi, fj := e.order[i].Family, e.order[j].Family
	if fi == nil || fj == nil {
		return Zero()
	}
	ifa, imo := fi.Father.CanonicalSeq, fi.Mother.CanonicalSeq
	jfa, jmo := fj.Father.CanonicalSeq, fj.Mother.CanonicalSeq
	term1 := Mul(e.get(ifa, jfa), e.get(imo, jmo))
	term2 := Mul(e.get(ifa, jmo), e.get(imo, jfa))
	return Quarter(Add(term1, term2))
}
