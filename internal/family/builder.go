// Package family groups ingested records into nuclear families,
// synthesizing missing parents as founders when needed (spec.md §4.2).
// Distinct (father,mother) pairs are collected into an insertion-ordered
// map (elliotchance/orderedmap, as the teacher's export structures use
// for stable iteration) and then sorted lexicographically before family
// allocation, matching spec.md's "lexicographically sorted" requirement.
package family

import (
	"sort"

	orderedmap "github.com/elliotchance/orderedmap/v2"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/ident"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/ingest"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// pairKey joins a (father,mother) ID pair into one orderedmap key.
func pairKey(fa, mo string) string {
	return fa + "\x00" + mo
}

// Builder materializes nuclear families from ingested records.
type Builder struct {
	table *ident.Table
	build *pedigree.Build
	sink  *diag.Sink
}

// New creates a Builder bound to the given table, aggregate, and sink.
func New(table *ident.Table, build *pedigree.Build, sink *diag.Sink) *Builder {
	return &Builder{table: table, build: build, sink: sink}
}

// Run links records into individuals and families. It performs the
// two-pass fixpoint described in spec.md §4.2: a first pass that may
// synthesize founders, and (only if any were synthesized) one repeat
// pass, which is always sufficient since synthesized founders have no
// parents of their own.
func (b *Builder) Run(records []ingest.Record) error {
	if err := b.registerRecordIndividuals(records); err != nil {
		return err
	}
	if b.sink.HasErrors() {
		return nil
	}

	synthesized := b.materializeFamilies(records)
	if synthesized {
		b.build.Families = nil
		for _, ind := range b.build.Individuals {
			ind.Family = nil
		}
		b.materializeFamilies(records)
	}
	return nil
}

// registerRecordIndividuals interns every record's own ID as an
// Individual, flagging duplicates per spec.md §8 scenario 6.
func (b *Builder) registerRecordIndividuals(records []ingest.Record) error {
	for _, rec := range records {
		if existing := b.table.Lookup(rec.ID); existing != nil {
			b.sink.ErrorLine("family", rec.Line, "duplicate individual ID %q", rec.ID)
			continue
		}
		ind := pedigree.NewIndividual(b.table.Len(), rec.ID, rec.Sex)
		ind.TwinGroup = rec.TwinToken
		ind.HouseholdID = rec.Household
		b.table.Register(ind)
		b.build.Individuals = append(b.build.Individuals, ind)
	}
	return nil
}

// materializeFamilies performs one pass of spec.md §4.2: collect
// distinct parent pairs, synthesize missing parents, allocate families,
// and attach children. It returns true if any founder was synthesized
// (signaling the caller to repeat once).
func (b *Builder) materializeFamilies(records []ingest.Record) bool {
	pairs := orderedmap.NewOrderedMap[string, [2]string]()
	for _, rec := range records {
		if rec.FatherID == "" && rec.MotherID == "" {
			continue
		}
		pairs.Set(pairKey(rec.FatherID, rec.MotherID), [2]string{rec.FatherID, rec.MotherID})
	}

	keys := make([]string, 0, pairs.Len())
	for el := pairs.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Key)
	}
	sort.Strings(keys)

	synthesized := false
	families := make(map[string]*pedigree.Family, len(keys))
	for _, k := range keys {
		pair, _ := pairs.Get(k)
		faID, moID := pair[0], pair[1]

		father := b.resolveParent(faID, pedigree.SexMale, &synthesized)
		mother := b.resolveParent(moID, pedigree.SexFemale, &synthesized)
		if father == nil || mother == nil {
			continue
		}

		fam := pedigree.NewFamily(len(b.build.Families), father, mother)
		b.build.Families = append(b.build.Families, fam)
		families[k] = fam
	}

	for _, rec := range records {
		if rec.FatherID == "" && rec.MotherID == "" {
			continue
		}
		fam, ok := families[pairKey(rec.FatherID, rec.MotherID)]
		if !ok {
			continue
		}
		child := b.table.Lookup(rec.ID)
		if child == nil {
			continue
		}
		child.Family = fam
		fam.Children = append(fam.Children, child)
	}

	return synthesized
}

// resolveParent looks up id, synthesizing a founder of the required sex
// with a warning if absent, or coercing sex with a warning if present
// but wrong (spec.md §4.2).
func (b *Builder) resolveParent(id string, want pedigree.Sex, synthesized *bool) *pedigree.Individual {
	if id == "" {
		return nil
	}
	ind := b.table.Lookup(id)
	if ind == nil {
		ind = pedigree.NewIndividual(b.table.Len(), id, want)
		ind.Synthesized = true
		b.table.Register(ind)
		b.build.Individuals = append(b.build.Individuals, ind)
		b.sink.Warn("family", "synthesized %s founder %q not present in input", sexWord(want), id)
		*synthesized = true
		return ind
	}
	if ind.Sex != want {
		b.sink.Warn("family", "coerced sex of %q to %s", id, want)
		ind.Sex = want
	}
	return ind
}

func sexWord(s pedigree.Sex) string {
	if s == pedigree.SexMale {
		return "male"
	}
	return "female"
}
