// Package ingest reads fixed-width pedigree records into Records, per
// spec.md §4.1; registering individuals in the identifier table is left
// to the family builder.
// The line-oriented scan with per-line byte/line-number bookkeeping is
// grounded in the teacher's internal/parser/file.go fixed-width reader;
// progress reporting during a large ingest mirrors the teacher's
// Output.Progress config flag via schollz/progressbar.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/config"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/ident"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Options configures one ingest pass.
type Options struct {
	Widths      config.FieldWidths
	ShowProgress bool
	TotalLines   int // hint for the progress bar; 0 disables the total
}

// Ingester reads records and emits diagnostics to sink. The family
// builder's second pass (spec.md §4.2) works on the records already read
// and does not call the Ingester again.
type Ingester struct {
	opts  Options
	table *ident.Table
	sink  *diag.Sink
}

// New creates an Ingester bound to the given table and diagnostic sink.
func New(opts Options, table *ident.Table, sink *diag.Sink) *Ingester {
	return &Ingester{opts: opts, table: table, sink: sink}
}

// Record is one parsed, not-yet-linked pedigree line.
type Record struct {
	Line       int
	FamID      string
	ID         string
	FatherID   string
	MotherID   string
	Sex        pedigree.Sex
	TwinToken  string
	Household  string
}

// IngestAll reads every fixed-width record from r, validates field
// values, and returns the parsed records (family linking happens in
// package family). Synthesized founders are not produced here; that is
// the family builder's job.
func (ig *Ingester) IngestAll(r io.Reader) ([]Record, error) {
	w := ig.opts.Widths
	recLen := w.RecordLength()

	var bar *progressbar.ProgressBar
	if ig.opts.ShowProgress {
		bar = progressbar.DefaultBytes(int64(ig.opts.TotalLines), "ingesting pedigree records")
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if bar != nil {
			_ = bar.Add(1)
		}
		if len(line)+1 != recLen {
			return nil, ig.sink.Fatal("ingest", "record length %d does not match configured width %d at line %d", len(line)+1, recLen, lineNo)
		}

		rec, ok := ig.parseLine(line, lineNo, w)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pedigree file: %w", err)
	}
	return records, nil
}

func (ig *Ingester) parseLine(line string, lineNo int, w config.FieldWidths) (Record, bool) {
	off := 0
	famid := cut(line, &off, w.FamID)
	id := cut(line, &off, w.ID)
	fa := cut(line, &off, w.Father)
	mo := cut(line, &off, w.Mother)
	sexTok := cut(line, &off, w.Sex)
	twin := cut(line, &off, w.Twin)
	hhold := cut(line, &off, w.Household)

	sex, ok := parseSex(sexTok)
	if !ok {
		ig.sink.ErrorLine("ingest", lineNo, "invalid sex code %q", sexTok)
		return Record{}, false
	}

	faBlank := isBlankToken(fa)
	moBlank := isBlankToken(mo)
	if faBlank != moBlank {
		ig.sink.ErrorLine("ingest", lineNo, "one parent present and the other blank for individual %q", id)
		return Record{}, false
	}

	fullID := famid + id
	fullFa, fullMo := "", ""
	if !faBlank {
		fullFa = famid + fa
	}
	if !moBlank {
		fullMo = famid + mo
	}

	if fullID == fullFa {
		ig.sink.ErrorLine("ingest", lineNo, "individual %q is its own father", fullID)
		return Record{}, false
	}
	if fullID == fullMo {
		ig.sink.ErrorLine("ingest", lineNo, "individual %q is its own mother", fullID)
		return Record{}, false
	}
	if !faBlank && !moBlank && fullFa == fullMo {
		ig.sink.ErrorLine("ingest", lineNo, "father and mother are the same individual %q", fullFa)
		return Record{}, false
	}

	return Record{
		Line:      lineNo,
		FamID:     famid,
		ID:        fullID,
		FatherID:  fullFa,
		MotherID:  fullMo,
		Sex:       sex,
		TwinToken: tokenOrBlank(twin),
		Household: tokenOrBlank(hhold),
	}, true
}

// cut extracts the next width-wide field from line starting at *off,
// advances *off, and trims surrounding space.
func cut(line string, off *int, width int) string {
	if width <= 0 {
		return ""
	}
	end := *off + width
	if end > len(line) {
		end = len(line)
	}
	field := line[*off:end]
	*off = end
	return strings.TrimSpace(field)
}

// parseSex implements spec.md §4.1: "1|M|m" -> male, "2|F|f" -> female,
// " |0|U|u" -> unknown; all else is an error.
func parseSex(tok string) (pedigree.Sex, bool) {
	switch tok {
	case "1", "M", "m":
		return pedigree.SexMale, true
	case "2", "F", "f":
		return pedigree.SexFemale, true
	case "", "0", "U", "u":
		return pedigree.SexUnknown, true
	default:
		return pedigree.SexUnknown, false
	}
}

// isBlankToken implements spec.md §4.1: a parent field is blank iff all
// characters are space (already trimmed to empty by cut).
func isBlankToken(tok string) bool {
	return tok == ""
}

// tokenOrBlank implements spec.md §4.1: twin/household tokens are blank
// iff all characters are space, tab, or '0'.
func tokenOrBlank(tok string) string {
	trimmed := strings.Trim(tok, " \t0")
	if trimmed == "" {
		return ""
	}
	return tok
}
