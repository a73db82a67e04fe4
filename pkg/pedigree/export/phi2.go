package export

import (
	"bufio"
	"compress/gzip"
	"fmt"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Phi2Writer writes the gzipped kinship matrix, one "i j phi delta7"
// line per stored pair, per spec.md §6. No third-party gzip library
// appears anywhere in the retrieval pack, so this writer uses the
// standard library's compress/gzip (see DESIGN.md).
type Phi2Writer struct {
	*BaseWriter
}

// NewPhi2Writer constructs a Phi2Writer.
func NewPhi2Writer(sink *diag.Sink) *Phi2Writer {
	return &Phi2Writer{BaseWriter: NewBaseWriter(sink)}
}

// WriteToFile writes build.Kinship to filePath as a gzip-compressed
// stream, using the exact column format of the classic tool:
// "%8d %8d %10.7f %10.7f".
func (pw *Phi2Writer) WriteToFile(build *pedigree.Build, filePath string) error {
	f, err := pw.createFile(filePath, "phi2")
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	w := bufio.NewWriter(gz)

	if build.Kinship != nil {
		for _, pair := range build.Kinship.Pairs {
			fmt.Fprintf(w, "%8d %8d %10.7f %10.7f\n", pair.I, pair.J, pair.Phi, pair.Delta7)
		}
	}

	if err := w.Flush(); err != nil {
		pw.sink.Error("export", "failed flushing %s: %v", filePath, err)
		return err
	}
	if err := gz.Close(); err != nil {
		pw.sink.Error("export", "failed closing gzip stream for %s: %v", filePath, err)
		return err
	}
	return nil
}
