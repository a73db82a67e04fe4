// Package export writes the canonical pedigree and kinship matrix to
// SOLAR-style output files (spec.md §6): pedindex.out/pedindex.cde and
// a gzipped phi2 matrix. House-indicator matrices and every
// FASTLINK/LINKAGE/MAPMAKER/MENDEL/makeped writer remain out of scope.
package export

import (
	"fmt"
	"os"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/diag"
	"github.com/lesfleursdelanuitdev/ibdprep/pkg/pedigree"
)

// Writer is the interface every output-file writer implements, mirroring
// how the teacher's exporters each produce one artifact from a tree.
type Writer interface {
	WriteToFile(build *pedigree.Build, filePath string) error
}

// BaseWriter provides the shared diagnostics plumbing all Writers use.
type BaseWriter struct {
	sink *diag.Sink
}

// NewBaseWriter constructs a BaseWriter reporting into sink.
func NewBaseWriter(sink *diag.Sink) *BaseWriter {
	return &BaseWriter{sink: sink}
}

// createFile opens filePath for writing, recording a diagnostic on
// failure the same way the teacher's writeToFile helpers do.
func (bw *BaseWriter) createFile(filePath, context string) (*os.File, error) {
	f, err := os.Create(filePath)
	if err != nil {
		bw.sink.Error("export", "failed to create %s (%s): %v", filePath, context, err)
		return nil, fmt.Errorf("create %s: %w", filePath, err)
	}
	return f, nil
}
