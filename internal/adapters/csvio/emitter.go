package csvio

import (
	"encoding/csv"
	"io"

	"github.com/okian/nameprep/internal/domain/model"
)

// Emitter writes NormalizedRecords as the fixed 12-column schema, with any
// passthrough columns appended after it.
type Emitter struct {
	writer      *csv.Writer
	passthrough []string
}

// NewEmitter wraps w. passthroughHeader lists the extra column names carried
// from the source, in order; it may be nil.
func NewEmitter(w io.Writer, passthroughHeader []string) *Emitter {
	return &Emitter{
		writer:      csv.NewWriter(w),
		passthrough: passthroughHeader,
	}
}

// WriteHeader emits the header row. The header is always written, even for
// an empty input.
func (e *Emitter) WriteHeader() error {
	header := make([]string, 0, len(model.OutputHeader)+len(e.passthrough))
	header = append(header, model.OutputHeader...)
	header = append(header, e.passthrough...)
	return e.writer.Write(header)
}

// Write emits one normalized row.
func (e *Emitter) Write(rec *model.NormalizedRecord) error {
	row := rec.Fields()
	if len(rec.Passthrough) > 0 {
		row = append(row, rec.Passthrough...)
	}
	return e.writer.Write(row)
}

// Flush drains buffered rows and reports any deferred write error.
func (e *Emitter) Flush() error {
	e.writer.Flush()
	return e.writer.Error()
}
