// Package csvio owns the CSV boundary of the pipeline: header-driven,
// BOM-tolerant reading of source records and fixed-schema writing of
// normalized ones.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/okian/nameprep/internal/domain/model"
)

// Columns names the reserved source columns. Extra columns pass through.
type Columns struct {
	Given  string
	Family string
	Month  string
	Year   string
}

// Source streams InputRecords from a UTF-8 CSV with a header row. A leading
// byte-order mark is tolerated and stripped; anything else that is not valid
// UTF-8 is a fatal ErrInvalidEncoding.
type Source struct {
	reader *csv.Reader

	given  int
	family int
	month  int
	year   int

	passthrough     []int
	passthroughName []string

	row int
	seq int64
}

// NewSource reads and resolves the header. Every reserved column must be
// present; a missing one is a fatal ErrMissingColumn before any row is
// processed.
func NewSource(r io.Reader, cols Columns) (*Source, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	s := &Source{reader: cr}
	for _, want := range []struct {
		name string
		dst  *int
	}{
		{cols.Given, &s.given},
		{cols.Family, &s.family},
		{cols.Month, &s.month},
		{cols.Year, &s.year},
	} {
		i, ok := index[want.name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, want.name)
		}
		*want.dst = i
	}

	reserved := map[int]bool{s.given: true, s.family: true, s.month: true, s.year: true}
	for i, name := range header {
		if !reserved[i] {
			s.passthrough = append(s.passthrough, i)
			s.passthroughName = append(s.passthroughName, strings.TrimSpace(name))
		}
	}
	return s, nil
}

// PassthroughHeader returns the names of the non-reserved columns, in input
// order.
func (s *Source) PassthroughHeader() []string {
	return s.passthroughName
}

// Next returns the next record or io.EOF. Malformed CSV rows and invalid
// UTF-8 are fatal.
func (s *Source) Next() (model.InputRecord, error) {
	values, err := s.reader.Read()
	if err != nil {
		return model.InputRecord{}, err
	}
	s.row++

	for i, v := range values {
		if !utf8.ValidString(v) {
			return model.InputRecord{}, fmt.Errorf("%w: row %d, column %d", ErrInvalidEncoding, s.row, i+1)
		}
	}

	rec := model.InputRecord{
		Seq:    s.seq,
		Row:    s.row,
		Given:  values[s.given],
		Family: values[s.family],
		Month:  values[s.month],
		Year:   values[s.year],
	}
	if len(s.passthrough) > 0 {
		rec.Passthrough = make([]string, len(s.passthrough))
		for i, idx := range s.passthrough {
			rec.Passthrough[i] = values[idx]
		}
	}
	s.seq++
	return rec, nil
}
