package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/okian/nameprep/internal/domain/model"
	"github.com/okian/nameprep/pkg/metrics"
)

// CorpusColumns names the raw nickname corpus columns. Header matching is
// case-insensitive because published corpora use uppercase headers.
type CorpusColumns struct {
	Name  string
	Alias string
	Prob  string
}

// ReadCorpus loads the whole raw nickname corpus. Rows whose probability
// cell is not a float in [0, 1] are skipped and counted; structural problems
// (missing columns, invalid UTF-8, ragged rows) are fatal.
func ReadCorpus(r io.Reader, cols CorpusColumns) ([]model.RawObservation, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading corpus header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var nameIdx, aliasIdx, probIdx int
	for _, want := range []struct {
		name string
		dst  *int
	}{
		{cols.Name, &nameIdx},
		{cols.Alias, &aliasIdx},
		{cols.Prob, &probIdx},
	} {
		i, ok := index[strings.ToLower(want.name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, want.name)
		}
		*want.dst = i
	}

	var observations []model.RawObservation
	row := 0
	for {
		values, err := cr.Read()
		if err == io.EOF {
			return observations, nil
		}
		if err != nil {
			return nil, err
		}
		row++
		for i, v := range values {
			if !utf8.ValidString(v) {
				return nil, fmt.Errorf("%w: corpus row %d, column %d", ErrInvalidEncoding, row, i+1)
			}
		}

		prob, err := strconv.ParseFloat(strings.TrimSpace(values[probIdx]), 64)
		if err != nil || prob < 0 || prob > 1 {
			metrics.RecordObservationsDropped("malformed", 1)
			continue
		}
		observations = append(observations, model.RawObservation{
			RawName:   values[nameIdx],
			NameGroup: values[aliasIdx],
			CondProb:  prob,
		})
	}
}
