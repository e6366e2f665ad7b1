package service

import (
	"context"
	"strings"

	"github.com/okian/nameprep/internal/config"
	"github.com/okian/nameprep/internal/domain/decompose"
	"github.com/okian/nameprep/internal/domain/model"
	"github.com/okian/nameprep/internal/domain/nickname"
	"github.com/okian/nameprep/internal/domain/textnorm"
	"github.com/okian/nameprep/internal/domain/validate"
	"github.com/okian/nameprep/pkg/metrics"
)

// Lookup result labels for the nickname lookup metric.
const (
	lookupHit  = "hit"
	lookupMiss = "miss"
)

// rowProcessor applies the full per-row contract: text normalization, date
// validation, given-name decomposition, and nickname lookup. It is pure
// per row and safe for concurrent use.
type rowProcessor struct {
	table    *nickname.Table
	monthMin int
	monthMax int
	yearMin  int
	yearMax  int
}

func newRowProcessor(cfg *config.Config, table *nickname.Table) *rowProcessor {
	return &rowProcessor{
		table:    table,
		monthMin: cfg.MonthMin,
		monthMax: cfg.MonthMax,
		yearMin:  cfg.YearMin,
		yearMax:  cfg.YearMax,
	}
}

// Process normalizes one row. Field-level problems are recovered to the
// empty string; Process itself cannot fail.
func (p *rowProcessor) Process(_ context.Context, rec model.InputRecord) model.NormalizedRecord {
	given := textnorm.Normalize(rec.Given, true)
	family := textnorm.Normalize(rec.Family, false)

	month := validate.CleanInteger(rec.Month, p.monthMin, p.monthMax)
	if month == "" && strings.TrimSpace(rec.Month) != "" {
		metrics.RecordFieldRecovered("month")
	}
	year := validate.CleanInteger(rec.Year, p.yearMin, p.yearMax)
	if year == "" && strings.TrimSpace(rec.Year) != "" {
		metrics.RecordFieldRecovered("year")
	}

	parts := decompose.Decompose(given)

	var nick string
	if parts.FirstWord != "" {
		nick = p.table.Lookup(parts.FirstWord)
		if nick != parts.FirstWord {
			metrics.RecordNicknameLookup(lookupHit)
		} else {
			metrics.RecordNicknameLookup(lookupMiss)
		}
	}

	// The given name keeps internal spaces for decomposition only; the
	// emitted fields never contain spaces.
	flat := strings.ReplaceAll(given, " ", "")
	complete := family
	if flat != "" {
		complete = flat + family
	}

	return model.NormalizedRecord{
		Seq:                rec.Seq,
		Given:              flat,
		Family:             family,
		Month:              month,
		Year:               year,
		Complete:           complete,
		GivenFirstWord:     parts.FirstWord,
		GivenMiddleInitial: parts.MiddleInitial,
		GivenAllButFirst:   parts.AllButFirst,
		GivenNickname:      nick,
		GivenAllButFinal:   parts.AllButFinal,
		GivenFinalInitial:  parts.FinalInitial,
		GivenFinalWord:     parts.FinalWord,
		Passthrough:        rec.Passthrough,
	}
}
