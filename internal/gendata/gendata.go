// Package gendata produces synthetic source files for exercising the
// pipeline: a source record CSV with messy real-world names and dates, and
// optionally a raw nickname corpus.
package gendata

import (
	"context"
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/okian/nameprep/pkg/logger"
)

// Config holds generation parameters.
type Config struct {
	OutputFile string // destination for the source record CSV
	CorpusFile string // destination for the raw nickname corpus; empty skips it
	NumRows    int    // number of source rows
	CorpusRows int    // number of corpus observations
}

// Distribution knobs: roughly one row in badDateDivisor carries an
// out-of-range or garbage date.
const (
	badDateDivisor     = 5
	probDivisor        = 1000
	outOfRangeMonthMax = 99
	outOfRangeYearMax  = 2200
)

// Name pools mix plain ASCII, diacritics, apostrophes, and stray spacing so
// generated rows cover the normalization edge cases.
var (
	givenNames = []string{
		"Chris", "Christopher", "Mary Jane", "José", "Zoë", "  Anne  ",
		"Jean-Luc", "Renée", "BOB", "robert", "Mária", "Seán",
		"Anna Maria Luisa", "Bill", "William", "Peggy", "", "Günther",
	}
	familyNames = []string{
		"O'Brien", "Smith", "García", "van der Berg", "Müller", "LEE",
		"D'Angelo", "Nguyễn", "McDonald ", "St. Clair", "Łukasz",
	}
	aliasPairs = [][2]string{
		{"CHRIS", "CHRISTOPHER"},
		{"BOB", "ROBERT"},
		{"ROB", "ROBERT"},
		{"BILL", "WILLIAM"},
		{"PEGGY", "MARGARET"},
		{"BECKY", "REBECCA"},
		{"KATE", "KATHERINE"},
		{"JIM", "JAMES"},
	}
)

// Run generates the configured files.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("gendata")

	if err := writeRecords(ctx, cfg.OutputFile, cfg.NumRows); err != nil {
		return err
	}
	log.Info(ctx, "source records generated",
		logger.String("file", cfg.OutputFile),
		logger.Int("rows", cfg.NumRows))

	if cfg.CorpusFile == "" {
		return nil
	}
	if err := writeCorpus(ctx, cfg.CorpusFile, cfg.CorpusRows); err != nil {
		return err
	}
	log.Info(ctx, "nickname corpus generated",
		logger.String("file", cfg.CorpusFile),
		logger.Int("rows", cfg.CorpusRows))
	return nil
}

func writeRecords(ctx context.Context, path string, rows int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"first_name", "last_name", "mob", "yob", "record_id"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < rows; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := []string{
			pick(givenNames),
			pick(familyNames),
			randomMonth(),
			randomYear(),
			uuid.New().String(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	return w.Error()
}

func writeCorpus(ctx context.Context, path string, rows int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "alias", "cond_prob"}); err != nil {
		return fmt.Errorf("write corpus header: %w", err)
	}

	for i := 0; i < rows; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pair := aliasPairs[randomInt(int64(len(aliasPairs)))]
		prob := float64(randomInt(probDivisor)) / probDivisor
		row := []string{pair[0], pair[1], strconv.FormatFloat(prob, 'f', 3, 64)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write corpus row %d: %w", i+1, err)
		}
	}

	w.Flush()
	return w.Error()
}

func pick(pool []string) string {
	return pool[randomInt(int64(len(pool)))]
}

// randomMonth is usually valid, with a slice of out-of-range and garbage
// values mixed in.
func randomMonth() string {
	if randomInt(badDateDivisor) == 0 {
		switch randomInt(3) {
		case 0:
			return strconv.FormatInt(randomInt(outOfRangeMonthMax), 10)
		case 1:
			return "month"
		default:
			return ""
		}
	}
	return strconv.FormatInt(randomInt(12)+1, 10)
}

func randomYear() string {
	if randomInt(badDateDivisor) == 0 {
		switch randomInt(3) {
		case 0:
			return strconv.FormatInt(randomInt(outOfRangeYearMax), 10)
		case 1:
			return "19xx"
		default:
			return ""
		}
	}
	return strconv.FormatInt(1902+randomInt(109), 10)
}

// randomInt returns a uniform value in [0, n) using crypto/rand.
func randomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}
