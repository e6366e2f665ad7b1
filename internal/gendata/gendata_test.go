package gendata

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/uuid"
)

func TestRunGeneratesRecords(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "source.csv")

	cfg := &Config{OutputFile: out, NumRows: 50}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 51 {
		t.Fatalf("expected header plus 50 rows, got %d", len(rows))
	}

	header := rows[0]
	want := []string{"first_name", "last_name", "mob", "yob", "record_id"}
	for i, name := range want {
		if header[i] != name {
			t.Errorf("header[%d]: expected %q, got %q", i, name, header[i])
		}
	}

	for i, row := range rows[1:] {
		if _, err := uuid.Parse(row[4]); err != nil {
			t.Errorf("row %d: record_id %q is not a uuid", i+1, row[4])
		}
	}
}

func TestRunGeneratesCorpus(t *testing.T) {
	dir := t.TempDir()

	cfg := &Config{
		OutputFile: filepath.Join(dir, "source.csv"),
		CorpusFile: filepath.Join(dir, "corpus.csv"),
		NumRows:    5,
		CorpusRows: 30,
	}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(cfg.CorpusFile)
	if err != nil {
		t.Fatalf("open corpus: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read corpus: %v", err)
	}
	if len(rows) != 31 {
		t.Fatalf("expected header plus 30 rows, got %d", len(rows))
	}
	for i, row := range rows[1:] {
		p, err := strconv.ParseFloat(row[2], 64)
		if err != nil || p < 0 || p > 1 {
			t.Errorf("row %d: cond_prob %q out of range", i+1, row[2])
		}
	}
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &Config{OutputFile: filepath.Join(t.TempDir(), "source.csv"), NumRows: 10}
	if err := Run(ctx, cfg); err == nil {
		t.Fatal("expected error from canceled context")
	}
}
