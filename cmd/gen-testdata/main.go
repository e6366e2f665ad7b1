// Command gen-testdata generates synthetic source records and an optional
// raw nickname corpus for exercising the pipeline end to end.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/nameprep/internal/gendata"
	"github.com/okian/nameprep/pkg/logger"
)

// Default generation sizes.
const (
	defaultNumRows    = 1000
	defaultCorpusRows = 500
)

func main() {
	var (
		output     = flag.String("output", "source_names.csv", "destination for generated source records")
		corpus     = flag.String("corpus", "", "destination for a generated nickname corpus (skipped when empty)")
		rows       = flag.Int("rows", defaultNumRows, "number of source rows to generate")
		corpusRows = flag.Int("corpus-rows", defaultCorpusRows, "number of corpus observations to generate")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("gen-testdata: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &gendata.Config{
		OutputFile: *output,
		CorpusFile: *corpus,
		NumRows:    *rows,
		CorpusRows: *corpusRows,
	}
	if err := gendata.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("gen-testdata: " + err.Error() + "\n")
		os.Exit(1)
	}
}
