// Package service wires the adapters and domain packages into the two
// batch operations: normalizing a source file and building the nickname
// lookup table.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/nameprep/internal/adapters/csvio"
	rowqueue "github.com/okian/nameprep/internal/adapters/mq/queue"
	workerpool "github.com/okian/nameprep/internal/adapters/mq/worker"
	"github.com/okian/nameprep/internal/adapters/repository"
	"github.com/okian/nameprep/internal/config"
	"github.com/okian/nameprep/internal/domain/model"
	"github.com/okian/nameprep/internal/domain/nickname"
	"github.com/okian/nameprep/pkg/logger"
	"github.com/okian/nameprep/pkg/metrics"
)

// Service runs the normalization pipeline and the table builder from one
// resolved configuration.
type Service struct {
	cfg    *config.Config
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service around the given configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		logger: logger.Get().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run normalizes the configured input file into the output file. The output
// is written atomically: a failing run leaves no partial file behind.
//
// Fatal conditions are missing reserved columns, malformed CSV, invalid
// UTF-8, and an unreadable lookup artifact. Field-level problems inside a
// row never fail the run.
func (s *Service) Run(ctx context.Context) error {
	start := time.Now()

	table, err := s.loadTable(ctx)
	if err != nil {
		return err
	}

	in, err := os.Open(s.cfg.InputFile)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer in.Close()

	source, err := csvio.NewSource(in, csvio.Columns{
		Given:  s.cfg.GivenColumn,
		Family: s.cfg.FamilyColumn,
		Month:  s.cfg.MonthColumn,
		Year:   s.cfg.YearColumn,
	})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.cfg.OutputFile), filepath.Base(s.cfg.OutputFile)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	emitter := csvio.NewEmitter(tmp, source.PassthroughHeader())
	if err := emitter.WriteHeader(); err != nil {
		return fmt.Errorf("write output header: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	q := rowqueue.NewInMemoryQueue(rowqueue.WithCapacity(s.cfg.QueueSize))
	metrics.UpdateQueueCapacity(s.cfg.QueueSize)

	pool := workerpool.NewPool(s.cfg.WorkerCount, q, newRowProcessor(s.cfg, table))
	pool.Start(runCtx)

	readErr := make(chan error, 1)
	go func() {
		defer q.Close()
		for {
			rec, err := source.Next()
			if err == io.EOF {
				readErr <- nil
				return
			}
			if err != nil {
				readErr <- err
				return
			}
			if err := q.Enqueue(runCtx, rec); err != nil {
				readErr <- err
				return
			}
			metrics.UpdateQueueSize(q.Len())
		}
	}()

	total, err := s.collect(pool.Results(), emitter)
	if err != nil {
		cancel()
		for range pool.Results() {
		}
		<-readErr
		return err
	}

	if err := <-readErr; err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("reading input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := emitter.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.cfg.OutputFile); err != nil {
		return fmt.Errorf("replace output file: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordRunDuration(elapsed.Seconds())
	s.logger.Info(ctx, "normalization run finished",
		logger.String("input", s.cfg.InputFile),
		logger.String("output", s.cfg.OutputFile),
		logger.Int64("rows", total),
		logger.String("elapsed", elapsed.String()),
	)
	return nil
}

// collect writes normalized rows in input order. Workers may finish rows
// out of order, so rows are held until their predecessors have arrived.
func (s *Service) collect(results <-chan model.NormalizedRecord, emitter *csvio.Emitter) (int64, error) {
	pending := make(map[int64]model.NormalizedRecord)
	var next int64

	for rec := range results {
		pending[rec.Seq] = rec
		for {
			out, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if err := emitter.Write(&out); err != nil {
				return next, fmt.Errorf("write output row: %w", err)
			}
			next++
		}
	}
	return next, nil
}

// BuildTable reads the raw nickname corpus, builds the lookup table, and
// saves it as the artifact file.
func (s *Service) BuildTable(ctx context.Context) error {
	start := time.Now()

	f, err := os.Open(s.cfg.CorpusFile)
	if err != nil {
		return fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	observations, err := csvio.ReadCorpus(f, csvio.CorpusColumns{
		Name:  s.cfg.NameColumn,
		Alias: s.cfg.AliasColumn,
		Prob:  s.cfg.ProbColumn,
	})
	if err != nil {
		return err
	}

	builder := nickname.NewBuilder(
		nickname.WithMinCondProb(s.cfg.MinCondProb),
		nickname.WithMinGroupCount(s.cfg.MinGroupCount),
		nickname.WithMinGroupLen(s.cfg.MinGroupLen),
		nickname.WithMaxCollapsePasses(s.cfg.MaxCollapsePasses),
	)
	table, err := builder.Build(ctx, observations)
	if err != nil {
		return fmt.Errorf("building lookup table: %w", err)
	}

	groups := make(map[string]string, table.Len())
	for _, p := range table.Pairs() {
		groups[p.RawName] = p.NameGroup
	}
	store := repository.NewFileStore(s.cfg.ArtifactFile)
	if err := store.Save(ctx, groups); err != nil {
		return fmt.Errorf("saving lookup table: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordBuildDuration(elapsed.Seconds())
	s.logger.Info(ctx, "lookup table built",
		logger.String("corpus", s.cfg.CorpusFile),
		logger.String("artifact", s.cfg.ArtifactFile),
		logger.Int("observations", len(observations)),
		logger.Int("pairs", table.Len()),
		logger.String("elapsed", elapsed.String()),
	)
	return nil
}

// loadTable reads the persisted lookup artifact into a Table. The table is
// validated on load so a corrupt artifact fails the run up front.
func (s *Service) loadTable(ctx context.Context) (*nickname.Table, error) {
	store := repository.NewFileStore(s.cfg.LookupFile)
	groups, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading lookup table: %w", err)
	}

	pairs := make([]nickname.Pair, 0, len(groups))
	for raw, group := range groups {
		pairs = append(pairs, nickname.Pair{RawName: raw, NameGroup: group})
	}
	table, err := nickname.NewTable(pairs)
	if err != nil {
		return nil, fmt.Errorf("loading lookup table: %w", err)
	}
	return table, nil
}
