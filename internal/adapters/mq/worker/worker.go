// Package worker runs the per-row normalization over the row queue.
package worker

import (
	"context"
	"strconv"
	"sync"

	"github.com/okian/nameprep/internal/adapters/mq/queue"
	"github.com/okian/nameprep/internal/domain/model"
	"github.com/okian/nameprep/pkg/logger"
	"github.com/okian/nameprep/pkg/metrics"
)

// Processor turns one input row into its normalized form. Row-level field
// problems are recovered inside Process; it has no failure mode.
type Processor interface {
	Process(ctx context.Context, rec model.InputRecord) model.NormalizedRecord
}

// Queue defines how workers receive rows.
type Queue interface {
	Dequeue() <-chan queue.Record
}

// Worker drains the queue through the processor into the results channel.
type Worker struct {
	queue     Queue
	processor Processor
	results   chan<- model.NormalizedRecord
	name      string
	logger    logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(q Queue, p Processor, results chan<- model.NormalizedRecord, opts ...Option) *Worker {
	w := &Worker{
		queue:     q,
		processor: p,
		results:   results,
		name:      "worker",
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run processes rows until the queue drains or ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-w.queue.Dequeue():
			if !ok {
				w.logger.Debug(ctx, "queue drained", logger.String("worker", w.name))
				return
			}
			out := w.processor.Process(ctx, rec)
			select {
			case w.results <- out:
				metrics.RecordRowProcessed()
			case <-ctx.Done():
				return
			}
		}
	}
}

// Pool manages multiple workers over one queue and owns the results channel
// lifecycle: it is closed once every worker has finished.
type Pool struct {
	workers []*Worker
	results chan model.NormalizedRecord
	wg      sync.WaitGroup
	logger  logger.Logger
}

// NewPool creates workerCount workers feeding a shared results channel.
func NewPool(workerCount int, q Queue, p Processor, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}

	pool := &Pool{
		workers: make([]*Worker, workerCount),
		results: make(chan model.NormalizedRecord, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewWorker(q, p, pool.results, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Results returns the channel normalized rows arrive on. It closes when all
// workers have drained the queue.
func (p *Pool) Results() <-chan model.NormalizedRecord {
	return p.results
}

// Start launches all workers and closes the results channel once they are
// done.
func (p *Pool) Start(ctx context.Context) {
	p.logger.Debug(ctx, "starting workers", logger.Int("count", len(p.workers)))
	p.wg.Add(len(p.workers))
	for _, w := range p.workers {
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}
