// Package queue defines the contract for feeding source rows to the row
// workers.
//
// The pipeline is a finite batch: the reader enqueues every row and closes
// the queue, workers drain it until the channel closes.
package queue

import (
	"context"
	"sync"

	"github.com/okian/nameprep/internal/domain/model"
	"github.com/okian/nameprep/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 1024
)

// Record is the payload type flowing through the queue.
type Record = model.InputRecord

// Queue provides blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a record, blocking while the queue is full. It fails
	// only when the queue is closed or ctx is done.
	Enqueue(ctx context.Context, rec Record) error

	// Dequeue returns the channel workers range over. The channel is
	// closed when the queue is closed and drained.
	Dequeue() <-chan Record

	// Len returns the current number of queued records.
	Len() int

	// Close marks the end of input. After closing, Enqueue fails and the
	// dequeue channel drains to closed.
	Close() error
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	records  chan Record
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.records = make(chan Record, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a record to the queue. The read lock is held across the send
// so Close cannot close the channel mid-send.
func (q *InMemoryQueue) Enqueue(ctx context.Context, rec Record) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}

	select {
	case q.records <- rec:
		metrics.UpdateQueueSize(len(q.records))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue returns the consumption channel.
func (q *InMemoryQueue) Dequeue() <-chan Record {
	return q.records
}

// Len returns the number of buffered records.
func (q *InMemoryQueue) Len() int {
	return len(q.records)
}

// Close marks the end of input. Closing twice is an error.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.closed = true
	close(q.records)
	return nil
}
