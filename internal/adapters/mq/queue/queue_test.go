package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/nameprep/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	rec := model.InputRecord{Seq: 0, Row: 1, Given: "Mary Jane", Family: "Smith"}
	if err := q.Enqueue(ctx, rec); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if l := q.Len(); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue()
	if got.Given != "Mary Jane" {
		t.Errorf("expected Mary Jane, got %q", got.Given)
	}
	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_BlocksWhenFull(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := q.Enqueue(ctx, model.InputRecord{Seq: 0}); err != nil {
		t.Fatalf("first enqueue failed: %v", err)
	}
	// The queue is full; the second enqueue must block until ctx expires.
	err := q.Enqueue(ctx, model.InputRecord{Seq: 1})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestInMemoryQueue_CloseDuringBlockedEnqueue(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := q.Enqueue(ctx, model.InputRecord{Seq: 0}); err != nil {
		t.Fatalf("first enqueue failed: %v", err)
	}

	// Close while another enqueue is blocked on the full queue. Close must
	// wait for the blocked send to give up rather than closing the channel
	// underneath it.
	closed := make(chan error, 1)
	go func() {
		time.Sleep(10 * time.Millisecond)
		closed <- q.Close()
	}()

	if err := q.Enqueue(ctx, model.InputRecord{Seq: 1}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if err := <-closed; err != nil {
		t.Errorf("close failed: %v", err)
	}
	if err := q.Enqueue(context.Background(), model.InputRecord{Seq: 2}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := q.Enqueue(ctx, model.InputRecord{Seq: int64(i)}); err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := q.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on double close, got %v", err)
	}
	if err := q.Enqueue(ctx, model.InputRecord{Seq: 9}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}

	// Buffered records drain, then the channel closes.
	var seqs []int64
	for rec := range q.Dequeue() {
		seqs = append(seqs, rec.Seq)
	}
	if len(seqs) != 3 {
		t.Fatalf("expected 3 drained records, got %d", len(seqs))
	}
	for i, s := range seqs {
		if s != int64(i) {
			t.Errorf("expected seq %d at position %d, got %d", i, i, s)
		}
	}
}
