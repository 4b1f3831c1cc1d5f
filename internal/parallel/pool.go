package parallel

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Result is the outcome of one submitted job.
type Result[T any] struct {
	// Seq is the submission index, starting at 0.
	Seq      int
	ID       string
	Value    T
	Error    error
	Duration time.Duration
}

// WorkerPool manages concurrent job execution with bounded concurrency.
type WorkerPool[T any] struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	next       int
	results    []Result[T]
	errors     []error
	failFast   bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a new worker pool with bounded concurrency.
// If maxWorkers is 0, unlimited workers are allowed (bounded by submitted jobs).
// If failFast is true, the context will be cancelled on the first error.
func NewWorkerPool[T any](ctx context.Context, maxWorkers int, failFast bool) *WorkerPool[T] {
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool[T]{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		failFast:   failFast,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit schedules fn. Jobs submitted after cancellation are skipped and
// produce no result.
func (p *WorkerPool[T]) Submit(id string, fn func(ctx context.Context) (T, error)) {
	select {
	case <-p.ctx.Done():
		return
	default:
	}

	p.mu.Lock()
	seq := p.next
	p.next++
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		// Acquire semaphore slot
		if p.maxWorkers > 0 {
			select {
			case p.semaphore <- struct{}{}:
				defer func() { <-p.semaphore }()
			case <-p.ctx.Done():
				return
			}
		}

		// Check if we should still run (fail-fast or cancelled)
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		start := time.Now()
		value, err := fn(p.ctx)
		result := Result[T]{
			Seq:      seq,
			ID:       id,
			Value:    value,
			Error:    err,
			Duration: time.Since(start),
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		p.results = append(p.results, result)
		if err != nil {
			p.errors = append(p.errors, fmt.Errorf("%s: %w", id, err))
			if p.failFast {
				p.cancel()
			}
		}
	}()
}

// Wait waits for all submitted jobs and returns their results in submission
// order. With failFast, jobs that never started are missing from the results.
func (p *WorkerPool[T]) Wait() ([]Result[T], []error) {
	p.wg.Wait()
	p.cancel()

	results := p.Results()
	sort.Slice(results, func(i, j int) bool { return results[i].Seq < results[j].Seq })
	return results, p.Errors()
}

// Results returns a snapshot of current results without waiting.
// This is safe to call from multiple goroutines.
func (p *WorkerPool[T]) Results() []Result[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	results := make([]Result[T], len(p.results))
	copy(results, p.results)
	return results
}

// Errors returns a snapshot of current errors without waiting.
// This is safe to call from multiple goroutines.
func (p *WorkerPool[T]) Errors() []error {
	p.mu.Lock()
	defer p.mu.Unlock()

	errors := make([]error, len(p.errors))
	copy(errors, p.errors)
	return errors
}

// Cancel cancels all pending work in the pool.
func (p *WorkerPool[T]) Cancel() {
	p.cancel()
}
