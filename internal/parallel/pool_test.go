package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewWorkerPool(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pool with max workers", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 4, false)
		if pool.maxWorkers != 4 {
			t.Errorf("expected maxWorkers=4, got %d", pool.maxWorkers)
		}
		if pool.failFast {
			t.Error("expected failFast=false")
		}
	})

	t.Run("creates pool with failFast", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 2, true)
		if !pool.failFast {
			t.Error("expected failFast=true")
		}
	})
}

func TestWorkerPool_SubmitAndWait(t *testing.T) {
	ctx := context.Background()

	t.Run("results come back in submission order", func(t *testing.T) {
		pool := NewWorkerPool[string](ctx, 4, false)

		ids := []string{"a.json", "b.json", "c.json", "d.json", "e.json"}
		for i, id := range ids {
			delay := time.Duration(len(ids)-i) * 5 * time.Millisecond
			pool.Submit(id, func(ctx context.Context) (string, error) {
				time.Sleep(delay)
				return "checked " + id, nil
			})
		}

		results, errs := pool.Wait()
		if len(errs) != 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
		if len(results) != len(ids) {
			t.Fatalf("expected %d results, got %d", len(ids), len(results))
		}
		for i, r := range results {
			if r.Seq != i || r.ID != ids[i] || r.Value != "checked "+ids[i] {
				t.Errorf("result %d: got %+v", i, r)
			}
		}
	})

	t.Run("respects max workers limit", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 2, false)

		var current, maxSeen int32
		for i := 0; i < 6; i++ {
			pool.Submit(fmt.Sprint(i), func(ctx context.Context) (int, error) {
				n := atomic.AddInt32(&current, 1)
				for {
					m := atomic.LoadInt32(&maxSeen)
					if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&current, -1)
				return 0, nil
			})
		}
		pool.Wait()

		if maxSeen > 2 {
			t.Errorf("expected max 2 concurrent jobs, got %d", maxSeen)
		}
	})

	t.Run("unlimited workers", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 0, false)
		for i := 0; i < 10; i++ {
			pool.Submit("", func(ctx context.Context) (int, error) { return i, nil })
		}
		results, _ := pool.Wait()
		if len(results) != 10 {
			t.Errorf("expected 10 results, got %d", len(results))
		}
	})
}

func TestWorkerPool_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("errors are wrapped with the job id", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 2, false)
		failure := errors.New("unreadable")

		pool.Submit("ok.json", func(ctx context.Context) (int, error) { return 1, nil })
		pool.Submit("bad.json", func(ctx context.Context) (int, error) { return 0, failure })

		results, errs := pool.Wait()
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[1].Error != failure {
			t.Errorf("result error: got %v", results[1].Error)
		}
		if len(errs) != 1 || !errors.Is(errs[0], failure) || errs[0].Error() != "bad.json: unreadable" {
			t.Errorf("errors: got %v", errs)
		}
	})

	t.Run("failFast stops execution", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 1, true)

		var executed int32
		for i := 0; i < 5; i++ {
			pool.Submit(fmt.Sprint(i), func(ctx context.Context) (int, error) {
				if atomic.AddInt32(&executed, 1) == 1 {
					return 0, errors.New("fail fast")
				}
				time.Sleep(20 * time.Millisecond)
				return 0, nil
			})
		}
		_, errs := pool.Wait()

		if atomic.LoadInt32(&executed) == 5 {
			t.Error("failFast did not stop execution early")
		}
		if len(errs) == 0 {
			t.Error("expected at least one error")
		}
	})
}

func TestWorkerPool_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool := NewWorkerPool[int](ctx, 2, false)

	var executed int32
	var once sync.Once
	for i := 0; i < 10; i++ {
		pool.Submit("", func(jobCtx context.Context) (int, error) {
			atomic.AddInt32(&executed, 1)
			once.Do(cancel)
			<-jobCtx.Done()
			return 0, jobCtx.Err()
		})
	}
	pool.Wait()

	if n := atomic.LoadInt32(&executed); n >= 10 {
		t.Errorf("expected fewer than 10 executed jobs due to cancel, got %d", n)
	}

	pool.Submit("late", func(ctx context.Context) (int, error) { return 1, nil })
	if results := pool.Results(); len(results) > int(executed) {
		t.Error("jobs submitted after cancel should be skipped")
	}
}

func TestWorkerPool_Duration(t *testing.T) {
	pool := NewWorkerPool[int](context.Background(), 2, false)
	pool.Submit("", func(ctx context.Context) (int, error) {
		time.Sleep(20 * time.Millisecond)
		return 0, nil
	})

	results, _ := pool.Wait()
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Duration < 20*time.Millisecond {
		t.Errorf("expected duration >= 20ms, got %v", results[0].Duration)
	}
}
