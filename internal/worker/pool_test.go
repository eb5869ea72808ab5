package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	id      int
	counter *int32
	err     error
}

type countingResult struct {
	id  int
	err error
}

func (r *countingResult) GetError() error { return r.err }

func (j *countingJob) Execute(ctx context.Context) Result {
	atomic.AddInt32(j.counter, 1)
	return &countingResult{id: j.id, err: j.err}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var counter int32
	for i := 0; i < 10; i++ {
		pool.Submit(&countingJob{id: i, counter: &counter})
	}

	results := pool.Wait()

	if len(results) != 10 {
		t.Errorf("Expected 10 results, got %d", len(results))
	}
	if atomic.LoadInt32(&counter) != 10 {
		t.Errorf("Expected 10 executions, got %d", counter)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var counter int32
	pool.Submit(&countingJob{id: 0, counter: &counter})
	pool.Submit(&countingJob{id: 1, counter: &counter, err: fmt.Errorf("boom")})

	results := pool.Wait()

	errCount := 0
	for _, r := range results {
		if r.GetError() != nil {
			errCount++
		}
	}
	if errCount != 1 {
		t.Errorf("Expected 1 failed result, got %d", errCount)
	}
}

func TestPool_DefaultsToOneWorker(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var counter int32
	pool.Submit(&countingJob{counter: &counter})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

type slowJob struct{}

func (j *slowJob) Execute(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return &countingResult{err: ctx.Err()}
	case <-time.After(5 * time.Second):
		return &countingResult{}
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Submit(&slowJob{})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not interrupt a running job")
	}
}
