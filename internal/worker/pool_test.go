package worker_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"sealgram/internal/worker"
)

func upperHandler(req worker.SealRequest) (worker.SealResult, error) {
	return worker.SealResult{SealedKeyB64: strings.ToUpper(req.SessionKeyB64)}, nil
}

func TestPool_RunsTasks(t *testing.T) {
	pool := worker.NewPool(upperHandler, 2, 4)
	defer pool.Close()

	res, err := pool.Run(context.Background(), worker.SealRequest{SessionKeyB64: "abc"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.SealedKeyB64 != "ABC" {
		t.Fatalf("got %q", res.SealedKeyB64)
	}
}

func TestPool_ConcurrentCallers(t *testing.T) {
	pool := worker.NewPool(upperHandler, 3, 6)
	defer pool.Close()

	// The pool is a shared long-lived resource; many top-level
	// operations use it at once.
	var wg sync.WaitGroup
	errs := make([]error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := fmt.Sprintf("task-%d", i)
			res, err := pool.Run(context.Background(), worker.SealRequest{SessionKeyB64: in})
			if err != nil {
				errs[i] = err
				return
			}
			if res.SealedKeyB64 != strings.ToUpper(in) {
				errs[i] = fmt.Errorf("got %q for %q", res.SealedKeyB64, in)
			}
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("task %d: %v", i, err)
		}
	}
}

func TestPool_TaskPanicIsContained(t *testing.T) {
	pool := worker.NewPool(func(worker.SealRequest) (worker.SealResult, error) {
		panic("boom")
	}, 1, 1)
	defer pool.Close()

	_, err := pool.Run(context.Background(), worker.SealRequest{})
	if !errors.Is(err, worker.ErrTaskPanic) {
		t.Fatalf("got %v, want ErrTaskPanic", err)
	}

	// The worker goroutine must survive the panic.
	_, err = pool.Run(context.Background(), worker.SealRequest{})
	if !errors.Is(err, worker.ErrTaskPanic) {
		t.Fatalf("second run: got %v, want ErrTaskPanic", err)
	}
}

func TestPool_ClosedPoolRejects(t *testing.T) {
	pool := worker.NewPool(upperHandler, 1, 1)
	pool.Close()

	if _, err := pool.Run(context.Background(), worker.SealRequest{}); !errors.Is(err, worker.ErrPoolClosed) {
		t.Fatalf("got %v, want ErrPoolClosed", err)
	}
	// Closing twice is a no-op.
	pool.Close()
}

func TestPool_AbandonedCaller(t *testing.T) {
	started := make(chan struct{})
	block := make(chan struct{})
	pool := worker.NewPool(func(worker.SealRequest) (worker.SealResult, error) {
		started <- struct{}{}
		<-block
		return worker.SealResult{}, nil
	}, 1, 1)
	defer func() {
		close(block)
		pool.Close()
	}()

	// Cancel once the worker has picked the task up: the caller
	// returns, the in-flight task completes on its own.
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	if _, err := pool.Run(ctx, worker.SealRequest{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
