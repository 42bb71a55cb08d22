// Package worker provides the bounded pool that fans out sealing
// tasks. Tasks carry only serializable string payloads, so the pool
// never shares mutable state with its callers and is safe to share
// across concurrent top-level encryption calls.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

var (
	// ErrPoolClosed is returned when a task is submitted after Close.
	ErrPoolClosed = errors.New("worker: pool closed")
	// ErrTaskPanic is returned when a task panics; the worker survives.
	ErrTaskPanic = errors.New("worker: task panicked")
)

// SealRequest is the serializable payload of one sealing task.
type SealRequest struct {
	SessionKeyB64      string
	RecipientPublicB64 string
	SenderPrivateB64   string
}

// SealResult is what a completed task returns.
type SealResult struct {
	SealedKeyB64 string
}

// Handler computes one seal from its serialized inputs. It must be
// stateless: the pool runs handlers concurrently.
type Handler func(SealRequest) (SealResult, error)

// Pool runs sealing tasks on a fixed set of worker goroutines with a
// bounded queue.
type Pool struct {
	handler Handler
	jobs    chan job
	wg      sync.WaitGroup
	closed  atomic.Bool
}

type job struct {
	req  SealRequest
	done chan outcome
}

type outcome struct {
	res SealResult
	err error
}

// NewPool starts workers goroutines consuming a queue of depth
// queueDepth. Non-positive values fall back to runtime.NumCPU() and
// twice the worker count.
func NewPool(handler Handler, workers, queueDepth int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if queueDepth <= 0 {
		queueDepth = workers * 2
	}
	p := &Pool{
		handler: handler,
		jobs:    make(chan job, queueDepth),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for j := range p.jobs {
		j.done <- p.execute(j.req)
	}
}

func (p *Pool) execute(req SealRequest) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("%w: %v", ErrTaskPanic, r)}
		}
	}()
	res, err := p.handler(req)
	return outcome{res: res, err: err}
}

// Run submits one task and waits for its result. Abandoning the
// context leaves the task to complete on its own; that is harmless
// because tasks are side-effect-free.
func (p *Pool) Run(ctx context.Context, req SealRequest) (SealResult, error) {
	if p.closed.Load() {
		return SealResult{}, ErrPoolClosed
	}
	j := job{req: req, done: make(chan outcome, 1)}
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return SealResult{}, ctx.Err()
	}
	select {
	case out := <-j.done:
		return out.res, out.err
	case <-ctx.Done():
		return SealResult{}, ctx.Err()
	}
}

// Close stops accepting tasks and waits for in-flight ones to finish.
// Callers must not submit concurrently with Close.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	close(p.jobs)
	p.wg.Wait()
}
