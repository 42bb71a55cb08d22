package seal

import (
	"context"
	"errors"
	"sync"

	"sealgram/internal/domain"
	"sealgram/internal/worker"
)

// DefaultParallelThreshold is the recipient count (excluding the
// sender) at which sealing fans out to the worker pool. Below it every
// seal runs inline, so 1:1 chats never pay pool-dispatch overhead.
const DefaultParallelThreshold = 5

// Runner executes one sealing task somewhere else: a worker pool in
// production, a fake in tests. *worker.Pool satisfies it.
type Runner interface {
	Run(ctx context.Context, req worker.SealRequest) (worker.SealResult, error)
}

// Sealer dispatches per-recipient sealing either inline or across a
// Runner, with identical observable output either way.
type Sealer struct {
	runner    Runner
	threshold int
}

// New returns a Sealer that fans out to runner once a message has at
// least threshold unique recipients besides the sender. A
// non-positive threshold selects DefaultParallelThreshold.
func New(runner Runner, threshold int) *Sealer {
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	return &Sealer{runner: runner, threshold: threshold}
}

// NewInline returns a Sealer that always seals sequentially in the
// calling goroutine.
func NewInline() *Sealer {
	return &Sealer{threshold: DefaultParallelThreshold}
}

// sealAll produces one sealed key per target. targets already obey the
// recipient-set rules; the sender's self-seal always runs inline since
// it is a single cheap operation.
func (s *Sealer) sealAll(
	ctx context.Context,
	sessionKey domain.SessionKey,
	sender domain.Identity,
	targets []domain.Participant,
) (map[string]string, error) {
	others := make([]domain.Participant, 0, len(targets))
	var self *domain.Participant
	for i := range targets {
		if targets[i].ID == sender.ID {
			self = &targets[i]
			continue
		}
		others = append(others, targets[i])
	}

	keys := make(map[string]string, len(targets))

	if s.runner == nil || len(others) < s.threshold {
		for _, r := range others {
			sealed, err := SealSessionKey(sessionKey, r.Public, sender.Keys.Private)
			if err != nil {
				return nil, err
			}
			keys[r.ID] = sealed
		}
	} else {
		sealed, err := s.sealParallel(ctx, sessionKey, sender, others)
		if err != nil {
			return nil, err
		}
		for id, v := range sealed {
			keys[id] = v
		}
	}

	if self != nil {
		sealed, err := SealSessionKey(sessionKey, self.Public, sender.Keys.Private)
		if err != nil {
			return nil, err
		}
		keys[self.ID] = sealed
	}
	return keys, nil
}

// sealParallel submits one task per recipient to the runner. A task
// that fails for infrastructure reasons (pool closed, panic, payload
// decode, cancellation mid-flight) is recomputed inline for that one
// recipient; the operation as a whole is never aborted by a single
// worker failure and no recipient is silently dropped.
//
// A deterministic authentication failure is not retried: recomputing
// it inline would fail identically.
func (s *Sealer) sealParallel(
	ctx context.Context,
	sessionKey domain.SessionKey,
	sender domain.Identity,
	others []domain.Participant,
) (map[string]string, error) {
	sessionKeyB64 := sessionKey.B64()
	senderPrivB64 := sender.Keys.Private.B64()

	results := make([]string, len(others))
	errs := make([]error, len(others))

	var wg sync.WaitGroup
	for i := range others {
		wg.Add(1)
		go func(i int, r domain.Participant) {
			defer wg.Done()
			res, err := s.runner.Run(ctx, worker.SealRequest{
				SessionKeyB64:      sessionKeyB64,
				RecipientPublicB64: r.Public.B64(),
				SenderPrivateB64:   senderPrivB64,
			})
			if err == nil {
				results[i] = res.SealedKeyB64
				return
			}
			if errors.Is(err, domain.ErrAuthentication) {
				errs[i] = err
				return
			}
			// Infrastructure failure: recompute this one seal inline.
			sealed, ierr := SealSessionKey(sessionKey, r.Public, sender.Keys.Private)
			if ierr != nil {
				errs[i] = ierr
				return
			}
			results[i] = sealed
		}(i, others[i])
	}
	wg.Wait()

	keys := make(map[string]string, len(others))
	for i, r := range others {
		if errs[i] != nil {
			return nil, errs[i]
		}
		keys[r.ID] = results[i]
	}
	return keys, nil
}
