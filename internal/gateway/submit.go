package gateway

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/theirongolddev/finplan/internal/profile"
)

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrNoAdvice is returned when the advice is empty or only whitespace.
	ErrNoAdvice = errors.New("no advice returned")
)

// Requester fetches advice for a profile.
type Requester interface {
	RequestAdvice(ctx context.Context, p profile.Profile) (string, error)
}

// Submitter allows at most one advice request at a time.
type Submitter struct {
	req      Requester
	sem      *semaphore.Weighted
	inFlight atomic.Bool
}

// NewSubmitter wraps req with a single-flight guard.
func NewSubmitter(req Requester) *Submitter {
	return &Submitter{req: req, sem: semaphore.NewWeighted(1)}
}

// Submit requests advice for p. It does not wait for a running submission.
func (s *Submitter) Submit(ctx context.Context, p profile.Profile) (string, error) {
	if !s.sem.TryAcquire(1) {
		return "", ErrBusy
	}
	s.inFlight.Store(true)
	defer func() {
		s.inFlight.Store(false)
		s.sem.Release(1)
	}()

	advice, err := s.req.RequestAdvice(ctx, p)
	if err != nil {
		return "", err
	}
	advice = strings.TrimSpace(advice)
	if advice == "" {
		return "", ErrNoAdvice
	}
	return advice, nil
}

// Busy reports whether a submission is in flight. It never takes the guard,
// so it cannot make a concurrent Submit fail.
func (s *Submitter) Busy() bool {
	return s.inFlight.Load()
}
