package delivery

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultPeriod is the pause between attempts when none is configured.
	DefaultPeriod = 5 * time.Second
	// DefaultAttempts is the attempt budget when none is configured.
	DefaultAttempts = 10
)

// CheckFunc performs one remote query. An empty message means the mailbox
// is still waiting.
type CheckFunc func(ctx context.Context) (message string, err error)

// WaitFunc pauses for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Outcome describes how a poll ended.
type Outcome int

const (
	// OutcomeReceived means a non-empty message was returned.
	OutcomeReceived Outcome = iota
	// OutcomeExhausted means every attempt came back empty.
	OutcomeExhausted
	// OutcomeCancelled means the context ended between attempts.
	OutcomeCancelled
	// OutcomeFailed means a check returned an error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReceived:
		return "received"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result summarises a finished poll.
type Result struct {
	Message  string
	Outcome  Outcome
	Attempts int           // remote checks issued
	Waited   time.Duration // sum of requested pauses
}

// Poller runs a bounded fixed-period polling loop.
type Poller struct {
	Period   time.Duration
	Attempts int
	// Wait performs the pause between attempts. Defaults to Sleep.
	Wait WaitFunc
	// OnAttempt, if set, is called after every check with the one-based
	// attempt number, the message (empty when not received) and the error.
	OnAttempt func(attempt int, message string, err error)
}

// Validate checks the poll parameters.
func (p *Poller) Validate() error {
	if p.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", p.Attempts)
	}
	if p.Period < 0 {
		return fmt.Errorf("period must not be negative, got %v", p.Period)
	}
	return nil
}

// Poll runs check until it returns a message, fails, or the attempt budget
// is used up. Exhaustion is not an error: the returned Result has
// OutcomeExhausted and an empty message. A cancelled context yields
// OutcomeCancelled and the context's error.
func (p *Poller) Poll(ctx context.Context, check CheckFunc) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{Outcome: OutcomeFailed}, err
	}
	wait := p.Wait
	if wait == nil {
		wait = Sleep
	}

	var res Result
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if attempt > 1 {
			if err := wait(ctx, p.Period); err != nil {
				res.Outcome = OutcomeCancelled
				return res, err
			}
			res.Waited += p.Period
		}
		if err := ctx.Err(); err != nil {
			res.Outcome = OutcomeCancelled
			return res, err
		}

		// The request itself is not cut short by cancellation.
		message, err := check(context.WithoutCancel(ctx))
		res.Attempts = attempt
		if p.OnAttempt != nil {
			p.OnAttempt(attempt, message, err)
		}
		if err != nil {
			res.Outcome = OutcomeFailed
			return res, err
		}
		if message != "" {
			res.Message = message
			res.Outcome = OutcomeReceived
			return res, nil
		}
	}

	res.Outcome = OutcomeExhausted
	return res, nil
}

// Sleep waits for d using a timer and returns early with ctx.Err() if ctx
// is done first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
