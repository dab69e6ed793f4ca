package smsactivate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/smsactivate/email-go/internal/delivery"
)

// GetText polls the service until the activation's message arrives and
// returns it. It makes at most WithAttempts checks (default 10), pausing
// WithPeriod (default 5s) between them, with no pause before the first
// check or after the last.
//
// The first non-empty message is cached (see FullMessage) and returned.
// When every check comes back empty, GetText returns "" and a nil error;
// LastPoll tells exhaustion apart from other outcomes.
//
// A failed check ends the poll at once with that error. ctx is only
// consulted between checks, so a request in flight is never cut short;
// cancellation returns a *PollError matching ErrPollCancelled.
func (a *EmailActivation) GetText(ctx context.Context, opts ...PollOption) (string, error) {
	cfg := &pollConfig{
		period:   delivery.DefaultPeriod,
		attempts: delivery.DefaultAttempts,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	poller := &delivery.Poller{
		Period:   cfg.period,
		Attempts: cfg.attempts,
		Wait:     cfg.wait,
	}
	if err := poller.Validate(); err != nil {
		return "", &ValidationError{Errors: []string{err.Error()}}
	}

	a.mu.Lock()
	id := a.id
	switch {
	case id == 0:
		a.mu.Unlock()
		return "", fmt.Errorf("%w: activation has no id", ErrInvalidState)
	case a.state == StateCancelled:
		a.mu.Unlock()
		return "", fmt.Errorf("%w: activation is cancelled", ErrInvalidState)
	}
	if a.fullMessage == "" {
		a.state = StateWaiting
	}
	a.mu.Unlock()

	c := a.client
	logger := c.logger.With(zap.Int64("id", id))

	poller.OnAttempt = func(attempt int, message string, err error) {
		result := "empty"
		switch {
		case err != nil:
			result = "error"
		case message != "":
			result = "received"
		}
		c.metrics.ObservePollAttempt(result)
		logger.Debug("poll attempt",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.attempts),
			zap.String("result", result),
		)
	}

	res, err := poller.Poll(ctx, func(ctx context.Context) (string, error) {
		check, err := c.backend.CheckMailActivation(ctx, id)
		if err != nil {
			return "", err
		}
		if !check.Received {
			return "", nil
		}
		return check.Message, nil
	})
	c.metrics.ObservePoll(res.Outcome.String())

	a.mu.Lock()
	a.lastPoll = &res
	// A concurrent Reactivate makes the result stale.
	if res.Outcome == delivery.OutcomeReceived && a.id == id {
		a.fullMessage = res.Message
		a.state = StateReceived
	}
	a.mu.Unlock()

	logger.Debug("poll finished",
		zap.Stringer("outcome", res.Outcome),
		zap.Int("attempts", res.Attempts),
		zap.Duration("waited", res.Waited),
	)

	switch res.Outcome {
	case delivery.OutcomeCancelled:
		return "", &PollError{Attempts: res.Attempts, Err: err}
	case delivery.OutcomeFailed:
		return "", err
	}
	return res.Message, nil
}

// GetTextStrict is like GetText but reports exhaustion as a *PollError
// matching ErrAttemptsExhausted.
func (a *EmailActivation) GetTextStrict(ctx context.Context, opts ...PollOption) (string, error) {
	text, err := a.GetText(ctx, opts...)
	if err != nil {
		return "", err
	}
	if text == "" {
		attempts := 0
		if res := a.LastPoll(); res != nil {
			attempts = res.Attempts
		}
		return "", &PollError{Attempts: attempts, Err: ErrAttemptsExhausted}
	}
	return text, nil
}

// WaitForText polls every period until a message arrives or ctx's
// deadline leaves no room for another check. The attempt budget is derived
// from the deadline; using it up yields ErrAttemptsExhausted, while hitting
// the deadline during a pause yields ErrPollCancelled.
func (a *EmailActivation) WaitForText(ctx context.Context, period time.Duration) (string, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return "", &ValidationError{Errors: []string{"context must have a deadline"}}
	}
	if period <= 0 {
		return "", &ValidationError{Errors: []string{fmt.Sprintf("period must be positive, got %v", period)}}
	}
	attempts := 1 + int(time.Until(deadline)/period)
	if attempts < 1 {
		attempts = 1
	}
	return a.GetTextStrict(ctx, WithPeriod(period), WithAttempts(attempts))
}
