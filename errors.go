package smsactivate

import (
	"errors"
	"fmt"

	"github.com/smsactivate/email-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrBadAPIKey is returned when the service rejects the API key.
	ErrBadAPIKey = apierrors.ErrBadAPIKey

	// ErrBadAction is returned when the service does not recognise the action.
	ErrBadAction = apierrors.ErrBadAction

	// ErrBadBalance is returned when the account cannot pay for the mailbox.
	ErrBadBalance = apierrors.ErrBadBalance

	// ErrBadSite is returned when the source site is unknown or blocked.
	ErrBadSite = apierrors.ErrBadSite

	// ErrBadDomain is returned when the requested mailbox domain is rejected.
	ErrBadDomain = apierrors.ErrBadDomain

	// ErrChannelsLimit is returned when the account has too many open mailboxes.
	ErrChannelsLimit = apierrors.ErrChannelsLimit

	// ErrActivationNotFound is returned when the service no longer knows the
	// activation. It also matches ErrInvalidState.
	ErrActivationNotFound = apierrors.ErrActivationNotFound

	// ErrWaitingForMessage is returned when the service reports WAIT_LINK
	// outside of a poll.
	ErrWaitingForMessage = apierrors.ErrWaitingForMessage

	// ErrInvalidState is returned when an activation cannot perform an
	// operation and must be re-purchased.
	ErrInvalidState = apierrors.ErrInvalidState

	// ErrMalformedResponse is returned when a response cannot be parsed.
	ErrMalformedResponse = apierrors.ErrMalformedResponse

	// ErrUnexpectedStatus is returned for non-200 HTTP responses.
	ErrUnexpectedStatus = apierrors.ErrUnexpectedStatus

	// ErrUnsupported is returned when the selected protocol lacks an operation.
	ErrUnsupported = apierrors.ErrUnsupported

	// ErrAttemptsExhausted is returned by GetTextStrict when no message
	// arrived within the attempt budget.
	ErrAttemptsExhausted = errors.New("attempts exhausted without a message")

	// ErrPollCancelled is returned when the context ends between poll attempts.
	ErrPollCancelled = errors.New("poll cancelled")

	// ErrInvalidImportData is returned when exported activation data is invalid.
	ErrInvalidImportData = errors.New("invalid import data")
)

// SMSActivateError is implemented by all typed errors of this package.
type SMSActivateError interface {
	error
	SMSActivateError() // marker method
}

// APIError is an error code returned by the service, such as BAD_KEY.
type APIError = apierrors.APIError

// StatusError is a non-200 HTTP response.
type StatusError = apierrors.StatusError

// DecodeError is a response body that could not be parsed.
type DecodeError = apierrors.DecodeError

// NetworkError is a transport-level failure.
type NetworkError = apierrors.NetworkError

// ValidationError contains multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Errors)
}

// SMSActivateError implements the SMSActivateError interface.
func (e *ValidationError) SMSActivateError() {}

// PollError reports a poll that ended without a message and without a
// remote failure.
type PollError struct {
	Attempts int
	Err      error
}

func (e *PollError) Error() string {
	if errors.Is(e.Err, ErrAttemptsExhausted) {
		return fmt.Sprintf("no message after %d attempts", e.Attempts)
	}
	return fmt.Sprintf("poll cancelled after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying error.
func (e *PollError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *PollError) Is(target error) bool {
	if target == ErrPollCancelled {
		return !errors.Is(e.Err, ErrAttemptsExhausted)
	}
	return false
}

// SMSActivateError implements the SMSActivateError interface.
func (e *PollError) SMSActivateError() {}
