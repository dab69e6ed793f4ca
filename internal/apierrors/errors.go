// Package apierrors provides shared error types for the smsactivate client.
package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrBadAPIKey is returned when the service rejects the API key (BAD_KEY).
	ErrBadAPIKey = errors.New("invalid API key")

	// ErrBadAction is returned when the service does not know the action (BAD_ACTION).
	ErrBadAction = errors.New("unknown action")

	// ErrBadBalance is returned when the account balance is too low (BAD_BALANCE).
	ErrBadBalance = errors.New("insufficient balance")

	// ErrBadSite is returned when the source site is unknown or blocked (BAD_SITE, BLOCKED_SITE).
	ErrBadSite = errors.New("site is unknown or blocked")

	// ErrBadDomain is returned when the mailbox domain or type is rejected (MAIL_TYPE_ERROR).
	ErrBadDomain = errors.New("invalid mailbox domain")

	// ErrChannelsLimit is returned when no more mailboxes can be opened (CHANNELS_LIMIT).
	ErrChannelsLimit = errors.New("mailbox channels limit reached")

	// ErrActivationNotFound is returned when the activation does not exist
	// or has expired (ACTIVATION_NOT_FOUND, NO_ACTIVATION).
	ErrActivationNotFound = errors.New("activation not found")

	// ErrWaitingForMessage is returned when the mailbox has not received a message yet (WAIT_LINK).
	ErrWaitingForMessage = errors.New("waiting for message")

	// ErrInvalidState is returned when an activation cannot perform the
	// requested operation and must be re-purchased.
	ErrInvalidState = errors.New("activation is in an invalid state")

	// ErrMalformedResponse is returned when a response body cannot be parsed.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnexpectedStatus is returned for a non-success HTTP status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrUnsupported is returned when the selected protocol lacks an action.
	ErrUnsupported = errors.New("operation not supported by protocol")
)

// codeSentinels maps service error codes to sentinel errors.
var codeSentinels = map[string]error{
	"BAD_KEY":              ErrBadAPIKey,
	"BAD_ACTION":           ErrBadAction,
	"BAD_BALANCE":          ErrBadBalance,
	"BAD_SITE":             ErrBadSite,
	"BLOCKED_SITE":         ErrBadSite,
	"MAIL_TYPE_ERROR":      ErrBadDomain,
	"CHANNELS_LIMIT":       ErrChannelsLimit,
	"ACTIVATION_NOT_FOUND": ErrActivationNotFound,
	"NO_ACTIVATION":        ErrActivationNotFound,
	"WAIT_LINK":            ErrWaitingForMessage,
}

// SentinelForCode returns the sentinel error for a service error code,
// or nil if the code is not known.
func SentinelForCode(code string) error {
	return codeSentinels[code]
}

// APIError represents an error code returned by the SMS-Activate service.
type APIError struct {
	Code    string
	Message string
	Action  string
}

func (e *APIError) Error() string {
	if e.Action != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %s: %s (action: %s)", e.Code, e.Message, e.Action)
		}
		return fmt.Sprintf("API error %s (action: %s)", e.Code, e.Action)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("API error %s", e.Code)
}

// SMSActivateError implements the SMSActivateError interface.
func (e *APIError) SMSActivateError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	sentinel := SentinelForCode(e.Code)
	if sentinel == nil {
		return false
	}
	if target == sentinel {
		return true
	}
	// An activation the service no longer knows must be re-purchased.
	return sentinel == ErrActivationNotFound && target == ErrInvalidState
}

// StatusError represents a non-200 HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("bad status code %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("bad status code %d", e.StatusCode)
}

// SMSActivateError implements the SMSActivateError interface.
func (e *StatusError) SMSActivateError() {}

// Is implements errors.Is for sentinel error matching.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// DecodeError represents a response body that could not be parsed.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response %q: %v", e.Body, e.Err)
	}
	return fmt.Sprintf("malformed response %q", e.Body)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SMSActivateError implements the SMSActivateError interface.
func (e *DecodeError) SMSActivateError() {}

// Is implements errors.Is for sentinel error matching.
func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SMSActivateError implements the SMSActivateError interface.
func (e *NetworkError) SMSActivateError() {}
