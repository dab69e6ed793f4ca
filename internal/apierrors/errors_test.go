package apierrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "code only",
			err:      &APIError{Code: "BAD_KEY"},
			expected: "API error BAD_KEY",
		},
		{
			name:     "with message",
			err:      &APIError{Code: "BAD_BALANCE", Message: "no money"},
			expected: "API error BAD_BALANCE: no money",
		},
		{
			name:     "with action",
			err:      &APIError{Code: "NO_ACTIVATION", Action: "checkMailActivation"},
			expected: "API error NO_ACTIVATION (action: checkMailActivation)",
		},
		{
			name:     "with message and action",
			err:      &APIError{Code: "BAD_SITE", Message: "blocked", Action: "buyMailActivation"},
			expected: "API error BAD_SITE: blocked (action: buyMailActivation)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		code     string
		target   error
		expected bool
	}{
		{"BAD_KEY", ErrBadAPIKey, true},
		{"BAD_ACTION", ErrBadAction, true},
		{"BAD_BALANCE", ErrBadBalance, true},
		{"BAD_SITE", ErrBadSite, true},
		{"BLOCKED_SITE", ErrBadSite, true},
		{"MAIL_TYPE_ERROR", ErrBadDomain, true},
		{"CHANNELS_LIMIT", ErrChannelsLimit, true},
		{"ACTIVATION_NOT_FOUND", ErrActivationNotFound, true},
		{"NO_ACTIVATION", ErrActivationNotFound, true},
		{"NO_ACTIVATION", ErrInvalidState, true},
		{"WAIT_LINK", ErrWaitingForMessage, true},
		{"WAIT_LINK", ErrInvalidState, false},
		{"BAD_KEY", ErrBadBalance, false},
		{"SOMETHING_NEW", ErrBadAPIKey, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.code, tt.target), func(t *testing.T) {
			err := &APIError{Code: tt.code}
			if got := errors.Is(err, tt.target); got != tt.expected {
				t.Errorf("errors.Is(%s, %v) = %v, want %v", tt.code, tt.target, got, tt.expected)
			}
		})
	}
}

func TestAPIError_IsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("buy: %w", &APIError{Code: "CHANNELS_LIMIT"})
	if !errors.Is(wrapped, ErrChannelsLimit) {
		t.Error("wrapped APIError should match ErrChannelsLimit")
	}

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As should find APIError")
	}
	if apiErr.Code != "CHANNELS_LIMIT" {
		t.Errorf("Code = %q, want CHANNELS_LIMIT", apiErr.Code)
	}
}

func TestSentinelForCode(t *testing.T) {
	if SentinelForCode("BAD_KEY") != ErrBadAPIKey {
		t.Error("BAD_KEY should map to ErrBadAPIKey")
	}
	if SentinelForCode("UNKNOWN") != nil {
		t.Error("unknown code should map to nil")
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{StatusCode: 502, Body: "bad gateway"}
	if err.Error() != "bad status code 502: bad gateway" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Error("StatusError should match ErrUnexpectedStatus")
	}
	if (&StatusError{StatusCode: 500}).Error() != "bad status code 500" {
		t.Error("StatusError without body has wrong message")
	}
}

func TestDecodeError(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &DecodeError{Body: "{", Err: inner}

	if !errors.Is(err, ErrMalformedResponse) {
		t.Error("DecodeError should match ErrMalformedResponse")
	}
	if !errors.Is(err, inner) {
		t.Error("DecodeError should unwrap to inner error")
	}
	if got := (&DecodeError{Body: "??"}).Error(); got != `malformed response "??"` {
		t.Errorf("Error() = %q", got)
	}
}

func TestNetworkError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &NetworkError{Err: inner, URL: "https://example.com"}

	if err.Error() != "network error: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
	if errors.Unwrap(err) != inner {
		t.Error("Unwrap() should return inner error")
	}
}
