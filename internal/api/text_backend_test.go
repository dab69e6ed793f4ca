package api

import (
	"context"
	"errors"
	"testing"

	"github.com/smsactivate/email-go/internal/apierrors"
)

func newTextBackend(t *testing.T, responses map[string]string) *TextBackend {
	t.Helper()
	server := newActionServer(t, responses)
	client, err := NewClient(Config{BaseURL: server.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return NewTextBackend(client)
}

func TestTextBackend_Buy(t *testing.T) {
	b := newTextBackend(t, map[string]string{ActionBuyActivation: "ACCESS_EMAIL:1001:box@gmail.com\n"})

	a, err := b.BuyMailActivation(context.Background(), "example.org", 2, "gmail.com")
	if err != nil {
		t.Fatalf("BuyMailActivation() error = %v", err)
	}
	if a.ID != 1001 || a.Email != "box@gmail.com" {
		t.Errorf("activation = %+v", a)
	}
}

func TestTextBackend_Check(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected CheckResult
	}{
		{"waiting", "STATUS_WAIT_LINK", CheckResult{}},
		{"bare wait code", "WAIT_LINK", CheckResult{}},
		{"message", "STATUS_OK:Your code: 1234", CheckResult{Message: "Your code: 1234", Received: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTextBackend(t, map[string]string{ActionCheck: tt.body})
			result, err := b.CheckMailActivation(context.Background(), 1)
			if err != nil {
				t.Fatalf("CheckMailActivation() error = %v", err)
			}
			if *result != tt.expected {
				t.Errorf("result = %+v, want %+v", *result, tt.expected)
			}
		})
	}
}

func TestTextBackend_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		target error
	}{
		{"bad key", "BAD_KEY", apierrors.ErrBadAPIKey},
		{"no activation", "NO_ACTIVATION", apierrors.ErrActivationNotFound},
		{"unknown code", "SERVER_BUSY", nil},
		{"garbage", "<html>oops</html>", apierrors.ErrMalformedResponse},
		{"empty", "  ", apierrors.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTextBackend(t, map[string]string{ActionCheck: tt.body})
			_, err := b.CheckMailActivation(context.Background(), 1)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
			if tt.target == nil {
				var apiErr *apierrors.APIError
				if !errors.As(err, &apiErr) || apiErr.Code != tt.body {
					t.Errorf("error = %v, want APIError %s", err, tt.body)
				}
			}
		})
	}
}

func TestTextBackend_ReorderAndCancel(t *testing.T) {
	b := newTextBackend(t, map[string]string{
		ActionReorder: "ACCESS_EMAIL:2002:new@xyz",
		ActionCancel:  "ACCESS_CANCEL",
	})

	a, err := b.ReorderMailActivation(context.Background(), 1001)
	if err != nil {
		t.Fatalf("ReorderMailActivation() error = %v", err)
	}
	if a.ID != 2002 || a.Email != "new@xyz" {
		t.Errorf("activation = %+v", a)
	}
	if err := b.CancelMailActivation(context.Background(), 2002); err != nil {
		t.Errorf("CancelMailActivation() error = %v", err)
	}
}

func TestTextBackend_Cancel_Unexpected(t *testing.T) {
	b := newTextBackend(t, map[string]string{ActionCancel: "ACCESS_READY"})
	if err := b.CancelMailActivation(context.Background(), 1); !errors.Is(err, apierrors.ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestTextBackend_ParseAccessEmail_Malformed(t *testing.T) {
	for _, line := range []string{"ACCESS_EMAIL:abc:x@y", "ACCESS_EMAIL:1", "ACCESS_NUMBER:1:x@y", "ACCESS_EMAIL:1:nomail"} {
		if _, err := parseAccessEmail(ActionBuyActivation, line); !errors.Is(err, apierrors.ErrMalformedResponse) {
			t.Errorf("parseAccessEmail(%q) error = %v, want ErrMalformedResponse", line, err)
		}
	}
}

func TestTextBackend_Unsupported(t *testing.T) {
	b := &TextBackend{}
	if _, err := b.GetDomains(context.Background(), "x"); !errors.Is(err, apierrors.ErrUnsupported) {
		t.Errorf("GetDomains() error = %v, want ErrUnsupported", err)
	}
	if _, err := b.GetMailHistory(context.Background(), HistoryParams{}); !errors.Is(err, apierrors.ErrUnsupported) {
		t.Errorf("GetMailHistory() error = %v, want ErrUnsupported", err)
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := map[string]bool{
		"BAD_KEY":          true,
		"SERVER_BUSY":      true,
		"STATUS_WAIT_LINK": false,
		"ACCESS_CANCEL":    false,
		"hello world":      false,
	}
	for line, want := range tests {
		if got := isErrorCode(line); got != want {
			t.Errorf("isErrorCode(%q) = %v, want %v", line, got, want)
		}
	}
}
