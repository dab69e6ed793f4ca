package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/smsactivate/email-go/internal/apierrors"
)

// Text protocol response prefixes.
const (
	textAccessEmail  = "ACCESS_EMAIL"
	textAccessCancel = "ACCESS_CANCEL"
	textStatusOK     = "STATUS_OK"
	textStatusWait   = "STATUS_WAIT_LINK"
)

// TextBackend speaks the colon separated text protocol. It only covers the
// mailbox lifecycle; listing domains and history is not available.
type TextBackend struct {
	client *Client
}

// NewTextBackend creates a text protocol backend on top of c.
func NewTextBackend(c *Client) *TextBackend {
	return &TextBackend{client: c}
}

// Name returns the protocol name.
func (b *TextBackend) Name() string {
	return "text"
}

// call performs action and returns the trimmed response line. Bare service
// error codes are converted to *apierrors.APIError.
func (b *TextBackend) call(ctx context.Context, action string, id int64, extra map[string]string) (string, error) {
	params := idParams(id)
	if id == 0 {
		params.Del("id")
	}
	for k, v := range extra {
		params.Set(k, v)
	}

	body, err := b.client.Get(ctx, action, params)
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(string(body))
	if line == "" {
		return "", &apierrors.DecodeError{Body: line, Err: errors.New("empty response")}
	}
	if isErrorCode(line) {
		return "", &apierrors.APIError{Code: line, Action: action}
	}
	return line, nil
}

// isErrorCode reports whether line is a bare error code. Success lines
// always start with ACCESS_ or STATUS_.
func isErrorCode(line string) bool {
	if strings.HasPrefix(line, "ACCESS_") || strings.HasPrefix(line, "STATUS_") {
		return false
	}
	if apierrors.SentinelForCode(line) != nil {
		return true
	}
	for _, r := range line {
		if (r < 'A' || r > 'Z') && r != '_' {
			return false
		}
	}
	return true
}

// GetDomains is not supported by the text protocol.
func (b *TextBackend) GetDomains(ctx context.Context, site string) (*DomainsResult, error) {
	return nil, fmt.Errorf("%s: %w", ActionGetDomains, apierrors.ErrUnsupported)
}

// GetMailHistory is not supported by the text protocol.
func (b *TextBackend) GetMailHistory(ctx context.Context, params HistoryParams) ([]HistoryEntry, error) {
	return nil, fmt.Errorf("%s: %w", ActionGetMailHistory, apierrors.ErrUnsupported)
}

// BuyMailActivation purchases a mailbox expecting mail from site.
func (b *TextBackend) BuyMailActivation(ctx context.Context, site string, mailType int, domain string) (*Activation, error) {
	line, err := b.call(ctx, ActionBuyActivation, 0, map[string]string{
		"site":        site,
		"mail_type":   strconv.Itoa(mailType),
		"mail_domain": domain,
	})
	if err != nil {
		return nil, err
	}
	return parseAccessEmail(ActionBuyActivation, line)
}

// CheckMailActivation queries whether the message has arrived.
func (b *TextBackend) CheckMailActivation(ctx context.Context, id int64) (*CheckResult, error) {
	line, err := b.call(ctx, ActionCheck, id, nil)
	if errors.Is(err, apierrors.ErrWaitingForMessage) {
		return &CheckResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	if line == textStatusWait {
		return &CheckResult{}, nil
	}
	if message, ok := strings.CutPrefix(line, textStatusOK+":"); ok {
		return &CheckResult{Message: message, Received: true}, nil
	}
	return nil, &apierrors.DecodeError{Body: truncate(line), Err: errors.New("unexpected check response")}
}

// ReorderMailActivation asks the service to deliver a new message.
func (b *TextBackend) ReorderMailActivation(ctx context.Context, id int64) (*Activation, error) {
	line, err := b.call(ctx, ActionReorder, id, nil)
	if err != nil {
		return nil, err
	}
	return parseAccessEmail(ActionReorder, line)
}

// CancelMailActivation cancels the mailbox.
func (b *TextBackend) CancelMailActivation(ctx context.Context, id int64) error {
	line, err := b.call(ctx, ActionCancel, id, nil)
	if err != nil {
		return err
	}
	if line != textAccessCancel {
		return &apierrors.DecodeError{Body: truncate(line), Err: errors.New("unexpected cancel response")}
	}
	return nil
}

// parseAccessEmail parses "ACCESS_EMAIL:<id>:<email>".
func parseAccessEmail(action, line string) (*Activation, error) {
	parts := strings.SplitN(line, ":", 3)
	if len(parts) != 3 || parts[0] != textAccessEmail {
		return nil, &apierrors.DecodeError{Body: truncate(line), Err: fmt.Errorf("%s: unexpected response", action)}
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, &apierrors.DecodeError{Body: truncate(line), Err: err}
	}
	a := &Activation{ID: FlexInt64(id), Email: parts[2]}
	if err := validateActivation(action, a); err != nil {
		return nil, err
	}
	return a, nil
}
