package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/smsactivate/email-go/internal/apierrors"
)

// JSONBackend speaks the JSON envelope protocol.
type JSONBackend struct {
	client *Client
}

// NewJSONBackend creates a JSON protocol backend on top of c.
func NewJSONBackend(c *Client) *JSONBackend {
	return &JSONBackend{client: c}
}

// Name returns the protocol name.
func (b *JSONBackend) Name() string {
	return "json"
}

// call performs action and decodes the "response" member into result.
func (b *JSONBackend) call(ctx context.Context, action string, params url.Values, result interface{}) error {
	body, err := b.client.Get(ctx, action, params)
	if err != nil {
		return err
	}

	raw, err := decodeEnvelope(action, body)
	if err != nil {
		return err
	}
	if result == nil || len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return &apierrors.DecodeError{Body: truncate(string(body)), Err: err}
	}
	return nil
}

// decodeEnvelope checks the envelope for service errors and returns the
// raw response member.
func decodeEnvelope(action string, body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &apierrors.DecodeError{Body: truncate(string(body)), Err: err}
	}

	if env.Error != "" {
		return nil, &apierrors.APIError{Code: env.Error, Message: env.Message, Action: action}
	}
	if env.Status != "OK" {
		return nil, &apierrors.APIError{
			Code:    "BAD_STATUS",
			Message: "unexpected status " + strconv.Quote(env.Status),
			Action:  action,
		}
	}
	return env.Response, nil
}

// GetDomains lists the mailbox domains available for site.
func (b *JSONBackend) GetDomains(ctx context.Context, site string) (*DomainsResult, error) {
	var result DomainsResult
	if err := b.call(ctx, ActionGetDomains, url.Values{"site": {site}}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMailHistory lists the account's email activations.
func (b *JSONBackend) GetMailHistory(ctx context.Context, p HistoryParams) ([]HistoryEntry, error) {
	params := url.Values{}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		params.Set("search", p.Search)
	}
	if p.Sort != "" {
		params.Set("sort", p.Sort)
	}

	var result historyResponse
	if err := b.call(ctx, ActionGetMailHistory, params, &result); err != nil {
		return nil, err
	}
	return result.List, nil
}

// BuyMailActivation purchases a mailbox expecting mail from site.
func (b *JSONBackend) BuyMailActivation(ctx context.Context, site string, mailType int, domain string) (*Activation, error) {
	params := url.Values{
		"site":        {site},
		"mail_type":   {strconv.Itoa(mailType)},
		"mail_domain": {domain},
	}
	var result Activation
	if err := b.call(ctx, ActionBuyActivation, params, &result); err != nil {
		return nil, err
	}
	if err := validateActivation(ActionBuyActivation, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckMailActivation queries whether the message has arrived.
func (b *JSONBackend) CheckMailActivation(ctx context.Context, id int64) (*CheckResult, error) {
	var result checkResponse
	err := b.call(ctx, ActionCheck, idParams(id), &result)
	if errors.Is(err, apierrors.ErrWaitingForMessage) {
		return &CheckResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	if result.FullMessage == nil {
		return &CheckResult{}, nil
	}
	return &CheckResult{Message: *result.FullMessage, Received: true}, nil
}

// ReorderMailActivation asks the service to deliver a new message.
func (b *JSONBackend) ReorderMailActivation(ctx context.Context, id int64) (*Activation, error) {
	var result Activation
	if err := b.call(ctx, ActionReorder, idParams(id), &result); err != nil {
		return nil, err
	}
	if err := validateActivation(ActionReorder, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelMailActivation cancels the mailbox.
func (b *JSONBackend) CancelMailActivation(ctx context.Context, id int64) error {
	return b.call(ctx, ActionCancel, idParams(id), nil)
}

func idParams(id int64) url.Values {
	return url.Values{"id": {strconv.FormatInt(id, 10)}}
}

func validateActivation(action string, a *Activation) error {
	if a.ID == 0 || !strings.Contains(a.Email, "@") {
		return &apierrors.DecodeError{
			Body: truncate(strconv.FormatInt(int64(a.ID), 10) + ":" + a.Email),
			Err:  errors.New(action + ": response is missing id or email"),
		}
	}
	return nil
}

func truncate(s string) string {
	const limit = 256
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
