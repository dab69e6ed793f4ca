package api

import (
	"context"
)

// Backend is the capability set shared by the protocol variants.
type Backend interface {
	// Name returns the protocol name for logging.
	Name() string

	// GetDomains lists the mailbox domains available for site.
	GetDomains(ctx context.Context, site string) (*DomainsResult, error)

	// GetMailHistory lists the account's email activations.
	GetMailHistory(ctx context.Context, params HistoryParams) ([]HistoryEntry, error)

	// BuyMailActivation purchases a mailbox expecting mail from site.
	BuyMailActivation(ctx context.Context, site string, mailType int, domain string) (*Activation, error)

	// CheckMailActivation queries whether the message has arrived.
	// A mailbox that is still waiting yields Received=false and no error.
	CheckMailActivation(ctx context.Context, id int64) (*CheckResult, error)

	// ReorderMailActivation asks the service to deliver a new message to the
	// mailbox. The returned activation may carry a new id and email.
	ReorderMailActivation(ctx context.Context, id int64) (*Activation, error)

	// CancelMailActivation cancels the mailbox.
	CancelMailActivation(ctx context.Context, id int64) error
}
