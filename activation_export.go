package smsactivate

import (
	"fmt"
	"strings"
	"time"
)

// ExportVersion is the current export format version.
const ExportVersion = 1

// ExportedActivation contains the data needed to resume an activation in
// another process. It holds no credentials; the importing client supplies
// its own API key.
type ExportedActivation struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// ID is the activation id. Positive.
	ID int64 `json:"id"`
	// Email is the mailbox address. MUST contain exactly one @.
	Email string `json:"email"`
	// Site is the domain the mailbox expects mail from.
	Site string `json:"site,omitempty"`
	// DomainName and DomainType describe the mailbox domain, if known.
	DomainName string          `json:"domainName,omitempty"`
	DomainType EmailDomainType `json:"domainType,omitempty"`
	// FullMessage is the cached message, if one was received.
	FullMessage string `json:"fullMessage,omitempty"`
	// Cancelled marks an activation cancelled with the service.
	Cancelled bool `json:"cancelled,omitempty"`
	// ExportedAt is the export timestamp. Informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// Validate checks that the exported data can be imported.
func (e *ExportedActivation) Validate() error {
	if e.Version != ExportVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidImportData, e.Version, ExportVersion)
	}
	if e.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidImportData)
	}
	if e.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidImportData)
	}
	if strings.Count(e.Email, "@") != 1 {
		return fmt.Errorf("%w: email must contain exactly one @", ErrInvalidImportData)
	}
	switch e.DomainType {
	case 0, DomainZones, DomainPopular:
	default:
		return fmt.Errorf("%w: unknown domain type %d", ErrInvalidImportData, int(e.DomainType))
	}
	return nil
}

// Export returns the activation's exportable data.
func (a *EmailActivation) Export() *ExportedActivation {
	a.mu.Lock()
	defer a.mu.Unlock()

	return &ExportedActivation{
		Version:     ExportVersion,
		ID:          a.id,
		Email:       a.email,
		Site:        a.site,
		DomainName:  a.domain.Name,
		DomainType:  a.domain.Type,
		FullMessage: a.fullMessage,
		Cancelled:   a.state == StateCancelled,
		ExportedAt:  time.Now().UTC(),
	}
}

// newActivationFromExport reconstructs an activation from exported data.
func newActivationFromExport(data *ExportedActivation, c *Client) (*EmailActivation, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	domain := NewEmailDomain(data.DomainName, data.DomainType)
	a := newActivation(data.ID, data.Email, data.Site, domain, c)
	switch {
	case data.Cancelled:
		a.state = StateCancelled
	case data.FullMessage != "":
		a.state = StateReceived
	}
	a.fullMessage = data.FullMessage
	return a, nil
}
