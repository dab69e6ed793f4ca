package smsactivate

import (
	"fmt"
	"strconv"
	"strings"
)

// EmailDomainType is the category of a mailbox domain.
type EmailDomainType int

const (
	// DomainZones requests a mailbox in a domain zone such as "xyz".
	DomainZones EmailDomainType = 1
	// DomainPopular requests a mailbox at a popular provider such as "gmail.com".
	DomainPopular EmailDomainType = 2
)

func (t EmailDomainType) String() string {
	switch t {
	case DomainZones:
		return "zones"
	case DomainPopular:
		return "popular"
	default:
		return "EmailDomainType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseEmailDomainType parses "zones", "popular" or their numeric values.
func ParseEmailDomainType(s string) (EmailDomainType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zones", "zone", "1":
		return DomainZones, nil
	case "popular", "2":
		return DomainPopular, nil
	}
	return 0, fmt.Errorf("unknown domain type %q", s)
}

// EmailDomain identifies which mailbox domain to request. Cost and Count are
// filled in by GetAvailableDomains; Count is -1 when the service does not
// report one, which is always the case for zones.
type EmailDomain struct {
	Name  string
	Type  EmailDomainType
	Cost  float64
	Count int
}

// NewEmailDomain returns a domain descriptor for buying, with unknown cost
// and count.
func NewEmailDomain(name string, t EmailDomainType) EmailDomain {
	return EmailDomain{Name: name, Type: t, Cost: -1, Count: -1}
}

func (d EmailDomain) String() string {
	return d.Name
}

// validate checks the descriptor before it is sent.
func (d EmailDomain) validate() error {
	var errs []string
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "domain name is required")
	}
	if d.Type != DomainZones && d.Type != DomainPopular {
		errs = append(errs, fmt.Sprintf("unknown domain type %d", int(d.Type)))
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
