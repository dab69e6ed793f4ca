package smsactivate

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/smsactivate/email-go/internal/api"
	"github.com/smsactivate/email-go/internal/delivery"
)

// State is the local lifecycle state of an activation.
type State int

const (
	// StatePurchased is a freshly bought mailbox that has not been polled.
	StatePurchased State = iota
	// StateWaiting is a mailbox being polled or reactivated.
	StateWaiting
	// StateReceived is a mailbox whose message has been fetched.
	StateReceived
	// StateCancelled is a mailbox cancelled with the service.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePurchased:
		return "purchased"
	case StateWaiting:
		return "waiting"
	case StateReceived:
		return "received"
	case StateCancelled:
		return "cancelled"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// PollOutcome describes how the last GetText call ended.
type PollOutcome = delivery.Outcome

// Poll outcomes reported by LastPoll.
const (
	PollReceived  = delivery.OutcomeReceived
	PollExhausted = delivery.OutcomeExhausted
	PollCancelled = delivery.OutcomeCancelled
	PollFailed    = delivery.OutcomeFailed
)

// PollResult summarises a finished GetText call.
type PollResult = delivery.Result

// EmailActivation is a purchased temporary mailbox. ID and Email are always
// set; the history fields are only filled for activations returned by
// GetEmailActivations.
//
// An EmailActivation is safe for concurrent use, although polling the same
// activation from two goroutines issues twice the requests.
type EmailActivation struct {
	mu sync.Mutex

	id     int64
	email  string
	site   string
	domain EmailDomain

	status int
	value  string
	cost   float64
	date   string

	fullMessage string
	state       State
	lastPoll    *PollResult

	client *Client
}

func newActivation(id int64, email, site string, domain EmailDomain, c *Client) *EmailActivation {
	return &EmailActivation{
		id:     id,
		email:  email,
		site:   site,
		domain: domain,
		cost:   domain.Cost,
		state:  StatePurchased,
		client: c,
	}
}

func newActivationFromHistory(e api.HistoryEntry, c *Client) *EmailActivation {
	a := &EmailActivation{
		id:     int64(e.ID),
		email:  e.Email,
		site:   e.Site,
		status: int(e.Status),
		value:  e.Value,
		cost:   float64(e.Cost),
		date:   e.Date,
		state:  StateWaiting,
		client: c,
	}
	if e.FullMessage != nil && *e.FullMessage != "" {
		a.fullMessage = *e.FullMessage
		a.state = StateReceived
	}
	return a
}

// ID returns the activation id assigned by the service. It changes on
// Reactivate.
func (a *EmailActivation) ID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.id
}

// Email returns the mailbox address. It may change on Reactivate.
func (a *EmailActivation) Email() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.email
}

// Site returns the domain the mailbox expects mail from.
func (a *EmailActivation) Site() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.site
}

// Domain returns the domain descriptor the mailbox was bought with.
// It is the zero value for activations listed from history.
func (a *EmailActivation) Domain() EmailDomain {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.domain
}

// Status returns the raw status code reported by the history listing.
func (a *EmailActivation) Status() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Value returns the raw value reported by the history listing.
func (a *EmailActivation) Value() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

// Cost returns the mailbox price as reported by the service or carried by
// the domain descriptor.
func (a *EmailActivation) Cost() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cost
}

// Date returns the creation date reported by the history listing.
func (a *EmailActivation) Date() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.date
}

// FullMessage returns the last fetched message, or "" if none has been
// received since purchase or the last Reactivate. It never contacts the
// service.
func (a *EmailActivation) FullMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fullMessage
}

// State returns the local lifecycle state.
func (a *EmailActivation) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// LastPoll returns the result of the most recent GetText call, or nil.
func (a *EmailActivation) LastPoll() *PollResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastPoll == nil {
		return nil
	}
	res := *a.lastPoll
	return &res
}

func (a *EmailActivation) String() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fmt.Sprintf("#%d: %s", a.id, a.email)
}
