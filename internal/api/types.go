package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Action names understood by the handler endpoint.
const (
	ActionGetDomains     = "getDomains"
	ActionGetMailHistory = "getMailHistory"
	ActionBuyActivation  = "buyMailActivation"
	ActionCheck          = "checkMailActivation"
	ActionReorder        = "reorderMailActivation"
	ActionCancel         = "cancelMailActivation"
)

// FlexInt64 decodes from either a JSON number or a quoted number.
// The service is not consistent about which it sends.
type FlexInt64 int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*f = FlexInt64(v)
	return nil
}

// FlexFloat decodes from either a JSON number or a quoted number.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// Activation is the id/email pair returned by buy and reorder.
type Activation struct {
	ID    FlexInt64 `json:"id"`
	Email string    `json:"email"`
}

// CheckResult is the outcome of a check call. Received is false while the
// mailbox is still waiting for its message.
type CheckResult struct {
	Message  string
	Received bool
}

// DomainInfo is one entry of the getDomains response.
type DomainInfo struct {
	Name  string     `json:"name"`
	Cost  FlexFloat  `json:"cost"`
	Count *FlexInt64 `json:"count,omitempty"`
}

// DomainsResult represents the getDomains response.
type DomainsResult struct {
	Zones   []DomainInfo `json:"zones"`
	Popular []DomainInfo `json:"popular"`
}

// HistoryParams are the getMailHistory query parameters.
type HistoryParams struct {
	Page    int
	PerPage int
	Search  string
	Sort    string
}

// HistoryEntry is one activation of the getMailHistory response.
type HistoryEntry struct {
	ID          FlexInt64 `json:"id"`
	Email       string    `json:"email"`
	Site        string    `json:"site"`
	Status      FlexInt64 `json:"status"`
	Value       string    `json:"value"`
	Cost        FlexFloat `json:"cost"`
	Date        string    `json:"date"`
	FullMessage *string   `json:"full_message"`
}

type historyResponse struct {
	List []HistoryEntry `json:"list"`
}

type checkResponse struct {
	FullMessage *string `json:"full_message"`
}

// envelope is the JSON wrapper around every response.
type envelope struct {
	Status   string          `json:"status"`
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}
