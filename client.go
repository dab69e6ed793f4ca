package smsactivate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/smsactivate/email-go/internal/api"
	"github.com/smsactivate/email-go/internal/metrics"
)

// Client is the SMS-Activate email client. It is safe for concurrent use.
type Client struct {
	apiClient *api.Client
	backend   api.Backend
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig, m *metrics.Metrics) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithLogger(cfg.logger),
		api.WithMetrics(m),
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.retries > 0 {
		apiOpts = append(apiOpts, api.WithRetries(cfg.retries))
	}
	if len(cfg.retryOn) > 0 {
		apiOpts = append(apiOpts, api.WithRetryOn(cfg.retryOn))
	}
	if cfg.rateLimit > 0 {
		apiOpts = append(apiOpts, api.WithRateLimit(cfg.rateLimit, cfg.rateBurst))
	}
	if cfg.userAgent != "" {
		apiOpts = append(apiOpts, api.WithUserAgent(cfg.userAgent))
	}

	return api.New(apiKey, apiOpts...)
}

// createBackend returns the backend for the configured protocol.
func createBackend(p Protocol, apiClient *api.Client) (api.Backend, error) {
	switch p {
	case ProtocolJSON, "":
		return api.NewJSONBackend(apiClient), nil
	case ProtocolText:
		return api.NewTextBackend(apiClient), nil
	default:
		return nil, fmt.Errorf("unknown protocol %q", p)
	}
}

// New creates a new client with the given API key. No request is made;
// an invalid key surfaces as ErrBadAPIKey on the first call.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL:  defaultBaseURL,
		protocol: ProtocolJSON,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	var m *metrics.Metrics
	if cfg.registerer != nil {
		var err error
		if m, err = metrics.New(cfg.registerer); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	apiClient, err := buildAPIClient(apiKey, cfg, m)
	if err != nil {
		return nil, err
	}

	backend, err := createBackend(cfg.protocol, apiClient)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient: apiClient,
		backend:   backend,
		logger:    cfg.logger.With(zap.String("protocol", backend.Name())),
		metrics:   m,
	}, nil
}

// Protocol returns the protocol the client speaks.
func (c *Client) Protocol() Protocol {
	return Protocol(c.backend.Name())
}

// GetAvailableDomains lists the mailbox domains that can receive mail from
// fromDomain. Zones come first, then popular domains.
func (c *Client) GetAvailableDomains(ctx context.Context, fromDomain string) ([]EmailDomain, error) {
	resp, err := c.backend.GetDomains(ctx, fromDomain)
	if err != nil {
		return nil, err
	}

	domains := make([]EmailDomain, 0, len(resp.Zones)+len(resp.Popular))
	for _, d := range resp.Zones {
		domains = append(domains, domainFromInfo(d, DomainZones))
	}
	for _, d := range resp.Popular {
		domains = append(domains, domainFromInfo(d, DomainPopular))
	}
	return domains, nil
}

func domainFromInfo(d api.DomainInfo, t EmailDomainType) EmailDomain {
	count := -1
	if d.Count != nil {
		count = int(*d.Count)
	}
	return EmailDomain{Name: d.Name, Type: t, Cost: float64(d.Cost), Count: count}
}

// GetEmailActivations lists the account's activations, newest first unless
// WithSort(SortAsc) is given.
func (c *Client) GetEmailActivations(ctx context.Context, opts ...HistoryOption) ([]*EmailActivation, error) {
	cfg := &historyConfig{
		page:    defaultPage,
		perPage: defaultPerPage,
		sort:    SortDesc,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var errs []string
	if cfg.page < 1 {
		errs = append(errs, fmt.Sprintf("page must be at least 1, got %d", cfg.page))
	}
	if cfg.perPage < 1 {
		errs = append(errs, fmt.Sprintf("per page must be at least 1, got %d", cfg.perPage))
	}
	if cfg.sort != SortAsc && cfg.sort != SortDesc {
		errs = append(errs, fmt.Sprintf("sort must be %q or %q, got %q", SortAsc, SortDesc, cfg.sort))
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	entries, err := c.backend.GetMailHistory(ctx, api.HistoryParams{
		Page:    cfg.page,
		PerPage: cfg.perPage,
		Search:  cfg.search,
		Sort:    cfg.sort,
	})
	if err != nil {
		return nil, err
	}

	activations := make([]*EmailActivation, 0, len(entries))
	for _, e := range entries {
		activations = append(activations, newActivationFromHistory(e, c))
	}
	return activations, nil
}

// BuyEmailActivation buys a mailbox in domain that expects a message from
// fromDomain, e.g. "instagram.com".
func (c *Client) BuyEmailActivation(ctx context.Context, fromDomain string, domain EmailDomain) (*EmailActivation, error) {
	if strings.TrimSpace(fromDomain) == "" {
		return nil, &ValidationError{Errors: []string{"source domain is required"}}
	}
	if err := domain.validate(); err != nil {
		return nil, err
	}

	resp, err := c.backend.BuyMailActivation(ctx, fromDomain, int(domain.Type), domain.Name)
	if err != nil {
		return nil, err
	}

	activation := newActivation(int64(resp.ID), resp.Email, fromDomain, domain, c)
	c.logger.Info("bought email activation",
		zap.Int64("id", activation.id),
		zap.String("email", activation.email),
		zap.String("site", fromDomain),
		zap.String("domain", domain.Name),
	)
	return activation, nil
}

// ExportActivationToFile writes the activation to a JSON file with
// permissions 0600.
func (c *Client) ExportActivationToFile(activation *EmailActivation, filePath string) error {
	if activation == nil {
		return fmt.Errorf("activation is nil")
	}

	jsonData, err := json.MarshalIndent(activation.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal activation data: %w", err) //coverage:ignore
	}

	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// ImportActivation rebuilds an activation from exported data. The service
// is not contacted; a stale activation fails on its next remote call.
func (c *Client) ImportActivation(data *ExportedActivation) (*EmailActivation, error) {
	if data == nil {
		return nil, fmt.Errorf("exported activation data cannot be nil")
	}
	return newActivationFromExport(data, c)
}

// ImportActivationFromFile reads an activation exported with
// ExportActivationToFile.
func (c *Client) ImportActivationFromFile(filePath string) (*EmailActivation, error) {
	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var data ExportedActivation
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	return c.ImportActivation(&data)
}
