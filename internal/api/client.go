package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/smsactivate/email-go/internal/apierrors"
	"github.com/smsactivate/email-go/internal/metrics"
)

const (
	// DefaultBaseURL is the SMS-Activate handler endpoint.
	DefaultBaseURL = "https://api.sms-activate.org/stubs/handler_api.php"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies this client to the service.
	DefaultUserAgent = "smsactivate-email-go/0.1"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20
)

// Config holds the API client settings.
type Config struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
	// MaxRetries is the number of retries for retryable statuses; 0 disables retries.
	MaxRetries int
	// RetryDelay is the base delay between retries.
	RetryDelay time.Duration
	// RetryOn lists the status codes that trigger a retry. Defaults to
	// [DefaultRetryConfig] when empty.
	RetryOn []int
	// RateLimit is the maximum number of requests per second; 0 means unlimited.
	RateLimit float64
	// RateBurst is the limiter burst size. Defaults to 1.
	RateBurst int
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	retry      *RetryConfig
	limiter    *rate.Limiter
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a new API client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	if cfg.MaxRetries > 0 {
		c.retry = DefaultRetryConfig()
		c.retry.MaxRetries = cfg.MaxRetries
		if cfg.RetryDelay > 0 {
			c.retry.BaseDelay = cfg.RetryDelay
		}
		if len(cfg.RetryOn) > 0 {
			c.retry.RetryableOn = statusSet(cfg.RetryOn)
		}
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return c, nil
}

// Option configures the API client.
type Option func(*Config)

// WithBaseURL sets the base URL.
func WithBaseURL(u string) Option {
	return func(c *Config) {
		c.BaseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if c.HTTPClient == nil {
			c.HTTPClient = &http.Client{}
		}
		c.HTTPClient.Timeout = timeout
	}
}

// WithRetries sets the number of retries.
func WithRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// WithRetryOn sets the status codes that trigger a retry.
func WithRetryOn(statusCodes []int) Option {
	return func(c *Config) {
		c.RetryOn = statusCodes
	}
}

// WithRateLimit limits outgoing requests to rps per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Config) {
		c.RateLimit = rps
		c.RateBurst = burst
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// New creates a new API client with the default base URL.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := Config{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs action with params and returns the raw response body.
// The body is only returned for 200 responses.
func (c *Client) Get(ctx context.Context, action string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	query := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	query.Set("api_key", c.apiKey)
	query.Set("action", action)

	endpoint := c.baseURL
	if strings.Contains(endpoint, "?") {
		endpoint += "&" + query.Encode()
	} else {
		endpoint += "?" + query.Encode()
	}

	requestID := uuid.NewString()
	logger := c.logger.With(zap.String("action", action), zap.String("request_id", requestID))

	start := time.Now()
	body, err := c.doWithRetry(ctx, endpoint, requestID, logger)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = outcomeOf(err)
		logger.Debug("request failed", zap.Duration("duration", elapsed), zap.Error(err))
	} else {
		logger.Debug("request completed", zap.Duration("duration", elapsed), zap.Int("bytes", len(body)))
	}
	c.metrics.ObserveRequest(action, outcome, elapsed)

	return body, err
}

func (c *Client) doWithRetry(ctx context.Context, endpoint, requestID string, logger *zap.Logger) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		body, status, err := c.doOnce(ctx, endpoint, requestID)
		if err == nil {
			return body, nil
		}
		if c.retry == nil || ctx.Err() != nil {
			return nil, err
		}

		var netErr *apierrors.NetworkError
		retryable := errors.As(err, &netErr) && attempt < c.retry.MaxRetries
		if status != 0 {
			retryable = c.retry.ShouldRetry(attempt, status)
		}
		if !retryable {
			return nil, err
		}

		logger.Debug("retrying request", zap.Int("attempt", attempt+1), zap.Error(err))
		if werr := c.retry.Wait(ctx, attempt); werr != nil {
			return nil, werr
		}
	}
}

// doOnce issues one request. status is non-zero when a response was received.
func (c *Client) doOnce(ctx context.Context, endpoint, requestID string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, &apierrors.NetworkError{Err: err, URL: c.baseURL}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, &apierrors.NetworkError{Err: err, URL: c.baseURL}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, &apierrors.StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return body, resp.StatusCode, nil
}

func outcomeOf(err error) string {
	var statusErr *apierrors.StatusError
	var netErr *apierrors.NetworkError
	switch {
	case errors.As(err, &statusErr):
		return "bad_status"
	case errors.As(err, &netErr):
		return "network_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

func statusSet(codes []int) func(int) bool {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return func(statusCode int) bool {
		_, ok := set[statusCode]
		return ok
	}
}
