package smsactivate

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/smsactivate/email-go/internal/api"
	"github.com/smsactivate/email-go/internal/delivery"
)

// Protocol selects the response format spoken with the service.
type Protocol string

const (
	// ProtocolJSON uses the JSON envelope responses. It supports every operation.
	ProtocolJSON Protocol = "json"
	// ProtocolText uses the colon separated text responses. Domain and
	// history listings are not available with it.
	ProtocolText Protocol = "text"
)

// Sort orders for GetEmailActivations.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	defaultBaseURL = api.DefaultBaseURL
	defaultTimeout = api.DefaultTimeout

	defaultPage    = 1
	defaultPerPage = 10
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	protocol   Protocol
	timeout    time.Duration
	retries    int
	retryOn    []int
	rateLimit  float64
	rateBurst  int
	userAgent  string
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// pollConfig holds configuration for GetText.
type pollConfig struct {
	period   time.Duration
	attempts int
	wait     delivery.WaitFunc
}

// historyConfig holds the GetEmailActivations query.
type historyConfig struct {
	page    int
	perPage int
	search  string
	sort    string
}

// Option configures the client.
type Option func(*clientConfig)

// PollOption configures GetText.
type PollOption func(*pollConfig)

// HistoryOption configures GetEmailActivations.
type HistoryOption func(*historyConfig)

// WithBaseURL sets the handler endpoint URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithProtocol selects the response format. Default: ProtocolJSON
func WithProtocol(p Protocol) Option {
	return func(c *clientConfig) {
		c.protocol = p
	}
}

// WithTimeout sets the per-request HTTP timeout. Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries enables retries of failed HTTP requests.
// Retries are off by default, so one poll attempt issues one request.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithRateLimit caps outgoing requests at rps per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *clientConfig) {
		c.rateLimit = rps
		c.rateBurst = burst
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger. The client logs nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithMetrics registers request and poll metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}

// WithPeriod sets the pause between poll attempts. Default: 5 seconds
func WithPeriod(period time.Duration) PollOption {
	return func(c *pollConfig) {
		c.period = period
	}
}

// WithAttempts sets the maximum number of status checks. Default: 10
func WithAttempts(attempts int) PollOption {
	return func(c *pollConfig) {
		c.attempts = attempts
	}
}

// WithWaitFunc replaces the pause between attempts, typically with a fake
// clock in tests. fn should return ctx.Err() when ctx is done.
func WithWaitFunc(fn func(ctx context.Context, d time.Duration) error) PollOption {
	return func(c *pollConfig) {
		c.wait = fn
	}
}

// WithPage selects the history page, starting at 1.
func WithPage(page int) HistoryOption {
	return func(c *historyConfig) {
		c.page = page
	}
}

// WithPerPage sets the number of activations per page.
func WithPerPage(perPage int) HistoryOption {
	return func(c *historyConfig) {
		c.perPage = perPage
	}
}

// WithSearch filters history by mailbox email.
func WithSearch(email string) HistoryOption {
	return func(c *historyConfig) {
		c.search = email
	}
}

// WithSort sets the order by activation id, SortAsc or SortDesc.
func WithSort(order string) HistoryOption {
	return func(c *historyConfig) {
		c.sort = order
	}
}
