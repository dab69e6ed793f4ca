// Package api provides HTTP client functionality for communicating with the
// SMS-Activate email API. It handles authentication, query encoding, response
// parsing and optional retry logic for transient failures.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit, type-safe setup.
//   - [New]: Functional options pattern for flexible configuration.
//
// The API key is sent as the api_key query parameter on every request, next
// to the action name and its parameters.
//
// # Protocols
//
// The service answers in one of two shapes. [JSONBackend] speaks the JSON
// envelope ({"status":"OK","response":{...}}) and supports every action.
// [TextBackend] speaks the colon separated text responses
// (ACCESS_EMAIL:id:email, STATUS_OK:message) and supports the mailbox
// lifecycle actions only. Both satisfy [Backend].
//
// # Retry Behavior
//
// Retries are disabled by default so that one logical call issues exactly
// one HTTP request. When enabled with [WithRetries], requests are retried
// with exponential backoff for these HTTP status codes:
//
//   - 408 Request Timeout
//   - 429 Too Many Requests
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// # Error Handling
//
// Service error codes (BAD_KEY, NO_ACTIVATION, ...) are returned as
// *apierrors.APIError values that match the sentinels in package apierrors
// through errors.Is. Non-200 responses become *apierrors.StatusError,
// unparsable bodies *apierrors.DecodeError and transport failures
// *apierrors.NetworkError.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
