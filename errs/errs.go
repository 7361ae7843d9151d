// Package errs provides the structured error envelope shared by all venue adapters.
package errs

import (
	"strconv"
	"strings"
)

// Code identifies the unified error category a venue failure maps to.
type Code string

const (
	// CodeAuth indicates a bad or missing signature or credential.
	CodeAuth Code = "authentication"
	// CodePermission indicates the credential lacks the required permission.
	CodePermission Code = "permission_denied"
	// CodeRateLimited indicates that the request exceeded rate limits.
	CodeRateLimited Code = "rate_limited"
	// CodeBadRequest indicates a malformed or missing parameter.
	CodeBadRequest Code = "bad_request"
	// CodeBadSymbol indicates an unknown or unsupported market.
	CodeBadSymbol Code = "bad_symbol"
	// CodeInvalidOrder indicates a violation of venue order-placement rules.
	CodeInvalidOrder Code = "invalid_order"
	// CodeOrderNotFound indicates the referenced order does not exist.
	CodeOrderNotFound Code = "order_not_found"
	// CodeInsufficientFunds indicates the account balance cannot cover the request.
	CodeInsufficientFunds Code = "insufficient_funds"
	// CodeUnavailable indicates venue-side maintenance or network unavailability.
	CodeUnavailable Code = "unavailable"
	// CodeAccountSuspended indicates the account is frozen or suspended.
	CodeAccountSuspended Code = "account_suspended"
	// CodeNotSupported indicates the venue does not offer the requested capability.
	CodeNotSupported Code = "not_supported"
	// CodeExchange is the unclassified fallback for venue-signalled failures.
	CodeExchange Code = "exchange_error"
)

// E captures structured error information produced by the adapter layer.
type E struct {
	Venue   string
	Code    Code
	HTTP    int
	RawCode string
	RawMsg  string
	Message string

	cause error
}

// Option configures an error envelope.
type Option func(*E)

// New constructs an error envelope for the venue and error code.
func New(venue string, code Code, opts ...Option) *E {
	e := &E{
		Venue: strings.TrimSpace(venue),
		Code:  code,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// WithMessage attaches a human-readable message to the error.
func WithMessage(message string) Option {
	trimmed := strings.TrimSpace(message)
	return func(e *E) {
		e.Message = trimmed
	}
}

// WithHTTP records the associated HTTP status code.
func WithHTTP(status int) Option {
	return func(e *E) {
		e.HTTP = status
	}
}

// WithRawCode captures the raw venue error code.
func WithRawCode(code string) Option {
	trimmed := strings.TrimSpace(code)
	return func(e *E) {
		e.RawCode = trimmed
	}
}

// WithRawMessage captures the raw venue error message or body fragment.
func WithRawMessage(msg string) Option {
	return func(e *E) {
		e.RawMsg = msg
	}
}

// WithCause sets the underlying cause error.
func WithCause(err error) Option {
	return func(e *E) {
		e.cause = err
	}
}

func (e *E) Error() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string

	venue := strings.TrimSpace(e.Venue)
	if venue == "" {
		venue = "unknown"
	}
	parts = append(parts, "venue="+venue)

	code := strings.TrimSpace(string(e.Code))
	if code == "" {
		code = string(CodeExchange)
	}
	parts = append(parts, "code="+code)

	if e.HTTP > 0 {
		parts = append(parts, "http="+strconv.Itoa(e.HTTP))
	}
	if e.Message != "" {
		parts = append(parts, "message="+strconv.Quote(e.Message))
	}
	if e.RawCode != "" {
		parts = append(parts, "raw_code="+strconv.Quote(e.RawCode))
	}
	if e.RawMsg != "" {
		parts = append(parts, "raw_msg="+strconv.Quote(e.RawMsg))
	}
	if e.cause != nil {
		parts = append(parts, "cause="+strconv.Quote(e.cause.Error()))
	}

	return strings.Join(parts, " ")
}

func (e *E) Unwrap() error { return e.cause }

// Is reports whether target is an *E carrying the same unified code.
func (e *E) Is(target error) bool {
	other, ok := target.(*E)
	if !ok {
		return false
	}
	return e != nil && e.Code == other.Code
}

// CodeOf extracts the unified code from err, or CodeExchange when err is not an *E.
func CodeOf(err error) Code {
	if e, ok := err.(*E); ok && e != nil {
		return e.Code
	}
	return CodeExchange
}

// NotSupported returns a standardized error for unsupported capabilities.
func NotSupported(venue, msg string) *E {
	return New(venue, CodeNotSupported, WithMessage(msg))
}
