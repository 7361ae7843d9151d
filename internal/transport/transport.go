// Package transport executes signed venue requests over HTTP with weighted
// rate limiting. Building, signing, and parsing stay in the adapter layer;
// everything network-shaped lives here.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/observability"
)

// bodyLimit caps how much of a response is read into memory.
const bodyLimit = 4 << 20

// Doer executes one prepared request and returns the raw response body and
// HTTP status. Classification of venue-signalled failures is the caller's job.
type Doer interface {
	Do(ctx context.Context, req *shared.SignedRequest) ([]byte, int, error)
}

// Options configures a Client.
type Options struct {
	Venue            string
	Timeout          time.Duration
	WeightsPerSecond float64
	Burst            int
	MaxAttempts      int
	HTTPClient       *http.Client
}

// Client is the default Doer: it charges the request's rate weight against a
// shared limiter, then performs the call, retrying transient network failures
// with exponential backoff. Venue-signalled errors are never retried here.
type Client struct {
	venue       string
	http        *http.Client
	limiter     *rate.Limiter
	maxAttempts int
}

// New constructs a transport client for one venue.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	perSecond := opts.WeightsPerSecond
	if perSecond <= 0 {
		perSecond = 10
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = int(perSecond)
		if burst < 1 {
			burst = 1
		}
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		venue:       strings.TrimSpace(opts.Venue),
		http:        httpClient,
		limiter:     rate.NewLimiter(rate.Limit(perSecond), burst),
		maxAttempts: attempts,
	}
}

// Do executes the request. The returned body is complete up to 4 MiB; the
// status code is returned even for non-2xx responses so the adapter's error
// classifier can inspect the payload.
func (c *Client) Do(ctx context.Context, req *shared.SignedRequest) ([]byte, int, error) {
	if req == nil {
		return nil, 0, errs.New(c.venue, errs.CodeBadRequest, errs.WithMessage("nil request"))
	}
	weight := req.Weight
	if weight < 1 {
		weight = 1
	}
	if err := c.limiter.WaitN(ctx, weight); err != nil {
		return nil, 0, errs.New(c.venue, errs.CodeUnavailable, errs.WithMessage("rate limiter wait aborted"), errs.WithCause(err))
	}

	started := time.Now()
	body, status, err := c.attempt(ctx, req)
	latency := float64(time.Since(started).Microseconds()) / 1000.0
	observability.Metrics().ObserveRequest(ctx, c.venue, req.Route, latency, err != nil)
	if err != nil {
		return nil, status, err
	}
	observability.Log().Debug("venue request",
		observability.F("venue", c.venue),
		observability.F("route", req.Route),
		observability.F("status", status),
		observability.F("latency_ms", latency),
	)
	return body, status, nil
}

func (c *Client) attempt(ctx context.Context, req *shared.SignedRequest) ([]byte, int, error) {
	backoffCfg := backoff.NewExponentialBackOff()
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			sleep := backoffCfg.NextBackOff()
			timer := time.NewTimer(sleep)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, 0, errs.New(c.venue, errs.CodeUnavailable, errs.WithMessage("request canceled"), errs.WithCause(ctx.Err()))
			case <-timer.C:
			}
		}
		body, status, err := c.roundTrip(ctx, req)
		if err == nil {
			return body, status, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		observability.Log().Warn("venue request retry",
			observability.F("venue", c.venue),
			observability.F("route", req.Route),
			observability.F("attempt", attempt+1),
			observability.F("error", err.Error()),
		)
	}
	return nil, 0, errs.New(c.venue, errs.CodeUnavailable, errs.WithMessage("transport exhausted retries"), errs.WithCause(lastErr))
}

func (c *Client) roundTrip(ctx context.Context, req *shared.SignedRequest) ([]byte, int, error) {
	var reader io.Reader
	if len(req.Body) > 0 {
		reader = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, reader)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
