package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
)

func TestDoReturnsBodyAndStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "value", r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"code":1000}`))
	}))
	defer server.Close()

	client := New(Options{Venue: "bitmart", Timeout: time.Second})
	body, status, err := client.Do(context.Background(), &shared.SignedRequest{
		Venue:   "bitmart",
		Route:   "spot/v1/symbols",
		URL:     server.URL,
		Method:  http.MethodGet,
		Headers: map[string]string{"X-Test": "value"},
		Weight:  1,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"code":1000}`, string(body))
}

func TestDoPassesThroughErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":50020,"message":"Balance not enough"}`))
	}))
	defer server.Close()

	client := New(Options{Venue: "bitmart"})
	body, status, err := client.Do(context.Background(), &shared.SignedRequest{
		URL:    server.URL,
		Method: http.MethodPost,
		Body:   []byte(`{}`),
	})
	require.NoError(t, err, "non-2xx is not a transport failure")
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, string(body), "50020")
}

func TestDoRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	defer server.Close()

	client := New(Options{Venue: "gateio", MaxAttempts: 3})
	body, _, err := client.Do(context.Background(), &shared.SignedRequest{
		URL:    server.URL,
		Method: http.MethodGet,
	})
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
	require.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestDoGivesUpAsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	defer server.Close()

	client := New(Options{Venue: "gateio", MaxAttempts: 2})
	_, _, err := client.Do(context.Background(), &shared.SignedRequest{
		URL:    server.URL,
		Method: http.MethodGet,
	})
	require.Error(t, err)
	require.Equal(t, errs.CodeUnavailable, errs.CodeOf(err))
}

func TestNilRequestRejected(t *testing.T) {
	client := New(Options{Venue: "bitmart"})
	_, _, err := client.Do(context.Background(), nil)
	require.Error(t, err)
	require.Equal(t, errs.CodeBadRequest, errs.CodeOf(err))
}
