// Package bitmart implements the BitMart REST adapter: request building,
// signing, and response normalization for spot, isolated margin, and USDT-M
// perpetual markets.
package bitmart

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/venuekit/venuekit/config"
	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/schema"
	"github.com/venuekit/venuekit/internal/transport"
)

// Venue is the identifier stamped on every record and error this adapter emits.
const Venue = string(config.VenueBitmart)

// Client is the BitMart adapter. It is safe for concurrent use once markets
// are loaded; the market index is replaced wholesale, never mutated.
type Client struct {
	settings config.VenueSettings
	doer     transport.Doer
	now      func() time.Time

	mu       sync.RWMutex
	byID     map[string]schema.Market
	bySymbol map[string]schema.Market
}

// New constructs a Client from venue settings. When doer is nil a transport
// client is built from the settings' timeout and rate budget.
func New(settings config.VenueSettings, doer transport.Doer) *Client {
	if doer == nil {
		doer = transport.New(transport.Options{
			Venue:            Venue,
			Timeout:          settings.HTTPTimeout,
			WeightsPerSecond: settings.WeightsPerSecond,
		})
	}
	return &Client{
		settings: settings,
		doer:     doer,
		now:      defaultNow,
		byID:     map[string]schema.Market{},
		bySymbol: map[string]schema.Market{},
	}
}

// SetMarkets replaces the market index. LoadMarkets calls this; tests seed it
// directly.
func (c *Client) SetMarkets(markets []schema.Market) {
	byID := make(map[string]schema.Market, len(markets))
	bySymbol := make(map[string]schema.Market, len(markets))
	for _, m := range markets {
		byID[m.ID] = m
		bySymbol[m.Symbol] = m
	}
	c.mu.Lock()
	c.byID = byID
	c.bySymbol = bySymbol
	c.mu.Unlock()
}

// LoadMarkets fetches and indexes all markets. It must run once before any
// symbol-taking operation.
func (c *Client) LoadMarkets(ctx context.Context) ([]schema.Market, error) {
	markets, err := c.FetchMarkets(ctx)
	if err != nil {
		return nil, err
	}
	c.SetMarkets(markets)
	return markets, nil
}

// Markets returns the indexed markets in no particular order.
func (c *Client) Markets() []schema.Market {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]schema.Market, 0, len(c.bySymbol))
	for _, m := range c.bySymbol {
		out = append(out, m)
	}
	return out
}

func (c *Client) market(symbol string) (schema.Market, error) {
	c.mu.RLock()
	m, ok := c.bySymbol[symbol]
	c.mu.RUnlock()
	if !ok {
		return schema.Market{}, errs.New(Venue, errs.CodeBadSymbol, errs.WithMessage("unknown symbol "+symbol))
	}
	return m, nil
}

// marketByID resolves a native id back to a unified market. Spot ids carry an
// underscore ("BTC_USDT"), contract ids do not ("BTCUSDT"), so the two
// namespaces never collide.
func (c *Client) marketByID(id string) (schema.Market, bool) {
	c.mu.RLock()
	m, ok := c.byID[id]
	c.mu.RUnlock()
	return m, ok
}

// symbolForID maps a native id to its unified symbol, falling back to the raw
// id for instruments missing from the index.
func (c *Client) symbolForID(id string) string {
	if m, ok := c.marketByID(id); ok {
		return m.Symbol
	}
	return id
}

// call signs, executes, and classifies one request, returning the decoded
// response envelope on success.
func (c *Client) call(ctx context.Context, name string, params map[string]string, body map[string]any) (shared.Payload, error) {
	req, err := c.buildRequest(name, params, body)
	if err != nil {
		return nil, err
	}
	raw, status, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := shared.DecodeObject(raw)
	if err != nil {
		return nil, errs.New(Venue, errs.CodeExchange,
			errs.WithHTTP(status),
			errs.WithMessage("undecodable response"),
			errs.WithRawMessage(truncateRaw(raw)),
			errs.WithCause(err))
	}
	if err := classify(status, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func truncateRaw(raw []byte) string {
	const max = 512
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max]
	}
	return s
}
