// Package gateio implements the Gate.io REST adapter: request building,
// signing, and response normalization for spot, margin, USDT-settled
// perpetual, and BTC-settled delivery markets.
package gateio

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
const Venue = string(config.VenueGate)

// Client is the Gate.io adapter. It is safe for concurrent use once markets
// are loaded; the market index is replaced wholesale, never mutated.
//
// Spot and contract instruments share native ids ("BTC_USDT" names both the
// spot pair and the perpetual), so the index keeps the two namespaces apart.
type Client struct {
	settings config.VenueSettings
	doer     transport.Doer
	now      func() time.Time

	mu           sync.RWMutex
	spotByID     map[string]schema.Market
	contractByID map[string]schema.Market
	bySymbol     map[string]schema.Market
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
		settings:     settings,
		doer:         doer,
		now:          defaultNow,
		spotByID:     map[string]schema.Market{},
		contractByID: map[string]schema.Market{},
		bySymbol:     map[string]schema.Market{},
	}
}

// SetMarkets replaces the market index. LoadMarkets calls this; tests seed it
// directly.
func (c *Client) SetMarkets(markets []schema.Market) {
	spotByID := make(map[string]schema.Market, len(markets))
	contractByID := make(map[string]schema.Market, len(markets))
	bySymbol := make(map[string]schema.Market, len(markets))
	for _, m := range markets {
		if m.Contract {
			contractByID[m.ID] = m
		} else {
			spotByID[m.ID] = m
		}
		bySymbol[m.Symbol] = m
	}
	c.mu.Lock()
	c.spotByID = spotByID
	c.contractByID = contractByID
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

// symbolForID maps a native id to its unified symbol within one namespace,
// falling back to the raw id for instruments missing from the index.
func (c *Client) symbolForID(id string, contract bool) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	table := c.spotByID
	if contract {
		table = c.contractByID
	}
	if m, ok := table[id]; ok {
		return m.Symbol
	}
	return id
}

// settleFor resolves the settlement path parameter for a contract market; the
// configured default (then "usdt" for swaps, "btc" for futures) applies when
// no market is at hand.
func (c *Client) settleFor(market schema.Market) string {
	if market.SettleID != "" {
		return strings.ToLower(market.SettleID)
	}
	return c.defaultSettle(market.Type)
}

func (c *Client) defaultSettle(marketType schema.MarketType) string {
	if s := strings.ToLower(strings.TrimSpace(c.settings.DefaultSettle)); s != "" {
		return s
	}
	if marketType == schema.MarketFuture {
		return "btc"
	}
	return "usdt"
}

// call signs, executes, and classifies one request, returning the raw body on
// success. Gate bodies are arrays for list endpoints and objects elsewhere,
// so decoding is left to the callers.
func (c *Client) call(ctx context.Context, name string, pathParams, query map[string]string, body map[string]any) ([]byte, error) {
	req, err := c.buildRequest(name, pathParams, query, body)
	if err != nil {
		return nil, err
	}
	raw, status, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := classify(status, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// callObject is call for endpoints that answer with a single JSON object.
func (c *Client) callObject(ctx context.Context, name string, pathParams, query map[string]string, body map[string]any) (shared.Payload, error) {
	raw, err := c.call(ctx, name, pathParams, query, body)
	if err != nil {
		return nil, err
	}
	payload, err := shared.DecodeObject(raw)
	if err != nil {
		return nil, errs.New(Venue, errs.CodeExchange,
			errs.WithMessage("undecodable response"),
			errs.WithRawMessage(truncateRaw(raw)),
			errs.WithCause(err))
	}
	return payload, nil
}

// callList is call for endpoints that answer with a JSON array.
func (c *Client) callList(ctx context.Context, name string, pathParams, query map[string]string) ([]any, error) {
	raw, err := c.call(ctx, name, pathParams, query, nil)
	if err != nil {
		return nil, err
	}
	rows, err := shared.DecodeList(raw)
	if err != nil {
		return nil, errs.New(Venue, errs.CodeExchange,
			errs.WithMessage("undecodable response"),
			errs.WithRawMessage(truncateRaw(raw)),
			errs.WithCause(err))
	}
	return rows, nil
}
