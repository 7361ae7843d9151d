// Package adapters exposes the built-in venue integrations behind one
// constructor and a venue-agnostic client surface.
package adapters

import (
	"context"

	"github.com/venuekit/venuekit/config"
	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/bitmart"
	"github.com/venuekit/venuekit/internal/adapters/gateio"
	"github.com/venuekit/venuekit/internal/schema"
	"github.com/venuekit/venuekit/internal/transport"
)

// OrderParams is the venue-agnostic form of the per-venue order options.
// Fields a venue cannot honour produce a NotSupported error rather than being
// silently dropped.
type OrderParams struct {
	ClientOrderID string
	TimeInForce   schema.TimeInForce
	PostOnly      bool
	ReduceOnly    bool
	MarginMode    schema.MarginMode
	TriggerPrice  string
	Cost          string
	Leverage      string
}

// TransferParams names the two account types money moves between. Symbol is
// required by venues whose isolated-margin wallets are per-market.
type TransferParams struct {
	FromAccount string
	ToAccount   string
	Symbol      string
}

// Client is the unified operation surface every venue adapter provides.
type Client interface {
	LoadMarkets(ctx context.Context) ([]schema.Market, error)
	Markets() []schema.Market
	FetchCurrencies(ctx context.Context) (map[string]schema.Currency, error)
	FetchTicker(ctx context.Context, symbol string) (schema.Ticker, error)
	FetchTickers(ctx context.Context) ([]schema.Ticker, error)
	FetchBalance(ctx context.Context, marketType schema.MarketType) (schema.Balance, error)
	FetchPositions(ctx context.Context, symbol string) ([]schema.Position, error)
	FetchFundingRate(ctx context.Context, symbol string) (schema.FundingRate, error)
	CreateOrder(ctx context.Context, symbol string, orderType schema.OrderType, side schema.OrderSide, amount, price string, params OrderParams) (schema.Order, error)
	CancelOrder(ctx context.Context, symbol, id string) (schema.Order, error)
	FetchOrder(ctx context.Context, symbol, id, clientOrderID string) (schema.Order, error)
	FetchMyTrades(ctx context.Context, symbol string, limit int) ([]schema.Trade, error)
	Transfer(ctx context.Context, code, amount string, params TransferParams) (schema.Transfer, error)
	FetchLedger(ctx context.Context, code string, limit int) ([]schema.LedgerEntry, error)
}

// New constructs the adapter for venue. A nil doer builds a production
// transport from the settings.
func New(venue config.Venue, settings config.VenueSettings, doer transport.Doer) (Client, error) {
	switch venue {
	case config.VenueBitmart:
		return bitmartClient{Client: bitmart.New(settings, doer)}, nil
	case config.VenueGate:
		return gateClient{Client: gateio.New(settings, doer)}, nil
	default:
		return nil, errs.New(string(venue), errs.CodeNotSupported, errs.WithMessage("unknown venue "+string(venue)))
	}
}

type bitmartClient struct {
	*bitmart.Client
}

func (c bitmartClient) CreateOrder(ctx context.Context, symbol string, orderType schema.OrderType, side schema.OrderSide, amount, price string, params OrderParams) (schema.Order, error) {
	return c.Client.CreateOrder(ctx, symbol, orderType, side, amount, price, bitmart.OrderOptions{
		ClientOrderID: params.ClientOrderID,
		TimeInForce:   params.TimeInForce,
		PostOnly:      params.PostOnly,
		ReduceOnly:    params.ReduceOnly,
		MarginMode:    params.MarginMode,
		TriggerPrice:  params.TriggerPrice,
		Cost:          params.Cost,
		Leverage:      params.Leverage,
	})
}

func (c bitmartClient) CancelOrder(ctx context.Context, symbol, id string) (schema.Order, error) {
	return c.Client.CancelOrder(ctx, symbol, id, false)
}

func (c bitmartClient) Transfer(ctx context.Context, code, amount string, params TransferParams) (schema.Transfer, error) {
	return c.Client.Transfer(ctx, code, amount, bitmart.TransferOptions{
		FromAccount: params.FromAccount,
		ToAccount:   params.ToAccount,
	})
}

type gateClient struct {
	*gateio.Client
}

func (c gateClient) CreateOrder(ctx context.Context, symbol string, orderType schema.OrderType, side schema.OrderSide, amount, price string, params OrderParams) (schema.Order, error) {
	if params.TriggerPrice != "" {
		return schema.Order{}, errs.NotSupported(gateio.Venue, "trigger orders")
	}
	if params.Leverage != "" {
		return schema.Order{}, errs.NotSupported(gateio.Venue, "per-order leverage")
	}
	return c.Client.CreateOrder(ctx, symbol, orderType, side, amount, price, gateio.OrderOptions{
		ClientOrderID: params.ClientOrderID,
		TimeInForce:   params.TimeInForce,
		PostOnly:      params.PostOnly,
		ReduceOnly:    params.ReduceOnly,
		MarginMode:    params.MarginMode,
		Cost:          params.Cost,
	})
}

func (c gateClient) Transfer(ctx context.Context, code, amount string, params TransferParams) (schema.Transfer, error) {
	return c.Client.Transfer(ctx, code, amount, gateio.TransferOptions{
		FromAccount: params.FromAccount,
		ToAccount:   params.ToAccount,
		Symbol:      params.Symbol,
	})
}
