package gateio

import (
	"context"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/numeric"
	"github.com/venuekit/venuekit/internal/schema"
)

// FetchTicker returns the 24h snapshot for one market. The venue answers list
// endpoints even when filtered to a single instrument.
func (c *Client) FetchTicker(ctx context.Context, symbol string) (schema.Ticker, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.Ticker{}, err
	}
	var rows []any
	switch market.Type {
	case schema.MarketSpot, schema.MarketMargin:
		rows, err = c.callList(ctx, routeSpotTickers, nil, map[string]string{"currency_pair": market.ID})
	case schema.MarketSwap:
		rows, err = c.callList(ctx, routeFuturesTickers,
			map[string]string{"settle": c.settleFor(market)},
			map[string]string{"contract": market.ID})
	case schema.MarketFuture:
		rows, err = c.callList(ctx, routeDeliveryTickers,
			map[string]string{"settle": c.settleFor(market)},
			map[string]string{"contract": market.ID})
	default:
		return schema.Ticker{}, errs.NotSupported(Venue, "ticker for "+string(market.Type)+" markets")
	}
	if err != nil {
		return schema.Ticker{}, err
	}
	if len(rows) == 0 {
		return schema.Ticker{}, errs.New(Venue, errs.CodeExchange, errs.WithMessage("no ticker for "+symbol))
	}
	entry, ok := shared.AsPayload(rows[0])
	if !ok {
		return schema.Ticker{}, errs.New(Venue, errs.CodeExchange, errs.WithMessage("malformed ticker for "+symbol))
	}
	return c.parseTicker(entry), nil
}

// FetchTickers returns snapshots for every market of the configured default
// type.
func (c *Client) FetchTickers(ctx context.Context) ([]schema.Ticker, error) {
	var (
		rows []any
		err  error
	)
	switch schema.MarketType(c.settings.DefaultType) {
	case schema.MarketSwap:
		rows, err = c.callList(ctx, routeFuturesTickers,
			map[string]string{"settle": c.defaultSettle(schema.MarketSwap)}, nil)
	case schema.MarketFuture:
		rows, err = c.callList(ctx, routeDeliveryTickers,
			map[string]string{"settle": c.defaultSettle(schema.MarketFuture)}, nil)
	default:
		rows, err = c.callList(ctx, routeSpotTickers, nil, nil)
	}
	if err != nil {
		return nil, err
	}
	out := make([]schema.Ticker, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		out = append(out, c.parseTicker(entry))
	}
	return out, nil
}

// parseTicker normalizes the spot shape (currency_pair, lowest_ask,
// highest_bid, base_volume) and the contract shape (contract,
// volume_24h_base/quote). Thin contracts report the literal "nan" for
// volumes; that sentinel reads as zero. A missing quote volume is derived
// from the base volume at the last price.
func (c *Client) parseTicker(ticker shared.Payload) schema.Ticker {
	_, isContract := ticker["contract"]
	marketID := ticker.StringOr("", "currency_pair", "contract")
	last := ticker.StringOr("", "last")
	baseVolume := ticker.StringOr("", "base_volume", "volume_24h_base")
	if baseVolume == "nan" {
		baseVolume = "0"
	}
	quoteVolume := ticker.StringOr("", "quote_volume", "volume_24h_quote")
	if quoteVolume == "nan" {
		quoteVolume = "0"
	}
	if quoteVolume == "" && baseVolume != "" && last != "" {
		quoteVolume = numeric.Mul(baseVolume, last)
	}
	return schema.Ticker{
		Symbol:      c.symbolForID(marketID, isContract),
		High:        ticker.StringOr("", "high_24h"),
		Low:         ticker.StringOr("", "low_24h"),
		Bid:         ticker.StringOr("", "highest_bid"),
		Ask:         ticker.StringOr("", "lowest_ask"),
		Close:       last,
		Last:        last,
		Percentage:  ticker.StringOr("", "change_percentage"),
		Average:     ticker.StringOr("", "index_price"),
		BaseVolume:  baseVolume,
		QuoteVolume: quoteVolume,
		Raw:         ticker,
	}
}
