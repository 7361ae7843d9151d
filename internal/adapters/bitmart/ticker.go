package bitmart

import (
	"context"
	"strconv"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/numeric"
	"github.com/venuekit/venuekit/internal/schema"
)

// FetchTicker returns the 24h snapshot for one spot or swap market.
func (c *Client) FetchTicker(ctx context.Context, symbol string) (schema.Ticker, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.Ticker{}, err
	}
	params := map[string]string{"symbol": market.ID}
	switch market.Type {
	case schema.MarketSpot:
		payload, err := c.call(ctx, routeSpotTicker, params, nil)
		if err != nil {
			return schema.Ticker{}, err
		}
		data, _ := payload.Object("data")
		return c.parseTicker(data), nil
	case schema.MarketSwap, schema.MarketFuture:
		payload, err := c.call(ctx, routeContractDetails, params, nil)
		if err != nil {
			return schema.Ticker{}, err
		}
		data, _ := payload.Object("data")
		rows, _ := data.List("symbols")
		if len(rows) == 0 {
			return schema.Ticker{}, errs.New(Venue, errs.CodeExchange, errs.WithMessage("no ticker for "+symbol))
		}
		entry, _ := shared.AsPayload(rows[0])
		return c.parseTicker(entry), nil
	default:
		return schema.Ticker{}, errs.NotSupported(Venue, "ticker for "+string(market.Type)+" markets")
	}
}

// FetchTickers returns snapshots for every market of the configured default
// type. Spot tickers arrive as positional arrays, contract tickers as keyed
// detail records; both funnel through parseTicker.
func (c *Client) FetchTickers(ctx context.Context) ([]schema.Ticker, error) {
	if c.settings.DefaultType == string(schema.MarketSwap) {
		payload, err := c.call(ctx, routeContractDetails, nil, nil)
		if err != nil {
			return nil, err
		}
		data, _ := payload.Object("data")
		rows, _ := data.List("symbols")
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

	payload, err := c.call(ctx, routeSpotTickers, nil, nil)
	if err != nil {
		return nil, err
	}
	rows, _ := payload.List("data")
	out := make([]schema.Ticker, 0, len(rows))
	for _, row := range rows {
		list, ok := row.([]any)
		if !ok {
			continue
		}
		out = append(out, c.parseTicker(shared.Payload{"result": list}))
	}
	return out, nil
}

// FetchTrades returns recent public fills for one spot market, newest first
// as the venue reports them. Contract markets have no public trade endpoint.
func (c *Client) FetchTrades(ctx context.Context, symbol string, limit int) ([]schema.Trade, error) {
	market, err := c.market(symbol)
	if err != nil {
		return nil, err
	}
	if market.Type != schema.MarketSpot {
		return nil, errs.NotSupported(Venue, "public trades for "+string(market.Type)+" markets")
	}
	params := map[string]string{"symbol": market.ID}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	payload, err := c.call(ctx, routeSpotTrades, params, nil)
	if err != nil {
		return nil, err
	}
	rows, _ := payload.List("data")
	out := make([]schema.Trade, 0, len(rows))
	for _, row := range rows {
		list, ok := row.([]any)
		if !ok {
			continue
		}
		out = append(out, c.parsePublicTrade(market, list))
	}
	return out, nil
}

// parsePublicTrade normalizes one positional public fill:
// index 0 symbol, 1 timestamp, 2 price, 3 size, 4 side.
func (c *Client) parsePublicTrade(market schema.Market, row []any) schema.Trade {
	symbol := market.Symbol
	if id, ok := shared.StringAt(row, 0); ok && id != "" {
		symbol = c.symbolForID(id)
	}
	timestamp, _ := shared.Int64At(row, 1)
	price, _ := shared.StringAt(row, 2)
	amount, _ := shared.StringAt(row, 3)
	side, _ := shared.StringAt(row, 4)
	return schema.Trade{
		Symbol:    symbol,
		Timestamp: timestamp,
		Side:      parseOrderSide(side),
		Price:     price,
		Amount:    amount,
		Raw:       shared.Payload{"result": row},
	}
}

// parseTicker normalizes both ticker shapes the venue emits.
//
// The keyed shape is the single-symbol spot ticker or a contract detail
// record. The positional shape arrives under "result":
// index 0 symbol, 1 last, 2 base volume, 3 quote volume, 4 open, 5 high,
// 6 low, 7 change, 8 bid, 9 bid size, 10 ask, 11 ask size, 12 timestamp.
// The shape is resolved once here; field extraction never branches again.
func (c *Client) parseTicker(ticker shared.Payload) schema.Ticker {
	var (
		marketID    = ticker.StringOr("", "symbol", "contract_symbol")
		timestamp   = ticker.Timestamp("timestamp", "ts")
		last        = ticker.StringOr("", "last_price", "last")
		percentage  = ticker.StringOr("", "price_change_percent_24h", "change_24h")
		change      = ticker.StringOr("", "fluctuation")
		high        = ticker.StringOr("", "high_24h", "high_price")
		low         = ticker.StringOr("", "low_24h", "low_price")
		bid         = ticker.StringOr("", "best_bid", "bid_px")
		bidVolume   = ticker.StringOr("", "best_bid_size", "bid_sz")
		ask         = ticker.StringOr("", "best_ask", "ask_px")
		askVolume   = ticker.StringOr("", "best_ask_size", "ask_sz")
		open        = ticker.StringOr("", "open_24h")
		baseVolume  = ticker.StringOr("", "base_volume_24h", "v_24h", "volume_24h")
		quoteVolume = ticker.StringOr("", "quote_volume_24h", "qv_24h", "turnover_24h")
	)
	if row, ok := ticker.List("result"); ok {
		marketID, _ = shared.StringAt(row, 0)
		last, _ = shared.StringAt(row, 1)
		baseVolume, _ = shared.StringAt(row, 2)
		quoteVolume, _ = shared.StringAt(row, 3)
		open, _ = shared.StringAt(row, 4)
		high, _ = shared.StringAt(row, 5)
		low, _ = shared.StringAt(row, 6)
		change, _ = shared.StringAt(row, 7)
		bid, _ = shared.StringAt(row, 8)
		bidVolume, _ = shared.StringAt(row, 9)
		ask, _ = shared.StringAt(row, 10)
		askVolume, _ = shared.StringAt(row, 11)
		timestamp, _ = shared.Int64At(row, 12)
		percentage = ""
	}
	if percentage == "" && change != "" {
		percentage = numeric.Mul(change, "100")
	}
	return schema.Ticker{
		Symbol:      c.symbolForID(marketID),
		Timestamp:   timestamp,
		High:        high,
		Low:         low,
		Bid:         bid,
		BidVolume:   bidVolume,
		Ask:         ask,
		AskVolume:   askVolume,
		Open:        open,
		Close:       last,
		Last:        last,
		Change:      change,
		Percentage:  percentage,
		Average:     ticker.StringOr("", "avg_price", "index_price"),
		BaseVolume:  baseVolume,
		QuoteVolume: quoteVolume,
		Raw:         ticker,
	}
}
