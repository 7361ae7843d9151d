package gateio

import (
	"context"
	"strings"

	concpool "github.com/sourcegraph/conc/pool"

	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/numeric"
	"github.com/venuekit/venuekit/internal/schema"
)

// FetchMarkets returns the union of spot (with margin annotations), perpetual,
// and delivery markets. The three catalogues live on independent endpoints and
// are fetched concurrently.
func (c *Client) FetchMarkets(ctx context.Context) ([]schema.Market, error) {
	p := concpool.NewWithResults[[]schema.Market]().WithContext(ctx).WithMaxGoroutines(3)
	p.Go(func(ctx context.Context) ([]schema.Market, error) { return c.fetchSpotMarkets(ctx) })
	p.Go(func(ctx context.Context) ([]schema.Market, error) {
		return c.fetchContractMarkets(ctx, routeFuturesContracts, schema.MarketSwap)
	})
	p.Go(func(ctx context.Context) ([]schema.Market, error) {
		return c.fetchContractMarkets(ctx, routeDeliveryContracts, schema.MarketFuture)
	})
	groups, err := p.Wait()
	if err != nil {
		return nil, err
	}
	var out []schema.Market
	for _, g := range groups {
		out = append(out, g...)
	}
	return out, nil
}

// fetchSpotMarkets merges the spot pair catalogue with the margin pair list:
// a pair present in the margin list (it carries a leverage bound) is
// margin-tradable. Venue fees arrive as percentages and are scaled to rates.
func (c *Client) fetchSpotMarkets(ctx context.Context) ([]schema.Market, error) {
	marginRows, err := c.callList(ctx, routeMarginCurrencyPairs, nil, nil)
	if err != nil {
		return nil, err
	}
	marginByID := map[string]shared.Payload{}
	for _, row := range marginRows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		if id, ok := entry.String("id"); ok {
			marginByID[id] = entry
		}
	}

	rows, err := c.callList(ctx, routeSpotCurrencyPairs, nil, nil)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Market, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		m, ok := parseSpotMarket(entry, marginByID)
		if !ok {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// parseSpotMarket normalizes one spot pair record.
//
//	{
//	  "id": "BTC_USDT",
//	  "base": "BTC",
//	  "quote": "USDT",
//	  "fee": "0.2",
//	  "min_base_amount": "0.001",
//	  "min_quote_amount": "1",
//	  "amount_precision": 4,
//	  "precision": 2,
//	  "trade_status": "tradable"
//	}
func parseSpotMarket(entry shared.Payload, marginByID map[string]shared.Payload) (schema.Market, bool) {
	id, ok := entry.String("id")
	if !ok {
		return schema.Market{}, false
	}
	baseID := entry.StringOr("", "base")
	quoteID := entry.StringOr("", "quote")
	base := strings.ToUpper(baseID)
	quote := strings.ToUpper(quoteID)
	if base == "" || quote == "" {
		return schema.Market{}, false
	}
	marginEntry, margin := marginByID[id]
	takerPercent := entry.StringOr("", "fee")
	makerPercent := entry.StringOr(takerPercent, "maker_fee_rate")
	status, _ := entry.LowerString("trade_status")
	var maxCost, maxLeverage string
	if margin {
		maxCost = marginEntry.StringOr("", "max_quote_amount")
		maxLeverage = marginEntry.StringOr("", "leverage")
	}
	return schema.Market{
		ID:      id,
		Symbol:  schema.UnifiedSymbol(base, quote, ""),
		Base:    base,
		Quote:   quote,
		BaseID:  baseID,
		QuoteID: quoteID,
		Type:    schema.MarketSpot,
		Margin:  margin,
		Active:  status == "tradable",
		Precision: schema.Precision{
			Amount: numeric.StepFromDigits(entry.StringOr("", "amount_precision")),
			Price:  numeric.StepFromDigits(entry.StringOr("", "precision")),
		},
		Limits: schema.Limits{
			Amount: schema.MinMax{Min: entry.StringOr("", "min_base_amount")},
			Cost: schema.MinMax{
				Min: entry.StringOr("", "min_quote_amount"),
				Max: maxCost,
			},
			Leverage: schema.MinMax{Min: "1", Max: maxLeverage},
		},
		MakerFee: numeric.Div(makerPercent, "100"),
		TakerFee: numeric.Div(takerPercent, "100"),
		Raw:      entry,
	}, true
}

func (c *Client) fetchContractMarkets(ctx context.Context, routeName string, marketType schema.MarketType) ([]schema.Market, error) {
	settle := c.defaultSettle(marketType)
	rows, err := c.callList(ctx, routeName, map[string]string{"settle": settle}, nil)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Market, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		m, ok := parseContractMarket(entry, settle)
		if !ok {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// parseContractMarket normalizes one contract record. The name encodes the
// instrument: "BTC_USDT" is a perpetual, "BTC_USDT_20200814" a dated future.
// Contracts are quanto: one contract moves quanto_multiplier of the base. The
// tradable price band is mark_price within order_price_deviate either way.
func parseContractMarket(entry shared.Payload, settleID string) (schema.Market, bool) {
	id, ok := entry.String("name")
	if !ok {
		return schema.Market{}, false
	}
	parts := strings.Split(id, "_")
	if len(parts) < 2 {
		return schema.Market{}, false
	}
	base := strings.ToUpper(parts[0])
	quote := strings.ToUpper(parts[1])
	settle := strings.ToUpper(settleID)
	marketType := schema.MarketSwap
	var expiry int64
	if len(parts) > 2 {
		marketType = schema.MarketFuture
		expiry = entry.TimestampSeconds("expire_time")
	}
	deviate := entry.StringOr("", "order_price_deviate")
	markPrice := entry.StringOr("", "mark_price")
	var minPrice, maxPrice string
	if deviate != "" && markPrice != "" {
		minPrice = numeric.Mul(numeric.Sub("1", deviate), markPrice)
		maxPrice = numeric.Mul(numeric.Add("1", deviate), markPrice)
	}
	takerFee := entry.StringOr("", "taker_fee_rate")
	isLinear := quote == settle
	return schema.Market{
		ID:           id,
		Symbol:       schema.UnifiedSymbol(base, quote, settle),
		Base:         base,
		Quote:        quote,
		Settle:       settle,
		BaseID:       parts[0],
		QuoteID:      parts[1],
		SettleID:     settleID,
		Type:         marketType,
		Contract:     true,
		Linear:       isLinear,
		Inverse:      !isLinear,
		Active:       true,
		ContractSize: entry.StringOr("", "quanto_multiplier"),
		Expiry:       expiry,
		Precision: schema.Precision{
			Amount: "1",
			Price:  entry.StringOr("", "order_price_round"),
		},
		Limits: schema.Limits{
			Amount: schema.MinMax{
				Min: entry.StringOr("", "order_size_min"),
				Max: entry.StringOr("", "order_size_max"),
			},
			Price: schema.MinMax{Min: minPrice, Max: maxPrice},
			Leverage: schema.MinMax{
				Min: entry.StringOr("", "leverage_min"),
				Max: entry.StringOr("", "leverage_max"),
			},
		},
		MakerFee: entry.StringOr(takerFee, "maker_fee_rate"),
		TakerFee: takerFee,
		Raw:      entry,
	}, true
}

// FetchCurrencies returns the currency catalogue. The venue reports coarse
// per-currency flags only; chain-level detail is not part of this endpoint.
func (c *Client) FetchCurrencies(ctx context.Context) (map[string]schema.Currency, error) {
	rows, err := c.callList(ctx, routeSpotCurrencies, nil, nil)
	if err != nil {
		return nil, err
	}
	out := make(map[string]schema.Currency, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		id, ok := entry.String("currency")
		if !ok {
			continue
		}
		depositDisabled, _ := entry.Bool("deposit_disabled")
		withdrawDisabled, _ := entry.Bool("withdraw_disabled")
		code := strings.ToUpper(id)
		out[code] = schema.Currency{
			Code:     code,
			ID:       id,
			Deposit:  !depositDisabled,
			Withdraw: !withdrawDisabled,
			Raw:      entry,
		}
	}
	return out, nil
}
