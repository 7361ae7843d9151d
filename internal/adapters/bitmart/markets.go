package bitmart

import (
	"context"
	"strings"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/numeric"
	"github.com/venuekit/venuekit/internal/schema"
)

// Default trading fees; BitMart publishes tiered schedules but the base tier
// is what an unauthenticated markets fetch can know.
const (
	makerFee = "0.0035"
	takerFee = "0.0040"
)

// FetchMarkets returns the union of spot and contract markets.
func (c *Client) FetchMarkets(ctx context.Context) ([]schema.Market, error) {
	spot, err := c.fetchSpotMarkets(ctx)
	if err != nil {
		return nil, err
	}
	contract, err := c.fetchContractMarkets(ctx)
	if err != nil {
		return nil, err
	}
	return append(spot, contract...), nil
}

func (c *Client) fetchSpotMarkets(ctx context.Context) ([]schema.Market, error) {
	payload, err := c.call(ctx, routeSpotSymbolsDetails, nil, nil)
	if err != nil {
		return nil, err
	}
	data, _ := payload.Object("data")
	rows, _ := data.List("symbols")
	out := make([]schema.Market, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		m, ok := parseSpotMarket(entry)
		if !ok {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// parseSpotMarket normalizes one spot symbol record.
//
//	{
//	  "symbol": "BTC_USDT",
//	  "base_currency": "BTC",
//	  "quote_currency": "USDT",
//	  "base_min_size": "0.000010",
//	  "base_max_size": "100000000",
//	  "price_max_precision": 2,
//	  "min_buy_amount": "5.00",
//	  "min_sell_amount": "5.00",
//	  "trade_status": "trading"
//	}
func parseSpotMarket(entry shared.Payload) (schema.Market, bool) {
	id, ok := entry.String("symbol")
	if !ok {
		return schema.Market{}, false
	}
	base := strings.ToUpper(entry.StringOr("", "base_currency"))
	quote := strings.ToUpper(entry.StringOr("", "quote_currency"))
	if base == "" || quote == "" {
		return schema.Market{}, false
	}
	minBuy := entry.StringOr("", "min_buy_amount")
	minSell := entry.StringOr("", "min_sell_amount")
	minCost := minBuy
	if numeric.Gt(minSell, minCost) {
		minCost = minSell
	}
	status, _ := entry.LowerString("trade_status")
	return schema.Market{
		ID:      id,
		Symbol:  schema.UnifiedSymbol(base, quote, ""),
		Base:    base,
		Quote:   quote,
		BaseID:  entry.StringOr("", "base_currency"),
		QuoteID: entry.StringOr("", "quote_currency"),
		Type:    schema.MarketSpot,
		Active:  status == "" || status == "trading",
		Precision: schema.Precision{
			Amount: entry.StringOr("", "base_min_size"),
			Price:  numeric.StepFromDigits(entry.StringOr("", "price_max_precision")),
		},
		Limits: schema.Limits{
			Amount: schema.MinMax{
				Min: entry.StringOr("", "base_min_size"),
				Max: entry.StringOr("", "base_max_size"),
			},
			Cost: schema.MinMax{Min: minCost},
		},
		MakerFee: makerFee,
		TakerFee: takerFee,
		Raw:      entry,
	}, true
}

func (c *Client) fetchContractMarkets(ctx context.Context) ([]schema.Market, error) {
	payload, err := c.call(ctx, routeContractDetails, nil, nil)
	if err != nil {
		return nil, err
	}
	data, _ := payload.Object("data")
	rows, _ := data.List("symbols")
	out := make([]schema.Market, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		m, ok := parseContractMarket(entry)
		if !ok {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// parseContractMarket normalizes one contract detail record. product_type 1
// is a perpetual, 2 a dated future; both settle in USDT.
func parseContractMarket(entry shared.Payload) (schema.Market, bool) {
	id, ok := entry.String("symbol")
	if !ok {
		return schema.Market{}, false
	}
	base := strings.ToUpper(entry.StringOr("", "base_currency"))
	quote := strings.ToUpper(entry.StringOr("", "quote_currency"))
	if base == "" || quote == "" {
		return schema.Market{}, false
	}
	const settle = "USDT"
	productType, _ := entry.Int64("product_type")
	isFuture := productType == 2
	marketType := schema.MarketSwap
	if isFuture {
		marketType = schema.MarketFuture
	}
	expiry := entry.Timestamp("expire_timestamp")
	if !isFuture {
		expiry = 0
	}
	return schema.Market{
		ID:           id,
		Symbol:       schema.UnifiedSymbol(base, quote, settle),
		Base:         base,
		Quote:        quote,
		Settle:       settle,
		BaseID:       entry.StringOr("", "base_currency"),
		QuoteID:      entry.StringOr("", "quote_currency"),
		SettleID:     settle,
		Type:         marketType,
		Contract:     true,
		Linear:       true,
		Active:       true,
		ContractSize: entry.StringOr("", "contract_size"),
		Expiry:       expiry,
		Precision: schema.Precision{
			Amount: entry.StringOr("", "vol_precision"),
			Price:  entry.StringOr("", "price_precision"),
		},
		Limits: schema.Limits{
			Leverage: schema.MinMax{
				Min: entry.StringOr("", "min_leverage"),
				Max: entry.StringOr("", "max_leverage"),
			},
			Amount: schema.MinMax{
				Min: entry.StringOr("", "min_volume"),
				Max: entry.StringOr("", "max_volume"),
			},
		},
		MakerFee: makerFee,
		TakerFee: takerFee,
		Raw:      entry,
	}, true
}

// FetchCurrencies returns the withdrawable currency catalogue. The venue
// reports one row per currency-network pair ("USDT-TRC20"); rows merge into a
// single Currency with per-network flags.
func (c *Client) FetchCurrencies(ctx context.Context) (map[string]schema.Currency, error) {
	payload, err := c.call(ctx, routeCurrencies, nil, nil)
	if err != nil {
		return nil, err
	}
	data, _ := payload.Object("data")
	rows, _ := data.List("currencies")
	if len(rows) == 0 {
		return nil, errs.New(Venue, errs.CodeExchange, errs.WithMessage("empty currency catalogue"))
	}
	out := map[string]schema.Currency{}
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		fullID, ok := entry.String("currency")
		if !ok {
			continue
		}
		currencyID := fullID
		networkID := entry.StringOr("", "network")
		if !strings.Contains(fullID, "NFT") {
			if idx := strings.IndexByte(fullID, '-'); idx >= 0 {
				currencyID = fullID[:idx]
				networkID = strings.ToUpper(fullID[idx+1:])
			}
		}
		code := strings.ToUpper(currencyID)
		cur, ok := out[code]
		if !ok {
			cur = schema.Currency{
				Code:     code,
				ID:       currencyID,
				Name:     entry.StringOr("", "name"),
				Networks: map[string]schema.Network{},
				Raw:      entry,
			}
		}
		deposit, _ := entry.Bool("deposit_enabled")
		withdraw, _ := entry.Bool("withdraw_enabled")
		cur.Networks[networkID] = schema.Network{
			ID:          networkID,
			Network:     networkID,
			Deposit:     deposit,
			Withdraw:    withdraw,
			Fee:         entry.StringOr("", "withdraw_minfee"),
			WithdrawMin: entry.StringOr("", "withdraw_minsize"),
		}
		cur.Deposit = cur.Deposit || deposit
		cur.Withdraw = cur.Withdraw || withdraw
		out[code] = cur
	}
	return out, nil
}
