package bitmart

import (
	"context"
	"strings"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/numeric"
	"github.com/venuekit/venuekit/internal/schema"
)

// FetchBalance returns account balances for the requested market type:
// spot, funding, and swap wallets map currency to account, isolated margin
// reports per-market base/quote pairs instead.
func (c *Client) FetchBalance(ctx context.Context, marketType schema.MarketType) (schema.Balance, error) {
	switch marketType {
	case schema.MarketSpot:
		payload, err := c.call(ctx, routeSpotWallet, nil, nil)
		if err != nil {
			return schema.Balance{}, err
		}
		data, _ := payload.Object("data")
		rows, _ := data.List("wallet")
		return parseWallet(rows), nil
	case schema.MarketFunding:
		payload, err := c.call(ctx, routeAccountWallet, nil, nil)
		if err != nil {
			return schema.Balance{}, err
		}
		data, _ := payload.Object("data")
		rows, _ := data.List("wallet")
		return parseWallet(rows), nil
	case schema.MarketSwap:
		payload, err := c.call(ctx, routeContractAssets, nil, nil)
		if err != nil {
			return schema.Balance{}, err
		}
		rows, _ := payload.List("data")
		return parseWallet(rows), nil
	case schema.MarketMargin:
		payload, err := c.call(ctx, routeMarginAccount, nil, nil)
		if err != nil {
			return schema.Balance{}, err
		}
		data, _ := payload.Object("data")
		rows, _ := data.List("symbols")
		return c.parseIsolatedBalance(rows), nil
	default:
		return schema.Balance{}, errs.NotSupported(Venue, "balance for "+string(marketType)+" accounts")
	}
}

// parseWallet handles the flat wallet shapes: spot rows carry
// available/frozen, contract rows available_balance/frozen_balance.
func parseWallet(rows []any) schema.Balance {
	accounts := map[string]schema.Account{}
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		code, ok := entry.String("id", "currency", "coin_code")
		if !ok {
			continue
		}
		accounts[strings.ToUpper(code)] = schema.Account{
			Free: entry.StringOr("", "available", "available_balance"),
			Used: entry.StringOr("", "frozen", "frozen_balance"),
		}
	}
	return schema.Balance{Accounts: accounts}
}

// parseIsolatedBalance handles the isolated-margin shape: one row per market
// with base and quote sub-accounts. Debt is borrowed principal plus unpaid
// interest.
func (c *Client) parseIsolatedBalance(rows []any) schema.Balance {
	isolated := map[string]schema.IsolatedPair{}
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		marketID, ok := entry.String("symbol")
		if !ok {
			continue
		}
		base, _ := entry.Object("base")
		quote, _ := entry.Object("quote")
		isolated[c.symbolForID(marketID)] = schema.IsolatedPair{
			Base:  parseMarginAccount(base),
			Quote: parseMarginAccount(quote),
		}
	}
	return schema.Balance{Isolated: isolated}
}

func parseMarginAccount(entry shared.Payload) schema.Account {
	debt := numeric.Add(entry.StringOr("0", "borrow_unpaid"), entry.StringOr("0", "interest_unpaid"))
	return schema.Account{
		Free:  entry.StringOr("", "available"),
		Used:  entry.StringOr("", "frozen"),
		Total: entry.StringOr("", "total_asset"),
		Debt:  debt,
	}
}

// FetchPositions returns all open contract positions, optionally narrowed to
// one symbol.
func (c *Client) FetchPositions(ctx context.Context, symbol string) ([]schema.Position, error) {
	params := map[string]string{}
	if symbol != "" {
		market, err := c.market(symbol)
		if err != nil {
			return nil, err
		}
		params["symbol"] = market.ID
	}
	payload, err := c.call(ctx, routeContractPosition, params, nil)
	if err != nil {
		return nil, err
	}
	rows, _ := payload.List("data")
	out := make([]schema.Position, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		out = append(out, c.parsePosition(entry))
	}
	return out, nil
}

// parsePosition normalizes one contract position. position_type 1 is long,
// 2 short. The margin ratio is maintenance margin over collateral; the
// maintenance rate is maintenance margin over notional.
func (c *Client) parsePosition(position shared.Payload) schema.Position {
	side := schema.PositionShort
	if v, _ := position.Int64("position_type"); v == 1 {
		side = schema.PositionLong
	}
	maintenance := position.StringOr("", "maintenance_margin")
	notional := position.StringOr("", "current_value")
	collateral := position.StringOr("", "position_cross")
	contractSize := ""
	if m, ok := c.marketByID(position.StringOr("", "symbol")); ok {
		contractSize = m.ContractSize
	}
	return schema.Position{
		Symbol:            c.symbolForID(position.StringOr("", "symbol")),
		Timestamp:         position.Timestamp("timestamp"),
		Side:              side,
		Contracts:         position.StringOr("", "current_amount"),
		ContractSize:      contractSize,
		EntryPrice:        position.StringOr("", "entry_price"),
		MarkPrice:         position.StringOr("", "mark_price"),
		Leverage:          position.StringOr("", "leverage"),
		Notional:          notional,
		Collateral:        collateral,
		MaintenanceMargin: maintenance,
		MaintenanceRate:   numeric.Div(maintenance, notional),
		MarginRatio:       numeric.Div(maintenance, collateral),
		UnrealizedPnl:     position.StringOr("", "unrealized_value"),
		RealizedPnl:       position.StringOr("", "realized_value"),
		Raw:               position,
	}
}

// FetchFundingRate returns the current funding snapshot for a perpetual.
// rate_value is the rate applied last settlement, expected_rate the upcoming
// one.
func (c *Client) FetchFundingRate(ctx context.Context, symbol string) (schema.FundingRate, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.FundingRate{}, err
	}
	if market.Type != schema.MarketSwap {
		return schema.FundingRate{}, errs.New(Venue, errs.CodeBadSymbol, errs.WithMessage("funding rates exist for swap contracts only"))
	}
	payload, err := c.call(ctx, routeContractFundingRate, map[string]string{"symbol": market.ID}, nil)
	if err != nil {
		return schema.FundingRate{}, err
	}
	data, _ := payload.Object("data")
	return schema.FundingRate{
		Symbol:      c.symbolForID(data.StringOr(market.ID, "symbol")),
		Timestamp:   data.Timestamp("timestamp"),
		FundingRate: data.StringOr("", "expected_rate"),
		Raw:         data,
	}, nil
}

// Transfer moves funds between account types. One side must be spot: the
// venue exposes spot<->isolated-margin and spot<->swap moves only.
func (c *Client) Transfer(ctx context.Context, code, amount string, opts TransferOptions) (schema.Transfer, error) {
	from := strings.ToLower(strings.TrimSpace(opts.FromAccount))
	to := strings.ToLower(strings.TrimSpace(opts.ToAccount))
	body := map[string]any{
		"amount":   amount,
		"currency": strings.ToUpper(code),
	}
	var routeName string
	switch {
	case from == "spot" && to == "margin":
		body["side"] = "in"
		routeName = routeMarginTransfer
	case from == "margin" && to == "spot":
		body["side"] = "out"
		routeName = routeMarginTransfer
	case from == "spot" && to == "swap":
		body["type"] = "spot_to_contract"
		routeName = routeContractTransfer
	case from == "swap" && to == "spot":
		body["type"] = "contract_to_spot"
		routeName = routeContractTransfer
	default:
		return schema.Transfer{}, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("transfers require spot on one side"))
	}
	payload, err := c.call(ctx, routeName, nil, body)
	if err != nil {
		return schema.Transfer{}, err
	}
	data, _ := payload.Object("data")
	return schema.Transfer{
		ID:          data.StringOr("", "transfer_id"),
		Code:        strings.ToUpper(data.StringOr(code, "currency")),
		Amount:      data.StringOr(amount, "amount"),
		FromAccount: from,
		ToAccount:   to,
		Status:      "ok",
		Raw:         data,
	}, nil
}

// FetchLedger is not offered by this venue's REST surface.
func (c *Client) FetchLedger(ctx context.Context, code string, limit int) ([]schema.LedgerEntry, error) {
	return nil, errs.NotSupported(Venue, "ledger history")
}
