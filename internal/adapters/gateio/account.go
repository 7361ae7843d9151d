package gateio

import (
	"context"
	"strconv"
	"strings"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/numeric"
	"github.com/venuekit/venuekit/internal/schema"
)

// FetchBalance returns account balances for the requested market type. Spot
// balances arrive as a list, isolated margin as per-market base/quote pairs,
// cross margin as a currency-keyed map, and contract wallets as one object
// per settlement currency. The configured default margin mode decides whether
// MarketMargin means the isolated or the cross account.
func (c *Client) FetchBalance(ctx context.Context, marketType schema.MarketType) (schema.Balance, error) {
	switch marketType {
	case schema.MarketSpot:
		rows, err := c.callList(ctx, routeSpotAccounts, nil, nil)
		if err != nil {
			return schema.Balance{}, err
		}
		return parseSpotBalance(rows), nil
	case schema.MarketMargin:
		if c.settings.DefaultMarginMode == string(schema.MarginCross) {
			payload, err := c.callObject(ctx, routeCrossAccounts, nil, nil, nil)
			if err != nil {
				return schema.Balance{}, err
			}
			return parseCrossBalance(payload), nil
		}
		rows, err := c.callList(ctx, routeMarginAccounts, nil, nil)
		if err != nil {
			return schema.Balance{}, err
		}
		return c.parseIsolatedBalance(rows), nil
	case schema.MarketSwap, schema.MarketFuture:
		routeName := routeFuturesAccounts
		if marketType == schema.MarketFuture {
			routeName = routeDeliveryAccounts
		}
		payload, err := c.callObject(ctx, routeName,
			map[string]string{"settle": c.defaultSettle(marketType)}, nil, nil)
		if err != nil {
			return schema.Balance{}, err
		}
		return parseContractBalance(payload), nil
	default:
		return schema.Balance{}, errs.NotSupported(Venue, "balance for "+string(marketType)+" accounts")
	}
}

// parseAccount handles the per-currency shape shared by every wallet: free
// under available, used under locked or freeze, debt as borrowed plus accrued
// interest.
func parseAccount(entry shared.Payload) schema.Account {
	account := schema.Account{
		Free:  entry.StringOr("", "available"),
		Used:  entry.StringOr("", "locked", "freeze"),
		Total: entry.StringOr("", "total"),
	}
	borrowed := entry.StringOr("", "borrowed")
	interest := entry.StringOr("", "interest")
	if borrowed != "" || interest != "" {
		if borrowed == "" {
			borrowed = "0"
		}
		if interest == "" {
			interest = "0"
		}
		account.Debt = numeric.Add(borrowed, interest)
	}
	return account
}

func parseSpotBalance(rows []any) schema.Balance {
	accounts := map[string]schema.Account{}
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		code, ok := entry.String("currency")
		if !ok {
			continue
		}
		accounts[strings.ToUpper(code)] = parseAccount(entry)
	}
	return schema.Balance{Accounts: accounts}
}

func (c *Client) parseIsolatedBalance(rows []any) schema.Balance {
	isolated := map[string]schema.IsolatedPair{}
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		marketID, ok := entry.String("currency_pair")
		if !ok {
			continue
		}
		base, _ := entry.Object("base")
		quote, _ := entry.Object("quote")
		isolated[c.symbolForID(marketID, false)] = schema.IsolatedPair{
			Base:  parseAccount(base),
			Quote: parseAccount(quote),
		}
	}
	return schema.Balance{Isolated: isolated}
}

func parseCrossBalance(payload shared.Payload) schema.Balance {
	accounts := map[string]schema.Account{}
	balances, _ := payload.Object("balances")
	for code, raw := range balances {
		entry, ok := shared.AsPayload(raw)
		if !ok {
			continue
		}
		accounts[strings.ToUpper(code)] = parseAccount(entry)
	}
	return schema.Balance{Accounts: accounts}
}

func parseContractBalance(payload shared.Payload) schema.Balance {
	code, ok := payload.String("currency")
	if !ok {
		return schema.Balance{}
	}
	total := payload.StringOr("", "total")
	available := payload.StringOr("", "available")
	return schema.Balance{Accounts: map[string]schema.Account{
		strings.ToUpper(code): {
			Free:  available,
			Used:  numeric.Sub(total, available),
			Total: total,
		},
	}}
}

// FetchPositions returns all open contract positions of the default contract
// type, optionally narrowed to one symbol's settlement pool.
func (c *Client) FetchPositions(ctx context.Context, symbol string) ([]schema.Position, error) {
	marketType := schema.MarketType(c.settings.DefaultType)
	settle := c.defaultSettle(marketType)
	if symbol != "" {
		market, err := c.market(symbol)
		if err != nil {
			return nil, err
		}
		if !market.Contract {
			return nil, errs.New(Venue, errs.CodeBadSymbol, errs.WithMessage("positions exist for contract markets only"))
		}
		marketType = market.Type
		settle = c.settleFor(market)
	}
	routeName := routeFuturesPositions
	if marketType == schema.MarketFuture {
		routeName = routeDeliveryPositions
	}
	rows, err := c.callList(ctx, routeName, map[string]string{"settle": settle}, nil)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Position, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		position := c.parsePosition(entry)
		if symbol != "" && position.Symbol != symbol {
			continue
		}
		out = append(out, position)
	}
	return out, nil
}

// parsePosition normalizes one contract position. Direction is the sign of
// size; leverage "0" marks a cross-margined position. The maintenance margin
// is the maintenance rate applied to the notional under value.
func (c *Client) parsePosition(position shared.Payload) schema.Position {
	size := position.StringOr("", "size")
	var side schema.PositionSide
	if numeric.Gt(size, "0") {
		side = schema.PositionLong
	} else if numeric.Lt(size, "0") {
		side = schema.PositionShort
	}
	leverage := position.StringOr("", "leverage")
	marginMode := schema.MarginIsolated
	if numeric.IsZero(leverage) {
		marginMode = schema.MarginCross
	}
	maintenanceRate := position.StringOr("", "maintenance_rate")
	notional := position.StringOr("", "value")
	contractID := position.StringOr("", "contract")
	contractSize := ""
	c.mu.RLock()
	if m, ok := c.contractByID[contractID]; ok {
		contractSize = m.ContractSize
	}
	c.mu.RUnlock()
	return schema.Position{
		Symbol:            c.symbolForID(contractID, true),
		Side:              side,
		Contracts:         numeric.Abs(size),
		ContractSize:      contractSize,
		EntryPrice:        position.StringOr("", "entry_price"),
		MarkPrice:         position.StringOr("", "mark_price"),
		LiquidationPrice:  numeric.OmitZero(position.StringOr("", "liq_price")),
		Leverage:          leverage,
		MarginMode:        marginMode,
		Notional:          notional,
		Collateral:        position.StringOr("", "margin"),
		MaintenanceMargin: numeric.Mul(maintenanceRate, notional),
		MaintenanceRate:   maintenanceRate,
		UnrealizedPnl:     position.StringOr("", "unrealised_pnl"),
		RealizedPnl:       position.StringOr("", "realised_pnl"),
		Raw:               position,
	}
}

// FetchFundingRate returns the funding snapshot for a perpetual, read from
// its contract detail record.
func (c *Client) FetchFundingRate(ctx context.Context, symbol string) (schema.FundingRate, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.FundingRate{}, err
	}
	if market.Type != schema.MarketSwap {
		return schema.FundingRate{}, errs.New(Venue, errs.CodeBadSymbol, errs.WithMessage("funding rates exist for swap contracts only"))
	}
	payload, err := c.callObject(ctx, routeFuturesContract,
		map[string]string{"settle": c.settleFor(market), "contract": market.ID}, nil, nil)
	if err != nil {
		return schema.FundingRate{}, err
	}
	interval := ""
	if seconds, ok := payload.Int64("funding_interval"); ok && seconds > 0 {
		interval = strconv.FormatInt(seconds/3600, 10) + "h"
	}
	return schema.FundingRate{
		Symbol:           c.symbolForID(payload.StringOr(market.ID, "name"), true),
		FundingRate:      payload.StringOr("", "funding_rate"),
		NextFundingRate:  payload.StringOr("", "funding_rate_indicative"),
		FundingTimestamp: payload.TimestampSeconds("funding_next_apply"),
		Interval:         interval,
		MarkPrice:        payload.StringOr("", "mark_price"),
		IndexPrice:       payload.StringOr("", "index_price"),
		Raw:              payload,
	}, nil
}

// transferAccounts maps unified account names onto the venue's wallet ids.
var transferAccounts = map[string]string{
	"spot":         "spot",
	"margin":       "margin",
	"cross":        "cross_margin",
	"cross_margin": "cross_margin",
	"swap":         "futures",
	"future":       "delivery",
}

// Transfer moves funds between account types through the wallet endpoint.
// Isolated-margin legs additionally name the market; contract legs name the
// settlement currency.
func (c *Client) Transfer(ctx context.Context, code, amount string, opts TransferOptions) (schema.Transfer, error) {
	from, ok := transferAccounts[strings.ToLower(strings.TrimSpace(opts.FromAccount))]
	if !ok {
		return schema.Transfer{}, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("unknown account type "+opts.FromAccount))
	}
	to, ok := transferAccounts[strings.ToLower(strings.TrimSpace(opts.ToAccount))]
	if !ok {
		return schema.Transfer{}, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("unknown account type "+opts.ToAccount))
	}
	body := map[string]any{
		"currency": strings.ToUpper(code),
		"amount":   amount,
		"from":     from,
		"to":       to,
	}
	if from == "margin" || to == "margin" {
		if opts.Symbol == "" {
			return schema.Transfer{}, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("isolated margin transfers require a symbol"))
		}
		market, err := c.market(opts.Symbol)
		if err != nil {
			return schema.Transfer{}, err
		}
		body["currency_pair"] = market.ID
	}
	if from == "futures" || to == "futures" || from == "delivery" || to == "delivery" {
		body["settle"] = strings.ToLower(code)
	}
	raw, err := c.call(ctx, routeWalletTransfers, nil, nil, body)
	if err != nil {
		return schema.Transfer{}, err
	}
	// the venue acknowledges some transfers with an empty body
	payload, decodeErr := shared.DecodeObject(raw)
	if decodeErr != nil {
		payload = shared.Payload{}
	}
	return schema.Transfer{
		Timestamp:   c.now().UnixMilli(),
		Code:        strings.ToUpper(payload.StringOr(code, "currency")),
		Amount:      payload.StringOr(amount, "amount"),
		FromAccount: strings.ToLower(opts.FromAccount),
		ToAccount:   strings.ToLower(opts.ToAccount),
		Status:      "ok",
		Raw:         payload,
	}, nil
}

// FetchLedger returns the spot account history, newest first as the venue
// reports it. Direction derives from the sign of the change.
func (c *Client) FetchLedger(ctx context.Context, code string, limit int) ([]schema.LedgerEntry, error) {
	query := map[string]string{}
	if code != "" {
		query["currency"] = strings.ToUpper(code)
	}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}
	rows, err := c.callList(ctx, routeSpotAccountBook, nil, query)
	if err != nil {
		return nil, err
	}
	out := make([]schema.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		change := entry.StringOr("", "change")
		direction := "in"
		if numeric.Lt(change, "0") {
			direction = "out"
		}
		out = append(out, schema.LedgerEntry{
			ID:        entry.StringOr("", "id"),
			Timestamp: entry.Timestamp("time"),
			Code:      strings.ToUpper(entry.StringOr("", "currency")),
			Amount:    numeric.Abs(change),
			Direction: direction,
			Type:      entry.StringOr("", "type"),
			After:     entry.StringOr("", "balance"),
			Raw:       entry,
		})
	}
	return out, nil
}
