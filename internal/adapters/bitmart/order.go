package bitmart

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/numeric"
	"github.com/venuekit/venuekit/internal/schema"
)

// orderSides maps the venue's numeric contract side codes onto directions:
// 1 buy-open-long, 2 buy-close-short, 3 sell-close-long, 4 sell-open-short.
func parseOrderSide(raw string) schema.OrderSide {
	switch raw {
	case "1", "2", "buy":
		return schema.SideBuy
	case "3", "4", "sell":
		return schema.SideSell
	}
	return ""
}

// spotStatuses and swapStatuses translate per-market-type raw order states.
// Spot uses numeric codes on legacy endpoints and string states on v4.
var spotStatuses = map[string]schema.OrderStatus{
	"1":                  schema.StatusRejected,
	"2":                  schema.StatusOpen,
	"3":                  schema.StatusRejected,
	"4":                  schema.StatusOpen,
	"5":                  schema.StatusOpen,
	"6":                  schema.StatusClosed,
	"7":                  schema.StatusCanceled,
	"8":                  schema.StatusCanceled,
	"new":                schema.StatusOpen,
	"partially_filled":   schema.StatusOpen,
	"filled":             schema.StatusClosed,
	"partially_canceled": schema.StatusCanceled,
}

var swapStatuses = map[string]schema.OrderStatus{
	"1": schema.StatusOpen,
	"2": schema.StatusOpen,
	"4": schema.StatusClosed,
}

func parseOrderStatus(marketType schema.MarketType, raw string) schema.OrderStatus {
	table := spotStatuses
	if marketType == schema.MarketSwap || marketType == schema.MarketFuture {
		table = swapStatuses
	}
	if status, ok := table[raw]; ok {
		return status
	}
	// unmapped states surface as open with the raw code kept in Raw
	return schema.StatusOpen
}

// CreateOrder places an order and returns the venue acknowledgement, which
// carries only the order id (and for swap, sometimes a "market price" price
// sentinel).
func (c *Client) CreateOrder(ctx context.Context, symbol string, orderType schema.OrderType, side schema.OrderSide, amount, price string, opts OrderOptions) (schema.Order, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.Order{}, err
	}
	if opts.ClientOrderID == "" {
		opts.ClientOrderID = uuid.NewString()
	}
	if market.Contract {
		body, routeName, err := c.swapOrderRequest(market, orderType, side, amount, price, opts)
		if err != nil {
			return schema.Order{}, err
		}
		payload, err := c.call(ctx, routeName, nil, body)
		if err != nil {
			return schema.Order{}, err
		}
		data, _ := payload.Object("data")
		order := c.parseOrder(market, data)
		if order.ClientOrderID == "" {
			order.ClientOrderID = opts.ClientOrderID
		}
		return order, nil
	}

	body, routeName, err := c.spotOrderRequest(market, orderType, side, amount, price, opts)
	if err != nil {
		return schema.Order{}, err
	}
	payload, err := c.call(ctx, routeName, nil, body)
	if err != nil {
		return schema.Order{}, err
	}
	data, _ := payload.Object("data")
	order := c.parseOrder(market, data)
	if order.ClientOrderID == "" {
		order.ClientOrderID = opts.ClientOrderID
	}
	return order, nil
}

// spotOrderRequest builds the body for a spot or isolated-margin order.
//
// postOnly folds into the venue type limit_maker, IOC into the venue type
// ioc. Market buys spend quote currency: the notional is amount*price
// truncated to the market's price precision, unless the
// createMarketBuyOrderRequiresPrice switch is off, in which case the amount
// argument (or opts.Cost) is already the notional.
func (c *Client) spotOrderRequest(market schema.Market, orderType schema.OrderType, side schema.OrderSide, amount, price string, opts OrderOptions) (map[string]any, string, error) {
	if opts.TimeInForce == schema.TIFFillOrKill {
		return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("spot orders accept only IOC or PO time in force"))
	}
	body := map[string]any{
		"symbol": market.ID,
		"side":   string(side),
		"type":   string(orderType),
	}
	postOnly := opts.PostOnly || opts.TimeInForce == schema.TIFPostOnly
	ioc := opts.TimeInForce == schema.TIFImmediateOrCancel
	if postOnly && orderType == schema.OrderMarket {
		return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("market orders cannot be post-only"))
	}

	isLimit := orderType == schema.OrderLimit || postOnly || ioc
	switch {
	case isLimit:
		if price == "" {
			return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("limit orders require a price"))
		}
		body["size"] = numeric.TruncateToStep(amount, market.Precision.Amount)
		body["price"] = numeric.TruncateToStep(price, market.Precision.Price)
	case side == schema.SideBuy:
		notional := opts.Cost
		if c.settings.MarketBuyRequiresPrice() {
			if price == "" && notional == "" {
				return nil, "", errs.New(Venue, errs.CodeInvalidOrder,
					errs.WithMessage("market buys require a price to derive the quote cost, or the createMarketBuyOrderRequiresPrice switch off"))
			}
			if notional == "" {
				notional = numeric.Mul(amount, price)
			}
		} else if notional == "" {
			notional = amount
		}
		body["notional"] = numeric.TruncateToStep(notional, market.Precision.Price)
	default:
		body["size"] = numeric.TruncateToStep(amount, market.Precision.Amount)
	}

	if postOnly {
		body["type"] = "limit_maker"
	}
	if ioc {
		body["type"] = "ioc"
	}
	if opts.ClientOrderID != "" {
		body["client_order_id"] = opts.ClientOrderID
	}
	routeName := routeSpotSubmitOrder
	if opts.MarginMode == schema.MarginIsolated {
		routeName = routeMarginSubmitOrder
	}
	return body, routeName, nil
}

// swapOrderRequest builds the body for a perpetual order. Time in force is
// encoded as mode 1 GTC, 2 FOK, 3 IOC, 4 post-only; direction and intent
// combine into side codes 1..4; a trigger price reroutes to the plan-order
// endpoint, which additionally demands a leverage ("1" when unset).
func (c *Client) swapOrderRequest(market schema.Market, orderType schema.OrderType, side schema.OrderSide, amount, price string, opts OrderOptions) (map[string]any, string, error) {
	size := numeric.TruncateToStep(amount, market.Precision.Amount)
	contracts, err := strconv.ParseInt(size, 10, 64)
	if err != nil {
		return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("contract size must be a whole number of contracts"))
	}
	body := map[string]any{
		"symbol": market.ID,
		"type":   string(orderType),
		"size":   contracts,
	}
	postOnly := opts.PostOnly || opts.TimeInForce == schema.TIFPostOnly
	if postOnly && orderType == schema.OrderMarket {
		return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("market orders cannot be post-only"))
	}
	switch {
	case postOnly:
		body["mode"] = 4
	case opts.TimeInForce == schema.TIFImmediateOrCancel:
		body["mode"] = 3
	case opts.TimeInForce == schema.TIFFillOrKill:
		body["mode"] = 2
	case opts.TimeInForce == schema.TIFGoodTillCancel:
		body["mode"] = 1
	}

	isLimit := orderType == schema.OrderLimit || postOnly || opts.TimeInForce == schema.TIFImmediateOrCancel
	if isLimit {
		if price == "" {
			return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("limit orders require a price"))
		}
		body["price"] = numeric.TruncateToStep(price, market.Precision.Price)
	}

	triggered := opts.TriggerPrice != ""
	if triggered {
		if isLimit || price != "" {
			body["executive_price"] = numeric.TruncateToStep(price, market.Precision.Price)
		}
		body["trigger_price"] = numeric.TruncateToStep(opts.TriggerPrice, market.Precision.Price)
		body["price_type"] = 1
		if side == schema.SideBuy {
			if opts.ReduceOnly {
				body["price_way"] = 2
			} else {
				body["price_way"] = 1
			}
		} else {
			if opts.ReduceOnly {
				body["price_way"] = 1
			} else {
				body["price_way"] = 2
			}
		}
	}

	marginMode := opts.MarginMode
	if marginMode == "" {
		marginMode = schema.MarginMode(c.settings.DefaultMarginMode)
	}
	if marginMode == "" {
		marginMode = schema.MarginCross
	}
	body["open_type"] = string(marginMode)

	if side == schema.SideBuy {
		if opts.ReduceOnly {
			body["side"] = 2
		} else {
			body["side"] = 1
		}
	} else {
		if opts.ReduceOnly {
			body["side"] = 3
		} else {
			body["side"] = 4
		}
	}

	if opts.ClientOrderID != "" {
		body["client_order_id"] = opts.ClientOrderID
	}
	switch {
	case opts.Leverage != "":
		body["leverage"] = opts.Leverage
	case triggered:
		body["leverage"] = "1"
	}

	routeName := routeContractSubmitOrder
	if triggered {
		routeName = routeContractSubmitPlan
	}
	return body, routeName, nil
}

// CancelOrder cancels one order by id. Trigger (plan) swap orders go through
// their own endpoint, selected by the trigger flag.
func (c *Client) CancelOrder(ctx context.Context, symbol, id string, trigger bool) (schema.Order, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.Order{}, err
	}
	body := map[string]any{
		"symbol":   market.ID,
		"order_id": id,
	}
	routeName := routeSpotCancelOrder
	if market.Contract {
		routeName = routeContractCancelOrder
		if trigger {
			routeName = routeContractCancelPlan
		}
	}
	payload, err := c.call(ctx, routeName, nil, body)
	if err != nil {
		return schema.Order{}, err
	}
	data, _ := payload.Object("data")
	order := c.parseOrder(market, data)
	if order.ID == "" {
		order.ID = id
	}
	if order.Symbol == "" {
		order.Symbol = market.Symbol
	}
	return order, nil
}

// FetchOrder retrieves one order by venue id or, when clientOrderID is set,
// by the caller-assigned id.
func (c *Client) FetchOrder(ctx context.Context, symbol, id, clientOrderID string) (schema.Order, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.Order{}, err
	}
	if market.Contract {
		params := map[string]string{"symbol": market.ID, "order_id": id}
		payload, err := c.call(ctx, routeContractOrderDetail, params, nil)
		if err != nil {
			return schema.Order{}, err
		}
		data, _ := payload.Object("data")
		return c.parseOrder(market, data), nil
	}

	routeName := routeSpotQueryOrder
	body := map[string]any{"orderId": id}
	if clientOrderID != "" {
		routeName = routeSpotQueryClientOrder
		body = map[string]any{"clientOrderId": clientOrderID}
	}
	payload, err := c.call(ctx, routeName, nil, body)
	if err != nil {
		return schema.Order{}, err
	}
	data, _ := payload.Object("data")
	return c.parseOrder(market, data), nil
}

// FetchMyTrades returns the account's fills for one market, newest last as
// the venue reports them.
func (c *Client) FetchMyTrades(ctx context.Context, symbol string, limit int) ([]schema.Trade, error) {
	market, err := c.market(symbol)
	if err != nil {
		return nil, err
	}
	if market.Contract {
		params := map[string]string{"symbol": market.ID}
		payload, err := c.call(ctx, routeContractTrades, params, nil)
		if err != nil {
			return nil, err
		}
		rows, _ := payload.List("data")
		return c.parseTrades(market, rows), nil
	}

	body := map[string]any{"symbol": market.ID}
	if limit > 0 {
		body["limit"] = limit
	}
	payload, err := c.call(ctx, routeSpotQueryTrades, nil, body)
	if err != nil {
		return nil, err
	}
	rows, _ := payload.List("data")
	return c.parseTrades(market, rows), nil
}

func (c *Client) parseTrades(market schema.Market, rows []any) []schema.Trade {
	out := make([]schema.Trade, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		out = append(out, c.parseTrade(market, entry))
	}
	return out
}

// parseTrade normalizes a fill from either the spot v4 camelCase shape or the
// contract snake_case shape.
func (c *Client) parseTrade(market schema.Market, trade shared.Payload) schema.Trade {
	symbol := market.Symbol
	if id, ok := trade.String("symbol"); ok && symbol == "" {
		symbol = c.symbolForID(id)
	}
	side := parseOrderSide(trade.StringOr("", "side"))
	var fee *schema.Fee
	if cost, ok := trade.String("fee", "paid_fees"); ok {
		currency := trade.StringOr("", "feeCoinName")
		if currency == "" {
			if side == schema.SideBuy {
				currency = market.Base
			} else {
				currency = market.Quote
			}
		}
		fee = &schema.Fee{Currency: currency, Cost: numeric.Abs(cost)}
	}
	role, _ := trade.LowerString("tradeRole", "exec_type")
	return schema.Trade{
		ID:        trade.StringOr("", "tradeId", "trade_id"),
		OrderID:   trade.StringOr("", "orderId", "order_id"),
		Symbol:    symbol,
		Timestamp: trade.Timestamp("createTime", "create_time"),
		Side:      side,
		Price:     trade.StringOr("", "price"),
		Amount:    trade.StringOr("", "size", "vol"),
		Cost:      trade.StringOr("", "notional"),
		Role:      schema.LiquidityRole(role),
		Fee:       fee,
		Raw:       trade,
	}
}

// parseOrder normalizes an order record across the creation acknowledgement,
// the spot v4 camelCase shape, the legacy snake_case shape, and the contract
// shape.
//
// The venue's limit_maker and ioc types fold into limit plus a time-in-force;
// the literal price "market price" is a sentinel for an unset price.
func (c *Client) parseOrder(market schema.Market, order shared.Payload) schema.Order {
	symbol := market.Symbol
	if id, ok := order.String("symbol"); ok {
		symbol = c.symbolForID(id)
	}

	orderType := order.StringOr("", "type")
	var tif schema.TimeInForce
	postOnly := false
	switch orderType {
	case "limit_maker":
		orderType = "limit"
		postOnly = true
		tif = schema.TIFPostOnly
	case "ioc":
		orderType = "limit"
		tif = schema.TIFImmediateOrCancel
	}

	price := order.StringOr("", "price")
	if price == "market price" {
		price = ""
	}

	var status schema.OrderStatus
	if raw, ok := order.String("status", "state"); ok {
		status = parseOrderStatus(market.Type, raw)
	}

	return schema.Order{
		ID:            order.StringOr("", "order_id", "orderId"),
		ClientOrderID: order.StringOr("", "client_order_id", "clientOrderId"),
		Symbol:        symbol,
		Timestamp:     order.Timestamp("create_time", "createTime"),
		LastUpdate:    order.Timestamp("update_time", "updateTime"),
		Type:          schema.OrderType(orderType),
		Side:          parseOrderSide(order.StringOr("", "side")),
		TimeInForce:   tif,
		PostOnly:      postOnly,
		Price:         numeric.OmitZero(price),
		TriggerPrice:  numeric.OmitZero(order.StringOr("", "activation_price", "trigger_price")),
		Amount:        numeric.OmitZero(order.StringOr("", "size")),
		Cost:          order.StringOr("", "filled_notional", "filledNotional"),
		Average:       numeric.OmitZero(order.StringOr("", "price_avg", "priceAvg", "deal_avg_price")),
		Filled:        order.StringOr("", "filled_size", "filledSize", "deal_size"),
		Status:        status,
		Raw:           order,
	}
}
