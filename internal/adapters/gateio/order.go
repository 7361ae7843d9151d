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

// orderStatuses translates raw order states. Contract orders report the
// terminal reason under finish_as; spot orders a plain status.
var orderStatuses = map[string]schema.OrderStatus{
	"open":       schema.StatusOpen,
	"_new":       schema.StatusOpen,
	"closed":     schema.StatusClosed,
	"filled":     schema.StatusClosed,
	"finished":   schema.StatusClosed,
	"succeeded":  schema.StatusClosed,
	"liquidated": schema.StatusClosed,
	"cancelled":  schema.StatusCanceled,
	"ioc":        schema.StatusCanceled,
	"failed":     schema.StatusCanceled,
	"expired":    schema.StatusCanceled,
}

func parseOrderStatus(raw string) schema.OrderStatus {
	if status, ok := orderStatuses[raw]; ok {
		return status
	}
	// unmapped states surface as open with the raw value kept in Raw
	return schema.StatusOpen
}

// timeInForceValue folds unified flags into the venue vocabulary: poc is the
// venue's post-only ("pending or cancelled").
func timeInForceValue(opts OrderOptions) string {
	if opts.PostOnly || opts.TimeInForce == schema.TIFPostOnly {
		return "poc"
	}
	switch opts.TimeInForce {
	case schema.TIFImmediateOrCancel:
		return "ioc"
	case schema.TIFFillOrKill:
		return "fok"
	case schema.TIFGoodTillCancel:
		return "gtc"
	}
	return ""
}

// clientOrderText validates and prefixes a caller-assigned order id. The
// venue demands a "t-" prefix and at most 28 bytes behind it.
func clientOrderText(id string) (string, error) {
	if len(id) > 28 {
		return "", errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("client order id exceeds 28 characters"))
	}
	if !strings.HasPrefix(id, "t") {
		id = "t-" + id
	}
	return id, nil
}

// accountFor selects the venue account a spot order trades against.
func accountFor(mode schema.MarginMode) string {
	switch mode {
	case schema.MarginIsolated:
		return "margin"
	case schema.MarginCross:
		return "cross_margin"
	}
	return "spot"
}

// CreateOrder places an order and returns the normalized venue
// acknowledgement, which for this venue is the full order record.
func (c *Client) CreateOrder(ctx context.Context, symbol string, orderType schema.OrderType, side schema.OrderSide, amount, price string, opts OrderOptions) (schema.Order, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.Order{}, err
	}
	if market.Contract {
		body, routeName, err := c.contractOrderRequest(market, orderType, side, amount, price, opts)
		if err != nil {
			return schema.Order{}, err
		}
		payload, err := c.callObject(ctx, routeName, map[string]string{"settle": c.settleFor(market)}, nil, body)
		if err != nil {
			return schema.Order{}, err
		}
		return c.parseOrder(market, payload), nil
	}
	body, err := c.spotOrderRequest(market, orderType, side, amount, price, opts)
	if err != nil {
		return schema.Order{}, err
	}
	payload, err := c.callObject(ctx, routeSpotOrders, nil, nil, body)
	if err != nil {
		return schema.Order{}, err
	}
	return c.parseOrder(market, payload), nil
}

// spotOrderRequest builds the body for a spot, margin, or cross-margin order.
//
// Market orders must be IOC or FOK; when no time in force is given IOC is
// assumed. Market buys spend quote currency: the amount field carries the
// notional, amount*price truncated to the price precision, unless the
// createMarketBuyOrderRequiresPrice switch is off, in which case the amount
// argument (or opts.Cost) is already the notional.
func (c *Client) spotOrderRequest(market schema.Market, orderType schema.OrderType, side schema.OrderSide, amount, price string, opts OrderOptions) (map[string]any, error) {
	tif := timeInForceValue(opts)
	body := map[string]any{
		"currency_pair": market.ID,
		"type":          string(orderType),
		"side":          string(side),
		"account":       accountFor(opts.MarginMode),
	}
	switch orderType {
	case schema.OrderMarket:
		if tif == "gtc" || tif == "poc" {
			return nil, errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("market orders accept only IOC or FOK time in force"))
		}
		if tif == "" {
			tif = "ioc"
		}
		if side == schema.SideBuy {
			notional := opts.Cost
			if c.settings.MarketBuyRequiresPrice() {
				if price == "" && notional == "" {
					return nil, errs.New(Venue, errs.CodeInvalidOrder,
						errs.WithMessage("market buys require a price to derive the quote cost, or the createMarketBuyOrderRequiresPrice switch off"))
				}
				if notional == "" {
					notional = numeric.Mul(amount, price)
				}
			} else if notional == "" {
				notional = amount
			}
			body["amount"] = numeric.TruncateToStep(notional, market.Precision.Price)
		} else {
			body["amount"] = numeric.TruncateToStep(amount, market.Precision.Amount)
		}
	case schema.OrderLimit:
		if price == "" {
			return nil, errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("limit orders require a price"))
		}
		body["amount"] = numeric.TruncateToStep(amount, market.Precision.Amount)
		body["price"] = numeric.TruncateToStep(price, market.Precision.Price)
	default:
		return nil, errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("unsupported order type "+string(orderType)))
	}
	if tif != "" {
		body["time_in_force"] = tif
	}
	if opts.ClientOrderID != "" {
		text, err := clientOrderText(opts.ClientOrderID)
		if err != nil {
			return nil, err
		}
		body["text"] = text
	}
	return body, nil
}

// contractOrderRequest builds the body for a perpetual or delivery order.
// Size is a signed whole number of contracts, negative for sells. Market
// orders are encoded as price "0" with an IOC or FOK time in force.
func (c *Client) contractOrderRequest(market schema.Market, orderType schema.OrderType, side schema.OrderSide, amount, price string, opts OrderOptions) (map[string]any, string, error) {
	size := numeric.TruncateToStep(amount, market.Precision.Amount)
	contracts, err := strconv.ParseInt(size, 10, 64)
	if err != nil {
		return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("contract size must be a whole number of contracts"))
	}
	if side == schema.SideSell {
		contracts = -contracts
	}
	tif := timeInForceValue(opts)
	body := map[string]any{
		"contract": market.ID,
		"size":     contracts,
	}
	switch orderType {
	case schema.OrderMarket:
		if tif == "gtc" || tif == "poc" {
			return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("market orders accept only IOC or FOK time in force"))
		}
		if tif == "" {
			tif = "ioc"
		}
		body["price"] = "0"
	case schema.OrderLimit:
		if price == "" {
			return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("limit orders require a price"))
		}
		body["price"] = numeric.TruncateToStep(price, market.Precision.Price)
	default:
		return nil, "", errs.New(Venue, errs.CodeInvalidOrder, errs.WithMessage("unsupported order type "+string(orderType)))
	}
	if tif != "" {
		body["tif"] = tif
	}
	if opts.ReduceOnly {
		body["reduce_only"] = true
	}
	if opts.ClientOrderID != "" {
		text, err := clientOrderText(opts.ClientOrderID)
		if err != nil {
			return nil, "", err
		}
		body["text"] = text
	}
	routeName := routeFuturesOrders
	if market.Type == schema.MarketFuture {
		routeName = routeDeliveryOrders
	}
	return body, routeName, nil
}

// CancelOrder cancels one order by id and returns its final state.
func (c *Client) CancelOrder(ctx context.Context, symbol, id string) (schema.Order, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.Order{}, err
	}
	var payload shared.Payload
	if market.Contract {
		routeName := routeFuturesCancelOrder
		if market.Type == schema.MarketFuture {
			routeName = routeDeliveryCancelOrder
		}
		payload, err = c.callObject(ctx, routeName,
			map[string]string{"settle": c.settleFor(market), "order_id": id}, nil, nil)
	} else {
		payload, err = c.callObject(ctx, routeSpotCancelOrder,
			map[string]string{"order_id": id},
			map[string]string{"currency_pair": market.ID, "account": accountFor(schema.MarginMode(c.settings.DefaultMarginMode))}, nil)
	}
	if err != nil {
		return schema.Order{}, err
	}
	order := c.parseOrder(market, payload)
	if order.ID == "" {
		order.ID = id
	}
	return order, nil
}

// FetchOrder retrieves one order by venue id or, when clientOrderID is set,
// by the caller-assigned text id.
func (c *Client) FetchOrder(ctx context.Context, symbol, id, clientOrderID string) (schema.Order, error) {
	market, err := c.market(symbol)
	if err != nil {
		return schema.Order{}, err
	}
	lookup := id
	if clientOrderID != "" {
		lookup, err = clientOrderText(clientOrderID)
		if err != nil {
			return schema.Order{}, err
		}
	}
	var payload shared.Payload
	if market.Contract {
		routeName := routeFuturesOrderDetail
		if market.Type == schema.MarketFuture {
			routeName = routeDeliveryOrderDetail
		}
		payload, err = c.callObject(ctx, routeName,
			map[string]string{"settle": c.settleFor(market), "order_id": lookup}, nil, nil)
	} else {
		payload, err = c.callObject(ctx, routeSpotOrderDetail,
			map[string]string{"order_id": lookup},
			map[string]string{"currency_pair": market.ID}, nil)
	}
	if err != nil {
		return schema.Order{}, err
	}
	return c.parseOrder(market, payload), nil
}

// FetchMyTrades returns the account's fills for one market.
func (c *Client) FetchMyTrades(ctx context.Context, symbol string, limit int) ([]schema.Trade, error) {
	market, err := c.market(symbol)
	if err != nil {
		return nil, err
	}
	var rows []any
	if market.Contract {
		routeName := routeFuturesMyTrades
		if market.Type == schema.MarketFuture {
			routeName = routeDeliveryMyTrades
		}
		query := map[string]string{"contract": market.ID}
		if limit > 0 {
			query["limit"] = strconv.Itoa(limit)
		}
		rows, err = c.callList(ctx, routeName, map[string]string{"settle": c.settleFor(market)}, query)
	} else {
		query := map[string]string{"currency_pair": market.ID}
		if limit > 0 {
			query["limit"] = strconv.Itoa(limit)
		}
		rows, err = c.callList(ctx, routeSpotMyTrades, nil, query)
	}
	if err != nil {
		return nil, err
	}
	out := make([]schema.Trade, 0, len(rows))
	for _, row := range rows {
		entry, ok := shared.AsPayload(row)
		if !ok {
			continue
		}
		out = append(out, c.parseTrade(market, entry))
	}
	return out, nil
}

// parseTrade normalizes a fill. Contract fills encode direction in the sign
// of size and omit the side field; spot fills name it. The venue may charge
// in the trade currency (fee), in GT, or in points; the primary fee wins.
func (c *Client) parseTrade(market schema.Market, trade shared.Payload) schema.Trade {
	symbol := market.Symbol
	_, isContract := trade["contract"]
	if id, ok := trade.String("currency_pair", "contract"); ok {
		symbol = c.symbolForID(id, isContract)
	}
	amount := trade.StringOr("", "amount", "size")
	side := schema.OrderSide(trade.StringOr("", "side"))
	if side == "" {
		if numeric.Lt(amount, "0") {
			side = schema.SideSell
		} else {
			side = schema.SideBuy
		}
	}
	var fee *schema.Fee
	if cost, ok := trade.String("fee"); ok {
		currency := strings.ToUpper(trade.StringOr("", "fee_currency"))
		if currency == "" {
			currency = market.Settle
		}
		fee = &schema.Fee{Currency: currency, Cost: cost}
	} else if cost, ok := trade.String("gt_fee"); ok && !numeric.IsZero(cost) {
		fee = &schema.Fee{Currency: "GT", Cost: cost}
	} else if cost, ok := trade.String("point_fee"); ok && !numeric.IsZero(cost) {
		fee = &schema.Fee{Currency: "GatePoint", Cost: cost}
	}
	timestamp := msTimestamp(trade, "create_time_ms")
	if timestamp == 0 {
		timestamp = trade.TimestampSeconds("create_time", "time")
	}
	return schema.Trade{
		ID:        trade.StringOr("", "id"),
		OrderID:   trade.StringOr("", "order_id"),
		Symbol:    symbol,
		Timestamp: timestamp,
		Side:      side,
		Price:     trade.StringOr("", "price"),
		Amount:    numeric.Abs(amount),
		Role:      schema.LiquidityRole(trade.StringOr("", "role")),
		Fee:       fee,
		Raw:       trade,
	}
}

// parseOrder normalizes an order record across the spot shape, the contract
// shape, and the trigger-order envelope that nests the resting order under
// put/initial.
//
// Contract orders leave type implicit: price "0" with an IOC time in force is
// a market order, anything else a limit; direction is the sign of size.
// Remaining arrives as left, so filled is amount-left. Spot market buys
// denominate amount in quote currency; the base legs are recovered through
// the average deal price.
func (c *Client) parseOrder(market schema.Market, order shared.Payload) schema.Order {
	put, hasPut := order.Object("put", "initial")
	if !hasPut {
		put = shared.Payload{}
	}

	contractID := order.StringOr(put.StringOr("", "contract"), "contract")
	orderType := order.StringOr(put.StringOr("", "type"), "type")
	tif := strings.ToUpper(order.StringOr(put.StringOr("", "time_in_force", "tif"), "time_in_force", "tif"))
	if tif == "POC" {
		tif = string(schema.TIFPostOnly)
	}
	postOnly := tif == string(schema.TIFPostOnly)
	amount := order.StringOr(put.StringOr("", "amount", "size"), "amount", "size")
	side := schema.OrderSide(order.StringOr(put.StringOr("", "side"), "side"))
	price := order.StringOr(put.StringOr("", "price"), "price")

	remaining := order.StringOr("", "left")
	filled := numeric.Sub(amount, remaining)
	cost := order.StringOr("", "filled_total")
	average := order.StringOr("", "avg_deal_price", "fill_price")
	if hasPut {
		remaining = amount
		filled = "0"
		cost = "0"
	}

	var rawStatus string
	isContract := contractID != "" || market.Contract
	if isContract {
		if numeric.IsZero(price) && tif == string(schema.TIFImmediateOrCancel) {
			orderType = string(schema.OrderMarket)
		} else {
			orderType = string(schema.OrderLimit)
		}
		if side == "" {
			if numeric.Lt(amount, "0") {
				side = schema.SideSell
			} else {
				side = schema.SideBuy
			}
		}
		rawStatus = order.StringOr("open", "finish_as")
	} else {
		rawStatus = order.StringOr("", "status")
	}

	timestamp := msTimestamp(order, "create_time_ms")
	if timestamp == 0 {
		timestamp = order.TimestampSeconds("create_time", "ctime")
	}
	lastUpdate := msTimestamp(order, "update_time_ms")
	if lastUpdate == 0 {
		lastUpdate = order.TimestampSeconds("update_time", "finish_time")
	}

	symbol := market.Symbol
	if id, ok := order.String("currency_pair", "market"); ok {
		symbol = c.symbolForID(id, false)
	} else if contractID != "" {
		symbol = c.symbolForID(contractID, true)
	}

	var fees []schema.Fee
	if gtFee := order.StringOr("", "gt_fee"); gtFee != "" && !numeric.IsZero(gtFee) {
		fees = append(fees, schema.Fee{Currency: "GT", Cost: gtFee})
	}
	if fee := order.StringOr("", "fee"); fee != "" && !numeric.IsZero(fee) {
		fees = append(fees, schema.Fee{
			Currency: strings.ToUpper(order.StringOr("", "fee_currency")),
			Cost:     fee,
		})
	}
	if rebate := order.StringOr("", "rebated_fee"); rebate != "" && !numeric.IsZero(rebate) {
		fees = append(fees, schema.Fee{
			Currency: strings.ToUpper(order.StringOr("", "rebated_fee_currency")),
			Cost:     numeric.Neg(rebate),
		})
	}

	filled = numeric.Abs(filled)
	remaining = numeric.Abs(remaining)
	amount = numeric.Abs(amount)

	// spot market buys carry the notional in amount; recover base legs
	if order.StringOr("", "account") == "spot" && orderType == string(schema.OrderMarket) && side == schema.SideBuy {
		average = order.StringOr("", "avg_deal_price")
		cost = amount
		filled = numeric.Div(filled, average)
		remaining = numeric.Div(remaining, average)
		amount = numeric.Div(amount, average)
		price = ""
	}

	var reduceOnly bool
	if v, ok := order.Bool("is_reduce_only"); ok {
		reduceOnly = v
	}

	return schema.Order{
		ID:            order.StringOr("", "id"),
		ClientOrderID: order.StringOr("", "text"),
		Symbol:        symbol,
		Timestamp:     timestamp,
		LastUpdate:    lastUpdate,
		Type:          schema.OrderType(orderType),
		Side:          side,
		TimeInForce:   schema.TimeInForce(tif),
		PostOnly:      postOnly,
		ReduceOnly:    reduceOnly,
		Price:         numeric.OmitZero(price),
		TriggerPrice:  numeric.OmitZero(orderTriggerPrice(order)),
		Amount:        amount,
		Filled:        filled,
		Remaining:     remaining,
		Cost:          numeric.Abs(cost),
		Average:       numeric.OmitZero(average),
		Status:        parseOrderStatus(rawStatus),
		Fees:          fees,
		Raw:           order,
	}
}

func orderTriggerPrice(order shared.Payload) string {
	trigger, ok := order.Object("trigger")
	if !ok {
		return ""
	}
	return trigger.StringOr("", "price")
}

// msTimestamp reads a millisecond timestamp field that may carry a fractional
// part ("1645464610777.3992").
func msTimestamp(p shared.Payload, keys ...string) int64 {
	s, ok := p.String(keys...)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return 0
	}
	return int64(f)
}
