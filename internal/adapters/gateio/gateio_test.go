package gateio

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/venuekit/venuekit/config"
	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
	"github.com/venuekit/venuekit/internal/schema"
)

type stubDoer struct {
	requests []*shared.SignedRequest
	body     string
	status   int
}

func (s *stubDoer) Do(_ context.Context, req *shared.SignedRequest) ([]byte, int, error) {
	s.requests = append(s.requests, req)
	status := s.status
	if status == 0 {
		status = 200
	}
	return []byte(s.body), status, nil
}

func testSettings() config.VenueSettings {
	return config.VenueSettings{
		REST: map[string]string{
			"spot":     "https://api.example/api/v4",
			"margin":   "https://api.example/api/v4",
			"futures":  "https://api.example/api/v4",
			"delivery": "https://api.example/api/v4",
			"wallet":   "https://api.example/api/v4",
		},
		Credentials:   config.Credentials{APIKey: "key", APISecret: "secret"},
		DefaultType:   "spot",
		DefaultSettle: "usdt",
	}
}

func testClient(doer *stubDoer) *Client {
	c := New(testSettings(), doer)
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	c.SetMarkets([]schema.Market{
		{
			ID: "BTC_USDT", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT",
			Type:      schema.MarketSpot,
			Precision: schema.Precision{Amount: "0.0001", Price: "0.01"},
		},
		{
			ID: "BTC_USDT", Symbol: "BTC/USDT:USDT", Base: "BTC", Quote: "USDT",
			Settle: "USDT", SettleID: "usdt",
			Type: schema.MarketSwap, Contract: true, Linear: true, ContractSize: "0.0001",
			Precision: schema.Precision{Amount: "1", Price: "0.1"},
		},
		{
			ID: "BTC_USDT_20260925", Symbol: "BTC/USDT:BTC", Base: "BTC", Quote: "USDT",
			Settle: "BTC", SettleID: "btc",
			Type: schema.MarketFuture, Contract: true, ContractSize: "0.0001",
			Precision: schema.Precision{Amount: "1", Price: "0.1"},
		},
	})
	return c
}

func TestBuildRequestSignsCanonicalString(t *testing.T) {
	c := testClient(&stubDoer{})
	req, err := c.buildRequest(routeSpotAccounts, nil, map[string]string{"currency": "BTC"}, nil)
	require.NoError(t, err)
	require.Equal(t, "https://api.example/api/v4/spot/accounts?currency=BTC", req.URL)
	require.Equal(t, "key", req.Headers["KEY"])
	require.Equal(t, "1700000000", req.Headers["Timestamp"])
	canonical := strings.Join([]string{
		"GET",
		"/api/v4/spot/accounts",
		"currency=BTC",
		shared.SHA512Hex(""),
		"1700000000",
	}, "\n")
	require.Equal(t, shared.HMACSHA512Hex(canonical, "secret"), req.Headers["SIGN"])
	require.Nil(t, req.Body)
}

func TestBuildRequestSignsBodyHash(t *testing.T) {
	c := testClient(&stubDoer{})
	req, err := c.buildRequest(routeSpotOrders, nil, nil, map[string]any{
		"currency_pair": "BTC_USDT",
		"side":          "buy",
	})
	require.NoError(t, err)
	canonical := strings.Join([]string{
		"POST",
		"/api/v4/spot/orders",
		"",
		shared.SHA512Hex(string(req.Body)),
		"1700000000",
	}, "\n")
	require.Equal(t, shared.HMACSHA512Hex(canonical, "secret"), req.Headers["SIGN"])
	require.Equal(t, "application/json", req.Headers["Content-Type"])
}

func TestBuildRequestImplodesPathParams(t *testing.T) {
	c := testClient(&stubDoer{})
	req, err := c.buildRequest(routeFuturesOrderDetail,
		map[string]string{"settle": "usdt", "order_id": "123"}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "https://api.example/api/v4/futures/usdt/orders/123", req.URL)
	canonical := strings.Join([]string{
		"GET",
		"/api/v4/futures/usdt/orders/123",
		"",
		shared.SHA512Hex(""),
		"1700000000",
	}, "\n")
	require.Equal(t, shared.HMACSHA512Hex(canonical, "secret"), req.Headers["SIGN"])
}

func TestBuildRequestPublicCarriesNoAuth(t *testing.T) {
	c := testClient(&stubDoer{})
	req, err := c.buildRequest(routeSpotTickers, nil, map[string]string{"currency_pair": "BTC_USDT"}, nil)
	require.NoError(t, err)
	require.Empty(t, req.Headers["SIGN"])
	require.Equal(t, "https://api.example/api/v4/spot/tickers?currency_pair=BTC_USDT", req.URL)
}

func TestBuildRequestRequiresCredentials(t *testing.T) {
	settings := testSettings()
	settings.Credentials = config.Credentials{}
	c := New(settings, &stubDoer{})
	_, err := c.buildRequest(routeSpotAccounts, nil, nil, nil)
	require.Error(t, err)
	require.Equal(t, errs.CodeAuth, errs.CodeOf(err))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   errs.Code
		ok     bool
	}{
		{name: "success object", status: 200, body: `{"id":"1"}`, ok: true},
		{name: "success list", status: 200, body: `[{"id":"1"}]`, ok: true},
		{name: "order not found", status: 404, body: `{"label":"ORDER_NOT_FOUND","message":"Order not found"}`, want: errs.CodeOrderNotFound},
		{name: "balance", status: 400, body: `{"label":"BALANCE_NOT_ENOUGH","message":"Not enough balance"}`, want: errs.CodeInsufficientFunds},
		{name: "detail field", status: 400, body: `{"label":"INVALID_ARGUMENT","detail":"invalid size"}`, want: errs.CodeBadRequest},
		{name: "unknown label", status: 400, body: `{"label":"MYSTERY","message":"?"}`, want: errs.CodeExchange},
		{name: "no label", status: 502, body: `bad gateway`, want: errs.CodeExchange},
		{name: "labelled despite 200", status: 200, body: `{"label":"TOO_FAST","message":"slow down"}`, want: errs.CodeRateLimited},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classify(tc.status, []byte(tc.body))
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, tc.want, errs.CodeOf(err))
		})
	}
}

func TestClassifyKeepsRawFields(t *testing.T) {
	err := classify(404, []byte(`{"label":"ORDER_NOT_FOUND","message":"Order not found"}`))
	var e *errs.E
	require.ErrorAs(t, err, &e)
	require.Equal(t, 404, e.HTTP)
	require.Equal(t, "ORDER_NOT_FOUND", e.RawCode)
	require.Equal(t, "Order not found", e.RawMsg)
}

func TestSpotOrderRequestLimit(t *testing.T) {
	c := testClient(&stubDoer{})
	market, err := c.market("BTC/USDT")
	require.NoError(t, err)
	body, err := c.spotOrderRequest(market, schema.OrderLimit, schema.SideBuy, "0.012345", "30000.555", OrderOptions{})
	require.NoError(t, err)
	require.Equal(t, "BTC_USDT", body["currency_pair"])
	require.Equal(t, "limit", body["type"])
	require.Equal(t, "buy", body["side"])
	require.Equal(t, "spot", body["account"])
	require.Equal(t, "0.0123", body["amount"])
	require.Equal(t, "30000.55", body["price"])
	require.NotContains(t, body, "time_in_force")
}

func TestSpotOrderRequestPostOnly(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT")
	body, err := c.spotOrderRequest(market, schema.OrderLimit, schema.SideSell, "0.01", "30000", OrderOptions{PostOnly: true})
	require.NoError(t, err)
	require.Equal(t, "poc", body["time_in_force"])
}

func TestSpotOrderRequestMarketBuyNotional(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT")
	body, err := c.spotOrderRequest(market, schema.OrderMarket, schema.SideBuy, "0.01", "30000.555", OrderOptions{})
	require.NoError(t, err)
	// 0.01 * 30000.555 truncated to the price precision
	require.Equal(t, "300", body["amount"])
	require.Equal(t, "ioc", body["time_in_force"])
	require.NotContains(t, body, "price")
}

func TestSpotOrderRequestMarketBuyWithoutPrice(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT")
	_, err := c.spotOrderRequest(market, schema.OrderMarket, schema.SideBuy, "0.01", "", OrderOptions{})
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidOrder, errs.CodeOf(err))

	settings := testSettings()
	off := false
	settings.CreateMarketBuyOrderRequiresPrice = &off
	c2 := New(settings, &stubDoer{})
	c2.SetMarkets(testClient(&stubDoer{}).Markets())
	body, err := c2.spotOrderRequest(market, schema.OrderMarket, schema.SideBuy, "250.129", "", OrderOptions{})
	require.NoError(t, err)
	require.Equal(t, "250.12", body["amount"])
}

func TestSpotOrderRequestMarketRejectsResting(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT")
	_, err := c.spotOrderRequest(market, schema.OrderMarket, schema.SideSell, "0.01", "", OrderOptions{TimeInForce: schema.TIFGoodTillCancel})
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidOrder, errs.CodeOf(err))
}

func TestSpotOrderRequestMarginAccount(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT")
	body, err := c.spotOrderRequest(market, schema.OrderLimit, schema.SideBuy, "0.01", "30000", OrderOptions{MarginMode: schema.MarginIsolated})
	require.NoError(t, err)
	require.Equal(t, "margin", body["account"])
	body, err = c.spotOrderRequest(market, schema.OrderLimit, schema.SideBuy, "0.01", "30000", OrderOptions{MarginMode: schema.MarginCross})
	require.NoError(t, err)
	require.Equal(t, "cross_margin", body["account"])
}

func TestClientOrderText(t *testing.T) {
	text, err := clientOrderText("abc-123")
	require.NoError(t, err)
	require.Equal(t, "t-abc-123", text)

	text, err = clientOrderText("t-already")
	require.NoError(t, err)
	require.Equal(t, "t-already", text)

	_, err = clientOrderText(strings.Repeat("x", 29))
	require.Error(t, err)
	require.Equal(t, errs.CodeBadRequest, errs.CodeOf(err))
}

func TestContractOrderRequestEncodesSignedSize(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT:USDT")
	body, routeName, err := c.contractOrderRequest(market, schema.OrderLimit, schema.SideSell, "2", "30000.55", OrderOptions{ReduceOnly: true})
	require.NoError(t, err)
	require.Equal(t, routeFuturesOrders, routeName)
	require.Equal(t, int64(-2), body["size"])
	require.Equal(t, "30000.5", body["price"])
	require.Equal(t, true, body["reduce_only"])
}

func TestContractOrderRequestMarket(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT:USDT")
	body, _, err := c.contractOrderRequest(market, schema.OrderMarket, schema.SideBuy, "3", "", OrderOptions{})
	require.NoError(t, err)
	require.Equal(t, "0", body["price"])
	require.Equal(t, "ioc", body["tif"])
	require.Equal(t, int64(3), body["size"])
}

func TestContractOrderRequestTruncatesToWholeContracts(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT:USDT")
	body, _, err := c.contractOrderRequest(market, schema.OrderLimit, schema.SideBuy, "1.5", "30000", OrderOptions{})
	require.NoError(t, err)
	require.Equal(t, int64(1), body["size"])
}

func TestContractOrderRequestDeliveryRoute(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT:BTC")
	_, routeName, err := c.contractOrderRequest(market, schema.OrderLimit, schema.SideBuy, "1", "30000", OrderOptions{})
	require.NoError(t, err)
	require.Equal(t, routeDeliveryOrders, routeName)
}

func TestCreateOrderSpotRoundTrip(t *testing.T) {
	doer := &stubDoer{body: `{
		"id": "95282841887",
		"text": "t-abc",
		"create_time_ms": 1637383156017,
		"status": "open",
		"currency_pair": "BTC_USDT",
		"type": "limit",
		"account": "spot",
		"side": "buy",
		"amount": "0.01",
		"price": "30000",
		"time_in_force": "gtc",
		"left": "0.01",
		"fill_price": "0",
		"filled_total": "0"
	}`}
	c := testClient(doer)
	order, err := c.CreateOrder(context.Background(), "BTC/USDT", schema.OrderLimit, schema.SideBuy, "0.01", "30000", OrderOptions{ClientOrderID: "abc"})
	require.NoError(t, err)
	require.Len(t, doer.requests, 1)
	require.Equal(t, "POST", doer.requests[0].Method)
	require.Equal(t, "https://api.example/api/v4/spot/orders", doer.requests[0].URL)
	sent, decodeErr := shared.DecodeObject(doer.requests[0].Body)
	require.NoError(t, decodeErr)
	require.Equal(t, "t-abc", sent.StringOr("", "text"))
	require.Equal(t, "0.01", sent.StringOr("", "amount"))

	require.Equal(t, "95282841887", order.ID)
	require.Equal(t, "t-abc", order.ClientOrderID)
	require.Equal(t, "BTC/USDT", order.Symbol)
	require.Equal(t, schema.StatusOpen, order.Status)
	require.Equal(t, schema.TIFGoodTillCancel, order.TimeInForce)
	require.Equal(t, int64(1637383156017), order.Timestamp)
	require.Equal(t, "0.01", order.Amount)
	require.Equal(t, "0", order.Filled)
	require.Equal(t, "0.01", order.Remaining)
}

func TestCreateOrderSurfacesVenueError(t *testing.T) {
	doer := &stubDoer{status: 400, body: `{"label":"BALANCE_NOT_ENOUGH","message":"Not enough balance"}`}
	c := testClient(doer)
	_, err := c.CreateOrder(context.Background(), "BTC/USDT", schema.OrderLimit, schema.SideBuy, "0.01", "30000", OrderOptions{})
	require.Error(t, err)
	require.Equal(t, errs.CodeInsufficientFunds, errs.CodeOf(err))
}

func TestParseOrderContract(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT:USDT")
	payload, err := shared.DecodeObject([]byte(`{
		"id": 123028481731,
		"contract": "BTC_USDT",
		"tif": "ioc",
		"is_reduce_only": false,
		"create_time": 1643950262.68,
		"finish_time": 1643950262.68,
		"price": "0",
		"size": -1,
		"left": 0,
		"fill_price": "1.05273",
		"finish_as": "filled",
		"status": "finished"
	}`))
	require.NoError(t, err)
	order := c.parseOrder(market, payload)
	require.Equal(t, "123028481731", order.ID)
	require.Equal(t, schema.OrderMarket, order.Type)
	require.Equal(t, schema.SideSell, order.Side)
	require.Equal(t, schema.StatusClosed, order.Status)
	require.Equal(t, "1", order.Amount)
	require.Equal(t, "1", order.Filled)
	require.Equal(t, "0", order.Remaining)
	require.Equal(t, "", order.Price)
	require.Equal(t, "1.05273", order.Average)
	require.Equal(t, int64(1643950262680), order.Timestamp)
	require.Equal(t, "BTC/USDT:USDT", order.Symbol)
}

func TestParseOrderSpotMarketBuy(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT")
	payload, err := shared.DecodeObject([]byte(`{
		"id": "95282841887",
		"status": "filled",
		"currency_pair": "BTC_USDT",
		"type": "market",
		"account": "spot",
		"side": "buy",
		"amount": "300",
		"time_in_force": "ioc",
		"left": "0",
		"avg_deal_price": "30000",
		"filled_total": "300"
	}`))
	require.NoError(t, err)
	order := c.parseOrder(market, payload)
	require.Equal(t, schema.StatusClosed, order.Status)
	require.Equal(t, "0.01", order.Amount)
	require.Equal(t, "0.01", order.Filled)
	require.Equal(t, "0", order.Remaining)
	require.Equal(t, "300", order.Cost)
	require.Equal(t, "", order.Price)
}

func TestParseOrderSpotClosedStatus(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT")
	payload, err := shared.DecodeObject([]byte(`{
		"id": "95282841888",
		"status": "closed",
		"currency_pair": "BTC_USDT",
		"type": "limit",
		"account": "spot",
		"side": "sell",
		"amount": "0.0004",
		"price": "29500",
		"left": "0.0000",
		"filled_total": "11.790516"
	}`))
	require.NoError(t, err)
	order := c.parseOrder(market, payload)
	require.Equal(t, schema.StatusClosed, order.Status)
	require.Equal(t, "0.0000", order.Remaining)
	require.Equal(t, "0.0004", order.Filled)
}

func TestParseOrderTriggerEnvelope(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT")
	payload, err := shared.DecodeObject([]byte(`{
		"market": "BTC_USDT",
		"trigger": {"price": "1.08", "rule": ">=", "expiration": 86400},
		"put": {"type": "limit", "side": "buy", "price": "1.08", "amount": "1", "account": "normal", "time_in_force": "gtc"},
		"id": 71639298,
		"ctime": 1643945985,
		"status": "open"
	}`))
	require.NoError(t, err)
	order := c.parseOrder(market, payload)
	require.Equal(t, "71639298", order.ID)
	require.Equal(t, schema.SideBuy, order.Side)
	require.Equal(t, "1.08", order.TriggerPrice)
	require.Equal(t, "1", order.Amount)
	require.Equal(t, "0", order.Filled)
	require.Equal(t, "1", order.Remaining)
	require.Equal(t, schema.StatusOpen, order.Status)
}

func TestParseTradeContractSideFromSize(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT:USDT")
	payload, err := shared.DecodeObject([]byte(`{
		"size": -5,
		"order_id": "130264979823",
		"id": 26884791,
		"role": "taker",
		"create_time": 1645465199.5472,
		"contract": "BTC_USDT",
		"price": "0.136888"
	}`))
	require.NoError(t, err)
	trade := c.parseTrade(market, payload)
	require.Equal(t, schema.SideSell, trade.Side)
	require.Equal(t, "5", trade.Amount)
	require.Equal(t, schema.RoleTaker, trade.Role)
	require.Equal(t, int64(1645465199547), trade.Timestamp)
	require.Equal(t, "BTC/USDT:USDT", trade.Symbol)
	require.Nil(t, trade.Fee)
}

func TestParseTradeSpotFees(t *testing.T) {
	c := testClient(&stubDoer{})
	market, _ := c.market("BTC/USDT")
	payload, err := shared.DecodeObject([]byte(`{
		"id": "2876130500",
		"create_time": "1645464610",
		"create_time_ms": "1645464610777.399200",
		"currency_pair": "BTC_USDT",
		"side": "sell",
		"role": "taker",
		"amount": "10.97",
		"price": "0.137384",
		"order_id": "125924049993",
		"fee": "0.00301420496",
		"fee_currency": "USDT"
	}`))
	require.NoError(t, err)
	trade := c.parseTrade(market, payload)
	require.Equal(t, schema.SideSell, trade.Side)
	require.NotNil(t, trade.Fee)
	require.Equal(t, "USDT", trade.Fee.Currency)
	require.Equal(t, "0.00301420496", trade.Fee.Cost)
	require.Equal(t, int64(1645464610777), trade.Timestamp)
}

func TestParseTicker(t *testing.T) {
	c := testClient(&stubDoer{})
	payload, err := shared.DecodeObject([]byte(`{
		"currency_pair": "BTC_USDT",
		"last": "30000",
		"lowest_ask": "30001",
		"highest_bid": "29999",
		"change_percentage": "-1.18",
		"base_volume": "1219.05",
		"quote_volume": "8807.40",
		"high_24h": "31000",
		"low_24h": "29000"
	}`))
	require.NoError(t, err)
	ticker := c.parseTicker(payload)
	require.Equal(t, "BTC/USDT", ticker.Symbol)
	require.Equal(t, "30000", ticker.Last)
	require.Equal(t, "30001", ticker.Ask)
	require.Equal(t, "29999", ticker.Bid)
	require.Equal(t, "-1.18", ticker.Percentage)
	require.Equal(t, "8807.40", ticker.QuoteVolume)
}

func TestParseTickerContractSentinelsAndDerivation(t *testing.T) {
	c := testClient(&stubDoer{})
	payload, err := shared.DecodeObject([]byte(`{
		"contract": "BTC_USDT",
		"last": "2",
		"volume_24h_base": "nan",
		"volume_24h_quote": "nan"
	}`))
	require.NoError(t, err)
	ticker := c.parseTicker(payload)
	require.Equal(t, "BTC/USDT:USDT", ticker.Symbol)
	require.Equal(t, "0", ticker.BaseVolume)
	require.Equal(t, "0", ticker.QuoteVolume)

	payload, err = shared.DecodeObject([]byte(`{"contract": "BTC_USDT", "last": "2", "volume_24h_base": "10"}`))
	require.NoError(t, err)
	ticker = c.parseTicker(payload)
	require.Equal(t, "20", ticker.QuoteVolume)
}

func TestParseSpotMarketMergesMargin(t *testing.T) {
	entry, err := shared.DecodeObject([]byte(`{
		"id": "ETH_USDT",
		"base": "ETH",
		"quote": "USDT",
		"fee": "0.2",
		"min_base_amount": "0.01",
		"min_quote_amount": "1",
		"amount_precision": 4,
		"precision": 2,
		"trade_status": "tradable"
	}`))
	require.NoError(t, err)
	marginEntry, err := shared.DecodeObject([]byte(`{
		"id": "ETH_USDT",
		"leverage": 3,
		"max_quote_amount": "1000000"
	}`))
	require.NoError(t, err)

	m, ok := parseSpotMarket(entry, map[string]shared.Payload{"ETH_USDT": marginEntry})
	require.True(t, ok)
	require.Equal(t, "ETH/USDT", m.Symbol)
	require.Equal(t, schema.MarketSpot, m.Type)
	require.True(t, m.Margin)
	require.True(t, m.Active)
	require.Equal(t, "0.0001", m.Precision.Amount)
	require.Equal(t, "0.01", m.Precision.Price)
	require.Equal(t, "0.002", m.TakerFee)
	require.Equal(t, "3", m.Limits.Leverage.Max)
	require.Equal(t, "1000000", m.Limits.Cost.Max)

	m, ok = parseSpotMarket(entry, nil)
	require.True(t, ok)
	require.False(t, m.Margin)
	require.Empty(t, m.Limits.Cost.Max)
}

func TestParseContractMarket(t *testing.T) {
	entry, err := shared.DecodeObject([]byte(`{
		"name": "BTC_USDT",
		"quanto_multiplier": "0.0001",
		"order_price_round": "0.1",
		"order_size_min": 1,
		"order_size_max": 1000000,
		"leverage_min": "1",
		"leverage_max": "100",
		"maker_fee_rate": "-0.00025",
		"taker_fee_rate": "0.00075",
		"order_price_deviate": "0.5",
		"mark_price": "30000"
	}`))
	require.NoError(t, err)
	m, ok := parseContractMarket(entry, "usdt")
	require.True(t, ok)
	require.Equal(t, "BTC/USDT:USDT", m.Symbol)
	require.Equal(t, schema.MarketSwap, m.Type)
	require.True(t, m.Linear)
	require.Equal(t, "0.0001", m.ContractSize)
	require.Equal(t, "1", m.Precision.Amount)
	require.Equal(t, "0.1", m.Precision.Price)
	require.Equal(t, "-0.00025", m.MakerFee)
	require.Equal(t, "15000", m.Limits.Price.Min)
	require.Equal(t, "45000", m.Limits.Price.Max)
	require.Zero(t, m.Expiry)
}

func TestParseContractMarketDelivery(t *testing.T) {
	entry, err := shared.DecodeObject([]byte(`{
		"name": "BTC_USDT_20260925",
		"quanto_multiplier": "0.0001",
		"order_price_round": "0.1",
		"expire_time": 1790294400,
		"taker_fee_rate": "0.00075"
	}`))
	require.NoError(t, err)
	m, ok := parseContractMarket(entry, "btc")
	require.True(t, ok)
	require.Equal(t, schema.MarketFuture, m.Type)
	require.Equal(t, "BTC/USDT:BTC", m.Symbol)
	require.False(t, m.Linear)
	require.True(t, m.Inverse)
	require.Equal(t, int64(1790294400000), m.Expiry)
	// no maker rate published, taker applies to both sides
	require.Equal(t, "0.00075", m.MakerFee)
}

func TestFetchBalanceSpot(t *testing.T) {
	doer := &stubDoer{body: `[
		{"currency": "usdt", "available": "100.5", "locked": "10"},
		{"currency": "BTC", "available": "0.5", "locked": "0"}
	]`}
	c := testClient(doer)
	balance, err := c.FetchBalance(context.Background(), schema.MarketSpot)
	require.NoError(t, err)
	require.Equal(t, "100.5", balance.Accounts["USDT"].Free)
	require.Equal(t, "10", balance.Accounts["USDT"].Used)
	require.Equal(t, "0.5", balance.Accounts["BTC"].Free)
}

func TestFetchBalanceIsolatedMargin(t *testing.T) {
	doer := &stubDoer{body: `[{
		"currency_pair": "BTC_USDT",
		"base": {"currency": "BTC", "available": "0.1", "locked": "0", "borrowed": "0.05", "interest": "0.001"},
		"quote": {"currency": "USDT", "available": "100", "locked": "0", "borrowed": "0", "interest": "0"}
	}]`}
	c := testClient(doer)
	balance, err := c.FetchBalance(context.Background(), schema.MarketMargin)
	require.NoError(t, err)
	pair, ok := balance.Isolated["BTC/USDT"]
	require.True(t, ok)
	require.Equal(t, "0.1", pair.Base.Free)
	require.Equal(t, "0.051", pair.Base.Debt)
	require.Equal(t, "0", pair.Quote.Debt)
}

func TestFetchBalanceCrossMargin(t *testing.T) {
	doer := &stubDoer{body: `{
		"balances": {"USDT": {"available": "1", "freeze": "0.2", "borrowed": "3", "interest": "0.1"}}
	}`}
	settings := testSettings()
	settings.DefaultMarginMode = "cross"
	c := New(settings, doer)
	balance, err := c.FetchBalance(context.Background(), schema.MarketMargin)
	require.NoError(t, err)
	require.Equal(t, "1", balance.Accounts["USDT"].Free)
	require.Equal(t, "0.2", balance.Accounts["USDT"].Used)
	require.Equal(t, "3.1", balance.Accounts["USDT"].Debt)
}

func TestFetchBalanceSwap(t *testing.T) {
	doer := &stubDoer{body: `{
		"currency": "USDT",
		"total": "12.51345151332",
		"available": "2.5",
		"position_margin": "10.01345151332"
	}`}
	c := testClient(doer)
	balance, err := c.FetchBalance(context.Background(), schema.MarketSwap)
	require.NoError(t, err)
	account := balance.Accounts["USDT"]
	require.Equal(t, "2.5", account.Free)
	require.Equal(t, "12.51345151332", account.Total)
	require.Equal(t, "10.01345151332", account.Used)
	require.Contains(t, doer.requests[0].URL, "/futures/usdt/accounts")
}

func TestFetchPositions(t *testing.T) {
	doer := &stubDoer{body: `[{
		"contract": "BTC_USDT",
		"size": "2",
		"leverage": "0",
		"value": "12.475572",
		"margin": "0.740721495056",
		"entry_price": "62422.6",
		"mark_price": "62377.86",
		"maintenance_rate": "0.005",
		"unrealised_pnl": "-0.008948",
		"liq_price": "59058.58"
	}]`}
	settings := testSettings()
	settings.DefaultType = "swap"
	c := New(settings, doer)
	c.SetMarkets(testClient(&stubDoer{}).Markets())
	positions, err := c.FetchPositions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	p := positions[0]
	require.Equal(t, "BTC/USDT:USDT", p.Symbol)
	require.Equal(t, schema.PositionLong, p.Side)
	require.Equal(t, "2", p.Contracts)
	require.Equal(t, schema.MarginCross, p.MarginMode)
	require.Equal(t, "0.0001", p.ContractSize)
	require.Equal(t, "0.005", p.MaintenanceRate)
	require.Equal(t, "0.06237786", p.MaintenanceMargin)
	require.Equal(t, "59058.58", p.LiquidationPrice)
}

func TestFetchFundingRate(t *testing.T) {
	doer := &stubDoer{body: `{
		"name": "BTC_USDT",
		"funding_rate": "0.002053",
		"funding_rate_indicative": "0.000219",
		"funding_next_apply": 1610035200,
		"funding_interval": 28800,
		"mark_price": "37985.6",
		"index_price": "37954.92"
	}`}
	c := testClient(doer)
	rate, err := c.FetchFundingRate(context.Background(), "BTC/USDT:USDT")
	require.NoError(t, err)
	require.Equal(t, "BTC/USDT:USDT", rate.Symbol)
	require.Equal(t, "0.002053", rate.FundingRate)
	require.Equal(t, "0.000219", rate.NextFundingRate)
	require.Equal(t, int64(1610035200000), rate.FundingTimestamp)
	require.Equal(t, "8h", rate.Interval)
	require.Contains(t, doer.requests[0].URL, "/futures/usdt/contracts/BTC_USDT")
}

func TestFetchFundingRateRejectsSpot(t *testing.T) {
	c := testClient(&stubDoer{})
	_, err := c.FetchFundingRate(context.Background(), "BTC/USDT")
	require.Error(t, err)
	require.Equal(t, errs.CodeBadSymbol, errs.CodeOf(err))
}

func TestTransferSpotToSwap(t *testing.T) {
	doer := &stubDoer{body: ``}
	c := testClient(doer)
	transfer, err := c.Transfer(context.Background(), "USDT", "25", TransferOptions{FromAccount: "spot", ToAccount: "swap"})
	require.NoError(t, err)
	require.Equal(t, "USDT", transfer.Code)
	require.Equal(t, "25", transfer.Amount)
	require.Equal(t, "ok", transfer.Status)
	sent, decodeErr := shared.DecodeObject(doer.requests[0].Body)
	require.NoError(t, decodeErr)
	require.Equal(t, "spot", sent.StringOr("", "from"))
	require.Equal(t, "futures", sent.StringOr("", "to"))
	require.Equal(t, "usdt", sent.StringOr("", "settle"))
}

func TestTransferMarginRequiresSymbol(t *testing.T) {
	c := testClient(&stubDoer{})
	_, err := c.Transfer(context.Background(), "USDT", "25", TransferOptions{FromAccount: "spot", ToAccount: "margin"})
	require.Error(t, err)
	require.Equal(t, errs.CodeBadRequest, errs.CodeOf(err))

	doer := &stubDoer{body: ``}
	c = testClient(doer)
	_, err = c.Transfer(context.Background(), "USDT", "25", TransferOptions{FromAccount: "spot", ToAccount: "margin", Symbol: "BTC/USDT"})
	require.NoError(t, err)
	sent, decodeErr := shared.DecodeObject(doer.requests[0].Body)
	require.NoError(t, decodeErr)
	require.Equal(t, "BTC_USDT", sent.StringOr("", "currency_pair"))
}

func TestFetchLedger(t *testing.T) {
	doer := &stubDoer{body: `[
		{"id": "123", "time": 1547633726123, "currency": "BTC", "change": "1.03", "balance": "4.59316525194", "type": "margin_in"},
		{"id": "124", "time": 1547633726456, "currency": "BTC", "change": "-0.5", "balance": "4.09316525194", "type": "withdraw"}
	]`}
	c := testClient(doer)
	entries, err := c.FetchLedger(context.Background(), "btc", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "in", entries[0].Direction)
	require.Equal(t, "1.03", entries[0].Amount)
	require.Equal(t, int64(1547633726123), entries[0].Timestamp)
	require.Equal(t, "out", entries[1].Direction)
	require.Equal(t, "0.5", entries[1].Amount)
	require.Contains(t, doer.requests[0].URL, "currency=BTC")
	require.Contains(t, doer.requests[0].URL, "limit=10")
}

func TestCancelOrderSpot(t *testing.T) {
	doer := &stubDoer{body: `{"id": "95282841887", "status": "cancelled", "currency_pair": "BTC_USDT", "amount": "0.01", "left": "0.01"}`}
	c := testClient(doer)
	order, err := c.CancelOrder(context.Background(), "BTC/USDT", "95282841887")
	require.NoError(t, err)
	require.Equal(t, "DELETE", doer.requests[0].Method)
	require.Contains(t, doer.requests[0].URL, "/spot/orders/95282841887")
	require.Contains(t, doer.requests[0].URL, "currency_pair=BTC_USDT")
	require.Equal(t, schema.StatusCanceled, order.Status)
}

func TestFetchOrderContract(t *testing.T) {
	doer := &stubDoer{body: `{"id": 123, "contract": "BTC_USDT", "size": 1, "left": 0, "price": "30000", "tif": "gtc", "finish_as": "filled"}`}
	c := testClient(doer)
	order, err := c.FetchOrder(context.Background(), "BTC/USDT:USDT", "123", "")
	require.NoError(t, err)
	require.Contains(t, doer.requests[0].URL, "/futures/usdt/orders/123")
	require.Equal(t, schema.StatusClosed, order.Status)
	require.Equal(t, schema.OrderLimit, order.Type)
	require.Equal(t, schema.SideBuy, order.Side)
}

func TestFetchMyTradesSpot(t *testing.T) {
	doer := &stubDoer{body: `[{"id": "1", "currency_pair": "BTC_USDT", "side": "buy", "amount": "0.01", "price": "30000", "role": "maker"}]`}
	c := testClient(doer)
	trades, err := c.FetchMyTrades(context.Background(), "BTC/USDT", 50)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	require.Equal(t, schema.RoleMaker, trades[0].Role)
	require.Contains(t, doer.requests[0].URL, "/spot/my_trades")
	require.Contains(t, doer.requests[0].URL, "limit=50")
}

func TestFetchTickerRoutesByMarketType(t *testing.T) {
	doer := &stubDoer{body: `[{"contract": "BTC_USDT", "last": "30000"}]`}
	c := testClient(doer)
	ticker, err := c.FetchTicker(context.Background(), "BTC/USDT:USDT")
	require.NoError(t, err)
	require.Equal(t, "BTC/USDT:USDT", ticker.Symbol)
	require.Contains(t, doer.requests[0].URL, "/futures/usdt/tickers")
	require.Contains(t, doer.requests[0].URL, "contract=BTC_USDT")
}

func TestFetchCurrencies(t *testing.T) {
	doer := &stubDoer{body: `[
		{"currency": "BCN", "delisted": false, "withdraw_disabled": true, "deposit_disabled": true, "trade_disabled": false},
		{"currency": "usdt", "delisted": false, "withdraw_disabled": false, "deposit_disabled": false, "trade_disabled": false}
	]`}
	c := testClient(doer)
	currencies, err := c.FetchCurrencies(context.Background())
	require.NoError(t, err)
	require.False(t, currencies["BCN"].Withdraw)
	require.False(t, currencies["BCN"].Deposit)
	require.True(t, currencies["USDT"].Withdraw)
	require.Equal(t, "usdt", currencies["USDT"].ID)
}
