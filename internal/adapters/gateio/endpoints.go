package gateio

import "net/http"

// apiSection is the first path segment under /api/v4. It selects both the
// configured base URL and the canonical signature path.
type apiSection string

const (
	sectionSpot     apiSection = "spot"
	sectionMargin   apiSection = "margin"
	sectionFutures  apiSection = "futures"
	sectionDelivery apiSection = "delivery"
	sectionWallet   apiSection = "wallet"
)

// route describes one REST endpoint. Path templates carry {placeholder}
// segments ({settle}, {order_id}) resolved at request-build time. Weights
// mirror the venue's published request costs, rounded up to whole units.
type route struct {
	Section apiSection
	Path    string
	Method  string
	Private bool
	Weight  int
}

const (
	routeSpotCurrencyPairs   = "spot/currency_pairs"
	routeSpotCurrencies      = "spot/currencies"
	routeSpotTickers         = "spot/tickers"
	routeMarginCurrencyPairs = "margin/currency_pairs"
	routeFuturesContracts    = "futures/contracts"
	routeFuturesContract     = "futures/contract"
	routeFuturesTickers      = "futures/tickers"
	routeDeliveryContracts   = "delivery/contracts"
	routeDeliveryTickers     = "delivery/tickers"

	routeSpotAccounts        = "spot/accounts"
	routeSpotAccountBook     = "spot/account_book"
	routeSpotOrders          = "spot/orders"
	routeSpotOrderDetail     = "spot/order"
	routeSpotCancelOrder     = "spot/cancel_order"
	routeSpotMyTrades        = "spot/my_trades"
	routeMarginAccounts      = "margin/accounts"
	routeCrossAccounts       = "margin/cross_accounts"
	routeFuturesAccounts     = "futures/accounts"
	routeFuturesPositions    = "futures/positions"
	routeFuturesOrders       = "futures/orders"
	routeFuturesOrderDetail  = "futures/order"
	routeFuturesCancelOrder  = "futures/cancel_order"
	routeFuturesMyTrades     = "futures/my_trades"
	routeDeliveryAccounts    = "delivery/accounts"
	routeDeliveryPositions   = "delivery/positions"
	routeDeliveryOrders      = "delivery/orders"
	routeDeliveryOrderDetail = "delivery/order"
	routeDeliveryCancelOrder = "delivery/cancel_order"
	routeDeliveryMyTrades    = "delivery/my_trades"
	routeWalletTransfers     = "wallet/transfers"
)

var routes = map[string]route{
	routeSpotCurrencyPairs:   {Section: sectionSpot, Path: "currency_pairs", Method: http.MethodGet, Weight: 1},
	routeSpotCurrencies:      {Section: sectionSpot, Path: "currencies", Method: http.MethodGet, Weight: 1},
	routeSpotTickers:         {Section: sectionSpot, Path: "tickers", Method: http.MethodGet, Weight: 1},
	routeMarginCurrencyPairs: {Section: sectionMargin, Path: "currency_pairs", Method: http.MethodGet, Weight: 1},
	routeFuturesContracts:    {Section: sectionFutures, Path: "{settle}/contracts", Method: http.MethodGet, Weight: 2},
	routeFuturesContract:     {Section: sectionFutures, Path: "{settle}/contracts/{contract}", Method: http.MethodGet, Weight: 2},
	routeFuturesTickers:      {Section: sectionFutures, Path: "{settle}/tickers", Method: http.MethodGet, Weight: 2},
	routeDeliveryContracts:   {Section: sectionDelivery, Path: "{settle}/contracts", Method: http.MethodGet, Weight: 2},
	routeDeliveryTickers:     {Section: sectionDelivery, Path: "{settle}/tickers", Method: http.MethodGet, Weight: 2},

	routeSpotAccounts:        {Section: sectionSpot, Path: "accounts", Method: http.MethodGet, Private: true, Weight: 1},
	routeSpotAccountBook:     {Section: sectionSpot, Path: "account_book", Method: http.MethodGet, Private: true, Weight: 1},
	routeSpotOrders:          {Section: sectionSpot, Path: "orders", Method: http.MethodPost, Private: true, Weight: 1},
	routeSpotOrderDetail:     {Section: sectionSpot, Path: "orders/{order_id}", Method: http.MethodGet, Private: true, Weight: 1},
	routeSpotCancelOrder:     {Section: sectionSpot, Path: "orders/{order_id}", Method: http.MethodDelete, Private: true, Weight: 1},
	routeSpotMyTrades:        {Section: sectionSpot, Path: "my_trades", Method: http.MethodGet, Private: true, Weight: 1},
	routeMarginAccounts:      {Section: sectionMargin, Path: "accounts", Method: http.MethodGet, Private: true, Weight: 2},
	routeCrossAccounts:       {Section: sectionMargin, Path: "cross/accounts", Method: http.MethodGet, Private: true, Weight: 2},
	routeFuturesAccounts:     {Section: sectionFutures, Path: "{settle}/accounts", Method: http.MethodGet, Private: true, Weight: 2},
	routeFuturesPositions:    {Section: sectionFutures, Path: "{settle}/positions", Method: http.MethodGet, Private: true, Weight: 2},
	routeFuturesOrders:       {Section: sectionFutures, Path: "{settle}/orders", Method: http.MethodPost, Private: true, Weight: 2},
	routeFuturesOrderDetail:  {Section: sectionFutures, Path: "{settle}/orders/{order_id}", Method: http.MethodGet, Private: true, Weight: 2},
	routeFuturesCancelOrder:  {Section: sectionFutures, Path: "{settle}/orders/{order_id}", Method: http.MethodDelete, Private: true, Weight: 2},
	routeFuturesMyTrades:     {Section: sectionFutures, Path: "{settle}/my_trades", Method: http.MethodGet, Private: true, Weight: 2},
	routeDeliveryAccounts:    {Section: sectionDelivery, Path: "{settle}/accounts", Method: http.MethodGet, Private: true, Weight: 2},
	routeDeliveryPositions:   {Section: sectionDelivery, Path: "{settle}/positions", Method: http.MethodGet, Private: true, Weight: 2},
	routeDeliveryOrders:      {Section: sectionDelivery, Path: "{settle}/orders", Method: http.MethodPost, Private: true, Weight: 2},
	routeDeliveryOrderDetail: {Section: sectionDelivery, Path: "{settle}/orders/{order_id}", Method: http.MethodGet, Private: true, Weight: 2},
	routeDeliveryCancelOrder: {Section: sectionDelivery, Path: "{settle}/orders/{order_id}", Method: http.MethodDelete, Private: true, Weight: 2},
	routeDeliveryMyTrades:    {Section: sectionDelivery, Path: "{settle}/my_trades", Method: http.MethodGet, Private: true, Weight: 2},
	routeWalletTransfers:     {Section: sectionWallet, Path: "transfers", Method: http.MethodPost, Private: true, Weight: 300},
}
