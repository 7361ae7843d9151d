package bitmart

import "net/http"

// routeClass selects which base URL a route is served from.
type routeClass string

const (
	classSpot     routeClass = "spot"
	classContract routeClass = "contract"
)

// route describes one REST endpoint: path template, HTTP method, auth
// requirement, host class, and rate weight. Weights mirror the venue's
// published request costs, rounded up to whole units.
type route struct {
	Path    string
	Method  string
	Private bool
	Class   routeClass
	Weight  int
}

// Route names used by the client. The table is data: adding an endpoint never
// touches request-building code.
const (
	routeSpotSymbolsDetails   = "spot/v1/symbols/details"
	routeSpotTickers          = "spot/quotation/v3/tickers"
	routeSpotTicker           = "spot/quotation/v3/ticker"
	routeSpotTrades           = "spot/quotation/v3/trades"
	routeCurrencies           = "account/v1/currencies"
	routeContractDetails      = "contract/public/details"
	routeContractFundingRate  = "contract/public/funding-rate"
	routeSpotWallet           = "spot/v1/wallet"
	routeAccountWallet        = "account/v1/wallet"
	routeMarginAccount        = "spot/v1/margin/isolated/account"
	routeContractAssets       = "contract/private/assets-detail"
	routeContractPosition     = "contract/private/position"
	routeSpotSubmitOrder      = "spot/v2/submit_order"
	routeMarginSubmitOrder    = "spot/v1/margin/submit_order"
	routeSpotCancelOrder      = "spot/v3/cancel_order"
	routeSpotQueryOrder       = "spot/v4/query/order"
	routeSpotQueryClientOrder = "spot/v4/query/client-order"
	routeSpotQueryTrades      = "spot/v4/query/trades"
	routeContractSubmitOrder  = "contract/private/submit-order"
	routeContractSubmitPlan   = "contract/private/submit-plan-order"
	routeContractCancelOrder  = "contract/private/cancel-order"
	routeContractCancelPlan   = "contract/private/cancel-plan-order"
	routeContractOrderDetail  = "contract/private/order"
	routeContractTrades       = "contract/private/trades"
	routeMarginTransfer       = "spot/v1/margin/isolated/transfer"
	routeContractTransfer     = "account/v1/transfer-contract"
)

var routes = map[string]route{
	routeSpotSymbolsDetails:   {Path: "spot/v1/symbols/details", Method: http.MethodGet, Class: classSpot, Weight: 5},
	routeSpotTickers:          {Path: "spot/quotation/v3/tickers", Method: http.MethodGet, Class: classSpot, Weight: 6},
	routeSpotTicker:           {Path: "spot/quotation/v3/ticker", Method: http.MethodGet, Class: classSpot, Weight: 4},
	routeSpotTrades:           {Path: "spot/quotation/v3/trades", Method: http.MethodGet, Class: classSpot, Weight: 4},
	routeCurrencies:           {Path: "account/v1/currencies", Method: http.MethodGet, Class: classSpot, Weight: 30},
	routeContractDetails:      {Path: "contract/public/details", Method: http.MethodGet, Class: classContract, Weight: 5},
	routeContractFundingRate:  {Path: "contract/public/funding-rate", Method: http.MethodGet, Class: classContract, Weight: 30},
	routeSpotWallet:           {Path: "spot/v1/wallet", Method: http.MethodGet, Private: true, Class: classSpot, Weight: 5},
	routeAccountWallet:        {Path: "account/v1/wallet", Method: http.MethodGet, Private: true, Class: classSpot, Weight: 5},
	routeMarginAccount:        {Path: "spot/v1/margin/isolated/account", Method: http.MethodGet, Private: true, Class: classSpot, Weight: 5},
	routeContractAssets:       {Path: "contract/private/assets-detail", Method: http.MethodGet, Private: true, Class: classContract, Weight: 5},
	routeContractPosition:     {Path: "contract/private/position", Method: http.MethodGet, Private: true, Class: classContract, Weight: 10},
	routeSpotSubmitOrder:      {Path: "spot/v2/submit_order", Method: http.MethodPost, Private: true, Class: classSpot, Weight: 1},
	routeMarginSubmitOrder:    {Path: "spot/v1/margin/submit_order", Method: http.MethodPost, Private: true, Class: classSpot, Weight: 1},
	routeSpotCancelOrder:      {Path: "spot/v3/cancel_order", Method: http.MethodPost, Private: true, Class: classSpot, Weight: 1},
	routeSpotQueryOrder:       {Path: "spot/v4/query/order", Method: http.MethodPost, Private: true, Class: classSpot, Weight: 1},
	routeSpotQueryClientOrder: {Path: "spot/v4/query/client-order", Method: http.MethodPost, Private: true, Class: classSpot, Weight: 1},
	routeSpotQueryTrades:      {Path: "spot/v4/query/trades", Method: http.MethodPost, Private: true, Class: classSpot, Weight: 5},
	routeContractSubmitOrder:  {Path: "contract/private/submit-order", Method: http.MethodPost, Private: true, Class: classContract, Weight: 3},
	routeContractSubmitPlan:   {Path: "contract/private/submit-plan-order", Method: http.MethodPost, Private: true, Class: classContract, Weight: 3},
	routeContractCancelOrder:  {Path: "contract/private/cancel-order", Method: http.MethodPost, Private: true, Class: classContract, Weight: 2},
	routeContractCancelPlan:   {Path: "contract/private/cancel-plan-order", Method: http.MethodPost, Private: true, Class: classContract, Weight: 2},
	routeContractOrderDetail:  {Path: "contract/private/order", Method: http.MethodGet, Private: true, Class: classContract, Weight: 2},
	routeContractTrades:       {Path: "contract/private/trades", Method: http.MethodGet, Private: true, Class: classContract, Weight: 10},
	routeMarginTransfer:       {Path: "spot/v1/margin/isolated/transfer", Method: http.MethodPost, Private: true, Class: classSpot, Weight: 30},
	routeContractTransfer:     {Path: "account/v1/transfer-contract", Method: http.MethodPost, Private: true, Class: classSpot, Weight: 60},
}
