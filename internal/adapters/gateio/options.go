package gateio

import "github.com/venuekit/venuekit/internal/schema"

// OrderOptions carries the optional switches accepted by CreateOrder. The
// zero value places a plain spot order.
type OrderOptions struct {
	// ClientOrderID is sent as the order text. The venue requires a "t-"
	// prefix and caps the remainder at 28 bytes; a missing prefix is added.
	ClientOrderID string
	// TimeInForce narrows execution: GTC, IOC, FOK (contracts only), PO.
	// PO folds into the venue's "poc" value.
	TimeInForce schema.TimeInForce
	// PostOnly forces maker-only execution. Equivalent to TimeInForce PO.
	PostOnly bool
	// ReduceOnly restricts a contract order to closing exposure.
	ReduceOnly bool
	// MarginMode routes a spot order through the margin ("margin") or cross
	// margin ("cross_margin") account instead of the plain spot account.
	MarginMode schema.MarginMode
	// Cost is the quote-currency notional for market buys when the
	// createMarketBuyOrderRequiresPrice switch is off.
	Cost string
}

// TransferOptions names the two account types money moves between and, for
// isolated-margin legs, the market whose sub-account is touched.
type TransferOptions struct {
	FromAccount string
	ToAccount   string
	// Symbol is required when either side is the isolated margin account.
	Symbol string
}
