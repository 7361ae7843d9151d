package bitmart

import "github.com/venuekit/venuekit/internal/schema"

// OrderOptions carries the optional switches accepted by CreateOrder. The
// zero value places a plain order on the default market type.
type OrderOptions struct {
	// ClientOrderID is sent as client_order_id; when empty one is generated.
	ClientOrderID string
	// TimeInForce narrows execution: GTC, IOC, FOK (swap only), PO.
	TimeInForce schema.TimeInForce
	// PostOnly forces maker-only execution. Equivalent to TimeInForce PO.
	PostOnly bool
	// ReduceOnly restricts a swap order to closing exposure.
	ReduceOnly bool
	// MarginMode selects margin placement: empty for plain spot, otherwise
	// cross or isolated.
	MarginMode schema.MarginMode
	// TriggerPrice turns a swap order into a plan (trigger) order.
	TriggerPrice string
	// Cost is the quote-currency notional for market buys when the
	// createMarketBuyOrderRequiresPrice switch is off.
	Cost string
	// Leverage applies to swap orders; plan orders default it to "1".
	Leverage string
}

// TransferOptions names the two account types money moves between.
type TransferOptions struct {
	FromAccount string
	ToAccount   string
}
