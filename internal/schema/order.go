package schema

// Order is the unified order record.
//
// Filled+Remaining need not exactly equal Amount: venues round the legs
// independently. Status always lands on one of the four canonical states; an
// unmapped venue code surfaces as StatusOpen with the raw code preserved in Raw.
type Order struct {
	ID            string      `json:"id"`
	ClientOrderID string      `json:"clientOrderId,omitempty"`
	Symbol        string      `json:"symbol"`
	Timestamp     int64       `json:"timestamp,omitempty"`
	LastUpdate    int64       `json:"lastUpdate,omitempty"`
	Type          OrderType   `json:"type,omitempty"`
	Side          OrderSide   `json:"side,omitempty"`
	TimeInForce   TimeInForce `json:"timeInForce,omitempty"`
	PostOnly      bool        `json:"postOnly,omitempty"`
	ReduceOnly    bool        `json:"reduceOnly,omitempty"`
	Price         string      `json:"price,omitempty"`
	TriggerPrice  string      `json:"triggerPrice,omitempty"`
	Amount        string      `json:"amount,omitempty"`
	Filled        string      `json:"filled,omitempty"`
	Remaining     string      `json:"remaining,omitempty"`
	Cost          string      `json:"cost,omitempty"`
	Average       string      `json:"average,omitempty"`
	Status        OrderStatus `json:"status,omitempty"`
	Fees          []Fee       `json:"fees,omitempty"`

	Raw map[string]any `json:"-"`
}

// Trade is a unified fill record.
type Trade struct {
	ID        string        `json:"id"`
	OrderID   string        `json:"orderId,omitempty"`
	Symbol    string        `json:"symbol"`
	Timestamp int64         `json:"timestamp,omitempty"`
	Side      OrderSide     `json:"side,omitempty"`
	Price     string        `json:"price,omitempty"`
	Amount    string        `json:"amount,omitempty"`
	Cost      string        `json:"cost,omitempty"`
	Role      LiquidityRole `json:"takerOrMaker,omitempty"`
	Fee       *Fee          `json:"fee,omitempty"`

	Raw map[string]any `json:"-"`
}
