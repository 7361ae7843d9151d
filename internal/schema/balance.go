package schema

// Account is the free/used/total triple for one currency. Debt is set only on
// margin accounts with outstanding borrowings.
type Account struct {
	Free  string `json:"free,omitempty"`
	Used  string `json:"used,omitempty"`
	Total string `json:"total,omitempty"`
	Debt  string `json:"debt,omitempty"`
}

// IsolatedPair holds the base and quote sub-balances of one isolated-margin
// market.
type IsolatedPair struct {
	Base  Account `json:"base"`
	Quote Account `json:"quote"`
}

// Balance maps currency codes to accounts. For isolated margin the venue
// reports per-market pairs instead, keyed by unified symbol.
type Balance struct {
	Accounts map[string]Account      `json:"accounts,omitempty"`
	Isolated map[string]IsolatedPair `json:"isolated,omitempty"`

	Raw map[string]any `json:"-"`
}

// Position is a unified contract position record.
//
// MarginRatio is maintenance margin over collateral; the position is
// liquidated as it approaches 1.
type Position struct {
	Symbol            string       `json:"symbol"`
	Timestamp         int64        `json:"timestamp,omitempty"`
	Side              PositionSide `json:"side,omitempty"`
	Contracts         string       `json:"contracts,omitempty"`
	ContractSize      string       `json:"contractSize,omitempty"`
	EntryPrice        string       `json:"entryPrice,omitempty"`
	MarkPrice         string       `json:"markPrice,omitempty"`
	LiquidationPrice  string       `json:"liquidationPrice,omitempty"`
	Leverage          string       `json:"leverage,omitempty"`
	MarginMode        MarginMode   `json:"marginMode,omitempty"`
	Notional          string       `json:"notional,omitempty"`
	Collateral        string       `json:"collateral,omitempty"`
	InitialMargin     string       `json:"initialMargin,omitempty"`
	MaintenanceMargin string       `json:"maintenanceMargin,omitempty"`
	MaintenanceRate   string       `json:"maintenanceMarginRate,omitempty"`
	MarginRatio       string       `json:"marginRatio,omitempty"`
	UnrealizedPnl     string       `json:"unrealizedPnl,omitempty"`
	RealizedPnl       string       `json:"realizedPnl,omitempty"`

	Raw map[string]any `json:"-"`
}

// Liquidation is a unified forced-closure record.
type Liquidation struct {
	Symbol     string `json:"symbol"`
	Timestamp  int64  `json:"timestamp,omitempty"`
	Price      string `json:"price,omitempty"`
	BaseValue  string `json:"baseValue,omitempty"`
	QuoteValue string `json:"quoteValue,omitempty"`

	Raw map[string]any `json:"-"`
}
