package schema

// MinMax bounds a limit dimension; empty strings mean unbounded.
type MinMax struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// Precision declares tick sizes, not digit counts. "0.001" means three
// fractional digits.
type Precision struct {
	Amount string `json:"amount,omitempty"`
	Price  string `json:"price,omitempty"`
}

// Limits groups the venue-declared trading bounds for a market.
type Limits struct {
	Amount   MinMax `json:"amount"`
	Price    MinMax `json:"price"`
	Cost     MinMax `json:"cost"`
	Leverage MinMax `json:"leverage"`
}

// Market identifies a tradable instrument in unified form.
//
// Symbol is derived from base, quote, and settle ("BTC/USDT" spot,
// "BTC/USDT:USDT" linear contract) and is stable across repeated fetches of
// the same instrument.
type Market struct {
	ID           string     `json:"id"`
	Symbol       string     `json:"symbol"`
	Base         string     `json:"base"`
	Quote        string     `json:"quote"`
	Settle       string     `json:"settle,omitempty"`
	BaseID       string     `json:"baseId"`
	QuoteID      string     `json:"quoteId"`
	SettleID     string     `json:"settleId,omitempty"`
	Type         MarketType `json:"type"`
	Contract     bool       `json:"contract"`
	Linear       bool       `json:"linear,omitempty"`
	Inverse      bool       `json:"inverse,omitempty"`
	Margin       bool       `json:"margin,omitempty"`
	Active       bool       `json:"active"`
	ContractSize string     `json:"contractSize,omitempty"`
	Expiry       int64      `json:"expiry,omitempty"`
	Precision    Precision  `json:"precision"`
	Limits       Limits     `json:"limits"`
	MakerFee     string     `json:"maker,omitempty"`
	TakerFee     string     `json:"taker,omitempty"`

	Raw map[string]any `json:"-"`
}

// UnifiedSymbol composes the canonical symbol for the given parts. Settle is
// empty for spot and margin markets.
func UnifiedSymbol(base, quote, settle string) string {
	s := base + "/" + quote
	if settle != "" {
		s += ":" + settle
	}
	return s
}
