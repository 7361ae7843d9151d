package schema

// Ticker is a 24h market statistics snapshot. Percentage and QuoteVolume are
// derived from sibling fields when the venue omits them.
type Ticker struct {
	Symbol      string `json:"symbol"`
	Timestamp   int64  `json:"timestamp,omitempty"`
	High        string `json:"high,omitempty"`
	Low         string `json:"low,omitempty"`
	Bid         string `json:"bid,omitempty"`
	BidVolume   string `json:"bidVolume,omitempty"`
	Ask         string `json:"ask,omitempty"`
	AskVolume   string `json:"askVolume,omitempty"`
	Open        string `json:"open,omitempty"`
	Close       string `json:"close,omitempty"`
	Last        string `json:"last,omitempty"`
	Change      string `json:"change,omitempty"`
	Percentage  string `json:"percentage,omitempty"`
	Average     string `json:"average,omitempty"`
	BaseVolume  string `json:"baseVolume,omitempty"`
	QuoteVolume string `json:"quoteVolume,omitempty"`

	Raw map[string]any `json:"-"`
}
