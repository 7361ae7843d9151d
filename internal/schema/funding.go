package schema

// FundingRate reports the current and expected funding of a perpetual.
type FundingRate struct {
	Symbol           string `json:"symbol"`
	Timestamp        int64  `json:"timestamp,omitempty"`
	FundingRate      string `json:"fundingRate,omitempty"`
	NextFundingRate  string `json:"nextFundingRate,omitempty"`
	FundingTimestamp int64  `json:"fundingTimestamp,omitempty"`
	Interval         string `json:"interval,omitempty"`
	MarkPrice        string `json:"markPrice,omitempty"`
	IndexPrice       string `json:"indexPrice,omitempty"`

	Raw map[string]any `json:"-"`
}

// FundingPayment is one settled funding charge or credit.
type FundingPayment struct {
	Symbol    string `json:"symbol"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Code      string `json:"code,omitempty"`
	Amount    string `json:"amount,omitempty"`

	Raw map[string]any `json:"-"`
}

// Transfer records a balance movement between two account types.
type Transfer struct {
	ID          string `json:"id,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`
	Code        string `json:"currency"`
	Amount      string `json:"amount,omitempty"`
	FromAccount string `json:"fromAccount,omitempty"`
	ToAccount   string `json:"toAccount,omitempty"`
	Status      string `json:"status,omitempty"`

	Raw map[string]any `json:"-"`
}

// LedgerEntry is one row of the account history.
type LedgerEntry struct {
	ID        string `json:"id,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Code      string `json:"currency,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Direction string `json:"direction,omitempty"`
	Type      string `json:"type,omitempty"`
	Before    string `json:"before,omitempty"`
	After     string `json:"after,omitempty"`

	Raw map[string]any `json:"-"`
}

// BorrowInterest is one accrued margin-interest charge.
type BorrowInterest struct {
	Symbol     string     `json:"symbol,omitempty"`
	Code       string     `json:"currency"`
	Timestamp  int64      `json:"timestamp,omitempty"`
	Amount     string     `json:"amount,omitempty"`
	Rate       string     `json:"rate,omitempty"`
	MarginMode MarginMode `json:"marginMode,omitempty"`

	Raw map[string]any `json:"-"`
}
