package schema

// Network describes one chain a currency moves on. Each network is enabled and
// fee-bearing independently of its siblings.
type Network struct {
	ID          string `json:"id"`
	Network     string `json:"network"`
	Deposit     bool   `json:"deposit"`
	Withdraw    bool   `json:"withdraw"`
	Fee         string `json:"fee,omitempty"`
	WithdrawMin string `json:"withdrawMin,omitempty"`
	WithdrawMax string `json:"withdrawMax,omitempty"`
}

// Currency is a unified currency record. Networks is keyed by unified network
// code; iteration order is never significant.
type Currency struct {
	Code      string             `json:"code"`
	ID        string             `json:"id"`
	Name      string             `json:"name,omitempty"`
	Precision string             `json:"precision,omitempty"`
	Deposit   bool               `json:"deposit"`
	Withdraw  bool               `json:"withdraw"`
	Fee       string             `json:"fee,omitempty"`
	Networks  map[string]Network `json:"networks,omitempty"`

	Raw map[string]any `json:"-"`
}

// DepositWithdrawFee reports the deposit and withdrawal fee schedule for one
// currency, per network.
type DepositWithdrawFee struct {
	Code     string             `json:"code"`
	Networks map[string]Network `json:"networks"`

	Raw map[string]any `json:"-"`
}
