package models

// Direction marks whether a transaction moves money off the card (spend)
// or onto it (repayment, reversal, cashback).
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Transaction is a single spend entry from a credit card statement.
// Dates are kept as written in the source text; formats differ per bank.
type Transaction struct {
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Type        Direction `json:"type"`
	Category    string    `json:"category,omitempty"`
}

// BankType identifies a supported card issuer.
type BankType string

const (
	BankHDFC     BankType = "hdfc"
	BankSBI      BankType = "sbi"
	BankICICI    BankType = "icici"
	BankAxis     BankType = "axis"
	BankKotak    BankType = "kotak"
	BankCiti     BankType = "citi"
	BankAmex     BankType = "amex"
	BankIndusInd BankType = "indusind"
	BankYes      BankType = "yes"
	BankSC       BankType = "sc"
	BankUnknown  BankType = ""
)

// ParsedStatement is one document's worth of parsed statement data.
// TotalSpend is always recomputed from Transactions, never read from the
// source text. CreditLimit, MinimumDue and PreviousBalance are zero when
// the statement did not yield them.
type ParsedStatement struct {
	CardName        string        `json:"cardName"`
	CardLastFour    string        `json:"cardLastFour"`
	StatementPeriod string        `json:"statementPeriod"`
	Transactions    []Transaction `json:"transactions"`
	TotalSpend      float64       `json:"totalSpend"`
	CreditLimit     float64       `json:"creditLimit,omitempty"`
	MinimumDue      float64       `json:"minimumDue,omitempty"`
	PreviousBalance float64       `json:"previousBalance,omitempty"`
}

// CategorySpend is one row of a card's category breakdown.
type CategorySpend struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// MonthlyData is one synthetic period of a card's monthly series.
type MonthlyData struct {
	Month       string  `json:"month"`
	Spend       float64 `json:"spend"`
	Utilization float64 `json:"utilization"`
	Rewards     float64 `json:"rewards"`
}

// CardAnalysis is the decision-ready view of one card, derived from a
// (possibly merged) statement. Immutable once produced.
type CardAnalysis struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Limit              float64         `json:"limit"`
	AnnualFee          float64         `json:"annualFee"`
	CurrentUtilization float64         `json:"currentUtilization"`
	LastMonthSpend     float64         `json:"lastMonthSpend"`
	RewardsEarned      float64         `json:"rewardsEarned"`
	HealthScore        int             `json:"healthScore"`
	CategorySpend      []CategorySpend `json:"categorySpend"`
	MonthlyData        []MonthlyData   `json:"monthlyData"`
	Insights           []string        `json:"insights"`
}

// Alternative is a runner-up card in a recommendation.
type Alternative struct {
	Card   CardAnalysis `json:"card"`
	Reason string       `json:"reason"`
}

// Recommendation is the result of routing a candidate purchase across
// the analyzed cards. Recomputed on every request, never cached.
type Recommendation struct {
	Card         CardAnalysis  `json:"card"`
	Reasoning    []string      `json:"reasoning"`
	Alternatives []Alternative `json:"alternatives"`
}
