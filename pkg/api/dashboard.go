package api

import "github.com/shopspring/decimal"

type GetUserBalancesRequest struct{}

// GetUserBalancesResponse summarizes personal (non-group) balances.
type GetUserBalancesResponse struct {
	YouOwe     decimal.Decimal `json:"youOwe"`
	YouAreOwed decimal.Decimal `json:"youAreOwed"`
	NetBalance decimal.Decimal `json:"netBalance"`
	OwedBy     []Balance       `json:"owedBy"`
	Owes       []Balance       `json:"owes"`
}

// GetMonthlySpendingRequest asks for the caller's share of expenses per month.
// Year defaults to the current year and TimeZone (IANA name) to UTC.
type GetMonthlySpendingRequest struct {
	Year     int    `json:"year,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type MonthSpend struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type GetMonthlySpendingResponse struct {
	Year   int             `json:"year"`
	Months []MonthSpend    `json:"months"`
	Total  decimal.Decimal `json:"total"`
}

type GetGroupNetsRequest struct{}

type GroupNet struct {
	GroupID    string          `json:"groupId"`
	Name       string          `json:"name"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

type GetGroupNetsResponse struct {
	Groups []GroupNet `json:"groups"`
}
