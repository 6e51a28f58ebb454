package api

import "github.com/shopspring/decimal"

type GetSpendingInsightsRequest struct{}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type GetSpendingInsightsResponse struct {
	// HTML is the generated analysis.
	HTML       string          `json:"html"`
	Total      decimal.Decimal `json:"total"`
	Categories []CategoryTotal `json:"categories"`
	Cached     bool            `json:"cached"`
}
