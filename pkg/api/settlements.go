package api

import "github.com/shopspring/decimal"

// Entity types accepted by GetSettlementData.
const (
	EntityUser  = "user"
	EntityGroup = "group"
)

type Settlement struct {
	ID                string          `json:"id"`
	Amount            decimal.Decimal `json:"amount"`
	Date              int64           `json:"date"`
	PaidBy            string          `json:"paidBy"`
	ReceivedBy        string          `json:"receivedBy"`
	GroupID           string          `json:"groupId,omitempty"`
	Note              string          `json:"note,omitempty"`
	Method            string          `json:"method"`
	RelatedExpenseIDs []string        `json:"relatedExpenseIds,omitempty"`
	CreatedBy         string          `json:"createdBy"`
}

// Balance is the caller's standing with one other user.
// Positive NetBalance means the other user owes the caller.
type Balance struct {
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	YouAreOwed decimal.Decimal `json:"youAreOwed"`
	YouOwe     decimal.Decimal `json:"youOwe"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

type CreateSettlementRequest struct {
	Amount            decimal.Decimal `json:"amount"`
	PaidBy            string          `json:"paidBy"`
	ReceivedBy        string          `json:"receivedBy"`
	GroupID           string          `json:"groupId,omitempty"`
	Note              string          `json:"note,omitempty"`
	RelatedExpenseIDs []string        `json:"relatedExpenseIds,omitempty"`
}

type CreateSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
}

// GetSettlementDataRequest asks for the caller's balances with one user
// (EntityUser) or with every member of a group (EntityGroup).
type GetSettlementDataRequest struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
}

type GetSettlementDataResponse struct {
	EntityType string `json:"entityType"`
	// Group is set for EntityGroup.
	Group *Group `json:"group,omitempty"`
	// Balances has one entry for EntityUser and one per other member for EntityGroup.
	Balances    []Balance    `json:"balances"`
	AllSettled  bool         `json:"allSettled"`
	Settlements []Settlement `json:"settlements"`
}
