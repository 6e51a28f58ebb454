package models

import "github.com/shopspring/decimal"

// MethodManual is the only settlement method recorded by the service.
const MethodManual = "manual"

// Settlement represents a payment between two users to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// Amount is the payment amount. Always positive.
	Amount decimal.Decimal

	// Date is the Unix millisecond timestamp when the settlement was recorded.
	Date int64

	// PaidByUserID is the user who paid (debtor settling up).
	PaidByUserID string

	// ReceivedByUserID is the user who received payment (creditor being paid).
	ReceivedByUserID string

	// GroupID is the group this settlement belongs to. Empty for personal settlements.
	GroupID string

	// Note is an optional description for the settlement.
	Note string

	Method string

	// RelatedExpenseIDs lists the expenses this payment was made against.
	// When the last of them is deleted the settlement is deleted too.
	RelatedExpenseIDs []string

	// CreatedBy is either the payer or the receiver.
	CreatedBy string
}

// Between reports whether the settlement was paid by one of a, b to the other.
func (s *Settlement) Between(a, b string) bool {
	return (s.PaidByUserID == a && s.ReceivedByUserID == b) ||
		(s.PaidByUserID == b && s.ReceivedByUserID == a)
}
