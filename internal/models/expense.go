package models

import "github.com/shopspring/decimal"

// SplitType records how the client computed the split amounts.
// It is informational only; every expense stores concrete amounts.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitExact      SplitType = "exact"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitPercentage, SplitExact:
		return true
	}
	return false
}

// DefaultCategory is assigned to expenses created without a category.
const DefaultCategory = "Other"

// Split is one participant's share of an expense.
type Split struct {
	UserID string
	Amount decimal.Decimal

	// Paid is true only when the participant is also the payer.
	// It is assigned once at creation and never reflects settlements.
	Paid bool
}

// Expense represents an amount paid by one user on behalf of the participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	Description string

	// Amount is the total paid. Always positive.
	Amount decimal.Decimal

	Category string

	// Date is the Unix millisecond timestamp of the expense itself (not of its creation).
	Date int64

	PaidByUserID string
	SplitType    SplitType
	Splits       []Split

	// GroupID is empty for personal expenses.
	GroupID string

	// CreatedBy may differ from PaidByUserID.
	CreatedBy string

	CreatedAt int64
}

// SplitFor returns userID's split, if any.
func (e *Expense) SplitFor(userID string) (Split, bool) {
	for _, s := range e.Splits {
		if s.UserID == userID {
			return s, true
		}
	}
	return Split{}, false
}

// Involves reports whether userID paid the expense or appears among its splits.
func (e *Expense) Involves(userID string) bool {
	if e.PaidByUserID == userID {
		return true
	}
	_, ok := e.SplitFor(userID)
	return ok
}

// ParticipantIDs returns the payer followed by every split participant, without duplicates.
func (e *Expense) ParticipantIDs() []string {
	seen := map[string]bool{e.PaidByUserID: true}
	ids := []string{e.PaidByUserID}
	for _, s := range e.Splits {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			ids = append(ids, s.UserID)
		}
	}
	return ids
}
