package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cashcrush/internal/models"
)

// Tolerance is the absolute difference, in currency units, under which two
// amounts are treated as equal. It absorbs rounding from equal and percentage
// splits and is shared by validation and balance computation.
var Tolerance = decimal.New(1, -2)

// MemberSet is the membership of a group at validation time.
// A nil MemberSet means the operation is not group-scoped.
type MemberSet map[string]struct{}

// NewMemberSet returns a non-nil set holding ids.
func NewMemberSet(ids ...string) MemberSet {
	set := make(MemberSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// MembersOf returns the member set of g, or nil when g is nil.
func MembersOf(g *models.Group) MemberSet {
	if g == nil {
		return nil
	}
	return NewMemberSet(g.MemberIDs()...)
}

// Has reports whether id is in the set.
func (m MemberSet) Has(id string) bool {
	_, ok := m[id]
	return ok
}

// WithinTolerance reports whether |a - b| <= Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// ValidateExpense checks a proposed expense before it is persisted.
//
// Checks, in order:
//   - amount > 0 and no split amount is negative (ErrInvalidAmount)
//   - split participants are unique and, when members is non-nil, all belong
//     to the group (ErrInvalidParticipant)
//   - |sum(splits) - amount| <= Tolerance (*SplitMismatchError)
func ValidateExpense(amount decimal.Decimal, splits []models.Split, members MemberSet) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if len(splits) == 0 {
		return fmt.Errorf("%w: at least one split is required", ErrInvalidParticipant)
	}

	seen := make(map[string]bool, len(splits))
	sum := decimal.Zero
	for _, s := range splits {
		if s.Amount.IsNegative() {
			return fmt.Errorf("%w: split for %s is negative", ErrInvalidAmount, s.UserID)
		}
		if s.UserID == "" {
			return fmt.Errorf("%w: split without a participant", ErrInvalidParticipant)
		}
		if seen[s.UserID] {
			return fmt.Errorf("%w: %s appears in more than one split", ErrInvalidParticipant, s.UserID)
		}
		seen[s.UserID] = true
		if members != nil && !members.Has(s.UserID) {
			return fmt.Errorf("%w: %s is not a member of this group", ErrInvalidParticipant, s.UserID)
		}
		sum = sum.Add(s.Amount)
	}

	if !WithinTolerance(sum, amount) {
		return &SplitMismatchError{Delta: sum.Sub(amount)}
	}
	return nil
}

// ValidateSettlement checks a proposed settlement before it is persisted.
//
// actingUser is the authenticated caller; it must be one of the two parties.
// When members is non-nil both parties must belong to the group.
func ValidateSettlement(amount decimal.Decimal, payer, receiver, actingUser string, members MemberSet) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if payer == receiver {
		return ErrSelfSettlement
	}
	if actingUser != payer && actingUser != receiver {
		return ErrUnauthorized
	}
	if members != nil {
		if !members.Has(payer) {
			return fmt.Errorf("%w: payer %s", ErrNotAGroupMember, payer)
		}
		if !members.Has(receiver) {
			return fmt.Errorf("%w: receiver %s", ErrNotAGroupMember, receiver)
		}
	}
	return nil
}
