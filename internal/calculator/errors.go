package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation failures. All are deterministic rejections of the input and must
// block persistence. Compare with errors.Is.
var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrSplitMismatch      = errors.New("split amounts must add up to the total expense amount")
	ErrInvalidParticipant = errors.New("invalid participant")
	ErrSelfSettlement     = errors.New("payer and receiver cannot be the same user")
	ErrUnauthorized       = errors.New("you must be either the payer or the receiver")
	ErrNotAGroupMember    = errors.New("not a member of this group")
	ErrNotFound           = errors.New("not found")
)

// SplitMismatchError carries the difference between the split total and the
// expense amount.
type SplitMismatchError struct {
	// Delta is sum(splits) - amount.
	Delta decimal.Decimal
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("%s (off by %s)", ErrSplitMismatch, e.Delta.StringFixed(2))
}

// Is makes errors.Is(err, ErrSplitMismatch) hold for *SplitMismatchError.
func (e *SplitMismatchError) Is(target error) bool {
	return target == ErrSplitMismatch
}
