package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cashcrush/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Share is one participant's input to BuildSplits.
// Percentage is read for percentage splits, Amount for exact splits.
type Share struct {
	UserID     string
	Percentage decimal.Decimal
	Amount     decimal.Decimal
}

// BuildSplits turns a split type and per-participant input into concrete split
// amounts rounded to the cent.
//
//   - equal: amount / n rounded down; leftover cents go to the first participants
//   - percentage: percentages must total 100; the rounding remainder goes to the
//     last participant and may not be negative
//   - exact: amounts are taken as given
//
// A split is marked paid when its participant is the payer. The result still
// has to pass ValidateExpense.
func BuildSplits(amount decimal.Decimal, payer string, splitType models.SplitType, shares []Share) ([]models.Split, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: must have at least one participant", ErrInvalidParticipant)
	}

	amounts := make([]decimal.Decimal, len(shares))
	switch splitType {
	case models.SplitEqual:
		n := decimal.NewFromInt(int64(len(shares)))
		each := amount.Div(n).RoundDown(2)
		leftover := amount.Sub(each.Mul(n))
		cent := decimal.New(1, -2)
		for i := range shares {
			amounts[i] = each
			if leftover.IsPositive() {
				amounts[i] = amounts[i].Add(cent)
				leftover = leftover.Sub(cent)
			}
		}

	case models.SplitPercentage:
		total := decimal.Zero
		for _, s := range shares {
			if s.Percentage.IsNegative() {
				return nil, fmt.Errorf("%w: percentage for %s is negative", ErrInvalidAmount, s.UserID)
			}
			total = total.Add(s.Percentage)
		}
		if !WithinTolerance(total, hundred) {
			return nil, &SplitMismatchError{Delta: total.Sub(hundred)}
		}
		assigned := decimal.Zero
		for i, s := range shares {
			if i == len(shares)-1 {
				amounts[i] = amount.Sub(assigned)
				if amounts[i].IsNegative() {
					return nil, &SplitMismatchError{Delta: total.Sub(hundred)}
				}
				break
			}
			amounts[i] = amount.Mul(s.Percentage).Div(hundred).Round(2)
			assigned = assigned.Add(amounts[i])
		}

	case models.SplitExact:
		for i, s := range shares {
			amounts[i] = s.Amount
		}

	default:
		return nil, fmt.Errorf("unknown split type %q", splitType)
	}

	splits := make([]models.Split, len(shares))
	for i, s := range shares {
		splits[i] = models.Split{
			UserID: s.UserID,
			Amount: amounts[i],
			Paid:   s.UserID == payer,
		}
	}
	return splits, nil
}

// MarkPaid resets every split's paid flag from the payer, ignoring whatever
// the client sent.
func MarkPaid(payer string, splits []models.Split) []models.Split {
	out := make([]models.Split, len(splits))
	for i, s := range splits {
		s.Paid = s.UserID == payer
		out[i] = s
	}
	return out
}
