package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cashcrush/internal/models"
)

// UserSummary is the acting user's standing across all personal expenses.
type UserSummary struct {
	YouOwe     decimal.Decimal
	YouAreOwed decimal.Decimal
	NetBalance decimal.Decimal

	// OwedBy lists counterparts with a positive net, largest first.
	OwedBy []PairBalance
	// Owes lists counterparts with a negative net, largest debt first.
	Owes []PairBalance
}

// Summarize computes me's pairwise balance with every counterpart appearing in
// the given personal expenses and settlements.
func Summarize(me string, expenses []models.Expense, settlements []models.Settlement) UserSummary {
	counterparts := make(map[string]bool)
	for i := range expenses {
		e := &expenses[i]
		if !e.Involves(me) {
			continue
		}
		for _, id := range e.ParticipantIDs() {
			if id != me {
				counterparts[id] = true
			}
		}
	}
	for i := range settlements {
		s := &settlements[i]
		switch me {
		case s.PaidByUserID:
			counterparts[s.ReceivedByUserID] = true
		case s.ReceivedByUserID:
			counterparts[s.PaidByUserID] = true
		}
	}

	summary := UserSummary{
		YouOwe:     decimal.Zero,
		YouAreOwed: decimal.Zero,
		NetBalance: decimal.Zero,
	}
	for id := range counterparts {
		b := PairwiseBalance(me, id, expenses, settlements)
		switch {
		case b.Net.IsPositive():
			summary.YouAreOwed = summary.YouAreOwed.Add(b.Net)
			summary.OwedBy = append(summary.OwedBy, b)
		case b.Net.IsNegative():
			summary.YouOwe = summary.YouOwe.Add(b.Net.Neg())
			summary.Owes = append(summary.Owes, b)
		}
	}
	summary.NetBalance = summary.YouAreOwed.Sub(summary.YouOwe)

	sortByMagnitude(summary.OwedBy)
	sortByMagnitude(summary.Owes)
	return summary
}

func sortByMagnitude(bs []PairBalance) {
	sort.Slice(bs, func(i, j int) bool {
		if c := bs[i].Net.Abs().Cmp(bs[j].Net.Abs()); c != 0 {
			return c > 0
		}
		return bs[i].CounterpartID < bs[j].CounterpartID
	})
}

// ShareOf returns userID's share of e: their split amount, or zero.
func ShareOf(userID string, e *models.Expense) decimal.Decimal {
	if s, ok := e.SplitFor(userID); ok {
		return s.Amount
	}
	return decimal.Zero
}

// MonthlySpending returns me's share of expenses for each month of year, in
// loc. Index 0 is January.
func MonthlySpending(me string, year int, loc *time.Location, expenses []models.Expense) [12]decimal.Decimal {
	var months [12]decimal.Decimal
	for i := range months {
		months[i] = decimal.Zero
	}
	for i := range expenses {
		e := &expenses[i]
		t := time.UnixMilli(e.Date).In(loc)
		if t.Year() != year {
			continue
		}
		months[t.Month()-1] = months[t.Month()-1].Add(ShareOf(me, e))
	}
	return months
}

// UncategorisedLabel is used for expenses without a category in spending reports.
const UncategorisedLabel = "uncategorised"

// CategoryTotals sums me's share of each expense by category.
func CategoryTotals(me string, expenses []models.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		category := e.Category
		if category == "" {
			category = UncategorisedLabel
		}
		current, ok := totals[category]
		if !ok {
			current = decimal.Zero
		}
		totals[category] = current.Add(ShareOf(me, e))
	}
	return totals
}

// ExpenseStanding is the derived settled state of one shared expense between
// two users.
type ExpenseStanding struct {
	ExpenseID string

	// Share is the counterpart's unpaid split when me paid, or me's unpaid
	// split when the counterpart paid. Zero when neither applies.
	Share decimal.Decimal

	// Outstanding is what remains of Share after settlements are applied to
	// the oldest shares first.
	Outstanding decimal.Decimal
}

// Settled reports whether nothing remains outstanding.
func (s ExpenseStanding) Settled() bool {
	return s.Outstanding.IsZero()
}

// ExpenseStandings derives, at read time, how much of each shared expense is
// still outstanding between me and other. Stored paid flags are never changed.
//
// Each direction's settlements are allocated to that direction's shares in
// date order, so the outstanding amounts of a direction always sum to the
// clamped total reported by PairwiseBalance.
func ExpenseStandings(me, other string, expenses []models.Expense, settlements []models.Settlement) []ExpenseStanding {
	ordered := make([]*models.Expense, 0, len(expenses))
	for i := range expenses {
		ordered = append(ordered, &expenses[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	paidToMe, paidByMe := decimal.Zero, decimal.Zero
	for i := range settlements {
		s := &settlements[i]
		switch {
		case s.PaidByUserID == other && s.ReceivedByUserID == me:
			paidToMe = paidToMe.Add(s.Amount)
		case s.PaidByUserID == me && s.ReceivedByUserID == other:
			paidByMe = paidByMe.Add(s.Amount)
		}
	}

	standings := make(map[string]ExpenseStanding, len(ordered))
	for _, e := range ordered {
		standing := ExpenseStanding{ExpenseID: e.ID, Share: decimal.Zero, Outstanding: decimal.Zero}

		var credit *decimal.Decimal
		switch e.PaidByUserID {
		case me:
			if s, ok := e.SplitFor(other); ok && !s.Paid {
				standing.Share = s.Amount
				credit = &paidToMe
			}
		case other:
			if s, ok := e.SplitFor(me); ok && !s.Paid {
				standing.Share = s.Amount
				credit = &paidByMe
			}
		}

		if credit != nil {
			covered := decimal.Min(*credit, standing.Share)
			*credit = credit.Sub(covered)
			standing.Outstanding = standing.Share.Sub(covered)
		}
		standings[e.ID] = standing
	}

	// Preserve the caller's order.
	out := make([]ExpenseStanding, len(expenses))
	for i := range expenses {
		out[i] = standings[expenses[i].ID]
	}
	return out
}
