package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cashcrush/internal/models"
)

// PairBalance is the standing between the perspective user and one counterpart.
type PairBalance struct {
	CounterpartID string
	YouAreOwed    decimal.Decimal // counterpart owes the perspective user
	YouOwe        decimal.Decimal // perspective user owes the counterpart
	Net           decimal.Decimal // YouAreOwed - YouOwe; positive = counterpart owes you
}

// Settled reports whether nothing is owed in either direction.
func (b PairBalance) Settled() bool {
	return b.YouAreOwed.IsZero() && b.YouOwe.IsZero()
}

// fold computes the two directional totals between me and other.
//
// Expenses are accumulated first:
//   - me paid, other's split unpaid: owed += split
//   - other paid, my split unpaid:   owing += split
//
// Then every settlement between the two reduces the direction it pays off,
// clamped at zero. Overpayment in one direction is discarded rather than
// credited to the other.
func fold(me, other string, expenses []models.Expense, settlements []models.Settlement) (owed, owing decimal.Decimal) {
	owed, owing = decimal.Zero, decimal.Zero

	for i := range expenses {
		e := &expenses[i]
		switch e.PaidByUserID {
		case me:
			if s, ok := e.SplitFor(other); ok && !s.Paid {
				owed = owed.Add(s.Amount)
			}
		case other:
			if s, ok := e.SplitFor(me); ok && !s.Paid {
				owing = owing.Add(s.Amount)
			}
		}
	}

	for i := range settlements {
		st := &settlements[i]
		switch {
		case st.PaidByUserID == me && st.ReceivedByUserID == other:
			owing = decimal.Max(decimal.Zero, owing.Sub(st.Amount))
		case st.PaidByUserID == other && st.ReceivedByUserID == me:
			owed = decimal.Max(decimal.Zero, owed.Sub(st.Amount))
		}
	}

	return owed, owing
}

// PairwiseBalance computes the net balance between me and other from me's
// perspective.
//
// Callers pass the personal (non-group) records involving both users; expenses
// that do not involve both and settlements not between exactly the two are
// ignored. PairwiseBalance(a, b) == -PairwiseBalance(b, a).
func PairwiseBalance(me, other string, expenses []models.Expense, settlements []models.Settlement) PairBalance {
	owed, owing := fold(me, other, expenses, settlements)
	return PairBalance{
		CounterpartID: other,
		YouAreOwed:    owed,
		YouOwe:        owing,
		Net:           owed.Sub(owing),
	}
}

// MemberBalance is the acting user's standing with one other member of a group.
type MemberBalance struct {
	UserID     string
	YouAreOwed decimal.Decimal
	YouOwe     decimal.Decimal
	NetBalance decimal.Decimal // Positive = member owes you, Negative = you owe member
}

// GroupBalances computes me's balance with every other member of group, in
// member order. Expenses and settlements must belong to the group.
//
// Records involving users who are no longer members are ignored.
func GroupBalances(me string, group *models.Group, expenses []models.Expense, settlements []models.Settlement) ([]MemberBalance, error) {
	if group == nil {
		return nil, ErrNotFound
	}
	if !group.IsMember(me) {
		return nil, ErrNotAGroupMember
	}

	balances := make([]MemberBalance, 0, len(group.Members))
	for _, m := range group.Members {
		if m.UserID == me {
			continue
		}
		owed, owing := fold(me, m.UserID, expenses, settlements)
		balances = append(balances, MemberBalance{
			UserID:     m.UserID,
			YouAreOwed: owed,
			YouOwe:     owing,
			NetBalance: owed.Sub(owing),
		})
	}
	return balances, nil
}

// AllSettled reports whether every balance nets to exactly zero.
func AllSettled(balances []MemberBalance) bool {
	for _, b := range balances {
		if !b.NetBalance.IsZero() {
			return false
		}
	}
	return true
}

// MemberNet is one member's overall standing within a group.
type MemberNet struct {
	UserID     string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// GroupLedger computes every member's net standing in the group and a
// simplified set of payments that would settle it.
//
// A member's net is the sum of their pairwise balances with every other
// member, so the nets always sum to zero. Debts are simplified with a greedy
// match of the largest debtor against the largest creditor.
func GroupLedger(group *models.Group, expenses []models.Expense, settlements []models.Settlement) ([]MemberNet, []DebtEdge) {
	ids := group.MemberIDs()
	nets := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		nets[id] = decimal.Zero
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			owed, owing := fold(ids[i], ids[j], expenses, settlements)
			net := owed.Sub(owing)
			nets[ids[i]] = nets[ids[i]].Add(net)
			nets[ids[j]] = nets[ids[j]].Sub(net)
		}
	}

	memberNets := make([]MemberNet, len(ids))
	for i, id := range ids {
		memberNets[i] = MemberNet{UserID: id, NetBalance: nets[id]}
	}

	return memberNets, simplifyDebts(memberNets)
}

type party struct {
	id     string
	amount decimal.Decimal
}

func simplifyDebts(nets []MemberNet) []DebtEdge {
	var creditors, debtors []party
	for _, n := range nets {
		switch {
		case n.NetBalance.GreaterThan(Tolerance):
			creditors = append(creditors, party{n.UserID, n.NetBalance})
		case n.NetBalance.LessThan(Tolerance.Neg()):
			debtors = append(debtors, party{n.UserID, n.NetBalance.Neg()})
		}
	}

	// Largest first; ties broken by ID so the output is deterministic.
	byAmount := func(ps []party) func(i, j int) bool {
		return func(i, j int) bool {
			if c := ps[i].amount.Cmp(ps[j].amount); c != 0 {
				return c > 0
			}
			return ps[i].id < ps[j].id
		}
	}
	sort.Slice(creditors, byAmount(creditors))
	sort.Slice(debtors, byAmount(debtors))

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		if amount.GreaterThan(Tolerance) {
			edges = append(edges, DebtEdge{From: debtors[i].id, To: creditors[j].id, Amount: amount})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if debtors[i].amount.LessThanOrEqual(Tolerance) {
			i++
		}
		if creditors[j].amount.LessThanOrEqual(Tolerance) {
			j++
		}
	}
	return edges
}
