package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cashcrush/pkg/api"
)

func TestPreviewSplit(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")
	ctx := context.Background()

	resp, err := alice.expenses.PreviewSplit(ctx, connect.NewRequest(&api.PreviewSplitRequest{
		Amount:    d("100"),
		SplitType: "equal",
		Shares:    []api.Share{{UserID: alice.ID}, {UserID: bob.ID}, {UserID: carol.ID}},
	}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Splits, 3)
	assertAmount(t, "33.34", resp.Msg.Splits[0].Amount)
	assertAmount(t, "33.33", resp.Msg.Splits[1].Amount)
	assert.True(t, resp.Msg.Splits[0].Paid, "caller is the default payer")
	assert.False(t, resp.Msg.Splits[1].Paid)

	_, err = alice.expenses.PreviewSplit(ctx, connect.NewRequest(&api.PreviewSplitRequest{
		Amount:    d("100"),
		SplitType: "percentage",
		Shares:    []api.Share{{UserID: alice.ID, Percentage: d("60")}, {UserID: bob.ID, Percentage: d("30")}},
	}))
	assertCode(t, connect.CodeInvalidArgument, err)

	_, err = alice.expenses.PreviewSplit(ctx, connect.NewRequest(&api.PreviewSplitRequest{
		Amount:    d("100"),
		SplitType: "percentage",
		Shares:    []api.Share{{UserID: alice.ID, Percentage: d("100.01")}, {UserID: bob.ID, Percentage: d("0")}},
	}))
	assertCode(t, connect.CodeInvalidArgument, err)

	_, err = alice.expenses.PreviewSplit(ctx, connect.NewRequest(&api.PreviewSplitRequest{
		Amount:    d("100"),
		SplitType: "shares",
		Shares:    []api.Share{{UserID: alice.ID}},
	}))
	assertCode(t, connect.CodeInvalidArgument, err)
}

func TestCreateExpense(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	ctx := context.Background()

	resp, err := alice.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		Description: " Groceries ",
		Amount:      d("100"),
		SplitType:   "exact",
		Splits: []api.Split{
			{UserID: alice.ID, Amount: d("50")},
			{UserID: bob.ID, Amount: d("50"), Paid: true},
		},
	}))
	require.NoError(t, err)

	e := resp.Msg.Expense
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Groceries", e.Description)
	assert.Equal(t, "Other", e.Category)
	assert.Equal(t, alice.ID, e.PaidBy)
	assert.Equal(t, alice.ID, e.CreatedBy)
	assert.NotZero(t, e.Date)
	require.Len(t, e.Splits, 2)
	assert.True(t, e.Splits[0].Paid)
	assert.False(t, e.Splits[1].Paid, "client supplied paid flags are ignored")
}

func TestCreateExpense_FromShares(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")

	resp, err := bob.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Cab",
		Amount:      d("200"),
		PaidBy:      alice.ID,
		SplitType:   "percentage",
		Shares: []api.Share{
			{UserID: alice.ID, Percentage: d("25")},
			{UserID: bob.ID, Percentage: d("75")},
		},
	}))
	require.NoError(t, err)
	e := resp.Msg.Expense
	assert.Equal(t, alice.ID, e.PaidBy)
	assert.Equal(t, bob.ID, e.CreatedBy)
	assertAmount(t, "50", e.Splits[0].Amount)
	assertAmount(t, "150", e.Splits[1].Amount)
}

func TestCreateExpense_Tolerance(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")
	ctx := context.Background()

	create := func(third string) error {
		_, err := alice.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
			Description: "Tickets",
			Amount:      d("90.00"),
			SplitType:   "exact",
			Splits: []api.Split{
				{UserID: alice.ID, Amount: d("30.00")},
				{UserID: bob.ID, Amount: d("30.00")},
				{UserID: carol.ID, Amount: d(third)},
			},
		}))
		return err
	}

	require.NoError(t, create("30.01"))

	err := create("30.02")
	assertCode(t, connect.CodeInvalidArgument, err)
	assert.Contains(t, err.Error(), "split amounts must add up to the total expense amount")

	expenses, _, err := pairRecords(ctx, env.store, alice.ID, carol.ID)
	require.NoError(t, err)
	assert.Len(t, expenses, 1, "rejected expense was not stored")
}

func TestCreateExpense_Rejections(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")
	ctx := context.Background()
	g := newGroup(t, alice, "Flat", bob)

	tests := []struct {
		name string
		as   *testUser
		req  *api.CreateExpenseRequest
		code connect.Code
	}{
		{
			name: "no description",
			as:   alice,
			req:  &api.CreateExpenseRequest{Amount: d("10"), Splits: []api.Split{{UserID: alice.ID, Amount: d("10")}}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "zero amount",
			as:   alice,
			req:  &api.CreateExpenseRequest{Description: "x", Amount: d("0"), Splits: []api.Split{{UserID: alice.ID, Amount: d("0")}}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "no splits",
			as:   alice,
			req:  &api.CreateExpenseRequest{Description: "x", Amount: d("10")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown participant",
			as:   alice,
			req:  &api.CreateExpenseRequest{Description: "x", Amount: d("10"), Splits: []api.Split{{UserID: "ghost", Amount: d("10")}}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "missing group",
			as:   alice,
			req:  &api.CreateExpenseRequest{Description: "x", Amount: d("10"), GroupID: "nope", Splits: []api.Split{{UserID: alice.ID, Amount: d("10")}}},
			code: connect.CodeNotFound,
		},
		{
			name: "caller not in group",
			as:   carol,
			req:  &api.CreateExpenseRequest{Description: "x", Amount: d("10"), GroupID: g.ID, Splits: []api.Split{{UserID: alice.ID, Amount: d("10")}}},
			code: connect.CodePermissionDenied,
		},
		{
			name: "participant not in group",
			as:   alice,
			req: &api.CreateExpenseRequest{Description: "x", Amount: d("10"), GroupID: g.ID, Splits: []api.Split{
				{UserID: alice.ID, Amount: d("5")},
				{UserID: carol.ID, Amount: d("5")},
			}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "payer not in group",
			as:   alice,
			req: &api.CreateExpenseRequest{Description: "x", Amount: d("10"), GroupID: g.ID, PaidBy: carol.ID, Splits: []api.Split{
				{UserID: alice.ID, Amount: d("10")},
			}},
			code: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.as.expenses.CreateExpense(ctx, connect.NewRequest(tt.req))
			assertCode(t, tt.code, err)
		})
	}
}

func TestDeleteExpense(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	ctx := context.Background()

	e := addExpense(t, alice, "", "100", alice, "50", bob, "50")

	// A settlement made only against the expense goes with it.
	resp, err := bob.settlements.CreateSettlement(ctx, connect.NewRequest(&api.CreateSettlementRequest{
		Amount:            d("50"),
		PaidBy:            bob.ID,
		ReceivedBy:        alice.ID,
		RelatedExpenseIDs: []string{e.ID},
	}))
	require.NoError(t, err)
	linked := resp.Msg.Settlement
	unlinked := settle(t, bob, alice, "", "10")

	_, err = bob.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: e.ID}))
	assertCode(t, connect.CodePermissionDenied, err)

	_, err = alice.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: e.ID}))
	require.NoError(t, err)

	_, err = env.store.GetSettlement(ctx, linked.ID)
	assert.Error(t, err)
	_, err = env.store.GetSettlement(ctx, unlinked.ID)
	assert.NoError(t, err)

	_, err = alice.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: e.ID}))
	assertCode(t, connect.CodeNotFound, err)
}

func TestGetExpensesBetweenUsers(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")
	ctx := context.Background()

	first := addExpenseAt(t, alice, "", 1_700_000_000_000, "100", alice, "50", bob, "50")
	second := addExpenseAt(t, alice, "", 1_700_086_400_000, "60", alice, "30", bob, "30")
	addExpense(t, alice, "", "40", alice, "20", carol, "20")
	settle(t, bob, alice, "", "50")

	resp, err := alice.expenses.GetExpensesBetweenUsers(ctx, connect.NewRequest(&api.GetExpensesBetweenUsersRequest{UserID: bob.ID}))
	require.NoError(t, err)

	assert.Equal(t, "Bob", resp.Msg.Counterpart.Name)
	assertAmount(t, "30", resp.Msg.Balance.NetBalance)
	assertAmount(t, "30", resp.Msg.Balance.YouAreOwed)
	assertAmount(t, "0", resp.Msg.Balance.YouOwe)
	require.Len(t, resp.Msg.Settlements, 1)

	require.Len(t, resp.Msg.Expenses, 2, "expenses with Carol are excluded")
	byID := map[string]api.ExpenseStanding{}
	for _, s := range resp.Msg.Expenses {
		byID[s.Expense.ID] = s
	}
	assert.True(t, byID[first.ID].Settled, "the settlement covers the oldest share first")
	assertAmount(t, "0", byID[first.ID].Outstanding)
	assert.False(t, byID[second.ID].Settled)
	assertAmount(t, "30", byID[second.ID].Outstanding)

	_, err = alice.expenses.GetExpensesBetweenUsers(ctx, connect.NewRequest(&api.GetExpensesBetweenUsersRequest{UserID: alice.ID}))
	assertCode(t, connect.CodeInvalidArgument, err)

	_, err = alice.expenses.GetExpensesBetweenUsers(ctx, connect.NewRequest(&api.GetExpensesBetweenUsersRequest{UserID: "ghost"}))
	assertCode(t, connect.CodeNotFound, err)
}

func TestListGroupExpenses(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")
	ctx := context.Background()

	g := newGroup(t, alice, "Flat", bob)
	addExpense(t, alice, g.ID, "10", alice, "5", bob, "5")
	addExpense(t, bob, g.ID, "20", alice, "10", bob, "10")
	addExpense(t, alice, "", "30", alice, "15", bob, "15")

	resp, err := bob.expenses.ListGroupExpenses(ctx, connect.NewRequest(&api.ListGroupExpensesRequest{GroupID: g.ID}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Expenses, 2)

	_, err = carol.expenses.ListGroupExpenses(ctx, connect.NewRequest(&api.ListGroupExpensesRequest{GroupID: g.ID}))
	assertCode(t, connect.CodePermissionDenied, err)
}
