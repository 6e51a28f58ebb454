package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cashcrush/pkg/api"
)

func TestGetUserBalances(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")
	dave := env.signIn("Dave")

	addExpense(t, alice, "", "100", alice, "50", bob, "50")
	addExpense(t, carol, "", "40", alice, "20", carol, "20")
	addExpense(t, alice, "", "30", alice, "15", dave, "15")
	settle(t, dave, alice, "", "15")
	// Group balances stay out of the personal dashboard.
	g := newGroup(t, alice, "Trip", bob)
	addExpense(t, bob, g.ID, "500", alice, "500")

	resp, err := alice.dashboard.GetUserBalances(context.Background(), connect.NewRequest(&api.GetUserBalancesRequest{}))
	require.NoError(t, err)
	msg := resp.Msg

	assertAmount(t, "50", msg.YouAreOwed)
	assertAmount(t, "20", msg.YouOwe)
	assertAmount(t, "30", msg.NetBalance)

	require.Len(t, msg.OwedBy, 1)
	assert.Equal(t, "Bob", msg.OwedBy[0].Name)
	assertAmount(t, "50", msg.OwedBy[0].NetBalance)

	require.Len(t, msg.Owes, 1)
	assert.Equal(t, "Carol", msg.Owes[0].Name)
	assertAmount(t, "-20", msg.Owes[0].NetBalance)
}

func TestGetMonthlySpending(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")

	ms := func(y int, m time.Month, day int) int64 {
		return time.Date(y, m, day, 12, 0, 0, 0, time.UTC).UnixMilli()
	}
	addExpenseAt(t, alice, "", ms(2024, time.January, 10), "100", alice, "40", bob, "60")
	addExpenseAt(t, bob, "", ms(2024, time.January, 20), "50", alice, "25", bob, "25")
	addExpenseAt(t, bob, "", ms(2024, time.March, 5), "30", alice, "30")
	addExpenseAt(t, alice, "", ms(2023, time.December, 31), "999", alice, "999")

	resp, err := alice.dashboard.GetMonthlySpending(context.Background(), connect.NewRequest(&api.GetMonthlySpendingRequest{Year: 2024}))
	require.NoError(t, err)

	assert.Equal(t, 2024, resp.Msg.Year)
	require.Len(t, resp.Msg.Months, 12)
	assert.Equal(t, 1, resp.Msg.Months[0].Month)
	assertAmount(t, "65", resp.Msg.Months[0].Amount)
	assertAmount(t, "0", resp.Msg.Months[1].Amount)
	assertAmount(t, "30", resp.Msg.Months[2].Amount)
	assertAmount(t, "95", resp.Msg.Total)

	_, err = alice.dashboard.GetMonthlySpending(context.Background(), connect.NewRequest(&api.GetMonthlySpendingRequest{TimeZone: "Mars/Olympus"}))
	assertCode(t, connect.CodeInvalidArgument, err)
}

func TestGetGroupNets(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")

	trip := newGroup(t, alice, "Trip", bob, carol)
	flat := newGroup(t, bob, "Flat", alice)
	addExpense(t, alice, trip.ID, "60", alice, "20", bob, "20", carol, "20")
	addExpense(t, bob, flat.ID, "10", alice, "10")

	resp, err := alice.dashboard.GetGroupNets(context.Background(), connect.NewRequest(&api.GetGroupNetsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Groups, 2)

	nets := map[string]string{}
	for _, g := range resp.Msg.Groups {
		nets[g.Name] = g.NetBalance.String()
	}
	assert.Equal(t, map[string]string{"Trip": "40", "Flat": "-10"}, nets)
}
