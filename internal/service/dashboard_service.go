package service

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashcrush/internal/calculator"
	"github.com/mmynk/cashcrush/internal/storage"
	"github.com/mmynk/cashcrush/pkg/api"
	"github.com/mmynk/cashcrush/pkg/api/apiconnect"
)

// DashboardService implements the Connect DashboardService
type DashboardService struct {
	store storage.Store
}

var _ apiconnect.DashboardServiceHandler = (*DashboardService)(nil)

// NewDashboardService creates a new DashboardService with the given storage backend.
func NewDashboardService(store storage.Store) *DashboardService {
	return &DashboardService{store: store}
}

// GetUserBalances summarizes who owes the caller and whom the caller owes
// across personal expenses.
func (s *DashboardService) GetUserBalances(ctx context.Context, req *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{
		PersonalOnly: true,
		Involving:    []string{me.ID},
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	settlements, err := s.store.ListSettlements(ctx, storage.SettlementFilter{
		PersonalOnly: true,
		Involving:    me.ID,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	summary := calculator.Summarize(me.ID, expenses, settlements)

	ids := make([]string, 0, len(summary.OwedBy)+len(summary.Owes))
	for _, b := range summary.OwedBy {
		ids = append(ids, b.CounterpartID)
	}
	for _, b := range summary.Owes {
		ids = append(ids, b.CounterpartID)
	}
	users, err := s.store.GetUsers(ctx, ids)
	if err != nil {
		return nil, toConnectError(err)
	}

	toBalances := func(bs []calculator.PairBalance) []api.Balance {
		out := make([]api.Balance, len(bs))
		for i, b := range bs {
			out[i] = toAPIBalance(b.CounterpartID, nameOf(users, b.CounterpartID), b.YouAreOwed, b.YouOwe)
		}
		return out
	}

	return connect.NewResponse(&api.GetUserBalancesResponse{
		YouOwe:     summary.YouOwe,
		YouAreOwed: summary.YouAreOwed,
		NetBalance: summary.NetBalance,
		OwedBy:     toBalances(summary.OwedBy),
		Owes:       toBalances(summary.Owes),
	}), nil
}

// GetMonthlySpending returns the caller's share of expenses for each month of
// a year.
func (s *DashboardService) GetMonthlySpending(ctx context.Context, req *connect.Request[api.GetMonthlySpendingRequest]) (*connect.Response[api.GetMonthlySpendingResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	loc := time.UTC
	if req.Msg.TimeZone != "" {
		loc, err = time.LoadLocation(req.Msg.TimeZone)
		if err != nil {
			return nil, invalidArgument(fmt.Sprintf("unknown time zone %q", req.Msg.TimeZone))
		}
	}
	year := req.Msg.Year
	if year == 0 {
		year = time.Now().In(loc).Year()
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(1, 0, 0)

	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{
		Involving: []string{me.ID},
		From:      start.UnixMilli(),
		To:        end.UnixMilli() - 1,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	months := calculator.MonthlySpending(me.ID, year, loc, expenses)
	out := make([]api.MonthSpend, len(months))
	total := decimal.Zero
	for i, amount := range months {
		out[i] = api.MonthSpend{Month: i + 1, Amount: amount}
		total = total.Add(amount)
	}

	return connect.NewResponse(&api.GetMonthlySpendingResponse{Year: year, Months: out, Total: total}), nil
}

// GetGroupNets returns the caller's net standing in each of their groups.
func (s *DashboardService) GetGroupNets(ctx context.Context, req *connect.Request[api.GetGroupNetsRequest]) (*connect.Response[api.GetGroupNetsResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForUser(ctx, me.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.GroupNet, 0, len(groups))
	for _, g := range groups {
		expenses, settlements, err := groupRecords(ctx, s.store, g.ID)
		if err != nil {
			return nil, toConnectError(err)
		}
		balances, err := calculator.GroupBalances(me.ID, g, expenses, settlements)
		if err != nil {
			return nil, toConnectError(err)
		}
		net := decimal.Zero
		for _, b := range balances {
			net = net.Add(b.NetBalance)
		}
		out = append(out, api.GroupNet{GroupID: g.ID, Name: g.Name, NetBalance: net})
	}

	return connect.NewResponse(&api.GetGroupNetsResponse{Groups: out}), nil
}
