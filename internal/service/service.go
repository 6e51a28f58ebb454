// Package service implements the Connect RPC handlers.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashcrush/internal/calculator"
	"github.com/mmynk/cashcrush/internal/middleware"
	"github.com/mmynk/cashcrush/internal/models"
	"github.com/mmynk/cashcrush/internal/storage"
	"github.com/mmynk/cashcrush/pkg/api"
)

var errNoUser = errors.New("no authenticated user")

// actingUser returns the user RequireAuth put in ctx.
func actingUser(ctx context.Context) (*models.User, error) {
	user := middleware.GetUser(ctx)
	if user == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, errNoUser)
	}
	return user, nil
}

// toConnectError maps domain and storage errors to Connect codes. Errors
// that already carry a code pass through.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	switch {
	case errors.Is(err, calculator.ErrInvalidAmount),
		errors.Is(err, calculator.ErrSplitMismatch),
		errors.Is(err, calculator.ErrInvalidParticipant),
		errors.Is(err, calculator.ErrSelfSettlement):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, calculator.ErrUnauthorized),
		errors.Is(err, calculator.ErrNotAGroupMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, calculator.ErrNotFound),
		errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(msg string) error {
	return connect.NewError(connect.CodeInvalidArgument, errors.New(msg))
}

// loadGroupForMember fetches a group and checks userID belongs to it.
func loadGroupForMember(ctx context.Context, store storage.Store, groupID, userID string) (*models.Group, error) {
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, calculator.ErrNotAGroupMember
	}
	return group, nil
}

// pairRecords fetches the personal expenses and settlements shared by a and b.
func pairRecords(ctx context.Context, store storage.Store, a, b string) ([]models.Expense, []models.Settlement, error) {
	expenses, err := store.ListExpenses(ctx, storage.ExpenseFilter{
		PersonalOnly: true,
		Involving:    []string{a, b},
	})
	if err != nil {
		return nil, nil, err
	}
	settlements, err := store.ListSettlements(ctx, storage.SettlementFilter{
		PersonalOnly: true,
		Between:      [2]string{a, b},
	})
	if err != nil {
		return nil, nil, err
	}
	return expenses, settlements, nil
}

// groupRecords fetches every expense and settlement of a group.
func groupRecords(ctx context.Context, store storage.Store, groupID string) ([]models.Expense, []models.Settlement, error) {
	expenses, err := store.ListExpenses(ctx, storage.ExpenseFilter{GroupID: groupID})
	if err != nil {
		return nil, nil, err
	}
	settlements, err := store.ListSettlements(ctx, storage.SettlementFilter{GroupID: groupID})
	if err != nil {
		return nil, nil, err
	}
	return expenses, settlements, nil
}

func nameOf(users map[string]*models.User, id string) string {
	if u, ok := users[id]; ok {
		return u.Name
	}
	return ""
}

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		ImageURL:      u.ImageURL,
		PaymentHandle: u.PaymentHandle,
	}
}

// sortUsersByName orders users by name, case-insensitively, then by ID.
func sortUsersByName(users []api.User) {
	sort.Slice(users, func(i, j int) bool {
		a, b := strings.ToLower(users[i].Name), strings.ToLower(users[j].Name)
		if a != b {
			return a < b
		}
		return users[i].ID < users[j].ID
	})
}

func toAPIGroup(g *models.Group, users map[string]*models.User) api.Group {
	members := make([]api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = api.Member{
			UserID:   m.UserID,
			Name:     nameOf(users, m.UserID),
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
	}
	return api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		ImageURL:    g.ImageURL,
		CreatedBy:   g.CreatedBy,
		Members:     members,
		CreatedAt:   g.CreatedAt,
	}
}

func toAPISplits(splits []models.Split) []api.Split {
	out := make([]api.Split, len(splits))
	for i, s := range splits {
		out[i] = api.Split{UserID: s.UserID, Amount: s.Amount, Paid: s.Paid}
	}
	return out
}

func toAPIExpense(e *models.Expense) api.Expense {
	return api.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		PaidBy:      e.PaidByUserID,
		SplitType:   string(e.SplitType),
		Splits:      toAPISplits(e.Splits),
		GroupID:     e.GroupID,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPISettlement(s *models.Settlement) api.Settlement {
	return api.Settlement{
		ID:                s.ID,
		Amount:            s.Amount,
		Date:              s.Date,
		PaidBy:            s.PaidByUserID,
		ReceivedBy:        s.ReceivedByUserID,
		GroupID:           s.GroupID,
		Note:              s.Note,
		Method:            s.Method,
		RelatedExpenseIDs: s.RelatedExpenseIDs,
		CreatedBy:         s.CreatedBy,
	}
}

func toAPISettlements(settlements []models.Settlement) []api.Settlement {
	out := make([]api.Settlement, len(settlements))
	for i := range settlements {
		out[i] = toAPISettlement(&settlements[i])
	}
	return out
}

func toAPIBalance(userID, name string, owed, owing decimal.Decimal) api.Balance {
	return api.Balance{
		UserID:     userID,
		Name:       name,
		YouAreOwed: owed,
		YouOwe:     owing,
		NetBalance: owed.Sub(owing),
	}
}
