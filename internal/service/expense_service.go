package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/cashcrush/internal/calculator"
	"github.com/mmynk/cashcrush/internal/models"
	"github.com/mmynk/cashcrush/internal/storage"
	"github.com/mmynk/cashcrush/pkg/api"
	"github.com/mmynk/cashcrush/pkg/api/apiconnect"
)

var errCannotDelete = errors.New("only the creator or the payer can delete this expense")

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	store storage.Store
}

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// parseSplitType defaults an empty type to equal.
func parseSplitType(s string) (models.SplitType, error) {
	if s == "" {
		return models.SplitEqual, nil
	}
	t := models.SplitType(s)
	if !t.Valid() {
		return "", invalidArgument(fmt.Sprintf("unknown split type %q", s))
	}
	return t, nil
}

func fromAPIShares(shares []api.Share) []calculator.Share {
	out := make([]calculator.Share, len(shares))
	for i, s := range shares {
		out[i] = calculator.Share{UserID: s.UserID, Percentage: s.Percentage, Amount: s.Amount}
	}
	return out
}

// PreviewSplit computes concrete split amounts without saving anything.
func (s *ExpenseService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	splitType, err := parseSplitType(req.Msg.SplitType)
	if err != nil {
		return nil, err
	}
	payer := req.Msg.PaidBy
	if payer == "" {
		payer = me.ID
	}

	splits, err := calculator.BuildSplits(req.Msg.Amount, payer, splitType, fromAPIShares(req.Msg.Shares))
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.PreviewSplitResponse{Splits: toAPISplits(splits)}), nil
}

// CreateExpense validates and records an expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}
	msg := req.Msg

	slog.Info("CreateExpense request received",
		"user_id", me.ID,
		"group_id", msg.GroupID,
		"splits_count", len(msg.Splits)+len(msg.Shares),
	)

	description := strings.TrimSpace(msg.Description)
	if description == "" {
		return nil, invalidArgument("description is required")
	}
	splitType, err := parseSplitType(msg.SplitType)
	if err != nil {
		return nil, err
	}
	payer := msg.PaidBy
	if payer == "" {
		payer = me.ID
	}

	var splits []models.Split
	if len(msg.Splits) > 0 {
		splits = make([]models.Split, len(msg.Splits))
		for i, sp := range msg.Splits {
			splits[i] = models.Split{UserID: sp.UserID, Amount: sp.Amount}
		}
		splits = calculator.MarkPaid(payer, splits)
	} else if len(msg.Shares) > 0 {
		splits, err = calculator.BuildSplits(msg.Amount, payer, splitType, fromAPIShares(msg.Shares))
		if err != nil {
			return nil, toConnectError(err)
		}
	}

	var members calculator.MemberSet
	if msg.GroupID != "" {
		group, err := loadGroupForMember(ctx, s.store, msg.GroupID, me.ID)
		if err != nil {
			return nil, toConnectError(err)
		}
		if !group.IsMember(payer) {
			return nil, toConnectError(fmt.Errorf("%w: payer %s is not a member of this group", calculator.ErrInvalidParticipant, payer))
		}
		members = calculator.MembersOf(group)
	}

	if err := calculator.ValidateExpense(msg.Amount, splits, members); err != nil {
		return nil, toConnectError(err)
	}

	if members == nil {
		if err := s.requireUsers(ctx, payer, splits); err != nil {
			return nil, toConnectError(err)
		}
	}

	category := strings.TrimSpace(msg.Category)
	if category == "" {
		category = models.DefaultCategory
	}
	date := msg.Date
	if date == 0 {
		date = time.Now().UnixMilli()
	}

	expense := &models.Expense{
		Description:  description,
		Amount:       msg.Amount,
		Category:     category,
		Date:         date,
		PaidByUserID: payer,
		SplitType:    splitType,
		Splits:       splits,
		GroupID:      msg.GroupID,
		CreatedBy:    me.ID,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "amount", expense.Amount.String())

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// requireUsers checks that the payer and every participant exist.
func (s *ExpenseService) requireUsers(ctx context.Context, payer string, splits []models.Split) error {
	ids := []string{payer}
	for _, sp := range splits {
		ids = append(ids, sp.UserID)
	}
	found, err := s.store.GetUsers(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: unknown user %s", calculator.ErrInvalidParticipant, id)
		}
	}
	return nil
}

// DeleteExpense removes an expense and the settlements made only against it.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if expense.CreatedBy != me.ID && expense.PaidByUserID != me.ID {
		return nil, connect.NewError(connect.CodePermissionDenied, errCannotDelete)
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", expense.ID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// GetExpensesBetweenUsers returns the personal expenses and settlements the
// caller shares with another user, with the balance between them.
func (s *ExpenseService) GetExpensesBetweenUsers(ctx context.Context, req *connect.Request[api.GetExpensesBetweenUsersRequest]) (*connect.Response[api.GetExpensesBetweenUsersResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.UserID == me.ID {
		return nil, invalidArgument("cannot query yourself")
	}

	other, err := s.store.GetUser(ctx, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}

	expenses, settlements, err := pairRecords(ctx, s.store, me.ID, other.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	balance := calculator.PairwiseBalance(me.ID, other.ID, expenses, settlements)
	standings := calculator.ExpenseStandings(me.ID, other.ID, expenses, settlements)

	out := make([]api.ExpenseStanding, len(expenses))
	for i := range expenses {
		out[i] = api.ExpenseStanding{
			Expense:     toAPIExpense(&expenses[i]),
			Outstanding: standings[i].Outstanding,
			Settled:     standings[i].Settled(),
		}
	}

	return connect.NewResponse(&api.GetExpensesBetweenUsersResponse{
		Counterpart: toAPIUser(other),
		Balance:     toAPIBalance(other.ID, other.Name, balance.YouAreOwed, balance.YouOwe),
		Expenses:    out,
		Settlements: toAPISettlements(settlements),
	}), nil
}

// ListGroupExpenses returns a group's expenses, newest first.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := loadGroupForMember(ctx, s.store, req.Msg.GroupID, me.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{GroupID: group.ID})
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.Expense, len(expenses))
	for i := range expenses {
		out[i] = toAPIExpense(&expenses[i])
	}
	return connect.NewResponse(&api.ListGroupExpensesResponse{Expenses: out}), nil
}
