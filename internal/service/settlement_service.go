package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cashcrush/internal/calculator"
	"github.com/mmynk/cashcrush/internal/models"
	"github.com/mmynk/cashcrush/internal/storage"
	"github.com/mmynk/cashcrush/pkg/api"
	"github.com/mmynk/cashcrush/pkg/api/apiconnect"
)

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	store storage.Store
}

var _ apiconnect.SettlementServiceHandler = (*SettlementService)(nil)

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// CreateSettlement validates and records a payment between two users.
func (s *SettlementService) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}
	msg := req.Msg

	// Input rejections come before any lookup.
	if err := calculator.ValidateSettlement(msg.Amount, msg.PaidBy, msg.ReceivedBy, me.ID, nil); err != nil {
		return nil, toConnectError(err)
	}
	if msg.GroupID != "" {
		group, err := s.store.GetGroup(ctx, msg.GroupID)
		if err != nil {
			return nil, toConnectError(err)
		}
		members := calculator.MembersOf(group)
		if err := calculator.ValidateSettlement(msg.Amount, msg.PaidBy, msg.ReceivedBy, me.ID, members); err != nil {
			return nil, toConnectError(err)
		}
	}

	// The caller is one of the parties; the other one has to exist.
	other := msg.PaidBy
	if other == me.ID {
		other = msg.ReceivedBy
	}
	if _, err := s.store.GetUser(ctx, other); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.checkRelated(ctx, msg); err != nil {
		return nil, toConnectError(err)
	}

	settlement := &models.Settlement{
		Amount:            msg.Amount,
		PaidByUserID:      msg.PaidBy,
		ReceivedByUserID:  msg.ReceivedBy,
		GroupID:           msg.GroupID,
		Note:              strings.TrimSpace(msg.Note),
		Method:            models.MethodManual,
		RelatedExpenseIDs: msg.RelatedExpenseIDs,
		CreatedBy:         me.ID,
	}

	// Save to storage (generates ID and Date)
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("CreateSettlement failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settlement created",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"amount", settlement.Amount.String(),
	)

	return connect.NewResponse(&api.CreateSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// checkRelated requires every related expense to exist in the same scope as
// the settlement and to involve both parties.
func (s *SettlementService) checkRelated(ctx context.Context, msg *api.CreateSettlementRequest) error {
	for _, id := range msg.RelatedExpenseIDs {
		expense, err := s.store.GetExpense(ctx, id)
		if err != nil {
			return err
		}
		if expense.GroupID != msg.GroupID {
			return fmt.Errorf("%w: expense %s belongs to another group", calculator.ErrInvalidParticipant, id)
		}
		if !expense.Involves(msg.PaidBy) || !expense.Involves(msg.ReceivedBy) {
			return fmt.Errorf("%w: expense %s does not involve both parties", calculator.ErrInvalidParticipant, id)
		}
	}
	return nil
}

// GetSettlementData returns what the caller needs to settle up with one user
// or with the members of a group.
func (s *SettlementService) GetSettlementData(ctx context.Context, req *connect.Request[api.GetSettlementDataRequest]) (*connect.Response[api.GetSettlementDataResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	switch req.Msg.EntityType {
	case api.EntityUser:
		return s.userSettlementData(ctx, me, req.Msg.EntityID)
	case api.EntityGroup:
		return s.groupSettlementData(ctx, me, req.Msg.EntityID)
	default:
		return nil, invalidArgument("invalid entityType; expected 'user' or 'group'")
	}
}

func (s *SettlementService) userSettlementData(ctx context.Context, me *models.User, otherID string) (*connect.Response[api.GetSettlementDataResponse], error) {
	if otherID == me.ID {
		return nil, invalidArgument("cannot settle with yourself")
	}
	other, err := s.store.GetUser(ctx, otherID)
	if err != nil {
		return nil, toConnectError(err)
	}

	expenses, settlements, err := pairRecords(ctx, s.store, me.ID, other.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	b := calculator.PairwiseBalance(me.ID, other.ID, expenses, settlements)

	return connect.NewResponse(&api.GetSettlementDataResponse{
		EntityType:  api.EntityUser,
		Balances:    []api.Balance{toAPIBalance(other.ID, other.Name, b.YouAreOwed, b.YouOwe)},
		AllSettled:  b.Net.IsZero(),
		Settlements: toAPISettlements(settlements),
	}), nil
}

func (s *SettlementService) groupSettlementData(ctx context.Context, me *models.User, groupID string) (*connect.Response[api.GetSettlementDataResponse], error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	expenses, settlements, err := groupRecords(ctx, s.store, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	memberBalances, err := calculator.GroupBalances(me.ID, group, expenses, settlements)
	if err != nil {
		return nil, toConnectError(err)
	}

	users, err := s.store.GetUsers(ctx, group.MemberIDs())
	if err != nil {
		return nil, toConnectError(err)
	}

	balances := make([]api.Balance, len(memberBalances))
	for i, mb := range memberBalances {
		balances[i] = toAPIBalance(mb.UserID, nameOf(users, mb.UserID), mb.YouAreOwed, mb.YouOwe)
	}
	apiGroup := toAPIGroup(group, users)

	return connect.NewResponse(&api.GetSettlementDataResponse{
		EntityType:  api.EntityGroup,
		Group:       &apiGroup,
		Balances:    balances,
		AllSettled:  calculator.AllSettled(memberBalances),
		Settlements: toAPISettlements(settlements),
	}), nil
}
