package service

import (
	"context"
	"errors"
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

var (
	errNotAdmin       = errors.New("only a group admin can do this")
	errRemoveYourself = errors.New("admin cannot remove themselves")
)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
}

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// withNames converts g, resolving member names.
func (s *GroupService) withNames(ctx context.Context, g *models.Group) (api.Group, error) {
	users, err := s.store.GetUsers(ctx, g.MemberIDs())
	if err != nil {
		return api.Group{}, err
	}
	return toAPIGroup(g, users), nil
}

// loadGroupForAdmin fetches a group and checks userID administers it.
func (s *GroupService) loadGroupForAdmin(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !group.IsAdmin(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotAdmin)
	}
	return group, nil
}

// CreateGroup creates a new group with the caller as its admin.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name cannot be empty")
	}

	known, err := s.store.GetUsers(ctx, req.Msg.MemberIDs)
	if err != nil {
		return nil, toConnectError(err)
	}

	now := time.Now().UnixMilli()
	members := []models.Member{{UserID: me.ID, Role: models.RoleAdmin, JoinedAt: now}}
	seen := map[string]bool{me.ID: true}
	for _, id := range req.Msg.MemberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := known[id]; !ok {
			slog.Warn("CreateGroup: skipping unknown member", "user_id", id)
			continue
		}
		members = append(members, models.Member{UserID: id, Role: models.RoleMember, JoinedAt: now})
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
		ImageURL:    strings.TrimSpace(req.Msg.ImageURL),
		CreatedBy:   me.ID,
		Members:     members,
		CreatedAt:   now,
	}

	// Save to storage (generates ID)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(members))

	known[me.ID] = me
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group, known)}), nil
}

// GetGroup returns a group with every member's net and a simplified set of
// payments that would settle it.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := loadGroupForMember(ctx, s.store, req.Msg.GroupID, me.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	expenses, settlements, err := groupRecords(ctx, s.store, group.ID)
	if err != nil {
		slog.Error("GetGroup: failed to load records", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	users, err := s.store.GetUsers(ctx, group.MemberIDs())
	if err != nil {
		return nil, toConnectError(err)
	}

	memberNets, debtEdges := calculator.GroupLedger(group, expenses, settlements)

	nets := make([]api.MemberNet, len(memberNets))
	for i, n := range memberNets {
		nets[i] = api.MemberNet{UserID: n.UserID, Name: nameOf(users, n.UserID), NetBalance: n.NetBalance}
	}
	debts := make([]api.Debt, len(debtEdges))
	for i, d := range debtEdges {
		debts[i] = api.Debt{From: d.From, To: d.To, Amount: d.Amount}
	}

	return connect.NewResponse(&api.GetGroupResponse{
		Group: toAPIGroup(group, users),
		Nets:  nets,
		Debts: debts,
	}), nil
}

// ListGroups returns the caller's groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForUser(ctx, me.ID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	var ids []string
	for _, g := range groups {
		ids = append(ids, g.MemberIDs()...)
	}
	users, err := s.store.GetUsers(ctx, ids)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g, users)
	}

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// EditGroup updates name, description and image. Admins only.
func (s *GroupService) EditGroup(ctx context.Context, req *connect.Request[api.EditGroupRequest]) (*connect.Response[api.EditGroupResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.loadGroupForAdmin(ctx, req.Msg.GroupID, me.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Msg.Name); name != "" {
		group.Name = name
	}
	group.Description = strings.TrimSpace(req.Msg.Description)
	group.ImageURL = strings.TrimSpace(req.Msg.ImageURL)

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Error("EditGroup failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	out, err := s.withNames(ctx, group)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.EditGroupResponse{Group: out}), nil
}

// JoinGroup adds the caller to a group. Joining twice is a no-op.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if !group.IsMember(me.ID) {
		err = s.store.AddMember(ctx, group.ID, models.Member{
			UserID:   me.ID,
			Role:     models.RoleMember,
			JoinedAt: time.Now().UnixMilli(),
		})
		if err != nil {
			return nil, toConnectError(err)
		}
		if group, err = s.store.GetGroup(ctx, group.ID); err != nil {
			return nil, toConnectError(err)
		}
		slog.Info("Member joined group", "group_id", group.ID, "user_id", me.ID)
	}

	out, err := s.withNames(ctx, group)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.JoinGroupResponse{Group: out}), nil
}

// RemoveMember removes another member. Admins only.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.loadGroupForAdmin(ctx, req.Msg.GroupID, me.ID)
	if err != nil {
		return nil, err
	}
	if req.Msg.UserID == me.ID {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errRemoveYourself)
	}

	if err := s.store.RemoveMember(ctx, group.ID, req.Msg.UserID); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Member removed from group", "group_id", group.ID, "user_id", req.Msg.UserID)

	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// DeleteGroup removes a group with its expenses and settlements. Admins only.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.loadGroupForAdmin(ctx, req.Msg.GroupID, me.ID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", group.ID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}
