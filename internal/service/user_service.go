package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cashcrush/internal/storage"
	"github.com/mmynk/cashcrush/internal/upi"
	"github.com/mmynk/cashcrush/pkg/api"
	"github.com/mmynk/cashcrush/pkg/api/apiconnect"
)

// searchLimit caps SearchUsers results.
const searchLimit = 20

// UserService implements the Connect UserService
type UserService struct {
	store storage.Store
}

var _ apiconnect.UserServiceHandler = (*UserService)(nil)

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// GetCurrentUser returns the caller's profile.
func (s *UserService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(me)}), nil
}

// UpdateProfile edits the caller's name, image and payment handle.
func (s *UserService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, me.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if name := strings.TrimSpace(req.Msg.Name); name != "" {
		user.Name = name
	}
	if image := strings.TrimSpace(req.Msg.ImageURL); image != "" {
		user.ImageURL = image
	}
	if req.Msg.PaymentHandle != nil {
		handle := strings.TrimSpace(*req.Msg.PaymentHandle)
		if handle != "" && !upi.IsValidHandle(handle) {
			return nil, invalidArgument("payment handle must look like name@provider")
		}
		user.PaymentHandle = handle
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		slog.Error("UpdateProfile failed", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateProfileResponse{User: toAPIUser(user)}), nil
}

// SearchUsers finds other users by name or email.
func (s *UserService) SearchUsers(ctx context.Context, req *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(req.Msg.Query)
	if query == "" {
		return connect.NewResponse(&api.SearchUsersResponse{Users: []api.User{}}), nil
	}

	found, err := s.store.SearchUsers(ctx, query, me.ID, searchLimit)
	if err != nil {
		return nil, toConnectError(err)
	}

	users := make([]api.User, len(found))
	for i, u := range found {
		users[i] = toAPIUser(u)
	}
	return connect.NewResponse(&api.SearchUsersResponse{Users: users}), nil
}

// GetContacts lists the people the caller shares personal expenses with and
// the groups they belong to.
func (s *UserService) GetContacts(ctx context.Context, req *connect.Request[api.GetContactsRequest]) (*connect.Response[api.GetContactsResponse], error) {
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

	seen := make(map[string]bool)
	var ids []string
	for i := range expenses {
		for _, id := range expenses[i].ParticipantIDs() {
			if id != me.ID && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	found, err := s.store.GetUsers(ctx, ids)
	if err != nil {
		return nil, toConnectError(err)
	}
	users := make([]api.User, 0, len(found))
	for _, u := range found {
		users = append(users, toAPIUser(u))
	}
	sortUsersByName(users)

	groups, err := s.store.ListGroupsForUser(ctx, me.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	summaries := make([]api.GroupSummary, len(groups))
	for i, g := range groups {
		summaries[i] = api.GroupSummary{ID: g.ID, Name: g.Name, MemberCount: len(g.Members)}
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].Name) < strings.ToLower(summaries[j].Name)
	})

	return connect.NewResponse(&api.GetContactsResponse{Users: users, Groups: summaries}), nil
}
