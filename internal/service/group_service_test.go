package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cashcrush/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")

	resp, err := alice.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:      "  Roommates ",
		MemberIDs: []string{bob.ID, "no-such-user", bob.ID, alice.ID},
	}))
	require.NoError(t, err)

	g := resp.Msg.Group
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Roommates", g.Name)
	assert.Equal(t, alice.ID, g.CreatedBy)
	assert.NotZero(t, g.CreatedAt)

	require.Len(t, g.Members, 2, "unknown and duplicate members are skipped")
	assert.Equal(t, api.Member{UserID: alice.ID, Name: "Alice", Role: "admin", JoinedAt: g.Members[0].JoinedAt}, g.Members[0])
	assert.Equal(t, bob.ID, g.Members[1].UserID)
	assert.Equal(t, "member", g.Members[1].Role)
	assert.Equal(t, "Bob", g.Members[1].Name)
}

func TestCreateGroup_EmptyName(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")

	_, err := alice.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: "   "}))
	assertCode(t, connect.CodeInvalidArgument, err)
}

func TestGetGroup(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")
	ctx := context.Background()

	g := newGroup(t, alice, "Trip", bob, carol)
	addExpense(t, alice, g.ID, "90", alice, "30", bob, "30", carol, "30")
	addExpense(t, bob, g.ID, "45", alice, "15", bob, "15", carol, "15")

	resp, err := bob.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: g.ID}))
	require.NoError(t, err)

	require.Len(t, resp.Msg.Nets, 3)
	assert.Equal(t, "Alice", resp.Msg.Nets[0].Name)
	assertAmount(t, "45", resp.Msg.Nets[0].NetBalance)
	assertAmount(t, "0", resp.Msg.Nets[1].NetBalance)
	assertAmount(t, "-45", resp.Msg.Nets[2].NetBalance)

	require.Len(t, resp.Msg.Debts, 1)
	assert.Equal(t, carol.ID, resp.Msg.Debts[0].From)
	assert.Equal(t, alice.ID, resp.Msg.Debts[0].To)
	assertAmount(t, "45", resp.Msg.Debts[0].Amount)

	t.Run("outsider", func(t *testing.T) {
		dave := env.signIn("Dave")
		_, err := dave.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: g.ID}))
		assertCode(t, connect.CodePermissionDenied, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := alice.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: "nope"}))
		assertCode(t, connect.CodeNotFound, err)
	})
}

func TestListGroups(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	ctx := context.Background()

	newGroup(t, alice, "One", bob)
	newGroup(t, alice, "Two")

	resp, err := bob.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Groups, 1)
	assert.Equal(t, "One", resp.Msg.Groups[0].Name)

	resp, err = alice.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Groups, 2)
}

func TestEditGroup(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	ctx := context.Background()

	g := newGroup(t, alice, "Flat", bob)

	resp, err := alice.groups.EditGroup(ctx, connect.NewRequest(&api.EditGroupRequest{
		GroupID:     g.ID,
		Description: "Rent and bills",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Flat", resp.Msg.Group.Name, "empty name keeps the current one")
	assert.Equal(t, "Rent and bills", resp.Msg.Group.Description)

	_, err = bob.groups.EditGroup(ctx, connect.NewRequest(&api.EditGroupRequest{GroupID: g.ID, Name: "Mine"}))
	assertCode(t, connect.CodePermissionDenied, err)
}

func TestJoinGroup(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	ctx := context.Background()

	g := newGroup(t, alice, "Club")

	for i := 0; i < 2; i++ {
		resp, err := bob.groups.JoinGroup(ctx, connect.NewRequest(&api.JoinGroupRequest{GroupID: g.ID}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Group.Members, 2)
		assert.Equal(t, bob.ID, resp.Msg.Group.Members[1].UserID)
	}

	_, err := bob.groups.JoinGroup(ctx, connect.NewRequest(&api.JoinGroupRequest{GroupID: "nope"}))
	assertCode(t, connect.CodeNotFound, err)
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")
	ctx := context.Background()

	g := newGroup(t, alice, "Team", bob, carol)

	_, err := bob.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: g.ID, UserID: carol.ID}))
	assertCode(t, connect.CodePermissionDenied, err)

	_, err = alice.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: g.ID, UserID: alice.ID}))
	assertCode(t, connect.CodeFailedPrecondition, err)

	_, err = alice.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: g.ID, UserID: carol.ID}))
	require.NoError(t, err)

	_, err = carol.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: g.ID}))
	assertCode(t, connect.CodePermissionDenied, err)
}

func TestDeleteGroup_Cascades(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	ctx := context.Background()

	g := newGroup(t, alice, "Holiday", bob)
	expense := addExpense(t, alice, g.ID, "100", alice, "50", bob, "50")
	settle(t, bob, alice, g.ID, "20")

	_, err := bob.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupID: g.ID}))
	assertCode(t, connect.CodePermissionDenied, err)

	_, err = alice.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupID: g.ID}))
	require.NoError(t, err)

	_, err = alice.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: g.ID}))
	assertCode(t, connect.CodeNotFound, err)

	_, err = env.store.GetExpense(ctx, expense.ID)
	require.Error(t, err)
}
