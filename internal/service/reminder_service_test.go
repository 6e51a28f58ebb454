package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmynk/cashcrush/internal/email"
	"github.com/mmynk/cashcrush/pkg/api"
)

func remind(u *testUser, req *api.SendPaymentReminderRequest) (*connect.Response[api.SendPaymentReminderResponse], error) {
	return u.reminders.SendPaymentReminder(context.Background(), connect.NewRequest(req))
}

func TestSendPaymentReminder(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := email.NewMockSender(ctrl)
	env := newTestEnv(t, envOptions{sender: sender, cache: newMemoryCache(), cooldown: time.Hour})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	ctx := context.Background()

	alice.PaymentHandle = "alice@okbank"
	require.NoError(t, env.store.UpdateUser(ctx, alice.User))

	addExpense(t, alice, "", "100", alice, "50", bob, "50")

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg email.Message) error {
			assert.Equal(t, "bob@example.com", msg.To)
			assert.Equal(t, "🚨 Urgent payment reminder - Cash Crush", msg.Subject)
			assert.Contains(t, msg.HTML, "₹50.00")
			assert.Contains(t, msg.HTML, "upi://pay?pa=alice@okbank")
			assert.Contains(t, msg.HTML, "UPI ID: alice@okbank")
			return nil
		})

	resp, err := remind(alice, &api.SendPaymentReminderRequest{UserID: bob.ID, Tone: api.ToneUrgent})
	require.NoError(t, err)
	assertAmount(t, "50", resp.Msg.Amount)
	assert.Equal(t, "bob@example.com", resp.Msg.SentTo)

	_, err = remind(alice, &api.SendPaymentReminderRequest{UserID: bob.ID})
	assertCode(t, connect.CodeResourceExhausted, err)
}

func TestSendPaymentReminder_Group(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := email.NewMockSender(ctrl)
	env := newTestEnv(t, envOptions{sender: sender})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	carol := env.signIn("Carol")

	g := newGroup(t, alice, "Goa Trip", bob, carol)
	addExpense(t, alice, g.ID, "60", alice, "20", bob, "20", carol, "20")

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg email.Message) error {
			assert.Contains(t, msg.HTML, "Goa Trip")
			assert.NotContains(t, msg.HTML, "upi://", "no payment handle, no link")
			return nil
		})

	resp, err := remind(alice, &api.SendPaymentReminderRequest{UserID: carol.ID, GroupID: g.ID})
	require.NoError(t, err)
	assertAmount(t, "20", resp.Msg.Amount)

	// Carol owes Alice nothing personally.
	_, err = remind(alice, &api.SendPaymentReminderRequest{UserID: carol.ID})
	assertCode(t, connect.CodeFailedPrecondition, err)

	// Bob owes Alice, not the other way round.
	_, err = remind(bob, &api.SendPaymentReminderRequest{UserID: alice.ID, GroupID: g.ID})
	assertCode(t, connect.CodeFailedPrecondition, err)
}

func TestSendPaymentReminder_Rejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, envOptions{sender: email.NewMockSender(ctrl)})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")

	tests := []struct {
		name string
		req  *api.SendPaymentReminderRequest
		code connect.Code
	}{
		{"yourself", &api.SendPaymentReminderRequest{UserID: alice.ID}, connect.CodeInvalidArgument},
		{"unknown tone", &api.SendPaymentReminderRequest{UserID: bob.ID, Tone: "angry"}, connect.CodeInvalidArgument},
		{"custom without message", &api.SendPaymentReminderRequest{UserID: bob.ID, Tone: api.ToneCustom}, connect.CodeInvalidArgument},
		{"unknown user", &api.SendPaymentReminderRequest{UserID: "ghost"}, connect.CodeNotFound},
		{"missing group", &api.SendPaymentReminderRequest{UserID: bob.ID, GroupID: "nope"}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := remind(alice, tt.req)
			assertCode(t, tt.code, err)
		})
	}
}

func TestSendPaymentReminder_SendFailureReleasesCooldown(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := email.NewMockSender(ctrl)
	env := newTestEnv(t, envOptions{sender: sender, cache: newMemoryCache(), cooldown: time.Hour})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	addExpense(t, alice, "", "10", alice, "5", bob, "5")

	gomock.InOrder(
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down")),
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil),
	)

	_, err := remind(alice, &api.SendPaymentReminderRequest{UserID: bob.ID})
	assertCode(t, connect.CodeUnavailable, err)

	_, err = remind(alice, &api.SendPaymentReminderRequest{UserID: bob.ID})
	require.NoError(t, err)
}

func TestSendPaymentReminder_NotConfigured(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")

	_, err := remind(alice, &api.SendPaymentReminderRequest{UserID: bob.ID})
	assertCode(t, connect.CodeUnavailable, err)
}
