package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashcrush/internal/cache"
	"github.com/mmynk/cashcrush/internal/calculator"
	"github.com/mmynk/cashcrush/internal/email"
	"github.com/mmynk/cashcrush/internal/storage"
	"github.com/mmynk/cashcrush/internal/upi"
	"github.com/mmynk/cashcrush/pkg/api"
	"github.com/mmynk/cashcrush/pkg/api/apiconnect"
)

var (
	errEmailNotEnabled = errors.New("email reminders are not configured")
	errNothingOwed     = errors.New("this user does not owe you anything")
	errNoEmail         = errors.New("this user has no email address")
	errTooSoon         = errors.New("a reminder was already sent recently")
)

// ReminderService implements the Connect ReminderService
type ReminderService struct {
	store    storage.Store
	sender   email.Sender
	cache    cache.Cache
	cooldown time.Duration
}

var _ apiconnect.ReminderServiceHandler = (*ReminderService)(nil)

// NewReminderService creates a ReminderService. A nil sender disables
// reminders. At most one reminder per sender, recipient and group is sent
// per cooldown.
func NewReminderService(store storage.Store, sender email.Sender, c cache.Cache, cooldown time.Duration) *ReminderService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ReminderService{store: store, sender: sender, cache: c, cooldown: cooldown}
}

// SendPaymentReminder emails a user who owes the caller.
func (s *ReminderService) SendPaymentReminder(ctx context.Context, req *connect.Request[api.SendPaymentReminderRequest]) (*connect.Response[api.SendPaymentReminderResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}
	msg := req.Msg

	if s.sender == nil {
		return nil, connect.NewError(connect.CodeUnavailable, errEmailNotEnabled)
	}
	tone := email.Tone(msg.Tone)
	if !tone.Valid() {
		return nil, invalidArgument(fmt.Sprintf("unknown tone %q", msg.Tone))
	}
	custom := strings.TrimSpace(msg.Message)
	if tone == email.ToneCustom && custom == "" {
		return nil, invalidArgument("a custom reminder needs a message")
	}
	if msg.UserID == me.ID {
		return nil, invalidArgument("cannot remind yourself")
	}

	recipient, err := s.store.GetUser(ctx, msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if recipient.Email == "" {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errNoEmail)
	}

	amount, groupName, err := s.owedBy(ctx, me.ID, recipient.ID, msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !amount.IsPositive() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errNothingOwed)
	}

	reminder := email.Reminder{
		RecipientName: recipient.Name,
		SenderName:    me.Name,
		Amount:        amount,
		GroupName:     groupName,
		Tone:          tone,
		Message:       custom,
	}
	if upi.IsValidHandle(me.PaymentHandle) {
		reminder.PaymentURL = upi.PaymentURL(upi.Payment{
			Handle: me.PaymentHandle,
			Name:   me.Name,
			Amount: amount,
			Note:   "Cash Crush settlement",
		})
		reminder.PayeeHandle = upi.DisplayHandle(me.PaymentHandle)
	}
	message, err := email.RenderReminder(recipient.Email, reminder)
	if err != nil {
		return nil, toConnectError(err)
	}

	key := reminderKey(me.ID, recipient.ID, msg.GroupID)
	if s.cooldown > 0 {
		acquired, err := s.cache.Acquire(ctx, key, s.cooldown)
		if err != nil {
			return nil, toConnectError(err)
		}
		if !acquired {
			return nil, connect.NewError(connect.CodeResourceExhausted, errTooSoon)
		}
	}

	if err := s.sender.Send(ctx, message); err != nil {
		slog.Error("Reminder email failed", "user_id", me.ID, "recipient_id", recipient.ID, "error", err)
		if s.cooldown > 0 {
			if err := s.cache.Release(ctx, key); err != nil {
				slog.Warn("Failed to release reminder cooldown", "key", key, "error", err)
			}
		}
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	slog.Info("Reminder sent",
		"user_id", me.ID,
		"recipient_id", recipient.ID,
		"group_id", msg.GroupID,
		"tone", string(tone),
	)

	return connect.NewResponse(&api.SendPaymentReminderResponse{Amount: amount, SentTo: recipient.Email}), nil
}

// owedBy returns what other owes me, personally or within groupID, and the
// group's name.
func (s *ReminderService) owedBy(ctx context.Context, me, other, groupID string) (decimal.Decimal, string, error) {
	if groupID == "" {
		expenses, settlements, err := pairRecords(ctx, s.store, me, other)
		if err != nil {
			return decimal.Zero, "", err
		}
		return calculator.PairwiseBalance(me, other, expenses, settlements).Net, "", nil
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return decimal.Zero, "", err
	}
	if !group.IsMember(other) {
		return decimal.Zero, "", fmt.Errorf("%w: %s", calculator.ErrInvalidParticipant, other)
	}
	expenses, settlements, err := groupRecords(ctx, s.store, group.ID)
	if err != nil {
		return decimal.Zero, "", err
	}
	balances, err := calculator.GroupBalances(me, group, expenses, settlements)
	if err != nil {
		return decimal.Zero, "", err
	}
	for _, b := range balances {
		if b.UserID == other {
			return b.NetBalance, group.Name, nil
		}
	}
	return decimal.Zero, group.Name, nil
}

func reminderKey(from, to, groupID string) string {
	scope := groupID
	if scope == "" {
		scope = "personal"
	}
	return "reminder:" + from + ":" + to + ":" + scope
}
