package api

import "github.com/shopspring/decimal"

// Reminder tones.
const (
	ToneNormal = "normal"
	ToneUrgent = "urgent"
	ToneFunny  = "funny"
	TonePolite = "polite"
	ToneCustom = "custom"
)

// SendPaymentReminderRequest emails UserID about what they owe the caller,
// within GroupID when set. Message is required for ToneCustom.
type SendPaymentReminderRequest struct {
	UserID  string `json:"userId"`
	GroupID string `json:"groupId,omitempty"`
	Tone    string `json:"tone,omitempty"`
	Message string `json:"message,omitempty"`
}

type SendPaymentReminderResponse struct {
	Amount decimal.Decimal `json:"amount"`
	SentTo string          `json:"sentTo"`
}
