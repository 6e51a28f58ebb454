package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
)

// Tone selects the wording of a payment reminder.
type Tone string

const (
	ToneNormal Tone = "normal"
	ToneUrgent Tone = "urgent"
	ToneFunny  Tone = "funny"
	TonePolite Tone = "polite"
	// ToneCustom uses Reminder.Message as the body text.
	ToneCustom Tone = "custom"
)

// Valid reports whether t is a known tone. The empty tone means normal.
func (t Tone) Valid() bool {
	switch t {
	case "", ToneNormal, ToneUrgent, ToneFunny, TonePolite, ToneCustom:
		return true
	}
	return false
}

// Reminder is the data of a payment reminder email.
type Reminder struct {
	RecipientName string
	SenderName    string
	Amount        decimal.Decimal
	// GroupName is set when the balance is within a group.
	GroupName string
	Tone      Tone
	Message   string
	// PaymentURL is an optional upi:// link to pay the sender.
	PaymentURL string
	// PayeeHandle is the sender's UPI ID as shown under the link.
	PayeeHandle string
}

// Subject returns the email subject for the reminder's tone.
func (r Reminder) Subject() string {
	switch r.Tone {
	case ToneUrgent:
		return "🚨 Urgent payment reminder - Cash Crush"
	case ToneFunny:
		return "💰 Your money is calling! - Cash Crush"
	case TonePolite:
		return "Gentle payment reminder - Cash Crush"
	case ToneCustom:
		return "Payment reminder - Cash Crush"
	default:
		return fmt.Sprintf("Payment reminder from %s - Cash Crush", r.SenderName)
	}
}

type reminderView struct {
	Reminder
	Tone         string
	FormatAmount string
	PaymentURL   template.URL
}

// RenderReminder builds the complete reminder message for to.
func RenderReminder(to string, r Reminder) (Message, error) {
	tone := r.Tone
	if tone == "" {
		tone = ToneNormal
	}
	view := reminderView{
		Reminder:     r,
		Tone:         string(tone),
		FormatAmount: "₹" + r.Amount.StringFixed(2),
		// upi:// is not on html/template's safe scheme list.
		PaymentURL: template.URL(r.PaymentURL),
	}

	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, view); err != nil {
		return Message{}, fmt.Errorf("failed to execute template: %w", err)
	}
	return Message{To: to, Subject: r.Subject(), HTML: body.String()}, nil
}

var reminderTemplate = template.Must(template.New("reminder").Parse(reminderHTML))

const reminderHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Payment Reminder - Cash Crush</title>
  <style>
    body { margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5; line-height: 1.6; }
    .container { max-width: 600px; margin: 0 auto; background-color: white; border-radius: 12px; overflow: hidden; }
    .header { background: linear-gradient(135deg, #10B981 0%, #059669 100%); padding: 40px 30px; text-align: center; color: white; }
    .content { padding: 40px 30px; }
    .message { font-size: 16px; color: #6B7280; margin-bottom: 30px; }
    .amount-card { background: #F9FAFB; border: 2px solid #10B981; border-radius: 12px; padding: 25px; text-align: center; margin: 30px 0; }
    .amount { font-size: 36px; font-weight: 800; color: #10B981; margin: 0; }
    .cta-button { display: inline-block; background: #10B981; color: white; padding: 14px 28px; border-radius: 8px; text-decoration: none; font-weight: 600; }
    .footer { background: #1F2937; color: #9CA3AF; padding: 30px; text-align: center; font-size: 14px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Cash Crush</h1>
      <p>Smart expense sharing made simple</p>
    </div>
    <div class="content">
      <div>Hi {{.RecipientName}},</div>
      <div class="message">
      {{- if eq .Tone "urgent"}}
        <strong>This is an urgent reminder!</strong><br>
        {{.SenderName}} has been waiting for this payment{{if .GroupName}} from the {{.GroupName}} group{{end}}.
        Please settle this balance as soon as possible to keep things smooth between friends.
      {{- else if eq .Tone "funny"}}
        {{.SenderName}} is wondering where their money went!<br><br>
        Did it go on a vacation without telling anyone? We may never know, but we do know it needs to come back home{{if .GroupName}} to settle the {{.GroupName}} group balance{{end}}!
      {{- else if eq .Tone "polite"}}
        {{.SenderName}} wanted to send you a gentle reminder about your outstanding balance{{if .GroupName}} in the {{.GroupName}} group{{end}}.
        No rush at all. Settle up whenever it's convenient for you.
      {{- else if eq .Tone "custom"}}
        {{.Message}}
      {{- else}}
        You have an outstanding balance{{if .GroupName}} in the {{.GroupName}} group{{else}} with {{.SenderName}}{{end}}.
        Here's a friendly reminder to help keep track of your shared expenses.
      {{- end}}
      </div>
      <div class="amount-card">
        <div class="amount">{{.FormatAmount}}</div>
        <div>{{if .GroupName}}Group balance{{else}}Amount owed{{end}}</div>
      </div>
      {{- if .PaymentURL}}
      <div style="text-align: center;">
        <a href="{{.PaymentURL}}" class="cta-button">Pay {{.SenderName}} with UPI</a>
        {{- if .PayeeHandle}}
        <p>UPI ID: {{.PayeeHandle}}</p>
        {{- end}}
      </div>
      {{- end}}
    </div>
    <div class="footer">
      <p>Have a great day! The Cash Crush Team</p>
    </div>
  </div>
</body>
</html>
`
