// Package upi builds UPI (Unified Payments Interface) deep links and checks
// payment handles.
package upi

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultNote is used when a payment carries no note.
const DefaultNote = "Settlement"

var handlePattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)

// Payment describes a UPI payment request.
type Payment struct {
	// Handle is the payee's UPI id. Without it the payer's app asks for one.
	Handle string
	Name   string
	Amount decimal.Decimal
	// Currency defaults to INR.
	Currency string
	Note     string
}

// IsValidHandle reports whether handle looks like name@provider.
func IsValidHandle(handle string) bool {
	return handlePattern.MatchString(handle)
}

// escape matches JavaScript's encodeURIComponent closely enough for UPI apps:
// spaces become %20 rather than +.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// PaymentURL returns the upi://pay link for p, or "" when the amount is not
// positive.
func PaymentURL(p Payment) string {
	if !p.Amount.IsPositive() {
		return ""
	}
	currency := p.Currency
	if currency == "" {
		currency = "INR"
	}
	note := p.Note
	if note == "" {
		note = DefaultNote
	}
	amount := p.Amount.StringFixed(2)

	if p.Handle != "" {
		return "upi://pay?pa=" + p.Handle +
			"&pn=" + escape(p.Name) +
			"&am=" + amount +
			"&cu=" + currency +
			"&tn=" + escape(note)
	}

	if p.Name != "" {
		note += " to " + p.Name
	}
	return "upi://pay?am=" + amount + "&cu=" + currency + "&tn=" + escape(note)
}

// DisplayHandle shortens long handles for display, keeping the provider.
func DisplayHandle(handle string) string {
	if len(handle) <= 25 {
		return handle
	}
	user, provider, ok := strings.Cut(handle, "@")
	if !ok || user == "" || provider == "" {
		return handle
	}
	if len(user) > 15 {
		user = user[:12] + "..."
	}
	return user + "@" + provider
}
