// Package email sends transactional email through Resend.
package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"
)

//go:generate mockgen -destination=mock_sender.go -package=email . Sender

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// emailAPI is the part of the Resend client the sender uses.
type emailAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type senderMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// ResendSender implements Sender with the Resend API.
type ResendSender struct {
	api     emailAPI
	from    string
	metrics *senderMetrics
}

var _ Sender = (*ResendSender)(nil)

// NewResendSender creates a sender using apiKey, sending from the given
// address ("Name <addr>"), and registers its metrics with reg.
func NewResendSender(apiKey, from string, reg prometheus.Registerer) *ResendSender {
	return newResendSender(resend.NewClient(apiKey).Emails, from, reg)
}

func newResendSender(api emailAPI, from string, reg prometheus.Registerer) *ResendSender {
	metrics := &senderMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashcrush_email_send_duration_seconds",
			Help:    "Time taken to send emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cashcrush_email_errors_total",
			Help: "Total number of email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cashcrush_emails_sent_total",
			Help: "Total number of emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return &ResendSender{api: api, from: from, metrics: metrics}
}

// Send delivers msg.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	start := time.Now()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(start).Seconds())
	}()

	if msg.To == "" {
		s.metrics.errorCount.Inc()
		return errors.New("email has no recipient")
	}

	_, err := s.api.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		s.metrics.errorCount.Inc()
		return fmt.Errorf("email send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	return nil
}
