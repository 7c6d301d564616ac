package mailer

import (
	"context"
	"fmt"
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	"github.com/storefront-labs/draft-checkout/internal/config"
	"github.com/storefront-labs/draft-checkout/internal/models"
)

// Outcome reports what happened to the summary email. Sending is
// await-and-report: the send is waited on and its result surfaces as the
// emailSent/emailError response fields, but a failure never fails the order
// creation that preceded it.
type Outcome struct {
	Sent  bool
	Error string
}

// Mailer composes and sends the draft-order summary email over SMTP.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *slog.Logger

	// send is swapped out in tests
	send func(msg *gomail.Message) error
}

// New creates a mailer with a dialer built from the SMTP config
func New(cfg config.SMTPConfig, logger *slog.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{
		cfg:    cfg,
		logger: logger,
		send: func(msg *gomail.Message) error {
			return dialer.DialAndSend(msg)
		},
	}
}

// Configured reports whether SMTP credentials are present.
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != ""
}

// Notify emails the customer a summary of the created draft order(s).
// It is a no-op when the customer has no email address or when SMTP
// credentials are absent; neither case is an error.
func (m *Mailer) Notify(ctx context.Context, customer models.Customer, orders []models.CreatedDraftOrder, shop string) Outcome {
	if customer.Email == "" {
		m.logger.Debug("skipping summary email: customer has no email address")
		return Outcome{}
	}

	if !m.Configured() {
		m.logger.Warn("skipping summary email: SMTP credentials are not configured")
		return Outcome{}
	}

	html, err := renderSummaryEmail(summaryData{
		Greeting: greeting(customer),
		Shop:     shop,
		Split:    len(orders) > 1,
		Orders:   orders,
	})
	if err != nil {
		m.logger.Error("failed to render summary email", "error", err)
		return Outcome{Error: err.Error()}
	}

	subject := "Your order summary"
	if len(orders) > 1 {
		subject = fmt.Sprintf("Your payment plan: %d orders created", len(orders))
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", customer.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.send(msg); err != nil {
		m.logger.Error("failed to send summary email", "to", customer.Email, "error", err)
		return Outcome{Error: err.Error()}
	}

	m.logger.Info("summary email sent", "to", customer.Email, "orders", len(orders))
	return Outcome{Sent: true}
}

func greeting(customer models.Customer) string {
	if customer.FirstName != "" {
		return customer.FirstName
	}
	return "there"
}
