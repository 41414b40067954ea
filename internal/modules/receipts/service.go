package receipts

import (
	"context"
	"errors"
	"html"
	"strings"

	"github.com/saadkhan011/calcrew-frontend/internal/mailer"
	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
	"github.com/saadkhan011/calcrew-frontend/pkg/view"
)

var ErrNoRecipient = errors.New("receipt has no email address")

// Service turns a successful donation into a receipt email.
type Service struct {
	sender   mailer.Sender
	from     string
	fromName string
}

func NewService(sender mailer.Sender, from, fromName string) *Service {
	return &Service{sender: sender, from: from, fromName: fromName}
}

func (s *Service) SendReceipt(ctx context.Context, r checkout.Receipt) error {
	to := strings.TrimSpace(r.Email)
	if to == "" {
		return ErrNoRecipient
	}

	amount := view.MoneyFromCents(r.AmountCents, "USD")
	kind := "one-time"
	if r.Recurring {
		kind = "monthly"
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = "friend"
	}

	var text strings.Builder
	text.WriteString("Hi " + name + ",\n\n")
	text.WriteString("Thank you for your " + kind + " donation of " + amount + ".\n")
	if r.PaymentIntentID != "" {
		text.WriteString("Reference: " + r.PaymentIntentID + "\n")
	}
	text.WriteString("\nYour contribution will benefit our cause.\n\nCalCrew\n")

	var body strings.Builder
	body.WriteString(`<html><body style="font-family:sans-serif;color:#1f2937;">`)
	body.WriteString(`<h2 style="color:#041c3f;">Thank you!</h2>`)
	body.WriteString(`<p>Hi ` + html.EscapeString(name) + `,</p>`)
	body.WriteString(`<p>Thank you for your ` + kind + ` donation of <strong>` + html.EscapeString(amount) + `</strong>.</p>`)
	if r.PaymentIntentID != "" {
		body.WriteString(`<p style="font-size:13px;color:#6b7280;">Reference: ` + html.EscapeString(r.PaymentIntentID) + `</p>`)
	}
	body.WriteString(`<p>Your contribution will benefit our cause.</p><p>CalCrew</p></body></html>`)

	return s.sender.Send(ctx, mailer.Message{
		From:     s.from,
		FromName: s.fromName,
		To:       []string{to},
		Subject:  "Your donation receipt (" + amount + ")",
		TextBody: text.String(),
		HTMLBody: body.String(),
	})
}
