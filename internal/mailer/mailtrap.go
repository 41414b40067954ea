package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type mailtrapPerson struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapPayload struct {
	From     mailtrapPerson    `json:"from"`
	To       []mailtrapPerson  `json:"to"`
	ReplyTo  *mailtrapPerson   `json:"reply_to,omitempty"`
	Subject  string            `json:"subject"`
	Text     string            `json:"text,omitempty"`
	HTML     string            `json:"html,omitempty"`
	Category string            `json:"category,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

// Mailtrap sends through the Mailtrap send API, e.g.
// https://send.api.mailtrap.io/api/send or a sandbox inbox URL.
type Mailtrap struct {
	http   *resty.Client
	apiURL string
}

func NewMailtrap(apiURL, token string, timeout time.Duration) *Mailtrap {
	c := resty.New().
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Mailtrap{http: c, apiURL: apiURL}
}

func (m *Mailtrap) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	payload := mailtrapPayload{
		From:     mailtrapPerson{Email: msg.From, Name: msg.FromName},
		Subject:  msg.Subject,
		Text:     msg.TextBody,
		HTML:     msg.HTMLBody,
		Category: "Transactional",
		Headers:  msg.Headers,
	}
	for _, to := range msg.To {
		payload.To = append(payload.To, mailtrapPerson{Email: to})
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &mailtrapPerson{Email: msg.ReplyTo}
	}

	resp, err := m.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(m.apiURL)
	if err != nil {
		return fmt.Errorf("mailtrap send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mailtrap API error: %d", resp.StatusCode())
	}
	return nil
}
