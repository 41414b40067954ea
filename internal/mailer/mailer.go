package mailer

import "context"

type Sender interface {
	Send(ctx context.Context, m Message) error
}

type Message struct {
	FromName string
	From     string
	To       []string
	ReplyTo  string

	Subject  string
	TextBody string
	HTMLBody string

	Headers map[string]string
}

func (m Message) validate() error {
	switch {
	case len(m.To) == 0:
		return errNoRecipient
	case m.From == "":
		return errNoFrom
	case m.Subject == "":
		return errNoSubject
	case m.TextBody == "" && m.HTMLBody == "":
		return errNoBody
	}
	return nil
}
