package receipts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadkhan011/calcrew-frontend/internal/mailer"
	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
)

func TestSendReceipt(t *testing.T) {
	m := &mailer.Mock{}
	svc := NewService(m, "donations@example.org", "CalCrew")

	err := svc.SendReceipt(context.Background(), checkout.Receipt{
		Email:           " ada@example.com ",
		Name:            "Ada Lovelace",
		AmountCents:     3500,
		PaymentIntentID: "pi_123",
	})
	require.NoError(t, err)

	sent := m.Messages()
	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, []string{"ada@example.com"}, msg.To)
	assert.Equal(t, "donations@example.org", msg.From)
	assert.Equal(t, "CalCrew", msg.FromName)
	assert.Equal(t, "Your donation receipt ($35.00)", msg.Subject)
	assert.Contains(t, msg.TextBody, "Hi Ada Lovelace,")
	assert.Contains(t, msg.TextBody, "one-time donation of $35.00")
	assert.Contains(t, msg.TextBody, "Reference: pi_123")
	assert.Contains(t, msg.HTMLBody, "<strong>$35.00</strong>")
}

func TestSendReceiptMonthly(t *testing.T) {
	m := &mailer.Mock{}
	svc := NewService(m, "donations@example.org", "CalCrew")

	require.NoError(t, svc.SendReceipt(context.Background(), checkout.Receipt{
		Email:       "ada@example.com",
		AmountCents: 750,
		Recurring:   true,
	}))

	msg := m.Messages()[0]
	assert.Contains(t, msg.TextBody, "Hi friend,")
	assert.Contains(t, msg.TextBody, "monthly donation of $7.50")
	assert.NotContains(t, msg.TextBody, "Reference:")
}

func TestSendReceiptEscapesHTML(t *testing.T) {
	m := &mailer.Mock{}
	svc := NewService(m, "donations@example.org", "CalCrew")

	require.NoError(t, svc.SendReceipt(context.Background(), checkout.Receipt{
		Email:       "ada@example.com",
		Name:        "<script>x</script>",
		AmountCents: 1000,
	}))

	msg := m.Messages()[0]
	assert.NotContains(t, msg.HTMLBody, "<script>")
	assert.Contains(t, msg.HTMLBody, "&lt;script&gt;")
}

func TestSendReceiptErrors(t *testing.T) {
	m := &mailer.Mock{}
	svc := NewService(m, "donations@example.org", "CalCrew")

	err := svc.SendReceipt(context.Background(), checkout.Receipt{Email: "  ", AmountCents: 1000})
	assert.ErrorIs(t, err, ErrNoRecipient)
	assert.Empty(t, m.Messages())

	down := errors.New("smtp down")
	m.Err = down
	err = svc.SendReceipt(context.Background(), checkout.Receipt{Email: "ada@example.com", AmountCents: 1000})
	assert.ErrorIs(t, err, down)
}
