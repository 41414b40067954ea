package payments

import "errors"

type Total struct {
	Label       string `json:"label"`
	AmountCents int64  `json:"amount"`
}

// PaymentRequest configures the browser's wallet pay sheet.
type PaymentRequest struct {
	Country           string `json:"country"`
	Currency          string `json:"currency"`
	Total             Total  `json:"total"`
	RequestPayerName  bool   `json:"requestPayerName"`
	RequestPayerEmail bool   `json:"requestPayerEmail"`
}

const (
	Currency = "usd"
	Country  = "US"
)

func TotalFor(amountCents int, recurring bool) Total {
	label := "One-time Donation"
	if recurring {
		label = "Monthly Donation"
	}
	return Total{Label: label, AmountCents: int64(amountCents)}
}

func newPaymentRequest(total Total) (PaymentRequest, error) {
	if total.AmountCents <= 0 {
		return PaymentRequest{}, errors.New("payment request total must be positive")
	}
	return PaymentRequest{
		Country:           Country,
		Currency:          Currency,
		Total:             total,
		RequestPayerName:  true,
		RequestPayerEmail: true,
	}, nil
}
