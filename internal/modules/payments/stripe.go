package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

const msgAuthenticationRequired = "Additional authentication is required to complete this payment."

// Stripe confirms payment intents server-side with the secret key.
type Stripe struct {
	api           *client.API
	walletEnabled bool
}

func NewStripe(secretKey string, walletEnabled bool) *Stripe {
	return &Stripe{api: client.New(secretKey, nil), walletEnabled: walletEnabled}
}

func (s *Stripe) Name() string { return "stripe" }

// ProbeWalletAvailability reports the server-side half of the probe; the
// browser reports whether the device can actually show a pay sheet.
func (s *Stripe) ProbeWalletAvailability(ctx context.Context) (bool, error) {
	_ = ctx
	return s.walletEnabled, nil
}

func (s *Stripe) CreatePaymentRequest(total Total) (PaymentRequest, error) {
	return newPaymentRequest(total)
}

func (s *Stripe) ConfirmCharge(ctx context.Context, clientSecret string, method MethodRef, billing *BillingDetails) (ConfirmResult, error) {
	piID, err := IntentIDFromSecret(clientSecret)
	if err != nil {
		return ConfirmResult{}, err
	}
	if method.PaymentMethodID == "" {
		return ConfirmResult{}, ErrMissingPaymentMethod
	}

	if billing != nil {
		params := &stripe.PaymentMethodParams{
			BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
				Name:  optString(billing.Name),
				Email: optString(billing.Email),
				Phone: optString(billing.Phone),
				Address: &stripe.AddressParams{
					Line1:      optString(billing.Address.Line1),
					City:       optString(billing.Address.City),
					State:      optString(billing.Address.State),
					PostalCode: optString(billing.Address.PostalCode),
					Country:    optString(billing.Address.Country),
				},
			},
		}
		params.Context = ctx
		if _, err := s.api.PaymentMethods.Update(method.PaymentMethodID, params); err != nil {
			return ConfirmResult{}, translateStripeErr(err)
		}
	}

	cp := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(method.PaymentMethodID),
	}
	cp.Context = ctx
	pi, err := s.api.PaymentIntents.Confirm(piID, cp)
	if err != nil {
		return ConfirmResult{}, translateStripeErr(err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing, stripe.PaymentIntentStatusRequiresCapture:
		return ConfirmResult{PaymentIntentID: pi.ID, Status: string(pi.Status)}, nil
	case stripe.PaymentIntentStatusRequiresAction:
		return ConfirmResult{}, &DeclinedError{Message: msgAuthenticationRequired, Code: string(pi.Status)}
	default:
		msg := "Payment was not completed."
		if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
			msg = pi.LastPaymentError.Msg
		}
		return ConfirmResult{}, &DeclinedError{Message: msg, Code: string(pi.Status)}
	}
}

func translateStripeErr(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return &DeclinedError{Message: se.Msg, Code: string(se.Code), DeclineCode: string(se.DeclineCode)}
	}
	return fmt.Errorf("stripe: %w", err)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return stripe.String(s)
}
