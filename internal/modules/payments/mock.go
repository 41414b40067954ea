package payments

import (
	"context"
	"errors"
	"sync"
)

// Test payment-method ids understood by Mock, mirroring the processor's test tokens.
const (
	MockMethodSuccess           = "pm_card_visa"
	MockMethodDeclined          = "pm_card_chargeDeclined"
	MockMethodInsufficientFunds = "pm_card_chargeDeclinedInsufficientFunds"
	MockMethodProcessingError   = "pm_card_chargeDeclinedProcessingError"
)

type MockConfirmation struct {
	ClientSecret string
	Method       MethodRef
	Billing      *BillingDetails
}

// Mock is the collaborator used when no processor key is configured.
type Mock struct {
	WalletAvailable bool
	ProbeErr        error

	mu        sync.Mutex
	Confirmed []MockConfirmation
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) ProbeWalletAvailability(ctx context.Context) (bool, error) {
	_ = ctx
	if m.ProbeErr != nil {
		return false, m.ProbeErr
	}
	return m.WalletAvailable, nil
}

func (m *Mock) CreatePaymentRequest(total Total) (PaymentRequest, error) {
	return newPaymentRequest(total)
}

func (m *Mock) ConfirmCharge(ctx context.Context, clientSecret string, method MethodRef, billing *BillingDetails) (ConfirmResult, error) {
	if err := ctx.Err(); err != nil {
		return ConfirmResult{}, err
	}
	piID, err := IntentIDFromSecret(clientSecret)
	if err != nil {
		return ConfirmResult{}, err
	}

	m.mu.Lock()
	m.Confirmed = append(m.Confirmed, MockConfirmation{ClientSecret: clientSecret, Method: method, Billing: billing})
	m.mu.Unlock()

	switch method.PaymentMethodID {
	case "":
		return ConfirmResult{}, ErrMissingPaymentMethod
	case MockMethodDeclined:
		return ConfirmResult{}, &DeclinedError{Message: "Your card was declined.", Code: "card_declined", DeclineCode: "generic_decline"}
	case MockMethodInsufficientFunds:
		return ConfirmResult{}, &DeclinedError{Message: "Your card has insufficient funds.", Code: "card_declined", DeclineCode: "insufficient_funds"}
	case MockMethodProcessingError:
		return ConfirmResult{}, errors.New("mock: processing error")
	}
	return ConfirmResult{PaymentIntentID: piID, Status: "succeeded"}, nil
}

func (m *Mock) Confirmations() []MockConfirmation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockConfirmation, len(m.Confirmed))
	copy(out, m.Confirmed)
	return out
}
