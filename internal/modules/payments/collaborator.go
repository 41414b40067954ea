package payments

import (
	"context"
	"strings"
)

type MethodKind string

const (
	KindCard   MethodKind = "card"
	KindWallet MethodKind = "wallet"
)

// MethodRef points at a payment method tokenized in the browser. Raw card
// data never reaches this service.
type MethodRef struct {
	Kind            MethodKind
	PaymentMethodID string
}

type Address struct {
	Line1      string `json:"line1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

type BillingDetails struct {
	Name    string  `json:"name,omitempty"`
	Email   string  `json:"email,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
}

type ConfirmResult struct {
	PaymentIntentID string
	Status          string // succeeded|processing|requires_capture
}

// Collaborator is the hosted payment processor as seen by the checkout flow.
type Collaborator interface {
	Name() string
	ProbeWalletAvailability(ctx context.Context) (bool, error)
	ConfirmCharge(ctx context.Context, clientSecret string, method MethodRef, billing *BillingDetails) (ConfirmResult, error)
	CreatePaymentRequest(total Total) (PaymentRequest, error)
}

// IntentIDFromSecret extracts "pi_123" from "pi_123_secret_abc".
func IntentIDFromSecret(secret string) (string, error) {
	i := strings.Index(secret, "_secret_")
	if i <= 0 {
		return "", ErrInvalidClientSecret
	}
	return secret[:i], nil
}
