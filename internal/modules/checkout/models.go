package checkout

import (
	"strings"
	"time"
)

type Step int

const (
	StepAmount  Step = 1
	StepProfile Step = 2
	StepPayment Step = 3
)

type PaymentMethod string

const (
	MethodCard          PaymentMethod = "card"
	MethodDigitalWallet PaymentMethod = "digital_wallet"
	MethodVenmo         PaymentMethod = "venmo"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.TrimSpace(s)); m {
	case MethodCard, MethodDigitalWallet, MethodVenmo:
		return m, nil
	default:
		return "", ErrUnknownMethod
	}
}

// Preset amounts in whole dollars, offered as one-tap selections.
var PresetAmounts = []int{15, 35, 50}

const DefaultPreset = 35

const (
	MsgCardSuccess    = "Payment successful! Thank you for your donation."
	MsgWalletSuccess  = "Payment successful!"
	MsgGenericFailure = "An error occurred. Please try again."
	MsgVenmoRedirect  = "Redirecting to Venmo..."
)

// DonationIntent holds the amount and method choices of step 1.
// CustomAmount keeps the text the donor typed; a non-empty value wins over the preset.
type DonationIntent struct {
	PresetDollars int           `json:"preset_dollars"`
	CustomAmount  string        `json:"custom_amount,omitempty"`
	Recurring     bool          `json:"recurring"`
	Method        PaymentMethod `json:"method"`
}

// AmountCents returns the effective donation in cents, or 0 when none is selected.
func (d DonationIntent) AmountCents() int {
	if strings.TrimSpace(d.CustomAmount) != "" {
		cents, err := ParseAmount(d.CustomAmount)
		if err != nil {
			return 0
		}
		return cents
	}
	return d.PresetDollars * 100
}

type DonorProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zipCode"`
}

// Complete reports whether the required fields are non-empty after trimming.
// Formats are not checked.
func (p DonorProfile) Complete() bool {
	return len(p.MissingFields()) == 0
}

func (p DonorProfile) MissingFields() []string {
	var out []string
	if strings.TrimSpace(p.FirstName) == "" {
		out = append(out, "first_name")
	}
	if strings.TrimSpace(p.LastName) == "" {
		out = append(out, "last_name")
	}
	if strings.TrimSpace(p.Email) == "" {
		out = append(out, "email")
	}
	return out
}

func (p DonorProfile) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

type Session struct {
	ID              string         `json:"id"`
	Step            Step           `json:"step"`
	Intent          DonationIntent `json:"intent"`
	Profile         DonorProfile   `json:"profile"`
	Processing      bool           `json:"processing"`
	StatusMessage   string         `json:"status_message,omitempty"`
	WalletSupported bool           `json:"wallet_supported"` // server-side probe
	WalletAvailable bool           `json:"wallet_available"` // narrowed by the browser's probe
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewSession returns the state a fresh mount starts from.
func NewSession(id string, walletSupported bool, now time.Time) Session {
	return Session{
		ID:   id,
		Step: StepAmount,
		Intent: DonationIntent{
			PresetDollars: DefaultPreset,
			Method:        MethodCard,
		},
		WalletSupported: walletSupported,
		WalletAvailable: walletSupported,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s Session) AmountCents() int { return s.Intent.AmountCents() }

// CanContinue reports whether the profile step may advance.
func (s Session) CanContinue() bool {
	return s.Step == StepProfile && s.Profile.Complete()
}

type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "failure"
)

// Outcome is the display-only result of a charge attempt.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
}

func Succeeded(msg string) Outcome { return Outcome{Status: OutcomeSuccess, Reason: msg} }

func Failed(reason string) Outcome { return Outcome{Status: OutcomeFailure, Reason: reason} }

func (o Outcome) Succeeded() bool { return o.Status == OutcomeSuccess }

func (o Outcome) Message() string {
	if o.Reason != "" {
		return o.Reason
	}
	if o.Status == OutcomeSuccess {
		return MsgCardSuccess
	}
	return MsgGenericFailure
}
