package handlers

import (
	"errors"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
	"github.com/saadkhan011/calcrew-frontend/internal/shared/apperr"
	"github.com/saadkhan011/calcrew-frontend/pkg/view"
)

var stepLabels = []string{"Amount", "Your Info", "Payment"}

var methodLabels = []struct {
	Method checkout.PaymentMethod
	Label  string
}{
	{checkout.MethodCard, "Credit/Debit Card"},
	{checkout.MethodDigitalWallet, "Google Pay / Apple Pay"},
	{checkout.MethodVenmo, "Venmo"},
}

func donatePage(sess checkout.Session, flash *view.Flash, publishableKey string, showMissing bool) view.DonatePage {
	cents := sess.AmountCents()
	p := view.DonatePage{
		Flash:           flash,
		Step:            int(sess.Step),
		CustomAmount:    sess.Intent.CustomAmount,
		Recurring:       sess.Intent.Recurring,
		Method:          string(sess.Intent.Method),
		Amount:          view.MoneyFromCents(cents, "USD"),
		AmountShort:     view.WholeDollars(cents),
		HasAmount:       cents > 0,
		Frequency:       "One-time",
		CanContinue:     sess.CanContinue(),
		Processing:      sess.Processing,
		StatusMessage:   sess.StatusMessage,
		StatusSuccess:   sess.StatusMessage == checkout.MsgCardSuccess || sess.StatusMessage == checkout.MsgWalletSuccess,
		WalletAvailable: sess.WalletAvailable,
		PublishableKey:  publishableKey,
		Form: view.DonorForm{
			FirstName: sess.Profile.FirstName,
			LastName:  sess.Profile.LastName,
			Email:     sess.Profile.Email,
			Phone:     sess.Profile.Phone,
			Address:   sess.Profile.Address,
			City:      sess.Profile.City,
			State:     sess.Profile.State,
			ZipCode:   sess.Profile.Zip,
		},
	}
	if sess.Intent.Recurring {
		p.Frequency = "Monthly"
	}

	// the step indicator belongs to the card path only
	if sess.Intent.Method == checkout.MethodCard {
		for i, label := range stepLabels {
			n := i + 1
			p.Steps = append(p.Steps, view.StepIndicator{
				Number: n,
				Label:  label,
				Active: n <= int(sess.Step),
				Done:   n < int(sess.Step),
			})
		}
	}

	for _, d := range checkout.PresetAmounts {
		p.Presets = append(p.Presets, view.PresetOption{
			Dollars:  d,
			Label:    view.WholeDollars(d * 100),
			Selected: sess.Intent.CustomAmount == "" && sess.Intent.PresetDollars == d,
		})
	}

	for _, m := range methodLabels {
		p.Methods = append(p.Methods, view.MethodOption{
			Code:     string(m.Method),
			Label:    m.Label,
			Selected: sess.Intent.Method == m.Method,
			Disabled: m.Method == checkout.MethodDigitalWallet && !sess.WalletAvailable,
		})
	}

	if showMissing {
		p.Missing = map[string]bool{}
		for _, f := range sess.Profile.MissingFields() {
			p.Missing[f] = true
		}
	}
	return p
}

type sessionJSON struct {
	ID              string                 `json:"id"`
	Step            checkout.Step          `json:"step"`
	PresetDollars   int                    `json:"preset_dollars"`
	CustomAmount    string                 `json:"custom_amount"`
	AmountCents     int                    `json:"amount_cents"`
	Amount          string                 `json:"amount"`
	Recurring       bool                   `json:"recurring"`
	Method          checkout.PaymentMethod `json:"method"`
	Profile         checkout.DonorProfile  `json:"profile"`
	MissingFields   []string               `json:"missing_fields"`
	CanContinue     bool                   `json:"can_continue"`
	Processing      bool                   `json:"processing"`
	StatusMessage   string                 `json:"status_message"`
	WalletAvailable bool                   `json:"wallet_available"`
}

func newSessionJSON(sess checkout.Session) sessionJSON {
	missing := sess.Profile.MissingFields()
	if missing == nil {
		missing = []string{}
	}
	return sessionJSON{
		ID:              sess.ID,
		Step:            sess.Step,
		PresetDollars:   sess.Intent.PresetDollars,
		CustomAmount:    sess.Intent.CustomAmount,
		AmountCents:     sess.AmountCents(),
		Amount:          view.MoneyFromCents(sess.AmountCents(), "USD"),
		Recurring:       sess.Intent.Recurring,
		Method:          sess.Intent.Method,
		Profile:         sess.Profile,
		MissingFields:   missing,
		CanContinue:     sess.CanContinue(),
		Processing:      sess.Processing,
		StatusMessage:   sess.StatusMessage,
		WalletAvailable: sess.WalletAvailable,
	}
}

// checkoutError maps checkout sentinels to HTTP-facing errors.
func checkoutError(err error) *apperr.AppError {
	if ae, ok := apperr.As(err); ok {
		return ae
	}
	switch {
	case errors.Is(err, checkout.ErrSessionNotFound):
		return apperr.NotFoundErr("Your checkout session has expired. Please start again.").WithCause(err)
	case errors.Is(err, checkout.ErrValidationBlocked):
		return apperr.UnprocessableErr("Please complete the required fields.", nil).WithCause(err)
	case errors.Is(err, checkout.ErrChargeInFlight):
		return apperr.ConflictErr("A payment is already being processed.").WithCause(err)
	case errors.Is(err, checkout.ErrInvalidAmount):
		return apperr.InvalidErr("Please choose or enter a valid amount.", nil).WithCause(err)
	case errors.Is(err, checkout.ErrInvalidTransition):
		return apperr.InvalidErr("That action is not available on this step.", nil).WithCause(err)
	case errors.Is(err, checkout.ErrWalletUnavailable):
		return apperr.InvalidErr("Google Pay / Apple Pay is not available on this device.", nil).WithCause(err)
	case errors.Is(err, checkout.ErrUnknownMethod):
		return apperr.InvalidErr("Unknown payment method.", nil).WithCause(err)
	default:
		return apperr.Wrap(err)
	}
}
