package checkout

import "strings"

// Event is a user action applied to a session by Reduce.
type Event interface {
	Name() string
}

type ChargePath string

const (
	PathCard   ChargePath = "card"
	PathWallet ChargePath = "wallet"
)

type (
	SelectPreset      struct{ Dollars int }
	EnterCustomAmount struct{ Raw string }
	SetRecurring      struct{ Recurring bool }
	SelectMethod      struct{ Method PaymentMethod }
	ContinueWithCard  struct{}
	EditProfile       struct{ Profile DonorProfile }
	Back              struct{}
	ContinueToPayment struct{}
	StartVenmo        struct{}
	BeginCharge       struct{ Path ChargePath }
	FinishCharge      struct{ Outcome Outcome }

	// ReportWalletAvailability carries the browser-side capability probe result.
	ReportWalletAvailability struct{ Available bool }
)

func (SelectPreset) Name() string             { return "select_preset" }
func (EnterCustomAmount) Name() string        { return "enter_custom_amount" }
func (SetRecurring) Name() string             { return "set_recurring" }
func (SelectMethod) Name() string             { return "select_method" }
func (ContinueWithCard) Name() string         { return "continue_with_card" }
func (EditProfile) Name() string              { return "edit_profile" }
func (Back) Name() string                     { return "back" }
func (ContinueToPayment) Name() string        { return "continue_to_payment" }
func (StartVenmo) Name() string               { return "start_venmo" }
func (BeginCharge) Name() string              { return "begin_charge" }
func (FinishCharge) Name() string             { return "finish_charge" }
func (ReportWalletAvailability) Name() string { return "report_wallet_availability" }

// Reduce applies ev to s and returns the next state. s is passed by value and
// never modified; on error the returned session equals s.
func Reduce(s Session, ev Event) (Session, error) {
	switch e := ev.(type) {
	case FinishCharge:
		if !s.Processing {
			return s, &TransitionError{Event: e.Name(), Step: s.Step}
		}
		s.Processing = false
		s.StatusMessage = e.Outcome.Message()
		return s, nil
	case ReportWalletAvailability:
		s.WalletAvailable = e.Available && s.WalletSupported
		if !e.Available && s.Intent.Method == MethodDigitalWallet && !s.Processing {
			s.Intent.Method = MethodCard
		}
		return s, nil
	}

	if s.Processing {
		return s, ErrChargeInFlight
	}

	switch e := ev.(type) {
	case SelectPreset:
		if err := requireStep(s, e, StepAmount); err != nil {
			return s, err
		}
		if !isPreset(e.Dollars) {
			return s, ErrInvalidAmount
		}
		s.Intent.PresetDollars = e.Dollars
		s.Intent.CustomAmount = ""
		return s, nil

	case EnterCustomAmount:
		if err := requireStep(s, e, StepAmount); err != nil {
			return s, err
		}
		raw := strings.TrimSpace(e.Raw)
		if raw == "" {
			s.Intent.CustomAmount = ""
			return s, nil
		}
		if _, err := ParseAmount(raw); err != nil {
			return s, err
		}
		s.Intent.CustomAmount = raw
		s.Intent.PresetDollars = 0
		return s, nil

	case SetRecurring:
		if err := requireStep(s, e, StepAmount); err != nil {
			return s, err
		}
		s.Intent.Recurring = e.Recurring
		return s, nil

	case SelectMethod:
		if err := requireStep(s, e, StepAmount); err != nil {
			return s, err
		}
		switch e.Method {
		case MethodCard, MethodVenmo:
		case MethodDigitalWallet:
			if !s.WalletAvailable {
				return s, ErrWalletUnavailable
			}
		default:
			return s, ErrUnknownMethod
		}
		s.Intent.Method = e.Method
		return s, nil

	case ContinueWithCard:
		if err := requireStep(s, e, StepAmount); err != nil {
			return s, err
		}
		if s.Intent.Method != MethodCard {
			return s, &TransitionError{Event: e.Name(), Step: s.Step}
		}
		if s.AmountCents() <= 0 {
			return s, ErrInvalidAmount
		}
		s.Step = StepProfile
		return s, nil

	case EditProfile:
		if err := requireStep(s, e, StepProfile); err != nil {
			return s, err
		}
		s.Profile = e.Profile
		return s, nil

	case Back:
		switch s.Step {
		case StepProfile:
			s.Step = StepAmount
		case StepPayment:
			s.Step = StepProfile
		default:
			return s, &TransitionError{Event: e.Name(), Step: s.Step}
		}
		return s, nil

	case ContinueToPayment:
		if err := requireStep(s, e, StepProfile); err != nil {
			return s, err
		}
		if !s.Profile.Complete() {
			return s, ErrValidationBlocked
		}
		s.Step = StepPayment
		return s, nil

	case StartVenmo:
		if err := requireStep(s, e, StepAmount); err != nil {
			return s, err
		}
		if s.Intent.Method != MethodVenmo {
			return s, &TransitionError{Event: e.Name(), Step: s.Step}
		}
		if s.AmountCents() <= 0 {
			return s, ErrInvalidAmount
		}
		s.StatusMessage = MsgVenmoRedirect
		return s, nil

	case BeginCharge:
		switch e.Path {
		case PathCard:
			if err := requireStep(s, e, StepPayment); err != nil {
				return s, err
			}
			if !s.Profile.Complete() {
				return s, ErrValidationBlocked
			}
		case PathWallet:
			if err := requireStep(s, e, StepAmount); err != nil {
				return s, err
			}
			if s.Intent.Method != MethodDigitalWallet || !s.WalletAvailable {
				return s, ErrWalletUnavailable
			}
		default:
			return s, ErrUnknownMethod
		}
		if s.AmountCents() <= 0 {
			return s, ErrInvalidAmount
		}
		s.Processing = true
		s.StatusMessage = ""
		return s, nil
	}

	return s, &TransitionError{Event: ev.Name(), Step: s.Step}
}

func requireStep(s Session, ev Event, want Step) error {
	if s.Step != want {
		return &TransitionError{Event: ev.Name(), Step: s.Step}
	}
	return nil
}
