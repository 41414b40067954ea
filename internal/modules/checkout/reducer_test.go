package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(walletSupported bool) Session {
	return NewSession("sess-1", walletSupported, time.Unix(1700000000, 0))
}

func completeProfile() DonorProfile {
	return DonorProfile{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Zip: "94107"}
}

// reduceAll applies events in order and fails the test on the first error.
func reduceAll(t *testing.T, s Session, events ...Event) Session {
	t.Helper()
	for _, ev := range events {
		var err error
		s, err = Reduce(s, ev)
		require.NoError(t, err, ev.Name())
	}
	return s
}

func atPayment(t *testing.T) Session {
	return reduceAll(t, newTestSession(true),
		ContinueWithCard{},
		EditProfile{Profile: completeProfile()},
		ContinueToPayment{},
	)
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession(false)

	assert.Equal(t, StepAmount, s.Step)
	assert.Equal(t, DefaultPreset, s.Intent.PresetDollars)
	assert.Equal(t, 3500, s.AmountCents())
	assert.Equal(t, MethodCard, s.Intent.Method)
	assert.False(t, s.Intent.Recurring)
	assert.False(t, s.Processing)
	assert.Empty(t, s.StatusMessage)
	assert.Equal(t, DonorProfile{}, s.Profile)
}

func TestSelectPreset(t *testing.T) {
	s := reduceAll(t, newTestSession(false), EnterCustomAmount{Raw: "12"}, SelectPreset{Dollars: 15})
	assert.Equal(t, 1500, s.AmountCents())
	assert.Empty(t, s.Intent.CustomAmount)

	next, err := Reduce(s, SelectPreset{Dollars: 20})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, s, next)
}

func TestEnterCustomAmount(t *testing.T) {
	s := reduceAll(t, newTestSession(false), EnterCustomAmount{Raw: "7.50"})
	assert.Equal(t, 750, s.AmountCents())
	assert.Equal(t, 0, s.Intent.PresetDollars)

	next, err := Reduce(s, EnterCustomAmount{Raw: "seven"})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, s, next)
}

func TestClearedCustomAmountBlocksContinue(t *testing.T) {
	s := reduceAll(t, newTestSession(false), EnterCustomAmount{Raw: "10"}, EnterCustomAmount{Raw: " "})
	assert.Equal(t, 0, s.AmountCents())

	_, err := Reduce(s, ContinueWithCard{})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSetRecurring(t *testing.T) {
	s := reduceAll(t, newTestSession(false), SetRecurring{Recurring: true})
	assert.True(t, s.Intent.Recurring)
	s = reduceAll(t, s, SetRecurring{Recurring: false})
	assert.False(t, s.Intent.Recurring)
}

func TestSelectMethod(t *testing.T) {
	s := newTestSession(false)

	_, err := Reduce(s, SelectMethod{Method: MethodDigitalWallet})
	assert.ErrorIs(t, err, ErrWalletUnavailable)

	_, err = Reduce(s, SelectMethod{Method: "paypal"})
	assert.ErrorIs(t, err, ErrUnknownMethod)

	s = reduceAll(t, s, SelectMethod{Method: MethodVenmo})
	assert.Equal(t, MethodVenmo, s.Intent.Method)
}

func TestWalletAvailabilityNarrowsServerProbe(t *testing.T) {
	s := reduceAll(t, newTestSession(true), SelectMethod{Method: MethodDigitalWallet})
	require.True(t, s.WalletAvailable)

	s = reduceAll(t, s, ReportWalletAvailability{Available: false})
	assert.False(t, s.WalletAvailable)
	assert.Equal(t, MethodCard, s.Intent.Method)

	unsupported := reduceAll(t, newTestSession(false), ReportWalletAvailability{Available: true})
	assert.False(t, unsupported.WalletAvailable)
}

func TestContinueWithCard(t *testing.T) {
	s := reduceAll(t, newTestSession(false), ContinueWithCard{})
	assert.Equal(t, StepProfile, s.Step)

	venmo := reduceAll(t, newTestSession(false), SelectMethod{Method: MethodVenmo})
	_, err := Reduce(venmo, ContinueWithCard{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "continue_with_card", te.Event)
}

func TestContinueToPaymentRequiresProfile(t *testing.T) {
	s := reduceAll(t, newTestSession(false), ContinueWithCard{})

	next, err := Reduce(s, ContinueToPayment{})
	assert.ErrorIs(t, err, ErrValidationBlocked)
	assert.Equal(t, StepProfile, next.Step)

	blank := DonorProfile{FirstName: "  ", LastName: "Lovelace", Email: "ada@example.com"}
	s = reduceAll(t, s, EditProfile{Profile: blank})
	assert.False(t, s.CanContinue())
	_, err = Reduce(s, ContinueToPayment{})
	assert.ErrorIs(t, err, ErrValidationBlocked)

	// formats are not checked
	loose := DonorProfile{FirstName: "A", LastName: "B", Email: "not-an-email"}
	s = reduceAll(t, s, EditProfile{Profile: loose})
	assert.True(t, s.CanContinue())
	s = reduceAll(t, s, ContinueToPayment{})
	assert.Equal(t, StepPayment, s.Step)
}

func TestBackKeepsEnteredData(t *testing.T) {
	s := atPayment(t)
	intent, profile := s.Intent, s.Profile

	s = reduceAll(t, s, Back{})
	assert.Equal(t, StepProfile, s.Step)
	s = reduceAll(t, s, Back{})
	assert.Equal(t, StepAmount, s.Step)

	assert.Equal(t, intent, s.Intent)
	assert.Equal(t, profile, s.Profile)

	_, err := Reduce(s, Back{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEventsOutsideTheirStep(t *testing.T) {
	s := atPayment(t)
	for _, ev := range []Event{SelectPreset{Dollars: 15}, EnterCustomAmount{Raw: "5"}, SetRecurring{Recurring: true}, ContinueWithCard{}, EditProfile{}, ContinueToPayment{}, StartVenmo{}} {
		next, err := Reduce(s, ev)
		assert.ErrorIs(t, err, ErrInvalidTransition, ev.Name())
		assert.Equal(t, s, next, ev.Name())
	}
}

func TestChargeLifecycle(t *testing.T) {
	s := atPayment(t)
	s.StatusMessage = "An error occurred. Please try again."

	s = reduceAll(t, s, BeginCharge{Path: PathCard})
	assert.True(t, s.Processing)
	assert.Empty(t, s.StatusMessage)

	_, err := Reduce(s, BeginCharge{Path: PathCard})
	assert.ErrorIs(t, err, ErrChargeInFlight)
	_, err = Reduce(s, Back{})
	assert.ErrorIs(t, err, ErrChargeInFlight)

	s = reduceAll(t, s, FinishCharge{Outcome: Failed("Your card was declined.")})
	assert.False(t, s.Processing)
	assert.Equal(t, "Your card was declined.", s.StatusMessage)
	assert.Equal(t, StepPayment, s.Step)

	// a new attempt is allowed after a failure
	s = reduceAll(t, s, BeginCharge{Path: PathCard}, FinishCharge{Outcome: Succeeded(MsgCardSuccess)})
	assert.Equal(t, MsgCardSuccess, s.StatusMessage)
	assert.Equal(t, StepPayment, s.Step)
}

func TestFinishChargeWithoutReasonUsesGenericMessage(t *testing.T) {
	s := reduceAll(t, atPayment(t), BeginCharge{Path: PathCard}, FinishCharge{Outcome: Failed("")})
	assert.Equal(t, MsgGenericFailure, s.StatusMessage)

	_, err := Reduce(s, FinishCharge{Outcome: Failed("")})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBeginChargeGuards(t *testing.T) {
	s := reduceAll(t, newTestSession(false), ContinueWithCard{}, EditProfile{Profile: completeProfile()})
	_, err := Reduce(s, BeginCharge{Path: PathCard})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Reduce(newTestSession(true), BeginCharge{Path: PathWallet})
	assert.ErrorIs(t, err, ErrWalletUnavailable)

	wallet := reduceAll(t, newTestSession(true), SelectMethod{Method: MethodDigitalWallet}, BeginCharge{Path: PathWallet})
	assert.True(t, wallet.Processing)
	assert.Equal(t, StepAmount, wallet.Step)

	_, err = Reduce(newTestSession(true), BeginCharge{Path: "cash"})
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestWalletAvailabilityReportedWhileProcessing(t *testing.T) {
	s := reduceAll(t, newTestSession(true), SelectMethod{Method: MethodDigitalWallet}, BeginCharge{Path: PathWallet})
	s = reduceAll(t, s, ReportWalletAvailability{Available: false})
	assert.Equal(t, MethodDigitalWallet, s.Intent.Method)
	assert.True(t, s.Processing)
}

func TestStartVenmo(t *testing.T) {
	s := reduceAll(t, newTestSession(false), SelectMethod{Method: MethodVenmo}, StartVenmo{})
	assert.Equal(t, MsgVenmoRedirect, s.StatusMessage)
	assert.Equal(t, StepAmount, s.Step)

	_, err := Reduce(newTestSession(false), StartVenmo{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	empty := reduceAll(t, newTestSession(false), SelectMethod{Method: MethodVenmo}, EnterCustomAmount{Raw: ""}, SelectPreset{Dollars: 15}, EnterCustomAmount{Raw: "3"}, EnterCustomAmount{Raw: ""})
	_, err = Reduce(empty, StartVenmo{})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestReduceDoesNotModifyInput(t *testing.T) {
	s := atPayment(t)
	before := s

	_, err := Reduce(s, Back{})
	require.NoError(t, err)
	_, err = Reduce(s, BeginCharge{Path: PathCard})
	require.NoError(t, err)

	assert.Equal(t, before, s)
}

func TestOutcomeMessage(t *testing.T) {
	assert.Equal(t, MsgCardSuccess, Succeeded("").Message())
	assert.Equal(t, MsgWalletSuccess, Succeeded(MsgWalletSuccess).Message())
	assert.Equal(t, MsgGenericFailure, Failed("").Message())
	assert.True(t, Succeeded("").Succeeded())
	assert.False(t, Failed("x").Succeeded())
}
