package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount     = errors.New("invalid donation amount")
	ErrInvalidTransition = errors.New("invalid step transition")
	ErrValidationBlocked = errors.New("required donor fields missing")
	ErrChargeInFlight    = errors.New("a payment is already being processed")
	ErrWalletUnavailable = errors.New("digital wallet unavailable")
	ErrUnknownMethod     = errors.New("unknown payment method")
	ErrSessionNotFound   = errors.New("checkout session not found")
)

// TransitionError reports an event that is not allowed from the current step.
type TransitionError struct {
	Event string
	Step  Step
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid step transition: %s not allowed at step %d", e.Event, e.Step)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
